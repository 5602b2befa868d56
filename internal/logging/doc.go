// Package logging provides concrete implementations of the tuload.Logger interface.
package logging
