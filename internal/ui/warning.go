// Package ui implements the console approvers for the destructive replace.
package ui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

var (
	warnStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))
	tableStyle = lipgloss.NewStyle().Bold(true)
)

// renderWarning builds the banner shown before a destructive replace.
func renderWarning(table string, existing int64) string {
	return fmt.Sprintf("%s This will permanently erase all data in the %s table (%d existing row(s)).",
		warnStyle.Render("⚠️  WARNING:"),
		tableStyle.Render("'"+table+"'"),
		existing,
	)
}
