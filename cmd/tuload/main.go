package main

import (
	"fmt"
	"os"
	"runtime/debug"

	"github.com/efficienttutor/tuload/internal/cli"
	"github.com/efficienttutor/tuload/pkg/tuload"
)

func main() {
	// Recover from panics to ensure graceful exits with stack traces
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "panic: %v\n%s\n", r, debug.Stack())
			os.Exit(tuload.ExitPanic)
		}
	}()

	if err := cli.Execute(); err != nil {
		os.Exit(tuload.ExitCodeForError(err))
	}
}
