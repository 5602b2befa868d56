package ui

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/efficienttutor/tuload/pkg/tuload"
)

// InteractiveApprover implements the Approver interface for console-based
// interactive confirmation. It prompts the user for a yes/no answer before
// erasing the destination table.
type InteractiveApprover struct {
	input  io.Reader
	output io.Writer
}

// NewInteractiveApprover creates a new InteractiveApprover reading from
// stdin and writing to stderr.
func NewInteractiveApprover() tuload.Approver {
	return &InteractiveApprover{
		input:  os.Stdin,
		output: os.Stderr,
	}
}

// RequestApproval prompts the user for the affirmative token. Any other
// input declines.
func (a *InteractiveApprover) RequestApproval(ctx context.Context, table string, existing int64) (bool, error) {
	fmt.Fprintln(a.output)
	fmt.Fprintln(a.output, renderWarning(table, existing))
	fmt.Fprintf(a.output, "Are you sure you want to continue? (%s/no): ", tuload.AffirmativeToken)

	// Read user input with context cancellation support. On cancellation
	// the reader goroutine stays blocked on ReadString until the process
	// exits; the caller returns immediately and never commits anything.
	inputChan := make(chan string, 1)
	errChan := make(chan error, 1)

	go func() {
		reader := bufio.NewReader(a.input)
		input, err := reader.ReadString('\n')
		if err != nil && err != io.EOF {
			errChan <- err
			return
		}
		inputChan <- strings.TrimSpace(input)
	}()

	select {
	case <-ctx.Done():
		return false, ctx.Err()
	case err := <-errChan:
		return false, fmt.Errorf("failed to read input: %w", err)
	case input := <-inputChan:
		if strings.EqualFold(input, tuload.AffirmativeToken) {
			fmt.Fprintf(a.output, "✓ Confirmed. Proceeding with replace of '%s'...\n", table)
			return true, nil
		}
		fmt.Fprintln(a.output, "Operation cancelled by user.")
		return false, nil
	}
}

// Verify InteractiveApprover implements the Approver interface at compile time
var _ tuload.Approver = (*InteractiveApprover)(nil)
