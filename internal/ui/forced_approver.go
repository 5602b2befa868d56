package ui

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/efficienttutor/tuload/pkg/tuload"
)

// ForcedApprover implements the Approver interface for forced
// (non-interactive) approval. It displays a countdown and automatically
// approves after it, used when the --force flag is provided.
type ForcedApprover struct {
	output  io.Writer
	sleepFn func(time.Duration)
}

// NewForcedApprover creates a new ForcedApprover writing to stderr.
func NewForcedApprover() tuload.Approver {
	return &ForcedApprover{
		output:  os.Stderr,
		sleepFn: time.Sleep,
	}
}

// RequestApproval displays a countdown and approves once it completes.
func (a *ForcedApprover) RequestApproval(ctx context.Context, table string, existing int64) (bool, error) {
	fmt.Fprintln(a.output)
	fmt.Fprintln(a.output, renderWarning(table, existing))

	countdownSeconds := int(tuload.DefaultForceApprovalCountdown.Seconds())
	for i := countdownSeconds; i > 0; i-- {
		select {
		case <-ctx.Done():
			return false, ctx.Err()
		default:
			fmt.Fprintf(a.output, "\rErasing in: %d seconds... (Press Ctrl+C to cancel)", i)
			a.sleepFn(1 * time.Second)
		}
	}

	fmt.Fprintf(a.output, "\r✓ Proceeding with replace of '%s'...                          \n", table)
	return true, nil
}

// Verify ForcedApprover implements the Approver interface at compile time
var _ tuload.Approver = (*ForcedApprover)(nil)
