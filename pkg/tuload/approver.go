package tuload

import "context"

// Approver handles user interaction for approval workflows, specifically
// confirming the destructive replace of the destination table.
//
// Implementations:
//   - InteractiveApprover: prompts for a yes/no answer on the console
//   - ForcedApprover: shows a countdown and automatically approves
type Approver interface {
	// RequestApproval prompts for confirmation before erasing a table.
	//
	// Parameters:
	//   - ctx: Context for cancellation
	//   - table: Name of the table about to be erased
	//   - existing: Number of rows currently in the table
	//
	// Returns:
	//   - bool: true if approved, false if declined
	//   - error: Any error that occurred during the approval process
	RequestApproval(ctx context.Context, table string, existing int64) (bool, error)
}
