package tuload

import (
	"errors"
	"strings"
)

// Sentinel errors for common failure scenarios.
// These enable callers to distinguish error types using errors.Is().
//
// Example usage:
//
//	err := loader.Load(ctx, config)
//	if errors.Is(err, tuload.ErrApprovalDenied) {
//	    // Handle user declining the replace confirmation
//	}
var (
	// ErrInvalidConfig indicates the provided configuration is invalid,
	// including a missing DATABASE_URL.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrApprovalDenied indicates the user declined the replace confirmation.
	ErrApprovalDenied = errors.New("approval denied")

	// ErrCSVNotFound indicates the CSV input file was not found.
	ErrCSVNotFound = errors.New("csv file not found")

	// ErrConnectionFailed indicates database connection failed.
	ErrConnectionFailed = errors.New("connection failed")

	// ErrLoadFailed indicates a database fault during delete, insert or
	// commit. The whole transaction is rolled back when this is returned.
	ErrLoadFailed = errors.New("load failed")
)

// ExitCodeForError returns the appropriate exit code for an error.
// Returns ExitSuccess (0) for nil errors, semantic codes for known errors,
// and ExitGeneralError (1) for unclassified errors.
func ExitCodeForError(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// Check for sentinel errors
	switch {
	case errors.Is(err, ErrInvalidConfig):
		return ExitConfigError
	case errors.Is(err, ErrApprovalDenied):
		return ExitApprovalDenied
	case errors.Is(err, ErrCSVNotFound):
		return ExitCSVMissing
	case errors.Is(err, ErrLoadFailed):
		return ExitLoadFailed
	case errors.Is(err, ErrConnectionFailed):
		return ExitConnectionError
	}

	// Check for cobra usage error patterns
	errStr := err.Error()
	if strings.HasPrefix(errStr, "unknown flag") ||
		strings.HasPrefix(errStr, "unknown shorthand flag") ||
		strings.HasPrefix(errStr, "invalid argument") ||
		strings.Contains(errStr, "arg(s), received") ||
		strings.Contains(errStr, "required flag") {
		return ExitUsageError
	}

	// Check for common connection error patterns
	if strings.Contains(errStr, "failed to connect") ||
		strings.Contains(errStr, "connection refused") ||
		strings.Contains(errStr, "no such host") {
		return ExitConnectionError
	}

	return ExitGeneralError
}
