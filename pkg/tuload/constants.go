package tuload

import "time"

// Exit codes for semantic error classification.
// These follow Unix/GNU conventions:
//   - 0: Success
//   - 1: General error
//   - 2: CLI usage error (misuse of command line)
//   - 3+: Application-specific errors
const (
	ExitSuccess         = 0  // Load completed successfully
	ExitGeneralError    = 1  // Unknown or unclassified error
	ExitUsageError      = 2  // CLI usage error (missing args, invalid flags)
	ExitPanic           = 3  // Internal panic (unexpected crash)
	ExitConfigError     = 10 // Invalid configuration or missing DATABASE_URL
	ExitConnectionError = 11 // Failed to connect to database
	ExitApprovalDenied  = 12 // User denied the replace confirmation
	ExitLoadFailed      = 13 // Database fault during delete/insert/commit
	ExitCSVMissing      = 14 // CSV input file not found
)

const (
	// DefaultCSVPath is the CSV file loaded when no path argument is given.
	DefaultCSVPath = "tuition_logs.csv"

	// LogTable is the destination table for tuition log records.
	LogTable = "tuition_logs"

	// StudentsTable is the people store queried for the first-name lookup.
	StudentsTable = "students"

	// ConnStringEnvVar is the environment variable holding the destination
	// connection string, conventionally sourced from a local .env file.
	ConnStringEnvVar = "DATABASE_URL"

	// AffirmativeToken is the exact (case-insensitive) token the interactive
	// approver accepts. Anything else declines the replace.
	AffirmativeToken = "yes"

	// DefaultForceApprovalCountdown is the countdown duration before force
	// approval proceeds.
	DefaultForceApprovalCountdown = 5 * time.Second

	// DefaultTimeout bounds a whole run. Catastrophic failure protection,
	// not a per-statement timeout.
	DefaultTimeout = 3 * time.Minute
)
