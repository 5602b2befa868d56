// Package cli wires the cobra command surface.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "tuload",
	Short: "Tuition log CSV loader for PostgreSQL",
	Long: `tuload imports tutoring session records from a CSV file into the
tuition_logs table, resolving each session's attendees to student and
guardian identifiers through the students table.

By default rows are appended. With --replace, the destination table is
erased first (after an interactive confirmation) and rebuilt from the CSV.
Either way the whole run is one transaction: everything commits together or
nothing does. Rows that fail validation are skipped with a warning and the
run continues.

The destination connection string is read from $DATABASE_URL, typically via
a local .env file.

Exit Codes:
  0  - Success
  1  - General error
  2  - CLI usage error (invalid arguments or flags)
  3  - Panic or unexpected system error
  10 - Invalid configuration or missing DATABASE_URL
  11 - Database connection failed
  12 - User declined the replace confirmation
  13 - Database fault during the load (rolled back)
  14 - CSV file not found`,
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose output for all commands")
}

// getVerboseFlag safely retrieves the verbose flag value
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Failed to get verbose flag: %v\n", err)
		return false
	}
	return verbose
}
