package tuload

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// LoadConfig contains all parameters needed for a load operation.
type LoadConfig struct {
	// ConnectionString is the PostgreSQL connection string for the
	// destination database.
	ConnectionString string

	// CSVPath is the path to the tuition log CSV file.
	CSVPath string

	// Replace enables the destructive workflow: delete every existing row
	// in the destination table before inserting.
	Replace bool

	// Force swaps the interactive confirmation for a countdown when used
	// with Replace.
	Force bool

	// Timeout is the global timeout for the entire run.
	Timeout time.Duration

	// Verbose enables detailed logging.
	Verbose bool
}

// Validate checks if the LoadConfig has all required fields and valid values.
// It returns a multi-error if multiple validation failures occur.
func (c *LoadConfig) Validate() error {
	var errs []error

	if c.ConnectionString == "" {
		errs = append(errs, fmt.Errorf("ConnectionString is required: %w", ErrInvalidConfig))
	}

	if c.CSVPath == "" {
		errs = append(errs, fmt.Errorf("CSVPath is required: %w", ErrInvalidConfig))
	}

	// Force requires Replace to be set
	if c.Force && !c.Replace {
		errs = append(errs, fmt.Errorf("force flag requires replace to be enabled: %w", ErrInvalidConfig))
	}

	if c.Timeout < 0 {
		errs = append(errs, fmt.Errorf("timeout cannot be negative: %w", ErrInvalidConfig))
	}

	return errors.Join(errs...)
}

// SkipKind classifies why a CSV row produced no insert.
type SkipKind string

const (
	SkipMissingColumn     SkipKind = "missing_column"
	SkipEmptyField        SkipKind = "empty_field"
	SkipBadCost           SkipKind = "bad_cost"
	SkipBadLessonIndex    SkipKind = "bad_lesson_index"
	SkipNoAttendees       SkipKind = "no_attendees"
	SkipUnknownAttendee   SkipKind = "unknown_attendee"
	SkipAmbiguousAttendee SkipKind = "ambiguous_attendee"
)

// SkippedRow records one CSV row that was skipped during a run.
// Row-level failures never abort a run; they accumulate here.
type SkippedRow struct {
	// Line is the 1-based line number in the CSV file (header is line 1).
	Line int

	// Kind classifies the failure.
	Kind SkipKind

	// Detail is a human-readable description, e.g. the unresolved
	// attendee name or the unparseable field value.
	Detail string
}

func (s SkippedRow) String() string {
	return fmt.Sprintf("line %d: %s (%s)", s.Line, s.Detail, s.Kind)
}

// LoadReport summarizes the outcome of a completed run.
type LoadReport struct {
	// RunID correlates log output with a single invocation.
	RunID uuid.UUID

	// Replaced is true when the run deleted existing rows first.
	Replaced bool

	// Deleted is the number of rows removed in the replace step.
	Deleted int64

	// StudentsFound is the size of the first-name lookup built from the
	// people store.
	StudentsFound int

	// Inserted is the number of tuition log records written.
	Inserted int

	// Skipped lists every row that produced no insert, in file order.
	Skipped []SkippedRow
}
