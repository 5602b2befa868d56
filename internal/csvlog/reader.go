// Package csvlog parses and validates the tuition log CSV.
//
// Validation is per-row: a bad row yields a RowError and the stream
// continues. Only IO-level failures abort the read. The stream is lazy and
// finite; re-reading requires a fresh Reader.
package csvlog

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/efficienttutor/tuload/internal/roster"
	"github.com/efficienttutor/tuload/pkg/tuload"
)

// Required CSV columns. Spelling and case are load-bearing.
const (
	colDate        = "date"
	colStartTime   = "start_time"
	colEndTime     = "end_time"
	colSubject     = "subject"
	colAttendees   = "attendees"
	colCostPerHour = "cost_per_hour"
	colLessonIndex = "lesson_index"
)

// Record is one validated insertion tuple for the tuition_logs table.
type Record struct {
	// Line is the CSV line the record came from, for progress reporting.
	Line int

	// GuardianID is the first attendee's guardian, used as the billing
	// attribution for the whole session.
	GuardianID string

	// StudentID is the first attendee's student identifier.
	StudentID string

	Subject       string
	AttendeeNames []string

	// LessonIndex is nil when the CSV field is absent or empty.
	LessonIndex *int

	CostPerHour decimal.Decimal

	// StartTime and EndTime are "<date> <clock>" strings. The destination
	// timestamp column performs the calendar validation.
	StartTime string
	EndTime   string
}

// RowError describes a single skipped row. It never aborts the run.
type RowError struct {
	Line   int
	Kind   tuload.SkipKind
	Detail string
}

func (e *RowError) Error() string {
	return fmt.Sprintf("line %d: %s (%s)", e.Line, e.Detail, e.Kind)
}

// Skipped converts the error into the report entry form.
func (e *RowError) Skipped() tuload.SkippedRow {
	return tuload.SkippedRow{Line: e.Line, Kind: e.Kind, Detail: e.Detail}
}

// Reader streams validated records from a tuition log CSV, resolving
// attendee names through the roster as it goes.
type Reader struct {
	cr     *csv.Reader
	roster *roster.Roster
	cols   map[string]int
}

// NewReader wraps r and consumes its header row. Missing header columns are
// not fatal here; rows referencing them fail individually, matching the
// row-level skip policy.
func NewReader(r io.Reader, ros *roster.Roster) (*Reader, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		if err == io.EOF {
			return nil, fmt.Errorf("csv file is empty")
		}
		return nil, fmt.Errorf("failed to read csv header: %w", err)
	}

	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[strings.TrimSpace(name)] = i
	}

	return &Reader{cr: cr, roster: ros, cols: cols}, nil
}

// Next returns the next outcome of the stream: a validated record, a
// recoverable row error, or a terminal error (io.EOF at end of input).
// Exactly one of the three is non-nil.
func (r *Reader) Next() (*Record, *RowError, error) {
	fields, err := r.cr.Read()
	if err != nil {
		if err == io.EOF {
			return nil, nil, io.EOF
		}
		var parseErr *csv.ParseError
		if errors.As(err, &parseErr) {
			return nil, &RowError{
				Line:   parseErr.Line,
				Kind:   tuload.SkipMissingColumn,
				Detail: fmt.Sprintf("malformed row: %v", parseErr.Err),
			}, nil
		}
		return nil, nil, fmt.Errorf("failed to read csv: %w", err)
	}

	line, _ := r.cr.FieldPos(0)
	return r.parseRow(line, fields)
}

func (r *Reader) parseRow(line int, fields []string) (*Record, *RowError, error) {
	get := func(col string) (string, *RowError) {
		idx, ok := r.cols[col]
		if !ok || idx >= len(fields) {
			return "", &RowError{Line: line, Kind: tuload.SkipMissingColumn, Detail: fmt.Sprintf("column %q missing", col)}
		}
		return fields[idx], nil
	}
	require := func(col string) (string, *RowError) {
		v, rowErr := get(col)
		if rowErr != nil {
			return "", rowErr
		}
		v = strings.TrimSpace(v)
		if v == "" {
			return "", &RowError{Line: line, Kind: tuload.SkipEmptyField, Detail: fmt.Sprintf("column %q is empty", col)}
		}
		return v, nil
	}

	date, rowErr := require(colDate)
	if rowErr != nil {
		return nil, rowErr, nil
	}
	startClock, rowErr := require(colStartTime)
	if rowErr != nil {
		return nil, rowErr, nil
	}
	endClock, rowErr := require(colEndTime)
	if rowErr != nil {
		return nil, rowErr, nil
	}
	subject, rowErr := require(colSubject)
	if rowErr != nil {
		return nil, rowErr, nil
	}
	attendeesField, rowErr := require(colAttendees)
	if rowErr != nil {
		return nil, rowErr, nil
	}
	costField, rowErr := require(colCostPerHour)
	if rowErr != nil {
		return nil, rowErr, nil
	}

	attendees := splitAttendees(attendeesField)
	if len(attendees) == 0 {
		return nil, &RowError{Line: line, Kind: tuload.SkipNoAttendees, Detail: "no attendee names after normalization"}, nil
	}

	// The first attendee's guardian owns the whole session. Other
	// attendees' guardians are deliberately ignored.
	entry, err := r.roster.Resolve(attendees[0])
	if err != nil {
		kind := tuload.SkipUnknownAttendee
		if errors.Is(err, roster.ErrAmbiguousName) {
			kind = tuload.SkipAmbiguousAttendee
		}
		return nil, &RowError{Line: line, Kind: kind, Detail: fmt.Sprintf("student %q: %v", attendees[0], err)}, nil
	}

	cost, err := decimal.NewFromString(costField)
	if err != nil {
		return nil, &RowError{Line: line, Kind: tuload.SkipBadCost, Detail: fmt.Sprintf("cost_per_hour %q is not numeric", costField)}, nil
	}

	var lessonIndex *int
	if raw, _ := get(colLessonIndex); strings.TrimSpace(raw) != "" {
		n, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil {
			return nil, &RowError{Line: line, Kind: tuload.SkipBadLessonIndex, Detail: fmt.Sprintf("lesson_index %q is not an integer", raw)}, nil
		}
		lessonIndex = &n
	}

	return &Record{
		Line:          line,
		GuardianID:    entry.GuardianID,
		StudentID:     entry.StudentID,
		Subject:       subject,
		AttendeeNames: attendees,
		LessonIndex:   lessonIndex,
		CostPerHour:   cost,
		StartTime:     date + " " + startClock,
		EndTime:       date + " " + endClock,
	}, nil, nil
}
