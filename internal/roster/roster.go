// Package roster builds the first-name lookup used to resolve CSV attendees
// to student and guardian identifiers.
//
// The people store is read-only to this tool: Build issues exactly one
// SELECT and never mutates anything.
package roster

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
)

// Sentinel errors returned by Resolve.
var (
	// ErrUnknownName indicates the first name has no student record.
	ErrUnknownName = errors.New("unknown student name")

	// ErrAmbiguousName indicates two or more student records share the
	// first name, so the lookup cannot attribute a guardian.
	ErrAmbiguousName = errors.New("ambiguous student name")
)

// Querier is the read surface the roster needs. Satisfied by *pgxpool.Pool,
// pgx.Tx and pgxmock pools alike.
type Querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// Entry is one resolved student.
type Entry struct {
	StudentID  string
	GuardianID string
}

// Roster maps student first names to their identifiers. Duplicate first
// names are tracked explicitly instead of silently overwriting each other;
// resolving a duplicated name fails with ErrAmbiguousName.
type Roster struct {
	entries   map[string]Entry
	conflicts map[string]struct{}
}

// NewStatic builds a roster from a fixed entry set, bypassing the database.
// Names listed in conflicts resolve as ambiguous.
func NewStatic(entries map[string]Entry, conflicts ...string) *Roster {
	r := &Roster{
		entries:   make(map[string]Entry, len(entries)),
		conflicts: make(map[string]struct{}, len(conflicts)),
	}
	for name, entry := range entries {
		r.entries[name] = entry
	}
	for _, name := range conflicts {
		r.conflicts[name] = struct{}{}
	}
	return r
}

// studentQuery casts the identifiers to text so the roster works regardless
// of the column types backing the students table.
const studentQuery = `SELECT id::text, user_id::text, first_name FROM students`

// Build fetches all student records and returns the first-name lookup.
func Build(ctx context.Context, q Querier) (*Roster, error) {
	rows, err := q.Query(ctx, studentQuery)
	if err != nil {
		return nil, fmt.Errorf("failed to query students: %w", err)
	}
	defer rows.Close()

	r := &Roster{
		entries:   make(map[string]Entry),
		conflicts: make(map[string]struct{}),
	}

	for rows.Next() {
		var studentID, guardianID, firstName string
		if err := rows.Scan(&studentID, &guardianID, &firstName); err != nil {
			return nil, fmt.Errorf("failed to scan student row: %w", err)
		}

		if _, seen := r.entries[firstName]; seen {
			r.conflicts[firstName] = struct{}{}
			continue
		}
		r.entries[firstName] = Entry{StudentID: studentID, GuardianID: guardianID}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read student rows: %w", err)
	}

	return r, nil
}

// Len returns the number of distinct first names, including conflicted ones.
func (r *Roster) Len() int {
	return len(r.entries)
}

// Conflicts returns the first names shared by more than one student record,
// so callers can warn about them up front.
func (r *Roster) Conflicts() []string {
	names := make([]string, 0, len(r.conflicts))
	for name := range r.conflicts {
		names = append(names, name)
	}
	return names
}

// Resolve looks up a first name. It returns ErrUnknownName when no student
// record matches and ErrAmbiguousName when more than one does.
func (r *Roster) Resolve(name string) (Entry, error) {
	if _, conflicted := r.conflicts[name]; conflicted {
		return Entry{}, fmt.Errorf("%w: %q", ErrAmbiguousName, name)
	}
	entry, ok := r.entries[name]
	if !ok {
		return Entry{}, fmt.Errorf("%w: %q", ErrUnknownName, name)
	}
	return entry, nil
}
