// Package store issues the SQL statements against the tuition_logs table.
//
// Every statement runs on a caller-supplied handle so the whole run shares
// one transaction: the delete (replace mode) and all inserts commit or roll
// back together.
package store

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/efficienttutor/tuload/internal/csvlog"
	"github.com/efficienttutor/tuload/pkg/tuload"
)

// Execer is the write surface the store needs. Satisfied by pgx.Tx,
// *pgxpool.Pool and pgxmock pools alike.
type Execer interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// Querier mirrors the read side for the row count.
type Querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

const (
	countSQL  = `SELECT COUNT(*) FROM tuition_logs`
	deleteSQL = `DELETE FROM tuition_logs`

	insertSQL = `
		INSERT INTO tuition_logs
		(parent_user_id, subject, attendee_names, lesson_index, cost_per_hour, start_time, end_time)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
)

// Count returns the current number of rows in the tuition_logs table.
func Count(ctx context.Context, q Querier) (int64, error) {
	var n int64
	if err := q.QueryRow(ctx, countSQL).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count tuition logs: %w", err)
	}
	return n, nil
}

// DeleteAll erases every row in the tuition_logs table and returns the
// number of rows removed. Replace mode only.
func DeleteAll(ctx context.Context, e Execer) (int64, error) {
	tag, err := e.Exec(ctx, deleteSQL)
	if err != nil {
		return 0, fmt.Errorf("failed to clear tuition logs: %w: %w", err, tuload.ErrLoadFailed)
	}
	return tag.RowsAffected(), nil
}

// Insert writes one validated record. The timestamp strings are passed
// through untyped; the destination columns coerce and validate them.
func Insert(ctx context.Context, e Execer, rec *csvlog.Record) error {
	_, err := e.Exec(ctx, insertSQL,
		rec.GuardianID,
		rec.Subject,
		rec.AttendeeNames,
		rec.LessonIndex,
		rec.CostPerHour.InexactFloat64(),
		rec.StartTime,
		rec.EndTime,
	)
	if err != nil {
		return fmt.Errorf("failed to insert log from line %d: %w: %w", rec.Line, err, tuload.ErrLoadFailed)
	}
	return nil
}
