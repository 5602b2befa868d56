// Package services orchestrates the load workflow.
package services

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/efficienttutor/tuload/internal/csvlog"
	"github.com/efficienttutor/tuload/internal/roster"
	"github.com/efficienttutor/tuload/internal/store"
	"github.com/efficienttutor/tuload/pkg/tuload"
)

// Pool is the database surface the loader needs. Satisfied by *pgxpool.Pool
// and by pgxmock pools in tests.
type Pool interface {
	Begin(ctx context.Context) (pgx.Tx, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Close()
}

// ConnectFunc opens the destination database.
type ConnectFunc func(ctx context.Context, connStr string) (Pool, error)

// LoaderService runs the whole import: confirm (replace mode), connect,
// open one transaction, optionally erase, build the lookup, stream the CSV
// rows into inserts, commit.
//
// Thread-Safety: NOT safe for concurrent Load() calls on the same instance.
type LoaderService struct {
	connect  ConnectFunc
	approver tuload.Approver
	logger   tuload.Logger
}

// NewLoaderService creates a new LoaderService with all dependencies
// injected. Panics on nil dependencies: those are programmer errors that
// should fail loudly at startup, not surface as nil dereferences mid-run.
func NewLoaderService(connect ConnectFunc, approver tuload.Approver, logger tuload.Logger) *LoaderService {
	if connect == nil {
		panic("connect cannot be nil")
	}
	if approver == nil {
		panic("approver cannot be nil")
	}
	if logger == nil {
		panic("logger cannot be nil")
	}
	return &LoaderService{
		connect:  connect,
		approver: approver,
		logger:   logger,
	}
}

// Load executes a run using the provided configuration. Row-level failures
// never abort the run; they accumulate in the returned report. Any database
// fault rolls the whole transaction back and nothing persists.
func (s *LoaderService) Load(ctx context.Context, config tuload.LoadConfig) (*tuload.LoadReport, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	if config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, config.Timeout)
		defer cancel()
	}

	report := &tuload.LoadReport{RunID: uuid.New(), Replaced: config.Replace}
	s.logger.Verbose("Run %s: loading %s into %s", report.RunID, config.CSVPath, tuload.LogTable)

	// Open the CSV before touching the database, so a missing file costs
	// nothing.
	csvFile, err := os.Open(config.CSVPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("could not find %q: %w", config.CSVPath, tuload.ErrCSVNotFound)
		}
		return nil, fmt.Errorf("failed to open %q: %w", config.CSVPath, err)
	}
	defer csvFile.Close()

	pool, err := s.connect(ctx, config.ConnectionString)
	if err != nil {
		return nil, err
	}
	defer pool.Close()

	if config.Replace {
		if err := s.confirmReplace(ctx, pool); err != nil {
			return nil, err
		}
	}

	tx, err := pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w: %w", err, tuload.ErrLoadFailed)
	}

	committed := false
	defer func() {
		if committed {
			return
		}
		if rbErr := tx.Rollback(ctx); rbErr != nil {
			s.logger.Error("Rollback failed: %v", rbErr)
		}
	}()

	if config.Replace {
		s.logger.Info("Erasing all existing logs from the database...")
		deleted, err := store.DeleteAll(ctx, tx)
		if err != nil {
			return nil, err
		}
		report.Deleted = deleted
		s.logger.Info("Table '%s' cleared (%d row(s)).", tuload.LogTable, deleted)
	}

	s.logger.Info("Fetching student and guardian IDs from the database...")
	ros, err := roster.Build(ctx, tx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", tuload.ErrLoadFailed, err)
	}
	report.StudentsFound = ros.Len()
	s.logger.Info("Found %d students in the database.", ros.Len())
	for _, name := range ros.Conflicts() {
		s.logger.Error("Duplicate first name %q in the students table; rows for it will be skipped.", name)
	}

	if err := s.streamRows(ctx, tx, csvFile, ros, report); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit: %w: %w", err, tuload.ErrLoadFailed)
	}
	committed = true

	s.logger.Info("✓ Inserted %d log(s), skipped %d row(s).", report.Inserted, len(report.Skipped))
	return report, nil
}

// confirmReplace shows the destructive warning (with the current row count)
// and asks the approver.
func (s *LoaderService) confirmReplace(ctx context.Context, pool Pool) error {
	existing, err := store.Count(ctx, pool)
	if err != nil {
		return fmt.Errorf("%w: %w", tuload.ErrLoadFailed, err)
	}

	approved, err := s.approver.RequestApproval(ctx, tuload.LogTable, existing)
	if err != nil {
		return fmt.Errorf("approval request failed: %w", err)
	}
	if !approved {
		return tuload.ErrApprovalDenied
	}
	return nil
}

// streamRows walks the CSV lazily, inserting valid rows and collecting the
// rest as skips.
func (s *LoaderService) streamRows(ctx context.Context, tx pgx.Tx, csvFile io.Reader, ros *roster.Roster, report *tuload.LoadReport) error {
	reader, err := csvlog.NewReader(csvFile, ros)
	if err != nil {
		return err
	}

	for {
		rec, rowErr, err := reader.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		if rowErr != nil {
			s.logger.Info("  - WARNING: Skipping row. %s", rowErr.Detail)
			report.Skipped = append(report.Skipped, rowErr.Skipped())
			continue
		}

		s.logger.Info("  - Inserting log for %s at %s for %s...",
			rec.Subject, rec.StartTime, strings.Join(rec.AttendeeNames, ", "))
		if err := store.Insert(ctx, tx, rec); err != nil {
			return err
		}
		report.Inserted++
	}
}
