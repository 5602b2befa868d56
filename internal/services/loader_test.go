package services

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/efficienttutor/tuload/pkg/tuload"
)

const csvHeader = "date,start_time,end_time,subject,attendees,cost_per_hour,lesson_index\n"

func writeCSV(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tuition_logs.csv")
	require.NoError(t, os.WriteFile(path, []byte(csvHeader+body), 0644))
	return path
}

func newTestLoader(t *testing.T, approver tuload.Approver) (*LoaderService, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)

	connect := func(_ context.Context, _ string) (Pool, error) {
		return mock, nil
	}
	return NewLoaderService(connect, approver, &mockLogger{}), mock
}

func expectStudents(mock pgxmock.PgxPoolIface, rows *pgxmock.Rows) {
	mock.ExpectQuery(`SELECT id::text, user_id::text, first_name FROM students`).WillReturnRows(rows)
}

func milaOnly() *pgxmock.Rows {
	return pgxmock.NewRows([]string{"id", "user_id", "first_name"}).
		AddRow("sid", "gid", "Mila")
}

func TestLoader_InvalidConfig(t *testing.T) {
	svc, _ := newTestLoader(t, &mockApprover{})

	_, err := svc.Load(context.Background(), tuload.LoadConfig{})
	assert.True(t, errors.Is(err, tuload.ErrInvalidConfig), "expected ErrInvalidConfig, got: %v", err)
}

func TestLoader_CSVMissing(t *testing.T) {
	connectCalled := false
	connect := func(_ context.Context, _ string) (Pool, error) {
		connectCalled = true
		return nil, errors.New("should not connect")
	}
	svc := NewLoaderService(connect, &mockApprover{}, &mockLogger{})

	_, err := svc.Load(context.Background(), tuload.LoadConfig{
		ConnectionString: "postgres://localhost/db",
		CSVPath:          filepath.Join(t.TempDir(), "nope.csv"),
	})
	assert.True(t, errors.Is(err, tuload.ErrCSVNotFound), "expected ErrCSVNotFound, got: %v", err)
	assert.False(t, connectCalled, "a missing CSV must not open a connection")
}

func TestLoader_ReplaceDeclined(t *testing.T) {
	approver := &mockApprover{approved: false}
	svc, mock := newTestLoader(t, approver)

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM tuition_logs`).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(int64(5)))

	report, err := svc.Load(context.Background(), tuload.LoadConfig{
		ConnectionString: "postgres://localhost/db",
		CSVPath:          writeCSV(t, "2025-09-04,10:00,11:30,Math,Mila,60.00,1\n"),
		Replace:          true,
	})
	assert.True(t, errors.Is(err, tuload.ErrApprovalDenied), "expected ErrApprovalDenied, got: %v", err)
	assert.Nil(t, report)
	assert.Equal(t, tuload.LogTable, approver.gotTable)
	assert.Equal(t, int64(5), approver.gotExisting)

	// No transaction, no delete, no insert.
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestLoader_ReplaceHappyPath(t *testing.T) {
	approver := &mockApprover{approved: true}
	svc, mock := newTestLoader(t, approver)

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM tuition_logs`).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(int64(3)))
	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM tuition_logs`).
		WillReturnResult(pgxmock.NewResult("DELETE", 3))
	expectStudents(mock, milaOnly())
	lessonIndex := 1
	mock.ExpectExec(`INSERT INTO tuition_logs`).
		WithArgs("gid", "Math", []string{"Mila"}, &lessonIndex, 60.0, "2025-09-04 10:00", "2025-09-04 11:30").
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectCommit()

	report, err := svc.Load(context.Background(), tuload.LoadConfig{
		ConnectionString: "postgres://localhost/db",
		CSVPath: writeCSV(t,
			`2025-09-04,10:00,11:30,Math,"Mila",60.00,1`+"\n"+
				"2025-09-05,10:00,11:00,Math,Stranger,50,\n"),
		Replace: true,
	})
	require.NoError(t, err)
	require.NotNil(t, report)

	assert.True(t, report.Replaced)
	assert.Equal(t, int64(3), report.Deleted)
	assert.Equal(t, 1, report.StudentsFound)
	assert.Equal(t, 1, report.Inserted)
	require.Len(t, report.Skipped, 1)
	assert.Equal(t, tuload.SkipUnknownAttendee, report.Skipped[0].Kind)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestLoader_AdditiveSkipsConfirmationAndDelete(t *testing.T) {
	approver := &mockApprover{approved: false}
	svc, mock := newTestLoader(t, approver)

	mock.ExpectBegin()
	expectStudents(mock, milaOnly())
	mock.ExpectExec(`INSERT INTO tuition_logs`).
		WithArgs("gid", "Physics", []string{"Mila"}, (*int)(nil), 55.0, "2025-09-01 19:00", "2025-09-01 20:00").
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectCommit()

	report, err := svc.Load(context.Background(), tuload.LoadConfig{
		ConnectionString: "postgres://localhost/db",
		CSVPath:          writeCSV(t, "2025-09-01,19:00,20:00,Physics,Mila,55,\n"),
	})
	require.NoError(t, err)

	assert.False(t, approver.called, "additive mode must not prompt")
	assert.False(t, report.Replaced)
	assert.Equal(t, int64(0), report.Deleted)
	assert.Equal(t, 1, report.Inserted)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestLoader_InsertFailureRollsBack(t *testing.T) {
	svc, mock := newTestLoader(t, &mockApprover{})

	mock.ExpectBegin()
	expectStudents(mock, milaOnly())
	mock.ExpectExec(`INSERT INTO tuition_logs`).
		WithArgs("gid", "Alchemy", []string{"Mila"}, (*int)(nil), 50.0, "2025-09-01 10:00", "2025-09-01 11:00").
		WillReturnError(errors.New(`invalid input value for enum subject: "Alchemy"`))
	mock.ExpectRollback()

	report, err := svc.Load(context.Background(), tuload.LoadConfig{
		ConnectionString: "postgres://localhost/db",
		CSVPath:          writeCSV(t, "2025-09-01,10:00,11:00,Alchemy,Mila,50,\n"),
	})
	assert.True(t, errors.Is(err, tuload.ErrLoadFailed), "expected ErrLoadFailed, got: %v", err)
	assert.Nil(t, report)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestLoader_AmbiguousAttendeeSkipsRow(t *testing.T) {
	svc, mock := newTestLoader(t, &mockApprover{})

	mock.ExpectBegin()
	expectStudents(mock, pgxmock.NewRows([]string{"id", "user_id", "first_name"}).
		AddRow("s-1", "g-1", "Mila").
		AddRow("s-2", "g-2", "Mila"))
	mock.ExpectCommit()

	report, err := svc.Load(context.Background(), tuload.LoadConfig{
		ConnectionString: "postgres://localhost/db",
		CSVPath:          writeCSV(t, "2025-09-01,10:00,11:00,Math,Mila,50,\n"),
	})
	require.NoError(t, err)

	assert.Equal(t, 0, report.Inserted)
	require.Len(t, report.Skipped, 1)
	assert.Equal(t, tuload.SkipAmbiguousAttendee, report.Skipped[0].Kind)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestLoader_RowWarningsDoNotAbortRun(t *testing.T) {
	svc, mock := newTestLoader(t, &mockApprover{})

	mock.ExpectBegin()
	expectStudents(mock, milaOnly())
	mock.ExpectExec(`INSERT INTO tuition_logs`).
		WithArgs("gid", "Math", []string{"Mila"}, (*int)(nil), 60.0, "2025-09-03 10:00", "2025-09-03 11:00").
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectCommit()

	report, err := svc.Load(context.Background(), tuload.LoadConfig{
		ConnectionString: "postgres://localhost/db",
		CSVPath: writeCSV(t,
			"2025-09-01,10:00,11:00,Math,Mila,not-a-number,\n"+
				"2025-09-02,10:00,11:00,Math,Mila,60,one\n"+
				"2025-09-03,10:00,11:00,Math,Mila,60,\n"),
	})
	require.NoError(t, err)

	assert.Equal(t, 1, report.Inserted)
	require.Len(t, report.Skipped, 2)
	assert.Equal(t, tuload.SkipBadCost, report.Skipped[0].Kind)
	assert.Equal(t, tuload.SkipBadLessonIndex, report.Skipped[1].Kind)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestNewLoaderService_NilDependenciesPanic(t *testing.T) {
	connect := func(_ context.Context, _ string) (Pool, error) { return nil, nil }

	assert.Panics(t, func() { NewLoaderService(nil, &mockApprover{}, &mockLogger{}) })
	assert.Panics(t, func() { NewLoaderService(connect, nil, &mockLogger{}) })
	assert.Panics(t, func() { NewLoaderService(connect, &mockApprover{}, nil) })
}
