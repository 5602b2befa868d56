// Package db establishes the destination database connection.
package db

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/efficienttutor/tuload/pkg/tuload"
)

// Connection pool configuration constants
const (
	// DefaultMaxConns is deliberately small: the loader runs everything on
	// a single transaction, so one connection does the work.
	DefaultMaxConns = 2

	// DefaultMinConns maintains at least one connection in the pool.
	DefaultMinConns = 1

	// DefaultMaxConnIdleTime keeps the connection alive for the duration
	// of a long CSV import.
	DefaultMaxConnIdleTime = 30 * time.Minute
)

func configurePool(poolConfig *pgxpool.Config) {
	poolConfig.MaxConns = DefaultMaxConns
	poolConfig.MinConns = DefaultMinConns
	poolConfig.MaxConnIdleTime = DefaultMaxConnIdleTime
	poolConfig.ConnConfig.OnNotice = func(_ *pgconn.PgConn, notice *pgconn.Notice) {
		fmt.Println(notice.Message)
	}
}

// Connect establishes a connection pool from a PostgreSQL connection string
// and verifies it with a ping. The caller owns the pool and must Close it
// on every exit path.
func Connect(ctx context.Context, connStr string) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to parse connection string: %w: %w", err, tuload.ErrConnectionFailed)
	}

	configurePool(poolConfig)

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, wrapConnectionError(err, poolConfig)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, wrapConnectionError(err, poolConfig)
	}

	return pool, nil
}

// wrapConnectionError wraps raw pgx connection errors with actionable guidance.
func wrapConnectionError(err error, poolConfig *pgxpool.Config) error {
	errStr := strings.ToLower(err.Error())
	host := poolConfig.ConnConfig.Host
	port := poolConfig.ConnConfig.Port
	database := poolConfig.ConnConfig.Database
	addr := fmt.Sprintf("%s:%d", host, port)

	switch {
	case strings.Contains(errStr, "connection refused") || strings.Contains(errStr, "actively refused"):
		return fmt.Errorf(`connection refused to %s

Possible causes:
  - PostgreSQL is not running (check: pg_isready -h %s -p %d)
  - Wrong host or port in DATABASE_URL
  - Firewall blocking the connection

Original error: %w: %w`, addr, host, port, err, tuload.ErrConnectionFailed)

	case strings.Contains(errStr, "no such host") || strings.Contains(errStr, "no host"):
		return fmt.Errorf(`cannot resolve host "%s"

Possible causes:
  - Hostname is misspelled in DATABASE_URL
  - DNS is not configured or reachable
  - Network connection issue

Original error: %w: %w`, host, err, tuload.ErrConnectionFailed)

	case strings.Contains(errStr, "password authentication failed"):
		return fmt.Errorf(`password authentication failed for database "%s"

Possible causes:
  - Wrong password in DATABASE_URL
  - Wrong username
  - User does not have access to the database

Original error: %w: %w`, database, err, tuload.ErrConnectionFailed)

	case strings.Contains(errStr, "timeout") || strings.Contains(errStr, "timed out"):
		return fmt.Errorf(`connection timed out to %s

Possible causes:
  - Server is overloaded or unresponsive
  - Network latency or packet loss
  - Firewall silently dropping packets

Original error: %w: %w`, addr, err, tuload.ErrConnectionFailed)

	default:
		return fmt.Errorf("failed to connect to database: %w: %w", err, tuload.ErrConnectionFailed)
	}
}
