package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"
)

// Pool settings for the history store. Traffic is one insert per return, so
// the pool stays small.
const (
	maxOpenConns    = 5
	maxIdleConns    = 2
	connMaxLifetime = 5 * time.Minute
	connMaxIdleTime = 2 * time.Minute
)

// NewPostgresDB opens a pool to dataSourceName and pings it within timeout.
// It returns a ready *sql.DB or an error naming the failed step; on a failed
// ping the pool is closed before returning.
func NewPostgresDB(ctx context.Context, dataSourceName string, timeout time.Duration) (*sql.DB, error) {
	// 1. Open the pool (no connection is made yet)
	db, err := sql.Open("postgres", dataSourceName)
	if err != nil {
		return nil, fmt.Errorf("failed to open postgres connection: %w", err)
	}

	// 2. Pool limits
	Configure(db)

	// 3. Ping, so bad credentials or an unreachable server fail at startup
	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping postgres: %w", err)
	}

	return db, nil
}

// Configure applies the pool limits to db:
// MaxOpenConns caps concurrent connections, MaxIdleConns keeps a few warm,
// and the lifetime settings recycle connections dropped by firewalls.
func Configure(db *sql.DB) {
	db.SetMaxOpenConns(maxOpenConns)
	db.SetMaxIdleConns(maxIdleConns)
	db.SetConnMaxLifetime(connMaxLifetime)
	db.SetConnMaxIdleTime(connMaxIdleTime)
}
