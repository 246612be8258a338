// Package db owns the lifecycle of the single database handle shared by all
// requests.
package db

import (
	"context"
	"database/sql"
)

// ConnectionManager lazily opens the database handle and hands the same
// handle to every caller until Disconnect resets it.
type ConnectionManager interface {
	// Connect returns the live handle, opening it on first use.
	Connect(ctx context.Context) (*sql.DB, error)
	// Disconnect closes the handle. A later Connect opens a new one.
	Disconnect(ctx context.Context) error
	// Ping reports whether the database is reachable.
	Ping(ctx context.Context) error
}

// Migrator applies the schema to a freshly opened handle.
type Migrator interface {
	RunMigrations(ctx context.Context, db *sql.DB) error
}
