package db

import (
	"context"
	"database/sql"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/flightbooking/internal/common"
	"github.com/dmitrijs2005/flightbooking/internal/logging"
	_ "github.com/jackc/pgx/v5/stdlib"
)

// sqlOpen is a seam for tests.
var sqlOpen = sql.Open

// PostgresConnectionManager opens a pgx-backed *sql.DB on first Connect and
// runs migrations once per process.
type PostgresConnectionManager struct {
	dsn      string
	migrator Migrator
	logger   logging.Logger

	mu       sync.Mutex
	db       *sql.DB
	migrated bool
}

func NewPostgresConnectionManager(dsn string, migrator Migrator, logger logging.Logger) *PostgresConnectionManager {
	return &PostgresConnectionManager{
		dsn:      dsn,
		migrator: migrator,
		logger:   logger.With("module", "connection_manager"),
	}
}

// Connect returns the cached handle or opens, pings and migrates a new one.
// Failures are reported as common.ErrorInternal.
func (m *PostgresConnectionManager) Connect(ctx context.Context) (*sql.DB, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.db != nil {
		return m.db, nil
	}

	db, err := sqlOpen("pgx", m.dsn)
	if err != nil {
		return nil, fmt.Errorf("%w: db open: %v", common.ErrorInternal, err)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%w: db ping: %v", common.ErrorInternal, err)
	}

	if !m.migrated {
		if err := m.migrator.RunMigrations(ctx, db); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("%w: migrations: %v", common.ErrorInternal, err)
		}
		m.migrated = true
	}

	m.logger.Info(ctx, "Database connection established")
	m.db = db
	return db, nil
}

// Disconnect closes the handle, if any, and forgets it.
func (m *PostgresConnectionManager) Disconnect(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.db == nil {
		return nil
	}

	err := m.db.Close()
	m.db = nil
	if err != nil {
		return fmt.Errorf("%w: db close: %v", common.ErrorInternal, err)
	}

	m.logger.Info(ctx, "Database connection closed")
	return nil
}

// Ping connects if needed and checks the database is reachable.
func (m *PostgresConnectionManager) Ping(ctx context.Context) error {
	db, err := m.Connect(ctx)
	if err != nil {
		return err
	}
	if err := db.PingContext(ctx); err != nil {
		return fmt.Errorf("%w: db ping: %v", common.ErrorInternal, err)
	}
	return nil
}
