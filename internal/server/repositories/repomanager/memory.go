package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/flightbooking/internal/dbx"
	"github.com/dmitrijs2005/flightbooking/internal/server/repositories/flights"
	"github.com/dmitrijs2005/flightbooking/internal/server/repositories/memory"
	"github.com/dmitrijs2005/flightbooking/internal/server/repositories/sessions"
	"github.com/dmitrijs2005/flightbooking/internal/server/repositories/users"
)

// InMemoryRepositoryManager serves every repository from one shared
// memory.Store. The db handle is ignored and may be nil.
type InMemoryRepositoryManager struct {
	store *memory.Store
}

func (m *InMemoryRepositoryManager) RunMigrations(context.Context, *sql.DB) error {
	return nil
}

func (m *InMemoryRepositoryManager) Users(dbx.DBTX) users.Repository {
	return m.store.Users()
}

func (m *InMemoryRepositoryManager) Sessions(dbx.DBTX) sessions.Repository {
	return m.store.Sessions()
}

func (m *InMemoryRepositoryManager) Flights(dbx.DBTX) flights.Repository {
	return m.store.Flights()
}

func NewInMemoryRepositoryManager() RepositoryManager {
	return &InMemoryRepositoryManager{store: memory.NewStore()}
}
