package db

import (
	"context"
	"database/sql"
)

// InMemoryConnectionManager is used with the in-memory repositories, which
// need no handle. Connect always returns nil.
type InMemoryConnectionManager struct{}

func NewInMemoryConnectionManager() *InMemoryConnectionManager {
	return &InMemoryConnectionManager{}
}

func (InMemoryConnectionManager) Connect(context.Context) (*sql.DB, error) { return nil, nil }
func (InMemoryConnectionManager) Disconnect(context.Context) error         { return nil }
func (InMemoryConnectionManager) Ping(context.Context) error               { return nil }
