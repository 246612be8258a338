// Package repomanager vends repository implementations bound to a database
// handle, so services can be built per request from whatever handle the
// connection manager resolved.
package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/flightbooking/internal/dbx"
	"github.com/dmitrijs2005/flightbooking/internal/server/repositories/flights"
	"github.com/dmitrijs2005/flightbooking/internal/server/repositories/sessions"
	"github.com/dmitrijs2005/flightbooking/internal/server/repositories/users"
)

type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Sessions(db dbx.DBTX) sessions.Repository
	Flights(db dbx.DBTX) flights.Repository
}
