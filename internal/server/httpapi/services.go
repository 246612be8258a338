// Package httpapi is the HTTP surface of the server. Every request runs an
// explicit pipeline of stages that resolve its dependencies into a
// RequestState, then a handler that receives a fully built, typed context.
// Any error from a stage or handler stops the pipeline and is written by the
// ErrorTranslator of the route group.
package httpapi

import (
	"context"
	"database/sql"
	"net/http"

	"github.com/dmitrijs2005/flightbooking/internal/server/models"
)

// AuthService is the authentication API the handlers and AuthGuard depend on.
type AuthService interface {
	Signup(ctx context.Context, account models.Account) (*models.User, error)
	Signin(ctx context.Context, credentials models.Credentials) (*models.Token, error)
	WhoAmI(ctx context.Context, headers http.Header) (*models.User, error)
	SignOut(ctx context.Context, headers http.Header) error
}

// FlightsService is the flight management API the handlers depend on.
type FlightsService interface {
	RetrieveAllFlights(ctx context.Context, userID string) ([]*models.Flight, error)
	RetrieveFlight(ctx context.Context, flightID, userID string) (*models.Flight, error)
	UpdateFlight(ctx context.Context, flightID, userID string, payload models.FlightPayload) (*models.Flight, error)
	DeleteFlight(ctx context.Context, flightID, userID string) error
	CreateFlight(ctx context.Context, userID string, payload models.FlightPayload) (*models.Flight, error)
}

// AuthServiceFactory builds an AuthService on top of a database handle.
type AuthServiceFactory func(db *sql.DB) AuthService

// FlightsServiceFactory builds a FlightsService on top of a database handle.
type FlightsServiceFactory func(db *sql.DB) FlightsService
