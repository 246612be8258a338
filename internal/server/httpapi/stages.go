package httpapi

import (
	"database/sql"
	"fmt"
	"net/http"

	"github.com/dmitrijs2005/flightbooking/internal/common"
	"github.com/dmitrijs2005/flightbooking/internal/server/db"
	"github.com/dmitrijs2005/flightbooking/internal/server/models"
	"github.com/go-chi/chi/v5"
)

// Stage resolves part of the request state. A non-nil error ends the request.
type Stage func(r *http.Request, st *RequestState) error

// AppState resolves the database handle through the connection manager.
func AppState(cm db.ConnectionManager) Stage {
	return func(r *http.Request, st *RequestState) error {
		return st.db.ensure(func() (*sql.DB, error) {
			conn, err := cm.Connect(r.Context())
			if err != nil {
				return nil, fmt.Errorf("%w: %v", common.ErrorInternal, err)
			}
			return conn, nil
		})
	}
}

// AuthState resolves the auth service. Requires AppState.
func AuthState(factory AuthServiceFactory) Stage {
	return func(r *http.Request, st *RequestState) error {
		return st.authService.ensure(func() (AuthService, error) {
			conn, err := st.db.get()
			if err != nil {
				return nil, err
			}
			return factory(conn), nil
		})
	}
}

// AuthGuard resolves the caller from the request headers. Without a valid
// session it fails with common.ErrorUnauthorized. Requires AuthState.
func AuthGuard() Stage {
	return func(r *http.Request, st *RequestState) error {
		return st.user.ensure(func() (*models.User, error) {
			svc, err := st.authService.get()
			if err != nil {
				return nil, err
			}
			user, err := svc.WhoAmI(r.Context(), r.Header)
			if err != nil {
				return nil, err
			}
			if user == nil {
				return nil, common.ErrorUnauthorized
			}
			return user, nil
		})
	}
}

// FlightsState resolves the flights service. Requires AppState.
func FlightsState(factory FlightsServiceFactory) Stage {
	return func(r *http.Request, st *RequestState) error {
		return st.flightsService.ensure(func() (FlightsService, error) {
			conn, err := st.db.get()
			if err != nil {
				return nil, err
			}
			return factory(conn), nil
		})
	}
}

// FlightIDParam is the route parameter holding a flight identifier.
const FlightIDParam = "flightId"

// flightIDLength is the length of a hex-encoded flight identifier.
const flightIDLength = 24

// ValidFlightID rejects requests whose flight id path parameter does not
// have the identifier length.
func ValidFlightID() Stage {
	return func(r *http.Request, _ *RequestState) error {
		if id := chi.URLParam(r, FlightIDParam); len(id) != flightIDLength {
			return fmt.Errorf("%w: %s must be %d characters", common.ErrorValidation, FlightIDParam, flightIDLength)
		}
		return nil
	}
}
