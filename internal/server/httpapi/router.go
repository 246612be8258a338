package httpapi

import (
	"net/http"

	"github.com/dmitrijs2005/flightbooking/internal/logging"
	"github.com/dmitrijs2005/flightbooking/internal/server/db"
	"github.com/dmitrijs2005/flightbooking/internal/server/metrics"
	"github.com/go-chi/chi/v5"
)

// Options holds what the router needs from the application.
type Options struct {
	Connections     db.ConnectionManager
	AuthServices    AuthServiceFactory
	FlightsServices FlightsServiceFactory
	Logger          logging.Logger
	// Metrics is optional. When set, requests are instrumented and
	// GET /metrics is served.
	Metrics *metrics.Metrics
}

// NewRouter wires the HTTP surface:
//
//	POST   /auth/signup          create an account
//	POST   /auth                 sign in, returns {token}
//	GET    /auth/me              current user
//	DELETE /auth                 sign out
//	GET    /flights              list own flights
//	POST   /flights              create a flight
//	GET    /flights/{flightId}   read a flight
//	PATCH  /flights/{flightId}   replace a flight
//	DELETE /flights/{flightId}   delete a flight
//	GET    /health               database reachability
//
// Every API request runs AppState and AuthState. /flights additionally runs
// AuthGuard and FlightsState, and the routes with an id validate it.
func NewRouter(o Options) http.Handler {
	logger := o.Logger
	if logger == nil {
		logger = logging.Nop()
	}

	translator := func(resource string) *ErrorTranslator {
		t := NewErrorTranslator(resource, logger)
		if o.Metrics != nil {
			t.WithObserver(o.Metrics)
		}
		return t
	}

	v := NewValidator()
	root := NewPipeline(translator("app"), AppState(o.Connections), AuthState(o.AuthServices))
	authPipeline := root.WithErrors(translator("auth"))
	flightsPipeline := root.WithErrors(translator("flights")).Then(AuthGuard(), FlightsState(o.FlightsServices))
	flightPipeline := flightsPipeline.Then(ValidFlightID())

	authCtx := (*RequestState).AuthContext
	flightsCtx := (*RequestState).FlightsContext

	r := chi.NewRouter()
	r.Use(RequestLogger(logger))
	if o.Metrics != nil {
		r.Use(o.Metrics.InstrumentHandler)
	}
	r.Use(Recoverer(logger))

	if o.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", o.Metrics.Handler())
	}
	r.Get("/health", healthHandler(o.Connections, logger))

	ah := &authHandlers{validator: v}
	r.Route("/auth", func(r chi.Router) {
		r.Post("/signup", Endpoint(authPipeline, authCtx, ah.signup()))
		r.Post("/", Endpoint(authPipeline, authCtx, ah.signin()))
		r.Delete("/", Endpoint(authPipeline, authCtx, ah.signOut))
		r.Get("/me", Endpoint(authPipeline, authCtx, ah.whoAmI))
	})

	fh := &flightsHandlers{validator: v}
	r.Route("/flights", func(r chi.Router) {
		r.Get("/", Endpoint(flightsPipeline, flightsCtx, fh.list))
		r.Post("/", Endpoint(flightsPipeline, flightsCtx, fh.create()))
		r.Get("/{"+FlightIDParam+"}", Endpoint(flightPipeline, flightsCtx, fh.get))
		r.Patch("/{"+FlightIDParam+"}", Endpoint(flightPipeline, flightsCtx, fh.update()))
		r.Delete("/{"+FlightIDParam+"}", Endpoint(flightPipeline, flightsCtx, fh.remove))
	})

	return r
}
