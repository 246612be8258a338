// Package server initializes and runs the flight booking server.
// It selects the storage backend, builds the HTTP API and the gRPC health
// endpoint, and handles graceful shutdown.
package server

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/dmitrijs2005/flightbooking/internal/logging"
	"github.com/dmitrijs2005/flightbooking/internal/server/config"
	"github.com/dmitrijs2005/flightbooking/internal/server/db"
	"github.com/dmitrijs2005/flightbooking/internal/server/httpapi"
	"github.com/dmitrijs2005/flightbooking/internal/server/metrics"
	"github.com/dmitrijs2005/flightbooking/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/flightbooking/internal/server/services"

	gs "github.com/dmitrijs2005/flightbooking/internal/server/grpc"
)

const readHeaderTimeout = 10 * time.Second

type App struct {
	config      *config.Config
	logger      logging.Logger
	connections db.ConnectionManager
	handler     http.Handler
	health      *gs.HealthServer
}

func NewApp(c *config.Config) (*App, error) {

	logger := logging.New(os.Stdout, c.LogLevel)

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	var (
		rm repomanager.RepositoryManager
		cm db.ConnectionManager
	)
	switch c.Storage {
	case config.StorageMemory:
		rm = repomanager.NewInMemoryRepositoryManager()
		cm = db.NewInMemoryConnectionManager()
	default:
		rm = repomanager.NewPostgresRepositoryManager()
		cm = db.NewPostgresConnectionManager(c.DatabaseDSN, rm, logger)
	}

	authFactory := services.NewAuthServiceFactory(rm, c, logger)
	flightsFactory := services.NewFlightsServiceFactory(rm, logger)

	handler := httpapi.NewRouter(httpapi.Options{
		Connections:     cm,
		AuthServices:    func(conn *sql.DB) httpapi.AuthService { return authFactory(conn) },
		FlightsServices: func(conn *sql.DB) httpapi.FlightsService { return flightsFactory(conn) },
		Logger:          logger,
		Metrics:         metrics.New(),
	})

	return &App{
		config:      c,
		logger:      logger,
		connections: cm,
		handler:     handler,
		health:      gs.NewHealthServer(c.EndpointAddrGRPC, cm, logger),
	}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {
	srv := &http.Server{
		Addr:              app.config.EndpointAddrHTTP,
		Handler:           app.handler,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	go func() {
		<-ctx.Done()
		app.logger.Info(ctx, "Stopping HTTP server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), app.config.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			app.logger.Error(ctx, "HTTP shutdown error", "error", err)
		}
	}()

	app.logger.Info(ctx, "Starting HTTP server", "address", app.config.EndpointAddrHTTP, "storage", app.config.Storage)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

func (app *App) startGRPCServer(ctx context.Context, cancelFunc context.CancelFunc) {
	if err := app.health.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

// Run serves until ctx is cancelled, a stop signal arrives or a server fails
// to start, then closes the database connection.
func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(2)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()
	go func() {
		defer wg.Done()
		app.startGRPCServer(ctx, cancelFunc)
	}()

	wg.Wait()

	if err := app.connections.Disconnect(context.Background()); err != nil {
		app.logger.Warn(ctx, "Disconnect error", "error", err)
	}
	app.logger.Info(ctx, "App stopped")
}
