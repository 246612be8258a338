// Package grpc serves the standard grpc.health.v1 service, reporting whether
// the database behind the API is reachable.
package grpc

import (
	"context"
	"net"
	"time"

	"github.com/dmitrijs2005/flightbooking/internal/logging"
	"github.com/dmitrijs2005/flightbooking/internal/server/db"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

// ServiceName is the health service name reported next to the overall ("") status.
const ServiceName = "flightbooking.API"

const (
	defaultInterval = 5 * time.Second
	pingTimeout     = 2 * time.Second
)

type HealthServer struct {
	address     string
	connections db.ConnectionManager
	logger      logging.Logger
	interval    time.Duration
	health      *health.Server
}

func NewHealthServer(a string, cm db.ConnectionManager, l logging.Logger) *HealthServer {
	return &HealthServer{
		address:     a,
		connections: cm,
		logger:      l.With("module", "grpc_server"),
		interval:    defaultInterval,
		health:      health.NewServer(),
	}
}

// WithInterval sets how often the database is probed.
func (s *HealthServer) WithInterval(d time.Duration) *HealthServer {
	s.interval = d
	return s
}

// Run listens on the configured address and serves until ctx is cancelled.
func (s *HealthServer) Run(ctx context.Context) error {

	// announces address
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}

	return s.Serve(ctx, listen)
}

// Serve serves on lis until ctx is cancelled.
func (s *HealthServer) Serve(ctx context.Context, lis net.Listener) error {
	srv := grpc.NewServer(grpc.ChainUnaryInterceptor(s.loggingInterceptor))
	healthpb.RegisterHealthServer(srv, s.health)

	s.probe(ctx)
	go s.watch(ctx)

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping gRPC server...")
		s.health.Shutdown()
		srv.GracefulStop()
	}()

	s.logger.Info(ctx, "Starting gRPC server", "address", lis.Addr().String())

	// starts accepting incoming connections
	if err := srv.Serve(lis); err != nil {
		return err
	}

	return nil
}

func (s *HealthServer) watch(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.probe(ctx)
		}
	}
}

// probe pings the database and publishes the result for both names.
func (s *HealthServer) probe(ctx context.Context) {
	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	status := healthpb.HealthCheckResponse_SERVING
	if err := s.connections.Ping(pingCtx); err != nil {
		if ctx.Err() != nil {
			return
		}
		s.logger.Warn(ctx, "Database unreachable", "error", err)
		status = healthpb.HealthCheckResponse_NOT_SERVING
	}

	s.health.SetServingStatus("", status)
	s.health.SetServingStatus(ServiceName, status)
}
