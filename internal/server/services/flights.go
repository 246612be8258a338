package services

import (
	"context"
	"database/sql"
	"errors"

	"github.com/dmitrijs2005/flightbooking/internal/common"
	"github.com/dmitrijs2005/flightbooking/internal/logging"
	"github.com/dmitrijs2005/flightbooking/internal/server/models"
	"github.com/dmitrijs2005/flightbooking/internal/server/repositories/flights"
	"github.com/dmitrijs2005/flightbooking/internal/server/repositories/repomanager"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// FlightsService manages flights on behalf of their owner. Every operation
// other than create and list is scoped by (flight id, user id); flights of
// other users are reported as common.ErrorNotFound.
type FlightsService struct {
	flights flights.Repository
	logger  logging.Logger
}

// NewFlightsService constructs a FlightsService over a flights repository.
func NewFlightsService(r flights.Repository, l logging.Logger) *FlightsService {
	return &FlightsService{flights: r, logger: l.With("module", "flights_service")}
}

// NewFlightsServiceFactory returns a constructor building a FlightsService on
// top of the given database handle.
func NewFlightsServiceFactory(m repomanager.RepositoryManager, l logging.Logger) func(db *sql.DB) *FlightsService {
	return func(db *sql.DB) *FlightsService {
		return NewFlightsService(m.Flights(db), l)
	}
}

func (s *FlightsService) RetrieveAllFlights(ctx context.Context, userID string) ([]*models.Flight, error) {
	s.logger.Debug(ctx, "Retrieve all flights", "user_id", userID)

	result, err := s.flights.FindAllByUser(ctx, userID)
	if err != nil {
		return nil, s.normalize(ctx, "retrieve all", err)
	}

	s.logger.Info(ctx, "All flights retrieved", "user_id", userID, "count", len(result))
	return result, nil
}

func (s *FlightsService) RetrieveFlight(ctx context.Context, flightID, userID string) (*models.Flight, error) {
	s.logger.Debug(ctx, "Retrieve a flight", "flight_id", flightID, "user_id", userID)

	id, err := s.parseID(ctx, flightID)
	if err != nil {
		return nil, err
	}

	f, err := s.flights.FindByIDAndUser(ctx, id, userID)
	if err != nil {
		return nil, s.normalize(ctx, "retrieve", err, "flight_id", id, "user_id", userID)
	}

	s.logger.Info(ctx, "Flight retrieved", "flight_id", f.ID)
	return f, nil
}

// UpdateFlight replaces every mutable field of the flight with payload.
func (s *FlightsService) UpdateFlight(ctx context.Context, flightID, userID string, payload models.FlightPayload) (*models.Flight, error) {
	s.logger.Debug(ctx, "Update a flight", "flight_id", flightID, "user_id", userID)

	id, err := s.parseID(ctx, flightID)
	if err != nil {
		return nil, err
	}

	f, err := s.flights.UpdateByIDAndUser(ctx, id, userID, payload)
	if err != nil {
		return nil, s.normalize(ctx, "update", err, "flight_id", id, "user_id", userID)
	}

	s.logger.Info(ctx, "Flight updated", "flight_id", f.ID)
	return f, nil
}

func (s *FlightsService) DeleteFlight(ctx context.Context, flightID, userID string) error {
	s.logger.Debug(ctx, "Delete a flight", "flight_id", flightID, "user_id", userID)

	id, err := s.parseID(ctx, flightID)
	if err != nil {
		return err
	}

	if err := s.flights.DeleteByIDAndUser(ctx, id, userID); err != nil {
		return s.normalize(ctx, "delete", err, "flight_id", id, "user_id", userID)
	}

	s.logger.Info(ctx, "Flight deleted", "flight_id", id, "user_id", userID)
	return nil
}

// CreateFlight assigns a fresh 24-hex-character id and tags the flight with userID.
func (s *FlightsService) CreateFlight(ctx context.Context, userID string, payload models.FlightPayload) (*models.Flight, error) {
	s.logger.Debug(ctx, "Create a flight", "user_id", userID)

	f := &models.Flight{ID: primitive.NewObjectID().Hex(), UserID: userID}
	payload.Apply(f)

	if err := s.flights.Create(ctx, f); err != nil {
		return nil, s.normalize(ctx, "create", err, "user_id", userID)
	}

	s.logger.Info(ctx, "Flight created", "flight_id", f.ID, "user_id", userID)
	return f, nil
}

// parseID rejects identifiers that are not 24 hex characters. The failure is
// reported as an internal error, matching how the store treats a bad key.
func (s *FlightsService) parseID(ctx context.Context, flightID string) (string, error) {
	oid, err := primitive.ObjectIDFromHex(flightID)
	if err != nil {
		s.logger.Error(ctx, "Malformed flight id", "flight_id", flightID, "error", err)
		return "", common.ErrorInternal
	}
	return oid.Hex(), nil
}

// normalize lets common.ErrorNotFound through and turns everything else into
// common.ErrorInternal.
func (s *FlightsService) normalize(ctx context.Context, op string, err error, args ...any) error {
	if errors.Is(err, common.ErrorNotFound) {
		s.logger.Warn(ctx, "Flight not found", append([]any{"op", op}, args...)...)
		return common.ErrorNotFound
	}
	if errors.Is(err, common.ErrorUnauthorized) {
		return err
	}
	s.logger.Error(ctx, "Flight operation failed", append([]any{"op", op, "error", err}, args...)...)
	return common.ErrorInternal
}
