// Package flights persists flights. Every lookup, update and delete filters
// by both flight id and owner, so a flight owned by someone else behaves
// exactly like a missing one.
package flights

import (
	"context"

	"github.com/dmitrijs2005/flightbooking/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, flight *models.Flight) error
	FindAllByUser(ctx context.Context, userID string) ([]*models.Flight, error)
	FindByIDAndUser(ctx context.Context, id string, userID string) (*models.Flight, error)
	UpdateByIDAndUser(ctx context.Context, id string, userID string, payload models.FlightPayload) (*models.Flight, error)
	DeleteByIDAndUser(ctx context.Context, id string, userID string) error
}
