// Package sessions persists signed-in sessions referenced by bearer tokens.
package sessions

import (
	"context"
	"time"

	"github.com/dmitrijs2005/flightbooking/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, userID string, sessionID string, validity time.Duration) (*models.Session, error)
	Find(ctx context.Context, sessionID string) (*models.Session, error)
	Delete(ctx context.Context, sessionID string) error
}
