// Package memory provides map-backed implementations of the repositories.
// It backs the "memory" storage mode and tests that need real behaviour
// without a database.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/dmitrijs2005/flightbooking/internal/common"
	"github.com/dmitrijs2005/flightbooking/internal/server/models"
)

// Store holds all records. It is safe for concurrent use.
type Store struct {
	mu       sync.RWMutex
	users    map[string]models.User
	sessions map[string]models.Session
	flights  map[string]models.Flight
}

func NewStore() *Store {
	return &Store{
		users:    make(map[string]models.User),
		sessions: make(map[string]models.Session),
		flights:  make(map[string]models.Flight),
	}
}

// UserRepository is the users view of a Store.
type UserRepository struct{ s *Store }

// SessionRepository is the sessions view of a Store.
type SessionRepository struct{ s *Store }

// FlightRepository is the flights view of a Store.
type FlightRepository struct{ s *Store }

func (s *Store) Users() *UserRepository       { return &UserRepository{s: s} }
func (s *Store) Sessions() *SessionRepository { return &SessionRepository{s: s} }
func (s *Store) Flights() *FlightRepository   { return &FlightRepository{s: s} }

func (r *UserRepository) Create(_ context.Context, user *models.User) (*models.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, u := range r.s.users {
		if u.Username == user.Username || u.Email == user.Email {
			return nil, common.ErrorAlreadyExists
		}
	}
	user.CreatedAt = time.Now().UTC()
	r.s.users[user.ID] = *user
	return user, nil
}

func (r *UserRepository) GetByUsername(_ context.Context, username string) (*models.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, u := range r.s.users {
		if u.Username == username {
			return &u, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (r *UserRepository) GetByID(_ context.Context, id string) (*models.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	u, ok := r.s.users[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return &u, nil
}

func (r *SessionRepository) Create(_ context.Context, userID string, sessionID string, validity time.Duration) (*models.Session, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	now := time.Now()
	s := models.Session{ID: sessionID, UserID: userID, ExpiresAt: now.Add(validity), CreatedAt: now}
	r.s.sessions[sessionID] = s
	return &s, nil
}

func (r *SessionRepository) Find(_ context.Context, sessionID string) (*models.Session, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	s, ok := r.s.sessions[sessionID]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return &s, nil
}

func (r *SessionRepository) Delete(_ context.Context, sessionID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	delete(r.s.sessions, sessionID)
	return nil
}

func (r *FlightRepository) Create(_ context.Context, flight *models.Flight) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	r.s.flights[flight.ID] = *flight
	return nil
}

func (r *FlightRepository) FindAllByUser(_ context.Context, userID string) ([]*models.Flight, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	result := make([]*models.Flight, 0)
	for _, f := range r.s.flights {
		if f.UserID == userID {
			result = append(result, &f)
		}
	}
	return result, nil
}

func (r *FlightRepository) FindByIDAndUser(_ context.Context, id string, userID string) (*models.Flight, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	f, ok := r.s.flights[id]
	if !ok || f.UserID != userID {
		return nil, common.ErrorNotFound
	}
	return &f, nil
}

func (r *FlightRepository) UpdateByIDAndUser(_ context.Context, id string, userID string, p models.FlightPayload) (*models.Flight, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	f, ok := r.s.flights[id]
	if !ok || f.UserID != userID {
		return nil, common.ErrorNotFound
	}
	p.Apply(&f)
	r.s.flights[id] = f
	return &f, nil
}

func (r *FlightRepository) DeleteByIDAndUser(_ context.Context, id string, userID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	f, ok := r.s.flights[id]
	if !ok || f.UserID != userID {
		return common.ErrorNotFound
	}
	delete(r.s.flights, id)
	return nil
}
