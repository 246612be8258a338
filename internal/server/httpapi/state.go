package httpapi

import (
	"database/sql"
	"errors"

	"github.com/dmitrijs2005/flightbooking/internal/server/models"
)

// ErrMissingDependency means a stage or handler ran before the stage that
// resolves what it needs. It is a wiring bug, not one of the common error
// kinds.
var ErrMissingDependency = errors.New("request state: dependency not resolved")

// slot holds one lazily resolved value. set distinguishes a resolved zero
// value (such as the nil handle of the in-memory store) from an empty slot.
type slot[T any] struct {
	value T
	set   bool
}

// ensure runs factory only while the slot is empty. A failing factory leaves
// the slot empty.
func (s *slot[T]) ensure(factory func() (T, error)) error {
	if s.set {
		return nil
	}
	v, err := factory()
	if err != nil {
		return err
	}
	s.value, s.set = v, true
	return nil
}

func (s *slot[T]) get() (T, error) {
	if !s.set {
		var zero T
		return zero, ErrMissingDependency
	}
	return s.value, nil
}

// RequestState collects the dependencies resolved for a single request.
// It is created empty when the request arrives and dropped when it ends.
// Each slot is written at most once.
type RequestState struct {
	db             slot[*sql.DB]
	authService    slot[AuthService]
	user           slot[*models.User]
	flightsService slot[FlightsService]
}

// NewRequestState returns an empty state.
func NewRequestState() *RequestState {
	return &RequestState{}
}

// AuthContext is what /auth handlers receive.
type AuthContext struct {
	AuthService AuthService
}

// FlightsContext is what /flights handlers receive. User is always the
// authenticated caller.
type FlightsContext struct {
	User           models.User
	FlightsService FlightsService
}

// AuthContext builds the handler context for /auth routes.
func (s *RequestState) AuthContext() (AuthContext, error) {
	svc, err := s.authService.get()
	if err != nil {
		return AuthContext{}, err
	}
	return AuthContext{AuthService: svc}, nil
}

// FlightsContext builds the handler context for /flights routes.
func (s *RequestState) FlightsContext() (FlightsContext, error) {
	user, err := s.user.get()
	if err != nil {
		return FlightsContext{}, err
	}
	svc, err := s.flightsService.get()
	if err != nil {
		return FlightsContext{}, err
	}
	return FlightsContext{User: *user, FlightsService: svc}, nil
}
