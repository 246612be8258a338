// Package services contains server-side business logic. This file implements
// AuthService, which fronts the identity provider and reduces its failures to
// the common error kinds.
package services

import (
	"context"
	"database/sql"
	"errors"
	"net/http"

	"github.com/dmitrijs2005/flightbooking/internal/common"
	"github.com/dmitrijs2005/flightbooking/internal/logging"
	"github.com/dmitrijs2005/flightbooking/internal/server/config"
	"github.com/dmitrijs2005/flightbooking/internal/server/identity"
	"github.com/dmitrijs2005/flightbooking/internal/server/models"
	"github.com/dmitrijs2005/flightbooking/internal/server/repositories/repomanager"
)

// AuthService provides authentication-related operations:
// - Signup: create users
// - Signin: verify credentials and open a session
// - WhoAmI: resolve the user behind a bearer token
// - SignOut: close the session behind a bearer token
type AuthService struct {
	provider identity.Provider
	logger   logging.Logger
}

// NewAuthService constructs an AuthService over an identity provider.
func NewAuthService(p identity.Provider, l logging.Logger) *AuthService {
	return &AuthService{provider: p, logger: l.With("module", "auth_service")}
}

// NewAuthServiceFactory returns a constructor building an AuthService on top
// of the given database handle, backed by the local identity provider.
func NewAuthServiceFactory(m repomanager.RepositoryManager, cfg *config.Config, l logging.Logger) func(db *sql.DB) *AuthService {
	return func(db *sql.DB) *AuthService {
		p := identity.NewLocalProvider(m.Users(db), m.Sessions(db), []byte(cfg.SecretKey), cfg.SessionValidityDuration)
		return NewAuthService(p, l)
	}
}

// Signup registers a new account. A taken username or email yields
// common.ErrorAlreadyExists.
func (s *AuthService) Signup(ctx context.Context, account models.Account) (*models.User, error) {
	s.logger.Debug(ctx, "Signing up", "name", account.Name, "email", account.Email, "username", account.Username, "password", account.Password)

	user, err := s.provider.SignUp(ctx, account)
	if err != nil {
		switch {
		case errors.Is(err, identity.ErrUserExists):
			s.logger.Warn(ctx, "User already exists", "username", account.Username, "email", account.Email)
			return nil, common.ErrorAlreadyExists
		case errors.Is(err, identity.ErrPasswordTooLong):
			return nil, common.ErrorValidation
		}
		return nil, s.normalize(ctx, "signup", err)
	}

	s.logger.Info(ctx, "User signed up", "user_id", user.ID, "username", user.Username)
	return user, nil
}

// Signin exchanges credentials for a session token. Unknown users and wrong
// passwords both yield common.ErrorUnauthorized.
func (s *AuthService) Signin(ctx context.Context, credentials models.Credentials) (*models.Token, error) {
	s.logger.Debug(ctx, "Signing in", "username", credentials.Username, "password", credentials.Password)

	token, err := s.provider.SignIn(ctx, credentials)
	if err != nil {
		if errors.Is(err, identity.ErrInvalidCredentials) {
			s.logger.Warn(ctx, "User not found", "username", credentials.Username)
			return nil, common.ErrorUnauthorized
		}
		return nil, s.normalize(ctx, "signin", err)
	}

	s.logger.Info(ctx, "User signed in", "username", credentials.Username, "token", token.Token)
	return token, nil
}

// WhoAmI resolves the user of the session presented in headers.
func (s *AuthService) WhoAmI(ctx context.Context, headers http.Header) (*models.User, error) {
	s.logger.Debug(ctx, "Identifying user", logging.Headers(headers))

	user, err := s.provider.GetSession(ctx, headers)
	if err != nil {
		if errors.Is(err, identity.ErrNoSession) {
			s.logger.Warn(ctx, "User not found", logging.Headers(headers))
			return nil, common.ErrorUnauthorized
		}
		return nil, s.normalize(ctx, "whoami", err)
	}

	s.logger.Info(ctx, "User identified", "user_id", user.ID)
	return user, nil
}

// SignOut ends the session presented in headers.
func (s *AuthService) SignOut(ctx context.Context, headers http.Header) error {
	s.logger.Debug(ctx, "Signing out", logging.Headers(headers))

	if err := s.provider.SignOut(ctx, headers); err != nil {
		if errors.Is(err, identity.ErrNoSession) {
			return common.ErrorUnauthorized
		}
		return s.normalize(ctx, "signout", err)
	}

	s.logger.Info(ctx, "User signed out")
	return nil
}

// normalize keeps errors that already carry a client-facing kind and turns
// everything else into common.ErrorInternal.
func (s *AuthService) normalize(ctx context.Context, op string, err error) error {
	if errors.Is(err, common.ErrorUnauthorized) || errors.Is(err, common.ErrorValidation) {
		return err
	}
	s.logger.Error(ctx, "Auth operation failed", "op", op, "error", err)
	return common.ErrorInternal
}
