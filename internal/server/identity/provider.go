// Package identity is the identity provider behind the auth routes: it
// creates accounts, checks passwords, opens and closes sessions and resolves
// the session presented in request headers.
package identity

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/dmitrijs2005/flightbooking/internal/server/models"
)

var (
	ErrUserExists         = errors.New("username or email already registered")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrNoSession          = errors.New("no valid session")
	ErrPasswordTooLong    = errors.New("password too long")
)

// Provider is consumed by the auth service.
type Provider interface {
	SignUp(ctx context.Context, account models.Account) (*models.User, error)
	SignIn(ctx context.Context, credentials models.Credentials) (*models.Token, error)
	GetSession(ctx context.Context, headers http.Header) (*models.User, error)
	SignOut(ctx context.Context, headers http.Header) error
}

// BearerToken extracts the credential from an "Authorization: Bearer <token>" header.
func BearerToken(headers http.Header) (string, bool) {
	h := strings.TrimSpace(headers.Get("Authorization"))
	scheme, token, ok := strings.Cut(h, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
