package services

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/dmitrijs2005/flightbooking/internal/common"
	"github.com/dmitrijs2005/flightbooking/internal/logging"
	"github.com/dmitrijs2005/flightbooking/internal/server/config"
	"github.com/dmitrijs2005/flightbooking/internal/server/identity"
	"github.com/dmitrijs2005/flightbooking/internal/server/models"
	"github.com/dmitrijs2005/flightbooking/internal/server/repositories/repomanager"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeProvider struct {
	signUpOut *models.User
	signUpErr error

	signInOut *models.Token
	signInErr error

	sessionOut *models.User
	sessionErr error

	signOutErr error
}

func (f *fakeProvider) SignUp(context.Context, models.Account) (*models.User, error) {
	return f.signUpOut, f.signUpErr
}

func (f *fakeProvider) SignIn(context.Context, models.Credentials) (*models.Token, error) {
	return f.signInOut, f.signInErr
}

func (f *fakeProvider) GetSession(context.Context, http.Header) (*models.User, error) {
	return f.sessionOut, f.sessionErr
}

func (f *fakeProvider) SignOut(context.Context, http.Header) error {
	return f.signOutErr
}

func TestAuthService_Signup(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		wantErr error
	}{
		{name: "success"},
		{name: "duplicate", err: identity.ErrUserExists, wantErr: common.ErrorAlreadyExists},
		{name: "password too long", err: identity.ErrPasswordTooLong, wantErr: common.ErrorValidation},
		{name: "unauthorized passes through", err: common.ErrorUnauthorized, wantErr: common.ErrorUnauthorized},
		{name: "anything else is internal", err: errors.New("db down"), wantErr: common.ErrorInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &fakeProvider{signUpErr: tt.err}
			if tt.err == nil {
				p.signUpOut = &models.User{ID: "u1", Username: "t_user"}
			}
			s := NewAuthService(p, logging.Nop())

			u, err := s.Signup(context.Background(), models.Account{Username: "t_user"})
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, u)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "u1", u.ID)
		})
	}
}

func TestAuthService_Signin(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		wantErr error
	}{
		{name: "success"},
		{name: "credential mismatch is unauthorized", err: identity.ErrInvalidCredentials, wantErr: common.ErrorUnauthorized},
		{name: "wrapped mismatch is unauthorized", err: errors.Join(errors.New("x"), identity.ErrInvalidCredentials), wantErr: common.ErrorUnauthorized},
		{name: "anything else is internal", err: errors.New("db down"), wantErr: common.ErrorInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &fakeProvider{signInErr: tt.err}
			if tt.err == nil {
				p.signInOut = &models.Token{Token: "tok"}
			}
			s := NewAuthService(p, logging.Nop())

			tok, err := s.Signin(context.Background(), models.Credentials{Username: "u", Password: "p"})
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "tok", tok.Token)
		})
	}
}

func TestAuthService_WhoAmIAndSignOut(t *testing.T) {
	s := NewAuthService(&fakeProvider{sessionOut: &models.User{ID: "u1"}}, logging.Nop())
	u, err := s.WhoAmI(context.Background(), http.Header{})
	require.NoError(t, err)
	assert.Equal(t, "u1", u.ID)
	require.NoError(t, s.SignOut(context.Background(), http.Header{}))

	s = NewAuthService(&fakeProvider{sessionErr: identity.ErrNoSession, signOutErr: identity.ErrNoSession}, logging.Nop())
	_, err = s.WhoAmI(context.Background(), http.Header{})
	assert.ErrorIs(t, err, common.ErrorUnauthorized)
	assert.ErrorIs(t, s.SignOut(context.Background(), http.Header{}), common.ErrorUnauthorized)

	s = NewAuthService(&fakeProvider{sessionErr: errors.New("boom"), signOutErr: errors.New("boom")}, logging.Nop())
	_, err = s.WhoAmI(context.Background(), http.Header{})
	assert.ErrorIs(t, err, common.ErrorInternal)
	assert.ErrorIs(t, s.SignOut(context.Background(), http.Header{}), common.ErrorInternal)
}

func TestAuthService_SecretsNeverLogged(t *testing.T) {
	var buf bytes.Buffer
	s := NewAuthService(&fakeProvider{
		signUpOut:  &models.User{ID: "u1"},
		signInOut:  &models.Token{Token: "tok-value-123"},
		sessionErr: identity.ErrNoSession,
	}, logging.New(&buf, "debug"))

	ctx := context.Background()
	_, _ = s.Signup(ctx, models.Account{Username: "t_user", Password: "hunter22"})
	_, _ = s.Signin(ctx, models.Credentials{Username: "t_user", Password: "hunter22"})
	h := http.Header{}
	h.Set("Authorization", "Bearer tok-value-123")
	_, _ = s.WhoAmI(ctx, h)

	out := buf.String()
	assert.NotEmpty(t, out)
	assert.NotContains(t, out, "hunter22")
	assert.NotContains(t, out, "tok-value-123")
	assert.Contains(t, out, logging.Redacted)
}

func TestAuthServiceFactory_BuildsWorkingService(t *testing.T) {
	cfg := &config.Config{SecretKey: "k", SessionValidityDuration: time.Hour}
	factory := NewAuthServiceFactory(repomanager.NewInMemoryRepositoryManager(), cfg, logging.Nop())

	s := factory(nil)
	ctx := context.Background()

	_, err := s.Signup(ctx, models.Account{Name: "t", Email: "t@mail.com", Username: "t_user", Password: "secret1"})
	require.NoError(t, err)

	_, err = s.Signin(ctx, models.Credentials{Username: "t_user", Password: "wrong"})
	assert.ErrorIs(t, err, common.ErrorUnauthorized)

	tok, err := s.Signin(ctx, models.Credentials{Username: "t_user", Password: "secret1"})
	require.NoError(t, err)

	h := http.Header{}
	h.Set("Authorization", "Bearer "+tok.Token)
	u, err := s.WhoAmI(ctx, h)
	require.NoError(t, err)
	assert.Equal(t, "t_user", u.Username)
}
