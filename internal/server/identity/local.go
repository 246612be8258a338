package identity

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/flightbooking/internal/common"
	"github.com/dmitrijs2005/flightbooking/internal/server/auth"
	"github.com/dmitrijs2005/flightbooking/internal/server/models"
	"github.com/dmitrijs2005/flightbooking/internal/server/repositories/sessions"
	"github.com/dmitrijs2005/flightbooking/internal/server/repositories/users"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// maxPasswordBytes is the bcrypt input limit.
const maxPasswordBytes = 72

// LocalProvider keeps accounts and sessions in the application's own storage.
// Passwords are stored as bcrypt hashes and every signin opens a server-side
// session referenced by a signed token.
type LocalProvider struct {
	users           users.Repository
	sessions        sessions.Repository
	secret          []byte
	sessionValidity time.Duration
	hashCost        int

	dummyOnce sync.Once
	dummyHash []byte
}

func NewLocalProvider(u users.Repository, s sessions.Repository, secret []byte, sessionValidity time.Duration) *LocalProvider {
	return &LocalProvider{
		users:           u,
		sessions:        s,
		secret:          secret,
		sessionValidity: sessionValidity,
		hashCost:        bcrypt.DefaultCost,
	}
}

// WithHashCost overrides the bcrypt cost.
func (p *LocalProvider) WithHashCost(cost int) *LocalProvider {
	p.hashCost = cost
	return p
}

func (p *LocalProvider) SignUp(ctx context.Context, account models.Account) (*models.User, error) {
	if len(account.Password) > maxPasswordBytes {
		return nil, ErrPasswordTooLong
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(account.Password), p.hashCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &models.User{
		ID:           uuid.NewString(),
		Name:         account.Name,
		Email:        strings.ToLower(account.Email),
		Username:     account.Username,
		PasswordHash: hash,
	}

	created, err := p.users.Create(ctx, user)
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			return nil, ErrUserExists
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	return created, nil
}

func (p *LocalProvider) SignIn(ctx context.Context, credentials models.Credentials) (*models.Token, error) {
	user, err := p.users.GetByUsername(ctx, credentials.Username)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			p.compareDummy(credentials.Password)
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword(user.PasswordHash, []byte(credentials.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	session, err := p.sessions.Create(ctx, user.ID, uuid.NewString(), p.sessionValidity)
	if err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}

	token, err := auth.GenerateToken(session.ID, user.ID, p.secret, p.sessionValidity)
	if err != nil {
		return nil, fmt.Errorf("sign token: %w", err)
	}
	return &models.Token{Token: token}, nil
}

// compareDummy spends one hash comparison on an unknown username, so it takes
// as long as a wrong password.
func (p *LocalProvider) compareDummy(password string) {
	p.dummyOnce.Do(func() {
		p.dummyHash, _ = bcrypt.GenerateFromPassword([]byte(uuid.NewString()), p.hashCost)
	})
	_ = bcrypt.CompareHashAndPassword(p.dummyHash, []byte(password))
}

func (p *LocalProvider) GetSession(ctx context.Context, headers http.Header) (*models.User, error) {
	session, err := p.resolveSession(ctx, headers)
	if err != nil {
		return nil, err
	}

	user, err := p.users.GetByID(ctx, session.UserID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, ErrNoSession
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return user, nil
}

func (p *LocalProvider) SignOut(ctx context.Context, headers http.Header) error {
	session, err := p.resolveSession(ctx, headers)
	if err != nil {
		return err
	}
	if err := p.sessions.Delete(ctx, session.ID); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

func (p *LocalProvider) resolveSession(ctx context.Context, headers http.Header) (*models.Session, error) {
	token, ok := BearerToken(headers)
	if !ok {
		return nil, ErrNoSession
	}

	claims, err := auth.ParseToken(token, p.secret)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoSession, err)
	}

	session, err := p.sessions.Find(ctx, claims.SessionID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, ErrNoSession
		}
		return nil, fmt.Errorf("find session: %w", err)
	}

	if session.UserID != claims.UserID {
		return nil, ErrNoSession
	}
	if session.ExpiresAt.Before(time.Now()) {
		_ = p.sessions.Delete(ctx, session.ID)
		return nil, ErrNoSession
	}
	return session, nil
}
