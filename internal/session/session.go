// Package session owns the operator's login state. A Manager is created
// once and passed to whatever needs a bearer token; nothing reads the
// token from a package-level variable.
package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v4"

	"github.com/gigaversity/gigaadmin/internal/api"
)

var (
	// ErrNotLoggedIn is returned when no session exists.
	ErrNotLoggedIn = errors.New("not logged in")
	// ErrExpired is returned once the access token has expired. It wraps
	// ErrNotLoggedIn since the only way forward is a new login.
	ErrExpired = fmt.Errorf("%w: session expired", ErrNotLoggedIn)
)

// Session is the result of a successful login.
type Session struct {
	Email        string    `json:"email"`
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	ExpiresAt    time.Time `json:"expires_at,omitzero"`
}

// Expired reports whether the access token has expired at now. A session
// whose token carries no expiry never expires on the client.
func (s Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && !now.Before(s.ExpiresAt)
}

// tokenExpiry reads the exp claim of a JWT access token. The signature is
// not checked: the server does that on every request. Opaque tokens have no
// expiry.
func tokenExpiry(token string) time.Time {
	var claims jwt.RegisteredClaims
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return time.Time{}
	}
	if claims.ExpiresAt == nil {
		return time.Time{}
	}
	return claims.ExpiresAt.Time
}

// Authenticator exchanges credentials for tokens. *api.Client satisfies it.
type Authenticator interface {
	Login(ctx context.Context, creds api.Credentials) (api.Tokens, error)
}

// Manager creates, loads and tears down the session. It implements
// api.TokenSource.
type Manager struct {
	store Store
	now   func() time.Time

	mu      sync.Mutex
	current *Session
}

// NewManager returns a manager backed by store.
func NewManager(store Store) *Manager {
	return &Manager{store: store, now: time.Now}
}

// Login authenticates against the API and persists the new session,
// replacing any previous one.
func (m *Manager) Login(ctx context.Context, auth Authenticator, email, password string) (Session, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return Session{}, fmt.Errorf("email and password are required")
	}

	tokens, err := auth.Login(ctx, api.Credentials{Email: email, Password: password})
	if err != nil {
		return Session{}, fmt.Errorf("logging in: %w", err)
	}

	s := Session{
		Email:        email,
		AccessToken:  tokens.Access,
		RefreshToken: tokens.Refresh,
		CreatedAt:    m.now(),
		ExpiresAt:    tokenExpiry(tokens.Access),
	}
	if err := m.store.Save(ctx, s); err != nil {
		return Session{}, fmt.Errorf("saving session: %w", err)
	}

	m.mu.Lock()
	m.current = &s
	m.mu.Unlock()

	slog.Info("logged in", "email", email, "expires_at", s.ExpiresAt)
	return s, nil
}

// Logout removes the stored session. Logging out twice is not an error.
func (m *Manager) Logout(ctx context.Context) error {
	m.mu.Lock()
	m.current = nil
	m.mu.Unlock()

	if err := m.store.Clear(ctx); err != nil {
		return fmt.Errorf("clearing session: %w", err)
	}
	slog.Info("logged out")
	return nil
}

// Current returns the active session, loading it from the store on first use.
func (m *Manager) Current(ctx context.Context) (Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.current != nil {
		return *m.current, nil
	}
	s, err := m.store.Load(ctx)
	if err != nil {
		return Session{}, err
	}
	m.current = &s
	return s, nil
}

// CheckStore reports whether the store lives on another server and, if so,
// whether that server answers.
func (m *Manager) CheckStore(ctx context.Context) (remote bool, err error) {
	hc, ok := m.store.(HealthChecker)
	if !ok {
		return false, nil
	}
	return true, hc.HealthCheck(ctx)
}

// Token returns the access token of the active session.
func (m *Manager) Token(ctx context.Context) (string, error) {
	s, err := m.Current(ctx)
	if err != nil {
		return "", err
	}
	if s.Expired(m.now()) {
		return "", ErrExpired
	}
	return s.AccessToken, nil
}
