// Package auth logs users in and out and turns a browser's stored token back
// into a validated session on every request.
package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/erazemk/milams/internal/backend"
	"github.com/erazemk/milams/internal/model"
)

var (
	// ErrInvalidCredentials means the backend rejected a login.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrInvalidSession means the backend rejected a stored token.
	ErrInvalidSession = errors.New("invalid session")
)

// DefaultValidateTimeout bounds session validation on page load.
const DefaultValidateTimeout = 5 * time.Second

// TokenStore persists the bearer token for one browser.
type TokenStore interface {
	Save(w http.ResponseWriter, r *http.Request, token string) error
	Read(r *http.Request) (string, bool)
	Clear(w http.ResponseWriter, r *http.Request) error
}

// Gateway exchanges credentials for sessions and validates stored tokens.
type Gateway struct {
	backend         *backend.Client
	tokens          TokenStore
	validateTimeout time.Duration
}

// NewGateway creates a Gateway. A non-positive validateTimeout selects
// DefaultValidateTimeout.
func NewGateway(b *backend.Client, tokens TokenStore, validateTimeout time.Duration) *Gateway {
	if validateTimeout <= 0 {
		validateTimeout = DefaultValidateTimeout
	}
	return &Gateway{backend: b, tokens: tokens, validateTimeout: validateTimeout}
}

// Login authenticates against the backend and, only when both a token and a
// profile come back, persists the token. On any failure the token store is
// left untouched.
func (g *Gateway) Login(w http.ResponseWriter, r *http.Request, creds backend.Credentials) (*Session, error) {
	res, err := g.backend.Login(r.Context(), creds)
	if err != nil {
		switch backend.StatusOf(err) {
		case http.StatusBadRequest, http.StatusUnauthorized, http.StatusForbidden:
			return nil, fmt.Errorf("%w: %v", ErrInvalidCredentials, err)
		}
		return nil, fmt.Errorf("logging in: %w", err)
	}
	if res.Token == "" || res.User == nil {
		return nil, fmt.Errorf("logging in: backend returned an incomplete session")
	}

	if err := g.tokens.Save(w, r, res.Token); err != nil {
		return nil, fmt.Errorf("storing session: %w", err)
	}

	slog.Info("user logged in", "user", res.User.Username, "role", res.User.Role)
	return &Session{State: StateAuthenticated, User: res.User, Token: res.Token}, nil
}

// CurrentUser validates token against the backend. Any non-success answer is
// reported as ErrInvalidSession.
func (g *Gateway) CurrentUser(ctx context.Context, token string) (*model.User, error) {
	u, err := g.backend.WithToken(token).CurrentUser(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidSession, err)
	}
	return u, nil
}

// Logout forgets the stored token. The backend is not contacted.
func (g *Gateway) Logout(w http.ResponseWriter, r *http.Request) error {
	if err := g.tokens.Clear(w, r); err != nil {
		return fmt.Errorf("clearing session: %w", err)
	}
	return nil
}

// Resolve rehydrates the session for r. A browser without a stored token is
// anonymous. A stored token is validated against the backend: success yields
// an authenticated session; rejection or failure clears the store and yields
// an anonymous session. If validation does not finish within the validation
// timeout the session stays pending and the token is kept for the next try.
func (g *Gateway) Resolve(w http.ResponseWriter, r *http.Request) *Session {
	token, ok := g.tokens.Read(r)
	if !ok {
		return Anonymous()
	}

	ctx, cancel := context.WithTimeout(r.Context(), g.validateTimeout)
	defer cancel()

	u, err := g.CurrentUser(ctx, token)
	if err == nil {
		return &Session{State: StateAuthenticated, User: u, Token: token}
	}

	if errors.Is(err, context.DeadlineExceeded) && r.Context().Err() == nil {
		slog.Warn("session validation timed out", "timeout", g.validateTimeout)
		return &Session{State: StatePending}
	}

	slog.Info("discarding stored session", "error", err)
	if err := g.tokens.Clear(w, r); err != nil {
		slog.Error("failed to clear session", "error", err)
	}
	return Anonymous()
}
