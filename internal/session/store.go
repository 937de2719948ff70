// Package session keeps the backend bearer token across page loads.
//
// The browser holds a single signed cookie naming a server-side session row;
// the row holds the bearer token, sealed. Nothing about token validity is
// decided here: a stored token is only checked by asking the backend.
package session

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/erazemk/milams/internal/store"
)

// CookieName is the name of the session cookie.
const CookieName = "milams_session"

// DefaultTTL is the session lifetime when none is configured.
const DefaultTTL = 7 * 24 * time.Hour

// Options configures a Store.
type Options struct {
	TTL time.Duration
	// Secure marks the cookie as HTTPS-only.
	Secure bool
}

// Store persists one bearer token per browser.
type Store struct {
	db     *sql.DB
	secret string
	sealer *sealer
	ttl    time.Duration
	secure bool
}

// New creates a Store backed by db. The secret signs cookies and derives the
// key that seals tokens at rest.
func New(db *sql.DB, secret string, opts Options) (*Store, error) {
	if secret == "" {
		return nil, fmt.Errorf("session secret must not be empty")
	}
	sl, err := newSealer(secret)
	if err != nil {
		return nil, err
	}
	ttl := opts.TTL
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Store{db: db, secret: secret, sealer: sl, ttl: ttl, secure: opts.Secure}, nil
}

// Save stores token for the browser that sent r, replacing any session the
// request already referenced, and sets the cookie on w.
func (s *Store) Save(w http.ResponseWriter, r *http.Request, token string) error {
	if token == "" {
		return fmt.Errorf("refusing to store an empty token")
	}
	ctx := r.Context()

	sealed, err := s.sealer.seal([]byte(token))
	if err != nil {
		return err
	}

	id := uuid.NewString()
	expiresAt := time.Now().Add(s.ttl)

	value, err := signCookie(s.secret, id, expiresAt)
	if err != nil {
		return err
	}
	if err := store.CreateSession(ctx, s.db, id, sealed, expiresAt); err != nil {
		return err
	}

	if oldID, ok := s.sessionID(r); ok {
		if err := store.DeleteSession(ctx, s.db, oldID); err != nil {
			slog.Warn("failed to delete replaced session", "error", err)
		}
	}

	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    value,
		Path:     "/",
		Expires:  expiresAt,
		MaxAge:   int(s.ttl.Seconds()),
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

// Read returns the token stored for the browser that sent r.
func (s *Store) Read(r *http.Request) (string, bool) {
	id, ok := s.sessionID(r)
	if !ok {
		return "", false
	}
	return s.lookup(r.Context(), id)
}

// Clear removes the stored token and expires the cookie.
func (s *Store) Clear(w http.ResponseWriter, r *http.Request) error {
	s.clearCookie(w)

	id, ok := s.sessionID(r)
	if !ok {
		return nil
	}
	return store.DeleteSession(r.Context(), s.db, id)
}

func (s *Store) lookup(ctx context.Context, id string) (string, bool) {
	row, err := store.GetSession(ctx, s.db, id)
	if err != nil {
		slog.Error("failed to read session", "error", err)
		return "", false
	}
	if row == nil {
		return "", false
	}

	token, err := s.sealer.open(row.SealedToken)
	if err != nil {
		slog.Warn("discarding unreadable session", "error", err)
		return "", false
	}
	return string(token), true
}

// sessionID extracts the session ID from a valid cookie on r.
func (s *Store) sessionID(r *http.Request) (string, bool) {
	cookie, err := r.Cookie(CookieName)
	if err != nil || cookie.Value == "" {
		return "", false
	}
	id, err := parseCookie(s.secret, cookie.Value)
	if err != nil {
		return "", false
	}
	return id, true
}

// clearCookie clears the session cookie with consistent attributes.
func (s *Store) clearCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
	})
}
