package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// Session is a stored login. The backend token is kept sealed.
type Session struct {
	ID          string
	SealedToken []byte
	CreatedAt   time.Time
	ExpiresAt   time.Time
}

// CreateSession stores a new session row.
func CreateSession(ctx context.Context, db *sql.DB, id string, sealedToken []byte, expiresAt time.Time) error {
	_, err := db.ExecContext(ctx,
		`INSERT INTO sessions (id, sealed_token, expires_at) VALUES (?, ?, ?)`,
		id, sealedToken, expiresAt.Unix(),
	)
	if err != nil {
		return fmt.Errorf("creating session: %w", err)
	}
	return nil
}

// GetSession returns an unexpired session by ID, or nil if there is none.
func GetSession(ctx context.Context, db *sql.DB, id string) (*Session, error) {
	s := &Session{}
	var expiresAt int64
	err := db.QueryRowContext(ctx,
		`SELECT id, sealed_token, created_at, expires_at
		 FROM sessions WHERE id = ? AND expires_at > ?`, id, time.Now().Unix(),
	).Scan(&s.ID, &s.SealedToken, &s.CreatedAt, &expiresAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting session: %w", err)
	}
	s.ExpiresAt = time.Unix(expiresAt, 0)
	return s, nil
}

// DeleteSession removes a session. Deleting a missing session is not an error.
func DeleteSession(ctx context.Context, db *sql.DB, id string) error {
	if _, err := db.ExecContext(ctx, `DELETE FROM sessions WHERE id = ?`, id); err != nil {
		return fmt.Errorf("deleting session: %w", err)
	}
	return nil
}

// DeleteExpiredSessions removes sessions that expired before now and returns
// how many were removed.
func DeleteExpiredSessions(ctx context.Context, db *sql.DB, now time.Time) (int64, error) {
	result, err := db.ExecContext(ctx,
		`DELETE FROM sessions WHERE expires_at <= ?`, now.Unix(),
	)
	if err != nil {
		return 0, fmt.Errorf("deleting expired sessions: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("counting expired sessions: %w", err)
	}
	return n, nil
}
