package store

import (
	"context"
	"crypto/rand"
	"database/sql"
	"encoding/hex"
	"fmt"
)

const (
	sessionSecretKey = "session_secret"
	sessionSecretLen = 32
)

// SessionSecret returns the key that signs session cookies and seals stored
// bearer tokens, generating it on first start. Concurrent first starts agree
// on one key because the insert is ignored when a row already exists.
func SessionSecret(ctx context.Context, db *sql.DB) (string, error) {
	buf := make([]byte, sessionSecretLen)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generating session secret: %w", err)
	}

	secret, err := ensureSetting(ctx, db, sessionSecretKey, hex.EncodeToString(buf))
	if err != nil {
		return "", err
	}
	if raw, err := hex.DecodeString(secret); err != nil || len(raw) != sessionSecretLen {
		return "", fmt.Errorf("stored session secret is not %d hex-encoded bytes", sessionSecretLen)
	}
	return secret, nil
}

// ensureSetting stores value under key unless the key is already set and
// returns whichever value the table holds afterwards.
func ensureSetting(ctx context.Context, db *sql.DB, key, value string) (string, error) {
	if _, err := db.ExecContext(ctx,
		`INSERT OR IGNORE INTO settings (key, value) VALUES (?, ?)`, key, value,
	); err != nil {
		return "", fmt.Errorf("storing setting %s: %w", key, err)
	}

	var stored string
	if err := db.QueryRowContext(ctx,
		`SELECT value FROM settings WHERE key = ?`, key,
	).Scan(&stored); err != nil {
		return "", fmt.Errorf("reading setting %s: %w", key, err)
	}
	return stored, nil
}
