package session

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// cookieClaims is the signed cookie payload. The registered ID names the
// server-side session row.
type cookieClaims struct {
	jwt.RegisteredClaims
}

// signCookie creates the cookie value for a session.
func signCookie(secret, sessionID string, expiresAt time.Time) (string, error) {
	claims := cookieClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        sessionID,
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", fmt.Errorf("signing session cookie: %w", err)
	}
	return signed, nil
}

// parseCookie validates a cookie value and returns the session ID it names.
func parseCookie(secret, value string) (string, error) {
	token, err := jwt.ParseWithClaims(value, &cookieClaims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return "", fmt.Errorf("parsing session cookie: %w", err)
	}

	claims, ok := token.Claims.(*cookieClaims)
	if !ok || !token.Valid || claims.ID == "" {
		return "", fmt.Errorf("invalid session cookie")
	}
	return claims.ID, nil
}
