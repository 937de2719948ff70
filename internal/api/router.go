package api

import (
	"database/sql"
	"net/http"

	"github.com/erazemk/milams/internal/auth"
)

// NewRouter creates the API router with all endpoints registered.
func NewRouter(db *sql.DB, gateway *auth.Gateway) http.Handler {
	mux := http.NewServeMux()

	sessionHandler := &SessionHandler{Gateway: gateway}
	healthHandler := &HealthHandler{DB: db}

	mux.HandleFunc("POST /api/session", sessionHandler.Login)
	mux.HandleFunc("GET /api/session", sessionHandler.Get)
	mux.HandleFunc("DELETE /api/session", sessionHandler.Logout)

	mux.HandleFunc("GET /api/healthz", healthHandler.Check)

	return mux
}
