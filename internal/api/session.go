package api

import (
	"database/sql"
	"errors"
	"log/slog"
	"net/http"

	"github.com/erazemk/milams/internal/auth"
	"github.com/erazemk/milams/internal/backend"
	"github.com/erazemk/milams/internal/model"
	"github.com/erazemk/milams/internal/web"
)

// SessionHandler exposes the browser session as JSON.
type SessionHandler struct {
	Gateway *auth.Gateway
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type sessionResponse struct {
	State string         `json:"state"`
	User  *model.User    `json:"user,omitempty"`
	Menu  []web.MenuItem `json:"menu,omitempty"`
}

func newSessionResponse(sess *auth.Session) sessionResponse {
	resp := sessionResponse{State: sess.State.String()}
	if sess.Authenticated() {
		resp.User = sess.User
		resp.Menu = web.VisibleMenu(sess.User)
	}
	return resp
}

// Login handles POST /api/session.
func (h *SessionHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(w, r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.Username == "" || req.Password == "" {
		jsonError(w, http.StatusBadRequest, "username and password required")
		return
	}

	sess, err := h.Gateway.Login(w, r, backend.Credentials{Username: req.Username, Password: req.Password})
	switch {
	case errors.Is(err, auth.ErrInvalidCredentials):
		slog.Warn("login failed", "username", req.Username, "remote", r.RemoteAddr)
		jsonError(w, http.StatusUnauthorized, "invalid credentials")
		return
	case err != nil:
		slog.Error("login failed", "username", req.Username, "error", err)
		jsonError(w, http.StatusBadGateway, "login failed")
		return
	}

	jsonResponse(w, http.StatusOK, newSessionResponse(sess))
}

// Get handles GET /api/session. A session still being validated answers 202.
func (h *SessionHandler) Get(w http.ResponseWriter, r *http.Request) {
	sess := h.Gateway.Resolve(w, r)

	status := http.StatusOK
	if sess.State == auth.StatePending {
		status = http.StatusAccepted
	}
	jsonResponse(w, status, newSessionResponse(sess))
}

// Logout handles DELETE /api/session.
func (h *SessionHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.Gateway.Logout(w, r); err != nil {
		slog.Error("failed to clear session", "error", err)
		jsonError(w, http.StatusInternalServerError, "failed to clear session")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HealthHandler reports whether the session database is reachable.
type HealthHandler struct {
	DB *sql.DB
}

// Check handles GET /api/healthz.
func (h *HealthHandler) Check(w http.ResponseWriter, r *http.Request) {
	if err := h.DB.PingContext(r.Context()); err != nil {
		slog.Error("health check failed", "error", err)
		jsonError(w, http.StatusServiceUnavailable, "database unavailable")
		return
	}
	jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}
