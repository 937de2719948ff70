package web

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/erazemk/milams/internal/auth"
	"github.com/erazemk/milams/internal/backend"
)

type loginData struct {
	PageData
	Username string
}

// Index handles GET /.
func (s *Server) Index(w http.ResponseWriter, r *http.Request) {
	sess := s.Gateway.Resolve(w, r)
	switch sess.State {
	case auth.StatePending:
		s.Pending(w, r)
	case auth.StateAuthenticated:
		http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
	default:
		http.Redirect(w, r, "/login", http.StatusSeeOther)
	}
}

// LoginPage handles GET /login.
func (s *Server) LoginPage(w http.ResponseWriter, r *http.Request) {
	if sess := s.Gateway.Resolve(w, r); sess.Authenticated() {
		http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
		return
	}
	s.Templates.Render(w, "login.html", &loginData{PageData: PageData{Title: "Sign in"}})
}

// LoginSubmit handles POST /login.
func (s *Server) LoginSubmit(w http.ResponseWriter, r *http.Request) {
	username := strings.TrimSpace(r.FormValue("username"))
	password := r.FormValue("password")

	fail := func(status int, msg string) {
		s.Templates.RenderStatus(w, status, "login.html", &loginData{
			PageData: PageData{Title: "Sign in", Error: msg},
			Username: username,
		})
	}

	if username == "" || password == "" {
		fail(http.StatusBadRequest, "Enter your username and password.")
		return
	}

	_, err := s.Gateway.Login(w, r, backend.Credentials{Username: username, Password: password})
	switch {
	case errors.Is(err, auth.ErrInvalidCredentials):
		fail(http.StatusUnauthorized, "Invalid username or password.")
		return
	case err != nil:
		slog.Error("login failed", "username", username, "error", err)
		fail(http.StatusBadGateway, "Sign in failed. Try again later.")
		return
	}

	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}

// Logout handles POST /logout.
func (s *Server) Logout(w http.ResponseWriter, r *http.Request) {
	if err := s.Gateway.Logout(w, r); err != nil {
		slog.Error("failed to clear session", "error", err)
	}
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}
