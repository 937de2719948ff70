package web

import (
	"net/http"

	"github.com/erazemk/milams/internal/auth"
	"github.com/erazemk/milams/internal/model"
)

// Decision is what the route guard does with a request.
type Decision int

// Guard decisions.
const (
	DecisionRender Decision = iota
	// DecisionWait shows a placeholder while the session is still pending.
	DecisionWait
	// DecisionLogin redirects to the login page.
	DecisionLogin
	// DecisionLanding redirects to the dashboard.
	DecisionLanding
)

// PageHandler renders a page for an authenticated session.
type PageHandler func(w http.ResponseWriter, r *http.Request, sess *auth.Session)

// Decide maps a session and the role set of a page to a guard decision. An
// empty role set admits any authenticated user.
func Decide(sess *auth.Session, roles []string) Decision {
	switch {
	case sess != nil && sess.State == auth.StatePending:
		return DecisionWait
	case !sess.Authenticated():
		return DecisionLogin
	case !model.HasAnyRole(sess.User, roles):
		return DecisionLanding
	default:
		return DecisionRender
	}
}

// Guard resolves the session of each request and only hands it to h when the
// signed-in user holds one of roles.
func (s *Server) Guard(roles []string, h PageHandler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess := s.Gateway.Resolve(w, r)

		switch Decide(sess, roles) {
		case DecisionWait:
			s.Pending(w, r)
		case DecisionLogin:
			http.Redirect(w, r, "/login", http.StatusSeeOther)
		case DecisionLanding:
			http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
		default:
			h(w, r, sess)
		}
	})
}

// Pending renders the placeholder shown while a session is being validated.
// The page reloads itself until the session settles.
func (s *Server) Pending(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Cache-Control", "no-store")
	s.Templates.RenderStatus(w, http.StatusAccepted, "pending.html", &PageData{Title: "Loading"})
}
