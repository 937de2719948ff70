package auth

import "github.com/erazemk/milams/internal/model"

// State is where a session is in its lifecycle.
type State int

// Session states.
const (
	// StatePending means a stored token exists but has not been validated yet.
	StatePending State = iota
	StateAnonymous
	StateAuthenticated
)

func (s State) String() string {
	switch s {
	case StatePending:
		return "pending"
	case StateAnonymous:
		return "anonymous"
	case StateAuthenticated:
		return "authenticated"
	default:
		return "unknown"
	}
}

// Session is the per-request view of who is signed in. User and Token are set
// only in StateAuthenticated.
type Session struct {
	State State
	User  *model.User
	Token string
}

// Anonymous returns a session with nobody signed in.
func Anonymous() *Session {
	return &Session{State: StateAnonymous}
}

// Authenticated reports whether the session has a validated user.
func (s *Session) Authenticated() bool {
	return s != nil && s.State == StateAuthenticated && s.User != nil
}
