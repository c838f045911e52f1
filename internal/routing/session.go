package routing

import (
	"context"
	"sync"

	"github.com/swachhdev/waste-collect/internal/models"
)

// IdentityFetcher returns the currently authenticated user, or nil when no
// user is signed in. A backend failure is returned as an error.
type IdentityFetcher interface {
	CurrentUser(ctx context.Context) (*models.User, error)
}

// RoleFetcher returns the role recorded for a user ID. An unset role is
// returned as the empty string, not an error.
type RoleFetcher interface {
	RoleOf(ctx context.Context, userID string) (models.Role, error)
}

// Listener observes session state changes.
type Listener func(State)

// Session holds the auth/role state shared across screen flows. It replaces
// ambient shared mutability with one explicit object: populated by Resolve,
// cleared by SignOut, observed through listeners. A generation counter guards
// against a resolution that completes after a newer SignOut or Resolve has
// already advanced the session, so a stale fetch can never clobber fresher
// state.
type Session struct {
	mu         sync.Mutex
	state      State
	user       *models.User
	role       models.Role
	generation uint64
	listeners  []Listener
}

// NewSession returns a session in the Resolving state.
func NewSession() *Session {
	return &Session{state: StateResolving}
}

// State returns the current routing state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// User returns the resolved user, or nil when unauthenticated.
func (s *Session) User() *models.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.user
}

// Role returns the resolved role, or "" when none is set.
func (s *Session) Role() models.Role {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.role
}

// Subscribe registers a listener notified on every state change.
func (s *Session) Subscribe(l Listener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, l)
}

// Resolve fetches the identity and role and transitions the session. The
// returned route is where the caller should redirect. If the session moved on
// while the fetches were in flight (sign-out, a newer resolve), the stale
// result is discarded and the current route is returned instead.
func (s *Session) Resolve(ctx context.Context, ids IdentityFetcher, roles RoleFetcher) (Route, error) {
	s.mu.Lock()
	gen := s.generation
	s.mu.Unlock()

	user, err := ids.CurrentUser(ctx)
	if err != nil {
		return RouteWelcome, err
	}

	var role models.Role
	if user != nil {
		role, err = roles.RoleOf(ctx, user.ID.Hex())
		if err != nil {
			return RouteWelcome, err
		}
	}

	next := StateForRole(user != nil, role)

	s.mu.Lock()
	if s.generation != gen {
		// A newer resolution or sign-out won; drop this result.
		cur := s.state
		s.mu.Unlock()
		return RouteFor(cur), nil
	}
	s.generation++
	s.user = user
	s.role = role
	if next == StateUnauthenticated {
		s.user = nil
		s.role = ""
	}
	changed := s.state != next
	s.state = next
	listeners := append([]Listener(nil), s.listeners...)
	s.mu.Unlock()

	if changed {
		for _, l := range listeners {
			l(next)
		}
	}
	return RouteFor(next), nil
}

// SignOut forces the session to Unauthenticated and returns the welcome
// route. Any in-flight resolution becomes stale.
func (s *Session) SignOut() Route {
	s.mu.Lock()
	s.generation++
	s.user = nil
	s.role = ""
	changed := s.state != StateUnauthenticated
	s.state = StateUnauthenticated
	listeners := append([]Listener(nil), s.listeners...)
	s.mu.Unlock()

	if changed {
		for _, l := range listeners {
			l(StateUnauthenticated)
		}
	}
	return RouteWelcome
}
