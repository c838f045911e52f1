// Package routing maps an authenticated identity and its fetched role onto
// exactly one of the app's screen domains. The resolution rule is fail-safe:
// anything other than an authenticated user with a known role lands on the
// welcome entry point.
package routing

import (
	"github.com/swachhdev/waste-collect/internal/models"
)

// State is the routing state of a session.
type State string

const (
	StateResolving       State = "resolving"
	StateUnauthenticated State = "unauthenticated"
	StateCollector       State = "collector"
	StateManager         State = "manager"
	StateAuthority       State = "authority"
)

// Route is the entry point of a screen domain.
type Route string

const (
	RouteWelcome       Route = "/welcome"
	RouteCollectorHome Route = "/collector"
	RouteManagerHome   Route = "/manager"
	RouteAuthorityHome Route = "/authority"
)

// StateForRole maps an identity plus fetched role string to a routing state.
// An unauthenticated user, or an authenticated user whose role is unset or
// unknown, resolves to Unauthenticated; that is the fail-safe default, not
// an error.
func StateForRole(authenticated bool, role models.Role) State {
	if !authenticated {
		return StateUnauthenticated
	}
	switch role {
	case models.RoleCollector:
		return StateCollector
	case models.RoleManager:
		return StateManager
	case models.RoleAuthority:
		return StateAuthority
	default:
		return StateUnauthenticated
	}
}

// RouteFor returns the screen-domain entry point for a resolved state.
// Resolving has no destination yet and maps to the welcome route.
func RouteFor(state State) Route {
	switch state {
	case StateCollector:
		return RouteCollectorHome
	case StateManager:
		return RouteManagerHome
	case StateAuthority:
		return RouteAuthorityHome
	default:
		return RouteWelcome
	}
}
