package session

import "context"

// State is the route guard's view of the session.
type State int

const (
	// StateLoading means the initial restoration has not resolved yet.
	StateLoading State = iota

	// StateAuthenticated means a user is logged in and protected
	// surfaces may render.
	StateAuthenticated

	// StateUnauthenticated means no session exists; the caller should
	// redirect to login.
	StateUnauthenticated
)

func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateAuthenticated:
		return "authenticated"
	case StateUnauthenticated:
		return "unauthenticated"
	default:
		return "unknown"
	}
}

// Guard gates protected surfaces on session state. It is a one-shot
// gate: once the initial restoration resolves, the state never returns
// to loading.
type Guard struct {
	manager *Manager
}

// NewGuard creates a guard over the given session manager.
func NewGuard(m *Manager) *Guard {
	return &Guard{manager: m}
}

// State is the non-blocking probe.
func (g *Guard) State() State {
	if g.manager.IsLoading() {
		return StateLoading
	}
	if g.manager.IsLoggedIn() {
		return StateAuthenticated
	}
	return StateUnauthenticated
}

// Wait blocks until the session resolves or the context is cancelled,
// and returns the terminal state. On cancellation the returned state is
// StateLoading alongside the context error.
func (g *Guard) Wait(ctx context.Context) (State, error) {
	select {
	case <-g.manager.Resolved():
		return g.State(), nil
	case <-ctx.Done():
		return StateLoading, ctx.Err()
	}
}
