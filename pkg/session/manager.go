package session

import (
	"context"

	"github.com/go-passkey/pollkey/pkg/transport"
)

const (
	probePath  = "/api/polls?creator=me"
	logoutPath = "/api/auth/logout"
)

// Manager pairs a State with the backend calls that can change it:
// probing whether the server still honors the session cookie, and logging
// out.
type Manager struct {
	state     *State
	transport *transport.Client
}

func NewManager(state *State, tc *transport.Client) *Manager {
	return &Manager{
		state:     state,
		transport: tc,
	}
}

func (m *Manager) State() *State {
	return m.state
}

// Probe asks the backend for an authenticated-only resource and records
// the outcome. Any 2xx counts as authenticated; a rejection and a network
// failure both count as unauthenticated, so the caller cannot distinguish
// "logged out" from "offline" through this call.
func (m *Manager) Probe(ctx context.Context) bool {
	if err := m.transport.GetJSON(ctx, "probe", probePath, nil); err != nil {
		m.state.SetAuthenticated(false, "")
		return false
	}

	m.state.SetAuthenticated(true, m.state.Identity())
	return true
}

// Logout ends the server-side session. On rejection the local state is
// left untouched; the session may still be valid server-side.
func (m *Manager) Logout(ctx context.Context) error {
	if err := m.transport.PostJSON(ctx, "logout", logoutPath, nil, nil); err != nil {
		return err
	}

	m.state.SetAuthenticated(false, "")
	return nil
}
