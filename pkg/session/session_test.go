package session_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-passkey/pollkey/pkg/session"
	"github.com/go-passkey/pollkey/pkg/transport"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newManager(t *testing.T, handler http.Handler) (*session.Manager, *session.State, *httptest.Server) {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	tc, err := transport.NewClient(srv.URL)
	require.NoError(t, err)

	state := session.NewState()
	return session.NewManager(state, tc), state, srv
}

func TestStateOverwrites(t *testing.T) {
	state := session.NewState()
	assert.False(t, state.Authenticated())
	assert.Empty(t, state.Identity())

	state.SetAuthenticated(true, "alice")
	assert.True(t, state.Authenticated())
	assert.Equal(t, "alice", state.Identity())

	// Unconditional overwrite, last write wins.
	state.SetAuthenticated(true, "bob")
	assert.Equal(t, "bob", state.Identity())

	state.SetAuthenticated(false, "")
	assert.False(t, state.Authenticated())
	assert.Empty(t, state.Identity())
}

func TestProbeAuthenticated(t *testing.T) {
	m, state, _ := newManager(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/polls", r.URL.Path)
		assert.Equal(t, "me", r.URL.Query().Get("creator"))
		_, _ = w.Write([]byte("[]"))
	}))

	state.SetAuthenticated(true, "alice")
	assert.True(t, m.Probe(t.Context()))
	assert.True(t, state.Authenticated())
	assert.Equal(t, "alice", state.Identity(), "a confirming probe keeps the identity")
}

func TestProbeRejected(t *testing.T) {
	m, state, _ := newManager(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))

	state.SetAuthenticated(true, "alice")
	assert.False(t, m.Probe(t.Context()))
	assert.False(t, state.Authenticated())
	assert.Empty(t, state.Identity())
}

func TestProbeNetworkFailure(t *testing.T) {
	m, state, srv := newManager(t, http.NewServeMux())
	srv.Close()

	state.SetAuthenticated(true, "alice")
	// Offline and logged-out are indistinguishable here; both read false.
	assert.False(t, m.Probe(t.Context()))
	assert.False(t, state.Authenticated())
}

func TestLogout(t *testing.T) {
	m, state, _ := newManager(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/auth/logout", r.URL.Path)
		assert.Equal(t, http.MethodPost, r.Method)
	}))

	state.SetAuthenticated(true, "alice")
	require.NoError(t, m.Logout(t.Context()))
	assert.False(t, state.Authenticated())
	assert.Empty(t, state.Identity())
}

func TestLogoutRejectedKeepsState(t *testing.T) {
	m, state, _ := newManager(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "session backend down", http.StatusInternalServerError)
	}))

	state.SetAuthenticated(true, "alice")

	err := m.Logout(t.Context())
	var serverErr *transport.ServerError
	require.ErrorAs(t, err, &serverErr)
	assert.Equal(t, "logout", serverErr.Op)

	// The server-side session may still exist, so the local flag stays.
	assert.True(t, state.Authenticated())
	assert.Equal(t, "alice", state.Identity())
}
