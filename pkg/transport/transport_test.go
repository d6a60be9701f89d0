package transport

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServerErrorClassification(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "nope", http.StatusForbidden)
	}))
	t.Cleanup(srv.Close)

	c, err := NewClient(srv.URL)
	require.NoError(t, err)

	err = c.PostJSON(t.Context(), "start", "/register_start/alice", nil, nil)

	var serverErr *ServerError
	require.ErrorAs(t, err, &serverErr)
	assert.Equal(t, "start", serverErr.Op)
	assert.Equal(t, http.StatusForbidden, serverErr.StatusCode)
	assert.Equal(t, "nope\n", serverErr.Body)
	assert.Contains(t, serverErr.Error(), "start")
	assert.Contains(t, serverErr.Error(), "403")
}

func TestMalformedResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("<html>not json</html>"))
	}))
	t.Cleanup(srv.Close)

	c, err := NewClient(srv.URL)
	require.NoError(t, err)

	var out map[string]any
	err = c.GetJSON(t.Context(), "probe", "/api/polls", &out)
	assert.ErrorIs(t, err, ErrMalformedResponse)
}

func TestSessionCookieCarriedAcrossCalls(t *testing.T) {
	var sawCookie bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if c, err := r.Cookie("webauthnrs"); err == nil && c.Value == "abc123" {
			sawCookie = true
		}
		http.SetCookie(w, &http.Cookie{Name: "webauthnrs", Value: "abc123", Path: "/"})
	}))
	t.Cleanup(srv.Close)

	c, err := NewClient(srv.URL)
	require.NoError(t, err)

	require.NoError(t, c.PostJSON(t.Context(), "start", "/login_start/alice", nil, nil))
	require.NoError(t, c.PostJSON(t.Context(), "finish", "/login_finish", map[string]string{"id": "x"}, nil))
	assert.True(t, sawCookie, "second request must carry the session cookie from the first")
}

func TestBaseURLTrimsTrailingSlash(t *testing.T) {
	c, err := NewClient("http://localhost:8080/")
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8080", c.BaseURL())
}
