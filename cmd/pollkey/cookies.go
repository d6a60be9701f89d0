package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"os"

	"github.com/go-passkey/pollkey/pkg/transport"
)

// cookieFile persists the backend's session cookies between CLI runs, so
// a login followed by a poll command in a separate invocation still rides
// the same server-side session.
type cookieFile struct {
	path      string
	serverURL *url.URL
}

func (f *cookieFile) load(tc *transport.Client) error {
	b, err := os.ReadFile(f.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("cannot read cookie file: %w", err)
	}

	var cookies []*http.Cookie
	if err := json.Unmarshal(b, &cookies); err != nil {
		return fmt.Errorf("cannot parse cookie file: %w", err)
	}

	tc.Jar().SetCookies(f.serverURL, cookies)
	return nil
}

func (f *cookieFile) save(tc *transport.Client) error {
	cookies := tc.Jar().Cookies(f.serverURL)

	b, err := json.Marshal(cookies)
	if err != nil {
		return fmt.Errorf("cannot marshal cookies: %w", err)
	}
	if err := os.WriteFile(f.path, b, 0o600); err != nil {
		return fmt.Errorf("cannot write cookie file: %w", err)
	}
	return nil
}
