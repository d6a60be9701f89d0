// Package transport is the HTTP plumbing under the ceremony, session, and
// poll clients: one cookie-jar-backed client per process so every call
// carries the backend's session cookie, and uniform classification of
// non-2xx replies into ServerError.
package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/cookiejar"
	"strings"

	"github.com/go-passkey/pollkey/pkg/options"

	"golang.org/x/net/publicsuffix"
)

type Client struct {
	baseURL string
	http    *http.Client
	logger  *slog.Logger
}

func NewClient(baseURL string, opts ...options.Option) (*Client, error) {
	oo := options.NewOptions(opts...)

	httpClient := oo.HTTPClient
	if httpClient == nil {
		jar, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
		if err != nil {
			return nil, fmt.Errorf("cannot create cookie jar: %w", err)
		}
		httpClient = &http.Client{Jar: jar}
	}

	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    httpClient,
		logger:  oo.Logger,
	}, nil
}

// Jar exposes the session cookie jar so a caller can persist it between
// process runs.
func (c *Client) Jar() http.CookieJar {
	return c.http.Jar
}

// BaseURL returns the backend base URL without a trailing slash.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// PostJSON issues a POST with an optional JSON body and decodes a JSON
// reply into out when out is non-nil. Non-2xx replies become *ServerError
// tagged with op.
func (c *Client) PostJSON(ctx context.Context, op, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("cannot marshal %s request: %w", op, err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, body)
	if err != nil {
		return err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	return c.do(op, req, out)
}

// GetJSON issues a GET and decodes a JSON reply into out when out is
// non-nil.
func (c *Client) GetJSON(ctx context.Context, op, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}

	return c.do(op, req, out)
}

func (c *Client) do(op string, req *http.Request, out any) error {
	c.logger.Debug("request", "op", op, "method", req.Method, "url", req.URL.String())

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s request failed: %w", op, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("cannot read %s response: %w", op, err)
	}
	c.logger.Debug("response", "op", op, "status", resp.StatusCode, "bytes", len(data))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return newServerError(op, resp.StatusCode, data)
	}

	if out != nil {
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("%w: %s: %w", ErrMalformedResponse, op, err)
		}
	}

	return nil
}
