package transport

import (
	"errors"
	"strconv"
)

// ErrMalformedResponse marks a 2xx reply whose body could not be parsed as
// the expected JSON shape.
var ErrMalformedResponse = errors.New("transport: malformed response body")

// ServerError is a non-2xx reply from the poll backend. Op names the call
// that was rejected (a ceremony phase such as "start" or "finish", or an
// API operation like "logout"); Body carries the backend's error text
// verbatim so callers can surface it.
type ServerError struct {
	Op         string
	StatusCode int
	Body       string
}

func newServerError(op string, status int, body []byte) *ServerError {
	return &ServerError{
		Op:         op,
		StatusCode: status,
		Body:       string(body),
	}
}

func (e *ServerError) Error() string {
	s := "transport: server rejected " + e.Op + " (status " + strconv.Itoa(e.StatusCode) + ")"
	if e.Body != "" {
		s += ": " + e.Body
	}
	return s
}
