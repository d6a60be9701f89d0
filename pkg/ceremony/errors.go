package ceremony

import "errors"

var (
	// ErrInvalidIdentity means the caller passed an empty identity. Checked
	// before any network call; re-prompting the user is the right recovery.
	ErrInvalidIdentity = errors.New("ceremony: identity must not be empty")
	// ErrUnsupportedPlatform means no credential provider is available.
	// Fatal for passkey flows on this platform.
	ErrUnsupportedPlatform = errors.New("ceremony: no credential provider available")
	// ErrCeremonyAborted means the user dismissed the authenticator prompt.
	// Recoverable; the whole ceremony can simply be re-run.
	ErrCeremonyAborted = errors.New("ceremony: user dismissed the authenticator prompt")
	// ErrCeremonyFailed means the authenticator itself failed.
	ErrCeremonyFailed = errors.New("ceremony: authenticator failure")
)

var errMissingField = errors.New("missing required field")

// ProtocolError means the backend's start response was not usable: a
// required field was absent or its transport encoding did not decode. Indicates a client/backend version mismatch rather than
// anything the user can retry around.
type ProtocolError struct {
	Field string
	Err   error
}

func newProtocolError(field string, err error) *ProtocolError {
	return &ProtocolError{
		Field: field,
		Err:   err,
	}
}

func (e *ProtocolError) Error() string {
	return "ceremony: unusable start response: " + e.Field + ": " + e.Err.Error()
}

func (e *ProtocolError) Unwrap() error {
	return e.Err
}
