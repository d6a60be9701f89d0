package ceremony

import (
	"context"

	"github.com/go-passkey/pollkey/pkg/webauthntypes"
)

// CredentialProvider is the platform credential capability a ceremony
// drives: the browser's navigator.credentials in a web runtime, a software
// authenticator here. Both calls block until the provider resolves, which
// may involve indefinite user-presence interaction; cancellation happens
// through ctx or through the provider's own dismissal path. A nil
// credential with a nil error means the user dismissed the prompt.
type CredentialProvider interface {
	// Available reports whether the platform can run credential ceremonies
	// at all.
	Available() bool
	MakeCredential(ctx context.Context, opts *webauthntypes.PublicKeyCredentialCreationOptions) (*webauthntypes.AttestationCredential, error)
	GetAssertion(ctx context.Context, opts *webauthntypes.PublicKeyCredentialRequestOptions) (*webauthntypes.AssertionCredential, error)
}

// SessionRecorder is the narrow slice of session state a ceremony is
// allowed to touch. Satisfied by *session.State.
type SessionRecorder interface {
	SetAuthenticated(authenticated bool, identity string)
}
