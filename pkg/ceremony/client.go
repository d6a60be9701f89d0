// Package ceremony drives the client half of the WebAuthn protocol against
// the poll backend: the two-phase start/finish exchange for registration
// and authentication, the binary/text recoding between the two, and the
// session-state update that follows a successful login.
//
// Neither operation retries internally. Challenges are single-use by
// server contract, so the only valid recovery from any failure is to run
// the whole ceremony again from the start call.
package ceremony

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"

	"github.com/go-passkey/pollkey/pkg/codec"
	"github.com/go-passkey/pollkey/pkg/options"
	"github.com/go-passkey/pollkey/pkg/transport"
	"github.com/go-passkey/pollkey/pkg/webauthntypes"
)

// Ceremony phases, used as the Op of a transport.ServerError.
const (
	PhaseStart  = "start"
	PhaseFinish = "finish"
)

const (
	registerStartPath  = "/register_start/"
	registerFinishPath = "/register_finish"
	loginStartPath     = "/login_start/"
	loginFinishPath    = "/login_finish"
)

type Client struct {
	transport *transport.Client
	provider  CredentialProvider
	session   SessionRecorder
	logger    *slog.Logger
}

func NewClient(tc *transport.Client, provider CredentialProvider, session SessionRecorder, opts ...options.Option) *Client {
	oo := options.NewOptions(opts...)

	return &Client{
		transport: tc,
		provider:  provider,
		session:   session,
		logger:    oo.Logger,
	}
}

// Register runs the registration ceremony for identity. A successful
// registration does not establish a session; the caller authenticates
// separately.
func (cl *Client) Register(ctx context.Context, identity string) error {
	if err := cl.preflight(identity); err != nil {
		return err
	}

	var envelope webauthntypes.CredentialCreationOptions
	if err := cl.transport.PostJSON(ctx, PhaseStart, registerStartPath+url.PathEscape(identity), nil, &envelope); err != nil {
		return classifyTransportError(err)
	}

	creationOptions, err := decodeCreationOptions(&envelope.PublicKey)
	if err != nil {
		return err
	}

	cred, err := cl.provider.MakeCredential(ctx, creationOptions)
	if err != nil {
		return classifyProviderError(err)
	}
	if cred == nil {
		return ErrCeremonyAborted
	}

	finish := &webauthntypes.RegisterFinishRequest{
		ID:    cred.ID,
		RawID: codec.Encode(cred.RawID),
		Type:  cred.Type,
		Response: webauthntypes.AuthenticatorAttestationResponseJSON{
			AttestationObject: codec.Encode(cred.AttestationObject),
			ClientDataJSON:    codec.Encode(cred.ClientDataJSON),
		},
	}
	if err := cl.transport.PostJSON(ctx, PhaseFinish, registerFinishPath, finish, nil); err != nil {
		return err
	}

	cl.logger.Info("registration ceremony complete", "identity", identity)
	return nil
}

// Authenticate runs the authentication ceremony for identity and, on
// success, records the session as authenticated for that identity.
func (cl *Client) Authenticate(ctx context.Context, identity string) error {
	if err := cl.preflight(identity); err != nil {
		return err
	}

	var envelope webauthntypes.CredentialRequestOptions
	if err := cl.transport.PostJSON(ctx, PhaseStart, loginStartPath+url.PathEscape(identity), nil, &envelope); err != nil {
		return classifyTransportError(err)
	}

	requestOptions, err := decodeRequestOptions(&envelope.PublicKey)
	if err != nil {
		return err
	}

	assertion, err := cl.provider.GetAssertion(ctx, requestOptions)
	if err != nil {
		return classifyProviderError(err)
	}
	if assertion == nil {
		return ErrCeremonyAborted
	}

	finish := &webauthntypes.LoginFinishRequest{
		ID:    assertion.ID,
		RawID: codec.Encode(assertion.RawID),
		Type:  assertion.Type,
		Response: webauthntypes.AuthenticatorAssertionResponseJSON{
			AuthenticatorData: codec.Encode(assertion.AuthenticatorData),
			ClientDataJSON:    codec.Encode(assertion.ClientDataJSON),
			Signature:         codec.Encode(assertion.Signature),
			// Empty string, not omitted, when the authenticator disclosed no
			// user handle.
			UserHandle: codec.Encode(assertion.UserHandle.OrElse(nil)),
		},
	}
	if err := cl.transport.PostJSON(ctx, PhaseFinish, loginFinishPath, finish, nil); err != nil {
		return err
	}

	cl.session.SetAuthenticated(true, identity)
	cl.logger.Info("authentication ceremony complete", "identity", identity)
	return nil
}

func (cl *Client) preflight(identity string) error {
	if identity == "" {
		return ErrInvalidIdentity
	}
	if cl.provider == nil || !cl.provider.Available() {
		return ErrUnsupportedPlatform
	}
	return nil
}

func classifyTransportError(err error) error {
	if errors.Is(err, transport.ErrMalformedResponse) {
		return newProtocolError("body", err)
	}
	return err
}

func classifyProviderError(err error) error {
	switch {
	case errors.Is(err, ErrCeremonyAborted), errors.Is(err, context.Canceled):
		return ErrCeremonyAborted
	case errors.Is(err, ErrCeremonyFailed):
		return err
	default:
		return fmt.Errorf("%w: %w", ErrCeremonyFailed, err)
	}
}
