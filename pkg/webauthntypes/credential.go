package webauthntypes

import "github.com/samber/mo"

// AttestationCredential is what a credential provider produces from a
// registration ceremony. The ID is the provider's native text form of the
// credential identifier; RawID is the same identifier as raw bytes. The two
// are submitted separately because they are not interchangeable once
// padding and alphabet differences are accounted for.
type AttestationCredential struct {
	ID                string
	RawID             []byte
	Type              PublicKeyCredentialType
	AttestationObject []byte
	ClientDataJSON    []byte
}

// AssertionCredential is what a credential provider produces from an
// authentication ceremony. UserHandle is optional: authenticators are free
// not to disclose one.
type AssertionCredential struct {
	ID                string
	RawID             []byte
	Type              PublicKeyCredentialType
	AuthenticatorData []byte
	ClientDataJSON    []byte
	Signature         []byte
	UserHandle        mo.Option[[]byte]
}

// RegisterFinishRequest is the body of a registration-finish call.
// All binary fields are standard padded base64 on the wire.
type RegisterFinishRequest struct {
	ID       string                               `json:"id"`
	RawID    string                               `json:"rawId"`
	Type     PublicKeyCredentialType              `json:"type"`
	Response AuthenticatorAttestationResponseJSON `json:"response"`
}

// AuthenticatorAttestationResponseJSON is the wire form of an
// authenticator's registration response.
// https://www.w3.org/TR/webauthn-3/#authenticatorattestationresponse
type AuthenticatorAttestationResponseJSON struct {
	AttestationObject string `json:"attestationObject"`
	ClientDataJSON    string `json:"clientDataJSON"`
}

// LoginFinishRequest is the body of an authentication-finish call.
type LoginFinishRequest struct {
	ID       string                             `json:"id"`
	RawID    string                             `json:"rawId"`
	Type     PublicKeyCredentialType            `json:"type"`
	Response AuthenticatorAssertionResponseJSON `json:"response"`
}

// AuthenticatorAssertionResponseJSON is the wire form of an authenticator's
// authentication response. UserHandle is the empty string, never omitted,
// when the authenticator supplied no user handle.
// https://www.w3.org/TR/webauthn-3/#authenticatorassertionresponse
type AuthenticatorAssertionResponseJSON struct {
	AuthenticatorData string `json:"authenticatorData"`
	ClientDataJSON    string `json:"clientDataJSON"`
	Signature         string `json:"signature"`
	UserHandle        string `json:"userHandle"`
}
