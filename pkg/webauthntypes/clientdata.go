package webauthntypes

// ClientDataType discriminates the two ceremony kinds inside the
// client-data record the authenticator signs over.
type ClientDataType string

const (
	ClientDataTypeCreate ClientDataType = "webauthn.create"
	ClientDataTypeGet    ClientDataType = "webauthn.get"
)

// CollectedClientData is the contextual binding between client and relying
// party, serialized to JSON and covered by the authenticator's signature.
// The challenge is base64url-encoded without padding, per the W3C
// serialization rules, independent of the transport encoding used on the
// backend's own endpoints.
// https://www.w3.org/TR/webauthn-3/#dictdef-collectedclientdata
type CollectedClientData struct {
	Type        ClientDataType `json:"type"`
	Challenge   string         `json:"challenge"`
	Origin      string         `json:"origin"`
	CrossOrigin bool           `json:"crossOrigin,omitempty"`
}

// AttestationObject is the CBOR structure carrying authenticator data and
// the attestation statement produced during registration.
// https://www.w3.org/TR/webauthn-3/#sctn-attestation
type AttestationObject struct {
	Fmt      string         `cbor:"fmt"`
	AttStmt  map[string]any `cbor:"attStmt"`
	AuthData []byte         `cbor:"authData"`
}
