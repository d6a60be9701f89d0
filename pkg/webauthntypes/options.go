package webauthntypes

// CredentialCreationOptions is the envelope the backend returns from a
// registration-start call. Every base64 field inside must be decoded before
// the options are handed to a credential provider.
// https://www.w3.org/TR/webauthn-3/#dictionary-makecredentialoptions
type CredentialCreationOptions struct {
	PublicKey PublicKeyCredentialCreationOptionsJSON `json:"publicKey"`
}

// PublicKeyCredentialCreationOptionsJSON is the wire form of
// PublicKeyCredentialCreationOptions.
type PublicKeyCredentialCreationOptionsJSON struct {
	RP                     PublicKeyCredentialRpEntity         `json:"rp"`
	User                   PublicKeyCredentialUserEntityJSON   `json:"user"`
	Challenge              string                              `json:"challenge"`
	PubKeyCredParams       []PublicKeyCredentialParameters     `json:"pubKeyCredParams"`
	Timeout                uint64                              `json:"timeout,omitempty"`
	ExcludeCredentials     []PublicKeyCredentialDescriptorJSON `json:"excludeCredentials,omitempty"`
	AuthenticatorSelection *AuthenticatorSelectionCriteria     `json:"authenticatorSelection,omitempty"`
	Attestation            AttestationConveyancePreference     `json:"attestation,omitempty"`
}

// PublicKeyCredentialCreationOptions is the decoded, platform-facing form
// passed to CredentialProvider.MakeCredential.
type PublicKeyCredentialCreationOptions struct {
	RP                     PublicKeyCredentialRpEntity
	User                   PublicKeyCredentialUserEntity
	Challenge              []byte
	PubKeyCredParams       []PublicKeyCredentialParameters
	Timeout                uint64
	ExcludeCredentials     []PublicKeyCredentialDescriptor
	AuthenticatorSelection *AuthenticatorSelectionCriteria
	Attestation            AttestationConveyancePreference
}

// CredentialRequestOptions is the envelope the backend returns from an
// authentication-start call.
// https://www.w3.org/TR/webauthn-3/#dictionary-assertion-options
type CredentialRequestOptions struct {
	PublicKey PublicKeyCredentialRequestOptionsJSON `json:"publicKey"`
}

// PublicKeyCredentialRequestOptionsJSON is the wire form of
// PublicKeyCredentialRequestOptions.
type PublicKeyCredentialRequestOptionsJSON struct {
	Challenge        string                              `json:"challenge"`
	Timeout          uint64                              `json:"timeout,omitempty"`
	RPID             string                              `json:"rpId,omitempty"`
	AllowCredentials []PublicKeyCredentialDescriptorJSON `json:"allowCredentials,omitempty"`
	UserVerification UserVerificationRequirement         `json:"userVerification,omitempty"`
}

// PublicKeyCredentialRequestOptions is the decoded, platform-facing form
// passed to CredentialProvider.GetAssertion.
type PublicKeyCredentialRequestOptions struct {
	Challenge        []byte
	Timeout          uint64
	RPID             string
	AllowCredentials []PublicKeyCredentialDescriptor
	UserVerification UserVerificationRequirement
}
