package ceremony

import (
	"github.com/go-passkey/pollkey/pkg/codec"
	"github.com/go-passkey/pollkey/pkg/webauthntypes"
)

// decodeCreationOptions turns the start-response wire form into the
// binary form a credential provider accepts. Challenge and user.id are
// required; every entry of the optional exclusion list is decoded in
// place.
func decodeCreationOptions(w *webauthntypes.PublicKeyCredentialCreationOptionsJSON) (*webauthntypes.PublicKeyCredentialCreationOptions, error) {
	if w.Challenge == "" {
		return nil, newProtocolError("publicKey.challenge", errMissingField)
	}
	challenge, err := codec.Decode(w.Challenge)
	if err != nil {
		return nil, newProtocolError("publicKey.challenge", err)
	}

	if w.User.ID == "" {
		return nil, newProtocolError("publicKey.user.id", errMissingField)
	}
	userID, err := codec.Decode(w.User.ID)
	if err != nil {
		return nil, newProtocolError("publicKey.user.id", err)
	}

	exclude, err := decodeDescriptors(w.ExcludeCredentials, "publicKey.excludeCredentials")
	if err != nil {
		return nil, err
	}

	return &webauthntypes.PublicKeyCredentialCreationOptions{
		RP: w.RP,
		User: webauthntypes.PublicKeyCredentialUserEntity{
			ID:          userID,
			Name:        w.User.Name,
			DisplayName: w.User.DisplayName,
		},
		Challenge:              challenge,
		PubKeyCredParams:       w.PubKeyCredParams,
		Timeout:                w.Timeout,
		ExcludeCredentials:     exclude,
		AuthenticatorSelection: w.AuthenticatorSelection,
		Attestation:            w.Attestation,
	}, nil
}

// decodeRequestOptions is the authentication counterpart: only the
// challenge is required, the allow-list is decoded when present.
func decodeRequestOptions(w *webauthntypes.PublicKeyCredentialRequestOptionsJSON) (*webauthntypes.PublicKeyCredentialRequestOptions, error) {
	if w.Challenge == "" {
		return nil, newProtocolError("publicKey.challenge", errMissingField)
	}
	challenge, err := codec.Decode(w.Challenge)
	if err != nil {
		return nil, newProtocolError("publicKey.challenge", err)
	}

	allow, err := decodeDescriptors(w.AllowCredentials, "publicKey.allowCredentials")
	if err != nil {
		return nil, err
	}

	return &webauthntypes.PublicKeyCredentialRequestOptions{
		Challenge:        challenge,
		Timeout:          w.Timeout,
		RPID:             w.RPID,
		AllowCredentials: allow,
		UserVerification: w.UserVerification,
	}, nil
}

func decodeDescriptors(wire []webauthntypes.PublicKeyCredentialDescriptorJSON, field string) ([]webauthntypes.PublicKeyCredentialDescriptor, error) {
	if wire == nil {
		return nil, nil
	}

	descriptors := make([]webauthntypes.PublicKeyCredentialDescriptor, 0, len(wire))
	for _, d := range wire {
		id, err := codec.Decode(d.ID)
		if err != nil {
			return nil, newProtocolError(field+".id", err)
		}
		descriptors = append(descriptors, webauthntypes.PublicKeyCredentialDescriptor{
			Type:       d.Type,
			ID:         id,
			Transports: d.Transports,
		})
	}

	return descriptors, nil
}
