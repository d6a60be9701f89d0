// Package softauthn is an in-process credential provider: a software
// authenticator holding resident ES256 keys. It stands in for the platform
// credential API, which has no Go analog, so the ceremony client can run
// against real backends from a CLI and against scripted stores in tests.
//
// It is a development and testing authenticator. Keys live in the
// configured Store, not in hardware.
package softauthn

import (
	"bytes"
	"context"
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/sha256"
	"crypto/x509"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"github.com/go-passkey/pollkey/pkg/ceremony"
	"github.com/go-passkey/pollkey/pkg/options"
	"github.com/go-passkey/pollkey/pkg/webauthntypes"

	"github.com/fxamacker/cbor/v2"
	"github.com/google/uuid"
	"github.com/ldclabs/cose/iana"
	coseecdsa "github.com/ldclabs/cose/key/ecdsa"
	"github.com/samber/lo"
	"github.com/samber/mo"
)

var (
	ErrCredentialExcluded = errors.New("softauthn: credential already registered for this relying party")
	ErrNoCredential       = errors.New("softauthn: no matching credential for this relying party")
	ErrNoCommonAlgorithm  = errors.New("softauthn: relying party accepts no supported algorithm")
)

// Authenticator implements ceremony.CredentialProvider with software keys.
type Authenticator struct {
	origin  string
	aaguid  uuid.UUID
	store   Store
	encMode cbor.EncMode
	logger  *slog.Logger

	// ConfirmUserPresence, when set, is consulted before any credential
	// operation, standing in for the platform's user-presence prompt. An
	// error is treated as the user dismissing the prompt.
	ConfirmUserPresence func(ctx context.Context, rpID string) error
}

func New(origin string, store Store, opts ...options.Option) *Authenticator {
	oo := options.NewOptions(opts...)

	return &Authenticator{
		origin:  origin,
		aaguid:  oo.AAGUID,
		store:   store,
		encMode: oo.EncMode,
		logger:  oo.Logger,
	}
}

func (a *Authenticator) Available() bool {
	return a.store != nil
}

// MakeCredential creates a resident ES256 key for the relying party and
// returns a fmt="none" attestation over it.
func (a *Authenticator) MakeCredential(ctx context.Context, opts *webauthntypes.PublicKeyCredentialCreationOptions) (*webauthntypes.AttestationCredential, error) {
	rpID := opts.RP.ID

	if err := a.confirmPresence(ctx, rpID); err != nil {
		return nil, err
	}

	if len(opts.PubKeyCredParams) > 0 {
		es256 := lo.ContainsBy(opts.PubKeyCredParams, func(p webauthntypes.PublicKeyCredentialParameters) bool {
			return p.Type == webauthntypes.PublicKeyCredentialTypePublicKey && p.Algorithm == iana.AlgorithmES256
		})
		if !es256 {
			return nil, fmt.Errorf("%w: %w", ceremony.ErrCeremonyFailed, ErrNoCommonAlgorithm)
		}
	}

	existing, err := a.store.List(rpID)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ceremony.ErrCeremonyFailed, err)
	}
	for _, excluded := range opts.ExcludeCredentials {
		if lo.ContainsBy(existing, func(c StoredCredential) bool { return bytes.Equal(c.ID, excluded.ID) }) {
			return nil, fmt.Errorf("%w: %w", ceremony.ErrCeremonyFailed, ErrCredentialExcluded)
		}
	}

	privateKey, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	if err != nil {
		return nil, fmt.Errorf("%w: cannot generate P-256 keypair: %w", ceremony.ErrCeremonyFailed, err)
	}
	privateKeyDER, err := x509.MarshalECPrivateKey(privateKey)
	if err != nil {
		return nil, fmt.Errorf("%w: cannot marshal private key: %w", ceremony.ErrCeremonyFailed, err)
	}

	coseKey, err := coseecdsa.KeyFromPublic(&privateKey.PublicKey)
	if err != nil {
		return nil, fmt.Errorf("%w: cannot convert public key to COSE_Key: %w", ceremony.ErrCeremonyFailed, err)
	}
	if err := coseKey.Set(iana.KeyParameterAlg, iana.AlgorithmES256); err != nil {
		return nil, fmt.Errorf("%w: cannot set alg parameter for COSE_Key: %w", ceremony.ErrCeremonyFailed, err)
	}
	delete(coseKey, iana.KeyParameterKid)
	coseKeyBytes, err := a.encMode.Marshal(coseKey)
	if err != nil {
		return nil, fmt.Errorf("%w: cannot marshal COSE_Key: %w", ceremony.ErrCeremonyFailed, err)
	}

	credentialID := uuid.New()

	clientDataJSON, err := a.clientData(webauthntypes.ClientDataTypeCreate, opts.Challenge)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ceremony.ErrCeremonyFailed, err)
	}

	authData := buildAuthData(
		rpID,
		AuthDataFlagUserPresent|AuthDataFlagUserVerified|AuthDataFlagAttestedCredentialDataIncluded,
		0,
		buildAttestedCredentialData(a.aaguid, credentialID[:], coseKeyBytes),
	)

	attestationObject, err := a.encMode.Marshal(&webauthntypes.AttestationObject{
		Fmt:      "none",
		AttStmt:  map[string]any{},
		AuthData: authData,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: cannot marshal attestation object: %w", ceremony.ErrCeremonyFailed, err)
	}

	if err := a.store.Put(rpID, StoredCredential{
		ID:         credentialID[:],
		PrivateKey: privateKeyDER,
		UserHandle: opts.User.ID,
		UserName:   opts.User.Name,
	}); err != nil {
		return nil, fmt.Errorf("%w: %w", ceremony.ErrCeremonyFailed, err)
	}

	a.logger.Debug("created credential", "rpId", rpID, "user", opts.User.Name)

	return &webauthntypes.AttestationCredential{
		ID:                base64.RawURLEncoding.EncodeToString(credentialID[:]),
		RawID:             credentialID[:],
		Type:              webauthntypes.PublicKeyCredentialTypePublicKey,
		AttestationObject: attestationObject,
		ClientDataJSON:    clientDataJSON,
	}, nil
}

// GetAssertion signs the challenge with a stored key for the relying
// party, honoring the allow-list when one was supplied.
func (a *Authenticator) GetAssertion(ctx context.Context, opts *webauthntypes.PublicKeyCredentialRequestOptions) (*webauthntypes.AssertionCredential, error) {
	rpID := opts.RPID

	if err := a.confirmPresence(ctx, rpID); err != nil {
		return nil, err
	}

	creds, err := a.store.List(rpID)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ceremony.ErrCeremonyFailed, err)
	}
	if len(opts.AllowCredentials) > 0 {
		creds = lo.Filter(creds, func(c StoredCredential, _ int) bool {
			return lo.ContainsBy(opts.AllowCredentials, func(d webauthntypes.PublicKeyCredentialDescriptor) bool {
				return bytes.Equal(d.ID, c.ID)
			})
		})
	}
	if len(creds) == 0 {
		return nil, fmt.Errorf("%w: %w", ceremony.ErrCeremonyFailed, ErrNoCredential)
	}
	cred := creds[0]

	privateKey, err := x509.ParseECPrivateKey(cred.PrivateKey)
	if err != nil {
		return nil, fmt.Errorf("%w: cannot parse stored private key: %w", ceremony.ErrCeremonyFailed, err)
	}

	clientDataJSON, err := a.clientData(webauthntypes.ClientDataTypeGet, opts.Challenge)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ceremony.ErrCeremonyFailed, err)
	}

	cred.SignCount++
	authData := buildAuthData(rpID, AuthDataFlagUserPresent|AuthDataFlagUserVerified, cred.SignCount, nil)

	clientDataHash := sha256.Sum256(clientDataJSON)
	digest := sha256.Sum256(slices.Concat(authData, clientDataHash[:]))
	signature, err := ecdsa.SignASN1(rand.Reader, privateKey, digest[:])
	if err != nil {
		return nil, fmt.Errorf("%w: cannot sign assertion: %w", ceremony.ErrCeremonyFailed, err)
	}

	if err := a.store.Put(rpID, cred); err != nil {
		return nil, fmt.Errorf("%w: %w", ceremony.ErrCeremonyFailed, err)
	}

	userHandle := mo.None[[]byte]()
	if len(cred.UserHandle) > 0 {
		userHandle = mo.Some(cred.UserHandle)
	}

	a.logger.Debug("signed assertion", "rpId", rpID, "signCount", cred.SignCount)

	return &webauthntypes.AssertionCredential{
		ID:                base64.RawURLEncoding.EncodeToString(cred.ID),
		RawID:             cred.ID,
		Type:              webauthntypes.PublicKeyCredentialTypePublicKey,
		AuthenticatorData: authData,
		ClientDataJSON:    clientDataJSON,
		Signature:         signature,
		UserHandle:        userHandle,
	}, nil
}

func (a *Authenticator) confirmPresence(ctx context.Context, rpID string) error {
	if a.ConfirmUserPresence == nil {
		return nil
	}
	if err := a.ConfirmUserPresence(ctx, rpID); err != nil {
		return fmt.Errorf("%w: %w", ceremony.ErrCeremonyAborted, err)
	}
	return nil
}

// clientData serializes the client-data record the authenticator signs
// over. The challenge is base64url without padding per the W3C rules.
func (a *Authenticator) clientData(typ webauthntypes.ClientDataType, challenge []byte) ([]byte, error) {
	b, err := json.Marshal(&webauthntypes.CollectedClientData{
		Type:      typ,
		Challenge: base64.RawURLEncoding.EncodeToString(challenge),
		Origin:    a.origin,
	})
	if err != nil {
		return nil, fmt.Errorf("cannot marshal client data: %w", err)
	}
	return b, nil
}
