package softauthn

import (
	"crypto/sha256"
	"encoding/binary"

	"github.com/google/uuid"
)

type AuthDataFlag byte

const (
	AuthDataFlagUserPresent AuthDataFlag = 1 << iota
	_
	AuthDataFlagUserVerified
	_
	_
	_
	AuthDataFlagAttestedCredentialDataIncluded
	AuthDataFlagExtensionDataIncluded
)

// buildAuthData assembles the authenticator-data byte layout:
// rpIdHash (32) | flags (1) | signCount (4, big-endian) | attested
// credential data when present.
func buildAuthData(rpID string, flags AuthDataFlag, signCount uint32, attestedCredentialData []byte) []byte {
	rpIDHash := sha256.Sum256([]byte(rpID))

	data := make([]byte, 0, 37+len(attestedCredentialData))
	data = append(data, rpIDHash[:]...)
	data = append(data, byte(flags))
	data = binary.BigEndian.AppendUint32(data, signCount)
	data = append(data, attestedCredentialData...)

	return data
}

// buildAttestedCredentialData assembles the attested-credential-data
// layout: aaguid (16) | credentialIdLength (2, big-endian) | credentialId |
// COSE_Key (CBOR).
func buildAttestedCredentialData(aaguid uuid.UUID, credentialID, credentialPublicKey []byte) []byte {
	data := make([]byte, 0, 18+len(credentialID)+len(credentialPublicKey))
	data = append(data, aaguid[:]...)
	data = binary.BigEndian.AppendUint16(data, uint16(len(credentialID)))
	data = append(data, credentialID...)
	data = append(data, credentialPublicKey...)

	return data
}
