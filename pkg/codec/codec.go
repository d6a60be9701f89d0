// Package codec converts between the base64 transport encoding used by the
// poll backend and raw byte buffers.
//
// The backend follows the WebAuthn JSON convention on ceremony-start
// responses: URL-safe alphabet, no padding. Finish-request bodies go the
// other way and must carry standard base64 with padding. Decode and Encode
// are deliberately asymmetric so neither direction can silently pick the
// wrong variant.
package codec

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
)

var ErrInvalidEncoding = errors.New("codec: invalid base64 transport encoding")

// Decode accepts URL-safe base64 with or without trailing padding and
// returns the raw bytes. The URL-safe alphabet substitutions are reversed
// and missing padding is restored before decoding.
func Decode(s string) ([]byte, error) {
	normalized := strings.NewReplacer("-", "+", "_", "/").Replace(s)

	if pad := len(normalized) % 4; pad != 0 {
		normalized += strings.Repeat("=", 4-pad)
	}

	b, err := base64.StdEncoding.DecodeString(normalized)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidEncoding, err)
	}

	return b, nil
}

// Encode returns standard base64 with padding, the form the backend expects
// on finish-request bodies.
func Encode(b []byte) string {
	return base64.StdEncoding.EncodeToString(b)
}
