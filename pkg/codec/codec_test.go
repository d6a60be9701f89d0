package codec

import (
	"encoding/base64"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeKnownVectors(t *testing.T) {
	b, err := Decode("AAAA")
	require.NoError(t, err)
	assert.Equal(t, []byte{0x00, 0x00, 0x00}, b)

	b, err = Decode("BBBB")
	require.NoError(t, err)
	assert.Equal(t, []byte{0x04, 0x10, 0x41}, b)
}

func TestDecodeRestoresPadding(t *testing.T) {
	for _, tt := range []struct {
		in   string
		want []byte
	}{
		{"aGVsbG8gd29ybGQh", []byte("hello world!")}, // no padding needed
		{"aGVsbG8gd29ybGQ", []byte("hello world")},   // one pad char missing
		{"aGVsbG8gd29ybA", []byte("hello worl")},     // two pad chars missing
		{"aGVsbG8gd29ybA==", []byte("hello worl")},   // already padded
	} {
		b, err := Decode(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, b, tt.in)
	}
}

func TestDecodeURLSafeAlphabet(t *testing.T) {
	raw := []byte{0xfb, 0xef, 0xff}
	require.Equal(t, "++//", base64.StdEncoding.EncodeToString(raw))

	b, err := Decode("--__")
	require.NoError(t, err)
	assert.Equal(t, raw, b)
}

func TestDecodeRejectsBadInput(t *testing.T) {
	for _, in := range []string{"@@@@", "ab!c", "aGVsbG8*"} {
		_, err := Decode(in)
		assert.ErrorIs(t, err, ErrInvalidEncoding, in)
	}
}

func TestEncodeIsStandardPadded(t *testing.T) {
	assert.Equal(t, "aGVsbG8gd29ybA==", Encode([]byte("hello worl")))
	assert.Equal(t, "++//", Encode([]byte{0xfb, 0xef, 0xff}))
	assert.Equal(t, "", Encode(nil))
}

func TestRoundTrip(t *testing.T) {
	r := rand.New(rand.NewSource(42))
	for range 100 {
		buf := make([]byte, r.Intn(64)+1)
		_, err := r.Read(buf)
		require.NoError(t, err)

		// The backend emits the URL-safe unpadded form.
		wire := base64.RawURLEncoding.EncodeToString(buf)

		got, err := Decode(wire)
		require.NoError(t, err)
		assert.Equal(t, buf, got)

		// And the standard padded form we produce must decode back too.
		got, err = Decode(Encode(buf))
		require.NoError(t, err)
		assert.Equal(t, buf, got)
	}
}
