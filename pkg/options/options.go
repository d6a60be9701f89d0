package options

import (
	"log/slog"
	"net/http"

	"github.com/fxamacker/cbor/v2"
	"github.com/google/uuid"
)

type Options struct {
	Logger     *slog.Logger
	HTTPClient *http.Client
	EncMode    cbor.EncMode
	AAGUID     uuid.UUID
}

type Option func(*Options)

func WithLogger(logger *slog.Logger) Option {
	return func(opts *Options) {
		opts.Logger = logger
	}
}

// WithHTTPClient replaces the default cookie-jar-backed HTTP client.
// The session protocol is cookie-based, so a replacement client must carry
// its own jar.
func WithHTTPClient(client *http.Client) Option {
	return func(opts *Options) {
		opts.HTTPClient = client
	}
}

func WithEncMode(encMode cbor.EncMode) Option {
	return func(opts *Options) {
		opts.EncMode = encMode
	}
}

// WithAAGUID sets the authenticator model identifier reported inside
// attested credential data.
func WithAAGUID(aaguid uuid.UUID) Option {
	return func(opts *Options) {
		opts.AAGUID = aaguid
	}
}

func NewOptions(opts ...Option) *Options {
	encMode, _ := cbor.CTAP2EncOptions().EncMode()
	oo := &Options{
		Logger:  slog.Default(),
		EncMode: encMode,
	}

	for _, opt := range opts {
		opt(oo)
	}

	return oo
}
