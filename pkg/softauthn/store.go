package softauthn

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"sync"

	"github.com/fxamacker/cbor/v2"
	"github.com/go-passkey/pollkey/pkg/options"
)

// StoredCredential is one resident key. PrivateKey holds the SEC 1 encoded
// EC private key.
type StoredCredential struct {
	ID         []byte `cbor:"1,keyasint"`
	PrivateKey []byte `cbor:"2,keyasint"`
	UserHandle []byte `cbor:"3,keyasint"`
	UserName   string `cbor:"4,keyasint,omitempty"`
	SignCount  uint32 `cbor:"5,keyasint"`
}

// Store keeps resident credentials per relying party. Put replaces an
// existing credential with the same ID.
type Store interface {
	List(rpID string) ([]StoredCredential, error)
	Put(rpID string, cred StoredCredential) error
}

func upsert(creds []StoredCredential, cred StoredCredential) []StoredCredential {
	for i, c := range creds {
		if slices.Equal(c.ID, cred.ID) {
			creds[i] = cred
			return creds
		}
	}
	return append(creds, cred)
}

// MemoryStore is a Store for tests and throwaway sessions.
type MemoryStore struct {
	mu    sync.Mutex
	creds map[string][]StoredCredential
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		creds: make(map[string][]StoredCredential),
	}
}

func (s *MemoryStore) List(rpID string) ([]StoredCredential, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.creds[rpID]), nil
}

func (s *MemoryStore) Put(rpID string, cred StoredCredential) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.creds[rpID] = upsert(s.creds[rpID], cred)
	return nil
}

// FileStore persists credentials as a CBOR map keyed by relying party ID,
// so a CLI login can use a key created by an earlier invocation. The file
// holds private key material and is written 0600.
type FileStore struct {
	mu      sync.Mutex
	path    string
	encMode cbor.EncMode
}

func NewFileStore(path string, opts ...options.Option) *FileStore {
	oo := options.NewOptions(opts...)

	return &FileStore{
		path:    path,
		encMode: oo.EncMode,
	}
}

func (s *FileStore) List(rpID string) ([]StoredCredential, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	creds, err := s.load()
	if err != nil {
		return nil, err
	}
	return creds[rpID], nil
}

func (s *FileStore) Put(rpID string, cred StoredCredential) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	creds, err := s.load()
	if err != nil {
		return err
	}
	creds[rpID] = upsert(creds[rpID], cred)

	b, err := s.encMode.Marshal(creds)
	if err != nil {
		return fmt.Errorf("cannot marshal credential store: %w", err)
	}
	if err := os.WriteFile(s.path, b, 0o600); err != nil {
		return fmt.Errorf("cannot write credential store: %w", err)
	}
	return nil
}

func (s *FileStore) load() (map[string][]StoredCredential, error) {
	b, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return make(map[string][]StoredCredential), nil
	}
	if err != nil {
		return nil, fmt.Errorf("cannot read credential store: %w", err)
	}

	creds := make(map[string][]StoredCredential)
	if err := cbor.Unmarshal(b, &creds); err != nil {
		return nil, fmt.Errorf("cannot unmarshal credential store: %w", err)
	}
	return creds, nil
}
