// Package session tracks whether the current process holds an
// authenticated backend session. State is the single source of truth; the
// ceremony client and Manager are its only writers, everything else reads.
package session

import "sync"

// State is the process-wide authentication flag plus the identity it was
// established for. Writes are unconditional overwrites; concurrent
// ceremonies race with last-write-wins semantics, there is no merging.
type State struct {
	mu            sync.RWMutex
	authenticated bool
	identity      string
}

// NewState returns an unauthenticated State.
func NewState() *State {
	return &State{}
}

// SetAuthenticated overwrites the flag and identity. Pass an empty
// identity when clearing.
func (s *State) SetAuthenticated(authenticated bool, identity string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.authenticated = authenticated
	s.identity = identity
}

func (s *State) Authenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.authenticated
}

// Identity returns the identity the session was authenticated for, or the
// empty string when unauthenticated.
func (s *State) Identity() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.identity
}
