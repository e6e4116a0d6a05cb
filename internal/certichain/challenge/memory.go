package challenge

import (
	"context"
	"sync"
	"time"
)

type MemoryStore struct {
	// Now defaults to time.Now.
	Now func() time.Time

	mu      sync.Mutex
	pending map[string]Challenge
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{Now: time.Now, pending: make(map[string]Challenge)}
}

func (s *MemoryStore) Put(_ context.Context, c Challenge) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending[key(c.Wallet, c.Nonce)] = c
	return nil
}

func (s *MemoryStore) Take(_ context.Context, wallet, nonce string) (Challenge, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	k := key(wallet, nonce)
	c, ok := s.pending[k]
	if !ok {
		return Challenge{}, ErrNotFound
	}
	delete(s.pending, k)

	if !s.Now().Before(c.ExpiresAt) {
		return Challenge{}, ErrNotFound
	}
	return c, nil
}

// Purge drops expired challenges and returns how many were removed.
func (s *MemoryStore) Purge(_ context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.Now()
	n := 0
	for k, c := range s.pending {
		if !now.Before(c.ExpiresAt) {
			delete(s.pending, k)
			n++
		}
	}
	return n, nil
}

func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pending)
}
