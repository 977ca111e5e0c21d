package wallet

import (
	"context"
	"sync"
)

type memoryStore struct {
	mu      sync.RWMutex
	storage map[string]Wallet
}

// NewMemoryStore constructs an in-memory store for tests and local
// development without a database.
func NewMemoryStore() Store {
	return &memoryStore{storage: make(map[string]Wallet)}
}

func (s *memoryStore) Find(_ context.Context, userID string) (Wallet, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	w, ok := s.storage[userID]
	if !ok {
		return Wallet{}, ErrNotFound
	}
	return w, nil
}

func (s *memoryStore) InsertIfAbsent(_ context.Context, w Wallet) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.storage[w.UserID]; exists {
		return ErrAlreadyExists
	}
	w.Version = 1
	s.storage[w.UserID] = w
	return nil
}

func (s *memoryStore) Update(_ context.Context, w Wallet, expectedVersion int64) (Wallet, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	current, ok := s.storage[w.UserID]
	if !ok || current.Version != expectedVersion {
		return Wallet{}, ErrConflict
	}
	w.Version = expectedVersion + 1
	s.storage[w.UserID] = w
	return w, nil
}
