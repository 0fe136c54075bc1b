package flags

import (
	"context"
	"sync"
)

// MemoryStore keeps flags in process memory. Flags reset on restart, which is
// fine for the memory record-store backend since its data resets too.
type MemoryStore struct {
	mu    sync.RWMutex
	flags map[string]bool
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{flags: make(map[string]bool)}
}

func (s *MemoryStore) Get(ctx context.Context, key string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.flags[key], nil
}

func (s *MemoryStore) Set(ctx context.Context, key string, value bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.flags[key] = value
	return nil
}
