package idcache

import (
	"context"
	"sync/atomic"
)

// MemoryStore keeps the single cache entry in an atomic in-process slot.
// Reads and writes swap the whole timestamp+sequence pair at once, so a
// torn read is impossible without any locking. The store is typed to hold
// exactly one Entry; no wrong-shaped value can ever be read back.
type MemoryStore struct {
	entry atomic.Pointer[Entry]
}

// NewMemoryStore creates an empty in-process store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Name identifies the backend in logs and metrics.
func (s *MemoryStore) Name() string {
	return "memory"
}

// Get returns the current entry, or ErrCacheMiss if none was set yet.
// Expiry is the caller's concern; the slot itself never forgets.
func (s *MemoryStore) Get(_ context.Context) (*Entry, error) {
	entry := s.entry.Load()
	if entry == nil {
		return nil, ErrCacheMiss
	}
	return entry, nil
}

// Set replaces the current entry. Last writer wins.
func (s *MemoryStore) Set(_ context.Context, entry *Entry) error {
	s.entry.Store(entry)
	return nil
}
