package tokens

import (
	"context"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
)

type memoryEntry struct {
	bundle   Bundle
	deadline time.Time
}

// MemoryStore keeps bundles in process memory. Entries honor the same
// 7-day deadline as the durable store so a fallback read cannot resurrect
// state the durable store would already have expired.
type MemoryStore struct {
	mu      sync.RWMutex
	clock   clockwork.Clock
	entries map[string]memoryEntry
}

// NewMemoryStore creates an in-process store using the real clock.
func NewMemoryStore() *MemoryStore {
	return NewMemoryStoreWithClock(clockwork.NewRealClock())
}

// NewMemoryStoreWithClock creates an in-process store with a custom clock.
func NewMemoryStoreWithClock(clock clockwork.Clock) *MemoryStore {
	return &MemoryStore{
		clock:   clock,
		entries: make(map[string]memoryEntry),
	}
}

// Get retrieves the bundle for a user, pruning it when its deadline passed.
func (s *MemoryStore) Get(_ context.Context, userID string) (*Bundle, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.entries[userID]
	if !ok {
		return nil, nil
	}
	if !entry.deadline.After(s.clock.Now()) {
		delete(s.entries, userID)
		return nil, nil
	}

	bundle := entry.bundle
	return &bundle, nil
}

// Put stores a copy of the bundle with a fresh deadline.
func (s *MemoryStore) Put(_ context.Context, userID string, bundle *Bundle) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries[userID] = memoryEntry{
		bundle:   *bundle,
		deadline: s.clock.Now().Add(EntryTTL),
	}
	return nil
}

// Delete removes the bundle for a user.
func (s *MemoryStore) Delete(_ context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.entries, userID)
	return nil
}

// Len returns the number of stored entries, including not-yet-pruned
// expired ones.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}
