package session

import (
	"context"
	"sort"
	"sync"
	"time"

	appErrors "github.com/noah-isme/educa-portal/pkg/errors"
)

type memoryEntry struct {
	rec       Record
	expiresAt time.Time
}

// MemoryStore keeps sessions in process memory.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	now     func() time.Time
}

// NewMemoryStore builds an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[string]memoryEntry), now: time.Now}
}

// Get implements Store.
func (s *MemoryStore) Get(_ context.Context, sid string) (*Record, error) {
	s.mu.RLock()
	entry, ok := s.entries[sid]
	s.mu.RUnlock()
	if !ok || s.expired(entry) {
		return nil, appErrors.ErrNoSession
	}
	rec := entry.rec
	return &rec, nil
}

// Set implements Store. A non-positive ttl keeps the record until deleted.
func (s *MemoryStore) Set(_ context.Context, sid string, rec Record, ttl time.Duration) error {
	entry := memoryEntry{rec: rec}
	if ttl > 0 {
		entry.expiresAt = s.now().Add(ttl)
	}
	s.mu.Lock()
	s.entries[sid] = entry
	s.mu.Unlock()
	return nil
}

// Delete implements Store.
func (s *MemoryStore) Delete(_ context.Context, sid string) error {
	s.mu.Lock()
	delete(s.entries, sid)
	s.mu.Unlock()
	return nil
}

// IDs implements Store; expired entries are pruned on the way.
func (s *MemoryStore) IDs(_ context.Context) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ids := make([]string, 0, len(s.entries))
	for sid, entry := range s.entries {
		if s.expired(entry) {
			delete(s.entries, sid)
			continue
		}
		ids = append(ids, sid)
	}
	sort.Strings(ids)
	return ids, nil
}

func (s *MemoryStore) expired(entry memoryEntry) bool {
	return !entry.expiresAt.IsZero() && !s.now().Before(entry.expiresAt)
}
