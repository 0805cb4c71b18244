package ratelimit

import (
	"context"
	"sync"
	"time"
)

// sweep threshold for dropping expired windows
const maxIdleEntries = 10000

var _ Store = (*MemoryStore)(nil)

// MemoryStore keeps window counters in process memory. Expired windows are
// swept opportunistically once the map grows past maxIdleEntries.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]*windowEntry
}

type windowEntry struct {
	count   int64
	resetAt time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: map[string]*windowEntry{}}
}

func (s *MemoryStore) Incr(_ context.Context, key string, window time.Duration) (int64, time.Time, error) {
	now := time.Now()
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[key]
	if !ok || now.After(e.resetAt) {
		if len(s.entries) > maxIdleEntries {
			for k, ent := range s.entries {
				if now.After(ent.resetAt) {
					delete(s.entries, k)
				}
			}
		}
		e = &windowEntry{resetAt: now.Add(window)}
		s.entries[key] = e
	}
	e.count++
	return e.count, e.resetAt, nil
}
