package hold

import (
	"context"
	"sync"
	"time"
)

// MemoryStore is an in-process Store, used when Redis is not configured and
// in tests.
type MemoryStore struct {
	mu    sync.Mutex
	now   func() time.Time
	holds map[string]memoryHold
}

type memoryHold struct {
	owner   string
	expires time.Time
}

// NewMemoryStore returns an empty MemoryStore using the wall clock.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{now: time.Now, holds: map[string]memoryHold{}}
}

// WithClock replaces the store's clock.
func (s *MemoryStore) WithClock(now func() time.Time) *MemoryStore {
	s.now = now
	return s
}

func (s *MemoryStore) Acquire(_ context.Context, key, owner string, ttl time.Duration) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if h, ok := s.holds[key]; ok && now.Before(h.expires) {
		return false, nil
	}
	s.holds[key] = memoryHold{owner: owner, expires: now.Add(ttl)}
	return true, nil
}

func (s *MemoryStore) Release(_ context.Context, key, owner string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if h, ok := s.holds[key]; ok && h.owner == owner {
		delete(s.holds, key)
	}
	return nil
}
