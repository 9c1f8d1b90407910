package ratelimit

import (
	"context"
	"sync"
	"time"
)

// MemoryStore is a mutex-guarded in-process CounterStore for
// single-node deployments and tests. Expired windows are dropped
// lazily on access.
type MemoryStore struct {
	mu      sync.Mutex
	windows map[string]*window

	now func() time.Time
}

type window struct {
	count     int64
	expiresAt time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		windows: make(map[string]*window),
		now:     time.Now,
	}
}

func (s *MemoryStore) Get(_ context.Context, key string) (int64, time.Duration, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	w, ok := s.windows[key]
	if !ok {
		return 0, 0, nil
	}

	remaining := w.expiresAt.Sub(s.now())
	if remaining <= 0 {
		delete(s.windows, key)
		return 0, 0, nil
	}
	return w.count, remaining, nil
}

func (s *MemoryStore) IncrementWithTTL(_ context.Context, key string, ttl time.Duration) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	w, ok := s.windows[key]
	if !ok || !w.expiresAt.After(s.now()) {
		s.windows[key] = &window{count: 1, expiresAt: s.now().Add(ttl)}
		return 1, nil
	}

	w.count++
	return w.count, nil
}
