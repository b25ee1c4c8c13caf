package store

import (
	"context"
	"sync"
	"time"
)

// memoryStore is a mutex-guarded map. Markers do not expire on their own;
// the sweeper prunes them. Useful for tests and single-node deployments
// that can tolerate losing the suppression window on restart.
type memoryStore struct {
	mu      sync.RWMutex
	markers map[string]int64
}

func NewMemory() Store {
	return &memoryStore{markers: make(map[string]int64)}
}

func (s *memoryStore) Get(_ context.Context, threadID string) (int64, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ts, ok := s.markers[threadID]
	return ts, ok, nil
}

func (s *memoryStore) Put(_ context.Context, threadID string, ts int64, _ time.Duration) error {
	s.mu.Lock()
	s.markers[threadID] = ts
	s.mu.Unlock()
	return nil
}

func (s *memoryStore) Delete(_ context.Context, threadID string) error {
	s.mu.Lock()
	delete(s.markers, threadID)
	s.mu.Unlock()
	return nil
}

func (s *memoryStore) Keys(_ context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]string, 0, len(s.markers))
	for id := range s.markers {
		out = append(out, id)
	}
	return out, nil
}

func (s *memoryStore) NativeTTL() bool { return false }

func (s *memoryStore) Ping(context.Context) error { return nil }

func (s *memoryStore) Close() error { return nil }
