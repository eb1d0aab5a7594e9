package session

import (
	"context"
	"sync"
)

// MemoryStore is the default single-instance backend. Sessions do not survive
// a restart and are not shared across instances.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]uint
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: make(map[string]uint)}
}

func (s *MemoryStore) Get(_ context.Context, sid string) (uint, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	userID, ok := s.sessions[sid]
	if !ok {
		return 0, ErrNotFound
	}
	return userID, nil
}

func (s *MemoryStore) Set(_ context.Context, sid string, userID uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sid] = userID
	return nil
}

func (s *MemoryStore) Destroy(_ context.Context, sid string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, sid)
	return nil
}
