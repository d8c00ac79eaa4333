package game

import (
	"context"
	"sync"
)

// MemoryGameStore keeps snapshots in process memory. Used when GAME_STORE=memory.
type MemoryGameStore struct {
	mu sync.Mutex
	m  map[string]GameSnapshot
}

func NewMemoryGameStore() *MemoryGameStore {
	return &MemoryGameStore{
		m: make(map[string]GameSnapshot),
	}
}

func (s *MemoryGameStore) Save(ctx context.Context, gameID string, snap GameSnapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.m[gameID] = snap
	return nil
}

func (s *MemoryGameStore) Load(ctx context.Context, gameID string) (GameSnapshot, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap, ok := s.m[gameID]
	return snap, ok, nil
}
