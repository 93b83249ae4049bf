package storage

import (
	"context"
	"sync"

	"github.com/vovakirdan/tui-snake/internal/games/snake"
)

// MemoryStore keeps the record in process memory.
type MemoryStore struct {
	mu  sync.RWMutex
	rec snake.BestScore
}

// NewMemoryStore creates an empty memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Load returns the current record.
func (s *MemoryStore) Load(_ context.Context) (snake.BestScore, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.rec, nil
}

// Save replaces the record if rec beats it.
func (s *MemoryStore) Save(_ context.Context, rec snake.BestScore) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.rec.Beats(rec.Score) {
		s.rec = rec
	}
	return nil
}

// Reset clears the record.
func (s *MemoryStore) Reset(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rec = snake.BestScore{}
	return nil
}

// Close is a no-op.
func (s *MemoryStore) Close() error {
	return nil
}

var _ Store = (*MemoryStore)(nil)
