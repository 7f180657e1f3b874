package store

import (
	"context"
	"sync"

	"despesas/internal/core"
)

// MemStore keeps the collection in memory only. Used by tests and as a
// throwaway backend.
type MemStore struct {
	mu    sync.Mutex
	items []core.Expense
}

func NewMemStore(seed []core.Expense) *MemStore {
	return &MemStore{items: append([]core.Expense(nil), seed...)}
}

func (s *MemStore) Load(_ context.Context) ([]core.Expense, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]core.Expense(nil), s.items...), nil
}

func (s *MemStore) Save(_ context.Context, items []core.Expense) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = append([]core.Expense(nil), items...)
	return nil
}
