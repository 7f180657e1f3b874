// Package store persists the expense collection. The whole collection
// is rewritten on every save; there is no partial update and no
// protection against concurrent external writers.
package store

import (
	"context"
	"fmt"

	"despesas/internal/core"
)

// Store is the persistence port for the full expense collection.
type Store interface {
	Load(ctx context.Context) ([]core.Expense, error)
	Save(ctx context.Context, items []core.Expense) error
}

// BackendType selects the store implementation.
type BackendType string

const (
	JSONBackend   BackendType = "json"
	MemoryBackend BackendType = "memory"
)

// String implements fmt.Stringer.
func (bt BackendType) String() string {
	return string(bt)
}

// IsValid reports whether the backend type is known.
func (bt BackendType) IsValid() bool {
	switch bt {
	case JSONBackend, MemoryBackend:
		return true
	}
	return false
}

// Config holds what the factory needs to build a store.
type Config struct {
	Type BackendType
	Path string // JSON backend only
}

// New builds the store selected by the config.
func New(cfg Config) (Store, error) {
	switch cfg.Type {
	case JSONBackend:
		return NewJSONStore(cfg.Path)
	case MemoryBackend:
		return NewMemStore(nil), nil
	default:
		return nil, fmt.Errorf("unsupported store backend: %s", cfg.Type)
	}
}
