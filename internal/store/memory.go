// internal/store/memory.go
//
// In-memory registry for per-player state (puzzle sessions, pruners).
// Lightweight and ephemeral: state is lost when the process restarts.
//
// Characteristics:
//   - Values keyed by ID in a map.
//   - Concurrency-safe via RWMutex (concurrent reads allowed, writes exclusive).
//   - Get returns ErrNotFound for unknown IDs.
//   - Capacity bound: when full, Save evicts the least recently saved entry.

package store

import (
	"context"
	"errors"
	"sync"
)

// ErrNotFound is returned by Get for unknown IDs.
var ErrNotFound = errors.New("not found")

// Store defines the persistence interface for per-player state.
type Store[T any] interface {
	// Save persists or updates a value.
	Save(ctx context.Context, id string, v T) error

	// Get retrieves a value by ID.
	Get(ctx context.Context, id string) (T, error)

	// Delete drops a value; unknown IDs are ignored.
	Delete(ctx context.Context, id string) error

	// Len is the number of stored values.
	Len() int
}

// memory is an in-memory map-based Store implementation.
type memory[T any] struct {
	mu    sync.RWMutex
	items map[string]T
	order []string // save order, oldest first
	limit int
}

// NewMemoryStore constructs an in-memory Store holding at most limit
// values (limit <= 0 means unbounded).
func NewMemoryStore[T any](limit int) Store[T] {
	return &memory[T]{items: make(map[string]T), limit: limit}
}

// Save adds or updates the value in the map.
func (m *memory[T]) Save(ctx context.Context, id string, v T) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.items[id]; ok {
		m.items[id] = v
		return nil
	}
	if m.limit > 0 && len(m.items) >= m.limit && len(m.order) > 0 {
		oldest := m.order[0]
		m.order = m.order[1:]
		delete(m.items, oldest)
	}
	m.items[id] = v
	m.order = append(m.order, id)
	return nil
}

// Get looks up a value by ID.
func (m *memory[T]) Get(ctx context.Context, id string) (T, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if v, ok := m.items[id]; ok {
		return v, nil
	}
	var zero T
	return zero, ErrNotFound
}

// Delete removes the value for id.
func (m *memory[T]) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.items[id]; !ok {
		return nil
	}
	delete(m.items, id)
	for i, k := range m.order {
		if k == id {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
	return nil
}

// Len reports the number of stored values.
func (m *memory[T]) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.items)
}
