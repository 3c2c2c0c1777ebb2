// internal/store/memory.go
//
// In-memory implementation of the KV interface.
// Used for ephemeral deployments and tests.
//
// Characteristics:
//   - Stores copies of the blobs keyed by string in a map.
//   - Concurrency-safe via RWMutex (concurrent reads allowed, writes exclusive).
//   - State is lost when the process restarts.

package store

import (
	"context"
	"sync"
)

// memory is an in-memory map-based KV implementation.
type memory struct {
	mu   sync.RWMutex      // guards data map
	data map[string][]byte // keyed by storage key
}

// NewMemory constructs a new in-memory KV.
func NewMemory() KV {
	return &memory{data: make(map[string][]byte)}
}

// Set stores a copy of blob under key.
func (m *memory) Set(ctx context.Context, key string, blob []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = append([]byte(nil), blob...)
	return nil
}

// Get returns a copy of the blob or ErrNotFound.
func (m *memory) Get(ctx context.Context, key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if v, ok := m.data[key]; ok {
		return append([]byte(nil), v...), nil
	}
	return nil, ErrNotFound
}
