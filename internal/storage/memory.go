package storage

import (
	"context"
	"sort"
	"sync"

	"github.com/hammamikhairi/recipebox/internal/logger"
)

// Compile-time interface check.
var _ Backend = (*MemoryBackend)(nil)

// MemoryBackend keeps values in a map. Safe for concurrent access.
// Used by tests and by --ephemeral runs.
type MemoryBackend struct {
	mu     sync.RWMutex
	values map[string][]byte
	log    *logger.Logger
}

// NewMemoryBackend creates an empty in-memory backend.
func NewMemoryBackend(log *logger.Logger) *MemoryBackend {
	return &MemoryBackend{
		values: make(map[string][]byte),
		log:    log,
	}
}

// Get returns a copy of the stored value.
func (b *MemoryBackend) Get(ctx context.Context, key string) ([]byte, bool, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	v, ok := b.values[key]
	if !ok {
		b.log.Debug("key not found: %s", key)
		return nil, false, nil
	}
	return append([]byte(nil), v...), true, nil
}

// Set stores a copy of value. Overwrites if the key already exists.
func (b *MemoryBackend) Set(ctx context.Context, key string, value []byte) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.log.Debug("set %s (%d bytes)", key, len(value))
	b.values[key] = append([]byte(nil), value...)
	return nil
}

// Keys returns every stored key in sorted order.
func (b *MemoryBackend) Keys(ctx context.Context) ([]string, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	out := make([]string, 0, len(b.values))
	for k := range b.values {
		out = append(out, k)
	}
	sort.Strings(out)
	return out, nil
}

// Close is a no-op.
func (b *MemoryBackend) Close() error { return nil }
