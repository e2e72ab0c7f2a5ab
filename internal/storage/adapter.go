package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/hammamikhairi/recipebox/internal/domain"
	"github.com/hammamikhairi/recipebox/internal/logger"
)

// Adapter reads and writes JSON documents through a Backend.
type Adapter struct {
	backend Backend
	log     *logger.Logger
	onFail  domain.Notifier
}

// AdapterOption configures an Adapter.
type AdapterOption func(*Adapter)

// WithFailureHandler sets the notifier told about failed writes.
func WithFailureHandler(n domain.Notifier) AdapterOption {
	return func(a *Adapter) { a.onFail = n }
}

// NewAdapter wraps a backend.
func NewAdapter(backend Backend, log *logger.Logger, opts ...AdapterOption) *Adapter {
	a := &Adapter{backend: backend, log: log}
	for _, o := range opts {
		o(a)
	}
	return a
}

// SetFailureHandler swaps the write-failure notifier after construction.
// The UI notifier only exists once the program is running.
func (a *Adapter) SetFailureHandler(n domain.Notifier) {
	a.onFail = n
}

// Backend returns the wrapped backend.
func (a *Adapter) Backend() Backend { return a.backend }

// Load decodes the document stored under key. Missing, unreadable,
// null or malformed data yields def. Stored fields overlay def, so fields absent
// from an older document keep their default values. def must not share
// mutable state with anything else.
func Load[T any](ctx context.Context, a *Adapter, key string, def T) T {
	raw, ok, err := a.backend.Get(ctx, key)
	if err != nil {
		a.log.Warn("read %s: %v", key, err)
		return def
	}
	if !ok {
		return def
	}

	// A stored null decodes cleanly into nil maps and slices.
	if bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		a.log.Warn("discarding null %s", key)
		return def
	}

	var probe T
	if err := json.Unmarshal(raw, &probe); err != nil {
		a.log.Warn("discarding malformed %s: %v", key, err)
		return def
	}

	out := def
	if err := json.Unmarshal(raw, &out); err != nil {
		a.log.Warn("merge %s onto defaults: %v", key, err)
		return def
	}
	return out
}

// Save writes v under key synchronously. Failures are logged and reported
// to the failure handler; the in-memory state of the caller stays as is.
func (a *Adapter) Save(ctx context.Context, key string, v any) {
	if err := a.save(ctx, key, v); err != nil {
		a.log.Warn("%v", err)
		if a.onFail != nil {
			_ = a.onFail.Notify(ctx, fmt.Sprintf("Could not save %s. Changes will be lost on exit.", key))
		}
	}
}

func (a *Adapter) save(ctx context.Context, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("%w: encode %s: %v", domain.ErrStorageWrite, key, err)
	}
	if err := a.backend.Set(ctx, key, data); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrStorageWrite, err)
	}
	return nil
}
