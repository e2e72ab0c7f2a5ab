package storage

import (
	"context"
	"errors"
	"testing"

	"github.com/hammamikhairi/recipebox/internal/domain"
	"github.com/hammamikhairi/recipebox/internal/logger"
)

func exerciseBackend(t *testing.T, b Backend) {
	t.Helper()
	ctx := context.Background()

	if _, ok, err := b.Get(ctx, KeyTheme); err != nil || ok {
		t.Fatalf("expected missing key, got ok=%v err=%v", ok, err)
	}

	if err := b.Set(ctx, KeyTheme, []byte(`"light"`)); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := b.Set(ctx, KeyTheme, []byte(`"dark"`)); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	if err := b.Set(ctx, KeyFavorites, []byte(`[]`)); err != nil {
		t.Fatalf("set: %v", err)
	}

	v, ok, err := b.Get(ctx, KeyTheme)
	if err != nil || !ok {
		t.Fatalf("get: ok=%v err=%v", ok, err)
	}
	if string(v) != `"dark"` {
		t.Fatalf("expected overwritten value, got %s", v)
	}

	keys, err := b.Keys(ctx)
	if err != nil {
		t.Fatalf("keys: %v", err)
	}
	if len(keys) != 2 || keys[0] != KeyFavorites || keys[1] != KeyTheme {
		t.Fatalf("unexpected keys %v", keys)
	}
}

func TestMemoryBackend(t *testing.T) {
	exerciseBackend(t, NewMemoryBackend(logger.New(logger.LevelOff, nil)))
}

func TestSQLiteBackend(t *testing.T) {
	dir := t.TempDir()
	b, err := OpenSQLite(dir, logger.New(logger.LevelOff, nil))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer b.Close()
	exerciseBackend(t, b)
}

func TestSQLiteBackendPersistsAcrossOpen(t *testing.T) {
	dir := t.TempDir()
	log := logger.New(logger.LevelOff, nil)
	ctx := context.Background()

	b, err := OpenSQLite(dir, log)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	NewAdapter(b, log).Save(ctx, KeyCollectionIDCounter, 7)
	if err := b.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	b2, err := OpenSQLite(dir, log)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer b2.Close()
	if got := Load(ctx, NewAdapter(b2, log), KeyCollectionIDCounter, 1); got != 7 {
		t.Fatalf("expected counter 7 after reopen, got %d", got)
	}
}

func TestAcquireLock(t *testing.T) {
	dir := t.TempDir()
	first, err := AcquireLock(dir)
	if err != nil {
		t.Fatalf("first lock: %v", err)
	}
	defer first.Release()

	if _, err := AcquireLock(dir); !errors.Is(err, domain.ErrLocked) {
		t.Fatalf("expected ErrLocked for second holder, got %v", err)
	}
}
