package storage

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"

	"github.com/hammamikhairi/recipebox/internal/domain"
)

// LockFileName is the lock file created inside the data directory.
const LockFileName = "recipebox.lock"

// Lock holds the single-writer lock on a data directory.
type Lock struct {
	fl *flock.Flock
}

// AcquireLock takes a non-blocking lock on dataDir. A lock held by
// another process returns domain.ErrLocked.
func AcquireLock(dataDir string) (*Lock, error) {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	fl := flock.New(filepath.Join(dataDir, LockFileName))
	ok, err := fl.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("%s: %w", fl.Path(), domain.ErrLocked)
	}
	return &Lock{fl: fl}, nil
}

// Release unlocks the data directory.
func (l *Lock) Release() error {
	if l == nil || l.fl == nil {
		return nil
	}
	return l.fl.Unlock()
}
