package report

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"

	"plexmissing/internal/services"
)

// LockFileName is created inside the output directory while a run writes reports.
const LockFileName = ".plexmissing.lock"

// ErrLocked reports that another run holds the output directory.
var ErrLocked = errors.New("output directory is locked by another run")

// Lock guards an output directory against concurrent runs.
type Lock struct {
	path string
	lock *flock.Flock
}

// AcquireLock takes the output directory lock without blocking.
func AcquireLock(dir string) (*Lock, error) {
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, services.Wrap(services.ErrConfiguration, "report", "lock", "Unable to create output directory", err)
	}
	path := filepath.Join(dir, LockFileName)
	l := &Lock{path: path, lock: flock.New(path)}
	ok, err := l.lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("%w (%s)", ErrLocked, path)
	}
	return l, nil
}

// Path returns the lock file path.
func (l *Lock) Path() string {
	return l.path
}

// Release unlocks and removes the lock file.
func (l *Lock) Release() error {
	if l == nil || l.lock == nil {
		return nil
	}
	if err := l.lock.Unlock(); err != nil {
		return fmt.Errorf("release lock: %w", err)
	}
	if err := os.Remove(l.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove lock file: %w", err)
	}
	return nil
}
