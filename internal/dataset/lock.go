package dataset

import (
	"os"
	"path/filepath"

	"github.com/gofrs/flock"

	"powerrank/internal"
)

const lockName = ".powerrank.lock"

// acquire takes the single-writer lock for dir without waiting.
func acquire(dir string) (func(), error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	path := filepath.Join(dir, lockName)
	l := flock.New(path)
	ok, err := l.TryLock()
	if err != nil {
		return nil, internal.Mark(internal.ErrLocked, err, "lock %s", path)
	}
	if !ok {
		return nil, internal.Mark(internal.ErrLocked, nil, "%s is held by another process", path)
	}
	return func() { _ = l.Unlock() }, nil
}
