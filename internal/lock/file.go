// Package lock serializes syncs of the same collection across processes.
package lock

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gofrs/flock"

	"seconddraft/internal/domain"
)

var keyReplacer = strings.NewReplacer("/", "_", `\`, "_", ":", "_")

// FileLocker takes an advisory file lock per key inside dir.
type FileLocker struct {
	dir string
}

func NewFileLocker(dir string) *FileLocker {
	return &FileLocker{dir: dir}
}

// Lock fails with domain.ErrCollectionBusy when the key is already held.
func (l *FileLocker) Lock(_ context.Context, key string) (func() error, error) {
	if err := os.MkdirAll(l.dir, 0o755); err != nil {
		return nil, fmt.Errorf("create lock dir: %w", err)
	}

	fl := flock.New(filepath.Join(l.dir, keyReplacer.Replace(key)+".lock"))
	ok, err := fl.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("%s: %w", key, domain.ErrCollectionBusy)
	}

	return fl.Unlock, nil
}
