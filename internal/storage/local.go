package storage

import (
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"
)

type Storage interface {
	Save(ctx context.Context, name string, data []byte) error
	PublicURL(name string) string
}

// LocalStorage keeps audio artifacts as flat files in a single directory
// that is served statically under urlPrefix.
type LocalStorage struct {
	dir       string
	urlPrefix string
}

// NewLocalStorage creates dir (and its parents) if absent.
func NewLocalStorage(dir, urlPrefix string) (*LocalStorage, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create audio dir: %w", err)
	}
	return &LocalStorage{dir: dir, urlPrefix: urlPrefix}, nil
}

func (s *LocalStorage) Dir() string { return s.dir }

// Save writes data to {dir}/{name} in one call. An existing file with the
// same name is overwritten.
func (s *LocalStorage) Save(ctx context.Context, name string, data []byte) error {
	if name == "" || name != filepath.Base(name) {
		return fmt.Errorf("invalid file name %q", name)
	}
	if err := os.WriteFile(filepath.Join(s.dir, name), data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", name, err)
	}
	return nil
}

func (s *LocalStorage) PublicURL(name string) string {
	return path.Join(s.urlPrefix, name)
}

// Check reports whether the output directory is still usable.
func (s *LocalStorage) Check(ctx context.Context) error {
	fi, err := os.Stat(s.dir)
	if err != nil {
		return err
	}
	if !fi.IsDir() {
		return fmt.Errorf("%s is not a directory", s.dir)
	}
	return nil
}
