package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
)

// AferoStore is a Store backed by an afero file system.
type AferoStore struct {
	fs afero.Fs
}

// NewAferoStore creates a new AferoStore.
func NewAferoStore(fs afero.Fs) *AferoStore {
	return &AferoStore{fs: fs}
}

// Save writes the content of the reader to path, creating parent directories.
// The file is written to a temporary sibling first and renamed into place, so
// readers never observe a partially written file.
func (s *AferoStore) Save(ctx context.Context, path string, reader io.Reader) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	dir := filepath.Dir(path)
	if err := s.fs.MkdirAll(dir, 0755); err != nil {
		return 0, fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	f, err := afero.TempFile(s.fs, dir, "."+filepath.Base(path)+".tmp")
	if err != nil {
		return 0, fmt.Errorf("failed to create temporary file for %s: %w", path, err)
	}
	tmp := f.Name()

	n, err := io.Copy(f, reader)
	if closeErr := f.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		_ = s.fs.Remove(tmp)
		return 0, fmt.Errorf("failed to write %s: %w", path, err)
	}

	if err := s.fs.Rename(tmp, path); err != nil {
		_ = s.fs.Remove(tmp)
		return 0, fmt.Errorf("failed to move %s into place: %w", path, err)
	}
	return n, nil
}

// Get opens a file for reading.
func (s *AferoStore) Get(ctx context.Context, path string) (io.ReadCloser, error) {
	return s.fs.OpenFile(path, os.O_RDONLY, 0)
}

// Exists reports whether path exists.
func (s *AferoStore) Exists(ctx context.Context, path string) (bool, error) {
	return afero.Exists(s.fs, path)
}

// ReadFile reads the whole file at path.
func ReadFile(ctx context.Context, s Store, path string) ([]byte, error) {
	r, err := s.Get(ctx, path)
	if err != nil {
		return nil, err
	}
	defer r.Close()
	return io.ReadAll(r)
}

// WriteFile saves data to path.
func WriteFile(ctx context.Context, s Store, path string, data []byte) error {
	_, err := s.Save(ctx, path, bytes.NewReader(data))
	return err
}
