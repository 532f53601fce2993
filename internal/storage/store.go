package storage

import (
	"context"
	"io"
)

// Store defines the interface for reading schemas and writing generated files.
type Store interface {
	Save(ctx context.Context, path string, reader io.Reader) (int64, error)
	Get(ctx context.Context, path string) (io.ReadCloser, error)
	Exists(ctx context.Context, path string) (bool, error)
}
