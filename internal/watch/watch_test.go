package watch_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nfrund/contractgen/internal/watch"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestWatcherRegeneratesOnChange(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "message.go")
	require.NoError(t, os.WriteFile(path, []byte("package message\n"), 0644))

	var calls atomic.Int32
	w := watch.New(path, 20*time.Millisecond, func(ctx context.Context) error {
		calls.Add(1)
		return errors.New("broken schema")
	}, quietLogger())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	// Give the watcher time to register the directory.
	time.Sleep(100 * time.Millisecond)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "message_contract.go"), []byte("package message\n"), 0644))
	time.Sleep(100 * time.Millisecond)
	assert.Zero(t, calls.Load(), "changes to other files are ignored")

	for i := 0; i < 3; i++ {
		require.NoError(t, os.WriteFile(path, []byte("package message\n// edit\n"), 0644))
	}
	assert.Eventually(t, func() bool { return calls.Load() >= 1 }, 2*time.Second, 10*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err, "a failing pass must not stop the watcher with an error")
	case <-time.After(2 * time.Second):
		t.Fatal("watcher did not stop after cancellation")
	}
}

func TestWatcherMissingDirectory(t *testing.T) {
	w := watch.New(filepath.Join(t.TempDir(), "missing", "message.go"), 20*time.Millisecond,
		func(context.Context) error { return nil }, quietLogger())

	err := w.Run(context.Background())
	assert.ErrorContains(t, err, "failed to watch")
}
