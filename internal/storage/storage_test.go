package storage

import (
	"bytes"
	"context"
	"io"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAferoStore_Unit(t *testing.T) {
	memFs := afero.NewMemMapFs()
	store := NewAferoStore(memFs)
	ctx := context.Background()

	filePath := "gen/message/message_contract.go"
	fileContent := "package message\n"

	t.Run("Save", func(t *testing.T) {
		bytesWritten, err := store.Save(ctx, filePath, bytes.NewReader([]byte(fileContent)))

		require.NoError(t, err)
		assert.Equal(t, int64(len(fileContent)), bytesWritten)

		readBytes, err := afero.ReadFile(memFs, filePath)
		require.NoError(t, err)
		assert.Equal(t, fileContent, string(readBytes))

		entries, err := afero.ReadDir(memFs, "gen/message")
		require.NoError(t, err)
		assert.Len(t, entries, 1, "no temporary files should be left behind")
	})

	t.Run("Save overwrites", func(t *testing.T) {
		require.NoError(t, WriteFile(ctx, store, filePath, []byte("package other\n")))

		data, err := ReadFile(ctx, store, filePath)
		require.NoError(t, err)
		assert.Equal(t, "package other\n", string(data))
	})

	t.Run("Get", func(t *testing.T) {
		file, err := store.Get(ctx, filePath)
		require.NoError(t, err)
		defer file.Close()

		readBytes, err := io.ReadAll(file)
		require.NoError(t, err)
		assert.Equal(t, "package other\n", string(readBytes))
	})

	t.Run("Exists", func(t *testing.T) {
		exists, err := store.Exists(ctx, filePath)
		require.NoError(t, err)
		assert.True(t, exists)

		exists, err = store.Exists(ctx, "gen/nothing.go")
		require.NoError(t, err)
		assert.False(t, exists)
	})

	t.Run("Get non-existent file", func(t *testing.T) {
		_, err := store.Get(ctx, "path/to/nothing.txt")
		assert.Error(t, err)

		_, err = ReadFile(ctx, store, "path/to/nothing.txt")
		assert.Error(t, err)
	})

	t.Run("Save with cancelled context", func(t *testing.T) {
		cancelled, cancel := context.WithCancel(ctx)
		cancel()

		_, err := store.Save(cancelled, "gen/cancelled.go", bytes.NewReader(nil))
		assert.ErrorIs(t, err, context.Canceled)

		exists, err := afero.Exists(memFs, "gen/cancelled.go")
		require.NoError(t, err)
		assert.False(t, exists)
	})
}
