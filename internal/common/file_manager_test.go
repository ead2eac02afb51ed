package common

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileManager_WriteThenRead(t *testing.T) {
	fm := NewFileManager(zerolog.Nop())
	path := filepath.Join(t.TempDir(), "nested", "dir", "out.txt")

	require.NoError(t, fm.WriteFile(path, []byte("payload"), 0644))
	assert.True(t, fm.FileExists(path))

	data, err := fm.ReadFile(path, DefaultFileReadOptions())
	require.NoError(t, err)
	assert.Equal(t, "payload", string(data))
}

func TestFileManager_ReadMissingFile(t *testing.T) {
	fm := NewFileManager(zerolog.Nop())

	data, err := fm.ReadFile(filepath.Join(t.TempDir(), "ghost.txt"), DefaultFileReadOptions())

	require.Error(t, err)
	assert.Nil(t, data)
}

func TestFileManager_ReadRejectsOversizedFile(t *testing.T) {
	fm := NewFileManager(zerolog.Nop())
	path := filepath.Join(t.TempDir(), "big.txt")
	require.NoError(t, os.WriteFile(path, make([]byte, 64), 0644))

	data, err := fm.ReadFile(path, FileReadOptions{MaxSize: 16})

	require.Error(t, err)
	assert.Nil(t, data)
}

func TestFileManager_ReadRejectsDirectory(t *testing.T) {
	fm := NewFileManager(zerolog.Nop())

	data, err := fm.ReadFile(t.TempDir(), DefaultFileReadOptions())

	require.Error(t, err)
	assert.Nil(t, data)
}

func TestFileManager_EnsureDirectory(t *testing.T) {
	fm := NewFileManager(zerolog.Nop())
	dir := filepath.Join(t.TempDir(), "a", "b", "c")

	require.NoError(t, fm.EnsureDirectory(dir, 0755))
	require.NoError(t, fm.EnsureDirectory(dir, 0755)) // idempotent

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestFileManager_EnsureDirectoryRejectsFile(t *testing.T) {
	fm := NewFileManager(zerolog.Nop())
	path := filepath.Join(t.TempDir(), "file.txt")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0644))

	assert.Error(t, fm.EnsureDirectory(path, 0755))
}
