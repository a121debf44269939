package file_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cory-johannsen/tombs/internal/storage/file"
	"github.com/cory-johannsen/tombs/internal/storage/storagetest"
)

func TestStore_Contract(t *testing.T) {
	store, err := file.New(t.TempDir())
	require.NoError(t, err)
	storagetest.Run(t, store)
}

func TestNew_CreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "saves")
	_, err := file.New(dir)
	require.NoError(t, err)
	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestNew_EmptyDir(t *testing.T) {
	_, err := file.New("")
	assert.Error(t, err)
}

func TestStore_WritesSlotFile(t *testing.T) {
	dir := t.TempDir()
	store, err := file.New(dir)
	require.NoError(t, err)

	require.NoError(t, store.Save(context.Background(), "hero", []byte("blob")))
	data, err := os.ReadFile(filepath.Join(dir, "hero"+file.Ext))
	require.NoError(t, err)
	assert.Equal(t, "blob", string(data))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no temporary files are left behind")
}

func TestStore_ListIgnoresStrangers(t *testing.T) {
	dir := t.TempDir()
	store, err := file.New(dir)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "old"+file.Ext), 0o755))
	require.NoError(t, store.Save(context.Background(), "hero", []byte("blob")))

	infos, err := store.List(context.Background())
	require.NoError(t, err)
	require.Len(t, infos, 1)
	assert.Equal(t, "hero", infos[0].Slot)
}

func TestStore_CancelledContext(t *testing.T) {
	store, err := file.New(t.TempDir())
	require.NoError(t, err)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, store.Save(ctx, "hero", []byte("x")), context.Canceled)
}
