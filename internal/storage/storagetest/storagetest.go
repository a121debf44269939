// Package storagetest holds the behaviour every storage.SaveStore must share.
package storagetest

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cory-johannsen/tombs/internal/storage"
)

// Run exercises store against the SaveStore contract. The store must start
// empty.
func Run(t *testing.T, store storage.SaveStore) {
	t.Helper()
	ctx := context.Background()

	t.Run("load missing", func(t *testing.T) {
		_, err := store.Load(ctx, "missing")
		assert.ErrorIs(t, err, storage.ErrSaveNotFound)
	})

	t.Run("delete missing", func(t *testing.T) {
		assert.ErrorIs(t, store.Delete(ctx, "missing"), storage.ErrSaveNotFound)
	})

	t.Run("invalid slot", func(t *testing.T) {
		assert.ErrorIs(t, store.Save(ctx, "../escape", []byte("x")), storage.ErrInvalidSlot)
		_, err := store.Load(ctx, "a/b")
		assert.ErrorIs(t, err, storage.ErrInvalidSlot)
		assert.ErrorIs(t, store.Delete(ctx, ""), storage.ErrInvalidSlot)
	})

	t.Run("save load overwrite delete", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, "alpha", []byte("first")))
		got, err := store.Load(ctx, "alpha")
		require.NoError(t, err)
		assert.Equal(t, []byte("first"), got)

		require.NoError(t, store.Save(ctx, "alpha", []byte("second save")))
		got, err = store.Load(ctx, "alpha")
		require.NoError(t, err)
		assert.Equal(t, []byte("second save"), got)

		require.NoError(t, store.Delete(ctx, "alpha"))
		_, err = store.Load(ctx, "alpha")
		assert.ErrorIs(t, err, storage.ErrSaveNotFound)
	})

	t.Run("list", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, "zeta", []byte("zz")))
		require.NoError(t, store.Save(ctx, "beta", []byte("bbbb")))
		t.Cleanup(func() {
			_ = store.Delete(ctx, "zeta")
			_ = store.Delete(ctx, "beta")
		})

		infos, err := store.List(ctx)
		require.NoError(t, err)
		require.Len(t, infos, 2)
		assert.Equal(t, "beta", infos[0].Slot)
		assert.Equal(t, 4, infos[0].Size)
		assert.Equal(t, "zeta", infos[1].Slot)
		assert.Equal(t, 2, infos[1].Size)
		assert.False(t, infos[0].UpdatedAt.IsZero())
	})

	t.Run("binary blob", func(t *testing.T) {
		blob := []byte{0, 1, 2, 0xFF, 0xFE, 0}
		require.NoError(t, store.Save(ctx, "bin", blob))
		t.Cleanup(func() { _ = store.Delete(ctx, "bin") })
		got, err := store.Load(ctx, "bin")
		require.NoError(t, err)
		assert.Equal(t, blob, got)
	})
}
