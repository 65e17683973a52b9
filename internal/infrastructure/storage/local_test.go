package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *LocalStore {
	t.Helper()
	store, err := NewLocalStore(t.TempDir())
	require.NoError(t, err)
	return store
}

func TestLocalStoreSaveAndRead(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	key, err := store.Save(ctx, "portrait.jpg", strings.NewReader("image-bytes"))
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(key, "speaker-"))
	assert.True(t, strings.HasSuffix(key, ".jpg"), "original extension must survive: %s", key)

	data, err := os.ReadFile(filepath.Join(store.Dir(), key))
	require.NoError(t, err)
	assert.Equal(t, "image-bytes", string(data))
}

func TestLocalStoreKeysAreUnique(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	seen := make(map[string]bool)
	for i := 0; i < 20; i++ {
		key, err := store.Save(ctx, "same.png", strings.NewReader("x"))
		require.NoError(t, err)
		assert.False(t, seen[key], "key collision: %s", key)
		seen[key] = true
	}
}

func TestLocalStoreDeleteIsIdempotent(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	key, err := store.Save(ctx, "speaker.png", strings.NewReader("x"))
	require.NoError(t, err)

	removed, err := store.Delete(ctx, key)
	require.NoError(t, err)
	assert.True(t, removed)

	// Second delete of the same key reports nothing removed, without error.
	removed, err = store.Delete(ctx, key)
	require.NoError(t, err)
	assert.False(t, removed)

	removed, err = store.Delete(ctx, "never-existed.png")
	require.NoError(t, err)
	assert.False(t, removed)
}

func TestLocalStoreExists(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	key, err := store.Save(ctx, "a.gif", strings.NewReader("x"))
	require.NoError(t, err)

	ok, err := store.Exists(ctx, key)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = store.Exists(ctx, "missing.gif")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestLocalStoreListSkipsTempFiles(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	key, err := store.Save(ctx, "kept.jpg", strings.NewReader("x"))
	require.NoError(t, err)

	// Simulate an in-progress staging file.
	require.NoError(t, os.WriteFile(filepath.Join(store.Dir(), ".upload-123"), []byte("partial"), 0o644))

	assets, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, assets, 1)
	assert.Equal(t, key, assets[0].Key)
}
