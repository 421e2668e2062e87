package blob

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFSStorePutWritesFileAndReturnsURL(t *testing.T) {
	dir := t.TempDir()
	store, err := NewFSStore(dir, "/media/")
	require.NoError(t, err)

	url, err := store.Put(context.Background(), "scores/emp-1/photo.jpg", []byte("jpeg-bytes"), "image/jpeg")
	require.NoError(t, err)
	assert.Equal(t, "/media/scores/emp-1/photo.jpg", url)

	data, err := os.ReadFile(filepath.Join(dir, "scores", "emp-1", "photo.jpg"))
	require.NoError(t, err)
	assert.Equal(t, []byte("jpeg-bytes"), data)
}

func TestFSStorePutOverwrites(t *testing.T) {
	dir := t.TempDir()
	store, err := NewFSStore(dir, "/media")
	require.NoError(t, err)

	ctx := context.Background()
	_, err = store.Put(ctx, "a.jpg", []byte("first"), "image/jpeg")
	require.NoError(t, err)
	_, err = store.Put(ctx, "a.jpg", []byte("second"), "image/jpeg")
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(dir, "a.jpg"))
	require.NoError(t, err)
	assert.Equal(t, []byte("second"), data)
}

func TestFSStorePutLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	store, err := NewFSStore(dir, "/media")
	require.NoError(t, err)

	_, err = store.Put(context.Background(), "a.jpg", []byte("data"), "image/jpeg")
	require.NoError(t, err)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestFSStorePutRejectsEscapingPaths(t *testing.T) {
	store, err := NewFSStore(t.TempDir(), "/media")
	require.NoError(t, err)

	ctx := context.Background()
	for _, path := range []string{"../outside.jpg", "/etc/passwd", "a/../../b.jpg", "."} {
		_, err := store.Put(ctx, path, []byte("data"), "image/jpeg")
		assert.Error(t, err, "path %q should be rejected", path)
	}
}

func TestFSStoreCreatesBaseDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "media")
	_, err := NewFSStore(dir, "/media")
	require.NoError(t, err)

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestMemoryStorePutAndGet(t *testing.T) {
	store := NewMemoryStore()

	url, err := store.Put(context.Background(), "a/b.jpg", []byte("data"), "image/jpeg")
	require.NoError(t, err)
	assert.Equal(t, "mem://a/b.jpg", url)

	data, ok := store.Get("a/b.jpg")
	assert.True(t, ok)
	assert.Equal(t, []byte("data"), data)
	assert.Equal(t, 1, store.Len())
}

func TestMemoryStoreErrInjection(t *testing.T) {
	store := NewMemoryStore()
	store.Err = os.ErrPermission

	_, err := store.Put(context.Background(), "a.jpg", []byte("data"), "image/jpeg")
	assert.ErrorIs(t, err, os.ErrPermission)
	assert.Equal(t, 0, store.Len())
}
