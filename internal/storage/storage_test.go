package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Domenick1991/staybooking/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStore_Put(t *testing.T) {
	dir := t.TempDir()
	store, err := NewLocalStore(dir, "/uploads/")
	require.NoError(t, err)

	url, err := store.Put(context.Background(), "images/cat.jpg", strings.NewReader("meow"), "image/jpeg")
	require.NoError(t, err)
	assert.Equal(t, "/uploads/images/cat.jpg", url)

	data, err := os.ReadFile(filepath.Join(dir, "images", "cat.jpg"))
	require.NoError(t, err)
	assert.Equal(t, "meow", string(data))

	leftovers, err := filepath.Glob(filepath.Join(dir, "images", ".upload-*"))
	require.NoError(t, err)
	assert.Empty(t, leftovers)
}

func TestLocalStore_PutStaysInsideDir(t *testing.T) {
	dir := t.TempDir()
	store, err := NewLocalStore(filepath.Join(dir, "root"), "/uploads")
	require.NoError(t, err)

	url, err := store.Put(context.Background(), "../../escape.jpg", strings.NewReader("x"), "")
	require.NoError(t, err)
	assert.Equal(t, "/uploads/escape.jpg", url)
	assert.FileExists(t, filepath.Join(dir, "root", "escape.jpg"))
	assert.NoFileExists(t, filepath.Join(dir, "escape.jpg"))
}

func TestLocalStore_PutCancelled(t *testing.T) {
	store, err := NewLocalStore(t.TempDir(), "/uploads")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = store.Put(ctx, "images/a.jpg", strings.NewReader("data"), "")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestLocalStore_InvalidKey(t *testing.T) {
	store, err := NewLocalStore(t.TempDir(), "/uploads")
	require.NoError(t, err)

	_, err = store.Put(context.Background(), "/", strings.NewReader("data"), "")
	assert.Error(t, err)
}

func TestDownloadURL(t *testing.T) {
	got := downloadURL("stays.appspot.com", "images/my photo.jpg", "tok")
	assert.Equal(t, "https://firebasestorage.googleapis.com/v0/b/stays.appspot.com/o/images%2Fmy%20photo.jpg?alt=media&token=tok", got)
}

func TestNew_UnknownBackend(t *testing.T) {
	_, err := New(context.Background(), config.StorageConfig{Backend: "ftp"})
	assert.Error(t, err)
}

func TestNew_Local(t *testing.T) {
	store, err := New(context.Background(), config.StorageConfig{Backend: "local", LocalDir: t.TempDir(), BaseURL: "/uploads"})
	require.NoError(t, err)
	assert.IsType(t, &LocalStore{}, store)
}
