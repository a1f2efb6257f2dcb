package blob

import (
	"bytes"
	"context"
	"io"
	"testing"

	"intellilab-gc-be/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func exerciseStore(t *testing.T, store Store) {
	t.Helper()
	ctx := context.Background()

	info, err := store.Put(ctx, "ocr/abc.png", bytes.NewReader([]byte("hello")), PutOptions{
		ContentType: "image/png",
		Metadata:    map[string]string{"filename": "trace.png"},
	})
	require.NoError(t, err)
	assert.Equal(t, "ocr/abc.png", info.Key)
	assert.Equal(t, int64(5), info.Size)

	_, err = store.Put(ctx, "ocr/abc.png", bytes.NewReader([]byte("x")), PutOptions{})
	assert.ErrorIs(t, err, ErrExists)

	head, err := store.Head(ctx, "ocr/abc.png")
	require.NoError(t, err)
	assert.Equal(t, "image/png", head.ContentType)
	assert.Equal(t, "trace.png", head.Metadata["filename"])

	got, rc, err := store.Get(ctx, "ocr/abc.png")
	require.NoError(t, err)
	body, err := io.ReadAll(rc)
	require.NoError(t, err)
	require.NoError(t, rc.Close())
	assert.Equal(t, "hello", string(body))
	assert.Equal(t, head.ETag, got.ETag)

	_, err = store.Put(ctx, "other/x.png", bytes.NewReader([]byte("y")), PutOptions{})
	require.NoError(t, err)

	list, err := store.List(ctx, "ocr/")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "ocr/abc.png", list[0].Key)

	all, err := store.List(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	deleted, err := store.Delete(ctx, "ocr/abc.png")
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = store.Delete(ctx, "ocr/abc.png")
	require.NoError(t, err)
	assert.False(t, deleted)

	_, err = store.Head(ctx, "ocr/abc.png")
	assert.ErrorIs(t, err, ErrNotFound)
	_, _, err = store.Get(ctx, "ocr/abc.png")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStore(t *testing.T) {
	exerciseStore(t, NewMemory())
}

func TestFilesystemStore(t *testing.T) {
	store, err := NewFilesystem(t.TempDir())
	require.NoError(t, err)
	exerciseStore(t, store)
}

func TestFilesystemRejectsTraversal(t *testing.T) {
	store, err := NewFilesystem(t.TempDir())
	require.NoError(t, err)

	for _, key := range []string{"", "../escape.png", "/etc/passwd", "a/../../b", "x.png.meta"} {
		_, err := store.Put(context.Background(), key, bytes.NewReader([]byte("x")), PutOptions{})
		assert.ErrorIs(t, err, ErrBadKey, key)
	}
}

func TestOpen(t *testing.T) {
	ctx := context.Background()

	s, err := Open(ctx, config.BlobConfig{Driver: "memory"})
	require.NoError(t, err)
	assert.Equal(t, DriverMemory, s.Driver())

	s, err = Open(ctx, config.BlobConfig{FsRoot: t.TempDir()})
	require.NoError(t, err)
	assert.Equal(t, DriverFilesystem, s.Driver())

	_, err = Open(ctx, config.BlobConfig{Driver: "s3"})
	assert.Error(t, err)

	_, err = Open(ctx, config.BlobConfig{Driver: "ftp"})
	assert.Error(t, err)
}
