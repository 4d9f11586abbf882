package fshandler

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemory_ReadWriteList(t *testing.T) {
	ctx := context.Background()
	mfs := NewMemoryFS()
	h := mfs.Handler("/seg/1")

	ok, err := h.IsDirectory(ctx)
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = h.ListDirectory(ctx)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = h.Create(ctx, "/seg/1/a.ra")
	assert.ErrorIs(t, err, ErrNotFound)

	mfs.Mkdir("/seg/1")
	mfs.Mkdir("/seg/1/child")
	mfs.Put("/seg/1/child/deep.ra", []byte("deep"))
	mfs.Put("/seg/2/other.ra", []byte("other"))

	assert.Equal(t, []byte("abc"), writeThenRead(t, h, "a.ra", []byte("abc")))

	paths, err := h.ListDirectory(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"/seg/1/a.ra"}, paths)

	_, err = h.Open(ctx, "/seg/1/missing.ra")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, h.RemoveAll(ctx))
	ok, err = h.IsDirectory(ctx)
	require.NoError(t, err)
	assert.False(t, ok)

	_, found := mfs.Get("/seg/1/child/deep.ra")
	assert.False(t, found)
	_, found = mfs.Get("/seg/2/other.ra")
	assert.True(t, found)
}

func TestMemory_WriteVisibleOnClose(t *testing.T) {
	ctx := context.Background()
	mfs := NewMemoryFS()
	mfs.Mkdir("/d")
	h := mfs.Handler("/d")

	w, err := h.Create(ctx, "/d/x.ra")
	require.NoError(t, err)
	_, err = w.Write([]byte("data"))
	require.NoError(t, err)

	_, found := mfs.Get("/d/x.ra")
	assert.False(t, found)

	require.NoError(t, w.Close())
	got, found := mfs.Get("/d/x.ra")
	require.True(t, found)
	assert.Equal(t, []byte("data"), got)

	assert.Error(t, w.Close())
	_, err = w.Write([]byte("more"))
	assert.Error(t, err)

	mfs.Remove("/d/x.ra")
	_, found = mfs.Get("/d/x.ra")
	assert.False(t, found)
}
