package minio

import (
	"context"
	"io"
	"testing"

	"github.com/hupe1980/attrcodec/fshandler"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var _ fshandler.Handler = (*Handler)(nil)

func TestHandler_Directory(t *testing.T) {
	assert.Equal(t, "segments/42", New(nil, "b", "segments/42/").Directory())
	assert.Equal(t, "", New(nil, "b", "/").Directory())
}

// TestHandler_Integration requires a running MinIO instance.
// Skip if not available.
func TestHandler_Integration(t *testing.T) {
	endpoint := "localhost:9000"
	accessKey := "minioadmin"
	secretKey := "minioadmin"
	bucket := "test-attrcodec"

	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: false,
	})
	if err != nil {
		t.Skipf("MinIO client creation failed: %v", err)
	}

	ctx := context.Background()

	// Check if MinIO is reachable
	if _, err = client.ListBuckets(ctx); err != nil {
		t.Skipf("MinIO not available: %v", err)
	}

	exists, err := client.BucketExists(ctx, bucket)
	require.NoError(t, err)
	if !exists {
		require.NoError(t, client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{}))
	}

	h := New(client, bucket, "it/segment")
	require.NoError(t, h.RemoveAll(ctx))

	ok, err := h.IsDirectory(ctx)
	require.NoError(t, err)
	assert.False(t, ok)

	w, err := h.Create(ctx, "it/segment/age.ra")
	require.NoError(t, err)
	_, err = w.Write([]byte("hello minio world"))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	w, err = h.Create(ctx, "it/segment/nested/deep.ra")
	require.NoError(t, err)
	require.NoError(t, w.Close())

	ok, err = h.IsDirectory(ctx)
	require.NoError(t, err)
	assert.True(t, ok)

	keys, err := h.ListDirectory(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"it/segment/age.ra"}, keys)

	r, err := h.Open(ctx, "it/segment/age.ra")
	require.NoError(t, err)
	_, err = r.Seek(6, io.SeekStart)
	require.NoError(t, err)
	buf := make([]byte, 5)
	_, err = io.ReadFull(r, buf)
	require.NoError(t, err)
	assert.Equal(t, "minio", string(buf))
	require.NoError(t, r.Close())

	_, err = h.Open(ctx, "it/segment/missing.ra")
	assert.ErrorIs(t, err, fshandler.ErrNotFound)

	require.NoError(t, h.RemoveAll(ctx))
	ok, err = h.IsDirectory(ctx)
	require.NoError(t, err)
	assert.False(t, ok)
}
