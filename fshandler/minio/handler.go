package minio

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"sort"
	"strings"

	"github.com/hupe1980/attrcodec/fshandler"
	"github.com/minio/minio-go/v7"
	"golang.org/x/sync/errgroup"
)

// Handler implements fshandler.Handler for MinIO and S3-compatible storage.
// The segment directory is a key prefix inside the bucket.
type Handler struct {
	client *minio.Client
	bucket string
	dir    string

	removeConcurrency int
}

// Option configures a Handler.
type Option func(*Handler)

// WithRemoveConcurrency limits parallel deletes in RemoveAll. Default 8.
func WithRemoveConcurrency(n int) Option {
	return func(h *Handler) {
		if n > 0 {
			h.removeConcurrency = n
		}
	}
}

// New creates a handler for the segment directory dir in bucket.
func New(client *minio.Client, bucket, dir string, optFns ...Option) *Handler {
	h := &Handler{
		client:            client,
		bucket:            bucket,
		dir:               strings.Trim(path.Clean("/"+dir), "/"),
		removeConcurrency: 8,
	}
	for _, fn := range optFns {
		fn(h)
	}
	return h
}

// Directory returns the key prefix of the segment.
func (h *Handler) Directory() string { return h.dir }

func (h *Handler) listPrefix() string {
	if h.dir == "" {
		return ""
	}
	return h.dir + "/"
}

// IsDirectory reports whether at least one object lives under the prefix.
func (h *Handler) IsDirectory(ctx context.Context) (bool, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel() // stops the listing goroutine after the first object

	for obj := range h.client.ListObjects(ctx, h.bucket, minio.ListObjectsOptions{
		Prefix:    h.listPrefix(),
		Recursive: true,
		MaxKeys:   1,
	}) {
		if obj.Err != nil {
			return false, obj.Err
		}
		return true, nil
	}
	return false, nil
}

// ListDirectory returns the keys directly below the prefix, sorted.
func (h *Handler) ListDirectory(ctx context.Context) ([]string, error) {
	return h.list(ctx, false)
}

func (h *Handler) list(ctx context.Context, recursive bool) ([]string, error) {
	var keys []string
	for obj := range h.client.ListObjects(ctx, h.bucket, minio.ListObjectsOptions{
		Prefix:    h.listPrefix(),
		Recursive: recursive,
	}) {
		if obj.Err != nil {
			return nil, obj.Err
		}
		// Common prefixes come back as keys with a trailing slash.
		if strings.HasSuffix(obj.Key, "/") {
			continue
		}
		keys = append(keys, obj.Key)
	}
	sort.Strings(keys)
	return keys, nil
}

// RemoveAll deletes every object below the prefix.
func (h *Handler) RemoveAll(ctx context.Context) error {
	keys, err := h.list(ctx, true)
	if err != nil {
		return err
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(h.removeConcurrency)
	for _, key := range keys {
		g.Go(func() error {
			err := h.client.RemoveObject(gctx, h.bucket, key, minio.RemoveObjectOptions{})
			if err != nil && !isNotFound(err) {
				return err
			}
			return nil
		})
	}
	return g.Wait()
}

// Open checks that the object exists and returns a seekable reader on it.
func (h *Handler) Open(ctx context.Context, key string) (fshandler.ReadFile, error) {
	if _, err := h.client.StatObject(ctx, h.bucket, key, minio.StatObjectOptions{}); err != nil {
		if isNotFound(err) {
			return nil, fmt.Errorf("%s: %w", key, fshandler.ErrNotFound)
		}
		return nil, err
	}

	obj, err := h.client.GetObject(ctx, h.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, err
	}
	return obj, nil
}

// Create returns a buffered writer. The object is uploaded on Close.
func (h *Handler) Create(ctx context.Context, key string) (fshandler.WriteFile, error) {
	return &writableObject{
		ctx:    ctx,
		client: h.client,
		bucket: h.bucket,
		key:    key,
	}, nil
}

func isNotFound(err error) bool {
	code := minio.ToErrorResponse(err).Code
	return code == "NoSuchKey" || code == "NotFound"
}

type writableObject struct {
	ctx    context.Context
	client *minio.Client
	bucket string
	key    string
	buf    bytes.Buffer
	closed bool
}

func (w *writableObject) Write(p []byte) (int, error) {
	if w.closed {
		return 0, io.ErrClosedPipe
	}
	return w.buf.Write(p)
}

func (w *writableObject) Close() error {
	if w.closed {
		return errors.New("already closed")
	}
	w.closed = true

	_, err := w.client.PutObject(w.ctx, w.bucket, w.key, bytes.NewReader(w.buf.Bytes()), int64(w.buf.Len()), minio.PutObjectOptions{
		ContentType: "application/octet-stream",
	})
	return err
}
