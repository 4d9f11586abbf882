package s3

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/hupe1980/attrcodec/fshandler"
	"golang.org/x/sync/errgroup"
)

// Client is the subset of the S3 API the handler uses.
// *s3.Client satisfies it.
type Client interface {
	manager.UploadAPIClient
	HeadObject(ctx context.Context, params *s3.HeadObjectInput, optFns ...func(*s3.Options)) (*s3.HeadObjectOutput, error)
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	ListObjectsV2(ctx context.Context, params *s3.ListObjectsV2Input, optFns ...func(*s3.Options)) (*s3.ListObjectsV2Output, error)
	DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
}

// Option configures a Handler.
type Option func(*Handler)

// WithUploaderOptions customizes the multipart uploader used on Close.
func WithUploaderOptions(optFns ...func(*manager.Uploader)) Option {
	return func(h *Handler) {
		h.uploaderOpts = append(h.uploaderOpts, optFns...)
	}
}

// WithRemoveConcurrency limits parallel deletes in RemoveAll. Default 8.
func WithRemoveConcurrency(n int) Option {
	return func(h *Handler) {
		if n > 0 {
			h.removeConcurrency = n
		}
	}
}

// Handler implements fshandler.Handler on an S3 bucket.
// The segment directory is a key prefix; a directory exists once it holds an object.
type Handler struct {
	client Client
	bucket string
	dir    string

	uploader          *manager.Uploader
	uploaderOpts      []func(*manager.Uploader)
	removeConcurrency int
}

// New creates a handler for the segment directory dir in bucket.
func New(client Client, bucket, dir string, optFns ...Option) *Handler {
	h := &Handler{
		client:            client,
		bucket:            bucket,
		dir:               strings.Trim(path.Clean("/"+dir), "/"),
		removeConcurrency: 8,
	}
	for _, fn := range optFns {
		fn(h)
	}
	h.uploader = manager.NewUploader(client, h.uploaderOpts...)
	return h
}

// NewFromDefaultConfig loads the shared AWS configuration (environment,
// shared config files, instance roles) and creates a handler with it.
func NewFromDefaultConfig(ctx context.Context, bucket, dir string, cfgOptFns ...func(*config.LoadOptions) error) (*Handler, error) {
	cfg, err := config.LoadDefaultConfig(ctx, cfgOptFns...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	return New(s3.NewFromConfig(cfg), bucket, dir), nil
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
	out, err := h.client.ListObjectsV2(ctx, &s3.ListObjectsV2Input{
		Bucket:  aws.String(h.bucket),
		Prefix:  aws.String(h.listPrefix()),
		MaxKeys: aws.Int32(1),
	})
	if err != nil {
		return false, err
	}
	return len(out.Contents) > 0, nil
}

// ListDirectory returns the keys directly below the prefix, sorted.
func (h *Handler) ListDirectory(ctx context.Context) ([]string, error) {
	return h.list(ctx, "/")
}

func (h *Handler) list(ctx context.Context, delimiter string) ([]string, error) {
	input := &s3.ListObjectsV2Input{
		Bucket: aws.String(h.bucket),
		Prefix: aws.String(h.listPrefix()),
	}
	if delimiter != "" {
		input.Delimiter = aws.String(delimiter)
	}

	var keys []string
	paginator := s3.NewListObjectsV2Paginator(h.client, input)
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, err
		}
		for _, obj := range page.Contents {
			keys = append(keys, aws.ToString(obj.Key))
		}
	}
	// S3 returns keys in UTF-8 binary order already.
	return keys, nil
}

// RemoveAll deletes every object below the prefix.
func (h *Handler) RemoveAll(ctx context.Context) error {
	keys, err := h.list(ctx, "")
	if err != nil {
		return err
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(h.removeConcurrency)
	for _, key := range keys {
		g.Go(func() error {
			_, err := h.client.DeleteObject(gctx, &s3.DeleteObjectInput{
				Bucket: aws.String(h.bucket),
				Key:    aws.String(key),
			})
			return err
		})
	}
	return g.Wait()
}

// Open checks that the object exists and returns a reader that issues one
// ranged GET per Read call.
func (h *Handler) Open(ctx context.Context, key string) (fshandler.ReadFile, error) {
	head, err := h.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(h.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		var nf *types.NotFound
		if errors.As(err, &nf) {
			return nil, fmt.Errorf("%s: %w", key, fshandler.ErrNotFound)
		}
		var nsk *types.NoSuchKey
		if errors.As(err, &nsk) {
			return nil, fmt.Errorf("%s: %w", key, fshandler.ErrNotFound)
		}
		return nil, err
	}

	return &object{
		ctx:    ctx,
		client: h.client,
		bucket: h.bucket,
		key:    key,
		size:   aws.ToInt64(head.ContentLength),
	}, nil
}

// Create returns a buffered writer. The object is uploaded on Close, so
// permission errors surface there.
func (h *Handler) Create(ctx context.Context, key string) (fshandler.WriteFile, error) {
	return &writableObject{
		ctx:      ctx,
		uploader: h.uploader,
		bucket:   h.bucket,
		key:      key,
	}, nil
}

type object struct {
	ctx    context.Context
	client Client
	bucket string
	key    string
	size   int64
	off    int64
}

func (o *object) Read(p []byte) (int, error) {
	if o.off >= o.size {
		return 0, io.EOF
	}
	if len(p) == 0 {
		return 0, nil
	}
	if err := o.ctx.Err(); err != nil {
		return 0, err
	}

	end := min(o.off+int64(len(p)), o.size) - 1
	resp, err := o.client.GetObject(o.ctx, &s3.GetObjectInput{
		Bucket: aws.String(o.bucket),
		Key:    aws.String(o.key),
		Range:  aws.String(fmt.Sprintf("bytes=%d-%d", o.off, end)),
	})
	if err != nil {
		return 0, err
	}
	defer func() { _ = resp.Body.Close() }()

	n, err := io.ReadFull(resp.Body, p[:end-o.off+1])
	o.off += int64(n)
	if errors.Is(err, io.ErrUnexpectedEOF) {
		// Object shrank since HeadObject.
		return n, io.EOF
	}
	return n, err
}

func (o *object) Seek(offset int64, whence int) (int64, error) {
	var abs int64
	switch whence {
	case io.SeekStart:
		abs = offset
	case io.SeekCurrent:
		abs = o.off + offset
	case io.SeekEnd:
		abs = o.size + offset
	default:
		return 0, errors.New("s3: invalid whence")
	}
	if abs < 0 {
		return 0, errors.New("s3: negative position")
	}
	o.off = abs
	return abs, nil
}

func (o *object) Close() error {
	return nil
}

type writableObject struct {
	ctx      context.Context
	uploader *manager.Uploader
	bucket   string
	key      string
	buf      bytes.Buffer
	closed   bool
}

func (w *writableObject) Write(p []byte) (int, error) {
	if w.closed {
		return 0, io.ErrClosedPipe
	}
	return w.buf.Write(p)
}

func (w *writableObject) Close() error {
	if w.closed {
		return io.ErrClosedPipe
	}
	w.closed = true

	_, err := w.uploader.Upload(w.ctx, &s3.PutObjectInput{
		Bucket: aws.String(w.bucket),
		Key:    aws.String(w.key),
		Body:   bytes.NewReader(w.buf.Bytes()),
	})
	return err
}
