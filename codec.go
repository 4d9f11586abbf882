package attrcodec

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"strings"
	"sync"
	"time"

	"github.com/hupe1980/attrcodec/fshandler"
	"github.com/hupe1980/attrcodec/resource"
	"github.com/hupe1980/attrcodec/segment"
)

// Codec reads and writes the attribute files of segment directories.
//
// All public operations on one Codec are mutually exclusive. The lock does
// not coordinate with other Codec values or other processes that touch the
// same directory.
type Codec struct {
	mu   sync.Mutex
	opts options
}

// New creates a Codec.
func New(optFns ...Option) *Codec {
	return &Codec{opts: applyOptions(optFns)}
}

// AttributeExtension returns the extension of attribute files.
func (c *Codec) AttributeExtension() string { return c.opts.attrExt }

// RowIDExtension returns the extension of row-id files.
func (c *Codec) RowIDExtension() string { return c.opts.rowIDExt }

// ReadAll decodes every attribute file in the handler's directory.
//
// The first file whose name ends with the row-id extension supplies the row
// identifiers shared by all returned attributes. Without one, every
// attribute carries an empty list, meaning the identifiers are unknown.
func (c *Codec) ReadAll(ctx context.Context, h fshandler.Handler) (*segment.AttributeSet, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	start := time.Now()
	set, rowIDs, nbytes, err := c.readAll(ctx, h)

	c.opts.metricsCollector.RecordReadAll(set.Len(), nbytes, time.Since(start), err)
	c.opts.logger.WithDirectory(h.Directory()).LogReadAll(ctx, set.Len(), len(rowIDs), nbytes, err)

	if err != nil {
		return nil, err
	}
	return set, nil
}

func (c *Codec) readAll(ctx context.Context, h fshandler.Handler) (*segment.AttributeSet, segment.RowIDs, int64, error) {
	paths, err := c.listDirectory(ctx, h)
	if err != nil {
		return nil, nil, 0, err
	}

	var rowIDs segment.RowIDs
	rowIDPath := ""
	for _, p := range paths {
		if c.isRowIDFile(p) {
			rowIDPath = p
			break
		}
	}
	if rowIDPath != "" {
		if rowIDs, err = c.readRawRowIDs(ctx, h, rowIDPath, nil); err != nil {
			return nil, nil, 0, err
		}
	}

	set := segment.NewAttributeSet()
	var nbytes int64
	for _, p := range paths {
		if c.isRowIDFile(p) {
			continue
		}
		name, ok := fieldName(baseName(p), c.opts.attrExt)
		if !ok {
			continue
		}

		data, total, err := c.readRawPayload(ctx, h, p, 0, math.MaxInt64)
		if err != nil {
			return nil, nil, 0, err
		}
		set.Put(&segment.Attribute{
			Name:   name,
			Data:   data,
			Nbytes: total,
			RowIDs: rowIDs,
		})
		nbytes += int64(len(data))

		c.opts.logger.DebugContext(ctx, "decoded attribute",
			"path", p,
			"field", name,
			"bytes", total,
		)
	}

	return set, rowIDs, nbytes, nil
}

// WriteAll writes one attribute file per attribute in set, in name order.
//
// An empty or nil set writes nothing. Row identifiers are not persisted
// unless the Codec was created WithRowIDPersistence. A failure stops the
// remaining writes; files already written stay on disk.
func (c *Codec) WriteAll(ctx context.Context, h fshandler.Handler, set *segment.AttributeSet) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if set.Len() == 0 {
		return nil
	}

	start := time.Now()
	written, nbytes, err := c.writeAll(ctx, h, set)

	c.opts.metricsCollector.RecordWriteAll(written, nbytes, time.Since(start), err)
	c.opts.logger.WithDirectory(h.Directory()).LogWriteAll(ctx, written, nbytes, err)

	return err
}

func (c *Codec) writeAll(ctx context.Context, h fshandler.Handler, set *segment.AttributeSet) (int, int64, error) {
	for _, a := range set.All() {
		if err := a.Validate(); err != nil {
			return 0, 0, err
		}
	}

	dir := h.Directory()

	if c.opts.rowIDFile != "" {
		if err := segment.ValidateName(c.opts.rowIDFile); err != nil {
			return 0, 0, fmt.Errorf("row-id file: %w", err)
		}
		first, _ := set.Get(set.Names()[0])
		p := joinPath(dir, c.opts.rowIDFile+c.opts.rowIDExt)
		if err := c.writeFile(ctx, h, p, encodeRowIDs(first.RowIDs)); err != nil {
			return 0, 0, err
		}
	}

	written := 0
	var nbytes int64
	for name, a := range set.All() {
		p := joinPath(dir, name+c.opts.attrExt)
		if err := c.writeFile(ctx, h, p, a.Data); err != nil {
			return written, nbytes, err
		}
		written++
		nbytes += int64(a.Nbytes)
	}
	return written, nbytes, nil
}

// ReadRowIDs decodes every row-id file in the handler's directory and
// returns their identifiers concatenated in listing order.
func (c *Codec) ReadRowIDs(ctx context.Context, h fshandler.Handler) (segment.RowIDs, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	start := time.Now()
	files, rowIDs, err := c.readRowIDs(ctx, h)

	c.opts.metricsCollector.RecordReadRowIDs(len(rowIDs), time.Since(start), err)
	c.opts.logger.WithDirectory(h.Directory()).LogReadRowIDs(ctx, files, len(rowIDs), err)

	if err != nil {
		return nil, err
	}
	return rowIDs, nil
}

func (c *Codec) readRowIDs(ctx context.Context, h fshandler.Handler) (int, segment.RowIDs, error) {
	paths, err := c.listDirectory(ctx, h)
	if err != nil {
		return 0, nil, err
	}

	var rowIDs segment.RowIDs
	files := 0
	for _, p := range paths {
		if !c.isRowIDFile(p) {
			continue
		}
		if rowIDs, err = c.readRawRowIDs(ctx, h, p, rowIDs); err != nil {
			return files, nil, err
		}
		files++
	}
	return files, rowIDs, nil
}

// ReadRange reads up to count payload bytes of field starting at offset.
//
// The request is clamped to the stored payload: a range running past the end
// returns the remaining bytes, and an offset at or past the end returns none.
// The second result is the payload's full length as stored in the header.
func (c *Codec) ReadRange(ctx context.Context, h fshandler.Handler, field string, offset, count int64) ([]byte, uint64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	start := time.Now()
	data, total, err := c.readRange(ctx, h, field, offset, count)

	c.opts.metricsCollector.RecordReadRange(int64(len(data)), time.Since(start), err)
	c.opts.logger.WithDirectory(h.Directory()).WithField(field).LogReadRange(ctx, offset, count, len(data), total, err)

	if err != nil {
		return nil, 0, err
	}
	return data, total, nil
}

func (c *Codec) readRange(ctx context.Context, h fshandler.Handler, field string, offset, count int64) ([]byte, uint64, error) {
	if err := segment.ValidateName(field); err != nil {
		return nil, 0, err
	}
	if err := c.checkDirectory(ctx, h); err != nil {
		return nil, 0, err
	}
	return c.readRawPayload(ctx, h, joinPath(h.Directory(), field+c.opts.attrExt), offset, count)
}

func (c *Codec) isRowIDFile(p string) bool {
	return strings.HasSuffix(p, c.opts.rowIDExt)
}

func (c *Codec) checkDirectory(ctx context.Context, h fshandler.Handler) error {
	ok, err := h.IsDirectory(ctx)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrDirectoryNotFound, h.Directory(), err)
	}
	if !ok {
		return fmt.Errorf("%w: %s", ErrDirectoryNotFound, h.Directory())
	}
	return nil
}

func (c *Codec) listDirectory(ctx context.Context, h fshandler.Handler) ([]string, error) {
	if err := c.checkDirectory(ctx, h); err != nil {
		return nil, err
	}
	paths, err := h.ListDirectory(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrDirectoryNotFound, h.Directory(), err)
	}
	return paths, nil
}

// readRawPayload reads the payload bytes [offset, offset+count) of the file at
// p, clamped to the payload length stored in the header. It returns the
// clamped bytes and the stored length.
func (c *Codec) readRawPayload(ctx context.Context, h fshandler.Handler, p string, offset, count int64) ([]byte, uint64, error) {
	if offset < 0 || count < 0 || offset > math.MaxInt64-HeaderSize {
		return nil, 0, fmt.Errorf("%w: offset %d, count %d", ErrInvalidRange, offset, count)
	}

	f, err := h.Open(ctx, p)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %s: %w", ErrFileOpen, p, err)
	}
	defer f.Close()

	total, err := readHeader(f, p)
	if err != nil {
		return nil, 0, err
	}

	n := clampCount(total, uint64(offset), uint64(count))
	if n == 0 {
		return []byte{}, total, nil
	}
	if err := checkStored(f, p, uint64(offset)+n); err != nil {
		return nil, total, err
	}

	if _, err := f.Seek(HeaderSize+offset, io.SeekStart); err != nil {
		return nil, total, fmt.Errorf("seek %s: %w", p, err)
	}

	buf, err := c.readPayload(ctx, f, p, int(n))
	if err != nil {
		return nil, total, err
	}
	return buf, total, nil
}

// readRawRowIDs decodes the row-id file at p and appends its identifiers to dst.
// The payload is read once.
func (c *Codec) readRawRowIDs(ctx context.Context, h fshandler.Handler, p string, dst segment.RowIDs) (segment.RowIDs, error) {
	f, err := h.Open(ctx, p)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrFileOpen, p, err)
	}
	defer f.Close()

	n, err := readHeader(f, p)
	if err != nil {
		return nil, err
	}
	if n%RowIDSize != 0 {
		return nil, fmt.Errorf("%w: %s: length %d is not a multiple of %d", ErrCorruptRowIDs, p, n, RowIDSize)
	}
	if n == 0 {
		return dst, nil
	}
	if err := checkStored(f, p, n); err != nil {
		return nil, err
	}
	if _, err := f.Seek(HeaderSize, io.SeekStart); err != nil {
		return nil, fmt.Errorf("seek %s: %w", p, err)
	}

	buf, err := c.readPayload(ctx, f, p, int(n))
	if err != nil {
		return nil, err
	}
	return decodeRowIDs(dst, buf), nil
}

// checkStored verifies that the file holds at least need payload bytes
// before a buffer of that size is allocated. It leaves f positioned at its end.
func checkStored(f io.Seeker, p string, need uint64) error {
	size, err := f.Seek(0, io.SeekEnd)
	if err != nil {
		return fmt.Errorf("seek %s: %w", p, err)
	}
	stored := uint64(max(size-HeaderSize, 0))
	if need > stored {
		return fmt.Errorf("%w: %s: payload needs %d bytes, file holds %d", ErrTruncatedRead, p, need, stored)
	}
	if need > math.MaxInt {
		return fmt.Errorf("%w: %s: %d payload bytes do not fit in memory", ErrInvalidRange, p, need)
	}
	return nil
}

// readPayload reads exactly n bytes from the current position of f, holding
// n bytes of the memory budget while the buffer is filled.
func (c *Codec) readPayload(ctx context.Context, f io.Reader, p string, n int) ([]byte, error) {
	rc := c.opts.resources
	if err := rc.AcquireMemory(ctx, int64(n)); err != nil {
		return nil, fmt.Errorf("%s: %w", p, err)
	}
	defer rc.ReleaseMemory(int64(n))

	buf := make([]byte, n)
	if err := readFull(resource.NewRateLimitedReader(ctx, f, rc), buf, p, "payload"); err != nil {
		return nil, err
	}
	return buf, nil
}

// writeFile creates p and writes the length header followed by payload.
func (c *Codec) writeFile(ctx context.Context, h fshandler.Handler, p string, payload []byte) error {
	f, err := h.Create(ctx, p)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrFileOpen, p, err)
	}

	w := resource.NewRateLimitedWriter(ctx, f, c.opts.resources)
	if _, err := w.Write(encodeHeader(uint64(len(payload)))); err != nil {
		_ = f.Close()
		return fmt.Errorf("%w: %s: %w", ErrWrite, p, err)
	}
	if _, err := w.Write(payload); err != nil {
		_ = f.Close()
		return fmt.Errorf("%w: %s: %w", ErrWrite, p, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrWrite, p, err)
	}
	return nil
}

func readHeader(r io.Reader, p string) (uint64, error) {
	var hdr [HeaderSize]byte
	if err := readFull(r, hdr[:], p, "header"); err != nil {
		return 0, err
	}
	return decodeHeader(hdr[:]), nil
}

func readFull(r io.Reader, buf []byte, p, what string) error {
	n, err := io.ReadFull(r, buf)
	if err == nil {
		return nil
	}
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return fmt.Errorf("%w: %s: %s has %d of %d bytes", ErrTruncatedRead, p, what, n, len(buf))
	}
	return fmt.Errorf("read %s %s: %w", what, p, err)
}
