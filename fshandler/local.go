package fshandler

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"sort"

	"github.com/hupe1980/attrcodec/internal/fs"
	"github.com/hupe1980/attrcodec/internal/mmap"
)

// LocalOption configures a Local handler.
type LocalOption func(*Local)

// WithFileSystem sets the file system used by the handler.
// Tests inject an fs.FaultyFS here.
func WithFileSystem(fsys fs.FileSystem) LocalOption {
	return func(l *Local) {
		if fsys == nil {
			fsys = fs.Default
		}
		l.fs = fsys
	}
}

// WithMmap serves reads from a read-only memory mapping instead of file reads.
// Mapped reads bypass the configured FileSystem.
func WithMmap() LocalOption {
	return func(l *Local) {
		l.mmap = true
	}
}

// WithFileMode sets the permission bits of created files. Default 0644.
func WithFileMode(mode os.FileMode) LocalOption {
	return func(l *Local) {
		l.mode = mode
	}
}

// Local implements Handler on the local file system.
type Local struct {
	dir  string
	fs   fs.FileSystem
	mmap bool
	mode os.FileMode
}

// NewLocal creates a handler for the segment directory dir.
// The directory is not created; writers expect it to exist.
func NewLocal(dir string, optFns ...LocalOption) *Local {
	l := &Local{
		dir:  filepath.Clean(dir),
		fs:   fs.Default,
		mode: 0644,
	}
	for _, fn := range optFns {
		fn(l)
	}
	return l
}

// Directory returns the segment directory with forward slashes.
func (l *Local) Directory() string { return filepath.ToSlash(l.dir) }

// IsDirectory reports whether the segment directory exists.
func (l *Local) IsDirectory(_ context.Context) (bool, error) {
	info, err := l.fs.Stat(l.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	return info.IsDir(), nil
}

// ListDirectory returns the regular files in the segment directory, sorted,
// as slash-separated paths.
func (l *Local) ListDirectory(_ context.Context) ([]string, error) {
	entries, err := l.fs.ReadDir(l.dir)
	if err != nil {
		return nil, err
	}

	paths := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		paths = append(paths, filepath.ToSlash(filepath.Join(l.dir, e.Name())))
	}
	sort.Strings(paths)
	return paths, nil
}

// RemoveAll deletes the segment directory.
func (l *Local) RemoveAll(_ context.Context) error {
	return l.fs.RemoveAll(l.dir)
}

// MkdirAll creates the segment directory.
func (l *Local) MkdirAll() error {
	return l.fs.MkdirAll(l.dir, 0755)
}

// Open opens path for reading.
func (l *Local) Open(_ context.Context, path string) (ReadFile, error) {
	path = filepath.FromSlash(path)
	if l.mmap {
		m, err := mmap.Open(path)
		if err != nil {
			return nil, err
		}
		return &mappedFile{Reader: bytes.NewReader(m.Bytes()), m: m}, nil
	}
	return l.fs.OpenFile(path, os.O_RDONLY, 0)
}

// Create creates or truncates path.
func (l *Local) Create(_ context.Context, path string) (WriteFile, error) {
	path = filepath.FromSlash(path)
	return l.fs.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, l.mode)
}

type mappedFile struct {
	*bytes.Reader
	m *mmap.Mapping
}

func (f *mappedFile) Close() error {
	return f.m.Close()
}
