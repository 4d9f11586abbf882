package fshandler

import (
	"context"
	"io"
	"os"
)

// ErrNotFound is returned when a file does not exist.
//
// Implementations should return an error that satisfies `errors.Is(err, ErrNotFound)`.
// The default maps to `os.ErrNotExist`.
var ErrNotFound = os.ErrNotExist

// ReadFile is an open file positioned at its start.
type ReadFile interface {
	io.Reader
	io.Seeker
	io.Closer
}

// WriteFile is a created (or truncated) file. Data is durable once Close
// returns nil.
type WriteFile interface {
	io.Writer
	io.Closer
}

// Reader opens existing files for reading.
type Reader interface {
	Open(ctx context.Context, path string) (ReadFile, error)
}

// Writer creates files, truncating existing ones.
type Writer interface {
	Create(ctx context.Context, path string) (WriteFile, error)
}

// Operation exposes the segment directory a handler is bound to.
//
// All paths crossing this interface are slash separated, whatever the host
// separator is. Handlers backed by the local file system convert them.
type Operation interface {
	// Directory returns the directory path. Codecs build the paths they pass
	// to Open and Create with path.Join(Directory(), name).
	Directory() string
	// IsDirectory reports whether the directory exists.
	IsDirectory(ctx context.Context) (bool, error)
	// ListDirectory returns the full paths of the directory's direct children.
	ListDirectory(ctx context.Context) ([]string, error)
	// RemoveAll deletes the directory and everything in it.
	RemoveAll(ctx context.Context) error
}

// Handler bundles the capabilities a codec needs for one segment directory.
// Implementations must be safe for concurrent use.
type Handler interface {
	Reader
	Writer
	Operation
}
