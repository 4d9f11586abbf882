package attrcodec

import "errors"

var (
	// ErrDirectoryNotFound is returned when the segment directory is missing or
	// is not a directory.
	ErrDirectoryNotFound = errors.New("directory not found")

	// ErrFileOpen is returned when the filesystem handler refuses to open or
	// create a file.
	ErrFileOpen = errors.New("failed to open file")

	// ErrTruncatedRead is returned when a file ends before its length header
	// or its payload was fully read.
	ErrTruncatedRead = errors.New("truncated read")

	// ErrWrite is returned when writing to or closing a created file fails.
	ErrWrite = errors.New("failed to write file")

	// ErrCorruptRowIDs is returned when a row-id file's length is not a
	// multiple of the identifier size.
	ErrCorruptRowIDs = errors.New("corrupt row-id file")

	// ErrInvalidRange is returned for a negative offset or byte count.
	ErrInvalidRange = errors.New("invalid read range")
)
