// Package fshandler provides the filesystem handlers an attribute codec
// performs all of its I/O through.
//
// A [Handler] is bound to one segment directory and bundles three
// capabilities:
//
//   - [Reader]: open a file and read/seek through it
//   - [Writer]: create or truncate a file and write to it
//   - [Operation]: name, check, list and remove the directory
//
// # Built-in Implementations
//
//   - [Local]: local file system, optionally memory mapped for reads
//   - [Memory]: in-memory file system for tests
//   - fshandler/s3: Amazon S3, the directory is a key prefix
//   - fshandler/minio: MinIO and other S3-compatible stores
//
// # Custom Implementations
//
// Implement the [Handler] interface to support other backends:
//
//	type Handler interface {
//	    Open(ctx, path) (ReadFile, error)
//	    Create(ctx, path) (WriteFile, error)
//	    Directory() string
//	    IsDirectory(ctx) (bool, error)
//	    ListDirectory(ctx) ([]string, error)
//	    RemoveAll(ctx) error
//	}
package fshandler
