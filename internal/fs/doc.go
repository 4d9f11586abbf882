// Package fs provides filesystem abstractions for testability and fault injection.
//
// The package defines two key interfaces:
//
//   - [File]: an open file with read/write/seek capabilities
//   - [FileSystem]: the filesystem operations a segment handler needs
//
// # Implementations
//
//   - [LocalFS]: Production implementation using standard os package
//   - [FaultyFS]: Test utility for fault injection (open, write, close and short-read failures)
//
// # Usage
//
// Production code should use fs.Default (which is [LocalFS]):
//
//	file, err := fs.Default.OpenFile(path, os.O_RDONLY, 0)
//
// Tests can inject [FaultyFS] to simulate failures:
//
//	ffs := fs.NewFaultyFS(nil)
//	ffs.AddRule("age.ra", fs.Fault{FailOnOpen: true})
//	// inject ffs into the handler under test
//
// This package does not take context.Context parameters. Local filesystem
// calls are not interruptible at the syscall level; remote handlers carry
// contexts instead.
package fs
