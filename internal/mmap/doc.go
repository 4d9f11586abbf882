// Package mmap provides read-only memory-mapped file access.
//
// A [Mapping] exposes the whole file as a byte slice. Segment readers use it
// to serve header and payload reads without a syscall per read.
//
//	m, err := mmap.Open("age.ra")
//	if err != nil { ... }
//	defer m.Close()
//	data := m.Bytes()
//
// Unix uses mmap(2); Windows uses CreateFileMapping/MapViewOfFile.
//
// Close is idempotent. Callers must not touch Bytes() after Close returns.
package mmap
