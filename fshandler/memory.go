package fshandler

import (
	"bytes"
	"context"
	"io"
	"path"
	"sort"
	"strings"
	"sync"
)

// MemoryFS is an in-memory file system for tests and ephemeral segments.
// Paths are slash separated. Thread-safe for concurrent reads and writes.
type MemoryFS struct {
	mu    sync.RWMutex
	dirs  map[string]struct{}
	files map[string][]byte
}

// NewMemoryFS creates an empty in-memory file system.
func NewMemoryFS() *MemoryFS {
	return &MemoryFS{
		dirs:  make(map[string]struct{}),
		files: make(map[string][]byte),
	}
}

// Mkdir registers dir as an existing directory.
func (m *MemoryFS) Mkdir(dir string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.dirs[path.Clean(dir)] = struct{}{}
}

// Put stores a file.
func (m *MemoryFS) Put(name string, data []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()

	// Copy to prevent external mutation
	copied := make([]byte, len(data))
	copy(copied, data)
	m.files[path.Clean(name)] = copied
}

// Get returns a copy of a file's contents.
func (m *MemoryFS) Get(name string) ([]byte, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	data, ok := m.files[path.Clean(name)]
	if !ok {
		return nil, false
	}
	copied := make([]byte, len(data))
	copy(copied, data)
	return copied, true
}

// Remove deletes a file. Missing files are ignored.
func (m *MemoryFS) Remove(name string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.files, path.Clean(name))
}

// Handler returns a Handler bound to dir.
func (m *MemoryFS) Handler(dir string) *Memory {
	return &Memory{fs: m, dir: path.Clean(dir)}
}

// Memory implements Handler on a MemoryFS.
type Memory struct {
	fs  *MemoryFS
	dir string
}

// Directory returns the segment directory.
func (h *Memory) Directory() string { return h.dir }

// IsDirectory reports whether the directory was created with Mkdir.
func (h *Memory) IsDirectory(_ context.Context) (bool, error) {
	h.fs.mu.RLock()
	defer h.fs.mu.RUnlock()
	_, ok := h.fs.dirs[h.dir]
	return ok, nil
}

// ListDirectory returns the files directly inside the directory, sorted.
func (h *Memory) ListDirectory(_ context.Context) ([]string, error) {
	h.fs.mu.RLock()
	defer h.fs.mu.RUnlock()

	if _, ok := h.fs.dirs[h.dir]; !ok {
		return nil, ErrNotFound
	}

	var names []string
	for name := range h.fs.files {
		if path.Dir(name) == h.dir {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names, nil
}

// RemoveAll deletes the directory and every file below it.
func (h *Memory) RemoveAll(_ context.Context) error {
	h.fs.mu.Lock()
	defer h.fs.mu.Unlock()

	prefix := h.dir + "/"
	for name := range h.fs.files {
		if strings.HasPrefix(name, prefix) {
			delete(h.fs.files, name)
		}
	}
	for dir := range h.fs.dirs {
		if dir == h.dir || strings.HasPrefix(dir, prefix) {
			delete(h.fs.dirs, dir)
		}
	}
	return nil
}

// Open opens a file for reading.
func (h *Memory) Open(_ context.Context, name string) (ReadFile, error) {
	data, ok := h.fs.Get(name)
	if !ok {
		return nil, ErrNotFound
	}
	return &memoryFile{Reader: bytes.NewReader(data)}, nil
}

// Create creates a file. Its contents become visible on Close.
func (h *Memory) Create(_ context.Context, name string) (WriteFile, error) {
	h.fs.mu.RLock()
	_, ok := h.fs.dirs[path.Dir(path.Clean(name))]
	h.fs.mu.RUnlock()
	if !ok {
		return nil, ErrNotFound
	}
	return &memoryWritableFile{fs: h.fs, name: name}, nil
}

type memoryFile struct {
	*bytes.Reader
}

func (f *memoryFile) Close() error {
	return nil
}

type memoryWritableFile struct {
	fs     *MemoryFS
	name   string
	buf    bytes.Buffer
	closed bool
}

func (w *memoryWritableFile) Write(p []byte) (int, error) {
	if w.closed {
		return 0, io.ErrClosedPipe
	}
	return w.buf.Write(p)
}

func (w *memoryWritableFile) Close() error {
	if w.closed {
		return io.ErrClosedPipe
	}
	w.closed = true
	w.fs.Put(w.name, w.buf.Bytes())
	return nil
}
