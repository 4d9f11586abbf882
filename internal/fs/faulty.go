package fs

import (
	"errors"
	"io"
	"os"
	"strings"
	"sync"
)

// ErrInjected is the error returned by an injected fault when the rule
// carries no error of its own.
var ErrInjected = errors.New("injected fault error")

// Fault defines the failure behavior for files matching a rule.
type Fault struct {
	FailOnOpen     bool  // OpenFile returns Err without touching the wrapped FS.
	FailAfterBytes int64 // Fail writes after this many bytes written to this file. -1 to disable.
	ReadLimit      int64 // Reads report io.EOF once this many bytes were read from this file. -1 to disable.
	FailOnClose    bool
	Err            error
}

// NoFault is a Fault that never fires.
var NoFault = Fault{FailAfterBytes: -1, ReadLimit: -1}

// FaultyFS is a FileSystem wrapper that injects errors for files whose name
// contains a registered pattern.
type FaultyFS struct {
	FS FileSystem

	mu    sync.Mutex
	rules map[string]Fault
	opens map[string]int
}

// NewFaultyFS creates a new FaultyFS wrapping the provided FS (or Default if nil).
func NewFaultyFS(fs FileSystem) *FaultyFS {
	if fs == nil {
		fs = Default
	}
	return &FaultyFS{
		FS:    fs,
		rules: make(map[string]Fault),
		opens: make(map[string]int),
	}
}

// AddRule adds a fault injection rule for names containing pattern.
func (f *FaultyFS) AddRule(pattern string, fault Fault) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rules[pattern] = fault
}

// ClearRules removes every registered rule.
func (f *FaultyFS) ClearRules() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rules = make(map[string]Fault)
}

// Opens returns how many times name was opened successfully.
func (f *FaultyFS) Opens(name string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.opens[name]
}

func (f *FaultyFS) match(name string) Fault {
	f.mu.Lock()
	defer f.mu.Unlock()

	// Longest matching pattern wins so rules stay deterministic.
	fault, best := NoFault, -1
	for pattern, rule := range f.rules {
		if strings.Contains(name, pattern) && len(pattern) > best {
			fault, best = rule, len(pattern)
		}
	}
	if fault.Err == nil {
		fault.Err = ErrInjected
	}
	return fault
}

func (f *FaultyFS) OpenFile(name string, flag int, perm os.FileMode) (File, error) {
	fault := f.match(name)
	if fault.FailOnOpen {
		return nil, &os.PathError{Op: "open", Path: name, Err: fault.Err}
	}

	file, err := f.FS.OpenFile(name, flag, perm)
	if err != nil {
		return nil, err
	}

	f.mu.Lock()
	f.opens[name]++
	f.mu.Unlock()

	return &faultyFile{File: file, fault: fault}, nil
}

func (f *FaultyFS) Remove(name string) error {
	return f.FS.Remove(name)
}

func (f *FaultyFS) RemoveAll(path string) error {
	return f.FS.RemoveAll(path)
}

func (f *FaultyFS) Stat(name string) (os.FileInfo, error) {
	return f.FS.Stat(name)
}

func (f *FaultyFS) MkdirAll(path string, perm os.FileMode) error {
	return f.FS.MkdirAll(path, perm)
}

func (f *FaultyFS) ReadDir(name string) ([]os.DirEntry, error) {
	return f.FS.ReadDir(name)
}

type faultyFile struct {
	File
	fault   Fault
	written int64
	read    int64
}

func (ff *faultyFile) Write(p []byte) (n int, err error) {
	if ff.fault.FailAfterBytes >= 0 && ff.written+int64(len(p)) > ff.fault.FailAfterBytes {
		return 0, ff.fault.Err
	}

	n, err = ff.File.Write(p)
	ff.written += int64(n)
	return n, err
}

func (ff *faultyFile) Read(p []byte) (n int, err error) {
	if ff.fault.ReadLimit >= 0 {
		remaining := ff.fault.ReadLimit - ff.read
		if remaining <= 0 {
			return 0, io.EOF
		}
		if int64(len(p)) > remaining {
			p = p[:remaining]
		}
	}

	n, err = ff.File.Read(p)
	ff.read += int64(n)
	return n, err
}

func (ff *faultyFile) Close() error {
	if ff.fault.FailOnClose {
		_ = ff.File.Close()
		return ff.fault.Err
	}
	return ff.File.Close()
}
