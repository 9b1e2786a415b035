package vfs

import (
	"context"
	"io/fs"
	"path"
	"strings"
	"sync"

	"jarstage.dev/launcher/internal/core/ports"
)

// RunCall records one invocation of the entry-point runner.
type RunCall struct {
	MainClass string
	Classpath string
	Args      []string
}

// MemoryBridge is a map-backed staging filesystem with a scripted
// entry-point runner. It backs unit tests and the launch dry-run mode.
// File content becomes visible only when the handle is closed, so a
// failed write leaves nothing observable at the path.
type MemoryBridge struct {
	mu       sync.Mutex
	files    map[string][]byte
	dirs     map[string]bool
	runCalls []RunCall

	// ExitCode is what RunEntryPoint reports. Zero by default.
	ExitCode int
}

// NewMemoryBridge creates an empty in-memory bridge.
func NewMemoryBridge() *MemoryBridge {
	return &MemoryBridge{
		files: make(map[string][]byte),
		dirs:  make(map[string]bool),
	}
}

var _ ports.RuntimeBridge = (*MemoryBridge)(nil)

// OpenFile opens path for writing. Parent directories are implied, as
// on a mounted staging filesystem.
func (b *MemoryBridge) OpenFile(ctx context.Context, p string) (ports.FileHandle, error) {
	return &memoryHandle{bridge: b, path: p}, nil
}

// CreateDirectory creates one directory, failing with fs.ErrExist when
// it is already present.
func (b *MemoryBridge) CreateDirectory(ctx context.Context, p string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.dirs[p] {
		return &fs.PathError{Op: "mkdir", Path: p, Err: fs.ErrExist}
	}
	b.dirs[p] = true
	return nil
}

// DeleteTree removes p and everything below it, failing with
// fs.ErrNotExist when nothing is there.
func (b *MemoryBridge) DeleteTree(ctx context.Context, p string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	found := false
	prefix := strings.TrimSuffix(p, "/") + "/"
	for name := range b.files {
		if name == p || strings.HasPrefix(name, prefix) {
			delete(b.files, name)
			found = true
		}
	}
	for name := range b.dirs {
		if name == p || strings.HasPrefix(name, prefix) {
			delete(b.dirs, name)
			found = true
		}
	}
	if !found {
		return &fs.PathError{Op: "deltree", Path: p, Err: fs.ErrNotExist}
	}
	return nil
}

// RunEntryPoint records the call and returns the scripted exit code.
func (b *MemoryBridge) RunEntryPoint(ctx context.Context, mainClass, classpath string, args ...string) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.runCalls = append(b.runCalls, RunCall{
		MainClass: mainClass,
		Classpath: classpath,
		Args:      append([]string(nil), args...),
	})
	return b.ExitCode, nil
}

// File returns the committed content at p and whether it exists.
func (b *MemoryBridge) File(p string) ([]byte, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	data, ok := b.files[p]
	return data, ok
}

// DirExists reports whether p was created as a directory.
func (b *MemoryBridge) DirExists(p string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.dirs[p]
}

// Paths returns every committed file path, in no particular order.
func (b *MemoryBridge) Paths() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	paths := make([]string, 0, len(b.files))
	for p := range b.files {
		paths = append(paths, p)
	}
	return paths
}

// RunCalls returns the recorded entry-point invocations.
func (b *MemoryBridge) RunCalls() []RunCall {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]RunCall(nil), b.runCalls...)
}

func (b *MemoryBridge) commit(p string, data []byte) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.files[p] = data
	for dir := path.Dir(p); dir != "/" && dir != "."; dir = path.Dir(dir) {
		b.dirs[dir] = true
	}
}

type memoryHandle struct {
	bridge *MemoryBridge
	path   string
	buf    []byte
	closed bool
}

func (h *memoryHandle) Write(ctx context.Context, p []byte) (int, error) {
	if h.closed {
		return 0, &fs.PathError{Op: "write", Path: h.path, Err: fs.ErrClosed}
	}
	h.buf = append(h.buf, p...)
	return len(p), nil
}

func (h *memoryHandle) Close(ctx context.Context) error {
	if h.closed {
		return &fs.PathError{Op: "close", Path: h.path, Err: fs.ErrClosed}
	}
	h.closed = true
	h.bridge.commit(h.path, h.buf)
	return nil
}
