package ports

import "context"

// FileHandle is an open write handle in the staging filesystem.
type FileHandle interface {
	// Write writes the buffer and returns the number of bytes accepted.
	Write(ctx context.Context, p []byte) (int, error)
	// Close releases the handle. Must be called whether or not Write
	// succeeded.
	Close(ctx context.Context) error
}

// RuntimeBridge is the external collaborator that provides the staging
// filesystem and executes the managed-runtime entry point. The bridge
// offers no multi-file transaction; callers are responsible for
// sequencing writes.
type RuntimeBridge interface {
	// OpenFile opens path for exclusive writing, truncating any
	// previous content.
	OpenFile(ctx context.Context, path string) (FileHandle, error)

	// CreateDirectory creates a single directory. It may fail when the
	// directory already exists; callers that want idempotence handle
	// that themselves.
	CreateDirectory(ctx context.Context, path string) error

	// DeleteTree recursively removes path and everything under it.
	DeleteTree(ctx context.Context, path string) error

	// RunEntryPoint starts the managed runtime with the given main
	// class, classpath, and arguments, blocking until it exits, and
	// returns its exit status.
	RunEntryPoint(ctx context.Context, mainClass, classpath string, args ...string) (int, error)
}
