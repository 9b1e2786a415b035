// Package vfs provides the staging-filesystem side of the pipeline:
// the scoped file writer and the bridge implementations behind it.
package vfs

import (
	"context"
	"fmt"

	"jarstage.dev/launcher/internal/core/domain"
	"jarstage.dev/launcher/internal/core/ports"
)

// Writer sequences open, write, and close against the bridge as one
// scoped operation. The handle is closed whether or not the write
// succeeds. Concurrent writes to the same path are not serialized here;
// callers own that.
type Writer struct {
	bridge ports.RuntimeBridge
}

// NewWriter creates a writer over the given bridge.
func NewWriter(bridge ports.RuntimeBridge) *Writer {
	return &Writer{bridge: bridge}
}

var _ ports.FileWriter = (*Writer)(nil)

// Write persists data at path with a single full-buffer write call.
func (w *Writer) Write(ctx context.Context, path string, data []byte) error {
	handle, err := w.bridge.OpenFile(ctx, path)
	if err != nil {
		return &domain.FilesystemError{Op: "open", Path: path, Err: err}
	}

	var failure error
	n, err := handle.Write(ctx, data)
	if err != nil {
		failure = &domain.FilesystemError{Op: "write", Path: path, Err: err}
	} else if n != len(data) {
		failure = &domain.FilesystemError{Op: "write", Path: path, Err: fmt.Errorf("short write: %d of %d bytes", n, len(data))}
	}

	if err := handle.Close(ctx); err != nil && failure == nil {
		failure = &domain.FilesystemError{Op: "close", Path: path, Err: err}
	}
	return failure
}
