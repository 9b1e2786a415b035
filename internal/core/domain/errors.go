package domain

import (
	"errors"
	"fmt"
)

// ErrAlreadyRunning is returned when a launch sequence is requested
// while a prior one on the same orchestrator is still in flight.
var ErrAlreadyRunning = errors.New("launch already in progress")

// ErrMissingSource is returned when no valid primary asset source is
// configured. It aborts the sequence before any I/O.
var ErrMissingSource = errors.New("no primary asset source configured")

// NetworkError wraps a failed fetch of a network asset.
type NetworkError struct {
	URL string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// FilesystemError wraps a failed open, write, or close against the
// staging filesystem bridge.
type FilesystemError struct {
	Op   string
	Path string
	Err  error
}

func (e *FilesystemError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *FilesystemError) Unwrap() error {
	return e.Err
}
