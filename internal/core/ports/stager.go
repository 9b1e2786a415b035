package ports

import (
	"context"

	"jarstage.dev/launcher/internal/core/domain"
)

// FileWriter persists one complete payload at a path in the staging
// filesystem as a single scoped open/write/close operation.
type FileWriter interface {
	Write(ctx context.Context, path string, data []byte) error
}

// Stager materializes one asset at a target path, from the network or
// from memory, optionally reporting progress.
type Stager interface {
	Stage(ctx context.Context, source domain.AssetSource, targetPath string, onProgress domain.ProgressFunc) error
}

// DirectoryPreparer ensures a directory exists before a write. It is
// deliberately lenient: failures are logged, never returned, because
// the write that follows fails loudly on its own if the directory truly
// could not be created.
type DirectoryPreparer interface {
	Ensure(ctx context.Context, path string)
}
