// Package stage materializes assets at paths in the staging filesystem.
package stage

import (
	"context"

	"github.com/rs/zerolog"

	"jarstage.dev/launcher/internal/core/domain"
	"jarstage.dev/launcher/internal/core/ports"
)

// AssetStager combines the fetcher and the file writer to stage one
// named byte payload at a target path. The complete payload is always
// held in memory before the single write call, so the target ends up
// holding either everything or nothing a later stage can observe.
type AssetStager struct {
	fetcher ports.Fetcher
	writer  ports.FileWriter
}

// NewAssetStager creates a stager over the given fetcher and writer.
func NewAssetStager(fetcher ports.Fetcher, writer ports.FileWriter) *AssetStager {
	return &AssetStager{fetcher: fetcher, writer: writer}
}

var _ ports.Stager = (*AssetStager)(nil)

// Stage writes the payload described by source at targetPath. Network
// sources forward fetch progress; inline sources report a single
// complete sample. Fetcher and writer failures propagate unmasked.
func (s *AssetStager) Stage(ctx context.Context, source domain.AssetSource, targetPath string, onProgress domain.ProgressFunc) error {
	switch source.Kind() {
	case domain.AssetSourceNetwork:
		data, err := s.fetcher.Fetch(ctx, source.URL(), onProgress)
		if err != nil {
			return err
		}
		return s.writer.Write(ctx, targetPath, data)

	case domain.AssetSourceInline:
		data := source.Bytes()
		size := int64(len(data))
		onProgress.Report(domain.ProgressSample{Downloaded: size, Total: size})
		return s.writer.Write(ctx, targetPath, data)

	default:
		return domain.ErrMissingSource
	}
}

// DirectoryPreparer leniently ensures directories exist before writes.
// Every failure, "already exists" included, is logged and dropped: the
// write that follows fails loudly on its own if the directory is truly
// absent.
type DirectoryPreparer struct {
	bridge ports.RuntimeBridge
	logger zerolog.Logger
}

// NewDirectoryPreparer creates a preparer over the given bridge.
func NewDirectoryPreparer(bridge ports.RuntimeBridge, logger zerolog.Logger) *DirectoryPreparer {
	return &DirectoryPreparer{bridge: bridge, logger: logger}
}

var _ ports.DirectoryPreparer = (*DirectoryPreparer)(nil)

// Ensure attempts to create path, swallowing any failure.
func (p *DirectoryPreparer) Ensure(ctx context.Context, path string) {
	if err := p.bridge.CreateDirectory(ctx, path); err != nil {
		p.logger.Debug().Str("path", path).Err(err).Msg("directory preparation failed, continuing")
	}
}
