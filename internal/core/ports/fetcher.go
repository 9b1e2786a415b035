package ports

import (
	"context"

	"jarstage.dev/launcher/internal/core/domain"
)

// Fetcher retrieves a resource over the network into memory, reporting
// incremental byte progress along the way.
type Fetcher interface {
	Fetch(ctx context.Context, url string, onProgress domain.ProgressFunc) ([]byte, error)
}
