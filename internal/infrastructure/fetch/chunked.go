// Package fetch retrieves network assets into memory with incremental
// byte-progress reporting.
package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"jarstage.dev/launcher/internal/core/domain"
	"jarstage.dev/launcher/internal/core/ports"
)

const (
	userAgent = "jarstage-launcher/1.0"
	chunkSize = 32 * 1024
)

// ChunkedFetcher downloads a resource over HTTP, invoking the progress
// callback once at the start with (0, total) and again after every
// received chunk. When the server does not advertise a content length
// the total is reported as 0 and the buffer grows by appending chunks
// instead of being pre-sized.
type ChunkedFetcher struct {
	httpClient *http.Client
}

// NewChunkedFetcher creates a fetcher. A nil client gets a default with
// a generous timeout for large downloads.
func NewChunkedFetcher(client *http.Client) *ChunkedFetcher {
	if client == nil {
		client = &http.Client{
			Timeout: 5 * time.Minute,
		}
	}
	return &ChunkedFetcher{httpClient: client}
}

var _ ports.Fetcher = (*ChunkedFetcher)(nil)

// Fetch retrieves url into memory. It touches nothing but the network.
func (f *ChunkedFetcher) Fetch(ctx context.Context, url string, onProgress domain.ProgressFunc) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &domain.NetworkError{URL: url, Err: fmt.Errorf("failed to create request: %w", err)}
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, &domain.NetworkError{URL: url, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &domain.NetworkError{URL: url, Err: fmt.Errorf("unexpected status %d", resp.StatusCode)}
	}
	if resp.Body == nil || resp.Body == http.NoBody {
		return nil, &domain.NetworkError{URL: url, Err: errors.New("response has no body")}
	}

	// ContentLength is -1 when the header is absent or unparseable;
	// the progress convention for an unknown total is 0.
	total := resp.ContentLength
	if total < 0 {
		total = 0
	}
	onProgress.Report(domain.ProgressSample{Downloaded: 0, Total: total})

	buf := make([]byte, 0, total)
	chunk := make([]byte, chunkSize)
	var downloaded int64
	for {
		n, err := resp.Body.Read(chunk)
		if n > 0 {
			buf = append(buf, chunk[:n]...)
			downloaded += int64(n)
			onProgress.Report(domain.ProgressSample{Downloaded: downloaded, Total: total})
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, &domain.NetworkError{URL: url, Err: err}
		}
	}

	if total > 0 && downloaded != total {
		return nil, &domain.NetworkError{URL: url, Err: fmt.Errorf("truncated body: got %d of %d bytes", downloaded, total)}
	}

	return buf, nil
}
