package stage

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jarstage.dev/launcher/internal/core/domain"
	"jarstage.dev/launcher/internal/infrastructure/vfs"
)

// countingWriter records every Write call.
type countingWriter struct {
	mu     sync.Mutex
	writes []writeCall
	err    error
}

type writeCall struct {
	path string
	data []byte
}

func (w *countingWriter) Write(ctx context.Context, path string, data []byte) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.writes = append(w.writes, writeCall{path: path, data: append([]byte(nil), data...)})
	return w.err
}

// stubFetcher returns a fixed payload with one complete progress pass.
type stubFetcher struct {
	data []byte
	err  error
}

func (f *stubFetcher) Fetch(ctx context.Context, url string, onProgress domain.ProgressFunc) ([]byte, error) {
	if f.err != nil {
		return nil, f.err
	}
	total := int64(len(f.data))
	onProgress.Report(domain.ProgressSample{Downloaded: 0, Total: total})
	onProgress.Report(domain.ProgressSample{Downloaded: total, Total: total})
	return f.data, nil
}

// TestStage_Inline_SingleWriteSingleSample verifies that an inline
// source produces exactly one write of the full payload and one
// complete progress sample.
func TestStage_Inline_SingleWriteSingleSample(t *testing.T) {
	writer := &countingWriter{}
	stager := NewAssetStager(&stubFetcher{}, writer)

	payload := []byte("inline payload")
	var samples []domain.ProgressSample

	err := stager.Stage(context.Background(), domain.InlineSource(payload), "/files/client.jar", func(s domain.ProgressSample) {
		samples = append(samples, s)
	})
	require.NoError(t, err)

	require.Len(t, writer.writes, 1, "inline staging performs a single write call")
	assert.Equal(t, "/files/client.jar", writer.writes[0].path)
	assert.Equal(t, payload, writer.writes[0].data)

	size := int64(len(payload))
	assert.Equal(t, []domain.ProgressSample{{Downloaded: size, Total: size}}, samples)
}

// TestStage_Network_FetchesThenWrites verifies that the whole payload
// is accumulated before the single write call and progress is
// forwarded.
func TestStage_Network_FetchesThenWrites(t *testing.T) {
	writer := &countingWriter{}
	payload := []byte("network payload")
	stager := NewAssetStager(&stubFetcher{data: payload}, writer)

	var samples []domain.ProgressSample
	err := stager.Stage(context.Background(), domain.NetworkSource("https://x/a.jar"), "/files/a.jar", func(s domain.ProgressSample) {
		samples = append(samples, s)
	})
	require.NoError(t, err)

	require.Len(t, writer.writes, 1)
	assert.Equal(t, payload, writer.writes[0].data)
	require.Len(t, samples, 2)
	assert.Equal(t, int64(len(payload)), samples[len(samples)-1].Downloaded)
}

// TestStage_FetchFailure_NoWrite verifies fetch failures propagate
// unmasked and nothing is written.
func TestStage_FetchFailure_NoWrite(t *testing.T) {
	writer := &countingWriter{}
	fetchErr := &domain.NetworkError{URL: "https://x/a.jar", Err: errors.New("boom")}
	stager := NewAssetStager(&stubFetcher{err: fetchErr}, writer)

	err := stager.Stage(context.Background(), domain.NetworkSource("https://x/a.jar"), "/files/a.jar", nil)
	require.ErrorIs(t, err, fetchErr)
	assert.Empty(t, writer.writes)
}

// TestStage_WriteFailure_Propagates verifies writer failures propagate
// unmasked.
func TestStage_WriteFailure_Propagates(t *testing.T) {
	writeErr := &domain.FilesystemError{Op: "open", Path: "/files/a.jar", Err: errors.New("denied")}
	writer := &countingWriter{err: writeErr}
	stager := NewAssetStager(&stubFetcher{}, writer)

	err := stager.Stage(context.Background(), domain.InlineSource([]byte("x")), "/files/a.jar", nil)
	require.ErrorIs(t, err, writeErr)
}

// TestStage_ZeroSource_MissingSourceError verifies that a zero-valued
// source is rejected up front.
func TestStage_ZeroSource_MissingSourceError(t *testing.T) {
	stager := NewAssetStager(&stubFetcher{}, &countingWriter{})

	err := stager.Stage(context.Background(), domain.AssetSource{}, "/files/a.jar", nil)
	require.ErrorIs(t, err, domain.ErrMissingSource)
}

// TestEnsure_SwallowsAllFailures verifies the preparer's lenient
// contract against a bridge that reports "already exists".
func TestEnsure_SwallowsAllFailures(t *testing.T) {
	bridge := vfs.NewMemoryBridge()
	prep := NewDirectoryPreparer(bridge, zerolog.Nop())

	ctx := context.Background()
	assert.NotPanics(t, func() {
		prep.Ensure(ctx, "/files/deps")
		// Second call hits fs.ErrExist inside the bridge.
		prep.Ensure(ctx, "/files/deps")
	})
	assert.True(t, bridge.DirExists("/files/deps"))
}
