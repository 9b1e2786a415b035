package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAssetSource_Kinds(t *testing.T) {
	network := NetworkSource("https://x/client.jar")
	assert.Equal(t, AssetSourceNetwork, network.Kind())
	assert.Equal(t, "https://x/client.jar", network.URL())
	assert.Nil(t, network.Bytes())
	assert.False(t, network.IsZero())

	inline := InlineSource([]byte("payload"))
	assert.Equal(t, AssetSourceInline, inline.Kind())
	assert.Equal(t, []byte("payload"), inline.Bytes())
	assert.Empty(t, inline.URL())
	assert.False(t, inline.IsZero())
}

func TestAssetSource_IsZero(t *testing.T) {
	tests := []struct {
		name   string
		source AssetSource
		zero   bool
	}{
		{name: "Unset", source: AssetSource{}, zero: true},
		{name: "NetworkWithoutURL", source: NetworkSource(""), zero: true},
		{name: "InlineWithoutBytes", source: InlineSource(nil), zero: true},
		{name: "InlineEmptyButPresent", source: InlineSource([]byte{}), zero: false},
		{name: "Network", source: NetworkSource("https://x"), zero: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.zero, tt.source.IsZero())
		})
	}
}

func TestLibraryDescriptor_Complete(t *testing.T) {
	assert.True(t, LibraryDescriptor{URL: "https://x/lib.jar", Path: "/files/lib.jar"}.Complete())
	assert.False(t, LibraryDescriptor{URL: "https://x/lib.jar"}.Complete())
	assert.False(t, LibraryDescriptor{Path: "/files/lib.jar"}.Complete())
	assert.False(t, LibraryDescriptor{}.Complete())
}

func TestSideloadArchive_HasExtension(t *testing.T) {
	assert.True(t, SideloadArchive{Name: "mod.jar"}.HasExtension(".jar"))
	assert.True(t, SideloadArchive{Name: "MOD.JAR"}.HasExtension(".jar"))
	assert.False(t, SideloadArchive{Name: "readme.txt"}.HasExtension(".jar"))
	assert.False(t, SideloadArchive{Name: "jar"}.HasExtension(".jar"))
}

func TestProgressSample_Fraction(t *testing.T) {
	assert.Equal(t, 0.5, ProgressSample{Downloaded: 500, Total: 1000}.Fraction())
	assert.Zero(t, ProgressSample{Downloaded: 500, Total: 0}.Fraction(), "unknown total defines the fraction as 0")
	assert.Equal(t, 1.0, ProgressSample{Downloaded: 1000, Total: 1000}.Fraction())
}

func TestProgressFunc_NilReportIsNoOp(t *testing.T) {
	var f ProgressFunc
	assert.NotPanics(t, func() {
		f.Report(ProgressSample{Downloaded: 1, Total: 2})
	})
}

func TestErrors_Unwrap(t *testing.T) {
	cause := errors.New("cause")

	netErr := &NetworkError{URL: "https://x", Err: cause}
	assert.ErrorIs(t, netErr, cause)
	assert.Contains(t, netErr.Error(), "https://x")

	fsErr := &FilesystemError{Op: "write", Path: "/files/a.jar", Err: cause}
	assert.ErrorIs(t, fsErr, cause)
	assert.Contains(t, fsErr.Error(), "/files/a.jar")
}
