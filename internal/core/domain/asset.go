package domain

import (
	"path"
	"strings"
)

// AssetSourceKind identifies where a payload comes from.
type AssetSourceKind string

const (
	// AssetSourceNetwork marks a payload retrieved over HTTP.
	AssetSourceNetwork AssetSourceKind = "network"
	// AssetSourceInline marks a payload already held in memory.
	AssetSourceInline AssetSourceKind = "inline"
)

// AssetSource is a value object describing the origin of a payload to
// stage: either a URL to fetch or an in-memory byte slice.
type AssetSource struct {
	kind AssetSourceKind
	url  string
	data []byte
}

// NetworkSource creates an AssetSource backed by a URL.
func NetworkSource(url string) AssetSource {
	return AssetSource{kind: AssetSourceNetwork, url: url}
}

// InlineSource creates an AssetSource backed by an in-memory payload.
func InlineSource(data []byte) AssetSource {
	return AssetSource{kind: AssetSourceInline, data: data}
}

// Kind returns the source kind.
func (s AssetSource) Kind() AssetSourceKind {
	return s.kind
}

// URL returns the source URL for network sources, empty otherwise.
func (s AssetSource) URL() string {
	return s.url
}

// Bytes returns the in-memory payload for inline sources, nil otherwise.
func (s AssetSource) Bytes() []byte {
	return s.data
}

// IsZero reports whether the source carries neither a URL nor a payload.
func (s AssetSource) IsZero() bool {
	switch s.kind {
	case AssetSourceNetwork:
		return s.url == ""
	case AssetSourceInline:
		return s.data == nil
	default:
		return true
	}
}

// StagedAsset pairs a source with its absolute target path inside the
// staging filesystem namespace.
type StagedAsset struct {
	Source     AssetSource
	TargetPath string
}

// LibraryDescriptor describes one dependency archive: where to download
// it from and where to stage it.
type LibraryDescriptor struct {
	URL  string `toml:"url" json:"url"`
	Path string `toml:"path" json:"path"`
}

// Complete reports whether both fields are present. Incomplete
// descriptors are skipped by the pipeline rather than treated as errors.
func (d LibraryDescriptor) Complete() bool {
	return d.URL != "" && d.Path != ""
}

// SideloadArchive is a caller-supplied archive staged into the override
// directory, distinct from the primary archive and dependencies.
type SideloadArchive struct {
	Name string
	Data []byte
}

// HasExtension reports whether the archive name carries the given file
// extension (case-insensitive).
func (a SideloadArchive) HasExtension(ext string) bool {
	return strings.EqualFold(path.Ext(a.Name), ext)
}
