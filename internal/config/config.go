// Package config loads the launcher profile. Loading happens once at
// startup; the orchestration core only ever sees the resulting typed
// configuration.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"

	"jarstage.dev/launcher/internal/core/domain"
)

// Profile is the on-disk launcher configuration.
type Profile struct {
	PrimaryURL  string   `toml:"primary_url"`
	PrimaryPath string   `toml:"primary_path"`
	MainClass   string   `toml:"main_class"`
	RuntimeArgs []string `toml:"runtime_args"`

	Sideload    bool   `toml:"sideload"`
	SideloadDir string `toml:"sideload_dir"`

	Libraries []domain.LibraryDescriptor `toml:"libraries"`

	SupportPaths []string `toml:"support_paths"`
}

// Load reads the profile at path. An empty path falls back to the
// JARSTAGE_PROFILE environment variable, then to "jarstage.toml". A
// missing file yields the zero profile so every value defaults inside
// the orchestrator.
func Load(path string) (*Profile, error) {
	if path == "" {
		path = os.Getenv("JARSTAGE_PROFILE")
		if path == "" {
			path = "jarstage.toml"
		}
	}

	profile := &Profile{}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return profile, nil
		}
		return nil, fmt.Errorf("failed to read profile: %w", err)
	}

	if err := toml.Unmarshal(data, profile); err != nil {
		return nil, fmt.Errorf("failed to parse profile: %w", err)
	}
	return profile, nil
}
