package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jarstage.dev/launcher/internal/core/domain"
)

func writeProfile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "jarstage.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad_FullProfile(t *testing.T) {
	path := writeProfile(t, `
primary_url = "https://x/client.jar"
main_class = "custom.EntryPoint"
runtime_args = ["--world", "3"]
sideload = true

[[libraries]]
url = "https://x/lib.jar"
path = "/files/lib.jar"

[[libraries]]
url = "https://x/unplaced.jar"
`)

	profile, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "https://x/client.jar", profile.PrimaryURL)
	assert.Equal(t, "custom.EntryPoint", profile.MainClass)
	assert.Equal(t, []string{"--world", "3"}, profile.RuntimeArgs)
	assert.True(t, profile.Sideload)
	assert.Equal(t, []domain.LibraryDescriptor{
		{URL: "https://x/lib.jar", Path: "/files/lib.jar"},
		{URL: "https://x/unplaced.jar"},
	}, profile.Libraries)
}

func TestLoad_MissingFileYieldsZeroProfile(t *testing.T) {
	profile, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	require.NoError(t, err)
	assert.Empty(t, profile.PrimaryURL)
	assert.Empty(t, profile.Libraries)
}

func TestLoad_EnvFallback(t *testing.T) {
	path := writeProfile(t, `primary_url = "https://env/client.jar"`)
	t.Setenv("JARSTAGE_PROFILE", path)

	profile, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "https://env/client.jar", profile.PrimaryURL)
}

func TestLoad_MalformedProfile(t *testing.T) {
	path := writeProfile(t, `primary_url = [not toml`)

	_, err := Load(path)
	assert.Error(t, err)
}
