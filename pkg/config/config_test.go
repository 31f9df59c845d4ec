package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/stencil/pkg/paths"
)

func newTestPaths(t *testing.T, configDir string) *paths.Paths {
	t.Helper()
	t.Setenv(paths.EnvConfigDir, configDir)
	p, err := paths.New("/tmp/templates")
	require.NoError(t, err)
	return p
}

func TestLoadDefaults(t *testing.T) {
	p := newTestPaths(t, t.TempDir())

	s, err := Load(p)
	require.NoError(t, err)

	assert.Equal(t, "", s.Scope)
	assert.Equal(t, "", s.Output)
	assert.Equal(t, "npm", s.Manager)
}

func TestLoadUserConfigOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	configFile := filepath.Join(dir, paths.ConfigFileName)
	content := "[scaffold]\nscope = \"@acme\"\nmanager = \"pnpm\"\n"
	require.NoError(t, os.WriteFile(configFile, []byte(content), 0644))

	p := newTestPaths(t, dir)

	s, err := Load(p)
	require.NoError(t, err)

	assert.Equal(t, "@acme", s.Scope)
	assert.Equal(t, "pnpm", s.Manager)
	assert.Equal(t, "", s.Output)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	configFile := filepath.Join(dir, paths.ConfigFileName)
	require.NoError(t, os.WriteFile(configFile, []byte("[scaffold]\nscope = \"@acme\"\n"), 0644))

	t.Setenv("STENCIL_SCAFFOLD_SCOPE", "@other")
	p := newTestPaths(t, dir)

	s, err := Load(p)
	require.NoError(t, err)

	assert.Equal(t, "@other", s.Scope)
}

func TestLoadRejectsMalformedConfig(t *testing.T) {
	dir := t.TempDir()
	configFile := filepath.Join(dir, paths.ConfigFileName)
	require.NoError(t, os.WriteFile(configFile, []byte("this is not toml ["), 0644))

	p := newTestPaths(t, dir)

	_, err := Load(p)
	require.Error(t, err)
}
