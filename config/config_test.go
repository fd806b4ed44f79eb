package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadOverlaysDefaults(t *testing.T) {
	t.Setenv(EnvLogLevel, "")
	path := writeConfig(t, `
[log]
level = "DEBUG"

[export]
dir = "/tmp/out"
overwrite = true

[show]
swatch_width = 40

[extra]
thing = 1
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format)
	assert.Equal(t, "/tmp/out", cfg.Export.Dir)
	assert.True(t, cfg.Export.Overwrite)
	assert.Equal(t, 16, cfg.Show.SwatchWidth)
	assert.Equal(t, ".", cfg.Watch.Dir)
	assert.Equal(t, 200, cfg.Watch.DebounceMs)
	assert.Equal(t, path, cfg.Source())
	assert.Contains(t, cfg.UnknownKeys(), "extra.thing")
}

func TestLoadNormalizesInvalid(t *testing.T) {
	t.Setenv(EnvLogLevel, "")
	path := writeConfig(t, `
[log]
level = "loud"
format = "xml"

[watch]
dir = ""
debounce_ms = 99999
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format)
	assert.Equal(t, ".", cfg.Watch.Dir)
	assert.Equal(t, 5000, cfg.Watch.DebounceMs)
}

func TestLoadParseError(t *testing.T) {
	t.Setenv(EnvLogLevel, "")
	path := writeConfig(t, "[log\nlevel=")
	cfg, err := Load(path)
	require.Error(t, err)
	assert.Equal(t, Defaults().Log, cfg.Log)
}

func TestLoadMissingFile(t *testing.T) {
	t.Setenv(EnvLogLevel, "")
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoadNoFileUsesDefaults(t *testing.T) {
	t.Setenv(EnvConfigPath, "")
	t.Setenv(EnvLogLevel, "")
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("HOME", t.TempDir())
	cfg, err := Load("")
	require.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, Defaults().Show, cfg.Show)
	assert.Empty(t, cfg.Source())
}

func TestLoadFromEnv(t *testing.T) {
	path := writeConfig(t, "[log]\nformat = \"json\"\n")
	t.Setenv(EnvConfigPath, path)
	t.Setenv(EnvLogLevel, "warn")
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestLoadXDG(t *testing.T) {
	xdg := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(xdg, "palconv"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(xdg, "palconv", "config.toml"), []byte("[export]\ndir = \"x\"\n"), 0o644))
	t.Setenv(EnvConfigPath, "")
	t.Setenv(EnvLogLevel, "")
	t.Setenv("XDG_CONFIG_HOME", xdg)
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "x", cfg.Export.Dir)
}
