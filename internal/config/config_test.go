package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:8000", cfg.Backend.URL)
	assert.Equal(t, "tier_3", cfg.Practice.Tier)
	assert.Equal(t, 10, cfg.Practice.WordCount)
	assert.True(t, cfg.Practice.PureDisplay)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Empty(t, cfg.Audio.Player)
}

func TestLoad_ConfigFile(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)

	appDir := filepath.Join(dir, "vocadrill")
	require.NoError(t, os.MkdirAll(appDir, 0o755))
	yaml := `
backend:
  url: https://school.example.com
  token: tok-123
practice:
  tier: tier_1
  word_count: 5
  pure_display: false
audio:
  player: "mpv --no-video -"
`
	require.NoError(t, os.WriteFile(filepath.Join(appDir, "config.yaml"), []byte(yaml), 0o644))

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "https://school.example.com", cfg.Backend.URL)
	assert.Equal(t, "tok-123", cfg.Backend.Token)
	assert.Equal(t, "tier_1", cfg.Practice.Tier)
	assert.Equal(t, 5, cfg.Practice.WordCount)
	assert.False(t, cfg.Practice.PureDisplay)
	assert.Equal(t, "mpv --no-video -", cfg.Audio.Player)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)

	appDir := filepath.Join(dir, "vocadrill")
	require.NoError(t, os.MkdirAll(appDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(appDir, "config.yaml"),
		[]byte("practice:\n  tier: tier_1\n"), 0o644))

	t.Setenv("VOCADRILL_PRACTICE_TIER", "tier_4")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "tier_4", cfg.Practice.Tier)
}

func TestLoad_MalformedFile(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)

	appDir := filepath.Join(dir, "vocadrill")
	require.NoError(t, os.MkdirAll(appDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(appDir, "config.yaml"),
		[]byte("backend: [not a map"), 0o644))

	_, err := Load()
	require.Error(t, err)
}
