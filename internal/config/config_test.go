package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_CreatesDefaults(t *testing.T) {
	home := t.TempDir()
	t.Setenv(HomeEnv, home)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(home, "db", "sleeptracker.sqlite"), cfg.DatabasePath)
	assert.Equal(t, filepath.Join(home, "sleeptracker.log"), cfg.LogPath)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, DefaultTimeFormat, cfg.TimeFormat)

	assert.FileExists(t, filepath.Join(home, "config.toml"))
	assert.DirExists(t, filepath.Join(home, "db"))
}

func TestLoad_ReadsExistingFile(t *testing.T) {
	home := t.TempDir()
	t.Setenv(HomeEnv, home)

	content := `database_path = "/tmp/nights.sqlite"
log_level = "debug"
`
	require.NoError(t, os.WriteFile(filepath.Join(home, "config.toml"), []byte(content), 0644))

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "/tmp/nights.sqlite", cfg.DatabasePath)
	assert.Equal(t, "debug", cfg.LogLevel)
	// Unset keys keep their defaults
	assert.Equal(t, DefaultTimeFormat, cfg.TimeFormat)
	assert.Equal(t, filepath.Join(home, "sleeptracker.log"), cfg.LogPath)
}

func TestLoad_InvalidFile(t *testing.T) {
	home := t.TempDir()
	t.Setenv(HomeEnv, home)

	require.NoError(t, os.WriteFile(filepath.Join(home, "config.toml"), []byte("log_level = ["), 0644))

	_, err := Load()
	assert.Error(t, err)
}

func TestExpandPath(t *testing.T) {
	homeDir, err := os.UserHomeDir()
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(homeDir, "nights.sqlite"), expandPath("~/nights.sqlite"))
	assert.Equal(t, "/abs/path", expandPath("/abs/path"))
	assert.Equal(t, "", expandPath(""))
}
