package config

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// HomeEnv overrides the application directory.
const HomeEnv = "SLEEPTRACKER_HOME"

const DefaultTimeFormat = "Mon Jan 02 2006 15:04"

type Config struct {
	DatabasePath string `toml:"database_path"`
	LogPath      string `toml:"log_path"`
	LogLevel     string `toml:"log_level"`
	TimeFormat   string `toml:"time_format"`
}

func DefaultConfig() *Config {
	dir, _ := AppDir()
	return &Config{
		DatabasePath: filepath.Join(dir, "db", "sleeptracker.sqlite"),
		LogPath:      filepath.Join(dir, "sleeptracker.log"),
		LogLevel:     "info",
		TimeFormat:   DefaultTimeFormat,
	}
}

func AppDir() (string, error) {
	if dir := os.Getenv(HomeEnv); dir != "" {
		return expandPath(dir), nil
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".sleeptracker"), nil
}

func ConfigPath() (string, error) {
	dir, err := AppDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

func EnsureDirectories() error {
	dir, err := AppDir()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	return os.MkdirAll(filepath.Join(dir, "db"), 0755)
}

func Load() (*Config, error) {
	configPath, err := ConfigPath()
	if err != nil {
		return nil, err
	}

	cfg := DefaultConfig()

	// First run: write the defaults so the user has something to edit
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		if err := EnsureDirectories(); err != nil {
			return nil, err
		}
		if err := Save(cfg); err != nil {
			return nil, err
		}
		return cfg, nil
	}

	if _, err := toml.DecodeFile(configPath, cfg); err != nil {
		return nil, err
	}

	cfg.DatabasePath = expandPath(cfg.DatabasePath)
	cfg.LogPath = expandPath(cfg.LogPath)
	if cfg.TimeFormat == "" {
		cfg.TimeFormat = DefaultTimeFormat
	}

	return cfg, nil
}

func Save(cfg *Config) error {
	configPath, err := ConfigPath()
	if err != nil {
		return err
	}

	f, err := os.Create(configPath)
	if err != nil {
		return err
	}
	defer f.Close()

	return toml.NewEncoder(f).Encode(cfg)
}

func expandPath(path string) string {
	if len(path) > 0 && path[0] == '~' {
		homeDir, _ := os.UserHomeDir()
		return filepath.Join(homeDir, path[1:])
	}
	return path
}
