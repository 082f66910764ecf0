package config

import (
	"os"
	"path/filepath"
)

func xdgHome(env string, fallback ...string) string {
	if v := os.Getenv(env); v != "" {
		return v
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return "."
	}
	return filepath.Join(append([]string{home}, fallback...)...)
}

// DefaultConfigPath is the TOML config file, ONBEAT_CONFIG overrides it.
func DefaultConfigPath() string {
	if v := os.Getenv("ONBEAT_CONFIG"); v != "" {
		return v
	}
	return filepath.Join(xdgHome("XDG_CONFIG_HOME", ".config"), "onbeat", "config.toml")
}

// DefaultDBPath is where plays are saved.
func DefaultDBPath() string {
	return filepath.Join(xdgHome("XDG_DATA_HOME", ".local", "share"), "onbeat", "scores.db")
}
