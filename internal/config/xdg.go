package config

import (
	"os"
	"path/filepath"
)

// XDGConfigHome returns the XDG config home or a default fallback.
func XDGConfigHome() string {
	if v := os.Getenv("XDG_CONFIG_HOME"); v != "" {
		return v
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return "."
	}
	return filepath.Join(home, ".config")
}

// XDGDataHome returns the XDG data home or a default fallback.
func XDGDataHome() string {
	if v := os.Getenv("XDG_DATA_HOME"); v != "" {
		return v
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return "."
	}
	return filepath.Join(home, ".local", "share")
}

// DefaultCatalogPath returns the default path of the song catalog database.
func DefaultCatalogPath() string {
	return filepath.Join(XDGDataHome(), "beatpatch", "catalog.db")
}

// DefaultMapsPath returns the default maps config path.
func DefaultMapsPath() string {
	return filepath.Join(XDGConfigHome(), "beatpatch", "maps.toml")
}
