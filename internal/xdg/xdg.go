// Package xdg provides helpers to resolve XDG Base Directory paths for askdb.
// It implements the XDG Base Directory specification for determining where
// the CLI keeps its configuration and exported chart files on Unix-like systems.
//
// The package handles fallback to traditional locations when XDG environment
// variables are not set and ensures private permissions on created directories.
package xdg

import (
	"os"
	"path/filepath"
)

const appDir = "askdb"

// ConfigDir returns the XDG config directory for askdb.
// The directory is created with private permissions (0700) if missing.
// It falls back to ~/.config/askdb when XDG_CONFIG_HOME is unset.
func ConfigDir() (string, error) {
	return resolve("XDG_CONFIG_HOME", ".config")
}

// StateDir returns the XDG state directory for askdb.
// Exported chart configs land here when no explicit path is given.
// It falls back to ~/.local/state/askdb when XDG_STATE_HOME is unset.
func StateDir() (string, error) {
	return resolve("XDG_STATE_HOME", filepath.Join(".local", "state"))
}

func resolve(env, homeRel string) (string, error) {
	base := os.Getenv(env)
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		base = filepath.Join(home, homeRel)
	}
	dir := filepath.Join(base, appDir)
	if err := os.MkdirAll(dir, 0o700); err != nil { // private dir
		return "", err
	}
	return dir, nil
}
