// Package paths resolves the fixed external paths the launcher depends on:
// the NicLink environment file, the optional config file, and the target
// chess-clock script.
package paths

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

// TargetScript is the entry point the launcher hands control to. It is
// expected to live next to the launcher binary.
const TargetScript = "standalone_chessclock.py"

// DefaultEnvFile returns the conventional location of the NicLink
// environment activation script, relative to the user's home directory.
func DefaultEnvFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		// No home directory: return the relative path and let the shell
		// report the failure when it tries to source it.
		return filepath.Join("dev", "NicLink", "pyenv_up.sh")
	}
	return filepath.Join(home, "dev", "NicLink", "pyenv_up.sh")
}

// DefaultConfigFile returns the launcher config path for the current
// platform, following XDG conventions on Linux.
func DefaultConfigFile() string {
	// Check environment variable first
	if path := os.Getenv("CHESSCLOCK_CONFIG"); path != "" {
		return path
	}

	switch runtime.GOOS {
	case "darwin":
		if home := os.Getenv("HOME"); home != "" {
			return filepath.Join(home, "Library", "Application Support", "niclink", "chessclock.yaml")
		}
	case "windows":
		if appData := os.Getenv("APPDATA"); appData != "" {
			return filepath.Join(appData, "niclink", "chessclock.yaml")
		}
	default:
		if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
			return filepath.Join(xdgConfig, "niclink", "chessclock.yaml")
		}
		if home := os.Getenv("HOME"); home != "" {
			return filepath.Join(home, ".config", "niclink", "chessclock.yaml")
		}
	}

	// Fallback to a dotfile in the working directory
	return ".chessclock.yaml"
}

// ExpandHome replaces a leading "~" or "~/" with the user's home directory.
// Paths without a tilde prefix are returned unchanged.
func ExpandHome(path string) string {
	if path == "~" {
		if home, err := os.UserHomeDir(); err == nil {
			return home
		}
		return path
	}
	if strings.HasPrefix(path, "~"+string(os.PathSeparator)) || strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[2:])
		}
	}
	return path
}
