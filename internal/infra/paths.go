package infra

import (
	"os"
	"path/filepath"
)

// ResolveConfigPath locates the config file: the working directory
// first, then the OS-standard config dir.
func ResolveConfigPath() string {
	defaultPath := filepath.Join("configs", "config.yaml")

	if _, err := os.Stat(defaultPath); err == nil {
		return defaultPath
	}

	configRoot, err := os.UserConfigDir()
	if err == nil {
		osPath := filepath.Join(configRoot, AppName, "config.yaml")
		if _, err := os.Stat(osPath); err == nil {
			return osPath
		}
	}

	// Return the default and let LoadConfig fall back to built-in
	// defaults if it's really missing.
	return defaultPath
}

// DefaultLogDir is where log files go when no directory is configured.
func DefaultLogDir() string {
	return "logs"
}

// EnsureDir creates a directory (and parents) if needed.
func EnsureDir(path string) error {
	return os.MkdirAll(path, 0755)
}
