// Package fsutil resolves the per-user platformio directories shared by the
// state store and the cache.
package fsutil

import (
	"fmt"
	"os"
	"path/filepath"
)

// HomeDir returns the per-user platformio directory, honoring the
// PLATFORMIO_HOME_DIR override. The directory is created if missing.
func HomeDir() (string, error) {
	dir := os.Getenv("PLATFORMIO_HOME_DIR")
	if dir == "" {
		userHome, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("determining home directory: %w", err)
		}
		dir = filepath.Join(userHome, ".platformio")
	}

	if err := os.MkdirAll(dir, 0o750); err != nil {
		return "", fmt.Errorf("creating home directory: %w", err)
	}
	return dir, nil
}

// CacheDir returns the cache root, honoring the PLATFORMIO_CACHE_DIR
// override. Unlike HomeDir it does not create the directory; the cache
// recreates its structure lazily.
func CacheDir() (string, error) {
	if dir := os.Getenv("PLATFORMIO_CACHE_DIR"); dir != "" {
		return dir, nil
	}
	home, err := HomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache"), nil
}
