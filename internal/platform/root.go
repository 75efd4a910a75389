package platform

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/aretw0/jotter/pkg/adapters/fs"
)

// FindRoot walks upwards from startDir looking for a store root.
// The indicator is the system directory (".jotter" unless systemDir says otherwise).
// It returns the absolute path to the first directory that has one.
func FindRoot(startDir, systemDir string) (string, error) {
	if systemDir == "" {
		systemDir = fs.DefaultSystemDir
	}

	abs, err := filepath.Abs(startDir)
	if err != nil {
		return "", err
	}

	dir := abs
	for {
		if isDir(filepath.Join(dir, systemDir)) {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached filesystem root
			break
		}
		dir = parent
	}

	return "", fmt.Errorf("no %s directory found from %s upwards", systemDir, abs)
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
