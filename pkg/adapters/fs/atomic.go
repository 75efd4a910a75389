package fs

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
)

const (
	// TempFilePrefix is the prefix used for temporary atomic write files.
	TempFilePrefix = "jotter-tmp-"
)

// writeFileAtomic replaces target with data through a synced temp file in the
// same directory. Readers observe either the old collection or the new one.
// An existing target keeps its permissions; perm applies to new files only.
// The directory is synced after the rename so the swap survives a crash.
func writeFileAtomic(target string, data []byte, perm os.FileMode) error {
	if info, err := os.Stat(target); err == nil {
		perm = info.Mode().Perm()
	}

	dir := filepath.Dir(target)
	tmp, err := os.CreateTemp(dir, TempFilePrefix+"*")
	if err != nil {
		return fmt.Errorf("stage %s: %w", target, err)
	}
	staged := tmp.Name()
	defer os.Remove(staged) // no-op once renamed

	if err := fill(tmp, data, perm); err != nil {
		return fmt.Errorf("stage %s: %w", target, err)
	}
	if err := os.Rename(staged, target); err != nil {
		return fmt.Errorf("replace %s: %w", target, err)
	}
	if err := syncDir(dir); err != nil {
		return fmt.Errorf("sync %s: %w", dir, err)
	}
	return nil
}

// fill writes, syncs and closes f.
func fill(f *os.File, data []byte, perm os.FileMode) error {
	_, err := f.Write(data)
	if err == nil {
		err = f.Chmod(perm)
	}
	if err == nil {
		err = f.Sync()
	}
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	return err
}

func syncDir(dir string) error {
	// Directories cannot be opened for sync on Windows.
	if runtime.GOOS == "windows" {
		return nil
	}
	d, err := os.Open(dir)
	if err != nil {
		return err
	}
	defer d.Close()
	return d.Sync()
}
