package fileutil

import (
	"os"
	"path/filepath"
)

// AtomicWriteFile writes data to a uniquely named temporary file next to
// filePath, syncs it and renames it over the target. The temporary file is
// removed if any step fails. Errors are the *os.PathError or *os.LinkError
// of the step that failed.
func AtomicWriteFile(filePath string, data []byte, perm os.FileMode) error {
	f, err := os.CreateTemp(filepath.Dir(filePath), filepath.Base(filePath)+".*.tmp")
	if err != nil {
		return err
	}
	tmpPath := f.Name()

	fail := func(err error) error {
		f.Close()
		_ = os.Remove(tmpPath)
		return err
	}
	if _, err := f.Write(data); err != nil {
		return fail(err)
	}
	if err := f.Chmod(perm); err != nil {
		return fail(err)
	}
	if err := f.Sync(); err != nil {
		return fail(err)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return err
	}
	if err := os.Rename(tmpPath, filePath); err != nil {
		_ = os.Remove(tmpPath)
		return err
	}
	return nil
}

// SaveLocked writes data atomically while holding the file's lock.
func SaveLocked(filePath string, data []byte, perm os.FileMode) error {
	return WithFileLock(filePath, func() error {
		return AtomicWriteFile(filePath, data, perm)
	})
}
