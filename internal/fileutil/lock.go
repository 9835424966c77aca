package fileutil

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

const (
	lockSuffix     = ".lock"
	lockStaleAfter = 10 * time.Second
	lockRetries    = 5
)

// AcquireLock creates filePath+".lock" with O_CREATE|O_EXCL. It retries up
// to maxRetries times with exponential backoff and breaks locks older than
// lockStaleAfter.
func AcquireLock(filePath string, maxRetries int) error {
	lockPath := filePath + lockSuffix

	for attempt := 0; attempt <= maxRetries; attempt++ {
		f, err := os.OpenFile(lockPath, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0600)
		if err == nil {
			_, _ = f.WriteString(strconv.Itoa(os.Getpid()))
			f.Close()
			return nil
		}
		if !os.IsExist(err) {
			return err
		}

		info, statErr := os.Stat(lockPath)
		if statErr != nil {
			// holder released it between our open and stat
			continue
		}
		if time.Since(info.ModTime()) > lockStaleAfter {
			_ = os.Remove(lockPath)
			continue
		}

		if attempt < maxRetries {
			time.Sleep(time.Duration(1<<uint(attempt)) * time.Millisecond)
		}
	}
	return fmt.Errorf("unable to acquire lock on %s after %d retries", filePath, maxRetries)
}

// ReleaseLock removes the lock file.
func ReleaseLock(filePath string) {
	_ = os.Remove(filePath + lockSuffix)
}

// WithFileLock runs fn while holding the lock on filePath. If the lock
// cannot be taken fn still runs.
func WithFileLock(filePath string, fn func() error) error {
	if err := AcquireLock(filePath, lockRetries); err == nil {
		defer ReleaseLock(filePath)
	}
	return fn()
}
