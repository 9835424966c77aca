package scaffold

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
)

var (
	// ErrNoDestination is returned when Options carries an empty destination.
	ErrNoDestination = errors.New("no destination path given")
	// ErrUnknownEncoding is returned for a character set label that cannot be resolved.
	ErrUnknownEncoding = errors.New("unknown encoding")
	// ErrEncode is returned when the payload holds a rune the encoding cannot represent.
	ErrEncode = errors.New("payload cannot be encoded")
	// ErrVerify is returned when the bytes read back differ from the bytes written.
	ErrVerify = errors.New("written content does not match payload")
)

// WriteError records a failed file system step and the path it touched.
// It unwraps to the underlying OS error, so errors.Is(err, fs.ErrNotExist)
// and friends work on it.
type WriteError struct {
	Op   string
	Path string
	Err  error
}

// Error formats the failure as "op path: cause". OS errors that already
// carry their own op and path are printed as is.
func (e *WriteError) Error() string {
	var pathErr *fs.PathError
	var linkErr *os.LinkError
	if errors.As(e.Err, &pathErr) || errors.As(e.Err, &linkErr) {
		return e.Err.Error()
	}
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

// Unwrap returns the underlying error.
func (e *WriteError) Unwrap() error {
	return e.Err
}
