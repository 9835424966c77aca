// Package scaffold writes a fixed payload to a destination file.
package scaffold

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/seabearDEV/scaf/internal/fileutil"
)

const (
	fileMode = 0644
	dirMode  = 0755
)

// Options controls a single write. The zero value is not useful; start
// from DefaultOptions.
type Options struct {
	Payload     string
	Destination string
	Encoding    string
	// Overwrite replaces an existing destination. When false the write
	// fails with an error wrapping fs.ErrExist.
	Overwrite bool
	// CreateParents creates missing parent directories. Off by default:
	// a missing parent is an error.
	CreateParents bool
	// Atomic stages the content next to the destination and renames it
	// into place.
	Atomic bool
	// Verify reads the file back and compares digests after writing.
	Verify bool
}

// DefaultOptions returns options that reproduce the dashboard scaffold:
// the dashboard payload, written as UTF-8 over src/app/dashboard/page.tsx.
func DefaultOptions() Options {
	return Options{
		Payload:     DashboardPage,
		Destination: DefaultDestination,
		Encoding:    DefaultEncoding,
		Overwrite:   true,
	}
}

// Result describes a completed write.
type Result struct {
	Path     string
	Encoding string
	Bytes    int
	Digest   string
}

// Writer writes payloads to disk.
type Writer struct {
	log zerolog.Logger
}

// NewWriter returns a Writer that logs to logger.
func NewWriter(logger zerolog.Logger) *Writer {
	return &Writer{log: logger}
}

// WriteScaffold writes the dashboard page to its default destination.
func WriteScaffold() error {
	_, err := NewWriter(log.Logger).Write(DefaultOptions())
	return err
}

// Write encodes opts.Payload and writes it to opts.Destination in a single
// write call, then syncs and closes the file. Unless opts.Atomic is set the
// write happens in place, so an interrupted process can leave a truncated
// file behind. Nothing is retried.
func (w *Writer) Write(opts Options) (Result, error) {
	dest := opts.Destination
	if dest == "" {
		return Result{}, ErrNoDestination
	}

	_, encName, err := lookup(opts.Encoding)
	if err != nil {
		return Result{}, err
	}
	data, err := Encode(opts.Payload, encName)
	if err != nil {
		return Result{}, err
	}

	logger := w.log.With().Str("path", dest).Str("encoding", encName).Logger()

	if opts.CreateParents {
		dir := filepath.Dir(dest)
		if err := os.MkdirAll(dir, dirMode); err != nil {
			return Result{}, &WriteError{Op: "mkdir", Path: dir, Err: err}
		}
		logger.Debug().Str("dir", dir).Msg("parent directories ensured")
	}

	if opts.Atomic {
		err = writeAtomic(dest, data, opts.Overwrite)
	} else {
		err = writeInPlace(dest, data, opts.Overwrite)
	}
	if err != nil {
		logger.Debug().Err(err).Msg("write failed")
		return Result{}, err
	}

	res := Result{
		Path:     dest,
		Encoding: encName,
		Bytes:    len(data),
		Digest:   Digest(data),
	}
	logger.Debug().Int("bytes", res.Bytes).Bool("atomic", opts.Atomic).Msg("payload written")

	if opts.Verify {
		if err := verify(dest, res.Digest); err != nil {
			return Result{}, err
		}
		logger.Debug().Str("digest", res.Digest).Msg("verified")
	}
	return res, nil
}

func writeInPlace(path string, data []byte, overwrite bool) error {
	flags := os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	if !overwrite {
		flags = os.O_WRONLY | os.O_CREATE | os.O_EXCL
	}
	f, err := os.OpenFile(path, flags, fileMode)
	if err != nil {
		return &WriteError{Op: "open", Path: path, Err: err}
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		return &WriteError{Op: "write", Path: path, Err: err}
	}
	if err := f.Sync(); err != nil {
		f.Close()
		return &WriteError{Op: "sync", Path: path, Err: err}
	}
	if err := f.Close(); err != nil {
		return &WriteError{Op: "close", Path: path, Err: err}
	}
	return nil
}

func writeAtomic(path string, data []byte, overwrite bool) error {
	if !overwrite {
		if _, err := os.Lstat(path); err == nil {
			return &WriteError{Op: "open", Path: path, Err: fs.ErrExist}
		}
	}
	if err := fileutil.AtomicWriteFile(path, data, fileMode); err != nil {
		return &WriteError{Op: failedOp(err, "write"), Path: path, Err: err}
	}
	return nil
}

// failedOp returns the operation recorded in an OS error, or fallback.
func failedOp(err error, fallback string) string {
	var pathErr *fs.PathError
	if errors.As(err, &pathErr) {
		return pathErr.Op
	}
	var linkErr *os.LinkError
	if errors.As(err, &linkErr) {
		return linkErr.Op
	}
	return fallback
}

func verify(path, want string) error {
	got, err := os.ReadFile(path)
	if err != nil {
		return &WriteError{Op: "verify", Path: path, Err: err}
	}
	if d := Digest(got); d != want {
		return &WriteError{Op: "verify", Path: path, Err: fmt.Errorf("%w: digest %s, want %s", ErrVerify, d, want)}
	}
	return nil
}
