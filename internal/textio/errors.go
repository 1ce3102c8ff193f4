// SPDX-License-Identifier: MPL-2.0

package textio

import (
	"errors"
	"io/fs"
)

var (
	// ErrUnopenable is the sentinel error wrapped by OpenError.
	ErrUnopenable = errors.New("unopenable")
	// ErrIsDirectory is the cause recorded when an input path names a directory.
	ErrIsDirectory = errors.New("is a directory")
)

type (
	// OpenError reports that an input or output path could not be opened.
	// Err is the underlying operating system cause. Output is set when the
	// path was opened for writing.
	OpenError struct {
		Path   string
		Err    error
		Output bool
	}

	// ReadError reports an I/O failure after an input was opened successfully.
	ReadError struct {
		Path string
		Err  error
	}
)

// Error implements the error interface in the "path: cause" form.
func (e *OpenError) Error() string {
	return e.Path + ": " + causeText(e.Err)
}

// Unwrap returns both the sentinel and the underlying cause so that
// errors.Is works with ErrUnopenable and with fs.ErrNotExist alike.
func (e *OpenError) Unwrap() []error { return []error{ErrUnopenable, e.Err} }

// Error implements the error interface.
func (e *ReadError) Error() string {
	return "reading " + e.Path + ": " + causeText(e.Err)
}

// Unwrap returns the underlying cause.
func (e *ReadError) Unwrap() error { return e.Err }

// causeText strips the redundant operation and path that *fs.PathError adds,
// since the caller already prints the path.
func causeText(err error) string {
	if err == nil {
		return "unknown error"
	}
	var pathErr *fs.PathError
	if errors.As(err, &pathErr) {
		return pathErr.Err.Error()
	}
	return err.Error()
}
