// SPDX-License-Identifier: MPL-2.0

package textio

import (
	"bufio"
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
)

// bufferSize is the read buffer owned by each Source.
const bufferSize = 64 * 1024

type (
	// Source is an opened input. Callers depend only on this capability,
	// never on whether standard input or a file backs it.
	//
	// ReadLine and Read share one buffer and may be interleaved.
	Source interface {
		io.Reader

		// ReadLine appends the next line to dst, including its trailing
		// newline when present, and returns the extended slice.
		// A final fragment without a newline is returned once with a nil error.
		// At end of stream nothing is appended and the error is io.EOF,
		// which keeps an exhausted stream distinct from an empty line ("\n").
		ReadLine(dst []byte) ([]byte, error)

		// Name returns the designator the Source was opened from.
		Name() Designator

		// Close releases the underlying file. Closing a standard input
		// Source never closes the caller's reader.
		Close() error
	}

	// lineReader implements the reading half of Source over a bufio.Reader.
	lineReader struct {
		name Designator
		br   *bufio.Reader
	}

	// pipeSource reads standard input or any other caller-owned stream.
	pipeSource struct {
		lineReader
	}

	// fileSource reads a file opened by Open and owns its descriptor.
	fileSource struct {
		lineReader
		f *os.File
	}
)

// NewSource wraps an arbitrary reader as a Source named name. Close on the
// result is a no-op; the caller keeps ownership of r.
func NewSource(name Designator, r io.Reader) Source {
	if r == nil {
		r = bytes.NewReader(nil)
	}
	return &pipeSource{lineReader{name: name, br: bufio.NewReaderSize(r, bufferSize)}}
}

// Open resolves a designator to a Source. Standard input never fails to open.
// A relative path is resolved against workDir. Any failure is an *OpenError
// carrying the designator and the operating system cause.
func Open(d Designator, stdin io.Reader, workDir string) (Source, error) {
	if err := d.Validate(); err != nil {
		return nil, &OpenError{Path: d.String(), Err: err}
	}
	if d.IsStdin() {
		return NewSource(d, stdin), nil
	}

	f, err := os.Open(resolvePath(d.String(), workDir))
	if err != nil {
		return nil, &OpenError{Path: d.String(), Err: err}
	}
	info, err := f.Stat()
	if err != nil {
		_ = f.Close() // Already failing; the stat error is the one to report
		return nil, &OpenError{Path: d.String(), Err: err}
	}
	if info.IsDir() {
		_ = f.Close() // Directories are never readable as text
		return nil, &OpenError{Path: d.String(), Err: ErrIsDirectory}
	}

	return &fileSource{
		lineReader: lineReader{name: d, br: bufio.NewReaderSize(f, bufferSize)},
		f:          f,
	}, nil
}

// Name returns the designator the Source was opened from.
func (r *lineReader) Name() Designator { return r.name }

// Read reads raw bytes, ignoring line boundaries.
func (r *lineReader) Read(p []byte) (int, error) {
	n, err := r.br.Read(p)
	if err != nil && !errors.Is(err, io.EOF) {
		err = &ReadError{Path: r.name.String(), Err: err}
	}
	return n, err
}

// ReadLine appends the next newline-terminated line (or final fragment) to dst.
func (r *lineReader) ReadLine(dst []byte) ([]byte, error) {
	start := len(dst)
	for {
		frag, err := r.br.ReadSlice('\n')
		dst = append(dst, frag...)
		switch {
		case err == nil:
			return dst, nil
		case errors.Is(err, bufio.ErrBufferFull):
			// Line longer than the buffer: keep accumulating.
		case errors.Is(err, io.EOF):
			if len(dst) > start {
				return dst, nil
			}
			return dst, io.EOF
		default:
			return dst, &ReadError{Path: r.name.String(), Err: err}
		}
	}
}

// Close is a no-op: the reader belongs to the caller.
func (s *pipeSource) Close() error { return nil }

// Close closes the underlying file.
func (s *fileSource) Close() error {
	if err := s.f.Close(); err != nil {
		return &ReadError{Path: s.name.String(), Err: err}
	}
	return nil
}

// resolvePath joins relative paths onto workDir.
func resolvePath(path, workDir string) string {
	if filepath.IsAbs(path) || workDir == "" {
		return path
	}
	return filepath.Join(workDir, path)
}
