// SPDX-License-Identifier: MPL-2.0

package textio

import (
	"io"
	"os"
)

// nopWriteCloser adapts a caller-owned writer such as standard output.
type nopWriteCloser struct {
	io.Writer
}

// Close is a no-op.
func (nopWriteCloser) Close() error { return nil }

// OpenOutput returns the output destination for a utility that may write to a
// file instead of standard output. An empty path or "-" selects stdout.
// Any other path is opened write-only in append mode and must already exist;
// a failure is an *OpenError naming the path.
func OpenOutput(path string, stdout io.Writer, workDir string) (io.WriteCloser, error) {
	if path == "" || Designator(path).IsStdin() {
		if stdout == nil {
			stdout = io.Discard
		}
		return nopWriteCloser{stdout}, nil
	}

	f, err := os.OpenFile(resolvePath(path, workDir), os.O_WRONLY|os.O_APPEND, 0)
	if err != nil {
		return nil, &OpenError{Path: path, Err: err, Output: true}
	}
	return f, nil
}
