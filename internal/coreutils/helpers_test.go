// SPDX-License-Identifier: MPL-2.0

package coreutils

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/invowk/textkit/internal/testutil"
)

// testEnv holds the streams and working directory of one test invocation.
type testEnv struct {
	dir    string
	stdout bytes.Buffer
	stderr bytes.Buffer
	stdin  string
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	return &testEnv{dir: t.TempDir()}
}

// context returns a context carrying the env's HandlerContext.
func (e *testEnv) context(t *testing.T) context.Context {
	t.Helper()
	return WithHandlerContext(t.Context(), &HandlerContext{
		Stdin:     strings.NewReader(e.stdin),
		Stdout:    &e.stdout,
		Stderr:    &e.stderr,
		Dir:       e.dir,
		LookupEnv: os.LookupEnv,
	})
}

// writeFile creates name under the env's directory and returns name.
func (e *testEnv) writeFile(t *testing.T, name, content string) string {
	t.Helper()
	testutil.MustWriteFile(t, e.dir, name, content)
	return name
}

// readFile returns the content of name under the env's directory.
func (e *testEnv) readFile(t *testing.T, name string) string {
	t.Helper()
	return testutil.MustReadFile(t, filepath.Join(e.dir, name))
}

// run dispatches cmd through a single-command Registry, the same path the
// shell and the CLI take.
func (e *testEnv) run(t *testing.T, cmd Command, args ...string) error {
	t.Helper()
	reg := NewRegistry()
	reg.Register(cmd)
	return reg.Run(e.context(t), cmd.Name(), append([]string{cmd.Name()}, args...))
}
