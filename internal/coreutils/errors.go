// SPDX-License-Identifier: MPL-2.0

package coreutils

import (
	"errors"
	"fmt"
	"io"

	"github.com/invowk/textkit/pkg/types"
)

var (
	// ErrUsage is the sentinel error wrapped by UsageError.
	ErrUsage = errors.New("usage error")
	// ErrCommandNotFound is the sentinel error wrapped by CommandNotFoundError.
	ErrCommandNotFound = errors.New("command not found")
)

type (
	// UsageError reports a malformed invocation: an unknown flag, a bad flag
	// value, conflicting flags or a wrong operand count. It is always detected
	// before any input is opened.
	UsageError struct {
		Command string
		Err     error
	}

	// CommandNotFoundError is returned when a name is not registered.
	CommandNotFoundError struct {
		Name string
	}
)

// Error implements the error interface.
func (e *UsageError) Error() string {
	return fmt.Sprintf("%s: %v", e.Command, e.Err)
}

// Unwrap returns ErrUsage and the underlying cause.
func (e *UsageError) Unwrap() []error { return []error{ErrUsage, e.Err} }

// Error implements the error interface.
func (e *CommandNotFoundError) Error() string {
	return e.Name + ": command not found"
}

// Unwrap returns ErrCommandNotFound for errors.Is() compatibility.
func (e *CommandNotFoundError) Unwrap() error { return ErrCommandNotFound }

// ExitCodeFor maps an error returned by a command to a process exit status.
func ExitCodeFor(err error) types.ExitCode {
	switch {
	case err == nil:
		return types.ExitSuccess
	case errors.Is(err, ErrUsage):
		return types.ExitUsage
	case errors.Is(err, ErrCommandNotFound):
		return types.ExitNotFound
	default:
		return types.ExitFailure
	}
}

// usageErrorf builds a *UsageError for cmdName.
func usageErrorf(cmdName, format string, args ...any) error {
	return &UsageError{Command: cmdName, Err: fmt.Errorf(format, args...)}
}

// wrapError prefixes err with the command name so that mixed output from a
// script still identifies the failing utility. Returns nil if err is nil.
func wrapError(cmdName string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", cmdName, err)
}

// report writes a non-fatal diagnostic to stderr in the "cmd: message" form.
func report(stderr io.Writer, cmdName string, err error) {
	if stderr == nil {
		return
	}
	fmt.Fprintf(stderr, "%s: %v\n", cmdName, err)
}
