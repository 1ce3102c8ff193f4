// SPDX-License-Identifier: MPL-2.0

package coreutils

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/invowk/textkit/pkg/types"

	"mvdan.cc/sh/v3/expand"
	"mvdan.cc/sh/v3/interp"
	"mvdan.cc/sh/v3/syntax"
)

// ErrScriptParse is wrapped by the errors for scripts that fail to parse.
var ErrScriptParse = errors.New("failed to parse script")

// ScriptOptions configures RunScript.
type ScriptOptions struct {
	// Script is the shell source to run.
	Script string
	// Name identifies the script in parse errors (e.g., a file name or "-c").
	Name string
	// Args are the positional parameters ($1, $2, ...).
	Args []string
	// Dir is the initial working directory. Empty means the process directory.
	Dir string
	// Env is the environment as KEY=VALUE pairs. Nil inherits the process environment.
	Env []string
	// Stdin, Stdout and Stderr are the script's standard streams.
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
	// HostFallback lets names that are not registered run host binaries.
	// When false they fail with exit status 127.
	HostFallback bool
}

// ValidateScript parses src without running it.
func ValidateScript(src, name string) error {
	if strings.TrimSpace(src) == "" {
		return errors.New("script is empty")
	}
	if _, err := syntax.NewParser().Parse(strings.NewReader(src), name); err != nil {
		return fmt.Errorf("%w: %w", ErrScriptParse, err)
	}
	return nil
}

// RunScript parses and runs a POSIX shell script with the registry's utilities
// intercepting command execution. It returns the script's exit status. The
// error is non-nil only when the script could not be parsed or the
// interpreter failed for a reason other than a non-zero exit status.
func RunScript(ctx context.Context, reg *Registry, opts ScriptOptions) (types.ExitCode, error) {
	name := opts.Name
	if name == "" {
		name = "script"
	}
	prog, err := syntax.NewParser().Parse(strings.NewReader(opts.Script), name)
	if err != nil {
		return types.ExitUsage, fmt.Errorf("%w: %w", ErrScriptParse, err)
	}

	runnerOpts := []interp.RunnerOption{
		interp.StdIO(opts.Stdin, opts.Stdout, opts.Stderr),
		interp.ExecHandlers(reg.ExecHandler(opts.HostFallback)),
	}
	if opts.Dir != "" {
		runnerOpts = append(runnerOpts, interp.Dir(opts.Dir))
	}
	if opts.Env != nil {
		runnerOpts = append(runnerOpts, interp.Env(expand.ListEnviron(opts.Env...)))
	}
	// Prepend "--" so that arguments like "-v" are not taken as shell options.
	if len(opts.Args) > 0 {
		params := append([]string{"--"}, opts.Args...)
		runnerOpts = append(runnerOpts, interp.Params(params...))
	}

	runner, err := interp.New(runnerOpts...)
	if err != nil {
		return types.ExitFailure, fmt.Errorf("failed to create interpreter: %w", err)
	}

	if err := runner.Run(ctx, prog); err != nil {
		var exitStatus interp.ExitStatus
		if errors.As(err, &exitStatus) {
			return types.ExitCode(exitStatus), nil
		}
		return types.ExitFailure, fmt.Errorf("script execution failed: %w", err)
	}
	return types.ExitSuccess, nil
}

// ExecHandler returns mvdan/sh exec middleware that runs registered utilities
// in-process.
//
// A registered utility that fails prints its error to the script's stderr and
// sets the exit status from ExitCodeFor; there is no fallback to a host binary
// of the same name. Unregistered names go to next when hostFallback is true and
// otherwise fail with status 127.
func (r *Registry) ExecHandler(hostFallback bool) func(next interp.ExecHandlerFunc) interp.ExecHandlerFunc {
	return func(next interp.ExecHandlerFunc) interp.ExecHandlerFunc {
		return func(ctx context.Context, args []string) error {
			if len(args) == 0 {
				return next(ctx, args)
			}

			// The interpreter's streams take precedence over any outer HandlerContext.
			hc := ExtractHandlerContext(ctx)
			if _, found := r.Lookup(args[0]); !found {
				if hostFallback {
					slog.Debug("falling back to host binary", "command", args[0])
					return next(ctx, args)
				}
				report(hc.Stderr, args[0], errors.New("command not found"))
				return interp.ExitStatus(types.ExitNotFound)
			}

			if err := r.Run(WithHandlerContext(ctx, hc), args[0], args); err != nil {
				if hc.Stderr != nil {
					fmt.Fprintln(hc.Stderr, err)
				}
				return interp.ExitStatus(ExitCodeFor(err))
			}
			return nil
		}
	}
}
