// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/invowk/textkit/internal/coreutils"
	"github.com/invowk/textkit/pkg/types"

	"github.com/spf13/cobra"
)

// newShellCommand creates the `textkit sh` command, which runs POSIX shell
// scripts whose commands are the registered utilities.
func newShellCommand(app *App) *cobra.Command {
	var (
		fromArg bool
		noExec  bool
	)

	shCmd := &cobra.Command{
		Use:   "sh [-n] (-c SCRIPT | FILE) [ARG]...",
		Short: "Run a shell script with the textkit utilities",
		Long: `Run a POSIX shell script whose commands are the textkit utilities.

The script is read from the first operand with -c, from the FILE operand
otherwise, or from standard input when no operand is given. Remaining
operands become the positional parameters $1, $2 and so on.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if fromArg && len(args) == 0 {
				return &coreutils.UsageError{Command: cmd.Name(), Err: fmt.Errorf("-c requires a script operand")}
			}

			src, name, params, err := readScript(app, fromArg, args)
			if err != nil {
				return err
			}

			if noExec {
				if err := coreutils.ValidateScript(src, name); err != nil {
					return &ExitError{Code: types.ExitUsage, Err: fmt.Errorf("%s: %w", cmd.Name(), err)}
				}
				return nil
			}

			slog.Debug("running script", "name", name, "params", len(params))
			code, err := coreutils.RunScript(cmd.Context(), app.registry, coreutils.ScriptOptions{
				Script:       src,
				Name:         name,
				Args:         params,
				Dir:          app.workDir,
				Stdin:        app.stdin,
				Stdout:       app.stdout,
				Stderr:       app.stderr,
				HostFallback: app.cfg.Shell.HostFallback,
			})
			if err != nil {
				return &ExitError{Code: code, Err: fmt.Errorf("%s: %w", cmd.Name(), err)}
			}
			if code != types.ExitSuccess {
				return &ExitError{Code: code}
			}
			return nil
		},
	}

	shCmd.Flags().BoolVarP(&fromArg, "command", "c", false, "read the script from the first operand")
	shCmd.Flags().BoolVarP(&noExec, "noexec", "n", false, "parse the script without running it")
	// Flags after the script belong to the script.
	shCmd.Flags().SetInterspersed(false)

	return shCmd
}

// readScript returns the script source, the name used in parse errors and
// the positional parameters.
func readScript(app *App, fromArg bool, args []string) (src, name string, params []string, err error) {
	switch {
	case fromArg:
		return args[0], "sh", args[1:], nil
	case len(args) > 0:
		path := args[0]
		if !filepath.IsAbs(path) {
			path = filepath.Join(app.workDir, path)
		}
		data, readErr := os.ReadFile(path)
		if readErr != nil {
			return "", "", nil, fmt.Errorf("sh: %w", readErr)
		}
		return string(data), args[0], args[1:], nil
	default:
		data, readErr := io.ReadAll(app.stdin)
		if readErr != nil {
			return "", "", nil, fmt.Errorf("sh: reading standard input: %w", readErr)
		}
		return string(data), "stdin", nil, nil
	}
}
