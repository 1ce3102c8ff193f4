// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"

	"github.com/invowk/textkit/internal/coreutils"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"
)

// newManualCommand creates the `textkit manual` command, which renders the
// embedded Markdown manual page of a utility.
func newManualCommand(app *App) *cobra.Command {
	var raw bool

	manualCmd := &cobra.Command{
		Use:       "manual NAME",
		Short:     "Show the manual page of a utility",
		Args:      usageArgs(cobra.ExactArgs(1)),
		ValidArgs: coreutils.ManualNames(),
		RunE: func(cmd *cobra.Command, args []string) error {
			page, ok := coreutils.Manual(args[0])
			if !ok {
				return &coreutils.UsageError{Command: cmd.Name(), Err: fmt.Errorf("no manual page for %q", args[0])}
			}

			if raw {
				fmt.Fprint(app.stdout, page)
				return nil
			}

			rendered, err := glamour.Render(page, app.colorScheme())
			if err != nil {
				return fmt.Errorf("manual: rendering %s: %w", args[0], err)
			}
			fmt.Fprint(app.stdout, rendered)
			return nil
		},
	}

	manualCmd.Flags().BoolVar(&raw, "raw", false, "print the Markdown source instead of rendering it")

	return manualCmd
}
