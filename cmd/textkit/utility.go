// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"github.com/invowk/textkit/internal/coreutils"

	"github.com/spf13/cobra"
)

// newUtilityCommand exposes a registered utility as a cobra subcommand. The
// utility binds its flags on the cobra flag set, so help output lists them
// with the configured defaults.
func newUtilityCommand(app *App, util coreutils.Command) *cobra.Command {
	c := &cobra.Command{
		Use:   util.Name() + " [flags] [operand]...",
		Short: util.Synopsis(),
		Long:  util.Synopsis() + "\n\nRun 'textkit manual " + util.Name() + "' for the full manual page.",
		Args:  cobra.ArbitraryArgs,
	}

	invoke := util.Bind(c.Flags())
	c.RunE = func(cmd *cobra.Command, args []string) error {
		ctx := coreutils.WithHandlerContext(cmd.Context(), app.handlerContext())
		return invoke(ctx, args)
	}
	return c
}
