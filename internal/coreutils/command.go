// SPDX-License-Identifier: MPL-2.0

package coreutils

import (
	"context"

	"github.com/spf13/pflag"
)

type (
	// Invocation runs a utility whose flags have already been parsed.
	// operands are the non-flag arguments; the HandlerContext travels in ctx.
	Invocation func(ctx context.Context, operands []string) error

	// Command defines the interface for textkit utility implementations.
	Command interface {
		// Name returns the command name (e.g., "cat", "wc").
		Name() string

		// Synopsis returns a one-line description used in help output.
		Synopsis() string

		// Bind registers the command's flags on fs and returns the Invocation
		// that reads them. Bind is called once per flag set, so the same
		// Command can serve a pflag.FlagSet owned by cobra or by Registry.Run.
		Bind(fs *pflag.FlagSet) Invocation
	}

	// FlagInfo describes a supported flag for a command.
	FlagInfo struct {
		// Name is the long flag name without dashes (e.g., "number").
		Name string
		// ShortName is the single-character alias. Empty if none.
		ShortName string
		// Description explains what the flag does.
		Description string
		// TakesValue indicates if the flag requires a value (e.g., -n 10).
		TakesValue bool
		// Default is the flag's default value rendered as text.
		Default string
	}
)

// SupportedFlags returns the flags a command binds, sorted by long name.
// This is used for documentation and introspection.
func SupportedFlags(cmd Command) []FlagInfo {
	fs := pflag.NewFlagSet(cmd.Name(), pflag.ContinueOnError)
	cmd.Bind(fs)

	var flags []FlagInfo
	fs.VisitAll(func(f *pflag.Flag) {
		flags = append(flags, FlagInfo{
			Name:        f.Name,
			ShortName:   f.Shorthand,
			Description: f.Usage,
			TakesValue:  f.NoOptDefVal == "",
			Default:     f.DefValue,
		})
	})
	return flags
}
