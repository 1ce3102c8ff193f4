// SPDX-License-Identifier: MPL-2.0

package coreutils

import (
	"context"
	"errors"
	"io"
	"strings"

	"github.com/spf13/pflag"
)

// echoCommand implements the echo utility.
type echoCommand struct {
	name string
}

// newEchoCommand creates a new echo command.
func newEchoCommand() *echoCommand {
	return &echoCommand{name: "echo"}
}

// Name returns the command name.
func (c *echoCommand) Name() string {
	return c.name
}

// Synopsis returns the one-line description.
func (c *echoCommand) Synopsis() string {
	return "Print text joined by spaces"
}

// Bind registers echo's flags.
func (c *echoCommand) Bind(fs *pflag.FlagSet) Invocation {
	omitNewline := fs.BoolP("no-newline", "n", false, "do not print the trailing newline")

	return func(ctx context.Context, operands []string) error {
		if len(operands) == 0 {
			return &UsageError{Command: c.name, Err: errors.New("missing TEXT operand")}
		}
		text := strings.Join(operands, " ")
		if !*omitNewline {
			text += "\n"
		}
		_, err := io.WriteString(GetHandlerContext(ctx).output(), text)
		return wrapError(c.name, err)
	}
}
