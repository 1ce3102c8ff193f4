// SPDX-License-Identifier: MPL-2.0

package coreutils

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"unicode"

	"github.com/invowk/textkit/internal/textio"

	"github.com/spf13/pflag"
)

// Line numbering modes for cat.
const (
	// NumberNone disables numbering.
	NumberNone NumberingMode = iota
	// NumberAll numbers every emitted line.
	NumberAll
	// NumberNonBlank numbers only lines that are not blank.
	NumberNonBlank
)

type (
	// NumberingMode selects which lines cat numbers.
	NumberingMode int

	// catCommand implements the cat utility.
	catCommand struct {
		name string
	}

	// catState is carried from line to line and from input to input.
	catState struct {
		// numbered is the number of lines numbered so far.
		numbered int
		// prevBlank records whether the previous emitted line was blank.
		prevBlank bool
	}
)

// newCatCommand creates a new cat command.
func newCatCommand() *catCommand {
	return &catCommand{name: "cat"}
}

// Name returns the command name.
func (c *catCommand) Name() string {
	return c.name
}

// Synopsis returns the one-line description.
func (c *catCommand) Synopsis() string {
	return "Concatenate inputs, optionally numbering lines"
}

// Bind registers cat's flags.
func (c *catCommand) Bind(fs *pflag.FlagSet) Invocation {
	number := fs.BoolP("number", "n", false, "number all output lines")
	numberNonBlank := fs.BoolP("number-nonblank", "b", false, "number non-blank output lines")
	squeeze := fs.BoolP("squeeze-blank", "s", false, "suppress repeated blank lines")
	fs.BoolP("unbuffered", "u", false, "ignored")

	return func(ctx context.Context, operands []string) error {
		if *number && *numberNonBlank {
			return usageErrorf(c.name, "options --number and --number-nonblank are mutually exclusive")
		}
		mode := NumberNone
		switch {
		case *number:
			mode = NumberAll
		case *numberNonBlank:
			mode = NumberNonBlank
		}

		hc := GetHandlerContext(ctx)

		// Owned by the invocation: numbering continues across inputs.
		var st catState
		var out []byte
		return ProcessInputs(ctx, hc, c.name, textio.Designators(operands),
			func(w *bufio.Writer, src textio.Source, _, _ int) error {
				return forEachLine(src, func(line []byte) error {
					out, st = renderLine(out[:0], line, mode, *squeeze, st)
					_, err := w.Write(out)
					return err
				})
			})
	}
}

// renderLine appends the output for one input line to dst and returns the
// updated state. With squeeze enabled, a blank line following a blank line
// produces no output and leaves the state untouched.
func renderLine(dst, line []byte, mode NumberingMode, squeeze bool, st catState) ([]byte, catState) {
	blank := isBlank(line)
	if squeeze && st.prevBlank && blank {
		return dst, st
	}
	st.prevBlank = blank

	if mode == NumberAll || (mode == NumberNonBlank && !blank) {
		st.numbered++
		dst = fmt.Appendf(dst, "%6d\t", st.numbered)
	}
	return append(dst, line...), st
}

// isBlank reports whether line is empty once trailing whitespace is removed.
func isBlank(line []byte) bool {
	return len(bytes.TrimRightFunc(line, unicode.IsSpace)) == 0
}
