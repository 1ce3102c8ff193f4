// SPDX-License-Identifier: MPL-2.0

package coreutils

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/invowk/textkit/internal/textio"

	"github.com/spf13/pflag"
)

type (
	// uniqCommand implements the uniq utility.
	uniqCommand struct {
		name string
	}

	// uniqOptions selects how runs are compared and which are emitted.
	uniqOptions struct {
		count          bool
		duplicatesOnly bool
		uniqueOnly     bool
		ignoreCase     bool
	}

	// runState is the current run of adjacent duplicate lines. previous is
	// the first line of the run exactly as read; count is its length.
	runState struct {
		previous []byte
		count    int
		seen     bool
	}
)

// newUniqCommand creates a new uniq command.
func newUniqCommand() *uniqCommand {
	return &uniqCommand{name: "uniq"}
}

// Name returns the command name.
func (c *uniqCommand) Name() string {
	return c.name
}

// Synopsis returns the one-line description.
func (c *uniqCommand) Synopsis() string {
	return "Collapse adjacent duplicate lines"
}

// Bind registers uniq's flags.
func (c *uniqCommand) Bind(fs *pflag.FlagSet) Invocation {
	var opts uniqOptions
	fs.BoolVarP(&opts.count, "count", "c", false, "prefix lines by the number of occurrences")
	fs.BoolVarP(&opts.duplicatesOnly, "repeated", "d", false, "only print duplicate lines, one for each run")
	fs.BoolVarP(&opts.uniqueOnly, "unique", "u", false, "only print lines that are not repeated")
	fs.BoolVarP(&opts.ignoreCase, "ignore-case", "i", false, "ignore differences in case when comparing")

	return func(ctx context.Context, operands []string) error {
		if len(operands) > 2 {
			return usageErrorf(c.name, "extra operand %q", operands[2])
		}
		input := textio.Stdin
		if len(operands) > 0 {
			input = textio.Designator(operands[0])
		}
		var output string
		if len(operands) > 1 {
			output = operands[1]
		}

		return c.run(GetHandlerContext(ctx), input, output, opts)
	}
}

// run collapses input into output. Unlike the multi-input utilities, an
// unopenable input or output aborts the invocation.
func (c *uniqCommand) run(hc *HandlerContext, input textio.Designator, output string, opts uniqOptions) (err error) {
	src, err := textio.Open(input, hc.Stdin, hc.Dir)
	if err != nil {
		return wrapError(c.name, err)
	}
	defer func() {
		if closeErr := src.Close(); closeErr != nil && err == nil {
			err = wrapError(c.name, closeErr)
		}
	}()

	dst, err := textio.OpenOutput(output, hc.Stdout, hc.Dir)
	if err != nil {
		return wrapError(c.name, err)
	}
	defer func() {
		if closeErr := dst.Close(); closeErr != nil && err == nil {
			err = wrapError(c.name, closeErr)
		}
	}()

	w := bufio.NewWriterSize(dst, outputBufferSize)
	collapseErr := collapse(w, src, opts)
	flushErr := w.Flush()
	if collapseErr != nil {
		return wrapError(c.name, collapseErr)
	}
	return wrapError(c.name, flushErr)
}

// collapse performs one forward pass over src, writing each run once.
func collapse(w io.Writer, src textio.Source, opts uniqOptions) error {
	var st runState
	err := forEachLine(src, func(line []byte) error {
		if st.seen && sameLine(st.previous, line, opts.ignoreCase) {
			st.count++
			return nil
		}
		if st.seen {
			if err := flushRun(w, st, opts); err != nil {
				return err
			}
		}
		st.previous = append(st.previous[:0], line...)
		st.count = 1
		st.seen = true
		return nil
	})
	if err != nil {
		return err
	}
	if !st.seen {
		return nil
	}
	return flushRun(w, st, opts)
}

// flushRun writes a finished run. The line keeps its own newline, or lack of
// one, exactly as read.
func flushRun(w io.Writer, st runState, opts uniqOptions) error {
	if opts.duplicatesOnly && st.count < 2 {
		return nil
	}
	if opts.uniqueOnly && st.count > 1 {
		return nil
	}
	if opts.count {
		if _, err := fmt.Fprintf(w, "%4d ", st.count); err != nil {
			return err
		}
	}
	_, err := w.Write(st.previous)
	return err
}

// sameLine compares two lines ignoring a single trailing newline on either.
func sameLine(a, b []byte, ignoreCase bool) bool {
	a = bytes.TrimSuffix(a, []byte{'\n'})
	b = bytes.TrimSuffix(b, []byte{'\n'})
	if ignoreCase {
		return bytes.EqualFold(a, b)
	}
	return bytes.Equal(a, b)
}
