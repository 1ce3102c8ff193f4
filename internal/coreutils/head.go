// SPDX-License-Identifier: MPL-2.0

package coreutils

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/invowk/textkit/internal/textio"
	"github.com/invowk/textkit/pkg/types"

	"github.com/spf13/pflag"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// DefaultHeadLines is the line quota used when neither -n nor -c is given.
const DefaultHeadLines types.Limit = 10

type (
	// headCommand implements the head utility.
	headCommand struct {
		name         string
		defaultLines types.Limit
	}

	// limiter is the remaining quota of one input.
	limiter struct {
		remaining int64
	}
)

// newHeadCommand creates a new head command. A defaultLines that fails
// validation falls back to DefaultHeadLines.
func newHeadCommand(defaultLines types.Limit) *headCommand {
	if defaultLines.Validate() != nil {
		defaultLines = DefaultHeadLines
	}
	return &headCommand{name: "head", defaultLines: defaultLines}
}

// Name returns the command name.
func (c *headCommand) Name() string {
	return c.name
}

// Synopsis returns the one-line description.
func (c *headCommand) Synopsis() string {
	return "Output the first lines or bytes of each input"
}

// Bind registers head's flags.
func (c *headCommand) Bind(fs *pflag.FlagSet) Invocation {
	lines := fs.Int64P("lines", "n", int64(c.defaultLines), "number of lines to output")
	byteCount := fs.Int64P("bytes", "c", 0, "number of bytes to output")
	quiet := fs.BoolP("quiet", "q", false, "never print headers")
	verbose := fs.BoolP("verbose", "v", false, "always print headers")

	return func(ctx context.Context, operands []string) error {
		byteMode := fs.Changed("bytes")
		if byteMode && fs.Changed("lines") {
			return usageErrorf(c.name, "options --lines and --bytes are mutually exclusive")
		}
		if *quiet && *verbose {
			return usageErrorf(c.name, "options --quiet and --verbose are mutually exclusive")
		}

		quota := types.Limit(*lines)
		if byteMode {
			quota = types.Limit(*byteCount)
		}
		if err := quota.Validate(); err != nil {
			return &UsageError{Command: c.name, Err: err}
		}

		hc := GetHandlerContext(ctx)
		designators := textio.Designators(operands)
		banners := !*quiet && (*verbose || len(designators) > 1)

		printedBanner := false
		return ProcessInputs(ctx, hc, c.name, designators,
			func(w *bufio.Writer, src textio.Source, _, _ int) error {
				if banners {
					if err := writeBanner(w, src.Name(), printedBanner); err != nil {
						return err
					}
					printedBanner = true
				}
				if byteMode {
					return headBytes(w, src, quota)
				}
				return headLines(w, src, quota)
			})
	}
}

// writeBanner writes the "==> NAME <==" header. Every banner after the first
// one printed is separated from the previous output by one blank line.
func writeBanner(w io.Writer, name textio.Designator, separate bool) error {
	sep := ""
	if separate {
		sep = "\n"
	}
	_, err := fmt.Fprintf(w, "%s==> %s <==\n", sep, name)
	return err
}

// take consumes one unit of quota, reporting false once it is exhausted.
func (l *limiter) take() bool {
	if l.remaining <= 0 {
		return false
	}
	l.remaining--
	return true
}

// headLines copies up to n lines verbatim. No line past the quota is read.
func headLines(w io.Writer, src textio.Source, n types.Limit) error {
	lim := limiter{remaining: int64(n)}
	var line []byte
	for lim.take() {
		var err error
		line, err = src.ReadLine(line[:0])
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
		if _, err := w.Write(line); err != nil {
			return err
		}
	}
	return nil
}

// headBytes copies up to n raw bytes, decoding them as UTF-8 with each
// invalid byte replaced by U+FFFD. A multi-byte sequence cut off by the quota
// is also replaced.
func headBytes(w io.Writer, src textio.Source, n types.Limit) error {
	dec := transform.NewWriter(w, unicode.UTF8.NewDecoder())
	if _, err := io.Copy(dec, io.LimitReader(src, int64(n))); err != nil {
		return err
	}
	return dec.Close()
}
