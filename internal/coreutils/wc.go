// SPDX-License-Identifier: MPL-2.0

package coreutils

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"unicode"
	"unicode/utf8"

	"github.com/invowk/textkit/internal/textio"

	"github.com/spf13/pflag"
	textunicode "golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Columns wc can print, in render order.
const (
	ColumnLines Columns = 1 << iota
	ColumnWords
	ColumnBytes
	ColumnChars

	// DefaultColumns is used when no column is requested.
	DefaultColumns = ColumnLines | ColumnWords | ColumnBytes
)

// totalLabel names the grand-total row.
const totalLabel = "total"

type (
	// Columns is the set of counters selected for output.
	Columns uint8

	// Tally holds the counters of one input, or the sum of several.
	Tally struct {
		Lines int64
		Words int64
		Bytes int64
		Chars int64
	}

	// wcCommand implements the wc (word count) utility.
	wcCommand struct {
		name string
	}
)

// columnOrder is the fixed render order.
var columnOrder = [...]Columns{ColumnLines, ColumnWords, ColumnBytes, ColumnChars}

// newWcCommand creates a new wc command.
func newWcCommand() *wcCommand {
	return &wcCommand{name: "wc"}
}

// Name returns the command name.
func (c *wcCommand) Name() string {
	return c.name
}

// Synopsis returns the one-line description.
func (c *wcCommand) Synopsis() string {
	return "Count lines, words, bytes and characters"
}

// Bind registers wc's flags.
func (c *wcCommand) Bind(fs *pflag.FlagSet) Invocation {
	lines := fs.BoolP("lines", "l", false, "print the line count")
	words := fs.BoolP("words", "w", false, "print the word count")
	byteCount := fs.BoolP("bytes", "c", false, "print the byte count")
	chars := fs.BoolP("chars", "m", false, "print the character count")

	return func(ctx context.Context, operands []string) error {
		if *byteCount && *chars {
			return usageErrorf(c.name, "options --bytes and --chars are mutually exclusive")
		}

		var cols Columns
		for _, sel := range []struct {
			on  bool
			col Columns
		}{{*lines, ColumnLines}, {*words, ColumnWords}, {*byteCount, ColumnBytes}, {*chars, ColumnChars}} {
			if sel.on {
				cols |= sel.col
			}
		}
		cols = cols.Effective()

		hc := GetHandlerContext(ctx)
		designators := textio.Designators(operands)

		// Only inputs that opened successfully reach the processor.
		var total Tally
		var row []byte
		err := ProcessInputs(ctx, hc, c.name, designators,
			func(w *bufio.Writer, src textio.Source, _, _ int) error {
				t, err := CountSource(src)
				if err != nil {
					return err
				}
				total.Add(t)
				row = cols.AppendRow(row[:0], t, src.Name())
				_, err = w.Write(row)
				return err
			})
		if err != nil {
			return err
		}

		if len(designators) > 1 {
			row = cols.AppendRow(row[:0], total, totalLabel)
			if _, err := hc.output().Write(row); err != nil {
				return wrapError(c.name, err)
			}
		}
		return nil
	}
}

// Effective resolves the set that is actually printed: an empty set becomes
// DefaultColumns, and bytes takes precedence over chars.
func (c Columns) Effective() Columns {
	if c == 0 {
		return DefaultColumns
	}
	if c&ColumnBytes != 0 {
		c &^= ColumnChars
	}
	return c
}

// Has reports whether col is in the set.
func (c Columns) Has(col Columns) bool { return c&col != 0 }

// AppendRow appends one output row: every selected counter in a field of
// width 8, then the name unless it designates standard input.
func (c Columns) AppendRow(dst []byte, t Tally, name textio.Designator) []byte {
	c = c.Effective()
	for _, col := range columnOrder {
		if c.Has(col) {
			dst = fmt.Appendf(dst, "%8d", t.value(col))
		}
	}
	if !name.IsStdin() {
		dst = append(dst, ' ')
		dst = append(dst, name.String()...)
	}
	return append(dst, '\n')
}

// CountSource tallies every line of src.
func CountSource(src textio.Source) (Tally, error) {
	var t Tally
	err := forEachLine(src, func(line []byte) error {
		t.AddLine(line)
		return nil
	})
	return t, err
}

// Count tallies a plain reader.
func Count(r io.Reader) (Tally, error) {
	return CountSource(textio.NewSource(textio.Stdin, r))
}

// AddLine counts one line. A line counts once whether or not it ends in a
// newline. Characters are counted after the same lossy decode head -c
// applies, so each maximal invalid UTF-8 subpart counts as one character.
func (t *Tally) AddLine(line []byte) {
	t.Lines++
	t.Words += countWords(line)
	t.Bytes += int64(len(line))
	t.Chars += countChars(line)
}

// countChars counts runes in line once invalid sequences are replaced
// with U+FFFD.
func countChars(line []byte) int64 {
	if utf8.Valid(line) {
		return int64(utf8.RuneCount(line))
	}
	decoded, _, err := transform.Bytes(textunicode.UTF8.NewDecoder(), line)
	if err != nil {
		return int64(utf8.RuneCount(line))
	}
	return int64(utf8.RuneCount(decoded))
}

// Add sums o into t.
func (t *Tally) Add(o Tally) {
	t.Lines += o.Lines
	t.Words += o.Words
	t.Bytes += o.Bytes
	t.Chars += o.Chars
}

func (t Tally) value(col Columns) int64 {
	switch col {
	case ColumnLines:
		return t.Lines
	case ColumnWords:
		return t.Words
	case ColumnBytes:
		return t.Bytes
	default:
		return t.Chars
	}
}

// countWords counts maximal runs of non-space characters.
func countWords(line []byte) int64 {
	var words int64
	inWord := false
	for len(line) > 0 {
		r, size := utf8.DecodeRune(line)
		line = line[size:]
		if unicode.IsSpace(r) {
			inWord = false
		} else if !inWord {
			inWord = true
			words++
		}
	}
	return words
}
