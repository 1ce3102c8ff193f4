// SPDX-License-Identifier: MPL-2.0

package coreutils

import (
	"bufio"
	"context"
	"errors"
	"io"
	"log/slog"

	"github.com/invowk/textkit/internal/textio"
)

// outputBufferSize is the size of the per-invocation stdout buffer.
const outputBufferSize = 32 * 1024

// InputProcessor consumes one opened input.
// Parameters:
//   - w: the buffered output, flushed by ProcessInputs after every input
//   - src: the opened input
//   - index: 0-based position of the input among the designators
//   - total: number of designators given (1 when defaulting to stdin)
type InputProcessor func(w *bufio.Writer, src textio.Source, index, total int) error

// ProcessInputs opens each designator in order, hands it to process, and
// closes it before the next one is opened.
//
// An input that cannot be opened is reported on hc.Stderr as
// "cmdName: path: cause" and skipped; the remaining inputs are still
// processed and the failure does not affect the returned error. Any error
// returned by process (a read or write failure mid-stream) aborts the loop and
// is returned prefixed with cmdName.
//
// Example usage (cat):
//
//	return ProcessInputs(ctx, hc, c.name, textio.Designators(operands),
//	    func(w *bufio.Writer, src textio.Source, _, _ int) error {
//	        _, err := io.Copy(w, src)
//	        return err
//	    })
func ProcessInputs(
	ctx context.Context,
	hc *HandlerContext,
	cmdName string,
	designators []textio.Designator,
	process InputProcessor,
) error {
	w := bufio.NewWriterSize(hc.output(), outputBufferSize)

	total := len(designators)
	for i, d := range designators {
		if err := ctx.Err(); err != nil {
			return wrapError(cmdName, err)
		}
		if err := processInput(w, hc, cmdName, d, i, total, process); err != nil {
			return err
		}
	}
	return nil
}

// processInput runs one input through process. Named return aggregates the
// flush and close errors.
func processInput(
	w *bufio.Writer,
	hc *HandlerContext,
	cmdName string,
	d textio.Designator,
	index, total int,
	process InputProcessor,
) (err error) {
	src, err := textio.Open(d, hc.Stdin, hc.Dir)
	if err != nil {
		slog.Debug("skipping input", "command", cmdName, "input", d.String(), "error", err)
		report(hc.Stderr, cmdName, err)
		return nil
	}
	slog.Debug("processing input", "command", cmdName, "input", d.String(), "index", index)

	defer func() {
		if closeErr := src.Close(); closeErr != nil && err == nil {
			err = wrapError(cmdName, closeErr)
		}
	}()

	// Partial output is flushed even when process fails.
	processErr := process(w, src, index, total)
	flushErr := w.Flush()
	if processErr != nil {
		return wrapError(cmdName, processErr)
	}
	return wrapError(cmdName, flushErr)
}

// forEachLine calls fn with every line of src, reusing one buffer. The slice
// passed to fn is only valid until fn returns.
func forEachLine(src textio.Source, fn func(line []byte) error) error {
	var line []byte
	for {
		var err error
		line, err = src.ReadLine(line[:0])
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
		if err := fn(line); err != nil {
			return err
		}
	}
}
