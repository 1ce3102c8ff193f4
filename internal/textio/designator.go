// SPDX-License-Identifier: MPL-2.0

package textio

import (
	"errors"
	"fmt"
)

// Stdin is the designator for standard input.
const Stdin Designator = "-"

// ErrInvalidDesignator is the sentinel error wrapped by InvalidDesignatorError.
var ErrInvalidDesignator = errors.New("invalid input designator")

type (
	// Designator names an input: either Stdin or a filesystem path.
	// It is resolved to a byte stream only when processing begins.
	Designator string

	// InvalidDesignatorError is returned when a Designator is empty.
	InvalidDesignatorError struct {
		Value Designator
	}
)

// Designators converts command operands to designators, defaulting to Stdin
// when no operand is given.
func Designators(operands []string) []Designator {
	if len(operands) == 0 {
		return []Designator{Stdin}
	}
	ds := make([]Designator, len(operands))
	for i, op := range operands {
		ds[i] = Designator(op)
	}
	return ds
}

// IsStdin reports whether the designator names standard input.
func (d Designator) IsStdin() bool { return d == Stdin }

// Validate returns an error if the designator is empty.
func (d Designator) Validate() error {
	if d == "" {
		return &InvalidDesignatorError{Value: d}
	}
	return nil
}

// String returns the designator as given on the command line.
func (d Designator) String() string { return string(d) }

// Error implements the error interface.
func (e *InvalidDesignatorError) Error() string {
	return fmt.Sprintf("invalid input designator %q: must be a path or %q", e.Value, Stdin)
}

// Unwrap returns ErrInvalidDesignator for errors.Is() compatibility.
func (e *InvalidDesignatorError) Unwrap() error { return ErrInvalidDesignator }
