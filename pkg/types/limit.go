// SPDX-License-Identifier: MPL-2.0

package types

import (
	"errors"
	"fmt"
	"strconv"
)

// ErrInvalidLimit is the sentinel error wrapped by InvalidLimitError.
var ErrInvalidLimit = errors.New("invalid limit")

type (
	// Limit is a quota of lines or bytes a limiter may still emit.
	// A valid limit is at least 1; the zero value is invalid.
	Limit int64

	// InvalidLimitError is returned when a Limit is smaller than 1.
	InvalidLimitError struct {
		Value Limit
	}
)

// Error implements the error interface.
func (e *InvalidLimitError) Error() string {
	return fmt.Sprintf("invalid limit %d (must be at least 1)", e.Value)
}

// Unwrap returns ErrInvalidLimit for errors.Is() compatibility.
func (e *InvalidLimitError) Unwrap() error { return ErrInvalidLimit }

// Validate returns an error if the Limit is smaller than 1.
func (l Limit) Validate() error {
	if l < 1 {
		return &InvalidLimitError{Value: l}
	}
	return nil
}

// String returns the decimal string representation of the Limit.
func (l Limit) String() string { return strconv.FormatInt(int64(l), 10) }
