// SPDX-License-Identifier: MPL-2.0

package types

import (
	"errors"
	"fmt"
	"io/fs"
)

const (
	// EntryDir matches directories.
	EntryDir EntryType = "d"
	// EntryFile matches regular files.
	EntryFile EntryType = "f"
	// EntryLink matches symbolic links.
	EntryLink EntryType = "l"
)

// ErrInvalidEntryType is the sentinel error wrapped by InvalidEntryTypeError.
var ErrInvalidEntryType = errors.New("invalid entry type")

type (
	// EntryType is a filesystem entry kind selectable by the tree filter,
	// spelled with the single letters find(1) uses.
	EntryType string

	// InvalidEntryTypeError is returned when an EntryType is not one of d, f or l.
	InvalidEntryTypeError struct {
		Value EntryType
	}
)

// AllEntryTypes returns every selectable entry type in display order.
func AllEntryTypes() []EntryType {
	return []EntryType{EntryDir, EntryFile, EntryLink}
}

// Error implements the error interface.
func (e *InvalidEntryTypeError) Error() string {
	return fmt.Sprintf("invalid entry type %q (expected d, f or l)", e.Value)
}

// Unwrap returns ErrInvalidEntryType for errors.Is() compatibility.
func (e *InvalidEntryTypeError) Unwrap() error { return ErrInvalidEntryType }

// Validate returns an error if the EntryType is not recognized.
func (t EntryType) Validate() error {
	switch t {
	case EntryDir, EntryFile, EntryLink:
		return nil
	default:
		return &InvalidEntryTypeError{Value: t}
	}
}

// Matches reports whether a directory entry of the given mode has this type.
// Symbolic links are never reported as the type of their target.
func (t EntryType) Matches(mode fs.FileMode) bool {
	switch t {
	case EntryDir:
		return mode.IsDir()
	case EntryFile:
		return mode.IsRegular()
	case EntryLink:
		return mode&fs.ModeSymlink != 0
	default:
		return false
	}
}

// String returns the single-letter spelling.
func (t EntryType) String() string { return string(t) }
