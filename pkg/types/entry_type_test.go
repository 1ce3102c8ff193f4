// SPDX-License-Identifier: MPL-2.0

package types

import (
	"errors"
	"io/fs"
	"testing"
)

func TestEntryTypeValidate(t *testing.T) {
	t.Parallel()

	for _, et := range AllEntryTypes() {
		if err := et.Validate(); err != nil {
			t.Errorf("EntryType(%q).Validate() = %v", et, err)
		}
	}

	for _, bad := range []EntryType{"", "x", "file", "D"} {
		err := bad.Validate()
		if !errors.Is(err, ErrInvalidEntryType) {
			t.Errorf("EntryType(%q).Validate() = %v, want ErrInvalidEntryType", bad, err)
		}
	}
}

func TestEntryTypeMatches(t *testing.T) {
	t.Parallel()

	tests := []struct {
		et   EntryType
		mode fs.FileMode
		want bool
	}{
		{EntryDir, fs.ModeDir | 0o755, true},
		{EntryDir, 0o644, false},
		{EntryFile, 0o644, true},
		{EntryFile, fs.ModeSymlink | 0o777, false},
		{EntryFile, fs.ModeNamedPipe, false},
		{EntryLink, fs.ModeSymlink | 0o777, true},
		{EntryLink, fs.ModeDir, false},
	}

	for _, tt := range tests {
		if got := tt.et.Matches(tt.mode); got != tt.want {
			t.Errorf("EntryType(%q).Matches(%v) = %v, want %v", tt.et, tt.mode, got, tt.want)
		}
	}
}
