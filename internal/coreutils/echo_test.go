// SPDX-License-Identifier: MPL-2.0

package coreutils

import (
	"errors"
	"testing"
)

func TestEchoCommand_Run(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"single", []string{"hello"}, "hello\n"},
		{"joined by spaces", []string{"a", "b  c"}, "a b  c\n"},
		{"no newline", []string{"-n", "x"}, "x"},
		{"dash after separator", []string{"--", "-n"}, "-n\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			env := newTestEnv(t)
			if err := env.run(t, newEchoCommand(), tt.args...); err != nil {
				t.Fatalf("Run() returned error: %v", err)
			}
			if got := env.stdout.String(); got != tt.want {
				t.Errorf("stdout = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestEchoCommand_Run_MissingOperand(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	err := env.run(t, newEchoCommand())
	if !errors.Is(err, ErrUsage) {
		t.Fatalf("Run() error = %v, want ErrUsage", err)
	}
}
