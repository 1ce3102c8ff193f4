// SPDX-License-Identifier: MPL-2.0

package coreutils

import (
	"errors"
	"strings"
	"testing"
)

func TestCatCommand_Name(t *testing.T) {
	t.Parallel()

	if got := newCatCommand().Name(); got != "cat" {
		t.Errorf("Name() = %q, want %q", got, "cat")
	}
}

func TestCatCommand_Run_ByteIdentity(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
	}{
		{"empty", ""},
		{"single line", "hello world\n"},
		{"no trailing newline", "a\nb"},
		{"blank lines", "\n\n\n"},
		{"crlf", "a\r\nb\r\n"},
		{"invalid utf8", "ok\n\xff\xfe\nend"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			env := newTestEnv(t)
			name := env.writeFile(t, "in.txt", tt.content)
			if err := env.run(t, newCatCommand(), name); err != nil {
				t.Fatalf("Run() returned error: %v", err)
			}
			if got := env.stdout.String(); got != tt.content {
				t.Errorf("stdout = %q, want %q", got, tt.content)
			}
		})
	}
}

func TestCatCommand_Run_MultipleFiles(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	a := env.writeFile(t, "a.txt", "first\n")
	b := env.writeFile(t, "b.txt", "second")
	c := env.writeFile(t, "c.txt", "third\n")

	if err := env.run(t, newCatCommand(), a, b, c); err != nil {
		t.Fatalf("Run() returned error: %v", err)
	}
	if got, want := env.stdout.String(), "first\nsecondthird\n"; got != want {
		t.Errorf("stdout = %q, want %q", got, want)
	}
}

func TestCatCommand_Run_Stdin(t *testing.T) {
	t.Parallel()

	for _, args := range [][]string{nil, {"-"}} {
		env := newTestEnv(t)
		env.stdin = "from stdin\n"
		if err := env.run(t, newCatCommand(), args...); err != nil {
			t.Fatalf("Run(%v) returned error: %v", args, err)
		}
		if got := env.stdout.String(); got != "from stdin\n" {
			t.Errorf("Run(%v) stdout = %q", args, got)
		}
	}
}

func TestCatCommand_Run_SqueezeBlank(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	env.stdin = "x\n\n\ny\n"
	if err := env.run(t, newCatCommand(), "-s"); err != nil {
		t.Fatalf("Run() returned error: %v", err)
	}
	if got, want := env.stdout.String(), "x\n\ny\n"; got != want {
		t.Errorf("stdout = %q, want %q", got, want)
	}
}

func TestCatCommand_Run_NumberingContinuesAcrossInputs(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	a := env.writeFile(t, "a.txt", "a\nb\n")
	b := env.writeFile(t, "b.txt", "c\n")

	if err := env.run(t, newCatCommand(), "-n", a, b); err != nil {
		t.Fatalf("Run() returned error: %v", err)
	}
	want := "     1\ta\n     2\tb\n     3\tc\n"
	if got := env.stdout.String(); got != want {
		t.Errorf("stdout = %q, want %q", got, want)
	}
}

func TestCatCommand_Run_NumberNonBlank(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	env.stdin = "a\n\n  \nb\n"
	if err := env.run(t, newCatCommand(), "-b"); err != nil {
		t.Fatalf("Run() returned error: %v", err)
	}
	want := "     1\ta\n\n  \n     2\tb\n"
	if got := env.stdout.String(); got != want {
		t.Errorf("stdout = %q, want %q", got, want)
	}
}

func TestCatCommand_Run_CombinedShortFlags(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	env.stdin = "a\n\n\nb\n"
	if err := env.run(t, newCatCommand(), "-ns"); err != nil {
		t.Fatalf("Run() returned error: %v", err)
	}
	want := "     1\ta\n     2\t\n     3\tb\n"
	if got := env.stdout.String(); got != want {
		t.Errorf("stdout = %q, want %q", got, want)
	}
}

func TestCatCommand_Run_NumberConflict(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	name := env.writeFile(t, "in.txt", "content\n")

	err := env.run(t, newCatCommand(), "-n", "-b", name)
	if !errors.Is(err, ErrUsage) {
		t.Fatalf("Run() error = %v, want ErrUsage", err)
	}
	if env.stdout.Len() > 0 {
		t.Errorf("stdout = %q, want empty", env.stdout.String())
	}
}

func TestCatCommand_Run_MissingInputIsSkipped(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	a := env.writeFile(t, "a.txt", "a\n")
	b := env.writeFile(t, "b.txt", "b\n")

	if err := env.run(t, newCatCommand(), a, "missing.txt", b); err != nil {
		t.Fatalf("Run() returned error: %v", err)
	}
	if got := env.stdout.String(); got != "a\nb\n" {
		t.Errorf("stdout = %q, want %q", got, "a\nb\n")
	}
	if got := env.stderr.String(); !strings.HasPrefix(got, "cat: missing.txt: ") {
		t.Errorf("stderr = %q, want a report for missing.txt", got)
	}
}

func TestCatCommand_Run_UnknownFlag(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	err := env.run(t, newCatCommand(), "--bogus")
	if ExitCodeFor(err) != 2 {
		t.Errorf("ExitCodeFor(%v) = %d, want 2", err, ExitCodeFor(err))
	}
}

func TestRenderLine(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		lines     []string
		mode      NumberingMode
		squeeze   bool
		want      string
		wantCount int
	}{
		{"plain", []string{"a\n", "b"}, NumberNone, false, "a\nb", 0},
		{"number all", []string{"a\n", "\n"}, NumberAll, false, "     1\ta\n     2\t\n", 2},
		{"number nonblank", []string{"\n", "b\n"}, NumberNonBlank, false, "\n     1\tb\n", 1},
		{"squeeze", []string{"\n", " \n", "\t\n", "x\n"}, NumberNone, true, "\nx\n", 0},
		{"squeeze numbered", []string{"\n", "\n", "x\n"}, NumberAll, true, "     1\t\n     2\tx\n", 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var st catState
			var out []byte
			for _, line := range tt.lines {
				out, st = renderLine(out, []byte(line), tt.mode, tt.squeeze, st)
			}
			if string(out) != tt.want {
				t.Errorf("output = %q, want %q", out, tt.want)
			}
			if st.numbered != tt.wantCount {
				t.Errorf("numbered = %d, want %d", st.numbered, tt.wantCount)
			}
		})
	}
}

func TestIsBlank(t *testing.T) {
	t.Parallel()

	tests := map[string]bool{
		"":        true,
		"\n":      true,
		" \t\r\n": true,
		"a\n":     false,
		" a ":     false,
	}
	for in, want := range tests {
		if got := isBlank([]byte(in)); got != want {
			t.Errorf("isBlank(%q) = %v, want %v", in, got, want)
		}
	}
}
