// SPDX-License-Identifier: MPL-2.0

package config

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/invowk/textkit/internal/issue"
	"github.com/invowk/textkit/pkg/types"
)

func writeConfig(t *testing.T, dir, content string) string {
	t.Helper()

	path := filepath.Join(dir, ConfigFileName+"."+ConfigFileExt)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}
	return path
}

func TestDefaultConfig(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()

	if cfg.Head.Lines != 10 {
		t.Errorf("expected default head lines to be 10, got %d", cfg.Head.Lines)
	}
	if len(cfg.Find.Types) != 3 {
		t.Errorf("expected all three find types by default, got %v", cfg.Find.Types)
	}
	if cfg.Log.Level != LogLevelWarn {
		t.Errorf("expected default log level to be warn, got %s", cfg.Log.Level)
	}
	if cfg.UI.ColorScheme != ColorSchemeAuto {
		t.Errorf("expected default color scheme to be auto, got %s", cfg.UI.ColorScheme)
	}
	if cfg.UI.Verbose {
		t.Error("expected default verbose to be false")
	}
	if cfg.Shell.HostFallback {
		t.Error("expected host fallback to be disabled by default")
	}
	if valid, errs := cfg.IsValid(); !valid {
		t.Errorf("default config should be valid, got %v", errs)
	}
}

func TestConfigDir(t *testing.T) {
	if runtime.GOOS != "linux" {
		t.Skip("XDG_CONFIG_HOME is only consulted on Linux")
	}

	t.Setenv("XDG_CONFIG_HOME", "/tmp/test-xdg-config")

	dir, err := ConfigDir()
	if err != nil {
		t.Fatalf("ConfigDir() returned error: %v", err)
	}
	if want := filepath.Join("/tmp/test-xdg-config", AppName); dir != want {
		t.Errorf("ConfigDir() = %q, want %q", dir, want)
	}
}

func TestConfigDir_Override(t *testing.T) {
	overrideConfigDir(t, "/custom/dir")

	dir, err := ConfigDir()
	if err != nil {
		t.Fatalf("ConfigDir() returned error: %v", err)
	}
	if dir != "/custom/dir" {
		t.Errorf("ConfigDir() = %q, want %q", dir, "/custom/dir")
	}
}

func TestFilePath(t *testing.T) {
	t.Parallel()

	got, err := FilePath(LoadOptions{ConfigDirPath: "/etc/textkit"})
	if err != nil {
		t.Fatalf("FilePath() returned error: %v", err)
	}
	if want := filepath.Join("/etc/textkit", "config.cue"); got != want {
		t.Errorf("FilePath() = %q, want %q", got, want)
	}

	got, err = FilePath(LoadOptions{ConfigFilePath: "/tmp/x.cue", ConfigDirPath: "/ignored"})
	if err != nil {
		t.Fatalf("FilePath() returned error: %v", err)
	}
	if got != "/tmp/x.cue" {
		t.Errorf("FilePath() = %q, want explicit file path", got)
	}
}

func TestLoad_ReturnsDefaultsWhenNoConfigFile(t *testing.T) {
	t.Parallel()

	cfg, source, err := LoadWithSource(t.Context(), LoadOptions{ConfigDirPath: t.TempDir()})
	if err != nil {
		t.Fatalf("Load() returned error: %v", err)
	}
	if source != "" {
		t.Errorf("source = %q, want empty when no file exists", source)
	}
	if cfg.Head.Lines != DefaultConfig().Head.Lines {
		t.Errorf("Head.Lines = %d, want default", cfg.Head.Lines)
	}
}

func TestLoad_FromConfigDir(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := writeConfig(t, dir, `
head: lines: 3
find: types: ["f"]
log: level: "debug"
ui: {
	color_scheme: "dark"
	verbose: true
}
shell: host_fallback: true
`)

	cfg, source, err := LoadWithSource(t.Context(), LoadOptions{ConfigDirPath: dir})
	if err != nil {
		t.Fatalf("Load() returned error: %v", err)
	}
	if source != path {
		t.Errorf("source = %q, want %q", source, path)
	}
	if cfg.Head.Lines != 3 {
		t.Errorf("Head.Lines = %d, want 3", cfg.Head.Lines)
	}
	if len(cfg.Find.Types) != 1 || cfg.Find.Types[0] != types.EntryFile {
		t.Errorf("Find.Types = %v, want [f]", cfg.Find.Types)
	}
	if cfg.Log.Level != LogLevelDebug {
		t.Errorf("Log.Level = %q, want debug", cfg.Log.Level)
	}
	if cfg.UI.ColorScheme != ColorSchemeDark || !cfg.UI.Verbose {
		t.Errorf("UI = %+v, want dark and verbose", cfg.UI)
	}
	if !cfg.Shell.HostFallback {
		t.Error("Shell.HostFallback should be true")
	}
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeConfig(t, dir, "head: lines: 25\n")

	cfg, err := NewProvider().Load(t.Context(), LoadOptions{ConfigDirPath: dir})
	if err != nil {
		t.Fatalf("Load() returned error: %v", err)
	}
	if cfg.Head.Lines != 25 {
		t.Errorf("Head.Lines = %d, want 25", cfg.Head.Lines)
	}
	if cfg.Log.Level != LogLevelWarn {
		t.Errorf("Log.Level = %q, want default warn", cfg.Log.Level)
	}
	if len(cfg.Find.Types) != 3 {
		t.Errorf("Find.Types = %v, want default", cfg.Find.Types)
	}
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("TEXTKIT_HEAD_LINES", "42")
	t.Setenv("TEXTKIT_SHELL_HOST_FALLBACK", "true")

	cfg, err := NewProvider().Load(t.Context(), LoadOptions{ConfigDirPath: t.TempDir()})
	if err != nil {
		t.Fatalf("Load() returned error: %v", err)
	}
	if cfg.Head.Lines != 42 {
		t.Errorf("Head.Lines = %d, want 42 from environment", cfg.Head.Lines)
	}
	if !cfg.Shell.HostFallback {
		t.Error("Shell.HostFallback should be true from environment")
	}
}

func TestLoad_InvalidEnvOverride(t *testing.T) {
	t.Setenv("TEXTKIT_LOG_LEVEL", "chatty")

	_, err := NewProvider().Load(t.Context(), LoadOptions{ConfigDirPath: t.TempDir()})
	if err == nil {
		t.Fatal("Load() should reject an invalid log level from the environment")
	}
	if !errors.Is(err, ErrInvalidLogLevel) {
		t.Errorf("error should wrap ErrInvalidLogLevel, got: %v", err)
	}
}

func TestLoad_SchemaViolation(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeConfig(t, dir, "head: lines: 0\n")

	_, err := NewProvider().Load(t.Context(), LoadOptions{ConfigDirPath: dir})
	if err == nil {
		t.Fatal("Load() should reject head.lines below 1")
	}

	var actionable *issue.ActionableError
	if !errors.As(err, &actionable) {
		t.Fatalf("error should be *issue.ActionableError, got %T", err)
	}
	if actionable.Operation != "load configuration" {
		t.Errorf("Operation = %q, want %q", actionable.Operation, "load configuration")
	}
	if !actionable.HasSuggestions() {
		t.Error("error should carry suggestions")
	}
	if !strings.Contains(err.Error(), "head.lines") {
		t.Errorf("error should name the offending field, got: %v", err)
	}
}

func TestLoad_UnknownField(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeConfig(t, dir, "tail: {lines: 5}\n")

	if _, err := NewProvider().Load(t.Context(), LoadOptions{ConfigDirPath: dir}); err == nil {
		t.Fatal("Load() should reject fields the schema does not define")
	}
}

func TestLoad_InvalidCUE(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeConfig(t, dir, "head: {lines: \n")

	if _, err := NewProvider().Load(t.Context(), LoadOptions{ConfigDirPath: dir}); err == nil {
		t.Fatal("Load() should reject malformed CUE")
	}
}

func TestLoad_CustomPath_NotFound_ReturnsError(t *testing.T) {
	t.Parallel()

	missing := filepath.Join(t.TempDir(), "missing.cue")
	_, err := NewProvider().Load(t.Context(), LoadOptions{ConfigFilePath: missing})
	if err == nil {
		t.Fatal("Load() should fail when an explicit config file is missing")
	}

	var actionable *issue.ActionableError
	if !errors.As(err, &actionable) {
		t.Fatalf("error should be *issue.ActionableError, got %T", err)
	}
	if actionable.Resource != missing {
		t.Errorf("Resource = %q, want %q", actionable.Resource, missing)
	}
}

func TestLoad_CanceledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(t.Context())
	cancel()

	if _, err := NewProvider().Load(ctx, LoadOptions{ConfigDirPath: t.TempDir()}); !errors.Is(err, context.Canceled) {
		t.Errorf("Load() error = %v, want context.Canceled", err)
	}
}

func TestCreateDefaultConfig(t *testing.T) {
	t.Parallel()

	dir := filepath.Join(t.TempDir(), "nested")
	opts := LoadOptions{ConfigDirPath: dir}

	path, created, err := CreateDefaultConfig(opts)
	if err != nil {
		t.Fatalf("CreateDefaultConfig() returned error: %v", err)
	}
	if !created {
		t.Error("first call should create the file")
	}

	// The generated file must round-trip through the schema.
	cfg, source, err := LoadWithSource(t.Context(), opts)
	if err != nil {
		t.Fatalf("Load() of generated config returned error: %v", err)
	}
	if source != path {
		t.Errorf("source = %q, want %q", source, path)
	}
	if cfg.Head.Lines != 10 || len(cfg.Find.Types) != 3 {
		t.Errorf("generated config = %+v, want defaults", cfg)
	}

	_, created, err = CreateDefaultConfig(opts)
	if err != nil {
		t.Fatalf("second CreateDefaultConfig() returned error: %v", err)
	}
	if created {
		t.Error("second call should leave the existing file alone")
	}
}

func TestGenerateCUE(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	cfg.Head.Lines = 7
	cfg.Find.Types = []types.EntryType{types.EntryDir, types.EntryLink}

	got := GenerateCUE(cfg)
	for _, want := range []string{
		"lines: 7",
		`types: ["d", "l"]`,
		`level: "warn"`,
		`color_scheme: "auto"`,
		"host_fallback: false",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("GenerateCUE() missing %q in:\n%s", want, got)
		}
	}
}

func TestFormatPath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		path []string
		want string
	}{
		{nil, ""},
		{[]string{"head", "lines"}, "head.lines"},
		{[]string{"find", "types", "1"}, "find.types[1]"},
	}
	for _, tt := range tests {
		if got := formatPath(tt.path); got != tt.want {
			t.Errorf("formatPath(%v) = %q, want %q", tt.path, got, tt.want)
		}
	}
}

func TestCheckFileSize(t *testing.T) {
	t.Parallel()

	if err := checkFileSize(make([]byte, 10), 10, "a.cue"); err != nil {
		t.Errorf("checkFileSize() at the limit returned error: %v", err)
	}
	if err := checkFileSize(make([]byte, 11), 10, "a.cue"); err == nil {
		t.Error("checkFileSize() over the limit should fail")
	}
}
