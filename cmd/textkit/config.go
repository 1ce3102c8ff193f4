// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/invowk/textkit/internal/config"
	"github.com/invowk/textkit/internal/coreutils"
	"github.com/invowk/textkit/internal/issue"
	"github.com/invowk/textkit/pkg/types"

	"github.com/spf13/cobra"
)

// settableKeys lists the keys accepted by `config set`, in display order.
var settableKeys = []string{
	"head.lines",
	"find.types",
	"log.level",
	"ui.color_scheme",
	"ui.verbose",
	"shell.host_fallback",
}

// newConfigCommand creates the `textkit config` command tree. The
// subcommands work on the configuration the App loaded at startup.
func newConfigCommand(app *App) *cobra.Command {
	cfgCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage textkit configuration",
		Long: `Manage textkit configuration.

Configuration is read from config.cue in the textkit config directory
($XDG_CONFIG_HOME/textkit on Linux) or from the file named by --config.
Environment variables prefixed with TEXTKIT_ override file values.`,
		Args: usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			return showConfig(app)
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Show configuration file path",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := config.FilePath(app.loadOpts)
			if err != nil {
				return err
			}
			fmt.Fprintln(app.stdout, path)
			return nil
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "init",
		Short: "Create default configuration file",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, created, err := config.CreateDefaultConfig(app.loadOpts)
			if err != nil {
				return fmt.Errorf("failed to create config: %w", err)
			}
			if !created {
				fmt.Fprintf(app.stdout, "%s Configuration already exists at %s\n", WarningStyle.Render("!"), path)
				return nil
			}
			fmt.Fprintf(app.stdout, "%s Created default configuration at %s\n", SuccessStyle.Render("✓"), path)
			return nil
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "dump",
		Short: "Output the effective configuration as CUE",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.loadErr != nil {
				return app.loadErr
			}
			fmt.Fprint(app.stdout, config.GenerateCUE(app.cfg))
			return nil
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "set KEY VALUE",
		Short: "Set a configuration value",
		Long:  "Set a configuration value and save the config file.\n\nValid keys: " + strings.Join(settableKeys, ", "),
		Args:  usageArgs(cobra.ExactArgs(2)),
		RunE: func(cmd *cobra.Command, args []string) error {
			return setConfigValue(app, cmd.Name(), args[0], args[1])
		},
	})

	return cfgCmd
}

func showConfig(app *App) error {
	if app.loadErr != nil {
		if !app.verbose() {
			if rendered, err := issue.Get(issue.ConfigLoadFailedId).Render(app.colorScheme()); err == nil {
				fmt.Fprint(app.stderr, rendered)
			}
		}
		return app.loadErr
	}

	cfg := app.cfg
	w := app.stdout
	key := CmdStyle.Render
	value := SuccessStyle.Render

	fmt.Fprintln(w, TitleStyle.Render("Current Configuration"))
	fmt.Fprintln(w)

	path, err := config.FilePath(app.loadOpts)
	switch {
	case err != nil:
		fmt.Fprintf(w, "%s: %s\n", key("Config file"), SubtitleStyle.Render("(using defaults)"))
	case fileExists(path):
		fmt.Fprintf(w, "%s: %s\n", key("Config file"), path)
	default:
		fmt.Fprintf(w, "%s: %s\n", key("Config file"), SubtitleStyle.Render("(using defaults)"))
	}
	fmt.Fprintln(w)

	section(w, key("head"))
	fmt.Fprintf(w, "  lines: %s\n", value(strconv.Itoa(int(cfg.Head.Lines))))
	section(w, key("find"))
	fmt.Fprintf(w, "  types: %s\n", value(joinEntryTypes(cfg.Find.Types)))
	section(w, key("log"))
	fmt.Fprintf(w, "  level: %s\n", value(cfg.Log.Level.String()))
	section(w, key("ui"))
	fmt.Fprintf(w, "  color_scheme: %s\n", value(cfg.UI.ColorScheme.String()))
	fmt.Fprintf(w, "  verbose: %s\n", value(strconv.FormatBool(cfg.UI.Verbose)))
	section(w, key("shell"))
	fmt.Fprintf(w, "  host_fallback: %s\n", value(strconv.FormatBool(cfg.Shell.HostFallback)))

	return nil
}

func section(w io.Writer, name string) {
	fmt.Fprintf(w, "%s:\n", name)
}

func setConfigValue(app *App, cmdName, key, value string) error {
	if app.loadErr != nil {
		return app.loadErr
	}

	// Work on a copy so a rejected value leaves the running config intact.
	cfg := *app.cfg
	cfg.Find.Types = append([]types.EntryType(nil), app.cfg.Find.Types...)

	switch key {
	case "head.lines":
		n, err := strconv.Atoi(value)
		if err != nil {
			return &coreutils.UsageError{Command: cmdName, Err: fmt.Errorf("invalid head.lines %q: %w", value, err)}
		}
		cfg.Head.Lines = types.Limit(n)
	case "find.types":
		cfg.Find.Types = nil
		for _, t := range strings.Split(value, ",") {
			cfg.Find.Types = append(cfg.Find.Types, types.EntryType(strings.TrimSpace(t)))
		}
	case "log.level":
		cfg.Log.Level = config.LogLevel(value)
	case "ui.color_scheme":
		cfg.UI.ColorScheme = config.ColorScheme(value)
	case "ui.verbose":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return &coreutils.UsageError{Command: cmdName, Err: fmt.Errorf("invalid ui.verbose %q: %w", value, err)}
		}
		cfg.UI.Verbose = b
	case "shell.host_fallback":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return &coreutils.UsageError{Command: cmdName, Err: fmt.Errorf("invalid shell.host_fallback %q: %w", value, err)}
		}
		cfg.Shell.HostFallback = b
	default:
		return &coreutils.UsageError{Command: cmdName, Err: fmt.Errorf("unknown configuration key %q (valid keys: %s)", key, strings.Join(settableKeys, ", "))}
	}

	if valid, errs := cfg.IsValid(); !valid {
		return &coreutils.UsageError{Command: cmdName, Err: errors.Join(errs...)}
	}

	path, err := config.FilePath(app.loadOpts)
	if err != nil {
		return err
	}
	if err := config.Save(&cfg, path); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}
	*app.cfg = cfg

	fmt.Fprintf(app.stdout, "%s Set %s = %s\n", SuccessStyle.Render("✓"), key, value)
	return nil
}

func joinEntryTypes(ts []types.EntryType) string {
	parts := make([]string, len(ts))
	for i, t := range ts {
		parts[i] = string(t)
	}
	return strings.Join(parts, ",")
}

// fileExists checks if a file exists and is not a directory.
func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
