// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/invowk/textkit/internal/config"
	"github.com/invowk/textkit/internal/coreutils"
	"github.com/invowk/textkit/pkg/types"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"
)

const configFlagName = "config"

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"
)

// newRootCommand builds the command tree. The App's configuration must be
// loaded first: configured defaults become the utilities' flag defaults.
func newRootCommand(app *App) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "textkit",
		Short: "Streaming text utilities",
		Long: TitleStyle.Render("textkit") + SubtitleStyle.Render(" - streaming text utilities") + `

textkit bundles small line-oriented utilities that read files or standard
input and write standard output: cat, head, uniq, wc, find and echo. They
can be called directly or combined in POSIX shell scripts run by textkit sh.

` + SubtitleStyle.Render("Examples:") + `
  textkit cat -n notes.txt          Number the lines of a file
  textkit head -c 64 data.bin       First 64 bytes, invalid UTF-8 shown as U+FFFD
  textkit find -t f -g '*.go' .     List Go files
  textkit sh -c 'cat a | uniq -c'   Run a pipeline of built-in utilities
  textkit manual wc                 Read the manual page of wc`,
		Args: usageArgs(cobra.NoArgs),
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			configureLogging(app.stderr, app.cfg.Log.Level, app.debug)
			// The config subcommands report load failures themselves.
			if app.loadErr != nil && !isConfigCommand(cmd) {
				fmt.Fprintln(app.stderr, WarningStyle.Render("Warning: ")+formatErrorForDisplay(app.loadErr, app.verbose()))
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.SetIn(app.stdin)
	rootCmd.SetOut(app.stdout)
	rootCmd.SetErr(app.stderr)
	rootCmd.SetFlagErrorFunc(func(c *cobra.Command, err error) error {
		return &coreutils.UsageError{Command: c.Name(), Err: err}
	})

	// Global flags have no short forms: the utilities own -v, -c and friends.
	rootCmd.PersistentFlags().StringVar(&app.configFlag, configFlagName, "", "config file (default is $XDG_CONFIG_HOME/textkit/config.cue)")
	rootCmd.PersistentFlags().BoolVar(&app.debug, "debug", false, "enable debug logging and detailed error pages")

	for _, name := range app.registry.Names() {
		util, _ := app.registry.Lookup(name)
		rootCmd.AddCommand(newUtilityCommand(app, util))
	}
	rootCmd.AddCommand(newShellCommand(app))
	rootCmd.AddCommand(newManualCommand(app))
	rootCmd.AddCommand(newConfigCommand(app))

	return rootCmd
}

// getVersionString returns a formatted version string for display.
func getVersionString() string {
	if Version == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
}

// Execute runs textkit with the process arguments and exits with its status.
// This is called by main.main().
func Execute() {
	os.Exit(int(run(context.Background(), os.Args[1:], Dependencies{})))
}

// run executes one textkit invocation and returns its exit status.
func run(ctx context.Context, args []string, deps Dependencies) types.ExitCode {
	app, err := NewApp(deps)
	if err != nil {
		fmt.Fprintln(os.Stderr, ErrorStyle.Render("Error: ")+err.Error())
		return types.ExitFailure
	}

	app.loadConfig(ctx, config.LoadOptions{ConfigFilePath: configPathFromArgs(args)})

	rootCmd := newRootCommand(app)
	rootCmd.SetArgs(args)

	err = fang.Execute(
		ctx,
		rootCmd,
		fang.WithVersion(getVersionString()),
		fang.WithErrorHandler(app.errorHandler(rootCmd)),
		fang.WithNotifySignal(os.Interrupt),
	)
	return exitCodeFor(err)
}

// configPathFromArgs picks the --config value out of the raw arguments. It
// runs before cobra parses them because the command tree is built from the
// loaded configuration. Scanning stops at "--".
func configPathFromArgs(args []string) string {
	flag := "--" + configFlagName
	path := ""
	for i := 0; i < len(args); i++ {
		arg := args[i]
		switch {
		case arg == "--":
			return path
		case arg == flag && i+1 < len(args):
			path = args[i+1]
			i++
		case strings.HasPrefix(arg, flag+"="):
			path = strings.TrimPrefix(arg, flag+"=")
		}
	}
	return path
}

// isConfigCommand reports whether cmd is "config" or one of its subcommands.
func isConfigCommand(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Name() == "config" && c.HasParent() && !c.Parent().HasParent() {
			return true
		}
	}
	return false
}

// usageArgs turns a positional-argument validation failure into a usage error.
func usageArgs(validate cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := validate(cmd, args); err != nil {
			return &coreutils.UsageError{Command: cmd.Name(), Err: err}
		}
		return nil
	}
}
