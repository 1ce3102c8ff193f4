// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"
	"io"
	"io/fs"

	"github.com/invowk/textkit/internal/coreutils"
	"github.com/invowk/textkit/internal/issue"
	"github.com/invowk/textkit/internal/textio"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"
)

// errorHandler returns the fang error handler. Utility errors already carry
// the utility name, so they are printed as they are. Usage errors are
// followed by the usage line of the failing command, and in verbose mode
// the matching issue page is rendered below the error.
func (a *App) errorHandler(rootCmd *cobra.Command) fang.ErrorHandler {
	return func(w io.Writer, _ fang.Styles, err error) {
		var exitErr *ExitError
		if errors.As(err, &exitErr) && exitErr.Err == nil {
			return
		}

		fmt.Fprintln(w, formatErrorForDisplay(err, a.verbose()))

		var usageErr *coreutils.UsageError
		if errors.As(err, &usageErr) {
			if c := findCommand(rootCmd, usageErr.Command); c != nil {
				fmt.Fprintln(w, SubtitleStyle.Render("Usage: ")+c.UseLine())
			}
		}

		if !a.verbose() {
			return
		}
		if page := issueFor(err); page != nil {
			if rendered, renderErr := page.Render(a.colorScheme()); renderErr == nil {
				fmt.Fprint(w, rendered)
			}
		}
	}
}

// formatErrorForDisplay formats an error for user display.
// If the error is an ActionableError, it uses the Format method.
// In verbose mode, shows the full error chain.
func formatErrorForDisplay(err error, verboseMode bool) string {
	var ae *issue.ActionableError
	if errors.As(err, &ae) {
		return ae.Format(verboseMode)
	}
	return err.Error()
}

// issueFor picks the catalog page that explains err, or nil.
func issueFor(err error) *issue.Issue {
	var ae *issue.ActionableError
	if errors.As(err, &ae) && ae.Issue != 0 {
		return ae.CatalogIssue()
	}

	switch {
	case isOutputError(err):
		return issue.Get(issue.OutputNotWritableId)
	case errors.Is(err, coreutils.ErrUsage):
		return issue.Get(issue.UsageErrorId)
	case errors.Is(err, coreutils.ErrCommandNotFound):
		return issue.Get(issue.CommandNotFoundId)
	case errors.Is(err, coreutils.ErrScriptParse):
		return issue.Get(issue.ScriptParseFailedId)
	case errors.Is(err, fs.ErrPermission):
		return issue.Get(issue.PermissionDeniedId)
	case errors.Is(err, textio.ErrUnopenable) && errors.Is(err, fs.ErrNotExist):
		return issue.Get(issue.InputNotFoundId)
	default:
		return nil
	}
}

// isOutputError reports whether err is a failure to open an output file.
func isOutputError(err error) bool {
	var openErr *textio.OpenError
	return errors.As(err, &openErr) && openErr.Output
}

// findCommand resolves a command name below rootCmd. The root itself
// matches its own name.
func findCommand(rootCmd *cobra.Command, name string) *cobra.Command {
	if name == rootCmd.Name() {
		return rootCmd
	}
	var found *cobra.Command
	var walk func(c *cobra.Command)
	walk = func(c *cobra.Command) {
		for _, sub := range c.Commands() {
			if found != nil {
				return
			}
			if sub.Name() == name {
				found = sub
				return
			}
			walk(sub)
		}
	}
	walk(rootCmd)
	return found
}
