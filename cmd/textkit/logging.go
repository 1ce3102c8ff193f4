// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"io"
	"log/slog"

	"github.com/invowk/textkit/internal/config"

	"github.com/charmbracelet/log"
)

// newLogger builds the stderr logger behind slog. --debug wins over the
// configured level; an unknown level falls back to warn.
func newLogger(w io.Writer, level config.LogLevel, debug bool) *log.Logger {
	lvl, err := log.ParseLevel(string(level))
	if err != nil {
		lvl = log.WarnLevel
	}
	if debug {
		lvl = log.DebugLevel
	}

	return log.NewWithOptions(w, log.Options{
		Prefix:          config.AppName,
		Level:           lvl,
		ReportTimestamp: debug,
	})
}

// configureLogging installs the charm logger as the slog default so that
// library packages log through slog without knowing the handler.
func configureLogging(w io.Writer, level config.LogLevel, debug bool) {
	slog.SetDefault(slog.New(newLogger(w, level, debug)))
}
