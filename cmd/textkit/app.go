// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/invowk/textkit/internal/config"
	"github.com/invowk/textkit/internal/coreutils"
)

type (
	// ConfigProvider loads configuration using explicit options.
	ConfigProvider interface {
		Load(ctx context.Context, opts config.LoadOptions) (*config.Config, error)
	}

	// App wires the CLI to its streams, working directory and configuration.
	// All command handlers receive an App reference instead of touching the
	// process globals directly.
	App struct {
		Config  ConfigProvider
		stdin   io.Reader
		stdout  io.Writer
		stderr  io.Writer
		workDir string

		// cfg is the configuration the command tree was built with. It holds
		// the defaults when loading failed; loadErr keeps that failure.
		cfg        *config.Config
		loadOpts   config.LoadOptions
		loadErr    error
		registry   *coreutils.Registry
		debug      bool
		configFlag string
	}

	// Dependencies defines the injection points for building an App. Nil
	// fields are replaced with production defaults by NewApp.
	Dependencies struct {
		Config  ConfigProvider
		Stdin   io.Reader
		Stdout  io.Writer
		Stderr  io.Writer
		WorkDir string
	}
)

// NewApp creates an App with defaults for omitted dependencies.
func NewApp(deps Dependencies) (*App, error) {
	if deps.Stdin == nil {
		deps.Stdin = os.Stdin
	}
	if deps.Stdout == nil {
		deps.Stdout = os.Stdout
	}
	if deps.Stderr == nil {
		deps.Stderr = os.Stderr
	}
	if deps.Config == nil {
		deps.Config = config.NewProvider()
	}
	if deps.WorkDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get working directory: %w", err)
		}
		deps.WorkDir = wd
	}

	return &App{
		Config:  deps.Config,
		stdin:   deps.Stdin,
		stdout:  deps.Stdout,
		stderr:  deps.Stderr,
		workDir: deps.WorkDir,
	}, nil
}

// loadConfig loads the configuration named by opts and builds the utility
// registry from it. A load failure leaves the defaults in place and is kept
// for later reporting.
func (a *App) loadConfig(ctx context.Context, opts config.LoadOptions) {
	a.loadOpts = opts
	cfg, err := a.Config.Load(ctx, opts)
	if err != nil {
		a.loadErr = err
		cfg = config.DefaultConfig()
	}
	a.cfg = cfg
	a.registry = coreutils.NewDefaultRegistry(cfg)
}

// handlerContext returns the streams a utility runs with.
func (a *App) handlerContext() *coreutils.HandlerContext {
	return &coreutils.HandlerContext{
		Stdin:     a.stdin,
		Stdout:    a.stdout,
		Stderr:    a.stderr,
		Dir:       a.workDir,
		LookupEnv: os.LookupEnv,
	}
}

// verbose reports whether errors should be rendered with their issue page.
func (a *App) verbose() bool {
	return a.debug || (a.cfg != nil && a.cfg.UI.Verbose)
}

// colorScheme returns the glamour style configured for rendered Markdown.
func (a *App) colorScheme() string {
	if a.cfg == nil || a.cfg.UI.ColorScheme == "" {
		return string(config.ColorSchemeAuto)
	}
	return string(a.cfg.UI.ColorScheme)
}
