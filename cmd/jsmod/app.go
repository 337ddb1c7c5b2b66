// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/mattn/go-isatty"

	"jsmod-cli/internal/buildlog"
	"jsmod-cli/internal/config"
	"jsmod-cli/pkg/types"
)

type (
	// ConfigProvider loads configuration using explicit options.
	ConfigProvider interface {
		Load(ctx context.Context, opts config.LoadOptions) (*config.Config, error)
	}

	// App wires the CLI to its dependencies. Command handlers receive an
	// App and read streams and configuration from it.
	App struct {
		Config ConfigProvider

		stdin      io.Reader
		stdout     io.Writer
		stderr     io.Writer
		isTerminal func(io.Writer) bool

		// Set by the root command's flags and pre-run.
		verbose    bool
		configPath string
		cfg        *config.Config
	}

	// Dependencies are the injection points of NewApp. Nil fields get
	// production defaults.
	Dependencies struct {
		Config     ConfigProvider
		Stdin      io.Reader
		Stdout     io.Writer
		Stderr     io.Writer
		IsTerminal func(io.Writer) bool
	}
)

// NewApp creates an App with defaults for omitted dependencies.
func NewApp(deps Dependencies) *App {
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
	if deps.IsTerminal == nil {
		deps.IsTerminal = isTerminal
	}
	return &App{
		Config:     deps.Config,
		stdin:      deps.Stdin,
		stdout:     deps.Stdout,
		stderr:     deps.Stderr,
		isTerminal: deps.IsTerminal,
	}
}

// loadConfig loads configuration for this invocation and applies the
// settings that global flags did not override.
func (a *App) loadConfig(ctx context.Context) error {
	cfg, err := a.Config.Load(ctx, config.LoadOptions{ConfigFilePath: types.FilesystemPath(a.configPath)})
	if err != nil {
		return a.fail(types.ExitUsage, err)
	}
	a.cfg = cfg
	if !a.verbose {
		a.verbose = cfg.UI.Verbose
	}
	if cfg.Source != "" {
		a.logger().Debug("loaded configuration", "path", cfg.Source)
	}
	return nil
}

// config returns the loaded configuration, or the defaults before loading.
func (a *App) config() *config.Config {
	if a.cfg == nil {
		return config.DefaultConfig()
	}
	return a.cfg
}

// logger returns a stderr logger honoring --verbose.
func (a *App) logger() *log.Logger {
	level := log.InfoLevel
	if a.verbose {
		level = log.DebugLevel
	}
	return log.NewWithOptions(a.stderr, log.Options{Prefix: buildlog.Prefix, Level: level})
}

// isTerminal reports whether w is a terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
