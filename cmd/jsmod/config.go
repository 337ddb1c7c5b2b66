// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"jsmod-cli/internal/config"
	"jsmod-cli/internal/issue"
	"jsmod-cli/pkg/types"
)

// newConfigCommand creates the `jsmod config` command tree.
func newConfigCommand(app *App) *cobra.Command {
	cfgCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage jsmod configuration",
		Long: `Manage jsmod configuration.

Configuration is stored in:
  - Linux: $XDG_CONFIG_HOME/jsmod/config.cue (~/.config/jsmod/config.cue)
  - macOS: ~/Library/Application Support/jsmod/config.cue
  - Windows: %APPDATA%\jsmod\config.cue

A config.cue in the current directory is used when none exists there.
JSMOD_* environment variables override file values.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show the effective configuration",
		RunE: func(_ *cobra.Command, _ []string) error {
			return showConfig(app.stdout, app.config())
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:         "path",
		Short:       "Show the configuration file path",
		Annotations: map[string]string{skipConfigAnnotation: "true"},
		RunE: func(_ *cobra.Command, _ []string) error {
			return app.showConfigPath()
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:         "init",
		Short:       "Create the default configuration file",
		Annotations: map[string]string{skipConfigAnnotation: "true"},
		RunE: func(_ *cobra.Command, _ []string) error {
			return app.initConfig()
		},
	})

	var schema bool
	dumpCmd := &cobra.Command{
		Use:   "dump",
		Short: "Print the effective configuration as CUE",
		RunE: func(_ *cobra.Command, _ []string) error {
			if schema {
				_, err := fmt.Fprint(app.stdout, config.Schema())
				return err
			}
			_, err := fmt.Fprint(app.stdout, config.GenerateCUE(app.config()))
			return err
		},
	}
	dumpCmd.Flags().BoolVar(&schema, "schema", false, "print the configuration schema instead")
	cfgCmd.AddCommand(dumpCmd)

	return cfgCmd
}

func showConfig(w io.Writer, cfg *config.Config) error {
	keyStyle := CmdStyle
	valueStyle := SuccessStyle

	source := SubtitleStyle.Render("(using defaults)")
	if cfg.Source != "" {
		source = cfg.Source.String()
	}

	format := string(cfg.UI.Format)
	if format == "" {
		format = "(auto)"
	}

	lines := []string{
		TitleStyle.Render("Current Configuration"),
		"",
		fmt.Sprintf("%s: %s", keyStyle.Render("Config file"), source),
		"",
		fmt.Sprintf("%s: %s", keyStyle.Render("ui.verbose"), valueStyle.Render(fmt.Sprint(cfg.UI.Verbose))),
		fmt.Sprintf("%s: %s", keyStyle.Render("ui.format"), valueStyle.Render(format)),
		fmt.Sprintf("%s: %s", keyStyle.Render("ui.color_scheme"), valueStyle.Render(cfg.UI.ColorScheme.String())),
		fmt.Sprintf("%s: %s", keyStyle.Render("apply.filter_conflicting"), valueStyle.Render(fmt.Sprint(cfg.Apply.FilterConflicting))),
		fmt.Sprintf("%s: %s", keyStyle.Render("apply.path_style"), valueStyle.Render(cfg.Apply.PathStyle.String())),
		"",
		keyStyle.Render("kinds") + ":",
	}

	kinds, err := cfg.MatcherKinds()
	if err != nil {
		return err
	}
	for _, k := range kinds {
		lines = append(lines, fmt.Sprintf("  %s  %s -> %s  %s",
			valueStyle.Render(k.Label), k.Pattern, k.Replacement, SubtitleStyle.Render(string(k.TooManyCode))))
	}

	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

func (a *App) showConfigPath() error {
	if a.configPath != "" {
		_, err := fmt.Fprintln(a.stdout, a.configPath)
		return err
	}
	path, err := config.DefaultConfigPath()
	if err != nil {
		return a.fail(types.ExitUsage, err)
	}
	_, err = fmt.Fprintln(a.stdout, path)
	return err
}

func (a *App) initConfig() error {
	path, created, err := config.CreateDefaultConfig()
	if err != nil {
		return a.fail(types.ExitUsage, issue.NewErrorContext().
			WithOperation("create configuration").
			WithSuggestion("Check that the config directory is writable").
			Wrap(err).
			BuildError())
	}
	if !created {
		_, err = fmt.Fprintf(a.stdout, "%s %s\n", WarningStyle.Render("Configuration already exists:"), path)
		return err
	}
	_, err = fmt.Fprintf(a.stdout, "%s %s\n", SuccessStyle.Render("Created"), path)
	return err
}
