// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"

	"jsmod-cli/internal/issue"
	"jsmod-cli/pkg/types"
)

// skipConfigAnnotation marks commands that run without loading configuration.
const skipConfigAnnotation = "jsmod/skip-config"

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"
)

// NewRootCommand builds the jsmod command tree around app.
func NewRootCommand(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:   "jsmod",
		Short: "Pair razor components and views with their JS modules",
		Long: TitleStyle.Render("jsmod") + SubtitleStyle.Render(" - pair razor components and views with their JS modules") + `

jsmod reads a manifest of razor components, razor views and JS module
candidates, associates every candidate with at most one item, and reports
items with more than one module and modules with no item.

` + SubtitleStyle.Render("Examples:") + `
  jsmod apply jsmodules.cue            Match and print a table
  jsmod apply m.toml --format json     Match and print JSON
  jsmod explain BLAZOR105              Explain a diagnostic
  jsmod config show                    Show the effective configuration`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Annotations[skipConfigAnnotation] == "true" {
				return nil
			}
			return app.loadConfig(cmd.Context())
		},
	}

	root.PersistentFlags().BoolVarP(&app.verbose, "verbose", "v", false, "enable verbose output")
	root.PersistentFlags().StringVar(&app.configPath, "config", "", "config file (default is $XDG_CONFIG_HOME/jsmod/config.cue)")

	root.AddCommand(
		newApplyCommand(app),
		newExplainCommand(app),
		newConfigCommand(app),
		newInteropCommand(app),
	)
	return root
}

// getVersionString returns a formatted version string for display.
func getVersionString() string {
	if Version == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
}

// Main runs jsmod with os.Args and returns the process exit code.
func Main() int {
	app := NewApp(Dependencies{})
	err := fang.Execute(
		context.Background(),
		NewRootCommand(app),
		fang.WithVersion(getVersionString()),
		fang.WithNotifySignal(os.Interrupt),
	)
	return exitCode(err)
}

// Execute runs jsmod and exits the process.
func Execute() {
	os.Exit(Main())
}

func exitCode(err error) int {
	if err == nil {
		return int(types.ExitSuccess)
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return int(exitErr.Code)
	}
	return int(types.ExitDiagnostics)
}

// formatErrorForDisplay uses ActionableError's formatting when available.
func formatErrorForDisplay(err error, verbose bool) string {
	var ae *issue.ActionableError
	if errors.As(err, &ae) {
		return ae.Format(verbose)
	}
	return err.Error()
}
