// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"jsmod-cli/internal/config"
	"jsmod-cli/internal/issue"
	"jsmod-cli/pkg/types"
)

func newExplainCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "explain [code]",
		Short: "Explain a diagnostic code or failure",
		Long: `Explain a diagnostic code (BLAZOR105, RZ1007, CORR106) or a failure
(manifest, config, interop). Without an argument, list every guide.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return app.listGuides()
			}
			return app.explain(issue.Key(args[0]))
		},
	}
}

func (a *App) listGuides() error {
	for _, g := range issue.Values() {
		if _, err := fmt.Fprintf(a.stdout, "%-10s %s\n", CmdStyle.Render(string(g.Key())), g.Title()); err != nil {
			return err
		}
	}
	return nil
}

func (a *App) explain(key issue.Key) error {
	g := issue.Get(key)
	if g == nil {
		keys := make([]string, 0)
		for _, k := range issue.Keys() {
			keys = append(keys, string(k))
		}
		return a.fail(types.ExitUsage, issue.NewErrorContext().
			WithOperation("explain").
			WithResource(string(key)).
			WithSuggestion("Known codes: "+strings.Join(keys, ", ")).
			Wrap(fmt.Errorf("no guide for %q", key)).
			BuildError())
	}

	rendered, err := g.Render(a.glamourStyle())
	if err != nil {
		return fmt.Errorf("render guide %s: %w", g.Key(), err)
	}
	_, err = fmt.Fprint(a.stdout, rendered)
	return err
}

// glamourStyle maps ui.color_scheme to a glamour style. Output that is not
// a terminal gets the plain style.
func (a *App) glamourStyle() string {
	if !a.isTerminal(a.stdout) {
		return "notty"
	}
	switch a.config().UI.ColorScheme {
	case config.ColorSchemeDark:
		return "dark"
	case config.ColorSchemeLight:
		return "light"
	default:
		return "auto"
	}
}
