// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"jsmod-cli/internal/buildlog"
	"jsmod-cli/internal/issue"
	"jsmod-cli/internal/jsmodule"
	"jsmod-cli/internal/watch"
	"jsmod-cli/pkg/manifest"
	"jsmod-cli/pkg/platform"
	"jsmod-cli/pkg/taskitem"
	"jsmod-cli/pkg/types"
)

// applyRequest captures the inputs of one apply run.
type applyRequest struct {
	ManifestPath      types.FilesystemPath
	Format            types.OutputFormat
	OutPath           types.FilesystemPath
	FilterConflicting bool
	PathStyle         platform.PathStyle
	Watch             bool
}

// globEscaper quotes doublestar metacharacters in a literal file name.
var globEscaper = strings.NewReplacer(`\`, `\\`, "*", `\*`, "?", `\?`, "[", `\[`, "]", `\]`, "{", `\{`, "}", `\}`)

func newApplyCommand(app *App) *cobra.Command {
	var (
		format            string
		out               string
		filterConflicting bool
		pathStyle         string
		watchManifest     bool
	)

	cmd := &cobra.Command{
		Use:   "apply <manifest>",
		Short: "Associate JS module candidates with components and views",
		Long: `Associate JS module candidates with razor components and views.

The manifest (.cue, .json or .toml) lists the items and the candidates.
Diagnostics are logged to stderr; the result goes to stdout or --out.
The exit status is 1 when any diagnostic was reported.

With --watch the pass re-runs every time the manifest file changes, until
interrupted.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := app.config()
			req := applyRequest{
				ManifestPath:      types.FilesystemPath(args[0]),
				Format:            types.OutputFormat(format),
				OutPath:           types.FilesystemPath(out),
				FilterConflicting: cfg.Apply.FilterConflicting,
				PathStyle:         cfg.Apply.PathStyle,
				Watch:             watchManifest,
			}
			if cmd.Flags().Changed("filter-conflicting") {
				req.FilterConflicting = filterConflicting
			}
			if cmd.Flags().Changed("path-style") {
				req.PathStyle = platform.PathStyle(pathStyle)
			}
			return app.runApply(cmd.Context(), req)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "", "output format: text, table, json or toml (default: table on a terminal, json otherwise)")
	cmd.Flags().StringVarP(&out, "out", "o", "", "write the result to this file instead of stdout")
	cmd.Flags().BoolVar(&filterConflicting, "filter-conflicting", false, "drop the modules of items that matched more than one module")
	cmd.Flags().StringVar(&pathStyle, "path-style", "", "separator convention for candidate paths: auto, unix or windows")
	cmd.Flags().BoolVarP(&watchManifest, "watch", "w", false, "re-run whenever the manifest changes")

	return cmd
}

func (a *App) runApply(ctx context.Context, req applyRequest) error {
	if valid, errs := req.Format.IsValid(); !valid {
		return a.fail(types.ExitUsage, errs[0])
	}
	if valid, errs := req.PathStyle.IsValid(); !valid {
		return a.fail(types.ExitUsage, errs[0])
	}
	if req.Watch {
		return a.watchApply(ctx, req)
	}
	return a.applyOnce(ctx, req)
}

// watchApply runs one pass, then another each time the manifest changes,
// until ctx is canceled. Failed passes are logged and do not stop watching.
func (a *App) watchApply(ctx context.Context, req applyRequest) error {
	abs, err := filepath.Abs(req.ManifestPath.String())
	if err != nil {
		return a.fail(types.ExitUsage, err)
	}

	logger := a.logger()
	pass := func(ctx context.Context) {
		err := a.applyOnce(ctx, req)
		var exitErr *ExitError
		switch {
		case err == nil:
			logger.Info("pass succeeded")
		case errors.As(err, &exitErr) && exitErr.Code == types.ExitDiagnostics:
			logger.Warn("pass reported diagnostics")
		default:
			logger.Error(formatErrorForDisplay(err, a.verbose))
		}
	}

	w, err := watch.New(watch.Config{
		BaseDir:  filepath.Dir(abs),
		Patterns: []string{globEscaper.Replace(filepath.Base(abs))},
		Logger:   logger,
		OnChange: func(ctx context.Context, _ []string) error {
			logger.Info("manifest changed", "path", req.ManifestPath)
			pass(ctx)
			return nil
		},
	})
	if err != nil {
		return a.fail(types.ExitUsage, err)
	}

	pass(ctx)
	logger.Info("watching for changes", "path", req.ManifestPath)
	if err := w.Run(ctx); err != nil {
		return a.fail(types.ExitUsage, err)
	}
	return nil
}

// applyOnce runs a single matching pass and renders its result.
func (a *App) applyOnce(ctx context.Context, req applyRequest) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m, err := manifest.Load(req.ManifestPath)
	if err != nil {
		return a.fail(types.ExitUsage, issue.NewErrorContext().
			WithOperation("load manifest").
			WithResource(req.ManifestPath.String()).
			WithSuggestion("Run 'jsmod explain manifest' for the manifest format").
			Wrap(err).
			BuildError())
	}

	kinds, err := a.config().MatcherKinds()
	if err != nil {
		return a.fail(types.ExitUsage, err)
	}

	sink := buildlog.New(a.stderr, buildlog.Options{Verbose: a.verbose})
	matcher, err := jsmodule.NewMatcher(kinds,
		jsmodule.WithPathStyle(req.PathStyle),
		jsmodule.WithFilterConflicting(req.FilterConflicting),
		jsmodule.WithLogger(sink),
	)
	if err != nil {
		return a.fail(types.ExitUsage, err)
	}

	input, err := inputFromManifest(m, matcher.Kinds())
	if err != nil {
		return a.fail(types.ExitUsage, issue.NewErrorContext().
			WithOperation("load manifest").
			WithResource(req.ManifestPath.String()).
			WithSuggestion("Use 'components', 'views' or the label of a configured kind as item groups").
			Wrap(err).
			BuildError())
	}

	res := matcher.Apply(input)
	a.logger().Debug("matching finished",
		"modules", len(res.Modules),
		"unmatched", len(res.Unmatched),
		"diagnostics", len(res.Diagnostics))

	format := a.resolveFormat(req)
	if err := a.writeResult(res, matcher.Kinds(), format, req.OutPath); err != nil {
		return a.fail(types.ExitUsage, err)
	}

	if !res.Succeeded() {
		if format == types.OutputFormatText || format == types.OutputFormatTable {
			fmt.Fprintln(a.stderr, renderDiagnosticsCard(res.Diagnostics))
		}
		return a.fail(types.ExitDiagnostics, fmt.Errorf("%d diagnostic(s) reported", len(res.Diagnostics)))
	}
	return nil
}

// resolveFormat picks the output format: the flag, then ui.format, then a
// default for the destination.
func (a *App) resolveFormat(req applyRequest) types.OutputFormat {
	if req.Format != "" {
		return req.Format
	}
	if f := a.config().UI.Format; f != "" {
		return f
	}
	if req.OutPath != "" {
		if req.OutPath.Ext() == ".toml" {
			return types.OutputFormatTOML
		}
		return types.OutputFormatJSON
	}
	if a.isTerminal(a.stdout) {
		return types.OutputFormatTable
	}
	return types.OutputFormatJSON
}

func (a *App) writeResult(res *jsmodule.Result, kinds []jsmodule.Kind, format types.OutputFormat, outPath types.FilesystemPath) (err error) {
	var w io.Writer = a.stdout
	if outPath != "" {
		f, createErr := os.Create(outPath.String())
		if createErr != nil {
			return issue.NewErrorContext().
				WithOperation("write result").
				WithResource(outPath.String()).
				WithSuggestion("Check that the directory exists and is writable").
				Wrap(createErr).
				BuildError()
		}
		defer func() {
			if closeErr := f.Close(); closeErr != nil && err == nil {
				err = fmt.Errorf("close %s: %w", outPath, closeErr)
			}
		}()
		w = f
	}

	switch format {
	case types.OutputFormatText:
		return renderText(w, res)
	case types.OutputFormatTable:
		return renderTable(w, res, kinds)
	default:
		return buildOutput(res, kinds).Encode(w, format)
	}
}

// inputFromManifest maps manifest item groups onto kind labels.
func inputFromManifest(m *manifest.Manifest, kinds []jsmodule.Kind) (jsmodule.Input, error) {
	in := jsmodule.Input{
		Items:      make(map[string][]taskitem.Item, len(m.Items)),
		Candidates: manifest.Items(m.Candidates),
	}
	for _, group := range m.Groups() {
		label, ok := labelForGroup(group, kinds)
		if !ok {
			return jsmodule.Input{}, fmt.Errorf("item group %q matches no kind", group)
		}
		in.Items[label] = append(in.Items[label], manifest.Items(m.Items[group])...)
	}
	return in, nil
}

func labelForGroup(group string, kinds []jsmodule.Kind) (string, bool) {
	switch strings.ToLower(group) {
	case manifest.GroupComponents:
		group = jsmodule.LabelRazorComponent
	case manifest.GroupViews:
		group = jsmodule.LabelView
	}
	for _, k := range kinds {
		if strings.EqualFold(k.Label, group) {
			return k.Label, true
		}
	}
	return "", false
}

// buildOutput converts a result into a result manifest. Items are keyed by
// kind label in scan order of the kinds.
func buildOutput(res *jsmodule.Result, kinds []jsmodule.Kind) *manifest.Output {
	out := &manifest.Output{
		Succeeded: res.Succeeded(),
		Modules:   manifest.Entries(res.Modules),
		Items:     make(map[string][]manifest.Entry, len(res.Items)),
		Unmatched: manifest.Entries(res.Unmatched),
	}
	for _, k := range kinds {
		if items := res.Items[k.Label]; len(items) > 0 {
			out.Items[k.Label] = manifest.Entries(items)
		}
	}
	if len(out.Unmatched) == 0 {
		out.Unmatched = nil
	}
	for _, d := range res.Diagnostics {
		out.Diagnostics = append(out.Diagnostics, manifest.Diagnostic{
			Severity: string(d.Severity),
			Code:     string(d.Code),
			Message:  d.Message,
			File:     d.File,
			Kind:     d.Kind,
			Paths:    d.Paths,
		})
	}
	return out
}
