// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"jsmod-cli/internal/jsmodule"
)

// renderText writes one "<item> <module>" line per claimed module.
func renderText(w io.Writer, res *jsmodule.Result) error {
	for _, assoc := range res.Associations {
		for _, module := range assoc.Modules {
			if _, err := fmt.Fprintf(w, "%s\t%s\n", assoc.Spec, module.Spec()); err != nil {
				return err
			}
		}
	}
	return nil
}

// renderTable writes the match record as a table, followed by the
// unmatched candidates.
func renderTable(w io.Writer, res *jsmodule.Result, kinds []jsmodule.Kind) error {
	entities := make(map[string]string, len(kinds))
	for _, k := range kinds {
		entities[k.Label] = k.Entity
	}

	tw := table.NewWriter()
	tw.SetOutputMirror(w)
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(table.Row{"Kind", "Item", "Module", "JSModule", "Status"})
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 2, WidthMax: 48},
		{Number: 3, WidthMax: 48},
		{Number: 5, Align: text.AlignCenter},
	})

	for _, assoc := range res.Associations {
		status := "ok"
		if len(assoc.Modules) > 1 {
			status = "conflict"
		}
		kind := assoc.Kind
		if e := entities[kind]; e != "" {
			kind = e
		}
		for _, module := range assoc.Modules {
			tw.AppendRow(table.Row{kind, assoc.Spec, module.Spec(), module.JSModule(), status})
		}
	}
	for _, module := range res.Unmatched {
		tw.AppendRow(table.Row{"", "", module.Spec(), module.JSModule(), "unmatched"})
	}

	if len(res.Associations) == 0 && len(res.Unmatched) == 0 {
		_, err := fmt.Fprintln(w, SubtitleStyle.Render("(no JS module candidates)"))
		return err
	}
	tw.Render()
	return nil
}

// renderDiagnosticsCard summarizes diagnostics by code with a hint to
// explain each one.
func renderDiagnosticsCard(diags []jsmodule.Diagnostic) string {
	counts := make(map[jsmodule.DiagnosticCode]int)
	for _, d := range diags {
		counts[d.Code]++
	}
	codes := make([]string, 0, len(counts))
	for c := range counts {
		codes = append(codes, string(c))
	}
	sort.Strings(codes)

	var sb strings.Builder
	sb.WriteString(ErrorStyle.Render(fmt.Sprintf("✗ %d diagnostic(s) reported", len(diags))))
	sb.WriteString("\n")
	for _, c := range codes {
		fmt.Fprintf(&sb, "\n  %s  %d", CmdStyle.Render(c), counts[jsmodule.DiagnosticCode(c)])
	}
	sb.WriteString("\n\n")
	sb.WriteString(hintStyle.Render("Run 'jsmod explain <code>' for details."))
	return cardStyle.Render(sb.String())
}
