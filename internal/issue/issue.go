// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"slices"
	"strings"

	"github.com/charmbracelet/glamour"
	"golang.org/x/exp/maps"
)

const (
	// TooManyComponentModulesKey explains BLAZOR105.
	TooManyComponentModulesKey Key = "BLAZOR105"
	// TooManyViewModulesKey explains RZ1007.
	TooManyViewModulesKey Key = "RZ1007"
	// UnmatchedModuleKey explains CORR106.
	UnmatchedModuleKey Key = "CORR106"
	// ManifestLoadFailedKey explains manifest loading failures.
	ManifestLoadFailedKey Key = "manifest"
	// ConfigLoadFailedKey explains configuration loading failures.
	ConfigLoadFailedKey Key = "config"
	// InteropFailedKey explains shell module failures.
	InteropFailedKey Key = "interop"
)

type (
	// Key identifies a guide. Diagnostic guides use the diagnostic code.
	Key string

	// MarkdownMsg is guide text in Markdown.
	MarkdownMsg string

	// HTTPLink is a documentation URL.
	HTTPLink string

	// Guide is a Markdown explanation of one problem and how to fix it.
	Guide struct {
		key      Key
		title    string
		mdMsg    MarkdownMsg
		docLinks []HTTPLink
	}
)

const collocationDocs HTTPLink = "https://learn.microsoft.com/aspnet/core/blazor/javascript-interoperability/location-of-javascript"

var (
	render = glamour.Render

	tooManyComponentModulesGuide = &Guide{
		key:   TooManyComponentModulesKey,
		title: "More than one JS module for a razor component",
		mdMsg: `
# BLAZOR105: more than one JS module for a razor component

A razor component may have at most one collocated JS module. Two or more
candidates resolved to the same component, either because they share the
` + "`<Component>.razor.js`" + ` name in different casing or because one of them
names the component explicitly with ` + "`RazorComponent`" + ` metadata.

## Things you can try
- Keep a single ` + "`Pages/Counter.razor.js`" + ` next to ` + "`Pages/Counter.razor`" + `
- Remove the ` + "`RazorComponent`" + ` metadata from candidates that should not
  belong to this component
- Run with ` + "`--filter-conflicting`" + ` to drop the conflicting modules from the output`,
		docLinks: []HTTPLink{collocationDocs},
	}

	tooManyViewModulesGuide = &Guide{
		key:   TooManyViewModulesKey,
		title: "More than one JS module for a razor view",
		mdMsg: `
# RZ1007: more than one JS module for a razor view

A razor view may have at most one collocated JS module. Two or more
candidates resolved to the same ` + "`.cshtml`" + ` file.

## Things you can try
- Keep a single ` + "`Views/Home/Index.cshtml.js`" + ` next to the view
- Check candidates carrying explicit ` + "`View`" + ` metadata
- Run with ` + "`--filter-conflicting`" + ` to drop the conflicting modules from the output`,
		docLinks: []HTTPLink{collocationDocs},
	}

	unmatchedModuleGuide = &Guide{
		key:   UnmatchedModuleKey,
		title: "JS module without a razor component or view",
		mdMsg: `
# CORR106: JS module without an owner

A JS module candidate was listed but no razor component or view claimed it.
Inference strips ` + "`.js`" + ` from ` + "`<name>.razor.js`" + ` and ` + "`<name>.cshtml.js`" + `
and looks for an item with that spec, ignoring case.

## Things you can try
- Rename the file so it sits next to its component or view
- Add the component or view to the manifest's ` + "`items`" + `
- Name the owner explicitly with ` + "`RazorComponent`" + ` or ` + "`View`" + ` metadata`,
		docLinks: []HTTPLink{collocationDocs},
	}

	manifestLoadFailedGuide = &Guide{
		key:   ManifestLoadFailedKey,
		title: "Manifest could not be loaded",
		mdMsg: `
# Manifest could not be loaded

jsmod reads manifests in CUE, JSON or TOML, chosen by file extension.

## Example
~~~cue
items: components: [{spec: "Pages/Counter.razor"}]
candidates: [{
	spec: "Pages/Counter.razor.js"
	metadata: RelativePath: "Pages/Counter.razor.js"
}]
~~~

## Things you can try
- Check that every ` + "`spec`" + ` is non-empty and unique within its list
- Use a ` + "`.cue`" + `, ` + "`.json`" + ` or ` + "`.toml`" + ` extension`,
	}

	configLoadFailedGuide = &Guide{
		key:   ConfigLoadFailedKey,
		title: "Configuration could not be loaded",
		mdMsg: `
# Configuration could not be loaded

## Things you can try
- Print the schema:
~~~
$ jsmod config dump --schema
~~~
- Write a fresh default file:
~~~
$ jsmod config init
~~~
- Check ` + "`JSMOD_*`" + ` environment variables for typos`,
	}

	interopFailedGuide = &Guide{
		key:   InteropFailedKey,
		title: "Shell module could not be run",
		mdMsg: `
# Shell module could not be run

` + "`jsmod interop prompt`" + ` imports a shell module and calls its
` + "`showPrompt`" + ` function.

## Things you can try
- Check that the module path exists under ` + "`--root`" + `
- Make sure the module declares ` + "`showPrompt() { ... }`" + `
- Leave ` + "`--module`" + ` unset to use the built-in module`,
	}

	guides = map[Key]*Guide{
		tooManyComponentModulesGuide.key: tooManyComponentModulesGuide,
		tooManyViewModulesGuide.key:      tooManyViewModulesGuide,
		unmatchedModuleGuide.key:         unmatchedModuleGuide,
		manifestLoadFailedGuide.key:      manifestLoadFailedGuide,
		configLoadFailedGuide.key:        configLoadFailedGuide,
		interopFailedGuide.key:           interopFailedGuide,
	}
)

// Key returns the lookup key.
func (g *Guide) Key() Key { return g.key }

// Title returns the one-line summary.
func (g *Guide) Title() string { return g.title }

// MarkdownMsg returns the raw Markdown text.
func (g *Guide) MarkdownMsg() MarkdownMsg { return g.mdMsg }

// DocLinks returns a copy of the documentation links.
func (g *Guide) DocLinks() []HTTPLink { return slices.Clone(g.docLinks) }

// Render renders the guide with the glamour style at stylePath ("auto",
// "dark", "light" or a JSON style file).
func (g *Guide) Render(stylePath string) (string, error) {
	md := string(g.mdMsg)
	if len(g.docLinks) > 0 {
		md += "\n\n## See also\n"
		for _, link := range g.docLinks {
			md += "- " + string(link) + "\n"
		}
	}
	return render(md, stylePath)
}

// Get returns the guide for key, ignoring case, or nil.
func Get(key Key) *Guide {
	if g, ok := guides[key]; ok {
		return g
	}
	for k, g := range guides {
		if strings.EqualFold(string(k), string(key)) {
			return g
		}
	}
	return nil
}

// Keys returns every guide key in sorted order.
func Keys() []Key {
	return slices.Sorted(maps.Keys(guides))
}

// Values returns every guide, ordered by key.
func Values() []*Guide {
	out := make([]*Guide, 0, len(guides))
	for _, k := range Keys() {
		out = append(out, guides[k])
	}
	return out
}
