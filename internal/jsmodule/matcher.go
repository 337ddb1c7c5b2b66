// SPDX-License-Identifier: MPL-2.0

package jsmodule

import (
	"fmt"
	"strings"

	"jsmod-cli/pkg/platform"
	"jsmod-cli/pkg/taskitem"
)

type (
	// Option configures a Matcher.
	Option func(*Matcher)

	// Matcher pairs primary items with module candidates. A Matcher holds
	// only configuration; every Apply call works on its own copies, so one
	// Matcher may be reused.
	Matcher struct {
		kinds             []compiledKind
		pathStyle         platform.PathStyle
		filterConflicting bool
		logger            Logger
	}

	// Input holds the lists handed to one matching pass.
	Input struct {
		// Items maps a kind label to its primary items, in scan order.
		Items map[string][]taskitem.Item
		// Candidates are the module candidates, in scan order.
		Candidates []taskitem.Item
	}

	// Association is one match record entry: an item and every module
	// candidate that resolved to it, in claim order. Kind is the label of
	// the kind whose scan claimed the first module.
	Association struct {
		Kind    string
		Spec    taskitem.Spec
		Modules []taskitem.Item
	}

	// Result is the outcome of one matching pass.
	Result struct {
		// Modules is every claimed candidate, grouped by item in claim order.
		Modules []taskitem.Item
		// Items maps a kind label to copies of its matched items carrying
		// the JSModule metadata of their first module.
		Items map[string][]taskitem.Item
		// Associations is the match record in insertion order.
		Associations []Association
		// Unmatched lists the candidates no item claimed.
		Unmatched []taskitem.Item
		// Diagnostics lists everything logged as an error during the pass.
		Diagnostics []Diagnostic
	}

	// pass holds the working state of one Apply call.
	pass struct {
		unmatched []taskitem.Item
		record    []*Association
		index     map[taskitem.Spec]*Association
		items     map[string][]taskitem.Item
	}
)

// WithPathStyle sets the separator convention applied to candidate paths
// before inference. The default follows the host OS.
func WithPathStyle(style platform.PathStyle) Option {
	return func(m *Matcher) { m.pathStyle = style }
}

// WithFilterConflicting drops the modules of items that matched more than
// one module from Result.Modules and Result.Items. The diagnostic is still
// reported. Off by default.
func WithFilterConflicting(filter bool) Option {
	return func(m *Matcher) { m.filterConflicting = filter }
}

// WithLogger sets the diagnostic sink. Nil restores the no-op sink.
func WithLogger(l Logger) Option {
	return func(m *Matcher) {
		if l == nil {
			l = nopLogger{}
		}
		m.logger = l
	}
}

// NewMatcher creates a Matcher scanning kinds in the given order.
func NewMatcher(kinds []Kind, opts ...Option) (*Matcher, error) {
	if len(kinds) == 0 {
		return nil, &InvalidKindError{Reason: "at least one kind is required"}
	}
	m := &Matcher{
		kinds:     make([]compiledKind, 0, len(kinds)),
		pathStyle: platform.PathStyleAuto,
		logger:    nopLogger{},
	}
	seen := make(map[string]struct{}, len(kinds))
	for _, k := range kinds {
		ck, err := k.compile()
		if err != nil {
			return nil, err
		}
		if _, dup := seen[strings.ToLower(k.Label)]; dup {
			return nil, &InvalidKindError{Label: k.Label, Reason: "duplicate label"}
		}
		seen[strings.ToLower(k.Label)] = struct{}{}
		m.kinds = append(m.kinds, ck)
	}
	for _, opt := range opts {
		opt(m)
	}
	return m, nil
}

// ApplyDefault runs one pass with the default kinds over razor components,
// razor views and module candidates.
func ApplyDefault(components, views, candidates []taskitem.Item, opts ...Option) *Result {
	m, err := NewMatcher(DefaultKinds(), opts...)
	if err != nil {
		panic(fmt.Sprintf("jsmodule: default kinds must compile: %v", err))
	}
	return m.Apply(Input{
		Items: map[string][]taskitem.Item{
			LabelRazorComponent: components,
			LabelView:           views,
		},
		Candidates: candidates,
	})
}

// Kinds returns the configured kinds in scan order.
func (m *Matcher) Kinds() []Kind {
	kinds := make([]Kind, len(m.kinds))
	for i, ck := range m.kinds {
		kinds[i] = ck.Kind
	}
	return kinds
}

// Apply runs one matching pass. It never fails: problems are reported as
// diagnostics on the Result and through the Logger.
func (m *Matcher) Apply(in Input) *Result {
	p := &pass{
		unmatched: append([]taskitem.Item(nil), in.Candidates...),
		index:     make(map[taskitem.Spec]*Association),
		items:     make(map[string][]taskitem.Item, len(m.kinds)),
	}

	for _, ck := range m.kinds {
		for _, item := range in.Items[ck.Label] {
			m.matchItem(p, ck, item)
		}
	}

	res := &Result{
		Items:     make(map[string][]taskitem.Item, len(m.kinds)),
		Unmatched: p.unmatched,
	}

	conflicting := make(map[taskitem.Spec]bool)
	for _, assoc := range p.record {
		if len(assoc.Modules) <= 1 {
			continue
		}
		ck := m.kindOf(in, assoc.Spec)
		conflicting[assoc.Spec] = true
		res.Diagnostics = append(res.Diagnostics, m.logError(Diagnostic{
			Severity: SeverityError,
			Code:     ck.TooManyCode,
			Kind:     ck.Label,
			File:     string(assoc.Spec),
			Paths:    taskitem.Specs(assoc.Modules),
			Message:  tooManyMessage(ck.Kind, assoc),
		}))
	}

	for _, unmatched := range p.unmatched {
		res.Diagnostics = append(res.Diagnostics, m.logError(Diagnostic{
			Severity: SeverityError,
			Code:     CodeUnmatchedModule,
			File:     string(unmatched.Spec()),
			Paths:    []string{string(unmatched.Spec())},
			Message: fmt.Sprintf(
				"The JS module file '%s' was defined but no associated %s was found for it.",
				unmatched.Spec(), m.entityList()),
		}))
	}

	for _, assoc := range p.record {
		res.Associations = append(res.Associations, *assoc)
		if m.filterConflicting && conflicting[assoc.Spec] {
			continue
		}
		res.Modules = append(res.Modules, assoc.Modules...)
	}
	for _, ck := range m.kinds {
		for _, item := range p.items[ck.Label] {
			if m.filterConflicting && conflicting[item.Spec()] {
				continue
			}
			res.Items[ck.Label] = append(res.Items[ck.Label], item)
		}
	}

	return res
}

// matchItem scans the unmatched candidates once for item, claiming every
// candidate whose logical key equals the item spec.
func (m *Matcher) matchItem(p *pass, ck compiledKind, item taskitem.Item) {
	i := 0
	for i < len(p.unmatched) {
		candidate := p.unmatched[i]

		path := platform.NormalizeSeparators(candidate.RelativePath(), m.pathStyle)
		m.logger.LogMessage(ImportanceLow, "module candidate path: %s", path)

		key, source := m.logicalKey(ck, candidate, path)
		m.logger.LogMessage(ImportanceLow, "resolved item (%s): %s", source, key)

		if !item.Spec().EqualFold(key) {
			i++
			continue
		}

		p.unmatched = append(p.unmatched[:i], p.unmatched[i+1:]...)
		if existing, ok := p.index[item.Spec()]; ok {
			existing.Modules = append(existing.Modules, candidate)
			continue
		}
		assoc := &Association{Kind: ck.Label, Spec: item.Spec(), Modules: []taskitem.Item{candidate}}
		p.index[item.Spec()] = assoc
		p.record = append(p.record, assoc)
		p.items[ck.Label] = append(p.items[ck.Label],
			item.WithMetadata(taskitem.MetadataJSModule, candidate.JSModule()))
	}
}

// logicalKey returns the item spec a candidate points to under ck, and the
// name of where it came from (the explicit metadata name or RelativePath).
func (m *Matcher) logicalKey(ck compiledKind, candidate taskitem.Item, normalizedPath string) (key, source string) {
	if candidate.HasMetadata(ck.Label) {
		return candidate.Metadata(ck.Label), ck.Label
	}
	return ck.infer(normalizedPath), taskitem.MetadataRelativePath
}

// kindOf returns the first kind whose items contain spec, ignoring case, and
// the last kind when none does.
func (m *Matcher) kindOf(in Input, spec taskitem.Spec) compiledKind {
	for _, ck := range m.kinds[:len(m.kinds)-1] {
		for _, item := range in.Items[ck.Label] {
			if item.Spec().EqualFold(string(spec)) {
				return ck
			}
		}
	}
	return m.kinds[len(m.kinds)-1]
}

func (m *Matcher) logError(d Diagnostic) Diagnostic {
	m.logger.LogError(d)
	return d
}

// entityList joins the kind nouns for the unmatched-candidate message.
func (m *Matcher) entityList() string {
	entities := make([]string, len(m.kinds))
	for i, ck := range m.kinds {
		entities[i] = ck.entity()
	}
	return strings.Join(entities, " or ")
}

func tooManyMessage(k Kind, assoc *Association) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "More than one JS module files were found for the %s '%s'. ", k.entity(), assoc.Spec)
	fmt.Fprintf(&sb, "Each %s must have at most a single associated JS module file.", k.entity())
	for _, module := range assoc.Modules {
		sb.WriteString("\n")
		sb.WriteString(string(module.Spec()))
	}
	return sb.String()
}

// Succeeded reports whether the pass logged no error diagnostics.
func (r *Result) Succeeded() bool {
	for _, d := range r.Diagnostics {
		if d.IsError() {
			return false
		}
	}
	return true
}

// DiagnosticsWithCode returns the diagnostics carrying code, in order.
func (r *Result) DiagnosticsWithCode(code DiagnosticCode) []Diagnostic {
	var out []Diagnostic
	for _, d := range r.Diagnostics {
		if d.Code == code {
			out = append(out, d)
		}
	}
	return out
}
