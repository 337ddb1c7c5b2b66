// SPDX-License-Identifier: MPL-2.0

package manifest

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/pelletier/go-toml/v2"

	"jsmod-cli/pkg/types"
)

type (
	// Diagnostic is a matcher diagnostic as written to a result manifest.
	Diagnostic struct {
		Severity string   `json:"severity" toml:"severity"`
		Code     string   `json:"code" toml:"code"`
		Message  string   `json:"message" toml:"message"`
		File     string   `json:"file,omitempty" toml:"file,omitempty"`
		Kind     string   `json:"kind,omitempty" toml:"kind,omitempty"`
		Paths    []string `json:"paths,omitempty" toml:"paths,omitempty"`
	}

	// Output is a result manifest: the claimed modules, the augmented items
	// keyed by kind label, and the diagnostics of the pass.
	Output struct {
		Succeeded   bool               `json:"succeeded" toml:"succeeded"`
		Modules     []Entry            `json:"modules" toml:"modules"`
		Items       map[string][]Entry `json:"items" toml:"items"`
		Unmatched   []Entry            `json:"unmatched,omitempty" toml:"unmatched,omitempty"`
		Diagnostics []Diagnostic       `json:"diagnostics" toml:"diagnostics"`
	}
)

// Encode writes out in the given machine-readable format.
func (o *Output) Encode(w io.Writer, format types.OutputFormat) error {
	switch format {
	case types.OutputFormatJSON:
		return o.EncodeJSON(w)
	case types.OutputFormatTOML:
		return o.EncodeTOML(w)
	default:
		return fmt.Errorf("output format %q is not a manifest encoding", format)
	}
}

// EncodeJSON writes out as indented JSON.
func (o *Output) EncodeJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(o.normalized()); err != nil {
		return fmt.Errorf("failed to encode JSON output: %w", err)
	}
	return nil
}

// EncodeTOML writes out as TOML.
func (o *Output) EncodeTOML(w io.Writer) error {
	enc := toml.NewEncoder(w)
	enc.SetIndentTables(true)
	if err := enc.Encode(o.normalized()); err != nil {
		return fmt.Errorf("failed to encode TOML output: %w", err)
	}
	return nil
}

// normalized returns a copy whose nil lists encode as empty lists.
func (o *Output) normalized() *Output {
	n := *o
	if n.Modules == nil {
		n.Modules = []Entry{}
	}
	if n.Items == nil {
		n.Items = map[string][]Entry{}
	}
	if n.Diagnostics == nil {
		n.Diagnostics = []Diagnostic{}
	}
	return &n
}
