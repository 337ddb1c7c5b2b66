// SPDX-License-Identifier: MPL-2.0

package manifest

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/pelletier/go-toml/v2"

	"jsmod-cli/pkg/cueutil"
	"jsmod-cli/pkg/taskitem"
	"jsmod-cli/pkg/types"
)

// Item group names with a built-in kind.
const (
	GroupComponents = "components"
	GroupViews      = "views"
)

//go:embed manifest_schema.cue
var schema []byte

var (
	// ErrInvalidManifest is the sentinel error wrapped by InvalidManifestError.
	ErrInvalidManifest = errors.New("invalid manifest")

	// ErrUnsupportedFormat is returned for manifest files whose extension is
	// not .cue, .json or .toml.
	ErrUnsupportedFormat = errors.New("unsupported manifest format")
)

type (
	// Entry is one item as written in a manifest.
	Entry struct {
		Spec     string            `json:"spec" toml:"spec"`
		Metadata map[string]string `json:"metadata,omitempty" toml:"metadata,omitempty"`
	}

	// Manifest is a decoded input manifest.
	Manifest struct {
		Items      map[string][]Entry `json:"items,omitempty" toml:"items,omitempty"`
		Candidates []Entry            `json:"candidates,omitempty" toml:"candidates,omitempty"`
	}

	// InvalidManifestError reports a manifest that decoded but broke a rule
	// the schema cannot express.
	InvalidManifestError struct {
		File   string
		Field  string
		Reason string
	}
)

// Error implements the error interface for InvalidManifestError.
func (e *InvalidManifestError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("%s: %s", e.File, e.Reason)
	}
	return fmt.Sprintf("%s: %s: %s", e.File, e.Field, e.Reason)
}

// Unwrap returns ErrInvalidManifest for errors.Is() compatibility.
func (e *InvalidManifestError) Unwrap() error { return ErrInvalidManifest }

// Item converts the entry into a build item.
func (e Entry) Item() taskitem.Item {
	return taskitem.New(taskitem.Spec(e.Spec), e.Metadata)
}

// EntryOf converts a build item back into a manifest entry.
func EntryOf(item taskitem.Item) Entry {
	md := item.MetadataMap()
	if len(md) == 0 {
		md = nil
	}
	return Entry{Spec: string(item.Spec()), Metadata: md}
}

// Items converts entries into build items, keeping order.
func Items(entries []Entry) []taskitem.Item {
	items := make([]taskitem.Item, len(entries))
	for i, e := range entries {
		items[i] = e.Item()
	}
	return items
}

// Entries converts build items into manifest entries, keeping order.
func Entries(items []taskitem.Item) []Entry {
	entries := make([]Entry, len(items))
	for i, item := range items {
		entries[i] = EntryOf(item)
	}
	return entries
}

// Groups returns the item group names in sorted order.
func (m *Manifest) Groups() []string {
	groups := make([]string, 0, len(m.Items))
	for g := range m.Items {
		groups = append(groups, g)
	}
	sort.Strings(groups)
	return groups
}

// Load reads and decodes the manifest at path. The format follows the file
// extension.
func Load(path types.FilesystemPath) (*Manifest, error) {
	if err := path.Validate(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(string(path))
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}
	return Parse(data, path)
}

// Parse decodes manifest data whose format follows the extension of name.
func Parse(data []byte, name types.FilesystemPath) (*Manifest, error) {
	switch name.Ext() {
	case ".cue", ".json":
		return ParseCUE(data, string(name))
	case ".toml":
		return ParseTOML(data, string(name))
	default:
		return nil, fmt.Errorf("%w %q (use .cue, .json or .toml)", ErrUnsupportedFormat, filepath.Ext(string(name)))
	}
}

// ParseCUE decodes a CUE or JSON manifest.
func ParseCUE(data []byte, filename string) (*Manifest, error) {
	res, err := cueutil.ParseAndDecode[Manifest](schema, data, "#Manifest", cueutil.WithFilename(filename))
	if err != nil {
		return nil, err
	}
	if err := res.Value.validate(filename); err != nil {
		return nil, err
	}
	return res.Value, nil
}

// ParseTOML decodes a TOML manifest.
func ParseTOML(data []byte, filename string) (*Manifest, error) {
	if err := cueutil.CheckFileSize(data, cueutil.DefaultMaxFileSize, filename); err != nil {
		return nil, err
	}
	var m Manifest
	if err := toml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	if err := m.validate(filename); err != nil {
		return nil, err
	}
	return &m, nil
}

// validate checks that every spec is non-blank and unique within its list.
func (m *Manifest) validate(filename string) error {
	for _, g := range m.Groups() {
		if err := validateEntries(filename, "items."+g, m.Items[g]); err != nil {
			return err
		}
	}
	return validateEntries(filename, "candidates", m.Candidates)
}

func validateEntries(filename, field string, entries []Entry) error {
	seen := make(map[string]int, len(entries))
	for i, e := range entries {
		at := fmt.Sprintf("%s[%d].spec", field, i)
		if err := taskitem.Spec(e.Spec).Validate(); err != nil {
			return &InvalidManifestError{File: filename, Field: at, Reason: "spec must be non-empty"}
		}
		if first, dup := seen[e.Spec]; dup {
			return &InvalidManifestError{
				File:   filename,
				Field:  at,
				Reason: fmt.Sprintf("duplicate spec %q (first at %s[%d])", e.Spec, field, first),
			}
		}
		seen[e.Spec] = i
	}
	return nil
}
