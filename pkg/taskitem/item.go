// SPDX-License-Identifier: MPL-2.0

package taskitem

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Well-known metadata names.
const (
	// MetadataRelativePath is the item's path relative to its project.
	MetadataRelativePath = "RelativePath"
	// MetadataJSModule is the module identifier a script item resolves to.
	MetadataJSModule = "JSModule"
)

// ErrInvalidItemSpec is the sentinel error wrapped by InvalidItemSpecError.
var ErrInvalidItemSpec = errors.New("invalid item spec")

type (
	// Spec identifies an item, usually a project-relative path.
	Spec string

	// InvalidItemSpecError is returned when a Spec is empty or whitespace-only.
	InvalidItemSpecError struct {
		Value Spec
	}

	// Item is a build item: a spec plus string metadata.
	Item struct {
		spec     Spec
		metadata map[string]string
	}
)

// Error implements the error interface for InvalidItemSpecError.
func (e *InvalidItemSpecError) Error() string {
	return fmt.Sprintf("invalid item spec %q: must be non-empty", e.Value)
}

// Unwrap returns ErrInvalidItemSpec for errors.Is() compatibility.
func (e *InvalidItemSpecError) Unwrap() error { return ErrInvalidItemSpec }

// String returns the string representation of the Spec.
func (s Spec) String() string { return string(s) }

// Validate returns an error if the Spec is empty or whitespace-only.
func (s Spec) Validate() error {
	if strings.TrimSpace(string(s)) == "" {
		return &InvalidItemSpecError{Value: s}
	}
	return nil
}

// EqualFold reports whether two specs are equal ignoring case.
func (s Spec) EqualFold(other string) bool { return strings.EqualFold(string(s), other) }

// New creates an item. The metadata map is copied.
func New(spec Spec, metadata map[string]string) Item {
	item := Item{spec: spec}
	for name, value := range metadata {
		item = item.WithMetadata(name, value)
	}
	return item
}

// Spec returns the item spec.
func (i Item) Spec() Spec { return i.spec }

// Metadata returns the value of the named metadata, or "" when absent.
// Lookup ignores the case of name.
func (i Item) Metadata(name string) string {
	if v, ok := i.metadata[name]; ok {
		return v
	}
	for k, v := range i.metadata {
		if strings.EqualFold(k, name) {
			return v
		}
	}
	return ""
}

// HasMetadata reports whether the named metadata is set to a non-blank value.
func (i Item) HasMetadata(name string) bool {
	return strings.TrimSpace(i.Metadata(name)) != ""
}

// WithMetadata returns a copy of the item with the named metadata set.
// An existing entry whose name differs only in case is replaced.
func (i Item) WithMetadata(name, value string) Item {
	md := make(map[string]string, len(i.metadata)+1)
	for k, v := range i.metadata {
		if strings.EqualFold(k, name) {
			continue
		}
		md[k] = v
	}
	md[name] = value
	return Item{spec: i.spec, metadata: md}
}

// MetadataNames returns the metadata names in sorted order.
func (i Item) MetadataNames() []string {
	names := make([]string, 0, len(i.metadata))
	for k := range i.metadata {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// MetadataMap returns a copy of the item's metadata.
func (i Item) MetadataMap() map[string]string {
	md := make(map[string]string, len(i.metadata))
	for k, v := range i.metadata {
		md[k] = v
	}
	return md
}

// RelativePath returns the RelativePath metadata.
func (i Item) RelativePath() string { return i.Metadata(MetadataRelativePath) }

// JSModule returns the JSModule metadata.
func (i Item) JSModule() string { return i.Metadata(MetadataJSModule) }

// Specs returns the specs of items in order.
func Specs(items []Item) []string {
	specs := make([]string, len(items))
	for idx, item := range items {
		specs[idx] = string(item.spec)
	}
	return specs
}
