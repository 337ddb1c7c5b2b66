// SPDX-License-Identifier: MPL-2.0

package jsmodule

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

const (
	// LabelRazorComponent labels razor component items.
	LabelRazorComponent = "RazorComponent"
	// LabelView labels razor view items.
	LabelView = "View"
)

// ErrInvalidKind is the sentinel error wrapped by InvalidKindError.
var ErrInvalidKind = errors.New("invalid kind")

type (
	// Kind describes one family of primary items and how module candidates
	// are associated with it.
	Kind struct {
		// Label names the kind in diagnostics. It is also the metadata name a
		// candidate uses to name its item explicitly.
		Label string
		// Entity is the human-readable item noun used in messages ("razor component").
		Entity string
		// Pattern is matched case-insensitively against the normalized
		// candidate path. It should capture the item path prefix.
		Pattern string
		// Replacement expands Pattern's captures into the implied item spec,
		// using regexp.Expand syntax ("$1.razor").
		Replacement string
		// TooManyCode is reported when an item of this kind has more than one module.
		TooManyCode DiagnosticCode
	}

	// InvalidKindError is returned when a Kind cannot be used for matching.
	InvalidKindError struct {
		Label  string
		Reason string
		Cause  error
	}

	compiledKind struct {
		Kind
		re *regexp.Regexp
	}
)

// Error implements the error interface for InvalidKindError.
func (e *InvalidKindError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("invalid kind %q: %s: %v", e.Label, e.Reason, e.Cause)
	}
	return fmt.Sprintf("invalid kind %q: %s", e.Label, e.Reason)
}

// Unwrap returns ErrInvalidKind for errors.Is() compatibility.
func (e *InvalidKindError) Unwrap() error { return ErrInvalidKind }

// RazorComponentKind returns the kind for razor components (*.razor).
func RazorComponentKind() Kind {
	return Kind{
		Label:       LabelRazorComponent,
		Entity:      "razor component",
		Pattern:     `(.*)\.razor\.js$`,
		Replacement: "$1.razor",
		TooManyCode: CodeTooManyComponentModules,
	}
}

// ViewKind returns the kind for razor views (*.cshtml).
func ViewKind() Kind {
	return Kind{
		Label:       LabelView,
		Entity:      "razor view",
		Pattern:     `(.*)\.cshtml\.js$`,
		Replacement: "$1.cshtml",
		TooManyCode: CodeTooManyViewModules,
	}
}

// DefaultKinds returns razor components followed by razor views.
func DefaultKinds() []Kind {
	return []Kind{RazorComponentKind(), ViewKind()}
}

// Validate checks that the kind is usable: a label, a compilable pattern,
// a replacement and a diagnostic code are required.
func (k Kind) Validate() error {
	_, err := k.compile()
	return err
}

func (k Kind) compile() (compiledKind, error) {
	if strings.TrimSpace(k.Label) == "" {
		return compiledKind{}, &InvalidKindError{Label: k.Label, Reason: "label must be non-empty"}
	}
	if k.Replacement == "" {
		return compiledKind{}, &InvalidKindError{Label: k.Label, Reason: "replacement must be non-empty"}
	}
	if strings.TrimSpace(string(k.TooManyCode)) == "" {
		return compiledKind{}, &InvalidKindError{Label: k.Label, Reason: "diagnostic code must be non-empty"}
	}
	re, err := regexp.Compile("(?i)" + k.Pattern)
	if err != nil {
		return compiledKind{}, &InvalidKindError{Label: k.Label, Reason: "pattern does not compile", Cause: err}
	}
	return compiledKind{Kind: k, re: re}, nil
}

// entity falls back to the label when no noun was configured.
func (k Kind) entity() string {
	if k.Entity != "" {
		return k.Entity
	}
	return k.Label
}

// infer applies the kind's pattern to a normalized path. A path the pattern
// does not match is returned unchanged.
func (ck compiledKind) infer(path string) string {
	return ck.re.ReplaceAllString(path, ck.Replacement)
}
