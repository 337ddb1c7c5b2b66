// SPDX-License-Identifier: MPL-2.0

package taskitem

import (
	"errors"
	"slices"
	"testing"
)

func TestSpec_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		spec Spec
		want bool
	}{
		{"Pages/Counter.razor", true},
		{"x", true},
		{"", false},
		{" \t", false},
	}

	for _, tt := range tests {
		err := tt.spec.Validate()
		if (err == nil) != tt.want {
			t.Errorf("Spec(%q).Validate() = %v, wantValid %v", tt.spec, err, tt.want)
		}
		if !tt.want && !errors.Is(err, ErrInvalidItemSpec) {
			t.Errorf("Spec(%q).Validate() error should wrap ErrInvalidItemSpec, got %v", tt.spec, err)
		}
	}
}

func TestItem_MetadataIsCaseInsensitive(t *testing.T) {
	t.Parallel()

	item := New("a.razor.js", map[string]string{"RelativePath": "a.razor.js"})

	if got := item.Metadata("relativepath"); got != "a.razor.js" {
		t.Errorf("Metadata(relativepath) = %q, want %q", got, "a.razor.js")
	}
	if got := item.RelativePath(); got != "a.razor.js" {
		t.Errorf("RelativePath() = %q, want %q", got, "a.razor.js")
	}
	if got := item.Metadata("Missing"); got != "" {
		t.Errorf("Metadata(Missing) = %q, want empty", got)
	}
}

func TestItem_WithMetadataCopies(t *testing.T) {
	t.Parallel()

	original := New("a.razor", map[string]string{"jsmodule": "old"})
	updated := original.WithMetadata(MetadataJSModule, "new")

	if got := original.JSModule(); got != "old" {
		t.Errorf("original JSModule() = %q, want %q", got, "old")
	}
	if got := updated.JSModule(); got != "new" {
		t.Errorf("updated JSModule() = %q, want %q", got, "new")
	}
	if names := updated.MetadataNames(); !slices.Equal(names, []string{MetadataJSModule}) {
		t.Errorf("updated MetadataNames() = %v, want [%s]", names, MetadataJSModule)
	}
}

func TestItem_HasMetadata(t *testing.T) {
	t.Parallel()

	item := New("a.js", map[string]string{"View": "   ", "RazorComponent": "a.razor"})

	if item.HasMetadata("View") {
		t.Error("HasMetadata(View) = true for blank value, want false")
	}
	if !item.HasMetadata("razorcomponent") {
		t.Error("HasMetadata(razorcomponent) = false, want true")
	}
}

func TestNew_CopiesInputMap(t *testing.T) {
	t.Parallel()

	md := map[string]string{"JSModule": "m"}
	item := New("a.js", md)
	md["JSModule"] = "mutated"

	if got := item.JSModule(); got != "m" {
		t.Errorf("JSModule() = %q after caller mutation, want %q", got, "m")
	}
	out := item.MetadataMap()
	out["JSModule"] = "mutated"
	if got := item.JSModule(); got != "m" {
		t.Errorf("JSModule() = %q after MetadataMap mutation, want %q", got, "m")
	}
}

func TestSpecs(t *testing.T) {
	t.Parallel()

	items := []Item{New("b", nil), New("a", nil)}
	if got := Specs(items); !slices.Equal(got, []string{"b", "a"}) {
		t.Errorf("Specs() = %v, want [b a]", got)
	}
}
