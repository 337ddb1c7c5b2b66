// SPDX-License-Identifier: MPL-2.0

package cueutil

import (
	"strings"
	"testing"
)

var testSchema = []byte(`
#Entry: {
	spec: string & !=""
	tags?: [...string]
}

#Doc: {
	name: string
	entries: [...#Entry]
	limit?: int & >=0
}
`)

type testDoc struct {
	Name    string      `json:"name"`
	Entries []testEntry `json:"entries"`
	Limit   int         `json:"limit"`
}

type testEntry struct {
	Spec string   `json:"spec"`
	Tags []string `json:"tags"`
}

func TestParseAndDecode(t *testing.T) {
	t.Parallel()

	data := []byte(`
name: "demo"
entries: [{spec: "Pages/Index.razor"}, {spec: "Shared/Nav.razor", tags: ["nav"]}]
`)
	res, err := ParseAndDecode[testDoc](testSchema, data, "#Doc", WithFilename("demo.cue"))
	if err != nil {
		t.Fatalf("ParseAndDecode() error = %v", err)
	}
	if res.Value.Name != "demo" {
		t.Errorf("Name = %q, want demo", res.Value.Name)
	}
	if len(res.Value.Entries) != 2 || res.Value.Entries[1].Tags[0] != "nav" {
		t.Errorf("Entries = %+v", res.Value.Entries)
	}
	if !res.Unified.Exists() {
		t.Error("Unified value should exist")
	}
}

func TestParseAndDecode_JSON(t *testing.T) {
	t.Parallel()

	data := []byte(`{"name": "demo", "entries": [{"spec": "A.razor"}]}`)
	res, err := ParseAndDecode[testDoc](testSchema, data, "#Doc", WithFilename("demo.json"))
	if err != nil {
		t.Fatalf("ParseAndDecode() error = %v", err)
	}
	if got := res.Value.Entries[0].Spec; got != "A.razor" {
		t.Errorf("Spec = %q, want A.razor", got)
	}
}

func TestParseAndDecode_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		data    string
		opts    []Option
		wantSub string
	}{
		{
			name:    "syntax error",
			data:    `name: "demo`,
			wantSub: "demo.cue",
		},
		{
			name:    "empty spec",
			data:    `name: "demo", entries: [{spec: ""}]`,
			wantSub: "entries[0].spec",
		},
		{
			name:    "unknown field",
			data:    `name: "demo", entries: [], extra: 1`,
			wantSub: "extra",
		},
		{
			name:    "negative limit",
			data:    `name: "demo", entries: [], limit: -1`,
			wantSub: "limit",
		},
		{
			name:    "too large",
			data:    `name: "demo", entries: []`,
			opts:    []Option{WithMaxFileSize(4)},
			wantSub: "exceeds maximum",
		},
		{
			name:    "missing required field",
			data:    `entries: []`,
			wantSub: "name",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			opts := append([]Option{WithFilename("demo.cue")}, tt.opts...)
			_, err := ParseAndDecode[testDoc](testSchema, []byte(tt.data), "#Doc", opts...)
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.wantSub) {
				t.Errorf("error %q should contain %q", err.Error(), tt.wantSub)
			}
		})
	}
}

func TestParseAndDecode_MissingDefinition(t *testing.T) {
	t.Parallel()

	_, err := ParseAndDecode[testDoc](testSchema, []byte(`name: "x"`), "#Nope")
	if err == nil || !strings.Contains(err.Error(), "#Nope") {
		t.Fatalf("expected missing definition error, got %v", err)
	}
}

func TestDecodeMap(t *testing.T) {
	t.Parallel()

	data := []byte(`name: "demo", entries: []`)
	got, err := DecodeMap(testSchema, data, "#Doc", WithConcrete(false))
	if err != nil {
		t.Fatalf("DecodeMap() error = %v", err)
	}
	if got["name"] != "demo" {
		t.Errorf(`got["name"] = %v, want demo`, got["name"])
	}
	if _, ok := got["limit"]; ok {
		t.Error("optional fields that were not set should not be decoded")
	}
}

func TestDefaultFilename(t *testing.T) {
	t.Parallel()

	_, err := ParseAndDecode[testDoc](testSchema, []byte(`name: 1`), "#Doc")
	if err == nil || !strings.Contains(err.Error(), "<input>") {
		t.Fatalf("expected <input> placeholder in %v", err)
	}
}
