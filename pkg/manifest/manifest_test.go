// SPDX-License-Identifier: MPL-2.0

package manifest

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"jsmod-cli/pkg/taskitem"
	"jsmod-cli/pkg/types"
)

const cueManifest = `
items: {
	components: [{spec: "Pages/Counter.razor"}]
	views: [{spec: "Views/Home/Index.cshtml"}]
}
candidates: [{
	spec: "Pages/Counter.razor.js"
	metadata: {RelativePath: "Pages/Counter.razor.js", JSModule: "./Pages/Counter.razor.js"}
}, {
	spec: "Views/Home/Index.cshtml.js"
	metadata: {RelativePath: "Views/Home/Index.cshtml.js"}
}]
`

const jsonManifest = `{
  "items": {
    "components": [{"spec": "Pages/Counter.razor"}],
    "views": [{"spec": "Views/Home/Index.cshtml"}]
  },
  "candidates": [
    {"spec": "Pages/Counter.razor.js", "metadata": {"RelativePath": "Pages/Counter.razor.js", "JSModule": "./Pages/Counter.razor.js"}},
    {"spec": "Views/Home/Index.cshtml.js", "metadata": {"RelativePath": "Views/Home/Index.cshtml.js"}}
  ]
}`

const tomlManifest = `
[[items.components]]
spec = "Pages/Counter.razor"

[[items.views]]
spec = "Views/Home/Index.cshtml"

[[candidates]]
spec = "Pages/Counter.razor.js"
[candidates.metadata]
RelativePath = "Pages/Counter.razor.js"
JSModule = "./Pages/Counter.razor.js"

[[candidates]]
spec = "Views/Home/Index.cshtml.js"
[candidates.metadata]
RelativePath = "Views/Home/Index.cshtml.js"
`

func TestParse_FormatsAgree(t *testing.T) {
	t.Parallel()

	want := &Manifest{
		Items: map[string][]Entry{
			GroupComponents: {{Spec: "Pages/Counter.razor"}},
			GroupViews:      {{Spec: "Views/Home/Index.cshtml"}},
		},
		Candidates: []Entry{
			{Spec: "Pages/Counter.razor.js", Metadata: map[string]string{
				taskitem.MetadataRelativePath: "Pages/Counter.razor.js",
				taskitem.MetadataJSModule:     "./Pages/Counter.razor.js",
			}},
			{Spec: "Views/Home/Index.cshtml.js", Metadata: map[string]string{
				taskitem.MetadataRelativePath: "Views/Home/Index.cshtml.js",
			}},
		},
	}

	tests := []struct {
		name string
		file types.FilesystemPath
		data string
	}{
		{"cue", "jsmodules.cue", cueManifest},
		{"json", "jsmodules.json", jsonManifest},
		{"toml", "jsmodules.toml", tomlManifest},
		{"upper-case extension", "JSMODULES.TOML", tomlManifest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := Parse([]byte(tt.data), tt.file)
			if err != nil {
				t.Fatalf("Parse() error = %v", err)
			}
			if !reflect.DeepEqual(got, want) {
				t.Errorf("Parse() = %+v, want %+v", got, want)
			}
		})
	}
}

func TestParse_Invalid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		file    types.FilesystemPath
		data    string
		wantIs  error
		wantSub string
	}{
		{
			name:    "blank spec in cue",
			file:    "m.cue",
			data:    `candidates: [{spec: "  "}]`,
			wantSub: "candidates[0].spec",
		},
		{
			name:    "unknown top-level field",
			file:    "m.cue",
			data:    `targets: []`,
			wantSub: "targets",
		},
		{
			name:    "duplicate candidate",
			file:    "m.json",
			data:    `{"candidates": [{"spec": "a.razor.js"}, {"spec": "a.razor.js"}]}`,
			wantIs:  ErrInvalidManifest,
			wantSub: "candidates[1].spec",
		},
		{
			name:    "blank spec in toml",
			file:    "m.toml",
			data:    "[[items.components]]\nspec = \"\"\n",
			wantIs:  ErrInvalidManifest,
			wantSub: "items.components[0].spec",
		},
		{
			name:    "duplicate item in toml",
			file:    "m.toml",
			data:    "[[items.views]]\nspec = \"A.cshtml\"\n[[items.views]]\nspec = \"A.cshtml\"\n",
			wantIs:  ErrInvalidManifest,
			wantSub: "duplicate spec",
		},
		{
			name:    "toml syntax",
			file:    "m.toml",
			data:    "[[candidates]\n",
			wantSub: "m.toml",
		},
		{
			name:   "unsupported extension",
			file:   "m.yaml",
			data:   "candidates: []",
			wantIs: ErrUnsupportedFormat,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := Parse([]byte(tt.data), tt.file)
			if err == nil {
				t.Fatal("expected error")
			}
			if tt.wantIs != nil && !errors.Is(err, tt.wantIs) {
				t.Errorf("errors.Is(%v, %v) = false", err, tt.wantIs)
			}
			if tt.wantSub != "" && !strings.Contains(err.Error(), tt.wantSub) {
				t.Errorf("error %q should contain %q", err.Error(), tt.wantSub)
			}
		})
	}
}

func TestParse_EmptyManifest(t *testing.T) {
	t.Parallel()

	for _, name := range []types.FilesystemPath{"m.cue", "m.json", "m.toml"} {
		data := ""
		if name == "m.json" {
			data = "{}"
		}
		m, err := Parse([]byte(data), name)
		if err != nil {
			t.Fatalf("Parse(%s) error = %v", name, err)
		}
		if len(m.Items) != 0 || len(m.Candidates) != 0 {
			t.Errorf("Parse(%s) = %+v, want empty", name, m)
		}
	}
}

func TestLoad(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "jsmodules.cue")
	if err := os.WriteFile(path, []byte(cueManifest), 0o644); err != nil {
		t.Fatal(err)
	}

	m, err := Load(types.FilesystemPath(path))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if got := m.Groups(); !reflect.DeepEqual(got, []string{GroupComponents, GroupViews}) {
		t.Errorf("Groups() = %v", got)
	}

	if _, err := Load(types.FilesystemPath(filepath.Join(dir, "missing.cue"))); err == nil {
		t.Error("Load() of a missing file should fail")
	}
	if _, err := Load(""); !errors.Is(err, types.ErrInvalidFilesystemPath) {
		t.Errorf("Load(\"\") error = %v, want ErrInvalidFilesystemPath", err)
	}
}

func TestEntryConversion(t *testing.T) {
	t.Parallel()

	entries := []Entry{
		{Spec: "a.razor.js", Metadata: map[string]string{taskitem.MetadataJSModule: "./a.razor.js"}},
		{Spec: "b.razor"},
	}
	items := Items(entries)
	if items[0].JSModule() != "./a.razor.js" {
		t.Errorf("JSModule() = %q", items[0].JSModule())
	}
	if got := Entries(items); !reflect.DeepEqual(got, entries) {
		t.Errorf("Entries(Items(x)) = %+v, want %+v", got, entries)
	}
}
