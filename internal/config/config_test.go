// SPDX-License-Identifier: MPL-2.0

package config

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"jsmod-cli/internal/issue"
	"jsmod-cli/internal/jsmodule"
	"jsmod-cli/pkg/platform"
	"jsmod-cli/pkg/types"
)

func writeConfig(t *testing.T, dir, content string) string {
	t.Helper()

	path := filepath.Join(dir, ConfigFileName+"."+ConfigFileExt)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return path
}

func TestLoad_DefaultsWhenNoFile(t *testing.T) {
	t.Parallel()

	cfg, err := NewProvider().Load(t.Context(), LoadOptions{ConfigDirPath: types.FilesystemPath(t.TempDir())})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	want := DefaultConfig()
	if cfg.UI != want.UI || cfg.Apply != want.Apply {
		t.Errorf("Load() = %+v, want defaults %+v", cfg, want)
	}
	if cfg.Source != "" {
		t.Errorf("Source = %q, want empty", cfg.Source)
	}
}

func TestLoad_FromConfigDir(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := writeConfig(t, dir, `
ui: {format: "toml", color_scheme: "dark"}
apply: {filter_conflicting: true, path_style: "windows"}
`)

	cfg, err := NewProvider().Load(t.Context(), LoadOptions{ConfigDirPath: types.FilesystemPath(dir)})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.UI.Format != types.OutputFormatTOML {
		t.Errorf("UI.Format = %q, want toml", cfg.UI.Format)
	}
	if cfg.UI.ColorScheme != ColorSchemeDark {
		t.Errorf("UI.ColorScheme = %q, want dark", cfg.UI.ColorScheme)
	}
	if cfg.UI.Verbose {
		t.Error("UI.Verbose should keep its default")
	}
	if !cfg.Apply.FilterConflicting || cfg.Apply.PathStyle != platform.PathStyleWindows {
		t.Errorf("Apply = %+v", cfg.Apply)
	}
	if string(cfg.Source) != path {
		t.Errorf("Source = %q, want %q", cfg.Source, path)
	}
}

func TestLoad_ExplicitFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "custom.cue")
	if err := os.WriteFile(path, []byte(`ui: verbose: true`), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := NewProvider().Load(t.Context(), LoadOptions{ConfigFilePath: types.FilesystemPath(path)})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if !cfg.UI.Verbose {
		t.Error("UI.Verbose should be true")
	}
}

func TestLoad_ExplicitFileMissing(t *testing.T) {
	t.Parallel()

	missing := filepath.Join(t.TempDir(), "nope.cue")
	_, err := NewProvider().Load(t.Context(), LoadOptions{ConfigFilePath: types.FilesystemPath(missing)})
	if err == nil {
		t.Fatal("expected error")
	}

	var actionable *issue.ActionableError
	if !errors.As(err, &actionable) {
		t.Fatalf("error should be *issue.ActionableError, got %T", err)
	}
	if actionable.Resource != missing {
		t.Errorf("Resource = %q, want %q", actionable.Resource, missing)
	}
	if len(actionable.Suggestions) == 0 {
		t.Error("expected suggestions")
	}
}

func TestLoad_SchemaViolations(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		wantSub string
	}{
		{"bad format", `ui: format: "yaml"`, "ui.format"},
		{"bad path style", `apply: path_style: "dos"`, "apply.path_style"},
		{"unknown field", `extra: 1`, "extra"},
		{"wrong type", `ui: verbose: "yes"`, "ui.verbose"},
		{"bad kind label", `kinds: [{label: "9x"}]`, "kinds[0].label"},
		{"syntax", `ui: {`, "config.cue"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			dir := t.TempDir()
			writeConfig(t, dir, tt.content)

			_, err := NewProvider().Load(t.Context(), LoadOptions{ConfigDirPath: types.FilesystemPath(dir)})
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.wantSub) {
				t.Errorf("error %q should contain %q", err.Error(), tt.wantSub)
			}
		})
	}
}

func TestLoad_KindOverrides(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeConfig(t, dir, `
kinds: [
	{label: "View", replacement: "$1.vbhtml", pattern: "(.*)\\.vbhtml\\.js$"},
	{label: "Page", entity: "razor page", pattern: "(.*)\\.page\\.js$", replacement: "$1.page", too_many_code: "PG0001"},
]
`)

	cfg, err := NewProvider().Load(t.Context(), LoadOptions{ConfigDirPath: types.FilesystemPath(dir)})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	kinds, err := cfg.MatcherKinds()
	if err != nil {
		t.Fatalf("MatcherKinds() error = %v", err)
	}
	if len(kinds) != 3 {
		t.Fatalf("len(kinds) = %d, want 3", len(kinds))
	}
	if kinds[1].Label != jsmodule.LabelView || kinds[1].Replacement != "$1.vbhtml" {
		t.Errorf("View override not applied: %+v", kinds[1])
	}
	if kinds[1].TooManyCode != jsmodule.CodeTooManyViewModules {
		t.Errorf("View override should keep its code, got %q", kinds[1].TooManyCode)
	}
	if kinds[2].Label != "Page" || kinds[2].TooManyCode != "PG0001" {
		t.Errorf("added kind = %+v", kinds[2])
	}
}

func TestLoad_EnvOverride(t *testing.T) {
	// t.Setenv is incompatible with t.Parallel.
	t.Setenv("JSMOD_UI_VERBOSE", "true")
	t.Setenv("JSMOD_APPLY_PATH_STYLE", "unix")

	cfg, err := NewProvider().Load(context.Background(), LoadOptions{ConfigDirPath: types.FilesystemPath(t.TempDir())})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if !cfg.UI.Verbose {
		t.Error("JSMOD_UI_VERBOSE should enable verbose")
	}
	if cfg.Apply.PathStyle != platform.PathStyleUnix {
		t.Errorf("PathStyle = %q, want unix", cfg.Apply.PathStyle)
	}
}

func TestLoad_EnvOverrideInvalid(t *testing.T) {
	t.Setenv("JSMOD_UI_FORMAT", "yaml")

	_, err := NewProvider().Load(context.Background(), LoadOptions{ConfigDirPath: types.FilesystemPath(t.TempDir())})
	if !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("error = %v, want ErrInvalidConfig", err)
	}
	if !errors.Is(err, types.ErrInvalidOutputFormat) && !strings.Contains(err.Error(), "yaml") {
		t.Errorf("error should name the bad value, got %q", err.Error())
	}
}

func TestLoad_Canceled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(t.Context())
	cancel()

	if _, err := NewProvider().Load(ctx, LoadOptions{}); !errors.Is(err, context.Canceled) {
		t.Errorf("error = %v, want context.Canceled", err)
	}
}

func TestLoadOptions_Validate(t *testing.T) {
	t.Parallel()

	if err := (LoadOptions{}).Validate(); err != nil {
		t.Errorf("empty options should be valid, got %v", err)
	}

	err := LoadOptions{ConfigFilePath: "  ", ConfigDirPath: "\t"}.Validate()
	if !errors.Is(err, ErrInvalidLoadOptions) {
		t.Fatalf("error = %v, want ErrInvalidLoadOptions", err)
	}
	var optsErr *InvalidLoadOptionsError
	if !errors.As(err, &optsErr) || len(optsErr.FieldErrors) != 2 {
		t.Errorf("expected 2 field errors, got %v", err)
	}
}

func TestCreateDefaultConfig(t *testing.T) {
	dir := t.TempDir()
	SetConfigDirOverride(dir)
	t.Cleanup(Reset)

	path, created, err := CreateDefaultConfig()
	if err != nil {
		t.Fatalf("CreateDefaultConfig() error = %v", err)
	}
	if !created || path != filepath.Join(dir, "config.cue") {
		t.Errorf("CreateDefaultConfig() = %q, %v", path, created)
	}

	// The generated file must load back to the defaults.
	cfg, err := NewProvider().Load(t.Context(), LoadOptions{})
	if err != nil {
		t.Fatalf("Load() of generated config error = %v", err)
	}
	if cfg.UI != DefaultConfig().UI || string(cfg.Source) != path {
		t.Errorf("generated config loaded as %+v", cfg)
	}

	if _, created, err := CreateDefaultConfig(); err != nil || created {
		t.Errorf("second CreateDefaultConfig() = %v, %v; want no write", created, err)
	}
}

func TestGenerateCUE_RoundTrip(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	cfg.UI.Format = types.OutputFormatJSON
	cfg.Apply.PathStyle = platform.PathStyleWindows
	cfg.Kinds = []KindConfig{{Label: "Page", Pattern: `(.*)\.page\.js$`, Replacement: "$1.page", TooManyCode: "PG0001"}}

	dir := t.TempDir()
	writeConfig(t, dir, GenerateCUE(cfg))

	got, err := NewProvider().Load(t.Context(), LoadOptions{ConfigDirPath: types.FilesystemPath(dir)})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if got.UI != cfg.UI || got.Apply != cfg.Apply {
		t.Errorf("round trip = %+v, want %+v", got, cfg)
	}
	if len(got.Kinds) != 1 || got.Kinds[0] != cfg.Kinds[0] {
		t.Errorf("Kinds = %+v, want %+v", got.Kinds, cfg.Kinds)
	}
}

func TestConfigDir_Override(t *testing.T) {
	SetConfigDirOverride("/tmp/jsmod-test")
	t.Cleanup(Reset)

	got, err := ConfigDir()
	if err != nil || got != "/tmp/jsmod-test" {
		t.Errorf("ConfigDir() = %q, %v", got, err)
	}
}
