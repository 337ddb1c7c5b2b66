// SPDX-License-Identifier: MPL-2.0

package config

import (
	"context"
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/spf13/viper"

	"jsmod-cli/internal/issue"
	"jsmod-cli/pkg/cueutil"
	"jsmod-cli/pkg/platform"
	"jsmod-cli/pkg/types"
)

const (
	// AppName is the application name.
	AppName = "jsmod"
	// ConfigFileName is the name of the config file (without extension).
	ConfigFileName = "config"
	// ConfigFileExt is the config file extension.
	ConfigFileExt = "cue"
	// EnvPrefix prefixes environment overrides (JSMOD_UI_VERBOSE).
	EnvPrefix = "JSMOD"
)

//go:embed config_schema.cue
var configSchema []byte

// ConfigDir returns the jsmod configuration directory: %APPDATA% on Windows,
// ~/Library/Application Support on macOS and $XDG_CONFIG_HOME (default
// ~/.config) elsewhere.
//
//nolint:revive // ConfigDir reads better than Dir at call sites
func ConfigDir() (string, error) {
	if configDirOverride != "" {
		return configDirOverride, nil
	}

	var configDir string

	switch runtime.GOOS {
	case platform.Windows:
		configDir = os.Getenv("APPDATA")
		if configDir == "" {
			configDir = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
	case platform.Darwin:
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		configDir = filepath.Join(home, "Library", "Application Support")
	default:
		configDir = os.Getenv("XDG_CONFIG_HOME")
		if configDir == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return "", fmt.Errorf("failed to get home directory: %w", err)
			}
			configDir = filepath.Join(home, ".config")
		}
	}

	return filepath.Join(configDir, AppName), nil
}

// DefaultConfigPath returns the path of config.cue inside ConfigDir.
func DefaultConfigPath() (string, error) {
	cfgDir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(cfgDir, ConfigFileName+"."+ConfigFileExt), nil
}

func loadWithOptions(ctx context.Context, opts LoadOptions) (*Config, error) {
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("load config canceled: %w", ctx.Err())
	default:
	}

	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	defaults := DefaultConfig()
	v.SetDefault("ui.verbose", defaults.UI.Verbose)
	v.SetDefault("ui.format", string(defaults.UI.Format))
	v.SetDefault("ui.color_scheme", string(defaults.UI.ColorScheme))
	v.SetDefault("apply.filter_conflicting", defaults.Apply.FilterConflicting)
	v.SetDefault("apply.path_style", string(defaults.Apply.PathStyle))
	v.SetDefault("kinds", []map[string]any{})

	path, err := resolveConfigPath(opts)
	if err != nil {
		return nil, err
	}

	if path != "" {
		if err := loadCUEIntoViper(v, path); err != nil {
			return nil, issue.NewErrorContext().
				WithOperation("load configuration").
				WithResource(path).
				WithSuggestion("Check that the file contains valid CUE syntax").
				WithSuggestion("Verify the values match the schema shown by 'jsmod config dump --schema'").
				Wrap(err).
				BuildError()
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	cfg.Source = types.FilesystemPath(path)

	// Environment overrides bypass the CUE schema, so check again.
	if valid, errs := cfg.IsValid(); !valid {
		ec := issue.NewErrorContext().
			WithOperation("validate configuration").
			WithSuggestion("Check JSMOD_* environment variables for typos").
			WithSuggestion("Run 'jsmod config show' to see the effective configuration")
		if path != "" {
			ec = ec.WithResource(path)
		}
		return nil, ec.Wrap(joinFieldErrors(errs)).BuildError()
	}

	return &cfg, nil
}

// resolveConfigPath picks the config file to read: the explicit path, then
// config.cue in the config directory, then ./config.cue. An empty result
// means defaults only.
func resolveConfigPath(opts LoadOptions) (string, error) {
	if opts.ConfigFilePath != "" {
		path := string(opts.ConfigFilePath)
		if !fileExists(path) {
			return "", issue.NewErrorContext().
				WithOperation("load configuration").
				WithResource(path).
				WithSuggestion("Verify the file path is correct").
				WithSuggestion("Run 'jsmod config init' to create a default configuration").
				Wrap(fmt.Errorf("config file not found: %s", path)).
				BuildError()
		}
		return path, nil
	}

	cfgDir := string(opts.ConfigDirPath)
	if cfgDir == "" {
		var err error
		if cfgDir, err = ConfigDir(); err != nil {
			return "", err
		}
	}

	name := ConfigFileName + "." + ConfigFileExt
	if p := filepath.Join(cfgDir, name); fileExists(p) {
		return p, nil
	}
	if fileExists(name) {
		return name, nil
	}
	return "", nil
}

// loadCUEIntoViper validates a CUE config file against #Config and merges
// it into v, keeping defaults for unset keys.
func loadCUEIntoViper(v *viper.Viper, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	configMap, err := cueutil.DecodeMap(configSchema, data, "#Config",
		cueutil.WithFilename(path),
		cueutil.WithConcrete(false))
	if err != nil {
		return err
	}

	if err := v.MergeConfigMap(configMap); err != nil {
		return fmt.Errorf("failed to merge config: %w", err)
	}
	return nil
}

func joinFieldErrors(errs []error) error {
	msgs := make([]string, 0, len(errs))
	for _, err := range errs {
		msgs = append(msgs, flattenFieldErrors(err)...)
	}
	return fmt.Errorf("%w: %s", errs[0], strings.Join(msgs, "; "))
}

// flattenFieldErrors expands nested field error collections into their
// leaf messages.
func flattenFieldErrors(err error) []string {
	var nested []error
	switch e := err.(type) {
	case *InvalidConfigError:
		nested = e.FieldErrors
	case *InvalidUIConfigError:
		nested = e.FieldErrors
	case *InvalidApplyConfigError:
		nested = e.FieldErrors
	default:
		return []string{err.Error()}
	}
	var out []string
	for _, n := range nested {
		out = append(out, flattenFieldErrors(n)...)
	}
	return out
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// CreateDefaultConfig writes a default config.cue into ConfigDir unless one
// exists. It returns the path and whether a file was written.
func CreateDefaultConfig() (string, bool, error) {
	cfgPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}

	if fileExists(cfgPath) {
		return cfgPath, false, nil
	}

	if err := os.MkdirAll(filepath.Dir(cfgPath), 0o755); err != nil {
		return "", false, fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := os.WriteFile(cfgPath, []byte(GenerateCUE(DefaultConfig())), 0o644); err != nil {
		return "", false, fmt.Errorf("failed to write config file: %w", err)
	}
	return cfgPath, true, nil
}

// Schema returns the embedded CUE schema.
func Schema() string { return string(configSchema) }

// GenerateCUE renders cfg as a config.cue file.
func GenerateCUE(cfg *Config) string {
	var sb strings.Builder

	sb.WriteString("// jsmod configuration file\n")
	sb.WriteString("// Run 'jsmod config dump --schema' for every supported field.\n\n")

	sb.WriteString("ui: {\n")
	fmt.Fprintf(&sb, "\tverbose: %v\n", cfg.UI.Verbose)
	fmt.Fprintf(&sb, "\tformat: %q\n", cfg.UI.Format)
	fmt.Fprintf(&sb, "\tcolor_scheme: %q\n", cfg.UI.ColorScheme)
	sb.WriteString("}\n")

	sb.WriteString("\napply: {\n")
	fmt.Fprintf(&sb, "\tfilter_conflicting: %v\n", cfg.Apply.FilterConflicting)
	fmt.Fprintf(&sb, "\tpath_style: %q\n", cfg.Apply.PathStyle)
	sb.WriteString("}\n")

	if len(cfg.Kinds) > 0 {
		sb.WriteString("\nkinds: [\n")
		for _, k := range cfg.Kinds {
			fields := []string{fmt.Sprintf("label: %q", k.Label)}
			if k.Entity != "" {
				fields = append(fields, fmt.Sprintf("entity: %q", k.Entity))
			}
			if k.Pattern != "" {
				fields = append(fields, fmt.Sprintf("pattern: %q", k.Pattern))
			}
			if k.Replacement != "" {
				fields = append(fields, fmt.Sprintf("replacement: %q", k.Replacement))
			}
			if k.TooManyCode != "" {
				fields = append(fields, fmt.Sprintf("too_many_code: %q", k.TooManyCode))
			}
			fmt.Fprintf(&sb, "\t{%s},\n", strings.Join(fields, ", "))
		}
		sb.WriteString("]\n")
	}

	return sb.String()
}
