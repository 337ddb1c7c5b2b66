// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"fmt"
	"strings"

	"jsmod-cli/internal/jsmodule"
	"jsmod-cli/pkg/platform"
	"jsmod-cli/pkg/types"
)

const (
	// ColorSchemeAuto detects the terminal color scheme automatically.
	ColorSchemeAuto ColorScheme = "auto"
	// ColorSchemeDark forces dark color scheme.
	ColorSchemeDark ColorScheme = "dark"
	// ColorSchemeLight forces light color scheme.
	ColorSchemeLight ColorScheme = "light"
)

var (
	// ErrInvalidColorScheme is returned when a ColorScheme value is not recognized.
	ErrInvalidColorScheme = errors.New("invalid color scheme")
	// ErrInvalidUIConfig is the sentinel error wrapped by InvalidUIConfigError.
	ErrInvalidUIConfig = errors.New("invalid UI config")
	// ErrInvalidApplyConfig is the sentinel error wrapped by InvalidApplyConfigError.
	ErrInvalidApplyConfig = errors.New("invalid apply config")
	// ErrInvalidKindConfig is the sentinel error wrapped by InvalidKindConfigError.
	ErrInvalidKindConfig = errors.New("invalid kind config")
	// ErrInvalidConfig is the sentinel error wrapped by InvalidConfigError.
	ErrInvalidConfig = errors.New("invalid config")
)

type (
	// ColorScheme specifies the terminal color scheme preference.
	ColorScheme string

	// InvalidColorSchemeError is returned when a ColorScheme value is not recognized.
	InvalidColorSchemeError struct {
		Value ColorScheme
	}

	// InvalidUIConfigError collects the field errors of a UIConfig.
	InvalidUIConfigError struct {
		FieldErrors []error
	}

	// InvalidApplyConfigError collects the field errors of an ApplyConfig.
	InvalidApplyConfigError struct {
		FieldErrors []error
	}

	// InvalidKindConfigError reports a kind entry that cannot be turned into
	// a matcher kind.
	InvalidKindConfigError struct {
		Index  int
		Label  string
		Reason string
	}

	// InvalidConfigError collects the field errors of a Config.
	InvalidConfigError struct {
		FieldErrors []error
	}

	// Config holds the application configuration.
	Config struct {
		// UI configures output rendering.
		UI UIConfig `json:"ui" mapstructure:"ui"`
		// Apply configures the matcher.
		Apply ApplyConfig `json:"apply" mapstructure:"apply"`
		// Kinds overrides built-in kinds or adds new ones.
		Kinds []KindConfig `json:"kinds" mapstructure:"kinds"`

		// Source is the file the configuration was read from, empty when
		// only defaults applied.
		Source types.FilesystemPath `json:"-" mapstructure:"-"`
	}

	// UIConfig configures the user interface.
	UIConfig struct {
		// Verbose lowers the log level to debug.
		Verbose bool `json:"verbose" mapstructure:"verbose"`
		// Format is the default output format of apply.
		Format types.OutputFormat `json:"format" mapstructure:"format"`
		// ColorScheme selects the markdown style of explain.
		ColorScheme ColorScheme `json:"color_scheme" mapstructure:"color_scheme"`
	}

	// ApplyConfig configures matching.
	ApplyConfig struct {
		// FilterConflicting drops the modules of items that matched more than one.
		FilterConflicting bool `json:"filter_conflicting" mapstructure:"filter_conflicting"`
		// PathStyle selects the separator convention for candidate paths.
		PathStyle platform.PathStyle `json:"path_style" mapstructure:"path_style"`
	}

	// KindConfig is one kind entry.
	KindConfig struct {
		Label       string `json:"label" mapstructure:"label"`
		Entity      string `json:"entity,omitempty" mapstructure:"entity"`
		Pattern     string `json:"pattern,omitempty" mapstructure:"pattern"`
		Replacement string `json:"replacement,omitempty" mapstructure:"replacement"`
		TooManyCode string `json:"too_many_code,omitempty" mapstructure:"too_many_code"`
	}
)

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		UI: UIConfig{
			Verbose:     false,
			Format:      "",
			ColorScheme: ColorSchemeAuto,
		},
		Apply: ApplyConfig{
			FilterConflicting: false,
			PathStyle:         platform.PathStyleAuto,
		},
		Kinds: []KindConfig{},
	}
}

// MatcherKinds returns the built-in kinds with the configured overrides
// applied, followed by the added kinds in configuration order.
func (c *Config) MatcherKinds() ([]jsmodule.Kind, error) {
	kinds := jsmodule.DefaultKinds()
	seen := make(map[string]int, len(c.Kinds))

	for i, kc := range c.Kinds {
		key := strings.ToLower(kc.Label)
		if first, dup := seen[key]; dup {
			return nil, &InvalidKindConfigError{
				Index:  i,
				Label:  kc.Label,
				Reason: fmt.Sprintf("duplicate label (first at kinds[%d])", first),
			}
		}
		seen[key] = i

		idx := builtinIndex(kinds, kc.Label)
		if idx < 0 {
			k := kc.overlay(jsmodule.Kind{Label: kc.Label})
			if k.Pattern == "" || k.Replacement == "" || k.TooManyCode == "" {
				return nil, &InvalidKindConfigError{
					Index:  i,
					Label:  kc.Label,
					Reason: "a new kind needs pattern, replacement and too_many_code",
				}
			}
			kinds = append(kinds, k)
			idx = len(kinds) - 1
		} else {
			kinds[idx] = kc.overlay(kinds[idx])
		}

		if err := kinds[idx].Validate(); err != nil {
			return nil, &InvalidKindConfigError{Index: i, Label: kc.Label, Reason: err.Error()}
		}
	}
	return kinds, nil
}

func builtinIndex(kinds []jsmodule.Kind, label string) int {
	for i, k := range kinds {
		if strings.EqualFold(k.Label, label) {
			return i
		}
	}
	return -1
}

// overlay returns base with every field kc sets replaced.
func (kc KindConfig) overlay(base jsmodule.Kind) jsmodule.Kind {
	if kc.Entity != "" {
		base.Entity = kc.Entity
	}
	if kc.Pattern != "" {
		base.Pattern = kc.Pattern
	}
	if kc.Replacement != "" {
		base.Replacement = kc.Replacement
	}
	if kc.TooManyCode != "" {
		base.TooManyCode = jsmodule.DiagnosticCode(kc.TooManyCode)
	}
	return base
}

// IsValid returns whether the Config has valid fields.
func (c Config) IsValid() (bool, []error) {
	var errs []error
	if valid, fieldErrs := c.UI.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if valid, fieldErrs := c.Apply.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if _, err := c.MatcherKinds(); err != nil {
		errs = append(errs, err)
	}
	if len(errs) > 0 {
		return false, []error{&InvalidConfigError{FieldErrors: errs}}
	}
	return true, nil
}

// IsValid returns whether the UIConfig has valid fields.
func (c UIConfig) IsValid() (bool, []error) {
	var errs []error
	if valid, fieldErrs := c.Format.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if valid, fieldErrs := c.ColorScheme.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if len(errs) > 0 {
		return false, []error{&InvalidUIConfigError{FieldErrors: errs}}
	}
	return true, nil
}

// IsValid returns whether the ApplyConfig has valid fields.
func (c ApplyConfig) IsValid() (bool, []error) {
	if valid, fieldErrs := c.PathStyle.IsValid(); !valid {
		return false, []error{&InvalidApplyConfigError{FieldErrors: fieldErrs}}
	}
	return true, nil
}

// String returns the string representation of the ColorScheme.
func (cs ColorScheme) String() string { return string(cs) }

// IsValid returns whether the ColorScheme is one of the defined color schemes.
func (cs ColorScheme) IsValid() (bool, []error) {
	switch cs {
	case ColorSchemeAuto, ColorSchemeDark, ColorSchemeLight:
		return true, nil
	default:
		return false, []error{&InvalidColorSchemeError{Value: cs}}
	}
}

// Error implements the error interface for InvalidColorSchemeError.
func (e *InvalidColorSchemeError) Error() string {
	return fmt.Sprintf("invalid color scheme %q (valid: auto, dark, light)", e.Value)
}

// Unwrap returns ErrInvalidColorScheme for errors.Is() compatibility.
func (e *InvalidColorSchemeError) Unwrap() error { return ErrInvalidColorScheme }

// Error implements the error interface for InvalidUIConfigError.
func (e *InvalidUIConfigError) Error() string {
	return fmt.Sprintf("invalid UI config: %d field error(s)", len(e.FieldErrors))
}

// Unwrap returns ErrInvalidUIConfig for errors.Is() compatibility.
func (e *InvalidUIConfigError) Unwrap() error { return ErrInvalidUIConfig }

// Error implements the error interface for InvalidApplyConfigError.
func (e *InvalidApplyConfigError) Error() string {
	return fmt.Sprintf("invalid apply config: %d field error(s)", len(e.FieldErrors))
}

// Unwrap returns ErrInvalidApplyConfig for errors.Is() compatibility.
func (e *InvalidApplyConfigError) Unwrap() error { return ErrInvalidApplyConfig }

// Error implements the error interface for InvalidKindConfigError.
func (e *InvalidKindConfigError) Error() string {
	return fmt.Sprintf("kinds[%d] (%s): %s", e.Index, e.Label, e.Reason)
}

// Unwrap returns ErrInvalidKindConfig for errors.Is() compatibility.
func (e *InvalidKindConfigError) Unwrap() error { return ErrInvalidKindConfig }

// Error implements the error interface for InvalidConfigError.
func (e *InvalidConfigError) Error() string {
	return fmt.Sprintf("invalid config: %d field error(s)", len(e.FieldErrors))
}

// Unwrap returns ErrInvalidConfig for errors.Is() compatibility.
func (e *InvalidConfigError) Unwrap() error { return ErrInvalidConfig }
