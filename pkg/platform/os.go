// SPDX-License-Identifier: MPL-2.0

package platform

import (
	"errors"
	"fmt"
	"runtime"
	"strings"
)

// OS name constants for runtime.GOOS comparisons.
// Centralizes the string literals to avoid scattered magic strings.
const (
	Windows = "windows"
	Darwin  = "darwin"
	Linux   = "linux"
)

const (
	// PathStyleAuto follows the separator convention of the host OS.
	PathStyleAuto PathStyle = "auto"
	// PathStyleUnix converts backslashes to forward slashes.
	PathStyleUnix PathStyle = "unix"
	// PathStyleWindows converts forward slashes to backslashes.
	PathStyleWindows PathStyle = "windows"
)

// ErrInvalidPathStyle is the sentinel error wrapped by InvalidPathStyleError.
var ErrInvalidPathStyle = errors.New("invalid path style")

type (
	// PathStyle selects the separator convention applied to item paths
	// before filename patterns are evaluated.
	PathStyle string

	// InvalidPathStyleError is returned when a PathStyle value is not recognized.
	InvalidPathStyleError struct {
		Value PathStyle
	}
)

// Error implements the error interface for InvalidPathStyleError.
func (e *InvalidPathStyleError) Error() string {
	return fmt.Sprintf("invalid path style %q (valid: auto, unix, windows)", e.Value)
}

// Unwrap returns ErrInvalidPathStyle for errors.Is() compatibility.
func (e *InvalidPathStyleError) Unwrap() error { return ErrInvalidPathStyle }

// String returns the string representation of the PathStyle.
func (s PathStyle) String() string { return string(s) }

// IsValid returns whether the PathStyle is one of the defined styles.
func (s PathStyle) IsValid() (bool, []error) {
	switch s {
	case PathStyleAuto, PathStyleUnix, PathStyleWindows:
		return true, nil
	default:
		return false, []error{&InvalidPathStyleError{Value: s}}
	}
}

// Resolve maps PathStyleAuto (and the zero value) to the concrete style of
// the given GOOS. Concrete styles are returned unchanged.
func (s PathStyle) Resolve(goos string) PathStyle {
	if s == PathStyleUnix || s == PathStyleWindows {
		return s
	}
	if goos == Windows {
		return PathStyleWindows
	}
	return PathStyleUnix
}

// NormalizeSeparators rewrites every separator in path to the convention of
// style. PathStyleAuto resolves against the running OS.
func NormalizeSeparators(path string, style PathStyle) string {
	if style.Resolve(runtime.GOOS) == PathStyleWindows {
		return strings.ReplaceAll(path, "/", `\`)
	}
	return strings.ReplaceAll(path, `\`, "/")
}
