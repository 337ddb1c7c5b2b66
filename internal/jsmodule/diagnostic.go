// SPDX-License-Identifier: MPL-2.0

package jsmodule

import (
	"errors"
	"fmt"
)

const (
	// SeverityError marks a diagnostic that fails the run.
	SeverityError Severity = "error"
	// SeverityWarning marks an informational diagnostic.
	SeverityWarning Severity = "warning"

	// CodeTooManyComponentModules: a razor component has more than one module.
	CodeTooManyComponentModules DiagnosticCode = "BLAZOR105"
	// CodeTooManyViewModules: a razor view has more than one module.
	CodeTooManyViewModules DiagnosticCode = "RZ1007"
	// CodeUnmatchedModule: a module candidate was claimed by no item.
	CodeUnmatchedModule DiagnosticCode = "CORR106"
)

var (
	// ErrInvalidSeverity is the sentinel error wrapped by InvalidSeverityError.
	ErrInvalidSeverity = errors.New("invalid diagnostic severity")
	// ErrInvalidDiagnosticCode is the sentinel error wrapped by InvalidDiagnosticCodeError.
	ErrInvalidDiagnosticCode = errors.New("invalid diagnostic code")
)

type (
	// Severity represents diagnostic severity.
	Severity string

	// DiagnosticCode is the stable, machine-readable identifier of a diagnostic.
	DiagnosticCode string

	// InvalidSeverityError is returned when a Severity value is not recognized.
	InvalidSeverityError struct {
		Value Severity
	}

	// InvalidDiagnosticCodeError is returned when a DiagnosticCode value is not recognized.
	InvalidDiagnosticCodeError struct {
		Value DiagnosticCode
	}

	// Diagnostic is a structured matching diagnostic. It is returned to
	// callers and mirrored to the Logger so rendering stays a caller decision.
	Diagnostic struct {
		// Severity is the diagnostic level.
		Severity Severity `json:"severity" toml:"severity"`
		// Code is the stable diagnostic code (e.g., "BLAZOR105").
		Code DiagnosticCode `json:"code" toml:"code"`
		// Message is the human-readable description.
		Message string `json:"message" toml:"message"`
		// File is the spec of the item the diagnostic is about.
		File string `json:"file" toml:"file"`
		// Kind is the label of the item kind, empty for unmatched candidates.
		Kind string `json:"kind,omitempty" toml:"kind,omitempty"`
		// Paths lists the specs of the module candidates involved.
		Paths []string `json:"paths,omitempty" toml:"paths,omitempty"`
	}
)

// Error implements the error interface for InvalidSeverityError.
func (e *InvalidSeverityError) Error() string {
	return fmt.Sprintf("invalid diagnostic severity %q (valid: error, warning)", e.Value)
}

// Unwrap returns ErrInvalidSeverity for errors.Is() compatibility.
func (e *InvalidSeverityError) Unwrap() error { return ErrInvalidSeverity }

// String returns the string representation of the Severity.
func (s Severity) String() string { return string(s) }

// IsValid returns whether the Severity is one of the defined levels.
func (s Severity) IsValid() (bool, []error) {
	switch s {
	case SeverityError, SeverityWarning:
		return true, nil
	default:
		return false, []error{&InvalidSeverityError{Value: s}}
	}
}

// Error implements the error interface for InvalidDiagnosticCodeError.
func (e *InvalidDiagnosticCodeError) Error() string {
	return fmt.Sprintf("invalid diagnostic code %q", e.Value)
}

// Unwrap returns ErrInvalidDiagnosticCode for errors.Is() compatibility.
func (e *InvalidDiagnosticCodeError) Unwrap() error { return ErrInvalidDiagnosticCode }

// String returns the string representation of the DiagnosticCode.
func (c DiagnosticCode) String() string { return string(c) }

// IsValid returns whether the code is one of the built-in diagnostic codes.
func (c DiagnosticCode) IsValid() (bool, []error) {
	switch c {
	case CodeTooManyComponentModules, CodeTooManyViewModules, CodeUnmatchedModule:
		return true, nil
	default:
		return false, []error{&InvalidDiagnosticCodeError{Value: c}}
	}
}

// IsError reports whether the diagnostic fails the run.
func (d Diagnostic) IsError() bool { return d.Severity == SeverityError }
