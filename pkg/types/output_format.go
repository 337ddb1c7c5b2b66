// SPDX-License-Identifier: MPL-2.0

package types

import (
	"errors"
	"fmt"
)

const (
	// OutputFormatText prints one matched module per line.
	OutputFormatText OutputFormat = "text"
	// OutputFormatTable prints matched modules as a table.
	OutputFormatTable OutputFormat = "table"
	// OutputFormatJSON encodes the full result as JSON.
	OutputFormatJSON OutputFormat = "json"
	// OutputFormatTOML encodes the full result as TOML.
	OutputFormatTOML OutputFormat = "toml"
)

// ErrInvalidOutputFormat is the sentinel error wrapped by InvalidOutputFormatError.
var ErrInvalidOutputFormat = errors.New("invalid output format")

type (
	// OutputFormat selects how a matching result is rendered.
	// The zero value ("") means "pick a default for the destination".
	OutputFormat string

	// InvalidOutputFormatError is returned when an OutputFormat value is not recognized.
	InvalidOutputFormatError struct {
		Value OutputFormat
	}
)

// Error implements the error interface for InvalidOutputFormatError.
func (e *InvalidOutputFormatError) Error() string {
	return fmt.Sprintf("invalid output format %q (valid: text, table, json, toml)", e.Value)
}

// Unwrap returns ErrInvalidOutputFormat for errors.Is() compatibility.
func (e *InvalidOutputFormatError) Unwrap() error { return ErrInvalidOutputFormat }

// String returns the string representation of the OutputFormat.
func (f OutputFormat) String() string { return string(f) }

// IsValid returns whether the OutputFormat is a known format or the zero value.
func (f OutputFormat) IsValid() (bool, []error) {
	switch f {
	case "", OutputFormatText, OutputFormatTable, OutputFormatJSON, OutputFormatTOML:
		return true, nil
	default:
		return false, []error{&InvalidOutputFormatError{Value: f}}
	}
}
