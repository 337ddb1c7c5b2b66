// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"

	"jsmod-cli/pkg/types"
)

// ExitError carries a non-zero exit code out of a RunE handler. Its message
// includes the suggestions of a wrapped issue.ActionableError, since it is
// what fang prints.
type ExitError struct {
	Code types.ExitCode
	Err  error

	verbose bool
}

// Error returns the formatted wrapped error, or the exit status when there
// is none.
func (e *ExitError) Error() string {
	if e.Err != nil {
		return formatErrorForDisplay(e.Err, e.verbose)
	}
	return fmt.Sprintf("exit status %d", e.Code)
}

// Unwrap returns the underlying error, if any.
func (e *ExitError) Unwrap() error {
	return e.Err
}

// fail wraps err in an ExitError with the App's verbosity.
func (a *App) fail(code types.ExitCode, err error) error {
	return &ExitError{Code: code, Err: err, verbose: a.verbose}
}
