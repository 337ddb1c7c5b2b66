// SPDX-License-Identifier: MPL-2.0

package jsmodule

const (
	// ImportanceHigh messages are shown at the default log level.
	ImportanceHigh Importance = iota
	// ImportanceNormal messages are shown in verbose mode.
	ImportanceNormal
	// ImportanceLow messages are trace output, shown in verbose mode.
	ImportanceLow
)

type (
	// Importance ranks informational log messages.
	Importance int

	// Logger is the diagnostic sink of a matching pass.
	Logger interface {
		// LogError records an error diagnostic.
		LogError(d Diagnostic)
		// LogMessage records an informational message.
		LogMessage(importance Importance, format string, args ...any)
	}

	nopLogger struct{}
)

func (nopLogger) LogError(Diagnostic)                   {}
func (nopLogger) LogMessage(Importance, string, ...any) {}
