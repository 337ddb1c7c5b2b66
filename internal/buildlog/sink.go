// SPDX-License-Identifier: MPL-2.0

package buildlog

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"jsmod-cli/internal/jsmodule"

	"github.com/charmbracelet/log"
)

// Prefix is the log prefix of every sink.
const Prefix = "jsmod"

type (
	// Options configures a Sink.
	Options struct {
		// Verbose lowers the level so normal and low importance messages show.
		Verbose bool
		// Quiet suppresses informational messages; errors are still written.
		Quiet bool
	}

	// Sink implements jsmodule.Logger on top of a charmbracelet logger.
	Sink struct {
		logger *log.Logger

		mu     sync.Mutex
		errors []jsmodule.Diagnostic
	}
)

var _ jsmodule.Logger = (*Sink)(nil)

// New creates a Sink writing to w.
func New(w io.Writer, opts Options) *Sink {
	level := log.InfoLevel
	switch {
	case opts.Quiet:
		level = log.ErrorLevel
	case opts.Verbose:
		level = log.DebugLevel
	}
	logger := log.NewWithOptions(w, log.Options{
		Prefix: Prefix,
		Level:  level,
	})
	return &Sink{logger: logger}
}

// LogError writes an error diagnostic and records it.
func (s *Sink) LogError(d jsmodule.Diagnostic) {
	s.mu.Lock()
	s.errors = append(s.errors, d)
	s.mu.Unlock()

	keyvals := []any{"code", d.Code, "file", d.File}
	if d.Kind != "" {
		keyvals = append(keyvals, "kind", d.Kind)
	}
	// The first line is the summary; the rest (matched paths) goes to a key.
	summary, rest, _ := strings.Cut(d.Message, "\n")
	if rest != "" {
		keyvals = append(keyvals, "paths", strings.Split(rest, "\n"))
	}
	s.logger.Error(summary, keyvals...)
}

// LogMessage writes an informational message at the level matching importance.
func (s *Sink) LogMessage(importance jsmodule.Importance, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	switch importance {
	case jsmodule.ImportanceHigh:
		s.logger.Info(msg)
	default:
		s.logger.Debug(msg)
	}
}

// HasLoggedErrors reports whether LogError was called.
func (s *Sink) HasLoggedErrors() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.errors) > 0
}

// Errors returns a copy of the logged error diagnostics.
func (s *Sink) Errors() []jsmodule.Diagnostic {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]jsmodule.Diagnostic(nil), s.errors...)
}
