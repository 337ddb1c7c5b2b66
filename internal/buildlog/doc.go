// SPDX-License-Identifier: MPL-2.0

// Package buildlog provides the diagnostic sink used by matching passes.
//
// Sink writes diagnostics and trace messages through charmbracelet/log and
// remembers whether an error was logged, which is what decides the success
// of a build task run.
package buildlog
