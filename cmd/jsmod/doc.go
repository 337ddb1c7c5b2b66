// SPDX-License-Identifier: MPL-2.0

// Package cmd contains the jsmod command line.
//
// Every command is built from an App, which carries the configuration
// provider and the standard streams, so tests can drive the command tree
// in-process.
package cmd
