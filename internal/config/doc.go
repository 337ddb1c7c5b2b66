// SPDX-License-Identifier: MPL-2.0

// Package config handles jsmod configuration using Viper with CUE as the file format.
//
// Configuration is loaded from the --config flag when given, otherwise from
// config.cue in the platform config directory ($XDG_CONFIG_HOME/jsmod on Linux,
// ~/Library/Application Support/jsmod on macOS, %APPDATA%\jsmod on Windows),
// then from ./config.cue. Environment variables prefixed with JSMOD_ override
// file values (JSMOD_UI_VERBOSE=true).
//
// Files are validated against the embedded config_schema.cue before they are
// merged into Viper.
package config
