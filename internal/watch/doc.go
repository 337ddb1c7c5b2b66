// SPDX-License-Identifier: MPL-2.0

// Package watch re-runs work when watched files change.
//
// A Watcher registers every non-ignored directory under a base directory
// with fsnotify, filters events through doublestar glob patterns, and calls
// OnChange once per debounce window with the changed paths.
package watch
