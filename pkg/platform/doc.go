// SPDX-License-Identifier: MPL-2.0

// Package platform provides cross-platform compatibility utilities.
//
// It centralizes OS name constants and the path separator convention used
// when item paths coming from a build manifest are compared against
// filename patterns.
package platform
