// SPDX-License-Identifier: MPL-2.0

// Package taskitem models the items a build engine hands to a build task:
// an identifying item spec plus a bag of string metadata.
//
// Metadata names are case-insensitive, matching how build engines expose
// item metadata. Items are values; the With* methods return modified copies
// and never alias the receiver's metadata map.
package taskitem
