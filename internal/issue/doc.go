// SPDX-License-Identifier: MPL-2.0

// Package issue provides user-facing error context and the Markdown guides
// shown by 'jsmod explain'.
//
// ActionableError carries what failed, on which resource, and what to try
// next. Guides are keyed by diagnostic code (BLAZOR105, RZ1007, CORR106) or
// by a failure key (manifest, config, interop) and are rendered with glamour.
package issue
