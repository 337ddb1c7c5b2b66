// SPDX-License-Identifier: MPL-2.0

// Package jsmodule associates generated UI component items with the script
// module files that sit next to them.
//
// A Matcher is configured with an ordered list of Kinds (razor components,
// then razor views by default). For every primary item of every kind, in
// order, it scans the still-unmatched module candidates and claims the ones
// whose logical key equals the item spec, ignoring case. The logical key of a
// candidate is the value of its explicit metadata named after the kind label
// when that is non-blank, and otherwise the kind's filename pattern applied
// to the candidate's RelativePath.
//
// Claimed candidates leave the unmatched set immediately, so earlier items
// win over later ones. After the scan, items with more than one module and
// candidates nobody claimed are reported as error diagnostics. The result is
// always produced; callers decide success with Result.Succeeded.
package jsmodule
