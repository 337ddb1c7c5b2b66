// SPDX-License-Identifier: MPL-2.0

// Package manifest reads jsmod input manifests and writes result manifests.
//
// Input manifests may be written in CUE, JSON or TOML. CUE and JSON files are
// validated against the embedded #Manifest schema; TOML files are decoded
// with go-toml and checked with the same Go-side rules.
package manifest
