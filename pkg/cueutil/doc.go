// SPDX-License-Identifier: MPL-2.0

// Package cueutil holds the CUE plumbing shared by the manifest and config
// loaders.
//
// Every CUE-backed file is read the same way:
//
//  1. compile the embedded schema and look up its root definition
//  2. compile the user bytes and unify them with that definition
//  3. validate, then decode into a Go value
//
// Errors are rewritten with the file name and a JSON-style field path
// (items.components[0].spec) so they can be shown to users as-is.
//
//	//go:embed manifest_schema.cue
//	var schema []byte
//
//	res, err := cueutil.ParseAndDecode[Manifest](schema, data, "#Manifest",
//	    cueutil.WithFilename("jsmodules.cue"))
package cueutil
