// SPDX-License-Identifier: MPL-2.0

// Package shellmod runs shell script modules with the mvdan/sh interpreter.
//
// A module is a POSIX shell script that declares functions. Import parses
// the script; Invoke runs the script body in a fresh interpreter and calls
// one of its functions with the given arguments as positional parameters.
// Nothing is executed through the host shell.
package shellmod
