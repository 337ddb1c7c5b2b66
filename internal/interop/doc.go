// SPDX-License-Identifier: MPL-2.0

// Package interop wraps script modules that are imported on first use.
//
// A Runtime imports a module by specifier; a Module exposes named functions.
// LazyModule defers the import until the first call and then keeps the
// result, module or error, for its lifetime. Prompter is the stock wrapper
// around the built-in prompt module.
package interop
