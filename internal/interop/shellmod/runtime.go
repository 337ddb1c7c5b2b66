// SPDX-License-Identifier: MPL-2.0

package shellmod

import (
	"bytes"
	"context"
	"embed"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"
	"sync/atomic"

	"mvdan.cc/sh/v3/expand"
	"mvdan.cc/sh/v3/interp"
	"mvdan.cc/sh/v3/syntax"

	"jsmod-cli/internal/interop"
)

//go:embed builtin/*.sh
var builtinFS embed.FS

// builtinPrefix is the specifier directory that maps onto builtinFS.
const builtinPrefix = "_content/jsmod/"

var (
	// ErrModuleClosed is returned when invoking a closed module.
	ErrModuleClosed = errors.New("module is closed")
	// ErrFunctionNotFound is the sentinel error wrapped by FunctionNotFoundError.
	ErrFunctionNotFound = errors.New("function not found")
	// ErrOutsideRoot is returned for specifiers that resolve outside the root directory.
	ErrOutsideRoot = errors.New("module path escapes the root directory")
)

type (
	// Option configures a Runtime.
	Option func(*Runtime)

	// Runtime imports shell modules from the built-in set or from a root
	// directory.
	Runtime struct {
		root   string
		env    []string
		stdin  io.Reader
		stderr io.Writer
	}

	// FunctionNotFoundError is returned when a module does not declare the
	// invoked function.
	FunctionNotFoundError struct {
		Module   string
		Function string
	}

	module struct {
		rt        *Runtime
		specifier string
		file      *syntax.File
		closed    atomic.Bool
	}
)

// Error implements the error interface for FunctionNotFoundError.
func (e *FunctionNotFoundError) Error() string {
	return fmt.Sprintf("module %s does not declare function %q", e.Module, e.Function)
}

// Unwrap returns ErrFunctionNotFound for errors.Is() compatibility.
func (e *FunctionNotFoundError) Unwrap() error { return ErrFunctionNotFound }

// WithRoot sets the directory non-builtin specifiers resolve against, and
// the working directory of invocations. The default is ".".
func WithRoot(dir string) Option {
	return func(r *Runtime) { r.root = dir }
}

// WithEnv sets the environment of invocations as KEY=VALUE pairs. The
// default is the process environment.
func WithEnv(env []string) Option {
	return func(r *Runtime) { r.env = env }
}

// WithStdin sets the reader modules read from.
func WithStdin(stdin io.Reader) Option {
	return func(r *Runtime) { r.stdin = stdin }
}

// WithStderr sets the writer module diagnostics go to.
func WithStderr(stderr io.Writer) Option {
	return func(r *Runtime) { r.stderr = stderr }
}

// New creates a Runtime.
func New(opts ...Option) *Runtime {
	r := &Runtime{root: ".", env: os.Environ(), stderr: io.Discard}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Import loads and parses the module at specifier.
func (r *Runtime) Import(ctx context.Context, specifier string) (interop.Module, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	src, name, err := r.read(specifier)
	if err != nil {
		return nil, err
	}

	file, err := syntax.NewParser().Parse(bytes.NewReader(src), name)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", specifier, err)
	}
	return &module{rt: r, specifier: specifier, file: file}, nil
}

// read returns the source of specifier and the name to report it under.
func (r *Runtime) read(specifier string) ([]byte, string, error) {
	clean := path.Clean(strings.TrimPrefix(filepath.ToSlash(specifier), "./"))

	if rest, ok := strings.CutPrefix(clean, builtinPrefix); ok {
		if src, err := builtinFS.ReadFile("builtin/" + rest); err == nil {
			return src, "builtin:" + rest, nil
		}
	}

	root, err := filepath.Abs(r.root)
	if err != nil {
		return nil, "", fmt.Errorf("resolve root %s: %w", r.root, err)
	}
	full := filepath.Join(root, filepath.FromSlash(clean))
	if rel, err := filepath.Rel(root, full); err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return nil, "", fmt.Errorf("%w: %s", ErrOutsideRoot, specifier)
	}

	src, err := os.ReadFile(full)
	if err != nil {
		return nil, "", fmt.Errorf("read module %s: %w", specifier, err)
	}
	return src, full, nil
}

// Invoke runs the module body, then calls identifier with args.
func (m *module) Invoke(ctx context.Context, identifier string, args ...string) (string, error) {
	if m.closed.Load() {
		return "", fmt.Errorf("%w: %s", ErrModuleClosed, m.specifier)
	}
	if !syntax.ValidName(identifier) {
		return "", &FunctionNotFoundError{Module: m.specifier, Function: identifier}
	}

	var stdout bytes.Buffer
	runner, err := interp.New(
		interp.Dir(m.rt.root),
		interp.Env(expand.ListEnviron(m.rt.env...)),
		interp.StdIO(m.rt.stdin, &stdout, m.rt.stderr),
		// "--" keeps arguments starting with '-' from being read as shell options.
		interp.Params(append([]string{"--"}, args...)...),
	)
	if err != nil {
		return "", fmt.Errorf("create interpreter: %w", err)
	}

	if err := runner.Run(ctx, m.file); err != nil {
		return "", fmt.Errorf("load module %s: %w", m.specifier, err)
	}
	if _, ok := runner.Funcs[identifier]; !ok {
		return "", &FunctionNotFoundError{Module: m.specifier, Function: identifier}
	}

	call, err := syntax.NewParser().Parse(strings.NewReader(identifier+` "$@"`), identifier)
	if err != nil {
		return "", fmt.Errorf("build call to %s: %w", identifier, err)
	}

	stdout.Reset()
	if err := runner.Run(ctx, call); err != nil {
		var status interp.ExitStatus
		if errors.As(err, &status) {
			return "", fmt.Errorf("%s exited with status %d", identifier, uint8(status))
		}
		return "", fmt.Errorf("invoke %s: %w", identifier, err)
	}

	return strings.TrimSuffix(stdout.String(), "\n"), nil
}

// Close marks the module closed. It is safe to call more than once.
func (m *module) Close(context.Context) error {
	m.closed.Store(true)
	return nil
}
