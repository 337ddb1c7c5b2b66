// SPDX-License-Identifier: MPL-2.0

package interop

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
)

type (
	// Runtime imports modules by specifier.
	Runtime interface {
		Import(ctx context.Context, specifier string) (Module, error)
	}

	// Module is an imported script module.
	Module interface {
		// Invoke calls the named function and returns its output.
		Invoke(ctx context.Context, identifier string, args ...string) (string, error)
		// Close releases the module. Later Invoke calls fail.
		Close(ctx context.Context) error
	}

	// LazyModule imports its module on the first Get. The outcome of that
	// import is reused by every later Get, including a failed import.
	LazyModule struct {
		runtime   Runtime
		specifier string

		once   sync.Once
		loaded atomic.Bool
		module Module
		err    error
	}
)

// NewLazyModule creates a LazyModule for specifier. Nothing is imported yet.
func NewLazyModule(runtime Runtime, specifier string) *LazyModule {
	return &LazyModule{runtime: runtime, specifier: specifier}
}

// Specifier returns the module specifier.
func (l *LazyModule) Specifier() string { return l.specifier }

// Get imports the module on the first call and returns the cached result
// afterwards. Concurrent first callers share one import.
func (l *LazyModule) Get(ctx context.Context) (Module, error) {
	l.once.Do(func() {
		l.module, l.err = l.runtime.Import(ctx, l.specifier)
		if l.err != nil {
			l.module = nil
			l.err = fmt.Errorf("import module %s: %w", l.specifier, l.err)
		}
		l.loaded.Store(true)
	})
	return l.module, l.err
}

// Loaded reports whether the import has run, successfully or not.
func (l *LazyModule) Loaded() bool { return l.loaded.Load() }

// Module returns the imported module without triggering an import. ok is
// false until a successful import has completed.
func (l *LazyModule) Module() (m Module, ok bool) {
	if !l.loaded.Load() || l.err != nil {
		return nil, false
	}
	return l.module, true
}
