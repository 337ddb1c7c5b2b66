// SPDX-License-Identifier: MPL-2.0

package interop

import (
	"context"
	"fmt"
)

const (
	// DefaultPromptModule is the specifier of the built-in prompt module.
	DefaultPromptModule = "./_content/jsmod/examplePrompt.sh"

	// PromptFunction is the function Prompter calls.
	PromptFunction = "showPrompt"
)

// Prompter asks the user a question through a prompt module's showPrompt
// function. The module is imported on the first Prompt.
type Prompter struct {
	module *LazyModule
}

// NewPrompter creates a Prompter for specifier, or for DefaultPromptModule
// when specifier is empty.
func NewPrompter(runtime Runtime, specifier string) *Prompter {
	if specifier == "" {
		specifier = DefaultPromptModule
	}
	return &Prompter{module: NewLazyModule(runtime, specifier)}
}

// Prompt shows message and returns the answer.
func (p *Prompter) Prompt(ctx context.Context, message string) (string, error) {
	mod, err := p.module.Get(ctx)
	if err != nil {
		return "", err
	}
	answer, err := mod.Invoke(ctx, PromptFunction, message)
	if err != nil {
		return "", fmt.Errorf("%s in %s: %w", PromptFunction, p.module.Specifier(), err)
	}
	return answer, nil
}

// Close disposes the module if it was imported. A Prompter that never
// prompted, or whose import failed, has nothing to dispose.
func (p *Prompter) Close(ctx context.Context) error {
	mod, ok := p.module.Module()
	if !ok {
		return nil
	}
	return mod.Close(ctx)
}
