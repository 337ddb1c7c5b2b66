// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"jsmod-cli/internal/interop"
	"jsmod-cli/internal/interop/shellmod"
	"jsmod-cli/internal/issue"
	"jsmod-cli/pkg/types"
)

func newInteropCommand(app *App) *cobra.Command {
	interopCmd := &cobra.Command{
		Use:   "interop",
		Short: "Run script module wrappers",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	var root, module string
	promptCmd := &cobra.Command{
		Use:   "prompt <message>",
		Short: "Ask a question through a prompt module",
		Long: `Ask a question through a prompt module and print the answer.

The module is a shell script declaring showPrompt; it is run by the
built-in interpreter. Without --module the built-in prompt module is used.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.runPrompt(cmd.Context(), root, module, args[0])
		},
	}
	promptCmd.Flags().StringVar(&root, "root", ".", "directory module specifiers resolve against")
	promptCmd.Flags().StringVar(&module, "module", "", "module specifier (default "+interop.DefaultPromptModule+")")
	interopCmd.AddCommand(promptCmd)

	return interopCmd
}

func (a *App) runPrompt(ctx context.Context, root, module, message string) (err error) {
	rt := shellmod.New(
		shellmod.WithRoot(root),
		shellmod.WithStdin(a.stdin),
		shellmod.WithStderr(a.stderr),
	)
	prompter := interop.NewPrompter(rt, module)
	defer func() {
		if closeErr := prompter.Close(ctx); closeErr != nil && err == nil {
			err = closeErr
		}
	}()

	answer, err := prompter.Prompt(ctx, message)
	if err != nil {
		return a.fail(types.ExitDiagnostics, issue.NewErrorContext().
			WithOperation("run prompt module").
			WithSuggestion("Run 'jsmod explain interop' for help").
			Wrap(err).
			BuildError())
	}
	a.logger().Debug("prompt answered", "module", module)
	_, err = fmt.Fprintln(a.stdout, answer)
	return err
}
