// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"jsmod-cli/internal/config"
)

type stubConfigProvider struct {
	cfg *config.Config
	err error
}

func (s stubConfigProvider) Load(context.Context, config.LoadOptions) (*config.Config, error) {
	if s.err != nil {
		return nil, s.err
	}
	if s.cfg == nil {
		return config.DefaultConfig(), nil
	}
	return s.cfg, nil
}

type cliResult struct {
	stdout string
	stderr string
	err    error
}

// runCLI executes the command tree in-process with captured streams.
func runCLI(t *testing.T, deps Dependencies, args ...string) cliResult {
	t.Helper()

	var stdout, stderr bytes.Buffer
	deps.Stdout = &stdout
	deps.Stderr = &stderr
	if deps.Config == nil {
		deps.Config = stubConfigProvider{}
	}
	if deps.Stdin == nil {
		deps.Stdin = strings.NewReader("")
	}

	root := NewRootCommand(NewApp(deps))
	root.SetArgs(args)
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	err := root.ExecuteContext(context.Background())
	return cliResult{stdout: stdout.String(), stderr: stderr.String(), err: err}
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

const cleanManifest = `{
  "items": {
    "components": [{"spec": "Pages/Index.razor"}],
    "views": [{"spec": "Views/Home/Index.cshtml"}]
  },
  "candidates": [
    {"spec": "wwwroot/Pages/Index.razor.js", "metadata": {"RelativePath": "Pages/Index.razor.js", "JSModule": "_content/app/Pages/Index.razor.js"}},
    {"spec": "wwwroot/Views/Home/Index.cshtml.js", "metadata": {"RelativePath": "Views/Home/Index.cshtml.js", "JSModule": "_content/app/Views/Home/Index.cshtml.js"}}
  ]
}`

const conflictManifest = `{
  "items": {
    "components": [{"spec": "Pages/Index.razor"}]
  },
  "candidates": [
    {"spec": "a/Pages/Index.razor.js", "metadata": {"RelativePath": "Pages/Index.razor.js", "JSModule": "a.js"}},
    {"spec": "b/Pages/Index.razor.js", "metadata": {"RelativePath": "Pages/Index.razor.js", "JSModule": "b.js"}}
  ]
}`
