package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/otelviz/pkg/runtime"
)

// echoRuntime prints the snippet back, or fails when the snippet is "raise".
type echoRuntime struct{}

func (echoRuntime) Name() string { return "echo" }

func (echoRuntime) Exec(_ context.Context, code string) (runtime.Result, error) {
	if code == "raise" {
		return runtime.Result{Failed: true, Stderr: "Traceback: boom"}, nil
	}
	return runtime.Result{Stdout: code}, nil
}

func echoLoader() *runtime.Loader {
	return runtime.NewLoader("echo", func(context.Context) (runtime.Runtime, error) {
		return echoRuntime{}, nil
	})
}

// testCLI returns a CLI with a quiet logger and a file cache under a temp dir.
func testCLI(t *testing.T) *CLI {
	t.Helper()
	c := New(io.Discard, log.InfoLevel)
	c.Config = DefaultConfig()
	c.Config.Cache.Dir = t.TempDir()
	return c
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

const flowYAML = `name: collector
kind: flow
title: Collector pipeline
flow:
  steps: [Receive, Process, Export]
`

const bundleYAML = `diagrams:
  - name: signals
    kind: signal
    signal:
      from: App
      to: Backend
      signals: [traces, metrics]
  - name: widgets
    kind: composite
    composite:
      type: row
      children:
        - type: box
          label: SDK
`

func mkdir(t *testing.T, dir string) {
	t.Helper()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
}

func typeName(v any) string {
	return fmt.Sprintf("%T", v)
}
