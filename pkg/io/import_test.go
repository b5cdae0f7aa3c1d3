package io

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/matzehuels/otelviz/pkg/diagram"
	"github.com/matzehuels/otelviz/pkg/errors"
)

const flowYAML = `
name: collector-flow
kind: flow
flow:
  steps: [Receive, Process, Export]
  color: green
`

const bundleYAML = `
diagrams:
  - name: collector-flow
    kind: flow
    flow: {steps: [Receive, Process, Export]}
  - name: signals
    kind: signal
    signal:
      from: App
      to: Backend
      signals: [traces, metrics]
      show_collector: true
`

const flowJSON = `{
  "name": "collector-flow",
  "kind": "flow",
  "flow": {"steps": ["Receive", "Process", "Export"], "color": "green"}
}`

const flowTOML = `
name = "collector-flow"
kind = "flow"

[flow]
steps = ["Receive", "Process", "Export"]
color = "green"
`

const bundleTOML = `
[[diagrams]]
name = "pipe"
kind = "pipeline"

[[diagrams.pipeline.stages]]
label = "Receive"
items = ["otlp", "jaeger"]

[[diagrams.pipeline.stages]]
label = "Export"

[[diagrams]]
name = "arch"
kind = "architecture"

[[diagrams.architecture.boxes]]
id = "app"
label = "App"
x = 20
y = 20
`

func TestReadSingleDocument(t *testing.T) {
	want := diagram.Document{
		Name: "collector-flow",
		Kind: diagram.KindFlow,
		Flow: &diagram.FlowSpec{Steps: []string{"Receive", "Process", "Export"}, Color: "green"},
	}

	tests := []struct {
		name   string
		format Format
		input  string
	}{
		{"yaml", FormatYAML, flowYAML},
		{"json", FormatJSON, flowJSON},
		{"toml", FormatTOML, flowTOML},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			docs, err := Read(strings.NewReader(tt.input), tt.format, "")
			if err != nil {
				t.Fatalf("Read: %v", err)
			}
			if len(docs) != 1 {
				t.Fatalf("got %d docs, want 1", len(docs))
			}
			if !reflect.DeepEqual(docs[0], want) {
				t.Errorf("got %+v, want %+v", docs[0], want)
			}
		})
	}
}

func TestReadBundle(t *testing.T) {
	docs, err := Read(strings.NewReader(bundleYAML), FormatYAML, "")
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if len(docs) != 2 {
		t.Fatalf("got %d docs, want 2", len(docs))
	}
	if docs[1].Kind != diagram.KindSignal || !docs[1].Signal.ShowCollector {
		t.Errorf("second doc decoded wrong: %+v", docs[1])
	}
}

func TestReadTOMLBundle(t *testing.T) {
	docs, err := Read(strings.NewReader(bundleTOML), FormatTOML, "")
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if len(docs) != 2 {
		t.Fatalf("got %d docs, want 2", len(docs))
	}
	if got := len(docs[0].Pipeline.Stages); got != 2 {
		t.Errorf("stages = %d, want 2", got)
	}
	if got := docs[1].Architecture.Boxes[0].X; got != 20 {
		t.Errorf("box x = %v, want 20", got)
	}
}

func TestReadDefaultName(t *testing.T) {
	docs, err := Read(strings.NewReader("kind: flow\n"), FormatYAML, "from-file")
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if docs[0].Name != "from-file" {
		t.Errorf("Name = %q, want from-file", docs[0].Name)
	}
}

func TestReadErrors(t *testing.T) {
	tests := []struct {
		name   string
		format Format
		input  string
		code   errors.Code
	}{
		{"malformed yaml", FormatYAML, "kind: [", errors.ErrCodeInvalidInput},
		{"malformed json", FormatJSON, "{", errors.ErrCodeInvalidInput},
		{"unknown yaml field", FormatYAML, "name: a\nkind: flow\ncolour: red\n", errors.ErrCodeInvalidInput},
		{"unknown json field", FormatJSON, `{"name":"a","kind":"flow","colour":"red"}`, errors.ErrCodeInvalidInput},
		{"unknown toml field", FormatTOML, "name = \"a\"\nkind = \"flow\"\ncolour = \"red\"\n", errors.ErrCodeInvalidInput},
		{"unknown kind", FormatYAML, "name: a\nkind: spiral\n", errors.ErrCodeInvalidKind},
		{"missing name", FormatYAML, "kind: flow\n", errors.ErrCodeInvalidInput},
		{"bad name", FormatYAML, "name: ../etc\nkind: flow\n", errors.ErrCodeInvalidInput},
		{"duplicate names", FormatYAML, "diagrams:\n  - {name: a, kind: flow}\n  - {name: a, kind: tree}\n", errors.ErrCodeInvalidInput},
		{"bad format", Format("xml"), "<a/>", errors.ErrCodeInvalidFormat},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Read(strings.NewReader(tt.input), tt.format, "")
			if err == nil {
				t.Fatal("expected error")
			}
			if got := errors.GetCode(err); got != tt.code {
				t.Errorf("code = %q, want %q (err: %v)", got, tt.code, err)
			}
		})
	}
}

func TestFormatFromPath(t *testing.T) {
	tests := []struct {
		path    string
		want    Format
		wantErr bool
	}{
		{"a.json", FormatJSON, false},
		{"a.yaml", FormatYAML, false},
		{"dir/A.YML", FormatYAML, false},
		{"a.toml", FormatTOML, false},
		{"a.txt", "", true},
		{"noext", "", true},
	}
	for _, tt := range tests {
		got, err := FormatFromPath(tt.path)
		if (err != nil) != tt.wantErr {
			t.Errorf("FormatFromPath(%q) err = %v, wantErr %v", tt.path, err, tt.wantErr)
		}
		if got != tt.want {
			t.Errorf("FormatFromPath(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}

	if f, err := ParseFormat("yml"); err != nil || f != FormatYAML {
		t.Errorf("ParseFormat(yml) = %q, %v", f, err)
	}
}

func TestImportFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "overview.yaml")
	if err := os.WriteFile(path, []byte("kind: flow\nflow: {steps: [a]}\n"), 0644); err != nil {
		t.Fatal(err)
	}

	docs, err := ImportFile(path)
	if err != nil {
		t.Fatalf("ImportFile: %v", err)
	}
	if docs[0].Name != "overview" {
		t.Errorf("Name = %q, want base name", docs[0].Name)
	}

	_, err = ImportFile(filepath.Join(dir, "missing.yaml"))
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("missing file code = %q, want FILE_NOT_FOUND", errors.GetCode(err))
	}
}

func TestImportDir(t *testing.T) {
	dir := t.TempDir()
	write := func(name, body string) {
		t.Helper()
		if err := os.WriteFile(filepath.Join(dir, name), []byte(body), 0644); err != nil {
			t.Fatal(err)
		}
	}
	write("b.yaml", "kind: flow\n")
	write("a.json", `{"kind": "tree"}`)
	write("notes.md", "# ignored")

	docs, err := ImportDir(dir)
	if err != nil {
		t.Fatalf("ImportDir: %v", err)
	}
	if len(docs) != 2 || docs[0].Name != "a" || docs[1].Name != "b" {
		t.Errorf("got %+v, want a then b", docs)
	}

	write("c.toml", "name = \"a\"\nkind = \"flow\"\n")
	if _, err := ImportDir(dir); err == nil {
		t.Error("duplicate names across files should fail")
	}
}
