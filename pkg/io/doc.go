// Package io reads and writes diagram description files.
//
// # Formats
//
// Descriptions are accepted as JSON, YAML or TOML. The format is chosen by
// file extension (.json, .yaml/.yml, .toml). Field names are identical in
// all three.
//
// # Single documents and bundles
//
// A file holds either one document:
//
//	name: collector-flow
//	kind: flow
//	flow:
//	  steps: [Receive, Process, Export]
//
// or a bundle of several under a top-level "diagrams" key:
//
//	diagrams:
//	  - name: collector-flow
//	    kind: flow
//	    flow: {steps: [Receive, Process, Export]}
//	  - name: signals
//	    kind: signal
//	    signal: {from: App, to: Backend, signals: [traces, metrics]}
//
// A single document without a name takes the file's base name. Bundle entries
// must be named. Every document is validated with [diagram.Document.Validate]
// and names must be unique within a file.
//
// # Export
//
// [Write] and [ExportFile] encode documents back out, as a single document
// when there is exactly one and as a bundle otherwise, so that a file can be
// converted between formats and re-imported unchanged.
package io
