package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/otelviz/pkg/diagram"
	"github.com/matzehuels/otelviz/pkg/errors"
)

// Write encodes docs to w. One document is written bare, anything else as a
// bundle. The output can be re-imported with [Read].
func Write(w io.Writer, format Format, docs ...diagram.Document) error {
	var v any = bundle{Diagrams: docs}
	if len(docs) == 1 {
		v = docs[0]
	}

	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("encode json: %w", err)
		}
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		return enc.Close()
	case FormatTOML:
		if err := toml.NewEncoder(w).Encode(v); err != nil {
			return fmt.Errorf("encode toml: %w", err)
		}
	default:
		return errors.New(errors.ErrCodeInvalidFormat, "unsupported description format %q", format)
	}
	return nil
}

// ExportFile writes docs to path, choosing the encoding from its extension.
func ExportFile(path string, docs ...diagram.Document) error {
	format, err := FormatFromPath(path)
	if err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := Write(f, format, docs...); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
