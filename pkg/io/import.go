package io

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/otelviz/pkg/diagram"
	"github.com/matzehuels/otelviz/pkg/errors"
)

// Format is a description file encoding.
type Format string

// Supported encodings.
const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

var formatByExt = map[string]Format{
	".json": FormatJSON,
	".yaml": FormatYAML,
	".yml":  FormatYAML,
	".toml": FormatTOML,
}

// FormatFromPath picks the encoding from the file extension.
func FormatFromPath(path string) (Format, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if f, ok := formatByExt[ext]; ok {
		return f, nil
	}
	return "", errors.New(errors.ErrCodeInvalidFormat,
		"unsupported description file %q (want .json, .yaml, .yml or .toml)", filepath.Base(path))
}

// ParseFormat maps a name such as "yml" to a Format.
func ParseFormat(s string) (Format, error) {
	return FormatFromPath("x." + s)
}

// IsDescriptionFile reports whether path has a recognized extension.
func IsDescriptionFile(path string) bool {
	_, ok := formatByExt[strings.ToLower(filepath.Ext(path))]
	return ok
}

type bundle struct {
	Diagrams []diagram.Document `json:"diagrams" yaml:"diagrams" toml:"diagrams"`
}

// Read decodes every document in r. defaultName names a single unnamed
// document; pass "" to require names. Unknown fields are rejected so that
// typos in descriptions do not silently fall back to defaults.
func Read(r io.Reader, format Format, defaultName string) ([]diagram.Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read: %w", err)
	}

	isBundle, err := hasBundleKey(data, format)
	if err != nil {
		return nil, err
	}

	var docs []diagram.Document
	if isBundle {
		var b bundle
		if err := unmarshal(data, format, &b); err != nil {
			return nil, err
		}
		docs = b.Diagrams
	} else {
		var d diagram.Document
		if err := unmarshal(data, format, &d); err != nil {
			return nil, err
		}
		if d.Name == "" {
			d.Name = defaultName
		}
		docs = []diagram.Document{d}
	}

	seen := make(map[string]bool, len(docs))
	for i, d := range docs {
		if err := d.Validate(); err != nil {
			return nil, fmt.Errorf("diagram %d: %w", i, err)
		}
		if seen[d.Name] {
			return nil, errors.New(errors.ErrCodeInvalidInput, "duplicate diagram name %q", d.Name)
		}
		seen[d.Name] = true
	}
	return docs, nil
}

// hasBundleKey reports whether the top-level mapping has a "diagrams" key.
func hasBundleKey(data []byte, format Format) (bool, error) {
	var top map[string]any
	var err error
	switch format {
	case FormatJSON:
		err = json.Unmarshal(data, &top)
	case FormatYAML:
		err = yaml.Unmarshal(data, &top)
	case FormatTOML:
		err = toml.Unmarshal(data, &top)
	default:
		return false, errors.New(errors.ErrCodeInvalidFormat, "unsupported description format %q", format)
	}
	if err != nil {
		return false, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode %s", format)
	}
	_, ok := top["diagrams"]
	return ok, nil
}

func unmarshal(data []byte, format Format, v any) error {
	var err error
	switch format {
	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		err = dec.Decode(v)
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		err = dec.Decode(v)
		if err == io.EOF {
			err = nil
		}
	case FormatTOML:
		var md toml.MetaData
		md, err = toml.NewDecoder(bytes.NewReader(data)).Decode(v)
		if err == nil {
			if undecoded := md.Undecoded(); len(undecoded) > 0 {
				err = fmt.Errorf("unknown field %q", undecoded[0].String())
			}
		}
	default:
		return errors.New(errors.ErrCodeInvalidFormat, "unsupported description format %q", format)
	}
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "decode %s", format)
	}
	return nil
}

// ImportFile reads a description file at path.
func ImportFile(path string) ([]diagram.Document, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
	}
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	docs, err := Read(f, format, base)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return docs, nil
}

// ImportDir reads every description file directly inside dir, in name
// order. Names must be unique across files.
func ImportDir(dir string) ([]diagram.Document, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read dir %s: %w", dir, err)
	}

	var files []string
	for _, e := range entries {
		if !e.IsDir() && IsDescriptionFile(e.Name()) {
			files = append(files, filepath.Join(dir, e.Name()))
		}
	}
	sort.Strings(files)

	var all []diagram.Document
	origin := make(map[string]string)
	for _, path := range files {
		docs, err := ImportFile(path)
		if err != nil {
			return nil, err
		}
		for _, d := range docs {
			if prev, dup := origin[d.Name]; dup {
				return nil, errors.New(errors.ErrCodeInvalidInput,
					"diagram %q defined in both %s and %s", d.Name, prev, path)
			}
			origin[d.Name] = path
		}
		all = append(all, docs...)
	}
	return all, nil
}
