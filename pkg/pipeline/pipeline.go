// Package pipeline turns diagram documents into rendered artifacts.
//
// This package implements the layout → render path shared by the CLI and the
// preview server, with artifact caching. By centralizing it, both entry
// points agree on defaults, cache keys and which formats apply to which
// kinds of document.
//
// # Stages
//
//  1. Layout: [diagram.Document.Scene] computes the shapes (skipped for
//     composite documents and for fully cached renders)
//  2. Render: each requested format is produced by a sink (SVG, JSON, PNG,
//     PDF, HTML) or by the Graphviz engine
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Render(ctx, doc, pipeline.Options{
//	    Formats: []string{"svg", "html"},
//	})
//	if err != nil {
//	    return err
//	}
//	svg := result.Artifacts["svg"]
//
// Render a whole bundle concurrently:
//
//	results, err := runner.RenderAll(ctx, docs, opts)
//
// # Format applicability
//
// Composite documents only render to html. The dot format only applies to
// graph-shaped kinds (architecture, connection, hub, flow). Formats that do
// not apply to a document are listed in [Result.Skipped]; a document for
// which no requested format applies is an UNSUPPORTED error. With the
// graphviz engine, kinds Graphviz cannot express fall back to the native
// layout.
package pipeline

import (
	"io"
	"sort"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/otelviz/pkg/cache"
	"github.com/matzehuels/otelviz/pkg/diagram"
	"github.com/matzehuels/otelviz/pkg/errors"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and Server
// =============================================================================

// DefaultScale is the PNG scale factor.
const DefaultScale = 2.0

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatJSON = "json"
	FormatPNG  = "png"
	FormatPDF  = "pdf"
	FormatHTML = "html"
	FormatDOT  = "dot"
)

// Engine constants.
const (
	EngineNative   = "native"
	EngineGraphviz = "graphviz"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatJSON: true,
	FormatPNG:  true,
	FormatPDF:  true,
	FormatHTML: true,
	FormatDOT:  true,
}

// ValidEngines is the set of supported layout engines.
var ValidEngines = map[string]bool{
	EngineNative:   true,
	EngineGraphviz: true,
}

// ContentTypes maps formats to their MIME types.
var ContentTypes = map[string]string{
	FormatSVG:  "image/svg+xml",
	FormatJSON: "application/json",
	FormatPNG:  "image/png",
	FormatPDF:  "application/pdf",
	FormatHTML: "text/html; charset=utf-8",
	FormatDOT:  "text/vnd.graphviz; charset=utf-8",
}

// graphKinds are the kinds Graphviz can lay out.
var graphKinds = map[diagram.Kind]bool{
	diagram.KindArchitecture: true,
	diagram.KindConnection:   true,
	diagram.KindHub:          true,
	diagram.KindFlow:         true,
}

// FormatNames returns the valid formats in sorted order.
func FormatNames() []string {
	return sortedKeys(ValidFormats)
}

// EngineNames returns the valid engines in sorted order.
func EngineNames() []string {
	return sortedKeys(ValidEngines)
}

func sortedKeys(m map[string]bool) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options configures rendering. It supports JSON for server requests.
type Options struct {
	Formats    []string `json:"formats,omitempty"`
	Engine     string   `json:"engine,omitempty"`
	IDPrefix   string   `json:"id_prefix,omitempty"`  // marker id prefix so several SVGs can share a page
	Responsive bool     `json:"responsive,omitempty"` // width:100% sizing instead of fixed pixels
	Scale      float64  `json:"scale,omitempty"`      // PNG scale factor
	Refresh    bool     `json:"refresh,omitempty"`    // ignore cached artifacts

	// Logger receives progress events (not serialized).
	Logger *log.Logger `json:"-"`

	validated bool
}

// Result contains the outputs of rendering one document.
type Result struct {
	Name string
	Kind diagram.Kind

	// DocHash is the content hash of the document.
	DocHash string

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Skipped lists requested formats that do not apply to the document.
	Skipped []string

	Stats     Stats
	CacheInfo CacheInfo
}

// Stats contains rendering statistics.
type Stats struct {
	ShapeCount int
	Width      float64
	Height     float64
	LayoutTime time.Duration
	RenderTime time.Duration
}

// CacheInfo tracks artifact cache hits.
type CacheInfo struct {
	Hits      int
	Misses    int
	RenderHit bool // every artifact came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	return ValidateFormats([]string{format})
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	return errors.ValidateFormats(formats, FormatNames())
}

// ValidateEngine checks that an engine is valid.
func ValidateEngine(engine string) error {
	if !ValidEngines[engine] {
		return errors.New(errors.ErrCodeInvalidInput, "invalid engine: %q (must be one of: native, graphviz)", engine)
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks the options and applies defaults.
// This method is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	o.Formats = dedupe(o.Formats)
	if o.Engine == "" {
		o.Engine = EngineNative
	}
	if o.Scale <= 0 {
		o.Scale = DefaultScale
	}
	if o.Logger == nil {
		o.Logger = log.New(io.Discard)
	}
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if err := ValidateEngine(o.Engine); err != nil {
		return err
	}
	o.validated = true
	return nil
}

func dedupe(in []string) []string {
	seen := make(map[string]bool, len(in))
	out := in[:0:0]
	for _, s := range in {
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	return out
}

// UsesGraphviz reports whether doc is laid out by Graphviz under these options.
func (o *Options) UsesGraphviz(doc diagram.Document) bool {
	return o.Engine == EngineGraphviz && graphKinds[doc.Kind]
}

// Applies reports whether format can be produced for doc.
func Applies(doc diagram.Document, format string) bool {
	switch {
	case doc.IsComposite():
		return format == FormatHTML
	case format == FormatDOT:
		return graphKinds[doc.Kind]
	default:
		return true
	}
}

// ArtifactKeyOpts returns cache key options for one format of doc.
func (o *Options) ArtifactKeyOpts(doc diagram.Document, format string) cache.ArtifactKeyOpts {
	k := cache.ArtifactKeyOpts{Format: format}
	if o.UsesGraphviz(doc) {
		k.Engine = EngineGraphviz
	}
	switch format {
	case FormatSVG, FormatHTML, FormatPNG, FormatPDF:
		k.IDPrefix = o.IDPrefix
		k.Responsive = o.Responsive && format != FormatPNG && format != FormatPDF
	}
	if format == FormatPNG {
		k.Scale = o.Scale
	}
	return k
}
