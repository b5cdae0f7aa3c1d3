package pipeline

import (
	"context"
	"fmt"

	"github.com/matzehuels/otelviz/pkg/diagram"
	"github.com/matzehuels/otelviz/pkg/render"
	"github.com/matzehuels/otelviz/pkg/render/nodelink"
	"github.com/matzehuels/otelviz/pkg/render/sink"
	"github.com/matzehuels/otelviz/pkg/scene"
	"github.com/matzehuels/otelviz/pkg/widget"
)

// sceneFunc lays the document out on first use and memoizes the result, so
// a render with several cache misses builds the scene once.
type sceneFunc func() (scene.Scene, error)

// Render produces one format for doc without caching.
func Render(ctx context.Context, doc diagram.Document, format string, opts Options) ([]byte, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	return renderFormat(ctx, doc, format, opts, doc.Scene)
}

func renderFormat(ctx context.Context, doc diagram.Document, format string, opts Options, layout sceneFunc) ([]byte, error) {
	if doc.IsComposite() {
		body, err := doc.HTML()
		if err != nil {
			return nil, err
		}
		return sink.RenderHTML(title(doc), body), nil
	}

	if format == FormatDOT {
		dot, err := nodelink.FromDocument(doc, nodelink.Options{})
		return []byte(dot), err
	}
	if opts.UsesGraphviz(doc) && format != FormatJSON {
		return renderGraphviz(ctx, doc, format, opts)
	}

	sc, err := layout()
	if err != nil {
		return nil, err
	}

	switch format {
	case FormatSVG:
		return sink.RenderSVG(sc, svgOptions(doc, opts, true)...), nil
	case FormatJSON:
		return sink.RenderJSON(sc)
	case FormatPNG:
		return sink.RenderPNG(ctx, sc, sink.WithPNGSVGOptions(svgOptions(doc, opts, false)...), sink.WithScale(opts.Scale))
	case FormatPDF:
		return sink.RenderPDF(ctx, sc, sink.WithPDFSVGOptions(svgOptions(doc, opts, false)...))
	case FormatHTML:
		svg := sink.RenderSVG(sc, svgOptions(doc, opts, true)...)
		return sink.RenderHTML(title(doc), widget.HTML(svg)), nil
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
}

func renderGraphviz(ctx context.Context, doc diagram.Document, format string, opts Options) ([]byte, error) {
	dot, err := nodelink.FromDocument(doc, nodelink.Options{})
	if err != nil {
		return nil, err
	}

	switch format {
	case FormatSVG:
		return nodelink.RenderSVG(ctx, dot)
	case FormatPNG:
		return nodelink.RenderPNG(ctx, dot, opts.Scale)
	case FormatPDF:
		return nodelink.RenderPDF(ctx, dot)
	case FormatHTML:
		svg, err := nodelink.RenderSVG(ctx, dot)
		if err != nil {
			return nil, err
		}
		return sink.RenderHTML(title(doc), widget.HTML(svg)), nil
	default:
		return nil, fmt.Errorf("unsupported graphviz format: %s", format)
	}
}

// svgOptions builds sink options. Raster and PDF output ignore responsive
// sizing since rsvg-convert needs absolute dimensions.
func svgOptions(doc diagram.Document, opts Options, inline bool) []sink.SVGOption {
	var out []sink.SVGOption
	if opts.IDPrefix != "" {
		out = append(out, sink.WithIDPrefix(opts.IDPrefix))
	}
	if t := title(doc); t != "" {
		out = append(out, sink.WithTitle(t))
	}
	if inline && opts.Responsive {
		out = append(out, sink.WithResponsive())
	}
	return out
}

func title(doc diagram.Document) string {
	if doc.Title != "" {
		return doc.Title
	}
	return doc.Name
}

// ConverterAvailable reports whether PNG and PDF output can be produced.
func ConverterAvailable() bool {
	return render.Available()
}
