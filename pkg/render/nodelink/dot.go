package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/otelviz/pkg/diagram"
	"github.com/matzehuels/otelviz/pkg/errors"
	"github.com/matzehuels/otelviz/pkg/palette"
	"github.com/matzehuels/otelviz/pkg/render"
)

// Options configures node-link diagram rendering.
type Options struct {
	// Vertical lays the graph out top to bottom instead of left to right.
	Vertical bool
	// SubItems appends a box's sub-items to its label, one per line.
	SubItems bool
}

// ToDOT converts boxes and connections to Graphviz DOT format.
// The resulting DOT string can be rendered using [RenderSVG], [RenderPDF], or [RenderPNG].
func ToDOT(boxes []diagram.Box, conns []diagram.Connection, opts Options) string {
	rankdir := "LR"
	if opts.Vertical {
		rankdir = "TB"
	}

	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	fmt.Fprintf(&buf, "  rankdir=%s;\n", rankdir)
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fontcolor=white, fontname=\"Helvetica\", fontsize=14, margin=\"0.25,0.12\", penwidth=0];\n")
	fmt.Fprintf(&buf, "  edge [color=%q, fontcolor=%q, fontname=\"Helvetica\", fontsize=11, penwidth=2];\n", palette.Slate, palette.Slate)
	buf.WriteString("  ranksep=0.6;\n")
	buf.WriteString("  nodesep=0.4;\n")
	buf.WriteString("\n")

	known := make(map[string]bool, len(boxes))
	for _, b := range boxes {
		if known[b.ID] {
			continue
		}
		known[b.ID] = true
		fmt.Fprintf(&buf, "  %q [%s];\n", b.ID, strings.Join(fmtAttrs(b, opts), ", "))
	}

	buf.WriteString("\n")
	for _, c := range conns {
		if !known[c.From] || !known[c.To] {
			continue
		}
		var attrs []string
		if c.Label != "" {
			attrs = append(attrs, fmt.Sprintf("label=%q", " "+c.Label+" "))
		}
		if c.Dashed {
			attrs = append(attrs, "style=dashed")
		}
		if len(attrs) == 0 {
			fmt.Fprintf(&buf, "  %q -> %q;\n", c.From, c.To)
			continue
		}
		fmt.Fprintf(&buf, "  %q -> %q [%s];\n", c.From, c.To, strings.Join(attrs, ", "))
	}

	buf.WriteString("}\n")
	return buf.String()
}

func fmtAttrs(b diagram.Box, opts Options) []string {
	label := b.Label
	if label == "" {
		label = b.ID
	}
	if opts.SubItems && len(b.SubItems) > 0 {
		label += "\n" + strings.Join(b.SubItems, "\n")
	}
	return []string{
		fmt.Sprintf("label=%q", label),
		fmt.Sprintf("fillcolor=%q", palette.Or(b.Color, palette.Blue)),
	}
}

// FromDocument converts the graph-shaped kinds (architecture, connection,
// hub and flow) to DOT. Other kinds return an UNSUPPORTED error.
func FromDocument(doc diagram.Document, opts Options) (string, error) {
	switch doc.Kind {
	case diagram.KindArchitecture:
		if doc.Architecture == nil {
			return ToDOT(nil, nil, opts), nil
		}
		opts.SubItems = true
		return ToDOT(doc.Architecture.Boxes, doc.Architecture.Connections, opts), nil
	case diagram.KindConnection, diagram.KindHub:
		if doc.Connection == nil {
			return ToDOT(nil, nil, opts), nil
		}
		boxes := make([]diagram.Box, len(doc.Connection.Nodes))
		for i, n := range doc.Connection.Nodes {
			label := n.Label
			if n.Icon != "" {
				label = n.Icon + " " + label
			}
			boxes[i] = diagram.Box{ID: n.ID, Label: label, Color: n.Color}
		}
		if doc.Connection.Layout == diagram.LayoutVertical {
			opts.Vertical = true
		}
		return ToDOT(boxes, doc.Connection.Connections, opts), nil
	case diagram.KindFlow:
		if doc.Flow == nil {
			return ToDOT(nil, nil, opts), nil
		}
		var boxes []diagram.Box
		var conns []diagram.Connection
		for i, step := range doc.Flow.Steps {
			id := "step" + strconv.Itoa(i)
			boxes = append(boxes, diagram.Box{ID: id, Label: step, Color: doc.Flow.Color})
			if i > 0 {
				conns = append(conns, diagram.Connection{From: "step" + strconv.Itoa(i-1), To: id})
			}
		}
		opts.Vertical = doc.Flow.Vertical()
		return ToDOT(boxes, conns, opts), nil
	default:
		return "", errors.New(errors.ErrCodeUnsupported, "graphviz engine does not support %s diagrams", doc.Kind)
	}
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
// Returns the SVG bytes ready for display or further conversion with [render.ToPDF] or [render.ToPNG].
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "parse DOT")
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces Graphviz's root element (which carries pt units
// and a transform-dependent size) with one sized like the native sinks.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	root := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(root))
}

// RenderPDF renders a DOT graph as PDF via SVG conversion.
// This is a convenience wrapper around [RenderSVG] and [render.ToPDF].
//
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPDF(ctx context.Context, dot string) ([]byte, error) {
	svg, err := RenderSVG(ctx, dot)
	if err != nil {
		return nil, err
	}
	return render.ToPDF(ctx, svg)
}

// RenderPNG renders a DOT graph as PNG via SVG conversion.
// This is a convenience wrapper around [RenderSVG] and [render.ToPNG].
//
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPNG(ctx context.Context, dot string, scale float64) ([]byte, error) {
	svg, err := RenderSVG(ctx, dot)
	if err != nil {
		return nil, err
	}
	return render.ToPNG(ctx, svg, scale)
}
