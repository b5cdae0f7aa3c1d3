package sink

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"strconv"
	"strings"

	"github.com/matzehuels/otelviz/pkg/palette"
	"github.com/matzehuels/otelviz/pkg/scene"
)

const fontFamily = "system-ui, -apple-system, Segoe UI, sans-serif"

type SVGOption func(*svgRenderer)

type svgRenderer struct {
	idPrefix   string
	title      string
	responsive bool
}

// WithIDPrefix prefixes every element id so several inline SVGs can share a page.
func WithIDPrefix(p string) SVGOption { return func(r *svgRenderer) { r.idPrefix = p } }

// WithTitle adds an accessible <title> element.
func WithTitle(t string) SVGOption { return func(r *svgRenderer) { r.title = t } }

// WithResponsive sizes the SVG to its container up to the canvas width
// instead of fixing width and height.
func WithResponsive() SVGOption { return func(r *svgRenderer) { r.responsive = true } }

// MarkerID returns the arrowhead marker id used with the given prefix.
func MarkerID(prefix string) string { return prefix + "arrowhead" }

func RenderSVG(sc scene.Scene, opts ...SVGOption) []byte {
	r := svgRenderer{}
	for _, opt := range opts {
		opt(&r)
	}

	var buf bytes.Buffer
	w, h := num(sc.Width), num(sc.Height)
	size := fmt.Sprintf(`width="%s" height="%s"`, w, h)
	if r.responsive {
		size = fmt.Sprintf(`style="width:100%%;max-width:%spx;height:auto"`, w)
	}
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %s %s" %s font-family="%s">`+"\n", w, h, size, fontFamily)

	if r.title != "" {
		fmt.Fprintf(&buf, "  <title>%s</title>\n", escapeXML(r.title))
	}
	if sc.UsesMarkers() {
		renderDefs(&buf, MarkerID(r.idPrefix))
	}
	for _, sh := range sc.Shapes {
		r.renderShape(&buf, sh, 1)
	}
	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func renderDefs(buf *bytes.Buffer, id string) {
	buf.WriteString("  <defs>\n")
	fmt.Fprintf(buf, `    <marker id="%s" markerWidth="10" markerHeight="7" refX="9" refY="3.5" orient="auto">`+"\n", escapeXML(id))
	fmt.Fprintf(buf, `      <polygon points="0 0, 10 3.5, 0 7" fill="%s"/>`+"\n", palette.Slate)
	buf.WriteString("    </marker>\n")
	buf.WriteString("  </defs>\n")
}

func (r *svgRenderer) renderShape(buf *bytes.Buffer, sh scene.Shape, depth int) {
	indent := strings.Repeat("  ", depth)
	switch s := sh.(type) {
	case scene.Group:
		fmt.Fprintf(buf, `%s<g class="%s"`, indent, escapeXML(s.Class))
		if s.Key != "" {
			fmt.Fprintf(buf, ` data-key="%s"`, escapeXML(s.Key))
		}
		buf.WriteString(">\n")
		for _, c := range s.Shapes {
			r.renderShape(buf, c, depth+1)
		}
		fmt.Fprintf(buf, "%s</g>\n", indent)
	case scene.Rect:
		fmt.Fprintf(buf, `%s<rect x="%s" y="%s" width="%s" height="%s"`, indent, num(s.X), num(s.Y), num(s.W), num(s.H))
		if s.RX > 0 {
			fmt.Fprintf(buf, ` rx="%s"`, num(s.RX))
		}
		fmt.Fprintf(buf, ` fill="%s"`, escapeXML(orNone(s.Fill)))
		attr(buf, "fill-opacity", s.FillOpacity)
		attr(buf, "opacity", s.Opacity)
		if s.Stroke != "" {
			fmt.Fprintf(buf, ` stroke="%s" stroke-width="%s"`, escapeXML(s.Stroke), num(max(s.StrokeWidth, 1)))
		}
		buf.WriteString("/>\n")
	case scene.Line:
		fmt.Fprintf(buf, `%s<line x1="%s" y1="%s" x2="%s" y2="%s" stroke="%s" stroke-width="%s"`,
			indent, num(s.X1), num(s.Y1), num(s.X2), num(s.Y2), escapeXML(orNone(s.Stroke)), num(max(s.StrokeWidth, 1)))
		if s.Dashed {
			buf.WriteString(` stroke-dasharray="5,5"`)
		}
		if s.Arrow {
			fmt.Fprintf(buf, ` marker-end="url(#%s)"`, escapeXML(MarkerID(r.idPrefix)))
		}
		buf.WriteString("/>\n")
	case scene.Polygon:
		pts := make([]string, len(s.Points))
		for i, p := range s.Points {
			pts[i] = num(p.X) + "," + num(p.Y)
		}
		fmt.Fprintf(buf, `%s<polygon points="%s" fill="%s"/>`+"\n", indent, strings.Join(pts, " "), escapeXML(orNone(s.Fill)))
	case scene.Text:
		anchor := s.Anchor
		if anchor == "" {
			anchor = "start"
		}
		fmt.Fprintf(buf, `%s<text x="%s" y="%s" text-anchor="%s"`, indent, num(s.X), num(s.Y), anchor)
		if s.Middle {
			buf.WriteString(` dominant-baseline="middle"`)
		}
		if s.Fill != "" {
			fmt.Fprintf(buf, ` fill="%s"`, escapeXML(s.Fill))
		}
		if s.Size > 0 {
			fmt.Fprintf(buf, ` font-size="%s"`, num(s.Size))
		}
		if s.Weight > 0 {
			fmt.Fprintf(buf, ` font-weight="%d"`, s.Weight)
		}
		attr(buf, "opacity", s.Opacity)
		fmt.Fprintf(buf, ">%s</text>\n", escapeXML(s.Content))
	}
}

// attr writes an opacity-style attribute; 0 means unset.
func attr(buf *bytes.Buffer, name string, v float64) {
	if v > 0 {
		fmt.Fprintf(buf, ` %s="%s"`, name, num(v))
	}
}

func orNone(c string) string {
	if c == "" {
		return "none"
	}
	return c
}

// num formats a coordinate with at most two decimals and no trailing zeros.
func num(v float64) string {
	s := strconv.FormatFloat(v, 'f', 2, 64)
	s = strings.TrimRight(s, "0")
	s = strings.TrimSuffix(s, ".")
	if s == "-0" {
		return "0"
	}
	return s
}

func escapeXML(s string) string {
	var buf bytes.Buffer
	xml.EscapeText(&buf, []byte(s))
	return buf.String()
}
