package widget

import (
	"html"
	"strings"

	"github.com/matzehuels/otelviz/pkg/geom"
	"github.com/matzehuels/otelviz/pkg/palette"
)

// BoxOptions configures [Box]. Zero values mean blue, filled, md.
type BoxOptions struct {
	Color   string
	Variant Variant
	Size    Size
	Icon    string
}

// FlexOptions configures [Row] and [Column].
type FlexOptions struct {
	Gap   Gap
	Align Align
	Wrap  bool
}

var arrowGlyphs = map[geom.Direction]string{
	geom.Right: "→",
	geom.Down:  "↓",
	geom.Left:  "←",
	geom.Up:    "↑",
}

func div(class string, style Style, children ...HTML) HTML {
	var b strings.Builder
	b.WriteString(`<div class="`)
	b.WriteString(class)
	b.WriteString(`"`)
	if len(style) > 0 {
		b.WriteString(` style="`)
		b.WriteString(html.EscapeString(style.String()))
		b.WriteString(`"`)
	}
	b.WriteString(">")
	for _, c := range children {
		b.WriteString(string(c))
	}
	b.WriteString("</div>")
	return HTML(b.String())
}

func span(class string, style Style, text string) HTML {
	attr := ""
	if len(style) > 0 {
		attr = ` style="` + html.EscapeString(style.String()) + `"`
	}
	return HTML(`<span class="` + class + `"` + attr + `>` + html.EscapeString(text) + `</span>`)
}

// Box renders a labelled box.
func Box(label string, opts BoxOptions) HTML {
	color := palette.Or(opts.Color, palette.Blue)
	style := Style{{"display", "inline-flex"}, {"align-items", "center"}, {"gap", "0.4rem"}, {"border-radius", "8px"}, {"font-weight", "500"}}
	style = append(style, SizeStyle(opts.Size)...)
	style = append(style, BoxStyle(color, opts.Variant)...)

	var children []HTML
	if opts.Icon != "" {
		children = append(children, span("box-icon", nil, opts.Icon))
	}
	children = append(children, span("box-label", nil, label))
	return div("box", style, children...)
}

// Arrow renders a direction glyph with an optional label. An empty color
// uses slate.
func Arrow(d geom.Direction, label, color string) HTML {
	color = palette.Or(color, palette.Slate)
	flow := "row"
	if d == geom.Down || d == geom.Up {
		flow = "column"
	}
	style := Style{{"display", "flex"}, {"flex-direction", flow}, {"align-items", "center"}, {"color", color}}

	var children []HTML
	if label != "" {
		children = append(children, span("arrow-label", Style{{"font-size", "0.75rem"}}, label))
	}
	children = append(children, span("arrow-symbol", Style{{"font-size", "1.25rem"}}, arrowGlyphs[d]))
	return div("arrow arrow-"+d.String(), style, children...)
}

func flex(class, direction string, opts FlexOptions, children []HTML) HTML {
	style := Style{
		{"display", "flex"},
		{"flex-direction", direction},
		{"gap", GapSize(opts.Gap)},
		{"align-items", alignValue(opts.Align)},
	}
	if direction == "row" {
		wrap := "nowrap"
		if opts.Wrap {
			wrap = "wrap"
		}
		style = append(style, Decl{"flex-wrap", wrap})
	}
	return div(class, style, children...)
}

// Row lays children out horizontally.
func Row(opts FlexOptions, children ...HTML) HTML {
	return flex("row", "row", opts, children)
}

// Column lays children out vertically. Columns never wrap.
func Column(opts FlexOptions, children ...HTML) HTML {
	return flex("column", "column", opts, children)
}

// Group renders a bordered, optionally titled group. direction is "row" or
// "column" (the default).
func Group(title, color, direction string, children ...HTML) HTML {
	color = palette.Or(color, palette.Slate)
	if direction != "row" {
		direction = "column"
	}
	style := Style{{"border", "1px dashed " + palette.WithAlpha(color, 0x40)}, {"border-radius", "8px"}, {"padding", "0.75rem"}}

	var inner []HTML
	if title != "" {
		inner = append(inner, div("group-title", Style{{"color", color}, {"font-weight", "600"}, {"font-size", "0.8rem"}, {"margin-bottom", "0.5rem"}},
			HTML(html.EscapeString(title))))
	}
	body := Style{{"display", "flex"}, {"flex-direction", direction}, {"gap", "0.75rem"}, {"align-items", "center"}}
	inner = append(inner, div("group-body", body, children...))
	return div("group", style, inner...)
}

// Container wraps a diagram with an optional title.
func Container(title string, children ...HTML) HTML {
	var inner []HTML
	if title != "" {
		inner = append(inner, div("diagram-title", Style{{"font-weight", "600"}, {"color", palette.Ink}, {"margin-bottom", "0.75rem"}},
			HTML(html.EscapeString(title))))
	}
	inner = append(inner, div("diagram-content", Style{{"display", "flex"}, {"justify-content", "center"}, {"overflow-x", "auto"}}, children...))
	return div("diagram-container", Style{{"margin", "1.5rem 0"}, {"padding", "1rem"}, {"border-radius", "8px"}}, inner...)
}
