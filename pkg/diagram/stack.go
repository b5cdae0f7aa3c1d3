package diagram

import (
	"strconv"
	"unicode/utf8"

	"github.com/matzehuels/otelviz/pkg/geom"
	"github.com/matzehuels/otelviz/pkg/palette"
	"github.com/matzehuels/otelviz/pkg/scene"
)

// Stack layout constants.
const (
	StackWidth       = 420
	StackLayerHeight = 44
	StackItemsHeight = 30
	StackGap         = 8
	StackPadding     = 20
	chipHeight       = 20
	chipGap          = 6
	chipCharWidth    = 6.5
)

// StackSpec describes tinted layers drawn top-down in input order, each with
// an optional row of item chips.
type StackSpec struct {
	Layers []Layer `json:"layers" yaml:"layers" toml:"layers"`
	Title  string  `json:"title,omitempty" yaml:"title,omitempty" toml:"title,omitempty"`
}

func stackLayerHeight(l Layer) float64 {
	if len(l.Items) > 0 {
		return StackLayerHeight + StackItemsHeight
	}
	return StackLayerHeight
}

// StackSize returns the canvas size.
func StackSize(spec StackSpec) (w, h float64) {
	h = 2*StackPadding + withTitle(spec.Title)
	for i, l := range spec.Layers {
		if i > 0 {
			h += StackGap
		}
		h += stackLayerHeight(l)
	}
	return StackWidth + 2*StackPadding, h
}

// chipWidth estimates a chip's width from its label length.
func chipWidth(s string) float64 {
	return float64(utf8.RuneCountInString(s))*chipCharWidth + 16
}

// Stack draws each layer as a tinted band with its label and item chips.
func Stack(spec StackSpec) scene.Scene {
	w, h := StackSize(spec)
	sc := scene.Scene{Width: w, Height: h}
	if spec.Title != "" {
		sc.Shapes = append(sc.Shapes, title(w, spec.Title))
	}

	y := StackPadding + withTitle(spec.Title)
	for i, l := range spec.Layers {
		color := palette.Or(l.Color, palette.Blue)
		r := geom.Rect{X: StackPadding, Y: y, W: StackWidth, H: stackLayerHeight(l)}
		g := scene.Group{Class: "layer", Key: strconv.Itoa(i), Shapes: []scene.Shape{
			scene.Rect{X: r.X, Y: r.Y, W: r.W, H: r.H, RX: 6, Fill: palette.WithAlpha(color, 0x15), Stroke: palette.WithAlpha(color, 0x40), StrokeWidth: 1},
			centered(r.CenterX(), r.Y+StackLayerHeight/2, l.Label, color, labelSize, 600),
		}}
		g.Shapes = append(g.Shapes, chips(r, l.Items, color)...)
		sc.Shapes = append(sc.Shapes, g)
		y += r.H + StackGap
	}
	return sc
}

// chips centers a row of item chips under the layer label.
func chips(r geom.Rect, items []string, color string) []scene.Shape {
	if len(items) == 0 {
		return nil
	}
	total := float64(len(items)-1) * chipGap
	for _, it := range items {
		total += chipWidth(it)
	}
	x := r.CenterX() - total/2
	y := r.Y + StackLayerHeight - 6
	var out []scene.Shape
	for _, it := range items {
		cw := chipWidth(it)
		out = append(out,
			scene.Rect{X: x, Y: y, W: cw, H: chipHeight, RX: 4, Fill: "#ffffff", Stroke: palette.WithAlpha(color, 0x40), StrokeWidth: 1},
			centered(x+cw/2, y+chipHeight/2, it, palette.Text, itemSize, 0),
		)
		x += cw + chipGap
	}
	return out
}
