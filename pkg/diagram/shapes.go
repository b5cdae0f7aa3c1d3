package diagram

import (
	"math"

	"github.com/matzehuels/otelviz/pkg/geom"
	"github.com/matzehuels/otelviz/pkg/palette"
	"github.com/matzehuels/otelviz/pkg/scene"
)

const (
	cornerRadius = 8
	boxOpacity   = 0.9
	sideOpacity  = 0.1 // comparison panels fade border and fill together
	strokeWidth  = 2

	labelSize = 14
	itemSize  = 11
	titleSize = 16
	titleY    = 20

	// titleOffset is the vertical space reserved for an optional title.
	titleOffset = 30

	white = "white"
)

// filledBox is the solid rounded box most variants use for their nodes.
func filledBox(r geom.Rect, fill string) scene.Rect {
	return scene.Rect{X: r.X, Y: r.Y, W: r.W, H: r.H, RX: cornerRadius, Fill: fill, Opacity: boxOpacity}
}

// centered returns a label centered on (x, y) in both axes.
func centered(x, y float64, content, fill string, size float64, weight int) scene.Text {
	return scene.Text{X: x, Y: y, Content: content, Anchor: "middle", Middle: true, Fill: fill, Size: size, Weight: weight}
}

// caption returns a horizontally centered label sitting on baseline y.
func caption(x, y float64, content, fill string, size float64, weight int) scene.Text {
	return scene.Text{X: x, Y: y, Content: content, Anchor: "middle", Fill: fill, Size: size, Weight: weight}
}

// title returns the diagram title centered over a canvas of width w.
func title(w float64, content string) scene.Text {
	return caption(w/2, titleY, content, palette.Ink, titleSize, 600)
}

// arrow draws a shaft from start toward tip and a filled head whose point
// sits exactly at tip. The head direction follows the dominant axis.
func arrow(start, tip geom.Point, headLength, halfWidth float64, color string) scene.Group {
	d := axis(start, tip)
	base := tip
	switch d {
	case geom.Right:
		base.X -= headLength
	case geom.Left:
		base.X += headLength
	case geom.Down:
		base.Y -= headLength
	case geom.Up:
		base.Y += headLength
	}
	return scene.Group{
		Class: "arrow",
		Shapes: []scene.Shape{
			scene.Line{X1: start.X, Y1: start.Y, X2: base.X, Y2: base.Y, Stroke: color, StrokeWidth: strokeWidth},
			scene.Polygon{Points: geom.Arrowhead(tip, d, headLength, halfWidth), Fill: color},
		},
	}
}

func axis(from, to geom.Point) geom.Direction {
	dx, dy := to.X-from.X, to.Y-from.Y
	if math.Abs(dx) >= math.Abs(dy) {
		if dx < 0 {
			return geom.Left
		}
		return geom.Right
	}
	if dy < 0 {
		return geom.Up
	}
	return geom.Down
}

// span returns the length of n elements of size each separated by gap.
// It is zero for n <= 0.
func span(n int, size, gap float64) float64 {
	if n <= 0 {
		return 0
	}
	return float64(n)*size + float64(n-1)*gap
}

func withTitle(t string) float64 {
	if t != "" {
		return titleOffset
	}
	return 0
}

// iconLabel prefixes a label with its icon glyph when one is set.
func iconLabel(icon, label string) string {
	if icon == "" {
		return label
	}
	if label == "" {
		return icon
	}
	return icon + " " + label
}

// or returns s, or def when s is empty.
func or(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
