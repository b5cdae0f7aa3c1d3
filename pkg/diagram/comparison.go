package diagram

import (
	"github.com/matzehuels/otelviz/pkg/geom"
	"github.com/matzehuels/otelviz/pkg/palette"
	"github.com/matzehuels/otelviz/pkg/scene"
)

// Comparison layout constants.
const (
	SideWidth         = 200
	ComparisonPadding = 20
	ComparisonItemRow = 28
)

// Side is one column of a comparison.
type Side struct {
	Title string   `json:"title" yaml:"title" toml:"title"`
	Items []string `json:"items" yaml:"items" toml:"items"`
	Color string   `json:"color,omitempty" yaml:"color,omitempty" toml:"color,omitempty"`
}

// ComparisonSpec contrasts two item lists. Left defaults to red and Right
// to green.
type ComparisonSpec struct {
	Left        Side   `json:"left" yaml:"left" toml:"left"`
	Right       Side   `json:"right" yaml:"right" toml:"right"`
	CenterLabel string `json:"center_label,omitempty" yaml:"center_label,omitempty" toml:"center_label,omitempty"`
}

func (s ComparisonSpec) centerWidth() float64 {
	if s.CenterLabel != "" {
		return 80
	}
	return 40
}

func (s ComparisonSpec) boxHeight() float64 {
	return 40 + float64(max(len(s.Left.Items), len(s.Right.Items)))*ComparisonItemRow + 20
}

// ComparisonSize returns the canvas size.
func ComparisonSize(spec ComparisonSpec) (w, h float64) {
	return 2*SideWidth + spec.centerWidth() + 2*ComparisonPadding, spec.boxHeight() + 2*ComparisonPadding
}

// Comparison draws both sides as tinted outlined columns with a center arrow.
func Comparison(spec ComparisonSpec) scene.Scene {
	w, h := ComparisonSize(spec)
	sc := scene.Scene{Width: w, Height: h}
	cw := spec.centerWidth()
	bh := spec.boxHeight()

	left := geom.Rect{X: ComparisonPadding, Y: ComparisonPadding, W: SideWidth, H: bh}
	right := geom.Rect{X: ComparisonPadding + SideWidth + cw, Y: ComparisonPadding, W: SideWidth, H: bh}

	sc.Shapes = append(sc.Shapes, side("left", left, spec.Left, palette.Or(spec.Left.Color, palette.Red)))

	center := scene.Group{Class: "center", Shapes: []scene.Shape{
		arrow(
			geom.Point{X: left.Right() + 10, Y: h / 2},
			geom.Point{X: left.Right() + cw - 5, Y: h / 2},
			10, 6, palette.Slate,
		),
	}}
	if spec.CenterLabel != "" {
		center.Shapes = append(center.Shapes, caption(left.Right()+cw/2, h/2-15, spec.CenterLabel, palette.Slate, itemSize, 500))
	}
	sc.Shapes = append(sc.Shapes, center)

	sc.Shapes = append(sc.Shapes, side("right", right, spec.Right, palette.Or(spec.Right.Color, palette.Green)))
	return sc
}

func side(key string, r geom.Rect, s Side, color string) scene.Group {
	g := scene.Group{Class: "side", Key: key, Shapes: []scene.Shape{
		scene.Rect{X: r.X, Y: r.Y, W: r.W, H: r.H, RX: cornerRadius, Fill: color, Opacity: sideOpacity, Stroke: color, StrokeWidth: strokeWidth},
		caption(r.CenterX(), r.Y+25, s.Title, color, labelSize, 600),
	}}
	for i, item := range s.Items {
		g.Shapes = append(g.Shapes, caption(r.CenterX(), r.Y+55+float64(i)*ComparisonItemRow, item, palette.Text, 12, 0))
	}
	return g
}
