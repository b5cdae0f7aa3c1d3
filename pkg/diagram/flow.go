package diagram

import (
	"strconv"

	"github.com/matzehuels/otelviz/pkg/geom"
	"github.com/matzehuels/otelviz/pkg/palette"
	"github.com/matzehuels/otelviz/pkg/scene"
)

// Flow layout constants.
const (
	FlowBoxWidth    = 120
	FlowBoxHeight   = 50
	FlowArrowLength = 40
	FlowPadding     = 20
)

// FlowSpec describes a linear sequence of steps.
type FlowSpec struct {
	Steps     []string `json:"steps" yaml:"steps" toml:"steps"`
	Direction string   `json:"direction,omitempty" yaml:"direction,omitempty" toml:"direction,omitempty"` // "horizontal" (default) or "vertical"
	Color     string   `json:"color,omitempty" yaml:"color,omitempty" toml:"color,omitempty"`
}

// Vertical reports whether steps stack top to bottom.
func (s FlowSpec) Vertical() bool { return s.Direction == "vertical" }

// FlowSize returns the canvas size for n steps.
func FlowSize(n int, vertical bool) (w, h float64) {
	long := span(n, FlowBoxWidth, FlowArrowLength) + 2*FlowPadding
	if vertical {
		long = span(n, FlowBoxHeight, FlowArrowLength) + 2*FlowPadding
		return FlowBoxWidth + 2*FlowPadding, long
	}
	return long, FlowBoxHeight + 2*FlowPadding
}

// Flow lays out the steps as boxes joined by arrows. Every box and arrow
// uses the single flow color.
func Flow(spec FlowSpec) scene.Scene {
	vertical := spec.Vertical()
	color := palette.Or(spec.Color, palette.Blue)
	w, h := FlowSize(len(spec.Steps), vertical)
	sc := scene.Scene{Width: w, Height: h}

	for i, step := range spec.Steps {
		r := geom.Rect{X: FlowPadding, Y: FlowPadding, W: FlowBoxWidth, H: FlowBoxHeight}
		if vertical {
			r.Y += float64(i) * (FlowBoxHeight + FlowArrowLength)
		} else {
			r.X += float64(i) * (FlowBoxWidth + FlowArrowLength)
		}

		g := scene.Group{Class: "step", Key: strconv.Itoa(i), Shapes: []scene.Shape{
			filledBox(r, color),
			centered(r.CenterX(), r.CenterY(), step, white, labelSize, 500),
		}}
		if i < len(spec.Steps)-1 {
			g.Shapes = append(g.Shapes, flowArrow(r, vertical, color))
		}
		sc.Shapes = append(sc.Shapes, g)
	}
	return sc
}

// flowArrow joins box r to the next box; the head touches the next box.
func flowArrow(r geom.Rect, vertical bool, color string) scene.Group {
	if vertical {
		start := geom.Point{X: r.CenterX(), Y: r.Bottom() + 5}
		tip := geom.Point{X: r.CenterX(), Y: r.Bottom() + FlowArrowLength}
		return arrow(start, tip, 10, 6, color)
	}
	start := geom.Point{X: r.Right() + 5, Y: r.CenterY()}
	tip := geom.Point{X: r.Right() + FlowArrowLength, Y: r.CenterY()}
	return arrow(start, tip, 10, 6, color)
}
