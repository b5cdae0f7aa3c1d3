package diagram

import (
	"strconv"

	"github.com/matzehuels/otelviz/pkg/geom"
	"github.com/matzehuels/otelviz/pkg/palette"
	"github.com/matzehuels/otelviz/pkg/scene"
)

// Process layout constants.
const (
	ProcessStepWidth  = 160
	ProcessStepHeight = 64
	ProcessBadge      = 14
	ProcessConnector  = 36
	ProcessPadding    = 20
	cardBorder        = "#e2e8f0"
)

// ProcessStep is one numbered step. Icon replaces the step number in the badge.
type ProcessStep struct {
	Title       string `json:"title" yaml:"title" toml:"title"`
	Description string `json:"description,omitempty" yaml:"description,omitempty" toml:"description,omitempty"`
	Icon        string `json:"icon,omitempty" yaml:"icon,omitempty" toml:"icon,omitempty"`
	Color       string `json:"color,omitempty" yaml:"color,omitempty" toml:"color,omitempty"`
}

// ProcessSpec describes numbered steps in a row or column.
type ProcessSpec struct {
	Steps     []ProcessStep `json:"steps" yaml:"steps" toml:"steps"`
	Direction string        `json:"direction,omitempty" yaml:"direction,omitempty" toml:"direction,omitempty"`
}

// ProcessSize returns the canvas size.
func ProcessSize(spec ProcessSpec) (w, h float64) {
	n := len(spec.Steps)
	if spec.Direction == "vertical" {
		return ProcessStepWidth + 2*ProcessPadding, span(n, ProcessStepHeight, ProcessConnector) + 2*ProcessPadding
	}
	return span(n, ProcessStepWidth, ProcessConnector) + 2*ProcessPadding, ProcessStepHeight + 2*ProcessPadding
}

// Process draws each step as a card with a round badge, joined by connectors.
func Process(spec ProcessSpec) scene.Scene {
	vertical := spec.Direction == "vertical"
	w, h := ProcessSize(spec)
	sc := scene.Scene{Width: w, Height: h}

	for i, step := range spec.Steps {
		r := geom.Rect{X: ProcessPadding, Y: ProcessPadding, W: ProcessStepWidth, H: ProcessStepHeight}
		if vertical {
			r.Y += float64(i) * (ProcessStepHeight + ProcessConnector)
		} else {
			r.X += float64(i) * (ProcessStepWidth + ProcessConnector)
		}
		color := palette.Or(step.Color, palette.Blue)
		badge := or(step.Icon, strconv.Itoa(i+1))

		bx, by := r.X+12, r.CenterY()-ProcessBadge
		textX := bx + 2*ProcessBadge + 10
		titleY := r.CenterY()
		if step.Description != "" {
			titleY -= 8
		}
		g := scene.Group{Class: "step", Key: strconv.Itoa(i), Shapes: []scene.Shape{
			scene.Rect{X: r.X, Y: r.Y, W: r.W, H: r.H, RX: cornerRadius, Fill: "#ffffff", Stroke: cardBorder, StrokeWidth: 1},
			scene.Rect{X: bx, Y: by, W: 2 * ProcessBadge, H: 2 * ProcessBadge, RX: ProcessBadge, Fill: color},
			centered(bx+ProcessBadge, r.CenterY(), badge, white, 12, 600),
			scene.Text{X: textX, Y: titleY, Content: step.Title, Anchor: "start", Middle: true, Fill: palette.Ink, Size: 13, Weight: 600},
		}}
		if step.Description != "" {
			g.Shapes = append(g.Shapes, scene.Text{X: textX, Y: r.CenterY() + 10, Content: step.Description, Anchor: "start", Middle: true, Fill: palette.Text, Size: itemSize})
		}
		if i < len(spec.Steps)-1 {
			start, tip := geom.Point{X: r.Right() + 6, Y: r.CenterY()}, geom.Point{X: r.Right() + ProcessConnector - 6, Y: r.CenterY()}
			if vertical {
				start, tip = geom.Point{X: r.CenterX(), Y: r.Bottom() + 6}, geom.Point{X: r.CenterX(), Y: r.Bottom() + ProcessConnector - 6}
			}
			g.Shapes = append(g.Shapes, arrow(start, tip, 8, 5, palette.Slate))
		}
		sc.Shapes = append(sc.Shapes, g)
	}
	return sc
}
