package diagram

import (
	"strconv"

	"github.com/matzehuels/otelviz/pkg/geom"
	"github.com/matzehuels/otelviz/pkg/palette"
	"github.com/matzehuels/otelviz/pkg/scene"
)

// Layer layout constants.
const (
	LayerWidth   = 300
	LayerHeight  = 50
	LayerGap     = 8
	LayerPadding = 30
	layerRadius  = 6
)

// Layer is one band of a layered diagram. Items are used by [Stack].
type Layer struct {
	Label       string   `json:"label" yaml:"label" toml:"label"`
	Description string   `json:"description,omitempty" yaml:"description,omitempty" toml:"description,omitempty"`
	Color       string   `json:"color,omitempty" yaml:"color,omitempty" toml:"color,omitempty"`
	Items       []string `json:"items,omitempty" yaml:"items,omitempty" toml:"items,omitempty"`
}

// LayerSpec describes a vertical stack of layers. Direction "up" renders
// the last layer at the top.
type LayerSpec struct {
	Layers    []Layer `json:"layers" yaml:"layers" toml:"layers"`
	Title     string  `json:"title,omitempty" yaml:"title,omitempty" toml:"title,omitempty"`
	Direction string  `json:"direction,omitempty" yaml:"direction,omitempty" toml:"direction,omitempty"` // "down" (default) or "up"
}

// LayerSize returns the canvas size for the spec.
func LayerSize(spec LayerSpec) (w, h float64) {
	return LayerWidth + 2*LayerPadding,
		span(len(spec.Layers), LayerHeight, LayerGap) + 2*LayerPadding + withTitle(spec.Title)
}

// order returns input indexes in render order. The input is never mutated.
func (s LayerSpec) order() []int {
	idx := make([]int, len(s.Layers))
	for i := range idx {
		idx[i] = i
		if s.Direction == "up" {
			idx[i] = len(s.Layers) - 1 - i
		}
	}
	return idx
}

// LayerDiagram stacks the layers top to bottom. A layer's color is chosen by its
// input position, so reversing the direction moves layers without
// recoloring them.
func LayerDiagram(spec LayerSpec) scene.Scene {
	w, h := LayerSize(spec)
	sc := scene.Scene{Width: w, Height: h}
	if spec.Title != "" {
		sc.Shapes = append(sc.Shapes, title(w, spec.Title))
	}

	top := LayerPadding + withTitle(spec.Title)
	for row, i := range spec.order() {
		layer := spec.Layers[i]
		r := geom.Rect{X: LayerPadding, Y: top + float64(row)*(LayerHeight+LayerGap), W: LayerWidth, H: LayerHeight}
		band := filledBox(r, palette.Resolve(layer.Color, palette.Layers, i, palette.Blue))
		band.RX = layerRadius

		labelY := r.CenterY()
		if layer.Description != "" {
			labelY -= 8
		}
		g := scene.Group{Class: "layer", Key: strconv.Itoa(i), Shapes: []scene.Shape{
			band,
			centered(r.CenterX(), labelY, layer.Label, white, labelSize, 600),
		}}
		if layer.Description != "" {
			t := caption(r.CenterX(), r.CenterY()+10, layer.Description, white, itemSize, 0)
			t.Opacity = 0.8
			g.Shapes = append(g.Shapes, t)
		}
		sc.Shapes = append(sc.Shapes, g)
	}
	return sc
}
