package diagram

import (
	"math"

	"github.com/matzehuels/otelviz/pkg/geom"
	"github.com/matzehuels/otelviz/pkg/palette"
	"github.com/matzehuels/otelviz/pkg/scene"
)

// Connection diagram layout constants.
const (
	NodeWidth       = 140
	NodeHeight      = 50
	HubWidth        = 160
	HubHeight       = 60
	HubRadius       = 170
	NodeArrowLength = 60
	NodePadding     = 20
	spokeGap        = 20
)

// Connection layouts.
const (
	LayoutHorizontal = "horizontal"
	LayoutVertical   = "vertical"
	LayoutHub        = "hub"
)

// Node is a labelled node of a connection diagram.
type Node struct {
	ID    string `json:"id" yaml:"id" toml:"id"`
	Label string `json:"label" yaml:"label" toml:"label"`
	Color string `json:"color,omitempty" yaml:"color,omitempty" toml:"color,omitempty"`
	Icon  string `json:"icon,omitempty" yaml:"icon,omitempty" toml:"icon,omitempty"`
}

// ConnectionSpec describes nodes and the connections between them.
// With the hub layout, the first node is the hub and every other node is a
// spoke; a hub layout with fewer than two nodes falls back to horizontal.
type ConnectionSpec struct {
	Nodes       []Node       `json:"nodes" yaml:"nodes" toml:"nodes"`
	Connections []Connection `json:"connections,omitempty" yaml:"connections,omitempty" toml:"connections,omitempty"`
	Layout      string       `json:"layout,omitempty" yaml:"layout,omitempty" toml:"layout,omitempty"`
}

// Hub reports whether the spec renders as hub and spokes.
func (s ConnectionSpec) Hub() bool {
	return s.Layout == LayoutHub && len(s.Nodes) > 1
}

// label returns the label of the first connection matching the predicate.
func (s ConnectionSpec) label(match func(Connection) bool) string {
	for _, c := range s.Connections {
		if match(c) {
			return c.Label
		}
	}
	return ""
}

// ConnectionDiagram renders the description in its layout.
func ConnectionDiagram(spec ConnectionSpec) scene.Scene {
	if spec.Hub() {
		return hub(spec)
	}
	return sequence(spec, spec.Layout == LayoutVertical)
}

// hubRadius grows the default radius until spokes no longer overlap on
// the circumference.
func hubRadius(spokes int) float64 {
	need := float64(spokes) * (NodeWidth + spokeGap) / (2 * math.Pi)
	return max(HubRadius, need)
}

// SpokeCenter returns the center of spoke k of m around (cx, cy). Spokes
// start at the top and proceed clockwise.
func SpokeCenter(cx, cy, radius float64, k, m int) geom.Point {
	angle := -math.Pi/2 + 2*math.Pi*float64(k)/float64(m)
	return geom.Point{X: cx + radius*math.Cos(angle), Y: cy + radius*math.Sin(angle)}
}

func hub(spec ConnectionSpec) scene.Scene {
	center := spec.Nodes[0]
	spokes := spec.Nodes[1:]
	radius := hubRadius(len(spokes))

	cx := NodePadding + radius + NodeWidth/2
	cy := NodePadding + radius + NodeHeight/2
	sc := scene.Scene{Width: 2 * cx, Height: 2 * cy}

	hubRect := geom.Rect{X: cx - HubWidth/2, Y: cy - HubHeight/2, W: HubWidth, H: HubHeight}
	var edges, nodes []scene.Shape
	for k, n := range spokes {
		p := SpokeCenter(cx, cy, radius, k, len(spokes))
		r := geom.Rect{X: p.X - NodeWidth/2, Y: p.Y - NodeHeight/2, W: NodeWidth, H: NodeHeight}

		lbl := spec.label(func(c Connection) bool { return c.From == center.ID && c.To == n.ID })
		edges = append(edges, connector(hubRect, r, Connection{From: center.ID, To: n.ID, Label: lbl}))
		nodes = append(nodes, nodeBox(n, r, palette.Or(n.Color, palette.Slate)))
	}

	sc.Shapes = append(sc.Shapes, edges...)
	sc.Shapes = append(sc.Shapes, nodeBox(center, hubRect, palette.Or(center.Color, palette.Blue)))
	sc.Shapes = append(sc.Shapes, nodes...)
	return sc
}

// sequence lays nodes out in a line. The arrow after each node carries the
// label of the first connection leaving it.
func sequence(spec ConnectionSpec, vertical bool) scene.Scene {
	n := len(spec.Nodes)
	sc := scene.Scene{
		Width:  span(n, NodeWidth, NodeArrowLength) + 2*NodePadding,
		Height: NodeHeight + 2*NodePadding,
	}
	if vertical {
		sc.Width, sc.Height = NodeWidth+2*NodePadding, span(n, NodeHeight, NodeArrowLength)+2*NodePadding
	}

	for i, node := range spec.Nodes {
		r := geom.Rect{X: NodePadding, Y: NodePadding, W: NodeWidth, H: NodeHeight}
		if vertical {
			r.Y += float64(i) * (NodeHeight + NodeArrowLength)
		} else {
			r.X += float64(i) * (NodeWidth + NodeArrowLength)
		}
		sc.Shapes = append(sc.Shapes, nodeBox(node, r, palette.Or(node.Color, palette.Blue)))
		if i == n-1 {
			continue
		}

		start, tip := geom.Point{X: r.Right() + 8, Y: r.CenterY()}, geom.Point{X: r.Right() + NodeArrowLength - 8, Y: r.CenterY()}
		if vertical {
			start, tip = geom.Point{X: r.CenterX(), Y: r.Bottom() + 8}, geom.Point{X: r.CenterX(), Y: r.Bottom() + NodeArrowLength - 8}
		}
		g := arrow(start, tip, 8, 5, palette.Slate)
		g.Key = node.ID
		if lbl := spec.label(func(c Connection) bool { return c.From == node.ID }); lbl != "" {
			mid := geom.Segment{Start: start, End: tip}.Midpoint()
			t := caption(mid.X, mid.Y-8, lbl, palette.Slate, itemSize, 500)
			if vertical {
				t = scene.Text{X: mid.X + 8, Y: mid.Y, Content: lbl, Anchor: "start", Middle: true, Fill: palette.Slate, Size: itemSize, Weight: 500}
			}
			g.Shapes = append(g.Shapes, t)
		}
		sc.Shapes = append(sc.Shapes, g)
	}
	return sc
}

func nodeBox(n Node, r geom.Rect, color string) scene.Group {
	return scene.Group{Class: "node", Key: n.ID, Shapes: []scene.Shape{
		filledBox(r, color),
		centered(r.CenterX(), r.CenterY(), iconLabel(n.Icon, n.Label), white, labelSize, 500),
	}}
}
