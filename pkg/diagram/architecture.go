package diagram

import (
	"github.com/matzehuels/otelviz/pkg/geom"
	"github.com/matzehuels/otelviz/pkg/palette"
	"github.com/matzehuels/otelviz/pkg/scene"
)

// Architecture layout constants.
const (
	ArchitectureWidth  = 600
	ArchitectureHeight = 400
	BoxWidth           = 140
	BoxHeight          = 60
	SubItemRow         = 18
	SubItemPadding     = 10
)

// Box is a free-form node placed at caller-chosen coordinates.
// A zero Width or Height falls back to the default box size.
type Box struct {
	ID       string   `json:"id" yaml:"id" toml:"id"`
	Label    string   `json:"label" yaml:"label" toml:"label"`
	X        float64  `json:"x" yaml:"x" toml:"x"`
	Y        float64  `json:"y" yaml:"y" toml:"y"`
	Width    float64  `json:"width,omitempty" yaml:"width,omitempty" toml:"width,omitempty"`
	Height   float64  `json:"height,omitempty" yaml:"height,omitempty" toml:"height,omitempty"`
	Color    string   `json:"color,omitempty" yaml:"color,omitempty" toml:"color,omitempty"`
	SubItems []string `json:"sub_items,omitempty" yaml:"sub_items,omitempty" toml:"sub_items,omitempty"`
}

// Connection is a directed edge between two node ids.
type Connection struct {
	From   string `json:"from" yaml:"from" toml:"from"`
	To     string `json:"to" yaml:"to" toml:"to"`
	Label  string `json:"label,omitempty" yaml:"label,omitempty" toml:"label,omitempty"`
	Dashed bool   `json:"dashed,omitempty" yaml:"dashed,omitempty" toml:"dashed,omitempty"`
}

// ArchitectureSpec describes boxes at explicit positions and the
// connections between them. A zero Width or Height uses 600×400.
type ArchitectureSpec struct {
	Boxes       []Box        `json:"boxes" yaml:"boxes" toml:"boxes"`
	Connections []Connection `json:"connections,omitempty" yaml:"connections,omitempty" toml:"connections,omitempty"`
	Width       float64      `json:"width,omitempty" yaml:"width,omitempty" toml:"width,omitempty"`
	Height      float64      `json:"height,omitempty" yaml:"height,omitempty" toml:"height,omitempty"`
}

// Rect returns the box's declared geometry with defaults applied.
// Connectors attach to this rectangle even when sub-items grow the box.
func (b Box) Rect() geom.Rect {
	return geom.Rect{X: b.X, Y: b.Y, W: b.Width, H: b.Height}.WithDefaults(BoxWidth, BoxHeight)
}

// RenderedHeight is the drawn height, grown by one row per sub-item.
func (b Box) RenderedHeight() float64 {
	h := b.Rect().H
	if len(b.SubItems) > 0 {
		h += float64(len(b.SubItems))*SubItemRow + SubItemPadding
	}
	return h
}

// indexBoxes maps ids to boxes. The first box with a given id wins.
func indexBoxes(boxes []Box) map[string]Box {
	m := make(map[string]Box, len(boxes))
	for _, b := range boxes {
		if _, ok := m[b.ID]; !ok {
			m[b.ID] = b
		}
	}
	return m
}

// Architecture draws connections first and boxes on top. Connections whose
// endpoints do not name a box are skipped without affecting the others.
func Architecture(spec ArchitectureSpec) scene.Scene {
	w, h := spec.Width, spec.Height
	if w <= 0 {
		w = ArchitectureWidth
	}
	if h <= 0 {
		h = ArchitectureHeight
	}
	sc := scene.Scene{Width: w, Height: h}
	byID := indexBoxes(spec.Boxes)

	for _, c := range spec.Connections {
		from, ok1 := byID[c.From]
		to, ok2 := byID[c.To]
		if !ok1 || !ok2 {
			continue
		}
		sc.Shapes = append(sc.Shapes, connector(from.Rect(), to.Rect(), c))
	}

	for _, b := range spec.Boxes {
		sc.Shapes = append(sc.Shapes, archBox(b))
	}
	return sc
}

// connector is a marker-headed line between the facing edges of two boxes.
func connector(from, to geom.Rect, c Connection) scene.Group {
	seg := geom.Connect(from, to)
	g := scene.Group{Class: "connection", Key: c.From + "->" + c.To, Shapes: []scene.Shape{
		scene.Line{
			X1: seg.Start.X, Y1: seg.Start.Y, X2: seg.End.X, Y2: seg.End.Y,
			Stroke: palette.Slate, StrokeWidth: strokeWidth, Dashed: c.Dashed, Arrow: true,
		},
	}}
	if c.Label != "" {
		mid := seg.Midpoint()
		g.Shapes = append(g.Shapes, caption(mid.X, mid.Y-8, c.Label, palette.Slate, itemSize, 0))
	}
	return g
}

func archBox(b Box) scene.Group {
	r := b.Rect()
	drawn := r
	drawn.H = b.RenderedHeight()

	g := scene.Group{Class: "box", Key: b.ID, Shapes: []scene.Shape{
		filledBox(drawn, palette.Or(b.Color, palette.Blue)),
	}}
	labelY := r.CenterY()
	if len(b.SubItems) > 0 {
		labelY = r.Y + 25
	}
	g.Shapes = append(g.Shapes, centered(r.CenterX(), labelY, b.Label, white, labelSize, 600))
	for i, item := range b.SubItems {
		t := caption(r.CenterX(), r.Y+45+float64(i)*SubItemRow, item, white, itemSize, 0)
		t.Opacity = boxOpacity
		g.Shapes = append(g.Shapes, t)
	}
	return g
}
