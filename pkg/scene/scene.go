// Package scene holds the positioned shape list produced by diagram variants.
//
// A [Scene] is the hand-off point between layout and output: variants in
// package diagram compute geometry and emit shapes, and the sinks in
// package render/sink turn shapes into SVG, JSON or raster output. A scene
// carries no behavior beyond simple inspection helpers and is never mutated
// after a variant returns it.
package scene

import "github.com/matzehuels/otelviz/pkg/geom"

// Kind identifies a shape type.
type Kind string

// Shape kinds.
const (
	KindRect    Kind = "rect"
	KindLine    Kind = "line"
	KindPolygon Kind = "polygon"
	KindText    Kind = "text"
	KindGroup   Kind = "group"
)

// Shape is one of [Rect], [Line], [Polygon], [Text] or [Group].
type Shape interface {
	Kind() Kind
}

// Scene is a fully positioned diagram. Width and Height define the viewbox.
type Scene struct {
	Width, Height float64
	Shapes        []Shape
}

// Rect is a (possibly rounded) rectangle.
type Rect struct {
	X, Y, W, H  float64
	RX          float64
	Fill        string
	FillOpacity float64 // 0 means opaque
	Opacity     float64 // 0 means opaque
	Stroke      string
	StrokeWidth float64
}

// Line is a straight stroke. Arrow requests an arrowhead marker at the end.
type Line struct {
	X1, Y1, X2, Y2 float64
	Stroke         string
	StrokeWidth    float64
	Dashed         bool
	Arrow          bool
}

// Polygon is a closed filled shape, used for explicit arrowheads.
type Polygon struct {
	Points []geom.Point
	Fill   string
}

// Text is a single line of text. Anchor is "start", "middle" or "end";
// Middle centers the text vertically on Y.
type Text struct {
	X, Y    float64
	Content string
	Anchor  string
	Middle  bool
	Fill    string
	Size    float64
	Weight  int
	Opacity float64 // 0 means opaque
}

// Group bundles the shapes of one logical element (a box, an edge, a stage).
// Class names the element type and Key identifies the element within it.
type Group struct {
	Class  string
	Key    string
	Shapes []Shape
}

func (Rect) Kind() Kind    { return KindRect }
func (Line) Kind() Kind    { return KindLine }
func (Polygon) Kind() Kind { return KindPolygon }
func (Text) Kind() Kind    { return KindText }
func (Group) Kind() Kind   { return KindGroup }

// Bounds returns the rectangle's geometry.
func (r Rect) Bounds() geom.Rect { return geom.Rect{X: r.X, Y: r.Y, W: r.W, H: r.H} }

// Walk calls fn for every shape in depth-first order, including groups
// themselves before their children.
func (s Scene) Walk(fn func(Shape)) {
	walk(s.Shapes, fn)
}

func walk(shapes []Shape, fn func(Shape)) {
	for _, sh := range shapes {
		fn(sh)
		if g, ok := sh.(Group); ok {
			walk(g.Shapes, fn)
		}
	}
}

// Count returns how many shapes of kind k the scene contains at any depth.
func (s Scene) Count(k Kind) int {
	n := 0
	s.Walk(func(sh Shape) {
		if sh.Kind() == k {
			n++
		}
	})
	return n
}

// Groups returns all groups with the given class, in emission order.
func (s Scene) Groups(class string) []Group {
	var out []Group
	s.Walk(func(sh Shape) {
		if g, ok := sh.(Group); ok && g.Class == class {
			out = append(out, g)
		}
	})
	return out
}

// UsesMarkers reports whether any line requests an arrowhead marker.
func (s Scene) UsesMarkers() bool {
	found := false
	s.Walk(func(sh Shape) {
		if l, ok := sh.(Line); ok && l.Arrow {
			found = true
		}
	})
	return found
}

// Empty reports whether the scene has no shapes.
func (s Scene) Empty() bool { return len(s.Shapes) == 0 }
