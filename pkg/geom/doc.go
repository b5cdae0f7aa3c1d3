// Package geom provides the geometric primitives shared by all diagram variants.
//
// # Coordinates
//
// All coordinates are SVG user units with the origin at the top-left corner
// and y growing downward. A [Rect] is anchored at its top-left corner.
//
// # Connectors
//
// [Connect] computes where a line between two rectangles should start and
// end so that it touches each rectangle's boundary instead of crossing its
// interior. The routing axis is picked from the dominant displacement between
// the two centers:
//
//	a := geom.Rect{X: 0, Y: 0, W: 140, H: 60}
//	b := geom.Rect{X: 300, Y: 20, W: 140, H: 60}
//	seg := geom.Connect(a, b) // leaves a's right edge, enters b's left edge
//
// Equal horizontal and vertical displacement resolves to the horizontal axis.
//
// [Arrowhead] builds the three-point polygon drawn at the end of a connector
// for variants that emit explicit polygons rather than SVG markers.
package geom
