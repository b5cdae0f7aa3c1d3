package geom

import (
	"fmt"
	"math"
	"strings"
)

// Segment is a straight connector between two points.
type Segment struct {
	Start, End Point
}

// Midpoint returns the point halfway along the segment.
func (s Segment) Midpoint() Point {
	return Point{X: (s.Start.X + s.End.X) / 2, Y: (s.Start.Y + s.End.Y) / 2}
}

// Horizontal reports whether the segment was routed along the x axis.
func (s Segment) Horizontal() bool { return s.Start.Y == s.End.Y && s.Start.X != s.End.X }

// Connect returns the connector from one rectangle to another.
//
// If the horizontal displacement between the centers is at least the
// vertical one, the connector exits from's left or right edge (whichever
// faces to) and enters to's opposite edge, keeping each center's y. Otherwise
// it uses the top and bottom edges and keeps each center's x.
func Connect(from, to Rect) Segment {
	a, b := from.Center(), to.Center()
	dx, dy := b.X-a.X, b.Y-a.Y

	seg := Segment{Start: a, End: b}
	if math.Abs(dx) >= math.Abs(dy) {
		if dx > 0 {
			seg.Start.X, seg.End.X = from.Right(), to.Left()
		} else {
			seg.Start.X, seg.End.X = from.Left(), to.Right()
		}
		return seg
	}
	if dy > 0 {
		seg.Start.Y, seg.End.Y = from.Bottom(), to.Top()
	} else {
		seg.Start.Y, seg.End.Y = from.Top(), to.Bottom()
	}
	return seg
}

// Direction is one of the four axis-aligned orientations.
type Direction int

const (
	Right Direction = iota
	Down
	Left
	Up
)

var directionNames = [...]string{"right", "down", "left", "up"}

// String returns the lower-case direction name.
func (d Direction) String() string {
	if d < Right || d > Up {
		return fmt.Sprintf("Direction(%d)", int(d))
	}
	return directionNames[d]
}

// ParseDirection maps a name to a Direction. Unknown names map to Right.
func ParseDirection(s string) Direction {
	for i, name := range directionNames {
		if strings.EqualFold(s, name) {
			return Direction(i)
		}
	}
	return Right
}

// Arrowhead returns the triangle whose tip sits at tip and which points in
// direction d. length is measured along d, halfWidth across it.
func Arrowhead(tip Point, d Direction, length, halfWidth float64) []Point {
	switch d {
	case Down:
		return []Point{
			{X: tip.X - halfWidth, Y: tip.Y - length},
			{X: tip.X + halfWidth, Y: tip.Y - length},
			tip,
		}
	case Left:
		return []Point{
			{X: tip.X + length, Y: tip.Y - halfWidth},
			{X: tip.X + length, Y: tip.Y + halfWidth},
			tip,
		}
	case Up:
		return []Point{
			{X: tip.X - halfWidth, Y: tip.Y + length},
			{X: tip.X + halfWidth, Y: tip.Y + length},
			tip,
		}
	default:
		return []Point{
			{X: tip.X - length, Y: tip.Y - halfWidth},
			{X: tip.X - length, Y: tip.Y + halfWidth},
			tip,
		}
	}
}
