package geom

import "math"

// Point is a position in user units.
type Point struct {
	X, Y float64
}

// Rect is an axis-aligned rectangle anchored at its top-left corner.
type Rect struct {
	X, Y float64
	W, H float64
}

// Left returns the x coordinate of the left edge.
func (r Rect) Left() float64 { return r.X }

// Right returns the x coordinate of the right edge.
func (r Rect) Right() float64 { return r.X + r.W }

// Top returns the y coordinate of the top edge.
func (r Rect) Top() float64 { return r.Y }

// Bottom returns the y coordinate of the bottom edge.
func (r Rect) Bottom() float64 { return r.Y + r.H }

// CenterX returns the horizontal center of the rectangle.
func (r Rect) CenterX() float64 { return r.X + r.W/2 }

// CenterY returns the vertical center of the rectangle.
func (r Rect) CenterY() float64 { return r.Y + r.H/2 }

// Center returns the midpoint of the rectangle.
func (r Rect) Center() Point { return Point{X: r.CenterX(), Y: r.CenterY()} }

// Contains reports whether p lies inside or on the boundary of r.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.Left() && p.X <= r.Right() && p.Y >= r.Top() && p.Y <= r.Bottom()
}

// OnBoundary reports whether p lies on one of r's edges within eps.
func (r Rect) OnBoundary(p Point, eps float64) bool {
	inX := p.X >= r.Left()-eps && p.X <= r.Right()+eps
	inY := p.Y >= r.Top()-eps && p.Y <= r.Bottom()+eps
	if !inX || !inY {
		return false
	}
	return near(p.X, r.Left(), eps) || near(p.X, r.Right(), eps) ||
		near(p.Y, r.Top(), eps) || near(p.Y, r.Bottom(), eps)
}

// WithDefaults returns r with a zero (or negative) width or height replaced
// by the given defaults.
func (r Rect) WithDefaults(w, h float64) Rect {
	if r.W <= 0 {
		r.W = w
	}
	if r.H <= 0 {
		r.H = h
	}
	return r
}

func near(a, b, eps float64) bool { return math.Abs(a-b) <= eps }
