package model

import "math"

// Rect is an axis-aligned rectangle defined by two corners. When used as
// a page margin the coordinates are fractions in [0,1]; when used as an
// element bounding box they are absolute page units with the origin at
// the bottom-left and y increasing upward.
//
// No ordering of the corners is assumed. Callers that compare rectangles
// normalize first via Normalized.
type Rect struct {
	X1 float64 `json:"x1"`
	Y1 float64 `json:"y1"`
	X2 float64 `json:"x2"`
	Y2 float64 `json:"y2"`
}

// NewRect creates a rectangle from two corner coordinates.
func NewRect(x1, y1, x2, y2 float64) Rect {
	return Rect{X1: x1, Y1: y1, X2: x2, Y2: y2}
}

// Normalized returns the rectangle with (X1,Y1) as the min corner and
// (X2,Y2) as the max corner.
func (r Rect) Normalized() Rect {
	return Rect{
		X1: math.Min(r.X1, r.X2),
		Y1: math.Min(r.Y1, r.Y2),
		X2: math.Max(r.X1, r.X2),
		Y2: math.Max(r.Y1, r.Y2),
	}
}

// Width returns the horizontal extent of the normalized rectangle.
func (r Rect) Width() float64 {
	return math.Abs(r.X2 - r.X1)
}

// Height returns the vertical extent of the normalized rectangle.
func (r Rect) Height() float64 {
	return math.Abs(r.Y2 - r.Y1)
}

// Union returns the smallest rectangle covering both r and other.
func (r Rect) Union(other Rect) Rect {
	a, b := r.Normalized(), other.Normalized()
	return Rect{
		X1: math.Min(a.X1, b.X1),
		Y1: math.Min(a.Y1, b.Y1),
		X2: math.Max(a.X2, b.X2),
		Y2: math.Max(a.Y2, b.Y2),
	}
}

// Overlaps reports whether two rectangles overlap. Two rectangles
// overlap unless one lies entirely to the left/right or above/below the
// other; touching edges count as overlap.
func (r Rect) Overlaps(other Rect) bool {
	a, b := r.Normalized(), other.Normalized()

	if a.X1 > b.X2 || b.X1 > a.X2 {
		return false
	}
	if a.Y1 > b.Y2 || b.Y1 > a.Y2 {
		return false
	}
	return true
}
