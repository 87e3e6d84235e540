package model

import "math"

// Rect is an axis-aligned rectangle in container-local coordinates.
type Rect struct {
	X      float64 `json:"x" yaml:"x"`
	Y      float64 `json:"y" yaml:"y"`
	Width  float64 `json:"width" yaml:"width"`
	Height float64 `json:"height" yaml:"height"`
}

// WellFormed reports whether both dimensions are non-negative.
func (r Rect) WellFormed() bool {
	return r.Width >= 0 && r.Height >= 0
}

// Right returns the x coordinate of the right edge.
func (r Rect) Right() float64 { return r.X + r.Width }

// Bottom returns the y coordinate of the bottom edge.
func (r Rect) Bottom() float64 { return r.Y + r.Height }

// Area returns Width*Height.
func (r Rect) Area() float64 {
	return r.Width * r.Height
}

// Contains reports whether inner lies entirely within r (edges may touch).
func (r Rect) Contains(inner Rect) bool {
	return inner.X >= r.X && inner.Y >= r.Y &&
		inner.Right() <= r.Right() && inner.Bottom() <= r.Bottom()
}

// Overlaps reports whether the interiors of r and o intersect.
// Rectangles that only share an edge do not overlap.
func (r Rect) Overlaps(o Rect) bool {
	return r.X < o.Right() && o.X < r.Right() &&
		r.Y < o.Bottom() && o.Y < r.Bottom()
}

// Normalize returns a copy with non-finite coordinates and negative sizes clamped to zero.
func (r Rect) Normalize() Rect {
	return Rect{
		X:      finite(r.X),
		Y:      finite(r.Y),
		Width:  NonNegative(r.Width),
		Height: NonNegative(r.Height),
	}
}

// NonNegative clamps negative, NaN and infinite values to zero.
func NonNegative(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	return v
}

func finite(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
