package geom

// Rect is an axis-aligned rectangle given by its Min and Max corners.
type Rect struct {
	Min, Max Vec2
}

// NewRect builds a rectangle from two corners.
func NewRect(min, max Vec2) Rect {
	return Rect{Min: min, Max: max}
}

// Width returns the horizontal extent.
func (r Rect) Width() float64 {
	return r.Max.X - r.Min.X
}

// Height returns the vertical extent.
func (r Rect) Height() float64 {
	return r.Max.Y - r.Min.Y
}

// Center returns the midpoint of the rectangle.
func (r Rect) Center() Vec2 {
	return r.Min.Add(r.Max).Mul(0.5)
}

// Contains reports whether p lies inside the rectangle. Points on the
// boundary count as inside.
func (r Rect) Contains(p Vec2) bool {
	return p.X >= r.Min.X && p.X <= r.Max.X && p.Y >= r.Min.Y && p.Y <= r.Max.Y
}

// IsEmpty reports whether the rectangle has zero or negative area.
func (r Rect) IsEmpty() bool {
	return r.Width() <= 0 || r.Height() <= 0
}

// WithMargin returns the rectangle shrunk by margin on all four sides.
func (r Rect) WithMargin(margin float64) Rect {
	return Rect{
		Min: r.Min.Add(Vec2{X: margin, Y: margin}),
		Max: r.Max.Sub(Vec2{X: margin, Y: margin}),
	}
}
