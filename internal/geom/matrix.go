package geom

import "math"

// Matrix3 is a 3x3 affine transformation matrix in row-major order.
// Points are row vectors and transform as v' = v * M, so composite
// transforms multiply in application order: the first transform applied
// is the leftmost factor. Layout:
//
//	| m0 m1 m2 |
//	| m3 m4 m5 |
//	| m6 m7 m8 |
//
// with translation in the bottom row (m6, m7).
type Matrix3 [9]float64

// Identity3 returns the identity matrix.
func Identity3() Matrix3 {
	return Matrix3{
		1, 0, 0,
		0, 1, 0,
		0, 0, 1,
	}
}

// Translation returns a matrix translating by (dx, dy).
func Translation(dx, dy float64) Matrix3 {
	return Matrix3{
		1, 0, 0,
		0, 1, 0,
		dx, dy, 1,
	}
}

// Scaling returns a matrix scaling by (sx, sy) around the origin.
func Scaling(sx, sy float64) Matrix3 {
	return Matrix3{
		sx, 0, 0,
		0, sy, 0,
		0, 0, 1,
	}
}

// Rotation returns a matrix rotating by the given angle in degrees
// around the origin.
func Rotation(degrees float64) Matrix3 {
	rad := degrees * math.Pi / 180.0
	cos := math.Cos(rad)
	sin := math.Sin(rad)
	return Matrix3{
		cos, -sin, 0,
		sin, cos, 0,
		0, 0, 1,
	}
}

// Mul returns the matrix product m * n. Because points are row vectors,
// the result applies m first and then n.
func (m Matrix3) Mul(n Matrix3) Matrix3 {
	var r Matrix3
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			r[i*3+j] = m[i*3]*n[j] + m[i*3+1]*n[3+j] + m[i*3+2]*n[6+j]
		}
	}
	return r
}

// Apply transforms a point: v' = v * m with v = (x, y, 1).
func (m Matrix3) Apply(v Vec2) Vec2 {
	return Vec2{
		X: v.X*m[0] + v.Y*m[3] + m[6],
		Y: v.X*m[1] + v.Y*m[4] + m[7],
	}
}

// ApplyAll transforms every vertex, returning a new slice.
func (m Matrix3) ApplyAll(vs []Vec2) []Vec2 {
	out := make([]Vec2, len(vs))
	for i, v := range vs {
		out[i] = m.Apply(v)
	}
	return out
}

// AroundPivot wraps a transform so it acts around the given pivot instead
// of the origin: T(-pivot) * m * T(pivot).
func AroundPivot(m Matrix3, pivot Vec2) Matrix3 {
	return Translation(-pivot.X, -pivot.Y).Mul(m).Mul(Translation(pivot.X, pivot.Y))
}
