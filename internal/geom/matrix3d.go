package geom

import "math"

// Matrix4 is a 4x4 affine transformation matrix in row-major order,
// following the same row-vector convention as Matrix3: v' = v * M with
// v = (x, y, z, 1) and translation in the bottom row.
type Matrix4 [16]float64

// Identity4 returns the identity matrix.
func Identity4() Matrix4 {
	return Matrix4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// Translation3D returns a matrix translating by the given offset.
func Translation3D(offset Vec3) Matrix4 {
	return Matrix4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		offset.X, offset.Y, offset.Z, 1,
	}
}

// Scaling3D returns a matrix scaling by the given factors around the origin.
func Scaling3D(factor Vec3) Matrix4 {
	return Matrix4{
		factor.X, 0, 0, 0,
		0, factor.Y, 0, 0,
		0, 0, factor.Z, 0,
		0, 0, 0, 1,
	}
}

// RotationX returns a rotation around the X axis by degrees.
func RotationX(degrees float64) Matrix4 {
	rad := degrees * math.Pi / 180.0
	cos := math.Cos(rad)
	sin := math.Sin(rad)
	return Matrix4{
		1, 0, 0, 0,
		0, cos, -sin, 0,
		0, sin, cos, 0,
		0, 0, 0, 1,
	}
}

// RotationY returns a rotation around the Y axis by degrees.
func RotationY(degrees float64) Matrix4 {
	rad := degrees * math.Pi / 180.0
	cos := math.Cos(rad)
	sin := math.Sin(rad)
	return Matrix4{
		cos, 0, sin, 0,
		0, 1, 0, 0,
		-sin, 0, cos, 0,
		0, 0, 0, 1,
	}
}

// RotationZ returns a rotation around the Z axis by degrees.
func RotationZ(degrees float64) Matrix4 {
	rad := degrees * math.Pi / 180.0
	cos := math.Cos(rad)
	sin := math.Sin(rad)
	return Matrix4{
		cos, -sin, 0, 0,
		sin, cos, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// Rotation3D returns the composite rotation around X, then Y, then Z.
func Rotation3D(ax, ay, az float64) Matrix4 {
	return RotationX(ax).Mul(RotationY(ay)).Mul(RotationZ(az))
}

// Mul returns the matrix product m * n, applying m first.
func (m Matrix4) Mul(n Matrix4) Matrix4 {
	var r Matrix4
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			r[i*4+j] = m[i*4]*n[j] + m[i*4+1]*n[4+j] + m[i*4+2]*n[8+j] + m[i*4+3]*n[12+j]
		}
	}
	return r
}

// Apply transforms a point: v' = v * m with v = (x, y, z, 1).
func (m Matrix4) Apply(v Vec3) Vec3 {
	return Vec3{
		X: v.X*m[0] + v.Y*m[4] + v.Z*m[8] + m[12],
		Y: v.X*m[1] + v.Y*m[5] + v.Z*m[9] + m[13],
		Z: v.X*m[2] + v.Y*m[6] + v.Z*m[10] + m[14],
	}
}

// AroundPivot3D wraps a transform so it acts around the given pivot:
// T(-pivot) * m * T(pivot).
func AroundPivot3D(m Matrix4, pivot Vec3) Matrix4 {
	return Translation3D(pivot.Neg()).Mul(m).Mul(Translation3D(pivot))
}
