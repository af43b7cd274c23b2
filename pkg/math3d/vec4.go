package math3d

import "math"

// Vec4 represents a homogeneous 3D point (or a 4D row vector).
type Vec4 struct {
	X, Y, Z, W float64
}

// V4 creates a new Vec4.
func V4(x, y, z, w float64) Vec4 {
	return Vec4{x, y, z, w}
}

// Point creates a homogeneous point (w=1) from a Vec3.
func Point(v Vec3) Vec4 {
	return Vec4{v.X, v.Y, v.Z, 1}
}

// Origin returns the homogeneous origin (0, 0, 0, 1).
func Origin() Vec4 {
	return Vec4{0, 0, 0, 1}
}

// Vec3 returns the Vec3 portion (ignoring W).
func (v Vec4) Vec3() Vec3 {
	return Vec3{v.X, v.Y, v.Z}
}

// XY returns the first two components.
func (v Vec4) XY() Vec2 {
	return Vec2{v.X, v.Y}
}

// MulMat4 returns the row-vector product v·m.
func (v Vec4) MulMat4(m Mat4) Vec4 {
	return Vec4{
		v.X*m[0] + v.Y*m[4] + v.Z*m[8] + v.W*m[12],
		v.X*m[1] + v.Y*m[5] + v.Z*m[9] + v.W*m[13],
		v.X*m[2] + v.Y*m[6] + v.Z*m[10] + v.W*m[14],
		v.X*m[3] + v.Y*m[7] + v.Z*m[11] + v.W*m[15],
	}
}

// PerspectiveDivide divides every component by W, leaving W at 1.
// ok is false when W is zero or the quotient is not finite; the
// returned vector is then the homogeneous origin.
func (v Vec4) PerspectiveDivide() (ndc Vec4, ok bool) {
	if v.W == 0 {
		return Origin(), false
	}
	inv := 1 / v.W
	ndc = Vec4{v.X * inv, v.Y * inv, v.Z * inv, 1}
	if !finite(ndc.X) || !finite(ndc.Y) || !finite(ndc.Z) {
		return Origin(), false
	}
	return ndc, true
}

// Dot returns the dot product.
//
//nolint:st1016 // a·b naming convention is clearer for vector operations
func (a Vec4) Dot(b Vec4) float64 {
	return a.X*b.X + a.Y*b.Y + a.Z*b.Z + a.W*b.W
}

// Add returns the vector sum.
//
//nolint:st1016 // a+b naming convention is clearer for vector operations
func (a Vec4) Add(b Vec4) Vec4 {
	return Vec4{a.X + b.X, a.Y + b.Y, a.Z + b.Z, a.W + b.W}
}

// Sub returns the vector difference.
//
//nolint:st1016 // a-b naming convention is clearer for vector operations
func (a Vec4) Sub(b Vec4) Vec4 {
	return Vec4{a.X - b.X, a.Y - b.Y, a.Z - b.Z, a.W - b.W}
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
