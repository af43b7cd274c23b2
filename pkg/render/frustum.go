package render

import (
	"github.com/taigrr/polyview/pkg/math3d"
)

// Plane is the set of points p with Normal·p + D = 0.
type Plane struct {
	Normal math3d.Vec3
	D      float64
}

// Normalize scales the plane so its normal has unit length, making
// DistanceToPoint a true distance.
func (p *Plane) Normalize() {
	l := p.Normal.Len()
	if l == 0 {
		return
	}
	p.Normal = p.Normal.Scale(1.0 / l)
	p.D /= l
}

// DistanceToPoint returns the signed distance from the plane to a point.
// Positive is on the normal's side.
func (p Plane) DistanceToPoint(point math3d.Vec3) float64 {
	return p.Normal.Dot(point) + p.D
}

// Frustum holds the six world-space planes bounding what a camera sees,
// normals pointing inward.
type Frustum struct {
	Planes [6]Plane
}

// Plane indices into Frustum.Planes.
const (
	FrustumLeft = iota
	FrustumRight
	FrustumBottom
	FrustumTop
	FrustumNear
	FrustumFar
)

// NewFrustumFromMatrix extracts frustum planes from a view-projection matrix.
// Points are row vectors, so clip coordinate j is the dot product with
// column j and each plane is the w column plus or minus another column.
func NewFrustumFromMatrix(m math3d.Mat4) Frustum {
	w := m.Col(3)
	plane := func(col int, sign float64) Plane {
		c := m.Col(col)
		p := Plane{
			Normal: math3d.V3(w.X+sign*c.X, w.Y+sign*c.Y, w.Z+sign*c.Z),
			D:      w.W + sign*c.W,
		}
		p.Normalize()
		return p
	}

	var f Frustum
	f.Planes[FrustumLeft] = plane(0, 1)
	f.Planes[FrustumRight] = plane(0, -1)
	f.Planes[FrustumBottom] = plane(1, 1)
	f.Planes[FrustumTop] = plane(1, -1)
	f.Planes[FrustumNear] = plane(2, 1)
	f.Planes[FrustumFar] = plane(2, -1)
	return f
}

// AABB is an axis-aligned bounding box.
type AABB struct {
	Min math3d.Vec3
	Max math3d.Vec3
}

// NewAABB creates an AABB from min and max points, such as Mesh.Bounds.
func NewAABB(min, max math3d.Vec3) AABB {
	return AABB{Min: min, Max: max}
}

// IntersectAABB reports whether any part of box may be inside the frustum.
// The test is conservative: boxes near a frustum corner can pass while
// lying fully outside.
func (f Frustum) IntersectAABB(box AABB) bool {
	for _, plane := range f.Planes {
		// Corner furthest along the normal
		far := box.Min
		if plane.Normal.X >= 0 {
			far.X = box.Max.X
		}
		if plane.Normal.Y >= 0 {
			far.Y = box.Max.Y
		}
		if plane.Normal.Z >= 0 {
			far.Z = box.Max.Z
		}
		if plane.DistanceToPoint(far) < 0 {
			return false
		}
	}
	return true
}

// ContainsPoint reports whether p is inside the frustum.
func (f Frustum) ContainsPoint(p math3d.Vec3) bool {
	for _, plane := range f.Planes {
		if plane.DistanceToPoint(p) < 0 {
			return false
		}
	}
	return true
}
