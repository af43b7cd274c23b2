// Package collide provides coarse bounding volumes for point clouds.
package collide

import (
	"math"

	"github.com/taigrr/polyview/pkg/math3d"
)

// Cylinder is an upright bounding cylinder whose axis is the Z axis of the
// point cloud's frame. Its base sits at z=0.
type Cylinder struct {
	Radius float64
	Height float64
}

// NewCylinder sizes a cylinder from the largest axis-aligned extent of
// points: the radius is half of it and the height equals it. The bound is
// approximate; it ignores where the cloud actually sits.
func NewCylinder(points []math3d.Vec3) Cylinder {
	if len(points) == 0 {
		return Cylinder{}
	}
	lo, hi := points[0], points[0]
	for _, p := range points[1:] {
		lo = lo.Min(p)
		hi = hi.Max(p)
	}
	extent := hi.Sub(lo).Abs().MaxComponent()
	return Cylinder{Radius: extent / 2, Height: extent}
}

// Contains reports whether p lies within Radius of the Z axis in the XY
// plane and 0 <= p.Z <= Height.
func (c Cylinder) Contains(p math3d.Vec3) bool {
	return math.Hypot(p.X, p.Y) <= c.Radius && p.Z >= 0 && p.Z <= c.Height
}
