package render

import (
	"math"

	"github.com/taigrr/polyview/pkg/math3d"
)

// Projection holds the perspective and viewport matrices for one camera
// configuration and viewport size. It is a snapshot: rebuild it when the
// camera's field of view or the viewport changes.
type Projection struct {
	Near, Far  float64
	HFOV, VFOV float64
	Width      int
	Height     int

	Matrix   math3d.Mat4 // Camera space to clip space
	Viewport math3d.Mat4 // NDC to pixels, Y flipped, origin at the center
}

// NewProjection builds the projection for cam at width×height pixels. The
// vertical field of view is the horizontal one scaled by height/width.
func NewProjection(cam *Camera, width, height int) Projection {
	p := Projection{
		Near:   cam.Near,
		Far:    cam.Far,
		HFOV:   cam.HFOV,
		VFOV:   cam.HFOV * float64(height) / float64(width),
		Width:  width,
		Height: height,
	}

	right := math.Tan(p.HFOV / 2)
	top := math.Tan(p.VFOV / 2)
	n, f := p.Near, p.Far

	m00 := 1 / right
	m11 := 1 / top
	m22 := (f + n) / (f - n)
	m32 := -2 * n * f / (f - n)
	p.Matrix = math3d.Mat4{
		m00, 0, 0, 0,
		0, m11, 0, 0,
		0, 0, m22, 1,
		0, 0, m32, 0,
	}

	hw, hh := p.HalfSize()
	p.Viewport = math3d.Mat4{
		hw, 0, 0, 0,
		0, -hh, 0, 0,
		0, 0, 1, 0,
		hw, hh, 0, 1,
	}
	return p
}

// HalfSize returns the integer half width and height in pixels. These are
// also the pixel coordinates the NDC origin maps to.
func (p Projection) HalfSize() (hw, hh float64) {
	return float64(p.Width / 2), float64(p.Height / 2)
}
