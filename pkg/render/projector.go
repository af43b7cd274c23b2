// Package render turns meshes into screen-space polygons and rasterizes
// them for the terminal and for image snapshots.
package render

import (
	"errors"
	"fmt"
	"image/color"
	"math"

	"github.com/taigrr/polyview/pkg/math3d"
	"github.com/taigrr/polyview/pkg/models"
)

// ErrDegenerateGeometry is reported when a vertex's homogeneous w is zero or
// the perspective divide produces a non-finite coordinate.
var ErrDegenerateGeometry = errors.New("render: degenerate homogeneous coordinate")

// CullMode selects how faces touching off-screen vertices are discarded.
type CullMode int

const (
	// CullSentinel drops a face when any of its pixel coordinates equals the
	// viewport half width or half height, where clip-rejected vertices land.
	CullSentinel CullMode = iota
	// CullClip drops a face when any of its vertices was clip-rejected, and
	// skips the whole mesh when its bounds lie outside the view frustum.
	CullClip
)

func (m CullMode) String() string {
	switch m {
	case CullSentinel:
		return "sentinel"
	case CullClip:
		return "clip"
	default:
		return fmt.Sprintf("CullMode(%d)", int(m))
	}
}

// ParseCullMode parses "sentinel" or "clip".
func ParseCullMode(s string) (CullMode, error) {
	switch s {
	case "sentinel", "":
		return CullSentinel, nil
	case "clip":
		return CullClip, nil
	default:
		return 0, fmt.Errorf("unknown cull mode %q", s)
	}
}

// Polygon is one face ready for rasterization.
type Polygon struct {
	Points []math3d.Vec2 // Pixel coordinates
	Color  color.RGBA
	Filled bool
	Label  string
	Face   int // Index into the source mesh's faces
}

// ScreenVertex is a vertex after projection. Clipped vertices were outside
// the unit NDC cube (or degenerate) and sit at the viewport center.
type ScreenVertex struct {
	Pos     math3d.Vec2
	Clipped bool
}

// Projector projects meshes into screen polygons.
type Projector struct {
	Cull CullMode
	Fill bool
}

// ProjectVertex takes a world-space vertex through viewProj, the perspective
// divide and the viewport. A vertex outside [-1,1] on any NDC axis is
// replaced by the homogeneous origin before the viewport, so it lands on the
// viewport center. A zero or non-finite w is handled the same way and also
// returns ErrDegenerateGeometry.
func ProjectVertex(v math3d.Vec4, viewProj math3d.Mat4, proj Projection) (ScreenVertex, error) {
	ndc, ok := v.MulMat4(viewProj).PerspectiveDivide()
	var err error
	clipped := false
	switch {
	case !ok:
		err = ErrDegenerateGeometry
		clipped = true
	case math.Abs(ndc.X) > 1 || math.Abs(ndc.Y) > 1 || math.Abs(ndc.Z) > 1:
		clipped = true
	}
	if clipped {
		ndc = math3d.Origin()
	}
	px := ndc.MulMat4(proj.Viewport).XY()
	return ScreenVertex{Pos: px, Clipped: clipped}, err
}

// ScreenVertices projects every vertex of mesh. Degenerate vertices are
// reported as clipped; no error escapes a frame.
func (p Projector) ScreenVertices(mesh *models.Mesh, cam *Camera, proj Projection) []ScreenVertex {
	viewProj := cam.ViewMatrix().Mul(proj.Matrix)
	out := make([]ScreenVertex, len(mesh.Vertices))
	for i, v := range mesh.Vertices {
		out[i], _ = ProjectVertex(v, viewProj, proj)
	}
	return out
}

// Project returns the polygons to draw this frame, in face order.
func (p Projector) Project(mesh *models.Mesh, cam *Camera, proj Projection) []Polygon {
	if mesh == nil || len(mesh.Faces) == 0 {
		return nil
	}
	if p.Cull == CullClip && !cam.Frustum(proj).IntersectAABB(NewAABB(mesh.Bounds())) {
		return nil
	}

	screen := p.ScreenVertices(mesh, cam, proj)
	polys := make([]Polygon, 0, len(mesh.Faces))
	for i, f := range mesh.Faces {
		pts := make([]math3d.Vec2, len(f.V))
		visible := true
		for j, idx := range f.V {
			sv := screen[idx]
			pts[j] = sv.Pos
			if p.culled(sv, proj) {
				visible = false
				break
			}
		}
		if !visible {
			continue
		}
		polys = append(polys, Polygon{
			Points: pts,
			Color:  mesh.FaceColor(i),
			Filled: p.Fill,
			Label:  mesh.FaceLabel(i),
			Face:   i,
		})
	}
	return polys
}

// Vertices returns the pixel positions of the vertices that survive culling,
// for drawing vertex markers.
func (p Projector) Vertices(mesh *models.Mesh, cam *Camera, proj Projection) []math3d.Vec2 {
	if mesh == nil {
		return nil
	}
	var out []math3d.Vec2
	for _, sv := range p.ScreenVertices(mesh, cam, proj) {
		if !p.culled(sv, proj) {
			out = append(out, sv.Pos)
		}
	}
	return out
}

func (p Projector) culled(sv ScreenVertex, proj Projection) bool {
	if p.Cull == CullClip {
		return sv.Clipped
	}
	hw, hh := proj.HalfSize()
	return sv.Pos.X == hw || sv.Pos.X == hh || sv.Pos.Y == hw || sv.Pos.Y == hh
}
