// Package models provides the polygon mesh model and its file loaders.
package models

import (
	"fmt"
	"image/color"

	"github.com/taigrr/polyview/pkg/math3d"
)

// JitterOffset is the translation applied to every freshly loaded mesh
// before its rest pose is recorded. It keeps exact-zero coordinates off the
// viewport-center sentinel used by render.CullSentinel.
var JitterOffset = math3d.V3(0.0001, 0.0001, 0.0001)

// Mesh represents a polygon mesh with a mutable vertex buffer, the rest pose
// it resets to, faces, and the material table faces refer to.
type Mesh struct {
	Name      string
	Vertices  []math3d.Vec4 // Homogeneous, w=1
	Faces     []Face
	Materials *MaterialTable

	// Labels optionally names each face (used by the axes mesh).
	Labels []string

	rest []math3d.Vec4
}

// Face is an ordered polygon of vertex indices bound to a material name.
type Face struct {
	V        []int  // Indices into Mesh.Vertices
	Material string // Key into Mesh.Materials
}

// NewMesh builds a mesh from loader output, applies JitterOffset and records
// the rest pose. Every face index must be in range and every face material
// must resolve in materials; violations are programming errors and panic.
func NewMesh(name string, vertices []math3d.Vec4, faces []Face, materials *MaterialTable) *Mesh {
	m := newMesh(name, vertices, faces, materials)
	m.Translate(JitterOffset)
	m.CommitRestPose()
	return m
}

func newMesh(name string, vertices []math3d.Vec4, faces []Face, materials *MaterialTable) *Mesh {
	if materials == nil || materials.Len() == 0 {
		materials = DefaultMaterials()
	}
	for i, f := range faces {
		for _, idx := range f.V {
			if idx < 0 || idx >= len(vertices) {
				panic(fmt.Sprintf("models: face %d index %d out of range [0,%d)", i, idx, len(vertices)))
			}
		}
		if _, ok := materials.Get(f.Material); !ok {
			panic(fmt.Sprintf("models: face %d material %q not in table", i, f.Material))
		}
	}
	m := &Mesh{
		Name:      name,
		Vertices:  make([]math3d.Vec4, len(vertices)),
		Faces:     faces,
		Materials: materials,
	}
	copy(m.Vertices, vertices)
	return m
}

// Transform multiplies every vertex by mat (v = v·mat). Transforms
// accumulate on the current buffer.
func (m *Mesh) Transform(mat math3d.Mat4) {
	for i := range m.Vertices {
		m.Vertices[i] = m.Vertices[i].MulMat4(mat)
	}
}

// Translate moves the mesh by v.
func (m *Mesh) Translate(v math3d.Vec3) {
	m.Transform(math3d.Translate(v))
}

// Scale scales the mesh uniformly about the origin.
func (m *Mesh) Scale(s float64) {
	m.Transform(math3d.ScaleUniform(s))
}

// Rotate rotates the mesh about the given world axis.
func (m *Mesh) Rotate(axis math3d.Axis, angle float64) {
	m.Transform(math3d.Rotate(axis, angle))
}

// Reset replaces the vertex buffer with a copy of the rest pose, discarding
// every transform applied since the rest pose was recorded.
func (m *Mesh) Reset() {
	m.Vertices = make([]math3d.Vec4, len(m.rest))
	copy(m.Vertices, m.rest)
}

// CommitRestPose makes the current vertex buffer the new reset target.
func (m *Mesh) CommitRestPose() {
	m.rest = make([]math3d.Vec4, len(m.Vertices))
	copy(m.rest, m.Vertices)
}

// RestPose returns a copy of the rest pose.
func (m *Mesh) RestPose() []math3d.Vec4 {
	rest := make([]math3d.Vec4, len(m.rest))
	copy(rest, m.rest)
	return rest
}

// FaceColor returns the material color of face i.
func (m *Mesh) FaceColor(i int) color.RGBA {
	mat, _ := m.Materials.Get(m.Faces[i].Material)
	return mat.Color
}

// FaceLabel returns the label of face i, or "" when the mesh has none.
func (m *Mesh) FaceLabel(i int) string {
	if i < len(m.Labels) {
		return m.Labels[i]
	}
	return ""
}

// Bounds computes the axis-aligned bounding box of the current vertices.
func (m *Mesh) Bounds() (min, max math3d.Vec3) {
	if len(m.Vertices) == 0 {
		return math3d.Zero3(), math3d.Zero3()
	}
	min = m.Vertices[0].Vec3()
	max = min
	for _, v := range m.Vertices[1:] {
		min = min.Min(v.Vec3())
		max = max.Max(v.Vec3())
	}
	return min, max
}

// Center returns the center of the bounding box.
func (m *Mesh) Center() math3d.Vec3 {
	min, max := m.Bounds()
	return min.Add(max).Scale(0.5)
}

// Size returns the dimensions of the bounding box.
func (m *Mesh) Size() math3d.Vec3 {
	min, max := m.Bounds()
	return max.Sub(min)
}

// Points returns the current vertices as plain 3D points.
func (m *Mesh) Points() []math3d.Vec3 {
	pts := make([]math3d.Vec3, len(m.Vertices))
	for i, v := range m.Vertices {
		pts[i] = v.Vec3()
	}
	return pts
}

// PolygonCount returns the number of faces.
func (m *Mesh) PolygonCount() int {
	return len(m.Faces)
}

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int {
	return len(m.Vertices)
}

// MaterialCount returns the number of materials.
func (m *Mesh) MaterialCount() int {
	return m.Materials.Len()
}

// Clone creates a deep copy of the mesh, rest pose included.
func (m *Mesh) Clone() *Mesh {
	clone := &Mesh{
		Name:      m.Name,
		Vertices:  make([]math3d.Vec4, len(m.Vertices)),
		Faces:     make([]Face, len(m.Faces)),
		Materials: m.Materials.Clone(),
		rest:      m.RestPose(),
	}
	copy(clone.Vertices, m.Vertices)
	for i, f := range m.Faces {
		clone.Faces[i] = Face{V: append([]int(nil), f.V...), Material: f.Material}
	}
	if m.Labels != nil {
		clone.Labels = append([]string(nil), m.Labels...)
	}
	return clone
}
