package models

import (
	"image/color"

	"github.com/taigrr/polyview/pkg/math3d"
)

// NewAxes returns a debug mesh of three unit line segments from the origin
// along +X, +Y and +Z, colored red, green and blue and labeled "X", "Y", "Z".
// No jitter is applied; the rest pose is the exact geometry.
func NewAxes() *Mesh {
	materials := NewMaterialTable()
	materials.Set("x", color.RGBA{255, 0, 0, 255})
	materials.Set("y", color.RGBA{0, 255, 0, 255})
	materials.Set("z", color.RGBA{0, 0, 255, 255})

	m := newMesh("axes",
		[]math3d.Vec4{
			math3d.V4(0, 0, 0, 1),
			math3d.V4(1, 0, 0, 1),
			math3d.V4(0, 1, 0, 1),
			math3d.V4(0, 0, 1, 1),
		},
		[]Face{
			{V: []int{0, 1}, Material: "x"},
			{V: []int{0, 2}, Material: "y"},
			{V: []int{0, 3}, Material: "z"},
		},
		materials,
	)
	m.Labels = []string{"X", "Y", "Z"}
	m.CommitRestPose()
	return m
}
