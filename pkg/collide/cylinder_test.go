package collide

import (
	"testing"

	"github.com/taigrr/polyview/pkg/math3d"
)

func TestNewCylinder(t *testing.T) {
	c := NewCylinder([]math3d.Vec3{
		math3d.V3(-1, 0, 0),
		math3d.V3(3, 1, 0),
		math3d.V3(0, -1, 2),
	})
	if c.Radius != 2 || c.Height != 4 {
		t.Errorf("cylinder = %+v, want radius 2 height 4", c)
	}

	if empty := NewCylinder(nil); empty != (Cylinder{}) {
		t.Errorf("empty cloud = %+v, want zero cylinder", empty)
	}
}

func TestCylinderContains(t *testing.T) {
	c := Cylinder{Radius: 2, Height: 4}

	tests := []struct {
		name string
		p    math3d.Vec3
		want bool
	}{
		{"on axis", math3d.V3(0, 0, 1), true},
		{"on the wall", math3d.V3(2, 0, 3), true},
		{"diagonal inside", math3d.V3(1, 1, 2), true},
		{"base", math3d.V3(0, 0, 0), true},
		{"top", math3d.V3(0, 0, 4), true},
		{"outside radius", math3d.V3(1.5, 1.5, 2), false},
		{"below base", math3d.V3(0, 0, -0.1), false},
		{"above top", math3d.V3(0, 0, 4.1), false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := c.Contains(tc.p); got != tc.want {
				t.Errorf("Contains(%v) = %v, want %v", tc.p, got, tc.want)
			}
		})
	}
}
