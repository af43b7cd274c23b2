package render

import (
	"math"

	"github.com/charmbracelet/harmonica"
	"github.com/taigrr/polyview/pkg/math3d"
	"github.com/taigrr/polyview/pkg/models"
)

// Spinner applies the idle rotation animation to a mesh. Each enabled axis
// turns the mesh by -Step radians per frame, in X, Y, Z order.
type Spinner struct {
	X, Y, Z bool
	Step    float64
}

// NewSpinner returns a spinner turning rate radians per second at fps
// frames per second. The step is fixed per frame.
func NewSpinner(fps int, rate float64) Spinner {
	return Spinner{Step: rate * harmonica.FPS(fps)}
}

// Active reports whether any axis is enabled.
func (s Spinner) Active() bool {
	return s.X || s.Y || s.Z
}

// Apply rotates mesh by one frame's step about each enabled axis.
func (s Spinner) Apply(mesh *models.Mesh) {
	if mesh == nil || !s.Active() {
		return
	}
	angle := -s.Step
	if s.X {
		mesh.Rotate(math3d.AxisX, angle)
	}
	if s.Y {
		mesh.Rotate(math3d.AxisY, angle)
	}
	if s.Z {
		mesh.Rotate(math3d.AxisZ, angle)
	}
}

// LegacySpinAngle is the tick-keyed spin angle of the original viewer:
// the negated millisecond counter modulo 0.005. The result always lies in
// (-0.005, 0], so the animation barely moves; it is kept for parity checks.
func LegacySpinAngle(ms int64) float64 {
	return -math.Mod(float64(ms), 0.005)
}
