package render

import (
	"math"

	"github.com/taigrr/polyview/pkg/math3d"
)

// CameraConfig holds the construction parameters of a Camera.
type CameraConfig struct {
	Position      math3d.Vec3
	HFOV          float64 // Horizontal field of view in radians
	Near          float64
	Far           float64
	MovingSpeed   float64 // Distance per control tick
	RotationSpeed float64 // Radians per control tick
}

// DefaultCameraConfig returns the stock viewer camera: placed at
// (-1, 6, -30) looking down +Z with a 60° horizontal field of view.
func DefaultCameraConfig() CameraConfig {
	return CameraConfig{
		Position:      math3d.V3(-1, 6, -30),
		HFOV:          math.Pi / 3,
		Near:          0.1,
		Far:           100,
		MovingSpeed:   0.3,
		RotationSpeed: 0.015,
	}
}

// Camera represents a 3D camera with position and pitch/yaw orientation.
// Its axes are derived from the angles on every query.
type Camera struct {
	// Position in world space
	Position math3d.Vec3

	// Orientation (radians)
	Pitch float64 // Rotation around X axis (look up/down)
	Yaw   float64 // Rotation around Y axis (look left/right)
	Roll  float64 // Tracked but not applied to the axes

	HFOV float64
	Near float64
	Far  float64

	MovingSpeed   float64
	RotationSpeed float64

	home math3d.Vec3
}

// NewCamera creates a camera from cfg. cfg.Position becomes the reset target.
func NewCamera(cfg CameraConfig) *Camera {
	return &Camera{
		Position:      cfg.Position,
		HFOV:          cfg.HFOV,
		Near:          cfg.Near,
		Far:           cfg.Far,
		MovingSpeed:   cfg.MovingSpeed,
		RotationSpeed: cfg.RotationSpeed,
		home:          cfg.Position,
	}
}

// Axes returns the forward, up and right vectors for the current pitch and
// yaw. They are rotated from the world axes each call, never incrementally.
func (c *Camera) Axes() (forward, up, right math3d.Vec3) {
	rot := math3d.RotateX(c.Pitch).Mul(math3d.RotateY(c.Yaw))
	forward = math3d.V4(0, 0, 1, 0).MulMat4(rot).Vec3()
	up = math3d.V4(0, 1, 0, 0).MulMat4(rot).Vec3()
	right = math3d.V4(1, 0, 0, 0).MulMat4(rot).Vec3()
	return forward, up, right
}

// Forward returns the forward direction vector.
func (c *Camera) Forward() math3d.Vec3 {
	f, _, _ := c.Axes()
	return f
}

// Up returns the up direction vector.
func (c *Camera) Up() math3d.Vec3 {
	_, u, _ := c.Axes()
	return u
}

// Right returns the right direction vector.
func (c *Camera) Right() math3d.Vec3 {
	_, _, r := c.Axes()
	return r
}

// ViewMatrix moves the world into camera space: translate by -Position,
// then rotate by a matrix whose columns are right, up and forward.
func (c *Camera) ViewMatrix() math3d.Mat4 {
	f, u, r := c.Axes()
	rot := math3d.Mat4{
		r.X, u.X, f.X, 0,
		r.Y, u.Y, f.Y, 0,
		r.Z, u.Z, f.Z, 0,
		0, 0, 0, 1,
	}
	return math3d.Translate(c.Position.Negate()).Mul(rot)
}

// Reset restores the home position and zeroes all three angles.
func (c *Camera) Reset() {
	c.Position = c.home
	c.Pitch, c.Yaw, c.Roll = 0, 0, 0
}

// MoveForward moves the camera along its forward axis (or back if negative).
func (c *Camera) MoveForward(distance float64) {
	c.Position = c.Position.Add(c.Forward().Scale(distance))
}

// MoveRight moves the camera along its right axis (or left if negative).
func (c *Camera) MoveRight(distance float64) {
	c.Position = c.Position.Add(c.Right().Scale(distance))
}

// MoveUp moves the camera along its up axis (or down if negative).
func (c *Camera) MoveUp(distance float64) {
	c.Position = c.Position.Add(c.Up().Scale(distance))
}

// Apply advances the camera by one control tick. Movement uses fixed
// increments along the current axes; turning uses fixed angle increments.
func (c *Camera) Apply(ctl Control) {
	if ctl.Has(ControlReset) {
		c.Reset()
	}
	if ctl.Has(ControlLeft) {
		c.MoveRight(-c.MovingSpeed)
	}
	if ctl.Has(ControlRight) {
		c.MoveRight(c.MovingSpeed)
	}
	if ctl.Has(ControlForward) {
		c.MoveForward(c.MovingSpeed)
	}
	if ctl.Has(ControlBack) {
		c.MoveForward(-c.MovingSpeed)
	}
	if ctl.Has(ControlUp) {
		c.MoveUp(c.MovingSpeed)
	}
	if ctl.Has(ControlDown) {
		c.MoveUp(-c.MovingSpeed)
	}
	if ctl.Has(ControlYawLeft) {
		c.Yaw -= c.RotationSpeed
	}
	if ctl.Has(ControlYawRight) {
		c.Yaw += c.RotationSpeed
	}
	if ctl.Has(ControlPitchUp) {
		c.Pitch -= c.RotationSpeed
	}
	if ctl.Has(ControlPitchDown) {
		c.Pitch += c.RotationSpeed
	}
}

// Frustum returns the view frustum for the camera under proj.
func (c *Camera) Frustum(proj Projection) Frustum {
	return NewFrustumFromMatrix(c.ViewMatrix().Mul(proj.Matrix))
}
