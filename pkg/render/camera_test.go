package render

import (
	"math"
	"testing"

	"github.com/taigrr/polyview/pkg/math3d"
)

func vecNear(a, b math3d.Vec3, eps float64) bool {
	return math.Abs(a.X-b.X) <= eps && math.Abs(a.Y-b.Y) <= eps && math.Abs(a.Z-b.Z) <= eps
}

func cameraAt(pos math3d.Vec3) *Camera {
	cfg := DefaultCameraConfig()
	cfg.Position = pos
	return NewCamera(cfg)
}

func TestDefaultCameraConfig(t *testing.T) {
	cfg := DefaultCameraConfig()
	if cfg.Position != math3d.V3(-1, 6, -30) {
		t.Errorf("position = %v, want (-1, 6, -30)", cfg.Position)
	}
	if cfg.HFOV != math.Pi/3 || cfg.Near != 0.1 || cfg.Far != 100 {
		t.Errorf("hfov/near/far = %v/%v/%v", cfg.HFOV, cfg.Near, cfg.Far)
	}
	if cfg.MovingSpeed != 0.3 || cfg.RotationSpeed != 0.015 {
		t.Errorf("speeds = %v/%v", cfg.MovingSpeed, cfg.RotationSpeed)
	}
}

func TestCameraAxesAtRest(t *testing.T) {
	f, u, r := cameraAt(math3d.Zero3()).Axes()
	if f != math3d.V3(0, 0, 1) || u != math3d.V3(0, 1, 0) || r != math3d.V3(1, 0, 0) {
		t.Errorf("axes = %v %v %v, want world axes", f, u, r)
	}
}

func TestCameraAxesOrthonormal(t *testing.T) {
	cam := cameraAt(math3d.Zero3())
	for _, angles := range [][2]float64{{0.3, 0.7}, {-1.2, 2.5}, {0.01, -3}} {
		cam.Pitch, cam.Yaw = angles[0], angles[1]
		f, u, r := cam.Axes()
		for _, v := range []math3d.Vec3{f, u, r} {
			if math.Abs(v.Len()-1) > 1e-12 {
				t.Errorf("pitch=%v yaw=%v: |%v| = %v", angles[0], angles[1], v, v.Len())
			}
		}
		if math.Abs(f.Dot(u)) > 1e-12 || math.Abs(f.Dot(r)) > 1e-12 || math.Abs(u.Dot(r)) > 1e-12 {
			t.Errorf("pitch=%v yaw=%v: axes not orthogonal", angles[0], angles[1])
		}
	}
}

func TestCameraRollIgnored(t *testing.T) {
	cam := cameraAt(math3d.Zero3())
	cam.Pitch, cam.Yaw = 0.2, 0.4
	before := cam.ViewMatrix()
	cam.Roll = 1.3
	if !cam.ViewMatrix().ApproxEqual(before, 0) {
		t.Error("roll should not change the view matrix")
	}
}

func TestCameraTurns(t *testing.T) {
	cam := cameraAt(math3d.Zero3())

	cam.Apply(ControlYawRight)
	if f := cam.Forward(); f.X <= 0 {
		t.Errorf("yawing right: forward = %v, want +X component", f)
	}

	cam.Reset()
	cam.Apply(ControlPitchUp)
	if f := cam.Forward(); f.Y <= 0 {
		t.Errorf("pitching up: forward = %v, want +Y component", f)
	}
	if cam.Pitch != -cam.RotationSpeed {
		t.Errorf("pitch = %v, want %v", cam.Pitch, -cam.RotationSpeed)
	}
}

func TestCameraMovementIsCameraRelative(t *testing.T) {
	cam := cameraAt(math3d.Zero3())
	cam.Yaw = math.Pi / 2

	cam.Apply(ControlForward)
	if !vecNear(cam.Position, math3d.V3(0.3, 0, 0), 1e-12) {
		t.Errorf("forward after quarter turn = %v, want (0.3, 0, 0)", cam.Position)
	}

	cam.Position = math3d.Zero3()
	cam.Apply(ControlRight)
	if !vecNear(cam.Position, math3d.V3(0, 0, -0.3), 1e-12) {
		t.Errorf("strafe right after quarter turn = %v, want (0, 0, -0.3)", cam.Position)
	}
}

func TestCameraOpposingControlsCancel(t *testing.T) {
	cam := cameraAt(math3d.V3(1, 2, 3))
	cam.Apply(ControlLeft | ControlRight | ControlUp | ControlDown | ControlYawLeft | ControlYawRight)
	if !vecNear(cam.Position, math3d.V3(1, 2, 3), 1e-12) || cam.Yaw != 0 {
		t.Errorf("position = %v yaw = %v, want unchanged", cam.Position, cam.Yaw)
	}
}

func TestCameraReset(t *testing.T) {
	cam := NewCamera(DefaultCameraConfig())
	for range 20 {
		cam.Apply(ControlForward | ControlYawLeft | ControlPitchDown | ControlUp)
	}
	cam.Roll = 0.5

	cam.Apply(ControlReset)
	if cam.Position != math3d.V3(-1, 6, -30) {
		t.Errorf("position = %v, want (-1, 6, -30)", cam.Position)
	}
	if cam.Pitch != 0 || cam.Yaw != 0 || cam.Roll != 0 {
		t.Errorf("angles = %v/%v/%v, want zero", cam.Pitch, cam.Yaw, cam.Roll)
	}
}

func TestCameraResetRunsFirst(t *testing.T) {
	cam := cameraAt(math3d.Zero3())
	cam.Position = math3d.V3(50, 50, 50)
	cam.Apply(ControlReset | ControlForward)
	if !vecNear(cam.Position, math3d.V3(0, 0, 0.3), 1e-12) {
		t.Errorf("position = %v, want home plus one step forward", cam.Position)
	}
}

func TestViewMatrix(t *testing.T) {
	cam := cameraAt(math3d.Zero3())
	if !cam.ViewMatrix().ApproxEqual(math3d.Identity(), 0) {
		t.Errorf("view at origin = %v, want identity", cam.ViewMatrix())
	}

	cam.Position = math3d.V3(0, 0, -5)
	got := math3d.V4(0, 0, 0, 1).MulMat4(cam.ViewMatrix()).Vec3()
	if got != math3d.V3(0, 0, 5) {
		t.Errorf("origin in camera space = %v, want (0, 0, 5)", got)
	}

	// A point straight ahead stays on the camera's Z axis after turning
	cam.Position = math3d.Zero3()
	cam.Yaw = 0.6
	ahead := math3d.Point(cam.Forward().Scale(7)).MulMat4(cam.ViewMatrix()).Vec3()
	if !vecNear(ahead, math3d.V3(0, 0, 7), 1e-12) {
		t.Errorf("point ahead in camera space = %v, want (0, 0, 7)", ahead)
	}
}

func TestParseControl(t *testing.T) {
	tests := []struct {
		in   string
		want Control
	}{
		{"w", ControlForward},
		{" LEFT ", ControlYawLeft},
		{"reset", ControlReset},
		{"e", ControlDown},
	}
	for _, tc := range tests {
		got, err := ParseControl(tc.in)
		if err != nil || got != tc.want {
			t.Errorf("ParseControl(%q) = %v, %v; want %v", tc.in, got, err, tc.want)
		}
	}
	if _, err := ParseControl("jump"); err == nil {
		t.Error("unknown control should fail")
	}
	if s := (ControlForward | ControlYawLeft).String(); s != "w+left" {
		t.Errorf("String = %q, want w+left", s)
	}
}
