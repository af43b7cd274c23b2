package input

import (
	"context"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/taigrr/polyview/internal/viewer"
	"github.com/taigrr/polyview/pkg/math3d"
	"github.com/taigrr/polyview/pkg/render"
)

var quiet = log.New(io.Discard, "", 0)

func TestParse(t *testing.T) {
	tests := []struct {
		line    string
		control render.Control
		actions []Action
	}{
		{"w", render.ControlForward, nil},
		{"left", render.ControlYawLeft, nil},
		{"reset", render.ControlReset, nil},
		{"W+LEFT", render.ControlForward | render.ControlYawLeft, nil},
		{"d q\r", render.ControlRight | render.ControlUp, nil},
		{"x", 0, []Action{ActionToggleX}},
		{"m f down", render.ControlPitchDown, []Action{ActionResetMesh, ActionToggleFill}},
	}
	for _, tc := range tests {
		t.Run(tc.line, func(t *testing.T) {
			cmd, err := Parse(tc.line)
			if err != nil {
				t.Fatalf("Parse: %v", err)
			}
			if cmd.Control != tc.control {
				t.Errorf("control = %v, want %v", cmd.Control, tc.control)
			}
			if len(cmd.Actions) != len(tc.actions) {
				t.Fatalf("actions = %v, want %v", cmd.Actions, tc.actions)
			}
			for i := range cmd.Actions {
				if cmd.Actions[i] != tc.actions[i] {
					t.Errorf("actions = %v, want %v", cmd.Actions, tc.actions)
				}
			}
		})
	}
}

func TestParseRejects(t *testing.T) {
	for _, line := range []string{"", "   ", "jump", "w+fly"} {
		if _, err := Parse(line); err == nil {
			t.Errorf("Parse(%q) should fail", line)
		}
	}
}

func TestReadCommands(t *testing.T) {
	out := make(chan Command, 10)
	src := "w\nbogus\n\nleft+up\n"
	if err := ReadCommands(context.Background(), strings.NewReader(src), out, quiet); err != nil {
		t.Fatalf("ReadCommands: %v", err)
	}
	close(out)

	var got []render.Control
	for cmd := range out {
		got = append(got, cmd.Control)
	}
	want := []render.Control{render.ControlForward, render.ControlYawLeft | render.ControlPitchUp}
	if len(got) != len(want) || got[0] != want[0] || got[1] != want[1] {
		t.Errorf("commands = %v, want %v", got, want)
	}
}

func TestReadCommandsCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	out := make(chan Command) // Nobody receives
	if err := ReadCommands(ctx, strings.NewReader("w\n"), out, quiet); err != context.Canceled {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}

func TestSerialSourceStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	src := SerialSource{
		Port:   filepath.Join(os.TempDir(), "polyview-no-such-port"),
		Baud:   9600,
		Retry:  10 * time.Millisecond,
		Logger: quiet,
	}
	done := make(chan error, 1)
	go func() { done <- src.Run(ctx, make(chan Command)) }()

	select {
	case err := <-done:
		if err != context.DeadlineExceeded {
			t.Errorf("err = %v, want context.DeadlineExceeded", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestCommandApply(t *testing.T) {
	cfg := render.DefaultCameraConfig()
	cfg.Position = math3d.Zero3()
	s := viewer.New(viewer.Options{Camera: cfg, Logger: quiet})

	cmd, err := Parse("x z f w")
	if err != nil {
		t.Fatal(err)
	}
	cmd.Apply(s)

	if x, y, z := s.RotationFlags(); !x || y || !z {
		t.Errorf("flags = %v %v %v, want x and z", x, y, z)
	}
	if !s.Fill() {
		t.Error("fill should be toggled on")
	}
	if s.Camera().Position.Z != 0.3 {
		t.Errorf("camera = %v, want one step forward", s.Camera().Position)
	}

	// Resetting without a mesh is a no-op
	reset, _ := Parse("m")
	reset.Apply(s)
}
