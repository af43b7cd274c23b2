package config

import (
	"image/color"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/taigrr/polyview/pkg/math3d"
	"github.com/taigrr/polyview/pkg/render"
)

func TestResolveDefaults(t *testing.T) {
	var cfg Config
	cfg.Resolve(Flags{})

	if cfg.Width != 900 || cfg.Height != 600 || cfg.FPS != 60 {
		t.Errorf("viewport = %dx%d @ %d", cfg.Width, cfg.Height, cfg.FPS)
	}
	if cfg.Cull != "sentinel" || cfg.Addr != ":8080" || cfg.SerialBaud != 115200 {
		t.Errorf("cull/addr/baud = %q/%q/%d", cfg.Cull, cfg.Addr, cfg.SerialBaud)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}

	cam := cfg.Camera()
	if cam != render.DefaultCameraConfig() {
		t.Errorf("camera = %+v, want the default camera", cam)
	}
}

func TestLoadAndResolve(t *testing.T) {
	path := filepath.Join(t.TempDir(), "polyview.json")
	data := `{
		"width": 320,
		"height": 200,
		"camera_pos": [0, 0, -5],
		"hfov": 1.2,
		"cull": "clip",
		"background": "#102030",
		"serial_port": "/dev/ttyUSB0"
	}`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	cfg.Resolve(Flags{Width: 640, SerialPort: "/dev/ttyACM0", Fill: true})

	if cfg.Width != 640 || cfg.Height != 200 {
		t.Errorf("viewport = %dx%d, want flag width and file height", cfg.Width, cfg.Height)
	}
	if cfg.SerialPort != "/dev/ttyACM0" || !cfg.Fill {
		t.Errorf("flags should win: port %q fill %v", cfg.SerialPort, cfg.Fill)
	}
	if cfg.CullMode() != render.CullClip {
		t.Errorf("cull = %v, want clip", cfg.CullMode())
	}
	if bg := cfg.BackgroundColor(); bg != (color.RGBA{0x10, 0x20, 0x30, 255}) {
		t.Errorf("background = %v", bg)
	}

	cam := cfg.Camera()
	if cam.Position != math3d.V3(0, 0, -5) || math.Abs(cam.HFOV-1.2) > 1e-12 {
		t.Errorf("camera = %+v", cam)
	}
	if cam.Near != 0.1 || cam.Far != 100 {
		t.Errorf("unset clip planes should default, got %v/%v", cam.Near, cam.Far)
	}
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()
	if _, err := Load(filepath.Join(dir, "missing.json")); err == nil {
		t.Error("missing file should fail")
	}

	bad := filepath.Join(dir, "bad.json")
	if err := os.WriteFile(bad, []byte("{width: 3"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(bad); err == nil {
		t.Error("malformed JSON should fail")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"cull", func(c *Config) { c.Cull = "zbuffer" }},
		{"planes", func(c *Config) { c.Near = 10; c.Far = 1 }},
		{"background", func(c *Config) { c.Background = "teal" }},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var cfg Config
			cfg.Resolve(Flags{})
			tc.mutate(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected a validation error")
			}
		})
	}
}

func TestParseColor(t *testing.T) {
	c, err := ParseColor("#ff8000")
	if err != nil || c != (color.RGBA{255, 128, 0, 255}) {
		t.Errorf("ParseColor = %v, %v", c, err)
	}
	if _, err := ParseColor("#12345g"); err == nil {
		t.Error("bad hex should fail")
	}
}
