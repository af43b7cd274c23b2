// Package config loads viewer settings from a JSON file and CLI flags.
package config

import (
	"encoding/json"
	"fmt"
	"image/color"
	"os"
	"strconv"
	"strings"

	"github.com/taigrr/polyview/pkg/math3d"
	"github.com/taigrr/polyview/pkg/render"
)

// Config holds viewer, camera and I/O settings.
type Config struct {
	// Viewport
	Width  int `json:"width"`
	Height int `json:"height"`
	FPS    int `json:"fps"`

	// Camera
	CameraPos     *[3]float64 `json:"camera_pos"`
	HFOV          float64     `json:"hfov"`
	Near          float64     `json:"near"`
	Far           float64     `json:"far"`
	MovingSpeed   float64     `json:"moving_speed"`
	RotationSpeed float64     `json:"rotation_speed"`

	// Drawing
	Cull       string  `json:"cull"`
	Fill       bool    `json:"fill"`
	Background string  `json:"background"`
	SpinRate   float64 `json:"spin_rate"`
	Scale      float64 `json:"scale"`

	// Remote control and streaming
	SerialPort string `json:"serial_port"`
	SerialBaud int    `json:"serial_baud"`
	Addr       string `json:"addr"`
}

// Load reads a JSON config file and returns Config.
// Fields not set in the file keep their zero values.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return cfg, nil
}

// Flags holds CLI flag values that override config file settings.
type Flags struct {
	Width      int
	Height     int
	FPS        int
	Cull       string
	Fill       bool
	SpinRate   float64
	SerialPort string
	SerialBaud int
	Addr       string
}

// Resolve applies flag overrides, then fills every unset field with its
// default. CLI flags take priority when non-zero/non-empty.
func (c *Config) Resolve(flags Flags) {
	if flags.Width > 0 {
		c.Width = flags.Width
	}
	if flags.Height > 0 {
		c.Height = flags.Height
	}
	if flags.FPS > 0 {
		c.FPS = flags.FPS
	}
	if flags.Cull != "" {
		c.Cull = flags.Cull
	}
	if flags.Fill {
		c.Fill = true
	}
	if flags.SpinRate != 0 {
		c.SpinRate = flags.SpinRate
	}
	if flags.SerialPort != "" {
		c.SerialPort = flags.SerialPort
	}
	if flags.SerialBaud > 0 {
		c.SerialBaud = flags.SerialBaud
	}
	if flags.Addr != "" {
		c.Addr = flags.Addr
	}

	cam := render.DefaultCameraConfig()
	if c.Width <= 0 {
		c.Width = 900
	}
	if c.Height <= 0 {
		c.Height = 600
	}
	if c.FPS <= 0 {
		c.FPS = 60
	}
	if c.CameraPos == nil {
		c.CameraPos = &[3]float64{cam.Position.X, cam.Position.Y, cam.Position.Z}
	}
	if c.HFOV <= 0 {
		c.HFOV = cam.HFOV
	}
	if c.Near <= 0 {
		c.Near = cam.Near
	}
	if c.Far <= 0 {
		c.Far = cam.Far
	}
	if c.MovingSpeed <= 0 {
		c.MovingSpeed = cam.MovingSpeed
	}
	if c.RotationSpeed <= 0 {
		c.RotationSpeed = cam.RotationSpeed
	}
	if c.Cull == "" {
		c.Cull = render.CullSentinel.String()
	}
	if c.Background == "" {
		c.Background = "#000000"
	}
	if c.SpinRate == 0 {
		c.SpinRate = 0.6
	}
	if c.Scale <= 0 {
		c.Scale = 1
	}
	if c.SerialBaud <= 0 {
		c.SerialBaud = 115200
	}
	if c.Addr == "" {
		c.Addr = ":8080"
	}
}

// Validate checks fields that Resolve cannot default.
func (c Config) Validate() error {
	if _, err := render.ParseCullMode(c.Cull); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if c.Near >= c.Far {
		return fmt.Errorf("config: near %v must be less than far %v", c.Near, c.Far)
	}
	if _, err := ParseColor(c.Background); err != nil {
		return fmt.Errorf("config: background: %w", err)
	}
	return nil
}

// Camera returns the camera configuration.
func (c Config) Camera() render.CameraConfig {
	cfg := render.DefaultCameraConfig()
	if c.CameraPos != nil {
		cfg.Position = math3d.V3(c.CameraPos[0], c.CameraPos[1], c.CameraPos[2])
	}
	if c.HFOV > 0 {
		cfg.HFOV = c.HFOV
	}
	if c.Near > 0 {
		cfg.Near = c.Near
	}
	if c.Far > 0 {
		cfg.Far = c.Far
	}
	if c.MovingSpeed > 0 {
		cfg.MovingSpeed = c.MovingSpeed
	}
	if c.RotationSpeed > 0 {
		cfg.RotationSpeed = c.RotationSpeed
	}
	return cfg
}

// CullMode returns the parsed cull mode, falling back to sentinel culling.
func (c Config) CullMode() render.CullMode {
	mode, err := render.ParseCullMode(c.Cull)
	if err != nil {
		return render.CullSentinel
	}
	return mode
}

// BackgroundColor returns the parsed background, or black when invalid.
func (c Config) BackgroundColor() color.RGBA {
	bg, err := ParseColor(c.Background)
	if err != nil {
		return color.RGBA{0, 0, 0, 255}
	}
	return bg
}

// ParseColor parses a "#rrggbb" hex color.
func ParseColor(s string) (color.RGBA, error) {
	hex := strings.TrimPrefix(s, "#")
	if len(hex) != 6 {
		return color.RGBA{}, fmt.Errorf("invalid color %q", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("invalid color %q", s)
	}
	return color.RGBA{uint8(v >> 16), uint8(v >> 8), uint8(v), 255}, nil
}
