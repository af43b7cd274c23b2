package main

import (
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/taigrr/polyview/internal/config"
)

const squareOBJ = `v -1 -1 0
v 1 -1 0
v 1 1 0
v -1 1 0
f 1 2 3
f 1 3 4
`

func TestRunSnapshot(t *testing.T) {
	dir := t.TempDir()
	model := filepath.Join(dir, "square.obj")
	if err := os.WriteFile(model, []byte(squareOBJ), 0o644); err != nil {
		t.Fatal(err)
	}

	var cfg config.Config
	cfg.Background = "#ffffff"
	cfg.Resolve(config.Flags{Width: 90, Height: 60, Fill: true})
	cfg.CameraPos = &[3]float64{0, 0, -5}

	out := filepath.Join(dir, "out.png")
	opts := snapshotOptions{output: out, supersample: 2, frames: 1, axes: true}
	if err := runSnapshot(cfg, model, opts); err != nil {
		t.Fatalf("runSnapshot: %v", err)
	}

	f, err := os.Open(out)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 90 || b.Dy() != 60 {
		t.Errorf("size = %v, want 90x60", b)
	}
	// The filled square uses the black default material
	if r, g, b, _ := img.At(45, 30).RGBA(); r>>8 > 5 || g>>8 > 5 || b>>8 > 5 {
		t.Errorf("center = %d,%d,%d, want black", r>>8, g>>8, b>>8)
	}
	if r, _, _, _ := img.At(2, 2).RGBA(); r>>8 < 250 {
		t.Errorf("corner = %d, want background", r>>8)
	}
}

func TestRunSnapshotRejectsFormat(t *testing.T) {
	var cfg config.Config
	cfg.Resolve(config.Flags{})
	if err := runSnapshot(cfg, "missing.obj", snapshotOptions{output: "out.bmp"}); err == nil {
		t.Error("expected unsupported format error")
	}
}
