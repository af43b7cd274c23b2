package render

import (
	"image"
	"image/color"
	"math"
	"slices"

	"github.com/taigrr/polyview/pkg/math3d"
)

// Framebuffer is a 2D array of pixels that polygons are rasterized into.
// In the terminal each cell shows two vertically stacked pixels using
// half-block characters, so Height is twice the row count there.
type Framebuffer struct {
	Width  int
	Height int
	Pixels []color.RGBA // Row-major pixel data
}

// NewFramebuffer creates a new framebuffer with the given dimensions.
func NewFramebuffer(width, height int) *Framebuffer {
	return &Framebuffer{
		Width:  width,
		Height: height,
		Pixels: make([]color.RGBA, width*height),
	}
}

// Clear fills the framebuffer with a solid color.
func (fb *Framebuffer) Clear(c color.RGBA) {
	for i := range fb.Pixels {
		fb.Pixels[i] = c
	}
}

// SetPixel sets a pixel at (x, y). Out-of-bounds writes are dropped.
func (fb *Framebuffer) SetPixel(x, y int, c color.RGBA) {
	if x < 0 || x >= fb.Width || y < 0 || y >= fb.Height {
		return
	}
	fb.Pixels[y*fb.Width+x] = c
}

// GetPixel returns the color at (x, y), or transparent black out of bounds.
func (fb *Framebuffer) GetPixel(x, y int) color.RGBA {
	if x < 0 || x >= fb.Width || y < 0 || y >= fb.Height {
		return color.RGBA{}
	}
	return fb.Pixels[y*fb.Width+x]
}

// DrawLine draws a line from (x0, y0) to (x1, y1) using Bresenham's algorithm.
func (fb *Framebuffer) DrawLine(x0, y0, x1, y1 int, c color.RGBA) {
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx := 1
	if x0 > x1 {
		sx = -1
	}
	sy := 1
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy

	for {
		fb.SetPixel(x0, y0, c)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

// DrawRect draws a filled rectangle.
func (fb *Framebuffer) DrawRect(x, y, w, h int, c color.RGBA) {
	for py := y; py < y+h; py++ {
		for px := x; px < x+w; px++ {
			fb.SetPixel(px, py, c)
		}
	}
}

// DrawPoint draws a square marker of the given radius centered on p.
func (fb *Framebuffer) DrawPoint(p math3d.Vec2, radius int, c color.RGBA) {
	x, y := pixel(p)
	fb.DrawRect(x-radius, y-radius, 2*radius+1, 2*radius+1, c)
}

// DrawPolygon rasterizes poly: an even-odd scanline fill when poly.Filled,
// otherwise a closed outline. Polygons with fewer than two points draw as
// single pixels.
func (fb *Framebuffer) DrawPolygon(poly Polygon) {
	pts := poly.Points
	switch len(pts) {
	case 0:
		return
	case 1:
		x, y := pixel(pts[0])
		fb.SetPixel(x, y, poly.Color)
		return
	}
	if poly.Filled && len(pts) > 2 {
		fb.fillPolygon(pts, poly.Color)
	}
	for i := range pts {
		j := (i + 1) % len(pts)
		if len(pts) == 2 && j == 0 {
			break
		}
		x0, y0 := pixel(pts[i])
		x1, y1 := pixel(pts[j])
		fb.DrawLine(x0, y0, x1, y1, poly.Color)
	}
}

// DrawPolygons rasterizes polys in order; later polygons overwrite earlier ones.
func (fb *Framebuffer) DrawPolygons(polys []Polygon) {
	for _, p := range polys {
		fb.DrawPolygon(p)
	}
}

func (fb *Framebuffer) fillPolygon(pts []math3d.Vec2, c color.RGBA) {
	minY, maxY := pts[0].Y, pts[0].Y
	for _, p := range pts[1:] {
		minY = math.Min(minY, p.Y)
		maxY = math.Max(maxY, p.Y)
	}
	y0 := max(int(math.Floor(minY)), 0)
	y1 := min(int(math.Ceil(maxY)), fb.Height-1)

	xs := make([]float64, 0, len(pts))
	for y := y0; y <= y1; y++ {
		// Sample at the pixel center
		sy := float64(y) + 0.5
		xs = xs[:0]
		for i := range pts {
			a, b := pts[i], pts[(i+1)%len(pts)]
			if (a.Y <= sy) == (b.Y <= sy) {
				continue
			}
			t := (sy - a.Y) / (b.Y - a.Y)
			xs = append(xs, a.X+t*(b.X-a.X))
		}
		slices.Sort(xs)
		for i := 0; i+1 < len(xs); i += 2 {
			start := max(int(math.Ceil(xs[i]-0.5)), 0)
			end := min(int(math.Floor(xs[i+1]-0.5)), fb.Width-1)
			for x := start; x <= end; x++ {
				fb.Pixels[y*fb.Width+x] = c
			}
		}
	}
}

func pixel(p math3d.Vec2) (int, int) {
	return int(math.Round(p.X)), int(math.Round(p.Y))
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// ToImage converts the framebuffer to a standard Go image.RGBA.
func (fb *Framebuffer) ToImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, fb.Width, fb.Height))
	for y := 0; y < fb.Height; y++ {
		for x := 0; x < fb.Width; x++ {
			img.SetRGBA(x, y, fb.Pixels[y*fb.Width+x])
		}
	}
	return img
}
