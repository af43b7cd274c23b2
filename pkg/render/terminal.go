package render

import (
	"image/color"

	uv "github.com/charmbracelet/ultraviolet"
)

// Draw converts the framebuffer to terminal cells and draws them on the
// screen. The framebuffer height should be 2x the terminal height.
func (fb *Framebuffer) Draw(scr uv.Screen, area uv.Rectangle) {
	// Each terminal row represents 2 framebuffer rows
	// We use ▀ (upper half block) with fg=top color and bg=bottom color
	for row := area.Min.Y; row < area.Max.Y; row++ {
		topY := row * 2
		botY := topY + 1

		for col := area.Min.X; col < area.Max.X && col < fb.Width; col++ {
			cell := &uv.Cell{
				Content: "▀",
				Width:   1,
				Style: uv.Style{
					Fg: rgbaToColor(fb.GetPixel(col, topY)),
					Bg: rgbaToColor(fb.GetPixel(col, botY)),
				},
			}
			scr.SetCell(col, row, cell)
		}
	}
}

// DrawLabels writes each labeled polygon's label as text next to its last
// point. Pixel rows are halved to terminal rows.
func DrawLabels(scr uv.Screen, area uv.Rectangle, polys []Polygon) {
	for _, p := range polys {
		if p.Label == "" || len(p.Points) == 0 {
			continue
		}
		x, y := pixel(p.Points[len(p.Points)-1])
		col, row := x+1, y/2
		if row < area.Min.Y || row >= area.Max.Y {
			continue
		}
		for _, r := range p.Label {
			if col < area.Min.X || col >= area.Max.X {
				break
			}
			scr.SetCell(col, row, &uv.Cell{
				Content: string(r),
				Width:   1,
				Style:   uv.Style{Fg: p.Color},
			})
			col++
		}
	}
}

// rgbaToColor converts color.RGBA to Go's color.Color interface.
func rgbaToColor(c color.RGBA) color.Color {
	if c.A == 0 {
		return nil // Transparent = no color
	}
	return c
}
