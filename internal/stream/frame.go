package stream

import (
	"image/color"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/taigrr/polyview/internal/viewer"
	"github.com/taigrr/polyview/pkg/render"
)

// Frame is one projected frame as sent to browser clients.
type Frame struct {
	Width      int       `json:"width"`
	Height     int       `json:"height"`
	Background string    `json:"background"`
	Polygons   []Polygon `json:"polygons"`
	Stats      FrameInfo `json:"stats"`
}

// Polygon is a screen polygon with a CSS hex color.
type Polygon struct {
	Points [][2]float64 `json:"points"`
	Color  string       `json:"color"`
	Filled bool         `json:"filled"`
	Label  string       `json:"label,omitempty"`
}

// FrameInfo carries the status line shown under the canvas.
type FrameInfo struct {
	Mesh      string `json:"mesh"`
	Vertices  int    `json:"vertices"`
	Polygons  int    `json:"polygons"`
	Materials int    `json:"materials"`
	Drawn     int    `json:"drawn"`
}

// NewFrame converts projected polygons into their wire form.
func NewFrame(width, height int, bg color.RGBA, polys []render.Polygon, st viewer.Stats) Frame {
	f := Frame{
		Width:      width,
		Height:     height,
		Background: hex(bg),
		Polygons:   make([]Polygon, len(polys)),
		Stats: FrameInfo{
			Mesh:      st.Name,
			Vertices:  st.Vertices,
			Polygons:  st.Polygons,
			Materials: st.Materials,
			Drawn:     st.Drawn,
		},
	}
	for i, p := range polys {
		pts := make([][2]float64, len(p.Points))
		for j, pt := range p.Points {
			pts[j] = [2]float64{pt.X, pt.Y}
		}
		f.Polygons[i] = Polygon{
			Points: pts,
			Color:  hex(p.Color),
			Filled: p.Filled,
			Label:  p.Label,
		}
	}
	return f
}

func hex(c color.RGBA) string {
	cf, _ := colorful.MakeColor(color.RGBA{c.R, c.G, c.B, 255})
	return cf.Hex()
}
