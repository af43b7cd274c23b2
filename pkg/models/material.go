package models

import (
	"image/color"

	"github.com/lucasb-eyer/go-colorful"
)

// DefaultMaterial names the material faces bind to when no material file
// (or no usemtl directive) supplies one.
const DefaultMaterial = "default"

// Material is a name-keyed RGB color.
type Material struct {
	Name  string
	Color color.RGBA
}

// MaterialTable maps material names to colors, remembering declaration order.
type MaterialTable struct {
	names  []string
	byName map[string]Material
}

// NewMaterialTable creates an empty table.
func NewMaterialTable() *MaterialTable {
	return &MaterialTable{byName: make(map[string]Material)}
}

// DefaultMaterials returns a table holding only the black default material.
func DefaultMaterials() *MaterialTable {
	t := NewMaterialTable()
	t.Set(DefaultMaterial, Black)
	return t
}

// Black is the color of materials declared without a diffuse color.
var Black = color.RGBA{0, 0, 0, 255}

// Set declares or recolors a material.
func (t *MaterialTable) Set(name string, c color.RGBA) {
	if _, ok := t.byName[name]; !ok {
		t.names = append(t.names, name)
	}
	t.byName[name] = Material{Name: name, Color: c}
}

// Ensure declares name as black if it is not already present.
func (t *MaterialTable) Ensure(name string) {
	if _, ok := t.byName[name]; !ok {
		t.Set(name, Black)
	}
}

// Get looks up a material by name.
func (t *MaterialTable) Get(name string) (Material, bool) {
	m, ok := t.byName[name]
	return m, ok
}

// Len returns the number of materials.
func (t *MaterialTable) Len() int {
	if t == nil {
		return 0
	}
	return len(t.names)
}

// Names returns material names in declaration order.
func (t *MaterialTable) Names() []string {
	return append([]string(nil), t.names...)
}

// Clone returns an independent copy of the table.
func (t *MaterialTable) Clone() *MaterialTable {
	c := NewMaterialTable()
	for _, n := range t.names {
		c.Set(n, t.byName[n].Color)
	}
	return c
}

// UnitRGB converts components in [0,1] to an opaque 8-bit color.
// Out-of-range components are clamped.
func UnitRGB(r, g, b float64) color.RGBA {
	r8, g8, b8 := colorful.Color{R: r, G: g, B: b}.Clamped().RGB255()
	return color.RGBA{r8, g8, b8, 255}
}
