package models

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
)

func writeGLB(t *testing.T, withMaterial bool) string {
	t.Helper()
	doc := gltf.NewDocument()
	pos := modeler.WritePosition(doc, [][3]float32{
		{0, 0, 0}, {1, 0, 0}, {1, 1, 0}, {0, 1, 0},
	})
	idx := modeler.WriteIndices(doc, []uint16{0, 1, 2, 0, 2, 3})

	prim := &gltf.Primitive{
		Indices:    gltf.Index(idx),
		Attributes: map[string]int{gltf.POSITION: pos},
	}
	if withMaterial {
		doc.Materials = []*gltf.Material{{
			Name: "red",
			PBRMetallicRoughness: &gltf.PBRMetallicRoughness{
				BaseColorFactor: &[4]float64{1, 0, 0, 1},
			},
		}}
		prim.Material = gltf.Index(0)
	}
	doc.Meshes = []*gltf.Mesh{{Name: "square", Primitives: []*gltf.Primitive{prim}}}

	path := filepath.Join(t.TempDir(), "square.glb")
	if err := gltf.SaveBinary(doc, path); err != nil {
		t.Fatalf("SaveBinary: %v", err)
	}
	return path
}

func TestLoadGLTF(t *testing.T) {
	mesh, err := Load(writeGLB(t, true))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if mesh.VertexCount() != 4 || mesh.PolygonCount() != 2 {
		t.Errorf("mesh = %d vertices / %d faces, want 4 / 2", mesh.VertexCount(), mesh.PolygonCount())
	}
	if mesh.Faces[1].V[2] != 3 {
		t.Errorf("second face = %v, want [0 2 3]", mesh.Faces[1].V)
	}
	if c := mesh.FaceColor(0); c.R != 255 || c.G != 0 || c.B != 0 {
		t.Errorf("face color = %v, want red", c)
	}
	if mesh.Name != "square.glb" {
		t.Errorf("name = %q", mesh.Name)
	}
}

func TestLoadGLTFWithoutMaterial(t *testing.T) {
	mesh, err := LoadGLTF(writeGLB(t, false))
	if err != nil {
		t.Fatalf("LoadGLTF: %v", err)
	}
	if mesh.MaterialCount() != 1 || mesh.Faces[0].Material != DefaultMaterial {
		t.Errorf("materials = %v, want only the default", mesh.Materials.Names())
	}
}

func TestLoadGLTFMissingFile(t *testing.T) {
	_, err := LoadGLTF(filepath.Join(t.TempDir(), "missing.glb"))
	var ffe *FileFormatError
	if !errors.As(err, &ffe) {
		t.Fatalf("err = %v, want *FileFormatError", err)
	}
}
