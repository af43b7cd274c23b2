package models

import (
	"encoding/binary"
	"fmt"
	"math"
	"path/filepath"
	"strings"

	"github.com/qmuntal/gltf"
	"github.com/taigrr/polyview/pkg/math3d"
)

// Load opens a mesh file, choosing the loader from the extension.
func Load(path string) (*Mesh, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".obj":
		return LoadOBJ(path)
	case ".glb", ".gltf":
		return LoadGLTF(path)
	default:
		return nil, &FileFormatError{Path: path, Err: ErrUnsupportedType}
	}
}

// LoadGLTF imports the triangle primitives of a GLTF/GLB file as polygon
// faces. Each glTF material becomes a table entry colored by its PBR base
// color factor; primitives without a material bind to DefaultMaterial.
func LoadGLTF(path string) (*Mesh, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, &FileFormatError{Path: path, Err: fmt.Errorf("open gltf: %w", err)}
	}

	materials := NewMaterialTable()
	names := make([]string, len(doc.Materials))
	for i, mat := range doc.Materials {
		names[i] = materialName(mat, i)
		c := Black
		if pbr := mat.PBRMetallicRoughness; pbr != nil && pbr.BaseColorFactor != nil {
			f := pbr.BaseColorFactor
			c = UnitRGB(f[0], f[1], f[2])
		}
		materials.Set(names[i], c)
	}

	var (
		vertices []math3d.Vec4
		faces    []Face
	)
	for _, m := range doc.Meshes {
		for _, prim := range m.Primitives {
			if prim.Mode != gltf.PrimitiveTriangles {
				// Skip non-triangle primitives (lines, points, etc)
				continue
			}
			posIdx, ok := prim.Attributes[gltf.POSITION]
			if !ok {
				continue
			}
			positions, err := readVec3Accessor(doc, posIdx)
			if err != nil {
				return nil, &FileFormatError{Path: path, Err: fmt.Errorf("mesh %q positions: %w", m.Name, err)}
			}

			material := DefaultMaterial
			if prim.Material != nil && *prim.Material < len(names) {
				material = names[*prim.Material]
			}
			materials.Ensure(material)

			base := len(vertices)
			for _, p := range positions {
				vertices = append(vertices, math3d.Point(p))
			}

			var indices []int
			if prim.Indices != nil {
				indices, err = readIndices(doc, *prim.Indices)
				if err != nil {
					return nil, &FileFormatError{Path: path, Err: fmt.Errorf("mesh %q indices: %w", m.Name, err)}
				}
			} else {
				// No indices, assume sequential triangles
				indices = make([]int, len(positions))
				for i := range indices {
					indices[i] = i
				}
			}

			for i := 0; i+2 < len(indices); i += 3 {
				tri := []int{base + indices[i], base + indices[i+1], base + indices[i+2]}
				for _, idx := range tri {
					if idx < base || idx >= len(vertices) {
						return nil, &FileFormatError{Path: path, Err: fmt.Errorf("mesh %q: %w", m.Name, ErrIndexRange)}
					}
				}
				faces = append(faces, Face{V: tri, Material: material})
			}
		}
	}
	if materials.Len() == 0 {
		materials.Set(DefaultMaterial, Black)
	}

	return NewMesh(filepath.Base(path), vertices, faces, materials), nil
}

func materialName(mat *gltf.Material, i int) string {
	if mat != nil && mat.Name != "" {
		return mat.Name
	}
	return fmt.Sprintf("material_%d", i)
}

// readVec3Accessor reads float VEC3 data from a GLTF accessor.
func readVec3Accessor(doc *gltf.Document, accessorIdx int) ([]math3d.Vec3, error) {
	if accessorIdx < 0 || accessorIdx >= len(doc.Accessors) {
		return nil, fmt.Errorf("accessor %d out of range", accessorIdx)
	}
	accessor := doc.Accessors[accessorIdx]
	if accessor.Type != gltf.AccessorVec3 || accessor.ComponentType != gltf.ComponentFloat {
		return nil, fmt.Errorf("expected float VEC3, got %v / %v", accessor.Type, accessor.ComponentType)
	}

	data, start, stride, err := accessorBytes(doc, accessor, 12)
	if err != nil {
		return nil, err
	}

	result := make([]math3d.Vec3, accessor.Count)
	for i := range accessor.Count {
		off := start + i*stride
		if off+12 > len(data) {
			return nil, fmt.Errorf("accessor %d overruns its buffer", accessorIdx)
		}
		result[i] = math3d.V3(
			float64(readFloat32(data[off:])),
			float64(readFloat32(data[off+4:])),
			float64(readFloat32(data[off+8:])),
		)
	}
	return result, nil
}

// readIndices reads scalar index data from a GLTF accessor.
func readIndices(doc *gltf.Document, accessorIdx int) ([]int, error) {
	if accessorIdx < 0 || accessorIdx >= len(doc.Accessors) {
		return nil, fmt.Errorf("accessor %d out of range", accessorIdx)
	}
	accessor := doc.Accessors[accessorIdx]
	if accessor.Type != gltf.AccessorScalar {
		return nil, fmt.Errorf("expected SCALAR indices, got %v", accessor.Type)
	}

	var size int
	switch accessor.ComponentType {
	case gltf.ComponentUbyte:
		size = 1
	case gltf.ComponentUshort:
		size = 2
	case gltf.ComponentUint:
		size = 4
	default:
		return nil, fmt.Errorf("unexpected index type: %v", accessor.ComponentType)
	}

	data, start, stride, err := accessorBytes(doc, accessor, size)
	if err != nil {
		return nil, err
	}

	result := make([]int, accessor.Count)
	for i := range accessor.Count {
		off := start + i*stride
		if off+size > len(data) {
			return nil, fmt.Errorf("accessor %d overruns its buffer", accessorIdx)
		}
		switch size {
		case 1:
			result[i] = int(data[off])
		case 2:
			result[i] = int(binary.LittleEndian.Uint16(data[off:]))
		case 4:
			result[i] = int(binary.LittleEndian.Uint32(data[off:]))
		}
	}
	return result, nil
}

// accessorBytes resolves the buffer bytes, start offset and element stride
// of an accessor. elemSize is used when the buffer view is tightly packed.
func accessorBytes(doc *gltf.Document, accessor *gltf.Accessor, elemSize int) (data []byte, start, stride int, err error) {
	if accessor.BufferView == nil {
		return nil, 0, 0, fmt.Errorf("accessor has no buffer view")
	}
	if *accessor.BufferView >= len(doc.BufferViews) {
		return nil, 0, 0, fmt.Errorf("buffer view %d out of range", *accessor.BufferView)
	}
	bufferView := doc.BufferViews[*accessor.BufferView]
	if bufferView.Buffer >= len(doc.Buffers) {
		return nil, 0, 0, fmt.Errorf("buffer %d out of range", bufferView.Buffer)
	}

	// gltf.Open resolves embedded (GLB), data-URI and sibling-file buffers
	data = doc.Buffers[bufferView.Buffer].Data
	if data == nil {
		return nil, 0, 0, fmt.Errorf("buffer has no data")
	}

	stride = bufferView.ByteStride
	if stride == 0 {
		stride = elemSize
	}
	return data, bufferView.ByteOffset + accessor.ByteOffset, stride, nil
}

// readFloat32 reads a little-endian float32.
func readFloat32(b []byte) float32 {
	return math.Float32frombits(binary.LittleEndian.Uint32(b))
}
