package models

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/taigrr/polyview/pkg/math3d"
)

// MaterialExt is the extension of the companion material file that shares
// the mesh file's base name.
const MaterialExt = ".mtl"

// LoadOBJ reads an OBJ mesh and, when present, its companion .mtl file.
// Without a material file every face binds to DefaultMaterial.
func LoadOBJ(path string) (*Mesh, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &FileFormatError{Path: path, Err: fmt.Errorf("open mesh: %w", err)}
	}
	defer f.Close()

	mtlPath := strings.TrimSuffix(path, filepath.Ext(path)) + MaterialExt
	var materials *MaterialTable
	switch mf, err := os.Open(mtlPath); {
	case err == nil:
		materials, err = ParseMTL(mtlPath, mf)
		mf.Close()
		if err != nil {
			return nil, err
		}
	case errors.Is(err, fs.ErrNotExist):
	default:
		return nil, &FileFormatError{Path: mtlPath, Err: fmt.Errorf("open materials: %w", err)}
	}

	return ParseOBJ(path, f, materials)
}

// ParseMTL reads a material file. Each newmtl declares a black material;
// a following Kd line sets its color from [0,1] components.
func ParseMTL(path string, r io.Reader) (*MaterialTable, error) {
	table := NewMaterialTable()
	current := ""

	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		switch fields[0] {
		case "newmtl":
			if len(fields) < 2 {
				return nil, formatErr(path, line, "newmtl without a name")
			}
			current = fields[1]
			table.Set(current, Black)
		case "Kd":
			if current == "" {
				return nil, formatErr(path, line, "Kd before any newmtl")
			}
			rgb, err := parseFloats(fields[1:], 3)
			if err != nil {
				return nil, &FileFormatError{Path: path, Line: line, Err: fmt.Errorf("Kd: %w", err)}
			}
			table.Set(current, UnitRGB(rgb[0], rgb[1], rgb[2]))
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, &FileFormatError{Path: path, Err: fmt.Errorf("read materials: %w", err)}
	}
	return table, nil
}

// ParseOBJ reads OBJ text into a Mesh. materials is the parsed companion
// material table, or nil when there is none; in that case usemtl is ignored
// and every face binds to DefaultMaterial. Faces seen before any usemtl bind
// to DefaultMaterial as well. A usemtl naming an undeclared material adds it
// as black.
func ParseOBJ(path string, r io.Reader, materials *MaterialTable) (*Mesh, error) {
	useMaterials := materials != nil
	if materials == nil {
		materials = DefaultMaterials()
	} else {
		materials = materials.Clone()
	}

	var (
		vertices []math3d.Vec4
		faces    []Face
		lines    []int
		current  = DefaultMaterial
	)

	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		switch fields[0] {
		case "v":
			xyz, err := parseFloats(fields[1:], 3)
			if err != nil {
				return nil, &FileFormatError{Path: path, Line: line, Err: fmt.Errorf("vertex: %w", err)}
			}
			vertices = append(vertices, math3d.V4(xyz[0], xyz[1], xyz[2], 1))
		case "usemtl":
			if !useMaterials {
				continue
			}
			if len(fields) < 2 {
				return nil, formatErr(path, line, "usemtl without a name")
			}
			current = fields[1]
		case "f":
			if len(fields) < 2 {
				return nil, formatErr(path, line, "face without vertices")
			}
			idx := make([]int, 0, len(fields)-1)
			for _, tok := range fields[1:] {
				pos, _, _ := strings.Cut(tok, "/")
				n, err := strconv.Atoi(pos)
				if err != nil {
					return nil, formatErr(path, line, "face token %q: %v", tok, err)
				}
				switch {
				case n > 0:
					idx = append(idx, n-1)
				case n < 0:
					// Relative to the vertices declared so far
					idx = append(idx, len(vertices)+n)
				default:
					return nil, formatErr(path, line, "face token %q: indices are 1-based", tok)
				}
			}
			materials.Ensure(current)
			faces = append(faces, Face{V: idx, Material: current})
			lines = append(lines, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, &FileFormatError{Path: path, Err: fmt.Errorf("read mesh: %w", err)}
	}

	for i, f := range faces {
		for _, idx := range f.V {
			if idx < 0 || idx >= len(vertices) {
				return nil, &FileFormatError{
					Path: path,
					Line: lines[i],
					Err:  fmt.Errorf("%w: %d of %d vertices", ErrIndexRange, idx+1, len(vertices)),
				}
			}
		}
	}
	if materials.Len() == 0 {
		materials.Set(DefaultMaterial, Black)
	}

	return NewMesh(filepath.Base(path), vertices, faces, materials), nil
}

// parseFloats parses the first n fields as floats. Extra fields are ignored.
func parseFloats(fields []string, n int) ([]float64, error) {
	if len(fields) < n {
		return nil, fmt.Errorf("want %d components, got %d", n, len(fields))
	}
	out := make([]float64, n)
	for i := range n {
		f, err := strconv.ParseFloat(fields[i], 64)
		if err != nil {
			return nil, err
		}
		out[i] = f
	}
	return out, nil
}
