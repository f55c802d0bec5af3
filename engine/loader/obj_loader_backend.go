package loader

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Carmen-Shannon/oxy-forward/common"
)

var (
	// errOBJNoGeometry is returned for a file with no faces.
	errOBJNoGeometry = errors.New("obj: no faces")

	// errOBJIndexRange is returned when a face references a missing vertex element.
	errOBJIndexRange = errors.New("obj: index out of range")
)

// objIndex is one corner of a face: 0-based position, texture coordinate and normal
// indices, with -1 for an absent element.
type objIndex struct {
	v, vt, vn int
}

// objLoaderBackendImpl imports Wavefront OBJ geometry. Only v, vt, vn and f lines are
// read; polygons are fan triangulated and texture V coordinates are flipped.
type objLoaderBackendImpl struct{}

var _ loaderBackend = &objLoaderBackendImpl{}

func newOBJLoaderBackend() loaderBackend {
	return &objLoaderBackendImpl{}
}

func (b *objLoaderBackendImpl) Load(path string) (*ImportedModel, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return b.LoadReader(name, f)
}

func (b *objLoaderBackendImpl) LoadReader(name string, r io.Reader) (*ImportedModel, error) {
	var (
		positions []mgl32.Vec3
		texCoords []mgl32.Vec2
		normals   []mgl32.Vec3
		corners   []objIndex
	)

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
			continue
		}

		switch fields[0] {
		case "v":
			v, err := parseFloats(fields[1:], 3)
			if err != nil {
				return nil, fmt.Errorf("obj: line %d: %w", lineNo, err)
			}
			positions = append(positions, mgl32.Vec3{v[0], v[1], v[2]})
		case "vt":
			v, err := parseFloats(fields[1:], 2)
			if err != nil {
				return nil, fmt.Errorf("obj: line %d: %w", lineNo, err)
			}
			texCoords = append(texCoords, mgl32.Vec2{v[0], 1 - v[1]})
		case "vn":
			v, err := parseFloats(fields[1:], 3)
			if err != nil {
				return nil, fmt.Errorf("obj: line %d: %w", lineNo, err)
			}
			normals = append(normals, mgl32.Vec3{v[0], v[1], v[2]})
		case "f":
			if len(fields) < 4 {
				return nil, fmt.Errorf("obj: line %d: face needs at least 3 corners", lineNo)
			}
			face := make([]objIndex, 0, len(fields)-1)
			for _, tok := range fields[1:] {
				idx, err := parseOBJIndex(tok, len(positions), len(texCoords), len(normals))
				if err != nil {
					return nil, fmt.Errorf("obj: line %d: %w", lineNo, err)
				}
				face = append(face, idx)
			}
			for i := 1; i+1 < len(face); i++ {
				corners = append(corners, face[0], face[i], face[i+1])
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("obj: %w", err)
	}
	if len(corners) == 0 {
		return nil, errOBJNoGeometry
	}

	return &ImportedModel{
		Name: name,
		Meshes: []ImportedMesh{{
			Name:          name,
			Data:          buildOBJMesh(corners, positions, texCoords, normals),
			MaterialIndex: NoMaterial,
		}},
	}, nil
}

// buildOBJMesh deduplicates corners into indexed vertices. Normals (when the file has
// none) and tangents are computed on a model that shares vertices by position, so they
// are smooth across texture seams, and then copied onto the deduplicated vertices.
func buildOBJMesh(corners []objIndex, positions []mgl32.Vec3, texCoords []mgl32.Vec2, normals []mgl32.Vec3) common.MeshData {
	var (
		result  common.MeshData
		shared  common.MeshData
		byKey   = make(map[objIndex]uint32)
		byPos   = make(map[int]uint32)
		toShare []uint32
	)

	hasNormals := false
	for _, c := range corners {
		if c.vn >= 0 {
			hasNormals = true
			break
		}
	}

	for _, c := range corners {
		vert := common.Vertex{Position: positions[c.v]}
		if c.vt >= 0 {
			vert.TexCoord = texCoords[c.vt]
		}
		if c.vn >= 0 {
			vert.Normal = normals[c.vn]
		}

		idx, ok := byKey[c]
		if !ok {
			idx = uint32(len(result.Vertices))
			byKey[c] = idx
			result.Vertices = append(result.Vertices, vert)
		}

		sharedIdx, ok := byPos[c.v]
		if !ok {
			sharedIdx = uint32(len(shared.Vertices))
			byPos[c.v] = sharedIdx
			shared.Vertices = append(shared.Vertices, vert)
		}

		if int(idx) == len(toShare) {
			toShare = append(toShare, sharedIdx)
		}
		result.Indices = append(result.Indices, idx)
		shared.Indices = append(shared.Indices, sharedIdx)
	}

	if !hasNormals {
		shared.CalcNormals()
		for i := range result.Vertices {
			result.Vertices[i].Normal = shared.Vertices[toShare[i]].Normal
		}
	}
	shared.CalcTangents()
	for i := range result.Vertices {
		result.Vertices[i].Tangent = shared.Vertices[toShare[i]].Tangent
	}
	return result
}

// parseOBJIndex parses one face corner: "v", "v/vt", "v//vn" or "v/vt/vn". Indices are
// 1-based; negative indices count back from the most recent element.
func parseOBJIndex(tok string, nv, nvt, nvn int) (objIndex, error) {
	parts := strings.Split(tok, "/")
	if len(parts) > 3 {
		return objIndex{}, fmt.Errorf("malformed face corner %q", tok)
	}

	idx := objIndex{v: -1, vt: -1, vn: -1}
	targets := []*int{&idx.v, &idx.vt, &idx.vn}
	counts := []int{nv, nvt, nvn}
	for i, p := range parts {
		if p == "" {
			if i == 0 {
				return objIndex{}, fmt.Errorf("malformed face corner %q", tok)
			}
			continue
		}
		n, err := strconv.Atoi(p)
		if err != nil {
			return objIndex{}, fmt.Errorf("malformed face corner %q: %w", tok, err)
		}
		switch {
		case n > 0:
			n--
		case n < 0:
			n += counts[i]
		default:
			return objIndex{}, fmt.Errorf("%w: %q", errOBJIndexRange, tok)
		}
		if n < 0 || n >= counts[i] {
			return objIndex{}, fmt.Errorf("%w: %q", errOBJIndexRange, tok)
		}
		*targets[i] = n
	}
	return idx, nil
}

func parseFloats(fields []string, n int) ([]float32, error) {
	if len(fields) < n {
		return nil, fmt.Errorf("want %d values, got %d", n, len(fields))
	}
	out := make([]float32, n)
	for i := 0; i < n; i++ {
		f, err := strconv.ParseFloat(fields[i], 32)
		if err != nil {
			return nil, err
		}
		out[i] = float32(f)
	}
	return out, nil
}
