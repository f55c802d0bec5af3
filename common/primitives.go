package common

import "github.com/go-gl/mathgl/mgl32"

// quadTexCoords are the texture coordinates of a face's four corners, in the corner
// order used by the face tables below.
var quadTexCoords = [4]mgl32.Vec2{{0, 1}, {0, 0}, {1, 0}, {1, 1}}

// quadFace is four corners and the shared normal of one side of a box.
// Corners wind clockwise when the face is viewed from outside.
type quadFace struct {
	corners [4]mgl32.Vec3
	normal  mgl32.Vec3
}

var cubeFaces = [6]quadFace{
	// +X
	{corners: [4]mgl32.Vec3{{0.5, -0.5, -0.5}, {0.5, 0.5, -0.5}, {0.5, 0.5, 0.5}, {0.5, -0.5, 0.5}}, normal: mgl32.Vec3{1, 0, 0}},
	// -X
	{corners: [4]mgl32.Vec3{{-0.5, -0.5, 0.5}, {-0.5, 0.5, 0.5}, {-0.5, 0.5, -0.5}, {-0.5, -0.5, -0.5}}, normal: mgl32.Vec3{-1, 0, 0}},
	// +Y
	{corners: [4]mgl32.Vec3{{-0.5, 0.5, -0.5}, {-0.5, 0.5, 0.5}, {0.5, 0.5, 0.5}, {0.5, 0.5, -0.5}}, normal: mgl32.Vec3{0, 1, 0}},
	// -Y
	{corners: [4]mgl32.Vec3{{-0.5, -0.5, 0.5}, {-0.5, -0.5, -0.5}, {0.5, -0.5, -0.5}, {0.5, -0.5, 0.5}}, normal: mgl32.Vec3{0, -1, 0}},
	// +Z
	{corners: [4]mgl32.Vec3{{-0.5, -0.5, 0.5}, {0.5, -0.5, 0.5}, {0.5, 0.5, 0.5}, {-0.5, 0.5, 0.5}}, normal: mgl32.Vec3{0, 0, 1}},
	// -Z
	{corners: [4]mgl32.Vec3{{0.5, -0.5, -0.5}, {-0.5, -0.5, -0.5}, {-0.5, 0.5, -0.5}, {0.5, 0.5, -0.5}}, normal: mgl32.Vec3{0, 0, -1}},
}

// Cube builds an axis-aligned cube centered on the origin with one texture repeat per
// face.
//
// Parameters:
//   - size: the edge length
//
// Returns:
//   - MeshData: 24 vertices and 36 indices with normals and tangents
func Cube(size float32) MeshData {
	var m MeshData
	for _, f := range cubeFaces {
		m.addQuad(f, size, 1)
	}
	m.CalcTangents()
	return m
}

// Plane builds a square in the XZ plane facing +Y.
//
// Parameters:
//   - size: the edge length
//   - uvScale: how many times the texture repeats along each edge
//
// Returns:
//   - MeshData: 4 vertices and 6 indices with normals and tangents
func Plane(size, uvScale float32) MeshData {
	f := cubeFaces[2]
	for i := range f.corners {
		f.corners[i][1] = 0
	}

	var m MeshData
	m.addQuad(f, size, uvScale)
	m.CalcTangents()
	return m
}

func (m *MeshData) addQuad(f quadFace, size, uvScale float32) {
	base := uint32(len(m.Vertices))
	for i, c := range f.corners {
		m.Vertices = append(m.Vertices, Vertex{
			Position: c.Mul(size),
			TexCoord: quadTexCoords[i].Mul(uvScale),
			Normal:   f.normal,
		})
	}
	m.Indices = append(m.Indices,
		base+0, base+1, base+2,
		base+0, base+2, base+3,
	)
}
