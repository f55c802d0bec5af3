package common

import "github.com/go-gl/mathgl/mgl32"

// VertexStride is the number of float32 values per interleaved vertex:
// position (3), texture coordinate (2), normal (3), tangent (3).
const VertexStride = 11

// Vertex is a single mesh vertex as consumed by the forward shading programs.
type Vertex struct {
	Position mgl32.Vec3
	TexCoord mgl32.Vec2
	Normal   mgl32.Vec3
	Tangent  mgl32.Vec3
}

// MeshData is CPU-side indexed triangle geometry.
type MeshData struct {
	Vertices []Vertex
	Indices  []uint32
}

// CalcNormals replaces every vertex normal with the normalized sum of the face normals
// of the triangles that reference it.
func (m *MeshData) CalcNormals() {
	for i := range m.Vertices {
		m.Vertices[i].Normal = mgl32.Vec3{}
	}

	for i := 0; i+2 < len(m.Indices); i += 3 {
		i0, i1, i2 := m.Indices[i], m.Indices[i+1], m.Indices[i+2]
		p0 := m.Vertices[i0].Position
		v1 := m.Vertices[i1].Position.Sub(p0)
		v2 := m.Vertices[i2].Position.Sub(p0)
		n := safeNormalize(v1.Cross(v2))

		m.Vertices[i0].Normal = m.Vertices[i0].Normal.Add(n)
		m.Vertices[i1].Normal = m.Vertices[i1].Normal.Add(n)
		m.Vertices[i2].Normal = m.Vertices[i2].Normal.Add(n)
	}

	for i := range m.Vertices {
		m.Vertices[i].Normal = safeNormalize(m.Vertices[i].Normal)
	}
}

// CalcTangents computes per-vertex tangents from positions and texture coordinates.
// Triangles with degenerate UV mapping contribute a zero tangent.
func (m *MeshData) CalcTangents() {
	for i := range m.Vertices {
		m.Vertices[i].Tangent = mgl32.Vec3{}
	}

	for i := 0; i+2 < len(m.Indices); i += 3 {
		i0, i1, i2 := m.Indices[i], m.Indices[i+1], m.Indices[i+2]
		v0, v1, v2 := m.Vertices[i0], m.Vertices[i1], m.Vertices[i2]

		edge1 := v1.Position.Sub(v0.Position)
		edge2 := v2.Position.Sub(v0.Position)

		deltaU1 := v1.TexCoord[0] - v0.TexCoord[0]
		deltaV1 := v1.TexCoord[1] - v0.TexCoord[1]
		deltaU2 := v2.TexCoord[0] - v0.TexCoord[0]
		deltaV2 := v2.TexCoord[1] - v0.TexCoord[1]

		var f float32
		if dividend := deltaU1*deltaV2 - deltaU2*deltaV1; dividend != 0 {
			f = 1 / dividend
		}

		t := edge1.Mul(deltaV2).Sub(edge2.Mul(deltaV1)).Mul(f)

		m.Vertices[i0].Tangent = m.Vertices[i0].Tangent.Add(t)
		m.Vertices[i1].Tangent = m.Vertices[i1].Tangent.Add(t)
		m.Vertices[i2].Tangent = m.Vertices[i2].Tangent.Add(t)
	}

	for i := range m.Vertices {
		m.Vertices[i].Tangent = safeNormalize(m.Vertices[i].Tangent)
	}
}

// Interleave flattens the vertices into the layout described by VertexStride.
//
// Returns:
//   - []float32: len(Vertices) * VertexStride values
func (m *MeshData) Interleave() []float32 {
	out := make([]float32, 0, len(m.Vertices)*VertexStride)
	for _, v := range m.Vertices {
		out = append(out,
			v.Position[0], v.Position[1], v.Position[2],
			v.TexCoord[0], v.TexCoord[1],
			v.Normal[0], v.Normal[1], v.Normal[2],
			v.Tangent[0], v.Tangent[1], v.Tangent[2],
		)
	}
	return out
}

func safeNormalize(v mgl32.Vec3) mgl32.Vec3 {
	if v.Len() == 0 {
		return v
	}
	return v.Normalize()
}
