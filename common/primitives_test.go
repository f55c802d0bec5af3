package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCubeWindingMatchesNormals(t *testing.T) {
	m := Cube(2)
	require.Len(t, m.Vertices, 24)
	require.Len(t, m.Indices, 36)

	for i := 0; i < len(m.Indices); i += 3 {
		a := m.Vertices[m.Indices[i]]
		b := m.Vertices[m.Indices[i+1]]
		c := m.Vertices[m.Indices[i+2]]
		face := b.Position.Sub(a.Position).Cross(c.Position.Sub(a.Position)).Normalize()
		assert.InDelta(t, 1, face.Dot(a.Normal), 1e-5, "triangle %d", i/3)
	}

	for _, v := range m.Vertices {
		for _, c := range v.Position {
			assert.InDelta(t, 1, c*c, 1e-6)
		}
		assert.InDelta(t, 0, v.Tangent.Dot(v.Normal), 1e-5)
		assert.InDelta(t, 1, v.Tangent.Len(), 1e-5)
	}
}

func TestPlane(t *testing.T) {
	m := Plane(10, 4)
	require.Len(t, m.Vertices, 4)
	assert.Equal(t, []uint32{0, 1, 2, 0, 2, 3}, m.Indices)
	for _, v := range m.Vertices {
		assert.Equal(t, float32(0), v.Position.Y())
		assert.InDelta(t, 5, v.Position.Len()/1.41421356, 1e-4)
		assert.Equal(t, float32(1), v.Normal.Y())
	}
	assert.Equal(t, float32(4), m.Vertices[0].TexCoord.Y())
	assert.Equal(t, float32(4), m.Vertices[2].TexCoord.X())
}
