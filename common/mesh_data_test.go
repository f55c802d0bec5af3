package common

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalcNormals(t *testing.T) {
	m := MeshData{
		Vertices: []Vertex{
			{Position: mgl32.Vec3{0, 0, 0}},
			{Position: mgl32.Vec3{0, 1, 0}},
			{Position: mgl32.Vec3{1, 0, 0}},
		},
		Indices: []uint32{0, 1, 2},
	}
	m.CalcNormals()

	for _, v := range m.Vertices {
		assertVec3Near(t, mgl32.Vec3{0, 0, -1}, v.Normal)
	}
}

func TestCalcTangents(t *testing.T) {
	m := MeshData{
		Vertices: []Vertex{
			{Position: mgl32.Vec3{0, 0, 0}, TexCoord: mgl32.Vec2{0, 0}},
			{Position: mgl32.Vec3{1, 0, 0}, TexCoord: mgl32.Vec2{1, 0}},
			{Position: mgl32.Vec3{0, 1, 0}, TexCoord: mgl32.Vec2{0, 1}},
		},
		Indices: []uint32{0, 1, 2},
	}
	m.CalcTangents()

	for _, v := range m.Vertices {
		assertVec3Near(t, AxisX, v.Tangent)
	}
}

func TestCalcTangentsDegenerateUV(t *testing.T) {
	m := MeshData{
		Vertices: []Vertex{
			{Position: mgl32.Vec3{0, 0, 0}},
			{Position: mgl32.Vec3{1, 0, 0}},
			{Position: mgl32.Vec3{0, 1, 0}},
		},
		Indices: []uint32{0, 1, 2},
	}
	m.CalcTangents()

	for _, v := range m.Vertices {
		assert.Equal(t, mgl32.Vec3{}, v.Tangent)
	}
}

func TestInterleave(t *testing.T) {
	m := MeshData{Vertices: []Vertex{{
		Position: mgl32.Vec3{1, 2, 3},
		TexCoord: mgl32.Vec2{4, 5},
		Normal:   mgl32.Vec3{6, 7, 8},
		Tangent:  mgl32.Vec3{9, 10, 11},
	}}}

	assert.Equal(t, []float32{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11}, m.Interleave())
}

func TestDecodeTexture(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 2, 1))
	img.Set(0, 0, color.RGBA{R: 255, A: 255})
	img.Set(1, 0, color.RGBA{B: 255, A: 255})
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))

	src := &TextureSource{Name: "diffuse", Data: buf.Bytes()}
	data, err := src.Decode()
	require.NoError(t, err)
	assert.Equal(t, uint32(2), data.Width)
	assert.Equal(t, uint32(1), data.Height)
	assert.Equal(t, []byte{255, 0, 0, 255, 0, 0, 255, 255}, data.Pixels)
}

func TestDecodeTextureErrors(t *testing.T) {
	var nilSrc *TextureSource
	_, err := nilSrc.Decode()
	assert.Error(t, err)

	_, err = (&TextureSource{Name: "empty"}).Decode()
	assert.Error(t, err)

	_, err = (&TextureSource{Name: "junk", Data: []byte("not an image")}).Decode()
	assert.Error(t, err)
}

func TestCheckerTexture(t *testing.T) {
	white := [4]byte{255, 255, 255, 255}
	black := [4]byte{0, 0, 0, 255}
	data := CheckerTexture(2, white, black)

	assert.Equal(t, uint32(2), data.Width)
	assert.Len(t, data.Pixels, 16)
	assert.Equal(t, white[:], data.Pixels[0:4])
	assert.Equal(t, black[:], data.Pixels[4:8])
	assert.Equal(t, black[:], data.Pixels[8:12])
	assert.Equal(t, white[:], data.Pixels[12:16])
}
