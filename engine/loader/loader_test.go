package loader

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Carmen-Shannon/oxy-forward/common"
)

// triangleGLTF is a single unindexed triangle with an embedded position buffer and one
// PBR material.
const triangleGLTF = `{
  "asset": {"version": "2.0"},
  "buffers": [{"byteLength": 36, "uri": "data:application/octet-stream;base64,AAAAAAAAAAAAAAAAAACAPwAAAAAAAAAAAAAAAAAAgD8AAAAA"}],
  "bufferViews": [{"buffer": 0, "byteLength": 36}],
  "accessors": [{"bufferView": 0, "componentType": 5126, "count": 3, "type": "VEC3"}],
  "materials": [{"name": "plastic", "pbrMetallicRoughness": {"metallicFactor": 0.25, "roughnessFactor": 0.5}}],
  "meshes": [{"name": "tri", "primitives": [{"attributes": {"POSITION": 0}, "material": 0}]}]
}`

func writeFile(t *testing.T, dir, name, contents string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func encodePNG(t *testing.T, w, h int, c color.RGBA) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestLoadSelectsBackendByExtensionAndCaches(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "Quad.OBJ", quadOBJ)

	l := NewLoader()
	first, err := l.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "Quad", first.Name)

	require.NoError(t, os.Remove(path))
	second, err := l.Load(path)
	require.NoError(t, err)
	assert.Same(t, first, second)
	assert.Same(t, first, l.Get(path))
	assert.Len(t, l.Models(), 1)
}

func TestLoadUnsupportedExtension(t *testing.T) {
	path := writeFile(t, t.TempDir(), "model.fbx", "")

	_, err := NewLoader().Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported model format")
}

func TestLoadMissingFile(t *testing.T) {
	l := NewLoader()
	_, err := l.Load(filepath.Join(t.TempDir(), "missing.obj"))
	assert.Error(t, err)
	assert.Empty(t, l.Models())
}

func TestLoadGLTF(t *testing.T) {
	path := writeFile(t, t.TempDir(), "tri.gltf", triangleGLTF)

	m, err := NewLoader().Load(path)
	require.NoError(t, err)
	require.Len(t, m.Meshes, 1)
	require.Len(t, m.Materials, 1)

	mesh := m.Meshes[0]
	assert.Equal(t, "tri", mesh.Name)
	assert.Equal(t, 0, mesh.MaterialIndex)
	assert.Equal(t, []uint32{0, 1, 2}, mesh.Data.Indices)
	for _, v := range mesh.Data.Vertices {
		assert.InDelta(t, 1, v.Normal.Z(), 1e-5)
	}

	mat := m.Materials[0]
	assert.Equal(t, "plastic", mat.Name)
	assert.InDelta(t, 0.25, mat.SpecularIntensity, 1e-6)
	assert.InDelta(t, 33, mat.SpecularPower, 1e-4)
	assert.Nil(t, mat.Diffuse)
	assert.Empty(t, m.TextureSources())
}

func TestLoadReaderCachesByName(t *testing.T) {
	l := NewLoader()
	m, err := l.LoadReader("tri", strings.NewReader(triangleGLTF), BackendTypeGLTF)
	require.NoError(t, err)

	again, err := l.LoadReader("tri", strings.NewReader("not read"), BackendTypeGLTF)
	require.NoError(t, err)
	assert.Same(t, m, again)

	_, err = l.LoadReader("bad", strings.NewReader("{"), BackendTypeGLTF)
	assert.Error(t, err)
	assert.Nil(t, l.Get("bad"))

	_, err = l.LoadReader("other", strings.NewReader(quadOBJ), LoaderBackendType(99))
	assert.Error(t, err)
}

func TestWithModelPrepopulatesCache(t *testing.T) {
	m := &ImportedModel{Name: "preset"}
	l := NewLoader(WithModel("preset.obj", m))

	got, err := l.Load("preset.obj")
	require.NoError(t, err)
	assert.Same(t, m, got)
}

func TestDecodeTexturesPreservesOrder(t *testing.T) {
	sources := []*common.TextureSource{
		{Name: "red", Data: encodePNG(t, 2, 1, color.RGBA{255, 0, 0, 255})},
		nil,
		{Name: "blue", Data: encodePNG(t, 1, 3, color.RGBA{0, 0, 255, 255})},
		{Name: "green", Data: encodePNG(t, 4, 4, color.RGBA{0, 255, 0, 255})},
	}

	out, err := NewLoader(WithDecodeWorkers(2)).DecodeTextures(sources)
	require.NoError(t, err)
	require.Len(t, out, 4)

	assert.Equal(t, uint32(2), out[0].Width)
	assert.Equal(t, []byte{255, 0, 0, 255}, out[0].Pixels[:4])
	assert.Empty(t, out[1].Pixels)
	assert.Equal(t, uint32(3), out[2].Height)
	assert.Equal(t, []byte{0, 0, 255, 255}, out[2].Pixels[:4])
	assert.Len(t, out[3].Pixels, 4*4*4)
}

func TestDecodeTexturesJoinsErrors(t *testing.T) {
	sources := []*common.TextureSource{
		{Name: "garbage", Data: []byte("not an image")},
		{Name: "ok", Data: encodePNG(t, 1, 1, color.RGBA{10, 20, 30, 255})},
		{Name: "empty"},
	}

	out, err := NewLoader(WithDecodeWorkers(0)).DecodeTextures(sources)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "garbage")
	assert.Contains(t, err.Error(), "empty")
	assert.Equal(t, []byte{10, 20, 30, 255}, out[1].Pixels)
}
