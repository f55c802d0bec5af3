package resource

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Carmen-Shannon/oxy-forward/common"
	"github.com/Carmen-Shannon/oxy-forward/engine/renderer/device"
	"github.com/Carmen-Shannon/oxy-forward/engine/renderer/material"
	"github.com/Carmen-Shannon/oxy-forward/engine/renderer/shader"
)

const triangleOBJ = `
v 0 0 0
v 1 0 0
v 0 1 0
vt 0 0
vt 1 0
vt 0 1
f 1/1 2/2 3/3
`

func newTestLibrary(t *testing.T) (device.Device, Library) {
	t.Helper()
	dev := device.NewDevice(device.BackendTypeHeadless)
	return dev, NewLibrary(dev)
}

func callsNamed(dev device.Device, op string) []device.Call {
	var out []device.Call
	for _, c := range dev.Calls() {
		if c.Op == op {
			out = append(out, c)
		}
	}
	return out
}

func writePNG(t *testing.T, path string) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	for i := range img.Pix {
		img.Pix[i] = 200
	}
	img.Set(0, 0, color.RGBA{0, 0, 0, 255})
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, img))
}

func quadData() common.MeshData {
	return common.MeshData{
		Vertices: []common.Vertex{
			{Position: mgl32.Vec3{0, 0, 0}},
			{Position: mgl32.Vec3{1, 0, 0}},
			{Position: mgl32.Vec3{1, 1, 0}},
			{Position: mgl32.Vec3{0, 1, 0}},
		},
		Indices: []uint32{0, 1, 2, 0, 2, 3},
	}
}

func TestNewLibraryUploadsFallback(t *testing.T) {
	dev, lib := newTestLibrary(t)

	assert.Equal(t, 1, dev.Stats().Textures)
	w, h := lib.Fallback().Size()
	assert.Equal(t, uint32(8), w)
	assert.Equal(t, uint32(8), h)

	mat := lib.NewMaterial()
	assert.Same(t, lib.Fallback(), mat.Texture(material.Diffuse))

	lib.Close()
	assert.Equal(t, 0, dev.Stats().Textures)
}

func TestMeshFromDataDrawsAndReleases(t *testing.T) {
	dev, lib := newTestLibrary(t)

	a := lib.MeshFromData("quad", quadData())
	b := lib.MeshFromData("quad", quadData())
	assert.NotEqual(t, a.ID(), b.ID())
	assert.Equal(t, int32(6), a.IndexCount())

	a.Draw()
	draws := callsNamed(dev, "DrawMesh")
	require.Len(t, draws, 1)
	assert.Equal(t, []any{a.ID(), int32(6)}, draws[0].Args)

	c := a.Clone()
	assert.False(t, a.Release())
	assert.Equal(t, 2, dev.Stats().Meshes)
	assert.True(t, c.Release())
	assert.False(t, c.Release())
	assert.Equal(t, 1, dev.Stats().Meshes)
	assert.Len(t, callsNamed(dev, "DeleteMesh"), 1)

	b.Release()
}

func TestMeshSharesByPath(t *testing.T) {
	dev, lib := newTestLibrary(t)
	path := filepath.Join(t.TempDir(), "tri.obj")
	require.NoError(t, os.WriteFile(path, []byte(triangleOBJ), 0o644))

	a, err := lib.Mesh(path)
	require.NoError(t, err)
	b, err := lib.Mesh(path)
	require.NoError(t, err)

	assert.Equal(t, a.ID(), b.ID())
	assert.Equal(t, 1, dev.Stats().Meshes)
	assert.Len(t, callsNamed(dev, "CreateMesh"), 1)

	a.Release()
	b.Release()
	assert.Equal(t, 0, dev.Stats().Meshes)

	_, err = lib.Mesh(filepath.Join(t.TempDir(), "missing.obj"))
	assert.Error(t, err)
}

func TestModelGivesDefaultMaterial(t *testing.T) {
	dev, lib := newTestLibrary(t)
	path := filepath.Join(t.TempDir(), "tri.obj")
	require.NoError(t, os.WriteFile(path, []byte(triangleOBJ), 0o644))

	parts, err := lib.Model(path)
	require.NoError(t, err)
	require.Len(t, parts, 1)

	p := parts[0]
	assert.Equal(t, "tri", p.Name)
	assert.Equal(t, float32(DefaultSpecularIntensity), p.Material.Float(material.SpecularIntensity))
	assert.Equal(t, float32(DefaultSpecularPower), p.Material.Float(material.SpecularPower))
	assert.False(t, p.Material.HasTexture(material.Diffuse))
	assert.Same(t, lib.Fallback(), p.Material.Texture(material.Diffuse))

	p.Release()
	meshes, textures, _ := lib.Live()
	assert.Equal(t, 0, meshes)
	assert.Equal(t, 1, textures)
	assert.Equal(t, 0, dev.Stats().Meshes)
}

func TestTextureSharesByPath(t *testing.T) {
	dev, lib := newTestLibrary(t)
	path := filepath.Join(t.TempDir(), "bricks.png")
	writePNG(t, path)

	a, err := lib.Texture(path)
	require.NoError(t, err)
	b, err := lib.Texture(path)
	require.NoError(t, err)
	assert.Equal(t, a.ID(), b.ID())
	assert.Equal(t, 2, dev.Stats().Textures)

	a.Bind(3)
	binds := callsNamed(dev, "BindTexture")
	require.Len(t, binds, 1)
	assert.Equal(t, []any{a.ID(), int32(3)}, binds[0].Args)

	mat := lib.NewMaterial(material.WithDiffuse(a))
	mat.Release()
	assert.True(t, b.Release())
	assert.Equal(t, 1, dev.Stats().Textures)

	_, err = lib.Texture(filepath.Join(t.TempDir(), "missing.png"))
	assert.Error(t, err)
}

func TestTextureFromData(t *testing.T) {
	dev, lib := newTestLibrary(t)
	tex := lib.TextureFromData("white", common.CheckerTexture(2, [4]byte{255, 255, 255, 255}, [4]byte{255, 255, 255, 255}))

	assert.Equal(t, 2, dev.Stats().Textures)
	assert.True(t, tex.Release())
	assert.Equal(t, 1, dev.Stats().Textures)
}

func TestProgramShared(t *testing.T) {
	dev, lib := newTestLibrary(t)

	a := lib.Program(shader.ProgramForwardAmbient)
	b := lib.Program(shader.ProgramForwardAmbient)
	assert.Same(t, a.Value(), b.Value())
	assert.Equal(t, 1, dev.Stats().Programs)

	a.Release()
	assert.Equal(t, 1, dev.Stats().Programs)
	b.Release()
	assert.Equal(t, 0, dev.Stats().Programs)

	assert.Panics(t, func() { lib.Program("forward-area") })
}

func TestMaterialReleasesReplacedTexture(t *testing.T) {
	dev, lib := newTestLibrary(t)
	white := [4]byte{255, 255, 255, 255}
	a := lib.TextureFromData("a", common.CheckerTexture(2, white, white))
	b := lib.TextureFromData("b", common.CheckerTexture(2, white, white))

	mat := lib.NewMaterial(material.WithDiffuse(a))
	mat.SetTexture(material.Diffuse, b)
	_, textures, _ := lib.Live()
	assert.Equal(t, 2, textures)
	assert.Equal(t, 2, dev.Stats().Textures)

	mat.Release()
	_, textures, _ = lib.Live()
	assert.Equal(t, 1, textures)
	assert.Equal(t, 1, dev.Stats().Textures)
}
