package material

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

type fakeTexture struct {
	name     string
	bound    []int32
	released int
}

func (f *fakeTexture) Bind(unit int32) { f.bound = append(f.bound, unit) }

func (f *fakeTexture) Release() bool {
	f.released++
	return f.released == 1
}

func TestMissingValuesUseDefaults(t *testing.T) {
	fallback := &fakeTexture{name: "fallback"}
	m := NewMaterial(WithFallbackTexture(fallback))

	assert.Equal(t, float32(0), m.Float(SpecularPower))
	assert.Equal(t, mgl32.Vec3{}, m.Vec3("tint"))
	assert.Same(t, fallback, m.Texture(Diffuse))
	assert.False(t, m.HasTexture(Diffuse))
}

func TestNewMaterialRequiresFallback(t *testing.T) {
	assert.Panics(t, func() { NewMaterial(WithName("bricks")) })
}

func TestBuilderOptions(t *testing.T) {
	fallback := &fakeTexture{name: "fallback"}
	diffuse := &fakeTexture{name: "diffuse"}
	normal := &fakeTexture{name: "normal"}
	disp := &fakeTexture{name: "disp"}

	m := NewMaterial(
		WithName("bricks"),
		WithFallbackTexture(fallback),
		WithDiffuse(diffuse),
		WithNormalMap(normal),
		WithDisplacementMap(disp, 0.04, -1),
		WithSpecular(1, 8),
		WithVec3("tint", mgl32.Vec3{1, 0, 0}),
		WithFloat("gloss", 0.5),
	)

	assert.Equal(t, "bricks", m.Name())
	assert.Same(t, diffuse, m.Texture(Diffuse))
	assert.Same(t, normal, m.Texture(NormalMap))
	assert.Same(t, disp, m.Texture(DispMap))
	assert.Equal(t, float32(1), m.Float(SpecularIntensity))
	assert.Equal(t, float32(8), m.Float(SpecularPower))
	assert.InDelta(t, 0.04, m.Float(DispMapScale), 1e-7)
	assert.InDelta(t, -0.04, m.Float(DispMapBias), 1e-7)
	assert.Equal(t, mgl32.Vec3{1, 0, 0}, m.Vec3("tint"))
	assert.Equal(t, float32(0.5), m.Float("gloss"))
}

func TestDisplacementBiasCentered(t *testing.T) {
	m := NewMaterial(WithFallbackTexture(&fakeTexture{}), WithDisplacementMap(nil, 0.1, 0))
	assert.InDelta(t, -0.05, m.Float(DispMapBias), 1e-7)
	assert.False(t, m.HasTexture(DispMap))
}

func TestSetTexture(t *testing.T) {
	fallback := &fakeTexture{}
	tex := &fakeTexture{}
	m := NewMaterial(WithFallbackTexture(fallback))

	m.SetTexture("detail", tex)
	assert.Same(t, tex, m.Texture("detail"))

	m.SetTexture("detail", tex)
	assert.Equal(t, 0, tex.released)

	m.SetTexture("detail", nil)
	assert.Same(t, fallback, m.Texture("detail"))
	assert.Equal(t, 1, tex.released)
}

func TestSetTextureReleasesReplaced(t *testing.T) {
	fallback := &fakeTexture{}
	first := &fakeTexture{}
	second := &fakeTexture{}
	m := NewMaterial(WithFallbackTexture(fallback), WithDiffuse(first))

	m.SetTexture(Diffuse, second)
	assert.Equal(t, 1, first.released)
	assert.Equal(t, 0, second.released)

	m.Release()
	assert.Equal(t, 1, first.released)
	assert.Equal(t, 1, second.released)
	assert.Equal(t, 0, fallback.released)
}

func TestReleaseDropsNamedTexturesOnly(t *testing.T) {
	fallback := &fakeTexture{}
	diffuse := &fakeTexture{}
	m := NewMaterial(WithFallbackTexture(fallback), WithDiffuse(diffuse))

	m.Release()
	assert.Equal(t, 1, diffuse.released)
	assert.Equal(t, 0, fallback.released)
	assert.Same(t, fallback, m.Texture(Diffuse))

	m.Release()
	assert.Equal(t, 1, diffuse.released)
}
