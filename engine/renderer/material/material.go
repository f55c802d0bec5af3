package material

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Carmen-Shannon/oxy-forward/engine/renderer/values"
)

// Well-known material value and texture names used by the built-in forward programs.
const (
	Diffuse           = "diffuse"
	NormalMap         = "normalMap"
	DispMap           = "dispMap"
	SpecularIntensity = "specularIntensity"
	SpecularPower     = "specularPower"
	DispMapScale      = "dispMapScale"
	DispMapBias       = "dispMapBias"
)

// Texture is a GPU texture that can be bound to a texture unit.
type Texture interface {
	// Bind makes the texture current on the given unit.
	//
	// Parameters:
	//   - unit: zero-based texture unit
	Bind(unit int32)
}

// releaser is implemented by shared texture handles. Release reports whether this was
// the last owner.
type releaser interface {
	Release() bool
}

type material struct {
	name     string
	values   values.Store
	textures map[string]Texture
	fallback Texture
}

// Material describes how a surface is shaded: named scalar/vector values plus named
// textures. Every lookup succeeds. Absent values read as zero and absent textures
// resolve to the material's fallback texture.
type Material interface {
	// Name returns the material identifier.
	//
	// Returns:
	//   - string: the name
	Name() string

	// Float returns the named scalar, or 0 if it was never set.
	//
	// Parameters:
	//   - name: the value name
	//
	// Returns:
	//   - float32: the value
	Float(name string) float32

	// Vec3 returns the named vector, or the zero vector if it was never set.
	//
	// Parameters:
	//   - name: the value name
	//
	// Returns:
	//   - mgl32.Vec3: the value
	Vec3(name string) mgl32.Vec3

	// SetFloat stores a named scalar.
	//
	// Parameters:
	//   - name: the value name
	//   - v: the value
	SetFloat(name string, v float32)

	// SetVec3 stores a named vector.
	//
	// Parameters:
	//   - name: the value name
	//   - v: the value
	SetVec3(name string, v mgl32.Vec3)

	// Texture returns the named texture, or the fallback texture if none is set.
	// Never returns nil.
	//
	// Parameters:
	//   - name: the sampler name
	//
	// Returns:
	//   - Texture: the texture to bind
	Texture(name string) Texture

	// HasTexture reports whether a texture other than the fallback is set for name.
	//
	// Parameters:
	//   - name: the sampler name
	//
	// Returns:
	//   - bool: true if set
	HasTexture(name string) bool

	// SetTexture stores a named texture. The material takes over the caller's reference
	// to tex and releases the texture it replaces. A nil texture removes the entry.
	//
	// Parameters:
	//   - name: the sampler name
	//   - tex: the texture
	SetTexture(name string, tex Texture)

	// Fallback returns the texture used for absent names.
	//
	// Returns:
	//   - Texture: the fallback texture
	Fallback() Texture

	// Release drops this material's reference to each named texture that is a shared
	// handle. The fallback texture is owned by whoever created it and is not released.
	Release()
}

var _ Material = &material{}

// NewMaterial creates a new Material with the provided options applied.
// A fallback texture is mandatory. NewMaterial panics without one since every
// sampler lookup depends on it.
//
// Parameters:
//   - options: functional options to configure the material
//
// Returns:
//   - Material: the new material
func NewMaterial(options ...MaterialBuilderOption) Material {
	m := &material{
		textures: make(map[string]Texture),
	}
	for _, option := range options {
		option(m)
	}
	if m.fallback == nil {
		panic(fmt.Sprintf("material: %q has no fallback texture", m.name))
	}
	return m
}

func (m *material) Name() string {
	return m.name
}

func (m *material) Float(name string) float32 {
	return m.values.Float(name)
}

func (m *material) Vec3(name string) mgl32.Vec3 {
	return m.values.Vec3(name)
}

func (m *material) SetFloat(name string, v float32) {
	m.values.SetFloat(name, v)
}

func (m *material) SetVec3(name string, v mgl32.Vec3) {
	m.values.SetVec3(name, v)
}

func (m *material) Texture(name string) Texture {
	if tex, ok := m.textures[name]; ok {
		return tex
	}
	return m.fallback
}

func (m *material) HasTexture(name string) bool {
	_, ok := m.textures[name]
	return ok
}

func (m *material) SetTexture(name string, tex Texture) {
	if old, ok := m.textures[name]; ok && old != tex {
		if r, ok := old.(releaser); ok {
			r.Release()
		}
	}
	if tex == nil {
		delete(m.textures, name)
		return
	}
	m.textures[name] = tex
}

func (m *material) Fallback() Texture {
	return m.fallback
}

func (m *material) Release() {
	for name, tex := range m.textures {
		if r, ok := tex.(releaser); ok {
			r.Release()
		}
		delete(m.textures, name)
	}
}
