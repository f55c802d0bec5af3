package component

import (
	"github.com/Carmen-Shannon/oxy-forward/engine/game_object"
	"github.com/Carmen-Shannon/oxy-forward/engine/renderer/material"
	"github.com/Carmen-Shannon/oxy-forward/engine/renderer/shader"
)

// Drawable is geometry that can be drawn with the bound program.
// resource.Mesh satisfies it.
type Drawable interface {
	// Draw issues the draw call.
	Draw()

	// Release drops the caller's reference to the geometry.
	Release() bool
}

// MeshRenderer draws a mesh with a material using whichever program the current pass
// has bound.
type MeshRenderer struct {
	game_object.BaseComponent

	mesh     Drawable
	material material.Material
}

var _ game_object.Component = &MeshRenderer{}

// NewMeshRenderer creates a MeshRenderer that takes ownership of mesh and mat. Both are
// released when the component is released.
//
// Parameters:
//   - mesh: the geometry
//   - mat: the material
//
// Returns:
//   - *MeshRenderer: the component
func NewMeshRenderer(mesh Drawable, mat material.Material) *MeshRenderer {
	if mesh == nil || mat == nil {
		panic("component: mesh renderer needs a mesh and a material")
	}
	return &MeshRenderer{mesh: mesh, material: mat}
}

// Material returns the material the mesh is drawn with.
func (m *MeshRenderer) Material() material.Material {
	return m.material
}

// Render uploads the uniforms for this object and draws the mesh.
func (m *MeshRenderer) Render(program shader.Program, pass shader.Pass) error {
	if err := program.UpdateUniforms(m.Transform(), m.material, pass); err != nil {
		return err
	}
	m.mesh.Draw()
	return nil
}

func (m *MeshRenderer) Release() {
	m.mesh.Release()
	m.material.Release()
}
