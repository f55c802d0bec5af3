package loader

import (
	"github.com/Carmen-Shannon/oxy-forward/common"
)

// NoMaterial is the MaterialIndex of a mesh that references no material.
const NoMaterial = -1

// ImportedMesh is one drawable piece of an imported model.
type ImportedMesh struct {
	// Name identifies the mesh within its model.
	Name string
	// Data holds the vertices with normals and tangents filled in.
	Data common.MeshData
	// MaterialIndex indexes ImportedModel.Materials, or is NoMaterial.
	MaterialIndex int
}

// ImportedMaterial is the CPU-side description of a material found in a model file.
// Texture sources are not decoded; see Loader.DecodeTextures.
type ImportedMaterial struct {
	Name string

	// Diffuse is the base color texture, or nil.
	Diffuse *common.TextureSource
	// NormalMap is the tangent-space normal texture, or nil.
	NormalMap *common.TextureSource

	SpecularIntensity float32
	SpecularPower     float32
}

// ImportedModel is the result of importing one model file.
type ImportedModel struct {
	Name      string
	Meshes    []ImportedMesh
	Materials []ImportedMaterial
}

// TextureSources returns every texture referenced by the model's materials, in
// material order with the diffuse texture before the normal map.
//
// Returns:
//   - []*common.TextureSource: the referenced textures
func (m *ImportedModel) TextureSources() []*common.TextureSource {
	var out []*common.TextureSource
	for i := range m.Materials {
		if m.Materials[i].Diffuse != nil {
			out = append(out, m.Materials[i].Diffuse)
		}
		if m.Materials[i].NormalMap != nil {
			out = append(out, m.Materials[i].NormalMap)
		}
	}
	return out
}
