package loader

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"

	"github.com/Carmen-Shannon/oxy-forward/common"
)

// Specular values given to glTF materials, which carry no Phong terms.
const (
	gltfDefaultSpecularIntensity = 0.5
	gltfDefaultSpecularPower     = 32
)

// gltfLoaderBackendImpl imports glTF and GLB files. Every mesh primitive becomes one
// ImportedMesh in the primitive's own space. Node transforms, skins and animations are
// not imported.
type gltfLoaderBackendImpl struct{}

var _ loaderBackend = &gltfLoaderBackendImpl{}

// newGLTFLoaderBackend creates a new glTF loader backend.
//
// Returns:
//   - loaderBackend: the loader backend for glTF/GLB files
func newGLTFLoaderBackend() loaderBackend {
	return &gltfLoaderBackendImpl{}
}

func (b *gltfLoaderBackendImpl) Load(path string) (*ImportedModel, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("gltf: open %s: %w", path, err)
	}
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return gltfImport(doc, name, filepath.Dir(path))
}

func (b *gltfLoaderBackendImpl) LoadReader(name string, r io.Reader) (*ImportedModel, error) {
	doc := new(gltf.Document)
	if err := gltf.NewDecoder(r).Decode(doc); err != nil {
		return nil, fmt.Errorf("gltf: decode %s: %w", name, err)
	}
	return gltfImport(doc, name, "")
}

// gltfImport converts a decoded document. baseDir resolves external image URIs and may
// be empty when the document came from a stream.
func gltfImport(doc *gltf.Document, name, baseDir string) (*ImportedModel, error) {
	result := &ImportedModel{Name: name}

	for i, gm := range doc.Materials {
		mat := ImportedMaterial{
			Name:              common.Coalesce(gm.Name, fmt.Sprintf("%s_material_%d", name, i)),
			SpecularIntensity: gltfDefaultSpecularIntensity,
			SpecularPower:     gltfDefaultSpecularPower,
		}
		if pbr := gm.PBRMetallicRoughness; pbr != nil {
			if pbr.BaseColorTexture != nil {
				mat.Diffuse = gltfTextureSource(doc, pbr.BaseColorTexture.Index, baseDir)
			}
			mat.SpecularIntensity = float32(pbr.MetallicFactorOrDefault())
			roughness := float32(pbr.RoughnessFactorOrDefault())
			mat.SpecularPower = (1-roughness)*(1-roughness)*128 + 1
		}
		if gm.NormalTexture != nil && gm.NormalTexture.Index != nil {
			mat.NormalMap = gltfTextureSource(doc, *gm.NormalTexture.Index, baseDir)
		}
		result.Materials = append(result.Materials, mat)
	}

	for mi, gm := range doc.Meshes {
		for pi, prim := range gm.Primitives {
			data, err := gltfPrimitive(doc, prim)
			if err != nil {
				return nil, fmt.Errorf("gltf: mesh %d primitive %d: %w", mi, pi, err)
			}

			meshName := common.Coalesce(gm.Name, fmt.Sprintf("%s_mesh_%d", name, mi))
			if len(gm.Primitives) > 1 {
				meshName = fmt.Sprintf("%s_%d", meshName, pi)
			}

			matIdx := NoMaterial
			if prim.Material != nil && *prim.Material < len(result.Materials) {
				matIdx = *prim.Material
			}
			result.Meshes = append(result.Meshes, ImportedMesh{Name: meshName, Data: data, MaterialIndex: matIdx})
		}
	}

	if len(result.Meshes) == 0 {
		return nil, fmt.Errorf("gltf: %s has no meshes", name)
	}
	return result, nil
}

// gltfPrimitive reads one triangle primitive into MeshData. Missing normals are
// computed; tangents are always computed.
func gltfPrimitive(doc *gltf.Document, prim *gltf.Primitive) (common.MeshData, error) {
	if prim.Mode != gltf.PrimitiveTriangles {
		return common.MeshData{}, fmt.Errorf("unsupported primitive mode %v", prim.Mode)
	}

	posIdx, ok := prim.Attributes[gltf.POSITION]
	if !ok {
		return common.MeshData{}, fmt.Errorf("no %s attribute", gltf.POSITION)
	}
	positions, err := modeler.ReadPosition(doc, doc.Accessors[posIdx], nil)
	if err != nil {
		return common.MeshData{}, fmt.Errorf("positions: %w", err)
	}

	var normals [][3]float32
	if idx, ok := prim.Attributes[gltf.NORMAL]; ok {
		if normals, err = modeler.ReadNormal(doc, doc.Accessors[idx], nil); err != nil {
			return common.MeshData{}, fmt.Errorf("normals: %w", err)
		}
	}
	var uvs [][2]float32
	if idx, ok := prim.Attributes[gltf.TEXCOORD_0]; ok {
		if uvs, err = modeler.ReadTextureCoord(doc, doc.Accessors[idx], nil); err != nil {
			return common.MeshData{}, fmt.Errorf("texture coordinates: %w", err)
		}
	}

	var data common.MeshData
	data.Vertices = make([]common.Vertex, len(positions))
	for i, p := range positions {
		v := common.Vertex{Position: mgl32.Vec3{p[0], p[1], p[2]}}
		if i < len(normals) {
			v.Normal = mgl32.Vec3{normals[i][0], normals[i][1], normals[i][2]}
		}
		if i < len(uvs) {
			v.TexCoord = mgl32.Vec2{uvs[i][0], uvs[i][1]}
		}
		data.Vertices[i] = v
	}

	if prim.Indices != nil {
		if data.Indices, err = modeler.ReadIndices(doc, doc.Accessors[*prim.Indices], nil); err != nil {
			return common.MeshData{}, fmt.Errorf("indices: %w", err)
		}
	} else {
		data.Indices = make([]uint32, len(positions))
		for i := range data.Indices {
			data.Indices[i] = uint32(i)
		}
	}
	for _, idx := range data.Indices {
		if int(idx) >= len(data.Vertices) {
			return common.MeshData{}, fmt.Errorf("index %d out of range", idx)
		}
	}

	if len(normals) == 0 {
		data.CalcNormals()
	}
	data.CalcTangents()
	return data, nil
}

// gltfTextureSource locates the bytes of a texture without decoding them. Returns nil
// for textures whose image cannot be located.
func gltfTextureSource(doc *gltf.Document, textureIndex int, baseDir string) *common.TextureSource {
	if textureIndex < 0 || textureIndex >= len(doc.Textures) || doc.Textures[textureIndex].Source == nil {
		return nil
	}
	imgIdx := *doc.Textures[textureIndex].Source
	if imgIdx >= len(doc.Images) {
		return nil
	}
	img := doc.Images[imgIdx]

	name := common.Coalesce(img.Name, fmt.Sprintf("image_%d", imgIdx))

	switch {
	case img.BufferView != nil:
		raw, err := modeler.ReadBufferView(doc, doc.BufferViews[*img.BufferView])
		if err != nil {
			return nil
		}
		return &common.TextureSource{Name: name, Data: raw}
	case img.IsEmbeddedResource():
		raw, err := img.MarshalData()
		if err != nil {
			return nil
		}
		return &common.TextureSource{Name: name, Data: raw}
	case img.URI != "" && baseDir != "":
		return &common.TextureSource{Name: name, Path: filepath.Join(baseDir, img.URI)}
	}
	return nil
}
