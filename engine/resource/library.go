package resource

import (
	"fmt"
	"io/fs"
	"log"
	"sync/atomic"

	"github.com/Carmen-Shannon/oxy-forward/common"
	"github.com/Carmen-Shannon/oxy-forward/engine/loader"
	"github.com/Carmen-Shannon/oxy-forward/engine/renderer/device"
	"github.com/Carmen-Shannon/oxy-forward/engine/renderer/material"
	"github.com/Carmen-Shannon/oxy-forward/engine/renderer/shader"
)

// Specular terms given to materials a model file does not describe.
const (
	DefaultSpecularIntensity = 1
	DefaultSpecularPower     = 8
)

// fallbackKey is the texture key of the library's fallback checker texture.
const fallbackKey = "builtin:fallback"

// ModelPart is one drawable piece of a model: shared geometry and the material it was
// authored with. The part owns one reference to the mesh and to each material texture.
type ModelPart struct {
	Name     string
	Mesh     *Mesh
	Material material.Material
}

// Release drops the part's mesh and material references.
func (p ModelPart) Release() {
	p.Mesh.Release()
	p.Material.Release()
}

type library struct {
	dev      device.Device
	loader   loader.Loader
	shaderFS fs.FS
	filter   device.TextureFilter

	meshes   Registry[*gpuMesh]
	textures Registry[*gpuTexture]
	programs Registry[shader.Program]

	fallback *Texture
	nextData atomic.Uint64
}

// Library loads and shares meshes, textures and shading programs on one device. Every
// accessor returns a new reference; callers release what they acquire.
type Library interface {
	// Model loads a model file and returns one part per mesh.
	//
	// Parameters:
	//   - path: the model file, .obj, .gltf or .glb
	//
	// Returns:
	//   - []ModelPart: the parts in file order
	//   - error: error if the file cannot be imported or its textures decoded
	Model(path string) ([]ModelPart, error)

	// Mesh loads the first mesh of a model file.
	//
	// Parameters:
	//   - path: the model file
	//
	// Returns:
	//   - *Mesh: a reference to the geometry
	//   - error: error if the file cannot be imported
	Mesh(path string) (*Mesh, error)

	// MeshFromData uploads generated geometry. Each call creates distinct geometry.
	//
	// Parameters:
	//   - name: a label for the geometry
	//   - data: the geometry
	//
	// Returns:
	//   - *Mesh: a reference to the geometry
	MeshFromData(name string, data common.MeshData) *Mesh

	// Texture loads a PNG or JPEG file.
	//
	// Parameters:
	//   - path: the image file
	//
	// Returns:
	//   - *Texture: a reference to the texture
	//   - error: error if the image cannot be decoded
	Texture(path string) (*Texture, error)

	// TextureFromData uploads decoded pixels. Each call creates a distinct texture.
	//
	// Parameters:
	//   - name: a label for the texture
	//   - data: the pixels
	//
	// Returns:
	//   - *Texture: a reference to the texture
	TextureFromData(name string, data common.TextureData) *Texture

	// Fallback returns the texture materials use for absent samplers. The library owns
	// it; callers must not release it.
	//
	// Returns:
	//   - *Texture: the fallback texture
	Fallback() *Texture

	// NewMaterial creates a material whose fallback is the library's fallback texture.
	//
	// Parameters:
	//   - options: additional material options
	//
	// Returns:
	//   - material.Material: the material
	NewMaterial(options ...material.MaterialBuilderOption) material.Material

	// Program compiles, or shares, the named program from the library's shader files.
	// Panics if the program does not load, like shader.LoadProgram.
	//
	// Parameters:
	//   - name: the program name
	//
	// Returns:
	//   - *Handle[shader.Program]: a reference to the program
	Program(name string) *Handle[shader.Program]

	// Loader returns the model loader.
	//
	// Returns:
	//   - loader.Loader: the loader
	Loader() loader.Loader

	// Live returns the number of live meshes, textures and programs, the fallback
	// texture included.
	//
	// Returns:
	//   - meshes, textures, programs: the counts
	Live() (meshes, textures, programs int)

	// Close releases the fallback texture and logs anything still referenced.
	Close()
}

var _ Library = &library{}

// NewLibrary creates a new Library on dev and uploads the fallback texture.
//
// Parameters:
//   - dev: the device resources are created on
//   - options: functional options to configure the library
//
// Returns:
//   - Library: the library
func NewLibrary(dev device.Device, options ...LibraryBuilderOption) Library {
	if dev == nil {
		panic("resource: library needs a device")
	}
	l := &library{
		dev:      dev,
		shaderFS: shader.BuiltinFS(),
		filter:   device.FilterLinear,
		meshes:   NewRegistry(freeMesh),
		textures: NewRegistry(freeTexture),
		programs: NewRegistry(func(p shader.Program) { p.Delete() }),
	}
	for _, option := range options {
		option(l)
	}
	if l.loader == nil {
		l.loader = loader.NewLoader()
	}

	checker := common.CheckerTexture(8, [4]byte{255, 0, 255, 255}, [4]byte{0, 0, 0, 255})
	h, _ := l.textures.Acquire(fallbackKey, func() (*gpuTexture, error) {
		return uploadTexture(dev, checker, device.FilterNearest), nil
	})
	l.fallback = &Texture{handle: h}
	return l
}

func (l *library) Model(path string) ([]ModelPart, error) {
	imported, err := l.loader.Load(path)
	if err != nil {
		return nil, err
	}

	materials, err := l.materials(path, imported)
	if err != nil {
		return nil, err
	}

	parts := make([]ModelPart, 0, len(imported.Meshes))
	for i, m := range imported.Meshes {
		mesh, err := l.importedMesh(path, i, m)
		if err != nil {
			for _, p := range parts {
				p.Release()
			}
			return nil, err
		}

		var mat material.Material
		if m.MaterialIndex != loader.NoMaterial {
			mat = materials[m.MaterialIndex]
		} else {
			mat = l.NewMaterial(
				material.WithName(m.Name),
				material.WithSpecular(DefaultSpecularIntensity, DefaultSpecularPower),
			)
		}
		parts = append(parts, ModelPart{Name: m.Name, Mesh: mesh, Material: l.shareMaterial(mat)})
	}

	for _, mat := range materials {
		mat.Release()
	}
	return parts, nil
}

// shareMaterial gives a part its own material holding its own texture references.
func (l *library) shareMaterial(src material.Material) material.Material {
	dst := l.NewMaterial(material.WithName(src.Name()))
	for _, name := range []string{material.SpecularIntensity, material.SpecularPower} {
		dst.SetFloat(name, src.Float(name))
	}
	for _, name := range []string{material.Diffuse, material.NormalMap} {
		if src.HasTexture(name) {
			if tex, ok := src.Texture(name).(*Texture); ok {
				dst.SetTexture(name, tex.Clone())
			}
		}
	}
	return dst
}

// materials builds one material per imported material, decoding every texture that is
// not already live in parallel.
func (l *library) materials(path string, imported *loader.ImportedModel) ([]material.Material, error) {
	sources := imported.TextureSources()
	keys := make([]string, len(sources))
	pending := make([]*common.TextureSource, len(sources))
	for i, src := range sources {
		keys[i] = textureKey(path, src)
		if !l.textures.Has(keys[i]) {
			pending[i] = src
		}
	}

	decoded, err := l.loader.DecodeTextures(pending)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	acquire := func(src *common.TextureSource) *Texture {
		for i, s := range sources {
			if s != src {
				continue
			}
			h, err := l.textures.Acquire(keys[i], func() (*gpuTexture, error) {
				data := decoded[i]
				if pending[i] == nil {
					var err error
					if data, err = src.Decode(); err != nil {
						return nil, err
					}
				}
				return uploadTexture(l.dev, data, l.filter), nil
			})
			if err != nil {
				log.Printf("[Resource] %s: %v", path, err)
				return nil
			}
			return &Texture{handle: h}
		}
		return nil
	}

	out := make([]material.Material, len(imported.Materials))
	for i, im := range imported.Materials {
		options := []material.MaterialBuilderOption{
			material.WithName(im.Name),
			material.WithSpecular(im.SpecularIntensity, im.SpecularPower),
		}
		if im.Diffuse != nil {
			if tex := acquire(im.Diffuse); tex != nil {
				options = append(options, material.WithDiffuse(tex))
			}
		}
		if im.NormalMap != nil {
			if tex := acquire(im.NormalMap); tex != nil {
				options = append(options, material.WithNormalMap(tex))
			}
		}
		out[i] = l.NewMaterial(options...)
	}
	return out, nil
}

func (l *library) importedMesh(path string, index int, m loader.ImportedMesh) (*Mesh, error) {
	h, err := l.meshes.Acquire(fmt.Sprintf("%s#%d", path, index), func() (*gpuMesh, error) {
		if len(m.Data.Indices) == 0 {
			return nil, fmt.Errorf("mesh %q has no indices", m.Name)
		}
		return uploadMesh(l.dev, m.Data), nil
	})
	if err != nil {
		return nil, err
	}
	return &Mesh{handle: h}, nil
}

func (l *library) Mesh(path string) (*Mesh, error) {
	imported, err := l.loader.Load(path)
	if err != nil {
		return nil, err
	}
	if len(imported.Meshes) == 0 {
		return nil, fmt.Errorf("%s: no meshes", path)
	}
	return l.importedMesh(path, 0, imported.Meshes[0])
}

func (l *library) MeshFromData(name string, data common.MeshData) *Mesh {
	key := fmt.Sprintf("data:%s#%d", name, l.nextData.Add(1))
	h, _ := l.meshes.Acquire(key, func() (*gpuMesh, error) {
		return uploadMesh(l.dev, data), nil
	})
	return &Mesh{handle: h}
}

func (l *library) Texture(path string) (*Texture, error) {
	h, err := l.textures.Acquire(path, func() (*gpuTexture, error) {
		data, err := (&common.TextureSource{Name: path, Path: path}).Decode()
		if err != nil {
			return nil, err
		}
		return uploadTexture(l.dev, data, l.filter), nil
	})
	if err != nil {
		return nil, err
	}
	return &Texture{handle: h}, nil
}

func (l *library) TextureFromData(name string, data common.TextureData) *Texture {
	key := fmt.Sprintf("data:%s#%d", name, l.nextData.Add(1))
	h, _ := l.textures.Acquire(key, func() (*gpuTexture, error) {
		return uploadTexture(l.dev, data, l.filter), nil
	})
	return &Texture{handle: h}
}

func (l *library) Fallback() *Texture {
	return l.fallback
}

func (l *library) NewMaterial(options ...material.MaterialBuilderOption) material.Material {
	return material.NewMaterial(append([]material.MaterialBuilderOption{material.WithFallbackTexture(l.fallback)}, options...)...)
}

func (l *library) Program(name string) *Handle[shader.Program] {
	h, _ := l.programs.Acquire(name, func() (shader.Program, error) {
		return shader.LoadProgram(l.dev, l.shaderFS, name), nil
	})
	return h
}

func (l *library) Loader() loader.Loader {
	return l.loader
}

func (l *library) Live() (meshes, textures, programs int) {
	return l.meshes.Len(), l.textures.Len(), l.programs.Len()
}

func (l *library) Close() {
	l.fallback.Release()
	if m, t, p := l.Live(); m+t+p > 0 {
		log.Printf("[Resource] closed with %d meshes, %d textures, %d programs still referenced", m, t, p)
	}
}

// textureKey shares external images by file path and embedded ones per model.
func textureKey(modelPath string, src *common.TextureSource) string {
	if src.Path != "" {
		return src.Path
	}
	return modelPath + "#" + src.Name
}
