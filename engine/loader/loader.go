package loader

import (
	"fmt"
	"io"
	"log"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"github.com/Carmen-Shannon/oxy-forward/common"
)

// LoaderBackendType identifies the model file format backend to use.
type LoaderBackendType int

const (
	// BackendTypeOBJ selects the Wavefront OBJ backend.
	BackendTypeOBJ LoaderBackendType = iota

	// BackendTypeGLTF selects the glTF/GLB backend.
	BackendTypeGLTF
)

// loader is the implementation of the Loader interface.
type loader struct {
	mu sync.RWMutex

	modelCache map[string]*ImportedModel
	backends   map[LoaderBackendType]loaderBackend

	decodeWorkers int
}

// Loader defines the public-facing interface for importing and caching model files.
// It abstracts the file format behind a backend chosen from the file extension and
// keeps every imported model keyed by path or name.
type Loader interface {
	// Load imports a model file and caches the result. If the model is already cached
	// (by file path), the cached version is returned. The backend is selected from the
	// file extension: .obj selects OBJ, .gltf and .glb select glTF.
	//
	// Parameters:
	//   - path: the file path to the model file
	//
	// Returns:
	//   - *ImportedModel: the imported and cached model
	//   - error: error if the format is unsupported or loading fails
	Load(path string) (*ImportedModel, error)

	// LoadReader imports a model from a reader stream and caches it by the given name.
	//
	// Parameters:
	//   - name: the cache key and model name
	//   - r: the reader providing model data
	//   - backendType: the format of the stream
	//
	// Returns:
	//   - *ImportedModel: the imported model
	//   - error: error if loading fails
	LoadReader(name string, r io.Reader, backendType LoaderBackendType) (*ImportedModel, error)

	// Get retrieves a cached model by name. Returns nil if not found.
	//
	// Parameters:
	//   - name: the cache key to look up
	//
	// Returns:
	//   - *ImportedModel: the cached model or nil
	Get(name string) *ImportedModel

	// Models returns a copy of the model cache.
	//
	// Returns:
	//   - map[string]*ImportedModel: all cached models keyed by name
	Models() map[string]*ImportedModel

	// DecodeTextures decodes texture sources concurrently on a worker pool.
	//
	// Parameters:
	//   - sources: the textures to decode
	//
	// Returns:
	//   - []common.TextureData: decoded pixels in source order
	//   - error: every decode failure joined, or nil
	DecodeTextures(sources []*common.TextureSource) ([]common.TextureData, error)
}

var _ Loader = &loader{}

// NewLoader creates a new Loader with every backend registered and the options applied.
//
// Parameters:
//   - options: a variadic list of LoaderBuilderOption functions to configure the Loader
//
// Returns:
//   - Loader: a new instance of Loader
func NewLoader(options ...LoaderBuilderOption) Loader {
	l := &loader{
		mu:         sync.RWMutex{},
		modelCache: make(map[string]*ImportedModel),
		backends: map[LoaderBackendType]loaderBackend{
			BackendTypeOBJ:  newOBJLoaderBackend(),
			BackendTypeGLTF: newGLTFLoaderBackend(),
		},
		decodeWorkers: runtime.NumCPU(),
	}

	for _, option := range options {
		option(l)
	}
	return l
}

func (l *loader) Load(path string) (*ImportedModel, error) {
	l.mu.RLock()
	if cached, ok := l.modelCache[path]; ok {
		l.mu.RUnlock()
		return cached, nil
	}
	l.mu.RUnlock()

	backend, err := l.resolveBackend(path)
	if err != nil {
		return nil, err
	}

	imported, err := backend.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", path, err)
	}

	l.mu.Lock()
	l.modelCache[path] = imported
	l.mu.Unlock()

	log.Printf("[Loader] %s: %d meshes, %d materials", path, len(imported.Meshes), len(imported.Materials))
	return imported, nil
}

func (l *loader) LoadReader(name string, r io.Reader, backendType LoaderBackendType) (*ImportedModel, error) {
	l.mu.RLock()
	if cached, ok := l.modelCache[name]; ok {
		l.mu.RUnlock()
		return cached, nil
	}
	l.mu.RUnlock()

	backend, ok := l.backends[backendType]
	if !ok {
		return nil, fmt.Errorf("unknown loader backend %d", backendType)
	}

	imported, err := backend.LoadReader(name, r)
	if err != nil {
		return nil, fmt.Errorf("failed to load from reader %q: %w", name, err)
	}

	l.mu.Lock()
	l.modelCache[name] = imported
	l.mu.Unlock()

	return imported, nil
}

func (l *loader) Get(name string) *ImportedModel {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.modelCache[name]
}

func (l *loader) Models() map[string]*ImportedModel {
	l.mu.RLock()
	defer l.mu.RUnlock()

	result := make(map[string]*ImportedModel, len(l.modelCache))
	for k, v := range l.modelCache {
		result[k] = v
	}
	return result
}

func (l *loader) DecodeTextures(sources []*common.TextureSource) ([]common.TextureData, error) {
	return decodeTextures(sources, l.decodeWorkers)
}

// resolveBackend selects an appropriate loader backend based on the file extension.
func (l *loader) resolveBackend(path string) (loaderBackend, error) {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".obj":
		return l.backends[BackendTypeOBJ], nil
	case ".gltf", ".glb":
		return l.backends[BackendTypeGLTF], nil
	default:
		return nil, fmt.Errorf("unsupported model format: %q", ext)
	}
}
