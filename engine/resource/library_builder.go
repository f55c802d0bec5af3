package resource

import (
	"io/fs"

	"github.com/Carmen-Shannon/oxy-forward/engine/loader"
	"github.com/Carmen-Shannon/oxy-forward/engine/renderer/device"
)

// LibraryBuilderOption is a functional option for configuring a Library via NewLibrary.
type LibraryBuilderOption func(*library)

// WithLoader sets the model loader. By default a new loader.Loader is created.
//
// Parameters:
//   - ld: the loader
//
// Returns:
//   - LibraryBuilderOption: a function that applies the loader to a library
func WithLoader(ld loader.Loader) LibraryBuilderOption {
	return func(l *library) {
		l.loader = ld
	}
}

// WithShaderFS sets the file system programs are loaded from. Defaults to the built-in
// forward programs.
//
// Parameters:
//   - fsys: the shader file system
//
// Returns:
//   - LibraryBuilderOption: a function that applies the file system to a library
func WithShaderFS(fsys fs.FS) LibraryBuilderOption {
	return func(l *library) {
		l.shaderFS = fsys
	}
}

// WithTextureFilter sets the filter used for loaded textures.
//
// Parameters:
//   - filter: the texture filter
//
// Returns:
//   - LibraryBuilderOption: a function that applies the filter to a library
func WithTextureFilter(filter device.TextureFilter) LibraryBuilderOption {
	return func(l *library) {
		l.filter = filter
	}
}
