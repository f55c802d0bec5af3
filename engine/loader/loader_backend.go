package loader

import (
	"io"
)

// loaderBackend defines the generic interface for importing models from files or streams.
// Concrete implementations handle format-specific details.
type loaderBackend interface {
	// Load imports the model file at path.
	//
	// Parameters:
	//   - path: the file path to load
	//
	// Returns:
	//   - *ImportedModel: the imported model data
	//   - error: error if loading fails
	Load(path string) (*ImportedModel, error)

	// LoadReader imports a model from a stream. References to external files cannot
	// be resolved.
	//
	// Parameters:
	//   - name: the name given to the imported model
	//   - r: the reader providing model data
	//
	// Returns:
	//   - *ImportedModel: the imported model data
	//   - error: error if loading fails
	LoadReader(name string, r io.Reader) (*ImportedModel, error)
}
