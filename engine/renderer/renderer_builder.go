package renderer

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Carmen-Shannon/oxy-forward/engine/camera"
	"github.com/Carmen-Shannon/oxy-forward/engine/light"
	"github.com/Carmen-Shannon/oxy-forward/engine/renderer/shader"
	"github.com/Carmen-Shannon/oxy-forward/engine/resource"
)

// RenderingEngineBuilderOption is a functional option applied to a rendering engine
// during construction via NewRenderingEngine.
type RenderingEngineBuilderOption func(*renderingEngine)

// WithAmbientProgram sets the program used by the ambient pass. The caller keeps
// ownership of the program.
//
// Parameters:
//   - p: the ambient program
//
// Returns:
//   - RenderingEngineBuilderOption: a function that applies the program to an engine
func WithAmbientProgram(p shader.Program) RenderingEngineBuilderOption {
	return func(r *renderingEngine) {
		r.ambientProgram = p
	}
}

// WithLightProgram sets the program used for passes of one light type. The caller keeps
// ownership of the program.
//
// Parameters:
//   - lt: the light type
//   - p: the program
//
// Returns:
//   - RenderingEngineBuilderOption: a function that applies the program to an engine
func WithLightProgram(lt light.LightType, p shader.Program) RenderingEngineBuilderOption {
	return func(r *renderingEngine) {
		r.lightPrograms[lt] = p
	}
}

// WithLibrary loads the built-in programs through lib so they are shared with other
// users of the library.
//
// Parameters:
//   - lib: the resource library
//
// Returns:
//   - RenderingEngineBuilderOption: a function that applies the library to an engine
func WithLibrary(lib resource.Library) RenderingEngineBuilderOption {
	return func(r *renderingEngine) {
		r.library = lib
	}
}

// WithAmbient sets the ambient light color.
//
// Parameters:
//   - color: the ambient color
//
// Returns:
//   - RenderingEngineBuilderOption: a function that applies the ambient color to an engine
func WithAmbient(color mgl32.Vec3) RenderingEngineBuilderOption {
	return func(r *renderingEngine) {
		r.values.SetVec3(AmbientName, color)
	}
}

// WithSamplerSlot assigns a texture unit to a sampler name.
//
// Parameters:
//   - name: the sampler uniform name
//   - slot: the texture unit
//
// Returns:
//   - RenderingEngineBuilderOption: a function that applies the slot to an engine
func WithSamplerSlot(name string, slot int32) RenderingEngineBuilderOption {
	return func(r *renderingEngine) {
		r.samplerSlots[name] = slot
		if slot >= r.nextSlot {
			r.nextSlot = slot + 1
		}
	}
}

// WithMainCamera sets the camera used when the scene registers none.
//
// Parameters:
//   - c: the camera
//
// Returns:
//   - RenderingEngineBuilderOption: a function that applies the camera to an engine
func WithMainCamera(c camera.Camera) RenderingEngineBuilderOption {
	return func(r *renderingEngine) {
		r.mainCamera = c
	}
}

// WithUniformStructResolver sets the hook for engine-prefixed uniforms of unknown struct
// types.
//
// Parameters:
//   - fn: the resolver
//
// Returns:
//   - RenderingEngineBuilderOption: a function that applies the resolver to an engine
func WithUniformStructResolver(fn UniformStructResolver) RenderingEngineBuilderOption {
	return func(r *renderingEngine) {
		r.structLookup = fn
	}
}
