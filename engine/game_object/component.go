package game_object

import (
	"github.com/Carmen-Shannon/oxy-forward/engine/renderer/shader"
	"github.com/Carmen-Shannon/oxy-forward/engine/transform"
)

// Component is behavior attached to a GameObject. Each hook is called once per
// traversal of the owning object.
type Component interface {
	// SetOwner is called by GameObject.AddComponent.
	//
	// Parameters:
	//   - owner: the object the component is attached to
	SetOwner(owner GameObject)

	// Owner returns the object the component is attached to, or nil.
	//
	// Returns:
	//   - GameObject: the owner
	Owner() GameObject

	// Input reacts to user input.
	//
	// Parameters:
	//   - delta: seconds since the previous step
	Input(delta float32)

	// Update advances the component's state.
	//
	// Parameters:
	//   - delta: seconds since the previous step
	Update(delta float32)

	// Render issues the component's draw calls, if any.
	//
	// Parameters:
	//   - program: the bound program
	//   - pass: the current pass
	//
	// Returns:
	//   - error: a uniform resolution error
	Render(program shader.Program, pass shader.Pass) error

	// Collect registers the component's lights and cameras, if any.
	//
	// Parameters:
	//   - r: the registrar
	Collect(r Registrar)

	// Release drops the component's shared resources, if any.
	Release()
}

// BaseComponent implements every Component hook as a no-op. Embed it and override the
// hooks a component needs.
type BaseComponent struct {
	owner GameObject
}

func (b *BaseComponent) SetOwner(owner GameObject) { b.owner = owner }

func (b *BaseComponent) Owner() GameObject { return b.owner }

// Transform returns the owner's transform, or nil if the component is not attached.
func (b *BaseComponent) Transform() *transform.Transform {
	if b.owner == nil {
		return nil
	}
	return b.owner.Transform()
}

func (b *BaseComponent) Input(float32) {}

func (b *BaseComponent) Update(float32) {}

func (b *BaseComponent) Render(shader.Program, shader.Pass) error { return nil }

func (b *BaseComponent) Collect(Registrar) {}

func (b *BaseComponent) Release() {}
