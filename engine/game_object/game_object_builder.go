package game_object

import (
	"github.com/go-gl/mathgl/mgl32"
)

// GameObjectBuilderOption is a functional option for configuring a GameObject during construction.
type GameObjectBuilderOption func(*gameObject)

// WithID sets the ID of the GameObject instead of drawing the next automatic one.
//
// Parameters:
//   - id: unique identifier for the GameObject
//
// Returns:
//   - GameObjectBuilderOption: functional option to set the ID
func WithID(id uint64) GameObjectBuilderOption {
	return func(obj *gameObject) {
		obj.id = id
	}
}

// WithName sets a human readable name used in logs.
func WithName(name string) GameObjectBuilderOption {
	return func(obj *gameObject) {
		obj.name = name
	}
}

// WithEnabled sets whether the GameObject takes part in traversals.
//
// Parameters:
//   - enabled: true to traverse the object, false to skip it and its subtree
//
// Returns:
//   - GameObjectBuilderOption: functional option to set the Enabled state
func WithEnabled(enabled bool) GameObjectBuilderOption {
	return func(obj *gameObject) {
		obj.enabled.Store(enabled)
	}
}

// WithPosition sets the initial local position of the GameObject.
//
// Parameters:
//   - x: the x position
//   - y: the y position
//   - z: the z position
//
// Returns:
//   - GameObjectBuilderOption: functional option to set the initial position
func WithPosition(x, y, z float32) GameObjectBuilderOption {
	return func(obj *gameObject) {
		obj.transform.SetPosition(mgl32.Vec3{x, y, z})
	}
}

// WithScale sets the initial local scale of the GameObject.
//
// Parameters:
//   - sx: the x scale factor
//   - sy: the y scale factor
//   - sz: the z scale factor
//
// Returns:
//   - GameObjectBuilderOption: functional option to set the initial scale
func WithScale(sx, sy, sz float32) GameObjectBuilderOption {
	return func(obj *gameObject) {
		obj.transform.SetScale(mgl32.Vec3{sx, sy, sz})
	}
}

// WithRotation sets the initial local rotation of the GameObject.
//
// Parameters:
//   - rot: the rotation
//
// Returns:
//   - GameObjectBuilderOption: functional option to set the initial rotation
func WithRotation(rot mgl32.Quat) GameObjectBuilderOption {
	return func(obj *gameObject) {
		obj.transform.SetRotation(rot)
	}
}

// WithComponent attaches a component at construction.
//
// Parameters:
//   - c: the component
//
// Returns:
//   - GameObjectBuilderOption: functional option to attach the component
func WithComponent(c Component) GameObjectBuilderOption {
	return func(obj *gameObject) {
		obj.AddComponent(c)
	}
}

// WithChild attaches a child at construction.
func WithChild(child GameObject) GameObjectBuilderOption {
	return func(obj *gameObject) {
		obj.AddChild(child)
	}
}
