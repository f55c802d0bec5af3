package component

import (
	"github.com/Carmen-Shannon/oxy-forward/engine/camera"
	"github.com/Carmen-Shannon/oxy-forward/engine/game_object"
)

// CameraComponent makes its owner a camera. The camera follows the owner's transform
// and becomes the main camera when collected.
type CameraComponent struct {
	game_object.BaseComponent

	camera camera.Camera
}

var _ game_object.Component = &CameraComponent{}

// NewCameraComponent wraps c as a component.
//
// Parameters:
//   - c: the camera
//
// Returns:
//   - *CameraComponent: the component
func NewCameraComponent(c camera.Camera) *CameraComponent {
	if c == nil {
		panic("component: camera component needs a camera")
	}
	return &CameraComponent{camera: c}
}

// Camera returns the wrapped camera.
func (c *CameraComponent) Camera() camera.Camera {
	return c.camera
}

func (c *CameraComponent) SetOwner(owner game_object.GameObject) {
	c.BaseComponent.SetOwner(owner)
	c.camera.SetTransform(owner.Transform())
}

func (c *CameraComponent) Collect(r game_object.Registrar) {
	r.AddCamera(c.camera)
}
