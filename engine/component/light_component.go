package component

import (
	"github.com/Carmen-Shannon/oxy-forward/engine/game_object"
	"github.com/Carmen-Shannon/oxy-forward/engine/light"
)

// LightComponent places a light in the scene. The light takes its position and
// direction from the owning object's transform and is registered with the rendering
// engine every frame while the object is enabled.
type LightComponent struct {
	game_object.BaseComponent

	light light.Light
}

var _ game_object.Component = &LightComponent{}

// NewLightComponent wraps l as a component.
//
// Parameters:
//   - l: the light
//
// Returns:
//   - *LightComponent: the component
func NewLightComponent(l light.Light) *LightComponent {
	if l == nil {
		panic("component: light component needs a light")
	}
	return &LightComponent{light: l}
}

// Light returns the wrapped light.
func (c *LightComponent) Light() light.Light {
	return c.light
}

func (c *LightComponent) SetOwner(owner game_object.GameObject) {
	c.BaseComponent.SetOwner(owner)
	c.light.SetTransform(owner.Transform())
}

func (c *LightComponent) Collect(r game_object.Registrar) {
	r.AddLight(c.light)
}
