package resource

import (
	"github.com/Carmen-Shannon/oxy-forward/common"
	"github.com/Carmen-Shannon/oxy-forward/engine/renderer/device"
	"github.com/Carmen-Shannon/oxy-forward/engine/renderer/material"
)

type gpuTexture struct {
	dev           device.Device
	id            device.TextureID
	width, height uint32
}

func uploadTexture(dev device.Device, data common.TextureData, filter device.TextureFilter) *gpuTexture {
	return &gpuTexture{
		dev:    dev,
		id:     dev.CreateTexture(data, filter),
		width:  data.Width,
		height: data.Height,
	}
}

func freeTexture(t *gpuTexture) {
	t.dev.DeleteTexture(t.id)
}

// Texture is a shared reference to an uploaded texture. It satisfies material.Texture,
// and materials release it when they are released.
type Texture struct {
	handle *Handle[*gpuTexture]
}

var _ material.Texture = &Texture{}

// Name returns the key the texture is shared under.
func (t *Texture) Name() string {
	return t.handle.Key()
}

// ID returns the device handle of the texture.
func (t *Texture) ID() device.TextureID {
	return t.handle.Value().id
}

// Size returns the texture dimensions in pixels.
func (t *Texture) Size() (width, height uint32) {
	g := t.handle.Value()
	return g.width, g.height
}

// Bind makes the texture current on unit.
//
// Parameters:
//   - unit: zero-based texture unit
func (t *Texture) Bind(unit int32) {
	g := t.handle.Value()
	g.dev.BindTexture(g.id, unit)
}

// Clone returns another owner of the same texture.
//
// Returns:
//   - *Texture: the new reference
func (t *Texture) Clone() *Texture {
	return &Texture{handle: t.handle.Clone()}
}

// Release drops this reference, deleting the texture after the last one.
//
// Returns:
//   - bool: true if the texture was deleted
func (t *Texture) Release() bool {
	return t.handle.Release()
}
