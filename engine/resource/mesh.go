package resource

import (
	"github.com/Carmen-Shannon/oxy-forward/common"
	"github.com/Carmen-Shannon/oxy-forward/engine/renderer/device"
)

// gpuMesh is an uploaded vertex and index buffer pair.
type gpuMesh struct {
	dev        device.Device
	id         device.MeshID
	indexCount int32
}

func uploadMesh(dev device.Device, data common.MeshData) *gpuMesh {
	return &gpuMesh{
		dev:        dev,
		id:         dev.CreateMesh(data.Interleave(), data.Indices),
		indexCount: int32(len(data.Indices)),
	}
}

func freeMesh(m *gpuMesh) {
	m.dev.DeleteMesh(m.id)
}

// Mesh is a shared reference to uploaded geometry.
type Mesh struct {
	handle *Handle[*gpuMesh]
}

// Name returns the key the mesh is shared under.
func (m *Mesh) Name() string {
	return m.handle.Key()
}

// ID returns the device handle of the geometry.
func (m *Mesh) ID() device.MeshID {
	return m.handle.Value().id
}

// IndexCount returns the number of indices drawn.
func (m *Mesh) IndexCount() int32 {
	return m.handle.Value().indexCount
}

// Draw issues an indexed triangle draw with the currently bound program.
func (m *Mesh) Draw() {
	g := m.handle.Value()
	g.dev.DrawMesh(g.id, g.indexCount)
}

// Clone returns another owner of the same geometry.
//
// Returns:
//   - *Mesh: the new reference
func (m *Mesh) Clone() *Mesh {
	return &Mesh{handle: m.handle.Clone()}
}

// Release drops this reference. The geometry is deleted from the device when the last
// reference is released. Repeated calls are no-ops.
//
// Returns:
//   - bool: true if the geometry was deleted
func (m *Mesh) Release() bool {
	return m.handle.Release()
}
