package device

import (
	"errors"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Carmen-Shannon/oxy-forward/common"
)

// errEmptySource is returned by the headless backend for a stage with no source.
var errEmptySource = errors.New("device: empty shader source")

// headlessDeviceBackend synthesizes object IDs and uniform locations without touching a
// GPU. Locations are assigned per program in first-queried order.
type headlessDeviceBackend struct {
	nextProgram ProgramID
	nextMesh    MeshID
	nextTexture TextureID

	locations  map[ProgramID]map[string]int32
	unresolved map[string]struct{}
}

var _ deviceBackend = &headlessDeviceBackend{}

func newHeadlessDeviceBackend(unresolved map[string]struct{}) *headlessDeviceBackend {
	return &headlessDeviceBackend{
		locations:  make(map[ProgramID]map[string]int32),
		unresolved: unresolved,
	}
}

func (b *headlessDeviceBackend) init() error                          { return nil }
func (b *headlessDeviceBackend) version() string                      { return "headless" }
func (b *headlessDeviceBackend) setClearColor(mgl32.Vec4)             {}
func (b *headlessDeviceBackend) clear()                               {}
func (b *headlessDeviceBackend) viewport(int32, int32)                {}
func (b *headlessDeviceBackend) enableBlend(BlendFactor, BlendFactor) {}
func (b *headlessDeviceBackend) disableBlend()                        {}
func (b *headlessDeviceBackend) depthFunc(DepthFunc)                  {}
func (b *headlessDeviceBackend) depthMask(bool)                       {}

func (b *headlessDeviceBackend) compileProgram(vertexSrc, fragmentSrc string, _ []string) (ProgramID, error) {
	if vertexSrc == "" || fragmentSrc == "" {
		return 0, errEmptySource
	}
	b.nextProgram++
	b.locations[b.nextProgram] = make(map[string]int32)
	return b.nextProgram, nil
}

func (b *headlessDeviceBackend) useProgram(ProgramID) {}

func (b *headlessDeviceBackend) deleteProgram(id ProgramID) {
	delete(b.locations, id)
}

func (b *headlessDeviceBackend) uniformLocation(id ProgramID, name string) int32 {
	if _, ok := b.unresolved[name]; ok {
		return InvalidLocation
	}
	locs, ok := b.locations[id]
	if !ok {
		return InvalidLocation
	}
	if loc, ok := locs[name]; ok {
		return loc
	}
	loc := int32(len(locs))
	locs[name] = loc
	return loc
}

func (b *headlessDeviceBackend) uniformInt(int32, int32)       {}
func (b *headlessDeviceBackend) uniformFloat(int32, float32)   {}
func (b *headlessDeviceBackend) uniformVec3(int32, mgl32.Vec3) {}
func (b *headlessDeviceBackend) uniformMat4(int32, mgl32.Mat4) {}

func (b *headlessDeviceBackend) createMesh([]byte, []byte) MeshID {
	b.nextMesh++
	return b.nextMesh
}

func (b *headlessDeviceBackend) drawMesh(MeshID, int32) {}
func (b *headlessDeviceBackend) deleteMesh(MeshID)      {}

func (b *headlessDeviceBackend) createTexture(common.TextureData, TextureFilter) TextureID {
	b.nextTexture++
	return b.nextTexture
}

func (b *headlessDeviceBackend) bindTexture(TextureID, int32) {}
func (b *headlessDeviceBackend) deleteTexture(TextureID)      {}
