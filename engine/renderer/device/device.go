// Package device wraps the GPU API behind a small immediate-mode interface: render
// state, programs, uniforms, meshes and textures.
package device

import (
	"fmt"
	"sync"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Carmen-Shannon/oxy-forward/common"
)

// Call is one recorded Device operation.
type Call struct {
	// Op is the method name, e.g. "EnableBlend".
	Op string
	// Args holds the arguments in call order.
	Args []any
}

// String formats the call as Op(arg, arg).
func (c Call) String() string {
	s := c.Op + "("
	for i, a := range c.Args {
		if i > 0 {
			s += ", "
		}
		s += fmt.Sprint(a)
	}
	return s + ")"
}

// Stats counts the GPU objects a Device currently holds.
type Stats struct {
	Programs int
	Meshes   int
	Textures int
}

// device is the implementation of the Device interface.
type device struct {
	mu *sync.Mutex

	backendType BackendType
	backend     deviceBackend

	clearColor mgl32.Vec4
	recording  bool
	calls      []Call

	programs map[ProgramID]struct{}
	meshes   map[MeshID]struct{}
	textures map[TextureID]struct{}

	// headless configuration collected from builder options
	unresolved map[string]struct{}
}

// Device defines the interface for the GPU layer used by the rendering engine.
//
// All methods must be called from the thread that owns the GPU context. Every GPU
// object created through a Device is tracked; deleting an object that is not live
// panics, which turns a double free into a loud failure instead of silent corruption.
type Device interface {
	// Init prepares default render state: clear color, clockwise front faces, back-face
	// culling, depth testing with LESS and depth clamping.
	//
	// Returns:
	//   - error: error if the backend cannot be initialized
	Init() error

	// BackendType returns the backend this Device was created with.
	//
	// Returns:
	//   - BackendType: the backend type
	BackendType() BackendType

	// Version returns a human readable description of the backend.
	//
	// Returns:
	//   - string: the version string
	Version() string

	// SetClearColor sets the color used by Clear.
	//
	// Parameters:
	//   - color: RGBA clear color
	SetClearColor(color mgl32.Vec4)

	// Clear clears the color and depth buffers.
	Clear()

	// Viewport sets the drawable region.
	//
	// Parameters:
	//   - width: width in pixels
	//   - height: height in pixels
	Viewport(width, height int32)

	// EnableBlend turns blending on with the given factors.
	//
	// Parameters:
	//   - src: source factor
	//   - dst: destination factor
	EnableBlend(src, dst BlendFactor)

	// DisableBlend turns blending off.
	DisableBlend()

	// SetDepthFunc sets the depth comparison function.
	//
	// Parameters:
	//   - fn: the comparison
	SetDepthFunc(fn DepthFunc)

	// SetDepthMask enables or disables depth writes.
	//
	// Parameters:
	//   - write: true to write depth
	SetDepthMask(write bool)

	// CompileProgram compiles and links a program. Attribute names are bound to slots
	// 0..n-1 in the order given, before linking.
	//
	// Parameters:
	//   - vertexSrc: vertex stage source
	//   - fragmentSrc: fragment stage source
	//   - attributes: vertex attribute names in slot order
	//
	// Returns:
	//   - ProgramID: the linked program
	//   - error: compile or link diagnostics
	CompileProgram(vertexSrc, fragmentSrc string, attributes []string) (ProgramID, error)

	// UseProgram makes a program current.
	//
	// Parameters:
	//   - id: the program
	UseProgram(id ProgramID)

	// DeleteProgram frees a program. Panics if the program is not live.
	//
	// Parameters:
	//   - id: the program
	DeleteProgram(id ProgramID)

	// UniformLocation looks up a uniform by its full name, e.g. "R_pointLight.base.color".
	//
	// Parameters:
	//   - id: the program
	//   - name: the uniform name
	//
	// Returns:
	//   - int32: the location, or InvalidLocation
	UniformLocation(id ProgramID, name string) int32

	// SetUniformInt uploads an int (also used for sampler units) to the current program.
	SetUniformInt(location int32, v int32)

	// SetUniformFloat uploads a float to the current program.
	SetUniformFloat(location int32, v float32)

	// SetUniformVec3 uploads a vec3 to the current program.
	SetUniformVec3(location int32, v mgl32.Vec3)

	// SetUniformMat4 uploads a mat4 to the current program.
	SetUniformMat4(location int32, v mgl32.Mat4)

	// CreateMesh uploads interleaved vertices (common.VertexStride floats each) and
	// triangle indices. Both are handed to the backend as raw byte views.
	//
	// Parameters:
	//   - vertices: interleaved vertex data
	//   - indices: triangle list indices
	//
	// Returns:
	//   - MeshID: the uploaded mesh
	CreateMesh(vertices []float32, indices []uint32) MeshID

	// DrawMesh draws indexCount indices of a mesh as triangles.
	//
	// Parameters:
	//   - id: the mesh
	//   - indexCount: number of indices to draw
	DrawMesh(id MeshID, indexCount int32)

	// DeleteMesh frees a mesh. Panics if the mesh is not live.
	//
	// Parameters:
	//   - id: the mesh
	DeleteMesh(id MeshID)

	// CreateTexture uploads RGBA8 pixels as a 2D texture.
	//
	// Parameters:
	//   - data: the pixels
	//   - filter: sampling filter
	//
	// Returns:
	//   - TextureID: the uploaded texture
	CreateTexture(data common.TextureData, filter TextureFilter) TextureID

	// BindTexture binds a texture to a texture unit.
	//
	// Parameters:
	//   - id: the texture
	//   - unit: zero-based texture unit
	BindTexture(id TextureID, unit int32)

	// DeleteTexture frees a texture. Panics if the texture is not live.
	//
	// Parameters:
	//   - id: the texture
	DeleteTexture(id TextureID)

	// Stats returns the number of live GPU objects.
	//
	// Returns:
	//   - Stats: live object counts
	Stats() Stats

	// Calls returns a copy of the operations recorded since creation or the last
	// ResetCalls. Empty unless recording is enabled.
	//
	// Returns:
	//   - []Call: recorded operations in order
	Calls() []Call

	// ResetCalls discards recorded operations.
	ResetCalls()
}

var _ Device = &device{}

// NewDevice creates a Device for the given backend. The headless backend records
// calls by default.
//
// Parameters:
//   - backendType: the backend to use
//   - options: functional options to configure the device
//
// Returns:
//   - Device: the new device
func NewDevice(backendType BackendType, options ...DeviceBuilderOption) Device {
	d := &device{
		mu:          &sync.Mutex{},
		backendType: backendType,
		clearColor:  mgl32.Vec4{0, 0, 0, 0},
		recording:   backendType == BackendTypeHeadless,
		programs:    make(map[ProgramID]struct{}),
		meshes:      make(map[MeshID]struct{}),
		textures:    make(map[TextureID]struct{}),
		unresolved:  make(map[string]struct{}),
	}
	for _, option := range options {
		option(d)
	}

	switch backendType {
	case BackendTypeOpenGL:
		d.backend = newGLDeviceBackend()
	case BackendTypeHeadless:
		d.backend = newHeadlessDeviceBackend(d.unresolved)
	default:
		panic(fmt.Sprintf("device: unknown backend type %d", backendType))
	}
	return d
}

func (d *device) record(op string, args ...any) {
	if !d.recording {
		return
	}
	d.mu.Lock()
	d.calls = append(d.calls, Call{Op: op, Args: args})
	d.mu.Unlock()
}

func (d *device) Init() error {
	d.record("Init")
	if err := d.backend.init(); err != nil {
		return err
	}
	d.backend.setClearColor(d.clearColor)
	return nil
}

func (d *device) BackendType() BackendType {
	return d.backendType
}

func (d *device) Version() string {
	return d.backend.version()
}

func (d *device) SetClearColor(color mgl32.Vec4) {
	d.record("SetClearColor", color)
	d.clearColor = color
	d.backend.setClearColor(color)
}

func (d *device) Clear() {
	d.record("Clear")
	d.backend.clear()
}

func (d *device) Viewport(width, height int32) {
	d.record("Viewport", width, height)
	d.backend.viewport(width, height)
}

func (d *device) EnableBlend(src, dst BlendFactor) {
	d.record("EnableBlend", src, dst)
	d.backend.enableBlend(src, dst)
}

func (d *device) DisableBlend() {
	d.record("DisableBlend")
	d.backend.disableBlend()
}

func (d *device) SetDepthFunc(fn DepthFunc) {
	d.record("SetDepthFunc", fn)
	d.backend.depthFunc(fn)
}

func (d *device) SetDepthMask(write bool) {
	d.record("SetDepthMask", write)
	d.backend.depthMask(write)
}

func (d *device) CompileProgram(vertexSrc, fragmentSrc string, attributes []string) (ProgramID, error) {
	id, err := d.backend.compileProgram(vertexSrc, fragmentSrc, attributes)
	if err != nil {
		return 0, err
	}
	d.record("CompileProgram", id, attributes)
	d.mu.Lock()
	d.programs[id] = struct{}{}
	d.mu.Unlock()
	return id, nil
}

func (d *device) UseProgram(id ProgramID) {
	d.record("UseProgram", id)
	d.backend.useProgram(id)
}

func (d *device) DeleteProgram(id ProgramID) {
	d.mu.Lock()
	if _, ok := d.programs[id]; !ok {
		d.mu.Unlock()
		panic(fmt.Sprintf("device: program %d is not live", id))
	}
	delete(d.programs, id)
	d.mu.Unlock()

	d.record("DeleteProgram", id)
	d.backend.deleteProgram(id)
}

func (d *device) UniformLocation(id ProgramID, name string) int32 {
	return d.backend.uniformLocation(id, name)
}

func (d *device) SetUniformInt(location int32, v int32) {
	d.record("SetUniformInt", location, v)
	d.backend.uniformInt(location, v)
}

func (d *device) SetUniformFloat(location int32, v float32) {
	d.record("SetUniformFloat", location, v)
	d.backend.uniformFloat(location, v)
}

func (d *device) SetUniformVec3(location int32, v mgl32.Vec3) {
	d.record("SetUniformVec3", location, v)
	d.backend.uniformVec3(location, v)
}

func (d *device) SetUniformMat4(location int32, v mgl32.Mat4) {
	d.record("SetUniformMat4", location, v)
	d.backend.uniformMat4(location, v)
}

func (d *device) CreateMesh(vertices []float32, indices []uint32) MeshID {
	if len(vertices)%common.VertexStride != 0 {
		panic(fmt.Sprintf("device: vertex data length %d is not a multiple of %d", len(vertices), common.VertexStride))
	}
	vertexData := common.SliceToBytes(vertices)
	id := d.backend.createMesh(vertexData, common.SliceToBytes(indices))
	d.record("CreateMesh", id, len(indices), len(vertexData))
	d.mu.Lock()
	d.meshes[id] = struct{}{}
	d.mu.Unlock()
	return id
}

func (d *device) DrawMesh(id MeshID, indexCount int32) {
	d.record("DrawMesh", id, indexCount)
	d.backend.drawMesh(id, indexCount)
}

func (d *device) DeleteMesh(id MeshID) {
	d.mu.Lock()
	if _, ok := d.meshes[id]; !ok {
		d.mu.Unlock()
		panic(fmt.Sprintf("device: mesh %d is not live", id))
	}
	delete(d.meshes, id)
	d.mu.Unlock()

	d.record("DeleteMesh", id)
	d.backend.deleteMesh(id)
}

func (d *device) CreateTexture(data common.TextureData, filter TextureFilter) TextureID {
	if uint32(len(data.Pixels)) != data.Width*data.Height*4 {
		panic(fmt.Sprintf("device: texture pixel data is %d bytes, want %dx%dx4", len(data.Pixels), data.Width, data.Height))
	}
	id := d.backend.createTexture(data, filter)
	d.record("CreateTexture", id, data.Width, data.Height)
	d.mu.Lock()
	d.textures[id] = struct{}{}
	d.mu.Unlock()
	return id
}

func (d *device) BindTexture(id TextureID, unit int32) {
	d.record("BindTexture", id, unit)
	d.backend.bindTexture(id, unit)
}

func (d *device) DeleteTexture(id TextureID) {
	d.mu.Lock()
	if _, ok := d.textures[id]; !ok {
		d.mu.Unlock()
		panic(fmt.Sprintf("device: texture %d is not live", id))
	}
	delete(d.textures, id)
	d.mu.Unlock()

	d.record("DeleteTexture", id)
	d.backend.deleteTexture(id)
}

func (d *device) Stats() Stats {
	d.mu.Lock()
	defer d.mu.Unlock()
	return Stats{
		Programs: len(d.programs),
		Meshes:   len(d.meshes),
		Textures: len(d.textures),
	}
}

func (d *device) Calls() []Call {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]Call, len(d.calls))
	copy(out, d.calls)
	return out
}

func (d *device) ResetCalls() {
	d.mu.Lock()
	d.calls = nil
	d.mu.Unlock()
}
