package device

import (
	"fmt"
	"strings"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Carmen-Shannon/oxy-forward/common"
)

// glMesh holds the GL objects behind a MeshID.
type glMesh struct {
	vao, vbo, ebo uint32
}

// glDeviceBackend implements deviceBackend on the OpenGL 4.1 core profile.
// Must be used from the thread that owns the current GL context.
type glDeviceBackend struct {
	meshes map[MeshID]glMesh
}

var _ deviceBackend = &glDeviceBackend{}

func newGLDeviceBackend() *glDeviceBackend {
	return &glDeviceBackend{
		meshes: make(map[MeshID]glMesh),
	}
}

func (b *glDeviceBackend) init() error {
	if err := gl.Init(); err != nil {
		return fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	gl.FrontFace(gl.CW)
	gl.CullFace(gl.BACK)
	gl.Enable(gl.CULL_FACE)
	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	gl.Enable(gl.DEPTH_CLAMP)
	return nil
}

func (b *glDeviceBackend) version() string {
	return gl.GoStr(gl.GetString(gl.VERSION))
}

func (b *glDeviceBackend) setClearColor(color mgl32.Vec4) {
	gl.ClearColor(color[0], color[1], color[2], color[3])
}

func (b *glDeviceBackend) clear() {
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

func (b *glDeviceBackend) viewport(width, height int32) {
	gl.Viewport(0, 0, width, height)
}

func (b *glDeviceBackend) enableBlend(src, dst BlendFactor) {
	gl.Enable(gl.BLEND)
	gl.BlendFunc(glBlendFactor(src), glBlendFactor(dst))
}

func (b *glDeviceBackend) disableBlend() {
	gl.Disable(gl.BLEND)
}

func (b *glDeviceBackend) depthFunc(fn DepthFunc) {
	switch fn {
	case DepthEqual:
		gl.DepthFunc(gl.EQUAL)
	case DepthLessEqual:
		gl.DepthFunc(gl.LEQUAL)
	case DepthAlways:
		gl.DepthFunc(gl.ALWAYS)
	default:
		gl.DepthFunc(gl.LESS)
	}
}

func (b *glDeviceBackend) depthMask(write bool) {
	gl.DepthMask(write)
}

func (b *glDeviceBackend) compileProgram(vertexSrc, fragmentSrc string, attributes []string) (ProgramID, error) {
	vert, err := compileShader(vertexSrc, gl.VERTEX_SHADER)
	if err != nil {
		return 0, fmt.Errorf("vertex: %w", err)
	}
	frag, err := compileShader(fragmentSrc, gl.FRAGMENT_SHADER)
	if err != nil {
		gl.DeleteShader(vert)
		return 0, fmt.Errorf("fragment: %w", err)
	}

	prog := gl.CreateProgram()
	gl.AttachShader(prog, vert)
	gl.AttachShader(prog, frag)
	for i, name := range attributes {
		gl.BindAttribLocation(prog, uint32(i), gl.Str(name+"\x00"))
	}
	gl.LinkProgram(prog)
	gl.DeleteShader(vert)
	gl.DeleteShader(frag)

	var status int32
	gl.GetProgramiv(prog, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetProgramiv(prog, gl.INFO_LOG_LENGTH, &logLen)
		log := strings.Repeat("\x00", int(logLen+1))
		gl.GetProgramInfoLog(prog, logLen, nil, gl.Str(log))
		gl.DeleteProgram(prog)
		return 0, fmt.Errorf("link failed: %v", log)
	}
	return ProgramID(prog), nil
}

func compileShader(src string, shaderType uint32) (uint32, error) {
	shader := gl.CreateShader(shaderType)
	csrc, free := gl.Strs(src + "\x00")
	gl.ShaderSource(shader, 1, csrc, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLen)
		log := strings.Repeat("\x00", int(logLen+1))
		gl.GetShaderInfoLog(shader, logLen, nil, gl.Str(log))
		gl.DeleteShader(shader)
		return 0, fmt.Errorf("compile failed: %v", log)
	}
	return shader, nil
}

func (b *glDeviceBackend) useProgram(id ProgramID) {
	gl.UseProgram(uint32(id))
}

func (b *glDeviceBackend) deleteProgram(id ProgramID) {
	gl.DeleteProgram(uint32(id))
}

func (b *glDeviceBackend) uniformLocation(id ProgramID, name string) int32 {
	return gl.GetUniformLocation(uint32(id), gl.Str(name+"\x00"))
}

func (b *glDeviceBackend) uniformInt(location int32, v int32) {
	gl.Uniform1i(location, v)
}

func (b *glDeviceBackend) uniformFloat(location int32, v float32) {
	gl.Uniform1f(location, v)
}

func (b *glDeviceBackend) uniformVec3(location int32, v mgl32.Vec3) {
	gl.Uniform3f(location, v[0], v[1], v[2])
}

func (b *glDeviceBackend) uniformMat4(location int32, v mgl32.Mat4) {
	// mgl32 matrices are column-major, matching GL's default layout.
	gl.UniformMatrix4fv(location, 1, false, &v[0])
}

func (b *glDeviceBackend) createMesh(vertexData, indexData []byte) MeshID {
	var m glMesh
	gl.GenVertexArrays(1, &m.vao)
	gl.GenBuffers(1, &m.vbo)
	gl.GenBuffers(1, &m.ebo)
	gl.BindVertexArray(m.vao)

	gl.BindBuffer(gl.ARRAY_BUFFER, m.vbo)
	if len(vertexData) > 0 {
		gl.BufferData(gl.ARRAY_BUFFER, len(vertexData), gl.Ptr(vertexData), gl.STATIC_DRAW)
	}

	stride := int32(common.VertexStride * 4)
	// location 0: position, 1: texCoord, 2: normal, 3: tangent
	attribs := []struct {
		size   int32
		offset int
	}{
		{3, 0},
		{2, 3 * 4},
		{3, 5 * 4},
		{3, 8 * 4},
	}
	for i, a := range attribs {
		gl.EnableVertexAttribArray(uint32(i))
		gl.VertexAttribPointer(uint32(i), a.size, gl.FLOAT, false, stride, gl.PtrOffset(a.offset))
	}

	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, m.ebo)
	if len(indexData) > 0 {
		gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(indexData), gl.Ptr(indexData), gl.STATIC_DRAW)
	}

	gl.BindVertexArray(0)

	id := MeshID(m.vao)
	b.meshes[id] = m
	return id
}

func (b *glDeviceBackend) drawMesh(id MeshID, indexCount int32) {
	m, ok := b.meshes[id]
	if !ok {
		return
	}
	gl.BindVertexArray(m.vao)
	gl.DrawElements(gl.TRIANGLES, indexCount, gl.UNSIGNED_INT, nil)
	gl.BindVertexArray(0)
}

func (b *glDeviceBackend) deleteMesh(id MeshID) {
	m, ok := b.meshes[id]
	if !ok {
		return
	}
	gl.DeleteVertexArrays(1, &m.vao)
	gl.DeleteBuffers(1, &m.vbo)
	gl.DeleteBuffers(1, &m.ebo)
	delete(b.meshes, id)
}

func (b *glDeviceBackend) createTexture(data common.TextureData, filter TextureFilter) TextureID {
	var tex uint32
	gl.GenTextures(1, &tex)
	gl.BindTexture(gl.TEXTURE_2D, tex)

	glFilter := int32(gl.LINEAR)
	if filter == FilterNearest {
		glFilter = gl.NEAREST
	}
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.REPEAT)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.REPEAT)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, glFilter)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, glFilter)

	var pixels unsafe.Pointer
	if len(data.Pixels) > 0 {
		pixels = gl.Ptr(data.Pixels)
	}
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8, int32(data.Width), int32(data.Height), 0,
		gl.RGBA, gl.UNSIGNED_BYTE, pixels)
	gl.BindTexture(gl.TEXTURE_2D, 0)

	return TextureID(tex)
}

func (b *glDeviceBackend) bindTexture(id TextureID, unit int32) {
	gl.ActiveTexture(gl.TEXTURE0 + uint32(unit))
	gl.BindTexture(gl.TEXTURE_2D, uint32(id))
}

func (b *glDeviceBackend) deleteTexture(id TextureID) {
	tex := uint32(id)
	gl.DeleteTextures(1, &tex)
}

func glBlendFactor(f BlendFactor) uint32 {
	switch f {
	case BlendZero:
		return gl.ZERO
	case BlendSrcAlpha:
		return gl.SRC_ALPHA
	case BlendOneMinusSrcAlpha:
		return gl.ONE_MINUS_SRC_ALPHA
	default:
		return gl.ONE
	}
}
