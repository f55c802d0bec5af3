package device

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Carmen-Shannon/oxy-forward/common"
)

// BackendType identifies the GPU backend implementation used by the Device.
type BackendType int

const (
	// BackendTypeOpenGL selects the OpenGL 4.1 core profile backend. Requires a current
	// context, normally created by the window package.
	BackendTypeOpenGL BackendType = iota

	// BackendTypeHeadless selects a backend that issues no GPU calls. Object IDs and
	// uniform locations are synthesized, which makes it suitable for tests and tools.
	BackendTypeHeadless
)

// BlendFactor is a source or destination factor of the blend equation.
type BlendFactor int

const (
	BlendZero BlendFactor = iota
	BlendOne
	BlendSrcAlpha
	BlendOneMinusSrcAlpha
)

func (b BlendFactor) String() string {
	switch b {
	case BlendZero:
		return "ZERO"
	case BlendOne:
		return "ONE"
	case BlendSrcAlpha:
		return "SRC_ALPHA"
	case BlendOneMinusSrcAlpha:
		return "ONE_MINUS_SRC_ALPHA"
	default:
		return "UNKNOWN"
	}
}

// DepthFunc is the comparison used by the depth test.
type DepthFunc int

const (
	DepthLess DepthFunc = iota
	DepthEqual
	DepthLessEqual
	DepthAlways
)

func (d DepthFunc) String() string {
	switch d {
	case DepthLess:
		return "LESS"
	case DepthEqual:
		return "EQUAL"
	case DepthLessEqual:
		return "LEQUAL"
	case DepthAlways:
		return "ALWAYS"
	default:
		return "UNKNOWN"
	}
}

// TextureFilter selects texture minification and magnification filtering.
type TextureFilter int

const (
	FilterLinear TextureFilter = iota
	FilterNearest
)

// ProgramID names a linked shading program.
type ProgramID uint32

// MeshID names an uploaded vertex/index buffer pair.
type MeshID uint32

// TextureID names an uploaded 2D texture.
type TextureID uint32

// InvalidLocation is returned by UniformLocation for names the program does not expose.
const InvalidLocation int32 = -1

// deviceBackend is the set of raw GPU operations a backend must provide. The Device
// wraps a backend with call recording and resource bookkeeping.
type deviceBackend interface {
	init() error
	version() string

	setClearColor(color mgl32.Vec4)
	clear()
	viewport(width, height int32)

	enableBlend(src, dst BlendFactor)
	disableBlend()
	depthFunc(fn DepthFunc)
	depthMask(write bool)

	compileProgram(vertexSrc, fragmentSrc string, attributes []string) (ProgramID, error)
	useProgram(id ProgramID)
	deleteProgram(id ProgramID)
	uniformLocation(id ProgramID, name string) int32

	uniformInt(location int32, v int32)
	uniformFloat(location int32, v float32)
	uniformVec3(location int32, v mgl32.Vec3)
	uniformMat4(location int32, v mgl32.Mat4)

	createMesh(vertexData, indexData []byte) MeshID
	drawMesh(id MeshID, indexCount int32)
	deleteMesh(id MeshID)

	createTexture(data common.TextureData, filter TextureFilter) TextureID
	bindTexture(id TextureID, unit int32)
	deleteTexture(id TextureID)
}
