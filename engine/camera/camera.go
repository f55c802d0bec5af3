package camera

import (
	"math"
	"sync"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Carmen-Shannon/oxy-forward/common"
	"github.com/Carmen-Shannon/oxy-forward/engine/transform"
)

type cameraImpl struct {
	mu *sync.Mutex

	fov    float32
	aspect float32
	near   float32
	far    float32

	projectionMatrix mgl32.Mat4

	transform *transform.Transform
}

// Camera defines the interface for a perspective camera.
// The camera holds perspective settings and reads its position and orientation from
// the transform it is attached to, usually the transform of the scene node that owns
// the camera component.
type Camera interface {
	// Fov returns the field of view in radians.
	//
	// Returns:
	//   - float32: field of view in radians
	Fov() float32

	// Aspect returns the aspect ratio (width / height).
	//
	// Returns:
	//   - float32: the aspect ratio
	Aspect() float32

	// Near returns the near clipping plane distance.
	//
	// Returns:
	//   - float32: near plane distance
	Near() float32

	// Far returns the far clipping plane distance.
	//
	// Returns:
	//   - float32: far plane distance
	Far() float32

	// ProjectionMatrix returns the current left-handed projection matrix.
	//
	// Returns:
	//   - mgl32.Mat4: the projection matrix
	ProjectionMatrix() mgl32.Mat4

	// ViewMatrix returns the inverse of the attached transform's world rotation and
	// translation.
	//
	// Returns:
	//   - mgl32.Mat4: the view matrix
	ViewMatrix() mgl32.Mat4

	// ViewProjection returns ProjectionMatrix() * ViewMatrix().
	//
	// Returns:
	//   - mgl32.Mat4: the combined view-projection matrix
	ViewProjection() mgl32.Mat4

	// EyePosition returns the world-space position of the camera.
	//
	// Returns:
	//   - mgl32.Vec3: the eye position
	EyePosition() mgl32.Vec3

	// Forward returns the world-space viewing direction.
	//
	// Returns:
	//   - mgl32.Vec3: normalized forward axis
	Forward() mgl32.Vec3

	// Transform returns the transform the camera follows.
	//
	// Returns:
	//   - *transform.Transform: the attached transform
	Transform() *transform.Transform

	// SetTransform attaches the camera to a transform.
	//
	// Parameters:
	//   - t: the transform to follow; nil detaches to a private identity transform
	SetTransform(t *transform.Transform)

	// SetFov sets the field of view and recomputes the projection matrix.
	//
	// Parameters:
	//   - fov: field of view in radians
	SetFov(fov float32)

	// SetAspect sets the aspect ratio and recomputes the projection matrix.
	// Called by the engine when the framebuffer is resized.
	//
	// Parameters:
	//   - aspect: width / height
	SetAspect(aspect float32)

	// SetNear sets the near clipping plane and recomputes the projection matrix.
	//
	// Parameters:
	//   - near: near plane distance
	SetNear(near float32)

	// SetFar sets the far clipping plane and recomputes the projection matrix.
	//
	// Parameters:
	//   - far: far plane distance
	SetFar(far float32)
}

var _ Camera = &cameraImpl{}

// NewCamera creates a new Camera with a 70 degree field of view, square aspect and a
// 0.01 to 1000 depth range, then applies the provided options.
//
// Parameters:
//   - options: functional options to configure the camera
//
// Returns:
//   - Camera: the newly created camera
func NewCamera(options ...CameraBuilderOption) Camera {
	c := &cameraImpl{
		mu:        &sync.Mutex{},
		fov:       70.0 * (math.Pi / 180.0), // radians
		aspect:    1.0,
		near:      0.01,
		far:       1000.0,
		transform: transform.New(),
	}
	for _, option := range options {
		option(c)
	}
	c.updateProjection()
	return c
}

func (c *cameraImpl) Fov() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.fov
}

func (c *cameraImpl) Aspect() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.aspect
}

func (c *cameraImpl) Near() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.near
}

func (c *cameraImpl) Far() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.far
}

func (c *cameraImpl) ProjectionMatrix() mgl32.Mat4 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.projectionMatrix
}

func (c *cameraImpl) ViewMatrix() mgl32.Mat4 {
	pos := c.transform.WorldPosition()
	rotation := c.transform.WorldRotation().Conjugate().Mat4()
	translation := mgl32.Translate3D(-pos[0], -pos[1], -pos[2])
	return rotation.Mul4(translation)
}

func (c *cameraImpl) ViewProjection() mgl32.Mat4 {
	return c.ProjectionMatrix().Mul4(c.ViewMatrix())
}

func (c *cameraImpl) EyePosition() mgl32.Vec3 {
	return c.transform.WorldPosition()
}

func (c *cameraImpl) Forward() mgl32.Vec3 {
	return common.Forward(c.transform.WorldRotation()).Normalize()
}

func (c *cameraImpl) Transform() *transform.Transform {
	return c.transform
}

func (c *cameraImpl) SetTransform(t *transform.Transform) {
	if t == nil {
		t = transform.New()
	}
	c.transform = t
}

func (c *cameraImpl) SetFov(fov float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.fov = fov
	c.updateProjection()
}

func (c *cameraImpl) SetAspect(aspect float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.aspect = aspect
	c.updateProjection()
}

func (c *cameraImpl) SetNear(near float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.near = near
	c.updateProjection()
}

func (c *cameraImpl) SetFar(far float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.far = far
	c.updateProjection()
}

// updateProjection recomputes the projection matrix. Callers hold c.mu, except during
// construction.
func (c *cameraImpl) updateProjection() {
	c.projectionMatrix = common.PerspectiveLH(c.fov, c.aspect, c.near, c.far)
}
