package camera

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"

	"github.com/Carmen-Shannon/oxy-forward/common"
	"github.com/Carmen-Shannon/oxy-forward/engine/transform"
)

func assertVec3Near(t *testing.T, want, got mgl32.Vec3) {
	t.Helper()
	for i := range want {
		assert.InDelta(t, want[i], got[i], 1e-5, "component %d of %v", i, got)
	}
}

func TestDefaults(t *testing.T) {
	c := NewCamera()
	assert.InDelta(t, mgl32.DegToRad(70), c.Fov(), 1e-6)
	assert.Equal(t, float32(1), c.Aspect())
	assert.Equal(t, float32(0.01), c.Near())
	assert.Equal(t, float32(1000), c.Far())
	assert.Equal(t, mgl32.Ident4(), c.ViewMatrix())
}

func TestViewProjectionCentersTarget(t *testing.T) {
	tr := transform.New()
	tr.SetPosition(mgl32.Vec3{0, 0, -10})

	c := NewCamera(WithTransform(tr), WithAspect(16.0/9.0))
	clip := c.ViewProjection().Mul4x1(mgl32.Vec4{0, 0, 0, 1})
	ndc := clip.Vec3().Mul(1 / clip.W())

	assert.InDelta(t, 0, ndc.X(), 1e-5)
	assert.InDelta(t, 0, ndc.Y(), 1e-5)
	assert.True(t, ndc.Z() > -1 && ndc.Z() < 1)
}

func TestViewMatrixFollowsRotation(t *testing.T) {
	tr := transform.New()
	tr.Rotate(common.AxisY, mgl32.DegToRad(90))
	c := NewCamera(WithTransform(tr))

	// a point along the camera's forward axis ends up on view-space +Z
	p := c.ViewMatrix().Mul4x1(mgl32.Vec4{5, 0, 0, 1}).Vec3()
	assertVec3Near(t, mgl32.Vec3{0, 0, 5}, p)
	assertVec3Near(t, common.AxisX, c.Forward())
}

func TestSettersUpdateProjection(t *testing.T) {
	c := NewCamera()
	before := c.ProjectionMatrix()

	c.SetAspect(2)
	assert.NotEqual(t, before, c.ProjectionMatrix())
	assert.Equal(t, common.PerspectiveLH(c.Fov(), 2, c.Near(), c.Far()), c.ProjectionMatrix())

	c.SetFov(1)
	c.SetNear(1)
	c.SetFar(50)
	assert.Equal(t, common.PerspectiveLH(1, 2, 1, 50), c.ProjectionMatrix())
}

func TestEyePosition(t *testing.T) {
	parent := transform.New()
	parent.SetPosition(mgl32.Vec3{1, 0, 0})
	tr := transform.New()
	tr.SetParent(parent)
	tr.SetPosition(mgl32.Vec3{0, 2, 0})

	c := NewCamera()
	c.SetTransform(tr)
	assertVec3Near(t, mgl32.Vec3{1, 2, 0}, c.EyePosition())
}
