package component

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Carmen-Shannon/oxy-forward/common"
	"github.com/Carmen-Shannon/oxy-forward/engine/camera"
	"github.com/Carmen-Shannon/oxy-forward/engine/game_object"
)

// lookAtRate scales the per-second blend toward the target rotation.
const lookAtRate = 5

// CameraSource provides the camera a LookAt turns toward. The rendering engine
// satisfies it.
type CameraSource interface {
	MainCamera() camera.Camera
}

// LookAt turns its owner smoothly to face the main camera.
type LookAt struct {
	game_object.BaseComponent

	source CameraSource
}

var _ game_object.Component = &LookAt{}

// NewLookAt creates a LookAt following source's main camera.
func NewLookAt(source CameraSource) *LookAt {
	return &LookAt{source: source}
}

func (l *LookAt) Update(delta float32) {
	cam := l.source.MainCamera()
	if cam == nil {
		return
	}
	t := l.Transform()
	target := t.LookAtRotation(cam.EyePosition(), common.AxisY)

	current := t.Rotation()
	if current.Dot(target) < 0 {
		target = target.Scale(-1)
	}
	amount := delta * lookAtRate
	if amount > 1 {
		amount = 1
	}
	t.SetRotation(mgl32.QuatNlerp(current, target, amount))
}
