package component

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Carmen-Shannon/oxy-forward/common"
	"github.com/Carmen-Shannon/oxy-forward/engine/game_object"
	"github.com/Carmen-Shannon/oxy-forward/engine/window"
)

// DefaultLookSensitivity is the FreeLook rotation in degrees per pixel of mouse travel.
const DefaultLookSensitivity = 0.5

// FreeLook rotates its owner with the mouse. A left click captures the cursor, the
// unlock key releases it. While captured, horizontal travel yaws about the world Y axis,
// vertical travel pitches about the owner's right axis, and the cursor is recentred.
type FreeLook struct {
	game_object.BaseComponent

	input       window.Input
	sensitivity float32
	unlockKey   int
	locked      bool
}

var _ game_object.Component = &FreeLook{}

// NewFreeLook creates a FreeLook reading from input.
//
// Parameters:
//   - input: the window input
//   - sensitivity: degrees per pixel; values <= 0 use DefaultLookSensitivity
//
// Returns:
//   - *FreeLook: the component
func NewFreeLook(input window.Input, sensitivity float32) *FreeLook {
	if sensitivity <= 0 {
		sensitivity = DefaultLookSensitivity
	}
	return &FreeLook{
		input:       input,
		sensitivity: sensitivity,
		unlockKey:   common.KeyEsc,
	}
}

// Locked reports whether the cursor is captured.
func (f *FreeLook) Locked() bool {
	return f.locked
}

func (f *FreeLook) Input(float32) {
	if f.input.KeyDown(f.unlockKey) {
		f.input.SetCursorVisible(true)
		f.locked = false
	}
	if f.input.MousePressed(common.MouseLeft) {
		f.input.SetCursorPosition(f.input.Center())
		f.input.SetCursorVisible(false)
		f.locked = true
	}
	if !f.locked {
		return
	}

	center := f.input.Center()
	delta := f.input.CursorPosition().Sub(center)
	t := f.Transform()

	if delta.X() != 0 {
		t.Rotate(common.AxisY, mgl32.DegToRad(delta.X()*f.sensitivity))
	}
	if delta.Y() != 0 {
		t.Rotate(common.Right(t.Rotation()), mgl32.DegToRad(delta.Y()*f.sensitivity))
	}
	if delta.X() != 0 || delta.Y() != 0 {
		f.input.SetCursorPosition(center)
	}
}
