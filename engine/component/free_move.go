package component

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Carmen-Shannon/oxy-forward/common"
	"github.com/Carmen-Shannon/oxy-forward/engine/game_object"
	"github.com/Carmen-Shannon/oxy-forward/engine/window"
)

// DefaultMoveSpeed is the FreeMove speed in units per second.
const DefaultMoveSpeed = 10

// FreeMove moves its owner with W, A, S and D relative to the owner's rotation.
type FreeMove struct {
	game_object.BaseComponent

	input window.Input
	speed float32
}

var _ game_object.Component = &FreeMove{}

// NewFreeMove creates a FreeMove reading from input.
//
// Parameters:
//   - input: the window input
//   - speed: units per second; values <= 0 use DefaultMoveSpeed
//
// Returns:
//   - *FreeMove: the component
func NewFreeMove(input window.Input, speed float32) *FreeMove {
	if speed <= 0 {
		speed = DefaultMoveSpeed
	}
	return &FreeMove{input: input, speed: speed}
}

func (f *FreeMove) Input(delta float32) {
	t := f.Transform()
	rot := t.Rotation()
	amount := f.speed * delta

	move := func(dir mgl32.Vec3) {
		t.SetPosition(t.Position().Add(dir.Mul(amount)))
	}
	if f.input.KeyDown(common.KeyW) {
		move(common.Forward(rot))
	}
	if f.input.KeyDown(common.KeyS) {
		move(common.Back(rot))
	}
	if f.input.KeyDown(common.KeyA) {
		move(common.Left(rot))
	}
	if f.input.KeyDown(common.KeyD) {
		move(common.Right(rot))
	}
}
