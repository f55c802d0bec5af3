package window

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"

	"github.com/Carmen-Shannon/oxy-forward/common"
)

func TestKeyEdgesLastOneFrame(t *testing.T) {
	s := NewInputState()

	s.KeyEvent(common.KeyW, true)
	assert.True(t, s.KeyDown(common.KeyW))
	assert.True(t, s.KeyPressed(common.KeyW))
	assert.False(t, s.KeyReleased(common.KeyW))

	s.EndFrame()
	assert.True(t, s.KeyDown(common.KeyW))
	assert.False(t, s.KeyPressed(common.KeyW))

	s.KeyEvent(common.KeyW, false)
	assert.False(t, s.KeyDown(common.KeyW))
	assert.True(t, s.KeyReleased(common.KeyW))

	s.EndFrame()
	assert.False(t, s.KeyReleased(common.KeyW))
}

func TestRepeatedKeyDownIsNotAnEdge(t *testing.T) {
	s := NewInputState()
	s.KeyEvent(common.KeyA, true)
	s.EndFrame()
	s.KeyEvent(common.KeyA, true)
	assert.False(t, s.KeyPressed(common.KeyA))
}

func TestMouseButtons(t *testing.T) {
	s := NewInputState()
	s.MouseButtonEvent(common.MouseLeft, true)
	assert.True(t, s.MousePressed(common.MouseLeft))
	assert.True(t, s.MouseDown(common.MouseLeft))
	assert.False(t, s.MouseDown(common.MouseRight))

	s.EndFrame()
	s.MouseButtonEvent(common.MouseLeft, false)
	assert.True(t, s.MouseReleased(common.MouseLeft))
	assert.False(t, s.MousePressed(common.MouseLeft))
}

func TestCursorHandlers(t *testing.T) {
	var moved []mgl32.Vec2
	var shown []bool
	s := NewInputState(
		WithInputSize(800, 600),
		WithCursorHandlers(
			func(x, y float32) { moved = append(moved, mgl32.Vec2{x, y}) },
			func(v bool) { shown = append(shown, v) },
		),
	)

	assert.Equal(t, mgl32.Vec2{400, 300}, s.Center())
	assert.True(t, s.CursorVisible())

	s.CursorEvent(10, 20)
	assert.Equal(t, mgl32.Vec2{10, 20}, s.CursorPosition())
	assert.Empty(t, moved)

	s.SetCursorPosition(s.Center())
	assert.Equal(t, []mgl32.Vec2{{400, 300}}, moved)
	assert.Equal(t, mgl32.Vec2{400, 300}, s.CursorPosition())

	s.SetCursorVisible(false)
	assert.False(t, s.CursorVisible())
	assert.Equal(t, []bool{false}, shown)

	s.Resize(100, 50)
	assert.Equal(t, mgl32.Vec2{50, 25}, s.Center())
}
