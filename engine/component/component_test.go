package component

import (
	"errors"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Carmen-Shannon/oxy-forward/common"
	"github.com/Carmen-Shannon/oxy-forward/engine/camera"
	"github.com/Carmen-Shannon/oxy-forward/engine/game_object"
	"github.com/Carmen-Shannon/oxy-forward/engine/light"
	"github.com/Carmen-Shannon/oxy-forward/engine/renderer/device"
	"github.com/Carmen-Shannon/oxy-forward/engine/renderer/material"
	"github.com/Carmen-Shannon/oxy-forward/engine/renderer/shader"
	"github.com/Carmen-Shannon/oxy-forward/engine/transform"
	"github.com/Carmen-Shannon/oxy-forward/engine/window"
)

type fakeTexture struct{}

func (fakeTexture) Bind(int32) {}

type fakeMesh struct {
	draws    int
	releases int
}

func (m *fakeMesh) Draw() { m.draws++ }

func (m *fakeMesh) Release() bool {
	m.releases++
	return m.releases == 1
}

type fakeProgram struct {
	err        error
	transforms []*transform.Transform
	materials  []material.Material
}

func (p *fakeProgram) Name() string                  { return "fake" }
func (p *fakeProgram) ID() device.ProgramID          { return 1 }
func (p *fakeProgram) Reflection() shader.Reflection { return shader.Reflection{} }
func (p *fakeProgram) Location(string) int32         { return device.InvalidLocation }
func (p *fakeProgram) Bind()                         {}
func (p *fakeProgram) Delete()                       {}
func (p *fakeProgram) UpdateUniforms(t *transform.Transform, mat material.Material, _ shader.Pass) error {
	p.transforms = append(p.transforms, t)
	p.materials = append(p.materials, mat)
	return p.err
}

type fakeRegistrar struct {
	lights  []light.Light
	cameras []camera.Camera
}

func (r *fakeRegistrar) AddLight(l light.Light)    { r.lights = append(r.lights, l) }
func (r *fakeRegistrar) AddCamera(c camera.Camera) { r.cameras = append(r.cameras, c) }

type cameraSource struct{ cam camera.Camera }

func (s cameraSource) MainCamera() camera.Camera { return s.cam }

func TestMeshRendererUploadsThenDraws(t *testing.T) {
	mesh := &fakeMesh{}
	mat := material.NewMaterial(material.WithFallbackTexture(fakeTexture{}))
	obj := game_object.NewGameObject(game_object.WithComponent(NewMeshRenderer(mesh, mat)))

	prog := &fakeProgram{}
	require.NoError(t, obj.RenderAll(prog, shader.Pass{}))
	assert.Equal(t, 1, mesh.draws)
	assert.Equal(t, []*transform.Transform{obj.Transform()}, prog.transforms)
	assert.Same(t, mat, prog.materials[0])

	prog.err = errors.New("boom")
	assert.Error(t, obj.RenderAll(prog, shader.Pass{}))
	assert.Equal(t, 1, mesh.draws)

	obj.Release()
	assert.Equal(t, 1, mesh.releases)
}

func TestLightComponentFollowsOwner(t *testing.T) {
	l := light.NewPointLight(light.WithAttenuation(0, 0, 1))
	obj := game_object.NewGameObject(
		game_object.WithPosition(1, 2, 3),
		game_object.WithComponent(NewLightComponent(l)),
	)

	assert.Same(t, obj.Transform(), l.Transform())
	assert.Equal(t, mgl32.Vec3{1, 2, 3}, l.Position())

	r := &fakeRegistrar{}
	obj.CollectAll(r)
	assert.Equal(t, []light.Light{l}, r.lights)

	obj.SetEnabled(false)
	obj.CollectAll(r)
	assert.Len(t, r.lights, 1)
}

func TestCameraComponentRegisters(t *testing.T) {
	cam := camera.NewCamera()
	obj := game_object.NewGameObject(
		game_object.WithPosition(0, 0, -5),
		game_object.WithComponent(NewCameraComponent(cam)),
	)

	r := &fakeRegistrar{}
	obj.CollectAll(r)
	require.Len(t, r.cameras, 1)
	assert.Equal(t, mgl32.Vec3{0, 0, -5}, r.cameras[0].EyePosition())
}

func TestFreeMoveFollowsRotation(t *testing.T) {
	in := window.NewInputState()
	obj := game_object.NewGameObject(game_object.WithComponent(NewFreeMove(in, 2)))

	in.KeyEvent(common.KeyW, true)
	obj.InputAll(0.5)
	assert.InDelta(t, 1, obj.Transform().Position().Z(), 1e-5)

	in.KeyEvent(common.KeyW, false)
	in.KeyEvent(common.KeyD, true)
	obj.InputAll(0.5)
	pos := obj.Transform().Position()
	assert.InDelta(t, 1, pos.X(), 1e-5)
	assert.InDelta(t, 1, pos.Z(), 1e-5)
}

func TestFreeLookLocksAndRotates(t *testing.T) {
	in := window.NewInputState(window.WithInputSize(200, 100))
	look := NewFreeLook(in, 1)
	obj := game_object.NewGameObject(game_object.WithComponent(look))

	in.CursorEvent(150, 50)
	obj.InputAll(0.016)
	assert.False(t, look.Locked())
	assert.Equal(t, mgl32.QuatIdent(), obj.Transform().Rotation())

	in.MouseButtonEvent(common.MouseLeft, true)
	obj.InputAll(0.016)
	assert.True(t, look.Locked())
	assert.False(t, in.CursorVisible())
	assert.Equal(t, in.Center(), in.CursorPosition())

	in.EndFrame()
	in.CursorEvent(190, 50)
	obj.InputAll(0.016)
	// 90 pixels right of centre at one degree per pixel.
	fwd := common.Forward(obj.Transform().Rotation())
	assert.InDelta(t, 1, fwd.X(), 1e-4)
	assert.InDelta(t, 0, fwd.Y(), 1e-4)
	assert.InDelta(t, 0, fwd.Z(), 1e-4)
	assert.Equal(t, in.Center(), in.CursorPosition())

	in.KeyEvent(common.KeyEsc, true)
	obj.InputAll(0.016)
	assert.False(t, look.Locked())
	assert.True(t, in.CursorVisible())
}

func TestLookAtTurnsTowardCamera(t *testing.T) {
	cam := camera.NewCamera()
	game_object.NewGameObject(
		game_object.WithPosition(10, 0, 0),
		game_object.WithComponent(NewCameraComponent(cam)),
	)

	obj := game_object.NewGameObject(game_object.WithComponent(NewLookAt(cameraSource{cam})))
	for i := 0; i < 10; i++ {
		obj.UpdateAll(1)
	}
	fwd := common.Forward(obj.Transform().Rotation())
	assert.InDelta(t, 1, fwd.X(), 1e-4)

	still := game_object.NewGameObject(game_object.WithComponent(NewLookAt(cameraSource{})))
	still.UpdateAll(1)
	assert.Equal(t, mgl32.QuatIdent(), still.Transform().Rotation())
}
