package game_object

import (
	"errors"
	"fmt"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Carmen-Shannon/oxy-forward/engine/camera"
	"github.com/Carmen-Shannon/oxy-forward/engine/light"
	"github.com/Carmen-Shannon/oxy-forward/engine/renderer/shader"
)

func assertVec3Near(t *testing.T, want, got mgl32.Vec3) {
	t.Helper()
	for i := range want {
		assert.InDelta(t, want[i], got[i], 1e-5, "component %d of %v", i, got)
	}
}

type recordingComponent struct {
	BaseComponent
	tag       string
	log       *[]string
	renderErr error
}

func (r *recordingComponent) Input(float32)  { *r.log = append(*r.log, "input:"+r.tag) }
func (r *recordingComponent) Update(float32) { *r.log = append(*r.log, "update:"+r.tag) }
func (r *recordingComponent) Release()       { *r.log = append(*r.log, "release:"+r.tag) }

func (r *recordingComponent) Render(shader.Program, shader.Pass) error {
	*r.log = append(*r.log, "render:"+r.tag)
	return r.renderErr
}

type registrar struct {
	lights  []light.Light
	cameras []camera.Camera
}

func (r *registrar) AddLight(l light.Light)    { r.lights = append(r.lights, l) }
func (r *registrar) AddCamera(c camera.Camera) { r.cameras = append(r.cameras, c) }

type lightComponent struct {
	BaseComponent
	l light.Light
}

func (c *lightComponent) Collect(r Registrar) { r.AddLight(c.l) }

func newTree(log *[]string) (root, a, b, a1 GameObject) {
	a1 = NewGameObject(WithComponent(&recordingComponent{tag: "a1", log: log}))
	a = NewGameObject(WithComponent(&recordingComponent{tag: "a", log: log}), WithChild(a1))
	b = NewGameObject(WithComponent(&recordingComponent{tag: "b", log: log}))
	root = NewGameObject(WithComponent(&recordingComponent{tag: "root", log: log}))
	root.AddChild(a).AddChild(b)
	return
}

func TestTraversalOrder(t *testing.T) {
	var log []string
	root, _, _, _ := newTree(&log)

	root.InputAll(0.1)
	root.UpdateAll(0.1)
	require.NoError(t, root.RenderAll(nil, shader.Pass{}))
	root.Release()

	want := []string{}
	for _, hook := range []string{"input", "update", "render", "release"} {
		for _, tag := range []string{"root", "a", "a1", "b"} {
			want = append(want, fmt.Sprintf("%s:%s", hook, tag))
		}
	}
	assert.Equal(t, want, log)
}

func TestDisabledSubtreeIsSkipped(t *testing.T) {
	var log []string
	root, a, _, _ := newTree(&log)
	a.SetEnabled(false)

	root.UpdateAll(0)
	assert.Equal(t, []string{"update:root", "update:b"}, log)
}

func TestUniqueIDs(t *testing.T) {
	a := NewGameObject()
	b := NewGameObject()
	assert.NotEqual(t, a.ID(), b.ID())
	assert.Equal(t, uint64(42), NewGameObject(WithID(42)).ID())
}

func TestAddChildLinksTransforms(t *testing.T) {
	parent := NewGameObject(WithPosition(1, 0, 0))
	child := NewGameObject(WithPosition(0, 2, 0))
	parent.AddChild(child)

	assert.Same(t, parent, child.Parent())
	assert.Same(t, parent.Transform(), child.Transform().Parent())
	assertVec3Near(t, mgl32.Vec3{1, 2, 0}, child.Transform().WorldPosition())
}

func TestAddChildReparents(t *testing.T) {
	first := NewGameObject()
	second := NewGameObject()
	child := NewGameObject()

	first.AddChild(child)
	second.AddChild(child)

	assert.Empty(t, first.Children())
	assert.Len(t, second.Children(), 1)
	assert.Same(t, second, child.Parent())
}

func TestReparentedSubtreeFollowsNewParent(t *testing.T) {
	a := NewGameObject(WithPosition(10, 0, 0))
	b := NewGameObject()
	mid := NewGameObject()
	leaf := NewGameObject()
	a.AddChild(mid)
	mid.AddChild(leaf)

	for frame := 0; frame < 3; frame++ {
		a.InputAll(0)
		b.InputAll(0)
		assertVec3Near(t, mgl32.Vec3{10, 0, 0}, leaf.Transform().WorldPosition())
	}

	b.AddChild(mid)
	a.InputAll(0)
	b.InputAll(0)
	assertVec3Near(t, mgl32.Vec3{}, leaf.Transform().WorldPosition())

	assert.True(t, b.RemoveChild(mid))
	mid.Transform().SetPosition(mgl32.Vec3{0, 4, 0})
	mid.InputAll(0)
	assertVec3Near(t, mgl32.Vec3{0, 4, 0}, leaf.Transform().WorldPosition())
}

func TestAddChildRejectsCycles(t *testing.T) {
	root := NewGameObject()
	mid := NewGameObject()
	leaf := NewGameObject()
	root.AddChild(mid)
	mid.AddChild(leaf)

	assert.Panics(t, func() { leaf.AddChild(root) })
	assert.Panics(t, func() { mid.AddChild(mid) })
}

func TestRemoveChild(t *testing.T) {
	parent := NewGameObject(WithPosition(5, 0, 0))
	child := NewGameObject()
	parent.AddChild(child)

	assert.True(t, parent.RemoveChild(child))
	assert.Nil(t, child.Parent())
	assert.Nil(t, child.Transform().Parent())
	assert.Equal(t, mgl32.Vec3{0, 0, 0}, child.Transform().WorldPosition())

	assert.False(t, parent.RemoveChild(child))
}

func TestInputAllCommitsTransforms(t *testing.T) {
	root := NewGameObject()
	child := NewGameObject()
	root.AddChild(child)

	root.InputAll(0)
	root.InputAll(0)
	assert.False(t, child.Transform().HasChanged())

	root.Transform().SetPosition(mgl32.Vec3{0, 1, 0})
	assert.True(t, child.Transform().HasChanged())

	root.InputAll(0)
	assert.False(t, child.Transform().HasChanged())
}

func TestRenderAllStopsOnError(t *testing.T) {
	var log []string
	boom := errors.New("boom")
	root := NewGameObject(WithComponent(&recordingComponent{tag: "root", log: &log, renderErr: boom}))
	root.AddChild(NewGameObject(WithComponent(&recordingComponent{tag: "child", log: &log})))

	err := root.RenderAll(nil, shader.Pass{})
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, []string{"render:root"}, log)
}

func TestCollectAll(t *testing.T) {
	l1 := light.NewDirectionalLight()
	l2 := light.NewPointLight()
	root := NewGameObject(WithComponent(&lightComponent{l: l1}))
	root.AddChild(NewGameObject(WithComponent(&lightComponent{l: l2})))
	root.AddChild(NewGameObject(WithEnabled(false), WithComponent(&lightComponent{l: light.NewSpotLight()})))

	r := &registrar{}
	root.CollectAll(r)
	assert.Equal(t, []light.Light{l1, l2}, r.lights)
}

func TestComponentOwner(t *testing.T) {
	c := &lightComponent{}
	assert.Nil(t, c.Transform())

	obj := NewGameObject(WithComponent(c))
	assert.Same(t, obj, c.Owner())
	assert.Same(t, obj.Transform(), c.Transform())
	assert.Len(t, obj.Components(), 1)
}
