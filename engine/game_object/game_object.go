package game_object

import (
	"fmt"
	"sync/atomic"

	"github.com/Carmen-Shannon/oxy-forward/engine/camera"
	"github.com/Carmen-Shannon/oxy-forward/engine/light"
	"github.com/Carmen-Shannon/oxy-forward/engine/renderer/shader"
	"github.com/Carmen-Shannon/oxy-forward/engine/transform"
)

// nextID is the source of automatically assigned object IDs.
var nextID atomic.Uint64

// Registrar receives the lights and cameras found while collecting a scene.
type Registrar interface {
	// AddLight registers a light for the current frame.
	AddLight(l light.Light)

	// AddCamera registers a camera. The most recently added camera is the main camera.
	AddCamera(c camera.Camera)
}

type gameObject struct {
	id      uint64
	name    string
	enabled atomic.Bool

	transform  *transform.Transform
	parent     *gameObject
	children   []*gameObject
	components []Component
}

// GameObject defines the interface for a node of the scene tree. A node owns its
// children and components; its parent link is a back-reference that does not own.
// Every traversal visits the node's components first and then its children in the
// order they were added. Disabled nodes are skipped together with their subtree.
type GameObject interface {
	// ID returns the object's unique identifier.
	//
	// Returns:
	//   - uint64: the object ID
	ID() uint64

	// Name returns the object's name.
	//
	// Returns:
	//   - string: the name, possibly empty
	Name() string

	// Enabled returns whether this object and its subtree take part in traversals.
	//
	// Returns:
	//   - bool: true if enabled
	Enabled() bool

	// SetEnabled sets whether the object takes part in traversals.
	//
	// Parameters:
	//   - enabled: true to enable
	SetEnabled(enabled bool)

	// Transform returns the object's transform. Its parent is the parent object's
	// transform.
	//
	// Returns:
	//   - *transform.Transform: the transform
	Transform() *transform.Transform

	// Parent returns the parent object, or nil for a root.
	//
	// Returns:
	//   - GameObject: the parent or nil
	Parent() GameObject

	// Children returns the direct children in insertion order.
	//
	// Returns:
	//   - []GameObject: the children
	Children() []GameObject

	// AddChild moves child beneath this object, detaching it from any previous parent.
	// Panics if child is this object or one of its ancestors, since the tree would
	// become a cycle.
	//
	// Parameters:
	//   - child: the object to attach
	//
	// Returns:
	//   - GameObject: this object, for chaining
	AddChild(child GameObject) GameObject

	// RemoveChild detaches a direct child. The child's transform becomes a root.
	//
	// Parameters:
	//   - child: the child to detach
	//
	// Returns:
	//   - bool: false if child was not a direct child
	RemoveChild(child GameObject) bool

	// AddComponent attaches a component to this object.
	//
	// Parameters:
	//   - c: the component
	//
	// Returns:
	//   - GameObject: this object, for chaining
	AddComponent(c Component) GameObject

	// Components returns the attached components in insertion order.
	//
	// Returns:
	//   - []Component: the components
	Components() []Component

	// InputAll commits every transform in the subtree and then feeds input to each
	// component. Committing first means HasChanged compares against the state left by
	// the previous frame.
	//
	// Parameters:
	//   - delta: seconds since the previous step
	InputAll(delta float32)

	// UpdateAll advances every component in the subtree.
	//
	// Parameters:
	//   - delta: seconds since the previous step
	UpdateAll(delta float32)

	// RenderAll draws every component in the subtree with the given program and pass.
	//
	// Parameters:
	//   - program: the bound program
	//   - pass: the current pass
	//
	// Returns:
	//   - error: the first component error
	RenderAll(program shader.Program, pass shader.Pass) error

	// CollectAll lets every component in the subtree register lights and cameras.
	//
	// Parameters:
	//   - r: the registrar
	CollectAll(r Registrar)

	// Release releases the resources held by every component in the subtree.
	Release()
}

var _ GameObject = &gameObject{}

// NewGameObject creates a new GameObject configured with the given options.
// Objects are enabled and receive a unique ID unless WithID is used.
//
// Parameters:
//   - options: functional options to configure the object
//
// Returns:
//   - GameObject: the newly created object
func NewGameObject(options ...GameObjectBuilderOption) GameObject {
	obj := &gameObject{
		id:        nextID.Add(1),
		transform: transform.New(),
	}
	obj.enabled.Store(true)
	for _, option := range options {
		option(obj)
	}
	return obj
}

func (g *gameObject) ID() uint64 {
	return g.id
}

func (g *gameObject) Name() string {
	return g.name
}

func (g *gameObject) Enabled() bool {
	return g.enabled.Load()
}

func (g *gameObject) SetEnabled(enabled bool) {
	g.enabled.Store(enabled)
}

func (g *gameObject) Transform() *transform.Transform {
	return g.transform
}

func (g *gameObject) Parent() GameObject {
	if g.parent == nil {
		return nil
	}
	return g.parent
}

func (g *gameObject) Children() []GameObject {
	out := make([]GameObject, len(g.children))
	for i, c := range g.children {
		out[i] = c
	}
	return out
}

func (g *gameObject) AddChild(child GameObject) GameObject {
	c, ok := child.(*gameObject)
	if !ok || c == nil {
		panic(fmt.Sprintf("game_object: cannot add child of type %T", child))
	}
	for a := g; a != nil; a = a.parent {
		if a == c {
			panic(fmt.Sprintf("game_object: adding %d beneath %d would create a cycle", c.id, g.id))
		}
	}

	if c.parent != nil {
		c.parent.detach(c)
	}
	c.parent = g
	c.transform.SetParent(g.transform)
	g.children = append(g.children, c)
	return g
}

func (g *gameObject) RemoveChild(child GameObject) bool {
	c, ok := child.(*gameObject)
	if !ok || c == nil || c.parent != g {
		return false
	}
	g.detach(c)
	c.parent = nil
	c.transform.SetParent(nil)
	return true
}

func (g *gameObject) detach(c *gameObject) {
	for i, existing := range g.children {
		if existing == c {
			g.children = append(g.children[:i], g.children[i+1:]...)
			return
		}
	}
}

func (g *gameObject) AddComponent(c Component) GameObject {
	c.SetOwner(g)
	g.components = append(g.components, c)
	return g
}

func (g *gameObject) Components() []Component {
	out := make([]Component, len(g.components))
	copy(out, g.components)
	return out
}

func (g *gameObject) InputAll(delta float32) {
	if !g.Enabled() {
		return
	}
	g.transform.Commit()
	for _, c := range g.components {
		c.Input(delta)
	}
	for _, child := range g.children {
		child.InputAll(delta)
	}
}

func (g *gameObject) UpdateAll(delta float32) {
	if !g.Enabled() {
		return
	}
	for _, c := range g.components {
		c.Update(delta)
	}
	for _, child := range g.children {
		child.UpdateAll(delta)
	}
}

func (g *gameObject) RenderAll(program shader.Program, pass shader.Pass) error {
	if !g.Enabled() {
		return nil
	}
	for _, c := range g.components {
		if err := c.Render(program, pass); err != nil {
			return fmt.Errorf("object %d: %w", g.id, err)
		}
	}
	for _, child := range g.children {
		if err := child.RenderAll(program, pass); err != nil {
			return err
		}
	}
	return nil
}

func (g *gameObject) CollectAll(r Registrar) {
	if !g.Enabled() {
		return
	}
	for _, c := range g.components {
		c.Collect(r)
	}
	for _, child := range g.children {
		child.CollectAll(r)
	}
}

func (g *gameObject) Release() {
	for _, c := range g.components {
		c.Release()
	}
	for _, child := range g.children {
		child.Release()
	}
}
