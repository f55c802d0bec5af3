package scene

import (
	"sync"

	"github.com/Carmen-Shannon/oxy-forward/engine/game_object"
	"github.com/Carmen-Shannon/oxy-forward/engine/renderer"
)

// Scene manages a scene tree and the RenderingEngine that draws it. Objects added
// through the scene become children of its root and are registered by ID for later
// lookup or removal. Scenes can be hot-swapped via the Active flag to switch between
// different views or levels.
type Scene interface {
	// Name returns the scene's identifier.
	Name() string

	// SetName sets the scene's identifier.
	SetName(name string)

	// Active returns whether this scene is currently active.
	Active() bool

	// SetActive sets whether this scene is active.
	SetActive(active bool)

	// Root returns the root of the scene tree.
	Root() game_object.GameObject

	// Renderer returns the rendering engine that draws the scene.
	Renderer() renderer.RenderingEngine

	// SetRenderer replaces the scene's rendering engine.
	//
	// Parameters:
	//   - r: the new rendering engine
	SetRenderer(r renderer.RenderingEngine)

	// Count returns the number of objects registered through Add.
	//
	// Returns:
	//   - int: count of registered objects
	Count() int

	// Add attaches obj beneath the root and registers it by ID.
	//
	// Parameters:
	//   - obj: the object to add
	//
	// Returns:
	//   - uint64: the object's ID
	Add(obj game_object.GameObject) uint64

	// Get retrieves a registered object by its ID.
	// Returns nil if not found.
	//
	// Parameters:
	//   - id: the object's unique ID
	//
	// Returns:
	//   - game_object.GameObject: the object or nil
	Get(id uint64) game_object.GameObject

	// Remove detaches a registered object from the tree and forgets it. The object's
	// resources are not released.
	//
	// Parameters:
	//   - id: the object's unique ID
	//
	// Returns:
	//   - game_object.GameObject: the removed object, or nil if not found
	Remove(id uint64) game_object.GameObject

	// Clear removes every registered object and releases its resources.
	Clear()

	// Input commits transforms and feeds input to every component.
	//
	// Parameters:
	//   - delta: seconds since the previous step
	Input(delta float32)

	// Update advances every component.
	//
	// Parameters:
	//   - delta: seconds since the previous step
	Update(delta float32)

	// Render draws the scene with its rendering engine. Does nothing without one.
	Render()

	// Release releases every object in the tree.
	Release()
}

// scene is the implementation of the Scene interface.
type scene struct {
	mu sync.RWMutex

	name   string
	active bool

	root     game_object.GameObject
	r        renderer.RenderingEngine
	registry map[uint64]game_object.GameObject
}

var _ Scene = &scene{}

// NewScene creates a new, active Scene with an empty root.
//
// Parameters:
//   - name: the scene's identifier
//   - r: the rendering engine, may be nil until SetRenderer
//   - options: functional options to configure the scene
//
// Returns:
//   - Scene: the new scene
func NewScene(name string, r renderer.RenderingEngine, options ...SceneBuilderOption) Scene {
	s := &scene{
		name:     name,
		active:   true,
		root:     game_object.NewGameObject(game_object.WithName(name)),
		r:        r,
		registry: make(map[uint64]game_object.GameObject),
	}
	for _, opt := range options {
		opt(s)
	}
	return s
}

func (s *scene) Name() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.name
}

func (s *scene) SetName(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.name = name
}

func (s *scene) Active() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.active
}

func (s *scene) SetActive(active bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.active = active
}

func (s *scene) Root() game_object.GameObject {
	return s.root
}

func (s *scene) Renderer() renderer.RenderingEngine {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.r
}

func (s *scene) SetRenderer(r renderer.RenderingEngine) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.r = r
}

func (s *scene) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.registry)
}

func (s *scene) Add(obj game_object.GameObject) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.root.AddChild(obj)
	s.registry[obj.ID()] = obj
	return obj.ID()
}

func (s *scene) Get(id uint64) game_object.GameObject {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.registry[id]
}

func (s *scene) Remove(id uint64) game_object.GameObject {
	s.mu.Lock()
	defer s.mu.Unlock()

	obj, exists := s.registry[id]
	if !exists {
		return nil
	}
	delete(s.registry, id)
	if p := obj.Parent(); p != nil {
		p.RemoveChild(obj)
	}
	return obj
}

func (s *scene) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, obj := range s.registry {
		if p := obj.Parent(); p != nil {
			p.RemoveChild(obj)
		}
		obj.Release()
		delete(s.registry, id)
	}
}

func (s *scene) Input(delta float32) {
	s.root.InputAll(delta)
}

func (s *scene) Update(delta float32) {
	s.root.UpdateAll(delta)
}

func (s *scene) Render() {
	if r := s.Renderer(); r != nil {
		r.Render(s.root)
	}
}

func (s *scene) Release() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.root.Release()
	s.registry = make(map[uint64]game_object.GameObject)
}
