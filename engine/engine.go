package engine

import (
	"fmt"
	"log"
	"sort"
	"sync"
	"time"

	"github.com/Carmen-Shannon/oxy-forward/engine/profiler"
	"github.com/Carmen-Shannon/oxy-forward/engine/scene"
	"github.com/Carmen-Shannon/oxy-forward/engine/window"
)

// Defaults for the fixed update loop.
const (
	DefaultTickRate         = 60
	DefaultMaxStepsPerFrame = 5
)

// engine implements the Engine interface.
// Runs input, update and render for every active scene on the thread that owns the
// window's GL context.
type engine struct {
	mu sync.Mutex

	quitChannel chan struct{}
	quitOnce    sync.Once // Ensures quitChannel is only closed once

	window window.Window

	profiler         *profiler.Profiler
	profilingEnabled bool

	engineTickRate   time.Duration
	maxStepsPerFrame int
	accumulator      time.Duration
	tickCallback     func(deltaTime float32)
	renderCallback   func(deltaTime float32)

	scenes map[int]scene.Scene

	renderFrameLimit time.Duration // minimum frame duration; 0 = uncapped
	now              func() time.Time
}

// Engine is the main entry point for the engine.
// It owns the main loop: poll window events, run fixed update steps, render every
// active scene and present the frame.
type Engine interface {
	// Window returns the underlying window, or nil for an engine driven through Step.
	//
	// Returns:
	//   - window.Window: the window instance
	Window() window.Window

	// EnableProfiler enables performance profiling output to the log.
	EnableProfiler()

	// DisableProfiler disables performance profiling output.
	DisableProfiler()

	// Profiler returns the engine's profiler.
	//
	// Returns:
	//   - *profiler.Profiler: the profiler, ticked once per frame while profiling is enabled
	Profiler() *profiler.Profiler

	// SetTickRate sets the number of fixed input and update steps per second.
	//
	// Parameters:
	//   - fps: target steps per second (defaults to 60 if <= 0)
	SetTickRate(fps float64)

	// TickRate returns the duration of one fixed step.
	//
	// Returns:
	//   - time.Duration: the step duration
	TickRate() time.Duration

	// SetTickCallback registers the function called after the scenes update in each step.
	// Use this for game logic that lives outside the scene tree.
	//
	// Parameters:
	//   - callback: function receiving the fixed step in seconds
	SetTickCallback(callback func(deltaTime float32))

	// SetRenderCallback registers the function called after the scenes render each frame.
	//
	// Parameters:
	//   - callback: function receiving the frame time in seconds
	SetRenderCallback(callback func(deltaTime float32))

	// SetRenderFrameLimit sets an optional render frame rate cap in frames per second.
	// Pass 0 to uncap the render loop (default).
	//
	// Parameters:
	//   - fps: maximum render frames per second (0 = uncapped)
	SetRenderFrameLimit(fps float64)

	// AddScene registers a scene at the given z-index key.
	// Scenes are updated and rendered in ascending key order.
	//
	// Parameters:
	//   - key: the z-index determining order (lower runs first)
	//   - s: the Scene to register
	AddScene(key int, s scene.Scene)

	// RemoveScene removes the scene at the given z-index key.
	//
	// Parameters:
	//   - key: the z-index of the scene to remove
	RemoveScene(key int)

	// Scene retrieves the scene registered at the given z-index key.
	// Returns nil if no scene exists at that key.
	//
	// Parameters:
	//   - key: the z-index of the scene to retrieve
	//
	// Returns:
	//   - scene.Scene: the scene at the key, or nil if not found
	Scene(key int) scene.Scene

	// Scenes returns a copy of all registered scenes keyed by z-index.
	//
	// Returns:
	//   - map[int]scene.Scene: a copy of the scenes map
	Scenes() map[int]scene.Scene

	// Step advances the engine by elapsed wall time. As many fixed steps as fit in the
	// accumulated time run, at most the configured maximum per frame, and then every
	// active scene renders once. Time the maximum leaves over is dropped.
	//
	// Parameters:
	//   - elapsed: wall time since the previous frame
	//
	// Returns:
	//   - int: the number of fixed steps run
	Step(elapsed time.Duration) int

	// Run runs the main loop on the calling thread until the window closes or Quit is
	// called. The calling thread must own the window's GL context. A panic inside the
	// loop is logged, Done is closed, and the panic is then re-raised to the caller.
	Run()

	// Quit stops the main loop after the current frame.
	// Safe to call multiple times; subsequent calls are no-ops.
	Quit()

	// Done returns a channel that is closed once the engine has quit.
	//
	// Returns:
	//   - <-chan struct{}: the quit channel
	Done() <-chan struct{}
}

var _ Engine = &engine{}

// NewEngine creates a new Engine instance with the provided options.
// Options are applied directly to the engine struct via the option-builder pattern.
// When a window is set, its resize callback resizes every scene's rendering engine.
//
// Parameters:
//   - options: functional options for engine configuration (profiling, tick rate, etc.)
//
// Returns:
//   - Engine: the newly created engine
func NewEngine(options ...EngineBuilderOption) Engine {
	e := &engine{
		quitChannel:      make(chan struct{}),
		scenes:           make(map[int]scene.Scene),
		profiler:         profiler.NewProfiler(),
		engineTickRate:   time.Second / DefaultTickRate,
		maxStepsPerFrame: DefaultMaxStepsPerFrame,
		now:              time.Now,
	}

	for _, opt := range options {
		opt(e)
	}

	if e.window != nil {
		e.window.SetResizeCallback(e.resize)
	}

	return e
}

func (e *engine) Window() window.Window {
	return e.window
}

func (e *engine) resize(width, height int) {
	for _, s := range e.activeScenes() {
		if r := s.Renderer(); r != nil {
			r.Resize(width, height)
		}
	}
}

func (e *engine) Run() {
	if e.window == nil {
		panic("engine: Run needs a window")
	}

	defer e.signalQuit()
	defer func() {
		if r := recover(); r != nil {
			log.Printf("[Engine] main loop aborted by panic: %v", r)
			panic(r)
		}
	}()

	e.resize(e.window.Width(), e.window.Height())

	lastFrame := e.now()
	for e.window.IsRunning() {
		select {
		case <-e.quitChannel:
			return
		default:
		}

		e.window.PollEvents()

		frameStart := e.now()
		e.Step(frameStart.Sub(lastFrame))
		lastFrame = frameStart

		e.window.SwapBuffers()

		// Frame rate limiting
		if e.renderFrameLimit > 0 {
			if remaining := e.renderFrameLimit - e.now().Sub(frameStart); remaining > 0 {
				time.Sleep(remaining)
			}
		}
	}
}

func (e *engine) Step(elapsed time.Duration) int {
	active := e.activeScenes()

	e.mu.Lock()
	e.accumulator += elapsed
	tick := e.engineTickRate
	maxSteps := e.maxStepsPerFrame
	e.mu.Unlock()

	dt := float32(tick.Seconds())
	steps := 0
	for steps < maxSteps && e.consume(tick) {
		for _, s := range active {
			s.Input(dt)
			s.Update(dt)
		}
		if e.tickCallback != nil {
			e.tickCallback(dt)
		}
		if e.profiler != nil {
			e.profiler.Step()
		}
		steps++
	}

	e.mu.Lock()
	if e.accumulator >= tick {
		dropped := e.accumulator / tick
		e.accumulator %= tick
		if e.profilingEnabled {
			log.Printf("[Engine] dropped %d update steps", dropped)
		}
	}
	e.mu.Unlock()

	for _, s := range active {
		s.Render()
	}

	if e.renderCallback != nil {
		e.renderCallback(float32(elapsed.Seconds()))
	}

	if e.profilingEnabled && e.profiler != nil {
		e.profiler.Tick()
	}
	return steps
}

// consume removes one step from the accumulator if a whole step is available.
func (e *engine) consume(tick time.Duration) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.accumulator < tick {
		return false
	}
	e.accumulator -= tick
	return true
}

// activeScenes returns the active scenes in ascending key order.
func (e *engine) activeScenes() []scene.Scene {
	e.mu.Lock()
	defer e.mu.Unlock()

	keys := make([]int, 0, len(e.scenes))
	for k := range e.scenes {
		keys = append(keys, k)
	}
	sort.Ints(keys)

	var active []scene.Scene
	for _, k := range keys {
		if s := e.scenes[k]; s.Active() {
			active = append(active, s)
		}
	}
	return active
}

// Quit signals the main loop to stop.
// Safe to call multiple times; subsequent calls are no-ops due to sync.Once.
func (e *engine) Quit() {
	e.signalQuit()
}

// signalQuit closes the quit channel.
// Uses sync.Once to ensure the channel is only closed once.
func (e *engine) signalQuit() {
	e.quitOnce.Do(func() {
		close(e.quitChannel)
	})
}

func (e *engine) Done() <-chan struct{} {
	return e.quitChannel
}

// EnableProfiler enables performance profiling output to the log.
func (e *engine) EnableProfiler() {
	e.profilingEnabled = true
}

// DisableProfiler disables performance profiling output.
func (e *engine) DisableProfiler() {
	e.profilingEnabled = false
}

func (e *engine) Profiler() *profiler.Profiler {
	return e.profiler
}

// SetTickRate sets the number of fixed steps per second.
// Takes effect from the next Step.
func (e *engine) SetTickRate(fps float64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.engineTickRate = tickDuration(fps)
}

func (e *engine) TickRate() time.Duration {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.engineTickRate
}

// SetTickCallback registers the function called each fixed step.
func (e *engine) SetTickCallback(callback func(deltaTime float32)) {
	e.tickCallback = callback
}

// SetRenderCallback registers the function called each render frame.
func (e *engine) SetRenderCallback(callback func(deltaTime float32)) {
	e.renderCallback = callback
}

// SetRenderFrameLimit sets an optional render frame rate cap.
// Pass 0 to uncap the render loop.
func (e *engine) SetRenderFrameLimit(fps float64) {
	e.renderFrameLimit = frameDuration(fps)
}

func (e *engine) AddScene(key int, s scene.Scene) {
	if s == nil {
		panic(fmt.Sprintf("engine: nil scene at key %d", key))
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.scenes[key] = s
}

func (e *engine) RemoveScene(key int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	delete(e.scenes, key)
}

func (e *engine) Scene(key int) scene.Scene {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.scenes[key]
}

func (e *engine) Scenes() map[int]scene.Scene {
	e.mu.Lock()
	defer e.mu.Unlock()
	cp := make(map[int]scene.Scene, len(e.scenes))
	for k, v := range e.scenes {
		cp[k] = v
	}
	return cp
}

// tickDuration converts steps per second to a step duration, treating values <= 0 as
// the default rate.
func tickDuration(fps float64) time.Duration {
	if fps <= 0 {
		fps = DefaultTickRate
	}
	return time.Duration(float64(time.Second) / fps)
}

// frameDuration converts a frame cap to a minimum frame duration; 0 means uncapped.
func frameDuration(fps float64) time.Duration {
	if fps <= 0 {
		return 0
	}
	return time.Duration(float64(time.Second) / fps)
}
