package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Carmen-Shannon/oxy-forward/engine/camera"
	"github.com/Carmen-Shannon/oxy-forward/engine/component"
	"github.com/Carmen-Shannon/oxy-forward/engine/config"
	"github.com/Carmen-Shannon/oxy-forward/engine/game_object"
	"github.com/Carmen-Shannon/oxy-forward/engine/profiler"
	"github.com/Carmen-Shannon/oxy-forward/engine/renderer"
	"github.com/Carmen-Shannon/oxy-forward/engine/renderer/device"
	"github.com/Carmen-Shannon/oxy-forward/engine/scene"
	"github.com/Carmen-Shannon/oxy-forward/engine/window"
)

// recordingScene logs the frame phases of a scene.
type recordingScene struct {
	scene.Scene
	log *[]string
}

func newRecordingScene(name string, log *[]string) *recordingScene {
	return &recordingScene{Scene: scene.NewScene(name, nil), log: log}
}

func (s *recordingScene) Input(delta float32) {
	*s.log = append(*s.log, s.Name()+".input")
	s.Scene.Input(delta)
}

func (s *recordingScene) Update(delta float32) {
	*s.log = append(*s.log, s.Name()+".update")
	s.Scene.Update(delta)
}

func (s *recordingScene) Render() {
	*s.log = append(*s.log, s.Name()+".render")
	s.Scene.Render()
}

// fakeWindow stays open for a fixed number of polls.
type fakeWindow struct {
	polls, swaps, frames int
	onResize             func(width, height int)
}

var _ window.Window = &fakeWindow{}

func (w *fakeWindow) Input() window.Input { return nil }
func (w *fakeWindow) SetResizeCallback(callback func(width, height int)) {
	w.onResize = callback
}
func (w *fakeWindow) IsRunning() bool      { return w.polls < w.frames }
func (w *fakeWindow) PollEvents()          { w.polls++ }
func (w *fakeWindow) SwapBuffers()         { w.swaps++ }
func (w *fakeWindow) Close() error         { return nil }
func (w *fakeWindow) Title() string        { return "test" }
func (w *fakeWindow) Width() int           { return 640 }
func (w *fakeWindow) Height() int          { return 480 }
func (w *fakeWindow) AspectRatio() float32 { return 640.0 / 480.0 }

func renderedScene(dev device.Device) scene.Scene {
	r := renderer.NewRenderingEngine(dev)
	s := scene.NewScene("main", r)
	s.Add(game_object.NewGameObject(game_object.WithComponent(component.NewCameraComponent(camera.NewCamera()))))
	return s
}

func countOps(calls []device.Call, op string) int {
	n := 0
	for _, c := range calls {
		if c.Op == op {
			n++
		}
	}
	return n
}

func TestStepRunsWholeTicksAndKeepsRemainder(t *testing.T) {
	var log []string
	e := NewEngine(WithTickRate(10), WithScene(0, newRecordingScene("a", &log)))

	assert.Equal(t, 0, e.Step(50*time.Millisecond))
	assert.Equal(t, []string{"a.render"}, log)

	log = nil
	assert.Equal(t, 1, e.Step(60*time.Millisecond))
	assert.Equal(t, []string{"a.input", "a.update", "a.render"}, log)

	log = nil
	assert.Equal(t, 2, e.Step(190*time.Millisecond))
	assert.Equal(t, []string{"a.input", "a.update", "a.input", "a.update", "a.render"}, log)
}

func TestStepClampsCatchUp(t *testing.T) {
	ticks := 0
	e := NewEngine(WithTickRate(100), WithMaxStepsPerFrame(3))
	e.SetTickCallback(func(dt float32) {
		assert.InDelta(t, 0.01, dt, 1e-6)
		ticks++
	})

	assert.Equal(t, 3, e.Step(time.Second))
	assert.Equal(t, 3, ticks)

	// The backlog beyond the maximum was dropped.
	assert.Equal(t, 0, e.Step(5*time.Millisecond))
}

func TestScenesRunInKeyOrderAndSkipInactive(t *testing.T) {
	var log []string
	back := newRecordingScene("back", &log)
	front := newRecordingScene("front", &log)
	hidden := newRecordingScene("hidden", &log)
	hidden.SetActive(false)

	e := NewEngine(WithTickRate(10))
	e.AddScene(5, front)
	e.AddScene(-1, back)
	e.AddScene(2, hidden)

	e.Step(100 * time.Millisecond)
	assert.Equal(t, []string{
		"back.input", "back.update", "front.input", "front.update",
		"back.render", "front.render",
	}, log)

	e.RemoveScene(5)
	assert.Nil(t, e.Scene(5))
	assert.Len(t, e.Scenes(), 2)
	assert.Same(t, hidden, e.Scene(2))
}

func TestRenderCallbackReceivesFrameTime(t *testing.T) {
	var got float32
	e := NewEngine()
	e.SetRenderCallback(func(dt float32) { got = dt })
	e.Step(25 * time.Millisecond)
	assert.InDelta(t, 0.025, got, 1e-6)
}

func TestWithConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Engine.TickRate = 50
	cfg.Engine.MaxStepsPerFrame = 0

	e := NewEngine(WithConfig(cfg))
	assert.Equal(t, 20*time.Millisecond, e.TickRate())
	assert.Equal(t, 1, e.Step(time.Second))

	e.SetTickRate(0)
	assert.Equal(t, time.Second/DefaultTickRate, e.TickRate())
}

func TestStepRendersThroughRenderingEngine(t *testing.T) {
	dev := device.NewDevice(device.BackendTypeHeadless)
	e := NewEngine(WithScene(0, renderedScene(dev)))
	dev.ResetCalls()

	e.Step(0)
	e.Step(0)
	assert.Equal(t, 2, countOps(dev.Calls(), "Clear"))
}

func TestRunPresentsEachFrameAndResizes(t *testing.T) {
	dev := device.NewDevice(device.BackendTypeHeadless)
	w := &fakeWindow{frames: 3}
	e := NewEngine(WithWindow(w), WithScene(0, renderedScene(dev)))
	require.NotNil(t, w.onResize)
	dev.ResetCalls()

	e.Run()

	assert.Equal(t, 3, w.swaps)
	calls := dev.Calls()
	assert.Equal(t, 3, countOps(calls, "Clear"))
	require.Equal(t, "Viewport", calls[0].Op)
	assert.Equal(t, []any{int32(640), int32(480)}, calls[0].Args)

	select {
	case <-e.Done():
	default:
		t.Fatal("engine did not quit after the window closed")
	}

	dev.ResetCalls()
	w.onResize(800, 600)
	assert.Equal(t, 1, countOps(dev.Calls(), "Viewport"))
}

func TestRunReraisesPanicAfterClosingDone(t *testing.T) {
	dev := device.NewDevice(device.BackendTypeHeadless)
	// No camera: rendering panics.
	s := scene.NewScene("broken", renderer.NewRenderingEngine(dev))
	w := &fakeWindow{frames: 10}
	e := NewEngine(WithWindow(w), WithScene(0, s))

	assert.Panics(t, e.Run)
	assert.Equal(t, 1, w.polls)
	assert.Equal(t, 0, w.swaps)
	_, open := <-e.Done()
	assert.False(t, open)
}

func TestQuitStopsRun(t *testing.T) {
	w := &fakeWindow{frames: 100}
	e := NewEngine(WithWindow(w))
	e.SetTickCallback(func(float32) {})
	e.SetRenderCallback(func(float32) {
		if w.polls == 2 {
			e.Quit()
		}
	})

	e.Run()
	assert.Equal(t, 2, w.swaps)
	assert.NotPanics(t, e.Quit)
}

func TestRunWithoutWindowPanics(t *testing.T) {
	assert.PanicsWithValue(t, "engine: Run needs a window", NewEngine().Run)
}

func TestProfilerCountsStepsAndFrames(t *testing.T) {
	now := time.Unix(0, 0)
	p := profiler.NewProfiler(
		profiler.WithClock(func() time.Time { return now }),
		profiler.WithLogger(nil),
	)
	e := NewEngine(WithTickRate(10), WithProfiler(p), WithProfiling(true))
	assert.Same(t, p, e.Profiler())

	e.Step(250 * time.Millisecond)
	now = now.Add(time.Second)
	e.Step(100 * time.Millisecond)

	stats := p.Last()
	assert.Equal(t, 2, stats.Frames)
	assert.Equal(t, 3, stats.Steps)
}
