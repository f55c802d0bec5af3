package window

import (
	"fmt"
)

// Window defines the public-facing interface for an OS window that owns an OpenGL 4.1
// core context. All methods must be called from the thread that created the window.
type Window interface {
	// Input returns the keyboard and mouse state fed by this window's events.
	//
	// Returns:
	//   - Input: the input state
	Input() Input

	// SetResizeCallback sets the function invoked when the framebuffer is resized.
	//
	// Parameters:
	//   - callback: receives the new framebuffer width and height in pixels
	SetResizeCallback(callback func(width, height int))

	// IsRunning returns whether the window is still open.
	//
	// Returns:
	//   - bool: false once the user closed the window or Close was called
	IsRunning() bool

	// PollEvents ends the current input frame and processes pending window events.
	PollEvents()

	// SwapBuffers presents the back buffer.
	SwapBuffers()

	// Close destroys the window and terminates the platform layer.
	//
	// Returns:
	//   - error: error if the window was never created
	Close() error

	// Title returns the window title.
	Title() string

	// Width returns the framebuffer width in pixels.
	Width() int

	// Height returns the framebuffer height in pixels.
	Height() int

	// AspectRatio returns width divided by height, or 1 for an empty framebuffer.
	AspectRatio() float32
}

// engineWindow holds the platform-independent window state.
type engineWindow struct {
	title string

	maxWidth int

	maxHeight int

	minWidth int

	minHeight int

	width int

	height int

	vsync bool

	input InputState

	internalWindow any

	onResize func(width, height int)
}

var _ Window = &engineWindow{}

// NewWindow creates a new Window with the specified options and makes its OpenGL
// context current on the calling thread. Panics if the platform window cannot be created.
//
// Parameters:
//   - options: functional options to configure the window
//
// Returns:
//   - Window: the open window
func NewWindow(options ...WindowBuilderOption) Window {
	w := &engineWindow{
		title:     "oxy-forward",
		maxWidth:  3840,
		maxHeight: 2160,
		minWidth:  320,
		minHeight: 200,
		width:     1280,
		height:    720,
		vsync:     true,
	}
	for _, opt := range options {
		opt(w)
	}
	if err := newPlatformWindow(w); err != nil {
		panic(fmt.Sprintf("window: failed to create platform window: %v", err))
	}
	return w
}

func (w *engineWindow) Input() Input {
	return w.input
}

func (w *engineWindow) SetResizeCallback(callback func(width, height int)) {
	w.onResize = callback
}

func (w *engineWindow) IsRunning() bool {
	return platformIsRunningCheck(w)
}

func (w *engineWindow) PollEvents() {
	w.input.EndFrame()
	platformProcessMessages(w)
}

func (w *engineWindow) SwapBuffers() {
	platformSwapBuffers(w)
}

func (w *engineWindow) Close() error {
	return platformCloseWindow(w)
}

func (w *engineWindow) Title() string {
	return w.title
}

func (w *engineWindow) Width() int {
	return w.width
}

func (w *engineWindow) Height() int {
	return w.height
}

func (w *engineWindow) AspectRatio() float32 {
	if w.width <= 0 || w.height <= 0 {
		return 1
	}
	return float32(w.width) / float32(w.height)
}

// resized records a framebuffer size change and notifies the resize callback.
func (w *engineWindow) resized(width, height int) {
	w.width = width
	w.height = height
	w.input.Resize(width, height)
	if w.onResize != nil {
		w.onResize(width, height)
	}
}
