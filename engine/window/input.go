package window

import (
	"sync"

	"github.com/go-gl/mathgl/mgl32"
)

// Input is the per-frame keyboard and mouse state read by components. Key and button
// codes are the values in the common package. Pressed and Released report edges that
// happened since the previous frame; Down reports the held state.
type Input interface {
	// KeyDown reports whether key is held.
	KeyDown(key int) bool

	// KeyPressed reports whether key went down this frame.
	KeyPressed(key int) bool

	// KeyReleased reports whether key went up this frame.
	KeyReleased(key int) bool

	// MouseDown reports whether button is held.
	MouseDown(button int) bool

	// MousePressed reports whether button went down this frame.
	MousePressed(button int) bool

	// MouseReleased reports whether button went up this frame.
	MouseReleased(button int) bool

	// CursorPosition returns the cursor position in window pixels, origin top left.
	//
	// Returns:
	//   - mgl32.Vec2: the cursor position
	CursorPosition() mgl32.Vec2

	// SetCursorPosition moves the cursor.
	//
	// Parameters:
	//   - pos: the new position in window pixels
	SetCursorPosition(pos mgl32.Vec2)

	// CursorVisible reports whether the cursor is shown.
	CursorVisible() bool

	// SetCursorVisible shows or hides the cursor.
	//
	// Parameters:
	//   - visible: true to show the cursor
	SetCursorVisible(visible bool)

	// Center returns the centre of the window in pixels.
	//
	// Returns:
	//   - mgl32.Vec2: half the window size
	Center() mgl32.Vec2
}

// InputState is an Input that is fed by window events.
type InputState interface {
	Input

	// KeyEvent records a key transition.
	KeyEvent(key int, down bool)

	// MouseButtonEvent records a mouse button transition.
	MouseButtonEvent(button int, down bool)

	// CursorEvent records a cursor move.
	CursorEvent(x, y float32)

	// Resize records the window size used by Center.
	Resize(width, height int)

	// EndFrame clears the edges recorded since the previous call.
	EndFrame()
}

// inputState is the implementation of the InputState interface.
type inputState struct {
	mu sync.RWMutex

	keys         map[int]bool
	keyEdges     map[int]bool
	buttons      map[int]bool
	buttonEdges  map[int]bool
	cursor       mgl32.Vec2
	width        int
	height       int
	cursorHidden bool

	onMoveCursor func(x, y float32)
	onShowCursor func(visible bool)
}

var _ InputState = &inputState{}

// InputBuilderOption is a functional option for configuring an inputState.
type InputBuilderOption func(s *inputState)

// WithInputSize sets the initial window size used by Center.
//
// Parameters:
//   - width: window width in pixels
//   - height: window height in pixels
//
// Returns:
//   - InputBuilderOption: option function to apply
func WithInputSize(width, height int) InputBuilderOption {
	return func(s *inputState) {
		s.width = width
		s.height = height
	}
}

// WithCursorHandlers sets the functions that move and show the platform cursor.
//
// Parameters:
//   - move: called by SetCursorPosition
//   - show: called by SetCursorVisible
//
// Returns:
//   - InputBuilderOption: option function to apply
func WithCursorHandlers(move func(x, y float32), show func(visible bool)) InputBuilderOption {
	return func(s *inputState) {
		s.onMoveCursor = move
		s.onShowCursor = show
	}
}

// NewInputState creates an InputState with nothing held.
//
// Parameters:
//   - options: functional options to configure the state
//
// Returns:
//   - InputState: the new state
func NewInputState(options ...InputBuilderOption) InputState {
	s := &inputState{
		keys:        make(map[int]bool),
		keyEdges:    make(map[int]bool),
		buttons:     make(map[int]bool),
		buttonEdges: make(map[int]bool),
	}
	for _, opt := range options {
		opt(s)
	}
	return s
}

func (s *inputState) KeyDown(key int) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.keys[key]
}

func (s *inputState) KeyPressed(key int) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	down, ok := s.keyEdges[key]
	return ok && down
}

func (s *inputState) KeyReleased(key int) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	down, ok := s.keyEdges[key]
	return ok && !down
}

func (s *inputState) MouseDown(button int) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.buttons[button]
}

func (s *inputState) MousePressed(button int) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	down, ok := s.buttonEdges[button]
	return ok && down
}

func (s *inputState) MouseReleased(button int) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	down, ok := s.buttonEdges[button]
	return ok && !down
}

func (s *inputState) CursorPosition() mgl32.Vec2 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cursor
}

func (s *inputState) SetCursorPosition(pos mgl32.Vec2) {
	s.mu.Lock()
	s.cursor = pos
	move := s.onMoveCursor
	s.mu.Unlock()

	if move != nil {
		move(pos.X(), pos.Y())
	}
}

func (s *inputState) CursorVisible() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return !s.cursorHidden
}

func (s *inputState) SetCursorVisible(visible bool) {
	s.mu.Lock()
	s.cursorHidden = !visible
	show := s.onShowCursor
	s.mu.Unlock()

	if show != nil {
		show(visible)
	}
}

func (s *inputState) Center() mgl32.Vec2 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return mgl32.Vec2{float32(s.width) / 2, float32(s.height) / 2}
}

func (s *inputState) KeyEvent(key int, down bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.keys[key] == down {
		return
	}
	s.keys[key] = down
	s.keyEdges[key] = down
}

func (s *inputState) MouseButtonEvent(button int, down bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.buttons[button] == down {
		return
	}
	s.buttons[button] = down
	s.buttonEdges[button] = down
}

func (s *inputState) CursorEvent(x, y float32) {
	s.mu.Lock()
	s.cursor = mgl32.Vec2{x, y}
	s.mu.Unlock()
}

func (s *inputState) Resize(width, height int) {
	s.mu.Lock()
	s.width = width
	s.height = height
	s.mu.Unlock()
}

func (s *inputState) EndFrame() {
	s.mu.Lock()
	clear(s.keyEdges)
	clear(s.buttonEdges)
	s.mu.Unlock()
}
