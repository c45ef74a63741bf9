// Package input tracks keyboard and mouse state across frames.
//
// State keeps held keys and buttons plus the edges (just pressed, just
// released) seen since the last BeginFrame. Poller feeds it from SDL.
package input

import (
	"github.com/veandco/go-sdl2/sdl"

	"github.com/Faultbox/glimmer/pkg/math"
)

// Key is an SDL virtual key code.
type Key = sdl.Keycode

// Button is an SDL mouse button index.
type Button = uint8

// Mouse buttons.
const (
	MouseLeft   Button = sdl.BUTTON_LEFT
	MouseMiddle Button = sdl.BUTTON_MIDDLE
	MouseRight  Button = sdl.BUTTON_RIGHT
)

// State is the input snapshot for one frame.
type State struct {
	keysDown        map[Key]bool
	keysPressed     map[Key]bool
	keysReleased    map[Key]bool
	buttonsDown     map[Button]bool
	buttonsPressed  map[Button]bool
	buttonsReleased map[Button]bool
	mouse           math.Vec2
	scroll          math.Vec2
	quit            bool
	resized         bool
	width, height   int
	drawW, drawH    int
}

// NewState returns an empty state.
func NewState() *State {
	return &State{
		keysDown:        make(map[Key]bool),
		keysPressed:     make(map[Key]bool),
		keysReleased:    make(map[Key]bool),
		buttonsDown:     make(map[Button]bool),
		buttonsPressed:  make(map[Button]bool),
		buttonsReleased: make(map[Button]bool),
	}
}

// BeginFrame clears the per-frame edges and the scroll accumulator.
// Held keys and buttons carry over.
func (s *State) BeginFrame() {
	clear(s.keysPressed)
	clear(s.keysReleased)
	clear(s.buttonsPressed)
	clear(s.buttonsReleased)
	s.scroll = math.Vec2{}
	s.resized = false
}

// KeyDown records a key press. Auto-repeat presses of a held key are not
// new edges.
func (s *State) KeyDown(k Key) {
	if !s.keysDown[k] {
		s.keysPressed[k] = true
	}
	s.keysDown[k] = true
}

// KeyUp records a key release.
func (s *State) KeyUp(k Key) {
	delete(s.keysDown, k)
	s.keysReleased[k] = true
}

// ButtonDown records a mouse button press.
func (s *State) ButtonDown(b Button) {
	s.buttonsDown[b] = true
	s.buttonsPressed[b] = true
}

// ButtonUp records a mouse button release.
func (s *State) ButtonUp(b Button) {
	delete(s.buttonsDown, b)
	s.buttonsReleased[b] = true
}

// MouseMove records the cursor position in window coordinates.
func (s *State) MouseMove(x, y float32) {
	s.mouse = math.Vec2{X: x, Y: y}
}

// Scroll accumulates wheel motion for this frame.
func (s *State) Scroll(dx, dy float32) {
	s.scroll = s.scroll.Add(math.Vec2{X: dx, Y: dy})
}

// Resize records new window and drawable sizes.
func (s *State) Resize(width, height, drawableW, drawableH int) {
	s.width, s.height = width, height
	s.drawW, s.drawH = drawableW, drawableH
	s.resized = true
}

// RequestQuit marks the window for closing.
func (s *State) RequestQuit() {
	s.quit = true
}

// IsKeyPressed reports whether k is held.
func (s *State) IsKeyPressed(k Key) bool { return s.keysDown[k] }

// IsKeyJustPressed reports whether k went down this frame.
func (s *State) IsKeyJustPressed(k Key) bool { return s.keysPressed[k] }

// IsKeyJustReleased reports whether k went up this frame.
func (s *State) IsKeyJustReleased(k Key) bool { return s.keysReleased[k] }

// IsMouseButtonPressed reports whether b is held.
func (s *State) IsMouseButtonPressed(b Button) bool { return s.buttonsDown[b] }

// IsMouseButtonJustPressed reports whether b went down this frame.
func (s *State) IsMouseButtonJustPressed(b Button) bool { return s.buttonsPressed[b] }

// IsMouseButtonJustReleased reports whether b went up this frame.
func (s *State) IsMouseButtonJustReleased(b Button) bool { return s.buttonsReleased[b] }

// MousePosition returns the last cursor position.
func (s *State) MousePosition() math.Vec2 { return s.mouse }

// ScrollDelta returns wheel motion accumulated this frame.
func (s *State) ScrollDelta() math.Vec2 { return s.scroll }

// QuitRequested reports whether the user asked to close the window.
func (s *State) QuitRequested() bool { return s.quit }

// Resized reports whether the window changed size this frame, and the new
// drawable size in pixels.
func (s *State) Resized() (bool, int, int) { return s.resized, s.drawW, s.drawH }

// WindowSize returns the last reported window size in screen coordinates.
func (s *State) WindowSize() (int, int) { return s.width, s.height }
