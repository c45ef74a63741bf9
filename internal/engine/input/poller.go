package input

import (
	"github.com/veandco/go-sdl2/sdl"
)

// SizeSource reports window and drawable sizes after a resize event.
type SizeSource interface {
	Size() (int, int)
	DrawableSize() (int, int)
}

// Poller drains the SDL event queue into a State.
type Poller struct {
	state  *State
	window SizeSource
}

// NewPoller returns a poller writing into state. window may be nil.
func NewPoller(state *State, window SizeSource) *Poller {
	return &Poller{state: state, window: window}
}

// Poll processes all pending events. It returns true once quit was requested.
func (p *Poller) Poll() bool {
	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		p.Handle(event)
	}
	return p.state.QuitRequested()
}

// Handle applies a single event.
func (p *Poller) Handle(event sdl.Event) {
	s := p.state

	switch e := event.(type) {
	case *sdl.QuitEvent:
		s.RequestQuit()

	case *sdl.WindowEvent:
		if e.Event == sdl.WINDOWEVENT_SIZE_CHANGED || e.Event == sdl.WINDOWEVENT_RESIZED {
			w, h := int(e.Data1), int(e.Data2)
			dw, dh := w, h
			if p.window != nil {
				dw, dh = p.window.DrawableSize()
			}
			s.Resize(w, h, dw, dh)
		}

	case *sdl.KeyboardEvent:
		if e.Type == sdl.KEYDOWN {
			s.KeyDown(e.Keysym.Sym)
		} else if e.Type == sdl.KEYUP {
			s.KeyUp(e.Keysym.Sym)
		}

	case *sdl.MouseMotionEvent:
		s.MouseMove(float32(e.X), float32(e.Y))

	case *sdl.MouseButtonEvent:
		s.MouseMove(float32(e.X), float32(e.Y))
		if e.Type == sdl.MOUSEBUTTONDOWN {
			s.ButtonDown(e.Button)
		} else if e.Type == sdl.MOUSEBUTTONUP {
			s.ButtonUp(e.Button)
		}

	case *sdl.MouseWheelEvent:
		dx, dy := float32(e.X), float32(e.Y)
		if e.Direction == sdl.MOUSEWHEEL_FLIPPED {
			dx, dy = -dx, -dy
		}
		s.Scroll(dx, dy)
	}
}
