package window

import (
	"github.com/veandco/go-sdl2/sdl"

	"github.com/Faultbox/orbitview/internal/engine/input"
)

// PollEvents drains pending SDL events into dst and returns it.
func (w *Window) PollEvents(dst []input.Event) []input.Event {
	dst = dst[:0]
	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		if e, ok := translate(event); ok {
			dst = append(dst, e)
		}
	}
	return dst
}

func translate(event sdl.Event) (input.Event, bool) {
	switch e := event.(type) {
	case *sdl.QuitEvent:
		return input.Event{Type: input.EventQuit}, true

	case *sdl.WindowEvent:
		if e.Event == sdl.WINDOWEVENT_SIZE_CHANGED {
			return input.Event{
				Type:   input.EventWindowResize,
				Width:  int(e.Data1),
				Height: int(e.Data2),
			}, true
		}

	case *sdl.KeyboardEvent:
		typ := input.EventKeyDown
		if e.Type == sdl.KEYUP {
			typ = input.EventKeyUp
		}
		return input.Event{Type: typ, Key: key(e.Keysym.Scancode)}, true

	case *sdl.MouseMotionEvent:
		return input.Event{
			Type:   input.EventMouseMove,
			MouseX: int(e.X),
			MouseY: int(e.Y),
		}, true

	case *sdl.MouseButtonEvent:
		typ := input.EventMouseDown
		if e.Type == sdl.MOUSEBUTTONUP {
			typ = input.EventMouseUp
		}
		return input.Event{
			Type:   typ,
			MouseX: int(e.X),
			MouseY: int(e.Y),
			Button: e.Button,
		}, true

	case *sdl.MouseWheelEvent:
		y := float32(e.Y)
		if e.Direction == sdl.MOUSEWHEEL_FLIPPED {
			y = -y
		}
		return input.Event{Type: input.EventMouseWheel, WheelY: y}, true
	}
	return input.Event{}, false
}

func key(code sdl.Scancode) input.Key {
	switch code {
	case sdl.SCANCODE_ESCAPE:
		return input.KeyEscape
	case sdl.SCANCODE_F12:
		return input.KeyScreenshot
	}
	return input.KeyUnknown
}
