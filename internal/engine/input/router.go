package input

import (
	"go.uber.org/zap"

	"github.com/Faultbox/orbitview/internal/logger"
	"github.com/Faultbox/orbitview/internal/viewer"
)

// ClickSlop is how far, in pixels, the pointer may travel between press
// and release for the pair to still count as a click.
const ClickSlop = 4

// Target receives requests for the next frame. *viewer.Viewer satisfies it.
type Target interface {
	Pick(view viewer.View, x, y float32)
	Resize(view viewer.View, width, height int)
}

// Orbit receives manual camera input. *camera.OrbitControls satisfies it.
type Orbit interface {
	HandleDrag(deltaX, deltaY float32)
	HandleZoom(delta float32)
	HandlePan(deltaX, deltaY float32)
}

type press struct {
	button       uint8
	view         viewer.View
	x, y         int
	lastX, lastY int
	dragging     bool
}

// Router routes window events to the viewer and the orbit controls.
// Clicks become pick requests for the view they landed in; drags and the
// wheel over the main view become orbit input.
type Router struct {
	target Target
	orbit  Orbit
	layout Layout

	press            *press
	cursorX, cursorY int
	log              *zap.Logger
}

// NewRouter creates a router for the given initial layout.
func NewRouter(target Target, orbit Orbit, layout Layout) *Router {
	return &Router{
		target: target,
		orbit:  orbit,
		layout: layout,
		log:    logger.Named("input"),
	}
}

// Layout returns the current view layout.
func (r *Router) Layout() Layout {
	return r.layout
}

// Handle processes one event and reports whether the viewer should quit.
func (r *Router) Handle(e Event) (quit bool) {
	switch e.Type {
	case EventQuit:
		return true

	case EventKeyDown:
		return e.Key == KeyEscape

	case EventWindowResize:
		r.resize(e.Width, e.Height)

	case EventMouseDown:
		view, _, _ := r.layout.ViewAt(e.MouseX, e.MouseY)
		r.press = &press{
			button: e.Button,
			view:   view,
			x:      e.MouseX, y: e.MouseY,
			lastX: e.MouseX, lastY: e.MouseY,
		}

	case EventMouseMove:
		r.cursorX, r.cursorY = e.MouseX, e.MouseY
		r.drag(e.MouseX, e.MouseY)

	case EventMouseUp:
		p := r.press
		r.press = nil
		if p == nil || p.dragging || p.button != ButtonLeft || p.button != e.Button {
			return false
		}
		view, lx, ly := r.layout.ViewAt(e.MouseX, e.MouseY)
		if view != p.view {
			return false
		}
		r.log.Debug("click", zap.Stringer("view", view), zap.Float32("x", lx), zap.Float32("y", ly))
		r.target.Pick(view, lx, ly)

	case EventMouseWheel:
		if view, _, _ := r.layout.ViewAt(r.cursorX, r.cursorY); view == viewer.Main && r.orbit != nil {
			r.orbit.HandleZoom(e.WheelY)
		}
	}
	return false
}

func (r *Router) drag(x, y int) {
	p := r.press
	if p == nil || p.view != viewer.Main {
		return
	}
	if !p.dragging {
		dx, dy := x-p.x, y-p.y
		if dx*dx+dy*dy <= ClickSlop*ClickSlop {
			return
		}
		p.dragging = true
	}
	dx, dy := float32(x-p.lastX), float32(y-p.lastY)
	p.lastX, p.lastY = x, y
	if r.orbit == nil {
		return
	}
	switch p.button {
	case ButtonLeft:
		r.orbit.HandleDrag(dx, dy)
	case ButtonRight, ButtonMiddle:
		r.orbit.HandlePan(dx, dy)
	}
}

func (r *Router) resize(width, height int) {
	before := r.layout.Rect(viewer.Minimap)
	r.layout.Width, r.layout.Height = width, height
	r.target.Resize(viewer.Main, width, height)

	if after := r.layout.Rect(viewer.Minimap); after.W != before.W || after.H != before.H {
		r.target.Resize(viewer.Minimap, after.W, after.H)
	}
}
