// Package viewer keeps the main and minimap views of one scene consistent
// and advances both once per frame.
package viewer

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/orbitview/internal/engine/camera"
	"github.com/Faultbox/orbitview/internal/engine/picking"
	"github.com/Faultbox/orbitview/internal/engine/tween"
	"github.com/Faultbox/orbitview/internal/logger"
	"github.com/Faultbox/orbitview/internal/scene"
	"github.com/Faultbox/orbitview/pkg/math"
)

// View identifies one of the two views.
type View uint8

const (
	Main View = iota
	Minimap
)

func (v View) String() string {
	switch v {
	case Main:
		return "main"
	case Minimap:
		return "minimap"
	}
	return fmt.Sprintf("View(%d)", uint8(v))
}

// InputPolicy decides what pending manual input does while a transition runs.
type InputPolicy uint8

const (
	// InputSuppress discards manual input until the transition ends.
	InputSuppress InputPolicy = iota
	// InputCancel stops the transition and applies the input in the same tick.
	InputCancel
)

func (p InputPolicy) String() string {
	if p == InputCancel {
		return "cancel"
	}
	return "suppress"
}

// ParseInputPolicy converts a config name into an InputPolicy.
func ParseInputPolicy(name string) (InputPolicy, error) {
	switch name {
	case "", "suppress":
		return InputSuppress, nil
	case "cancel":
		return InputCancel, nil
	}
	return InputSuppress, fmt.Errorf("unknown input policy %q", name)
}

// Controls is the damped manual-input capability driving the main camera.
// camera.OrbitControls satisfies it.
type Controls interface {
	Pending() bool
	Reset()
	Update(pose camera.Pose) (camera.Pose, bool)
}

// Frame is everything a render sink needs to draw one view.
type Frame struct {
	View     View
	Root     *scene.Node
	Camera   *camera.Camera
	Selected *scene.Node
	Focus    math.Vec3
	HasFocus bool
}

// RenderSink draws a view. It is called once per view per tick and must not
// keep the Frame beyond the call.
type RenderSink interface {
	Render(f Frame)
}

// Options tune picking and transitions.
type Options struct {
	InputPolicy InputPolicy
	PickPolicy  picking.Policy

	Duration  time.Duration
	Easing    tween.Easing
	FitFactor float32

	// Distance range for object framing; MaxDistance 0 disables the clamp.
	MinDistance float32
	MaxDistance float32

	// FocusOffset places the main camera relative to a minimap focus point.
	FocusOffset math.Vec3
	GroundY     float32
}

// DefaultOptions returns the main viewer's defaults.
func DefaultOptions() Options {
	return Options{
		InputPolicy: InputSuppress,
		PickPolicy:  picking.PolicyNearest,
		Duration:    time.Second,
		Easing:      tween.QuadraticOut,
		FitFactor:   1.5,
		MinDistance: 5,
		MaxDistance: 15,
		FocusOffset: math.Vec3{X: 0, Y: 5, Z: 5},
		GroundY:     0,
	}
}

// Viewer owns the two views and everything they share. All methods except
// the request constructors must be called from the frame goroutine.
type Viewer struct {
	opts Options

	root    *scene.Node
	main    *camera.Camera
	minimap *camera.Camera

	transition *tween.Controller
	controls   Controls
	resolver   picking.Resolver
	sink       RenderSink

	focus    math.Vec3
	hasFocus bool
	selected *scene.Node

	requests queue
	log      *zap.Logger
}

// New creates a viewer. controls and sink may be nil.
func New(root *scene.Node, main, minimap *camera.Camera, controls Controls, sink RenderSink, opts Options) *Viewer {
	if opts.Easing == nil {
		opts.Easing = tween.QuadraticOut
	}
	if opts.FitFactor <= 0 {
		opts.FitFactor = 1
	}
	return &Viewer{
		opts:       opts,
		root:       root,
		main:       main,
		minimap:    minimap,
		transition: tween.NewController(main, Main.String()),
		controls:   controls,
		resolver:   picking.Resolver{Policy: opts.PickPolicy},
		sink:       sink,
		log:        logger.Named("viewer"),
	}
}

// Enqueue schedules r for the next Tick. It is safe to call from any goroutine.
func (v *Viewer) Enqueue(r Request) {
	v.requests.push(r)
}

// Pick schedules a click at viewport-local pixel (x, y) of view.
func (v *Viewer) Pick(view View, x, y float32) {
	v.Enqueue(PickRequest{View: view, X: x, Y: y})
}

// Resize schedules a viewport size change.
func (v *Viewer) Resize(view View, width, height int) {
	v.Enqueue(ResizeRequest{View: view, Width: width, Height: height})
}

// ReplaceScene schedules a scene swap.
func (v *Viewer) ReplaceScene(root *scene.Node) {
	v.Enqueue(SceneRequest{Root: root})
}

// Camera returns the camera of view.
func (v *Viewer) Camera(view View) *camera.Camera {
	if view == Minimap {
		return v.minimap
	}
	return v.main
}

// Root returns the current scene root.
func (v *Viewer) Root() *scene.Node {
	return v.root
}

// Focus returns the focus point set by the last minimap pick.
func (v *Viewer) Focus() (math.Vec3, bool) {
	return v.focus, v.hasFocus
}

// Selected returns the node picked last in the main view.
func (v *Viewer) Selected() *scene.Node {
	return v.selected
}

// Transition exposes the main camera's transition controller.
func (v *Viewer) Transition() *tween.Controller {
	return v.transition
}
