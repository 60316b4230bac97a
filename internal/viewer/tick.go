package viewer

import (
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/orbitview/internal/engine/picking"
	"github.com/Faultbox/orbitview/pkg/math"
)

// Tick advances the viewer to now and renders both views.
//
// Queued requests are applied first, in arrival order. Then exactly one
// writer updates the main camera pose: the running transition, or the
// manual controls when no transition wrote this tick. Nothing in Tick
// blocks; errors are logged and the frame continues with the last good
// state.
func (v *Viewer) Tick(now time.Time) {
	for _, r := range v.requests.drain() {
		v.apply(now, r)
	}

	if v.controls != nil && v.controls.Pending() && v.transition.Running() {
		switch v.opts.InputPolicy {
		case InputCancel:
			v.transition.Cancel()
		default:
			v.controls.Reset()
		}
	}

	wrote := v.transition.Tick(now)
	if !wrote && v.controls != nil {
		if pose, changed := v.controls.Update(v.main.Pose); changed {
			if pose.IsFinite() {
				v.main.Pose = pose
			} else {
				v.log.Warn("discarding non-finite control update")
				v.controls.Reset()
			}
		}
	}

	v.render()
}

func (v *Viewer) apply(now time.Time, r Request) {
	switch r := r.(type) {
	case PickRequest:
		switch r.View {
		case Main:
			v.pickMain(now, r.X, r.Y)
		case Minimap:
			v.pickMinimap(now, r.X, r.Y)
		}
	case ResizeRequest:
		if err := v.Camera(r.View).Resize(r.Width, r.Height); err != nil {
			v.log.Warn("resize rejected",
				zap.Stringer("view", r.View),
				zap.Int("width", r.Width),
				zap.Int("height", r.Height),
				zap.Error(err),
			)
		}
	case SceneRequest:
		v.root = r.Root
		v.selected = nil
		v.log.Info("scene replaced")
	}
}

func (v *Viewer) pickMain(now time.Time, x, y float32) {
	hits, _, ok := v.cast(Main, x, y)
	if !ok {
		return
	}
	node, found := v.resolver.Resolve(hits)
	if !found {
		v.log.Debug("main pick missed", zap.Float32("x", x), zap.Float32("y", y))
		return
	}
	goal, ok := v.frameNode(node)
	if !ok {
		return
	}
	v.selected = node
	v.log.Debug("picked node", zap.String("node", node.Name), zap.Uint32("id", node.ID))
	v.begin(now, goal)
}

func (v *Viewer) pickMinimap(now time.Time, x, y float32) {
	hits, ray, ok := v.cast(Minimap, x, y)
	if !ok {
		return
	}

	var point math.Vec3
	if len(hits) > 0 {
		point = hits[0].Point
	} else {
		t, hit := ray.IntersectPlaneY(v.opts.GroundY)
		if !hit {
			v.log.Debug("minimap pick missed the ground")
			return
		}
		point = ray.At(t)
	}
	if !point.IsFinite() {
		v.log.Warn("minimap pick produced a non-finite point")
		return
	}

	goal, ok := v.focusGoal(point)
	if !ok {
		return
	}
	v.focus, v.hasFocus = point, true
	v.log.Debug("focus moved", zap.Any("focus", point))
	v.begin(now, goal)
}

// cast builds a ray for a view-local pixel and intersects the scene.
// ok is false when the pointer or the camera cannot produce a ray.
func (v *Viewer) cast(view View, x, y float32) ([]picking.Intersection, picking.Ray, bool) {
	cam := v.Camera(view)
	w, h := cam.Viewport()
	ndc, err := picking.ScreenToNDC(x, y, w, h)
	if err != nil {
		v.log.Warn("pick ignored", zap.Stringer("view", view), zap.Error(err))
		return nil, picking.Ray{}, false
	}
	ray, err := picking.Cast(ndc, cam)
	if err != nil {
		v.log.Warn("pick skipped", zap.Stringer("view", view), zap.Error(err))
		return nil, picking.Ray{}, false
	}
	return picking.Intersect(ray, v.root, true), ray, true
}

func (v *Viewer) render() {
	if v.sink == nil {
		return
	}
	for _, view := range [...]View{Main, Minimap} {
		cam := v.Camera(view)
		if err := cam.UpdateMatrices(); err != nil {
			v.log.Debug("rendering with last good matrices", zap.Stringer("view", view), zap.Error(err))
		}
		v.sink.Render(Frame{
			View:     view,
			Root:     v.root,
			Camera:   cam,
			Selected: v.selected,
			Focus:    v.focus,
			HasFocus: v.hasFocus,
		})
	}
}
