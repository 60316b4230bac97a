package viewer

import (
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/orbitview/internal/engine/camera"
	"github.com/Faultbox/orbitview/internal/scene"
	"github.com/Faultbox/orbitview/pkg/math"
)

// frameNode builds a goal pose that keeps the current viewing direction and
// backs off far enough to fit the node's world bounds.
func (v *Viewer) frameNode(n *scene.Node) (camera.Pose, bool) {
	var (
		center   math.Vec3
		diagonal float32
	)
	if box, ok := n.SubtreeAABB(); ok {
		center = box.Center()
		diagonal = box.Size().Length()
	} else {
		center = n.WorldMatrix().TransformVec3(math.Vec3{})
	}

	distance := diagonal * v.opts.FitFactor
	if v.opts.MaxDistance > 0 {
		distance = math.Clamp(distance, v.opts.MinDistance, v.opts.MaxDistance)
	}

	from := v.main.Pose
	dir := from.Position.Sub(center).Normalize()
	if dir == (math.Vec3{}) {
		dir = from.Position.Sub(from.Target).Normalize()
	}
	if dir == (math.Vec3{}) {
		dir = math.UnitZ
	}

	goal := camera.Pose{
		Position: center.Add(dir.Scale(distance)),
		Target:   center,
	}
	if err := goal.Validate(v.main.Up); err != nil {
		v.log.Warn("cannot frame node", zap.String("node", n.Name), zap.Error(err))
		return camera.Pose{}, false
	}
	return goal, true
}

// focusGoal places the main camera at a fixed offset from a focus point.
func (v *Viewer) focusGoal(focus math.Vec3) (camera.Pose, bool) {
	goal := camera.Pose{
		Position: focus.Add(v.opts.FocusOffset),
		Target:   focus,
	}
	if err := goal.Validate(v.main.Up); err != nil {
		v.log.Warn("cannot focus", zap.Any("focus", focus), zap.Error(err))
		return camera.Pose{}, false
	}
	return goal, true
}

func (v *Viewer) begin(now time.Time, goal camera.Pose) {
	if err := v.transition.Begin(now, goal, v.opts.Duration, v.opts.Easing); err != nil {
		v.log.Warn("transition not started", zap.Error(err))
	}
}
