package tween

import (
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/orbitview/internal/engine/camera"
	"github.com/Faultbox/orbitview/internal/logger"
	"github.com/Faultbox/orbitview/pkg/math"
)

// ErrNonFinitePose is returned by Begin for a goal containing NaN or Inf.
var ErrNonFinitePose = errors.New("tween: non-finite goal pose")

// Status is the state of a transition.
type Status uint8

const (
	Idle Status = iota
	Running
	Completed
	Cancelled
)

func (s Status) String() string {
	switch s {
	case Idle:
		return "idle"
	case Running:
		return "running"
	case Completed:
		return "completed"
	case Cancelled:
		return "cancelled"
	}
	return fmt.Sprintf("Status(%d)", uint8(s))
}

// Transition interpolates a camera from Start to Goal over Duration.
type Transition struct {
	Start     camera.Pose
	Goal      camera.Pose
	StartTime time.Time
	Duration  time.Duration
	Easing    Easing
	Status    Status
}

// Progress returns the un-eased progress at now, clamped to [0, 1].
func (t *Transition) Progress(now time.Time) float32 {
	if t.Duration <= 0 {
		return 1
	}
	p := float32(now.Sub(t.StartTime).Seconds() / t.Duration.Seconds())
	return math.Clamp(p, 0, 1)
}

// Controller owns at most one transition for one camera and is the only
// writer of that camera's pose while the transition runs.
type Controller struct {
	cam     *camera.Camera
	current *Transition
	last    Status
	log     *zap.Logger
}

// NewController creates an idle controller for cam.
func NewController(cam *camera.Camera, name string) *Controller {
	return &Controller{
		cam: cam,
		log: logger.Named("tween").With(zap.String("camera", name)),
	}
}

// Begin starts a transition from the camera's current pose to goal. A
// running transition is cancelled first; its goal is dropped, never blended.
// A nil easing means linear.
func (c *Controller) Begin(now time.Time, goal camera.Pose, duration time.Duration, easing Easing) error {
	if !goal.IsFinite() {
		return fmt.Errorf("%w: %v", ErrNonFinitePose, goal)
	}
	if c.current != nil {
		c.log.Debug("transition superseded", zap.Any("goal", c.current.Goal))
		c.current.Status = Cancelled
		c.last = Cancelled
	}
	if easing == nil {
		easing = Linear
	}
	c.current = &Transition{
		Start:     c.cam.Pose,
		Goal:      goal,
		StartTime: now,
		Duration:  duration,
		Easing:    easing,
		Status:    Running,
	}
	c.log.Debug("transition started",
		zap.Any("from", c.cam.Pose),
		zap.Any("goal", goal),
		zap.Duration("duration", duration),
	)
	return nil
}

// Tick advances the running transition to now and writes the camera pose.
// It reports whether the pose was written. Calling it again with the same
// now writes the same pose. When progress reaches 1 the pose is set to the
// goal exactly and the controller becomes idle.
func (c *Controller) Tick(now time.Time) bool {
	t := c.current
	if t == nil {
		return false
	}

	p := t.Progress(now)
	if p >= 1 {
		c.cam.Pose = t.Goal
		t.Status = Completed
		c.last = Completed
		c.current = nil
		c.log.Debug("transition completed", zap.Any("pose", t.Goal))
		return true
	}

	c.cam.Pose = t.Start.Lerp(t.Goal, t.Easing(p))
	return true
}

// Cancel stops the running transition, leaving the pose where it is.
func (c *Controller) Cancel() {
	if c.current == nil {
		return
	}
	c.current.Status = Cancelled
	c.last = Cancelled
	c.current = nil
	c.log.Debug("transition cancelled", zap.Any("pose", c.cam.Pose))
}

// Status returns Running while a transition is active, otherwise Idle.
func (c *Controller) Status() Status {
	if c.current != nil {
		return Running
	}
	return Idle
}

// Running reports whether a transition is active.
func (c *Controller) Running() bool {
	return c.current != nil
}

// LastOutcome returns how the most recent transition ended: Completed,
// Cancelled, or Idle if none has ended yet.
func (c *Controller) LastOutcome() Status {
	return c.last
}

// Goal returns the goal of the running transition.
func (c *Controller) Goal() (camera.Pose, bool) {
	if c.current == nil {
		return camera.Pose{}, false
	}
	return c.current.Goal, true
}
