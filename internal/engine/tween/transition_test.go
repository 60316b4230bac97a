package tween

import (
	"testing"
	"time"

	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/orbitview/internal/engine/camera"
	"github.com/Faultbox/orbitview/pkg/math"
)

var epoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func newTestCamera(pose camera.Pose) *camera.Camera {
	cam := camera.NewPerspective(45, 800, 600, 0.1, 1000)
	cam.Pose = pose
	return cam
}

func at(ms int) time.Time {
	return epoch.Add(time.Duration(ms) * time.Millisecond)
}

var (
	home = camera.Pose{Position: math.Vec3{X: 0, Y: 5, Z: 10}}
	goal = camera.Pose{Position: math.Vec3{X: 2.5, Y: 3.5, Z: 3}, Target: math.Vec3{X: 2, Y: 1, Z: 0}}
)

func TestTransitionReachesGoalExactly(t *testing.T) {
	cam := newTestCamera(home)
	c := NewController(cam, "main")
	require.NoError(t, c.Begin(at(0), goal, time.Second, QuadraticOut))
	assert.Equal(t, Running, c.Status())

	c.Tick(at(500))
	assert.Equal(t, Running, c.Status())
	assert.NotEqual(t, goal, cam.Pose)

	assert.True(t, c.Tick(at(1000)))
	assert.Equal(t, goal, cam.Pose, "pose must equal goal bit-for-bit")
	assert.Equal(t, Idle, c.Status())
	assert.Equal(t, Completed, c.LastOutcome())

	assert.False(t, c.Tick(at(1200)))
	assert.Equal(t, goal, cam.Pose)
}

func TestTransitionOvershootTickSnaps(t *testing.T) {
	cam := newTestCamera(home)
	c := NewController(cam, "main")
	require.NoError(t, c.Begin(at(0), goal, time.Second, FromTweenFunc(linearTween)))

	c.Tick(at(5000))
	assert.Equal(t, goal, cam.Pose)
	assert.Equal(t, Idle, c.Status())
}

func linearTween(t, b, c, d float32) float32 { return c*t/d + b }

func TestTransitionTickIdempotent(t *testing.T) {
	cam := newTestCamera(home)
	c := NewController(cam, "main")
	require.NoError(t, c.Begin(at(0), goal, time.Second, QuadraticOut))

	c.Tick(at(300))
	first := cam.Pose
	c.Tick(at(300))
	assert.Equal(t, first, cam.Pose)
	assert.Equal(t, Running, c.Status())
}

func TestTransitionMidpointUsesEasing(t *testing.T) {
	cam := newTestCamera(home)
	c := NewController(cam, "main")
	require.NoError(t, c.Begin(at(0), goal, time.Second, QuadraticOut))

	c.Tick(at(500))
	want := home.Lerp(goal, 0.75)
	assert.True(t, cam.Pose.Position.ApproxEqual(want.Position, 1e-4), "got %v want %v", cam.Pose, want)
	assert.True(t, cam.Pose.Target.ApproxEqual(want.Target, 1e-4))
}

func TestTransitionRestartFromCurrentPose(t *testing.T) {
	goalA := camera.Pose{Position: math.Vec3{X: 40, Y: 40, Z: 40}, Target: math.Vec3{X: 30, Y: 0, Z: 30}}
	goalB := camera.Pose{Position: math.Vec3{X: -3, Y: 4, Z: 2}, Target: math.Vec3{X: -3, Y: 0, Z: -1}}

	cam := newTestCamera(home)
	c := NewController(cam, "main")
	require.NoError(t, c.Begin(at(0), goalA, time.Second, Linear))
	c.Tick(at(400))
	mid := cam.Pose

	require.NoError(t, c.Begin(at(400), goalB, time.Second, Linear))
	assert.Equal(t, Cancelled, c.LastOutcome())
	g, ok := c.Goal()
	require.True(t, ok)
	assert.Equal(t, goalB, g)

	// First tick of B starts where A left off.
	c.Tick(at(400))
	assert.Equal(t, mid, cam.Pose)

	prevToA := poseGap(cam.Pose, goalA)
	for ms := 450; ms <= 1400; ms += 50 {
		c.Tick(at(ms))
		assert.NotEqual(t, goalA, cam.Pose)
		d := poseGap(cam.Pose, goalA)
		assert.GreaterOrEqual(t, d, prevToA-1e-4, "camera moved toward the abandoned goal at %dms", ms)
		prevToA = d
	}
	assert.Equal(t, goalB, cam.Pose)
	assert.Equal(t, Completed, c.LastOutcome())
}

func poseGap(a, b camera.Pose) float32 {
	return a.Position.Distance(b.Position) + a.Target.Distance(b.Target)
}

func TestTransitionCancelKeepsPose(t *testing.T) {
	cam := newTestCamera(home)
	c := NewController(cam, "main")
	require.NoError(t, c.Begin(at(0), goal, time.Second, Linear))
	c.Tick(at(250))
	mid := cam.Pose

	c.Cancel()
	assert.Equal(t, Idle, c.Status())
	assert.Equal(t, Cancelled, c.LastOutcome())
	assert.False(t, c.Tick(at(800)))
	assert.Equal(t, mid, cam.Pose)

	c.Cancel()
	assert.Equal(t, Cancelled, c.LastOutcome())
}

func TestTransitionZeroDuration(t *testing.T) {
	cam := newTestCamera(home)
	c := NewController(cam, "main")
	require.NoError(t, c.Begin(at(0), goal, 0, nil))
	c.Tick(at(0))
	assert.Equal(t, goal, cam.Pose)
	assert.Equal(t, Idle, c.Status())
}

func TestTransitionTickBeforeStart(t *testing.T) {
	cam := newTestCamera(home)
	c := NewController(cam, "main")
	require.NoError(t, c.Begin(at(100), goal, time.Second, QuadraticOut))
	c.Tick(at(0))
	assert.Equal(t, home, cam.Pose)
}

func TestTransitionRejectsNonFiniteGoal(t *testing.T) {
	cam := newTestCamera(home)
	c := NewController(cam, "main")
	bad := goal
	bad.Target.Y = math32.NaN()
	err := c.Begin(at(0), bad, time.Second, Linear)
	require.ErrorIs(t, err, ErrNonFinitePose)
	assert.Equal(t, Idle, c.Status())
	assert.Equal(t, home, cam.Pose)
}

func TestStatusString(t *testing.T) {
	assert.Equal(t, "running", Running.String())
	assert.Equal(t, "cancelled", Cancelled.String())
	assert.Equal(t, "Status(9)", Status(9).String())
}
