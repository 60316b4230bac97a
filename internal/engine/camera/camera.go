// Package camera provides the viewer cameras and the orbit input controls.
package camera

import (
	"errors"
	"fmt"

	"github.com/chewxy/math32"

	"github.com/Faultbox/orbitview/pkg/math"
)

var (
	// ErrZeroViewport is returned by Resize for a viewport with no area.
	ErrZeroViewport = errors.New("camera: zero-area viewport")
	// ErrDegeneratePose is returned when a pose cannot produce a view matrix.
	ErrDegeneratePose = errors.New("camera: degenerate pose")
)

// Pose is where a camera is and what it looks at. The up vector belongs to
// the Camera and never changes.
type Pose struct {
	Position math.Vec3
	Target   math.Vec3
}

// IsFinite reports whether both points are free of NaN and Inf.
func (p Pose) IsFinite() bool {
	return p.Position.IsFinite() && p.Target.IsFinite()
}

// Lerp interpolates position and target independently.
func (p Pose) Lerp(goal Pose, t float32) Pose {
	return Pose{
		Position: p.Position.Lerp(goal.Position, t),
		Target:   p.Target.Lerp(goal.Target, t),
	}
}

// Distance returns the distance from position to target.
func (p Pose) Distance() float32 {
	return p.Position.Distance(p.Target)
}

// Validate checks that a view matrix can be built from p with the given up.
func (p Pose) Validate(up math.Vec3) error {
	if !p.IsFinite() {
		return fmt.Errorf("%w: non-finite pose %v", ErrDegeneratePose, p)
	}
	dir := p.Target.Sub(p.Position)
	if dir.Length() < 1e-6 {
		return fmt.Errorf("%w: position equals target", ErrDegeneratePose)
	}
	if dir.Normalize().Cross(up.Normalize()).Length() < 1e-6 {
		return fmt.Errorf("%w: view direction parallel to up", ErrDegeneratePose)
	}
	return nil
}

// Camera is a perspective camera bound to one viewport.
type Camera struct {
	Pose Pose
	Up   math.Vec3

	fovY      float32 // radians
	near, far float32

	width, height int
	projection    math.Mat4

	view        math.Mat4
	viewProj    math.Mat4
	invViewProj math.Mat4
}

// NewPerspective creates a camera with a vertical field of view in degrees.
// A zero-area viewport leaves the projection at aspect 1 until Resize gets a
// usable size.
func NewPerspective(fovDeg float32, width, height int, near, far float32) *Camera {
	c := &Camera{
		Up:   math.UnitY,
		fovY: fovDeg * math32.Pi / 180,
		near: near,
		far:  far,
	}
	c.projection = math.Perspective(c.fovY, 1, near, far)
	_ = c.Resize(width, height)
	return c
}

// Resize recomputes the projection for a new viewport. A zero-area size is
// rejected and the previous projection is kept.
func (c *Camera) Resize(width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrZeroViewport, width, height)
	}
	c.width, c.height = width, height
	c.projection = math.Perspective(c.fovY, float32(width)/float32(height), c.near, c.far)
	return nil
}

// Viewport returns the last accepted viewport size.
func (c *Camera) Viewport() (width, height int) {
	return c.width, c.height
}

// Projection returns the projection matrix.
func (c *Camera) Projection() math.Mat4 {
	return c.projection
}

// UpdateMatrices rebuilds the view and inverse view-projection matrices from
// the current pose. It must run before every ray cast; a stale inverse
// produces rays that hit nothing. On error the previous matrices are kept.
func (c *Camera) UpdateMatrices() error {
	if err := c.Pose.Validate(c.Up); err != nil {
		return err
	}
	view := math.LookAt(c.Pose.Position, c.Pose.Target, c.Up)
	viewProj := c.projection.Mul(view)
	inv, ok := viewProj.Inverse()
	if !ok {
		return fmt.Errorf("%w: singular view-projection", ErrDegeneratePose)
	}
	c.view, c.viewProj, c.invViewProj = view, viewProj, inv
	return nil
}

// View returns the view matrix from the last UpdateMatrices.
func (c *Camera) View() math.Mat4 {
	return c.view
}

// ViewProjection returns projection * view from the last UpdateMatrices.
func (c *Camera) ViewProjection() math.Mat4 {
	return c.viewProj
}

// InverseViewProjection returns the inverse of ViewProjection.
func (c *Camera) InverseViewProjection() math.Mat4 {
	return c.invViewProj
}

// NewTopDown creates a camera hovering at height above the origin looking
// straight down. up fixes which world direction is "up" on screen and must
// not be parallel to the Y axis.
func NewTopDown(height, fovDeg float32, width, vpHeight int, near, far float32, up math.Vec3) *Camera {
	c := NewPerspective(fovDeg, width, vpHeight, near, far)
	c.Up = up
	c.Pose = Pose{Position: math.Vec3{Y: height}}
	return c
}
