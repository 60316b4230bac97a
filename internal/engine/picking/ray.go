// Package picking converts pointer positions into world-space rays and
// resolves the object under the pointer.
package picking

import (
	"errors"
	"fmt"

	"github.com/chewxy/math32"

	"github.com/Faultbox/orbitview/internal/engine/camera"
	"github.com/Faultbox/orbitview/pkg/math"
)

var (
	// ErrDegenerateCamera is returned when no ray can be built from the camera.
	ErrDegenerateCamera = errors.New("picking: degenerate camera")
	// ErrInvalidPointer is returned for pointer positions that are not finite
	// or fall in a zero-area viewport.
	ErrInvalidPointer = errors.New("picking: invalid pointer")
)

// Ray is a half-line in world space.
type Ray struct {
	Origin    math.Vec3
	Direction math.Vec3 // unit length
}

// At returns the point at distance t along the ray.
func (r Ray) At(t float32) math.Vec3 {
	return r.Origin.Add(r.Direction.Scale(t))
}

// ScreenToNDC converts pixel coordinates inside a viewport (origin top-left)
// to normalized device coordinates in [-1, 1] with +Y up.
func ScreenToNDC(x, y float32, viewportW, viewportH int) (math.Vec2, error) {
	if viewportW <= 0 || viewportH <= 0 {
		return math.Vec2{}, fmt.Errorf("%w: viewport %dx%d", ErrInvalidPointer, viewportW, viewportH)
	}
	ndc := math.Vec2{
		X: 2*x/float32(viewportW) - 1,
		Y: 1 - 2*y/float32(viewportH), // flip Y
	}
	if !ndc.IsFinite() {
		return math.Vec2{}, fmt.Errorf("%w: (%v, %v)", ErrInvalidPointer, x, y)
	}
	return ndc, nil
}

// Cast builds the world-space ray through ndc for cam. The camera matrices
// are refreshed from the current pose first. Degenerate poses yield an error
// wrapping ErrDegenerateCamera and no ray.
func Cast(ndc math.Vec2, cam *camera.Camera) (Ray, error) {
	if !ndc.IsFinite() {
		return Ray{}, fmt.Errorf("%w: ndc %v", ErrInvalidPointer, ndc)
	}
	if err := cam.UpdateMatrices(); err != nil {
		return Ray{}, fmt.Errorf("%w: %w", ErrDegenerateCamera, err)
	}

	inv := cam.InverseViewProjection()
	near, okNear := math.Unproject(math.Vec3{X: ndc.X, Y: ndc.Y, Z: -1}, inv)
	far, okFar := math.Unproject(math.Vec3{X: ndc.X, Y: ndc.Y, Z: 1}, inv)
	if !okNear || !okFar {
		return Ray{}, fmt.Errorf("%w: unprojection failed", ErrDegenerateCamera)
	}

	dir := far.Sub(near)
	if dir.Length() < 1e-9 {
		return Ray{}, fmt.Errorf("%w: zero-length ray", ErrDegenerateCamera)
	}
	return Ray{Origin: near, Direction: dir.Normalize()}, nil
}

// IntersectPlaneY intersects the ray with the horizontal plane y = planeY.
func (r Ray) IntersectPlaneY(planeY float32) (t float32, ok bool) {
	if math32.Abs(r.Direction.Y) < 1e-6 {
		return 0, false // parallel
	}
	t = (planeY - r.Origin.Y) / r.Direction.Y
	if t < 0 {
		return 0, false // behind the origin
	}
	return t, true
}

// IntersectAABB tests the ray against a box with the slab method.
// Returns the entry distance, or the exit distance if the ray starts inside.
func (r Ray) IntersectAABB(box math.AABB) (t float32, hit bool) {
	tmin := float32(-math32.MaxFloat32)
	tmax := float32(math32.MaxFloat32)

	origin := r.Origin.Array()
	dir := r.Direction.Array()
	lo := box.Min.Array()
	hi := box.Max.Array()

	for axis := 0; axis < 3; axis++ {
		if dir[axis] == 0 {
			if origin[axis] < lo[axis] || origin[axis] > hi[axis] {
				return 0, false
			}
			continue
		}
		t1 := (lo[axis] - origin[axis]) / dir[axis]
		t2 := (hi[axis] - origin[axis]) / dir[axis]
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		if t1 > tmin {
			tmin = t1
		}
		if t2 < tmax {
			tmax = t2
		}
	}

	if tmax < tmin || tmax < 0 {
		return 0, false
	}
	if tmin < 0 {
		return tmax, true
	}
	return tmin, true
}

// IntersectSphere tests the ray against a sphere. Returns the nearest
// non-negative distance, or the exit distance if the ray starts inside.
func (r Ray) IntersectSphere(s math.Sphere) (t float32, hit bool) {
	oc := r.Origin.Sub(s.Center)
	b := oc.Dot(r.Direction)
	c := oc.Dot(oc) - s.Radius*s.Radius
	disc := b*b - c
	if disc < 0 {
		return 0, false
	}
	sq := math32.Sqrt(disc)
	t0, t1 := -b-sq, -b+sq
	if t1 < 0 {
		return 0, false
	}
	if t0 < 0 {
		return t1, true
	}
	return t0, true
}
