package picking

import (
	"errors"
	"testing"

	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/orbitview/internal/engine/camera"
	"github.com/Faultbox/orbitview/pkg/math"
)

func newCamera(pos, target math.Vec3) *camera.Camera {
	cam := camera.NewPerspective(45, 800, 600, 0.1, 1000)
	cam.Pose = camera.Pose{Position: pos, Target: target}
	return cam
}

// ndcOf projects a world point to NDC through the camera.
func ndcOf(t *testing.T, cam *camera.Camera, p math.Vec3) math.Vec2 {
	t.Helper()
	require.NoError(t, cam.UpdateMatrices())
	q := cam.ViewProjection().TransformVec3(p)
	return math.Vec2{X: q.X, Y: q.Y}
}

func TestScreenToNDC(t *testing.T) {
	tests := []struct {
		x, y float32
		want math.Vec2
	}{
		{0, 0, math.Vec2{X: -1, Y: 1}},
		{800, 600, math.Vec2{X: 1, Y: -1}},
		{400, 300, math.Vec2{}},
		{600, 150, math.Vec2{X: 0.5, Y: 0.5}},
	}
	for _, tt := range tests {
		got, err := ScreenToNDC(tt.x, tt.y, 800, 600)
		require.NoError(t, err)
		if got != tt.want {
			t.Errorf("ScreenToNDC(%v, %v) = %v, want %v", tt.x, tt.y, got, tt.want)
		}
	}

	_, err := ScreenToNDC(10, 10, 0, 600)
	assert.True(t, errors.Is(err, ErrInvalidPointer))
	_, err = ScreenToNDC(math32.NaN(), 10, 800, 600)
	assert.True(t, errors.Is(err, ErrInvalidPointer))
}

func TestCastThroughCentre(t *testing.T) {
	cam := newCamera(math.Vec3{Z: 10}, math.Vec3{})
	ray, err := Cast(math.Vec2{}, cam)
	require.NoError(t, err)

	assert.True(t, ray.Direction.ApproxEqual(math.Vec3{Z: -1}, 1e-5), "direction %v", ray.Direction)
	assert.True(t, ray.Origin.ApproxEqual(math.Vec3{Z: 9.9}, 1e-4), "origin on near plane, got %v", ray.Origin)
	assert.InDelta(t, 1, ray.Direction.Length(), 1e-5)
}

func TestCastRefreshesMatrices(t *testing.T) {
	cam := newCamera(math.Vec3{Z: 10}, math.Vec3{})
	_, err := Cast(math.Vec2{}, cam)
	require.NoError(t, err)

	// Moving the pose without touching the matrices must not leave a stale ray.
	cam.Pose = camera.Pose{Position: math.Vec3{X: 10}, Target: math.Vec3{}}
	ray, err := Cast(math.Vec2{}, cam)
	require.NoError(t, err)
	assert.True(t, ray.Direction.ApproxEqual(math.Vec3{X: -1}, 1e-5), "direction %v", ray.Direction)
}

func TestCastDegenerateCamera(t *testing.T) {
	tests := []struct {
		name string
		pose camera.Pose
	}{
		{"nan position", camera.Pose{Position: math.Vec3{X: math32.NaN()}}},
		{"position equals target", camera.Pose{Position: math.Vec3{X: 3}, Target: math.Vec3{X: 3}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cam := newCamera(tt.pose.Position, tt.pose.Target)
			_, err := Cast(math.Vec2{}, cam)
			assert.True(t, errors.Is(err, ErrDegenerateCamera))
			assert.True(t, errors.Is(err, camera.ErrDegeneratePose))
		})
	}

	_, err := Cast(math.Vec2{X: math32.Inf(1)}, newCamera(math.Vec3{Z: 10}, math.Vec3{}))
	assert.True(t, errors.Is(err, ErrInvalidPointer))
}

func TestIntersectAABB(t *testing.T) {
	box := math.AABB{Min: math.Vec3{X: -1, Y: -1, Z: -1}, Max: math.Vec3{X: 1, Y: 1, Z: 1}}
	tests := []struct {
		name  string
		ray   Ray
		want  float32
		isHit bool
	}{
		{"front", Ray{Origin: math.Vec3{Z: 10}, Direction: math.Vec3{Z: -1}}, 9, true},
		{"inside", Ray{Origin: math.Vec3{}, Direction: math.Vec3{X: 1}}, 1, true},
		{"behind", Ray{Origin: math.Vec3{Z: 10}, Direction: math.Vec3{Z: 1}}, 0, false},
		{"miss parallel", Ray{Origin: math.Vec3{Y: 5, Z: 10}, Direction: math.Vec3{Z: -1}}, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, hit := tt.ray.IntersectAABB(box)
			assert.Equal(t, tt.isHit, hit)
			assert.InDelta(t, tt.want, got, 1e-5)
		})
	}
}

func TestIntersectSphere(t *testing.T) {
	s := math.Sphere{Center: math.Vec3{Z: -5}, Radius: 2}
	tests := []struct {
		name  string
		ray   Ray
		want  float32
		isHit bool
	}{
		{"front", Ray{Direction: math.Vec3{Z: -1}}, 3, true},
		{"inside", Ray{Origin: math.Vec3{Z: -5}, Direction: math.Vec3{Z: -1}}, 2, true},
		{"behind", Ray{Direction: math.Vec3{Z: 1}}, 0, false},
		{"miss", Ray{Origin: math.Vec3{X: 3}, Direction: math.Vec3{Z: -1}}, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, hit := tt.ray.IntersectSphere(s)
			assert.Equal(t, tt.isHit, hit)
			assert.InDelta(t, tt.want, got, 1e-5)
		})
	}
}

func TestIntersectPlaneY(t *testing.T) {
	r := Ray{Origin: math.Vec3{X: 1, Y: 10, Z: 2}, Direction: math.Vec3{Y: -1}}
	d, ok := r.IntersectPlaneY(0)
	require.True(t, ok)
	assert.Equal(t, math.Vec3{X: 1, Z: 2}, r.At(d))

	_, ok = Ray{Direction: math.Vec3{X: 1}}.IntersectPlaneY(0)
	assert.False(t, ok, "parallel ray")
	_, ok = r.IntersectPlaneY(20)
	assert.False(t, ok, "plane behind origin")
}
