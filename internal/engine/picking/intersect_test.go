package picking

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/orbitview/internal/engine/camera"
	"github.com/Faultbox/orbitview/internal/scene"
	"github.com/Faultbox/orbitview/pkg/math"
)

func unitCube(name string, center math.Vec3) *scene.Node {
	n := scene.NewBox(name, math.Vec3{X: -0.5, Y: -0.5, Z: -0.5}, math.Vec3{X: 0.5, Y: 0.5, Z: 0.5})
	n.Position = center
	return n
}

func TestPickCubeScenario(t *testing.T) {
	cube := unitCube("cube", math.Vec3{X: 2, Y: 1})
	root := scene.NewNode("root").Add(cube)
	cam := newCamera(math.Vec3{Z: 10}, math.Vec3{})

	ray, err := Cast(ndcOf(t, cam, math.Vec3{X: 2, Y: 1}), cam)
	require.NoError(t, err)

	hits := Intersect(ray, root, true)
	require.Len(t, hits, 1)
	assert.Same(t, cube, hits[0].Node)

	got, ok := Resolver{}.Resolve(hits)
	require.True(t, ok)
	assert.Same(t, cube, got)

	// The ray runs through the cube centre; the front face is at z = 0.5.
	assert.InDelta(t, 0.5, hits[0].Point.Z, 1e-3)
}

func TestSphereDistanceForAnyPose(t *testing.T) {
	poses := []camera.Pose{
		{Position: math.Vec3{Z: 10}},
		{Position: math.Vec3{X: 1.37, Y: 7.33, Z: 10.45}},
		{Position: math.Vec3{X: -20, Y: 3, Z: 4}, Target: math.Vec3{X: 1, Y: 1, Z: 1}},
		{Position: math.Vec3{X: 0.28, Y: 0.71, Z: 1.85}},
	}
	pointers := []math.Vec2{{}, {X: 0.7, Y: -0.4}, {X: -0.9, Y: 0.9}}

	for _, pose := range poses {
		for _, ndc := range pointers {
			cam := newCamera(pose.Position, pose.Target)
			ray, err := Cast(ndc, cam)
			require.NoError(t, err)

			center := ray.At(7)
			ball := scene.NewSphere("ball", math.Vec3{}, 1)
			ball.Position = center
			root := scene.NewNode("root").Add(ball)

			hits := Intersect(ray, root, true)
			require.Len(t, hits, 1, "pose %v ndc %v", pose, ndc)
			assert.InDelta(t, 6, hits[0].Distance, 1e-3)
		}
	}
}

func TestBoxDistanceAlongAxis(t *testing.T) {
	cam := newCamera(math.Vec3{Z: 10}, math.Vec3{})
	ray, err := Cast(math.Vec2{}, cam)
	require.NoError(t, err)

	box := unitCube("box", ray.At(7))
	box.Scale = math.Vec3{X: 2, Y: 2, Z: 2}
	hits := Intersect(ray, scene.NewNode("root").Add(box), true)
	require.Len(t, hits, 1)
	assert.InDelta(t, 6, hits[0].Distance, 1e-3)
}

func TestMissReturnsNothing(t *testing.T) {
	cube := unitCube("cube", math.Vec3{X: 2, Y: 1})
	root := scene.NewNode("root").Add(cube)
	cam := newCamera(math.Vec3{Z: 10}, math.Vec3{})

	for _, ndc := range []math.Vec2{{X: -0.9, Y: -0.9}, {X: -0.5, Y: 0.8}, {}} {
		ray, err := Cast(ndc, cam)
		require.NoError(t, err)
		hits := Intersect(ray, root, true)
		assert.Empty(t, hits)
		_, ok := Resolver{}.Resolve(hits)
		assert.False(t, ok)
	}
}

func TestIntersectOrdering(t *testing.T) {
	ray := Ray{Origin: math.Vec3{Z: 10}, Direction: math.Vec3{Z: -1}}
	far := unitCube("far", math.Vec3{Z: -3})
	near := unitCube("near", math.Vec3{Z: 3})
	twinA := unitCube("twinA", math.Vec3{})
	twinB := unitCube("twinB", math.Vec3{})
	root := scene.NewNode("root").Add(far, twinA, near, twinB)

	hits := Intersect(ray, root, true)
	require.Len(t, hits, 4)
	var names []string
	for _, h := range hits {
		names = append(names, h.Node.Name)
	}
	assert.Equal(t, []string{"near", "twinA", "twinB", "far"}, names, "ties keep document order")

	for _, h := range hits {
		assert.GreaterOrEqual(t, h.Distance, float32(0))
	}
}

func TestIntersectPickability(t *testing.T) {
	ray := Ray{Origin: math.Vec3{Z: 10}, Direction: math.Vec3{Z: -1}}

	grid := unitCube("grid", math.Vec3{Z: 5})
	grid.Pickable = false

	building := scene.NewNode("building")
	wall := unitCube("wall", math.Vec3{})
	wall.Pickable = false // inherits from building
	building.Add(wall)

	gizmo := scene.NewNode("gizmo")
	gizmo.Pickable = false
	handle := unitCube("handle", math.Vec3{Z: -2}) // pickable on its own
	gizmo.Add(handle)

	root := scene.NewNode("root")
	root.Pickable = false
	root.Add(grid, building, gizmo)

	hits := Intersect(ray, root, true)
	require.Len(t, hits, 2)
	assert.Same(t, wall, hits[0].Node)
	assert.Same(t, handle, hits[1].Node)

	got, ok := Resolver{}.Resolve(hits)
	require.True(t, ok)
	assert.Same(t, building, got, "non-pickable sub-mesh resolves to its pickable ancestor")
}

func TestHelpersDoNotInheritPickability(t *testing.T) {
	ray := Ray{Origin: math.Vec3{Z: 10}, Direction: math.Vec3{Z: -1}}

	grid := unitCube("grid", math.Vec3{Z: 2})
	grid.Helper = true
	grid.Pickable = false
	tick := unitCube("tick", math.Vec3{Z: 1})
	tick.Pickable = false
	grid.Add(tick)
	marker := unitCube("marker", math.Vec3{Z: -1}) // explicitly pickable under a helper
	grid.Add(marker)

	root := scene.NewNode("root") // pickable grouping node
	root.Add(grid)

	hits := Intersect(ray, root, true)
	require.Len(t, hits, 1)
	assert.Same(t, marker, hits[0].Node)

	// Starting the walk below the helper keeps the same answer.
	hits = Intersect(ray, tick, true)
	assert.Empty(t, hits)
}

func TestSortHitsTieGroups(t *testing.T) {
	// a~b and b~c are within TieEpsilon but a and c are not, so a and b
	// form one tie group and c starts the next.
	a := Intersection{Distance: 1, order: 2}
	b := Intersection{Distance: 1 + 0.6*TieEpsilon, order: 1}
	c := Intersection{Distance: 1 + 1.2*TieEpsilon, order: 0}

	perms := [][]Intersection{
		{a, b, c}, {a, c, b}, {b, a, c}, {b, c, a}, {c, a, b}, {c, b, a},
	}
	for _, hits := range perms {
		sortHits(hits)
		got := []int{hits[0].order, hits[1].order, hits[2].order}
		assert.Equal(t, []int{1, 2, 0}, got)
	}
}

func TestIntersectNonRecursive(t *testing.T) {
	ray := Ray{Origin: math.Vec3{Z: 10}, Direction: math.Vec3{Z: -1}}
	root := scene.NewNode("root").Add(unitCube("child", math.Vec3{}))

	assert.Empty(t, Intersect(ray, root, false), "grouping root has no bounds")
	assert.Len(t, Intersect(ray, root, true), 1)

	self := unitCube("self", math.Vec3{})
	assert.Len(t, Intersect(ray, self, false), 1)
}

func TestIntersectNilRoot(t *testing.T) {
	ray := Ray{Origin: math.Vec3{Z: 10}, Direction: math.Vec3{Z: -1}}
	assert.Empty(t, Intersect(ray, nil, true))
}
