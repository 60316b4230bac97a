package debug

import (
	"image/png"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/orbitview/internal/scene"
	"github.com/Faultbox/orbitview/pkg/math"
)

func pos(v LineVertex) math.Vec3 {
	return math.Vec3{X: v.X, Y: v.Y, Z: v.Z}
}

func TestBoxWireframeEdges(t *testing.T) {
	box := math.AABB{Min: math.Vec3{}, Max: math.Vec3{X: 1, Y: 2, Z: 3}}
	verts := BoxWireframe(box, 0, ColorBounds)
	require.Len(t, verts, BoxEdgeCount*2)

	// Every edge is axis-aligned and as long as the box along that axis.
	for i := 0; i < len(verts); i += 2 {
		d := pos(verts[i+1]).Sub(pos(verts[i]))
		l := d.Length()
		switch {
		case d.X != 0:
			assert.Equal(t, float32(1), l)
		case d.Y != 0:
			assert.Equal(t, float32(2), l)
		default:
			assert.Equal(t, float32(3), l)
		}
	}
}

func TestBoxWireframePadding(t *testing.T) {
	box := math.AABB{Max: math.Vec3{X: 1, Y: 1, Z: 1}}
	verts := BoxWireframe(box, 0.5, ColorSelected)
	assert.Equal(t, math.Vec3{X: -0.5, Y: -0.5, Z: -0.5}, pos(verts[0]))
	assert.Equal(t, ColorSelected[0], verts[0].R)
}

func TestSphereWireframeOnSurface(t *testing.T) {
	s := math.Sphere{Center: math.Vec3{X: 1, Y: 2, Z: 3}, Radius: 2}
	verts := SphereWireframe(s, 16, ColorBounds)
	require.Len(t, verts, 3*16*2)
	for _, v := range verts {
		assert.InDelta(t, 2, pos(v).Distance(s.Center), 1e-5)
	}
}

func TestNodeWireframeUsesWorldTransform(t *testing.T) {
	parent := scene.NewNode("parent")
	parent.Position = math.Vec3{X: 10}
	box := scene.NewBox("box", math.Vec3{}, math.Vec3{X: 1, Y: 1, Z: 1})
	parent.Add(box)

	verts := NodeWireframe(box, ColorBounds)
	require.Len(t, verts, 24)
	assert.Equal(t, math.Vec3{X: 10}, pos(verts[0]))

	assert.Nil(t, NodeWireframe(parent, ColorBounds))
}

func TestSceneWireframeColorsHelpers(t *testing.T) {
	root := scene.NewNode("scene")
	grid := scene.NewBox("grid", math.Vec3{X: -5, Z: -5}, math.Vec3{X: 5, Z: 5})
	grid.Helper = true
	ball := scene.NewSphere("ball", math.Vec3{}, 1)
	root.Add(grid, ball)

	verts := SceneWireframe(root)
	require.Len(t, verts, 24+3*24*2)
	assert.Equal(t, ColorHelper[2], verts[0].B)
	assert.Equal(t, ColorBounds[2], verts[24].B)

	assert.Nil(t, SceneWireframe(nil))
}

func TestGroundGrid(t *testing.T) {
	verts := GroundGrid(5, 1, 0, ColorHelper)
	assert.Len(t, verts, 11*4)
	for _, v := range verts {
		assert.Equal(t, float32(0), v.Y)
	}
	assert.Nil(t, GroundGrid(5, 0, 0, ColorHelper))
}

func TestCrosshair(t *testing.T) {
	p := math.Vec3{X: 3, Z: -1}
	verts := Crosshair(p, 2, ColorFocus)
	require.Len(t, verts, 6)
	assert.Equal(t, math.Vec3{X: 2, Z: -1}, pos(verts[0]))
	assert.Equal(t, math.Vec3{X: 4, Z: -1}, pos(verts[1]))
}

func TestScreenshotSave(t *testing.T) {
	s := Screenshots{Dir: t.TempDir(), Prefix: "orbitview"}
	now := time.Date(2024, 5, 6, 7, 8, 9, 0, time.UTC)

	// 2x2: bottom row red, top row blue (OpenGL order).
	pixels := []byte{
		255, 0, 0, 255, 255, 0, 0, 255,
		0, 0, 255, 255, 0, 0, 255, 255,
	}
	path, err := s.Save(pixels, 2, 2, now)
	require.NoError(t, err)
	assert.Equal(t, s.Filename(now), path)

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	img, err := png.Decode(f)
	require.NoError(t, err)

	r, _, b, _ := img.At(0, 0).RGBA()
	assert.Equal(t, uint32(0), r)
	assert.Equal(t, uint32(0xffff), b, "top row comes first after the flip")
}

func TestScreenshotSizeMismatch(t *testing.T) {
	_, err := Screenshots{Dir: t.TempDir()}.Save(make([]byte, 7), 2, 2, time.Now())
	assert.Error(t, err)
}
