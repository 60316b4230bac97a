// Package debug builds line geometry for visualizing scene bounds.
package debug

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/orbitview/internal/scene"
	"github.com/Faultbox/orbitview/pkg/math"
)

// LineVertex is one endpoint of a line segment, [x, y, z, r, g, b].
type LineVertex struct {
	X, Y, Z float32 // Position
	R, G, B float32 // Color
}

// LineVertexFloats is the number of float32 values per LineVertex.
const LineVertexFloats = 6

// Color is an RGB triple in [0, 1].
type Color [3]float32

// Colors used by the render sink.
var (
	ColorBounds   = Color{0.6, 0.6, 0.6}
	ColorHelper   = Color{0.3, 0.3, 0.35}
	ColorSelected = Color{1.0, 0.8, 0.1}
	ColorFocus    = Color{0.2, 0.9, 0.3}
)

// BoxEdgeCount is the number of edges of a box; each edge is two vertices.
const BoxEdgeCount = 12

// Corner indices follow math.AABB.Corners: bit 0 is X, bit 1 is Y, bit 2 is Z.
var boxEdges = [BoxEdgeCount][2]int{
	{0, 1}, {2, 3}, {4, 5}, {6, 7}, // along X
	{0, 2}, {1, 3}, {4, 6}, {5, 7}, // along Y
	{0, 4}, {1, 5}, {2, 6}, {3, 7}, // along Z
}

func vertex(p math.Vec3, c Color) LineVertex {
	return LineVertex{p.X, p.Y, p.Z, c[0], c[1], c[2]}
}

// BoxEdges returns the 24 vertices of the 12 edges joining corners, which
// must be ordered like math.AABB.Corners. The corners may be transformed.
func BoxEdges(corners [8]math.Vec3, c Color) []LineVertex {
	out := make([]LineVertex, 0, BoxEdgeCount*2)
	for _, e := range boxEdges {
		out = append(out, vertex(corners[e[0]], c), vertex(corners[e[1]], c))
	}
	return out
}

// BoxWireframe outlines an axis-aligned box grown by padding on every side.
func BoxWireframe(box math.AABB, padding float32, c Color) []LineVertex {
	pad := math.Vec3{X: padding, Y: padding, Z: padding}
	grown := math.NewAABB(box.Min.Sub(pad), box.Max.Add(pad))
	return BoxEdges(grown.Corners(), c)
}

// SphereWireframe draws three great circles of s, one per axis plane.
func SphereWireframe(s math.Sphere, segments int, c Color) []LineVertex {
	if segments < 3 {
		segments = 3
	}
	out := make([]LineVertex, 0, 3*segments*2)
	point := func(plane, i int) math.Vec3 {
		a := 2 * math32.Pi * float32(i) / float32(segments)
		u, v := s.Radius*math32.Cos(a), s.Radius*math32.Sin(a)
		switch plane {
		case 0:
			return s.Center.Add(math.Vec3{X: u, Y: v})
		case 1:
			return s.Center.Add(math.Vec3{X: u, Z: v})
		}
		return s.Center.Add(math.Vec3{Y: u, Z: v})
	}
	for plane := 0; plane < 3; plane++ {
		for i := 0; i < segments; i++ {
			out = append(out, vertex(point(plane, i), c), vertex(point(plane, i+1), c))
		}
	}
	return out
}

// NodeWireframe outlines the node's own bounds in world space. Boxes keep
// their orientation. Nodes without bounds yield nothing.
func NodeWireframe(n *scene.Node, c Color) []LineVertex {
	world := n.WorldMatrix()
	switch n.Bounds.Kind {
	case scene.BoundsBox:
		corners := n.Bounds.Box.Corners()
		for i := range corners {
			corners[i] = world.TransformVec3(corners[i])
		}
		return BoxEdges(corners, c)
	case scene.BoundsSphere:
		return SphereWireframe(n.Bounds.Sphere.Transform(world), 24, c)
	}
	return nil
}

// SceneWireframe outlines every node under root. Helper nodes use
// ColorHelper, everything else ColorBounds.
func SceneWireframe(root *scene.Node) []LineVertex {
	if root == nil {
		return nil
	}
	var out []LineVertex
	root.Walk(func(n *scene.Node) bool {
		c := ColorBounds
		if n.Helper {
			c = ColorHelper
		}
		out = append(out, NodeWireframe(n, c)...)
		return true
	})
	return out
}

// GroundGrid returns grid lines on the plane y spanning [-extent, extent]
// on X and Z with the given spacing.
func GroundGrid(extent, spacing, y float32, c Color) []LineVertex {
	if spacing <= 0 || extent <= 0 {
		return nil
	}
	steps := int(2 * extent / spacing)
	out := make([]LineVertex, 0, (steps+1)*4)
	for i := 0; i <= steps; i++ {
		d := -extent + float32(i)*spacing
		out = append(out,
			vertex(math.Vec3{X: d, Y: y, Z: -extent}, c),
			vertex(math.Vec3{X: d, Y: y, Z: extent}, c),
			vertex(math.Vec3{X: -extent, Y: y, Z: d}, c),
			vertex(math.Vec3{X: extent, Y: y, Z: d}, c),
		)
	}
	return out
}

// Crosshair marks p with three axis-aligned segments of the given size.
func Crosshair(p math.Vec3, size float32, c Color) []LineVertex {
	h := size / 2
	return []LineVertex{
		vertex(p.Sub(math.Vec3{X: h}), c), vertex(p.Add(math.Vec3{X: h}), c),
		vertex(p.Sub(math.Vec3{Y: h}), c), vertex(p.Add(math.Vec3{Y: h}), c),
		vertex(p.Sub(math.Vec3{Z: h}), c), vertex(p.Add(math.Vec3{Z: h}), c),
	}
}
