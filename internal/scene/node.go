// Package scene holds the read-only scene graph shared by both viewer views.
package scene

import (
	"sync/atomic"

	"github.com/Faultbox/orbitview/pkg/math"
)

var nextID atomic.Uint32

// BoundsKind selects which bounding volume a node carries.
type BoundsKind uint8

const (
	BoundsNone BoundsKind = iota // grouping node, never hit directly
	BoundsBox
	BoundsSphere
)

// Bounds is a bounding volume in the node's local space.
type Bounds struct {
	Kind   BoundsKind
	Box    math.AABB
	Sphere math.Sphere
}

// Node is one entry of the scene graph. After load the graph is never
// mutated, so it can be shared between views without locking.
type Node struct {
	ID   uint32
	Name string

	// Local transform: translate * rotateY * scale.
	Position  math.Vec3
	RotationY float32
	Scale     math.Vec3

	Bounds Bounds

	// Pickable marks the node (and, by inheritance, its subtree) as a pick
	// candidate. Helper nodes such as grids and gizmos leave it false.
	Pickable bool
	Helper   bool

	parent   *Node
	children []*Node
}

// NewNode creates a pickable node with identity transform and a unique ID.
func NewNode(name string) *Node {
	return &Node{
		ID:       nextID.Add(1),
		Name:     name,
		Scale:    math.Vec3{X: 1, Y: 1, Z: 1},
		Pickable: true,
	}
}

// NewBox creates a pickable node with box bounds.
func NewBox(name string, min, max math.Vec3) *Node {
	n := NewNode(name)
	n.Bounds = Bounds{Kind: BoundsBox, Box: math.NewAABB(min, max)}
	return n
}

// NewSphere creates a pickable node with sphere bounds.
func NewSphere(name string, center math.Vec3, radius float32) *Node {
	n := NewNode(name)
	n.Bounds = Bounds{Kind: BoundsSphere, Sphere: math.Sphere{Center: center, Radius: radius}}
	return n
}

// Add appends children in document order and returns n for chaining.
func (n *Node) Add(children ...*Node) *Node {
	for _, c := range children {
		c.parent = n
		n.children = append(n.children, c)
	}
	return n
}

// Parent returns the parent node, or nil for a root.
func (n *Node) Parent() *Node {
	return n.parent
}

// Children returns the node's children in document order.
func (n *Node) Children() []*Node {
	return n.children
}

// LocalMatrix returns the node's transform relative to its parent.
func (n *Node) LocalMatrix() math.Mat4 {
	return math.Translate(n.Position.X, n.Position.Y, n.Position.Z).
		Mul(math.RotateY(n.RotationY)).
		Mul(math.Scale(n.Scale.X, n.Scale.Y, n.Scale.Z))
}

// WorldMatrix returns the node's transform in world space.
func (n *Node) WorldMatrix() math.Mat4 {
	m := n.LocalMatrix()
	for p := n.parent; p != nil; p = p.parent {
		m = p.LocalMatrix().Mul(m)
	}
	return m
}

// InheritsPickable reports whether the node is a pick candidate: pickable
// itself, or a non-helper below a candidate. Helpers stop inheritance.
func (n *Node) InheritsPickable() bool {
	for p := n; p != nil; p = p.parent {
		if p.Pickable {
			return true
		}
		if p.Helper {
			return false
		}
	}
	return false
}

// PickableAncestor returns the nearest node, starting with n itself, whose
// Pickable flag is set.
func (n *Node) PickableAncestor() *Node {
	for p := n; p != nil; p = p.parent {
		if p.Pickable {
			return p
		}
	}
	return nil
}

// Root returns the top of the node's tree.
func (n *Node) Root() *Node {
	r := n
	for r.parent != nil {
		r = r.parent
	}
	return r
}

// WorldAABB returns the axis-aligned world-space box of the node's own
// bounds. ok is false for nodes without bounds.
func (n *Node) WorldAABB() (box math.AABB, ok bool) {
	switch n.Bounds.Kind {
	case BoundsBox:
		return n.Bounds.Box.Transform(n.WorldMatrix()), true
	case BoundsSphere:
		return n.Bounds.Sphere.Transform(n.WorldMatrix()).AABB(), true
	}
	return math.AABB{}, false
}

// SubtreeAABB returns the union of the world bounds of n and all of its
// descendants. ok is false if nothing in the subtree has bounds.
func (n *Node) SubtreeAABB() (box math.AABB, ok bool) {
	n.Walk(func(c *Node) bool {
		b, has := c.WorldAABB()
		if !has {
			return true
		}
		if !ok {
			box, ok = b, true
		} else {
			box = box.Union(b)
		}
		return true
	})
	return box, ok
}

// Walk visits n and its descendants in document (pre-)order. Returning
// false from fn skips that node's children.
func (n *Node) Walk(fn func(*Node) bool) {
	if !fn(n) {
		return
	}
	for _, c := range n.children {
		c.Walk(fn)
	}
}

// Find returns the first node with the given name in document order.
func (n *Node) Find(name string) *Node {
	var found *Node
	n.Walk(func(c *Node) bool {
		if found != nil {
			return false
		}
		if c.Name == name {
			found = c
			return false
		}
		return true
	})
	return found
}
