package picking

import "github.com/Faultbox/orbitview/internal/scene"

// Policy selects which node a hit resolves to.
type Policy uint8

const (
	// PolicyNearest returns the hit node itself, or its nearest pickable
	// ancestor when the node is not pickable on its own.
	PolicyNearest Policy = iota
	// PolicySnapToRoot returns the top-level object the hit belongs to
	// (the ancestor directly under the scene root) instead of a sub-mesh.
	PolicySnapToRoot
)

// Resolver chooses exactly one node from an ordered list of intersections.
// Geometry tests live in Intersect; Resolver holds only selection policy.
type Resolver struct {
	Policy Policy

	// Ignore, if set, skips hits whose node it reports true for.
	Ignore func(*scene.Node) bool
}

// Resolve returns the node for the first qualifying hit, or false if none
// qualifies.
func (r Resolver) Resolve(hits []Intersection) (*scene.Node, bool) {
	for _, h := range hits {
		if h.Node == nil || (r.Ignore != nil && r.Ignore(h.Node)) {
			continue
		}
		n := h.Node.PickableAncestor()
		if n == nil {
			continue
		}
		if r.Policy == PolicySnapToRoot {
			n = topLevel(n)
		}
		return n, true
	}
	return nil, false
}

// topLevel climbs to the ancestor whose parent is the tree root.
func topLevel(n *scene.Node) *scene.Node {
	for n.Parent() != nil && n.Parent().Parent() != nil {
		n = n.Parent()
	}
	return n
}
