package picking

import (
	"cmp"
	"slices"

	"github.com/Faultbox/orbitview/internal/scene"
	"github.com/Faultbox/orbitview/pkg/math"
)

// TieEpsilon is the distance within which two hits count as equally near.
// Ties keep traversal (document) order.
const TieEpsilon = 1e-5

// Intersection is one ray hit against a node's world bounds.
type Intersection struct {
	Node     *scene.Node
	Distance float32
	Point    math.Vec3

	order int
}

// Intersect tests ray against root (and, if recursive, its descendants) and
// returns the hits nearest first. Only nodes that are pickable themselves or
// through an ancestor are tested; helpers never inherit pickability. A nil
// root yields no hits.
func Intersect(ray Ray, root *scene.Node, recursive bool) []Intersection {
	if root == nil {
		return nil
	}

	var hits []Intersection
	inherited := false
	if p := root.Parent(); p != nil {
		inherited = p.InheritsPickable()
	}
	collect(ray, root, inherited, recursive, &hits)
	sortHits(hits)
	return hits
}

// sortHits orders hits by distance. Runs of hits within TieEpsilon of the
// first hit of the run form one tie group, ordered by traversal.
func sortHits(hits []Intersection) {
	slices.SortFunc(hits, func(a, b Intersection) int {
		if c := cmp.Compare(a.Distance, b.Distance); c != 0 {
			return c
		}
		return cmp.Compare(a.order, b.order)
	})
	for start := 0; start < len(hits); {
		end := start + 1
		for end < len(hits) && hits[end].Distance-hits[start].Distance <= TieEpsilon {
			end++
		}
		slices.SortFunc(hits[start:end], func(a, b Intersection) int {
			return cmp.Compare(a.order, b.order)
		})
		start = end
	}
}

func collect(ray Ray, n *scene.Node, inherited, recursive bool, hits *[]Intersection) {
	pickable := n.Pickable || (inherited && !n.Helper)
	if pickable {
		if t, ok := hitNode(ray, n); ok {
			*hits = append(*hits, Intersection{
				Node:     n,
				Distance: t,
				Point:    ray.At(t),
				order:    len(*hits),
			})
		}
	}
	if !recursive {
		return
	}
	for _, c := range n.Children() {
		collect(ray, c, pickable, true, hits)
	}
}

func hitNode(ray Ray, n *scene.Node) (float32, bool) {
	switch n.Bounds.Kind {
	case scene.BoundsBox:
		return ray.IntersectAABB(n.Bounds.Box.Transform(n.WorldMatrix()))
	case scene.BoundsSphere:
		return ray.IntersectSphere(n.Bounds.Sphere.Transform(n.WorldMatrix()))
	}
	return 0, false
}
