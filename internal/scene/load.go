package scene

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/Faultbox/orbitview/pkg/math"
)

// ErrNoRoot is returned when a manifest describes no nodes.
var ErrNoRoot = errors.New("scene: manifest has no nodes")

// LoadError reports a failed scene load. It is terminal for the view that
// requested the load.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("loading scene %s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// manifest is the on-disk scene description.
type manifest struct {
	Name  string         `yaml:"name"`
	Nodes []manifestNode `yaml:"nodes"`
}

type manifestNode struct {
	Name      string          `yaml:"name"`
	Position  [3]float32      `yaml:"position"`
	Scale     *[3]float32     `yaml:"scale"`
	RotationY float32         `yaml:"rotation_y"`
	Box       *manifestBox    `yaml:"box"`
	Sphere    *manifestSphere `yaml:"sphere"`
	Pickable  *bool           `yaml:"pickable"`
	Helper    bool            `yaml:"helper"`
	Children  []manifestNode  `yaml:"children"`
}

type manifestBox struct {
	Min [3]float32 `yaml:"min"`
	Max [3]float32 `yaml:"max"`
}

type manifestSphere struct {
	Center [3]float32 `yaml:"center"`
	Radius float32    `yaml:"radius"`
}

// Load reads a YAML scene manifest and builds its node tree. Failures are
// returned as *LoadError.
func Load(path string) (*Node, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}
	root, err := Parse(data)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}
	return root, nil
}

// Parse builds a node tree from manifest bytes. The returned root is a
// non-pickable grouping node named after the manifest; geometry defaults to
// pickable and helpers default to non-pickable.
func Parse(data []byte) (*Node, error) {
	var m manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parsing manifest: %w", err)
	}
	if len(m.Nodes) == 0 {
		return nil, ErrNoRoot
	}

	name := m.Name
	if name == "" {
		name = "scene"
	}
	root := NewNode(name)
	root.Pickable = false
	for i := range m.Nodes {
		child, err := buildNode(&m.Nodes[i])
		if err != nil {
			return nil, err
		}
		root.Add(child)
	}
	return root, nil
}

func buildNode(mn *manifestNode) (*Node, error) {
	n := NewNode(mn.Name)
	n.Position = vec3(mn.Position)
	n.RotationY = mn.RotationY
	if mn.Scale != nil {
		n.Scale = vec3(*mn.Scale)
	}
	n.Helper = mn.Helper
	n.Pickable = !mn.Helper
	if mn.Pickable != nil {
		n.Pickable = *mn.Pickable
	}

	switch {
	case mn.Box != nil && mn.Sphere != nil:
		return nil, fmt.Errorf("node %q: box and sphere are mutually exclusive", mn.Name)
	case mn.Box != nil:
		n.Bounds = Bounds{Kind: BoundsBox, Box: math.NewAABB(vec3(mn.Box.Min), vec3(mn.Box.Max))}
	case mn.Sphere != nil:
		if mn.Sphere.Radius <= 0 {
			return nil, fmt.Errorf("node %q: sphere radius must be positive", mn.Name)
		}
		n.Bounds = Bounds{Kind: BoundsSphere, Sphere: math.Sphere{Center: vec3(mn.Sphere.Center), Radius: mn.Sphere.Radius}}
	}

	if !n.Position.IsFinite() || !n.Scale.IsFinite() || !math.IsFinite(n.RotationY) {
		return nil, fmt.Errorf("node %q: non-finite transform", mn.Name)
	}

	for i := range mn.Children {
		child, err := buildNode(&mn.Children[i])
		if err != nil {
			return nil, err
		}
		n.Add(child)
	}
	return n, nil
}

func vec3(a [3]float32) math.Vec3 {
	return math.Vec3{X: a[0], Y: a[1], Z: a[2]}
}
