package math

// AABB is an axis-aligned bounding box.
type AABB struct {
	Min Vec3
	Max Vec3
}

// NewAABB creates an AABB from two corners, ordering each axis so Min <= Max.
func NewAABB(a, b Vec3) AABB {
	return AABB{Min: a.Min(b), Max: a.Max(b)}
}

// Center returns the midpoint of the box.
func (b AABB) Center() Vec3 {
	return b.Min.Add(b.Max).Scale(0.5)
}

// Size returns the extent of the box along each axis.
func (b AABB) Size() Vec3 {
	return b.Max.Sub(b.Min)
}

// Union returns the smallest box containing both b and other.
func (b AABB) Union(other AABB) AABB {
	return AABB{Min: b.Min.Min(other.Min), Max: b.Max.Max(other.Max)}
}

// Corners returns the eight corners of the box.
func (b AABB) Corners() [8]Vec3 {
	return [8]Vec3{
		{b.Min.X, b.Min.Y, b.Min.Z},
		{b.Max.X, b.Min.Y, b.Min.Z},
		{b.Min.X, b.Max.Y, b.Min.Z},
		{b.Max.X, b.Max.Y, b.Min.Z},
		{b.Min.X, b.Min.Y, b.Max.Z},
		{b.Max.X, b.Min.Y, b.Max.Z},
		{b.Min.X, b.Max.Y, b.Max.Z},
		{b.Max.X, b.Max.Y, b.Max.Z},
	}
}

// Transform returns the axis-aligned box enclosing b after transformation by m.
func (b AABB) Transform(m Mat4) AABB {
	corners := b.Corners()
	first := m.TransformVec3(corners[0])
	out := AABB{Min: first, Max: first}
	for _, c := range corners[1:] {
		p := m.TransformVec3(c)
		out.Min = out.Min.Min(p)
		out.Max = out.Max.Max(p)
	}
	return out
}

// Sphere is a bounding sphere.
type Sphere struct {
	Center Vec3
	Radius float32
}

// Transform returns the sphere after transformation by m. The radius is
// scaled by the largest axis scale so the result still encloses the volume.
func (s Sphere) Transform(m Mat4) Sphere {
	sx := m.TransformDirection(UnitX).Length()
	sy := m.TransformDirection(UnitY).Length()
	sz := m.TransformDirection(UnitZ).Length()
	scale := sx
	if sy > scale {
		scale = sy
	}
	if sz > scale {
		scale = sz
	}
	return Sphere{Center: m.TransformVec3(s.Center), Radius: s.Radius * scale}
}

// AABB returns the box enclosing the sphere.
func (s Sphere) AABB() AABB {
	r := Vec3{s.Radius, s.Radius, s.Radius}
	return AABB{Min: s.Center.Sub(r), Max: s.Center.Add(r)}
}
