package collision

import "math"

// Vec2 is a point or direction in world space.
type Vec2 struct {
	X, Y float64
}

func (v Vec2) Sub(o Vec2) Vec2    { return Vec2{v.X - o.X, v.Y - o.Y} }
func (v Vec2) Dot(o Vec2) float64 { return v.X*o.X + v.Y*o.Y }

// Rotate turns v counter-clockwise by angle radians.
func (v Vec2) Rotate(angle float64) Vec2 {
	s, c := math.Sincos(angle)
	return Vec2{v.X*c - v.Y*s, v.X*s + v.Y*c}
}

// Isometry is a rigid transform: rotation about the origin, then translation.
type Isometry struct {
	Translation Vec2
	Rotation    float64 // radians, counter-clockwise
}

func Identity() Isometry { return Isometry{} }

// Inverse maps a world point into local space.
func (iso Isometry) Inverse(p Vec2) Vec2 {
	return p.Sub(iso.Translation).Rotate(-iso.Rotation)
}

// AABB is an axis-aligned bounding box.
type AABB struct {
	Min, Max Vec2
}

// Loosen grows the box by margin on every side.
func (b AABB) Loosen(margin float64) AABB {
	return AABB{
		Min: Vec2{b.Min.X - margin, b.Min.Y - margin},
		Max: Vec2{b.Max.X + margin, b.Max.Y + margin},
	}
}

// Shape is the geometry of a collision object in its local frame.
type Shape interface {
	// AABB returns the world-space bounds of the shape placed at iso.
	AABB(iso Isometry) AABB
}

// Ball is a circle centred on the local origin.
type Ball struct {
	Radius float64
}

func (b Ball) AABB(iso Isometry) AABB {
	c := iso.Translation
	return AABB{
		Min: Vec2{c.X - b.Radius, c.Y - b.Radius},
		Max: Vec2{c.X + b.Radius, c.Y + b.Radius},
	}
}

// Cuboid is a rectangle centred on the local origin.
type Cuboid struct {
	HalfW, HalfH float64
}

func (c Cuboid) AABB(iso Isometry) AABB {
	s, k := math.Sincos(iso.Rotation)
	s, k = math.Abs(s), math.Abs(k)
	ex := k*c.HalfW + s*c.HalfH
	ey := s*c.HalfW + k*c.HalfH
	t := iso.Translation
	return AABB{
		Min: Vec2{t.X - ex, t.Y - ey},
		Max: Vec2{t.X + ex, t.Y + ey},
	}
}

// axes returns the cuboid's two face normals in world space.
func (c Cuboid) axes(iso Isometry) [2]Vec2 {
	return [2]Vec2{Vec2{1, 0}.Rotate(iso.Rotation), Vec2{0, 1}.Rotate(iso.Rotation)}
}

// project returns the half-length of the cuboid's projection onto axis.
func (c Cuboid) project(iso Isometry, axis Vec2) float64 {
	ax := c.axes(iso)
	return c.HalfW*math.Abs(ax[0].Dot(axis)) + c.HalfH*math.Abs(ax[1].Dot(axis))
}
