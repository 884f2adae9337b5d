package collision

import "math"

// overlaps reports whether two placed shapes are within margin of each other.
// Unknown shape combinations never overlap.
func overlaps(a Shape, ia Isometry, b Shape, ib Isometry, margin float64) bool {
	switch sa := a.(type) {
	case Ball:
		switch sb := b.(type) {
		case Ball:
			return ballBall(sa, ia, sb, ib, margin)
		case Cuboid:
			return ballCuboid(sa, ia, sb, ib, margin)
		}
	case Cuboid:
		switch sb := b.(type) {
		case Ball:
			return ballCuboid(sb, ib, sa, ia, margin)
		case Cuboid:
			return cuboidCuboid(sa, ia, sb, ib, margin)
		}
	}
	return false
}

func ballBall(a Ball, ia Isometry, b Ball, ib Isometry, margin float64) bool {
	d := ib.Translation.Sub(ia.Translation)
	r := a.Radius + b.Radius + margin
	return d.Dot(d) <= r*r
}

func ballCuboid(a Ball, ia Isometry, b Cuboid, ib Isometry, margin float64) bool {
	local := ib.Inverse(ia.Translation)
	closest := Vec2{
		X: math.Max(-b.HalfW, math.Min(b.HalfW, local.X)),
		Y: math.Max(-b.HalfH, math.Min(b.HalfH, local.Y)),
	}
	d := local.Sub(closest)
	r := a.Radius + margin
	return d.Dot(d) <= r*r
}

// cuboidCuboid is a separating axis test over both boxes' face normals.
func cuboidCuboid(a Cuboid, ia Isometry, b Cuboid, ib Isometry, margin float64) bool {
	d := ib.Translation.Sub(ia.Translation)
	axA, axB := a.axes(ia), b.axes(ib)
	for _, axis := range [4]Vec2{axA[0], axA[1], axB[0], axB[1]} {
		dist := math.Abs(d.Dot(axis))
		if dist > a.project(ia, axis)+b.project(ib, axis)+margin {
			return false
		}
	}
	return true
}
