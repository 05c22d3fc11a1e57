package physics

import rl "github.com/gen2brain/raylib-go/raylib"

type AABB struct {
	Min rl.Vector3
	Max rl.Vector3
}

// NewAABBFromCenter creates an AABB from a center point and full size dimensions.
func NewAABBFromCenter(center, size rl.Vector3) AABB {
	half := rl.Vector3{X: abs(size.X) / 2, Y: abs(size.Y) / 2, Z: abs(size.Z) / 2}
	return AABB{
		Min: rl.Vector3Subtract(center, half),
		Max: rl.Vector3Add(center, half),
	}
}

func (a AABB) Intersects(b AABB) bool {
	return a.Min.X <= b.Max.X && a.Max.X >= b.Min.X &&
		a.Min.Y <= b.Max.Y && a.Max.Y >= b.Min.Y &&
		a.Min.Z <= b.Max.Z && a.Max.Z >= b.Min.Z
}

func (a AABB) Center() rl.Vector3 {
	return rl.Vector3Scale(rl.Vector3Add(a.Min, a.Max), 0.5)
}

func (a AABB) Size() rl.Vector3 {
	return rl.Vector3Subtract(a.Max, a.Min)
}

// Union returns the smallest box containing both.
func (a AABB) Union(b AABB) AABB {
	return AABB{
		Min: rl.Vector3{X: min(a.Min.X, b.Min.X), Y: min(a.Min.Y, b.Min.Y), Z: min(a.Min.Z, b.Min.Z)},
		Max: rl.Vector3{X: max(a.Max.X, b.Max.X), Y: max(a.Max.Y, b.Max.Y), Z: max(a.Max.Z, b.Max.Z)},
	}
}

// InsetXZ shrinks the box horizontally by d on every side. A box narrower
// than 2d collapses to its center line on that axis.
func (a AABB) InsetXZ(d float32) AABB {
	c := a.Center()
	out := a
	out.Min.X, out.Max.X = a.Min.X+d, a.Max.X-d
	if out.Min.X > out.Max.X {
		out.Min.X, out.Max.X = c.X, c.X
	}
	out.Min.Z, out.Max.Z = a.Min.Z+d, a.Max.Z-d
	if out.Min.Z > out.Max.Z {
		out.Min.Z, out.Max.Z = c.Z, c.Z
	}
	return out
}

// Contains reports whether p lies inside the box grown by eps on every axis.
func (a AABB) Contains(p rl.Vector3, eps float32) bool {
	return p.X >= a.Min.X-eps && p.X <= a.Max.X+eps &&
		p.Y >= a.Min.Y-eps && p.Y <= a.Max.Y+eps &&
		p.Z >= a.Min.Z-eps && p.Z <= a.Max.Z+eps
}

// Clamp returns p moved onto the box on each axis it lies outside of.
func (a AABB) Clamp(p rl.Vector3) rl.Vector3 {
	return rl.Vector3{
		X: clamp(p.X, a.Min.X, a.Max.X),
		Y: clamp(p.Y, a.Min.Y, a.Max.Y),
		Z: clamp(p.Z, a.Min.Z, a.Max.Z),
	}
}

// Resolve returns the shortest axis push that moves a out of b, or zero
// when they do not overlap.
func (a AABB) Resolve(b AABB) rl.Vector3 {
	if !a.Intersects(b) {
		return rl.Vector3Zero()
	}
	pushes := [6]rl.Vector3{
		{X: b.Max.X - a.Min.X}, {X: b.Min.X - a.Max.X},
		{Y: b.Max.Y - a.Min.Y}, {Y: b.Min.Y - a.Max.Y},
		{Z: b.Max.Z - a.Min.Z}, {Z: b.Min.Z - a.Max.Z},
	}
	best := pushes[0]
	for _, p := range pushes[1:] {
		if rl.Vector3LengthSqr(p) < rl.Vector3LengthSqr(best) {
			best = p
		}
	}
	return best
}
