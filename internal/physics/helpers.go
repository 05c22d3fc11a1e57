package physics

import (
	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// NearZero is the length below which a displacement counts as no movement.
const NearZero = 1e-5

func abs(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}

func clamp(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Flatten drops the vertical component.
func Flatten(v rl.Vector3) rl.Vector3 {
	return rl.Vector3{X: v.X, Z: v.Z}
}

// FlatDirection returns the horizontal unit direction of v, or zero when v
// is vertical or zero.
func FlatDirection(v rl.Vector3) rl.Vector3 {
	f := Flatten(v)
	l := rl.Vector3Length(f)
	if l < NearZero {
		return rl.Vector3{}
	}
	return rl.Vector3Scale(f, 1/l)
}

// HorizontalDistance is the distance between a and b ignoring height.
func HorizontalDistance(a, b rl.Vector3) float32 {
	return math32.Hypot(b.X-a.X, b.Z-a.Z)
}

// WithinRadius reports whether a and b are at most r apart.
func WithinRadius(a, b rl.Vector3, r float32) bool {
	return rl.Vector3DistanceSqr(a, b) <= r*r
}

// SlideAlong removes the part of v that pushes into a surface with the given
// normal, leaving motion tangential to it. Motion away from the surface and
// zero normals pass through unchanged.
func SlideAlong(v, normal rl.Vector3) rl.Vector3 {
	l := rl.Vector3Length(normal)
	if l < NearZero {
		return v
	}
	n := rl.Vector3Scale(normal, 1/l)
	into := rl.Vector3DotProduct(v, n)
	if into >= 0 {
		return v
	}
	return rl.Vector3Subtract(v, rl.Vector3Scale(n, into))
}

// RotateY rotates v around the vertical axis by deg degrees.
func RotateY(v rl.Vector3, deg float32) rl.Vector3 {
	s, c := math32.Sincos(deg * rl.Deg2rad)
	return rl.Vector3{
		X: v.X*c - v.Z*s,
		Y: v.Y,
		Z: v.X*s + v.Z*c,
	}
}

// YawTowards returns the yaw in degrees that faces from -> to on the
// horizontal plane, using the engine convention forward = (cos yaw, 0, sin yaw).
func YawTowards(from, to rl.Vector3) float32 {
	return math32.Atan2(to.Z-from.Z, to.X-from.X) * rl.Rad2deg
}
