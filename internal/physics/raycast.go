package physics

import (
	"sort"

	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"

	"walksim/internal/engine"
)

type RaycastHit struct {
	GameObject *engine.GameObject
	Point      rl.Vector3
	Normal     rl.Vector3
	Distance   float32
}

// Collider is implemented by components that can be hit by rays.
// direction is unit length when this is called.
type Collider interface {
	engine.Component
	IntersectRay(origin, direction rl.Vector3, maxDistance float32) (RaycastHit, bool)
}

// HasCollider reports whether g carries at least one enabled Collider.
func HasCollider(g *engine.GameObject) bool {
	if g == nil {
		return false
	}
	for _, c := range g.Components() {
		if _, ok := c.(Collider); ok && engine.IsEnabled(c) {
			return true
		}
	}
	return false
}

// ColliderNodes returns roots and their descendants that carry a collider,
// each at most once, in hierarchy order.
func ColliderNodes(roots ...*engine.GameObject) []*engine.GameObject {
	seen := map[*engine.GameObject]bool{}
	var out []*engine.GameObject
	for _, r := range roots {
		if r == nil {
			continue
		}
		r.Walk(func(n *engine.GameObject) bool {
			if seen[n] {
				return false
			}
			seen[n] = true
			if HasCollider(n) {
				out = append(out, n)
			}
			return true
		})
	}
	return out
}

// RaycastAll tests the ray against every collider on nodes and returns the
// hits sorted nearest first. Inactive nodes and disabled colliders are
// skipped. A zero-length direction yields no hits.
func RaycastAll(origin, direction rl.Vector3, maxDistance float32, nodes []*engine.GameObject) []RaycastHit {
	if rl.Vector3LengthSqr(direction) < 1e-12 || maxDistance <= 0 {
		return nil
	}
	direction = rl.Vector3Normalize(direction)

	var hits []RaycastHit
	for _, obj := range nodes {
		if obj == nil || !obj.ActiveInHierarchy() {
			continue
		}
		best, found := RaycastHit{Distance: maxDistance}, false
		for _, c := range obj.Components() {
			col, ok := c.(Collider)
			if !ok || !engine.IsEnabled(c) {
				continue
			}
			if h, ok := col.IntersectRay(origin, direction, maxDistance); ok && h.Distance <= best.Distance {
				best, found = h, true
			}
		}
		if found {
			best.GameObject = obj
			hits = append(hits, best)
		}
	}
	sort.SliceStable(hits, func(i, j int) bool { return hits[i].Distance < hits[j].Distance })
	return hits
}

// Raycast returns the closest hit among nodes.
func Raycast(origin, direction rl.Vector3, maxDistance float32, nodes []*engine.GameObject) (RaycastHit, bool) {
	hits := RaycastAll(origin, direction, maxDistance, nodes)
	if len(hits) == 0 {
		return RaycastHit{}, false
	}
	return hits[0], true
}

// RayBox intersects a ray with an axis-aligned box using the slab method.
// A ray starting inside the box reports the exit face.
func RayBox(origin, direction rl.Vector3, box AABB, maxDistance float32) (RaycastHit, bool) {
	minB, maxB := box.Min, box.Max
	tmin := float32(-1e30)
	tmax := float32(1e30)

	o := [3]float32{origin.X, origin.Y, origin.Z}
	d := [3]float32{direction.X, direction.Y, direction.Z}
	lo := [3]float32{minB.X, minB.Y, minB.Z}
	hi := [3]float32{maxB.X, maxB.Y, maxB.Z}

	for axis := 0; axis < 3; axis++ {
		if d[axis] == 0 {
			if o[axis] < lo[axis] || o[axis] > hi[axis] {
				return RaycastHit{}, false
			}
			continue
		}
		t1 := (lo[axis] - o[axis]) / d[axis]
		t2 := (hi[axis] - o[axis]) / d[axis]
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		if t1 > tmin {
			tmin = t1
		}
		if t2 < tmax {
			tmax = t2
		}
		if tmin > tmax {
			return RaycastHit{}, false
		}
	}

	if tmax < 0 || tmin > maxDistance {
		return RaycastHit{}, false
	}
	t := tmin
	if t < 0 {
		t = tmax
	}
	if t < 0 || t > maxDistance {
		return RaycastHit{}, false
	}

	point := rl.Vector3Add(origin, rl.Vector3Scale(direction, t))

	// Normal from the face the point lies on
	var normal rl.Vector3
	epsilon := float32(0.001)
	switch {
	case abs(point.X-minB.X) < epsilon:
		normal = rl.Vector3{X: -1}
	case abs(point.X-maxB.X) < epsilon:
		normal = rl.Vector3{X: 1}
	case abs(point.Z-minB.Z) < epsilon:
		normal = rl.Vector3{Z: -1}
	case abs(point.Z-maxB.Z) < epsilon:
		normal = rl.Vector3{Z: 1}
	case abs(point.Y-minB.Y) < epsilon:
		normal = rl.Vector3{Y: -1}
	case abs(point.Y-maxB.Y) < epsilon:
		normal = rl.Vector3{Y: 1}
	}

	return RaycastHit{Point: point, Normal: normal, Distance: t}, true
}

// RaySphere intersects a ray with a sphere.
func RaySphere(origin, direction, center rl.Vector3, radius, maxDistance float32) (RaycastHit, bool) {
	oc := rl.Vector3Subtract(origin, center)
	a := rl.Vector3DotProduct(direction, direction)
	b := 2.0 * rl.Vector3DotProduct(oc, direction)
	c := rl.Vector3DotProduct(oc, oc) - radius*radius

	discriminant := b*b - 4*a*c
	if discriminant < 0 || a == 0 {
		return RaycastHit{}, false
	}

	sq := math32.Sqrt(discriminant)
	t := (-b - sq) / (2 * a)
	if t < 0 {
		t = (-b + sq) / (2 * a)
	}
	if t < 0 || t > maxDistance {
		return RaycastHit{}, false
	}

	point := rl.Vector3Add(origin, rl.Vector3Scale(direction, t))
	normal := rl.Vector3Normalize(rl.Vector3Subtract(point, center))

	return RaycastHit{Point: point, Normal: normal, Distance: t}, true
}
