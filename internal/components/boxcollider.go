package components

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"walksim/internal/engine"
	"walksim/internal/physics"
)

type BoxCollider struct {
	engine.BaseComponent
	Size   rl.Vector3
	Offset rl.Vector3
}

func NewBoxCollider(size rl.Vector3) *BoxCollider {
	return &BoxCollider{
		Size:   size,
		Offset: rl.Vector3{},
	}
}

// GetCenter returns the world-space center of this collider
func (b *BoxCollider) GetCenter() rl.Vector3 {
	return rl.Vector3Add(b.GetGameObject().WorldPosition(), b.Offset)
}

// GetWorldSize returns the collider size scaled by the object's world scale.
func (b *BoxCollider) GetWorldSize() rl.Vector3 {
	s := b.GetGameObject().WorldScale()
	return rl.Vector3{X: b.Size.X * s.X, Y: b.Size.Y * s.Y, Z: b.Size.Z * s.Z}
}

// GetAABB returns the world-space box. Rotation is ignored; scene geometry
// used for collision is axis aligned.
func (b *BoxCollider) GetAABB() physics.AABB {
	return physics.NewAABBFromCenter(b.GetCenter(), b.GetWorldSize())
}

func (b *BoxCollider) IntersectRay(origin, direction rl.Vector3, maxDistance float32) (physics.RaycastHit, bool) {
	if b.GetGameObject() == nil {
		return physics.RaycastHit{}, false
	}
	return physics.RayBox(origin, direction, b.GetAABB(), maxDistance)
}

// BoundsOf returns the union of every BoxCollider at or below g.
func BoundsOf(g *engine.GameObject) (physics.AABB, bool) {
	var out physics.AABB
	found := false
	if g == nil {
		return out, false
	}
	g.Walk(func(n *engine.GameObject) bool {
		if box := engine.GetComponent[*BoxCollider](n); box != nil {
			if !found {
				out, found = box.GetAABB(), true
			} else {
				out = out.Union(box.GetAABB())
			}
		}
		return true
	})
	return out, found
}
