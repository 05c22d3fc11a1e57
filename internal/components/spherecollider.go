package components

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"walksim/internal/engine"
	"walksim/internal/physics"
)

type SphereCollider struct {
	engine.BaseComponent
	Radius float32
	Offset rl.Vector3
}

func NewSphereCollider(radius float32) *SphereCollider {
	return &SphereCollider{
		Radius: radius,
		Offset: rl.Vector3{},
	}
}

// GetCenter returns the world-space center of this collider
func (s *SphereCollider) GetCenter() rl.Vector3 {
	return rl.Vector3Add(s.GetGameObject().WorldPosition(), s.Offset)
}

func (s *SphereCollider) IntersectRay(origin, direction rl.Vector3, maxDistance float32) (physics.RaycastHit, bool) {
	if s.GetGameObject() == nil {
		return physics.RaycastHit{}, false
	}
	return physics.RaySphere(origin, direction, s.GetCenter(), s.Radius, maxDistance)
}
