package chase

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"walksim/internal/physics"
)

// updateOcclusion casts one ray from the eye to the NPC. If something other
// than the NPC is hit first the NPC counts as hidden, which drives the
// screen effect and the presence cue. A clear ray or a direct hit on the
// NPC counts as visible.
func (c *Controller) updateOcclusion() {
	view := c.ctx.View
	target := c.npc.WorldPosition()
	toNPC := rl.Vector3Subtract(target, view.Position)
	dist := rl.Vector3Length(toNPC)

	hidden := false
	if dist > physics.NearZero {
		nodes := append(physics.ColliderNodes(c.npc), c.colliderSet()...)
		if hit, ok := physics.Raycast(view.Position, toNPC, dist, nodes); ok {
			hidden = !hit.GameObject.IsDescendantOf(c.npc)
		}
	}

	c.hidden = hidden
	c.ctx.Overlay.SetHiddenEffect(hidden)
	_, right := view.Basis()
	c.ctx.Presence.Update(hidden, view.Position, right, target)
}
