package chase

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"walksim/internal/components"
	"walksim/internal/engine"
	"walksim/internal/physics"
)

// Fallback headings tried in order when both the direct path and the slide
// are blocked.
var probeOffsets = [...]float32{30, -30, 60, -60}

// steer re-decides the NPC heading at the decision rate and moves it every
// frame along the last decision.
func (c *Controller) steer(now float64, dt float32) {
	npcPos := c.npc.WorldPosition()
	target := c.ctx.View.Position
	if now >= c.nextDecision {
		c.nextDecision = now + c.cfg.DecisionInterval
		c.npcDir = c.Decide(npcPos, target)
	}
	if physics.HorizontalDistance(npcPos, target) <= c.cfg.StopDistance {
		return
	}
	if rl.Vector3LengthSqr(c.npcDir) == 0 {
		return
	}

	next := rl.Vector3Add(npcPos, rl.Vector3Scale(c.npcDir, c.cfg.NPCSpeed*dt))
	next = c.pushOut(next)
	next.X = min(max(next.X, c.bounds.Min.X), c.bounds.Max.X)
	next.Z = min(max(next.Z, c.bounds.Min.Z), c.bounds.Max.Z)
	c.npc.Transform.Position = next
	c.npc.Transform.Rotation.Y = -physics.YawTowards(next, target)
}

// Decide picks the NPC heading toward target: straight if clear, else along
// the blocking surface, else the first clear fallback heading. When every
// probe is blocked it returns zero and the NPC holds position until the
// player moves.
func (c *Controller) Decide(npcPos, target rl.Vector3) rl.Vector3 {
	if physics.HorizontalDistance(npcPos, target) <= c.cfg.StopDistance {
		return rl.Vector3{}
	}
	dir := physics.FlatDirection(rl.Vector3Subtract(target, npcPos))
	if rl.Vector3LengthSqr(dir) == 0 {
		return rl.Vector3{}
	}
	reach := min(physics.HorizontalDistance(npcPos, target), c.cfg.ProbeDistance)

	hit, blocked := c.probe(npcPos, dir, reach)
	if !blocked {
		return dir
	}
	if n := physics.FlatDirection(hit.Normal); rl.Vector3LengthSqr(n) > 0 {
		slide := physics.FlatDirection(physics.SlideAlong(dir, n))
		if rl.Vector3LengthSqr(slide) > 0 {
			if _, b := c.probe(npcPos, slide, reach); !b {
				return slide
			}
		}
	}
	for _, off := range probeOffsets {
		d := physics.RotateY(dir, off)
		if _, b := c.probe(npcPos, d, reach); !b {
			return d
		}
	}
	return rl.Vector3{}
}

func (c *Controller) probe(from, dir rl.Vector3, reach float32) (physics.RaycastHit, bool) {
	return physics.Raycast(from, dir, reach+c.cfg.NPCRadius, c.colliderSet())
}

// pushOut moves the NPC body out of walls and table proxies horizontally.
func (c *Controller) pushOut(pos rl.Vector3) rl.Vector3 {
	c.colliderSet()
	r := c.cfg.NPCRadius
	for _, o := range c.obstacles {
		box := engine.GetComponent[*components.BoxCollider](o)
		if box == nil {
			continue
		}
		body := physics.NewAABBFromCenter(pos, rl.Vector3{X: 2 * r, Y: 0.1, Z: 2 * r})
		push := body.Resolve(box.GetAABB())
		if push.Y != 0 {
			continue
		}
		pos = rl.Vector3Add(pos, push)
	}
	return pos
}
