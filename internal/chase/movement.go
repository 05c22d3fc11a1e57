package chase

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"walksim/internal/physics"
)

// move integrates player input for one frame: flattened view basis, collision
// slide, then a hard clamp into the walk bounds.
func (c *Controller) move(forward, strafe, dt float32) {
	view := c.ctx.View
	f, r := view.Basis()
	disp := rl.Vector3Add(rl.Vector3Scale(f, forward), rl.Vector3Scale(r, strafe))
	if l := rl.Vector3Length(disp); l > 1 {
		disp = rl.Vector3Scale(disp, 1/l)
	}
	disp = rl.Vector3Scale(disp, c.cfg.Speed*dt)

	if rl.Vector3Length(disp) >= physics.NearZero {
		disp = c.Resolve(view.Position, disp)
		view.Position = rl.Vector3Add(view.Position, disp)
	}
	view.Position = c.bounds.Clamp(view.Position)
}

// Resolve slides a candidate displacement off nearby colliders. Rays are cast
// from pos at RayAngles evenly spaced headings and each of the RayHeights;
// a hit within the player radius removes the part of disp that pushes into
// the hit surface. A displacement that collapses to near zero is blocked.
func (c *Controller) Resolve(pos, disp rl.Vector3) rl.Vector3 {
	colliders := c.colliderSet()
	if len(colliders) == 0 || c.cfg.RayAngles <= 0 {
		return disp
	}
	reach := c.cfg.PlayerRadius + rl.Vector3Length(disp)
	step := 360 / float32(c.cfg.RayAngles)

	for _, h := range c.cfg.RayHeights {
		origin := rl.Vector3{X: pos.X, Y: pos.Y + h, Z: pos.Z}
		for i := 0; i < c.cfg.RayAngles; i++ {
			dir := physics.RotateY(rl.Vector3{X: 1}, float32(i)*step)
			if rl.Vector3DotProduct(dir, disp) <= 0 {
				continue
			}
			hit, ok := physics.Raycast(origin, dir, reach, colliders)
			if !ok {
				continue
			}
			normal := physics.FlatDirection(hit.Normal)
			if rl.Vector3LengthSqr(normal) == 0 {
				continue
			}
			// Slides apply in sequence; at a non-orthogonal corner a later
			// slide can lead back into an earlier surface.
			disp = physics.SlideAlong(disp, normal)
		}
	}
	if rl.Vector3Length(disp) < physics.NearZero {
		return rl.Vector3{}
	}
	return disp
}
