// Package teleport moves the NPC to scripted spawn points as the player
// advances along the waypoint path, sometimes turning the camera toward it.
package teleport

import (
	"log"

	rl "github.com/gen2brain/raylib-go/raylib"

	"walksim/internal/app"
	"walksim/internal/config"
	"walksim/internal/diag"
	"walksim/internal/engine"
	"walksim/internal/physics"
	"walksim/internal/registry"
	"walksim/internal/tween"
)

type Config struct {
	// LookChance is the probability in [0,1] that an arrival with a spawn
	// also turns the camera to the NPC.
	LookChance  float64
	LookSeconds float64
	Spawns      map[int]rl.Vector3
}

func ConfigFrom(t config.TeleportTuning) Config {
	cfg := Config{
		LookSeconds: t.LookSeconds,
		Spawns:      make(map[int]rl.Vector3, len(t.Spawns)),
	}
	if t.LookChance != nil {
		cfg.LookChance = *t.LookChance
	}
	for _, s := range t.Spawns {
		cfg.Spawns[s.Waypoint] = s.Position.V()
	}
	return cfg
}

type Choreographer struct {
	ctx     *app.Context
	cfg     Config
	walking bool
	looks   int
}

func New(ctx *app.Context, cfg Config) *Choreographer {
	c := &Choreographer{ctx: ctx, cfg: cfg}
	app.Subscribe(ctx, func(ev app.ArrivedAtWaypoint) { c.Arrive(ev.Index) })
	app.Subscribe(ctx, func(ev app.WalkModeChanged) { c.walking = ev.Active })
	return c
}

// Looks counts how many arrivals turned the camera.
func (c *Choreographer) Looks() int { return c.looks }

// Arrive places the NPC at the spawn keyed by waypoint index, if any. It
// reports whether the NPC was moved.
func (c *Choreographer) Arrive(index int) bool {
	if c.walking {
		return false
	}
	pos, ok := c.cfg.Spawns[index]
	if !ok {
		return false
	}
	npc := c.ctx.Role(registry.RoleNPC)
	if npc == nil {
		diag.WarnOnce("teleport:npc", "Teleport", "no npc in scene, spawns ignored")
		return false
	}
	c.place(npc, pos)
	log.Printf("Teleport: npc to %v at waypoint %d", pos, index)

	if c.cfg.LookChance > 0 && c.ctx.Rand.Float64() < c.cfg.LookChance {
		c.look(npc.WorldPosition())
	}
	return true
}

func (c *Choreographer) place(npc *engine.GameObject, pos rl.Vector3) {
	npc.Transform.Position = pos
	npc.Transform.Rotation.Y = -physics.YawTowards(pos, c.ctx.View.Position)
}

func (c *Choreographer) look(target rl.Vector3) {
	view := c.ctx.View
	yaw, pitch := view.Angles(target)
	fromYaw, fromPitch := view.Yaw, view.Pitch
	c.looks++
	c.ctx.Tweens.Start(app.TweenLook, c.cfg.LookSeconds, tween.SineInOut, func(k float32) {
		view.Yaw = fromYaw + (yaw-fromYaw)*k
		view.Pitch = fromPitch + (pitch-fromPitch)*k
	}, nil)
}
