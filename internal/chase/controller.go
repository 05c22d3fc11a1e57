// Package chase runs walk-mode and the pursuit game inside it: free movement
// with wall sliding, an NPC that steers toward the player, a visibility
// effect when the NPC is hidden, and the win and lose sequences.
package chase

import (
	"log"

	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"

	"walksim/internal/app"
	"walksim/internal/components"
	"walksim/internal/diag"
	"walksim/internal/engine"
	"walksim/internal/physics"
	"walksim/internal/registry"
)

// Items is the collectible collaborator: it can put every item back and
// report the checklist.
type Items interface {
	Respawn()
	Flags() []bool
}

type Controller struct {
	ctx   *app.Context
	cfg   Config
	items Items
	npc   *engine.GameObject

	state   State
	walking bool

	bounds    physics.AABB
	colliders []*engine.GameObject
	obstacles []*engine.GameObject

	countdownEnd  float64
	cinematicDone bool
	introShown    bool
	loseFired     bool
	winFired      bool

	nextDecision float64
	npcDir       rl.Vector3
	hidden       bool

	cin *cinematic
}

func New(ctx *app.Context, cfg Config, items Items) *Controller {
	c := &Controller{
		ctx:           ctx,
		cfg:           cfg,
		items:         items,
		cinematicDone: true,
	}
	c.resolveNPC()
	app.Subscribe(ctx, c.onItem)
	return c
}

func (c *Controller) State() State { return c.state }

func (c *Controller) Walking() bool { return c.walking }

func (c *Controller) Hidden() bool { return c.hidden }

func (c *Controller) Bounds() physics.AABB { return c.bounds }

func (c *Controller) NPC() *engine.GameObject { return c.npc }

// resolveNPC looks the NPC up through the role registry until it exists.
func (c *Controller) resolveNPC() bool {
	if c.npc != nil {
		return true
	}
	c.npc = c.ctx.Role(registry.RoleNPC)
	if c.npc == nil {
		diag.WarnOnce("chase:npc", "Chase", "no npc in scene, chase disabled")
		return false
	}
	return true
}

func (c *Controller) setState(s State) {
	if c.state == s {
		return
	}
	from := c.state
	c.state = s
	log.Printf("Chase: %s -> %s", from, s)
	app.Publish(c.ctx, app.ChaseStateChanged{From: from.String(), To: s.String()})
}

// Update runs one frame. The order matters: exit check, countdown,
// player movement, NPC steering, occlusion, lose check, cinematic.
func (c *Controller) Update(forward, strafe, dt float32) {
	if !c.resolveNPC() {
		return
	}
	now := c.ctx.Now()
	view := c.ctx.View

	if c.walking && !c.bounds.Contains(view.Position, c.cfg.ExitEpsilon) {
		c.exit()
	}
	if !c.walking && c.cin == nil && c.nearAnchor() {
		c.enter()
	}

	if c.walking {
		c.stepCountdown(now)
		if !c.state.Cinematic() {
			c.move(forward, strafe, dt)
		}
		if c.state == Active {
			c.steer(now, dt)
		}
		c.updateOcclusion()
		if c.state == Active && !c.loseFired &&
			physics.HorizontalDistance(view.Position, c.npc.WorldPosition()) < c.cfg.LoseDistance {
			c.lose()
		}
	}

	c.advanceCinematic(c.ctx.Now())
}

func (c *Controller) nearAnchor() bool {
	if !c.cfg.HasAnchor || c.ctx.Tweens.Active(app.TweenViewpoint) {
		return false
	}
	return physics.WithinRadius(c.ctx.View.Position, c.cfg.Anchor, c.cfg.TriggerRadius)
}

// enter switches to walk-mode. Without usable bounds the area cannot be
// entered.
func (c *Controller) enter() {
	bounds, ok := c.computeBounds()
	if !ok {
		diag.WarnOnce("chase:bounds", "Chase", "no bounds for the walk area, walk-mode unavailable")
		return
	}
	if !bounds.Contains(c.ctx.View.Position, c.cfg.ExitEpsilon) {
		diag.WarnOnce("chase:anchor", "Chase", "anchor %v lies outside walk bounds", c.cfg.Anchor)
		return
	}
	c.bounds = bounds
	c.colliders, c.obstacles = nil, nil
	c.walking = true
	log.Printf("Chase: entered walk-mode, bounds %v..%v", bounds.Min, bounds.Max)
	app.Publish(c.ctx, app.WalkModeChanged{Active: true})
	c.maybeStartCountdown()
}

func (c *Controller) exit() {
	c.walking = false
	c.colliders, c.obstacles = nil, nil
	if c.state == Countdown || c.state == Active {
		c.setState(Dormant)
		c.placeNPC(c.cfg.NPCSpawn)
	}
	c.hidden = false
	ov := c.ctx.Overlay
	ov.SetCountdown(0, false)
	ov.SetChecklist(c.flags(), false)
	ov.SetHiddenEffect(false)
	c.ctx.Presence.Update(false, c.ctx.View.Position, rl.Vector3{}, c.npc.WorldPosition())
	log.Printf("Chase: left walk-mode")
	app.Publish(c.ctx, app.WalkModeChanged{Active: false})
}

func (c *Controller) computeBounds() (physics.AABB, bool) {
	if c.cfg.Bounds != nil {
		return *c.cfg.Bounds, true
	}
	var floor, walls physics.AABB
	hasFloor, hasWalls := false, false
	for _, n := range c.ctx.RoleNodes(registry.RoleFloor) {
		if b, ok := components.BoundsOf(n); ok {
			if hasFloor {
				floor = floor.Union(b)
			} else {
				floor, hasFloor = b, true
			}
		}
	}
	for _, n := range c.ctx.RoleNodes(registry.RoleWalls) {
		if b, ok := components.BoundsOf(n); ok {
			if hasWalls {
				walls = walls.Union(b)
			} else {
				walls, hasWalls = b, true
			}
		}
	}
	if !hasFloor && !hasWalls {
		return physics.AABB{}, false
	}
	var area physics.AABB
	switch {
	case hasFloor && hasWalls:
		area = floor.Union(walls)
		area.Min.Y, area.Max.Y = floor.Max.Y, walls.Max.Y
	case hasFloor:
		area = floor
		area.Min.Y = floor.Max.Y
		area.Max.Y = floor.Max.Y + 3
	default:
		area = walls
	}
	return area.InsetXZ(c.cfg.BoundsInset), true
}

// colliderSet builds the ray targets for this walk-mode session on first
// use: walls, floor and a tall proxy per table.
func (c *Controller) colliderSet() []*engine.GameObject {
	if c.colliders != nil {
		return c.colliders
	}
	walls := physics.ColliderNodes(c.ctx.RoleNodes(registry.RoleWalls)...)
	floor := physics.ColliderNodes(c.ctx.RoleNodes(registry.RoleFloor)...)
	proxies := c.tableProxies()

	c.obstacles = append(append([]*engine.GameObject{}, walls...), proxies...)
	c.colliders = append(append([]*engine.GameObject{}, c.obstacles...), floor...)
	return c.colliders
}

// tableProxies stands an invisible box on each table footprint that reaches
// well below the floor and above the ceiling, so rays can't pass over or
// under the furniture.
func (c *Controller) tableProxies() []*engine.GameObject {
	var out []*engine.GameObject
	for _, t := range c.ctx.RoleNodes(registry.RoleTable) {
		b, ok := components.BoundsOf(t)
		if !ok {
			continue
		}
		size := b.Size()
		size.Y += 2 * c.cfg.TableProxyHeight
		proxy := engine.NewGameObject(t.Name + "_proxy")
		proxy.Transform.Position = b.Center()
		proxy.AddComponent(components.NewBoxCollider(size))
		out = append(out, proxy)
	}
	return out
}

func (c *Controller) flags() []bool {
	if c.items == nil {
		return nil
	}
	return c.items.Flags()
}

func (c *Controller) maybeStartCountdown() {
	if c.state != Dormant || !c.cinematicDone || !c.walking {
		return
	}
	c.countdownEnd = c.ctx.Now() + c.cfg.Countdown
	c.setState(Countdown)
	c.ctx.Overlay.SetCountdown(int(math32.Ceil(float32(c.cfg.Countdown))), true)
}

func (c *Controller) stepCountdown(now float64) {
	if c.state == Dormant {
		c.maybeStartCountdown()
		return
	}
	if c.state != Countdown {
		return
	}
	if now < c.countdownEnd {
		c.ctx.Overlay.SetCountdown(int(math32.Ceil(float32(c.countdownEnd-now))), true)
		return
	}
	c.ctx.Overlay.SetCountdown(0, false)
	c.nextDecision = now
	c.setState(Active)
	if !c.introShown {
		c.introShown = true
		c.ctx.Overlay.ShowIntro()
	}
	c.ctx.Overlay.SetChecklist(c.flags(), true)
}

func (c *Controller) onItem(ev app.ItemCollected) {
	c.ctx.Overlay.SetChecklist(c.flags(), c.state == Active)
	if !ev.All || c.winFired || !c.walking || c.state.Cinematic() {
		return
	}
	c.win()
}

func (c *Controller) lose() {
	c.loseFired = true
	c.cinematicDone = false
	c.ctx.Achievements.Unlock(app.AchievementCaught)
	c.setState(Lost)
	c.startCinematic(app.FadeLose, c.cfg.LoseFadeIn, c.cfg.LoseFadeOut, func() {
		c.ctx.Tweens.Kill(app.TweenViewpoint)
		c.ctx.View.Position = c.cfg.Recovery
		c.placeNPC(c.cfg.NPCSpawn)
	}, func() {
		c.loseFired = false
	})
}

func (c *Controller) win() {
	c.winFired = true
	c.cinematicDone = false
	c.ctx.Achievements.Unlock(app.AchievementEscaped)
	c.placeNPC(c.cfg.NPCSpawn)
	if c.items != nil {
		c.items.Respawn()
	}
	c.setState(Won)
	c.ctx.Overlay.SetChecklist(c.flags(), false)
	c.startCinematic(app.FadeWin, c.cfg.WinFadeIn, c.cfg.WinFadeOut, nil, func() {
		c.winFired = false
	})
}

func (c *Controller) placeNPC(p rl.Vector3) {
	c.npc.Transform.Position = p
	c.npcDir = rl.Vector3{}
}
