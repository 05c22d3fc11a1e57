// Package interact binds named scene objects to "click moves the object
// itself". One object is active at a time, and switching away from it waits
// for its cooldown.
package interact

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"walksim/internal/app"
	"walksim/internal/components"
	"walksim/internal/config"
	"walksim/internal/diag"
	"walksim/internal/engine"
	"walksim/internal/physics"
	"walksim/internal/tween"
)

type Binding struct {
	Name      string
	Offset    rl.Vector3 // added to the rest position when active
	Rotation  rl.Vector3 // added to the rest rotation when active, degrees
	Duration  float64
	Cooldown  float64
	Spin      bool
	SpinSpeed float32
	Sway      bool
	ClickOnce bool

	Active      bool
	Clicked     bool
	activatedAt float64

	ref     engine.GameObjectRef
	restPos rl.Vector3
	restRot rl.Vector3
	sway    *components.Sway
}

func (b *Binding) Node(scene *engine.Scene) *engine.GameObject {
	return b.ref.Get(scene)
}

func (b *Binding) tweenKey() string { return "object:" + b.Name }

func BindingsFrom(objs []config.InteractObject) []Binding {
	out := make([]Binding, 0, len(objs))
	for _, o := range objs {
		out = append(out, Binding{
			Name:      o.Name,
			Offset:    o.Offset.V(),
			Rotation:  o.Rotation.V(),
			Duration:  o.Duration,
			Cooldown:  o.Cooldown,
			Spin:      o.Spin,
			SpinSpeed: o.SpinSpeed,
			Sway:      o.Sway,
			ClickOnce: o.ClickOnce,
		})
	}
	return out
}

type Manager struct {
	ctx         *app.Context
	bindings    []*Binding
	allowed     []rl.Vector3
	allowRadius float32
	active      *Binding
	enabled     bool
}

func New(ctx *app.Context, bindings []Binding, allowed []rl.Vector3, allowRadius float32) *Manager {
	m := &Manager{
		ctx:         ctx,
		allowed:     allowed,
		allowRadius: allowRadius,
		enabled:     true,
	}
	for i := range bindings {
		b := bindings[i]
		node := ctx.Scene.FindByName(b.Name)
		if node == nil {
			diag.WarnOnce("interact:"+b.Name, "Interact", "object %q not found, binding skipped", b.Name)
			continue
		}
		b.ref = engine.RefTo(node)
		b.restPos = node.Transform.Position
		b.restRot = node.Transform.Rotation
		if b.Spin || b.Sway {
			b.sway = engine.GetComponent[*components.Sway](node)
			if b.sway == nil {
				b.sway = components.NewSway()
				node.AddComponent(b.sway)
			}
			b.sway.EnableSpin = b.Spin
			b.sway.EnableSway = b.Sway
			if b.SpinSpeed != 0 {
				b.sway.SpinSpeed = b.SpinSpeed
			}
		}
		m.bindings = append(m.bindings, &b)
	}
	app.Subscribe(ctx, func(ev app.WalkModeChanged) { m.enabled = !ev.Active })
	return m
}

func (m *Manager) Active() *Binding { return m.active }

func (m *Manager) Binding(name string) *Binding {
	for _, b := range m.bindings {
		if b.Name == name {
			return b
		}
	}
	return nil
}

func (m *Manager) nearAllowed() bool {
	if len(m.allowed) == 0 {
		return true
	}
	for _, p := range m.allowed {
		if physics.WithinRadius(m.ctx.View.Position, p, m.allowRadius) {
			return true
		}
	}
	return false
}

// cooled reports whether b's cooldown has elapsed since it was activated.
func (m *Manager) cooled(b *Binding) bool {
	return m.ctx.Now()-b.activatedAt >= b.Cooldown
}

// PointerDown handles a click. It reports whether a bound object was hit.
// Clicks on empty space or unbound objects deactivate the active object,
// subject to its cooldown. A click that the cooldown blocks changes nothing.
func (m *Manager) PointerDown(ray rl.Ray) bool {
	if !m.enabled || !m.nearAllowed() {
		return false
	}
	b := m.pick(ray)
	if b == nil {
		if m.active != nil && m.cooled(m.active) {
			m.Deactivate(m.active)
		}
		return false
	}

	switch {
	case m.active == b:
		if m.cooled(b) {
			m.Deactivate(b)
		}
	case m.active != nil:
		if !m.cooled(m.active) {
			return true
		}
		m.Deactivate(m.active)
		m.Activate(b)
	default:
		m.Activate(b)
	}
	return true
}

func (m *Manager) pick(ray rl.Ray) *Binding {
	roots := make([]*engine.GameObject, 0, len(m.bindings))
	for _, b := range m.bindings {
		if n := b.Node(m.ctx.Scene); n != nil {
			roots = append(roots, n)
		}
	}
	hit, ok := physics.Raycast(ray.Position, ray.Direction, 1000, physics.ColliderNodes(roots...))
	if !ok {
		return nil
	}
	for n := hit.GameObject; n != nil; n = n.Parent {
		for _, b := range m.bindings {
			if b.ref.Refers(n) {
				return b
			}
		}
	}
	return nil
}

// Activate animates b to its active pose, then starts its spin or sway.
func (m *Manager) Activate(b *Binding) {
	if b.ClickOnce && b.Clicked {
		return
	}
	node := b.Node(m.ctx.Scene)
	if node == nil {
		return
	}
	b.Active, b.Clicked = true, true
	b.activatedAt = m.ctx.Now()
	m.active = b

	m.move(b, node, rl.Vector3Add(b.restPos, b.Offset), rl.Vector3Add(b.restRot, b.Rotation), func() {
		if b.sway != nil && b.Active {
			b.sway.Begin()
		}
	})
}

// Deactivate stops b's animation at once and moves it back to the transform
// it had when bound.
func (m *Manager) Deactivate(b *Binding) {
	if b.sway != nil {
		b.sway.Stop()
	}
	b.Active = false
	if m.active == b {
		m.active = nil
	}
	node := b.Node(m.ctx.Scene)
	if node == nil {
		m.ctx.Tweens.Kill(b.tweenKey())
		return
	}
	m.move(b, node, b.restPos, b.restRot, nil)
}

func (m *Manager) move(b *Binding, node *engine.GameObject, pos, rot rl.Vector3, done func()) {
	fromPos, fromRot := node.Transform.Position, node.Transform.Rotation
	m.ctx.Tweens.Start(b.tweenKey(), b.Duration, tween.InOut, func(k float32) {
		node.Transform.Position = rl.Vector3Lerp(fromPos, pos, k)
		node.Transform.Rotation = rl.Vector3Lerp(fromRot, rot, k)
	}, done)
}
