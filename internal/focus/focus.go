// Package focus binds named scene objects to "click moves the viewpoint to a
// configured spot" and keeps their on-screen indicators up to date.
package focus

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"walksim/internal/app"
	"walksim/internal/camera"
	"walksim/internal/config"
	"walksim/internal/diag"
	"walksim/internal/engine"
	"walksim/internal/physics"
	"walksim/internal/tween"
)

// Binding ties a scene node, by name, to a focus position. The node is
// referenced weakly and never owned.
type Binding struct {
	Name     string
	Target   rl.Vector3
	LookAt   *rl.Vector3
	Duration float64
	Callback string

	Clicked bool
	ref     engine.GameObjectRef
}

// Node resolves the bound node, or nil if it is gone.
func (b *Binding) Node(scene *engine.Scene) *engine.GameObject {
	return b.ref.Get(scene)
}

// Callback runs when a focus transition completes.
type Callback func(b *Binding)

type Config struct {
	IndicatorRadius  float32
	Occlusion        bool
	TransitIntensity float32
}

func ConfigFrom(t config.FocusTuning) Config {
	return Config{
		IndicatorRadius:  t.IndicatorRadius,
		Occlusion:        t.Occlusion,
		TransitIntensity: t.TransitIntensity,
	}
}

// BindingsFrom converts tuning records into bindings.
func BindingsFrom(objs []config.FocusObject) []Binding {
	out := make([]Binding, 0, len(objs))
	for _, o := range objs {
		b := Binding{
			Name:     o.Name,
			Target:   o.Target.V(),
			Duration: o.Duration,
			Callback: o.Callback,
		}
		if o.LookAt != nil {
			v := o.LookAt.V()
			b.LookAt = &v
		}
		out = append(out, b)
	}
	return out
}

type returnPoint struct {
	position   rl.Vector3
	yaw, pitch float32
}

type Manager struct {
	ctx       *app.Context
	cfg       Config
	allow     []rl.Vector3
	bindings  []*Binding
	callbacks map[string]Callback
	back      *returnPoint
	enabled   bool

	pending *Binding
	restore float32
}

func New(ctx *app.Context, bindings []Binding, allow []rl.Vector3, cfg Config) *Manager {
	m := &Manager{
		ctx:       ctx,
		cfg:       cfg,
		allow:     allow,
		callbacks: make(map[string]Callback),
		enabled:   true,
	}
	for i := range bindings {
		b := bindings[i]
		node := ctx.Scene.FindByName(b.Name)
		if node == nil {
			diag.WarnOnce("focus:"+b.Name, "Focus", "object %q not found, binding skipped", b.Name)
			continue
		}
		b.ref = engine.RefTo(node)
		m.bindings = append(m.bindings, &b)
	}
	app.Subscribe(ctx, func(ev app.PopupClosed) { m.Reset(ev.Name) })
	app.Subscribe(ctx, func(ev app.WalkModeChanged) { m.enabled = !ev.Active })
	return m
}

func (m *Manager) RegisterCallback(name string, fn Callback) {
	m.callbacks[name] = fn
}

func (m *Manager) Bindings() []*Binding { return m.bindings }

func (m *Manager) Binding(name string) *Binding {
	for _, b := range m.bindings {
		if b.Name == name {
			return b
		}
	}
	return nil
}

// PointerDown casts the pointer ray against the bound objects only and
// activates the binding that owns the hit node.
func (m *Manager) PointerDown(ray rl.Ray) bool {
	if !m.enabled {
		return false
	}
	roots := make([]*engine.GameObject, 0, len(m.bindings))
	for _, b := range m.bindings {
		if n := b.Node(m.ctx.Scene); n != nil {
			roots = append(roots, n)
		}
	}
	hit, ok := physics.Raycast(ray.Position, ray.Direction, 1000, physics.ColliderNodes(roots...))
	if !ok {
		return false
	}
	b := m.owner(hit.GameObject)
	if b == nil {
		return false
	}
	m.Activate(b)
	return true
}

func (m *Manager) owner(n *engine.GameObject) *Binding {
	for ; n != nil; n = n.Parent {
		for _, b := range m.bindings {
			if b.ref.Refers(n) {
				return b
			}
		}
	}
	return nil
}

// Activate moves the viewpoint to b's target. The flashlight is dimmed during
// the move and restored when it ends.
func (m *Manager) Activate(b *Binding) {
	view := m.ctx.View
	light := m.ctx.Light
	if !m.inTransit() {
		m.back = &returnPoint{position: view.Position, yaw: view.Yaw, pitch: view.Pitch}
		m.restore = light.FlashlightIntensity()
	}
	m.pending = b
	restore := m.restore

	m.ctx.Tweens.Float(app.TweenLight, light.FlashlightIntensity(), m.cfg.TransitIntensity, b.Duration/2, tween.InOut,
		light.SetFlashlightIntensity, nil)
	m.ctx.Tweens.Vec3(app.TweenViewpoint, view.Position, b.Target, b.Duration, tween.InOut,
		func(v rl.Vector3) { view.Position = v },
		func() {
			m.pending = nil
			m.ctx.Tweens.Kill(app.TweenLight)
			light.SetFlashlightIntensity(restore)
			m.arrive(b)
		})

	if b.LookAt != nil {
		at := *view
		at.Position = b.Target
		yaw, pitch := at.Angles(*b.LookAt)
		m.turn(view, yaw, pitch, b.Duration)
	}
}

// inTransit reports whether a focus transition is still moving the viewpoint.
func (m *Manager) inTransit() bool {
	return m.pending != nil && m.ctx.Tweens.Active(app.TweenViewpoint)
}

func (m *Manager) turn(view *camera.Viewpoint, yaw, pitch float32, duration float64) {
	fromYaw, fromPitch := view.Yaw, view.Pitch
	m.ctx.Tweens.Start(app.TweenLook, duration, tween.InOut, func(k float32) {
		view.Yaw = fromYaw + (yaw-fromYaw)*k
		view.Pitch = fromPitch + (pitch-fromPitch)*k
	}, nil)
}

func (m *Manager) arrive(b *Binding) {
	if fn, ok := m.callbacks[b.Callback]; ok && b.Callback != "" {
		diag.Guard("Focus callback "+b.Callback, func() { fn(b) })
	}
	b.Clicked = true
	app.Publish(m.ctx, app.FocusArrived{Name: b.Name})
}

// Return animates back to where the viewpoint was before the last focus.
func (m *Manager) Return(duration float64) bool {
	if m.back == nil {
		return false
	}
	back := *m.back
	m.back = nil
	view := m.ctx.View
	m.ctx.Tweens.Vec3(app.TweenViewpoint, view.Position, back.position, duration, tween.InOut,
		func(v rl.Vector3) { view.Position = v }, nil)
	m.turn(view, back.yaw, back.pitch, duration)
	return true
}

// CanReturn reports whether a stored pre-focus viewpoint exists.
func (m *Manager) CanReturn() bool { return m.back != nil }

// Reset clears the clicked state so the indicator can show again.
func (m *Manager) Reset(name string) {
	if b := m.Binding(name); b != nil {
		b.Clicked = false
	}
}

// Update recomputes every indicator. An indicator shows when the viewpoint
// is at an allowed position, the object is unclicked, in front of the view,
// projects onto the screen and, with occlusion enabled, is not hidden by
// nearer geometry.
func (m *Manager) Update() {
	var blockers []*engine.GameObject
	if m.cfg.Occlusion && m.enabled {
		blockers = m.occluders()
	}
	for _, b := range m.bindings {
		visible, at := m.indicator(b, blockers)
		m.ctx.Overlay.SetIndicator(b.Name, visible, at)
	}
}

func (m *Manager) occluders() []*engine.GameObject {
	var nodes []*engine.GameObject
	m.ctx.Scene.Traverse(func(g *engine.GameObject) {
		if physics.HasCollider(g) && !g.HasTag("orb") {
			nodes = append(nodes, g)
		}
	})
	return nodes
}

func (m *Manager) nearAllowed() bool {
	pos := m.ctx.View.Position
	for _, p := range m.allow {
		if physics.WithinRadius(pos, p, m.cfg.IndicatorRadius) {
			return true
		}
	}
	return false
}

func (m *Manager) indicator(b *Binding, blockers []*engine.GameObject) (bool, rl.Vector2) {
	if !m.enabled || b.Clicked || !m.nearAllowed() {
		return false, rl.Vector2{}
	}
	node := b.Node(m.ctx.Scene)
	if node == nil || !node.ActiveInHierarchy() {
		return false, rl.Vector2{}
	}
	view := m.ctx.View
	target := node.WorldPosition()
	toObj := rl.Vector3Subtract(target, view.Position)
	if rl.Vector3DotProduct(view.Forward(), toObj) <= 0 {
		return false, rl.Vector2{}
	}
	screen, ok := m.ctx.Projector.WorldToScreen(target)
	if !ok {
		return false, rl.Vector2{}
	}
	if m.cfg.Occlusion {
		dist := rl.Vector3Length(toObj)
		hit, blocked := physics.Raycast(view.Position, toObj, dist, blockers)
		if blocked && hit.Distance < dist-0.05 && !hit.GameObject.IsDescendantOf(node) {
			return false, rl.Vector2{}
		}
	}
	return true, screen
}
