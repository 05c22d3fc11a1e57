// Package orbs shows clickable markers for the waypoints near the viewpoint
// and moves the viewpoint to a waypoint when its marker is picked.
package orbs

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"

	"walksim/internal/app"
	"walksim/internal/components"
	"walksim/internal/config"
	"walksim/internal/engine"
	"walksim/internal/physics"
	"walksim/internal/tween"
)

// markerDrop lowers the drawn orb below eye height so it sits in view.
const markerDrop = 0.9

type Config struct {
	ExclusionRadius   float32
	Window            int
	TravelSeconds     float64
	MarkerRadius      float32
	FlashlightNormal  float32
	FlashlightDim     float32
	ShowAllInFreeRoam bool
}

// ConfigFrom reads orb settings. Showing every free-roam waypoint at once is
// a desktop-only behavior.
func ConfigFrom(t config.OrbTuning, q config.Quality) Config {
	showAll := t.ShowAllInFreeRoam != nil && *t.ShowAllInFreeRoam
	return Config{
		ExclusionRadius:   t.ExclusionRadius,
		Window:            t.Window,
		TravelSeconds:     t.TravelSeconds,
		MarkerRadius:      t.MarkerRadius,
		FlashlightNormal:  t.FlashlightNormal,
		FlashlightDim:     t.FlashlightDim,
		ShowAllInFreeRoam: showAll && !q.Mobile,
	}
}

type Marker struct {
	Index    int
	Position rl.Vector3
	Active   bool
	node     *engine.GameObject
}

type Navigator struct {
	ctx      *app.Context
	path     Path
	excluded []rl.Vector3
	cfg      Config

	markers []*Marker
	closest int
	enabled bool
	lastPos rl.Vector3
	synced  bool
}

func New(ctx *app.Context, path Path, excluded []rl.Vector3, cfg Config) *Navigator {
	n := &Navigator{
		ctx:      ctx,
		path:     path,
		excluded: excluded,
		cfg:      cfg,
		closest:  -1,
		enabled:  true,
	}
	app.Subscribe(ctx, func(ev app.WalkModeChanged) { n.SetEnabled(!ev.Active) })
	return n
}

func (n *Navigator) Path() Path { return n.path }

func (n *Navigator) ClosestIndex() int { return n.closest }

func (n *Navigator) Markers() []*Marker { return n.markers }

// IsAtLastPosition reports whether the viewpoint is at the terminal waypoint.
func (n *Navigator) IsAtLastPosition() bool {
	return n.closest >= 0 && n.closest == n.path.LastIndex()
}

func (n *Navigator) excludedIndex(i int) bool {
	w, ok := n.path.At(i)
	if !ok {
		return true
	}
	for _, e := range n.excluded {
		if physics.WithinRadius(w, e, n.cfg.ExclusionRadius) {
			return true
		}
	}
	return false
}

// Visible returns the indices that get a marker when closest is the
// viewpoint's nearest waypoint. Inside the additional sequence with
// ShowAllInFreeRoam set, every other additional index is visible; otherwise
// it is the Window indices on each side of closest within its own sequence.
func (n *Navigator) Visible(closest int) []int {
	if closest < 0 || closest >= n.path.Len() {
		return nil
	}
	lo, hi := 0, len(n.path.Base)-1
	if n.path.IsAdditional(closest) {
		lo, hi = len(n.path.Base), n.path.Len()-1
	}
	if !(n.path.IsAdditional(closest) && n.cfg.ShowAllInFreeRoam) {
		lo = max(lo, closest-n.cfg.Window)
		hi = min(hi, closest+n.cfg.Window)
	}

	var out []int
	for i := lo; i <= hi; i++ {
		if i == closest || i == n.path.Reserved() || n.excludedIndex(i) {
			continue
		}
		out = append(out, i)
	}
	return out
}

// Update clears every marker and rebuilds the set for the current viewpoint.
func (n *Navigator) Update() {
	n.clear()
	pos := n.ctx.View.Position
	n.closest = n.path.Closest(pos)
	n.lastPos, n.synced = pos, true
	if !n.enabled {
		return
	}
	for _, i := range n.Visible(n.closest) {
		w, _ := n.path.At(i)
		n.markers = append(n.markers, n.spawn(i, w))
	}
}

// Sync runs Update when the viewpoint has been moved by something other than
// an orb transition.
func (n *Navigator) Sync() {
	if n.ctx.Tweens.Active(app.TweenViewpoint) {
		return
	}
	if n.synced && rl.Vector3DistanceSqr(n.lastPos, n.ctx.View.Position) < physics.NearZero {
		return
	}
	n.Update()
}

func (n *Navigator) spawn(i int, w rl.Vector3) *Marker {
	node := engine.NewGameObject(fmt.Sprintf("orb_%d", i))
	node.Tags = []string{"orb"}
	node.Transform.Position = rl.Vector3{X: w.X, Y: w.Y - markerDrop, Z: w.Z}
	node.AddComponent(components.NewSphereCollider(n.cfg.MarkerRadius * 2))
	node.AddComponent(&components.SphereRenderer{Radius: n.cfg.MarkerRadius, Color: rl.NewColor(170, 220, 255, 220)})
	n.ctx.Scene.AddGameObject(node)
	return &Marker{Index: i, Position: w, Active: true, node: node}
}

func (n *Navigator) remove(m *Marker) {
	m.Active = false
	if m.node != nil && m.node.Scene != nil {
		m.node.Scene.RemoveGameObject(m.node)
	}
	m.node = nil
}

func (n *Navigator) clear() {
	for _, m := range n.markers {
		n.remove(m)
	}
	n.markers = nil
}

func (n *Navigator) SetEnabled(on bool) {
	if n.enabled == on {
		return
	}
	n.enabled = on
	n.Update()
}

func (n *Navigator) Enabled() bool { return n.enabled }

// Pick casts the pointer ray against the markers only. A hit marker is
// removed at once and the viewpoint starts travelling to its waypoint.
func (n *Navigator) Pick(ray rl.Ray) bool {
	if !n.enabled || len(n.markers) == 0 {
		return false
	}
	nodes := make([]*engine.GameObject, 0, len(n.markers))
	for _, m := range n.markers {
		if m.node != nil {
			nodes = append(nodes, m.node)
		}
	}
	hit, ok := physics.Raycast(ray.Position, ray.Direction, 1000, nodes)
	if !ok {
		return false
	}

	var picked *Marker
	kept := n.markers[:0]
	for _, m := range n.markers {
		if m.node == hit.GameObject && picked == nil {
			picked = m
			continue
		}
		kept = append(kept, m)
	}
	n.markers = kept
	if picked == nil {
		return false
	}
	n.remove(picked)

	index := picked.Index
	target, valid := n.path.At(index)
	if !valid {
		index = n.closest
		target, valid = n.path.At(index)
		if !valid {
			return true
		}
	}
	n.travel(index, target)
	return true
}

// JumpTo places the viewpoint at waypoint i with no transition.
func (n *Navigator) JumpTo(i int) bool {
	w, ok := n.path.At(i)
	if !ok {
		return false
	}
	n.ctx.Tweens.Kill(app.TweenViewpoint)
	n.ctx.View.Position = w
	n.Update()
	return true
}

func (n *Navigator) travel(index int, target rl.Vector3) {
	view := n.ctx.View
	n.ctx.Tweens.Vec3(app.TweenViewpoint, view.Position, target, n.cfg.TravelSeconds, tween.InOut,
		func(v rl.Vector3) { view.Position = v },
		func() { n.arrive(index) })
}

func (n *Navigator) arrive(index int) {
	n.Update()
	if index == n.path.LastIndex() {
		n.ctx.Light.SetFlashlightIntensity(n.cfg.FlashlightDim)
	} else {
		n.ctx.Light.SetFlashlightIntensity(n.cfg.FlashlightNormal)
	}
	app.Publish(n.ctx, app.ArrivedAtWaypoint{Index: index})
	if index == n.path.LastIndex() {
		n.ctx.Achievements.Unlock(app.AchievementReachedEnd)
	}
}
