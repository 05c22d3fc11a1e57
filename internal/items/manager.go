package items

import (
	"walksim/internal/app"
	"walksim/internal/components"
	"walksim/internal/engine"
	"walksim/internal/physics"
	"walksim/internal/registry"
)

// Manager picks up collectibles by walking near them while the pursuit is
// running.
type Manager struct {
	ctx     *app.Context
	list    *Checklist
	radius  float32
	items   []*components.Collectible
	enabled bool
}

func NewManager(ctx *app.Context, list *Checklist, radius float32) *Manager {
	m := &Manager{ctx: ctx, list: list, radius: radius}
	m.Refresh()
	app.Subscribe(ctx, func(ev app.ChaseStateChanged) { m.enabled = ev.To == app.ChaseActive })
	return m
}

func (m *Manager) Checklist() *Checklist { return m.list }

func (m *Manager) Flags() []bool { return m.list.Flags() }

// Refresh collects every Collectible under the item role nodes.
func (m *Manager) Refresh() {
	m.items = m.items[:0]
	seen := map[*components.Collectible]bool{}
	for _, root := range m.ctx.RoleNodes(registry.RoleItem) {
		root.Walk(func(g *engine.GameObject) bool {
			if c := engine.GetComponent[*components.Collectible](g); c != nil && !seen[c] {
				seen[c] = true
				m.items = append(m.items, c)
			}
			return true
		})
	}
}

func (m *Manager) Items() []*components.Collectible { return m.items }

func (m *Manager) SetEnabled(on bool) { m.enabled = on }

// Update picks up every available item within reach of the viewpoint,
// measured on the horizontal plane.
func (m *Manager) Update() {
	if !m.enabled {
		return
	}
	pos := m.ctx.View.Position
	for _, c := range m.items {
		// a pickup can end the chase and respawn everything
		if !m.enabled {
			return
		}
		if !c.Available() {
			continue
		}
		g := c.GetGameObject()
		r := c.Radius
		if r <= 0 {
			r = m.radius
		}
		if physics.HorizontalDistance(pos, g.WorldPosition()) <= r {
			g.Active = false
			m.list.Set(c.Slot, true)
		}
	}
}

// Respawn puts every item back and clears the checklist.
func (m *Manager) Respawn() {
	for _, c := range m.items {
		if g := c.GetGameObject(); g != nil {
			g.Active = true
		}
	}
	m.list.Clear()
}
