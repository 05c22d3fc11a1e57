// Package registry maps semantic roles (the NPC, the floor, the walls) to
// scene nodes. The mapping comes from the scene file's roles manifest and is
// resolved once after load, then again whenever nodes are added.
package registry

import (
	"errors"
	"fmt"
	"sort"

	"walksim/internal/engine"
)

const (
	RoleNPC   = "npc"
	RoleFloor = "floor"
	RoleWalls = "walls"
	RoleTable = "table"
	RoleItem  = "item"
)

// Rule selects nodes by exact name or by case-insensitive substring.
type Rule struct {
	Name     string `json:"name,omitempty"`
	Contains string `json:"contains,omitempty"`
	Required bool   `json:"required,omitempty"`
}

type Manifest map[string]Rule

type Registry struct {
	scene    *engine.Scene
	manifest Manifest
	nodes    map[string][]*engine.GameObject
	dirty    bool
}

func New(scene *engine.Scene, manifest Manifest) *Registry {
	r := &Registry{
		scene:    scene,
		manifest: manifest,
		nodes:    make(map[string][]*engine.GameObject),
		dirty:    true,
	}
	if scene != nil {
		scene.OnNodeAdded.AddListener(func(*engine.GameObject) { r.dirty = true })
	}
	return r
}

// Rescan resolves every role against the current scene.
func (r *Registry) Rescan() {
	r.dirty = false
	r.nodes = make(map[string][]*engine.GameObject, len(r.manifest))
	if r.scene == nil {
		return
	}
	for role, rule := range r.manifest {
		var found []*engine.GameObject
		switch {
		case rule.Name != "":
			r.scene.Traverse(func(g *engine.GameObject) {
				if g.Name == rule.Name {
					found = append(found, g)
				}
			})
		case rule.Contains != "":
			found = r.scene.FindAllContaining(rule.Contains)
		}
		if len(found) > 0 {
			r.nodes[role] = found
		}
	}
}

func (r *Registry) ensure() {
	if r.dirty {
		r.Rescan()
	}
}

// Node returns the first node for role, or nil.
func (r *Registry) Node(role string) *engine.GameObject {
	r.ensure()
	if ns := r.nodes[role]; len(ns) > 0 {
		return ns[0]
	}
	return nil
}

// Nodes returns every node for role, outermost first within each match.
func (r *Registry) Nodes(role string) []*engine.GameObject {
	r.ensure()
	return r.nodes[role]
}

// Has reports whether role resolved to at least one node.
func (r *Registry) Has(role string) bool {
	return r.Node(role) != nil
}

// Validate lists required roles with no node, and roles whose rule selects
// nothing at all.
func (r *Registry) Validate() error {
	r.ensure()
	roles := make([]string, 0, len(r.manifest))
	for role := range r.manifest {
		roles = append(roles, role)
	}
	sort.Strings(roles)

	var errs []error
	for _, role := range roles {
		rule := r.manifest[role]
		if rule.Name == "" && rule.Contains == "" {
			errs = append(errs, fmt.Errorf("role %q has no name or contains rule", role))
			continue
		}
		if rule.Required && len(r.nodes[role]) == 0 {
			errs = append(errs, fmt.Errorf("required role %q matched no node", role))
		}
	}
	return errors.Join(errs...)
}
