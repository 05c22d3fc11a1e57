package engine

import "strings"

// Scene owns the root GameObjects. Children added with AddChild are reachable
// through their root and are also registered here when added via AddGameObject.
type Scene struct {
	Name        string
	GameObjects []*GameObject
	uidMap      map[uint64]*GameObject

	// OnNodeAdded fires for every object added to the scene, after registration.
	OnNodeAdded EventWithArg[*GameObject]
}

func NewScene(name string) *Scene {
	return &Scene{
		Name:        name,
		GameObjects: make([]*GameObject, 0),
		uidMap:      make(map[uint64]*GameObject),
	}
}

func (s *Scene) AddGameObject(g *GameObject) {
	if s.uidMap == nil {
		s.uidMap = make(map[uint64]*GameObject)
	}
	g.Scene = s
	s.GameObjects = append(s.GameObjects, g)
	s.uidMap[g.UID] = g
	s.OnNodeAdded.Invoke(g)
}

// RemoveGameObject detaches g from its parent and unregisters g and its
// descendants.
func (s *Scene) RemoveGameObject(g *GameObject) {
	if g.Parent != nil {
		g.Parent.RemoveChild(g)
	}
	doomed := map[*GameObject]bool{}
	g.Walk(func(n *GameObject) bool {
		doomed[n] = true
		return true
	})
	kept := s.GameObjects[:0]
	for _, obj := range s.GameObjects {
		if doomed[obj] {
			delete(s.uidMap, obj.UID)
			obj.Scene = nil
			continue
		}
		kept = append(kept, obj)
	}
	for i := len(kept); i < len(s.GameObjects); i++ {
		s.GameObjects[i] = nil
	}
	s.GameObjects = kept
}

func (s *Scene) FindByUID(uid uint64) *GameObject {
	return s.uidMap[uid]
}

// Traverse visits every registered object and every descendant once.
func (s *Scene) Traverse(fn func(*GameObject)) {
	seen := make(map[*GameObject]bool, len(s.GameObjects))
	for _, root := range s.GameObjects {
		root.Walk(func(n *GameObject) bool {
			if seen[n] {
				return false
			}
			seen[n] = true
			fn(n)
			return true
		})
	}
}

// FindByName returns the first object in the hierarchy whose name matches exactly.
func (s *Scene) FindByName(name string) *GameObject {
	var found *GameObject
	s.Traverse(func(g *GameObject) {
		if found == nil && g.Name == name {
			found = g
		}
	})
	return found
}

// FindAllContaining returns every object whose name contains substr,
// case-insensitively, in traversal order.
func (s *Scene) FindAllContaining(substr string) []*GameObject {
	needle := strings.ToLower(substr)
	var result []*GameObject
	s.Traverse(func(g *GameObject) {
		if strings.Contains(strings.ToLower(g.Name), needle) {
			result = append(result, g)
		}
	})
	return result
}

func (s *Scene) FindByTag(tag string) []*GameObject {
	var result []*GameObject
	s.Traverse(func(g *GameObject) {
		if g.HasTag(tag) {
			result = append(result, g)
		}
	})
	return result
}

func (s *Scene) Start() {
	for _, g := range s.GameObjects {
		g.Start()
	}
}

func (s *Scene) Update(deltaTime float32) {
	for _, g := range s.GameObjects {
		g.Update(deltaTime)
	}
}
