package engine

// GameObjectRef names a node by UID without holding it. Resolving a ref to a
// node that has left the scene yields nil.
type GameObjectRef struct {
	UID uint64 // 0 = none
}

func RefTo(g *GameObject) GameObjectRef {
	if g == nil {
		return GameObjectRef{}
	}
	return GameObjectRef{UID: g.UID}
}

func (r GameObjectRef) Get(scene *Scene) *GameObject {
	if r.UID == 0 || scene == nil {
		return nil
	}
	return scene.FindByUID(r.UID)
}

// Refers reports whether r points at g.
func (r GameObjectRef) Refers(g *GameObject) bool {
	return g != nil && r.UID != 0 && r.UID == g.UID
}

func (r GameObjectRef) Valid() bool { return r.UID != 0 }
