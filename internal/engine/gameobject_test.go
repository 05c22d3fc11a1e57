package engine

import (
	"testing"

	rl "github.com/gen2brain/raylib-go/raylib"
)

type counter struct {
	BaseComponent
	starts, updates int
}

func (c *counter) Start()         { c.starts++ }
func (c *counter) Update(float32) { c.updates++ }

func nearVec(a, b rl.Vector3) bool {
	return rl.Vector3Distance(a, b) < 1e-4
}

func TestNewGameObjectDefaults(t *testing.T) {
	a := NewGameObject("Ghost")
	b := NewGameObject("Ghost")
	if a.UID == 0 || a.UID == b.UID {
		t.Errorf("expected distinct non-zero UIDs, got %d and %d", a.UID, b.UID)
	}
	if !a.Active {
		t.Error("new objects start active")
	}
	if a.Transform.Scale != rl.Vector3One() {
		t.Errorf("expected unit scale, got %v", a.Transform.Scale)
	}
}

func TestHasTag(t *testing.T) {
	g := NewGameObject("Ghost")
	g.Tags = []string{"npc", "hidden"}
	if !g.HasTag("npc") || g.HasTag("item") {
		t.Error("HasTag mismatch")
	}
	if NewGameObject("Wall").HasTag("npc") {
		t.Error("untagged object has no tags")
	}
}

func TestAddChildReparents(t *testing.T) {
	hall := NewGameObject("Hall")
	cellar := NewGameObject("Cellar")
	lamp := NewGameObject("Lamp")

	hall.AddChild(lamp)
	cellar.AddChild(lamp)

	if len(hall.Children) != 0 || lamp.Parent != cellar || cellar.Children[0] != lamp {
		t.Error("lamp should move from hall to cellar")
	}

	cellar.RemoveChild(lamp)
	if lamp.Parent != nil || len(cellar.Children) != 0 {
		t.Error("RemoveChild should detach")
	}
	cellar.RemoveChild(lamp)
}

func TestComponentLifecycle(t *testing.T) {
	g := NewGameObject("Clock")
	c := &counter{}
	g.AddComponent(c)
	if c.GetGameObject() != g {
		t.Fatal("AddComponent should attach")
	}
	if GetComponent[*counter](g) != c {
		t.Fatal("GetComponent should find the counter")
	}

	g.Start()
	g.Start()
	if c.starts != 1 {
		t.Errorf("Start should run once, ran %d", c.starts)
	}

	g.Update(0.1)
	c.SetEnabled(false)
	g.Update(0.1)
	if c.updates != 1 {
		t.Errorf("disabled component should not update, got %d updates", c.updates)
	}
	if IsEnabled(c) {
		t.Error("IsEnabled should see the switch")
	}
}

func TestInactiveParentStopsUpdates(t *testing.T) {
	items := NewGameObject("Items")
	key := NewGameObject("Key")
	items.AddChild(key)
	c := &counter{}
	key.AddComponent(c)

	items.Active = false
	key.Update(0.1)
	if c.updates != 0 || key.ActiveInHierarchy() {
		t.Error("child of inactive parent should not update")
	}
	items.Active = true
	key.Update(0.1)
	if c.updates != 1 {
		t.Error("child should update once the parent is active")
	}
}

func TestIsDescendantOf(t *testing.T) {
	npc := NewGameObject("NPC")
	body := NewGameObject("Body")
	head := NewGameObject("Head")
	npc.AddChild(body)
	body.AddChild(head)

	if !head.IsDescendantOf(npc) || !npc.IsDescendantOf(npc) {
		t.Error("expected head under npc, and npc under itself")
	}
	if NewGameObject("Wall").IsDescendantOf(npc) || head.IsDescendantOf(nil) {
		t.Error("unrelated or nil ancestors never match")
	}
}

func TestWalkCanPrune(t *testing.T) {
	root := NewGameObject("Room")
	table := NewGameObject("Table")
	leg := NewGameObject("Leg")
	root.AddChild(table)
	table.AddChild(leg)

	var seen []string
	root.Walk(func(g *GameObject) bool {
		seen = append(seen, g.Name)
		return g != table
	})
	if len(seen) != 2 || seen[1] != "Table" {
		t.Errorf("expected [Room Table], got %v", seen)
	}
}

func TestWorldTransforms(t *testing.T) {
	room := NewGameObject("Room")
	room.Transform.Position = rl.Vector3{X: 10}
	room.Transform.Scale = rl.Vector3{X: 2, Y: 2, Z: 2}
	frame := NewGameObject("Frame")
	frame.Transform.Position = rl.Vector3{X: 1}
	frame.Transform.Rotation = rl.Vector3{Y: 15}
	room.AddChild(frame)

	if got := frame.WorldPosition(); !nearVec(got, rl.Vector3{X: 12}) {
		t.Errorf("expected (12,0,0), got %v", got)
	}
	if got := frame.WorldScale(); got != (rl.Vector3{X: 2, Y: 2, Z: 2}) {
		t.Errorf("expected inherited scale, got %v", got)
	}

	room.Transform.Rotation = rl.Vector3{Y: 90}
	if got := frame.WorldRotation(); got.Y != 105 {
		t.Errorf("expected yaw 105, got %v", got.Y)
	}
	// raylib rotates +X to -Z for a positive Y rotation.
	if got := frame.WorldPosition(); !nearVec(got, rl.Vector3{X: 10, Z: -2}) {
		t.Errorf("expected (10,0,-2), got %v", got)
	}
}

func TestGetComponentNilObject(t *testing.T) {
	if GetComponent[*counter](nil) != nil {
		t.Error("GetComponent on nil object should return zero value")
	}
}
