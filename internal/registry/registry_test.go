package registry

import (
	"strings"
	"testing"

	"walksim/internal/engine"
)

func testScene() *engine.Scene {
	s := engine.NewScene("Room")
	room := engine.NewGameObject("Room")
	floor := engine.NewGameObject("Floor")
	walls := engine.NewGameObject("Walls")
	walls.AddChild(engine.NewGameObject("Wall_North"))
	walls.AddChild(engine.NewGameObject("Wall_South"))
	room.AddChild(floor)
	room.AddChild(walls)
	s.AddGameObject(room)
	return s
}

func TestResolvesExactAndSubstringRules(t *testing.T) {
	r := New(testScene(), Manifest{
		RoleFloor: {Name: "Floor"},
		RoleWalls: {Contains: "wall"},
	})

	if n := r.Node(RoleFloor); n == nil || n.Name != "Floor" {
		t.Errorf("expected Floor, got %v", n)
	}
	if got := len(r.Nodes(RoleWalls)); got != 3 {
		t.Errorf("expected Walls and two children, got %d", got)
	}
	if r.Has(RoleNPC) {
		t.Error("npc role is not in the manifest")
	}
}

func TestNodeAddedTriggersRescan(t *testing.T) {
	s := testScene()
	r := New(s, Manifest{RoleNPC: {Name: "Ghost"}})
	if r.Node(RoleNPC) != nil {
		t.Fatal("npc should be missing before it loads")
	}

	s.AddGameObject(engine.NewGameObject("Ghost"))
	if r.Node(RoleNPC) == nil {
		t.Error("expected npc after it was added")
	}
}

func TestValidateReportsMissingRequiredRoles(t *testing.T) {
	r := New(testScene(), Manifest{
		RoleNPC:   {Name: "Ghost", Required: true},
		RoleTable: {Contains: "table"},
		"broken":  {},
	})
	err := r.Validate()
	if err == nil {
		t.Fatal("expected error")
	}
	msg := err.Error()
	if !strings.Contains(msg, `"npc"`) || !strings.Contains(msg, `"broken"`) {
		t.Errorf("expected npc and broken in error, got %v", msg)
	}
	if strings.Contains(msg, `"table"`) {
		t.Errorf("optional role should not be reported, got %v", msg)
	}
}

func TestNilSceneIsInert(t *testing.T) {
	r := New(nil, Manifest{RoleNPC: {Name: "Ghost"}})
	if r.Node(RoleNPC) != nil {
		t.Error("expected no node")
	}
}
