package game

import (
	"testing"

	rl "github.com/gen2brain/raylib-go/raylib"

	"walksim/internal/achievements"
	"walksim/internal/app"
	"walksim/internal/config"
	"walksim/internal/input"
	"walksim/internal/tween"
	"walksim/internal/world"
)

const hallJSON = `{
  "name": "Hall",
  "roles": {"npc": {"name": "Ghost"}, "floor": {"name": "Floor"}},
  "objects": [
    {"name": "Floor", "position": [0, -0.05, 0],
     "components": [{"type": "Box", "size": [30, 0.1, 30]}]},
    {"name": "Painting", "position": [0, 1.6, 3],
     "components": [{"type": "Box", "size": [1, 1, 0.1], "color": "Maroon"}]},
    {"name": "Ghost", "position": [-11, 0.9, -14],
     "components": [{"type": "BoxCollider", "size": [0.6, 1.8, 0.6]}]}
  ]
}`

func near(a, b rl.Vector3) bool {
	return rl.Vector3Distance(a, b) < 1e-3
}

func newGame(t *testing.T, tuning config.Tuning) (*Game, *tween.ManualClock) {
	t.Helper()
	scene, manifest, err := world.Parse([]byte(hallJSON))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	store, err := achievements.Open("")
	if err != nil {
		t.Fatal(err)
	}
	clock := &tween.ManualClock{}
	g := New(world.New(scene, manifest), tuning, store, clock, 1)
	return g, clock
}

func click(at rl.Vector2) input.Frame {
	return input.Frame{Pointer: input.Pointer{Pressed: true, Pos: at}}
}

func TestNewPlacesViewpointAndMarkers(t *testing.T) {
	g, _ := newGame(t, config.Default())
	if !near(g.Ctx.View.Position, rl.Vector3{Y: 1.6, Z: 8}) {
		t.Errorf("expected start at first waypoint, got %v", g.Ctx.View.Position)
	}
	if g.Ctx.View.Yaw != -90 {
		t.Errorf("expected default yaw -90, got %v", g.Ctx.View.Yaw)
	}
	var got []int
	for _, m := range g.Orbs.Markers() {
		got = append(got, m.Index)
	}
	if len(got) != 2 || got[0] != 1 || got[1] != 2 {
		t.Errorf("expected markers [1 2], got %v", got)
	}
}

func TestClickOnMarkerTravels(t *testing.T) {
	g, clock := newGame(t, config.Default())
	at, ok := g.Ctx.Projector.WorldToScreen(rl.Vector3{Y: 0.7, Z: 5})
	if !ok {
		t.Fatal("marker should be on screen")
	}
	g.Tick(click(at), 1.0/60)
	clock.Advance(2)
	g.Tick(input.Frame{}, 1.0/60)

	if g.Orbs.ClosestIndex() != 1 {
		t.Errorf("expected closest 1, got %d", g.Orbs.ClosestIndex())
	}
	if !near(g.Ctx.View.Position, rl.Vector3{Y: 1.6, Z: 5}) {
		t.Errorf("expected viewpoint at waypoint 1, got %v", g.Ctx.View.Position)
	}
}

func TestFocusAndBack(t *testing.T) {
	tuning := config.Default()
	tuning.Focus.Objects = []config.FocusObject{{Name: "Painting", Target: config.Vec3{0, 1.6, 4.5}, Duration: 1}}
	g, clock := newGame(t, tuning)

	g.Tick(click(rl.Vector2{X: g.Screen.X / 2, Y: g.Screen.Y / 2}), 1.0/60)
	clock.Advance(1.5)
	g.Tick(input.Frame{}, 1.0/60)
	if !near(g.Ctx.View.Position, rl.Vector3{Y: 1.6, Z: 4.5}) {
		t.Fatalf("expected focus position, got %v", g.Ctx.View.Position)
	}
	if !g.Focus.Binding("Painting").Clicked {
		t.Fatal("expected painting marked clicked")
	}

	g.Tick(input.Frame{Back: true}, 1.0/60)
	clock.Advance(2)
	g.Tick(input.Frame{}, 1.0/60)
	if !near(g.Ctx.View.Position, rl.Vector3{Y: 1.6, Z: 8}) {
		t.Errorf("expected return to start, got %v", g.Ctx.View.Position)
	}
	if g.Focus.Binding("Painting").Clicked {
		t.Error("closing the popup should reset clicked")
	}

	g.Tick(input.Frame{Back: true}, 1.0/60)
	if g.Ctx.Tweens.Active(app.TweenViewpoint) {
		t.Error("back with nothing to return to should do nothing")
	}
}

func TestAchievementsToast(t *testing.T) {
	g, _ := newGame(t, config.Default())
	g.Ctx.Achievements.Unlock(app.AchievementCaught)
	g.Ctx.Achievements.Unlock(app.AchievementCaught)
	if n := len(g.HUD.ActiveToasts()); n != 1 {
		t.Errorf("expected one toast, got %d", n)
	}
}

func TestLookAndDebugToggle(t *testing.T) {
	g, _ := newGame(t, config.Default())
	yaw := g.Ctx.View.Yaw
	g.Tick(input.Frame{Look: input.Look{Yaw: 100}, Debug: true}, 1.0/60)
	if g.Ctx.View.Yaw == yaw {
		t.Error("look input should turn the view")
	}
	if !g.DebugMode {
		t.Error("debug key should toggle the overlay")
	}
}

func TestProjectionMatchesPickRay(t *testing.T) {
	g, _ := newGame(t, config.Default())
	view := g.Ctx.View
	p := Projector{View: view, Screen: &g.Screen}

	center, ok := p.WorldToScreen(rl.Vector3Add(view.Position, rl.Vector3Scale(view.Forward(), 5)))
	if !ok || rl.Vector2Distance(center, rl.Vector2{X: 640, Y: 360}) > 0.01 {
		t.Errorf("point ahead should project to the center, got %v %v", center, ok)
	}
	if _, ok := p.WorldToScreen(rl.Vector3Add(view.Position, rl.Vector3Scale(view.Forward(), -5))); ok {
		t.Error("point behind should not project")
	}

	target := rl.Vector3{X: 1.5, Y: 2.2, Z: 3}
	at, ok := p.WorldToScreen(target)
	if !ok {
		t.Fatal("target should be visible")
	}
	ray := ScreenRay(view, at, g.Screen)
	want := rl.Vector3Normalize(rl.Vector3Subtract(target, view.Position))
	if rl.Vector3DotProduct(ray.Direction, want) < 0.9999 {
		t.Errorf("pick ray %v should pass through target direction %v", ray.Direction, want)
	}
}

func TestDescendEntersWalkMode(t *testing.T) {
	tuning := config.Default()
	tuning.Focus.Objects = []config.FocusObject{{Name: "Painting", Target: config.Vec3{0, 1.6, 4.5}, Duration: 1, Callback: "descend"}}
	g, clock := newGame(t, tuning)

	g.Tick(click(rl.Vector2{X: g.Screen.X / 2, Y: g.Screen.Y / 2}), 1.0/60)
	clock.Advance(1.5)
	g.Tick(input.Frame{}, 1.0/60)

	if !near(g.Ctx.View.Position, rl.Vector3{X: -6, Y: 1.6, Z: -10}) {
		t.Fatalf("expected viewpoint on the anchor, got %v", g.Ctx.View.Position)
	}
	if !g.Chase.Walking() {
		t.Fatal("expected walk-mode after landing on the anchor")
	}
	if len(g.Orbs.Markers()) != 0 {
		t.Error("markers should be hidden in walk-mode")
	}

	g.Tick(input.Frame{Back: true}, 1.0/60)
	if g.Ctx.Tweens.Active(app.TweenViewpoint) {
		t.Error("back must not leave the walk area")
	}
}

func TestShippedContentShowsFreeRoamBeforeWalkMode(t *testing.T) {
	w, err := world.LoadFile("../../assets/scenes/house.json")
	if err != nil {
		t.Fatalf("scene: %v", err)
	}
	tuning, err := config.Load("../../config/tuning.yaml")
	if err != nil {
		t.Fatalf("tuning: %v", err)
	}
	store, err := achievements.Open("")
	if err != nil {
		t.Fatal(err)
	}
	g := New(w, tuning, store, &tween.ManualClock{}, 1)

	base := len(tuning.Waypoints.Base)
	if !g.Orbs.JumpTo(base) {
		t.Fatal("expected the basement entry waypoint")
	}
	g.Tick(input.Frame{}, 1.0/60)
	if g.Chase.Walking() {
		t.Fatal("walk-mode should wait for the anchor")
	}
	var got []int
	for _, m := range g.Orbs.Markers() {
		got = append(got, m.Index)
	}
	if len(got) != 3 || got[0] != base+1 || got[2] != base+3 {
		t.Errorf("expected every other basement waypoint, got %v", got)
	}

	g.Orbs.JumpTo(base + 1)
	g.Tick(input.Frame{}, 1.0/60)
	if !g.Chase.Walking() {
		t.Fatal("expected walk-mode on the anchor")
	}
	if len(g.Orbs.Markers()) != 0 {
		t.Error("markers hide in walk-mode")
	}
}
