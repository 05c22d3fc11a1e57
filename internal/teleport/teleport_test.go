package teleport

import (
	"testing"

	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"

	"walksim/internal/app"
	"walksim/internal/app/apptest"
	"walksim/internal/engine"
	"walksim/internal/registry"
)

var manifest = registry.Manifest{registry.RoleNPC: {Name: "Ghost"}}

func setup(t *testing.T, chance float64) (*apptest.Env, *engine.GameObject, *Choreographer) {
	t.Helper()
	env := apptest.New(manifest)
	npc := engine.NewGameObject("Ghost")
	env.Scene.AddGameObject(npc)
	env.View.Position = rl.Vector3{Y: 1.6}
	env.View.Yaw = -90
	cfg := Config{
		LookChance:  chance,
		LookSeconds: 1,
		Spawns:      map[int]rl.Vector3{3: {X: 4, Y: 0.9, Z: 0}},
	}
	return env, npc, New(env.Context, cfg)
}

func TestArrivalMovesNPCToSpawn(t *testing.T) {
	env, npc, c := setup(t, 0)
	app.Publish(env.Context, app.ArrivedAtWaypoint{Index: 3})

	if npc.Transform.Position != (rl.Vector3{X: 4, Y: 0.9, Z: 0}) {
		t.Errorf("expected npc at spawn, got %v", npc.Transform.Position)
	}
	// Facing the viewpoint at the origin means looking down -X.
	if got := npc.Transform.Rotation.Y; math32.Abs(math32.Abs(got)-180) > 1e-3 {
		t.Errorf("expected npc to face the viewpoint, yaw %v", got)
	}
	if c.Looks() != 0 || env.Tweens.Active(app.TweenLook) {
		t.Error("look chance 0 must never turn the camera")
	}
}

func TestArrivalWithoutSpawnDoesNothing(t *testing.T) {
	env, npc, _ := setup(t, 1)
	app.Publish(env.Context, app.ArrivedAtWaypoint{Index: 2})
	if npc.Transform.Position != (rl.Vector3{}) {
		t.Errorf("npc moved without a spawn: %v", npc.Transform.Position)
	}
}

func TestCertainLookTurnsCamera(t *testing.T) {
	env, _, c := setup(t, 1)
	app.Publish(env.Context, app.ArrivedAtWaypoint{Index: 3})
	if c.Looks() != 1 || !env.Tweens.Active(app.TweenLook) {
		t.Fatal("expected a look tween")
	}
	env.Run(1.05, 1.0/60)
	if math32.Abs(env.View.Yaw) > 0.01 {
		t.Errorf("expected yaw 0 toward +X, got %v", env.View.Yaw)
	}
	if env.View.Pitch >= 0 {
		t.Errorf("expected to look down at the npc, pitch %v", env.View.Pitch)
	}
}

func TestIgnoredDuringWalkMode(t *testing.T) {
	env, npc, c := setup(t, 1)
	app.Publish(env.Context, app.WalkModeChanged{Active: true})
	if c.Arrive(3) {
		t.Error("arrival during walk-mode should be ignored")
	}
	if npc.Transform.Position != (rl.Vector3{}) {
		t.Error("npc moved during walk-mode")
	}
	app.Publish(env.Context, app.WalkModeChanged{Active: false})
	if !c.Arrive(3) {
		t.Error("arrival should work again after walk-mode")
	}
}

func TestMissingNPCIsIgnored(t *testing.T) {
	env := apptest.New(manifest)
	c := New(env.Context, Config{LookChance: 1, Spawns: map[int]rl.Vector3{0: {}}})
	if c.Arrive(0) {
		t.Error("expected no-op without npc")
	}
}

func TestLookChanceIsSeeded(t *testing.T) {
	count := func() int {
		env, _, c := setup(t, 0.5)
		for i := 0; i < 200; i++ {
			c.Arrive(3)
			env.Tweens.Kill(app.TweenLook)
		}
		return c.Looks()
	}
	a, b := count(), count()
	if a != b {
		t.Errorf("same seed gave %d and %d looks", a, b)
	}
	if a < 60 || a > 140 {
		t.Errorf("looks %d far from half of 200", a)
	}
}
