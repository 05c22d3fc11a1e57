package focus

import (
	"bytes"
	"log"
	"strings"
	"testing"

	rl "github.com/gen2brain/raylib-go/raylib"

	"walksim/internal/app"
	"walksim/internal/app/apptest"
	"walksim/internal/components"
	"walksim/internal/diag"
	"walksim/internal/engine"
)

// paintingScene builds a group node "Painting" whose child mesh carries the
// collider, at (0, 1.6, 5) in front of a viewpoint at the origin facing +Z.
func paintingScene(env *apptest.Env) *engine.GameObject {
	group := engine.NewGameObject("Painting")
	group.Transform.Position = rl.Vector3{X: 0, Y: 1.6, Z: 5}
	frame := engine.NewGameObject("Painting_Frame")
	frame.AddComponent(components.NewBoxCollider(rl.Vector3{X: 1, Y: 1, Z: 0.1}))
	group.AddChild(frame)
	env.Scene.AddGameObject(group)
	env.Scene.AddGameObject(frame)

	env.View.Position = rl.Vector3{Y: 1.6}
	env.View.Yaw = 90 // +Z
	env.View.Pitch = 0
	return group
}

func newManager(env *apptest.Env, occlusion bool) *Manager {
	look := rl.Vector3{X: 0, Y: 1.6, Z: 5}
	bindings := []Binding{{
		Name:     "Painting",
		Target:   rl.Vector3{X: 0, Y: 1.6, Z: 3.5},
		LookAt:   &look,
		Duration: 1,
		Callback: "video",
	}}
	allow := []rl.Vector3{{Y: 1.6}}
	return New(env.Context, bindings, allow, Config{IndicatorRadius: 0.5, Occlusion: occlusion, TransitIntensity: 0.2})
}

func forwardRay(env *apptest.Env) rl.Ray {
	return rl.Ray{Position: env.View.Position, Direction: env.View.Forward()}
}

func TestMissingBindingIsSkippedAndLoggedOnce(t *testing.T) {
	diag.ResetOnce()
	var buf bytes.Buffer
	prev := log.Writer()
	log.SetOutput(&buf)
	defer log.SetOutput(prev)

	env := apptest.New(nil)
	New(env.Context, []Binding{{Name: "Ghost"}}, nil, Config{})
	m := New(env.Context, []Binding{{Name: "Ghost"}}, nil, Config{})

	if len(m.Bindings()) != 0 {
		t.Errorf("expected no bindings, got %d", len(m.Bindings()))
	}
	if got := strings.Count(buf.String(), `"Ghost"`); got != 1 {
		t.Errorf("expected one warning, got %d:\n%s", got, buf.String())
	}
}

func TestClickOnChildMeshActivatesGroupBinding(t *testing.T) {
	env := apptest.New(nil)
	paintingScene(env)
	m := newManager(env, false)

	called := 0
	m.RegisterCallback("video", func(b *Binding) { called++ })
	var arrived []string
	app.Subscribe(env.Context, func(ev app.FocusArrived) { arrived = append(arrived, ev.Name) })

	env.RecLight.V = 1
	if !m.PointerDown(forwardRay(env)) {
		t.Fatal("expected the painting to be hit")
	}

	env.Run(0.5, 1.0/60)
	if env.RecLight.V > 0.25 {
		t.Errorf("expected dimmed light during transit, got %v", env.RecLight.V)
	}
	if called != 0 {
		t.Error("callback ran before arrival")
	}

	env.Run(0.6, 1.0/60)
	if env.View.Position.Z != 3.5 {
		t.Errorf("expected viewpoint at target, got %v", env.View.Position)
	}
	if env.RecLight.V != 1 {
		t.Errorf("expected light restored, got %v", env.RecLight.V)
	}
	if called != 1 {
		t.Errorf("expected callback once, got %d", called)
	}
	if len(arrived) != 1 || arrived[0] != "Painting" {
		t.Errorf("expected FocusArrived for Painting, got %v", arrived)
	}
	if !m.Binding("Painting").Clicked {
		t.Error("binding should be marked clicked")
	}
}

func TestPanickingCallbackStillMarksClicked(t *testing.T) {
	env := apptest.New(nil)
	paintingScene(env)
	m := newManager(env, false)
	m.RegisterCallback("video", func(*Binding) { panic("no video element") })

	m.PointerDown(forwardRay(env))
	env.Run(1.1, 1.0/60)
	if !m.Binding("Painting").Clicked {
		t.Error("expected clicked despite callback panic")
	}
}

func TestIndicatorRules(t *testing.T) {
	env := apptest.New(nil)
	paintingScene(env)
	m := newManager(env, false)

	m.Update()
	if !env.RecOverlay.Indicators["Painting"] {
		t.Fatal("expected indicator at allowed position facing the object")
	}

	env.View.Yaw = -90 // facing away
	m.Update()
	if env.RecOverlay.Indicators["Painting"] {
		t.Error("indicator should hide when the object is behind the view")
	}

	env.View.Yaw = 90
	env.View.Position.X = 0.6
	m.Update()
	if env.RecOverlay.Indicators["Painting"] {
		t.Error("indicator should hide away from allowed positions")
	}

	env.View.Position.X = 0.3
	m.Binding("Painting").Clicked = true
	m.Update()
	if env.RecOverlay.Indicators["Painting"] {
		t.Error("indicator should hide once clicked")
	}

	app.Publish(env.Context, app.PopupClosed{Name: "Painting"})
	m.Update()
	if !env.RecOverlay.Indicators["Painting"] {
		t.Error("indicator should return after popup close resets the binding")
	}
}

func TestIndicatorHiddenWhenOccluded(t *testing.T) {
	env := apptest.New(nil)
	paintingScene(env)
	m := newManager(env, true)

	m.Update()
	if !env.RecOverlay.Indicators["Painting"] {
		t.Fatal("expected indicator with clear line of sight")
	}

	wall := engine.NewGameObject("Partition")
	wall.Transform.Position = rl.Vector3{X: 0, Y: 1.6, Z: 2.5}
	wall.AddComponent(components.NewBoxCollider(rl.Vector3{X: 3, Y: 3, Z: 0.2}))
	env.Scene.AddGameObject(wall)

	m.Update()
	if env.RecOverlay.Indicators["Painting"] {
		t.Error("indicator should hide behind the partition")
	}
}

func TestReturnGoesBackToPreClickViewpoint(t *testing.T) {
	env := apptest.New(nil)
	paintingScene(env)
	m := newManager(env, false)

	if m.CanReturn() {
		t.Fatal("nothing to return to yet")
	}
	m.PointerDown(forwardRay(env))
	env.Run(1.1, 1.0/60)

	if !m.Return(0.5) {
		t.Fatal("expected a stored return point")
	}
	env.Run(0.6, 1.0/60)
	if env.View.Position != (rl.Vector3{Y: 1.6}) {
		t.Errorf("expected viewpoint back at origin, got %v", env.View.Position)
	}
	if env.View.Yaw != 90 {
		t.Errorf("expected yaw restored, got %v", env.View.Yaw)
	}
}

func TestWalkModeSuppressesFocus(t *testing.T) {
	env := apptest.New(nil)
	paintingScene(env)
	m := newManager(env, false)

	app.Publish(env.Context, app.WalkModeChanged{Active: true})
	if m.PointerDown(forwardRay(env)) {
		t.Error("clicks are ignored in walk-mode")
	}
	m.Update()
	if env.RecOverlay.Indicators["Painting"] {
		t.Error("indicators are hidden in walk-mode")
	}
}
