package orbs

import (
	"reflect"
	"testing"

	rl "github.com/gen2brain/raylib-go/raylib"

	"walksim/internal/app"
	"walksim/internal/app/apptest"
)

func testConfig() Config {
	return Config{
		ExclusionRadius:   0.5,
		Window:            2,
		TravelSeconds:     1.5,
		MarkerRadius:      0.15,
		FlashlightNormal:  1,
		FlashlightDim:     0.3,
		ShowAllInFreeRoam: true,
	}
}

func linePath(n int) Path {
	var p Path
	for i := 0; i < n; i++ {
		p.Base = append(p.Base, rl.Vector3{X: float32(i) * 2, Y: 1.6})
	}
	return p
}

func markerIndices(n *Navigator) []int {
	var out []int
	for _, m := range n.Markers() {
		out = append(out, m.Index)
	}
	return out
}

func TestWindowAroundClosest(t *testing.T) {
	env := apptest.New(nil)
	nav := New(env.Context, linePath(10), nil, testConfig())

	env.View.Position = rl.Vector3{X: 8, Y: 1.6}
	nav.Update()

	if nav.ClosestIndex() != 4 {
		t.Fatalf("expected closest 4, got %d", nav.ClosestIndex())
	}
	if got := markerIndices(nav); !reflect.DeepEqual(got, []int{2, 3, 5, 6}) {
		t.Errorf("expected markers {2,3,5,6}, got %v", got)
	}
}

func TestWindowClipsAtEnds(t *testing.T) {
	env := apptest.New(nil)
	nav := New(env.Context, linePath(10), nil, testConfig())

	env.View.Position = rl.Vector3{X: 0, Y: 1.6}
	nav.Update()
	if got := markerIndices(nav); !reflect.DeepEqual(got, []int{1, 2}) {
		t.Errorf("expected {1,2} at the start, got %v", got)
	}
}

func TestUpdateIsIdempotent(t *testing.T) {
	env := apptest.New(nil)
	nav := New(env.Context, linePath(10), nil, testConfig())
	env.View.Position = rl.Vector3{X: 9, Y: 1.6}

	nav.Update()
	first := markerIndices(nav)
	nav.Update()
	second := markerIndices(nav)

	if !reflect.DeepEqual(first, second) {
		t.Errorf("expected identical marker sets, got %v and %v", first, second)
	}
	orbs := env.Scene.FindByTag("orb")
	if len(orbs) != len(second) {
		t.Errorf("expected %d orb nodes in the scene, got %d", len(second), len(orbs))
	}
}

func TestExcludedWaypointNeverShown(t *testing.T) {
	env := apptest.New(nil)
	path := linePath(10)
	excluded := []rl.Vector3{{X: 6.2, Y: 1.6}} // within 0.5 of index 3
	nav := New(env.Context, path, excluded, testConfig())

	env.View.Position = rl.Vector3{X: 6.3, Y: 1.6}
	nav.Update()
	for _, i := range markerIndices(nav) {
		if i == 3 {
			t.Fatal("excluded index 3 was shown")
		}
	}

	env.View.Position = rl.Vector3{X: 8, Y: 1.6}
	nav.Update()
	if got := markerIndices(nav); !reflect.DeepEqual(got, []int{2, 5, 6}) {
		t.Errorf("expected {2,5,6}, got %v", got)
	}
}

func freeRoamPath() Path {
	p := linePath(4)
	p.Additional = []rl.Vector3{
		{X: 0, Y: 1.6, Z: 10},
		{X: 2, Y: 1.6, Z: 10},
		{X: 4, Y: 1.6, Z: 10},
		{X: 6, Y: 1.6, Z: 10},
		{X: 8, Y: 1.6, Z: 10},
		{X: 10, Y: 1.6, Z: 10},
	}
	return p
}

func TestFreeRoamShowsAllRemaining(t *testing.T) {
	env := apptest.New(nil)
	nav := New(env.Context, freeRoamPath(), nil, testConfig())

	env.View.Position = rl.Vector3{X: 2, Y: 1.6, Z: 10} // index 5
	nav.Update()
	if got := markerIndices(nav); !reflect.DeepEqual(got, []int{6, 7, 8, 9}) {
		t.Errorf("expected all additional except reserved 4 and closest 5, got %v", got)
	}
}

func TestFreeRoamWindowOnMobile(t *testing.T) {
	env := apptest.New(nil)
	cfg := testConfig()
	cfg.ShowAllInFreeRoam = false
	nav := New(env.Context, freeRoamPath(), nil, cfg)

	env.View.Position = rl.Vector3{X: 2, Y: 1.6, Z: 10}
	nav.Update()
	if got := markerIndices(nav); !reflect.DeepEqual(got, []int{6, 7}) {
		t.Errorf("expected window {6,7} without reserved 4, got %v", got)
	}
}

func TestBaseWindowDoesNotCrossIntoAdditional(t *testing.T) {
	env := apptest.New(nil)
	nav := New(env.Context, freeRoamPath(), nil, testConfig())

	env.View.Position = rl.Vector3{X: 6, Y: 1.6} // last base index 3
	nav.Update()
	if got := markerIndices(nav); !reflect.DeepEqual(got, []int{1, 2}) {
		t.Errorf("expected {1,2}, got %v", got)
	}
	if !nav.IsAtLastPosition() {
		t.Error("index 3 is the last base waypoint")
	}
}

func rayAt(target rl.Vector3, from rl.Vector3) rl.Ray {
	return rl.Ray{Position: from, Direction: rl.Vector3Normalize(rl.Vector3Subtract(target, from))}
}

func TestPickTravelsAndPublishesArrival(t *testing.T) {
	env := apptest.New(nil)
	nav := New(env.Context, linePath(10), nil, testConfig())
	env.View.Position = rl.Vector3{X: 8, Y: 1.6}
	nav.Update()

	var arrived []int
	app.Subscribe(env.Context, func(ev app.ArrivedAtWaypoint) { arrived = append(arrived, ev.Index) })

	target := nav.Markers()[2] // index 5
	orbPos := rl.Vector3{X: target.Position.X, Y: target.Position.Y - markerDrop, Z: target.Position.Z}
	if !nav.Pick(rayAt(orbPos, rl.Vector3{X: 10, Y: 5, Z: -5})) {
		t.Fatal("expected pick to hit")
	}
	for _, i := range markerIndices(nav) {
		if i == 5 {
			t.Fatal("picked marker should be removed immediately")
		}
	}

	env.Run(0.75, 1.0/60)
	if len(arrived) != 0 {
		t.Error("arrival published before the transition finished")
	}
	env.Run(1.0, 1.0/60)

	if len(arrived) != 1 || arrived[0] != 5 {
		t.Fatalf("expected one arrival at 5, got %v", arrived)
	}
	if env.View.Position != target.Position {
		t.Errorf("expected viewpoint at %v, got %v", target.Position, env.View.Position)
	}
	if nav.ClosestIndex() != 5 {
		t.Errorf("expected markers recomputed around 5, closest=%d", nav.ClosestIndex())
	}
	if env.RecLight.V != 1 {
		t.Errorf("expected normal flashlight, got %v", env.RecLight.V)
	}
}

func TestSecondPickCancelsFirst(t *testing.T) {
	env := apptest.New(nil)
	nav := New(env.Context, linePath(10), nil, testConfig())
	env.View.Position = rl.Vector3{X: 8, Y: 1.6}
	nav.Update()

	var arrived []int
	app.Subscribe(env.Context, func(ev app.ArrivedAtWaypoint) { arrived = append(arrived, ev.Index) })

	pick := func(m *Marker) {
		orb := rl.Vector3{X: m.Position.X, Y: m.Position.Y - markerDrop, Z: m.Position.Z}
		if !nav.Pick(rayAt(orb, rl.Vector3{X: m.Position.X, Y: 8, Z: -1})) {
			t.Fatalf("pick of %d missed", m.Index)
		}
	}
	markers := nav.Markers()
	first, second := markers[3], markers[0] // 6 then 2
	pick(first)
	env.Run(0.5, 1.0/60)
	pick(second)
	env.Run(2, 1.0/60)

	if len(arrived) != 1 || arrived[0] != 2 {
		t.Errorf("expected only the second transition to arrive, got %v", arrived)
	}
}

func TestArrivalAtLastBaseDimsAndUnlocks(t *testing.T) {
	env := apptest.New(nil)
	nav := New(env.Context, linePath(5), nil, testConfig())
	env.View.Position = rl.Vector3{X: 6, Y: 1.6}
	nav.Update()

	var last *Marker
	for _, m := range nav.Markers() {
		if m.Index == 4 {
			last = m
		}
	}
	if last == nil {
		t.Fatal("expected a marker for index 4")
	}
	orb := rl.Vector3{X: last.Position.X, Y: last.Position.Y - markerDrop, Z: last.Position.Z}
	nav.Pick(rayAt(orb, rl.Vector3{X: 8, Y: 5, Z: 0.01}))
	env.Run(2, 1.0/60)

	if env.RecLight.V != 0.3 {
		t.Errorf("expected dimmed flashlight, got %v", env.RecLight.V)
	}
	if !env.Recorded.Has(app.AchievementReachedEnd) {
		t.Error("expected reached_end achievement")
	}
	if !nav.IsAtLastPosition() {
		t.Error("expected IsAtLastPosition")
	}
}

func TestPickMissesWithoutMarkers(t *testing.T) {
	env := apptest.New(nil)
	nav := New(env.Context, linePath(3), nil, testConfig())
	if nav.Pick(rl.Ray{Direction: rl.Vector3{Z: 1}}) {
		t.Error("nothing to pick")
	}
}

func TestWalkModeDisablesMarkers(t *testing.T) {
	env := apptest.New(nil)
	nav := New(env.Context, linePath(10), nil, testConfig())
	env.View.Position = rl.Vector3{X: 8, Y: 1.6}
	nav.Update()

	app.Publish(env.Context, app.WalkModeChanged{Active: true})
	if len(nav.Markers()) != 0 {
		t.Errorf("expected no markers in walk-mode, got %v", markerIndices(nav))
	}
	app.Publish(env.Context, app.WalkModeChanged{Active: false})
	if len(nav.Markers()) != 4 {
		t.Errorf("expected markers back, got %v", markerIndices(nav))
	}
}

func TestSyncFollowsExternalMoves(t *testing.T) {
	env := apptest.New(nil)
	nav := New(env.Context, linePath(10), nil, testConfig())
	env.View.Position = rl.Vector3{X: 8, Y: 1.6}
	nav.Sync()
	if nav.ClosestIndex() != 4 {
		t.Fatalf("expected closest 4, got %d", nav.ClosestIndex())
	}
	env.View.Position = rl.Vector3{X: 2, Y: 1.6}
	nav.Sync()
	if nav.ClosestIndex() != 1 {
		t.Errorf("expected closest 1 after move, got %d", nav.ClosestIndex())
	}
}

func TestClosestTiesGoToLowerIndex(t *testing.T) {
	p := linePath(3)
	if got := p.Closest(rl.Vector3{X: 1, Y: 1.6}); got != 0 {
		t.Errorf("expected tie to resolve to 0, got %d", got)
	}
	if got := (Path{}).Closest(rl.Vector3{}); got != -1 {
		t.Errorf("expected -1 for empty path, got %d", got)
	}
}
