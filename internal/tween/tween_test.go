package tween

import (
	"testing"

	rl "github.com/gen2brain/raylib-go/raylib"
)

func near(a, b float32) bool {
	d := a - b
	return d < 1e-4 && d > -1e-4
}

func TestVec3ReachesTargetAndRunsDone(t *testing.T) {
	clock := &ManualClock{}
	table := NewTable(clock)

	var pos rl.Vector3
	done := 0
	table.Vec3("viewpoint", rl.Vector3{}, rl.Vector3{X: 10}, 2, Linear, func(v rl.Vector3) { pos = v }, func() { done++ })

	clock.Advance(1)
	table.Advance()
	if !near(pos.X, 5) {
		t.Errorf("expected halfway at 5, got %v", pos.X)
	}
	if done != 0 {
		t.Error("done ran early")
	}

	clock.Advance(1.5)
	table.Advance()
	if !near(pos.X, 10) {
		t.Errorf("expected exact target, got %v", pos.X)
	}
	if done != 1 {
		t.Errorf("expected done once, got %d", done)
	}
	if table.Active("viewpoint") {
		t.Error("finished task should be removed")
	}

	table.Advance()
	if done != 1 {
		t.Error("done must not run twice")
	}
}

func TestStartingSameKeyKillsPrevious(t *testing.T) {
	clock := &ManualClock{}
	table := NewTable(clock)

	firstDone := false
	var got float32
	table.Float("viewpoint", 0, 1, 1, Linear, func(v float32) { got = v }, func() { firstDone = true })
	clock.Advance(0.5)
	table.Advance()

	table.Float("viewpoint", 100, 200, 1, Linear, func(v float32) { got = v }, nil)
	clock.Advance(2)
	table.Advance()

	if firstDone {
		t.Error("killed task must not run its done callback")
	}
	if !near(got, 200) {
		t.Errorf("expected second tween to win, got %v", got)
	}
	if table.Len() != 0 {
		t.Errorf("expected empty table, got %d", table.Len())
	}
}

func TestDoneCanRestartSameKey(t *testing.T) {
	clock := &ManualClock{}
	table := NewTable(clock)

	stage := 0
	table.Delay("cinematic", 5, func() {
		stage = 1
		table.Delay("cinematic", 1, func() { stage = 2 })
	})

	clock.Advance(5)
	table.Advance()
	if stage != 1 || !table.Active("cinematic") {
		t.Fatalf("expected chained delay to be pending, stage=%d", stage)
	}
	clock.Advance(0.5)
	table.Advance()
	if stage != 1 {
		t.Error("second stage ran early")
	}
	clock.Advance(0.5)
	table.Advance()
	if stage != 2 {
		t.Errorf("expected stage 2, got %d", stage)
	}
}

func TestPanickingCallbackDoesNotStopTable(t *testing.T) {
	clock := &ManualClock{}
	table := NewTable(clock)

	ran := false
	table.Delay("bad", 0, func() { panic("boom") })
	table.Delay("good", 0, func() { ran = true })
	table.Advance()

	if !ran {
		t.Error("later task should still run")
	}
	if table.Len() != 0 {
		t.Error("both tasks should be removed")
	}
}

func TestKillPrefix(t *testing.T) {
	table := NewTable(&ManualClock{})
	table.Delay("object:Bottle", 1, nil)
	table.Delay("object:Painting", 1, nil)
	table.Delay("viewpoint", 1, nil)

	table.KillPrefix("object:")
	if table.Len() != 1 || !table.Active("viewpoint") {
		t.Errorf("expected only viewpoint left, got %d tasks", table.Len())
	}
}

func TestEasingsAreNormalized(t *testing.T) {
	for name, e := range byName {
		if !near(e(0), 0) || !near(e(1), 1) {
			t.Errorf("%s: expected endpoints 0 and 1, got %v and %v", name, e(0), e(1))
		}
	}
	if !near(InOut(0.5), 0.5) {
		t.Errorf("ease-in-out should be symmetric, got %v", InOut(0.5))
	}
}
