// Package tween keeps the table of running animations. Each entry is a
// start time, duration, easing and a step function; advancing the table is a
// function of the clock alone, and cancelling an animation removes its entry.
package tween

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"walksim/internal/diag"
)

type task struct {
	key   string
	start float64
	dur   float64
	ease  Ease
	step  func(k float32)
	done  func()
}

// Table holds at most one animation per key. Starting an animation with a
// key already in use kills the previous one without running its done callback.
type Table struct {
	clock Clock
	tasks []*task
}

func NewTable(clock Clock) *Table {
	return &Table{clock: clock}
}

func (t *Table) Clock() Clock { return t.clock }

// Start adds a generic animation. step receives eased progress in [0,1].
func (t *Table) Start(key string, duration float64, ease Ease, step func(k float32), done func()) {
	t.Kill(key)
	if ease == nil {
		ease = Linear
	}
	t.tasks = append(t.tasks, &task{
		key:   key,
		start: t.clock.Now(),
		dur:   duration,
		ease:  ease,
		step:  step,
		done:  done,
	})
}

// Vec3 animates a vector from -> to, handing each value to apply.
func (t *Table) Vec3(key string, from, to rl.Vector3, duration float64, ease Ease, apply func(rl.Vector3), done func()) {
	t.Start(key, duration, ease, func(k float32) {
		if apply != nil {
			apply(rl.Vector3Lerp(from, to, k))
		}
	}, done)
}

// Float animates a scalar from -> to.
func (t *Table) Float(key string, from, to float32, duration float64, ease Ease, apply func(float32), done func()) {
	t.Start(key, duration, ease, func(k float32) {
		if apply != nil {
			apply(from + (to-from)*k)
		}
	}, done)
}

// Delay runs done once duration has elapsed.
func (t *Table) Delay(key string, duration float64, done func()) {
	t.Start(key, duration, Linear, nil, done)
}

// Kill removes the animation under key. The done callback does not run.
func (t *Table) Kill(key string) bool {
	for i, tk := range t.tasks {
		if tk.key == key {
			t.tasks = append(t.tasks[:i], t.tasks[i+1:]...)
			return true
		}
	}
	return false
}

// KillPrefix removes every animation whose key starts with prefix.
func (t *Table) KillPrefix(prefix string) {
	kept := t.tasks[:0]
	for _, tk := range t.tasks {
		if len(tk.key) >= len(prefix) && tk.key[:len(prefix)] == prefix {
			continue
		}
		kept = append(kept, tk)
	}
	t.tasks = kept
}

func (t *Table) Active(key string) bool {
	return t.find(key) != nil
}

func (t *Table) Len() int { return len(t.tasks) }

func (t *Table) find(key string) *task {
	for _, tk := range t.tasks {
		if tk.key == key {
			return tk
		}
	}
	return nil
}

// Advance steps every animation to the clock's current time. Finished
// animations are removed before their done callback runs, so a callback may
// start a new animation under the same key. Panics in callbacks are logged.
func (t *Table) Advance() {
	now := t.clock.Now()
	snapshot := append([]*task(nil), t.tasks...)
	for _, tk := range snapshot {
		if t.find(tk.key) != tk {
			continue
		}
		k := float32(1)
		if tk.dur > 0 {
			p := (now - tk.start) / tk.dur
			if p < 0 {
				p = 0
			}
			if p < 1 {
				k = float32(p)
			}
		}
		finished := k >= 1
		if tk.step != nil {
			eased := tk.ease(k)
			if finished {
				eased = 1
			}
			diag.Guard("Tween "+tk.key, func() { tk.step(eased) })
		}
		if finished {
			t.Kill(tk.key)
			diag.Guard("Tween "+tk.key, tk.done)
		}
	}
}
