// Package apptest builds app.Contexts with recording sinks and a manual clock.
package apptest

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"walksim/internal/app"
	"walksim/internal/camera"
	"walksim/internal/config"
	"walksim/internal/engine"
	"walksim/internal/registry"
	"walksim/internal/tween"
)

type Achievements struct {
	Unlocked []string
}

func (a *Achievements) Unlock(id string) {
	for _, u := range a.Unlocked {
		if u == id {
			return
		}
	}
	a.Unlocked = append(a.Unlocked, id)
}

func (a *Achievements) Has(id string) bool {
	for _, u := range a.Unlocked {
		if u == id {
			return true
		}
	}
	return false
}

type Light struct {
	V       float32
	History []float32
}

func (l *Light) SetFlashlightIntensity(v float32) {
	l.V = v
	l.History = append(l.History, v)
}

func (l *Light) FlashlightIntensity() float32 { return l.V }

type Overlay struct {
	Indicators     map[string]bool
	Countdown      int
	CountdownShown bool
	Intros         int
	Checklist      []bool
	ChecklistShown bool
	Hidden         bool
	Fade           app.FadeKind
	FadeAlpha      float32
	Fades          []app.FadeKind
}

func NewOverlay() *Overlay {
	return &Overlay{Indicators: map[string]bool{}}
}

func (o *Overlay) SetIndicator(id string, visible bool, _ rl.Vector2) { o.Indicators[id] = visible }

func (o *Overlay) SetCountdown(n int, visible bool) {
	o.Countdown, o.CountdownShown = n, visible
}

func (o *Overlay) ShowIntro() { o.Intros++ }

func (o *Overlay) SetChecklist(flags []bool, visible bool) {
	o.Checklist = append(o.Checklist[:0], flags...)
	o.ChecklistShown = visible
}

func (o *Overlay) SetHiddenEffect(on bool) { o.Hidden = on }

func (o *Overlay) SetFade(kind app.FadeKind, alpha float32) {
	if kind != o.Fade && kind != app.FadeNone {
		o.Fades = append(o.Fades, kind)
	}
	o.Fade, o.FadeAlpha = kind, alpha
}

type Presence struct {
	Hidden bool
	Calls  int
}

func (p *Presence) Update(hidden bool, _, _, _ rl.Vector3) {
	p.Hidden = hidden
	p.Calls++
}

// Env bundles a Context with the recorders behind its sinks.
type Env struct {
	*app.Context
	ManualClock *tween.ManualClock
	Recorded    *Achievements
	RecLight    *Light
	RecOverlay  *Overlay
	RecPresence *Presence
}

// New returns a context over an empty scene with the default tuning.
func New(manifest registry.Manifest) *Env {
	scene := engine.NewScene("Test")
	clock := &tween.ManualClock{}
	view := camera.New(rl.Vector3{})
	ctx := app.NewContext(scene, view, registry.New(scene, manifest), config.Default(), clock, 1)

	env := &Env{
		Context:     ctx,
		ManualClock: clock,
		Recorded:    &Achievements{},
		RecLight:    &Light{V: 1},
		RecOverlay:  NewOverlay(),
		RecPresence: &Presence{},
	}
	ctx.Achievements = env.Recorded
	ctx.Light = env.RecLight
	ctx.Overlay = env.RecOverlay
	ctx.Presence = env.RecPresence
	return env
}

// Step advances the clock by dt and steps the tween table.
func (e *Env) Step(dt float64) {
	e.ManualClock.Advance(dt)
	e.Tweens.Advance()
}

// Run steps the clock in increments of dt until seconds have elapsed.
func (e *Env) Run(seconds, dt float64) {
	for t := 0.0; t < seconds-1e-9; t += dt {
		e.Step(dt)
	}
}
