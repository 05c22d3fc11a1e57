// Package app holds the Context every gameplay system is built from: the
// scene, the viewpoint, shared services and the side-effect sinks.
package app

import (
	"math/rand/v2"

	rl "github.com/gen2brain/raylib-go/raylib"

	"walksim/internal/camera"
	"walksim/internal/config"
	"walksim/internal/engine"
	"walksim/internal/registry"
	"walksim/internal/tween"
)

const (
	AchievementReachedEnd = "reached_end"
	AchievementCaught     = "caught"
	AchievementEscaped    = "escaped"
)

// Animation keys shared between systems that drive the same target.
const (
	TweenViewpoint = "viewpoint"
	TweenLook      = "look"
	TweenLight     = "light"
	TweenFade      = "fade"
)

// Achievements receives unlocks. Unlock must be safe to call repeatedly.
type Achievements interface {
	Unlock(id string)
}

type Light interface {
	SetFlashlightIntensity(v float32)
	FlashlightIntensity() float32
}

// Projector maps world positions to screen pixels. ok is false for points
// behind the camera.
type Projector interface {
	WorldToScreen(p rl.Vector3) (screen rl.Vector2, ok bool)
}

// Presence drives the audio cue for a nearby but hidden NPC.
type Presence interface {
	Update(hidden bool, listener, right, source rl.Vector3)
}

type FadeKind int

const (
	FadeNone FadeKind = iota
	FadeLose
	FadeWin
)

// Overlay is the 2D presentation layer. Calls are idempotent state setters.
type Overlay interface {
	SetIndicator(id string, visible bool, at rl.Vector2)
	SetCountdown(n int, visible bool)
	ShowIntro()
	SetChecklist(flags []bool, visible bool)
	SetHiddenEffect(on bool)
	SetFade(kind FadeKind, alpha float32)
}

type Context struct {
	Scene  *engine.Scene
	View   *camera.Viewpoint
	Bus    *engine.Bus
	Roles  *registry.Registry
	Tweens *tween.Table
	Clock  tween.Clock
	Rand   *rand.Rand
	Tuning config.Tuning

	Achievements Achievements
	Light        Light
	Overlay      Overlay
	Projector    Projector
	Presence     Presence
}

// NewContext wires the shared services. Sinks start as no-ops and are
// replaced by the caller.
func NewContext(scene *engine.Scene, view *camera.Viewpoint, roles *registry.Registry, tuning config.Tuning, clock tween.Clock, seed uint64) *Context {
	return &Context{
		Scene:        scene,
		View:         view,
		Bus:          engine.NewBus(),
		Roles:        roles,
		Tweens:       tween.NewTable(clock),
		Clock:        clock,
		Rand:         rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		Tuning:       tuning,
		Achievements: NopAchievements{},
		Light:        &NopLight{},
		Overlay:      NopOverlay{},
		Projector:    NopProjector{},
		Presence:     NopPresence{},
	}
}

func (c *Context) Now() float64 { return c.Clock.Now() }

// Role is shorthand for c.Roles.Node that tolerates a missing registry.
func (c *Context) Role(role string) *engine.GameObject {
	if c.Roles == nil {
		return nil
	}
	return c.Roles.Node(role)
}

func (c *Context) RoleNodes(role string) []*engine.GameObject {
	if c.Roles == nil {
		return nil
	}
	return c.Roles.Nodes(role)
}

type NopAchievements struct{}

func (NopAchievements) Unlock(string) {}

type NopLight struct{ v float32 }

func (l *NopLight) SetFlashlightIntensity(v float32) { l.v = v }
func (l *NopLight) FlashlightIntensity() float32     { return l.v }

type NopOverlay struct{}

func (NopOverlay) SetIndicator(string, bool, rl.Vector2) {}
func (NopOverlay) SetCountdown(int, bool)                {}
func (NopOverlay) ShowIntro()                            {}
func (NopOverlay) SetChecklist([]bool, bool)             {}
func (NopOverlay) SetHiddenEffect(bool)                  {}
func (NopOverlay) SetFade(FadeKind, float32)             {}

type NopProjector struct{}

func (NopProjector) WorldToScreen(rl.Vector3) (rl.Vector2, bool) { return rl.Vector2{}, true }

type NopPresence struct{}

func (NopPresence) Update(bool, rl.Vector3, rl.Vector3, rl.Vector3) {}
