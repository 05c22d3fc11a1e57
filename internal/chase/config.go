package chase

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"walksim/internal/config"
	"walksim/internal/physics"
)

type Config struct {
	HasAnchor     bool
	Anchor        rl.Vector3
	TriggerRadius float32

	// Bounds, when set, replaces the volume derived from floor and walls.
	Bounds      *physics.AABB
	BoundsInset float32
	ExitEpsilon float32

	Speed        float32
	PlayerRadius float32
	RayHeights   []float32 // relative to the eye
	RayAngles    int

	NPCSpeed         float32
	NPCRadius        float32
	DecisionInterval float64
	StopDistance     float32
	LoseDistance     float32
	ProbeDistance    float32

	Countdown   float64
	LoseFadeIn  float64
	LoseFadeOut float64
	WinFadeIn   float64
	WinFadeOut  float64

	Recovery rl.Vector3
	NPCSpawn rl.Vector3

	TableProxyHeight float32
}

// ConfigFrom reads chase settings. The anchor defaults to the first
// additional waypoint; without one walk-mode can never start.
func ConfigFrom(t config.ChaseTuning, w config.Waypoints) Config {
	c := Config{
		TriggerRadius:    t.TriggerRadius,
		BoundsInset:      t.BoundsInset,
		ExitEpsilon:      t.ExitEpsilon,
		Speed:            t.Speed,
		PlayerRadius:     t.PlayerRadius,
		RayHeights:       t.RayHeights,
		RayAngles:        t.RayAngles,
		NPCSpeed:         t.NPCSpeed,
		NPCRadius:        t.NPCRadius,
		StopDistance:     t.StopDistance,
		LoseDistance:     t.LoseDistance,
		ProbeDistance:    t.ProbeDistance,
		Countdown:        t.CountdownSeconds,
		LoseFadeIn:       t.LoseFadeIn,
		LoseFadeOut:      t.LoseFadeOut,
		WinFadeIn:        t.WinFadeIn,
		WinFadeOut:       t.WinFadeOut,
		Recovery:         t.Recovery.V(),
		NPCSpawn:         t.NPCSpawn.V(),
		TableProxyHeight: t.TableProxyHeight,
	}
	if t.DecisionHz > 0 {
		c.DecisionInterval = 1 / t.DecisionHz
	}
	switch {
	case t.Anchor != nil:
		c.HasAnchor, c.Anchor = true, t.Anchor.V()
	case len(w.Additional) > 0:
		c.HasAnchor, c.Anchor = true, w.Additional[0].V()
	}
	if t.BoundsCenter != nil && t.BoundsSize != nil {
		b := physics.NewAABBFromCenter(t.BoundsCenter.V(), t.BoundsSize.V())
		c.Bounds = &b
	}
	return c
}
