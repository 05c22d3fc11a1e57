// Package audio plays the presence cue: a low drone that pans and fades with
// the NPC's position while it is close but out of sight.
package audio

import (
	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// headShadow is how much the far ear is attenuated for a source fully to
// one side.
const headShadow = 0.7

type Gains struct {
	Left, Right float32
}

// Spatialize returns per-ear gains for a source heard from listener. right is
// the listener's right vector. Within ref the source is at full level, past
// it the level falls with the inverse square, and over the last fifth of far
// it fades to silence.
func Spatialize(listener, right, source rl.Vector3, ref, far float32) Gains {
	d := rl.Vector3Subtract(source, listener)
	dist := rl.Vector3Length(d)
	if dist >= far {
		return Gains{}
	}

	att := float32(1)
	if dist > ref && dist > 0 {
		r := ref / dist
		att = r * r
	}
	if fadeStart := far * 0.8; dist > fadeStart {
		att *= 1 - (dist-fadeStart)/(far*0.2)
	}

	var pan float32
	flatRight := rl.Vector3{X: right.X, Z: right.Z}
	if l := rl.Vector3Length(flatRight); l > 1e-3 && dist > 1e-3 {
		pan = (d.X*flatRight.X + d.Z*flatRight.Z) / (l * dist)
		pan = max(-1, min(1, pan))
	}

	g := Gains{Left: att, Right: att}
	if pan > 0 {
		g.Left *= 1 - headShadow*pan
	} else {
		g.Right *= 1 - headShadow*math32.Abs(pan)
	}
	return g
}
