package tween

import rl "github.com/gen2brain/raylib-go/raylib"

// Clock reports the current time in seconds. Every deadline in the game is
// compared against the same clock.
type Clock interface {
	Now() float64
}

// WindowClock reads raylib's timer, which starts at InitWindow.
type WindowClock struct{}

func (WindowClock) Now() float64 { return rl.GetTime() }

// ManualClock only moves when told to.
type ManualClock struct {
	T float64
}

func (c *ManualClock) Now() float64 { return c.T }

func (c *ManualClock) Advance(seconds float64) { c.T += seconds }
