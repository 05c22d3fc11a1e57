package tween

import "github.com/gen2brain/raylib-go/easings"

// Ease maps normalized progress in [0,1] to eased progress.
type Ease func(t float32) float32

// Penner adapts a Robert Penner style easing (t, begin, change, duration).
func Penner(f func(t, b, c, d float32) float32) Ease {
	return func(t float32) float32 { return f(t, 0, 1, 1) }
}

var (
	Linear    = Penner(easings.LinearNone)
	InOut     = Penner(easings.CubicInOut)
	Out       = Penner(easings.CubicOut)
	SineInOut = Penner(easings.SineInOut)
	QuadInOut = Penner(easings.QuadInOut)
)

var byName = map[string]Ease{
	"linear":    Linear,
	"inout":     InOut,
	"out":       Out,
	"sineinout": SineInOut,
	"quadinout": QuadInOut,
}

// Named returns the easing registered under name, or InOut.
func Named(name string) Ease {
	if e, ok := byName[name]; ok {
		return e
	}
	return InOut
}
