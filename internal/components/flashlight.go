package components

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"walksim/internal/engine"
)

// Flashlight is the light carried with the viewpoint. Objects are shaded on
// the CPU from its intensity and their distance to the holder.
type Flashlight struct {
	engine.BaseComponent
	Color     rl.Color
	Intensity float32
	Radius    float32 // falloff distance
	Ambient   float32
}

func NewFlashlight() *Flashlight {
	return &Flashlight{
		Color:     rl.NewColor(255, 244, 214, 255),
		Intensity: 1.0,
		Radius:    12.0,
		Ambient:   0.15,
	}
}

func (f *Flashlight) SetFlashlightIntensity(v float32) {
	if v < 0 {
		v = 0
	}
	f.Intensity = v
}

func (f *Flashlight) FlashlightIntensity() float32 {
	return f.Intensity
}

func (f *Flashlight) GetPosition() rl.Vector3 {
	if g := f.GetGameObject(); g != nil {
		return g.WorldPosition()
	}
	return rl.Vector3Zero()
}

// Shade returns base lit by ambient plus the flashlight at the given point.
func (f *Flashlight) Shade(base rl.Color, at rl.Vector3) rl.Color {
	d := rl.Vector3Distance(f.GetPosition(), at)
	falloff := float32(0)
	if f.Radius > 0 && d < f.Radius {
		falloff = 1 - d/f.Radius
	}
	k := f.Ambient + f.Intensity*falloff
	if k > 1 {
		k = 1
	}
	return rl.NewColor(
		uint8(float32(base.R)*k*float32(f.Color.R)/255),
		uint8(float32(base.G)*k*float32(f.Color.G)/255),
		uint8(float32(base.B)*k*float32(f.Color.B)/255),
		base.A,
	)
}
