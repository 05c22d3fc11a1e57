package components

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"walksim/internal/engine"
)

func init() {
	engine.RegisterScript("Sway", swayFactory)
	engine.RegisterScript("Collectible", collectibleFactory)
	engine.RegisterScript("Rotator", rotatorFactory)
}

func swayFactory(props map[string]any) engine.Component {
	s := NewSway()
	s.SpinSpeed = engine.PropFloat(props, "spinSpeed", s.SpinSpeed)
	s.EnableSway = engine.PropBool(props, "sway", false)
	s.EnableSpin = engine.PropBool(props, "spin", false)
	amp := engine.PropFloat(props, "amplitude", 0)
	if amp > 0 {
		s.Amplitude = rl.Vector3{X: amp * 0.7, Y: amp, Z: amp * 0.7}
	}
	return s
}

func collectibleFactory(props map[string]any) engine.Component {
	c := NewCollectible(engine.PropInt(props, "slot", 0))
	c.Radius = engine.PropFloat(props, "radius", c.Radius)
	return c
}

// Rotator is a simple script that spins an object around the Y axis.
type Rotator struct {
	engine.BaseComponent
	Speed float32
}

func (r *Rotator) Update(deltaTime float32) {
	g := r.GetGameObject()
	if g == nil {
		return
	}
	g.Transform.Rotation.Y += r.Speed * deltaTime
	if g.Transform.Rotation.Y > 360 {
		g.Transform.Rotation.Y -= 360
	}
}

func rotatorFactory(props map[string]any) engine.Component {
	return &Rotator{Speed: engine.PropFloat(props, "speed", 90)}
}
