package components

import (
	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"

	"walksim/internal/engine"
)

// Sway animates an object around a rest pose. The pose is a pure function of
// elapsed time, so pausing and resuming never jumps and two objects with the
// same settings and elapsed time are always in the same place.
type Sway struct {
	engine.BaseComponent

	// Positional sway: one sine per axis, each with its own frequency and phase.
	Amplitude rl.Vector3
	Frequency rl.Vector3
	Phase     rl.Vector3

	// Rotational sway in degrees, driven by the same sines.
	RotAmplitude rl.Vector3

	// Continuous spin around Y in degrees per second.
	SpinSpeed float32

	EnableSway bool
	EnableSpin bool

	RestPosition rl.Vector3
	RestRotation rl.Vector3

	elapsed float32
	running bool
}

func NewSway() *Sway {
	return &Sway{
		Amplitude:    rl.Vector3{X: 0.02, Y: 0.03, Z: 0.02},
		Frequency:    rl.Vector3{X: 0.7, Y: 1.1, Z: 0.9},
		Phase:        rl.Vector3{X: 0, Y: 1.3, Z: 2.6},
		RotAmplitude: rl.Vector3{X: 2, Y: 3, Z: 2},
		SpinSpeed:    45,
	}
}

// Begin captures the current transform as the rest pose and starts the
// animation from elapsed zero.
func (s *Sway) Begin() {
	g := s.GetGameObject()
	if g == nil {
		return
	}
	s.RestPosition = g.Transform.Position
	s.RestRotation = g.Transform.Rotation
	s.elapsed = 0
	s.running = true
}

// Resume continues from the elapsed time reached before Stop.
func (s *Sway) Resume() {
	if s.GetGameObject() != nil {
		s.running = true
	}
}

// Stop halts the animation where it is.
func (s *Sway) Stop() {
	s.running = false
}

func (s *Sway) Running() bool { return s.running }

func (s *Sway) Elapsed() float32 { return s.elapsed }

// Pose returns position and rotation offsets from the rest pose at elapsed t.
func (s *Sway) Pose(t float32) (pos, rot rl.Vector3) {
	if s.EnableSway {
		sx := math32.Sin(t*s.Frequency.X*2*math32.Pi + s.Phase.X)
		sy := math32.Sin(t*s.Frequency.Y*2*math32.Pi + s.Phase.Y)
		sz := math32.Sin(t*s.Frequency.Z*2*math32.Pi + s.Phase.Z)
		pos = rl.Vector3{X: sx * s.Amplitude.X, Y: sy * s.Amplitude.Y, Z: sz * s.Amplitude.Z}
		rot = rl.Vector3{X: sz * s.RotAmplitude.X, Y: sx * s.RotAmplitude.Y, Z: sy * s.RotAmplitude.Z}
	}
	if s.EnableSpin {
		rot.Y += math32.Mod(t*s.SpinSpeed, 360)
	}
	return pos, rot
}

func (s *Sway) Update(deltaTime float32) {
	if !s.running {
		return
	}
	g := s.GetGameObject()
	if g == nil {
		return
	}
	s.elapsed += deltaTime
	pos, rot := s.Pose(s.elapsed)
	g.Transform.Position = rl.Vector3Add(s.RestPosition, pos)
	g.Transform.Rotation = rl.Vector3Add(s.RestRotation, rot)
}
