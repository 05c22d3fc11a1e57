package camera

import (
	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// Viewpoint is the first-person eye. Position is written by whichever system
// currently drives it (orb tweens, focus transitions, walk-mode movement).
type Viewpoint struct {
	Position  rl.Vector3
	Yaw       float32 // degrees, forward = (cos yaw, 0, sin yaw)
	Pitch     float32 // degrees
	Fovy      float32
	LookSpeed float32
}

const maxPitch = 89

func New(pos rl.Vector3) *Viewpoint {
	return &Viewpoint{
		Position:  pos,
		Yaw:       -90.0,
		Pitch:     0.0,
		Fovy:      60,
		LookSpeed: 0.1,
	}
}

// ApplyLook turns the view by raw look deltas (mouse pixels or stick units).
func (v *Viewpoint) ApplyLook(dyaw, dpitch float32) {
	v.Yaw += dyaw * v.LookSpeed
	v.Pitch -= dpitch * v.LookSpeed
	v.clampPitch()
}

func (v *Viewpoint) clampPitch() {
	if v.Pitch > maxPitch {
		v.Pitch = maxPitch
	}
	if v.Pitch < -maxPitch {
		v.Pitch = -maxPitch
	}
}

// Forward is the unit view direction including pitch.
func (v *Viewpoint) Forward() rl.Vector3 {
	sy, cy := math32.Sincos(v.Yaw * rl.Deg2rad)
	sp, cp := math32.Sincos(v.Pitch * rl.Deg2rad)
	return rl.Vector3{X: cy * cp, Y: sp, Z: sy * cp}
}

// Basis returns forward and right on the horizontal plane.
func (v *Viewpoint) Basis() (forward, right rl.Vector3) {
	s, c := math32.Sincos(v.Yaw * rl.Deg2rad)
	forward = rl.Vector3{X: c, Z: s}
	right = rl.Vector3{X: -s, Z: c}
	return
}

// Angles returns the yaw and pitch that look from the viewpoint at target.
// Yaw is unwrapped to the value nearest the current yaw so a tween between
// them takes the short way round.
func (v *Viewpoint) Angles(target rl.Vector3) (yaw, pitch float32) {
	d := rl.Vector3Subtract(target, v.Position)
	flat := math32.Hypot(d.X, d.Z)
	if flat < 1e-6 && math32.Abs(d.Y) < 1e-6 {
		return v.Yaw, v.Pitch
	}
	yaw = math32.Atan2(d.Z, d.X) * rl.Rad2deg
	for yaw-v.Yaw > 180 {
		yaw -= 360
	}
	for yaw-v.Yaw < -180 {
		yaw += 360
	}
	pitch = math32.Atan2(d.Y, flat) * rl.Rad2deg
	if pitch > maxPitch {
		pitch = maxPitch
	}
	if pitch < -maxPitch {
		pitch = -maxPitch
	}
	return yaw, pitch
}

func (v *Viewpoint) LookAt(target rl.Vector3) {
	v.Yaw, v.Pitch = v.Angles(target)
}

func (v *Viewpoint) Target() rl.Vector3 {
	return rl.Vector3Add(v.Position, v.Forward())
}

func (v *Viewpoint) Camera3D() rl.Camera3D {
	return rl.Camera3D{
		Position:   v.Position,
		Target:     v.Target(),
		Up:         rl.Vector3{X: 0, Y: 1, Z: 0},
		Fovy:       v.Fovy,
		Projection: rl.CameraPerspective,
	}
}
