// Package input turns keyboard, mouse, gamepad and touch state into the
// per-frame movement, look and pointer values the game systems consume.
package input

import (
	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// Move is walk-mode input on each axis in [-1, 1].
type Move struct {
	Forward, Strafe float32
}

// Look is a view rotation delta in mouse pixels; the viewpoint scales it.
type Look struct {
	Yaw, Pitch float32
}

type Pointer struct {
	Pressed bool
	Pos     rl.Vector2
}

type Frame struct {
	Move    Move
	Look    Look
	Pointer Pointer
	// Back asks to leave a focused object.
	Back bool
	// Debug toggles the debug overlay.
	Debug bool
}

const (
	defaultDeadzone  = 0.15
	defaultStick     = 70
	defaultPadLook   = 900
	stickZoneFrac    = 1.0 / 3
	noTouch          = int32(-1)
	stickDeadzoneRel = 0.1
)

// Sampler reads a Device once per frame. Touches in the left third of the
// screen drive a virtual stick anchored where the finger landed; touches
// elsewhere drag the view.
type Sampler struct {
	dev Device

	Deadzone    float32
	StickRadius float32
	// PadLook is the look rate at full right-stick deflection, in mouse
	// pixels per second.
	PadLook float32

	stickID     int32
	stickCenter rl.Vector2
	stickPos    rl.Vector2

	lookID   int32
	lookLast rl.Vector2
}

func NewSampler(dev Device) *Sampler {
	return &Sampler{
		dev:         dev,
		Deadzone:    defaultDeadzone,
		StickRadius: defaultStick,
		PadLook:     defaultPadLook,
		stickID:     noTouch,
		lookID:      noTouch,
	}
}

// StickActive reports whether a finger is on the virtual stick, and where.
func (s *Sampler) StickActive() (center, pos rl.Vector2, ok bool) {
	return s.stickCenter, s.stickPos, s.stickID != noTouch
}

func (s *Sampler) Sample(dt float32) Frame {
	var f Frame
	d := s.dev

	f.Move = s.keyboard()
	if x, ok := d.GamepadAxis(rl.GamepadAxisLeftX); ok {
		y, _ := d.GamepadAxis(rl.GamepadAxisLeftY)
		f.Move.Strafe += deadzone(x, s.Deadzone)
		f.Move.Forward -= deadzone(y, s.Deadzone)
		rx, _ := d.GamepadAxis(rl.GamepadAxisRightX)
		ry, _ := d.GamepadAxis(rl.GamepadAxisRightY)
		f.Look.Yaw += deadzone(rx, s.Deadzone) * s.PadLook * dt
		f.Look.Pitch += deadzone(ry, s.Deadzone) * s.PadLook * dt
	}

	if d.MouseDown(rl.MouseRightButton) {
		md := d.MouseDelta()
		f.Look.Yaw += md.X
		f.Look.Pitch += md.Y
	}

	stick, look := s.touches()
	f.Move.Forward += stick.Forward
	f.Move.Strafe += stick.Strafe
	f.Look.Yaw += look.Yaw
	f.Look.Pitch += look.Pitch

	f.Move.Forward = clampUnit(f.Move.Forward)
	f.Move.Strafe = clampUnit(f.Move.Strafe)

	if d.MousePressed(rl.MouseLeftButton) {
		pos := d.MousePosition()
		if !s.inStickZone(pos) || s.stickID == noTouch {
			f.Pointer = Pointer{Pressed: true, Pos: pos}
		}
	}
	f.Back = d.KeyPressed(rl.KeyEscape) || d.KeyPressed(rl.KeyBackspace)
	f.Debug = d.KeyPressed(rl.KeyF1)
	return f
}

func (s *Sampler) keyboard() Move {
	var m Move
	d := s.dev
	if d.KeyDown(rl.KeyW) || d.KeyDown(rl.KeyUp) {
		m.Forward++
	}
	if d.KeyDown(rl.KeyS) || d.KeyDown(rl.KeyDown) {
		m.Forward--
	}
	if d.KeyDown(rl.KeyD) || d.KeyDown(rl.KeyRight) {
		m.Strafe++
	}
	if d.KeyDown(rl.KeyA) || d.KeyDown(rl.KeyLeft) {
		m.Strafe--
	}
	return m
}

func (s *Sampler) inStickZone(p rl.Vector2) bool {
	return p.X < s.dev.ScreenSize().X*stickZoneFrac
}

// touches tracks the stick finger and the look finger by touch id across
// frames. A finger keeps its role until it lifts.
func (s *Sampler) touches() (Move, Look) {
	var look Look
	stickSeen, lookSeen := false, false
	for _, t := range s.dev.Touches() {
		switch t.ID {
		case s.stickID:
			s.stickPos = t.Pos
			stickSeen = true
			continue
		case s.lookID:
			look.Yaw += t.Pos.X - s.lookLast.X
			look.Pitch += t.Pos.Y - s.lookLast.Y
			s.lookLast = t.Pos
			lookSeen = true
			continue
		}
		switch {
		case s.stickID == noTouch && s.inStickZone(t.Pos):
			s.stickID, s.stickCenter, s.stickPos = t.ID, t.Pos, t.Pos
			stickSeen = true
		case s.lookID == noTouch && !s.inStickZone(t.Pos):
			s.lookID, s.lookLast = t.ID, t.Pos
			lookSeen = true
		}
	}
	if !stickSeen {
		s.stickID = noTouch
	}
	if !lookSeen {
		s.lookID = noTouch
	}

	if s.stickID == noTouch {
		return Move{}, look
	}
	return StickVector(s.stickCenter, s.stickPos, s.StickRadius), look
}

// StickVector converts a finger position relative to the stick center into
// movement. Up the screen is forward. Deflection is clamped to radius and a
// small dead zone around the center reads as zero.
func StickVector(center, pos rl.Vector2, radius float32) Move {
	if radius <= 0 {
		return Move{}
	}
	dx, dy := pos.X-center.X, pos.Y-center.Y
	l := math32.Hypot(dx, dy)
	if l < radius*stickDeadzoneRel {
		return Move{}
	}
	if l > radius {
		dx, dy = dx*radius/l, dy*radius/l
	}
	return Move{Forward: -dy / radius, Strafe: dx / radius}
}

func deadzone(v, dz float32) float32 {
	if math32.Abs(v) < dz {
		return 0
	}
	return v
}

func clampUnit(v float32) float32 {
	return max(-1, min(1, v))
}
