package components

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"walksim/internal/engine"
)

// BoxRenderer draws a flat-shaded box at the object's world transform.
// Scene geometry in this game is primitive; imported models are not used.
type BoxRenderer struct {
	engine.BaseComponent
	Size  rl.Vector3
	Color rl.Color
	Wires bool
}

func NewBoxRenderer(size rl.Vector3, color rl.Color) *BoxRenderer {
	return &BoxRenderer{Size: size, Color: color}
}

func (b *BoxRenderer) Draw() {
	b.DrawShaded(nil)
}

// DrawShaded draws the box lit by light, or unlit when light is nil.
func (b *BoxRenderer) DrawShaded(light *Flashlight) {
	g := b.GetGameObject()
	if g == nil || !g.ActiveInHierarchy() {
		return
	}
	s := g.WorldScale()
	size := rl.Vector3{X: b.Size.X * s.X, Y: b.Size.Y * s.Y, Z: b.Size.Z * s.Z}
	pos := g.WorldPosition()
	rot := g.WorldRotation()

	color := b.Color
	if light != nil {
		color = light.Shade(color, pos)
	}

	rl.PushMatrix()
	rl.Translatef(pos.X, pos.Y, pos.Z)
	rl.Rotatef(rot.Y, 0, 1, 0)
	rl.Rotatef(rot.X, 1, 0, 0)
	rl.Rotatef(rot.Z, 0, 0, 1)
	rl.DrawCubeV(rl.Vector3{}, size, color)
	if b.Wires {
		rl.DrawCubeWiresV(rl.Vector3{}, size, rl.Fade(rl.Black, 0.4))
	}
	rl.PopMatrix()
}

// SphereRenderer draws a glowing sphere, used for orb markers.
type SphereRenderer struct {
	engine.BaseComponent
	Radius float32
	Color  rl.Color
}

func (s *SphereRenderer) Draw() {
	g := s.GetGameObject()
	if g == nil || !g.ActiveInHierarchy() {
		return
	}
	pos := g.WorldPosition()
	rl.DrawSphere(pos, s.Radius, s.Color)
	rl.DrawSphereWires(pos, s.Radius*1.3, 8, 8, rl.Fade(s.Color, 0.3))
}
