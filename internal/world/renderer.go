package world

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"walksim/internal/components"
	"walksim/internal/engine"
)

// Renderer draws the primitive scene inside BeginMode3D, shading boxes with
// the flashlight and skipping anything outside the view frustum.
type Renderer struct {
	Light    *components.Flashlight
	Fog      rl.Color
	Drawn    int
	Culled   int
	NoCull   bool
	frustum  Frustum
	hasFrust bool
}

func NewRenderer(light *components.Flashlight) *Renderer {
	return &Renderer{Light: light, Fog: rl.NewColor(6, 6, 10, 255)}
}

// Begin prepares culling for a frame drawn from camera.
func (r *Renderer) Begin(camera rl.Camera3D, aspect float32) {
	r.frustum = ExtractFrustum(camera, aspect)
	r.hasFrust = !r.NoCull && aspect > 0
	r.Drawn, r.Culled = 0, 0
}

// Visible reports whether a bounding sphere survives culling.
func (r *Renderer) Visible(center rl.Vector3, radius float32) bool {
	return !r.hasFrust || r.frustum.ContainsSphere(center, radius)
}

func (r *Renderer) DrawScene(scene *engine.Scene) {
	scene.Traverse(func(g *engine.GameObject) {
		if !g.ActiveInHierarchy() {
			return
		}
		if box := engine.GetComponent[*components.BoxRenderer](g); box != nil && box.Enabled() {
			s := g.WorldScale()
			half := rl.Vector3{X: box.Size.X * s.X / 2, Y: box.Size.Y * s.Y / 2, Z: box.Size.Z * s.Z / 2}
			if !r.Visible(g.WorldPosition(), rl.Vector3Length(half)) {
				r.Culled++
				return
			}
			box.DrawShaded(r.Light)
			r.Drawn++
		}
		if sphere := engine.GetComponent[*components.SphereRenderer](g); sphere != nil && sphere.Enabled() {
			if !r.Visible(g.WorldPosition(), sphere.Radius*1.3) {
				r.Culled++
				return
			}
			sphere.Draw()
			r.Drawn++
		}
	})
}
