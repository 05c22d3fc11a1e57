package game

import (
	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"

	"walksim/internal/camera"
)

// viewBasis returns forward, right and up for the viewpoint's camera.
func viewBasis(view *camera.Viewpoint) (f, r, u rl.Vector3) {
	f = view.Forward()
	r = rl.Vector3Normalize(rl.Vector3CrossProduct(f, rl.Vector3{Y: 1}))
	u = rl.Vector3CrossProduct(r, f)
	return
}

// ScreenRay returns the pick ray through a pixel. It matches the perspective
// Camera3D the viewpoint renders with and needs no window.
func ScreenRay(view *camera.Viewpoint, pos, screen rl.Vector2) rl.Ray {
	f, r, u := viewBasis(view)
	if screen.X <= 0 || screen.Y <= 0 {
		return rl.Ray{Position: view.Position, Direction: f}
	}
	t := math32.Tan(view.Fovy * rl.Deg2rad / 2)
	aspect := screen.X / screen.Y
	x := (2*pos.X/screen.X - 1) * t * aspect
	y := (1 - 2*pos.Y/screen.Y) * t
	dir := rl.Vector3Add(f, rl.Vector3Add(rl.Vector3Scale(r, x), rl.Vector3Scale(u, y)))
	return rl.Ray{Position: view.Position, Direction: rl.Vector3Normalize(dir)}
}

// Projector maps world points to pixels for indicators.
type Projector struct {
	View   *camera.Viewpoint
	Screen *rl.Vector2
}

func (p Projector) WorldToScreen(at rl.Vector3) (rl.Vector2, bool) {
	f, r, u := viewBasis(p.View)
	d := rl.Vector3Subtract(at, p.View.Position)
	z := rl.Vector3DotProduct(d, f)
	if z <= 1e-4 || p.Screen.X <= 0 || p.Screen.Y <= 0 {
		return rl.Vector2{}, false
	}
	t := math32.Tan(p.View.Fovy * rl.Deg2rad / 2)
	aspect := p.Screen.X / p.Screen.Y
	x := rl.Vector3DotProduct(d, r) / (z * t * aspect)
	y := rl.Vector3DotProduct(d, u) / (z * t)
	return rl.Vector2{
		X: (x + 1) / 2 * p.Screen.X,
		Y: (1 - y) / 2 * p.Screen.Y,
	}, true
}
