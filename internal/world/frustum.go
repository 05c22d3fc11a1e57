package world

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

const (
	nearPlane = 0.05
	farPlane  = 200.0
)

// Frustum holds the six clip planes of a perspective camera: left, right,
// bottom, top, near, far.
type Frustum struct {
	planes [6]Plane
}

// Plane is ax + by + cz + d = 0 with a unit normal pointing inward.
type Plane struct {
	normal   rl.Vector3
	distance float32
}

// ExtractFrustum derives the planes from the camera's view-projection matrix
// (Gribb/Hartmann). aspect is width over height.
func ExtractFrustum(camera rl.Camera3D, aspect float32) Frustum {
	view := rl.MatrixLookAt(camera.Position, camera.Target, camera.Up)
	proj := rl.MatrixPerspective(camera.Fovy*rl.Deg2rad, aspect, nearPlane, farPlane)
	m := rl.MatrixMultiply(view, proj)

	row := func(i int) [4]float32 {
		switch i {
		case 0:
			return [4]float32{m.M0, m.M4, m.M8, m.M12}
		case 1:
			return [4]float32{m.M1, m.M5, m.M9, m.M13}
		case 2:
			return [4]float32{m.M2, m.M6, m.M10, m.M14}
		}
		return [4]float32{m.M3, m.M7, m.M11, m.M15}
	}
	w := row(3)
	plane := func(r [4]float32, sign float32) Plane {
		return normalizePlane(Plane{
			normal:   rl.Vector3{X: w[0] + sign*r[0], Y: w[1] + sign*r[1], Z: w[2] + sign*r[2]},
			distance: w[3] + sign*r[3],
		})
	}

	var f Frustum
	for axis := 0; axis < 3; axis++ {
		f.planes[2*axis] = plane(row(axis), 1)
		f.planes[2*axis+1] = plane(row(axis), -1)
	}
	return f
}

func normalizePlane(p Plane) Plane {
	length := rl.Vector3Length(p.normal)
	if length == 0 {
		return p
	}
	return Plane{
		normal:   rl.Vector3Scale(p.normal, 1/length),
		distance: p.distance / length,
	}
}

// ContainsSphere is false only when the sphere lies wholly outside one plane.
func (f *Frustum) ContainsSphere(center rl.Vector3, radius float32) bool {
	for _, p := range f.planes {
		if rl.Vector3DotProduct(p.normal, center)+p.distance < -radius {
			return false
		}
	}
	return true
}

func (f *Frustum) ContainsPoint(point rl.Vector3) bool {
	return f.ContainsSphere(point, 0)
}
