package engine

import (
	"slices"
	"sync/atomic"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Transform is relative to the parent. Rotation holds Euler angles in
// degrees, applied X, then Y, then Z.
type Transform struct {
	Position rl.Vector3
	Rotation rl.Vector3
	Scale    rl.Vector3
}

var nextUID atomic.Uint64

// GameObject is a scene node. Children are linked with AddChild and are
// registered with the scene separately.
type GameObject struct {
	UID        uint64
	Name       string
	Tags       []string
	Transform  Transform
	Active     bool
	Scene      *Scene
	Parent     *GameObject
	Children   []*GameObject
	components []Component
	started    bool
}

func NewGameObject(name string) *GameObject {
	return &GameObject{
		UID:       nextUID.Add(1),
		Name:      name,
		Active:    true,
		Transform: Transform{Scale: rl.Vector3One()},
	}
}

func (g *GameObject) AddComponent(c Component) {
	c.SetGameObject(g)
	g.components = append(g.components, c)
}

// GetComponent returns the first component of type T, or the zero value.
func GetComponent[T Component](g *GameObject) T {
	var zero T
	if g == nil {
		return zero
	}
	for _, c := range g.components {
		if typed, ok := c.(T); ok {
			return typed
		}
	}
	return zero
}

func (g *GameObject) Components() []Component { return g.components }

// Start runs each component's Start once.
func (g *GameObject) Start() {
	if g.started {
		return
	}
	g.started = true
	for _, c := range g.components {
		c.Start()
	}
}

func (g *GameObject) Update(deltaTime float32) {
	if !g.ActiveInHierarchy() {
		return
	}
	for _, c := range g.components {
		if IsEnabled(c) {
			c.Update(deltaTime)
		}
	}
}

func (g *GameObject) HasTag(tag string) bool { return slices.Contains(g.Tags, tag) }

// AddChild links child under g, detaching it from any previous parent.
func (g *GameObject) AddChild(child *GameObject) {
	if child.Parent != nil {
		child.Parent.RemoveChild(child)
	}
	child.Parent = g
	g.Children = append(g.Children, child)
}

func (g *GameObject) RemoveChild(child *GameObject) {
	i := slices.Index(g.Children, child)
	if i < 0 {
		return
	}
	g.Children = slices.Delete(g.Children, i, i+1)
	child.Parent = nil
}

// IsDescendantOf reports whether g is ancestor or sits below it in the hierarchy.
func (g *GameObject) IsDescendantOf(ancestor *GameObject) bool {
	if ancestor == nil {
		return false
	}
	for n := g; n != nil; n = n.Parent {
		if n == ancestor {
			return true
		}
	}
	return false
}

// Walk visits g and every descendant depth-first. Returning false from fn
// stops descent into that node's children.
func (g *GameObject) Walk(fn func(*GameObject) bool) {
	if !fn(g) {
		return
	}
	for _, c := range g.Children {
		c.Walk(fn)
	}
}

// ActiveInHierarchy is false if g or any ancestor is inactive.
func (g *GameObject) ActiveInHierarchy() bool {
	for n := g; n != nil; n = n.Parent {
		if !n.Active {
			return false
		}
	}
	return true
}

func rotationMatrix(deg rl.Vector3) rl.Matrix {
	return rl.MatrixMultiply(
		rl.MatrixMultiply(rl.MatrixRotateX(deg.X*rl.Deg2rad), rl.MatrixRotateY(deg.Y*rl.Deg2rad)),
		rl.MatrixRotateZ(deg.Z*rl.Deg2rad),
	)
}

// WorldPosition applies every ancestor's scale, rotation and offset.
func (g *GameObject) WorldPosition() rl.Vector3 {
	p := g.Parent
	if p == nil {
		return g.Transform.Position
	}
	local := rl.Vector3Multiply(g.Transform.Position, p.WorldScale())
	return rl.Vector3Add(p.WorldPosition(), rl.Vector3Transform(local, rotationMatrix(p.WorldRotation())))
}

// WorldRotation sums Euler angles up the hierarchy.
func (g *GameObject) WorldRotation() rl.Vector3 {
	if g.Parent == nil {
		return g.Transform.Rotation
	}
	return rl.Vector3Add(g.Parent.WorldRotation(), g.Transform.Rotation)
}

func (g *GameObject) WorldScale() rl.Vector3 {
	if g.Parent == nil {
		return g.Transform.Scale
	}
	return rl.Vector3Multiply(g.Parent.WorldScale(), g.Transform.Scale)
}
