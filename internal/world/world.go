// Package world loads a scene file into a scene graph with its role registry
// and draws it.
package world

import (
	"log"

	rl "github.com/gen2brain/raylib-go/raylib"

	"walksim/internal/components"
	"walksim/internal/engine"
	"walksim/internal/registry"
)

type World struct {
	Scene    *engine.Scene
	Manifest registry.Manifest
	Roles    *registry.Registry
	Renderer *Renderer

	// Holder carries the flashlight. It follows the viewpoint and is not
	// part of the scene graph, so lookups and raycasts never see it.
	Holder *engine.GameObject
	Light  *components.Flashlight
}

func New(scene *engine.Scene, manifest registry.Manifest) *World {
	holder := engine.NewGameObject("Flashlight")
	light := components.NewFlashlight()
	holder.AddComponent(light)
	return &World{
		Scene:    scene,
		Manifest: manifest,
		Roles:    registry.New(scene, manifest),
		Renderer: NewRenderer(light),
		Holder:   holder,
		Light:    light,
	}
}

// LoadFile reads a scene file and builds its World.
func LoadFile(path string) (*World, error) {
	scene, manifest, err := Load(path)
	if err != nil {
		return nil, err
	}
	w := New(scene, manifest)
	log.Printf("Scene: loaded %s (%d objects, %d roles)", path, len(scene.GameObjects), len(manifest))
	return w, nil
}

func (w *World) Start() {
	w.Scene.Start()
	w.Roles.Rescan()
}

// Follow moves the flashlight to the viewpoint.
func (w *World) Follow(pos rl.Vector3) {
	w.Holder.Transform.Position = pos
}

func (w *World) Update(dt float32) {
	w.Scene.Update(dt)
}

// Draw renders the scene from camera. Call between BeginMode3D and EndMode3D.
func (w *World) Draw(camera rl.Camera3D, aspect float32) {
	w.Renderer.Begin(camera, aspect)
	w.Renderer.DrawScene(w.Scene)
}
