package world

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	rl "github.com/gen2brain/raylib-go/raylib"

	"walksim/internal/components"
	"walksim/internal/diag"
	"walksim/internal/engine"
	"walksim/internal/registry"
)

// --- JSON types ---

type SceneFile struct {
	Name    string            `json:"name"`
	Roles   registry.Manifest `json:"roles"`
	Objects []ObjectDef       `json:"objects"`
}

type ObjectDef struct {
	Name       string            `json:"name"`
	Tags       []string          `json:"tags,omitempty"`
	Active     *bool             `json:"active,omitempty"`
	Position   [3]float32        `json:"position"`
	Rotation   [3]float32        `json:"rotation"`
	Scale      [3]float32        `json:"scale"`
	Components []json.RawMessage `json:"components"`
	Children   []ObjectDef       `json:"children,omitempty"`
}

type componentHeader struct {
	Type    string `json:"type"`
	Enabled *bool  `json:"enabled,omitempty"`
}

// boxDef covers Box (collider and renderer together), BoxCollider and
// BoxRenderer.
type boxDef struct {
	Size   [3]float32 `json:"size"`
	Offset [3]float32 `json:"offset,omitempty"`
	Color  string     `json:"color,omitempty"`
	Wires  bool       `json:"wires,omitempty"`
}

type sphereDef struct {
	Radius float32 `json:"radius"`
	Color  string  `json:"color,omitempty"`
}

type collectibleDef struct {
	Slot   int     `json:"slot"`
	Radius float32 `json:"radius,omitempty"`
}

type scriptDef struct {
	Name  string         `json:"name"`
	Props map[string]any `json:"props,omitempty"`
}

// --- Color mapping ---

var colorByName = map[string]rl.Color{
	"Red":       rl.Red,
	"Blue":      rl.Blue,
	"Green":     rl.Green,
	"Purple":    rl.Purple,
	"Orange":    rl.Orange,
	"Yellow":    rl.Yellow,
	"White":     rl.White,
	"LightGray": rl.LightGray,
	"Gray":      rl.Gray,
	"DarkGray":  rl.DarkGray,
	"Black":     rl.Black,
	"Brown":     rl.Brown,
	"DarkBrown": rl.DarkBrown,
	"Beige":     rl.Beige,
	"Maroon":    rl.Maroon,
	"Gold":      rl.Gold,
}

// lookupColor accepts a raylib color name or #rrggbb / #rrggbbaa.
func lookupColor(name string) rl.Color {
	if c, ok := colorByName[name]; ok {
		return c
	}
	if hex, ok := strings.CutPrefix(name, "#"); ok && (len(hex) == 6 || len(hex) == 8) {
		if len(hex) == 6 {
			hex += "ff"
		}
		if v, err := strconv.ParseUint(hex, 16, 32); err == nil {
			return rl.NewColor(uint8(v>>24), uint8(v>>16), uint8(v>>8), uint8(v))
		}
	}
	return rl.LightGray
}

func vec(a [3]float32) rl.Vector3 { return rl.Vector3{X: a[0], Y: a[1], Z: a[2]} }

// --- Loading ---

// Load reads a scene file into a new scene. Objects and their children are
// all registered with the scene.
func Load(path string) (*engine.Scene, registry.Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("read scene: %w", err)
	}
	return Parse(data)
}

func Parse(data []byte) (*engine.Scene, registry.Manifest, error) {
	var sf SceneFile
	if err := json.Unmarshal(data, &sf); err != nil {
		return nil, nil, fmt.Errorf("parse scene: %w", err)
	}
	name := sf.Name
	if name == "" {
		name = "Main"
	}
	scene := engine.NewScene(name)
	for _, def := range sf.Objects {
		build(scene, nil, def)
	}
	if sf.Roles == nil {
		sf.Roles = registry.Manifest{}
	}
	return scene, sf.Roles, nil
}

func build(scene *engine.Scene, parent *engine.GameObject, def ObjectDef) {
	g := engine.NewGameObject(def.Name)
	g.Tags = def.Tags
	if def.Active != nil {
		g.Active = *def.Active
	}
	g.Transform.Position = vec(def.Position)
	g.Transform.Rotation = vec(def.Rotation)
	if def.Scale != [3]float32{} {
		g.Transform.Scale = vec(def.Scale)
	}

	for _, raw := range def.Components {
		var header componentHeader
		if err := json.Unmarshal(raw, &header); err != nil {
			diag.Warnf("Scene", "%s: bad component: %v", def.Name, err)
			continue
		}
		before := len(g.Components())
		if err := addComponent(g, header.Type, raw); err != nil {
			diag.Warnf("Scene", "%s: %s: %v", def.Name, header.Type, err)
			continue
		}
		if header.Enabled != nil && !*header.Enabled {
			for _, c := range g.Components()[before:] {
				if t, ok := c.(engine.Toggler); ok {
					t.SetEnabled(false)
				}
			}
		}
	}

	if parent != nil {
		parent.AddChild(g)
	}
	scene.AddGameObject(g)
	for _, child := range def.Children {
		build(scene, g, child)
	}
}

func addComponent(g *engine.GameObject, typ string, raw json.RawMessage) error {
	switch typ {
	case "Box", "BoxCollider", "BoxRenderer":
		var def boxDef
		if err := json.Unmarshal(raw, &def); err != nil {
			return err
		}
		size := vec(def.Size)
		if typ != "BoxRenderer" {
			col := components.NewBoxCollider(size)
			col.Offset = vec(def.Offset)
			g.AddComponent(col)
		}
		if typ != "BoxCollider" {
			r := components.NewBoxRenderer(size, lookupColor(def.Color))
			r.Wires = def.Wires
			g.AddComponent(r)
		}
	case "Sphere", "SphereCollider", "SphereRenderer":
		var def sphereDef
		if err := json.Unmarshal(raw, &def); err != nil {
			return err
		}
		if typ != "SphereRenderer" {
			g.AddComponent(components.NewSphereCollider(def.Radius))
		}
		if typ != "SphereCollider" {
			g.AddComponent(&components.SphereRenderer{Radius: def.Radius, Color: lookupColor(def.Color)})
		}
	case "Collectible":
		var def collectibleDef
		if err := json.Unmarshal(raw, &def); err != nil {
			return err
		}
		c := components.NewCollectible(def.Slot)
		if def.Radius > 0 {
			c.Radius = def.Radius
		}
		g.AddComponent(c)
	case "Script":
		var def scriptDef
		if err := json.Unmarshal(raw, &def); err != nil {
			return err
		}
		comp := engine.CreateScript(def.Name, def.Props)
		if comp == nil {
			return fmt.Errorf("unknown script %q (registered: %s)", def.Name, strings.Join(engine.Scripts(), ", "))
		}
		g.AddComponent(comp)
	default:
		return fmt.Errorf("unknown component type")
	}
	return nil
}
