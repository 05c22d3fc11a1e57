// Package config loads the tuning file. Every value has a default, so the
// game runs without the file; zero values in the file fall back to defaults.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	rl "github.com/gen2brain/raylib-go/raylib"
	"gopkg.in/yaml.v3"
)

// DefaultPath is relative to the process working directory.
const DefaultPath = "config/tuning.yaml"

// Vec3 is written as a three element list in YAML.
type Vec3 [3]float32

func (v Vec3) V() rl.Vector3 { return rl.Vector3{X: v[0], Y: v[1], Z: v[2]} }

func FromV(v rl.Vector3) Vec3 { return Vec3{v.X, v.Y, v.Z} }

func Vecs(vs []Vec3) []rl.Vector3 {
	out := make([]rl.Vector3, len(vs))
	for i, v := range vs {
		out[i] = v.V()
	}
	return out
}

type Tuning struct {
	Waypoints Waypoints      `yaml:"waypoints"`
	Orbs      OrbTuning      `yaml:"orbs"`
	Focus     FocusTuning    `yaml:"focus"`
	Interact  InteractTuning `yaml:"interact"`
	Chase     ChaseTuning    `yaml:"chase"`
	Teleport  TeleportTuning `yaml:"teleport"`
	Items     ItemsTuning    `yaml:"items"`
	Audio     AudioTuning    `yaml:"audio"`
	Quality   Quality        `yaml:"quality"`
	Start     StartTuning    `yaml:"start"`
}

type Waypoints struct {
	Base       []Vec3 `yaml:"base"`
	Additional []Vec3 `yaml:"additional"`
	// Excluded are positions reserved for interactive objects; waypoints
	// near them never get a marker.
	Excluded []Vec3 `yaml:"excluded"`
}

type OrbTuning struct {
	ExclusionRadius   float32 `yaml:"exclusion_radius"`
	Window            int     `yaml:"window"`
	TravelSeconds     float64 `yaml:"travel_seconds"`
	MarkerRadius      float32 `yaml:"marker_radius"`
	FlashlightNormal  float32 `yaml:"flashlight_normal"`
	FlashlightDim     float32 `yaml:"flashlight_dim"`
	ShowAllInFreeRoam *bool   `yaml:"show_all_in_free_roam"`
}

type FocusObject struct {
	Name     string  `yaml:"name"`
	Target   Vec3    `yaml:"target"`
	LookAt   *Vec3   `yaml:"look_at"`
	Duration float64 `yaml:"duration"`
	Callback string  `yaml:"callback"`
}

type FocusTuning struct {
	AllowList        []Vec3        `yaml:"allow_list"`
	IndicatorRadius  float32       `yaml:"indicator_radius"`
	Occlusion        bool          `yaml:"occlusion"`
	TransitIntensity float32       `yaml:"transit_intensity"`
	Objects          []FocusObject `yaml:"objects"`
}

type InteractObject struct {
	Name      string  `yaml:"name"`
	Offset    Vec3    `yaml:"offset"`
	Rotation  Vec3    `yaml:"rotation"`
	Duration  float64 `yaml:"duration"`
	Cooldown  float64 `yaml:"cooldown"`
	Spin      bool    `yaml:"spin"`
	SpinSpeed float32 `yaml:"spin_speed"`
	Sway      bool    `yaml:"sway"`
	ClickOnce bool    `yaml:"click_once"`
}

type InteractTuning struct {
	AllowedPositions []Vec3           `yaml:"allowed_positions"`
	AllowRadius      float32          `yaml:"allow_radius"`
	Objects          []InteractObject `yaml:"objects"`
}

type ChaseTuning struct {
	// Anchor defaults to the first additional waypoint.
	Anchor        *Vec3   `yaml:"anchor"`
	TriggerRadius float32 `yaml:"trigger_radius"`

	// Explicit bounds; when absent they come from the floor and walls.
	BoundsCenter *Vec3   `yaml:"bounds_center"`
	BoundsSize   *Vec3   `yaml:"bounds_size"`
	BoundsInset  float32 `yaml:"bounds_inset"`
	ExitEpsilon  float32 `yaml:"exit_epsilon"`

	Speed        float32   `yaml:"speed"`
	PlayerRadius float32   `yaml:"player_radius"`
	RayHeights   []float32 `yaml:"ray_heights"`
	RayAngles    int       `yaml:"ray_angles"`

	NPCSpeed      float32 `yaml:"npc_speed"`
	NPCRadius     float32 `yaml:"npc_radius"`
	DecisionHz    float64 `yaml:"decision_hz"`
	StopDistance  float32 `yaml:"stop_distance"`
	LoseDistance  float32 `yaml:"lose_distance"`
	ProbeDistance float32 `yaml:"probe_distance"`

	CountdownSeconds float64 `yaml:"countdown_seconds"`
	LoseFadeIn       float64 `yaml:"lose_fade_in"`
	LoseFadeOut      float64 `yaml:"lose_fade_out"`
	WinFadeIn        float64 `yaml:"win_fade_in"`
	WinFadeOut       float64 `yaml:"win_fade_out"`

	Recovery Vec3 `yaml:"recovery"`
	NPCSpawn Vec3 `yaml:"npc_spawn"`

	TableProxyHeight float32 `yaml:"table_proxy_height"`
}

type Spawn struct {
	Waypoint int  `yaml:"waypoint"`
	Position Vec3 `yaml:"position"`
}

type TeleportTuning struct {
	// LookChance is a pointer so an explicit 0 disables the look.
	LookChance  *float64 `yaml:"look_chance"`
	LookSeconds float64  `yaml:"look_seconds"`
	Spawns      []Spawn  `yaml:"spawns"`
}

type ItemsTuning struct {
	PickupRadius float32 `yaml:"pickup_radius"`
}

// AudioTuning shapes the drone heard when the NPC is near but out of sight.
// Sample, when set, is a WAV file used instead of the synthesized drone.
type AudioTuning struct {
	Disabled    bool    `yaml:"disabled"`
	Sample      string  `yaml:"sample"`
	Volume      float32 `yaml:"volume"`
	RefDistance float32 `yaml:"ref_distance"`
	MaxDistance float32 `yaml:"max_distance"`
}

type Quality struct {
	Mobile bool `yaml:"mobile"`
}

// StartTuning places the viewpoint at launch. An all-zero block means the
// default facing.
type StartTuning struct {
	Waypoint int     `yaml:"waypoint"`
	Yaw      float32 `yaml:"yaw"`
}

func boolPtr(b bool) *bool { return &b }

func f64Ptr(v float64) *float64 { return &v }

func Default() Tuning {
	return Tuning{
		Waypoints: Waypoints{
			Base: []Vec3{
				{0, 1.6, 8}, {0, 1.6, 5}, {0, 1.6, 2}, {2, 1.6, 0},
				{4, 1.6, -2}, {4, 1.6, -5}, {2, 1.6, -8}, {0, 1.6, -10},
			},
			Additional: []Vec3{
				{-6, 1.6, -10}, {-9, 1.6, -8}, {-11, 1.6, -12}, {-8, 1.6, -14},
			},
			Excluded: []Vec3{{4, 1.6, -5}},
		},
		Orbs: OrbTuning{
			ExclusionRadius:   0.5,
			Window:            2,
			TravelSeconds:     1.5,
			MarkerRadius:      0.15,
			FlashlightNormal:  1.0,
			FlashlightDim:     0.3,
			ShowAllInFreeRoam: boolPtr(true),
		},
		Focus: FocusTuning{
			AllowList:        []Vec3{{2, 1.6, 0}, {4, 1.6, -2}},
			IndicatorRadius:  0.5,
			Occlusion:        true,
			TransitIntensity: 0.2,
		},
		Interact: InteractTuning{
			AllowRadius: 0.5,
		},
		Chase: ChaseTuning{
			TriggerRadius:    0.5,
			BoundsInset:      0.3,
			ExitEpsilon:      0.05,
			Speed:            2.5,
			PlayerRadius:     0.35,
			RayHeights:       []float32{-1.4, -0.9, -0.4, 0},
			RayAngles:        8,
			NPCSpeed:         1.6,
			NPCRadius:        0.3,
			DecisionHz:       6,
			StopDistance:     1.0,
			LoseDistance:     1.6,
			ProbeDistance:    1.5,
			CountdownSeconds: 3,
			LoseFadeIn:       5.0,
			LoseFadeOut:      1.0,
			WinFadeIn:        3.0,
			WinFadeOut:       1.0,
			Recovery:         Vec3{-6, 1.6, -10},
			NPCSpawn:         Vec3{-11, 0.9, -14},
			TableProxyHeight: 6,
		},
		Teleport: TeleportTuning{
			LookChance:  f64Ptr(1.0 / 3.0),
			LookSeconds: 1.2,
		},
		Items: ItemsTuning{
			PickupRadius: 1.0,
		},
		Audio: AudioTuning{
			Volume:      0.6,
			RefDistance: 2,
			MaxDistance: 12,
		},
		Start: StartTuning{Yaw: -90},
	}
}

// Load reads the tuning file at path. A missing file yields Default() and no
// error; an unreadable or invalid file yields Default() and the error.
func Load(path string) (Tuning, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return Default(), fmt.Errorf("read tuning: %w", err)
	}
	return Parse(data)
}

// Parse decodes YAML tuning and fills unset fields from Default().
func Parse(data []byte) (Tuning, error) {
	var t Tuning
	if err := yaml.Unmarshal(data, &t); err != nil {
		return Default(), fmt.Errorf("parse tuning: %w", err)
	}
	t.fillDefaults(Default())
	if err := t.Validate(); err != nil {
		return t, err
	}
	return t, nil
}

// Save writes t as YAML, creating the directory if needed.
func Save(path string, t Tuning) error {
	data, err := yaml.Marshal(t)
	if err != nil {
		return fmt.Errorf("encode tuning: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write tuning: %w", err)
	}
	return nil
}

// Validate reports settings the game cannot run with.
func (t Tuning) Validate() error {
	var errs []error
	if len(t.Waypoints.Base) == 0 {
		errs = append(errs, errors.New("waypoints.base is empty"))
	}
	if t.Chase.StopDistance > t.Chase.LoseDistance {
		errs = append(errs, fmt.Errorf("chase.stop_distance %v exceeds lose_distance %v", t.Chase.StopDistance, t.Chase.LoseDistance))
	}
	if lc := t.Teleport.LookChance; lc != nil && (*lc < 0 || *lc > 1) {
		errs = append(errs, fmt.Errorf("teleport.look_chance %v outside [0,1]", *lc))
	}
	n := len(t.Waypoints.Base) + len(t.Waypoints.Additional)
	if t.Start.Waypoint < 0 || (n > 0 && t.Start.Waypoint >= n) {
		errs = append(errs, fmt.Errorf("start.waypoint %d out of range", t.Start.Waypoint))
	}
	return errors.Join(errs...)
}

func setF32(dst *float32, def float32) {
	if *dst == 0 {
		*dst = def
	}
}

func setF64(dst *float64, def float64) {
	if *dst == 0 {
		*dst = def
	}
}

func (t *Tuning) fillDefaults(d Tuning) {
	if len(t.Waypoints.Base) == 0 {
		t.Waypoints = d.Waypoints
	}

	o := &t.Orbs
	setF32(&o.ExclusionRadius, d.Orbs.ExclusionRadius)
	if o.Window == 0 {
		o.Window = d.Orbs.Window
	}
	setF64(&o.TravelSeconds, d.Orbs.TravelSeconds)
	setF32(&o.MarkerRadius, d.Orbs.MarkerRadius)
	setF32(&o.FlashlightNormal, d.Orbs.FlashlightNormal)
	setF32(&o.FlashlightDim, d.Orbs.FlashlightDim)
	if o.ShowAllInFreeRoam == nil {
		o.ShowAllInFreeRoam = d.Orbs.ShowAllInFreeRoam
	}

	f := &t.Focus
	setF32(&f.IndicatorRadius, d.Focus.IndicatorRadius)
	setF32(&f.TransitIntensity, d.Focus.TransitIntensity)
	for i := range f.Objects {
		setF64(&f.Objects[i].Duration, 1.5)
	}

	in := &t.Interact
	setF32(&in.AllowRadius, d.Interact.AllowRadius)
	for i := range in.Objects {
		setF64(&in.Objects[i].Duration, 1.0)
		setF32(&in.Objects[i].SpinSpeed, 45)
	}

	c := &t.Chase
	dc := d.Chase
	setF32(&c.TriggerRadius, dc.TriggerRadius)
	setF32(&c.BoundsInset, dc.BoundsInset)
	setF32(&c.ExitEpsilon, dc.ExitEpsilon)
	setF32(&c.Speed, dc.Speed)
	setF32(&c.PlayerRadius, dc.PlayerRadius)
	if len(c.RayHeights) == 0 {
		c.RayHeights = dc.RayHeights
	}
	if c.RayAngles == 0 {
		c.RayAngles = dc.RayAngles
	}
	setF32(&c.NPCSpeed, dc.NPCSpeed)
	setF32(&c.NPCRadius, dc.NPCRadius)
	setF64(&c.DecisionHz, dc.DecisionHz)
	setF32(&c.StopDistance, dc.StopDistance)
	setF32(&c.LoseDistance, dc.LoseDistance)
	setF32(&c.ProbeDistance, dc.ProbeDistance)
	setF64(&c.CountdownSeconds, dc.CountdownSeconds)
	setF64(&c.LoseFadeIn, dc.LoseFadeIn)
	setF64(&c.LoseFadeOut, dc.LoseFadeOut)
	setF64(&c.WinFadeIn, dc.WinFadeIn)
	setF64(&c.WinFadeOut, dc.WinFadeOut)
	setF32(&c.TableProxyHeight, dc.TableProxyHeight)
	if c.Recovery == (Vec3{}) {
		c.Recovery = dc.Recovery
	}
	if c.NPCSpawn == (Vec3{}) {
		c.NPCSpawn = dc.NPCSpawn
	}

	if t.Teleport.LookChance == nil {
		t.Teleport.LookChance = d.Teleport.LookChance
	}
	setF64(&t.Teleport.LookSeconds, d.Teleport.LookSeconds)
	setF32(&t.Items.PickupRadius, d.Items.PickupRadius)
	setF32(&t.Audio.Volume, d.Audio.Volume)
	setF32(&t.Audio.RefDistance, d.Audio.RefDistance)
	setF32(&t.Audio.MaxDistance, d.Audio.MaxDistance)
	if t.Start == (StartTuning{}) {
		t.Start = d.Start
	}
}
