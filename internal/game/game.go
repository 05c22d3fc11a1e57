package game

import (
	"fmt"
	"log"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"walksim/internal/achievements"
	"walksim/internal/app"
	"walksim/internal/audio"
	"walksim/internal/camera"
	"walksim/internal/chase"
	"walksim/internal/config"
	"walksim/internal/focus"
	"walksim/internal/hud"
	"walksim/internal/input"
	"walksim/internal/interact"
	"walksim/internal/items"
	"walksim/internal/orbs"
	"walksim/internal/teleport"
	"walksim/internal/tween"
	"walksim/internal/world"
)

type Game struct {
	World *world.World
	Ctx   *app.Context
	HUD   *hud.HUD
	Input *input.Sampler

	Orbs     *orbs.Navigator
	Focus    *focus.Manager
	Interact *interact.Manager
	Items    *items.Manager
	Chase    *chase.Controller
	Teleport *teleport.Choreographer

	// Screen is the framebuffer size used for picking and projection.
	Screen    rl.Vector2
	DebugMode bool

	hudRenderer *hud.Renderer
	lastFocus   string

	// Debug timing (ms)
	updateMs float64
	drawMs   float64
}

// New wires every gameplay system around w. It opens no window, so a game
// built with a manual clock can be ticked headless.
func New(w *world.World, tuning config.Tuning, store *achievements.Store, clock tween.Clock, seed uint64) *Game {
	w.Start()

	view := camera.New(rl.Vector3{})
	path := orbs.Path{
		Base:       config.Vecs(tuning.Waypoints.Base),
		Additional: config.Vecs(tuning.Waypoints.Additional),
	}
	if p, ok := path.At(tuning.Start.Waypoint); ok {
		view.Position = p
	}
	view.Yaw = tuning.Start.Yaw

	ctx := app.NewContext(w.Scene, view, w.Roles, tuning, clock, seed)
	g := &Game{
		World:  w,
		Ctx:    ctx,
		HUD:    hud.New(clock),
		Input:  input.NewSampler(input.Window{}),
		Screen: rl.Vector2{X: 1280, Y: 720},
	}
	ctx.Overlay = g.HUD
	ctx.Projector = Projector{View: view, Screen: &g.Screen}
	ctx.Light = w.Light
	w.Light.SetFlashlightIntensity(tuning.Orbs.FlashlightNormal)
	if store != nil {
		ctx.Achievements = store
		store.OnUnlock.AddListener(g.HUD.AchievementUnlocked)
	}

	list := items.NewChecklist(ctx)
	g.Items = items.NewManager(ctx, list, tuning.Items.PickupRadius)
	g.Orbs = orbs.New(ctx, path, config.Vecs(tuning.Waypoints.Excluded), orbs.ConfigFrom(tuning.Orbs, tuning.Quality))
	g.Focus = focus.New(ctx, focus.BindingsFrom(tuning.Focus.Objects), config.Vecs(tuning.Focus.AllowList), focus.ConfigFrom(tuning.Focus))
	g.Focus.RegisterCallback("video", func(b *focus.Binding) {
		g.HUD.Toast("Now playing: " + b.Name)
	})
	// descend drops the viewpoint on the silent anchor of the free-roam area.
	g.Focus.RegisterCallback("descend", func(*focus.Binding) {
		if r := path.Reserved(); r >= 0 {
			g.Orbs.JumpTo(r)
		}
	})
	g.Interact = interact.New(ctx, interact.BindingsFrom(tuning.Interact.Objects), config.Vecs(tuning.Interact.AllowedPositions), tuning.Interact.AllowRadius)
	g.Chase = chase.New(ctx, chase.ConfigFrom(tuning.Chase, tuning.Waypoints), g.Items)
	g.Teleport = teleport.New(ctx, teleport.ConfigFrom(tuning.Teleport))

	app.Subscribe(ctx, func(ev app.FocusArrived) { g.lastFocus = ev.Name })

	g.Orbs.Update()
	return g
}

func (g *Game) Run() {
	rl.SetConfigFlags(rl.FlagWindowHighdpi | rl.FlagWindowResizable | rl.FlagMsaa4xHint)
	rl.InitWindow(1280, 720, "walksim")
	defer rl.CloseWindow()

	rl.SetTargetFPS(120)
	// Escape is the back key.
	rl.SetExitKey(rl.KeyNull)

	presence, err := audio.Open(g.Ctx.Tuning.Audio)
	if err != nil {
		log.Printf("Audio: %v, presence cue disabled", err)
	}
	g.Ctx.Presence = presence
	defer presence.Close()

	g.hudRenderer = hud.NewRenderer(g.HUD)
	g.hudRenderer.Stick = g.Input.StickActive
	g.hudRenderer.StickRadius = g.Input.StickRadius

	for !rl.WindowShouldClose() {
		g.Screen = rl.Vector2{X: float32(rl.GetScreenWidth()), Y: float32(rl.GetScreenHeight())}
		g.Update()
		g.Draw()
	}
}

func (g *Game) Update() {
	updateStart := time.Now()
	deltaTime := rl.GetFrameTime()

	g.Tick(g.Input.Sample(deltaTime), deltaTime)

	g.updateMs = float64(time.Since(updateStart).Microseconds()) / 1000.0
}

// Tick advances one frame: tweens, pointer routing, look, item pickup, chase,
// then the per-frame presentation updates.
func (g *Game) Tick(f input.Frame, dt float32) {
	ctx := g.Ctx
	ctx.Tweens.Advance()

	if f.Debug {
		g.DebugMode = !g.DebugMode
	}
	if f.Back {
		g.back()
	}
	if f.Pointer.Pressed && !g.Chase.Walking() {
		g.route(ScreenRay(ctx.View, f.Pointer.Pos, g.Screen))
	}
	if f.Look.Yaw != 0 || f.Look.Pitch != 0 {
		ctx.View.ApplyLook(f.Look.Yaw, f.Look.Pitch)
	}

	g.Items.Update()
	g.Chase.Update(f.Move.Forward, f.Move.Strafe, dt)

	g.Focus.Update()
	g.Orbs.Sync()
	g.World.Follow(ctx.View.Position)
	g.World.Update(dt)
}

// route hands a click to the first system that claims it: orb markers, then
// focus objects, then generic interactive objects.
func (g *Game) route(ray rl.Ray) {
	if g.Orbs.Pick(ray) {
		return
	}
	if g.Focus.PointerDown(ray) {
		return
	}
	g.Interact.PointerDown(ray)
}

// back leaves the current focus view and closes its popup.
func (g *Game) back() {
	if g.Chase.Walking() {
		return
	}
	if !g.Focus.Return(g.Ctx.Tuning.Orbs.TravelSeconds) {
		return
	}
	if g.lastFocus != "" {
		app.Publish(g.Ctx, app.PopupClosed{Name: g.lastFocus})
		g.lastFocus = ""
	}
}

func (g *Game) Draw() {
	camera := g.Ctx.View.Camera3D()

	rl.BeginDrawing()
	rl.ClearBackground(rl.NewColor(6, 6, 10, 255))

	drawStart := time.Now()
	rl.BeginMode3D(camera)
	g.World.Draw(camera, g.Screen.X/g.Screen.Y)
	rl.EndMode3D()
	g.drawMs = float64(time.Since(drawStart).Microseconds()) / 1000.0

	g.hudRenderer.Draw()
	g.DrawUI()
	rl.EndDrawing()
}

func (g *Game) DrawUI() {
	if !g.DebugMode {
		return
	}
	rl.DrawFPS(10, 10)
	r := g.World.Renderer
	pos := g.Ctx.View.Position
	lines := []string{
		fmt.Sprintf("Pos: (%.2f, %.2f, %.2f) yaw %.1f pitch %.1f", pos.X, pos.Y, pos.Z, g.Ctx.View.Yaw, g.Ctx.View.Pitch),
		fmt.Sprintf("Waypoint: %d  markers %d", g.Orbs.ClosestIndex(), len(g.Orbs.Markers())),
		fmt.Sprintf("Chase: %s  walking %v  hidden %v", g.Chase.State(), g.Chase.Walking(), g.Chase.Hidden()),
		fmt.Sprintf("Items: %v  looks %d", g.Items.Flags(), g.Teleport.Looks()),
		fmt.Sprintf("Drawn %d  culled %d", r.Drawn, r.Culled),
		fmt.Sprintf("Update:  %.2f ms", g.updateMs),
		fmt.Sprintf("Draw:    %.2f ms", g.drawMs),
	}
	for i, line := range lines {
		rl.DrawText(line, 10, int32(35+i*20), 16, rl.Green)
	}
}
