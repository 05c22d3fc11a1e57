package hud

import (
	"fmt"
	"math/rand/v2"

	"github.com/chewxy/math32"
	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"walksim/internal/app"
)

// Renderer draws a HUD. It needs an open window.
type Renderer struct {
	hud   *HUD
	noise *rand.Rand
	// Stick, when set, reports the virtual stick to draw.
	Stick func() (center, pos rl.Vector2, ok bool)
	// StickRadius is the drawn stick ring radius in pixels.
	StickRadius float32
}

func NewRenderer(h *HUD) *Renderer {
	initStyle()
	return &Renderer{hud: h, noise: rand.New(rand.NewPCG(7, 11)), StickRadius: 70}
}

func (r *Renderer) Draw() {
	h := r.hud
	w := float32(rl.GetScreenWidth())
	ht := float32(rl.GetScreenHeight())
	now := h.clock.Now()

	if h.hidden {
		r.drawHidden(w, ht, now-h.hiddenSince)
	}
	for _, id := range h.VisibleIndicators() {
		drawIndicator(h.indicators[id].at, now)
	}
	if h.countdownShown && h.countdown > 0 {
		text := fmt.Sprint(h.countdown)
		size := int32(ht / 4)
		tw := rl.MeasureText(text, size)
		rl.DrawText(text, int32(w/2)-tw/2, int32(ht/2)-size/2, size, colorIndicator)
	}
	if h.IntroVisible() {
		r.drawIntro(w, ht, float32(h.introUntil-now))
	}
	if h.checklistShown {
		r.drawChecklist()
	}
	if c, p, ok := r.stick(); ok {
		rl.DrawCircleLinesV(c, r.StickRadius, rl.Fade(colorIndicator, 0.5))
		rl.DrawCircleV(p, r.StickRadius*0.4, rl.Fade(colorIndicator, 0.35))
	}
	r.drawToasts(w)
	if h.fade != app.FadeNone && h.fadeAlpha > 0 {
		drawFade(h.fade, h.fadeAlpha, w, ht)
	}
}

func (r *Renderer) stick() (rl.Vector2, rl.Vector2, bool) {
	if r.Stick == nil {
		return rl.Vector2{}, rl.Vector2{}, false
	}
	return r.Stick()
}

func drawIndicator(at rl.Vector2, now float64) {
	pulse := 0.5 + 0.5*math32.Sin(float32(now)*4)
	rl.DrawCircleV(at, 6, colorIndicator)
	rl.DrawCircleLinesV(at, 12+4*pulse, rl.Fade(colorIndicator, 0.4+0.4*pulse))
}

func (r *Renderer) drawChecklist() {
	h := r.hud
	bounds := rl.Rectangle{X: 16, Y: 16, Width: 220, Height: 36 + 28*float32(len(h.ItemNames))}
	gui.Panel(bounds, "Find")
	gui.Disable()
	for i, name := range h.ItemNames {
		got := i < len(h.checklist) && h.checklist[i]
		gui.CheckBox(rl.Rectangle{X: 28, Y: 48 + 28*float32(i), Width: 18, Height: 18}, name, got)
	}
	gui.Enable()
}

func (r *Renderer) drawIntro(w, ht, remaining float32) {
	alpha := min(1, remaining)
	bounds := rl.Rectangle{X: w/2 - 220, Y: ht - 150, Width: 440, Height: 80}
	rl.DrawRectangleRec(bounds, rl.Fade(colorPanel, alpha))
	gui.Label(rl.Rectangle{X: bounds.X + 16, Y: bounds.Y + 10, Width: bounds.Width - 32, Height: 28},
		"Something is following you.")
	gui.Label(rl.Rectangle{X: bounds.X + 16, Y: bounds.Y + 40, Width: bounds.Width - 32, Height: 28},
		"Find the three items. Don't let it reach you.")
}

func (r *Renderer) drawToasts(w float32) {
	for i, text := range r.hud.ActiveToasts() {
		tw := float32(rl.MeasureText(text, 18))
		box := rl.Rectangle{X: w - tw - 40, Y: 16 + 44*float32(i), Width: tw + 24, Height: 36}
		rl.DrawRectangleRec(box, colorPanel)
		rl.DrawRectangleLinesEx(box, 1, colorAccent)
		rl.DrawText(text, int32(box.X+12), int32(box.Y+9), 18, colorText)
	}
}

// drawHidden desaturates the frame, adds grain and closes in a vignette. The
// effect grows over the first second after the NPC drops out of sight.
func (r *Renderer) drawHidden(w, ht float32, since float64) {
	k := min(1, float32(since))
	rl.DrawRectangle(0, 0, int32(w), int32(ht), rl.Fade(rl.Gray, 0.25*k))

	grain := int(w * ht / 900 * k)
	for i := 0; i < grain; i++ {
		x := r.noise.Float32() * w
		y := r.noise.Float32() * ht
		v := uint8(r.noise.IntN(256))
		rl.DrawPixelV(rl.Vector2{X: x, Y: y}, rl.NewColor(v, v, v, uint8(60*k)))
	}

	edge := int32(min(w, ht) * 0.25)
	dark := rl.Fade(rl.Black, 0.8*k)
	none := rl.Fade(rl.Black, 0)
	rl.DrawRectangleGradientV(0, 0, int32(w), edge, dark, none)
	rl.DrawRectangleGradientV(0, int32(ht)-edge, int32(w), edge, none, dark)
	rl.DrawRectangleGradientH(0, 0, edge, int32(ht), dark, none)
	rl.DrawRectangleGradientH(int32(w)-edge, 0, edge, int32(ht), none, dark)
}

func drawFade(kind app.FadeKind, alpha, w, ht float32) {
	base, fg, text := rl.Black, rl.Maroon, "CAUGHT"
	if kind == app.FadeWin {
		base, fg, text = rl.RayWhite, rl.DarkGray, "ESCAPED"
	}
	rl.DrawRectangle(0, 0, int32(w), int32(ht), rl.Fade(base, alpha))
	if alpha > 0.6 {
		size := int32(ht / 8)
		tw := rl.MeasureText(text, size)
		rl.DrawText(text, int32(w/2)-tw/2, int32(ht/2)-size/2, size, rl.Fade(fg, (alpha-0.6)/0.4))
	}
}
