// Package hud is the 2D layer drawn over the scene: focus indicators, the
// chase countdown and checklist, the hidden-NPC effect, end-of-chase fades
// and achievement toasts.
package hud

import (
	"sort"

	rl "github.com/gen2brain/raylib-go/raylib"

	"walksim/internal/app"
	"walksim/internal/tween"
)

const (
	introSeconds = 6.0
	toastSeconds = 3.0
)

var toastText = map[string]string{
	app.AchievementReachedEnd: "Reached the end of the path",
	app.AchievementCaught:     "Caught",
	app.AchievementEscaped:    "Escaped",
}

type indicator struct {
	visible bool
	at      rl.Vector2
}

type toast struct {
	text  string
	until float64
}

// HUD holds what the overlay should show. Game systems set state through the
// app.Overlay methods; Draw renders it.
type HUD struct {
	clock tween.Clock

	ItemNames [3]string

	indicators map[string]indicator

	countdown      int
	countdownShown bool

	introUntil float64

	checklist      []bool
	checklistShown bool

	hidden      bool
	hiddenSince float64

	fade      app.FadeKind
	fadeAlpha float32

	toasts []toast
}

var _ app.Overlay = (*HUD)(nil)

func New(clock tween.Clock) *HUD {
	return &HUD{
		clock:      clock,
		ItemNames:  [3]string{"Key", "Tape", "Photograph"},
		indicators: make(map[string]indicator),
	}
}

func (h *HUD) SetIndicator(id string, visible bool, at rl.Vector2) {
	h.indicators[id] = indicator{visible: visible, at: at}
}

func (h *HUD) SetCountdown(n int, visible bool) {
	h.countdown, h.countdownShown = n, visible
}

func (h *HUD) ShowIntro() {
	h.introUntil = h.clock.Now() + introSeconds
}

func (h *HUD) SetChecklist(flags []bool, visible bool) {
	h.checklist = append(h.checklist[:0], flags...)
	h.checklistShown = visible
}

func (h *HUD) SetHiddenEffect(on bool) {
	if on && !h.hidden {
		h.hiddenSince = h.clock.Now()
	}
	h.hidden = on
}

func (h *HUD) SetFade(kind app.FadeKind, alpha float32) {
	h.fade, h.fadeAlpha = kind, max(0, min(1, alpha))
}

// Toast queues a short message in the corner.
func (h *HUD) Toast(text string) {
	h.toasts = append(h.toasts, toast{text: text, until: h.clock.Now() + toastSeconds})
}

// AchievementUnlocked shows the toast for an achievement id. It is meant to
// be attached to the achievement store's unlock event.
func (h *HUD) AchievementUnlocked(id string) {
	text, ok := toastText[id]
	if !ok {
		text = id
	}
	h.Toast("Achievement: " + text)
}

// VisibleIndicators returns the ids of indicators currently shown, sorted.
func (h *HUD) VisibleIndicators() []string {
	var ids []string
	for id, ind := range h.indicators {
		if ind.visible {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	return ids
}

func (h *HUD) IntroVisible() bool { return h.clock.Now() < h.introUntil }

// ActiveToasts drops expired toasts and returns the rest, oldest first.
func (h *HUD) ActiveToasts() []string {
	now := h.clock.Now()
	kept := h.toasts[:0]
	for _, t := range h.toasts {
		if now < t.until {
			kept = append(kept, t)
		}
	}
	h.toasts = kept
	out := make([]string, len(kept))
	for i, t := range kept {
		out[i] = t.text
	}
	return out
}
