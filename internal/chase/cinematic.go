package chase

import (
	"walksim/internal/app"
	"walksim/internal/diag"
)

// cinematic is a fade in, hold-at-full, fade out sequence. Its phases are
// deadlines compared against the clock each frame.
type cinematic struct {
	kind     app.FadeKind
	start    float64
	full     float64
	end      float64
	atFull   func()
	cleanup  func()
	fullDone bool
}

func (c *Controller) startCinematic(kind app.FadeKind, in, out float64, atFull, cleanup func()) {
	now := c.ctx.Now()
	c.cin = &cinematic{
		kind:    kind,
		start:   now,
		full:    now + in,
		end:     now + in + out,
		atFull:  atFull,
		cleanup: cleanup,
	}
	c.ctx.Overlay.SetFade(kind, 0)
}

func (c *Controller) advanceCinematic(now float64) {
	cin := c.cin
	if cin == nil {
		return
	}
	alpha := float32(1)
	switch {
	case now < cin.full:
		alpha = float32((now - cin.start) / (cin.full - cin.start))
	case now < cin.end:
		alpha = 1 - float32((now-cin.full)/(cin.end-cin.full))
	}
	if now >= cin.full && !cin.fullDone {
		cin.fullDone = true
		diag.Guard("Chase cinematic", cin.atFull)
	}
	if now < cin.end {
		c.ctx.Overlay.SetFade(cin.kind, alpha)
		return
	}

	c.cin = nil
	c.ctx.Overlay.SetFade(app.FadeNone, 0)
	diag.Guard("Chase cinematic", cin.cleanup)
	c.cinematicDone = true
	c.setState(Dormant)
}

// CinematicRunning reports whether a win or lose sequence is in progress.
func (c *Controller) CinematicRunning() bool { return c.cin != nil }
