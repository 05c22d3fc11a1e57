// Package items tracks the three collectibles of the chase area.
package items

import (
	"walksim/internal/app"
	"walksim/internal/diag"
)

const Slots = 3

// Checklist holds one flag per collectible. Every change is published as an
// app.ItemCollected event so listeners can evaluate the win condition.
type Checklist struct {
	ctx   *app.Context
	flags [Slots]bool
}

func NewChecklist(ctx *app.Context) *Checklist {
	return &Checklist{ctx: ctx}
}

func (c *Checklist) Set(slot int, collected bool) {
	if slot < 0 || slot >= Slots {
		diag.WarnOnce("items:slot", "Items", "slot %d out of range", slot)
		return
	}
	if c.flags[slot] == collected {
		return
	}
	c.flags[slot] = collected
	app.Publish(c.ctx, app.ItemCollected{Slot: slot, Collected: collected, All: c.All()})
}

func (c *Checklist) Get(slot int) bool {
	if slot < 0 || slot >= Slots {
		return false
	}
	return c.flags[slot]
}

func (c *Checklist) All() bool {
	for _, f := range c.flags {
		if !f {
			return false
		}
	}
	return true
}

func (c *Checklist) Flags() []bool {
	out := make([]bool, Slots)
	copy(out, c.flags[:])
	return out
}

// Clear resets every flag without publishing.
func (c *Checklist) Clear() {
	c.flags = [Slots]bool{}
}
