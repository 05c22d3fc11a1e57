package components

import "walksim/internal/engine"

// Collectible marks a pickup that sets one checklist slot.
type Collectible struct {
	engine.BaseComponent
	Slot   int
	Radius float32
}

func NewCollectible(slot int) *Collectible {
	return &Collectible{Slot: slot, Radius: 1}
}

// Available reports whether the item can currently be picked up.
func (c *Collectible) Available() bool {
	g := c.GetGameObject()
	return g != nil && g.ActiveInHierarchy()
}
