package app

import "walksim/internal/engine"

// ArrivedAtWaypoint is published when a viewpoint transition to a waypoint
// completes.
type ArrivedAtWaypoint struct {
	Index int
}

// ItemCollected is published on every checklist change.
type ItemCollected struct {
	Slot      int
	Collected bool
	All       bool
}

type WalkModeChanged struct {
	Active bool
}

// ChaseStateChanged carries chase state names; ChaseActive is the running
// pursuit.
type ChaseStateChanged struct {
	From, To string
}

const ChaseActive = "active"

type FocusArrived struct {
	Name string
}

// PopupClosed resets the clicked state of the named focus object.
type PopupClosed struct {
	Name string
}

func Publish[T any](c *Context, ev T) {
	engine.Publish(c.Bus, ev)
}

func Subscribe[T any](c *Context, fn func(T)) {
	engine.Subscribe(c.Bus, fn)
}
