package chase

import "walksim/internal/app"

// State is the chase state machine. Walk-mode is tracked separately: the
// chase only leaves Dormant while walk-mode is on, but cinematics finish even
// if walk-mode ends underneath them.
type State int

const (
	Dormant State = iota
	Countdown
	Active
	Lost
	Won
)

func (s State) String() string {
	switch s {
	case Dormant:
		return "dormant"
	case Countdown:
		return "countdown"
	case Active:
		return app.ChaseActive
	case Lost:
		return "lost"
	case Won:
		return "won"
	}
	return "unknown"
}

// Cinematic reports whether s is one of the timed end sequences.
func (s State) Cinematic() bool {
	return s == Lost || s == Won
}
