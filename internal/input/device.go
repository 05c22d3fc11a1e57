package input

import rl "github.com/gen2brain/raylib-go/raylib"

type Touch struct {
	ID  int32
	Pos rl.Vector2
}

// Device is the slice of raylib's input state the sampler reads. Window is
// the live implementation.
type Device interface {
	KeyDown(key int32) bool
	KeyPressed(key int32) bool
	MouseDown(b rl.MouseButton) bool
	MousePressed(b rl.MouseButton) bool
	MouseDelta() rl.Vector2
	MousePosition() rl.Vector2
	// GamepadAxis returns the axis value of the first gamepad, or false when
	// no gamepad is connected.
	GamepadAxis(axis int32) (float32, bool)
	Touches() []Touch
	ScreenSize() rl.Vector2
}

type Window struct{}

func (Window) KeyDown(key int32) bool             { return rl.IsKeyDown(key) }
func (Window) KeyPressed(key int32) bool          { return rl.IsKeyPressed(key) }
func (Window) MouseDown(b rl.MouseButton) bool    { return rl.IsMouseButtonDown(b) }
func (Window) MousePressed(b rl.MouseButton) bool { return rl.IsMouseButtonPressed(b) }
func (Window) MouseDelta() rl.Vector2             { return rl.GetMouseDelta() }
func (Window) MousePosition() rl.Vector2          { return rl.GetMousePosition() }

func (Window) GamepadAxis(axis int32) (float32, bool) {
	if !rl.IsGamepadAvailable(0) {
		return 0, false
	}
	return rl.GetGamepadAxisMovement(0, axis), true
}

func (Window) Touches() []Touch {
	n := rl.GetTouchPointCount()
	out := make([]Touch, 0, n)
	for i := int32(0); i < n; i++ {
		out = append(out, Touch{ID: rl.GetTouchPointId(i), Pos: rl.GetTouchPosition(i)})
	}
	return out
}

func (Window) ScreenSize() rl.Vector2 {
	return rl.Vector2{X: float32(rl.GetScreenWidth()), Y: float32(rl.GetScreenHeight())}
}
