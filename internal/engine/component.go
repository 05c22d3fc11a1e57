package engine

// Component is behavior attached to a GameObject. Start runs once before the
// first Update. Update runs every frame while the object is active in the
// hierarchy and the component is enabled.
type Component interface {
	Start()
	Update(deltaTime float32)
	SetGameObject(g *GameObject)
	GetGameObject() *GameObject
}

// Toggler is implemented by components that can be switched off in place.
// A disabled collider blocks no rays and a disabled renderer draws nothing.
type Toggler interface {
	Enabled() bool
	SetEnabled(on bool)
}

// BaseComponent is embedded by concrete components.
type BaseComponent struct {
	gameObject *GameObject
	disabled   bool
}

func (b *BaseComponent) Start() {}

func (b *BaseComponent) Update(deltaTime float32) {}

func (b *BaseComponent) SetGameObject(g *GameObject) { b.gameObject = g }

func (b *BaseComponent) GetGameObject() *GameObject { return b.gameObject }

func (b *BaseComponent) Enabled() bool { return !b.disabled }

func (b *BaseComponent) SetEnabled(on bool) { b.disabled = !on }

// IsEnabled reports whether c is switched on. Components without a switch
// are always on.
func IsEnabled(c Component) bool {
	if t, ok := c.(Toggler); ok {
		return t.Enabled()
	}
	return true
}
