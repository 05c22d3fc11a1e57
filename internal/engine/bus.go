package engine

import "reflect"

// Bus routes typed events between systems that do not know about each other.
// Each payload type gets its own EventWithArg channel.
type Bus struct {
	channels map[reflect.Type]any
}

func NewBus() *Bus {
	return &Bus{channels: make(map[reflect.Type]any)}
}

func channel[T any](b *Bus) *EventWithArg[T] {
	key := reflect.TypeFor[T]()
	if ch, ok := b.channels[key]; ok {
		return ch.(*EventWithArg[T])
	}
	ch := &EventWithArg[T]{}
	b.channels[key] = ch
	return ch
}

// Subscribe registers fn for every published value of type T.
func Subscribe[T any](b *Bus, fn func(T)) {
	if b == nil {
		return
	}
	channel[T](b).AddListener(fn)
}

// Publish delivers ev synchronously to all subscribers of T.
func Publish[T any](b *Bus, ev T) {
	if b == nil {
		return
	}
	channel[T](b).Invoke(ev)
}

// Subscribers returns how many listeners are registered for T.
func Subscribers[T any](b *Bus) int {
	if b == nil {
		return 0
	}
	return channel[T](b).Len()
}
