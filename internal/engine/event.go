package engine

// EventWithArg is a multicast callback list. Listeners run synchronously in
// registration order.
type EventWithArg[T any] struct {
	listeners []func(T)
}

func (e *EventWithArg[T]) AddListener(callback func(T)) {
	if callback != nil {
		e.listeners = append(e.listeners, callback)
	}
}

func (e *EventWithArg[T]) RemoveAllListeners() {
	e.listeners = nil
}

// Invoke calls the listeners registered at the time of the call. Listeners
// added during dispatch run from the next Invoke on.
func (e *EventWithArg[T]) Invoke(arg T) {
	for _, listener := range e.listeners {
		listener(arg)
	}
}

func (e *EventWithArg[T]) Len() int {
	return len(e.listeners)
}
