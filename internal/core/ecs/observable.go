package ecs

// Observable is a synchronous publish/subscribe channel. Observers are
// notified in subscription order.
type Observable[T any] struct {
	observers []subscriber[T]
	nextID    uint64
}

type subscriber[T any] struct {
	id uint64
	fn func(T)
}

// Subscribe registers fn and returns a function that unregisters it.
// Unsubscribing twice is harmless.
func (o *Observable[T]) Subscribe(fn func(T)) (unsubscribe func()) {
	o.nextID++
	id := o.nextID
	o.observers = append(o.observers, subscriber[T]{id: id, fn: fn})
	return func() {
		for i, obs := range o.observers {
			if obs.id == id {
				// copy-on-write so an in-flight NotifyAll keeps its snapshot
				next := make([]subscriber[T], 0, len(o.observers)-1)
				next = append(next, o.observers[:i]...)
				o.observers = append(next, o.observers[i+1:]...)
				return
			}
		}
	}
}

// NotifyAll calls every observer with v.
func (o *Observable[T]) NotifyAll(v T) {
	for _, obs := range o.observers {
		obs.fn(v)
	}
}

// Len returns the number of observers.
func (o *Observable[T]) Len() int {
	return len(o.observers)
}

// Clear drops every observer.
func (o *Observable[T]) Clear() {
	o.observers = nil
}
