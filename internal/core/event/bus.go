package event

import (
	"reflect"
	"sync"
)

// Bus delivers events to typed handlers. Publish delivers immediately;
// Emit queues into a back buffer that becomes readable after SwapBuffers, so
// events emitted in frame N are dispatched in frame N+1.
//
// Handlers for one type run in subscription order. Both delivery paths stop
// handing an event to further handlers once it stops bubbling.
type Bus struct {
	mu       sync.Mutex // only protects handler registration
	handlers map[reflect.Type][]handler
	nextID   uint64
	front    []queued
	back     []queued
}

type handler struct {
	id uint64
	fn any // func(T)
}

type queued struct {
	typ     reflect.Type
	deliver func()
}

func NewBus() *Bus {
	return &Bus{
		handlers: make(map[reflect.Type][]handler),
		front:    make([]queued, 0, 64),
		back:     make([]queued, 0, 64),
	}
}

func typeOf[T any]() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}

// Subscribe registers a typed handler for events of type T. The returned
// function removes it again; calling it twice is harmless.
func Subscribe[T any](b *Bus, fn func(T)) (unsubscribe func()) {
	b.mu.Lock()
	defer b.mu.Unlock()
	t := typeOf[T]()
	b.nextID++
	id := b.nextID
	b.handlers[t] = append(b.handlers[t], handler{id: id, fn: fn})
	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		hs := b.handlers[t]
		for i, h := range hs {
			if h.id == id {
				// copy-on-write so an in-flight delivery keeps its snapshot
				next := make([]handler, 0, len(hs)-1)
				next = append(next, hs[:i]...)
				next = append(next, hs[i+1:]...)
				b.handlers[t] = next
				return
			}
		}
	}
}

// Publish delivers event to every handler of type T right now.
func Publish[T any](b *Bus, event T) {
	deliver(b.snapshot(typeOf[T]()), event)
}

// Emit queues an event into the back buffer (dispatched after the next swap).
func Emit[T any](b *Bus, event T) {
	t := typeOf[T]()
	b.back = append(b.back, queued{
		typ: t,
		deliver: func() {
			deliver(b.snapshot(t), event)
		},
	})
}

// HasSubscribers reports whether any handler is registered for type T.
func HasSubscribers[T any](b *Bus) bool {
	return len(b.snapshot(typeOf[T]())) > 0
}

// SwapBuffers rotates back→front and clears the new back buffer.
// Called once at frame start.
func (b *Bus) SwapBuffers() {
	b.front, b.back = b.back, b.front
	clear(b.back)
	b.back = b.back[:0]
}

// DispatchAll delivers all front-buffer events in emit order.
func (b *Bus) DispatchAll() {
	for _, q := range b.front {
		q.deliver()
	}
	clear(b.front)
	b.front = b.front[:0]
}

// Pending returns the number of events waiting in the back buffer.
func (b *Bus) Pending() int {
	return len(b.back)
}

func (b *Bus) snapshot(t reflect.Type) []handler {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.handlers[t]
}

func deliver[T any](hs []handler, event T) {
	bubbler, canStop := any(event).(Bubbler)
	for _, h := range hs {
		// an event stopped before delivery reaches no handler
		if canStop && !bubbler.Bubbles() {
			return
		}
		// Safe because Subscribe and Publish/Emit use the same type key.
		h.fn.(func(T))(event)
	}
}
