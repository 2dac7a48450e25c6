package event

import (
	"reflect"
	"testing"
)

type pingEvent struct {
	GameEvent[string, Unused]
	Value int
}

type plainEvent struct {
	Value int
}

// go test -run ^TestPublishInSubscriptionOrder$ ./internal/core/event -count 1
func TestPublishInSubscriptionOrder(t *testing.T) {
	bus := NewBus()
	var order []int
	Subscribe(bus, func(e plainEvent) { order = append(order, 1*e.Value) })
	Subscribe(bus, func(e plainEvent) { order = append(order, 2*e.Value) })
	Subscribe(bus, func(e plainEvent) { order = append(order, 3*e.Value) })

	Publish(bus, plainEvent{Value: 10})
	if !reflect.DeepEqual(order, []int{10, 20, 30}) {
		t.Errorf("expected [10 20 30], got %v", order)
	}
}

func TestPublishHonorsStopPropagation(t *testing.T) {
	bus := NewBus()
	calls := 0
	Subscribe(bus, func(e *pingEvent) {
		calls++
		e.StopPropagation()
	})
	Subscribe(bus, func(e *pingEvent) {
		calls++
	})

	ev := &pingEvent{Value: 1}
	Publish(bus, ev)
	if calls != 1 {
		t.Errorf("expected 1 handler call, got %d", calls)
	}
	if ev.Bubbles() {
		t.Error("expected event to stop bubbling")
	}
}

func TestPublishNoHandlers(t *testing.T) {
	bus := NewBus()
	// No panic expected
	Publish(bus, plainEvent{Value: 42})
	if HasSubscribers[plainEvent](bus) {
		t.Error("expected no subscribers")
	}
}

func TestUnsubscribe(t *testing.T) {
	bus := NewBus()
	received := 0
	unsubscribe := Subscribe(bus, func(e plainEvent) { received += e.Value })
	Publish(bus, plainEvent{Value: 1})
	unsubscribe()
	unsubscribe()
	Publish(bus, plainEvent{Value: 1})
	if received != 1 {
		t.Errorf("expected 1, got %d", received)
	}
}

func TestUnsubscribeDuringPublish(t *testing.T) {
	bus := NewBus()
	calls := 0
	var unsubscribe func()
	unsubscribe = Subscribe(bus, func(e plainEvent) {
		calls++
		unsubscribe()
	})
	Subscribe(bus, func(e plainEvent) { calls++ })

	Publish(bus, plainEvent{})
	if calls != 2 {
		t.Errorf("expected both handlers to see the first event, got %d calls", calls)
	}
	Publish(bus, plainEvent{})
	if calls != 3 {
		t.Errorf("expected 3 calls after unsubscribe, got %d", calls)
	}
}

func TestEmitIsDeferredUntilSwap(t *testing.T) {
	bus := NewBus()
	var got []int
	Subscribe(bus, func(e plainEvent) { got = append(got, e.Value) })
	Subscribe(bus, func(e *pingEvent) { got = append(got, -e.Value) })

	Emit(bus, plainEvent{Value: 1})
	Emit(bus, &pingEvent{Value: 2})
	Emit(bus, plainEvent{Value: 3})
	if bus.Pending() != 3 {
		t.Errorf("expected 3 pending, got %d", bus.Pending())
	}

	bus.DispatchAll()
	if len(got) != 0 {
		t.Fatalf("expected nothing delivered before swap, got %v", got)
	}

	bus.SwapBuffers()
	if bus.Pending() != 0 {
		t.Errorf("expected empty back buffer after swap, got %d", bus.Pending())
	}
	bus.DispatchAll()
	if !reflect.DeepEqual(got, []int{1, -2, 3}) {
		t.Errorf("expected emit order [1 -2 3], got %v", got)
	}

	bus.SwapBuffers()
	bus.DispatchAll()
	if len(got) != 3 {
		t.Errorf("expected no redelivery, got %v", got)
	}
}

func TestDispatchAllHonorsStopPropagation(t *testing.T) {
	bus := NewBus()
	second := 0
	Subscribe(bus, func(e *pingEvent) { e.StopPropagation() })
	Subscribe(bus, func(e *pingEvent) { second++ })

	Emit(bus, &pingEvent{})
	bus.SwapBuffers()
	bus.DispatchAll()
	if second != 0 {
		t.Errorf("expected second handler to be skipped, got %d calls", second)
	}
}

func TestStoppedEventReachesNoHandler(t *testing.T) {
	bus := NewBus()
	calls := 0
	Subscribe(bus, func(*pingEvent) { calls++ })

	ev := &pingEvent{}
	ev.StopPropagation()
	Publish(bus, ev)

	queued := &pingEvent{}
	queued.StopPropagation()
	Emit(bus, queued)
	bus.SwapBuffers()
	bus.DispatchAll()

	if calls != 0 {
		t.Errorf("expected no handler calls for stopped events, got %d", calls)
	}
}
