package event

import (
	"testing"
	"time"
)

type testEntity struct{ name string }

func TestGameEventBubblesByDefault(t *testing.T) {
	var ev GameEvent[*testEntity, Unused]
	if !ev.Bubbles() {
		t.Fatal("expected fresh event to bubble")
	}
}

func TestStopPropagationIsSticky(t *testing.T) {
	ev := NewKillEvent(&testEntity{name: "a"})
	ev.StopPropagation()
	for i := 0; i < 3; i++ {
		if ev.Bubbles() {
			t.Fatalf("read %d: expected bubbles to stay false", i)
		}
	}
	ev.StopPropagation()
	if ev.Bubbles() {
		t.Fatal("expected bubbles false after second stop")
	}
}

func TestLifecycleEventsTargetSelf(t *testing.T) {
	e := &testEntity{name: "hero"}
	ctx := "engine"

	initEv := NewInitializeEvent(ctx, e)
	add := NewAddEvent(ctx, e)
	remove := NewRemoveEvent(ctx, e)
	pre := NewPreUpdateEvent(ctx, 16*time.Millisecond, e)
	post := NewPostUpdateEvent(ctx, 16*time.Millisecond, e)
	kill := NewKillEvent(e)

	targets := map[string]*testEntity{
		"initialize": initEv.Target,
		"add":        add.Target,
		"remove":     remove.Target,
		"preupdate":  pre.Target,
		"postupdate": post.Target,
		"kill":       kill.Target,
	}
	for name, got := range targets {
		if got != e {
			t.Errorf("%s: expected target %p, got %p", name, e, got)
		}
	}

	if initEv.Context != ctx || add.Context != ctx || remove.Context != ctx {
		t.Error("expected context to be carried through")
	}
	if pre.Elapsed != 16*time.Millisecond || post.Elapsed != 16*time.Millisecond {
		t.Errorf("expected elapsed 16ms, got %v and %v", pre.Elapsed, post.Elapsed)
	}
	if !pre.Bubbles() || !kill.Bubbles() {
		t.Error("expected lifecycle events to bubble on construction")
	}
	if add.Other != (Unused{}) {
		t.Error("expected Other to stay unpopulated")
	}
}
