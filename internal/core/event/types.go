package event

import "time"

// Lifecycle event types. E is the entity type, C the opaque context handed
// through from the owning world. Target is always set to Self.

// InitializeEvent fires once per entity, after the world has initialized.
type InitializeEvent[E, C any] struct {
	GameEvent[E, Unused]
	Context C
	Self    E
}

func NewInitializeEvent[E, C any](ctx C, self E) *InitializeEvent[E, C] {
	ev := &InitializeEvent[E, C]{Context: ctx, Self: self}
	ev.Target = self
	return ev
}

// AddEvent fires when an entity joins a world.
type AddEvent[E, C any] struct {
	GameEvent[E, Unused]
	Context C
	Self    E
}

func NewAddEvent[E, C any](ctx C, self E) *AddEvent[E, C] {
	ev := &AddEvent[E, C]{Context: ctx, Self: self}
	ev.Target = self
	return ev
}

// RemoveEvent fires when an entity leaves a world.
type RemoveEvent[E, C any] struct {
	GameEvent[E, Unused]
	Context C
	Self    E
}

func NewRemoveEvent[E, C any](ctx C, self E) *RemoveEvent[E, C] {
	ev := &RemoveEvent[E, C]{Context: ctx, Self: self}
	ev.Target = self
	return ev
}

// PreUpdateEvent fires for each entity before the update phase runs.
type PreUpdateEvent[E, C any] struct {
	GameEvent[E, Unused]
	Context C
	Elapsed time.Duration
	Self    E
}

func NewPreUpdateEvent[E, C any](ctx C, elapsed time.Duration, self E) *PreUpdateEvent[E, C] {
	ev := &PreUpdateEvent[E, C]{Context: ctx, Elapsed: elapsed, Self: self}
	ev.Target = self
	return ev
}

// PostUpdateEvent fires for each entity after the update phase ran.
type PostUpdateEvent[E, C any] struct {
	GameEvent[E, Unused]
	Context C
	Elapsed time.Duration
	Self    E
}

func NewPostUpdateEvent[E, C any](ctx C, elapsed time.Duration, self E) *PostUpdateEvent[E, C] {
	ev := &PostUpdateEvent[E, C]{Context: ctx, Elapsed: elapsed, Self: self}
	ev.Target = self
	return ev
}

// KillEvent fires when an entity is marked for destruction.
type KillEvent[E any] struct {
	GameEvent[E, Unused]
	Self E
}

func NewKillEvent[E any](self E) *KillEvent[E] {
	ev := &KillEvent[E]{Self: self}
	ev.Target = self
	return ev
}
