package event

// Bubbler is implemented by events that carry a bubbling flag. Dispatch loops
// check it after every handler and stop delivering once it reports false.
type Bubbler interface {
	Bubbles() bool
}

// Unused is the secondary-subject type of events that never populate Other.
type Unused struct{}

// GameEvent is the base of every lifecycle notification. Target is the
// primary subject, Other the secondary one.
type GameEvent[T, U any] struct {
	Target T
	Other  U

	// stopped is the inverse of bubbles so the zero value bubbles.
	stopped bool
}

// Bubbles reports whether further observers should still be notified.
func (e *GameEvent[T, U]) Bubbles() bool {
	return !e.stopped
}

// StopPropagation clears the bubbling flag for good. It is a cooperative
// signal: the dispatch loop decides whether to honor it.
func (e *GameEvent[T, U]) StopPropagation() {
	e.stopped = true
}
