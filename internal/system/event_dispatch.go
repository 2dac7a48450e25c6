package system

import (
	"time"

	"github.com/l1jgo/ecscore/internal/core/event"
	coresys "github.com/l1jgo/ecscore/internal/core/system"
)

// EventDispatchSystem delivers the events emitted during the previous frame.
// It runs first so handlers see them before any other system updates.
type EventDispatchSystem struct {
	bus *event.Bus
}

func NewEventDispatchSystem(bus *event.Bus) *EventDispatchSystem {
	return &EventDispatchSystem{bus: bus}
}

func (s *EventDispatchSystem) Name() string         { return "event_dispatch" }
func (s *EventDispatchSystem) Phase() coresys.Phase { return coresys.PhaseUpdate }
func (s *EventDispatchSystem) Priority() int        { return coresys.PriorityHighest }

func (s *EventDispatchSystem) Update(_ time.Duration) {
	s.bus.SwapBuffers()
	s.bus.DispatchAll()
}
