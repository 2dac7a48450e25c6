package system

import (
	"github.com/l1jgo/ecscore/internal/core/ecs"
	"github.com/l1jgo/ecscore/internal/core/event"
)

// ExpiredEvent is emitted by LifetimeSystem when an entity runs out of life.
// It is deferred: handlers see it on the next frame.
type ExpiredEvent struct {
	event.GameEvent[*ecs.Entity, event.Unused]
	Name string
}
