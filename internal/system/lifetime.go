package system

import (
	"time"

	"github.com/l1jgo/ecscore/internal/component"
	"github.com/l1jgo/ecscore/internal/core/ecs"
	"github.com/l1jgo/ecscore/internal/core/event"
	coresys "github.com/l1jgo/ecscore/internal/core/system"
)

// LifetimeSystem counts down Lifetime components and kills entities whose
// time is up. Each expiry is emitted as an ExpiredEvent.
type LifetimeSystem[C any] struct {
	world  *ecs.World[C]
	stores *component.Stores
}

func NewLifetimeSystem[C any](world *ecs.World[C], stores *component.Stores) *LifetimeSystem[C] {
	return &LifetimeSystem[C]{world: world, stores: stores}
}

func (s *LifetimeSystem[C]) Name() string         { return "lifetime" }
func (s *LifetimeSystem[C]) Phase() coresys.Phase { return coresys.PhaseUpdate }
func (s *LifetimeSystem[C]) Priority() int        { return coresys.PriorityHigher }

func (s *LifetimeSystem[C]) Update(elapsed time.Duration) {
	s.stores.Lifetimes.Each(func(id ecs.EntityID, lt *component.Lifetime) {
		e := s.world.Entity(id)
		if e == nil || e.IsKilled() {
			return
		}
		lt.Remaining -= elapsed
		if lt.Remaining > 0 {
			return
		}
		s.world.Kill(e)
		ev := &ExpiredEvent{Name: e.Name()}
		ev.Target = e
		event.Emit(s.world.Bus(), ev)
	})
}
