package system

import (
	"fmt"
	"time"

	"github.com/l1jgo/ecscore/internal/component"
	"github.com/l1jgo/ecscore/internal/core/ecs"
	coresys "github.com/l1jgo/ecscore/internal/core/system"
)

// MoverTag marks entities that MovementSystem integrates.
const MoverTag = "mover"

// MovementSystem advances Position by Velocity for every entity tagged
// MoverTag.
type MovementSystem[C any] struct {
	world  *ecs.World[C]
	stores *component.Stores
	movers *ecs.TagQuery
}

func NewMovementSystem[C any](world *ecs.World[C], stores *component.Stores) *MovementSystem[C] {
	return &MovementSystem[C]{world: world, stores: stores}
}

func (s *MovementSystem[C]) Name() string         { return "movement" }
func (s *MovementSystem[C]) Phase() coresys.Phase { return coresys.PhaseUpdate }
func (s *MovementSystem[C]) Priority() int        { return coresys.PriorityAverage }

func (s *MovementSystem[C]) Initialize(_ coresys.Host[C], _ C) {
	q, err := s.world.TagQuery(MoverTag)
	if err != nil {
		panic(fmt.Errorf("movement system: %w", err))
	}
	s.movers = q
}

func (s *MovementSystem[C]) Update(elapsed time.Duration) {
	if s.movers == nil {
		return
	}
	dt := elapsed.Seconds()
	for _, e := range s.movers.Entities(nil) {
		if e.IsKilled() {
			continue
		}
		pos, ok := s.stores.Positions.Get(e.ID())
		if !ok {
			continue
		}
		vel, ok := s.stores.Velocities.Get(e.ID())
		if !ok {
			continue
		}
		pos.Vec2 = pos.Add(vel.Mul(dt))
	}
}
