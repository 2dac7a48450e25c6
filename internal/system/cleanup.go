package system

import (
	"time"

	"github.com/l1jgo/ecscore/internal/core/ecs"
	coresys "github.com/l1jgo/ecscore/internal/core/system"
)

// CleanupSystem flushes the deferred entity destruction queue at frame end.
// It runs last in the update phase so every other system still sees killed
// entities during the frame they were killed in.
type CleanupSystem[C any] struct {
	world *ecs.World[C]
}

func NewCleanupSystem[C any](world *ecs.World[C]) *CleanupSystem[C] {
	return &CleanupSystem[C]{world: world}
}

func (s *CleanupSystem[C]) Name() string         { return "cleanup" }
func (s *CleanupSystem[C]) Phase() coresys.Phase { return coresys.PhaseUpdate }
func (s *CleanupSystem[C]) Priority() int        { return coresys.PriorityLowest }

func (s *CleanupSystem[C]) Update(_ time.Duration) {
	s.world.FlushDestroyQueue()
}
