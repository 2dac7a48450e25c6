package component

import "github.com/l1jgo/ecscore/internal/core/ecs"

// Stores bundles the component stores of a world so systems share them.
type Stores struct {
	Positions  *ecs.Store[Position]
	Velocities *ecs.Store[Velocity]
	Lifetimes  *ecs.Store[Lifetime]
	Sprites    *ecs.Store[Sprite]
}

// NewStores creates every store and registers it with reg, so destroyed
// entities lose their components.
func NewStores(reg *ecs.Registry) *Stores {
	return &Stores{
		Positions:  ecs.RegisterStore[Position](reg),
		Velocities: ecs.RegisterStore[Velocity](reg),
		Lifetimes:  ecs.RegisterStore[Lifetime](reg),
		Sprites:    ecs.RegisterStore[Sprite](reg),
	}
}
