package component

import "time"

// Lifetime counts down the remaining life of an entity. LifetimeSystem kills
// the entity once Remaining drops to zero.
type Lifetime struct {
	Remaining time.Duration
}
