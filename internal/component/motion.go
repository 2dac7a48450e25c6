package component

import "github.com/go-gl/mathgl/mgl64"

// Position is the world-space location of an entity.
// Pure data, zero methods: all mutations happen in systems.
type Position struct {
	mgl64.Vec2
}

// Velocity is the displacement per second applied by MovementSystem.
type Velocity struct {
	mgl64.Vec2
}
