package component

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/l1jgo/ecscore/internal/core/ecs"
)

func TestNewStoresRegistersEveryStore(t *testing.T) {
	reg := ecs.NewRegistry()
	s := NewStores(reg)
	if reg.Len() != 4 {
		t.Fatalf("expected 4 registered stores, got %d", reg.Len())
	}

	id := ecs.NewEntityID(1, 0)
	s.Positions.Set(id, &Position{mgl64.Vec2{1, 2}})
	s.Velocities.Set(id, &Velocity{})
	s.Lifetimes.Set(id, &Lifetime{})
	s.Sprites.Set(id, &Sprite{Glyph: '@'})

	reg.RemoveAll(id)
	if s.Positions.Has(id) || s.Velocities.Has(id) || s.Lifetimes.Has(id) || s.Sprites.Has(id) {
		t.Error("expected RemoveAll to clear every component")
	}
}
