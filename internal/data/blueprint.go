package data

import (
	"fmt"
	"os"
	"time"
	"unicode/utf8"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/l1jgo/ecscore/internal/component"
	"github.com/l1jgo/ecscore/internal/core/ecs"
	"gopkg.in/yaml.v3"
)

// Blueprint describes a batch of identical entities to spawn.
type Blueprint struct {
	Name     string        `yaml:"name"`
	Tags     []string      `yaml:"tags"`
	Position []float64     `yaml:"position"` // [x, y]
	Velocity []float64     `yaml:"velocity"` // [dx, dy] per second
	Spread   []float64     `yaml:"spread"`   // offset added per copy
	Lifetime time.Duration `yaml:"lifetime"` // 0 = immortal
	Glyph    string        `yaml:"glyph"`    // single character, empty = invisible
	Z        int           `yaml:"z"`
	Count    int           `yaml:"count"` // 0 means 1
}

// BlueprintTable holds the loaded blueprints in file order.
type BlueprintTable struct {
	list   []*Blueprint
	byName map[string]*Blueprint
}

// LoadBlueprintTable loads an entity blueprint yaml list.
func LoadBlueprintTable(path string) (*BlueprintTable, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read blueprints: %w", err)
	}
	var entries []Blueprint
	if err := yaml.Unmarshal(raw, &entries); err != nil {
		return nil, fmt.Errorf("parse blueprints: %w", err)
	}
	t := &BlueprintTable{
		list:   make([]*Blueprint, 0, len(entries)),
		byName: make(map[string]*Blueprint, len(entries)),
	}
	for i := range entries {
		bp := &entries[i]
		if err := bp.validate(); err != nil {
			return nil, fmt.Errorf("blueprint %d: %w", i, err)
		}
		if _, dup := t.byName[bp.Name]; dup {
			return nil, fmt.Errorf("blueprint %q defined twice", bp.Name)
		}
		t.list = append(t.list, bp)
		t.byName[bp.Name] = bp
	}
	return t, nil
}

func (bp *Blueprint) validate() error {
	if bp.Name == "" {
		return fmt.Errorf("missing name")
	}
	for field, v := range map[string][]float64{
		"position": bp.Position,
		"velocity": bp.Velocity,
		"spread":   bp.Spread,
	} {
		if v != nil && len(v) != 2 {
			return fmt.Errorf("%s: %s needs 2 values, got %d", bp.Name, field, len(v))
		}
	}
	if bp.Glyph != "" && utf8.RuneCountInString(bp.Glyph) != 1 {
		return fmt.Errorf("%s: glyph %q must be one character", bp.Name, bp.Glyph)
	}
	if bp.Count < 0 || bp.Lifetime < 0 {
		return fmt.Errorf("%s: count and lifetime must not be negative", bp.Name)
	}
	return nil
}

// Get returns the blueprint with the given name, or nil if none.
func (t *BlueprintTable) Get(name string) *Blueprint {
	return t.byName[name]
}

// All returns the blueprints in file order.
func (t *BlueprintTable) All() []*Blueprint {
	return t.list
}

// Count returns the total number of blueprints loaded.
func (t *BlueprintTable) Count() int {
	return len(t.list)
}

// Spawn creates bp.Count entities in w and attaches the components the
// blueprint describes.
func Spawn[C any](w *ecs.World[C], stores *component.Stores, bp *Blueprint) []*ecs.Entity {
	n := max(bp.Count, 1)
	out := make([]*ecs.Entity, 0, n)
	base, step := vec2(bp.Position), vec2(bp.Spread)
	for i := 0; i < n; i++ {
		name := bp.Name
		if n > 1 {
			name = fmt.Sprintf("%s#%d", bp.Name, i)
		}
		e := w.CreateEntity(name, bp.Tags...)
		id := e.ID()
		if bp.Position != nil || bp.Spread != nil {
			stores.Positions.Set(id, &component.Position{Vec2: base.Add(step.Mul(float64(i)))})
		}
		if bp.Velocity != nil {
			stores.Velocities.Set(id, &component.Velocity{Vec2: vec2(bp.Velocity)})
		}
		if bp.Lifetime > 0 {
			stores.Lifetimes.Set(id, &component.Lifetime{Remaining: bp.Lifetime})
		}
		if bp.Glyph != "" {
			r, _ := utf8.DecodeRuneInString(bp.Glyph)
			stores.Sprites.Set(id, &component.Sprite{Glyph: r, Z: bp.Z})
		}
		out = append(out, e)
	}
	return out
}

// SpawnAll spawns every blueprint of t and returns the number of entities
// created.
func SpawnAll[C any](t *BlueprintTable, w *ecs.World[C], stores *component.Stores) int {
	total := 0
	for _, bp := range t.list {
		total += len(Spawn(w, stores, bp))
	}
	return total
}

func vec2(v []float64) mgl64.Vec2 {
	if len(v) != 2 {
		return mgl64.Vec2{}
	}
	return mgl64.Vec2{v[0], v[1]}
}
