package main

import (
	"fmt"
	"io"
	"time"

	"github.com/l1jgo/ecscore/internal/component"
	"github.com/l1jgo/ecscore/internal/config"
	"github.com/l1jgo/ecscore/internal/core/ecs"
	"github.com/l1jgo/ecscore/internal/core/event"
	coresys "github.com/l1jgo/ecscore/internal/core/system"
	"github.com/l1jgo/ecscore/internal/data"
	"github.com/l1jgo/ecscore/internal/scripting"
	"github.com/l1jgo/ecscore/internal/system"
	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"
)

// frameContext is the context value every system hook receives.
type frameContext struct {
	Frame   int
	Elapsed time.Duration
}

type demo struct {
	ctx    *frameContext
	world  *ecs.World[*frameContext]
	stores *component.Stores
	engine *scripting.Engine
	render *system.RenderSystem[*frameContext]
	log    *zap.Logger
}

func newDemo(cfg *config.Config, log *zap.Logger, out io.Writer) (*demo, error) {
	ctx := &frameContext{}
	w := ecs.NewWorld(ctx, log)
	d := &demo{
		ctx:    ctx,
		world:  w,
		stores: component.NewStores(w.Registry()),
		log:    log,
	}

	event.Subscribe(w.Bus(), func(ev *system.ExpiredEvent) {
		log.Debug("entity expired", zap.String("entity", ev.Name))
	})

	systems := []coresys.System{
		system.NewEventDispatchSystem(w.Bus()),
		system.NewLifetimeSystem(w, d.stores),
		system.NewMovementSystem(w, d.stores),
		system.NewCleanupSystem(w),
	}
	if cfg.Render.Enabled {
		d.render = system.NewRenderSystem(w, d.stores, out, cfg.Render.Width, cfg.Render.Height)
		systems = append(systems, d.render)
	}

	if cfg.Scripting.Enabled {
		engine, err := scripting.NewEngine(cfg.Scripting.Dir, log)
		if err != nil {
			return nil, fmt.Errorf("init scripting: %w", err)
		}
		d.engine = engine
		engine.Register("count_tagged", d.countTagged)
		for _, s := range scripting.Systems[*frameContext](engine) {
			systems = append(systems, s)
		}
	}

	for _, s := range systems {
		if err := d.addSystem(s, cfg.Systems.Priority); err != nil {
			d.Close()
			return nil, err
		}
	}

	if cfg.World.Blueprints != "" {
		table, err := data.LoadBlueprintTable(cfg.World.Blueprints)
		if err != nil {
			d.Close()
			return nil, fmt.Errorf("load blueprints: %w", err)
		}
		n := data.SpawnAll(table, w, d.stores)
		log.Debug("blueprints spawned", zap.Int("blueprints", table.Count()), zap.Int("entities", n))
	}

	w.Initialize()
	return d, nil
}

// addSystem registers s, honoring a configured priority override for its name.
func (d *demo) addSystem(s coresys.System, overrides map[string]string) error {
	name := coresys.NameOf(s)
	raw, ok := overrides[name]
	if !ok {
		d.world.Systems().Add(s)
		return nil
	}
	p, err := coresys.ParsePriority(raw)
	if err != nil {
		return fmt.Errorf("systems.priority.%s: %w", name, err)
	}
	d.world.Systems().AddWithPriority(s, p)
	return nil
}

// Step runs one frame: the update pass, then the draw pass.
func (d *demo) Step(elapsed time.Duration) {
	d.ctx.Frame++
	d.ctx.Elapsed += elapsed
	d.world.Update(elapsed)
	d.world.Draw(elapsed)
}

func (d *demo) Close() {
	if d.render != nil {
		d.render.Close()
	}
	if d.engine != nil {
		d.engine.Close()
	}
}

// count_tagged(tag) returns the number of live entities carrying tag.
func (d *demo) countTagged(L *lua.LState) int {
	q, err := d.world.TagQuery(L.CheckString(1))
	if err != nil {
		L.RaiseError("%v", err)
		return 0
	}
	n := 0
	for _, e := range q.Entities(nil) {
		if !e.IsKilled() {
			n++
		}
	}
	L.Push(lua.LNumber(n))
	return 1
}
