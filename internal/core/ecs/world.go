package ecs

import (
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/l1jgo/ecscore/internal/core/event"
	coresys "github.com/l1jgo/ecscore/internal/core/system"
	"go.uber.org/zap"
)

// World is the top-level ECS container. It owns the entity pool, the component
// registry, the tag queries, the systems, the lifecycle event bus and a
// deferred destruction queue flushed by CleanupSystem each frame.
//
// C is the opaque context handed through to every system hook and event.
// A World is single-threaded: all calls must come from the frame loop.
type World[C any] struct {
	id           uuid.UUID
	ctx          C
	pool         *EntityPool
	registry     *Registry
	queries      *QueryManager
	systems      *coresys.Manager[C]
	bus          *event.Bus
	entities     []*Entity
	byID         map[EntityID]*Entity
	destroyQueue []*Entity
	log          *zap.Logger
}

func NewWorld[C any](ctx C, log *zap.Logger) *World[C] {
	if log == nil {
		log = zap.NewNop()
	}
	id := uuid.New()
	w := &World[C]{
		id:           id,
		ctx:          ctx,
		pool:         NewEntityPool(),
		registry:     NewRegistry(),
		queries:      NewQueryManager(),
		bus:          event.NewBus(),
		entities:     make([]*Entity, 0, 256),
		byID:         make(map[EntityID]*Entity, 256),
		destroyQueue: make([]*Entity, 0, 64),
		log:          log.With(zap.Stringer("world", id)),
	}
	w.systems = coresys.NewManager[C](w, w.log)
	return w
}

func (w *World[C]) ID() uuid.UUID { return w.id }
func (w *World[C]) Context() C { return w.ctx }
func (w *World[C]) Pool() *EntityPool { return w.pool }
func (w *World[C]) Registry() *Registry { return w.registry }
func (w *World[C]) Queries() *QueryManager { return w.queries }
func (w *World[C]) Systems() *coresys.Manager[C] { return w.systems }
func (w *World[C]) Bus() *event.Bus { return w.bus }
func (w *World[C]) Logger() *zap.Logger { return w.log }
func (w *World[C]) Alive(id EntityID) bool { return w.pool.Alive(id) }
func (w *World[C]) Entity(id EntityID) *Entity { return w.byID[id] }
func (w *World[C]) Entities() []*Entity { return slices.Clone(w.entities) }
func (w *World[C]) Len() int { return len(w.entities) }
func (w *World[C]) Initialized() bool { return w.systems.Initialized() }

// CreateEntity allocates an entity, offers it to every tag query and fires
// AddEvent (and InitializeEvent once the world is initialized).
func (w *World[C]) CreateEntity(name string, tags ...string) *Entity {
	e := NewEntity(w.pool.Create(), name, tags...)
	w.entities = append(w.entities, e)
	w.byID[e.id] = e
	w.queries.AddEntity(e)
	event.Publish(w.bus, event.NewAddEvent(w.ctx, e))
	if w.systems.Initialized() {
		w.initializeEntity(e)
	}
	return e
}

// TagQuery returns the shared query for tags.
func (w *World[C]) TagQuery(tags ...string) (*TagQuery, error) {
	return w.queries.TagQuery(tags...)
}

// Kill marks e for destruction at the end of the frame and fires KillEvent.
// Killing an entity twice does nothing.
func (w *World[C]) Kill(e *Entity) {
	if e.killed || w.byID[e.id] != e {
		return
	}
	e.killed = true
	w.destroyQueue = append(w.destroyQueue, e)
	event.Publish(w.bus, event.NewKillEvent(e))
}

// FlushDestroyQueue destroys all queued entities: evicts them from every
// query, clears their components and fires RemoveEvent. Entities killed
// while the queue drains are destroyed by the same call.
// Called by CleanupSystem at the end of each frame.
func (w *World[C]) FlushDestroyQueue() int {
	n := 0
	for len(w.destroyQueue) > 0 {
		batch := w.destroyQueue
		w.destroyQueue = make([]*Entity, 0, cap(batch))
		for _, e := range batch {
			w.destroy(e)
		}
		n += len(batch)
	}
	if n > 0 {
		w.log.Debug("entities destroyed", zap.Int("count", n), zap.Int("alive", len(w.entities)))
	}
	return n
}

func (w *World[C]) destroy(e *Entity) {
	w.queries.RemoveEntity(e)
	w.registry.RemoveAll(e.id)
	w.pool.Destroy(e.id)
	delete(w.byID, e.id)
	if i := slices.Index(w.entities, e); i >= 0 {
		w.entities = slices.Delete(w.entities, i, i+1)
	}
	event.Publish(w.bus, event.NewRemoveEvent(w.ctx, e))
}

// PendingDestruction returns the number of entities waiting for the flush.
func (w *World[C]) PendingDestruction() int {
	return len(w.destroyQueue)
}

// Initialize initializes every system, then fires InitializeEvent for each
// entity. Only the first call has an effect.
func (w *World[C]) Initialize() {
	if w.systems.Initialized() {
		return
	}
	w.systems.Initialize()
	for _, e := range slices.Clone(w.entities) {
		w.initializeEntity(e)
	}
	w.log.Debug("world initialized",
		zap.Int("systems", w.systems.Len()),
		zap.Int("entities", len(w.entities)),
	)
}

func (w *World[C]) initializeEntity(e *Entity) {
	if e.initialized {
		return
	}
	e.initialized = true
	event.Publish(w.bus, event.NewInitializeEvent(w.ctx, e))
}

// Update runs the simulation pass: PreUpdateEvent per entity, the update
// phase systems, then PostUpdateEvent per entity.
func (w *World[C]) Update(elapsed time.Duration) {
	if event.HasSubscribers[*event.PreUpdateEvent[*Entity, C]](w.bus) {
		for _, e := range slices.Clone(w.entities) {
			event.Publish(w.bus, event.NewPreUpdateEvent(w.ctx, elapsed, e))
		}
	}

	w.systems.UpdateSystems(coresys.PhaseUpdate, w.ctx, elapsed)

	if event.HasSubscribers[*event.PostUpdateEvent[*Entity, C]](w.bus) {
		for _, e := range slices.Clone(w.entities) {
			event.Publish(w.bus, event.NewPostUpdateEvent(w.ctx, elapsed, e))
		}
	}
}

// Draw runs the presentation pass.
func (w *World[C]) Draw(elapsed time.Duration) {
	w.systems.UpdateSystems(coresys.PhaseDraw, w.ctx, elapsed)
}

// Lifecycle subscriptions. Each returns its unsubscribe function.

func (w *World[C]) OnAdd(fn func(*event.AddEvent[*Entity, C])) func() {
	return event.Subscribe(w.bus, fn)
}

func (w *World[C]) OnRemove(fn func(*event.RemoveEvent[*Entity, C])) func() {
	return event.Subscribe(w.bus, fn)
}

func (w *World[C]) OnInitialize(fn func(*event.InitializeEvent[*Entity, C])) func() {
	return event.Subscribe(w.bus, fn)
}

func (w *World[C]) OnPreUpdate(fn func(*event.PreUpdateEvent[*Entity, C])) func() {
	return event.Subscribe(w.bus, fn)
}

func (w *World[C]) OnPostUpdate(fn func(*event.PostUpdateEvent[*Entity, C])) func() {
	return event.Subscribe(w.bus, fn)
}

func (w *World[C]) OnKill(fn func(*event.KillEvent[*Entity])) func() {
	return event.Subscribe(w.bus, fn)
}
