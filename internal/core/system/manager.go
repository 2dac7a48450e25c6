package system

import (
	"cmp"
	"fmt"
	"reflect"
	"slices"
	"time"

	"go.uber.org/zap"
)

type entry struct {
	sys      System
	priority int
}

// Manager keeps the ordered systems of one world and dispatches them
// each frame. It is not safe for concurrent use: mutate it between frames,
// never during UpdateSystems.
type Manager[C any] struct {
	host        Host[C]
	systems     []entry
	initialized bool
	log         *zap.Logger
}

func NewManager[C any](host Host[C], log *zap.Logger) *Manager[C] {
	if log == nil {
		log = zap.NewNop()
	}
	return &Manager[C]{
		host:    host,
		systems: make([]entry, 0, 16),
		log:     log,
	}
}

// Get returns the first registered system of type T.
func Get[T System, C any](m *Manager[C]) (T, bool) {
	for _, e := range m.systems {
		if s, ok := e.sys.(T); ok {
			return s, true
		}
	}
	var zero T
	return zero, false
}

// Add registers a ready-made system at its static priority.
func (m *Manager[C]) Add(s System) {
	m.AddWithPriority(s, PriorityOf(s))
}

// AddFunc constructs a system with the manager's host and registers it.
func (m *Manager[C]) AddFunc(ctor Constructor[C]) System {
	s := ctor(m.host)
	m.Add(s)
	return s
}

// AddWithPriority registers s at an explicit priority. If the manager has
// already been initialized the system is initialized before returning.
// It panics if the dynamic type of s is not comparable, since Remove
// matches systems by identity.
func (m *Manager[C]) AddWithPriority(s System, priority int) {
	if t := reflect.TypeOf(s); t == nil || !t.Comparable() {
		panic(fmt.Sprintf("system: %T is not comparable; implement System on a pointer receiver", s))
	}
	m.systems = append(m.systems, entry{sys: s, priority: priority})
	slices.SortStableFunc(m.systems, func(a, b entry) int {
		return cmp.Compare(a.priority, b.priority)
	})
	m.log.Debug("system added",
		zap.String("system", describe(s)),
		zap.Stringer("phase", s.Phase()),
		zap.Int("priority", priority),
	)

	if m.initialized {
		m.initialize(s)
	}
}

// Remove unregisters s. Removing an unknown system is a no-op.
func (m *Manager[C]) Remove(s System) {
	i := slices.IndexFunc(m.systems, func(e entry) bool { return e.sys == s })
	if i < 0 {
		return
	}
	m.systems = slices.Delete(m.systems, i, i+1)
	m.log.Debug("system removed", zap.String("system", describe(s)))
}

// Initialize runs every system's Initialize hook in priority order. Only the
// first call has an effect; systems added later are initialized on add.
func (m *Manager[C]) Initialize() {
	if m.initialized {
		return
	}
	m.initialized = true
	// hooks may add systems; those are initialized on add
	for _, s := range m.Systems() {
		m.initialize(s)
	}
	m.log.Debug("systems initialized", zap.Int("count", len(m.systems)))
}

func (m *Manager[C]) initialize(s System) {
	if in, ok := s.(Initializer[C]); ok {
		in.Initialize(m.host, m.host.Context())
	}
}

// Initialized reports whether Initialize has run.
func (m *Manager[C]) Initialized() bool {
	return m.initialized
}

// UpdateSystems runs the systems of one phase in three barriers: every
// PreUpdate, then every Update, then every PostUpdate. A panicking hook
// aborts the rest of the cycle and propagates to the caller.
func (m *Manager[C]) UpdateSystems(phase Phase, ctx C, elapsed time.Duration) {
	systems := make([]System, 0, len(m.systems))
	for _, e := range m.systems {
		if e.sys.Phase() == phase {
			systems = append(systems, e.sys)
		}
	}

	for _, s := range systems {
		if pre, ok := s.(PreUpdater[C]); ok {
			pre.PreUpdate(ctx, elapsed)
		}
	}

	for _, s := range systems {
		s.Update(elapsed)
	}

	for _, s := range systems {
		if post, ok := s.(PostUpdater[C]); ok {
			post.PostUpdate(ctx, elapsed)
		}
	}
}

// Clear removes every system, last first.
func (m *Manager[C]) Clear() {
	for i := len(m.systems) - 1; i >= 0; i-- {
		m.Remove(m.systems[i].sys)
	}
}

// Systems returns the registered systems in dispatch order.
func (m *Manager[C]) Systems() []System {
	out := make([]System, len(m.systems))
	for i, e := range m.systems {
		out[i] = e.sys
	}
	return out
}

func (m *Manager[C]) Len() int {
	return len(m.systems)
}

func describe(s System) string {
	if name := NameOf(s); name != "" {
		return name
	}
	return fmt.Sprintf("%T", s)
}
