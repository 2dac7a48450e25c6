package system

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// Phase selects which top-level pass of a frame a system runs in.
// The owning world runs PhaseUpdate first, then PhaseDraw.
type Phase int

const (
	PhaseUpdate Phase = iota // simulation logic
	PhaseDraw                // presentation logic
)

func (p Phase) String() string {
	switch p {
	case PhaseUpdate:
		return "update"
	case PhaseDraw:
		return "draw"
	default:
		return "unknown"
	}
}

// Priorities. Lower values run earlier; equal priorities keep insertion order.
const (
	PriorityHighest = math.MinInt
	PriorityHigher  = -5
	PriorityAverage = 0
	PriorityLower   = 5
	PriorityLowest  = math.MaxInt
)

// ParsePriority accepts a priority name (highest, higher, average, lower,
// lowest) or a decimal integer.
func ParsePriority(s string) (int, error) {
	switch strings.ToLower(s) {
	case "highest":
		return PriorityHighest, nil
	case "higher":
		return PriorityHigher, nil
	case "average":
		return PriorityAverage, nil
	case "lower":
		return PriorityLower, nil
	case "lowest":
		return PriorityLowest, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("unknown priority %q", s)
	}
	return n, nil
}

// System is the interface every ECS system implements. Systems are compared
// by identity, so implement them on pointer receivers.
type System interface {
	Phase() Phase
	Update(elapsed time.Duration)
}

// Prioritized is implemented by system types with a fixed priority.
// Systems without it run at PriorityAverage.
type Prioritized interface {
	Priority() int
}

// Named systems can be addressed by name, e.g. for config priority overrides.
type Named interface {
	Name() string
}

// Host is the world as seen by systems.
type Host[C any] interface {
	Context() C
}

// Initializer runs at most once, before the system's first Update.
type Initializer[C any] interface {
	Initialize(host Host[C], ctx C)
}

// PreUpdater runs before any system of the same phase updates.
type PreUpdater[C any] interface {
	PreUpdate(ctx C, elapsed time.Duration)
}

// PostUpdater runs after every system of the same phase updated.
type PostUpdater[C any] interface {
	PostUpdate(ctx C, elapsed time.Duration)
}

// Constructor builds a system that depends on its host.
type Constructor[C any] func(host Host[C]) System

// PriorityOf returns the static priority of s.
func PriorityOf(s System) int {
	if p, ok := s.(Prioritized); ok {
		return p.Priority()
	}
	return PriorityAverage
}

// NameOf returns the name of s, or "" for unnamed systems.
func NameOf(s System) string {
	if n, ok := s.(Named); ok {
		return n.Name()
	}
	return ""
}
