package scripting

import (
	"fmt"
	"time"

	coresys "github.com/l1jgo/ecscore/internal/core/system"
	lua "github.com/yuin/gopher-lua"
)

// ScriptSystem runs a Lua system table as an ECS system. Hooks missing from
// the table are no-ops. Every hook receives the table as self; update,
// preupdate and postupdate also receive the elapsed time in seconds.
//
// A failing hook panics with an error naming the system, like any other
// system hook failure.
type ScriptSystem[C any] struct {
	engine *Engine
	def    *Definition
}

// Systems wraps every registered definition as a system.
func Systems[C any](e *Engine) []*ScriptSystem[C] {
	out := make([]*ScriptSystem[C], 0, len(e.defs))
	for _, d := range e.defs {
		out = append(out, &ScriptSystem[C]{engine: e, def: d})
	}
	return out
}

func (s *ScriptSystem[C]) Name() string         { return s.def.Name }
func (s *ScriptSystem[C]) Phase() coresys.Phase { return s.def.Phase }
func (s *ScriptSystem[C]) Priority() int        { return s.def.Priority }

func (s *ScriptSystem[C]) Initialize(_ coresys.Host[C], _ C) {
	s.call("initialize")
}

func (s *ScriptSystem[C]) PreUpdate(_ C, elapsed time.Duration) {
	s.call("preupdate", lua.LNumber(elapsed.Seconds()))
}

func (s *ScriptSystem[C]) Update(elapsed time.Duration) {
	s.call("update", lua.LNumber(elapsed.Seconds()))
}

func (s *ScriptSystem[C]) PostUpdate(_ C, elapsed time.Duration) {
	s.call("postupdate", lua.LNumber(elapsed.Seconds()))
}

func (s *ScriptSystem[C]) call(hook string, args ...lua.LValue) {
	fn, ok := s.def.table.RawGetString(hook).(*lua.LFunction)
	if !ok {
		return
	}
	vm := s.engine.vm
	if err := vm.CallByParam(lua.P{
		Fn:      fn,
		NRet:    0,
		Protect: true,
	}, append([]lua.LValue{s.def.table}, args...)...); err != nil {
		panic(fmt.Errorf("lua system %q %s: %w", s.def.Name, hook, err))
	}
}
