package scripting

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	coresys "github.com/l1jgo/ecscore/internal/core/system"
	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"
)

// Engine wraps a single gopher-lua VM that hosts scripted systems.
// Single-goroutine access only (frame loop).
type Engine struct {
	vm   *lua.LState
	log  *zap.Logger
	defs []*Definition
}

// Definition is a system table registered by a script through
// register_system.
type Definition struct {
	Name     string
	Phase    coresys.Phase
	Priority int
	table    *lua.LTable
}

// NewEngine creates a Lua engine and loads all scripts from the given
// directory: core/ first, then systems/. Missing directories are skipped.
func NewEngine(scriptsDir string, log *zap.Logger) (*Engine, error) {
	if log == nil {
		log = zap.NewNop()
	}
	vm := lua.NewState(lua.Options{
		SkipOpenLibs: false,
	})

	// Set API version global
	vm.SetGlobal("API_VERSION", lua.LNumber(1))

	e := &Engine{vm: vm, log: log.Named("lua")}
	e.Register("register_system", e.registerSystem)
	e.Register("log", e.luaLog)

	if scriptsDir == "" {
		return e, nil
	}
	for _, sub := range []string{"core", "systems"} {
		p := filepath.Join(scriptsDir, sub)
		if err := e.loadDir(p); err != nil {
			vm.Close()
			return nil, fmt.Errorf("load %s scripts: %w", sub, err)
		}
	}
	return e, nil
}

// loadDir loads all .lua files in a directory, in name order.
func (e *Engine) loadDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil // skip missing dirs
		}
		return err
	}
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".lua" {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		if err := e.vm.DoFile(path); err != nil {
			return fmt.Errorf("load %s: %w", path, err)
		}
		e.log.Debug("loaded lua script", zap.String("file", path))
	}
	return nil
}

// DoString runs a chunk of Lua source.
func (e *Engine) DoString(src string) error {
	if err := e.vm.DoString(src); err != nil {
		return fmt.Errorf("run lua chunk: %w", err)
	}
	return nil
}

// Register exposes a Go function to scripts as a global.
func (e *Engine) Register(name string, fn lua.LGFunction) {
	e.vm.SetGlobal(name, e.vm.NewFunction(fn))
}

// Definitions returns the registered system tables in registration order.
func (e *Engine) Definitions() []*Definition {
	return e.defs
}

func (e *Engine) Close() {
	e.vm.Close()
}

// register_system{name=..., phase="update"|"draw", priority=..., update=fn, ...}
func (e *Engine) registerSystem(L *lua.LState) int {
	t := L.CheckTable(1)

	name, ok := t.RawGetString("name").(lua.LString)
	if !ok || name == "" {
		L.ArgError(1, "system needs a name")
		return 0
	}
	if _, ok := t.RawGetString("update").(*lua.LFunction); !ok {
		L.ArgError(1, fmt.Sprintf("system %q needs an update function", string(name)))
		return 0
	}
	phase, err := parsePhase(t.RawGetString("phase"))
	if err != nil {
		L.ArgError(1, fmt.Sprintf("system %q: %v", string(name), err))
		return 0
	}
	priority, err := parsePriority(t.RawGetString("priority"))
	if err != nil {
		L.ArgError(1, fmt.Sprintf("system %q: %v", string(name), err))
		return 0
	}

	e.defs = append(e.defs, &Definition{
		Name:     string(name),
		Phase:    phase,
		Priority: priority,
		table:    t,
	})
	e.log.Debug("lua system registered",
		zap.String("system", string(name)),
		zap.Stringer("phase", phase),
		zap.Int("priority", priority),
	)
	return 0
}

func (e *Engine) luaLog(L *lua.LState) int {
	e.log.Info(L.CheckString(1))
	return 0
}

func parsePhase(v lua.LValue) (coresys.Phase, error) {
	if v == lua.LNil {
		return coresys.PhaseUpdate, nil
	}
	switch strings.ToLower(v.String()) {
	case "update":
		return coresys.PhaseUpdate, nil
	case "draw":
		return coresys.PhaseDraw, nil
	}
	return 0, fmt.Errorf("unknown phase %q", v.String())
}

func parsePriority(v lua.LValue) (int, error) {
	switch v := v.(type) {
	case *lua.LNilType:
		return coresys.PriorityAverage, nil
	case lua.LNumber:
		f := float64(v)
		if f != math.Trunc(f) {
			return 0, fmt.Errorf("priority %v is not an integer", f)
		}
		if f < math.MinInt || f >= math.MaxInt {
			return 0, fmt.Errorf("priority %v is out of range; use \"highest\" or \"lowest\"", f)
		}
		return int(f), nil
	case lua.LString:
		return coresys.ParsePriority(string(v))
	}
	return 0, fmt.Errorf("priority must be a name or a number, got %s", v.Type())
}
