package scripting

import (
	"fmt"
	"math"
	"os"
	"path/filepath"

	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"
)

// Engine wraps a single gopher-lua VM for gameplay tuning.
// Single-goroutine access only (game loop).
type Engine struct {
	vm  *lua.LState
	log *zap.Logger

	missing map[string]bool
}

// NewEngine creates a Lua engine and loads all scripts from the given directory.
func NewEngine(scriptsDir string, log *zap.Logger) (*Engine, error) {
	vm := lua.NewState(lua.Options{
		SkipOpenLibs: false,
	})

	vm.SetGlobal("API_VERSION", lua.LNumber(1))

	e := &Engine{vm: vm, log: log, missing: make(map[string]bool)}

	// core first so feature scripts can override its functions
	for _, sub := range []string{"core", "spawn", "score"} {
		p := filepath.Join(scriptsDir, sub)
		if err := e.loadDir(p); err != nil {
			vm.Close()
			return nil, fmt.Errorf("load %s scripts: %w", sub, err)
		}
	}

	return e, nil
}

// loadDir loads all .lua files in a directory.
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

// SpawnContext holds the inputs for tuning a freshly spawned object.
// Rolls are uniform in [0,1); Sign is +1 or -1.
type SpawnContext struct {
	Elapsed float64 // seconds since the run started
	Radius  float64
	Roll1   float64
	Roll2   float64
	Sign    float64
}

// SpawnResult is the motion given to a spawned object.
type SpawnResult struct {
	FallRate float64
	SpinRate float64
}

// ScoreContext describes a catch about to be scored.
type ScoreContext struct {
	Streak  int
	Catches int
	Color   string
}

// Defaults is the built-in tuning used when no script provides a function.
type Defaults struct{}

// CalcSpawn falls at 60-120 units/s and spins at 0.25π-1.5π rad/s.
func (Defaults) CalcSpawn(ctx SpawnContext) SpawnResult {
	sign := ctx.Sign
	if sign == 0 {
		sign = 1
	}
	return SpawnResult{
		FallRate: 60 + 60*ctx.Roll1,
		SpinRate: sign * (0.25*math.Pi + 1.25*math.Pi*ctx.Roll2),
	}
}

// CalcScore awards 10 points plus 2 per catch already in the streak.
func (Defaults) CalcScore(ctx ScoreContext) int {
	return 10 + 2*ctx.Streak
}

// CalcSpawn calls the Lua calc_spawn function.
func (e *Engine) CalcSpawn(ctx SpawnContext) SpawnResult {
	fn := e.lookup("calc_spawn")
	if fn == lua.LNil {
		return Defaults{}.CalcSpawn(ctx)
	}

	t := e.vm.NewTable()
	t.RawSetString("elapsed", lua.LNumber(ctx.Elapsed))
	t.RawSetString("radius", lua.LNumber(ctx.Radius))
	t.RawSetString("roll1", lua.LNumber(ctx.Roll1))
	t.RawSetString("roll2", lua.LNumber(ctx.Roll2))
	t.RawSetString("sign", lua.LNumber(ctx.Sign))

	if err := e.vm.CallByParam(lua.P{
		Fn:      fn,
		NRet:    1,
		Protect: true,
	}, t); err != nil {
		e.log.Error("lua calc_spawn error", zap.Error(err))
		return Defaults{}.CalcSpawn(ctx)
	}

	result := e.vm.Get(-1)
	e.vm.Pop(1)

	rt, ok := result.(*lua.LTable)
	if !ok {
		e.log.Error("lua calc_spawn returned non-table")
		return Defaults{}.CalcSpawn(ctx)
	}

	return SpawnResult{
		FallRate: lFloat(rt, "fall_rate"),
		SpinRate: lFloat(rt, "spin_rate"),
	}
}

// CalcScore calls the Lua calc_score function.
func (e *Engine) CalcScore(ctx ScoreContext) int {
	fn := e.lookup("calc_score")
	if fn == lua.LNil {
		return Defaults{}.CalcScore(ctx)
	}

	t := e.vm.NewTable()
	t.RawSetString("streak", lua.LNumber(ctx.Streak))
	t.RawSetString("catches", lua.LNumber(ctx.Catches))
	t.RawSetString("color", lua.LString(ctx.Color))

	if err := e.vm.CallByParam(lua.P{
		Fn:      fn,
		NRet:    1,
		Protect: true,
	}, t); err != nil {
		e.log.Error("lua calc_score error", zap.Error(err))
		return Defaults{}.CalcScore(ctx)
	}

	result := e.vm.Get(-1)
	e.vm.Pop(1)
	if result.Type() != lua.LTNumber {
		e.log.Error("lua calc_score returned non-number", zap.String("type", result.Type().String()))
		return Defaults{}.CalcScore(ctx)
	}
	return int(lua.LVAsNumber(result))
}

// lookup returns the global function name, or LNil after logging once.
func (e *Engine) lookup(name string) lua.LValue {
	fn := e.vm.GetGlobal(name)
	if fn.Type() == lua.LTFunction {
		return fn
	}
	if !e.missing[name] {
		e.missing[name] = true
		e.log.Warn("lua function not found, using built-in", zap.String("name", name))
	}
	return lua.LNil
}

// --- Lua helpers ---

// lFloat reads a number field from a Lua table.
func lFloat(t *lua.LTable, key string) float64 {
	return float64(lua.LVAsNumber(t.RawGetString(key)))
}

// Close shuts down the Lua VM.
func (e *Engine) Close() {
	e.vm.Close()
}
