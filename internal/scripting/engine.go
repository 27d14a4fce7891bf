package scripting

import (
	"fmt"
	"os"
	"path/filepath"

	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"
)

// Engine wraps a single gopher-lua VM hosting server-side extension scripts.
// Single-goroutine access only (game loop).
//
// Scripts receive compendium events through one narrow entry point: a global
// function `on_mobdex_event(event_id, payload)` where payload is a flat
// string table. The engine never dispatches reflectively into script
// runtimes; Go code calls exactly this one typed callback.
type Engine struct {
	vm  *lua.LState
	log *zap.Logger
}

// NewEngine creates a Lua engine and loads all scripts from the given directory.
func NewEngine(scriptsDir string, log *zap.Logger) (*Engine, error) {
	vm := lua.NewState(lua.Options{
		SkipOpenLibs: false,
	})

	// Set API version global
	vm.SetGlobal("API_VERSION", lua.LNumber(1))

	e := &Engine{vm: vm, log: log}
	if err := e.loadDir(scriptsDir); err != nil {
		vm.Close()
		return nil, fmt.Errorf("load scripts: %w", err)
	}
	return e, nil
}

// loadDir loads all .lua files in a directory. Missing dir is not an error.
func (e *Engine) loadDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
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

// Dispatch forwards one event to the script callback. A script error is
// logged and swallowed — extension scripts must never break the game loop.
func (e *Engine) Dispatch(eventID string, payload map[string]string) {
	fn := e.vm.GetGlobal("on_mobdex_event")
	if fn == lua.LNil {
		return // no script registered the callback
	}

	tbl := e.vm.NewTable()
	for k, v := range payload {
		tbl.RawSetString(k, lua.LString(v))
	}

	err := e.vm.CallByParam(lua.P{
		Fn:      fn,
		NRet:    0,
		Protect: true,
	}, lua.LString(eventID), tbl)
	if err != nil {
		e.log.Warn("lua event callback failed",
			zap.String("event", eventID),
			zap.Error(err),
		)
	}
}

func (e *Engine) Close() {
	e.vm.Close()
}
