package script

import (
	"errors"
	"fmt"

	lua "github.com/yuin/gopher-lua"

	"github.com/kenoss/command-chain/chain"
	"github.com/kenoss/command-chain/internal/editor"
	"github.com/kenoss/command-chain/internal/keymap"
)

// Errors returned by the script engine.
var (
	ErrBadDefinition = errors.New("script: chain.define expects a table with keys and elements")
	ErrBadElement    = errors.New("script: unrecognized element shape")
)

// Engine hosts one Lua state that can define and bind chains.
type Engine struct {
	L    *lua.LState
	ed   *editor.Editor
	km   *keymap.Keymap
	opts chain.Options

	loop *lua.LUserData
}

// NewEngine creates a Lua engine bound to the given editor and keymap.
// base supplies the marker, runtime, and warn hook for every chain the
// scripts define.
func NewEngine(ed *editor.Editor, km *keymap.Keymap, base chain.Options) *Engine {
	if base.Runtime == nil {
		base.Runtime = chain.DefaultRuntime()
	}
	e := &Engine{
		L:    lua.NewState(),
		ed:   ed,
		km:   km,
		opts: base,
	}
	e.loop = e.L.NewUserData()
	e.registerChainModule()
	e.registerEditorModule()
	return e
}

// Close releases the Lua state.
func (e *Engine) Close() {
	e.L.Close()
}

// LoadFile runs a chain definition script from disk.
func (e *Engine) LoadFile(path string) error {
	if err := e.L.DoFile(path); err != nil {
		return fmt.Errorf("script %s: %w", path, err)
	}
	return nil
}

// LoadString runs a chain definition script from source text.
func (e *Engine) LoadString(src string) error {
	if err := e.L.DoString(src); err != nil {
		return fmt.Errorf("script: %w", err)
	}
	return nil
}

func (e *Engine) registerChainModule() {
	mod := e.L.SetFuncs(e.L.NewTable(), map[string]lua.LGFunction{
		"define": e.luaDefine,
		"terminate": func(L *lua.LState) int {
			e.opts.Runtime.Terminate()
			return 0
		},
		"disable_point_recovery": func(L *lua.LState) int {
			e.opts.Runtime.DisablePointRecovery()
			return 0
		},
	})
	mod.RawSetString("loop", e.loop)
	e.L.SetGlobal("chain", mod)
}

func (e *Engine) registerEditorModule() {
	mod := e.L.SetFuncs(e.L.NewTable(), map[string]lua.LGFunction{
		"insert": func(L *lua.LState) int {
			if err := e.ed.InsertText(L.CheckString(1)); err != nil {
				L.RaiseError("insert: %v", err)
			}
			return 0
		},
		"delete_range": func(L *lua.LState) int {
			start := chain.Position(L.CheckInt64(1))
			end := chain.Position(L.CheckInt64(2))
			if err := e.ed.DeleteRange(start, end); err != nil {
				L.RaiseError("delete_range: %v", err)
			}
			return 0
		},
		"cursor": func(L *lua.LState) int {
			L.Push(lua.LNumber(e.ed.CursorPosition()))
			return 1
		},
		"set_cursor": func(L *lua.LState) int {
			e.ed.SetCursorPosition(chain.Position(L.CheckInt64(1)))
			return 0
		},
		"text": func(L *lua.LState) int {
			L.Push(lua.LString(e.ed.Buffer().Text()))
			return 1
		},
		"warn": func(L *lua.LState) int {
			e.ed.Warn(L.CheckString(1), L.CheckString(2))
			return 0
		},
	})
	e.L.SetGlobal("editor", mod)
}

// luaDefine implements chain.define{keys=..., elements={...}, ...}.
func (e *Engine) luaDefine(L *lua.LState) int {
	tbl := L.CheckTable(1)

	keys, ok := tbl.RawGetString("keys").(lua.LString)
	if !ok || keys == "" {
		L.RaiseError("%v", ErrBadDefinition)
		return 0
	}

	elemTbl, ok := tbl.RawGetString("elements").(*lua.LTable)
	if !ok {
		L.RaiseError("%v", ErrBadDefinition)
		return 0
	}

	var spec []chain.Element
	var convErr error
	elemTbl.ForEach(func(_, lv lua.LValue) {
		if convErr != nil {
			return
		}
		el, err := e.toElement(lv)
		if err != nil {
			convErr = err
			return
		}
		spec = append(spec, el)
	})
	if convErr != nil {
		L.RaiseError("chain %q: %v", string(keys), convErr)
		return 0
	}

	opts := e.opts
	if fb := tbl.RawGetString("prefix_fallback"); fb != lua.LNil {
		el, err := e.toElement(fb)
		if err != nil {
			L.RaiseError("chain %q fallback: %v", string(keys), err)
			return 0
		}
		opts.PrefixFallback = el
	}

	d, err := chain.Build(spec, opts)
	if err != nil {
		L.RaiseError("chain %q: %v", string(keys), err)
		return 0
	}

	desc, _ := tbl.RawGetString("description").(lua.LString)
	if err := e.km.Bind(keymap.Binding{
		Keys:        string(keys),
		Dispatcher:  d,
		Description: string(desc),
	}); err != nil {
		L.RaiseError("chain %q: %v", string(keys), err)
		return 0
	}
	return 0
}

// toElement maps one Lua value onto a chain element variant, mirroring the
// JSON grammar: strings are Texts, two-string tables are Pairs, other
// tables are nested Lists, functions become host commands, and chain.loop
// is the Loop marker.
func (e *Engine) toElement(lv lua.LValue) (chain.Element, error) {
	switch v := lv.(type) {
	case lua.LString:
		return chain.Text(v), nil

	case *lua.LFunction:
		fn := v
		return chain.Call(func(chain.Host) error {
			return e.call(fn)
		}), nil

	case *lua.LUserData:
		if v == e.loop {
			return chain.Loop, nil
		}
		return nil, fmt.Errorf("%w: userdata", ErrBadElement)

	case *lua.LTable:
		var items []lua.LValue
		v.ForEach(func(_, item lua.LValue) {
			items = append(items, item)
		})
		if len(items) == 2 {
			before, bok := items[0].(lua.LString)
			after, aok := items[1].(lua.LString)
			if bok && aok {
				return chain.Pair{Before: string(before), After: string(after)}, nil
			}
		}
		list := make(chain.List, 0, len(items))
		for _, item := range items {
			el, err := e.toElement(item)
			if err != nil {
				return nil, err
			}
			list = append(list, el)
		}
		return list, nil

	default:
		return nil, fmt.Errorf("%w: %s", ErrBadElement, lv.Type())
	}
}

// call runs a user-supplied Lua step function, protected.
func (e *Engine) call(fn *lua.LFunction) error {
	return e.L.CallByParam(lua.P{
		Fn:      fn,
		NRet:    0,
		Protect: true,
	})
}
