package config

import (
	"errors"
	"fmt"

	"github.com/tidwall/gjson"

	"github.com/kenoss/command-chain/chain"
	"github.com/kenoss/command-chain/internal/keymap"
)

// Errors returned while parsing chain definitions.
var (
	ErrBadChainFile = errors.New("config: chains file is not valid JSON")
	ErrMissingKeys  = errors.New("config: chain definition has no \"keys\"")
	ErrBadElement   = errors.New("config: unrecognized element shape")
)

// Resolver looks up a named host command referenced by a {"command": name}
// element.
type Resolver func(name string) (chain.Command, error)

// ChainDef is one parsed chain definition.
type ChainDef struct {
	Keys           string
	Description    string
	Elements       []chain.Element
	PrefixFallback chain.Element
}

// ParseChains parses the JSON chain definitions document:
//
//	{"chains": [
//	  {"keys": "C-c d",
//	   "description": "date formats",
//	   "elements": ["2026-08-29", ["<", ">"], {"command": "insert-date"}],
//	   "prefix_fallback": "..."}
//	]}
//
// Element shapes mirror the chain element variants: a string is a Text, a
// two-string array is a Pair, any other array is a nested List, and objects
// select a variant explicitly ({"loop": true}, {"command": name},
// {"text": s}, {"before": b, "after": a}).
func ParseChains(data []byte, resolve Resolver) ([]ChainDef, error) {
	if !gjson.ValidBytes(data) {
		return nil, ErrBadChainFile
	}

	var defs []ChainDef
	var parseErr error

	gjson.ParseBytes(data).Get("chains").ForEach(func(_, def gjson.Result) bool {
		d, err := parseChainDef(def, resolve)
		if err != nil {
			parseErr = err
			return false
		}
		defs = append(defs, d)
		return true
	})
	if parseErr != nil {
		return nil, parseErr
	}
	return defs, nil
}

func parseChainDef(def gjson.Result, resolve Resolver) (ChainDef, error) {
	keys := def.Get("keys").String()
	if keys == "" {
		return ChainDef{}, fmt.Errorf("%w: %s", ErrMissingKeys, def.Raw)
	}

	d := ChainDef{
		Keys:        keys,
		Description: def.Get("description").String(),
	}

	var elemErr error
	def.Get("elements").ForEach(func(_, el gjson.Result) bool {
		e, err := parseElement(el, resolve)
		if err != nil {
			elemErr = fmt.Errorf("chain %q: %w", keys, err)
			return false
		}
		d.Elements = append(d.Elements, e)
		return true
	})
	if elemErr != nil {
		return ChainDef{}, elemErr
	}

	if fb := def.Get("prefix_fallback"); fb.Exists() {
		e, err := parseElement(fb, resolve)
		if err != nil {
			return ChainDef{}, fmt.Errorf("chain %q fallback: %w", keys, err)
		}
		d.PrefixFallback = e
	}
	return d, nil
}

// parseElement maps one JSON value onto a chain element variant.
func parseElement(el gjson.Result, resolve Resolver) (chain.Element, error) {
	switch {
	case el.Type == gjson.String:
		return chain.Text(el.String()), nil

	case el.IsArray():
		items := el.Array()
		if len(items) == 2 && items[0].Type == gjson.String && items[1].Type == gjson.String {
			return chain.Pair{Before: items[0].String(), After: items[1].String()}, nil
		}
		list := make(chain.List, 0, len(items))
		for _, item := range items {
			e, err := parseElement(item, resolve)
			if err != nil {
				return nil, err
			}
			list = append(list, e)
		}
		return list, nil

	case el.IsObject():
		return parseObjectElement(el, resolve)

	default:
		return nil, fmt.Errorf("%w: %s", ErrBadElement, el.Raw)
	}
}

func parseObjectElement(el gjson.Result, resolve Resolver) (chain.Element, error) {
	if el.Get("loop").Bool() {
		return chain.Loop, nil
	}
	if cmd := el.Get("command"); cmd.Exists() {
		if resolve == nil {
			return nil, fmt.Errorf("%w: no command resolver for %s", ErrBadElement, el.Raw)
		}
		c, err := resolve(cmd.String())
		if err != nil {
			return nil, err
		}
		return chain.Call(c), nil
	}
	if text := el.Get("text"); text.Exists() {
		return chain.Text(text.String()), nil
	}
	if el.Get("before").Exists() || el.Get("after").Exists() {
		return chain.Pair{
			Before: el.Get("before").String(),
			After:  el.Get("after").String(),
		}, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrBadElement, el.Raw)
}

// Install builds a dispatcher for every definition and binds it in the
// keymap. base supplies the marker, runtime, and warn hook shared by all
// chains.
func Install(defs []ChainDef, km *keymap.Keymap, base chain.Options) error {
	for _, d := range defs {
		opts := base
		opts.PrefixFallback = d.PrefixFallback
		disp, err := chain.Build(d.Elements, opts)
		if err != nil {
			return fmt.Errorf("building chain %q: %w", d.Keys, err)
		}
		if err := km.Bind(keymap.Binding{
			Keys:        d.Keys,
			Dispatcher:  disp,
			Description: d.Description,
		}); err != nil {
			return fmt.Errorf("binding chain %q: %w", d.Keys, err)
		}
	}
	return nil
}
