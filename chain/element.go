package chain

import "strings"

// Element is one step descriptor in a chain specification. The concrete
// types form a closed set: Text, Pair, Call, Do, List, and the Loop marker.
// Elements are normalized into Actions once, at build time.
type Element interface {
	isElement()
}

// Text is a literal to insert. It may contain one occurrence of the cursor
// marker token; the text before the marker goes before the cursor, the text
// after it goes after. Without a marker the cursor ends up after the text.
type Text string

func (Text) isElement() {}

// Pair is a literal split around the cursor: Before is inserted before the
// cursor, After immediately after it.
type Pair struct {
	Before string
	After  string
}

func (Pair) isElement() {}

// Call is a host command run through the host's interactive-invocation
// path. It produces no value and has no cleanup.
type Call Command

func (Call) isElement() {}

// Do is an explicit Action used verbatim as a chain step.
type Do Action

func (Do) isElement() {}

// List composes nested elements into a single step: member inserts run in
// declaration order, member cleanups in reverse declaration order, each
// cleanup receiving its own member's insert value.
type List []Element

func (List) isElement() {}

type loopMarker struct{}

func (loopMarker) isElement() {}

// Loop marks the loop point of a specification: the elements after it
// repeat forever instead of the chain terminating. It may appear at most
// once, and only at the top level of a specification.
var Loop Element = loopMarker{}

// normalize converts one specification element into an Action. It is
// recursive and eager; unrecognized shapes fail with a *ConfigError.
func normalize(el Element, marker string) (Action, error) {
	switch e := el.(type) {
	case nil:
		return Action{}, &ConfigError{Index: -1, Element: el, Err: ErrUnrecognizedElement}
	case Do:
		return Action(e), nil
	case Text:
		before, after, _ := strings.Cut(string(e), marker)
		return pairAction(before, after), nil
	case Pair:
		return pairAction(e.Before, e.After), nil
	case Call:
		return callAction(Command(e)), nil
	case List:
		return normalizeList(e, marker)
	case loopMarker:
		return Action{}, &ConfigError{Index: -1, Element: el, Err: ErrMisplacedLoop}
	default:
		return Action{}, &ConfigError{Index: -1, Element: el, Err: ErrUnrecognizedElement}
	}
}

// pairAction builds the insert/cleanup pair for literal text split around
// the cursor. Insert returns the inserted Region; cleanup deletes it.
func pairAction(before, after string) Action {
	return Action{
		Insert: func(h Host) (Value, error) {
			start := h.CursorPosition()
			if err := h.InsertText(before + after); err != nil {
				return Value{}, err
			}
			end := start + Position(len(before)+len(after))
			h.SetCursorPosition(start + Position(len(before)))
			return SomeValue(Region{Start: start, End: end}), nil
		},
		Cleanup: func(h Host, v Value) error {
			raw, ok := v.Get()
			if !ok {
				return nil
			}
			r, ok := raw.(Region)
			if !ok {
				return nil
			}
			return h.DeleteRange(r.Start, r.End)
		},
	}
}

// callAction wraps a host command as an insert-only step.
func callAction(cmd Command) Action {
	return Action{
		Insert: func(h Host) (Value, error) {
			if err := h.InvokeInteractively(cmd); err != nil {
				return Value{}, err
			}
			return Value{}, nil
		},
	}
}

// normalizeList normalizes every member and composes them into one Action.
func normalizeList(list List, marker string) (Action, error) {
	members := make([]Action, 0, len(list))
	for i, el := range list {
		a, err := normalize(el, marker)
		if err != nil {
			if ce, ok := err.(*ConfigError); ok && ce.Index < 0 {
				ce.Index = i
			}
			return Action{}, err
		}
		members = append(members, a)
	}
	return composeActions(members), nil
}

// composeActions builds the composite step. Inserts run in declaration
// order; cleanups run in reverse declaration order, each receiving the
// Value its own member's insert produced (undefined for members without an
// insert). Reverse cleanup order keeps position-dependent sub-insertions
// valid when undone.
func composeActions(members []Action) Action {
	return Action{
		Insert: func(h Host) (Value, error) {
			vals := make([]Value, len(members))
			for i, m := range members {
				v, err := m.runInsert(h)
				if err != nil {
					return Value{}, err
				}
				vals[i] = v
			}
			return SomeValue(vals), nil
		},
		Cleanup: func(h Host, v Value) error {
			var collected []Value
			if raw, ok := v.Get(); ok {
				collected, _ = raw.([]Value)
			}
			for i := len(members) - 1; i >= 0; i-- {
				var mv Value
				if i < len(collected) {
					mv = collected[i]
				}
				if err := members[i].runCleanup(h, mv); err != nil {
					return err
				}
			}
			return nil
		},
	}
}
