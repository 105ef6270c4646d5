package chain

import "fmt"

// Value is the result of an Action's insert phase, threaded to the same
// Action's cleanup phase on the next step. The zero Value is undefined: it
// records that no insert ran, as opposed to an insert that produced nil.
type Value struct {
	v  any
	ok bool
}

// SomeValue wraps v as a defined Value. SomeValue(nil) is defined and
// distinct from the zero Value.
func SomeValue(v any) Value {
	return Value{v: v, ok: true}
}

// Defined reports whether an insert actually produced this Value.
func (v Value) Defined() bool {
	return v.ok
}

// Get returns the wrapped value and whether it is defined.
func (v Value) Get() (any, bool) {
	return v.v, v.ok
}

// String returns a human-readable representation of the value.
func (v Value) String() string {
	if !v.ok {
		return "Value(undefined)"
	}
	return fmt.Sprintf("Value(%v)", v.v)
}

// Region is the half-open buffer range [Start, End) produced by
// text-insertion actions and consumed by their cleanups.
type Region struct {
	Start Position
	End   Position
}

// Action pairs an insertion operation with the cleanup that undoes it.
// Either field may be nil; the zero Action is the no-op sentinel that
// begins (and, for finite chains, ends) every chain.
type Action struct {
	// Insert applies the step's visual effect and returns a Value for its
	// own Cleanup. A nil Insert produces the undefined Value.
	Insert func(Host) (Value, error)

	// Cleanup undoes the effect of the matching Insert. It receives
	// exactly the Value that Insert returned, or the undefined Value if
	// Insert was nil.
	Cleanup func(Host, Value) error
}

// IsZero reports whether the action is the no-op sentinel.
func (a Action) IsZero() bool {
	return a.Insert == nil && a.Cleanup == nil
}

// runCleanup invokes the action's cleanup with the stored value, if any.
func (a Action) runCleanup(h Host, v Value) error {
	if a.Cleanup == nil {
		return nil
	}
	return a.Cleanup(h, v)
}

// runInsert invokes the action's insert, returning the undefined Value for
// a nil insert.
func (a Action) runInsert(h Host) (Value, error) {
	if a.Insert == nil {
		return Value{}, nil
	}
	return a.Insert(h)
}
