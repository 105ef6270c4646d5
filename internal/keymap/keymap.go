// Package keymap binds built chain dispatchers to key chord sequences and
// routes incoming chords to them, stamping the command identity the editor
// uses for repeat detection.
package keymap

import (
	"errors"
	"fmt"
	"strings"

	"github.com/kenoss/command-chain/chain"
	"github.com/kenoss/command-chain/internal/editor"
)

// Errors returned by keymap operations.
var (
	ErrEmptyKeys        = errors.New("keymap: empty key sequence")
	ErrDuplicateBinding = errors.New("keymap: key sequence already bound")
	ErrPrefixConflict   = errors.New("keymap: key sequence conflicts with a longer binding")
)

// Binding maps one key chord sequence to a chain dispatcher.
type Binding struct {
	// Keys is the space-separated chord sequence, e.g. "C-c d" or "F5".
	Keys string

	// ID is the command identity stamped on each dispatch. Consecutive
	// dispatches with equal identities count as immediate repetitions.
	// Empty means the identity is derived from Keys.
	ID string

	// Dispatcher is the built chain to invoke.
	Dispatcher *chain.Dispatcher

	// Description documents the binding.
	Description string
}

// Result reports what Handle did with a chord.
type Result int

const (
	// ResultNone means the chord matched nothing; any pending sequence
	// was discarded.
	ResultNone Result = iota

	// ResultPending means the chord extends a multi-chord sequence and
	// more input is needed.
	ResultPending

	// ResultDispatched means a binding fired.
	ResultDispatched
)

// Keymap routes chords to bindings. Multi-chord sequences are matched
// incrementally with pending state, longest sequence first.
type Keymap struct {
	bindings map[string]Binding
	prefixes map[string]int // proper prefix -> number of bindings under it
	pending  []string
}

// New creates an empty keymap.
func New() *Keymap {
	return &Keymap{
		bindings: make(map[string]Binding),
		prefixes: make(map[string]int),
	}
}

// Bind registers a binding. A sequence may not be bound twice, nor may it
// be a proper prefix of an existing binding (or vice versa).
func (k *Keymap) Bind(b Binding) error {
	keys := normalizeKeys(b.Keys)
	if keys == "" {
		return ErrEmptyKeys
	}
	if _, ok := k.bindings[keys]; ok {
		return fmt.Errorf("%w: %q", ErrDuplicateBinding, keys)
	}
	if k.prefixes[keys] > 0 {
		return fmt.Errorf("%w: %q", ErrPrefixConflict, keys)
	}

	chords := strings.Fields(keys)
	for i := 1; i < len(chords); i++ {
		prefix := strings.Join(chords[:i], " ")
		if _, ok := k.bindings[prefix]; ok {
			return fmt.Errorf("%w: %q", ErrPrefixConflict, keys)
		}
	}

	if b.ID == "" {
		b.ID = "chain." + keys
	}
	b.Keys = keys
	k.bindings[keys] = b
	for i := 1; i < len(chords); i++ {
		k.prefixes[strings.Join(chords[:i], " ")]++
	}
	return nil
}

// Bindings returns every registered binding.
func (k *Keymap) Bindings() []Binding {
	out := make([]Binding, 0, len(k.bindings))
	for _, b := range k.bindings {
		out = append(out, b)
	}
	return out
}

// Handle feeds one chord into the keymap. When a full sequence matches, the
// bound dispatcher is invoked against ed with its command identity stamped.
func (k *Keymap) Handle(ed *editor.Editor, chord string) (Result, error) {
	seq := append(k.pending, chord)
	full := strings.Join(seq, " ")

	if b, ok := k.bindings[full]; ok {
		k.pending = nil
		ed.BeginCommand(b.ID)
		return ResultDispatched, b.Dispatcher.Invoke(ed)
	}
	if k.prefixes[full] > 0 {
		k.pending = seq
		return ResultPending, nil
	}
	k.pending = nil
	return ResultNone, nil
}

// Pending reports whether the keymap is mid-sequence.
func (k *Keymap) Pending() bool {
	return len(k.pending) > 0
}

// Reset discards any pending sequence state.
func (k *Keymap) Reset() {
	k.pending = nil
}

func normalizeKeys(keys string) string {
	return strings.Join(strings.Fields(keys), " ")
}
