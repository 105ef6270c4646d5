// Package chain implements the command-chain sequencer: one key binding
// driving an ordered sequence of editing actions, where each repeated
// invocation of the binding undoes the previous step's effect, restores the
// cursor, and applies the next step.
//
// The package provides:
//
//   - Element: declarative step descriptors (literal text, before/after
//     pairs, host commands, explicit actions, nested lists, a loop marker)
//   - Build: compiles a slice of Elements into a Dispatcher
//   - Dispatcher.Invoke: the per-keystroke state machine deciding whether
//     to continue the running sequence or start a fresh one
//   - Runtime: shared session control (Terminate, DisablePointRecovery)
//
// A chain is compiled once, at key-binding time. Malformed specifications
// fail there with a *ConfigError; a well-formed chain never fails from its
// own logic during invocation (errors from user-supplied actions and from
// the host propagate untranslated).
//
// Basic usage:
//
//	d, err := chain.Build([]chain.Element{
//		chain.Text("foo_|_bar"),
//		chain.Pair{Before: "(", After: ")"},
//	}, chain.Options{})
//	if err != nil { ... }
//	// bind d.Invoke(host) to a key
//
// Execution Model:
//
// Dispatchers are driven by the host's interactive command loop: one
// invocation at a time, on a single goroutine. The Runtime's cursor anchor
// is shared by every dispatcher built against it, which is safe because
// only one chain can be actively repeating at a time. The package performs
// no locking of its own.
package chain
