package chain

// Position is a byte offset into the host's text buffer.
type Position = int64

// Command is a host-level user command. It is run through the host's
// interactive-invocation path, never called directly by the sequencer.
type Command func(Host) error

// Host is the narrow capability surface the sequencer consumes from the
// embedding editor. Implementations are expected to be driven from a single
// interactive command loop; none of the methods are called concurrently.
type Host interface {
	// CursorPosition returns the current cursor offset.
	CursorPosition() Position

	// SetCursorPosition moves the cursor to the given offset.
	SetCursorPosition(Position)

	// InsertText inserts text at the cursor, leaving the cursor at the
	// end of the inserted text.
	InsertText(text string) error

	// DeleteRange removes the half-open range [start, end).
	DeleteRange(start, end Position) error

	// InvokeInteractively runs a user command with the host's standard
	// interactive-invocation semantics.
	InvokeInteractively(cmd Command) error

	// WasRepeated reports whether the previous dispatched event was the
	// exact same command as the current one.
	WasRepeated() bool

	// PrefixArg returns the numeric prefix argument for the current
	// invocation, 1 when none was supplied.
	PrefixArg() int

	// Warn emits a non-fatal diagnostic.
	Warn(category, message string)
}
