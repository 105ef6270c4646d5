package editor

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/kenoss/command-chain/chain"
	"github.com/kenoss/command-chain/internal/editbuf"
)

// Errors returned by the editor host.
var (
	ErrUnknownCommand = errors.New("editor: unknown command")
	ErrNilCommand     = errors.New("editor: nil command")
)

// SelfInsertID is the command identity stamped when plain text is typed.
// Typing between chain invocations breaks repetition detection.
const SelfInsertID = "self-insert"

// Editor is the host adapter driven by the interactive key loop. It owns
// the buffer, the cursor, and the per-invocation signals the sequencer
// consumes. Not safe for concurrent use; the key loop is the only caller.
type Editor struct {
	buf    *editbuf.Buffer
	cursor chain.Position
	logger *slog.Logger

	commands map[string]chain.Command

	lastCmd       string
	repeated      bool
	prefix        int
	pendingPrefix int
}

// New creates an editor over the given buffer. A nil logger falls back to
// slog.Default.
func New(buf *editbuf.Buffer, logger *slog.Logger) *Editor {
	if buf == nil {
		buf = editbuf.New()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Editor{
		buf:      buf,
		logger:   logger,
		commands: make(map[string]chain.Command),
	}
}

// Buffer returns the underlying text buffer.
func (e *Editor) Buffer() *editbuf.Buffer {
	return e.buf
}

// chain.Host implementation

// CursorPosition returns the current cursor offset.
func (e *Editor) CursorPosition() chain.Position {
	return e.cursor
}

// SetCursorPosition moves the cursor, clamped to the buffer.
func (e *Editor) SetCursorPosition(p chain.Position) {
	if p < 0 {
		p = 0
	}
	if max := e.buf.Len(); p > max {
		p = max
	}
	e.cursor = p
}

// InsertText inserts text at the cursor and leaves the cursor at its end.
func (e *Editor) InsertText(text string) error {
	end, err := e.buf.Insert(e.cursor, text)
	if err != nil {
		return fmt.Errorf("inserting at %d: %w", e.cursor, err)
	}
	e.cursor = end
	return nil
}

// DeleteRange removes [start, end), adjusting the cursor.
func (e *Editor) DeleteRange(start, end chain.Position) error {
	if err := e.buf.Delete(start, end); err != nil {
		return fmt.Errorf("deleting [%d, %d): %w", start, end, err)
	}
	switch {
	case e.cursor >= end:
		e.cursor -= end - start
	case e.cursor > start:
		e.cursor = start
	}
	return nil
}

// InvokeInteractively runs a user command against this editor.
func (e *Editor) InvokeInteractively(cmd chain.Command) error {
	if cmd == nil {
		return ErrNilCommand
	}
	return cmd(e)
}

// WasRepeated reports whether the current command identity equals the
// previous one.
func (e *Editor) WasRepeated() bool {
	return e.repeated
}

// PrefixArg returns the numeric prefix argument for the current command,
// 1 when none was supplied.
func (e *Editor) PrefixArg() int {
	if e.prefix == 0 {
		return 1
	}
	return e.prefix
}

// Warn emits a non-fatal diagnostic through the editor's logger.
func (e *Editor) Warn(category, message string) {
	e.logger.Warn(message, "category", category)
}

// Command dispatch signals

// BeginCommand stamps the identity of the command about to run. Repetition
// holds when two consecutive stamps carry the same identity. Any pending
// prefix argument is consumed by this command.
func (e *Editor) BeginCommand(id string) {
	e.repeated = id != "" && id == e.lastCmd
	e.lastCmd = id
	e.prefix = e.pendingPrefix
	e.pendingPrefix = 0
}

// AddPrefixDigit accumulates one digit of the numeric prefix argument for
// the next command.
func (e *Editor) AddPrefixDigit(d int) {
	if d < 0 || d > 9 {
		return
	}
	e.pendingPrefix = e.pendingPrefix*10 + d
}

// SelfInsert types one rune at the cursor as its own command, which breaks
// chain repetition the same way it would in a real editor.
func (e *Editor) SelfInsert(r rune) error {
	e.BeginCommand(SelfInsertID)
	return e.InsertText(string(r))
}

// Named command registry

// RegisterCommand makes cmd available to config and script layers under
// the given name.
func (e *Editor) RegisterCommand(name string, cmd chain.Command) {
	e.commands[name] = cmd
}

// Command looks up a registered command by name.
func (e *Editor) Command(name string) (chain.Command, error) {
	cmd, ok := e.commands[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCommand, name)
	}
	return cmd, nil
}
