package chain

import (
	"fmt"
	"slices"
)

// fakeHost is an in-memory Host for tests: a flat byte buffer, a cursor,
// and scripted repetition/prefix signals.
type fakeHost struct {
	buf      []byte
	cursor   Position
	repeated bool
	prefix   int
	warnings []string
}

func newFakeHost() *fakeHost {
	return &fakeHost{prefix: 1}
}

func (f *fakeHost) CursorPosition() Position {
	return f.cursor
}

func (f *fakeHost) SetCursorPosition(p Position) {
	if p < 0 {
		p = 0
	}
	if p > Position(len(f.buf)) {
		p = Position(len(f.buf))
	}
	f.cursor = p
}

func (f *fakeHost) InsertText(text string) error {
	at := int(f.cursor)
	if at < 0 || at > len(f.buf) {
		return fmt.Errorf("insert offset %d out of range", at)
	}
	f.buf = slices.Insert(f.buf, at, []byte(text)...)
	f.cursor += Position(len(text))
	return nil
}

func (f *fakeHost) DeleteRange(start, end Position) error {
	if start < 0 || start > end || end > Position(len(f.buf)) {
		return fmt.Errorf("delete range [%d, %d) out of range", start, end)
	}
	f.buf = slices.Delete(f.buf, int(start), int(end))
	if f.cursor > Position(len(f.buf)) {
		f.cursor = Position(len(f.buf))
	}
	return nil
}

func (f *fakeHost) InvokeInteractively(cmd Command) error {
	return cmd(f)
}

func (f *fakeHost) WasRepeated() bool {
	return f.repeated
}

func (f *fakeHost) PrefixArg() int {
	return f.prefix
}

func (f *fakeHost) Warn(category, message string) {
	f.warnings = append(f.warnings, category+": "+message)
}

func (f *fakeHost) Text() string {
	return string(f.buf)
}

// press invokes the dispatcher as one key press, marking every press after
// the first as an immediate repetition.
func press(d *Dispatcher, h *fakeHost, times int) error {
	for i := 0; i < times; i++ {
		if err := d.Invoke(h); err != nil {
			return err
		}
		h.repeated = true
	}
	return nil
}
