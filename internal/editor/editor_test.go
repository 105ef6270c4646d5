package editor

import (
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/kenoss/command-chain/chain"
	"github.com/kenoss/command-chain/internal/editbuf"
)

func newTestEditor() *Editor {
	return New(editbuf.New(), slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestInsertTextMovesCursor(t *testing.T) {
	e := newTestEditor()
	if err := e.InsertText("abc"); err != nil {
		t.Fatal(err)
	}
	if e.CursorPosition() != 3 {
		t.Errorf("cursor = %d, want 3", e.CursorPosition())
	}

	e.SetCursorPosition(1)
	if err := e.InsertText("X"); err != nil {
		t.Fatal(err)
	}
	if e.Buffer().Text() != "aXbc" {
		t.Errorf("text = %q", e.Buffer().Text())
	}
	if e.CursorPosition() != 2 {
		t.Errorf("cursor = %d, want 2", e.CursorPosition())
	}
}

func TestSetCursorClamps(t *testing.T) {
	e := newTestEditor()
	if err := e.InsertText("abc"); err != nil {
		t.Fatal(err)
	}

	e.SetCursorPosition(-5)
	if e.CursorPosition() != 0 {
		t.Errorf("cursor = %d, want 0", e.CursorPosition())
	}
	e.SetCursorPosition(99)
	if e.CursorPosition() != 3 {
		t.Errorf("cursor = %d, want 3", e.CursorPosition())
	}
}

func TestDeleteRangeAdjustsCursor(t *testing.T) {
	tests := []struct {
		name       string
		cursor     chain.Position
		start, end chain.Position
		wantCursor chain.Position
	}{
		{"cursor after range", 5, 0, 2, 3},
		{"cursor inside range", 2, 1, 4, 1},
		{"cursor before range", 1, 2, 4, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newTestEditor()
			if err := e.InsertText("abcdef"); err != nil {
				t.Fatal(err)
			}
			e.SetCursorPosition(tt.cursor)
			if err := e.DeleteRange(tt.start, tt.end); err != nil {
				t.Fatal(err)
			}
			if e.CursorPosition() != tt.wantCursor {
				t.Errorf("cursor = %d, want %d", e.CursorPosition(), tt.wantCursor)
			}
		})
	}
}

func TestRepeatDetection(t *testing.T) {
	e := newTestEditor()

	e.BeginCommand("chain.pairs")
	if e.WasRepeated() {
		t.Error("first dispatch must not count as repeated")
	}

	e.BeginCommand("chain.pairs")
	if !e.WasRepeated() {
		t.Error("same identity twice must count as repeated")
	}

	e.BeginCommand(SelfInsertID)
	if e.WasRepeated() {
		t.Error("different identity must break repetition")
	}

	e.BeginCommand("chain.pairs")
	if e.WasRepeated() {
		t.Error("repetition must not survive an intervening command")
	}
}

func TestPrefixArgConsumedPerCommand(t *testing.T) {
	e := newTestEditor()
	if e.PrefixArg() != 1 {
		t.Errorf("default prefix = %d, want 1", e.PrefixArg())
	}

	e.AddPrefixDigit(4)
	e.AddPrefixDigit(2)
	e.BeginCommand("x")
	if e.PrefixArg() != 42 {
		t.Errorf("prefix = %d, want 42", e.PrefixArg())
	}

	e.BeginCommand("x")
	if e.PrefixArg() != 1 {
		t.Errorf("prefix must reset after one command, got %d", e.PrefixArg())
	}
}

func TestCommandRegistry(t *testing.T) {
	e := newTestEditor()
	e.RegisterCommand("insert-bang", func(h chain.Host) error {
		return h.InsertText("!")
	})

	cmd, err := e.Command("insert-bang")
	if err != nil {
		t.Fatal(err)
	}
	if err := e.InvokeInteractively(cmd); err != nil {
		t.Fatal(err)
	}
	if e.Buffer().Text() != "!" {
		t.Errorf("text = %q", e.Buffer().Text())
	}

	if _, err := e.Command("missing"); !errors.Is(err, ErrUnknownCommand) {
		t.Errorf("err = %v, want ErrUnknownCommand", err)
	}
}

func TestEditorDrivesChain(t *testing.T) {
	e := newTestEditor()
	d, err := chain.Build([]chain.Element{
		chain.Text("foo_|_bar"),
		chain.Text("baz"),
	}, chain.Options{Runtime: chain.NewRuntime()})
	if err != nil {
		t.Fatal(err)
	}

	invoke := func() {
		t.Helper()
		e.BeginCommand("chain.demo")
		if err := d.Invoke(e); err != nil {
			t.Fatal(err)
		}
	}

	invoke()
	if e.Buffer().Text() != "foobar" {
		t.Fatalf("text = %q, want %q", e.Buffer().Text(), "foobar")
	}
	if e.CursorPosition() != 3 {
		t.Errorf("cursor = %d, want 3", e.CursorPosition())
	}

	invoke()
	if e.Buffer().Text() != "baz" {
		t.Fatalf("text = %q, want %q", e.Buffer().Text(), "baz")
	}

	// Typing breaks the run; the next invocation restarts the chain.
	if err := e.SelfInsert('x'); err != nil {
		t.Fatal(err)
	}
	invoke()
	if e.Buffer().Text() != "bazxfoobar" {
		t.Errorf("text = %q, want %q", e.Buffer().Text(), "bazxfoobar")
	}
}
