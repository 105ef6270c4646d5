package main

import (
	"io"
	"log/slog"
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/kenoss/command-chain/internal/editbuf"
	"github.com/kenoss/command-chain/internal/editor"
)

func TestChordName(t *testing.T) {
	tests := []struct {
		name string
		ev   *tcell.EventKey
		want string
	}{
		{"plain rune", tcell.NewEventKey(tcell.KeyRune, 'a', tcell.ModNone), "a"},
		{"shifted rune", tcell.NewEventKey(tcell.KeyRune, 'A', tcell.ModShift), "A"},
		{"alt rune", tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModAlt), "M-x"},
		{"ctrl letter", tcell.NewEventKey(tcell.KeyCtrlC, 0, tcell.ModCtrl), "C-c"},
		{"function key", tcell.NewEventKey(tcell.KeyF5, 0, tcell.ModNone), "F5"},
		{"enter", tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone), "Enter"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := chordName(tt.ev); got != tt.want {
				t.Errorf("chordName = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCursorLineCol(t *testing.T) {
	ed := editor.New(editbuf.NewFromString("ab\ncdef\ng"), slog.New(slog.NewTextHandler(io.Discard, nil)))

	tests := []struct {
		name     string
		cursor   int64
		wantLine int
		wantCol  int
	}{
		{"start", 0, 0, 0},
		{"mid first line", 1, 0, 1},
		{"start of second line", 3, 1, 0},
		{"mid second line", 5, 1, 2},
		{"last line", 8, 2, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ed.SetCursorPosition(tt.cursor)
			line, col := cursorLineCol(ed)
			if line != tt.wantLine || col != tt.wantCol {
				t.Errorf("cursorLineCol = (%d, %d), want (%d, %d)", line, col, tt.wantLine, tt.wantCol)
			}
		})
	}
}
