package main

import (
	"fmt"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/gdamore/tcell/v2"

	"github.com/kenoss/command-chain/internal/editor"
	"github.com/kenoss/command-chain/internal/keymap"
)

// app owns the tcell screen and the event loop. Everything that touches
// the editor or the keymap runs on the loop goroutine.
type app struct {
	screen tcell.Screen
	ed     *editor.Editor
	km     *keymap.Keymap
	logger *slog.Logger
	status string
}

func newApp(ed *editor.Editor, km *keymap.Keymap, logger *slog.Logger) (*app, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("creating terminal: %w", err)
	}
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("initializing terminal: %w", err)
	}
	return &app{screen: screen, ed: ed, km: km, logger: logger}, nil
}

func (a *app) shutdown() {
	a.screen.Fini()
}

func (a *app) setKeymap(km *keymap.Keymap) {
	a.km = km
	a.status = "chains reloaded"
	a.logger.Info("chains reloaded", "bindings", len(km.Bindings()))
}

// postReload hands a closure to the event loop goroutine.
func (a *app) postReload(fn func()) {
	_ = a.screen.PostEvent(tcell.NewEventInterrupt(fn))
}

func (a *app) loop() error {
	for {
		a.render()

		switch ev := a.screen.PollEvent().(type) {
		case *tcell.EventResize:
			a.screen.Sync()
		case *tcell.EventInterrupt:
			if fn, ok := ev.Data().(func()); ok {
				fn()
			}
		case *tcell.EventKey:
			if ev.Key() == tcell.KeyCtrlQ {
				return nil
			}
			if err := a.handleKey(ev); err != nil {
				// Step errors surface as diagnostics; the session
				// clears itself on the next restart.
				a.ed.Warn("command-chain", err.Error())
				a.status = err.Error()
			}
		}
	}
}

func (a *app) handleKey(ev *tcell.EventKey) error {
	a.status = ""

	// Alt+digit accumulates the numeric prefix argument.
	if ev.Key() == tcell.KeyRune && ev.Modifiers()&tcell.ModAlt != 0 &&
		ev.Rune() >= '0' && ev.Rune() <= '9' {
		a.ed.AddPrefixDigit(int(ev.Rune() - '0'))
		return nil
	}
	if ev.Key() == tcell.KeyEscape {
		a.km.Reset()
		return nil
	}

	chord := chordName(ev)
	if chord == "" {
		return nil
	}
	res, err := a.km.Handle(a.ed, chord)
	if err != nil {
		return err
	}
	if res != keymap.ResultNone {
		if res == keymap.ResultPending {
			a.status = chord + " -"
		}
		return nil
	}

	switch {
	case ev.Key() == tcell.KeyRune && ev.Modifiers()&^tcell.ModShift == 0:
		return a.ed.SelfInsert(ev.Rune())
	case ev.Key() == tcell.KeyEnter:
		return a.ed.SelfInsert('\n')
	case ev.Key() == tcell.KeyBackspace || ev.Key() == tcell.KeyBackspace2:
		return a.deleteBackward()
	case ev.Key() == tcell.KeyLeft:
		a.moveCursor(-1)
	case ev.Key() == tcell.KeyRight:
		a.moveCursor(1)
	}
	return nil
}

func (a *app) deleteBackward() error {
	a.ed.BeginCommand("delete-backward")
	p := a.ed.CursorPosition()
	if p == 0 {
		return nil
	}
	_, size := utf8.DecodeLastRuneInString(a.ed.Buffer().Text()[:p])
	return a.ed.DeleteRange(p-int64(size), p)
}

func (a *app) moveCursor(dir int) {
	a.ed.BeginCommand("move-cursor")
	p := a.ed.CursorPosition()
	text := a.ed.Buffer().Text()
	if dir < 0 && p > 0 {
		_, size := utf8.DecodeLastRuneInString(text[:p])
		a.ed.SetCursorPosition(p - int64(size))
	} else if dir > 0 && p < int64(len(text)) {
		_, size := utf8.DecodeRuneInString(text[p:])
		a.ed.SetCursorPosition(p + int64(size))
	}
}

// chordName translates a key event into the chord vocabulary bindings use:
// plain runes as themselves, "M-x" for alt combinations, "C-x" for control
// keys, and tcell's names ("F5", "Enter") for everything else.
func chordName(ev *tcell.EventKey) string {
	if ev.Key() == tcell.KeyRune {
		name := string(ev.Rune())
		if ev.Modifiers()&tcell.ModAlt != 0 {
			name = "M-" + name
		}
		return name
	}
	name, ok := tcell.KeyNames[ev.Key()]
	if !ok {
		return ""
	}
	if rest, found := strings.CutPrefix(name, "Ctrl-"); found {
		return "C-" + strings.ToLower(rest)
	}
	return name
}

func (a *app) render() {
	s := a.screen
	s.Clear()
	w, h := s.Size()
	if h < 2 {
		s.Show()
		return
	}

	for y, line := range a.ed.Buffer().Lines() {
		if y >= h-1 {
			break
		}
		x := 0
		for _, r := range line {
			if x >= w {
				break
			}
			s.SetContent(x, y, r, nil, tcell.StyleDefault)
			x++
		}
	}

	line, col := cursorLineCol(a.ed)
	s.ShowCursor(col, line)

	status := a.status
	if status == "" {
		status = fmt.Sprintf("chainedit | %d bindings | C-q quits", len(a.km.Bindings()))
	}
	style := tcell.StyleDefault.Reverse(true)
	for x := 0; x < w; x++ {
		r := ' '
		if x < len(status) {
			r = rune(status[x])
		}
		s.SetContent(x, h-1, r, nil, style)
	}
	s.Show()
}

// cursorLineCol converts the editor's byte offset cursor into screen
// line/column coordinates.
func cursorLineCol(ed *editor.Editor) (int, int) {
	before := ed.Buffer().Text()[:ed.CursorPosition()]
	line := strings.Count(before, "\n")
	col := utf8.RuneCountInString(before[strings.LastIndexByte(before, '\n')+1:])
	return line, col
}
