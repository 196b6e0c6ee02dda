package term

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/go-drift/reorder/pkg/dom"
)

// rowLocator maps mouse rows (Y) to labels of one list and X >= 100 to
// nothing.
func rowLocator(l *List) Locator {
	return func(msg tea.MouseMsg) *dom.Node {
		if msg.X >= 100 || msg.Y < 0 || msg.Y >= len(l.rows) {
			return nil
		}
		if msg.X == 0 {
			return l.rows[msg.Y].QuerySelector(dom.MustParseSelector(".handle"))
		}
		return l.rows[msg.Y].QuerySelector(labelSelector)
	}
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	nm, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return nm, cmd
}

func newModel(t *testing.T, opts ...ModelOption) Model {
	t.Helper()
	b := newBoard(t)
	todo, _ := b.List("todo")
	m := NewModel(b, append([]ModelOption{WithLocator(rowLocator(todo))}, opts...)...)
	t.Cleanup(m.Close)
	return m
}

func TestModel_MouseDrag(t *testing.T) {
	m := newModel(t)

	m, _ = update(t, m, tea.MouseMsg{X: 0, Y: 0, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	m, _ = update(t, m, tea.MouseMsg{X: 5, Y: 1, Action: tea.MouseActionMotion, Button: tea.MouseButtonLeft})
	if !strings.Contains(m.Status(), "dragging a") {
		t.Errorf("status = %q", m.Status())
	}
	m, _ = update(t, m, tea.MouseMsg{X: 5, Y: 2, Action: tea.MouseActionMotion, Button: tea.MouseButtonLeft})
	m, _ = update(t, m, tea.MouseMsg{X: 5, Y: 2, Action: tea.MouseActionRelease, Button: tea.MouseButtonLeft})

	todo, _ := m.Board().List("todo")
	if got := strings.Join(todo.Items(), ","); got != "b,c,a" {
		t.Errorf("items = %s", got)
	}
	if m.Status() != "moved a from 0 to 2" {
		t.Errorf("status = %q", m.Status())
	}
}

func TestModel_MouseDragAcrossLists(t *testing.T) {
	b := newBoard(t)
	todo, _ := b.List("todo")
	done, _ := b.List("done")
	// Columns below 50 are todo, the rest are done.
	locate := func(msg tea.MouseMsg) *dom.Node {
		if msg.X < 50 {
			return rowLocator(todo)(msg)
		}
		return rowLocator(done)(tea.MouseMsg{X: msg.X - 50, Y: msg.Y})
	}
	m := NewModel(b, WithLocator(locate))
	t.Cleanup(m.Close)

	m, _ = update(t, m, tea.MouseMsg{X: 0, Y: 0, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	m, _ = update(t, m, tea.MouseMsg{X: 5, Y: 0, Action: tea.MouseActionMotion, Button: tea.MouseButtonLeft})
	m, _ = update(t, m, tea.MouseMsg{X: 55, Y: 0, Action: tea.MouseActionMotion, Button: tea.MouseButtonLeft})
	m, _ = update(t, m, tea.MouseMsg{X: 55, Y: 0, Action: tea.MouseActionRelease, Button: tea.MouseButtonLeft})

	if got := strings.Join(done.Items(), ","); got != "a,x,y" {
		t.Errorf("done = %s", got)
	}
	if m.Status() != "moved a from todo/0 to done/0" {
		t.Errorf("status = %q", m.Status())
	}
}

func TestModel_RightButtonDoesNotArm(t *testing.T) {
	m := newModel(t)

	m, _ = update(t, m, tea.MouseMsg{X: 0, Y: 0, Action: tea.MouseActionPress, Button: tea.MouseButtonRight})
	m, _ = update(t, m, tea.MouseMsg{X: 5, Y: 1, Action: tea.MouseActionMotion, Button: tea.MouseButtonRight})
	if m.Board().Pointer().Dragging() {
		t.Error("right button should not start a drag")
	}
}

func TestModel_DropInPlace(t *testing.T) {
	m := newModel(t)

	m, _ = update(t, m, tea.MouseMsg{X: 0, Y: 1, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	m, _ = update(t, m, tea.MouseMsg{X: 5, Y: 1, Action: tea.MouseActionMotion, Button: tea.MouseButtonLeft})
	m, _ = update(t, m, tea.MouseMsg{X: 5, Y: 1, Action: tea.MouseActionRelease, Button: tea.MouseButtonLeft})
	if m.Status() != "dropped in place" {
		t.Errorf("status = %q", m.Status())
	}

	m, _ = update(t, m, tea.MouseMsg{X: 0, Y: 1, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	m, _ = update(t, m, tea.MouseMsg{X: 100, Y: 1, Action: tea.MouseActionMotion, Button: tea.MouseButtonLeft})
	m, _ = update(t, m, tea.MouseMsg{X: 100, Y: 1, Action: tea.MouseActionRelease, Button: tea.MouseButtonLeft})
	if m.Status() != "drop rejected" {
		t.Errorf("status = %q", m.Status())
	}
}

func TestModel_EscapeCancels(t *testing.T) {
	m := newModel(t)

	m, _ = update(t, m, tea.MouseMsg{X: 0, Y: 0, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	m, _ = update(t, m, tea.MouseMsg{X: 5, Y: 2, Action: tea.MouseActionMotion, Button: tea.MouseButtonLeft})
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})

	if m.Board().Pointer().Dragging() {
		t.Error("escape should cancel the drag")
	}
	if m.Status() != "drag cancelled" {
		t.Errorf("status = %q", m.Status())
	}
	if len(m.Board().Moves()) != 0 {
		t.Error("cancel should not move")
	}
}

func TestModel_Copy(t *testing.T) {
	var copied string
	m := newModel(t, WithClipboard(func(s string) error {
		copied = s
		return nil
	}))

	m, _ = update(t, m, runes("y"))
	if copied != m.Board().String() {
		t.Errorf("copied %q", copied)
	}
	if m.Status() != "order copied to clipboard" {
		t.Errorf("status = %q", m.Status())
	}

	m = newModel(t, WithClipboard(func(string) error { return errors.New("no display") }))
	m, _ = update(t, m, runes("y"))
	if !strings.Contains(m.Status(), "no display") {
		t.Errorf("status = %q", m.Status())
	}
}

func TestModel_QuitAndHelp(t *testing.T) {
	m := newModel(t)

	_, cmd := update(t, m, runes("q"))
	if cmd == nil {
		t.Fatal("q should return a command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q should quit")
	}

	m, _ = update(t, m, runes("?"))
	if !m.help.ShowAll {
		t.Error("? should expand help")
	}
	m, _ = update(t, m, runes("?"))
	if m.help.ShowAll {
		t.Error("? should collapse help")
	}
}

func TestModel_View(t *testing.T) {
	m := newModel(t, WithTitle("Sprint board"))
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})

	view := m.View()
	for _, want := range []string{"Sprint board", "todo (tasks)", "apple", HandleGlyph} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}
