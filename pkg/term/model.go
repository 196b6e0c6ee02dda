package term

import (
	"context"
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"

	"github.com/go-drift/reorder/pkg/dom"
)

var labelSelector = dom.MustParseSelector(".label")

// Locator maps a mouse event to the tree node under the pointer, or nil.
type Locator func(tea.MouseMsg) *dom.Node

// Model is the bubbletea model of a board. The terminal is the platform:
// mouse input is hit-tested against zones marked in the last frame and fed
// to the board's [Pointer].
type Model struct {
	board  *Board
	zones  *zone.Manager
	locate Locator
	keys   KeyMap
	help   help.Model
	copy   func(string) error

	title  string
	status string
	width  int
	height int
}

// ModelOption configures NewModel.
type ModelOption func(*Model)

// WithTitle sets the heading.
func WithTitle(title string) ModelOption {
	return func(m *Model) { m.title = title }
}

// WithClipboard replaces the clipboard writer.
func WithClipboard(write func(string) error) ModelOption {
	return func(m *Model) { m.copy = write }
}

// WithLocator replaces zone hit-testing.
func WithLocator(locate Locator) ModelOption {
	return func(m *Model) { m.locate = locate }
}

// WithKeyMap replaces the key bindings.
func WithKeyMap(keys KeyMap) ModelOption {
	return func(m *Model) { m.keys = keys }
}

// NewModel returns a model for board.
func NewModel(board *Board, opts ...ModelOption) Model {
	m := Model{
		board: board,
		zones: zone.New(),
		keys:  DefaultKeyMap,
		help:  help.New(),
		copy:  clipboard.WriteAll,
		title: "reorder",
	}
	m.locate = m.zoneHit
	for _, opt := range opts {
		opt(&m)
	}
	return m
}

// Board returns the hosted board.
func (m Model) Board() *Board { return m.board }

// Status returns the status line text.
func (m Model) Status() string { return m.status }

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.MouseMsg:
		m.handleMouse(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Cancel):
		if m.board.Pointer().Cancel() {
			m.status = "drag cancelled"
		}
	case key.Matches(msg, m.keys.Copy):
		if err := m.copy(m.board.String()); err != nil {
			m.status = fmt.Sprintf("couldn't write to clipboard: %v", err)
		} else {
			m.status = "order copied to clipboard"
		}
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	}
	return m, nil
}

func (m *Model) handleMouse(msg tea.MouseMsg) {
	p := m.board.Pointer()
	target := m.locate(msg)
	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button == tea.MouseButtonLeft {
			p.Press(target)
		}
	case tea.MouseActionMotion:
		p.Move(target)
		if src := p.Source(); src != nil {
			m.status = "dragging " + labelOf(src)
		}
	case tea.MouseActionRelease:
		if !p.Dragging() {
			p.Release(target)
			return
		}
		before := len(m.board.Moves())
		dropped := p.Release(target)
		switch {
		case len(m.board.Moves()) > before:
			mv := m.board.Moves()[before]
			if mv.From == mv.To {
				m.status = fmt.Sprintf("moved %s from %d to %d", mv.Item, mv.Old, mv.New)
			} else {
				m.status = fmt.Sprintf("moved %s from %s/%d to %s/%d", mv.Item, mv.From, mv.Old, mv.To, mv.New)
			}
		case dropped:
			m.status = "dropped in place"
		default:
			m.status = "drop rejected"
		}
	}
}

func labelOf(row *dom.Node) string {
	if label := row.QuerySelector(labelSelector); label != nil {
		return label.Text()
	}
	return row.String()
}

func handleZone(row *dom.Node) string { return row.ID() + "/handle" }
func labelZone(row *dom.Node) string  { return row.ID() + "/label" }

// zoneHit finds the handle or label under the pointer. Handles win.
func (m Model) zoneHit(msg tea.MouseMsg) *dom.Node {
	for _, l := range m.board.Lists() {
		for _, row := range l.Rows() {
			if z := m.zones.Get(handleZone(row)); z != nil && z.InBounds(msg) {
				return m.board.HandleOf(row)
			}
			if z := m.zones.Get(labelZone(row)); z != nil && z.InBounds(msg) {
				if label := row.QuerySelector(labelSelector); label != nil {
					return label
				}
				return row
			}
		}
	}
	return nil
}

// View implements tea.Model.
func (m Model) View() string {
	columns := make([]string, 0, len(m.board.Lists()))
	for _, l := range m.board.Lists() {
		columns = append(columns, m.viewList(l))
	}

	sections := []string{
		titleStyle.Render(m.title),
		lipgloss.JoinHorizontal(lipgloss.Top, columns...),
	}
	if m.status != "" {
		sections = append(sections, statusStyle.Render(m.status))
	}
	sections = append(sections, m.help.View(m.keys))
	return m.zones.Scan(lipgloss.JoinVertical(lipgloss.Left, sections...))
}

func (m Model) viewList(l *List) string {
	header := l.ID
	if l.Group != "" {
		header = fmt.Sprintf("%s (%s)", l.ID, l.Group)
	}
	out := []string{listHeader(header)}
	for _, row := range l.Rows() {
		handle := m.zones.Mark(handleZone(row), handleStyle.Render(HandleGlyph))
		label := m.zones.Mark(labelZone(row), labelOf(row))
		out = append(out, styleFor(row).Render(handle+label))
	}
	return listStyle.Render(strings.Join(out, "\n"))
}

// Close releases the zone manager.
func (m Model) Close() {
	m.zones.Close()
}

// Run runs the model full screen with mouse motion tracking until the user
// quits or ctx is cancelled.
func Run(ctx context.Context, m Model) error {
	defer m.Close()
	p := tea.NewProgram(m,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(ctx),
	)
	_, err := p.Run()
	return err
}
