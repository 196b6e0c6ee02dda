package term

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/go-drift/reorder/pkg/dom"
	"github.com/go-drift/reorder/pkg/reorder"
)

var (
	subtle    = lipgloss.AdaptiveColor{Light: "#D9DCCF", Dark: "#383838"}
	highlight = lipgloss.AdaptiveColor{Light: "#874BFD", Dark: "#7D56F4"}
	special   = lipgloss.AdaptiveColor{Light: "#43BF6D", Dark: "#73F59F"}
	muted     = lipgloss.AdaptiveColor{Light: "#969B86", Dark: "#696969"}
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(highlight).
			MarginBottom(1)
	listStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(subtle).
			Padding(0, 1).
			MarginRight(2)
	listHeader = lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderBottom(true).
			BorderForeground(subtle).
			Render
	handleStyle = lipgloss.NewStyle().Foreground(muted).PaddingRight(1)
	rowStyle    = lipgloss.NewStyle().PaddingLeft(1)
	movingStyle = rowStyle.
			Foreground(muted).
			Italic(true)
	overStyle = rowStyle.
			Foreground(special).
			Bold(true).
			Underline(true)
	inertStyle  = rowStyle.Faint(true)
	statusStyle = lipgloss.NewStyle().Foreground(muted).MarginTop(1)
)

// styleFor picks a row style from the classes the drag behavior toggles.
func styleFor(row *dom.Node) lipgloss.Style {
	switch {
	case row.HasClass(reorder.ClassMoving):
		return movingStyle
	case row.HasClass(reorder.ClassOver):
		return overStyle
	case !reorder.IsDraggable(row):
		return inertStyle
	default:
		return rowStyle
	}
}
