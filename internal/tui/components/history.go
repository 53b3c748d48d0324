package components

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/tessro/pausemark/internal/core"
	"github.com/tessro/pausemark/internal/tui/styles"
)

// History displays recorded pauses, newest first
type History struct {
	offset int
}

// NewHistory creates a new History component
func NewHistory() *History {
	return &History{offset: 0}
}

// ScrollDown scrolls the history down
func (h *History) ScrollDown() {
	h.offset++
}

// ScrollUp scrolls the history up
func (h *History) ScrollUp() {
	if h.offset > 0 {
		h.offset--
	}
}

// Render renders the history panel
func (h *History) Render(events []core.PauseEvent, width, height int, focused bool) string {
	title := styles.PanelTitle("History", focused)

	var content string
	if len(events) == 0 {
		content = styles.Muted.Render("No pauses yet")
	} else {
		content = h.renderHistory(events, width-4, height-4)
	}

	panel := styles.Panel(focused).
		Width(width).
		Height(height)

	return panel.Render(lipgloss.JoinVertical(lipgloss.Left,
		title,
		"",
		content,
	))
}

func (h *History) renderHistory(events []core.PauseEvent, width, maxLines int) string {
	if maxLines < 1 {
		maxLines = 1
	}
	if h.offset > len(events)-1 {
		h.offset = len(events) - 1
	}

	lines := make([]string, 0, maxLines)
	for i := len(events) - 1 - h.offset; i >= 0 && len(lines) < maxLines; i-- {
		e := events[i]

		position := fmt.Sprintf("%3d  %s", i+1, e.Position.String())
		ago := humanize.Time(e.At)

		padding := width - lipgloss.Width(position) - lipgloss.Width(ago)
		if padding < 1 {
			padding = 1
		}

		lines = append(lines, position+styles.Repeat(" ", padding)+styles.Dim.Render(ago))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}
