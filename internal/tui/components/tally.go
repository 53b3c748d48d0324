package components

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/tessro/pausemark/internal/session"
	"github.com/tessro/pausemark/internal/tui/styles"
)

// Tally displays the recorder labels
type Tally struct{}

// NewTally creates a new Tally component
func NewTally() *Tally {
	return &Tally{}
}

// Render renders the tally panel
func (t *Tally) Render(labels session.Labels, width, height int, focused bool) string {
	title := styles.PanelTitle("Tally", focused)

	lastPause := labels.LastPause
	count := labels.Count
	if lastPause == "" {
		lastPause = session.LastPausePrefix + "--:--:--"
		count = session.CountPrefix + "0"
	}

	panel := styles.Panel(focused).
		Width(width).
		Height(height)

	return panel.Render(lipgloss.JoinVertical(lipgloss.Left,
		title,
		"",
		styles.Title.Render(lastPause),
		styles.Subtitle.Render(count),
	))
}
