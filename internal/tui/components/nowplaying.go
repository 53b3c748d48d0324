package components

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/tessro/pausemark/internal/core"
	"github.com/tessro/pausemark/internal/tui/styles"
)

// NowPlaying displays the playback clock and state
type NowPlaying struct{}

// NewNowPlaying creates a new NowPlaying component
func NewNowPlaying() *NowPlaying {
	return &NowPlaying{}
}

// Render renders the now playing panel
func (n *NowPlaying) Render(state core.PlaybackState, clock string, width, height int, focused bool) string {
	title := styles.PanelTitle("Now Playing", focused)

	var content string
	if state == core.Stopped {
		content = styles.Muted.Render("Stopped")
	} else {
		content = lipgloss.JoinVertical(lipgloss.Left,
			styles.StatusIcon(state == core.Playing)+" "+styles.Clock.Render(clock),
			"",
			n.renderControls(state),
		)
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

func (n *NowPlaying) renderControls(state core.PlaybackState) string {
	controls := styles.Dim.Render("space ")
	if state == core.Playing {
		controls += styles.Playing.Render("⏸ pause")
	} else {
		controls += styles.Paused.Render("▶ resume")
	}
	return controls
}
