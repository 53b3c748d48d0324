package tui

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/tessro/pausemark/internal/core"
	"github.com/tessro/pausemark/internal/logging"
	"github.com/tessro/pausemark/internal/session"
	"github.com/tessro/pausemark/internal/timecode"
	"github.com/tessro/pausemark/internal/tui/components"
	"github.com/tessro/pausemark/internal/tui/styles"
)

// Panel represents which panel is focused
type Panel int

const (
	PanelNowPlaying Panel = iota
	PanelTally
	PanelHistory
)

const (
	recorderTimeout = 2 * time.Second
	errorDisplay    = 5 * time.Second
)

// App holds the TUI application state
type App struct {
	recorder    core.Recorder
	controller  *session.Controller
	refreshRate time.Duration
	log         *slog.Logger

	// copyText writes to the system clipboard; replaced in tests
	copyText func(string) error
}

// NewApp creates a new TUI application around a recorder.
func NewApp(r core.Recorder, refreshRate time.Duration, log *slog.Logger) *App {
	if refreshRate <= 0 {
		refreshRate = time.Second
	}
	log = logging.OrDefault(log)
	return &App{
		recorder:    r,
		controller:  session.NewController(r, log),
		refreshRate: refreshRate,
		log:         log,
		copyText:    clipboard.WriteAll,
	}
}

// Model is the main TUI model
type Model struct {
	app          *App
	keys         keyMap
	help         help.Model
	width        int
	height       int
	focusedPanel Panel

	// State
	clock    *session.Clock
	lastTick time.Time
	labels   session.Labels
	snapshot *core.Snapshot

	// Components
	nowPlaying  *components.NowPlaying
	tally       *components.Tally
	historyView *components.History

	// Overlays
	showHelp  bool
	showSeek  bool
	seekInput textinput.Model

	// Status line
	lastError   error
	errorExpiry time.Time
	notice      string

	quitting bool
}

// NewModel creates a new TUI model. The clock starts at position.
func NewModel(app *App, position timecode.Timecode) Model {
	ti := textinput.New()
	ti.Placeholder = "HH:MM:SS"
	ti.CharLimit = 12
	ti.Width = 12

	return Model{
		app:          app,
		keys:         defaultKeyMap(),
		help:         help.New(),
		focusedPanel: PanelNowPlaying,
		clock:        session.NewClock(position),
		nowPlaying:   components.NewNowPlaying(),
		tally:        components.NewTally(),
		historyView:  components.NewHistory(),
		seekInput:    ti,
	}
}

// Messages
type tickMsg time.Time

// Commands
func (m Model) tick() tea.Cmd {
	return tea.Tick(m.app.refreshRate, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return m.tick()
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case tickMsg:
		now := time.Time(msg)
		if !m.lastTick.IsZero() {
			m.clock.Advance(now.Sub(m.lastTick))
		}
		m.lastTick = now
		m.refresh()
		return m, m.tick()
	}

	if m.showSeek {
		var cmd tea.Cmd
		m.seekInput, cmd = m.seekInput.Update(msg)
		return m, cmd
	}

	return m, nil
}

// refresh polls the recorder once, the same way the display does on every
// tick.
func (m *Model) refresh() {
	ctx, cancel := context.WithTimeout(context.Background(), recorderTimeout)
	defer cancel()

	if time.Now().After(m.errorExpiry) {
		m.lastError = nil
	}

	labels, err := m.app.controller.Tick(ctx)
	if err != nil {
		m.setError(err)
		return
	}
	m.labels = labels

	snap, err := m.app.recorder.Snapshot(ctx)
	if err != nil {
		m.setError(err)
		return
	}
	m.snapshot = snap
}

func (m *Model) setError(err error) {
	m.app.log.Warn("tui error", "error", err)
	m.lastError = err
	m.errorExpiry = time.Now().Add(errorDisplay)
}

func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		m.quitting = true
		return m, tea.Quit
	}

	if m.showHelp {
		switch msg.String() {
		case "?", "esc":
			m.showHelp = false
		}
		return m, nil
	}

	if m.showSeek {
		return m.handleSeekKeyPress(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = true

	case key.Matches(msg, m.keys.Toggle):
		m.togglePlayPause()

	case key.Matches(msg, m.keys.Reset):
		m.resetTally()

	case key.Matches(msg, m.keys.Copy):
		m.copyLastPause()

	case key.Matches(msg, m.keys.Seek):
		m.showSeek = true
		m.seekInput.SetValue("")
		m.seekInput.Focus()
		return m, textinput.Blink

	case msg.String() == "tab":
		m.focusedPanel = (m.focusedPanel + 1) % 3

	case msg.String() == "shift+tab":
		m.focusedPanel = (m.focusedPanel + 2) % 3

	case key.Matches(msg, m.keys.Down):
		if m.focusedPanel == PanelHistory {
			m.historyView.ScrollDown()
		}

	case key.Matches(msg, m.keys.Up):
		if m.focusedPanel == PanelHistory {
			m.historyView.ScrollUp()
		}
	}

	return m, nil
}

func (m Model) handleSeekKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.showSeek = false
		m.seekInput.Blur()
		return m, nil

	case "enter":
		position, err := timecode.ParseLoose(m.seekInput.Value())
		if err != nil {
			m.setError(err)
			return m, nil
		}
		m.clock.Seek(position)
		m.showSeek = false
		m.seekInput.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.seekInput, cmd = m.seekInput.Update(msg)
	return m, cmd
}

// togglePlayPause hands the displayed clock to the controller, which
// records it when pausing.
func (m *Model) togglePlayPause() {
	ctx, cancel := context.WithTimeout(context.Background(), recorderTimeout)
	defer cancel()

	if err := m.app.controller.Toggle(ctx, m.clock.Display()); err != nil {
		m.setError(err)
		return
	}
	m.clock.SetRunning(!m.app.controller.Paused())
	m.refresh()
}

func (m *Model) resetTally() {
	ctx, cancel := context.WithTimeout(context.Background(), recorderTimeout)
	defer cancel()

	if err := m.app.recorder.Reset(ctx); err != nil {
		m.setError(err)
		return
	}
	m.notice = "Tally reset"
	m.refresh()
}

func (m *Model) copyLastPause() {
	text := m.labels.Last.String()
	if err := m.app.copyText(text); err != nil {
		m.setError(fmt.Errorf("failed to copy to clipboard: %w", err))
		return
	}
	m.notice = "Copied " + text
}

// View renders the UI
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	if m.width == 0 {
		return "Loading..."
	}

	if m.showHelp {
		return m.renderHelp()
	}

	if m.showSeek {
		return m.renderSeek()
	}

	// Left: Now Playing (top), Tally (bottom). Right: History.
	leftWidth := m.width * 45 / 100
	rightWidth := m.width - leftWidth - 2
	topHeight := (m.height - 3) / 2
	bottomHeight := m.height - 3 - topHeight - 2

	state := m.app.controller.State()
	nowPlaying := m.nowPlaying.Render(state, m.clock.Display(), leftWidth-2, topHeight-2, m.focusedPanel == PanelNowPlaying)
	tally := m.tally.Render(m.labels, leftWidth-2, bottomHeight, m.focusedPanel == PanelTally)

	var events []core.PauseEvent
	if m.snapshot != nil {
		events = m.snapshot.Events
	}
	historyView := m.historyView.Render(events, rightWidth-2, m.height-5, m.focusedPanel == PanelHistory)

	leftCol := lipgloss.JoinVertical(lipgloss.Left, nowPlaying, tally)
	main := lipgloss.JoinHorizontal(lipgloss.Top, leftCol, historyView)

	return lipgloss.JoinVertical(lipgloss.Left, main, m.renderStatusBar())
}

func (m Model) renderStatusBar() string {
	status := m.help.ShortHelpView(m.keys.ShortHelp())

	if m.lastError != nil {
		status = styles.ErrorText.Render("Error: " + m.lastError.Error())
	} else if m.notice != "" {
		status = styles.Muted.Render(m.notice) + "  " + status
	}

	return lipgloss.NewStyle().
		Width(m.width).
		Padding(0, 1).
		Render(status)
}

func (m Model) renderHelp() string {
	title := styles.Highlight.Render("pausemark - Keyboard Shortcuts")
	body := m.help.FullHelpView(m.keys.FullHelp())

	content := lipgloss.JoinVertical(lipgloss.Left,
		title,
		"",
		body,
		"",
		styles.Dim.Render("Tab/Shift+Tab switch panel. Press ? or Esc to close"),
	)

	return lipgloss.NewStyle().
		Width(m.width).
		Height(m.height).
		Align(lipgloss.Center, lipgloss.Center).
		Render(styles.BorderStyle.Padding(1, 2).Render(content))
}

func (m Model) renderSeek() string {
	content := lipgloss.JoinVertical(lipgloss.Left,
		styles.Highlight.Render("Go to time"),
		"",
		m.seekInput.View(),
		"",
		styles.Dim.Render("Enter:go  Esc:close"),
	)

	return lipgloss.NewStyle().
		Width(m.width).
		Height(m.height).
		Align(lipgloss.Center, lipgloss.Center).
		Render(styles.FocusedBorder.Padding(1, 2).Render(content))
}

// Run starts the session and the TUI application
func Run(app *App, position timecode.Timecode) error {
	if err := app.controller.Start(context.Background()); err != nil {
		return err
	}

	model := NewModel(app, position)
	model.clock.SetRunning(true)
	model.refresh()

	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
