// Package session holds the pause/resume state of one playback session and
// turns recorder state into display labels.
package session

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/tessro/pausemark/internal/core"
	"github.com/tessro/pausemark/internal/logging"
	"github.com/tessro/pausemark/internal/timecode"
)

// Label prefixes shown next to the recorder values.
const (
	LastPausePrefix = "Last Pause: "
	CountPrefix     = "Num PauseResume: "
)

// Labels is what the display shows after each tick.
type Labels struct {
	LastPause string `json:"last_pause"`
	Count     string `json:"count"`

	// Raw values behind the labels
	Last      timecode.Timecode `json:"last_seconds"`
	NumEvents int               `json:"num_events"`
}

// NewLabels renders the recorder values with their prefixes.
func NewLabels(count int, last timecode.Timecode) Labels {
	return Labels{
		LastPause: LastPausePrefix + timecode.Format(last),
		Count:     CountPrefix + strconv.Itoa(count),
		Last:      last,
		NumEvents: count,
	}
}

// Controller is the per-session toggle state. It records the displayed
// position when playback goes from playing to paused.
type Controller struct {
	recorder core.Recorder
	log      *slog.Logger

	state   core.PlaybackState
	toggles int
	count   int
}

// NewController creates a stopped controller. A nil logger uses slog.Default().
func NewController(r core.Recorder, log *slog.Logger) *Controller {
	return &Controller{
		recorder: r,
		log:      logging.OrDefault(log),
		state:    core.Stopped,
	}
}

// Start resets the recorder and marks the session as playing.
func (c *Controller) Start(ctx context.Context) error {
	if err := c.recorder.Reset(ctx); err != nil {
		return fmt.Errorf("failed to reset recorder: %w", err)
	}

	count, err := c.recorder.Count(ctx)
	if err != nil {
		return fmt.Errorf("failed to read event count: %w", err)
	}

	c.state = core.Playing
	c.toggles = 0
	c.count = count
	c.log.Debug("session started", "count", count)
	return nil
}

// Toggle flips between playing and paused. Going to paused parses the
// displayed HH:MM:SS clock and records it, 00:00:00 included, since Start
// has already reset the recorder. A clock that does not parse is returned
// as an error and the state is left unchanged.
func (c *Controller) Toggle(ctx context.Context, displayed string) error {
	if c.state != core.Paused {
		position, err := timecode.Parse(displayed)
		if err != nil {
			return err
		}
		if err := c.recorder.Pause(ctx, position); err != nil {
			return fmt.Errorf("failed to record pause: %w", err)
		}
		c.state = core.Paused
		c.log.Debug("paused", "position", position.String())
	} else {
		c.state = core.Playing
		c.log.Debug("resumed", "displayed", displayed)
	}

	c.toggles++
	return nil
}

// Tick polls the recorder once and returns the labels to display.
func (c *Controller) Tick(ctx context.Context) (Labels, error) {
	count, err := c.recorder.Count(ctx)
	if err != nil {
		return Labels{}, fmt.Errorf("failed to read event count: %w", err)
	}
	last, err := c.recorder.LastTimecode(ctx)
	if err != nil {
		return Labels{}, fmt.Errorf("failed to read last timecode: %w", err)
	}

	c.count = count
	return NewLabels(count, last), nil
}

// State returns the current playback state.
func (c *Controller) State() core.PlaybackState {
	return c.state
}

// Paused returns true while the session is paused.
func (c *Controller) Paused() bool {
	return c.state == core.Paused
}

// Toggles returns the number of successful toggles since Start.
func (c *Controller) Toggles() int {
	return c.toggles
}

// Count returns the event count seen at the last Start or Tick.
func (c *Controller) Count() int {
	return c.count
}
