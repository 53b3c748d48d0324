package session

import (
	"time"

	"github.com/tessro/pausemark/internal/timecode"
)

// Clock is a playback position that only moves while running.
type Clock struct {
	elapsed time.Duration
	running bool
}

// NewClock returns a stopped clock at position.
func NewClock(position timecode.Timecode) *Clock {
	return &Clock{elapsed: position.Duration()}
}

// Advance moves the clock forward by d if it is running.
func (c *Clock) Advance(d time.Duration) {
	if c.running && d > 0 {
		c.elapsed += d
	}
}

// SetRunning starts or stops the clock.
func (c *Clock) SetRunning(running bool) {
	c.running = running
}

// Running reports whether Advance moves the clock.
func (c *Clock) Running() bool {
	return c.running
}

// Seek jumps to position.
func (c *Clock) Seek(position timecode.Timecode) {
	c.elapsed = position.Duration()
}

// Position returns the clock in whole seconds.
func (c *Clock) Position() timecode.Timecode {
	return timecode.FromDuration(c.elapsed)
}

// Display returns the zero-padded HH:MM:SS label for the current position.
func (c *Clock) Display() string {
	return timecode.Format(c.Position())
}
