package core

import (
	"context"

	"github.com/tessro/pausemark/internal/timecode"
)

// Recorder counts pause/resume events and remembers the position of the
// latest one.
type Recorder interface {
	// Record stores an event at position. Position 0 on an empty recorder
	// is a reset, which is how a session announces that it has started.
	Record(ctx context.Context, position timecode.Timecode) error

	// Pause always appends a pause event at position, including 0.
	Pause(ctx context.Context, position timecode.Timecode) error

	// Reset clears the count and the last position.
	Reset(ctx context.Context) error

	// State queries
	Count(ctx context.Context) (int, error)
	LastTimecode(ctx context.Context) (timecode.Timecode, error)
	Snapshot(ctx context.Context) (*Snapshot, error)
}

// IsStartupReset reports whether a Record call at position is a reset
// given the current count.
func IsStartupReset(count int, position timecode.Timecode) bool {
	return count == 0 && position == 0
}
