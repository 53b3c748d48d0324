package tail

import (
	"context"
	"log/slog"
	"time"

	"github.com/mitchellh/hashstructure/v2"
	"github.com/tessro/pausemark/internal/core"
	"github.com/tessro/pausemark/internal/logging"
)

// EventType represents the type of tally change.
type EventType int

const (
	EventPause EventType = iota
	EventReset
)

func (t EventType) String() string {
	return eventTypeName(t)
}

// Event represents a change between two recorder snapshots.
type Event struct {
	Type      EventType
	Timestamp time.Time
	Previous  *core.Snapshot
	Current   *core.Snapshot
}

// Watcher polls a recorder for changes and emits events.
type Watcher struct {
	recorder core.Recorder
	interval time.Duration
	events   chan Event
	done     chan struct{}
	log      *slog.Logger
}

// NewWatcher creates a new recorder watcher. A non-positive interval
// polls once a second.
func NewWatcher(r core.Recorder, interval time.Duration, log *slog.Logger) *Watcher {
	if interval <= 0 {
		interval = time.Second
	}
	return &Watcher{
		recorder: r,
		interval: interval,
		events:   make(chan Event, 16),
		done:     make(chan struct{}),
		log:      logging.OrDefault(log),
	}
}

// Events returns the channel of tally events.
func (w *Watcher) Events() <-chan Event {
	return w.events
}

// Start begins polling for changes. It returns when ctx is cancelled or
// Stop is called, closing the events channel.
func (w *Watcher) Start(ctx context.Context) error {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()
	defer close(w.events)

	var prev *core.Snapshot
	var prevHash uint64

	// Get initial state
	snap, err := w.recorder.Snapshot(ctx)
	if err == nil {
		prev = snap
		prevHash = hashSnapshot(snap)
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-w.done:
			return nil
		case <-ticker.C:
			curr, err := w.recorder.Snapshot(ctx)
			if err != nil {
				w.log.Debug("poll failed", "error", err)
				continue
			}

			h := hashSnapshot(curr)
			if prev != nil && h == prevHash {
				continue
			}

			for _, e := range diffSnapshots(prev, curr) {
				select {
				case w.events <- e:
				default:
					// Drop event if channel is full
					w.log.Warn("dropped tail event", "type", eventTypeName(e.Type))
				}
			}

			prev = curr
			prevHash = h
		}
	}
}

// Stop stops the watcher.
func (w *Watcher) Stop() {
	close(w.done)
}

// hashSnapshot fingerprints a snapshot. A hashing failure returns 0, which
// forces a diff on the next poll.
func hashSnapshot(s *core.Snapshot) uint64 {
	h, err := hashstructure.Hash(s, hashstructure.FormatV2, nil)
	if err != nil {
		return 0
	}
	return h
}

// diffSnapshots compares two snapshots and returns detected events.
func diffSnapshots(prev, curr *core.Snapshot) []Event {
	if curr == nil {
		return nil
	}

	now := time.Now()

	// First successful poll - report the latest pause, if any
	if prev == nil {
		if curr.HasEvents() {
			return []Event{{Type: EventPause, Timestamp: now, Current: curr}}
		}
		return nil
	}

	if curr.Count < prev.Count || (curr.Count == prev.Count && wasReset(prev, curr)) {
		events := []Event{{Type: EventReset, Timestamp: now, Previous: prev, Current: curr}}
		// Pauses recorded after the reset but before this poll
		if curr.Count > 0 {
			events = append(events, Event{Type: EventPause, Timestamp: now, Previous: prev, Current: curr})
		}
		return events
	}

	if curr.Count > prev.Count {
		return []Event{{Type: EventPause, Timestamp: now, Previous: prev, Current: curr}}
	}

	return nil
}

// wasReset reports a reset that left the count unchanged, e.g. one pause
// followed by a reset and another pause between polls.
func wasReset(prev, curr *core.Snapshot) bool {
	p, c := prev.Latest(), curr.Latest()
	if p == nil || c == nil {
		return p != c
	}
	return p.ID != c.ID
}
