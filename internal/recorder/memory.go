// Package recorder provides core.Recorder implementations: an in-process
// Memory recorder and a File recorder backed by a JSON-lines journal.
package recorder

import (
	"context"
	"sync"
	"time"

	"github.com/tessro/pausemark/internal/core"
	"github.com/tessro/pausemark/internal/timecode"
)

// DefaultHistoryLimit bounds how many events a snapshot carries.
const DefaultHistoryLimit = 50

// Memory is a mutex-guarded in-process recorder.
type Memory struct {
	mu     sync.Mutex
	count  int
	last   timecode.Timecode
	lastAt time.Time
	events []core.PauseEvent
	limit  int
	now    func() time.Time
}

// NewMemory creates an empty recorder keeping at most limit events of
// history. A limit <= 0 uses DefaultHistoryLimit.
func NewMemory(limit int) *Memory {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	return &Memory{
		limit: limit,
		now:   time.Now,
	}
}

// Record implements core.Recorder.
func (m *Memory) Record(ctx context.Context, position timecode.Timecode) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if core.IsStartupReset(m.count, position) {
		m.resetLocked()
		return nil
	}
	m.pauseLocked(position)
	return nil
}

// Pause implements core.Recorder.
func (m *Memory) Pause(ctx context.Context, position timecode.Timecode) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.pauseLocked(position)
	return nil
}

func (m *Memory) pauseLocked(position timecode.Timecode) {
	at := m.now()
	m.count++
	m.last = position
	m.lastAt = at
	m.events = appendBounded(m.events, core.NewPauseEvent(core.EventPause, position, at), m.limit)
}

// Reset implements core.Recorder.
func (m *Memory) Reset(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.resetLocked()
	return nil
}

func (m *Memory) resetLocked() {
	m.count = 0
	m.last = 0
	m.lastAt = time.Time{}
	m.events = nil
}

// Count implements core.Recorder.
func (m *Memory) Count(ctx context.Context) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	return m.count, nil
}

// LastTimecode implements core.Recorder.
func (m *Memory) LastTimecode(ctx context.Context) (timecode.Timecode, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	return m.last, nil
}

// Snapshot implements core.Recorder. The returned events are a copy.
func (m *Memory) Snapshot(ctx context.Context) (*core.Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	events := make([]core.PauseEvent, len(m.events))
	copy(events, m.events)
	return &core.Snapshot{
		Count:  m.count,
		Last:   m.last,
		LastAt: m.lastAt,
		Events: events,
	}, nil
}

// appendBounded appends e and drops the oldest entries beyond limit.
func appendBounded(events []core.PauseEvent, e core.PauseEvent, limit int) []core.PauseEvent {
	events = append(events, e)
	if len(events) > limit {
		events = events[len(events)-limit:]
	}
	return events
}
