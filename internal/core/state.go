package core

import (
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/tessro/pausemark/internal/timecode"
)

// PlaybackState is Stopped, Playing or Paused.
type PlaybackState uint8

const (
	Stopped PlaybackState = iota
	Playing
	Paused
)

// String returns "stopped", "playing", "paused" or "unknown".
func (s PlaybackState) String() string {
	switch s {
	case Stopped:
		return "stopped"
	case Playing:
		return "playing"
	case Paused:
		return "paused"
	default:
		return "unknown"
	}
}

// EventKind identifies what a PauseEvent records.
type EventKind string

const (
	EventReset EventKind = "reset"
	EventPause EventKind = "pause"
)

// PauseEvent is one entry in a recorder's history.
type PauseEvent struct {
	ID       ulid.ULID         `json:"id" yaml:"id"`
	Kind     EventKind         `json:"kind" yaml:"kind"`
	Position timecode.Timecode `json:"position" yaml:"position"`
	At       time.Time         `json:"at" yaml:"at"`
}

// NewPauseEvent stamps an event with a fresh ULID and the given time.
func NewPauseEvent(kind EventKind, position timecode.Timecode, at time.Time) PauseEvent {
	return PauseEvent{
		ID:       ulid.MustNew(ulid.Timestamp(at), ulid.DefaultEntropy()),
		Kind:     kind,
		Position: position,
		At:       at,
	}
}

// Snapshot is a point-in-time view of a recorder.
type Snapshot struct {
	Count  int               `json:"count" yaml:"count"`
	Last   timecode.Timecode `json:"last" yaml:"last"`
	LastAt time.Time         `json:"last_at" yaml:"last_at"`
	Events []PauseEvent      `json:"events,omitempty" yaml:"events,omitempty"`
}

// HasEvents returns true if anything has been recorded since the last reset.
func (s *Snapshot) HasEvents() bool {
	return s != nil && s.Count > 0
}

// Latest returns the most recent event, or nil.
func (s *Snapshot) Latest() *PauseEvent {
	if s == nil || len(s.Events) == 0 {
		return nil
	}
	return &s.Events[len(s.Events)-1]
}
