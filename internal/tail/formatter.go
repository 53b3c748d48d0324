package tail

import (
	"fmt"
	"strings"
	"text/template"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/tessro/pausemark/internal/session"
)

var eventNames = map[EventType]struct{ name, emoji string }{
	EventPause: {"pause", "⏸️"},
	EventReset: {"reset", "🔄"},
}

// Formatter renders tally events as single lines for the tail command.
type Formatter struct {
	emoji     bool
	timestamp bool
	tmpl      *template.Template
}

// FormatterOption configures a Formatter.
type FormatterOption func(*Formatter)

// WithEmoji prefixes each line with an emoji for the event type. On by default.
func WithEmoji(enabled bool) FormatterOption {
	return func(f *Formatter) { f.emoji = enabled }
}

// WithTimestamp prefixes each line with the local event time.
func WithTimestamp(enabled bool) FormatterOption {
	return func(f *Formatter) { f.timestamp = enabled }
}

// WithTemplate replaces the line layout with a text/template over
// LineFields. An empty or unparseable template keeps the default layout.
func WithTemplate(text string) FormatterOption {
	return func(f *Formatter) {
		if text == "" {
			return
		}
		if t, err := template.New("tail").Parse(text); err == nil {
			f.tmpl = t
		}
	}
}

// NewFormatter creates a formatter with emoji on and timestamps off.
func NewFormatter(opts ...FormatterOption) *Formatter {
	f := &Formatter{emoji: true}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// LineFields is the data a --format template sees.
type LineFields struct {
	Type           string
	Emoji          string
	Timestamp      time.Time
	Time           string
	Count          int
	Seconds        int
	LastPause      string
	LastPauseLabel string
	CountLabel     string
	Ago            string
}

func fieldsFor(e Event) LineFields {
	lf := LineFields{
		Type:      eventTypeName(e.Type),
		Emoji:     eventEmoji(e.Type),
		Timestamp: e.Timestamp,
		Time:      e.Timestamp.Format(time.TimeOnly),
	}
	if s := e.Current; s != nil {
		labels := session.NewLabels(s.Count, s.Last)
		lf.Count = s.Count
		lf.Seconds = int(s.Last)
		lf.LastPause = s.Last.String()
		lf.LastPauseLabel = labels.LastPause
		lf.CountLabel = labels.Count
		if !s.LastAt.IsZero() {
			lf.Ago = humanize.Time(s.LastAt)
		}
	}
	return lf
}

// Format renders e as one line without a trailing newline.
func (f *Formatter) Format(e Event) string {
	lf := fieldsFor(e)

	if f.tmpl != nil {
		var sb strings.Builder
		if err := f.tmpl.Execute(&sb, lf); err == nil {
			return sb.String()
		}
	}

	parts := make([]string, 0, 3)
	if f.timestamp {
		parts = append(parts, lf.Time)
	}
	if f.emoji {
		parts = append(parts, lf.Emoji)
	}
	return strings.Join(append(parts, describe(e, lf)), " ")
}

func describe(e Event, lf LineFields) string {
	switch e.Type {
	case EventPause:
		if e.Current == nil {
			return "Paused"
		}
		return fmt.Sprintf("%s (%s)", lf.LastPauseLabel, lf.CountLabel)
	case EventReset:
		if e.Previous == nil || e.Previous.Count == 0 {
			return "Reset"
		}
		n := e.Previous.Count
		noun := "events"
		if n == 1 {
			noun = "event"
		}
		return fmt.Sprintf("Reset after %s %s", humanize.Comma(int64(n)), noun)
	default:
		return "Unknown event"
	}
}

func eventTypeName(t EventType) string {
	if n, ok := eventNames[t]; ok {
		return n.name
	}
	return "unknown"
}

func eventEmoji(t EventType) string {
	if n, ok := eventNames[t]; ok {
		return n.emoji
	}
	return "❓"
}
