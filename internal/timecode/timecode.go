// Package timecode converts between zero-padded HH:MM:SS clock strings and
// whole-second playback positions.
package timecode

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Timecode is a playback position in whole seconds.
type Timecode int

const (
	secondsPerMinute = 60
	secondsPerHour   = 3600

	// MinLength is the shortest string Parse accepts ("HH:MM:SS").
	MinLength = 8
)

// ErrMalformed is wrapped by every ParseError.
var ErrMalformed = errors.New("malformed timecode")

// ParseError reports which part of a clock string could not be read.
type ParseError struct {
	Input string
	Field string // "hours", "minutes", "seconds" or "length"
	Err   error
}

func (e *ParseError) Error() string {
	if e.Field == "length" {
		return fmt.Sprintf("timecode %q: want HH:MM:SS, got %d characters", e.Input, len(e.Input))
	}
	return fmt.Sprintf("timecode %q: invalid %s field", e.Input, e.Field)
}

func (e *ParseError) Unwrap() error {
	return ErrMalformed
}

// Parse reads a fixed-layout HH:MM:SS string. Hours are characters 0-1,
// minutes 3-4 and seconds everything from 6 on. The separator positions are
// not inspected.
func Parse(text string) (Timecode, error) {
	if len(text) < MinLength {
		return 0, &ParseError{Input: text, Field: "length"}
	}

	h, err := parseField(text, "hours", text[0:2])
	if err != nil {
		return 0, err
	}
	m, err := parseField(text, "minutes", text[3:5])
	if err != nil {
		return 0, err
	}
	s, err := parseField(text, "seconds", text[6:])
	if err != nil {
		return 0, err
	}

	return Timecode(h*secondsPerHour + m*secondsPerMinute + s), nil
}

// ParseLoose splits on ':' instead of fixed positions. It accepts "SS",
// "MM:SS" and "H...:MM:SS", so hour fields wider than two digits round-trip
// with Format.
func ParseLoose(text string) (Timecode, error) {
	parts := strings.Split(strings.TrimSpace(text), ":")
	if len(parts) > 3 {
		return 0, &ParseError{Input: text, Field: "length"}
	}

	names := []string{"hours", "minutes", "seconds"}[3-len(parts):]
	var total int
	for i, p := range parts {
		v, err := parseField(text, names[i], p)
		if err != nil {
			return 0, err
		}
		switch names[i] {
		case "hours":
			total += v * secondsPerHour
		case "minutes":
			total += v * secondsPerMinute
		default:
			total += v
		}
	}
	return Timecode(total), nil
}

// parseField accepts only a non-empty run of ASCII digits. strconv.Atoi
// alone would let "+1" and "-1" through.
func parseField(input, field, s string) (int, error) {
	if s == "" {
		return 0, &ParseError{Input: input, Field: field}
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return 0, &ParseError{Input: input, Field: field}
		}
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, &ParseError{Input: input, Field: field, Err: err}
	}
	return v, nil
}

// Format renders tc as HH:MM:SS. Each component is padded to two digits but
// never truncated, so 360000 becomes "100:00:00". Negative input is
// undefined; the result is whatever integer division produces.
func Format(tc Timecode) string {
	total := int(tc)
	h := total / secondsPerHour
	rem := total % secondsPerHour
	m := rem / secondsPerMinute
	s := rem % secondsPerMinute

	return pad(h) + ":" + pad(m) + ":" + pad(s)
}

func pad(v int) string {
	s := strconv.Itoa(v)
	if len(s) >= 2 {
		return s
	}
	return "0" + s
}

// String implements fmt.Stringer.
func (tc Timecode) String() string {
	return Format(tc)
}

// Duration converts tc to a time.Duration.
func (tc Timecode) Duration() time.Duration {
	return time.Duration(tc) * time.Second
}

// FromDuration truncates d to whole seconds. Negative durations clamp to 0.
func FromDuration(d time.Duration) Timecode {
	if d < 0 {
		return 0
	}
	return Timecode(d / time.Second)
}
