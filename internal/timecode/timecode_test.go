package timecode

import (
	"errors"
	"testing"
	"time"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		in   Timecode
		want string
	}{
		{0, "00:00:00"},
		{59, "00:00:59"},
		{60, "00:01:00"},
		{3661, "01:01:01"},
		{3723, "01:02:03"},
		{359999, "99:59:59"},
		{360000, "100:00:00"},
	}

	for _, tt := range tests {
		if got := Format(tt.in); got != tt.want {
			t.Errorf("Format(%d) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		in   string
		want Timecode
	}{
		{"00:00:00", 0},
		{"01:02:03", 3723},
		{"00:00:59", 59},
		{"99:59:59", 359999},
		{"00:00:100", 100},
	}

	for _, tt := range tests {
		got, err := Parse(tt.in)
		if err != nil {
			t.Errorf("Parse(%q) error = %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("Parse(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name  string
		in    string
		field string
	}{
		{"letters in hours", "ab:02:03", "hours"},
		{"letters in minutes", "01:x2:03", "minutes"},
		{"letters in seconds", "01:02:0z", "seconds"},
		{"signed seconds", "01:02:+3", "seconds"},
		{"empty", "", "length"},
		{"too short", "1:02:03", "length"},
		{"space", "01: 2:03", "minutes"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.in)
			if err == nil {
				t.Fatalf("Parse(%q) error = nil, want error", tt.in)
			}
			if !errors.Is(err, ErrMalformed) {
				t.Errorf("errors.Is(err, ErrMalformed) = false for %v", err)
			}
			var pe *ParseError
			if !errors.As(err, &pe) {
				t.Fatalf("error %T is not *ParseError", err)
			}
			if pe.Field != tt.field {
				t.Errorf("Field = %q, want %q", pe.Field, tt.field)
			}
			if pe.Input != tt.in {
				t.Errorf("Input = %q, want %q", pe.Input, tt.in)
			}
		})
	}
}

func TestRoundTrip(t *testing.T) {
	for s := Timecode(0); s <= 359999; s++ {
		got, err := Parse(Format(s))
		if err != nil {
			t.Fatalf("Parse(Format(%d)) error = %v", s, err)
		}
		if got != s {
			t.Fatalf("Parse(Format(%d)) = %d", s, got)
		}
	}
}

func TestParseLoose(t *testing.T) {
	tests := []struct {
		in   string
		want Timecode
	}{
		{"42", 42},
		{"01:30", 90},
		{"01:02:03", 3723},
		{"100:00:00", 360000},
		{" 1:00:00 ", 3600},
	}

	for _, tt := range tests {
		got, err := ParseLoose(tt.in)
		if err != nil {
			t.Errorf("ParseLoose(%q) error = %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseLoose(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}

	for _, bad := range []string{"", "1:2:3:4", "aa:00", "01::03", "-5"} {
		if _, err := ParseLoose(bad); !errors.Is(err, ErrMalformed) {
			t.Errorf("ParseLoose(%q) error = %v, want ErrMalformed", bad, err)
		}
	}
}

func TestParseLooseRoundTripWideHours(t *testing.T) {
	for _, s := range []Timecode{359999, 360000, 3600000 + 61} {
		got, err := ParseLoose(Format(s))
		if err != nil {
			t.Fatalf("ParseLoose(Format(%d)) error = %v", s, err)
		}
		if got != s {
			t.Errorf("ParseLoose(Format(%d)) = %d", s, got)
		}
	}
}

func TestDurationConversions(t *testing.T) {
	tc := Timecode(90)
	if tc.Duration() != 90*time.Second {
		t.Errorf("Duration() = %v, want 1m30s", tc.Duration())
	}
	if got := FromDuration(90*time.Second + 999*time.Millisecond); got != 90 {
		t.Errorf("FromDuration() = %d, want 90", got)
	}
	if got := FromDuration(-time.Second); got != 0 {
		t.Errorf("FromDuration(-1s) = %d, want 0", got)
	}
	if tc.String() != "00:01:30" {
		t.Errorf("String() = %q, want %q", tc.String(), "00:01:30")
	}
}
