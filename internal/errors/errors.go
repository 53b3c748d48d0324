package errors

import (
	"errors"
	"fmt"
	"strings"

	"github.com/tessro/pausemark/internal/timecode"
)

// Error types for common failure scenarios.
var (
	ErrMalformedTimecode = timecode.ErrMalformed
	ErrJournalCorrupt    = errors.New("journal corrupt")
	ErrNotInteractive    = errors.New("not an interactive terminal")
	ErrConfigNotFound    = errors.New("config file not found")
	ErrInvalidConfig     = errors.New("invalid configuration")
)

// PausemarkError wraps an error with a user-friendly suggestion.
type PausemarkError struct {
	Err        error
	Suggestion string
}

func (e *PausemarkError) Error() string {
	return e.Err.Error()
}

func (e *PausemarkError) Unwrap() error {
	return e.Err
}

// WithSuggestion wraps an error with a helpful suggestion.
func WithSuggestion(err error, suggestion string) error {
	return &PausemarkError{
		Err:        err,
		Suggestion: suggestion,
	}
}

// suggestions is checked in order; the first matching sentinel wins.
var suggestions = []struct {
	target error
	hint   string
}{
	{ErrMalformedTimecode, "Timecodes are written HH:MM:SS, for example 01:02:03"},
	{ErrJournalCorrupt, "Run 'pausemark reset' to start a fresh journal"},
	{ErrNotInteractive, "Pass the position as an argument, e.g. 'pausemark pause 00:12:30'"},
	{ErrConfigNotFound, "Run 'pausemark config init' to create a default configuration"},
	{ErrInvalidConfig, "Check the values with 'pausemark config show', or recreate the file with 'pausemark config init'"},
}

// GetSuggestion returns a suggestion for the given error.
func GetSuggestion(err error) string {
	if err == nil {
		return ""
	}

	var pmErr *PausemarkError
	if errors.As(err, &pmErr) && pmErr.Suggestion != "" {
		return pmErr.Suggestion
	}

	for _, s := range suggestions {
		if errors.Is(err, s.target) {
			return s.hint
		}
	}

	// OS errors from the journal or log file
	if strings.Contains(strings.ToLower(err.Error()), "permission denied") {
		return "Check the permissions of the journal directory"
	}
	return ""
}

// Format returns "Error: ..." followed by a suggestion when one applies.
func Format(err error) string {
	if err == nil {
		return ""
	}

	msg := "Error: " + err.Error()
	if s := GetSuggestion(err); s != "" {
		msg += "\n\nSuggestion: " + s
	}
	return msg
}

// PartialResult is a value built despite some recoverable failures, such as
// a journal replayed past its corrupt lines.
type PartialResult[T any] struct {
	Data   T
	Errors []error
}

// HasErrors returns true if any failure was recorded.
func (p *PartialResult[T]) HasErrors() bool {
	return len(p.Errors) > 0
}

// AddError records a failure. nil is ignored.
func (p *PartialResult[T]) AddError(err error) {
	if err != nil {
		p.Errors = append(p.Errors, err)
	}
}

// ErrorSummary lists the recorded failures, one per line after a count
// header when there is more than one.
func (p *PartialResult[T]) ErrorSummary() string {
	switch len(p.Errors) {
	case 0:
		return ""
	case 1:
		return p.Errors[0].Error()
	}

	lines := make([]string, 0, len(p.Errors)+1)
	lines = append(lines, fmt.Sprintf("%d errors:", len(p.Errors)))
	for _, err := range p.Errors {
		lines = append(lines, "  - "+err.Error())
	}
	return strings.Join(lines, "\n")
}
