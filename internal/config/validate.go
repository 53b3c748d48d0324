package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"slices"
)

const (
	// MaxHistoryLimit caps how many events a snapshot may carry.
	MaxHistoryLimit = 10000

	// MinPollInterval is the fastest tail or TUI poll, in milliseconds.
	MinPollInterval = 50
)

var (
	themes    = []string{"auto", "dark", "light"}
	logLevels = []string{"debug", "info", "warn", "error"}
)

// Validate checks every section and joins the failures.
func (c *Config) Validate() error {
	errs := []error{
		section("journal", c.Journal.Validate()),
		section("tail", c.Tail.Validate()),
		section("tui", c.TUI.Validate()),
		section("log", c.Log.Validate()),
	}

	if c.Log.File != "" && c.Journal.Path != "" &&
		filepath.Clean(c.Log.File) == filepath.Clean(c.Journal.Path) {
		errs = append(errs, errors.New("log: file must not be the journal"))
	}

	return errors.Join(errs...)
}

func section(name string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", name, err)
}

// Validate checks JournalConfig for errors.
func (c *JournalConfig) Validate() error {
	if c.HistoryLimit < 0 || c.HistoryLimit > MaxHistoryLimit {
		return fmt.Errorf("history_limit must be between 0 and %d, got %d", MaxHistoryLimit, c.HistoryLimit)
	}
	return nil
}

// Validate checks TailConfig for errors.
func (c *TailConfig) Validate() error {
	return pollInterval("interval", c.Interval)
}

// Validate checks TUIConfig for errors.
func (c *TUIConfig) Validate() error {
	if c.Theme != "" && !slices.Contains(themes, c.Theme) {
		return fmt.Errorf("invalid theme: %s (must be auto, dark, or light)", c.Theme)
	}
	return pollInterval("refresh_interval", c.RefreshInterval)
}

// Validate checks LogConfig for errors.
func (c *LogConfig) Validate() error {
	if c.Level != "" && !slices.Contains(logLevels, c.Level) {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.Level)
	}
	return nil
}

// pollInterval accepts 0 (use the default) or at least MinPollInterval ms.
func pollInterval(name string, ms int) error {
	if ms == 0 || ms >= MinPollInterval {
		return nil
	}
	return fmt.Errorf("%s must be 0 or at least %dms, got %d", name, MinPollInterval, ms)
}
