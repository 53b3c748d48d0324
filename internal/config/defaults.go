package config

import (
	"os"
	"path/filepath"
)

// DefaultJournalFileName is the journal file created under the user config dir.
const DefaultJournalFileName = "journal.jsonl"

// Default returns a Config populated with sensible defaults.
func Default() *Config {
	return &Config{
		Journal: JournalConfig{
			Path:         defaultJournalPath(),
			HistoryLimit: 50,
		},
		Tail: TailConfig{
			Interval: 1000,
		},
		TUI: TUIConfig{
			Theme:           "auto",
			RefreshInterval: 1000,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// ApplyDefaults fills in zero values with sensible defaults.
func (c *Config) ApplyDefaults() {
	d := Default()

	// Journal
	if c.Journal.Path == "" {
		c.Journal.Path = d.Journal.Path
	}
	if c.Journal.HistoryLimit == 0 {
		c.Journal.HistoryLimit = d.Journal.HistoryLimit
	}

	// Tail
	if c.Tail.Interval == 0 {
		c.Tail.Interval = d.Tail.Interval
	}

	// TUI
	if c.TUI.Theme == "" {
		c.TUI.Theme = d.TUI.Theme
	}
	if c.TUI.RefreshInterval == 0 {
		c.TUI.RefreshInterval = d.TUI.RefreshInterval
	}

	// Log
	if c.Log.Level == "" {
		c.Log.Level = d.Log.Level
	}
}

func defaultJournalPath() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return DefaultJournalFileName
	}
	return filepath.Join(configDir, "pausemark", DefaultJournalFileName)
}
