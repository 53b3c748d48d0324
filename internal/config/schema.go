package config

// Config is the root configuration structure.
type Config struct {
	Journal JournalConfig `toml:"journal" json:"journal"`
	Tail    TailConfig    `toml:"tail" json:"tail"`
	TUI     TUIConfig     `toml:"tui" json:"tui"`
	Log     LogConfig     `toml:"log" json:"log"`
}

// JournalConfig holds settings for the on-disk event journal.
type JournalConfig struct {
	Path         string `toml:"path" json:"path"`
	HistoryLimit int    `toml:"history_limit" json:"history_limit"`
}

// TailConfig holds settings for tail/follow mode.
type TailConfig struct {
	Interval  int  `toml:"interval" json:"interval"`
	NoEmoji   bool `toml:"no_emoji" json:"no_emoji"`
	Timestamp bool `toml:"timestamp" json:"timestamp"`
}

// TUIConfig holds terminal UI settings.
type TUIConfig struct {
	Theme           string `toml:"theme" json:"theme"`
	RefreshInterval int    `toml:"refresh_interval" json:"refresh_interval"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `toml:"level" json:"level"`
	File  string `toml:"file" json:"file"`
}
