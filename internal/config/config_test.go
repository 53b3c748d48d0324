package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadFrom(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
[journal]
path = "/tmp/pm/journal.jsonl"
history_limit = 10

[tui]
theme = "dark"

[log]
level = "debug"
`
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom() error = %v", err)
	}

	if cfg.Journal.Path != "/tmp/pm/journal.jsonl" {
		t.Errorf("Journal.Path = %q", cfg.Journal.Path)
	}
	if cfg.Journal.HistoryLimit != 10 {
		t.Errorf("Journal.HistoryLimit = %d, want 10", cfg.Journal.HistoryLimit)
	}
	if cfg.TUI.Theme != "dark" {
		t.Errorf("TUI.Theme = %q, want %q", cfg.TUI.Theme, "dark")
	}
	// Unset values fall back to defaults
	if cfg.TUI.RefreshInterval != 1000 {
		t.Errorf("TUI.RefreshInterval = %d, want 1000", cfg.TUI.RefreshInterval)
	}
	if cfg.Tail.Interval != 1000 {
		t.Errorf("Tail.Interval = %d, want 1000", cfg.Tail.Interval)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("Log.Level = %q, want %q", cfg.Log.Level, "debug")
	}
}

func TestLoadFromInvalidTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.toml")
	if err := os.WriteFile(path, []byte("[journal\npath = "), 0600); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	if _, err := LoadFrom(path); err == nil {
		t.Error("LoadFrom() error = nil for invalid TOML")
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("XDG_CONFIG_HOME", "")
	t.Setenv("PAUSEMARK_JOURNAL_PATH", "/env/journal.jsonl")
	t.Setenv("PAUSEMARK_TAIL_INTERVAL", "250")
	t.Setenv("PAUSEMARK_TUI_THEME", "light")
	t.Setenv("PAUSEMARK_LOG_LEVEL", "warn")
	t.Setenv("PAUSEMARK_JOURNAL_HISTORY_LIMIT", "not-a-number")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Journal.Path != "/env/journal.jsonl" {
		t.Errorf("Journal.Path = %q", cfg.Journal.Path)
	}
	if cfg.Tail.Interval != 250 {
		t.Errorf("Tail.Interval = %d, want 250", cfg.Tail.Interval)
	}
	if cfg.TUI.Theme != "light" {
		t.Errorf("TUI.Theme = %q, want light", cfg.TUI.Theme)
	}
	if cfg.Log.Level != "warn" {
		t.Errorf("Log.Level = %q, want warn", cfg.Log.Level)
	}
	// Unparseable numbers are ignored
	if cfg.Journal.HistoryLimit != 50 {
		t.Errorf("Journal.HistoryLimit = %d, want 50", cfg.Journal.HistoryLimit)
	}
}

func TestFindConfigFileXDG(t *testing.T) {
	home := t.TempDir()
	xdg := filepath.Join(home, "xdg")
	t.Setenv("HOME", home)
	t.Setenv("XDG_CONFIG_HOME", xdg)

	if got := FindConfigFile(); got != "" {
		t.Errorf("FindConfigFile() = %q, want empty", got)
	}

	path := filepath.Join(xdg, "pausemark", "config.toml")
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		t.Fatalf("MkdirAll() error = %v", err)
	}
	if err := os.WriteFile(path, nil, 0600); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	if got := FindConfigFile(); got != path {
		t.Errorf("FindConfigFile() = %q, want %q", got, path)
	}

	// ~/.pausemarkrc wins over XDG
	rc := filepath.Join(home, ".pausemarkrc")
	if err := os.WriteFile(rc, nil, 0600); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	if got := FindConfigFile(); got != rc {
		t.Errorf("FindConfigFile() = %q, want %q", got, rc)
	}
}

func TestValidate(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Default().Validate() error = %v", err)
	}

	cfg.TUI.Theme = "neon"
	cfg.Log.Level = "trace"
	cfg.Journal.HistoryLimit = -1
	cfg.Tail.Interval = -5

	err := cfg.Validate()
	if err == nil {
		t.Fatal("Validate() error = nil, want errors")
	}
	msg := err.Error()
	for _, want := range []string{"tui: invalid theme", "log: invalid log level", "journal: history_limit", "tail: interval"} {
		if !strings.Contains(msg, want) {
			t.Errorf("Validate() error %q missing %q", msg, want)
		}
	}
}

func TestValidateBounds(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"zero interval uses default", func(c *Config) { c.Tail.Interval = 0 }, ""},
		{"fast tail", func(c *Config) { c.Tail.Interval = 10 }, "tail: interval must be 0 or at least 50ms"},
		{"fast refresh", func(c *Config) { c.TUI.RefreshInterval = 1 }, "tui: refresh_interval"},
		{"huge history", func(c *Config) { c.Journal.HistoryLimit = MaxHistoryLimit + 1 }, "journal: history_limit"},
		{"log into journal", func(c *Config) { c.Log.File = c.Journal.Path }, "log: file must not be the journal"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Validate() error = %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() error = %v, want %q", err, tt.wantErr)
			}
		})
	}
}
