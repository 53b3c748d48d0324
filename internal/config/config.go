package config

import (
	"os"
	"path/filepath"
	"strconv"

	"github.com/BurntSushi/toml"
)

// EnvPrefix starts every environment override, e.g. PAUSEMARK_TUI_THEME.
const EnvPrefix = "PAUSEMARK_"

// Load reads configuration from standard locations with environment overrides.
// Search order: ~/.pausemarkrc, $XDG_CONFIG_HOME/pausemark/config.toml, ~/.config/pausemark/config.toml
func Load() (*Config, error) {
	return load(FindConfigFile())
}

// LoadFrom reads configuration from a specific file path.
func LoadFrom(path string) (*Config, error) {
	if path == "" {
		return nil, os.ErrNotExist
	}
	return load(path)
}

func load(path string) (*Config, error) {
	cfg := &Config{}
	if path != "" {
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, err
		}
	}

	cfg.ApplyDefaults()
	applyEnvOverrides(cfg)
	return cfg, nil
}

// FindConfigFile returns the first existing config file path, or "".
func FindConfigFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}

	for _, p := range searchPaths(home) {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

func searchPaths(home string) []string {
	xdg := os.Getenv("XDG_CONFIG_HOME")
	if xdg == "" {
		xdg = filepath.Join(home, ".config")
	}
	return []string{
		filepath.Join(home, ".pausemarkrc"),
		filepath.Join(xdg, "pausemark", "config.toml"),
	}
}

// applyEnvOverrides copies PAUSEMARK_* variables over the loaded values.
// Empty variables and unparseable numbers are ignored.
func applyEnvOverrides(cfg *Config) {
	strs := map[string]*string{
		"JOURNAL_PATH": &cfg.Journal.Path,
		"TUI_THEME":    &cfg.TUI.Theme,
		"LOG_LEVEL":    &cfg.Log.Level,
		"LOG_FILE":     &cfg.Log.File,
	}
	for name, dst := range strs {
		if v := os.Getenv(EnvPrefix + name); v != "" {
			*dst = v
		}
	}

	ints := map[string]*int{
		"JOURNAL_HISTORY_LIMIT": &cfg.Journal.HistoryLimit,
		"TAIL_INTERVAL":         &cfg.Tail.Interval,
		"TUI_REFRESH_INTERVAL":  &cfg.TUI.RefreshInterval,
	}
	for name, dst := range ints {
		if v := os.Getenv(EnvPrefix + name); v != "" {
			if i, err := strconv.Atoi(v); err == nil {
				*dst = i
			}
		}
	}
}
