package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	pmerrors "github.com/tessro/pausemark/internal/errors"
)

// execute runs the root command with fresh flag state and an isolated home.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(home, ".config"))
	for _, key := range []string{"PAUSEMARK_JOURNAL_PATH", "PAUSEMARK_LOG_FILE", "PAUSEMARK_LOG_LEVEL", "PAUSEMARK_TUI_THEME"} {
		t.Setenv(key, "")
	}

	cfgFile, journalPath = "", ""
	jsonOut, verbose = false, false
	parseLoose = false
	historyFormat = "table"
	tailInterval = 0

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func journal(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "journal.jsonl")
}

func TestParseCommand(t *testing.T) {
	tests := []struct {
		args []string
		want string
	}{
		{[]string{"parse", "01:02:03"}, "3723\n"},
		{[]string{"parse", "00:00:00"}, "0\n"},
		{[]string{"parse", "99:59:59"}, "359999\n"},
		{[]string{"parse", "--loose", "1:30"}, "90\n"},
	}

	for _, tt := range tests {
		t.Run(strings.Join(tt.args, " "), func(t *testing.T) {
			got, err := execute(t, tt.args...)
			if err != nil {
				t.Fatalf("execute() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("output = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParseCommandMalformed(t *testing.T) {
	for _, in := range []string{"1:2:3", "aa:bb:cc"} {
		_, err := execute(t, "parse", in)
		if !errors.Is(err, pmerrors.ErrMalformedTimecode) {
			t.Errorf("parse %q error = %v, want ErrMalformedTimecode", in, err)
		}
	}
}

func TestFormatCommand(t *testing.T) {
	got, err := execute(t, "format", "3723")
	if err != nil {
		t.Fatalf("execute() error = %v", err)
	}
	if got != "01:02:03\n" {
		t.Errorf("output = %q, want 01:02:03", got)
	}

	got, err = execute(t, "--json", "format", "59")
	if err != nil {
		t.Fatalf("execute() error = %v", err)
	}
	var data map[string]any
	if err := json.Unmarshal([]byte(got), &data); err != nil {
		t.Fatalf("invalid JSON %q: %v", got, err)
	}
	if data["timecode"] != "00:00:59" {
		t.Errorf("timecode = %v, want 00:00:59", data["timecode"])
	}

	if _, err := execute(t, "format", "-5"); err == nil {
		t.Error("format -5 should fail")
	}
	if _, err := execute(t, "format", "abc"); err == nil {
		t.Error("format abc should fail")
	}
}

func TestPauseAndStatus(t *testing.T) {
	path := journal(t)

	got, err := execute(t, "--journal", path, "pause", "00:01:05")
	if err != nil {
		t.Fatalf("pause error = %v", err)
	}
	if got != "Last Pause: 00:01:05\nNum PauseResume: 1\n" {
		t.Errorf("pause output = %q", got)
	}

	if _, err := execute(t, "--journal", path, "pause", "01:00:00"); err != nil {
		t.Fatalf("pause error = %v", err)
	}

	got, err = execute(t, "--journal", path, "status")
	if err != nil {
		t.Fatalf("status error = %v", err)
	}
	if got != "Last Pause: 01:00:00\nNum PauseResume: 2\n" {
		t.Errorf("status output = %q", got)
	}

	got, err = execute(t, "--journal", path, "--json", "status")
	if err != nil {
		t.Fatalf("status error = %v", err)
	}
	var data map[string]any
	if err := json.Unmarshal([]byte(got), &data); err != nil {
		t.Fatalf("invalid JSON %q: %v", got, err)
	}
	if data["last_pause"] != "Last Pause: 01:00:00" || data["num_events"] != float64(2) {
		t.Errorf("status JSON = %v", data)
	}
}

func TestPauseRejectsMalformed(t *testing.T) {
	path := journal(t)
	_, err := execute(t, "--journal", path, "pause", "1:00")
	if !errors.Is(err, pmerrors.ErrMalformedTimecode) {
		t.Fatalf("pause error = %v, want ErrMalformedTimecode", err)
	}
	if _, statErr := os.Stat(path); !os.IsNotExist(statErr) {
		t.Error("journal written for a malformed timecode")
	}
}

func TestPausePrompt(t *testing.T) {
	orig := promptPosition
	defer func() { promptPosition = orig }()

	path := journal(t)
	promptPosition = func() (string, error) { return "00:00:42", nil }
	got, err := execute(t, "--journal", path, "pause")
	if err != nil {
		t.Fatalf("pause error = %v", err)
	}
	if !strings.Contains(got, "Last Pause: 00:00:42") {
		t.Errorf("output = %q", got)
	}

	promptPosition = func() (string, error) { return "", pmerrors.ErrNotInteractive }
	_, err = execute(t, "--journal", path, "pause")
	if !errors.Is(err, pmerrors.ErrNotInteractive) {
		t.Errorf("pause error = %v, want ErrNotInteractive", err)
	}
}

func TestPauseAtZeroOnEmptyTallyResets(t *testing.T) {
	path := journal(t)
	got, err := execute(t, "--journal", path, "pause", "00:00:00")
	if err != nil {
		t.Fatalf("pause error = %v", err)
	}
	if got != "Last Pause: 00:00:00\nNum PauseResume: 0\n" {
		t.Errorf("output = %q", got)
	}
}

func TestResetCommand(t *testing.T) {
	path := journal(t)
	if _, err := execute(t, "--journal", path, "pause", "00:10:00"); err != nil {
		t.Fatalf("pause error = %v", err)
	}

	got, err := execute(t, "--journal", path, "reset")
	if err != nil {
		t.Fatalf("reset error = %v", err)
	}
	if got != "Tally reset\n" {
		t.Errorf("reset output = %q", got)
	}

	got, err = execute(t, "--journal", path, "status")
	if err != nil {
		t.Fatalf("status error = %v", err)
	}
	if got != "Last Pause: 00:00:00\nNum PauseResume: 0\n" {
		t.Errorf("status output = %q", got)
	}
}

func TestHistoryCommand(t *testing.T) {
	path := journal(t)
	for _, pos := range []string{"00:00:10", "00:02:00"} {
		if _, err := execute(t, "--journal", path, "pause", pos); err != nil {
			t.Fatalf("pause error = %v", err)
		}
	}

	got, err := execute(t, "--journal", path, "history", "--format", "yaml")
	if err != nil {
		t.Fatalf("history error = %v", err)
	}
	for _, want := range []string{"count: 2", "00:02:00", "seconds: 10"} {
		if !strings.Contains(got, want) {
			t.Errorf("yaml output missing %q:\n%s", want, got)
		}
	}

	got, err = execute(t, "--journal", path, "--json", "history")
	if err != nil {
		t.Fatalf("history error = %v", err)
	}
	var doc struct {
		Count  int `json:"count"`
		Events []struct {
			Timecode string `json:"timecode"`
		} `json:"events"`
	}
	if err := json.Unmarshal([]byte(got), &doc); err != nil {
		t.Fatalf("invalid JSON %q: %v", got, err)
	}
	if doc.Count != 2 || len(doc.Events) != 2 {
		t.Errorf("history JSON = %+v", doc)
	}

	if _, err := execute(t, "--journal", path, "history", "--format", "xml"); err == nil {
		t.Error("history --format xml should fail")
	}
}

func TestConfigInitSetShow(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pausemark.toml")

	got, err := execute(t, "-c", path, "config", "init")
	if err != nil {
		t.Fatalf("config init error = %v", err)
	}
	if !strings.Contains(got, "Created config file: "+path) {
		t.Errorf("init output = %q", got)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if !strings.HasPrefix(string(data), "# pausemark Configuration") {
		t.Errorf("config file missing header:\n%s", data)
	}

	if _, err := execute(t, "-c", path, "config", "init"); err == nil {
		t.Error("second config init should fail")
	}

	if _, err := execute(t, "-c", path, "config", "set", "tui.theme", "light"); err != nil {
		t.Fatalf("config set error = %v", err)
	}
	if _, err := execute(t, "-c", path, "config", "set", "journal.history_limit", "7"); err != nil {
		t.Fatalf("config set error = %v", err)
	}

	got, err = execute(t, "-c", path, "--json", "config", "show")
	if err != nil {
		t.Fatalf("config show error = %v", err)
	}
	var shown struct {
		Journal struct {
			HistoryLimit int `json:"history_limit"`
		} `json:"journal"`
		TUI struct {
			Theme string `json:"theme"`
		} `json:"tui"`
	}
	if err := json.Unmarshal([]byte(got), &shown); err != nil {
		t.Fatalf("invalid JSON %q: %v", got, err)
	}
	if shown.TUI.Theme != "light" || shown.Journal.HistoryLimit != 7 {
		t.Errorf("config show = %+v", shown)
	}
}

func TestConfigSetRejectsBadValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pausemark.toml")
	if _, err := execute(t, "-c", path, "config", "init"); err != nil {
		t.Fatalf("config init error = %v", err)
	}

	_, err := execute(t, "-c", path, "config", "set", "tui.theme", "neon")
	if !errors.Is(err, pmerrors.ErrInvalidConfig) {
		t.Errorf("set theme neon error = %v, want ErrInvalidConfig", err)
	}
	if _, err := execute(t, "-c", path, "config", "set", "tail.interval", "soon"); err == nil {
		t.Error("set tail.interval soon should fail")
	}
	if _, err := execute(t, "-c", path, "config", "set", "nope.key", "1"); err == nil {
		t.Error("set unknown key should fail")
	}
}

func TestMissingConfigFile(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing.toml")
	_, err := execute(t, "-c", missing, "config", "show")
	if !errors.Is(err, pmerrors.ErrConfigNotFound) {
		t.Errorf("error = %v, want ErrConfigNotFound", err)
	}

	got, err := execute(t, "-c", missing, "config", "path")
	if err != nil {
		t.Fatalf("config path error = %v", err)
	}
	if strings.TrimSpace(got) != missing {
		t.Errorf("config path = %q, want %q", got, missing)
	}
}

func TestTailRejectsBadInterval(t *testing.T) {
	path := journal(t)
	for _, interval := range []string{"-1s", "10ms"} {
		_, err := execute(t, "--journal", path, "tail", "--interval", interval)
		if err == nil || !strings.Contains(err.Error(), "--interval must be at least 50ms") {
			t.Errorf("tail --interval %s error = %v, want interval error", interval, err)
		}
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("journal touched for a rejected interval")
	}
}

func TestVersionCommand(t *testing.T) {
	got, err := execute(t, "version")
	if err != nil {
		t.Fatalf("version error = %v", err)
	}
	if got != "pausemark dev\n" {
		t.Errorf("version output = %q", got)
	}
}
