package cli

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
	"github.com/tessro/pausemark/internal/config"
	pmerrors "github.com/tessro/pausemark/internal/errors"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
	Long:  `Commands for viewing and editing pausemark configuration.`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	Long:  `Display the current configuration values, after defaults and environment overrides.`,
	RunE:  runConfigShow,
}

var configPathCmd = &cobra.Command{
	Use:         "path",
	Short:       "Show configuration file path",
	Annotations: map[string]string{configOptional: "true"},
	RunE:        runConfigPath,
}

var configEditCmd = &cobra.Command{
	Use:   "edit",
	Short: "Edit configuration file",
	Long:  `Open the configuration file in your default editor.`,
	RunE:  runConfigEdit,
}

var configInitCmd = &cobra.Command{
	Use:         "init",
	Short:       "Initialize configuration",
	Long:        `Create a new configuration file with default values.`,
	Annotations: map[string]string{configOptional: "true"},
	RunE:        runConfigInit,
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Long: `Set a configuration value.

Supported keys:
  journal.path           Journal file location
  journal.history_limit  Events kept in history
  tail.interval          Poll interval in milliseconds
  tail.no_emoji          Disable emoji in tail output (true/false)
  tail.timestamp         Show timestamps in tail output (true/false)
  tui.theme              Color theme (auto/dark/light)
  tui.refresh_interval   TUI refresh interval in milliseconds
  log.level              Log level (debug/info/warn/error)
  log.file               Log file (empty logs to stderr)

Examples:
  pausemark config set tui.theme light
  pausemark config set journal.history_limit 200`,
	Args: cobra.ExactArgs(2),
	RunE: runConfigSet,
}

var configThemeCmd = &cobra.Command{
	Use:   "theme",
	Short: "Interactively select the TUI theme",
	Long:  `Shows a picker to select the color theme used by 'pausemark ui'.`,
	RunE:  runConfigTheme,
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configPathCmd)
	configCmd.AddCommand(configEditCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configThemeCmd)
	rootCmd.AddCommand(configCmd)
}

// configKeyKinds lists the settable keys and how their values are typed.
var configKeyKinds = map[string]string{
	"journal.path":          "string",
	"journal.history_limit": "int",
	"tail.interval":         "int",
	"tail.no_emoji":         "bool",
	"tail.timestamp":        "bool",
	"tui.theme":             "string",
	"tui.refresh_interval":  "int",
	"log.level":             "string",
	"log.file":              "string",
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	if JSONOutput() {
		return printJSON(out, cfg)
	}

	// Pretty print as TOML
	encoder := toml.NewEncoder(out)
	encoder.Indent = "  "
	return encoder.Encode(cfg)
}

func runConfigPath(cmd *cobra.Command, args []string) error {
	path := getConfigPath()
	_, err := os.Stat(path)
	exists := err == nil

	if JSONOutput() {
		return printJSON(cmd.OutOrStdout(), map[string]any{
			"path":   path,
			"exists": exists,
		})
	}

	if exists || !Verbose() {
		fmt.Fprintln(cmd.OutOrStdout(), path)
		return nil
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s (not created yet)\n", path)
	return nil
}

func runConfigEdit(cmd *cobra.Command, args []string) error {
	path := getConfigPath()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return fmt.Errorf("%w at %s", pmerrors.ErrConfigNotFound, path)
	}

	editor, err := findEditor()
	if err != nil {
		return err
	}

	c := exec.Command(editor, path)
	c.Stdin, c.Stdout, c.Stderr = os.Stdin, os.Stdout, os.Stderr
	return c.Run()
}

// findEditor prefers $EDITOR, then $VISUAL, then the first common editor
// found on PATH.
func findEditor() (string, error) {
	for _, env := range []string{"EDITOR", "VISUAL"} {
		if e := os.Getenv(env); e != "" {
			return e, nil
		}
	}
	for _, candidate := range []string{"nano", "vim", "vi", "notepad"} {
		if p, err := exec.LookPath(candidate); err == nil {
			return p, nil
		}
	}
	return "", fmt.Errorf("no editor found; set EDITOR")
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	configPath := getConfigPath()

	if _, err := os.Stat(configPath); err == nil {
		return fmt.Errorf("config file already exists at %s", configPath)
	}

	if err := writeConfigFile(configPath, config.Default()); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if JSONOutput() {
		return printJSON(out, map[string]string{
			"status": "created",
			"path":   configPath,
		})
	}

	fmt.Fprintf(out, "Created config file: %s\n", configPath)
	fmt.Fprintln(out, "\nNext steps:")
	fmt.Fprintln(out, "  1. Run 'pausemark ui' to start a session")
	fmt.Fprintln(out, "  2. Run 'pausemark status' to see the tally from another terminal")
	return nil
}

func getConfigPath() string {
	if cfgFile != "" {
		return cfgFile
	}
	if path := config.FindConfigFile(); path != "" {
		return path
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return ".pausemarkrc"
	}
	return filepath.Join(home, ".pausemarkrc")
}

// writeConfigFile writes v as TOML with the standard header.
func writeConfigFile(path string, v any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer func() { _ = f.Close() }()

	_, _ = fmt.Fprintln(f, "# pausemark Configuration")
	_, _ = fmt.Fprintln(f, "# https://github.com/tessro/pausemark")
	_, _ = fmt.Fprintln(f, "")

	encoder := toml.NewEncoder(f)
	encoder.Indent = "  "
	if err := encoder.Encode(v); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// typedConfigValue converts a raw string into the type the key expects.
func typedConfigValue(key, value string) (any, error) {
	kind, ok := configKeyKinds[key]
	if !ok {
		return nil, fmt.Errorf("unknown config key: %s", key)
	}

	switch kind {
	case "int":
		i, err := strconv.Atoi(value)
		if err != nil {
			return nil, fmt.Errorf("value must be an integer for %s", key)
		}
		return i, nil
	case "bool":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return nil, fmt.Errorf("value must be true or false for %s", key)
		}
		return b, nil
	default:
		return value, nil
	}
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	key := args[0]
	value := args[1]

	typedValue, err := typedConfigValue(key, value)
	if err != nil {
		return err
	}

	configPath := getConfigPath()
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return fmt.Errorf("%w at %s", pmerrors.ErrConfigNotFound, configPath)
	}

	// Edit the raw TOML so unset keys stay unset
	data, err := os.ReadFile(configPath)
	if err != nil {
		return fmt.Errorf("failed to read config: %w", err)
	}

	rawConfig := make(map[string]any)
	if _, err := toml.Decode(string(data), &rawConfig); err != nil {
		return fmt.Errorf("failed to parse config: %w", err)
	}

	section, field, _ := strings.Cut(key, ".")
	sectionMap, ok := rawConfig[section].(map[string]any)
	if !ok {
		sectionMap = make(map[string]any)
		rawConfig[section] = sectionMap
	}
	sectionMap[field] = typedValue

	// Validate the result before writing it back
	var check config.Config
	if _, err := toml.Decode(encodeTOML(rawConfig), &check); err != nil {
		return fmt.Errorf("failed to parse config: %w", err)
	}
	check.ApplyDefaults()
	if err := check.Validate(); err != nil {
		return fmt.Errorf("%w: %w", pmerrors.ErrInvalidConfig, err)
	}

	if err := writeConfigFile(configPath, rawConfig); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if JSONOutput() {
		return printJSON(out, map[string]string{
			"status": "updated",
			"key":    key,
			"value":  value,
		})
	}
	fmt.Fprintf(out, "Set %s = %s\n", key, value)
	return nil
}

func encodeTOML(v any) string {
	var sb strings.Builder
	_ = toml.NewEncoder(&sb).Encode(v)
	return sb.String()
}

func runConfigTheme(cmd *cobra.Command, args []string) error {
	if !isTerminal() {
		return pmerrors.WithSuggestion(pmerrors.ErrNotInteractive,
			"Use 'pausemark config set tui.theme <auto|dark|light>'")
	}

	selected := cfg.TUI.Theme
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Select TUI theme").
				Description("Auto follows the terminal background").
				Options(
					huh.NewOption("Auto", "auto"),
					huh.NewOption("Dark (Mocha)", "dark"),
					huh.NewOption("Light (Latte)", "light"),
				).
				Value(&selected),
		),
	)

	if err := form.Run(); err != nil {
		return fmt.Errorf("selection cancelled: %w", err)
	}

	return runConfigSet(cmd, []string{"tui.theme", selected})
}
