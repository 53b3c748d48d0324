package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/tessro/pausemark/internal/config"
	pmerrors "github.com/tessro/pausemark/internal/errors"
	"github.com/tessro/pausemark/internal/logging"
	"github.com/tessro/pausemark/internal/recorder"
)

var (
	cfgFile     string
	journalPath string
	jsonOut     bool
	verbose     bool

	cfg      *config.Config
	logger   *slog.Logger
	closeLog = func() error { return nil }
)

var rootCmd = &cobra.Command{
	Use:   "pausemark",
	Short: "Count pause/resume events against a playback clock",
	Long: `Pausemark keeps a tally of pause/resume events for a playback session.

Positions are written HH:MM:SS. Each pause records the position, and the
tally shows the event count and the position of the most recent pause.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := initConfig(cmd); err != nil {
			return err
		}
		return initLogging()
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		return closeLog()
	},
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (default: ~/.pausemarkrc)")
	rootCmd.PersistentFlags().StringVar(&journalPath, "journal", "", "journal file (overrides journal.path)")
	rootCmd.PersistentFlags().BoolVarP(&jsonOut, "json", "j", false, "output as JSON")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

// configOptional marks commands that run without an existing config file.
const configOptional = "config-optional"

func initConfig(cmd *cobra.Command) error {
	var err error
	if cfgFile != "" {
		if _, statErr := os.Stat(cfgFile); os.IsNotExist(statErr) {
			if cmd.Annotations[configOptional] == "" {
				return fmt.Errorf("%w: %s", pmerrors.ErrConfigNotFound, cfgFile)
			}
			cfg = config.Default()
		} else {
			cfg, err = config.LoadFrom(cfgFile)
		}
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return fmt.Errorf("failed to load config: %w: %w", pmerrors.ErrInvalidConfig, err)
	}

	if journalPath != "" {
		cfg.Journal.Path = journalPath
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("%w: %w", pmerrors.ErrInvalidConfig, err)
	}

	return nil
}

func initLogging() error {
	l, closeFn, err := logging.New(cfg.Log, verbose)
	if err != nil {
		return err
	}
	logger = l
	closeLog = closeFn
	return nil
}

// openRecorder returns the journal-backed recorder named by the config.
func openRecorder() (*recorder.File, error) {
	return recorder.NewFile(cfg.Journal.Path, cfg.Journal.HistoryLimit, logger)
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, pmerrors.Format(err))
		os.Exit(1)
	}
}

// JSONOutput returns true if JSON output is requested.
func JSONOutput() bool {
	return jsonOut
}

// Verbose returns true if verbose output is requested.
func Verbose() bool {
	return verbose
}
