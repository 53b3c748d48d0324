package cli

import (
	"time"

	"github.com/spf13/cobra"
	"github.com/tessro/pausemark/internal/logging"
	"github.com/tessro/pausemark/internal/recorder"
	"github.com/tessro/pausemark/internal/timecode"
	"github.com/tessro/pausemark/internal/tui"
	"github.com/tessro/pausemark/internal/tui/styles"
)

var (
	tuiRefresh int
	tuiStart   string
)

var tuiCmd = &cobra.Command{
	Use:     "ui",
	Aliases: []string{"tui"},
	Short:   "Launch interactive dashboard",
	Long: `Launch the interactive terminal dashboard.

The dashboard starts a fresh session: the tally is reset and the playback
clock starts running. Pausing records the clock position.

Panels:
  • Now Playing - playback state and clock
  • Tally - last pause and pause/resume count
  • History - recorded pauses, newest first

Keyboard shortcuts:
  q, Ctrl+C    Quit
  ?            Help
  Space        Pause/Resume
  r            Reset tally
  c            Copy last pause
  g            Go to time
  Tab          Switch panel`,
	Args: cobra.NoArgs,
	RunE: runTUI,
}

func init() {
	tuiCmd.Flags().IntVar(&tuiRefresh, "refresh", 0, "refresh interval in milliseconds (default from config)")
	tuiCmd.Flags().StringVarP(&tuiStart, "start", "s", "00:00:00", "clock start position")
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, args []string) error {
	start, err := timecode.ParseLoose(tuiStart)
	if err != nil {
		return err
	}

	refresh := tuiRefresh
	if refresh <= 0 {
		refresh = cfg.TUI.RefreshInterval
	}

	// stderr belongs to the alt screen; only a log file gets TUI logs
	log := logger
	if cfg.Log.File == "" {
		log = logging.Discard()
	}

	rec, err := recorder.NewFile(cfg.Journal.Path, cfg.Journal.HistoryLimit, log)
	if err != nil {
		return err
	}

	styles.Apply(cfg.TUI.Theme)
	app := tui.NewApp(rec, time.Duration(refresh)*time.Millisecond, log)
	return tui.Run(app, start)
}
