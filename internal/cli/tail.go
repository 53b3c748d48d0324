package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/tessro/pausemark/internal/config"
	"github.com/tessro/pausemark/internal/tail"
	"golang.org/x/sync/errgroup"
)

var (
	tailNoEmoji   bool
	tailTimestamp bool
	tailFormat    string
	tailInterval  time.Duration
)

var tailCmd = &cobra.Command{
	Use:   "tail",
	Short: "Follow the tally in real-time",
	Long: `Watch the journal and print tally changes as they happen.

Events tracked:
  - Pauses (new count and last pause position)
  - Resets

Template fields for --format:
  {{.Type}} {{.Count}} {{.Seconds}} {{.LastPause}}
  {{.LastPauseLabel}} {{.CountLabel}} {{.Ago}} {{.Timestamp}}`,
	Args: cobra.NoArgs,
	RunE: runTail,
}

func init() {
	tailCmd.Flags().BoolVar(&tailNoEmoji, "no-emoji", false, "disable emoji output")
	tailCmd.Flags().BoolVarP(&tailTimestamp, "timestamp", "t", false, "show timestamps")
	tailCmd.Flags().StringVarP(&tailFormat, "format", "f", "", "custom format template")
	tailCmd.Flags().DurationVarP(&tailInterval, "interval", "i", 0, "poll interval (default from config)")

	rootCmd.AddCommand(tailCmd)
}

func runTail(cmd *cobra.Command, args []string) error {
	interval := tailInterval
	if interval == 0 {
		interval = time.Duration(cfg.Tail.Interval) * time.Millisecond
	} else if interval < config.MinPollInterval*time.Millisecond {
		return fmt.Errorf("--interval must be at least %dms, got %s", config.MinPollInterval, interval)
	}

	rec, err := openRecorder()
	if err != nil {
		return err
	}

	formatter := tail.NewFormatter(
		tail.WithEmoji(!(tailNoEmoji || cfg.Tail.NoEmoji)),
		tail.WithTimestamp(tailTimestamp || cfg.Tail.Timestamp),
		tail.WithTemplate(tailFormat),
	)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	watcher := tail.NewWatcher(rec, interval, logger)
	out := cmd.OutOrStdout()

	if !JSONOutput() {
		fmt.Fprintf(out, "Watching %s (Ctrl+C to stop)\n", rec.Path())
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		err := watcher.Start(ctx)
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	})
	g.Go(func() error {
		for e := range watcher.Events() {
			if JSONOutput() {
				if err := printTailEvent(cmd, e); err != nil {
					return err
				}
				continue
			}
			fmt.Fprintln(out, formatter.Format(e))
		}
		return nil
	})

	return g.Wait()
}

func printTailEvent(cmd *cobra.Command, e tail.Event) error {
	data := map[string]any{
		"type":      e.Type.String(),
		"timestamp": e.Timestamp,
	}
	if e.Current != nil {
		data["count"] = e.Current.Count
		data["last_pause"] = e.Current.Last.String()
	}
	return printJSON(cmd.OutOrStdout(), data)
}
