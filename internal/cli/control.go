package cli

import (
	"context"
	"fmt"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
	pmerrors "github.com/tessro/pausemark/internal/errors"
	"github.com/tessro/pausemark/internal/session"
	"github.com/tessro/pausemark/internal/timecode"
)

var pauseCmd = &cobra.Command{
	Use:   "pause [HH:MM:SS]",
	Short: "Record a pause",
	Long: `Record a pause at the given playback position.

Without an argument, pausemark prompts for the position when run in a
terminal. A pause at 00:00:00 on an empty tally resets it instead.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPause,
}

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Reset the tally",
	Long:  `Clear the pause count and last pause position.`,
	Args:  cobra.NoArgs,
	RunE:  runReset,
}

// promptPosition asks for a timecode; replaced in tests.
var promptPosition = func() (string, error) {
	if !isTerminal() {
		return "", pmerrors.ErrNotInteractive
	}

	var value string
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Pause position").
				Placeholder("HH:MM:SS").
				Validate(func(s string) error {
					_, err := timecode.Parse(s)
					return err
				}).
				Value(&value),
		),
	)
	if err := form.Run(); err != nil {
		return "", fmt.Errorf("prompt cancelled: %w", err)
	}
	return value, nil
}

func init() {
	rootCmd.AddCommand(pauseCmd)
	rootCmd.AddCommand(resetCmd)
}

func runPause(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	var text string
	if len(args) == 1 {
		text = args[0]
	} else {
		var err error
		if text, err = promptPosition(); err != nil {
			return err
		}
	}

	position, err := timecode.Parse(text)
	if err != nil {
		return err
	}

	rec, err := openRecorder()
	if err != nil {
		return err
	}

	if err := rec.Record(ctx, position); err != nil {
		return fmt.Errorf("failed to record pause: %w", err)
	}
	logger.Debug("recorded pause", "position", position.String(), "journal", rec.Path())

	return printLabels(ctx, cmd, rec)
}

func runReset(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	rec, err := openRecorder()
	if err != nil {
		return err
	}

	if err := rec.Reset(ctx); err != nil {
		return fmt.Errorf("failed to reset tally: %w", err)
	}
	logger.Debug("reset tally", "journal", rec.Path())

	if JSONOutput() {
		return printJSON(cmd.OutOrStdout(), map[string]string{"status": "reset"})
	}
	fmt.Fprintln(cmd.OutOrStdout(), "Tally reset")
	return nil
}

// printLabels writes the two display labels for the recorder's current tally.
func printLabels(ctx context.Context, cmd *cobra.Command, rec interface {
	Count(context.Context) (int, error)
	LastTimecode(context.Context) (timecode.Timecode, error)
}) error {
	count, err := rec.Count(ctx)
	if err != nil {
		return err
	}
	last, err := rec.LastTimecode(ctx)
	if err != nil {
		return err
	}

	labels := session.NewLabels(count, last)
	out := cmd.OutOrStdout()
	if JSONOutput() {
		return printJSON(out, labels)
	}
	fmt.Fprintln(out, labels.LastPause)
	fmt.Fprintln(out, labels.Count)
	return nil
}
