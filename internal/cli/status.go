package cli

import (
	"context"
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the pause tally",
	Long:  `Shows the position of the last pause and the number of pause/resume events.`,
	Args:  cobra.NoArgs,
	RunE:  runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	rec, err := openRecorder()
	if err != nil {
		return err
	}

	if err := printLabels(ctx, cmd, rec); err != nil {
		return err
	}

	if !Verbose() || JSONOutput() {
		return nil
	}

	snap, err := rec.Snapshot(ctx)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if !snap.LastAt.IsZero() {
		fmt.Fprintf(out, "  paused:  %s\n", humanize.Time(snap.LastAt))
	}
	fmt.Fprintf(out, "  journal: %s\n", rec.Path())
	return nil
}
