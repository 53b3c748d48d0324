package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	pmerrors "github.com/tessro/pausemark/internal/errors"
	"github.com/tessro/pausemark/internal/recorder"
)

var historyFormat string

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recorded pauses",
	Long: `List the pause and reset events kept in the journal.

Formats: table (default), json, yaml. --json is the same as --format json.`,
	Args: cobra.NoArgs,
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().StringVarP(&historyFormat, "format", "f", "table", "output format (table, json, yaml)")
	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	format, err := recorder.ParseExportFormat(historyFormat)
	if err != nil {
		return err
	}
	if JSONOutput() {
		format = recorder.FormatJSON
	}

	rec, err := openRecorder()
	if err != nil {
		return err
	}

	if err := rec.Verify(ctx); err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Warning: %v\n", err)
		if s := pmerrors.GetSuggestion(err); s != "" && Verbose() {
			fmt.Fprintf(cmd.ErrOrStderr(), "  %s\n", s)
		}
	}

	snap, err := rec.Snapshot(ctx)
	if err != nil {
		return err
	}

	return recorder.Export(cmd.OutOrStdout(), snap, format)
}
