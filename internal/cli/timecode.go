package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/tessro/pausemark/internal/timecode"
)

var parseLoose bool

var parseCmd = &cobra.Command{
	Use:   "parse <HH:MM:SS>",
	Short: "Convert a timecode to seconds",
	Long: `Convert an HH:MM:SS timecode to whole seconds.

By default the input is read by position: hours in the first two
characters, minutes in characters four and five, seconds from the seventh
character on. With --loose, the input is split on ':' instead, so "90",
"1:30" and "1:02:03" are all accepted.`,
	Args: cobra.ExactArgs(1),
	RunE: runParse,
}

var formatCmd = &cobra.Command{
	Use:   "format <seconds>",
	Short: "Convert seconds to a timecode",
	Args:  cobra.ExactArgs(1),
	RunE:  runFormat,
}

func init() {
	parseCmd.Flags().BoolVarP(&parseLoose, "loose", "l", false, "split on ':' instead of fixed positions")

	rootCmd.AddCommand(parseCmd)
	rootCmd.AddCommand(formatCmd)
}

func runParse(cmd *cobra.Command, args []string) error {
	parse := timecode.Parse
	if parseLoose {
		parse = timecode.ParseLoose
	}

	tc, err := parse(args[0])
	if err != nil {
		return err
	}

	if JSONOutput() {
		return printJSON(cmd.OutOrStdout(), map[string]any{
			"input":    args[0],
			"seconds":  int(tc),
			"timecode": tc.String(),
		})
	}

	fmt.Fprintln(cmd.OutOrStdout(), int(tc))
	return nil
}

func runFormat(cmd *cobra.Command, args []string) error {
	seconds, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("seconds must be an integer: %q", args[0])
	}
	if seconds < 0 {
		return fmt.Errorf("seconds must be non-negative: %d", seconds)
	}

	formatted := timecode.Format(timecode.Timecode(seconds))
	if JSONOutput() {
		return printJSON(cmd.OutOrStdout(), map[string]any{
			"seconds":  seconds,
			"timecode": formatted,
		})
	}

	fmt.Fprintln(cmd.OutOrStdout(), formatted)
	return nil
}
