package cli

import (
	"fmt"
	"io"

	clierrors "github.com/ariel-frischer/dailyrelease/internal/errors"
	"github.com/ariel-frischer/dailyrelease/internal/history"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "View past release runs",
	Long:  `View recorded release runs, newest first, with timestamp, release, merge date, pull request count, outcome, and duration.`,
	Example: `  # All recorded runs
  dailyrelease history

  # Last five, tab separated
  dailyrelease history --last 5 --plain`,
	RunE: func(cmd *cobra.Command, args []string) error {
		last, _ := cmd.Flags().GetInt("last")
		plain, _ := cmd.Flags().GetBool("plain")

		if last < 0 {
			return clierrors.NewArgumentErrorWithUsage(
				fmt.Sprintf("--last must be positive, got %d", last),
				"dailyrelease history --last N")
		}

		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		return runHistoryWithStateDir(cmd.OutOrStdout(), cfg.StateDir, last, plain)
	},
}

func init() {
	historyCmd.GroupID = GroupConfiguration
	rootCmd.AddCommand(historyCmd)
	historyCmd.Flags().IntP("last", "n", 0, "Show only the last N runs")
	historyCmd.Flags().Bool("plain", false, "Tab-separated output without colors")
}

// runHistoryWithStateDir prints history from a given state directory.
func runHistoryWithStateDir(out io.Writer, stateDir string, last int, plain bool) error {
	histFile, err := history.LoadHistory(stateDir)
	if err != nil {
		return clierrors.Wrap(err, clierrors.Runtime)
	}

	entries := histFile.Last(last)
	if len(entries) == 0 {
		fmt.Fprintln(out, "No history available.")
		return nil
	}

	if plain {
		for _, entry := range entries {
			fmt.Fprintf(out, "%s\t%s\t%s\t%d\t%s\t%s\t%s\n",
				entry.Timestamp.Format("2006-01-02T15:04:05Z07:00"),
				entry.Release, entry.Date, entry.Pulls, entry.Outcome, entry.Duration, entry.Detail)
		}
		return nil
	}

	displayEntries(out, entries)
	return nil
}

// displayEntries formats and displays history entries.
func displayEntries(out io.Writer, entries []history.Entry) {
	cyan := color.New(color.FgCyan).SprintFunc()

	for _, entry := range entries {
		timestamp := entry.Timestamp.Format("2006-01-02 15:04:05")

		fmt.Fprintf(out, "%s  %-12s  %-10s  pulls=%-3d  %s  %s",
			cyan(timestamp),
			entry.Release,
			entry.Date,
			entry.Pulls,
			outcomeLabel(entry.Outcome),
			entry.Duration,
		)
		switch {
		case entry.ReleaseURL != "":
			fmt.Fprintf(out, "  %s", entry.ReleaseURL)
		case entry.Detail != "":
			fmt.Fprintf(out, "  (%s)", entry.Detail)
		}
		fmt.Fprintln(out)
	}
}

func outcomeLabel(outcome history.Outcome) string {
	label := fmt.Sprintf("%-9s", outcome)
	switch outcome {
	case history.OutcomePublished:
		return color.New(color.FgGreen).Sprint(label)
	case history.OutcomeFailed:
		return color.New(color.FgRed).Sprint(label)
	default:
		return color.New(color.FgYellow).Sprint(label)
	}
}
