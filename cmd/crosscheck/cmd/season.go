package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rinkstats/crosscheck/internal/records"
)

var seasonReports bool

// seasonCmd reconciles every game directory beneath a season directory.
var seasonCmd = &cobra.Command{
	Use:     "season <directory>",
	Short:   "Reconcile a season of games concurrently",
	GroupID: "reconcile",
	Long: `Reconcile every game subdirectory of the given directory. Games run
concurrently as independent units of work; the season summary is a pure
fold over the finished reports, summing counts before dividing so games
with unequal subject counts weigh correctly.`,
	Args: cobra.ExactArgs(1),
	RunE: runSeason,
}

func init() {
	seasonCmd.Flags().BoolVar(&seasonReports, "reports", false, "print per-game reports after the summary")
	rootCmd.AddCommand(seasonCmd)
}

func runSeason(cmd *cobra.Command, args []string) error {
	inputs, err := records.LoadSeason(args[0])
	if err != nil {
		return err
	}

	client, err := newClient()
	if err != nil {
		return err
	}

	result, err := client.ReconcileSeason(cmd.Context(), inputs)
	if err != nil {
		return err
	}

	for _, failure := range result.Failures {
		fmt.Fprintf(os.Stderr, "game %s failed: %s\n", failure.GameID, failure.Reason)
	}

	if err := formatter().Format(os.Stdout, result.Summary); err != nil {
		return err
	}
	if seasonReports {
		for _, report := range result.Reports {
			fmt.Fprintln(os.Stdout)
			if err := formatter().Format(os.Stdout, report); err != nil {
				return err
			}
		}
	}
	return nil
}
