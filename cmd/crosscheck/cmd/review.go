package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rinkstats/crosscheck/internal/records"
	"github.com/rinkstats/crosscheck/internal/review"
)

var reviewOut string

// reviewCmd writes a markdown season review document.
var reviewCmd = &cobra.Command{
	Use:     "review <directory>",
	Short:   "Write a markdown review for a season of games",
	GroupID: "reconcile",
	Long: `Reconcile every game subdirectory of the given directory and write a
markdown review document: season totals, per-source accuracy, ranked
discrepancy causes, and per-game disagreement tables.`,
	Args: cobra.ExactArgs(1),
	RunE: runReview,
}

func init() {
	reviewCmd.Flags().StringVar(&reviewOut, "out", ".", "directory to write the review document into")
	rootCmd.AddCommand(reviewCmd)
}

func runReview(cmd *cobra.Command, args []string) error {
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

	path, err := review.Write(result.Summary, result.Reports, reviewOut)
	if err != nil {
		return err
	}
	fmt.Fprintln(os.Stdout, "Review written to", path)
	return nil
}
