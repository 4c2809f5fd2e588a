package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rinkstats/crosscheck/internal/annotate"
	"github.com/rinkstats/crosscheck/internal/config"
	"github.com/rinkstats/crosscheck/internal/fixtures"
	"github.com/rinkstats/crosscheck/internal/records"
	"github.com/rinkstats/crosscheck/pkg/reconcile"
)

var (
	gameDemo     bool
	gameSaveDir  string
	gameAnnotate bool
)

// gameCmd reconciles a single game directory.
var gameCmd = &cobra.Command{
	Use:     "game [directory]",
	Short:   "Reconcile one game across its sources",
	GroupID: "reconcile",
	Long: `Reconcile one game. The directory must hold roster.json plus one
normalized record per available source (eventstream.json, boxscore.json,
gamesummary.json, shiftchart.json).

With --demo the embedded sample game is reconciled instead.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runGame,
}

func init() {
	gameCmd.Flags().BoolVar(&gameDemo, "demo", false, "reconcile the embedded sample game")
	gameCmd.Flags().StringVar(&gameSaveDir, "save", "", "also write the rendered report beneath this directory")
	gameCmd.Flags().BoolVar(&gameAnnotate, "annotate", false, "append a model-generated advisory assessment (requires CROSSCHECK_GEMINI_API_KEY)")
	rootCmd.AddCommand(gameCmd)
}

func runGame(cmd *cobra.Command, args []string) error {
	input, err := gameInput(args)
	if err != nil {
		return err
	}

	client, err := newClient()
	if err != nil {
		return err
	}

	report, err := client.ReconcileGame(cmd.Context(), input)
	if err != nil {
		return err
	}

	if gameSaveDir != "" {
		path, err := client.SaveReport(report, gameSaveDir)
		if err != nil {
			return err
		}
		fmt.Fprintln(os.Stderr, "Report written to", path)
	}

	if err := formatter().Format(os.Stdout, report); err != nil {
		return err
	}

	if gameAnnotate {
		key, err := config.GeminiAPIKey()
		if err != nil {
			return err
		}
		annotator, err := annotate.New(cmd.Context(), key)
		if err != nil {
			return err
		}
		assessment, err := annotator.Annotate(cmd.Context(), report)
		if err != nil {
			return err
		}
		fmt.Fprintln(os.Stdout)
		fmt.Fprintln(os.Stdout, assessment)
	}
	return nil
}

func gameInput(args []string) (reconcile.GameInput, error) {
	if gameDemo {
		return fixtures.DemoGame()
	}
	if len(args) == 0 {
		return reconcile.GameInput{}, fmt.Errorf("a game directory is required unless --demo is set")
	}
	return records.LoadGame(args[0])
}
