package crosscheck

import (
	"context"
	"sort"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/rinkstats/crosscheck/pkg/logging"
	"github.com/rinkstats/crosscheck/pkg/reconcile"
)

// GameFailure records one game that could not be reconciled during a
// season run. Failures are part of the result, never silently dropped.
type GameFailure struct {
	GameID string `json:"game_id" yaml:"game_id"`
	Reason string `json:"reason" yaml:"reason"`
}

// SeasonResult is the outcome of a season run: the summary fold over the
// finished reports, the reports themselves in game-ID order, and the
// games that failed.
type SeasonResult struct {
	Summary  *reconcile.SeasonSummary          `json:"summary" yaml:"summary"`
	Reports  []*reconcile.ReconciliationReport `json:"reports" yaml:"reports"`
	Failures []GameFailure                     `json:"failures,omitempty" yaml:"failures,omitempty"`
}

// ReconcileSeason fans the games out as independent units of work,
// bounded by the configured worker count, then performs a pure fold over
// the finished reports. Per-game failures are collected, not fatal; the
// returned error covers only a canceled context.
func (c *crosscheck) ReconcileSeason(ctx context.Context, inputs []reconcile.GameInput) (*SeasonResult, error) {
	var (
		mu       sync.Mutex
		reports  []*reconcile.ReconciliationReport
		failures []GameFailure
	)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(c.seasonWorkers)

	for _, input := range inputs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			report, err := c.ReconcileGame(ctx, input)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				failures = append(failures, GameFailure{GameID: input.GameID, Reason: err.Error()})
				return nil
			}
			reports = append(reports, report)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	sort.Slice(reports, func(i, j int) bool { return reports[i].GameID < reports[j].GameID })
	sort.Slice(failures, func(i, j int) bool { return failures[i].GameID < failures[j].GameID })

	summary := reconcile.SummarizeSeason(reports)
	c.hooks.triggerSeason(summary)

	ctx = logging.WithRunID(ctx, summary.RunID)
	ctx = logging.WithField(ctx, "games", summary.Games)
	logging.Ctx(ctx).Info().
		Int("failures", len(failures)).
		Float64("perfect_rate", summary.PerfectRate).
		Msg("Season reconciled")

	return &SeasonResult{Summary: summary, Reports: reports, Failures: failures}, nil
}
