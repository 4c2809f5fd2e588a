package crosscheck

import (
	"context"
	"fmt"

	"github.com/rinkstats/crosscheck/pkg/logging"
	"github.com/rinkstats/crosscheck/pkg/reconcile"
)

// ReconcileGame reconciles one game and dispatches report hooks. The
// reconciliation itself is atomic: it completes or fails as a whole, so
// the context is only consulted before work starts.
func (c *crosscheck) ReconcileGame(ctx context.Context, input reconcile.GameInput) (*reconcile.ReconciliationReport, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	ctx = logging.WithGame(ctx, input.GameID)

	report, err := c.reconciler.ReconcileGame(input)
	if err != nil {
		logging.Ctx(ctx).Error().
			Err(err).
			Msg("Game reconciliation failed")
		return nil, fmt.Errorf("reconciling game %s: %w", input.GameID, err)
	}

	logging.Ctx(ctx).Debug().
		Int("pairs", report.Summary.TotalPairs).
		Int("major", report.Summary.MajorCount).
		Float64("perfect_rate", report.Summary.PerfectRate).
		Msg("Game reconciled")

	c.hooks.triggerReport(report)
	return report, nil
}
