// Package crosscheck reconciles hockey event statistics across multiple
// independently produced sources describing the same game. It determines
// which source is authoritative, quantifies cross-source agreement, and
// surfaces the scenarios where a naive reading of a source would corrupt
// statistics.
//
// The root package is a facade over the engine in pkg/reconcile: it wires
// the source adapters, threads the configured precedence and thresholds
// through, fans games out for season runs, and dispatches report hooks.
//
// Example usage:
//
//	cc, err := crosscheck.New()
//	if err != nil {
//	    return err
//	}
//	report, err := cc.ReconcileGame(ctx, input)
package crosscheck

import (
	"context"
	"fmt"
	"sync"

	"github.com/rinkstats/crosscheck/internal/sources/boxscore"
	"github.com/rinkstats/crosscheck/internal/sources/eventstream"
	"github.com/rinkstats/crosscheck/internal/sources/gamesummary"
	"github.com/rinkstats/crosscheck/internal/sources/shiftchart"
	"github.com/rinkstats/crosscheck/pkg/constants"
	"github.com/rinkstats/crosscheck/pkg/reconcile"
	"github.com/rinkstats/crosscheck/pkg/sources"
)

// Crosscheck is the public interface of the reconciliation facade.
type Crosscheck interface {
	// ReconcileGame reconciles one game. The computation itself is
	// sequential and side-effect-free; the context governs only the
	// caller's cancellation before work starts.
	ReconcileGame(ctx context.Context, input reconcile.GameInput) (*reconcile.ReconciliationReport, error)

	// ReconcileSeason reconciles many games concurrently and folds the
	// finished reports into one season summary. Games are independent
	// units of work; a failed game is reported in the returned failures,
	// not fatal to the season.
	ReconcileSeason(ctx context.Context, inputs []reconcile.GameInput) (*SeasonResult, error)

	// Adapters returns the adapter registry, for inspection and for
	// wiring custom adapters.
	Adapters() *sources.Adapters

	// Precedence returns the configured source precedence.
	Precedence() reconcile.Precedence

	// OnReport registers a callback invoked with every finished game
	// report.
	OnReport(hook ReportHook)

	// OnSeason registers a callback invoked once with every finished
	// season summary.
	OnSeason(hook SeasonHook)

	// SaveReport renders a report and writes it beneath dir, returning
	// the written path.
	SaveReport(report *reconcile.ReconciliationReport, dir string) (string, error)
}

// crosscheck is the internal implementation of the Crosscheck interface.
type crosscheck struct {
	mu            sync.RWMutex
	reconciler    reconcile.Reconciler
	adapters      *sources.Adapters
	precedence    reconcile.Precedence
	seasonWorkers int
	hooks         *hooks
}

// New creates a Crosscheck with the standard adapters wired and any
// options applied.
func New(opts ...Option) (Crosscheck, error) {
	c := &crosscheck{
		adapters:      defaultAdapters(),
		precedence:    reconcile.DefaultPrecedence(),
		seasonWorkers: constants.DefaultSeasonWorkers,
		hooks:         newHooks(),
	}

	options := &options{
		clockTolerance: constants.DefaultClockToleranceSeconds,
		minorThreshold: constants.DefaultMinorThreshold,
	}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(c, options); err != nil {
			return nil, fmt.Errorf("applying option: %w", err)
		}
	}

	rec, err := reconcile.New(
		reconcile.WithAdapters(c.adapters),
		reconcile.WithPrecedence(c.precedence),
		reconcile.WithClockTolerance(options.clockTolerance),
		reconcile.WithMinorThreshold(options.minorThreshold),
	)
	if err != nil {
		return nil, err
	}
	c.reconciler = rec
	return c, nil
}

// defaultAdapters wires the four standard source adapters.
func defaultAdapters() *sources.Adapters {
	adapters := sources.NewAdapters()
	adapters.Set(sources.EventStreamID, eventstream.New())
	adapters.Set(sources.BoxscoreID, boxscore.New())
	adapters.Set(sources.GameSummaryID, gamesummary.New())
	adapters.Set(sources.ShiftChartID, shiftchart.New())
	return adapters
}

// Adapters returns the adapter registry.
func (c *crosscheck) Adapters() *sources.Adapters {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.adapters
}

// Precedence returns the configured source precedence.
func (c *crosscheck) Precedence() reconcile.Precedence {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.precedence
}

// OnReport registers a callback invoked with every finished game report.
func (c *crosscheck) OnReport(hook ReportHook) {
	c.hooks.OnReport(hook)
}

// OnSeason registers a callback invoked with every finished season summary.
func (c *crosscheck) OnSeason(hook SeasonHook) {
	c.hooks.OnSeason(hook)
}
