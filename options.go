package crosscheck

import (
	"github.com/rinkstats/crosscheck/pkg/constants"
	"github.com/rinkstats/crosscheck/pkg/errors"
	"github.com/rinkstats/crosscheck/pkg/reconcile"
	"github.com/rinkstats/crosscheck/pkg/sources"
)

// options carries the engine tunables collected before the reconciler is
// built.
type options struct {
	clockTolerance int
	minorThreshold int
}

// Option is a function that configures a Crosscheck during New.
type Option func(*crosscheck, *options) error

// WithPrecedence sets the source precedence. The first source in the
// order is authoritative for the whole game.
func WithPrecedence(p reconcile.Precedence) Option {
	return func(c *crosscheck, _ *options) error {
		if err := p.Validate(); err != nil {
			return err
		}
		c.precedence = p
		return nil
	}
}

// WithClockTolerance sets the matcher's clock alignment window in
// seconds.
func WithClockTolerance(seconds int) Option {
	return func(_ *crosscheck, o *options) error {
		if seconds < 0 {
			return errors.NewValidationError("clock_tolerance", seconds, "must not be negative")
		}
		o.clockTolerance = seconds
		return nil
	}
}

// WithMinorThreshold sets the largest absolute aggregate delta still
// classified as a minor discrepancy.
func WithMinorThreshold(threshold int) Option {
	return func(_ *crosscheck, o *options) error {
		if threshold < 0 {
			return errors.NewValidationError("minor_threshold", threshold, "must not be negative")
		}
		o.minorThreshold = threshold
		return nil
	}
}

// WithSeasonWorkers bounds how many games reconcile concurrently during
// a season run.
func WithSeasonWorkers(workers int) Option {
	return func(c *crosscheck, _ *options) error {
		if workers < 1 || workers > constants.MaxSeasonWorkers {
			return errors.NewValidationError("season_workers", workers, "must be between 1 and 32")
		}
		c.seasonWorkers = workers
		return nil
	}
}

// WithAdapter registers a custom adapter, replacing any standard adapter
// for the same source.
func WithAdapter(adapter sources.Adapter) Option {
	return func(c *crosscheck, _ *options) error {
		if adapter == nil {
			return errors.NewValidationError("adapter", nil, "adapter cannot be nil")
		}
		c.adapters.Set(adapter.ID(), adapter)
		return nil
	}
}
