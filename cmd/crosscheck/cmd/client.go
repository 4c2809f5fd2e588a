package cmd

import (
	"github.com/rinkstats/crosscheck"
	"github.com/rinkstats/crosscheck/internal/config"
	"github.com/rinkstats/crosscheck/pkg/constants"
	"github.com/rinkstats/crosscheck/pkg/reconcile"
)

// newClient builds the facade from configuration: precedence, matcher
// tolerance, classifier threshold, and season concurrency all come from
// flags, environment, or the config file.
func newClient() (crosscheck.Crosscheck, error) {
	precedence, err := reconcile.ParsePrecedence(config.GetString(config.KeyPrecedence))
	if err != nil {
		return nil, err
	}
	return crosscheck.New(
		crosscheck.WithPrecedence(precedence),
		crosscheck.WithClockTolerance(config.GetInt(config.KeyClockTolerance, constants.DefaultClockToleranceSeconds)),
		crosscheck.WithMinorThreshold(config.GetInt(config.KeyMinorThreshold, constants.DefaultMinorThreshold)),
		crosscheck.WithSeasonWorkers(config.GetInt(config.KeySeasonWorkers, constants.DefaultSeasonWorkers)),
	)
}
