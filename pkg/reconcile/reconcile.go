// Package reconcile implements the reconciliation engine: it aligns the
// events different sources report for the same game, classifies the
// disagreements between them, detects the statistical scenarios that
// change comparison rules, and synthesizes deterministic reports.
//
// One game's reconciliation is a sequential, side-effect-free computation.
// The engine performs no I/O and holds no mutable state across runs, so
// callers may reconcile many games concurrently with independent inputs.
//
// Example usage:
//
//	rec, err := reconcile.New(
//	    reconcile.WithAdapters(adapters),
//	    reconcile.WithPrecedence(reconcile.DefaultPrecedence()),
//	)
//	if err != nil {
//	    return err
//	}
//	report, err := rec.ReconcileGame(input)
package reconcile

import (
	"fmt"

	"github.com/rinkstats/crosscheck/pkg/constants"
	"github.com/rinkstats/crosscheck/pkg/errors"
	"github.com/rinkstats/crosscheck/pkg/gamedata"
	"github.com/rinkstats/crosscheck/pkg/roster"
	"github.com/rinkstats/crosscheck/pkg/sources"
)

// GameInput is everything the engine needs to reconcile one game: the
// roster context and one raw record per available source. Collectors
// produce both upstream; the engine never fetches anything itself.
type GameInput struct {
	GameID  string                `json:"game_id" yaml:"game_id"`
	Roster  gamedata.RosterContext `json:"roster" yaml:"roster"`
	Records []sources.RawRecord   `json:"records" yaml:"records"`
}

// Reconciler reconciles games into reports.
type Reconciler interface {
	// ReconcileGame reconciles one game and returns its report. Errors
	// are limited to conditions that invalidate the whole game: missing
	// or malformed authoritative data, an unusable roster, or invalid
	// input. Secondary source failures degrade to report notes instead.
	ReconcileGame(input GameInput) (*ReconciliationReport, error)

	// Precedence returns the source precedence the engine runs with.
	Precedence() Precedence
}

// reconciler is the internal implementation of the Reconciler interface.
type reconciler struct {
	adapters       *sources.Adapters
	precedence     Precedence
	clockTolerance int
	minorThreshold int
}

// Option is a function that configures a reconciler.
type Option func(*reconciler) error

// WithAdapters configures the adapter registry to normalize records with.
func WithAdapters(adapters *sources.Adapters) Option {
	return func(r *reconciler) error {
		if adapters == nil {
			return errors.NewValidationError("adapters", nil, "adapter registry cannot be nil")
		}
		r.adapters = adapters
		return nil
	}
}

// WithPrecedence configures the source precedence. The first source in
// the order is authoritative for the whole game.
func WithPrecedence(p Precedence) Option {
	return func(r *reconciler) error {
		if err := p.Validate(); err != nil {
			return err
		}
		r.precedence = p
		return nil
	}
}

// WithClockTolerance configures the matcher's clock alignment window in
// seconds.
func WithClockTolerance(seconds int) Option {
	return func(r *reconciler) error {
		if seconds < 0 {
			return errors.NewValidationError("clock_tolerance", seconds, "must not be negative")
		}
		r.clockTolerance = seconds
		return nil
	}
}

// WithMinorThreshold configures the largest absolute aggregate delta
// still classified as a minor discrepancy.
func WithMinorThreshold(threshold int) Option {
	return func(r *reconciler) error {
		if threshold < 0 {
			return errors.NewValidationError("minor_threshold", threshold, "must not be negative")
		}
		r.minorThreshold = threshold
		return nil
	}
}

// New creates a new Reconciler with the given options.
func New(opts ...Option) (Reconciler, error) {
	r := &reconciler{
		adapters:       sources.NewAdapters(),
		precedence:     DefaultPrecedence(),
		clockTolerance: constants.DefaultClockToleranceSeconds,
		minorThreshold: constants.DefaultMinorThreshold,
	}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(r); err != nil {
			return nil, fmt.Errorf("applying option: %w", err)
		}
	}
	return r, nil
}

// Precedence returns the source precedence the engine runs with.
func (r *reconciler) Precedence() Precedence {
	return r.precedence
}

// ReconcileGame reconciles one game and returns its report.
func (r *reconciler) ReconcileGame(input GameInput) (*ReconciliationReport, error) {
	if input.GameID == "" {
		return nil, errors.NewValidationError("game_id", input.GameID, "game ID cannot be empty")
	}
	if len(input.Records) == 0 {
		return nil, errors.ErrNoRecords
	}

	table, err := roster.New(input.Roster)
	if err != nil {
		return nil, fmt.Errorf("building roster for game %s: %w", input.GameID, err)
	}

	records, err := indexRecords(input)
	if err != nil {
		return nil, err
	}

	builder := NewReportBuilder(input.GameID).
		WithAuthoritative(r.precedence.Authoritative()).
		WithRoster(table)

	authSet, err := r.normalizeAuthoritative(records, table)
	if err != nil {
		return nil, err
	}

	scenarios := DetectScenarios(authSet)
	builder.WithScenarios(scenarios)

	matcher := NewMatcher(r.clockTolerance)
	classifier := NewClassifier(r.minorThreshold, NewScenarioSet(scenarios))

	for _, id := range r.precedence.Secondaries() {
		raw, ok := records[id]
		if !ok {
			continue
		}
		secondary, err := r.normalize(raw, table)
		if err != nil {
			builder.WithUnavailable(id, err)
			continue
		}
		r.reconcileSecondary(builder, matcher, classifier, authSet, secondary, id)
	}

	return builder.Build(), nil
}

// reconcileSecondary matches and classifies one normalized secondary
// source against the authoritative set.
func (r *reconciler) reconcileSecondary(builder *ReportBuilder, matcher *Matcher, classifier *Classifier, authSet, secondary *gamedata.SourceEventSet, id sources.ID) {
	for _, ref := range secondary.Unresolved {
		builder.WithNote(id, fmt.Sprintf("unknown player #%d on %s: %s", ref.Jersey, ref.Team, ref.Detail))
	}

	if secondary.Totals != nil {
		builder.WithRecords(classifier.ClassifyTotals(authSet, secondary, id))
		return
	}

	matches := SourceMatches{Source: id}
	for _, kind := range []gamedata.EventKind{gamedata.EventKindGoal, gamedata.EventKindPenalty} {
		pairs, anomalies := matcher.Match(authSet, secondary, kind, id)
		matches.Pairs = append(matches.Pairs, pairs...)
		matches.Anomalies = append(matches.Anomalies, anomalies...)
	}
	builder.WithMatches(matches)
	builder.WithRecords(classifier.ClassifyEvents(authSet, secondary, matches, id))

	if note := onIceSanityNote(authSet, secondary); note != "" {
		builder.WithNote(id, note)
	}
}

// normalizeAuthoritative normalizes the authoritative record. Every
// failure here aborts the game: a missing record, a structural adapter
// failure, or an unresolved player reference in the authoritative feed.
func (r *reconciler) normalizeAuthoritative(records map[sources.ID]sources.RawRecord, table *roster.Table) (*gamedata.SourceEventSet, error) {
	authID := r.precedence.Authoritative()
	raw, ok := records[authID]
	if !ok {
		return nil, errors.ErrNoAuthoritativeSource
	}
	set, err := r.normalize(raw, table)
	if err != nil {
		return nil, fmt.Errorf("authoritative source %s: %w", authID, err)
	}
	if len(set.Unresolved) > 0 {
		ref := set.Unresolved[0]
		return nil, errors.NewUnknownPlayerError(string(ref.Team), ref.Jersey, string(authID))
	}
	return set, nil
}

// normalize looks up the adapter for a record and runs it.
func (r *reconciler) normalize(raw sources.RawRecord, table *roster.Table) (*gamedata.SourceEventSet, error) {
	adapter, ok := r.adapters.Get(raw.Source)
	if !ok {
		return nil, errors.NewAdapterError(string(raw.Source), "", "no adapter registered")
	}
	return adapter.Normalize(raw, table)
}

// indexRecords indexes raw records by source, rejecting duplicates and
// records for the wrong game.
func indexRecords(input GameInput) (map[sources.ID]sources.RawRecord, error) {
	records := make(map[sources.ID]sources.RawRecord, len(input.Records))
	for _, raw := range input.Records {
		if !raw.Source.IsValid() {
			return nil, errors.NewValidationError("source", string(raw.Source), "unknown source ID")
		}
		if raw.GameID != "" && raw.GameID != input.GameID {
			return nil, errors.NewValidationError("game_id", raw.GameID,
				"record belongs to a different game than "+input.GameID)
		}
		if _, dup := records[raw.Source]; dup {
			return nil, errors.NewValidationError("source", string(raw.Source), "duplicate record for source")
		}
		records[raw.Source] = raw
	}
	return records, nil
}

// onIceSanityNote flags a secondary source whose on-ice marker count is
// out of proportion to the authoritative goal count. The markers are
// already safe (they never enter goal aggregates); the note exists so
// an upstream misparse is visible in the report.
func onIceSanityNote(authSet, secondary *gamedata.SourceEventSet) string {
	markers := len(secondary.OnIceMarkers())
	if markers == 0 {
		return ""
	}
	goals := 0
	for _, e := range authSet.Goals() {
		if e.CountsForStats() {
			goals++
		}
	}
	if markers > goals*constants.OnIceMarkerSanityFactor {
		return fmt.Sprintf("%d on-ice markers against %d goals: markers denote on-ice presence during goals, not scoring", markers, goals)
	}
	return ""
}
