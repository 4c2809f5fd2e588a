package reconcile

import (
	"fmt"

	"github.com/rinkstats/crosscheck/pkg/gamedata"
	"github.com/rinkstats/crosscheck/pkg/sources"
)

// Match confidence levels. Ambiguity degrades confidence instead of
// raising an error so downstream consumers can filter by confidence
// rather than failing the whole game.
const (
	// ConfidenceExact: same player, identical clock reading.
	ConfidenceExact = 1.0

	// ConfidencePlayer: same player, clock within tolerance.
	ConfidencePlayer = 0.9

	// ConfidenceClock: no player agreement, single nearest candidate.
	ConfidenceClock = 0.75

	// ConfidenceAmbiguous: two or more equally preferred candidates;
	// the earlier sequence entry was chosen.
	ConfidenceAmbiguous = 0.5

	// ConfidenceNone: no candidate at all.
	ConfidenceNone = 0.0
)

// MatchedPair aligns one authoritative event with its best secondary
// candidate. Secondary is nil when no candidate existed; pairs are
// immutable once produced.
type MatchedPair struct {
	Authoritative gamedata.GameEvent  `json:"authoritative" yaml:"authoritative"`
	Secondary     *gamedata.GameEvent `json:"secondary,omitempty" yaml:"secondary,omitempty"`
	Confidence    float64             `json:"confidence" yaml:"confidence"`
}

// Matched reports whether the pair found a secondary event.
func (p MatchedPair) Matched() bool {
	return p.Secondary != nil
}

// Anomaly is a secondary event that matched nothing in the authoritative
// set. It signals a parsing defect upstream, not a statistics
// disagreement, and is reported separately from discrepancies.
type Anomaly struct {
	Source      sources.ID         `json:"source" yaml:"source"`
	Event       gamedata.GameEvent `json:"event" yaml:"event"`
	Description string             `json:"description" yaml:"description"`
}

// Matcher aligns events between the authoritative source and a secondary
// source. No shared event ID exists across sources, so alignment is a
// tolerant composite-key search over (team, period, clock), refined by
// player identity. Matching is fully deterministic given identical inputs.
type Matcher struct {
	tolerance int // clock alignment window in seconds
}

// NewMatcher creates a Matcher with the given clock tolerance in seconds.
func NewMatcher(tolerance int) *Matcher {
	return &Matcher{tolerance: tolerance}
}

// Match aligns the authoritative events of one kind against the secondary
// set. Every authoritative event yields exactly one MatchedPair, with a
// nil secondary when nothing aligned. Secondary events left over become
// anomalies. A secondary source that does not report the kind at all is
// skipped entirely; absence of a whole event class is a source shape,
// not a disagreement.
func (m *Matcher) Match(auth, secondary *gamedata.SourceEventSet, kind gamedata.EventKind, id sources.ID) ([]MatchedPair, []Anomaly) {
	if !secondary.ReportsKind(kind) {
		return nil, nil
	}

	authEvents := eventsOfKind(auth, kind)
	candidates := eventsOfKind(secondary, kind)
	used := make([]bool, len(candidates))

	pairs := make([]MatchedPair, 0, len(authEvents))
	for _, event := range authEvents {
		idx, confidence := m.bestCandidate(event, candidates, used)
		if idx < 0 {
			pairs = append(pairs, MatchedPair{Authoritative: event, Confidence: ConfidenceNone})
			continue
		}
		used[idx] = true
		chosen := candidates[idx]
		pairs = append(pairs, MatchedPair{
			Authoritative: event,
			Secondary:     &chosen,
			Confidence:    confidence,
		})
	}

	var anomalies []Anomaly
	for i, c := range candidates {
		if used[i] {
			continue
		}
		anomalies = append(anomalies, Anomaly{
			Source: id,
			Event:  c,
			Description: fmt.Sprintf("%s event at %s of period %d for %s matches no authoritative event",
				kind, c.Clock, c.Period, c.Team),
		})
	}
	return pairs, anomalies
}

// bestCandidate picks the preferred unused candidate for one
// authoritative event. Preference: exact primary player identity, then
// nearest clock, then original sequence order. Returns the candidate
// index and the confidence of the selection, or -1 when none qualifies.
func (m *Matcher) bestCandidate(event gamedata.GameEvent, candidates []gamedata.GameEvent, used []bool) (int, float64) {
	best := -1
	bestPlayer := false
	bestDiff := 0
	tied := false

	for i, c := range candidates {
		if used[i] {
			continue
		}
		if c.Team != event.Team || c.Period != event.Period {
			continue
		}
		diff := c.Clock.DiffSeconds(event.Clock)
		if diff > m.tolerance {
			continue
		}
		player := samePrimaryPlayer(event, c)

		switch {
		case best < 0:
			best, bestPlayer, bestDiff, tied = i, player, diff, false
		case player != bestPlayer:
			if player {
				best, bestPlayer, bestDiff, tied = i, true, diff, false
			}
		case diff < bestDiff:
			best, bestDiff, tied = i, diff, false
		case diff == bestDiff:
			// Equal preference: keep the earlier sequence entry and
			// degrade confidence rather than erroring.
			tied = true
		}
	}

	if best < 0 {
		return -1, ConfidenceNone
	}
	if tied {
		return best, ConfidenceAmbiguous
	}
	switch {
	case bestPlayer && bestDiff == 0:
		return best, ConfidenceExact
	case bestPlayer:
		return best, ConfidencePlayer
	default:
		return best, ConfidenceClock
	}
}

// samePrimaryPlayer reports whether two events credit the same primary
// player. Two team infractions (both nil) agree; a nil against a non-nil
// does not.
func samePrimaryPlayer(a, b gamedata.GameEvent) bool {
	if a.PrimaryPlayer == nil || b.PrimaryPlayer == nil {
		return a.PrimaryPlayer == nil && b.PrimaryPlayer == nil
	}
	return a.PrimaryPlayer.Equal(*b.PrimaryPlayer)
}

// eventsOfKind filters the set's events by kind, preserving order.
func eventsOfKind(set *gamedata.SourceEventSet, kind gamedata.EventKind) []gamedata.GameEvent {
	events := make([]gamedata.GameEvent, 0, len(set.Events))
	for _, e := range set.Events {
		if e.Kind == kind {
			events = append(events, e)
		}
	}
	return events
}
