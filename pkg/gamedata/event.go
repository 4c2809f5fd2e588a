// Package gamedata defines the normalized domain model shared by every
// crosscheck component: player identities, game events, clocks, strength
// contexts, and the per-source event sets adapters produce.
//
// Events from every source normalize into the same variant type so that
// downstream logic never branches on source identity. The one deliberate
// exception is the matcher's confidence weighting, which may consult the
// source tag of an event it is aligning.
package gamedata

import (
	"slices"
	"sort"
)

// EventKind identifies the variant of a normalized game event.
type EventKind string

// String returns the string representation of an event kind.
func (k EventKind) String() string {
	return string(k)
}

// Event kinds.
const (
	// EventKindGoal is a scoring event credited to a primary player.
	EventKindGoal EventKind = "goal"

	// EventKindPenalty is an infraction event, individual or team.
	EventKindPenalty EventKind = "penalty"

	// EventKindOnIceDuringGoal marks a player as on the ice when a goal
	// occurred for or against their team. Never a scoring event and never
	// summable into goal counts.
	EventKindOnIceDuringGoal EventKind = "on_ice_during_goal"
)

// EventKinds returns all defined event kinds.
func EventKinds() []EventKind {
	return []EventKind{
		EventKindGoal,
		EventKindPenalty,
		EventKindOnIceDuringGoal,
	}
}

// IsValid returns true if the kind is one of the defined constants.
func (k EventKind) IsValid() bool {
	return slices.Contains(EventKinds(), k)
}

// PeriodType classifies the period an event occurred in.
type PeriodType string

// String returns the string representation of a period type.
func (p PeriodType) String() string {
	return string(p)
}

// Period types.
const (
	// PeriodTypeRegulation covers periods 1 through 3.
	PeriodTypeRegulation PeriodType = "regulation"

	// PeriodTypeOvertime covers extra periods played to a decision.
	PeriodTypeOvertime PeriodType = "overtime"

	// PeriodTypeShootout marks shootout attempts. Shootout events are
	// excluded from every aggregate statistic.
	PeriodTypeShootout PeriodType = "shootout"
)

// PeriodTypes returns all defined period types.
func PeriodTypes() []PeriodType {
	return []PeriodType{
		PeriodTypeRegulation,
		PeriodTypeOvertime,
		PeriodTypeShootout,
	}
}

// IsValid returns true if the period type is one of the defined constants.
func (p PeriodType) IsValid() bool {
	return slices.Contains(PeriodTypes(), p)
}

// SourceTag names the source a normalized event came from.
type SourceTag string

// String returns the string representation of a source tag.
func (t SourceTag) String() string {
	return string(t)
}

// GameEvent is one normalized event from one source. The same variant type
// carries goals, penalties, and on-ice markers; Kind selects the variant.
type GameEvent struct {
	Kind             EventKind        `json:"kind" yaml:"kind"`                                             // Event variant
	Period           int              `json:"period" yaml:"period"`                                         // Period number, 1-based
	Clock            GameClock        `json:"clock" yaml:"clock"`                                           // Time within the period
	PeriodType       PeriodType       `json:"period_type" yaml:"period_type"`                               // Regulation, overtime, or shootout
	Team             TeamCode         `json:"team" yaml:"team"`                                             // Team the event is attributed to
	PrimaryPlayer    *PlayerIdentity  `json:"primary_player,omitempty" yaml:"primary_player,omitempty"`     // Scorer or penalized skater; nil for team infractions
	SecondaryPlayers []PlayerIdentity `json:"secondary_players,omitempty" yaml:"secondary_players,omitempty"` // Assists, in credit order
	Strength         StrengthContext  `json:"strength" yaml:"strength"`                                     // Man-advantage situation
	Source           SourceTag        `json:"source" yaml:"source"`                                         // Producing source
	Sequence         int              `json:"sequence" yaml:"sequence"`                                     // Position in the source feed, 0-based

	// Penalty detail, set only when Kind is EventKindPenalty.
	PenaltyKind    string          `json:"penalty_kind,omitempty" yaml:"penalty_kind,omitempty"`       // Normalized infraction keyword
	PenaltyMinutes int             `json:"penalty_minutes,omitempty" yaml:"penalty_minutes,omitempty"` // Assessed minutes
	ServedBy       *PlayerIdentity `json:"served_by,omitempty" yaml:"served_by,omitempty"`             // Serving skater for team infractions
}

// CountsForStats reports whether the event participates in aggregate
// statistics. Shootout events never do.
func (e GameEvent) CountsForStats() bool {
	return e.PeriodType != PeriodTypeShootout
}

// IsTeamInfraction reports whether a penalty has no individually penalized
// skater.
func (e GameEvent) IsTeamInfraction() bool {
	return e.Kind == EventKindPenalty && e.PrimaryPlayer == nil
}

// SourceEventSet is the chronologically ordered output of one adapter for
// one game. Totals is set only by totals-only sources; such sources carry
// no timestamped events and never participate in event-level matching.
type SourceEventSet struct {
	GameID string      `json:"game_id" yaml:"game_id"`
	Source SourceTag   `json:"source" yaml:"source"`
	Events []GameEvent `json:"events" yaml:"events"`
	Totals *Totals     `json:"totals,omitempty" yaml:"totals,omitempty"`

	// Kinds are the event kinds this source reports at all. A kind the
	// source never carries is not compared against it: a shift report
	// that emits only on-ice markers is not "missing" every goal.
	Kinds []EventKind `json:"kinds,omitempty" yaml:"kinds,omitempty"`

	// Unresolved are player references that failed roster resolution.
	// Empty against the authoritative source or the game aborts.
	Unresolved []UnresolvedRef `json:"unresolved,omitempty" yaml:"unresolved,omitempty"`
}

// UnresolvedRef is a (team, jersey) reference a secondary source carried
// that matched no roster entry. The event it came from is kept with a nil
// player so team aggregates stay honest; the reference itself surfaces as
// a report note.
type UnresolvedRef struct {
	Team   TeamCode `json:"team" yaml:"team"`
	Jersey int      `json:"jersey" yaml:"jersey"`
	Detail string   `json:"detail" yaml:"detail"`
}

// ReportsKind reports whether the source carries events of the kind.
func (s *SourceEventSet) ReportsKind(kind EventKind) bool {
	return slices.Contains(s.Kinds, kind)
}

// Totals are the aggregate counts a totals-only source reports directly.
type Totals struct {
	Teams   []TeamTotals   `json:"teams" yaml:"teams"`
	Players []PlayerTotals `json:"players" yaml:"players"`
}

// TeamTotals are one team's aggregate counts as a source reports them.
type TeamTotals struct {
	Team           TeamCode `json:"team" yaml:"team"`
	Goals          int      `json:"goals" yaml:"goals"`
	Score          int      `json:"score" yaml:"score"`
	PenaltyMinutes int      `json:"penalty_minutes" yaml:"penalty_minutes"`
}

// PlayerTotals are one player's aggregate counts as a source reports them.
type PlayerTotals struct {
	Player         PlayerIdentity `json:"player" yaml:"player"`
	Goals          int            `json:"goals" yaml:"goals"`
	Assists        int            `json:"assists" yaml:"assists"`
	Points         int            `json:"points" yaml:"points"`
	PenaltyMinutes int            `json:"penalty_minutes" yaml:"penalty_minutes"`
}

// Goals returns the goal events of the set in order.
func (s *SourceEventSet) Goals() []GameEvent {
	return s.filter(EventKindGoal)
}

// Penalties returns the penalty events of the set in order.
func (s *SourceEventSet) Penalties() []GameEvent {
	return s.filter(EventKindPenalty)
}

// OnIceMarkers returns the on-ice marker events of the set in order.
func (s *SourceEventSet) OnIceMarkers() []GameEvent {
	return s.filter(EventKindOnIceDuringGoal)
}

func (s *SourceEventSet) filter(kind EventKind) []GameEvent {
	events := make([]GameEvent, 0, len(s.Events))
	for _, e := range s.Events {
		if e.Kind == kind {
			events = append(events, e)
		}
	}
	return events
}

// Len returns the number of events in the set.
func (s *SourceEventSet) Len() int {
	return len(s.Events)
}

// SortChronological orders events by period, then clock, then feed
// sequence. Adapters call this before returning a set so that matching
// sees a stable chronological order.
func (s *SourceEventSet) SortChronological() {
	sort.SliceStable(s.Events, func(i, j int) bool {
		a, b := s.Events[i], s.Events[j]
		if a.Period != b.Period {
			return a.Period < b.Period
		}
		if a.Clock.TotalSeconds() != b.Clock.TotalSeconds() {
			return a.Clock.TotalSeconds() < b.Clock.TotalSeconds()
		}
		return a.Sequence < b.Sequence
	})
}
