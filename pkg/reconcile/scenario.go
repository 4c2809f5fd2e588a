package reconcile

import (
	"fmt"
	"slices"
	"sort"
	"strings"

	"github.com/rinkstats/crosscheck/pkg/gamedata"
)

// ScenarioKind identifies a statistically special situation that changes
// the default comparison rules.
type ScenarioKind string

// String returns the string representation of a scenario kind.
func (k ScenarioKind) String() string {
	return string(k)
}

// Scenario kinds.
const (
	// ScenarioSimultaneousPenalty marks coincident penalties to opposing
	// teams. The expected strength effect is no change, not a power play.
	ScenarioSimultaneousPenalty ScenarioKind = "simultaneous_penalty"

	// ScenarioServedByPenalty marks a team infraction served by a skater
	// who did not commit it. Penalty minutes attribute to the committing
	// team regardless of the server.
	ScenarioServedByPenalty ScenarioKind = "served_by_penalty"

	// ScenarioNonAdvantagePenalty marks a penalty whose kind creates no
	// strength differential despite being a penalty event.
	ScenarioNonAdvantagePenalty ScenarioKind = "non_advantage_penalty"
)

// ComplexScenario is one detected special situation, immutable once
// detected. InvolvedEvents are copies of the authoritative events that
// triggered detection; ResolutionNote explains the situation in plain
// language for the report.
type ComplexScenario struct {
	Kind           ScenarioKind         `json:"kind" yaml:"kind"`
	InvolvedEvents []gamedata.GameEvent `json:"involved_events" yaml:"involved_events"`
	ResolutionNote string               `json:"resolution_note" yaml:"resolution_note"`
}

// nonAdvantageKinds are the penalty keywords that never change on-ice
// strength: the penalized skater is replaced or the penalty is personal.
var nonAdvantageKinds = []string{
	"fighting",
	"misconduct",
	"game misconduct",
	"match",
}

// DetectScenarios runs over the authoritative event set before
// classification and returns every detected scenario in a stable order:
// by kind, then by the first involved event's period and clock.
func DetectScenarios(set *gamedata.SourceEventSet) []ComplexScenario {
	if set == nil {
		return nil
	}
	var scenarios []ComplexScenario
	scenarios = append(scenarios, detectSimultaneous(set.Penalties())...)
	scenarios = append(scenarios, detectServedBy(set.Penalties())...)
	scenarios = append(scenarios, detectNonAdvantage(set.Penalties())...)
	scenarios = append(scenarios, detectPenaltyShotGoals(set.Goals())...)

	sort.SliceStable(scenarios, func(i, j int) bool {
		if scenarios[i].Kind != scenarios[j].Kind {
			return scenarios[i].Kind < scenarios[j].Kind
		}
		a, b := scenarios[i].InvolvedEvents[0], scenarios[j].InvolvedEvents[0]
		if a.Period != b.Period {
			return a.Period < b.Period
		}
		return a.Clock.TotalSeconds() < b.Clock.TotalSeconds()
	})
	return scenarios
}

// detectSimultaneous groups penalties by (period, clock) and flags every
// group holding penalties to more than one team.
func detectSimultaneous(penalties []gamedata.GameEvent) []ComplexScenario {
	type slot struct {
		period int
		clock  gamedata.GameClock
	}
	groups := make(map[slot][]gamedata.GameEvent)
	var order []slot
	for _, p := range penalties {
		s := slot{period: p.Period, clock: p.Clock}
		if _, seen := groups[s]; !seen {
			order = append(order, s)
		}
		groups[s] = append(groups[s], p)
	}

	var scenarios []ComplexScenario
	for _, s := range order {
		group := groups[s]
		if len(group) < 2 {
			continue
		}
		teams := make(map[gamedata.TeamCode]struct{})
		for _, p := range group {
			teams[p.Team] = struct{}{}
		}
		if len(teams) < 2 {
			continue
		}
		scenarios = append(scenarios, ComplexScenario{
			Kind:           ScenarioSimultaneousPenalty,
			InvolvedEvents: slices.Clone(group),
			ResolutionNote: fmt.Sprintf(
				"coincident penalties to opposing teams at %s of period %d leave on-ice strength unchanged; no power play results",
				s.clock, s.period),
		})
	}
	return scenarios
}

// detectServedBy flags team infractions: penalties with no individually
// penalized skater, served by someone else.
func detectServedBy(penalties []gamedata.GameEvent) []ComplexScenario {
	var scenarios []ComplexScenario
	for _, p := range penalties {
		if !p.IsTeamInfraction() {
			continue
		}
		server := "an unidentified skater"
		if p.ServedBy != nil {
			server = p.ServedBy.String()
		}
		scenarios = append(scenarios, ComplexScenario{
			Kind:           ScenarioServedByPenalty,
			InvolvedEvents: []gamedata.GameEvent{p},
			ResolutionNote: fmt.Sprintf(
				"team infraction against %s at %s of period %d is served by %s; the %d penalty minutes attribute to %s regardless of the server",
				p.Team, p.Clock, p.Period, server, p.PenaltyMinutes, p.Team),
		})
	}
	return scenarios
}

// detectNonAdvantage flags penalty kinds that never create a strength
// differential.
func detectNonAdvantage(penalties []gamedata.GameEvent) []ComplexScenario {
	var scenarios []ComplexScenario
	for _, p := range penalties {
		kind := strings.ToLower(strings.TrimSpace(p.PenaltyKind))
		if !slices.Contains(nonAdvantageKinds, kind) {
			continue
		}
		scenarios = append(scenarios, ComplexScenario{
			Kind:           ScenarioNonAdvantagePenalty,
			InvolvedEvents: []gamedata.GameEvent{p},
			ResolutionNote: fmt.Sprintf(
				"%s penalty against %s at %s of period %d creates no strength differential",
				kind, p.Team, p.Clock, p.Period),
		})
	}
	return scenarios
}

// detectPenaltyShotGoals annotates goals scored on a penalty shot. Like a
// non-advantage penalty, a penalty shot creates no strength differential,
// so the annotation reuses that scenario kind.
func detectPenaltyShotGoals(goals []gamedata.GameEvent) []ComplexScenario {
	var scenarios []ComplexScenario
	for _, g := range goals {
		if g.Strength != gamedata.StrengthPenaltyShot {
			continue
		}
		scorer := "an unidentified skater"
		if g.PrimaryPlayer != nil {
			scorer = g.PrimaryPlayer.String()
		}
		scenarios = append(scenarios, ComplexScenario{
			Kind:           ScenarioNonAdvantagePenalty,
			InvolvedEvents: []gamedata.GameEvent{g},
			ResolutionNote: fmt.Sprintf(
				"penalty-shot goal by %s for %s at %s of period %d; the penalty shot creates no strength differential",
				scorer, g.Team, g.Clock, g.Period),
		})
	}
	return scenarios
}

// ScenarioSet answers the classifier's question: is a strength-context
// disagreement at this point of the game explained by a detected scenario?
type ScenarioSet struct {
	slots map[scenarioSlot]struct{}
}

type scenarioSlot struct {
	period  int
	seconds int
}

// NewScenarioSet indexes scenarios by the (period, clock) of their
// involved events.
func NewScenarioSet(scenarios []ComplexScenario) *ScenarioSet {
	s := &ScenarioSet{slots: make(map[scenarioSlot]struct{})}
	for _, sc := range scenarios {
		for _, e := range sc.InvolvedEvents {
			s.slots[scenarioSlot{period: e.Period, seconds: e.Clock.TotalSeconds()}] = struct{}{}
		}
	}
	return s
}

// ExplainsStrengthAt reports whether any detected scenario involves an
// event within tolerance seconds of (period, clock). Strength-context
// disagreements at such points are scenario-resolved, not discrepancies.
func (s *ScenarioSet) ExplainsStrengthAt(period int, clock gamedata.GameClock, tolerance int) bool {
	if s == nil {
		return false
	}
	at := clock.TotalSeconds()
	for d := -tolerance; d <= tolerance; d++ {
		if _, ok := s.slots[scenarioSlot{period: period, seconds: at + d}]; ok {
			return true
		}
	}
	return false
}

// Len returns the number of indexed scenario slots.
func (s *ScenarioSet) Len() int {
	if s == nil {
		return 0
	}
	return len(s.slots)
}
