// Package gamesummary adapts the detailed scoring report: individual
// goal events with scorer, up to two assists, and strength context, plus
// the penalty summary. The report formats player names inconsistently
// between games; the adapter never reads name text, resolution runs on
// jersey number and team alone.
package gamesummary

import (
	"encoding/json"
	"fmt"

	"github.com/rinkstats/crosscheck/pkg/constants"
	"github.com/rinkstats/crosscheck/pkg/errors"
	"github.com/rinkstats/crosscheck/pkg/gamedata"
	"github.com/rinkstats/crosscheck/pkg/roster"
	"github.com/rinkstats/crosscheck/pkg/sources"
)

// payload is the normalized scoring report document collectors produce.
type payload struct {
	GameID    string        `json:"game_id"`
	Goals     []goalLine    `json:"goals"`
	Penalties []penaltyLine `json:"penalties"`
}

type goalLine struct {
	Period   int    `json:"period"`
	Time     string `json:"time"`
	Team     string `json:"team"`
	Strength string `json:"strength"`
	Scorer   int    `json:"scorer"`
	Assists  []int  `json:"assists"`
}

type penaltyLine struct {
	Period      int    `json:"period"`
	Time        string `json:"time"`
	Team        string `json:"team"`
	CommittedBy int    `json:"committed_by"`
	Kind        string `json:"kind"`
	Minutes     int    `json:"minutes"`
	ServedBy    int    `json:"served_by"`
}

// Adapter normalizes scoring report records.
type Adapter struct{}

// New creates the game summary adapter.
func New() *Adapter {
	return &Adapter{}
}

// ID returns the source this adapter handles.
func (a *Adapter) ID() sources.ID {
	return sources.GameSummaryID
}

// Normalize converts a raw scoring report into a typed event set. The
// report prints shootout attempts as period 5; those normalize to the
// shootout period type so they stay out of every aggregate.
func (a *Adapter) Normalize(raw sources.RawRecord, ros *roster.Table) (*gamedata.SourceEventSet, error) {
	var doc payload
	if err := json.Unmarshal(raw.Payload, &doc); err != nil {
		return nil, errors.WrapAdapter(string(a.ID()), "payload", err)
	}
	if doc.Goals == nil && doc.Penalties == nil {
		return nil, errors.NewAdapterError(string(a.ID()), "goals", "missing required field")
	}

	set := &gamedata.SourceEventSet{
		GameID: raw.GameID,
		Source: a.ID().Tag(),
		Kinds:  []gamedata.EventKind{gamedata.EventKindGoal, gamedata.EventKindPenalty},
	}

	seq := 0
	for i, g := range doc.Goals {
		event, err := a.goal(g, i, seq, ros, set)
		if err != nil {
			return nil, err
		}
		set.Events = append(set.Events, event)
		seq++
	}
	for i, p := range doc.Penalties {
		event, err := a.penalty(p, i, seq, ros, set)
		if err != nil {
			return nil, err
		}
		set.Events = append(set.Events, event)
		seq++
	}

	set.SortChronological()
	return set, nil
}

func (a *Adapter) goal(g goalLine, line, seq int, ros *roster.Table, set *gamedata.SourceEventSet) (gamedata.GameEvent, error) {
	clock, period, team, err := a.common(g.Period, g.Time, g.Team, "goals", line)
	if err != nil {
		return gamedata.GameEvent{}, err
	}
	event := gamedata.GameEvent{
		Kind:       gamedata.EventKindGoal,
		Period:     period,
		Clock:      clock,
		PeriodType: reportPeriodType(period),
		Team:       team,
		Strength:   gamedata.ParseStrengthLabel(g.Strength),
		Source:     a.ID().Tag(),
		Sequence:   seq,
	}
	if g.Scorer > 0 {
		event.PrimaryPlayer = a.resolve(ros, team, g.Scorer, "scorer", set)
	}
	for _, jersey := range g.Assists {
		if identity := a.resolve(ros, team, jersey, "assist", set); identity != nil {
			event.SecondaryPlayers = append(event.SecondaryPlayers, *identity)
		}
	}
	return event, nil
}

func (a *Adapter) penalty(p penaltyLine, line, seq int, ros *roster.Table, set *gamedata.SourceEventSet) (gamedata.GameEvent, error) {
	clock, period, team, err := a.common(p.Period, p.Time, p.Team, "penalties", line)
	if err != nil {
		return gamedata.GameEvent{}, err
	}
	event := gamedata.GameEvent{
		Kind:           gamedata.EventKindPenalty,
		Period:         period,
		Clock:          clock,
		PeriodType:     reportPeriodType(period),
		Team:           team,
		Source:         a.ID().Tag(),
		Sequence:       seq,
		PenaltyKind:    p.Kind,
		PenaltyMinutes: p.Minutes,
	}
	if p.CommittedBy > 0 {
		event.PrimaryPlayer = a.resolve(ros, team, p.CommittedBy, "committed_by", set)
	}
	if p.ServedBy > 0 {
		event.ServedBy = a.resolve(ros, team, p.ServedBy, "served_by", set)
	}
	return event, nil
}

func (a *Adapter) common(period int, clockText, teamText, field string, line int) (gamedata.GameClock, int, gamedata.TeamCode, error) {
	if teamText == "" {
		return gamedata.GameClock{}, 0, "", errors.NewAdapterError(string(a.ID()), field,
			fmt.Sprintf("line %d missing team", line))
	}
	if period < 1 || period > constants.MaxPeriod {
		return gamedata.GameClock{}, 0, "", errors.NewAdapterError(string(a.ID()), field,
			fmt.Sprintf("line %d period %d out of range", line, period))
	}
	clock, err := gamedata.ParseClock(clockText)
	if err != nil {
		return gamedata.GameClock{}, 0, "", errors.WrapAdapter(string(a.ID()), field, err)
	}
	return clock, period, gamedata.TeamCode(teamText), nil
}

func (a *Adapter) resolve(ros *roster.Table, team gamedata.TeamCode, jersey int, field string, set *gamedata.SourceEventSet) *gamedata.PlayerIdentity {
	identity, err := ros.Resolve(team, jersey)
	if err != nil {
		set.Unresolved = append(set.Unresolved, gamedata.UnresolvedRef{
			Team:   team,
			Jersey: jersey,
			Detail: field + " reference not on roster",
		})
		return nil
	}
	return &identity
}

// reportPeriodType maps the report's printed period number. The report
// prints shootout attempts as period 5 and overtime as period 4.
func reportPeriodType(period int) gamedata.PeriodType {
	switch {
	case period >= constants.ShootoutReportPeriod:
		return gamedata.PeriodTypeShootout
	case period > constants.RegulationPeriods:
		return gamedata.PeriodTypeOvertime
	default:
		return gamedata.PeriodTypeRegulation
	}
}
