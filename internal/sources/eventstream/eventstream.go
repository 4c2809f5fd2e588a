// Package eventstream adapts the play-by-play event feed, the usual
// authoritative source. The feed is a numeric-coded play list; a single
// fixed type code identifies goals and another identifies penalties.
// Every other known code is skipped without error so a full play-by-play
// feed does not trip structural checks.
package eventstream

import (
	"encoding/json"
	"fmt"

	"github.com/rinkstats/crosscheck/pkg/constants"
	"github.com/rinkstats/crosscheck/pkg/errors"
	"github.com/rinkstats/crosscheck/pkg/gamedata"
	"github.com/rinkstats/crosscheck/pkg/roster"
	"github.com/rinkstats/crosscheck/pkg/sources"
)

// Event type codes carried by the feed. Goal and penalty are the only
// producing codes; the rest are recognized so they can be skipped
// deliberately rather than tripping an unknown-code path.
const (
	codeFaceoff        = 502
	codeGoal           = 505
	codeShotOnGoal     = 506
	codeMissedShot     = 507
	codeBlockedShot    = 508
	codePenalty        = 509
	codeStoppage       = 516
	codePeriodEnd      = 521
	codeDelayedPenalty = 535
)

// knownIgnoredCodes are play types the adapter recognizes and skips.
var knownIgnoredCodes = map[int]struct{}{
	codeFaceoff:        {},
	codeShotOnGoal:     {},
	codeMissedShot:     {},
	codeBlockedShot:    {},
	codeStoppage:       {},
	codePeriodEnd:      {},
	codeDelayedPenalty: {},
}

// payload is the normalized play-by-play document collectors produce.
type payload struct {
	GameID string `json:"game_id"`
	Plays  []play `json:"plays"`
}

type play struct {
	TypeCode       int    `json:"type_code"`
	Period         int    `json:"period"`
	PeriodType     string `json:"period_type"`
	TimeInPeriod   string `json:"time_in_period"`
	SituationCode  string `json:"situation_code"`
	Team           string `json:"team"`
	Scorer         int    `json:"scorer"`
	Assists        []int  `json:"assists"`
	CommittedBy    int    `json:"committed_by"`
	PenaltyKind    string `json:"penalty_kind"`
	PenaltyMinutes int    `json:"penalty_minutes"`
	ServedBy       int    `json:"served_by"`
}

// Adapter normalizes play-by-play records.
type Adapter struct{}

// New creates the event stream adapter.
func New() *Adapter {
	return &Adapter{}
}

// ID returns the source this adapter handles.
func (a *Adapter) ID() sources.ID {
	return sources.EventStreamID
}

// Normalize converts a raw play-by-play record into a typed event set.
// Period type is read directly from the feed and trusted; it is never
// corrected toward what other sources print.
func (a *Adapter) Normalize(raw sources.RawRecord, ros *roster.Table) (*gamedata.SourceEventSet, error) {
	var doc payload
	if err := json.Unmarshal(raw.Payload, &doc); err != nil {
		return nil, errors.WrapAdapter(string(a.ID()), "payload", err)
	}
	if doc.Plays == nil {
		return nil, errors.NewAdapterError(string(a.ID()), "plays", "missing required field")
	}

	set := &gamedata.SourceEventSet{
		GameID: raw.GameID,
		Source: a.ID().Tag(),
		Kinds:  []gamedata.EventKind{gamedata.EventKindGoal, gamedata.EventKindPenalty},
	}

	for i, p := range doc.Plays {
		switch p.TypeCode {
		case codeGoal:
			event, err := a.goal(p, i, ros, set)
			if err != nil {
				return nil, err
			}
			set.Events = append(set.Events, event)
		case codePenalty:
			event, err := a.penalty(p, i, ros, set)
			if err != nil {
				return nil, err
			}
			set.Events = append(set.Events, event)
		default:
			if _, known := knownIgnoredCodes[p.TypeCode]; known {
				continue
			}
			// Feeds occasionally introduce new codes mid-season; an
			// unknown code is skipped like a known one.
			continue
		}
	}

	set.SortChronological()
	return set, nil
}

func (a *Adapter) goal(p play, seq int, ros *roster.Table, set *gamedata.SourceEventSet) (gamedata.GameEvent, error) {
	base, err := a.base(p, seq)
	if err != nil {
		return gamedata.GameEvent{}, err
	}
	base.Kind = gamedata.EventKindGoal
	base.Strength = gamedata.ParseSituationCode(p.SituationCode)

	if p.Scorer > 0 {
		base.PrimaryPlayer = a.resolve(ros, base.Team, p.Scorer, "scorer", set)
	}
	for _, jersey := range p.Assists {
		if identity := a.resolve(ros, base.Team, jersey, "assist", set); identity != nil {
			base.SecondaryPlayers = append(base.SecondaryPlayers, *identity)
		}
	}
	return base, nil
}

func (a *Adapter) penalty(p play, seq int, ros *roster.Table, set *gamedata.SourceEventSet) (gamedata.GameEvent, error) {
	base, err := a.base(p, seq)
	if err != nil {
		return gamedata.GameEvent{}, err
	}
	base.Kind = gamedata.EventKindPenalty
	base.Strength = gamedata.ParseSituationCode(p.SituationCode)
	base.PenaltyKind = p.PenaltyKind
	base.PenaltyMinutes = p.PenaltyMinutes

	// CommittedBy 0 marks a team infraction: no individually penalized
	// skater, minutes attribute to the team, a server may be named.
	if p.CommittedBy > 0 {
		base.PrimaryPlayer = a.resolve(ros, base.Team, p.CommittedBy, "committed_by", set)
	}
	if p.ServedBy > 0 {
		base.ServedBy = a.resolve(ros, base.Team, p.ServedBy, "served_by", set)
	}
	return base, nil
}

// base builds the common fields of one play, validating clock, period,
// and team.
func (a *Adapter) base(p play, seq int) (gamedata.GameEvent, error) {
	if p.Team == "" {
		return gamedata.GameEvent{}, errors.NewAdapterError(string(a.ID()), "team",
			fmt.Sprintf("play %d missing team", seq))
	}
	if p.Period < 1 || p.Period > constants.MaxPeriod {
		return gamedata.GameEvent{}, errors.NewAdapterError(string(a.ID()), "period",
			fmt.Sprintf("play %d period %d out of range", seq, p.Period))
	}
	clock, err := gamedata.ParseClock(p.TimeInPeriod)
	if err != nil {
		return gamedata.GameEvent{}, errors.WrapAdapter(string(a.ID()), "time_in_period", err)
	}
	return gamedata.GameEvent{
		Period:     p.Period,
		Clock:      clock,
		PeriodType: periodType(p),
		Team:       gamedata.TeamCode(p.Team),
		Source:     a.ID().Tag(),
		Sequence:   seq,
	}, nil
}

// resolve maps a jersey reference, recording failures on the set instead
// of erroring; the engine decides whether unresolved references abort
// the game based on which source they came from.
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

// periodType maps the feed's period descriptor. The feed is trusted; an
// absent descriptor falls back to the period number alone.
func periodType(p play) gamedata.PeriodType {
	switch p.PeriodType {
	case "REG", "regulation":
		return gamedata.PeriodTypeRegulation
	case "OT", "overtime":
		return gamedata.PeriodTypeOvertime
	case "SO", "shootout":
		return gamedata.PeriodTypeShootout
	}
	if p.Period <= constants.RegulationPeriods {
		return gamedata.PeriodTypeRegulation
	}
	return gamedata.PeriodTypeOvertime
}
