// Package shiftchart adapts the shift report. Its raw goal marker means
// "this player was on the ice when a goal occurred for or against their
// team" and nothing else. The adapter emits every marker with the
// distinct OnIceDuringGoal kind so no downstream aggregate can ever sum
// one into a goal count; misreading the marker as a scoring event
// inflates goal totals five to ten fold.
package shiftchart

import (
	"encoding/json"
	"fmt"

	"github.com/rinkstats/crosscheck/pkg/constants"
	"github.com/rinkstats/crosscheck/pkg/errors"
	"github.com/rinkstats/crosscheck/pkg/gamedata"
	"github.com/rinkstats/crosscheck/pkg/roster"
	"github.com/rinkstats/crosscheck/pkg/sources"
)

// payload is the normalized shift report document collectors produce.
type payload struct {
	GameID  string       `json:"game_id"`
	Markers []markerLine `json:"markers"`
}

type markerLine struct {
	Period int    `json:"period"`
	Time   string `json:"time"`
	Team   string `json:"team"`
	Jersey int    `json:"jersey"`
}

// Adapter normalizes shift report records.
type Adapter struct{}

// New creates the shift chart adapter.
func New() *Adapter {
	return &Adapter{}
}

// ID returns the source this adapter handles.
func (a *Adapter) ID() sources.ID {
	return sources.ShiftChartID
}

// Normalize converts a raw shift report into an event set of on-ice
// markers only.
func (a *Adapter) Normalize(raw sources.RawRecord, ros *roster.Table) (*gamedata.SourceEventSet, error) {
	var doc payload
	if err := json.Unmarshal(raw.Payload, &doc); err != nil {
		return nil, errors.WrapAdapter(string(a.ID()), "payload", err)
	}
	if doc.Markers == nil {
		return nil, errors.NewAdapterError(string(a.ID()), "markers", "missing required field")
	}

	set := &gamedata.SourceEventSet{
		GameID: raw.GameID,
		Source: a.ID().Tag(),
		Kinds:  []gamedata.EventKind{gamedata.EventKindOnIceDuringGoal},
	}

	for i, m := range doc.Markers {
		if m.Team == "" {
			return nil, errors.NewAdapterError(string(a.ID()), "markers",
				fmt.Sprintf("marker %d missing team", i))
		}
		if m.Period < 1 || m.Period > constants.MaxPeriod {
			return nil, errors.NewAdapterError(string(a.ID()), "markers",
				fmt.Sprintf("marker %d period %d out of range", i, m.Period))
		}
		clock, err := gamedata.ParseClock(m.Time)
		if err != nil {
			return nil, errors.WrapAdapter(string(a.ID()), "markers", err)
		}

		team := gamedata.TeamCode(m.Team)
		event := gamedata.GameEvent{
			Kind:       gamedata.EventKindOnIceDuringGoal,
			Period:     m.Period,
			Clock:      clock,
			PeriodType: shiftPeriodType(m.Period),
			Team:       team,
			Source:     a.ID().Tag(),
			Sequence:   i,
		}
		if m.Jersey > 0 {
			identity, err := ros.Resolve(team, m.Jersey)
			if err != nil {
				set.Unresolved = append(set.Unresolved, gamedata.UnresolvedRef{
					Team:   team,
					Jersey: m.Jersey,
					Detail: "on-ice marker not on roster",
				})
			} else {
				event.PrimaryPlayer = &identity
			}
		}
		set.Events = append(set.Events, event)
	}

	set.SortChronological()
	return set, nil
}

func shiftPeriodType(period int) gamedata.PeriodType {
	switch {
	case period >= constants.ShootoutReportPeriod:
		return gamedata.PeriodTypeShootout
	case period > constants.RegulationPeriods:
		return gamedata.PeriodTypeOvertime
	default:
		return gamedata.PeriodTypeRegulation
	}
}
