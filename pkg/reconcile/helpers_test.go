package reconcile

import (
	"fmt"

	"github.com/rinkstats/crosscheck/pkg/gamedata"
	"github.com/rinkstats/crosscheck/pkg/sources"
)

// Test fixtures shared by the engine tests. Two teams, a handful of
// players, events built by hand.

func player(team gamedata.TeamCode, jersey int) *gamedata.PlayerIdentity {
	p := identity(team, jersey)
	return &p
}

func identity(team gamedata.TeamCode, jersey int) gamedata.PlayerIdentity {
	return gamedata.PlayerIdentity{
		CanonicalID:  fmt.Sprintf("%s-%d", team, jersey),
		JerseyNumber: jersey,
		TeamCode:     team,
	}
}

func goal(team gamedata.TeamCode, jersey, period int, clock string, seq int) gamedata.GameEvent {
	return gamedata.GameEvent{
		Kind:          gamedata.EventKindGoal,
		Period:        period,
		Clock:         gamedata.MustClock(clock),
		PeriodType:    periodTypeFor(period),
		Team:          team,
		PrimaryPlayer: player(team, jersey),
		Strength:      gamedata.StrengthEven,
		Sequence:      seq,
	}
}

func penalty(team gamedata.TeamCode, jersey, period int, clock, kind string, minutes, seq int) gamedata.GameEvent {
	e := gamedata.GameEvent{
		Kind:           gamedata.EventKindPenalty,
		Period:         period,
		Clock:          gamedata.MustClock(clock),
		PeriodType:     periodTypeFor(period),
		Team:           team,
		Strength:       gamedata.StrengthEven,
		Sequence:       seq,
		PenaltyKind:    kind,
		PenaltyMinutes: minutes,
	}
	if jersey > 0 {
		e.PrimaryPlayer = player(team, jersey)
	}
	return e
}

func onIceMarker(team gamedata.TeamCode, jersey, period int, clock string, seq int) gamedata.GameEvent {
	return gamedata.GameEvent{
		Kind:          gamedata.EventKindOnIceDuringGoal,
		Period:        period,
		Clock:         gamedata.MustClock(clock),
		PeriodType:    periodTypeFor(period),
		Team:          team,
		PrimaryPlayer: player(team, jersey),
		Sequence:      seq,
	}
}

func periodTypeFor(period int) gamedata.PeriodType {
	if period <= 3 {
		return gamedata.PeriodTypeRegulation
	}
	return gamedata.PeriodTypeOvertime
}

func eventSet(source sources.ID, kinds []gamedata.EventKind, events ...gamedata.GameEvent) *gamedata.SourceEventSet {
	set := &gamedata.SourceEventSet{
		GameID: "2023020204",
		Source: source.Tag(),
		Kinds:  kinds,
		Events: events,
	}
	for i := range set.Events {
		set.Events[i].Source = source.Tag()
	}
	set.SortChronological()
	return set
}

func goalKinds() []gamedata.EventKind {
	return []gamedata.EventKind{gamedata.EventKindGoal, gamedata.EventKindPenalty}
}

func countTier(records []DiscrepancyRecord, tier Tier) int {
	n := 0
	for _, rec := range records {
		if rec.Tier == tier {
			n++
		}
	}
	return n
}

func findRecord(records []DiscrepancyRecord, subject string, metric gamedata.Metric) (DiscrepancyRecord, bool) {
	for _, rec := range records {
		if rec.Subject == subject && rec.Metric == metric {
			return rec, true
		}
	}
	return DiscrepancyRecord{}, false
}
