// Package boxscore adapts the totals-only boxscore feed. The source
// carries no timestamped events, only per-team and per-player aggregate
// counts, so it participates in aggregate cross-checks and never in
// event-level matching.
package boxscore

import (
	"encoding/json"
	"fmt"

	"github.com/rinkstats/crosscheck/pkg/errors"
	"github.com/rinkstats/crosscheck/pkg/gamedata"
	"github.com/rinkstats/crosscheck/pkg/roster"
	"github.com/rinkstats/crosscheck/pkg/sources"
)

// payload is the normalized boxscore document collectors produce.
type payload struct {
	GameID  string       `json:"game_id"`
	Teams   []teamLine   `json:"teams"`
	Players []playerLine `json:"players"`
}

type teamLine struct {
	Team  string `json:"team"`
	Goals int    `json:"goals"`
	Score int    `json:"score"`
	PIM   int    `json:"pim"`
}

type playerLine struct {
	Team    string `json:"team"`
	Jersey  int    `json:"jersey"`
	Goals   int    `json:"goals"`
	Assists int    `json:"assists"`
	Points  int    `json:"points"`
	PIM     int    `json:"pim"`
}

// Adapter normalizes boxscore records.
type Adapter struct{}

// New creates the boxscore adapter.
func New() *Adapter {
	return &Adapter{}
}

// ID returns the source this adapter handles.
func (a *Adapter) ID() sources.ID {
	return sources.BoxscoreID
}

// Normalize converts a raw boxscore record into a totals-only event set.
func (a *Adapter) Normalize(raw sources.RawRecord, ros *roster.Table) (*gamedata.SourceEventSet, error) {
	var doc payload
	if err := json.Unmarshal(raw.Payload, &doc); err != nil {
		return nil, errors.WrapAdapter(string(a.ID()), "payload", err)
	}
	if len(doc.Teams) == 0 {
		return nil, errors.NewAdapterError(string(a.ID()), "teams", "missing required field")
	}

	set := &gamedata.SourceEventSet{
		GameID: raw.GameID,
		Source: a.ID().Tag(),
		Totals: &gamedata.Totals{},
	}

	for i, t := range doc.Teams {
		if t.Team == "" {
			return nil, errors.NewAdapterError(string(a.ID()), "teams",
				fmt.Sprintf("team line %d missing team code", i))
		}
		set.Totals.Teams = append(set.Totals.Teams, gamedata.TeamTotals{
			Team:           gamedata.TeamCode(t.Team),
			Goals:          t.Goals,
			Score:          t.Score,
			PenaltyMinutes: t.PIM,
		})
	}

	for i, p := range doc.Players {
		if p.Team == "" || p.Jersey <= 0 {
			return nil, errors.NewAdapterError(string(a.ID()), "players",
				fmt.Sprintf("player line %d missing team or jersey", i))
		}
		identity, err := ros.Resolve(gamedata.TeamCode(p.Team), p.Jersey)
		if err != nil {
			set.Unresolved = append(set.Unresolved, gamedata.UnresolvedRef{
				Team:   gamedata.TeamCode(p.Team),
				Jersey: p.Jersey,
				Detail: "boxscore player line not on roster",
			})
			continue
		}
		set.Totals.Players = append(set.Totals.Players, gamedata.PlayerTotals{
			Player:         identity,
			Goals:          p.Goals,
			Assists:        p.Assists,
			Points:         p.Points,
			PenaltyMinutes: p.PIM,
		})
	}

	return set, nil
}
