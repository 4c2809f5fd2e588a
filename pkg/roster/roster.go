// Package roster builds the per-game identity table and resolves the
// (jersey number, team) references sources use to canonical player
// identities. Name text never participates in resolution; sources format
// names too inconsistently to compare.
package roster

import (
	"sort"

	"github.com/rinkstats/crosscheck/pkg/errors"
	"github.com/rinkstats/crosscheck/pkg/gamedata"
)

type key struct {
	team   gamedata.TeamCode
	jersey int
}

// Table is one game's immutable identity table. Built once from roster
// input, then read-only for the rest of the run.
type Table struct {
	gameID string
	byKey  map[key]gamedata.PlayerIdentity
	byID   map[string]gamedata.PlayerIdentity
	names  map[string]string
}

// New builds a Table from roster input. Every entry must carry a team,
// a canonical ID, and a jersey number unique within its team.
func New(ctx gamedata.RosterContext) (*Table, error) {
	if len(ctx.Entries) == 0 {
		return nil, errors.ErrEmptyRoster
	}

	t := &Table{
		gameID: ctx.GameID,
		byKey:  make(map[key]gamedata.PlayerIdentity, len(ctx.Entries)),
		byID:   make(map[string]gamedata.PlayerIdentity, len(ctx.Entries)),
		names:  make(map[string]string, len(ctx.Entries)),
	}

	for _, entry := range ctx.Entries {
		if entry.Team == "" {
			return nil, errors.NewValidationError("team", entry.Team, "roster entry missing team code")
		}
		if entry.CanonicalID == "" {
			return nil, errors.NewValidationError("canonical_id", entry.CanonicalID, "roster entry missing canonical ID")
		}
		if entry.JerseyNumber <= 0 {
			return nil, errors.NewValidationError("jersey_number", entry.JerseyNumber, "roster entry missing jersey number")
		}

		k := key{team: entry.Team, jersey: entry.JerseyNumber}
		if existing, dup := t.byKey[k]; dup {
			return nil, errors.NewValidationError("jersey_number", entry.JerseyNumber,
				"jersey already assigned to "+existing.CanonicalID+" on "+string(entry.Team))
		}

		identity := gamedata.PlayerIdentity{
			CanonicalID:  entry.CanonicalID,
			JerseyNumber: entry.JerseyNumber,
			TeamCode:     entry.Team,
		}
		t.byKey[k] = identity
		t.byID[entry.CanonicalID] = identity
		if entry.Name != "" {
			t.names[entry.CanonicalID] = entry.Name
		}
	}

	return t, nil
}

// GameID returns the game this table was built for.
func (t *Table) GameID() string {
	return t.gameID
}

// Len returns the number of players in the table.
func (t *Table) Len() int {
	return len(t.byID)
}

// Resolve maps a (team, jersey) reference to its canonical identity.
// Returns an UnknownPlayerError when no roster entry matches; callers
// resolving on behalf of a source attach the source tag themselves.
func (t *Table) Resolve(team gamedata.TeamCode, jersey int) (gamedata.PlayerIdentity, error) {
	identity, ok := t.byKey[key{team: team, jersey: jersey}]
	if !ok {
		return gamedata.PlayerIdentity{}, errors.NewUnknownPlayerError(string(team), jersey, "")
	}
	return identity, nil
}

// ByID returns the identity for a canonical ID.
func (t *Table) ByID(canonicalID string) (gamedata.PlayerIdentity, bool) {
	identity, ok := t.byID[canonicalID]
	return identity, ok
}

// Name returns the display name recorded for a canonical ID, or the
// empty string when the roster carried none.
func (t *Table) Name(canonicalID string) string {
	return t.names[canonicalID]
}

// Players returns every identity ordered by team code, then jersey
// number. The order is stable across runs so reports render identically
// on identical input.
func (t *Table) Players() []gamedata.PlayerIdentity {
	players := make([]gamedata.PlayerIdentity, 0, len(t.byID))
	for _, identity := range t.byID {
		players = append(players, identity)
	}
	sort.Slice(players, func(i, j int) bool {
		if players[i].TeamCode != players[j].TeamCode {
			return players[i].TeamCode < players[j].TeamCode
		}
		return players[i].JerseyNumber < players[j].JerseyNumber
	})
	return players
}

// Teams returns the distinct team codes in the table, sorted.
func (t *Table) Teams() []gamedata.TeamCode {
	seen := make(map[gamedata.TeamCode]struct{})
	for k := range t.byKey {
		seen[k.team] = struct{}{}
	}
	teams := make([]gamedata.TeamCode, 0, len(seen))
	for team := range seen {
		teams = append(teams, team)
	}
	sort.Slice(teams, func(i, j int) bool { return teams[i] < teams[j] })
	return teams
}
