package gamedata

import "fmt"

// TeamCode is the short code a source uses for a team ("BUF", "NJD").
type TeamCode string

// String returns the string representation of a team code.
func (t TeamCode) String() string {
	return string(t)
}

// PlayerIdentity is the canonical identity of one player in one game.
// The (JerseyNumber, TeamCode) pair uniquely resolves one identity per
// game; a jersey number alone is not unique across teams. Identities are
// built once per game from roster data and are immutable afterward.
type PlayerIdentity struct {
	CanonicalID  string   `json:"canonical_id" yaml:"canonical_id"`   // Stable league-wide player ID
	JerseyNumber int      `json:"jersey_number" yaml:"jersey_number"` // Sweater number within the game
	TeamCode     TeamCode `json:"team_code" yaml:"team_code"`         // Team the player dressed for
}

// String formats the identity as "TEAM #N".
func (p PlayerIdentity) String() string {
	return fmt.Sprintf("%s #%d", p.TeamCode, p.JerseyNumber)
}

// Equal reports whether two identities refer to the same player.
func (p PlayerIdentity) Equal(other PlayerIdentity) bool {
	return p.CanonicalID == other.CanonicalID
}

// RosterEntry is one dressed player in a game's roster input.
type RosterEntry struct {
	CanonicalID  string   `json:"canonical_id" yaml:"canonical_id"`
	Team         TeamCode `json:"team" yaml:"team"`
	JerseyNumber int      `json:"jersey_number" yaml:"jersey_number"`
	Name         string   `json:"name,omitempty" yaml:"name,omitempty"` // Display only, never used for resolution
}

// RosterContext is the per-game identity input: every dressed player for
// both teams, keyed by team and jersey.
type RosterContext struct {
	GameID  string        `json:"game_id" yaml:"game_id"`
	Entries []RosterEntry `json:"entries" yaml:"entries"`
}
