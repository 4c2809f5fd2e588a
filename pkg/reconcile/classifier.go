package reconcile

import (
	"sort"

	"github.com/rinkstats/crosscheck/pkg/gamedata"
	"github.com/rinkstats/crosscheck/pkg/sources"
)

// Tier is the severity of one discrepancy record.
type Tier string

// String returns the string representation of a tier.
func (t Tier) String() string {
	return string(t)
}

// Tiers, ordered by severity.
const (
	// TierPerfect: the sources agree exactly. Always positively derived
	// from delta == 0, never inferred from the absence of an issue.
	TierPerfect Tier = "perfect"

	// TierMinor: the delta is within the configured threshold.
	TierMinor Tier = "minor"

	// TierMajor: the delta exceeds the threshold, or an authoritative
	// event is missing from the secondary source entirely.
	TierMajor Tier = "major"
)

// SubjectKind distinguishes player records from team records.
type SubjectKind string

// Subject kinds.
const (
	SubjectPlayer SubjectKind = "player"
	SubjectTeam   SubjectKind = "team"
)

// Discrepancy causes, the vocabulary the season rollup ranks.
const (
	CauseGoalsDiffer    = "goals differ"
	CauseAssistsDiffer  = "assists differ"
	CausePointsDiffer   = "points differ"
	CausePIMDiffer      = "pim differ"
	CauseScoreDiffer    = "score differ"
	CauseStrengthDiffer = "strength differs"
	CauseMissingEvent   = "missing event"
)

// DiscrepancyRecord is one (subject, metric) comparison between the
// authoritative source and one secondary source, aggregated across the
// game with Shootout events excluded. Invariant: Delta == 0 ⇔ Tier ==
// TierPerfect.
type DiscrepancyRecord struct {
	Subject            string            `json:"subject" yaml:"subject"` // canonical player ID or team code
	SubjectKind        SubjectKind       `json:"subject_kind" yaml:"subject_kind"`
	Team               gamedata.TeamCode `json:"team" yaml:"team"`
	Metric             gamedata.Metric   `json:"metric" yaml:"metric"`
	Source             sources.ID        `json:"source" yaml:"source"`
	AuthoritativeValue int               `json:"authoritative_value" yaml:"authoritative_value"`
	SecondaryValue     int               `json:"secondary_value" yaml:"secondary_value"`
	Delta              int               `json:"delta" yaml:"delta"`
	Tier               Tier              `json:"tier" yaml:"tier"`
	Cause              string            `json:"cause,omitempty" yaml:"cause,omitempty"`
}

// Classifier compares aggregates between the authoritative source and a
// secondary source and assigns severity tiers. It consults the detected
// scenarios before flagging strength-context mismatches.
type Classifier struct {
	minorThreshold int
	scenarios      *ScenarioSet
}

// NewClassifier creates a Classifier with the given minor threshold and
// scenario index.
func NewClassifier(minorThreshold int, scenarios *ScenarioSet) *Classifier {
	return &Classifier{minorThreshold: minorThreshold, scenarios: scenarios}
}

// classifyDelta derives the tier from the delta alone. Perfect is always
// a positive derivation from delta == 0.
func (c *Classifier) classifyDelta(delta int) Tier {
	switch {
	case delta == 0:
		return TierPerfect
	case delta <= c.minorThreshold:
		return TierMinor
	default:
		return TierMajor
	}
}

// playerStats are one player's aggregates over a game, shootout excluded.
type playerStats struct {
	identity gamedata.PlayerIdentity
	goals    int
	assists  int
	points   int
	pim      int
}

// teamStats are one team's aggregates over a game, shootout excluded.
type teamStats struct {
	goals int
	pim   int
}

// aggregate folds an event set into per-player and per-team stats.
// Shootout events are excluded entirely and on-ice markers never count
// toward anything.
func aggregate(set *gamedata.SourceEventSet) (map[string]*playerStats, map[gamedata.TeamCode]*teamStats) {
	players := make(map[string]*playerStats)
	teams := make(map[gamedata.TeamCode]*teamStats)

	player := func(id gamedata.PlayerIdentity) *playerStats {
		p, ok := players[id.CanonicalID]
		if !ok {
			p = &playerStats{identity: id}
			players[id.CanonicalID] = p
		}
		return p
	}
	team := func(code gamedata.TeamCode) *teamStats {
		t, ok := teams[code]
		if !ok {
			t = &teamStats{}
			teams[code] = t
		}
		return t
	}

	for _, e := range set.Events {
		if !e.CountsForStats() {
			continue
		}
		switch e.Kind {
		case gamedata.EventKindGoal:
			team(e.Team).goals++
			if e.PrimaryPlayer != nil {
				p := player(*e.PrimaryPlayer)
				p.goals++
				p.points++
			}
			for _, assist := range e.SecondaryPlayers {
				p := player(assist)
				p.assists++
				p.points++
			}
		case gamedata.EventKindPenalty:
			team(e.Team).pim += e.PenaltyMinutes
			if e.PrimaryPlayer != nil {
				player(*e.PrimaryPlayer).pim += e.PenaltyMinutes
			}
		case gamedata.EventKindOnIceDuringGoal:
			// On-ice presence, never a statistic.
		}
	}
	return players, teams
}

// ClassifyEvents compares an event-carrying secondary source against the
// authoritative set: aggregate comparisons per metric the secondary
// reports, strength-context comparisons over matched goal pairs, and a
// Major record per authoritative event missing from the secondary.
func (c *Classifier) ClassifyEvents(auth, secondary *gamedata.SourceEventSet, matches SourceMatches, id sources.ID) []DiscrepancyRecord {
	authPlayers, authTeams := aggregate(auth)
	secPlayers, secTeams := aggregate(secondary)

	var records []DiscrepancyRecord

	unresolvedTeams := make(map[gamedata.TeamCode]struct{})
	for _, ref := range secondary.Unresolved {
		unresolvedTeams[ref.Team] = struct{}{}
	}

	goals := secondary.ReportsKind(gamedata.EventKindGoal)
	penalties := secondary.ReportsKind(gamedata.EventKindPenalty)

	for _, canonicalID := range unionPlayerIDs(authPlayers, secPlayers) {
		a, s := statsFor(authPlayers, canonicalID), statsFor(secPlayers, canonicalID)
		identity := a.identity
		if identity.CanonicalID == "" {
			identity = s.identity
		}
		add := func(metric gamedata.Metric, av, sv int, cause string) {
			rec := c.record(canonicalID, SubjectPlayer, identity.TeamCode, metric, id, av, sv, cause)
			// An unresolved reference on this team means the secondary
			// could not attribute everything it saw; any disagreement
			// for the team's players is a hard defect, not a rounding.
			if _, unresolved := unresolvedTeams[identity.TeamCode]; unresolved && rec.Delta != 0 {
				rec.Tier = TierMajor
			}
			records = append(records, rec)
		}
		if goals {
			add(gamedata.MetricGoals, a.goals, s.goals, CauseGoalsDiffer)
			add(gamedata.MetricAssists, a.assists, s.assists, CauseAssistsDiffer)
			add(gamedata.MetricPoints, a.points, s.points, CausePointsDiffer)
		}
		if penalties {
			add(gamedata.MetricPenaltyMinutes, a.pim, s.pim, CausePIMDiffer)
		}
	}

	for _, code := range unionTeamCodes(authTeams, secTeams) {
		a, s := teamStatsFor(authTeams, code), teamStatsFor(secTeams, code)
		if goals {
			records = append(records, c.record(string(code), SubjectTeam, code, gamedata.MetricGoals, id, a.goals, s.goals, CauseGoalsDiffer))
		}
		if penalties {
			records = append(records, c.record(string(code), SubjectTeam, code, gamedata.MetricPenaltyMinutes, id, a.pim, s.pim, CausePIMDiffer))
		}
	}

	records = append(records, c.classifyStrength(matches, id)...)
	records = append(records, c.classifyMissing(matches, id)...)
	return records
}

// classifyStrength compares strength contexts over matched goal pairs.
// Disagreements explained by a detected scenario are not penalized; they
// surface through the scenario's own report entry instead.
func (c *Classifier) classifyStrength(matches SourceMatches, id sources.ID) []DiscrepancyRecord {
	var records []DiscrepancyRecord
	for _, pair := range matches.Pairs {
		a := pair.Authoritative
		if a.Kind != gamedata.EventKindGoal || pair.Secondary == nil {
			continue
		}
		s := pair.Secondary
		if a.Strength == gamedata.StrengthUnknown || s.Strength == gamedata.StrengthUnknown {
			continue
		}
		if a.Strength == s.Strength {
			continue
		}
		if c.scenarios.ExplainsStrengthAt(a.Period, a.Clock, 0) {
			continue
		}
		subject, kind, team := subjectOf(a)
		records = append(records, DiscrepancyRecord{
			Subject:            subject,
			SubjectKind:        kind,
			Team:               team,
			Metric:             gamedata.MetricStrength,
			Source:             id,
			AuthoritativeValue: 1,
			SecondaryValue:     0,
			Delta:              1,
			Tier:               c.classifyDelta(1),
			Cause:              CauseStrengthDiffer,
		})
	}
	return records
}

// classifyMissing produces one Major record per authoritative event the
// secondary source has no candidate for. The missing event is Major by
// rule regardless of the minor threshold.
func (c *Classifier) classifyMissing(matches SourceMatches, id sources.ID) []DiscrepancyRecord {
	var records []DiscrepancyRecord
	for _, pair := range matches.Pairs {
		if pair.Matched() {
			continue
		}
		a := pair.Authoritative
		if !a.CountsForStats() {
			continue
		}
		subject, kind, team := subjectOf(a)
		metric := gamedata.MetricGoals
		if a.Kind == gamedata.EventKindPenalty {
			metric = gamedata.MetricPenaltyMinutes
		}
		records = append(records, DiscrepancyRecord{
			Subject:            subject,
			SubjectKind:        kind,
			Team:               team,
			Metric:             metric,
			Source:             id,
			AuthoritativeValue: 1,
			SecondaryValue:     0,
			Delta:              1,
			Tier:               TierMajor,
			Cause:              CauseMissingEvent,
		})
	}
	return records
}

// ClassifyTotals compares a totals-only secondary source against the
// authoritative aggregates: per-team goals, score, and penalty minutes,
// and per-player goals, assists, points, and penalty minutes.
func (c *Classifier) ClassifyTotals(auth, secondary *gamedata.SourceEventSet, id sources.ID) []DiscrepancyRecord {
	authPlayers, authTeams := aggregate(auth)
	totals := secondary.Totals
	if totals == nil {
		return nil
	}

	secPlayers := make(map[string]*playerStats, len(totals.Players))
	for _, p := range totals.Players {
		secPlayers[p.Player.CanonicalID] = &playerStats{
			identity: p.Player,
			goals:    p.Goals,
			assists:  p.Assists,
			points:   p.Points,
			pim:      p.PenaltyMinutes,
		}
	}

	unresolvedTeams := make(map[gamedata.TeamCode]struct{})
	for _, ref := range secondary.Unresolved {
		unresolvedTeams[ref.Team] = struct{}{}
	}

	var records []DiscrepancyRecord
	for _, canonicalID := range unionPlayerIDs(authPlayers, secPlayers) {
		a, s := statsFor(authPlayers, canonicalID), statsFor(secPlayers, canonicalID)
		identity := a.identity
		if identity.CanonicalID == "" {
			identity = s.identity
		}
		add := func(metric gamedata.Metric, av, sv int, cause string) {
			rec := c.record(canonicalID, SubjectPlayer, identity.TeamCode, metric, id, av, sv, cause)
			// Same rule as the event path: a total line the source could
			// not attribute poisons every disagreement on that team.
			if _, unresolved := unresolvedTeams[identity.TeamCode]; unresolved && rec.Delta != 0 {
				rec.Tier = TierMajor
			}
			records = append(records, rec)
		}
		add(gamedata.MetricGoals, a.goals, s.goals, CauseGoalsDiffer)
		add(gamedata.MetricAssists, a.assists, s.assists, CauseAssistsDiffer)
		add(gamedata.MetricPoints, a.points, s.points, CausePointsDiffer)
		add(gamedata.MetricPenaltyMinutes, a.pim, s.pim, CausePIMDiffer)
	}

	secTeams := make(map[gamedata.TeamCode]gamedata.TeamTotals, len(totals.Teams))
	for _, t := range totals.Teams {
		secTeams[t.Team] = t
	}
	codes := make(map[gamedata.TeamCode]struct{})
	for code := range authTeams {
		codes[code] = struct{}{}
	}
	for code := range secTeams {
		codes[code] = struct{}{}
	}
	for _, code := range sortedTeamCodes(codes) {
		a := teamStatsFor(authTeams, code)
		s := secTeams[code]
		records = append(records,
			c.record(string(code), SubjectTeam, code, gamedata.MetricGoals, id, a.goals, s.Goals, CauseGoalsDiffer),
			c.record(string(code), SubjectTeam, code, gamedata.MetricScore, id, a.goals, s.Score, CauseScoreDiffer),
			c.record(string(code), SubjectTeam, code, gamedata.MetricPenaltyMinutes, id, a.pim, s.PenaltyMinutes, CausePIMDiffer),
		)
	}
	return records
}

// record builds one classified comparison. The cause is recorded only on
// disagreement; a Perfect record carries none.
func (c *Classifier) record(subject string, kind SubjectKind, team gamedata.TeamCode, metric gamedata.Metric, id sources.ID, av, sv int, cause string) DiscrepancyRecord {
	delta := av - sv
	if delta < 0 {
		delta = -delta
	}
	tier := c.classifyDelta(delta)
	if tier == TierPerfect {
		cause = ""
	}
	return DiscrepancyRecord{
		Subject:            subject,
		SubjectKind:        kind,
		Team:               team,
		Metric:             metric,
		Source:             id,
		AuthoritativeValue: av,
		SecondaryValue:     sv,
		Delta:              delta,
		Tier:               tier,
		Cause:              cause,
	}
}

// subjectOf returns the record subject for an event: its primary player
// when one exists, otherwise its team.
func subjectOf(e gamedata.GameEvent) (string, SubjectKind, gamedata.TeamCode) {
	if e.PrimaryPlayer != nil {
		return e.PrimaryPlayer.CanonicalID, SubjectPlayer, e.Team
	}
	return string(e.Team), SubjectTeam, e.Team
}

func statsFor(m map[string]*playerStats, id string) playerStats {
	if s, ok := m[id]; ok {
		return *s
	}
	return playerStats{}
}

func teamStatsFor(m map[gamedata.TeamCode]*teamStats, code gamedata.TeamCode) teamStats {
	if s, ok := m[code]; ok {
		return *s
	}
	return teamStats{}
}

// unionPlayerIDs returns the canonical IDs present in either aggregate,
// ordered by team code then canonical ID for stable output.
func unionPlayerIDs(a, b map[string]*playerStats) []string {
	type entry struct {
		id   string
		team gamedata.TeamCode
	}
	seen := make(map[string]entry)
	for id, s := range a {
		seen[id] = entry{id: id, team: s.identity.TeamCode}
	}
	for id, s := range b {
		if _, ok := seen[id]; !ok {
			seen[id] = entry{id: id, team: s.identity.TeamCode}
		}
	}
	entries := make([]entry, 0, len(seen))
	for _, e := range seen {
		entries = append(entries, e)
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].team != entries[j].team {
			return entries[i].team < entries[j].team
		}
		return entries[i].id < entries[j].id
	})
	ids := make([]string, len(entries))
	for i, e := range entries {
		ids[i] = e.id
	}
	return ids
}

// unionTeamCodes returns the team codes present in either aggregate,
// sorted.
func unionTeamCodes(a, b map[gamedata.TeamCode]*teamStats) []gamedata.TeamCode {
	codes := make(map[gamedata.TeamCode]struct{})
	for code := range a {
		codes[code] = struct{}{}
	}
	for code := range b {
		codes[code] = struct{}{}
	}
	return sortedTeamCodes(codes)
}

func sortedTeamCodes(codes map[gamedata.TeamCode]struct{}) []gamedata.TeamCode {
	sorted := make([]gamedata.TeamCode, 0, len(codes))
	for code := range codes {
		sorted = append(sorted, code)
	}
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })
	return sorted
}
