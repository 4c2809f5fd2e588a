package reconcile

import (
	"testing"

	"github.com/rinkstats/crosscheck/pkg/gamedata"
	"github.com/rinkstats/crosscheck/pkg/sources"
)

func classify(t *testing.T, auth, secondary *gamedata.SourceEventSet) []DiscrepancyRecord {
	t.Helper()
	matcher := NewMatcher(2)
	classifier := NewClassifier(1, NewScenarioSet(DetectScenarios(auth)))

	matches := SourceMatches{Source: sources.GameSummaryID}
	for _, kind := range []gamedata.EventKind{gamedata.EventKindGoal, gamedata.EventKindPenalty} {
		pairs, _ := matcher.Match(auth, secondary, kind, sources.GameSummaryID)
		matches.Pairs = append(matches.Pairs, pairs...)
	}
	return classifier.ClassifyEvents(auth, secondary, matches, sources.GameSummaryID)
}

func TestDeltaZeroIsAlwaysPerfect(t *testing.T) {
	auth := eventSet(sources.EventStreamID, goalKinds(),
		goal("BUF", 53, 1, "12:34", 0),
		goal("NJD", 86, 2, "05:10", 1),
		penalty("NJD", 13, 1, "18:00", "tripping", 2, 2),
	)
	secondary := eventSet(sources.GameSummaryID, goalKinds(),
		goal("BUF", 53, 1, "12:34", 0),
		goal("NJD", 86, 2, "05:10", 1),
		penalty("NJD", 13, 1, "18:00", "tripping", 2, 2),
	)

	records := classify(t, auth, secondary)
	if len(records) == 0 {
		t.Fatal("expected records")
	}
	for _, rec := range records {
		if (rec.Delta == 0) != (rec.Tier == TierPerfect) {
			t.Errorf("record %s/%s: delta %d with tier %s violates delta==0 ⇔ Perfect",
				rec.Subject, rec.Metric, rec.Delta, rec.Tier)
		}
		if rec.Tier == TierPerfect && rec.Cause != "" {
			t.Errorf("perfect record %s/%s carries cause %q", rec.Subject, rec.Metric, rec.Cause)
		}
	}
	if countTier(records, TierPerfect) != len(records) {
		t.Errorf("agreeing sources produced %d non-perfect records",
			len(records)-countTier(records, TierPerfect))
	}
}

func TestTierThresholds(t *testing.T) {
	tests := []struct {
		name      string
		delta     int
		threshold int
		want      Tier
	}{
		{"zero is perfect", 0, 1, TierPerfect},
		{"zero is perfect at any threshold", 0, 5, TierPerfect},
		{"at threshold is minor", 1, 1, TierMinor},
		{"within threshold is minor", 2, 3, TierMinor},
		{"over threshold is major", 2, 1, TierMajor},
		{"far over is major", 9, 1, TierMajor},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewClassifier(tt.threshold, NewScenarioSet(nil))
			if got := c.classifyDelta(tt.delta); got != tt.want {
				t.Errorf("classifyDelta(%d) = %s, want %s", tt.delta, got, tt.want)
			}
		})
	}
}

func TestShootoutExcludedFromAggregates(t *testing.T) {
	auth := eventSet(sources.EventStreamID, goalKinds(),
		goal("BUF", 53, 1, "12:34", 0),
	)
	secondary := eventSet(sources.GameSummaryID, goalKinds(),
		goal("BUF", 53, 1, "12:34", 0),
	)
	base := classify(t, auth, secondary)

	// Inject a synthetic shootout goal into the secondary source.
	shootout := goal("BUF", 53, 5, "00:00", 9)
	shootout.PeriodType = gamedata.PeriodTypeShootout
	withShootout := eventSet(sources.GameSummaryID, goalKinds(),
		goal("BUF", 53, 1, "12:34", 0),
		shootout,
	)
	injected := classify(t, auth, withShootout)

	if len(base) != len(injected) {
		t.Fatalf("record count changed: %d -> %d", len(base), len(injected))
	}
	for i := range base {
		if base[i] != injected[i] {
			t.Errorf("record %d changed after shootout injection: %+v -> %+v",
				i, base[i], injected[i])
		}
	}
}

func TestOnIceMarkersNeverSumAsGoals(t *testing.T) {
	var authEvents []gamedata.GameEvent
	for i := range 5 {
		authEvents = append(authEvents, goal("BUF", 53, 1, gamedata.GameClock{Minutes: i, Seconds: 0}.String(), i))
	}
	auth := eventSet(sources.EventStreamID, goalKinds(), authEvents...)

	var markers []gamedata.GameEvent
	for i := range 57 {
		markers = append(markers, onIceMarker("BUF", 10+i%20, 1+i%3, "10:00", i))
	}
	chart := eventSet(sources.ShiftChartID,
		[]gamedata.EventKind{gamedata.EventKindOnIceDuringGoal}, markers...)

	players, teams := aggregate(auth)
	if got := teams["BUF"].goals; got != 5 {
		t.Errorf("authoritative BUF goals = %d, want 5", got)
	}
	if got := players["BUF-53"].goals; got != 5 {
		t.Errorf("scorer goals = %d, want 5", got)
	}

	chartPlayers, chartTeams := aggregate(chart)
	for id, stats := range chartPlayers {
		if stats.goals != 0 {
			t.Errorf("marker source credits %s with %d goals, want 0", id, stats.goals)
		}
	}
	for code, stats := range chartTeams {
		if stats.goals != 0 {
			t.Errorf("marker source credits %s with %d team goals, want 0", code, stats.goals)
		}
	}
}

func TestMissingEventIsMajor(t *testing.T) {
	auth := eventSet(sources.EventStreamID, goalKinds(),
		goal("BUF", 53, 1, "12:34", 0),
		goal("BUF", 26, 2, "08:20", 1),
	)
	secondary := eventSet(sources.GameSummaryID, goalKinds(),
		goal("BUF", 53, 1, "12:34", 0),
	)

	records := classify(t, auth, secondary)
	missing := 0
	for _, rec := range records {
		if rec.Cause == CauseMissingEvent {
			missing++
			if rec.Tier != TierMajor {
				t.Errorf("missing event tier = %s, want %s", rec.Tier, TierMajor)
			}
			if rec.Subject != "BUF-26" {
				t.Errorf("missing event subject = %s, want BUF-26", rec.Subject)
			}
		}
	}
	if missing != 1 {
		t.Errorf("missing-event records = %d, want 1", missing)
	}
}

func TestSimultaneousPenaltiesSuppressStrengthDiscrepancy(t *testing.T) {
	// Coincident opposing penalties, then a goal at the same clock whose
	// strength the sources disagree on. The scenario explains the
	// disagreement; it must not become a discrepancy of any tier.
	coincident := "04:00"
	scoredAt := goal("BUF", 53, 2, coincident, 2)
	scoredAt.Strength = gamedata.StrengthEven
	auth := eventSet(sources.EventStreamID, goalKinds(),
		penalty("BUF", 26, 2, coincident, "roughing", 2, 0),
		penalty("NJD", 11, 2, coincident, "roughing", 2, 1),
		scoredAt,
	)

	disagreeing := goal("BUF", 53, 2, coincident, 2)
	disagreeing.Strength = gamedata.StrengthPowerPlay
	secondary := eventSet(sources.GameSummaryID, goalKinds(),
		penalty("BUF", 26, 2, coincident, "roughing", 2, 0),
		penalty("NJD", 11, 2, coincident, "roughing", 2, 1),
		disagreeing,
	)

	records := classify(t, auth, secondary)
	for _, rec := range records {
		if rec.Metric == gamedata.MetricStrength {
			t.Errorf("strength discrepancy %+v despite simultaneous-penalty scenario", rec)
		}
	}
}

func TestUnexplainedStrengthMismatchIsRecorded(t *testing.T) {
	even := goal("BUF", 53, 1, "12:34", 0)
	even.Strength = gamedata.StrengthEven
	auth := eventSet(sources.EventStreamID, goalKinds(), even)

	pp := goal("BUF", 53, 1, "12:34", 0)
	pp.Strength = gamedata.StrengthPowerPlay
	secondary := eventSet(sources.GameSummaryID, goalKinds(), pp)

	records := classify(t, auth, secondary)
	rec, ok := findRecord(records, "BUF-53", gamedata.MetricStrength)
	if !ok {
		t.Fatal("expected a strength record")
	}
	if rec.Cause != CauseStrengthDiffer {
		t.Errorf("cause = %q, want %q", rec.Cause, CauseStrengthDiffer)
	}
	if rec.Tier == TierPerfect {
		t.Error("strength mismatch classified Perfect")
	}
}

func TestServedPenaltyAttributionIgnoresServer(t *testing.T) {
	// The same bench minor with two different servers: team penalty
	// minutes are identical either way.
	bench := penalty("BUF", 0, 3, "10:00", "too many men", 2, 0)
	bench.ServedBy = player("BUF", 9)
	setA := eventSet(sources.EventStreamID, goalKinds(), bench)

	benchOther := penalty("BUF", 0, 3, "10:00", "too many men", 2, 0)
	benchOther.ServedBy = player("BUF", 72)
	setB := eventSet(sources.EventStreamID, goalKinds(), benchOther)

	_, teamsA := aggregate(setA)
	_, teamsB := aggregate(setB)
	if teamsA["BUF"].pim != teamsB["BUF"].pim {
		t.Errorf("team pim depends on server: %d vs %d", teamsA["BUF"].pim, teamsB["BUF"].pim)
	}
	if teamsA["BUF"].pim != 2 {
		t.Errorf("team pim = %d, want 2", teamsA["BUF"].pim)
	}

	// The serving skater is never charged the minutes.
	playersA, _ := aggregate(setA)
	if stats, ok := playersA["BUF-9"]; ok && stats.pim != 0 {
		t.Errorf("server charged %d pim, want 0", stats.pim)
	}
}

func TestClassifyTotals(t *testing.T) {
	auth := eventSet(sources.EventStreamID, goalKinds(),
		goal("BUF", 53, 1, "12:34", 0),
		goal("BUF", 26, 2, "08:20", 1),
		goal("NJD", 86, 3, "01:05", 2),
		penalty("NJD", 13, 1, "18:00", "tripping", 2, 3),
	)
	totals := &gamedata.SourceEventSet{
		GameID: auth.GameID,
		Source: sources.BoxscoreID.Tag(),
		Totals: &gamedata.Totals{
			Teams: []gamedata.TeamTotals{
				{Team: "BUF", Goals: 2, Score: 2, PenaltyMinutes: 0},
				{Team: "NJD", Goals: 1, Score: 1, PenaltyMinutes: 4}, // pim off by 2
			},
			Players: []gamedata.PlayerTotals{
				{Player: identity("BUF", 53), Goals: 1, Points: 1},
				{Player: identity("BUF", 26), Goals: 1, Points: 1},
				{Player: identity("NJD", 86), Goals: 1, Points: 1},
				{Player: identity("NJD", 13), PenaltyMinutes: 2},
			},
		},
	}

	classifier := NewClassifier(1, NewScenarioSet(nil))
	records := classifier.ClassifyTotals(auth, totals, sources.BoxscoreID)

	// Property: authoritative team goal sums equal the totals source.
	for _, team := range []string{"BUF", "NJD"} {
		rec, ok := findRecord(records, team, gamedata.MetricGoals)
		if !ok {
			t.Fatalf("no team goals record for %s", team)
		}
		if rec.Tier != TierPerfect {
			t.Errorf("%s goals tier = %s, want perfect (auth=%d sec=%d)",
				team, rec.Tier, rec.AuthoritativeValue, rec.SecondaryValue)
		}
	}

	rec, ok := findRecord(records, "NJD", gamedata.MetricPenaltyMinutes)
	if !ok {
		t.Fatal("no NJD pim record")
	}
	if rec.Delta != 2 || rec.Tier != TierMajor {
		t.Errorf("NJD pim delta=%d tier=%s, want 2/major", rec.Delta, rec.Tier)
	}
}

func TestClassifyTotalsUnresolvedTeamForcesMajor(t *testing.T) {
	auth := eventSet(sources.EventStreamID, goalKinds(),
		goal("BUF", 53, 1, "12:34", 0),
		goal("NJD", 86, 2, "05:10", 1),
	)
	// The totals source could not attribute one BUF line, so BUF-53's
	// goal is missing from its player totals.
	totals := &gamedata.SourceEventSet{
		GameID: auth.GameID,
		Source: sources.BoxscoreID.Tag(),
		Totals: &gamedata.Totals{
			Teams: []gamedata.TeamTotals{
				{Team: "BUF", Goals: 1, Score: 1},
				{Team: "NJD", Goals: 1, Score: 1},
			},
			Players: []gamedata.PlayerTotals{
				{Player: identity("NJD", 86), Goals: 1, Points: 1},
			},
		},
		Unresolved: []gamedata.UnresolvedRef{
			{Team: "BUF", Jersey: 99, Detail: "no roster entry for #99"},
		},
	}

	classifier := NewClassifier(1, NewScenarioSet(nil))
	records := classifier.ClassifyTotals(auth, totals, sources.BoxscoreID)

	for _, metric := range []gamedata.Metric{gamedata.MetricGoals, gamedata.MetricPoints} {
		rec, ok := findRecord(records, "BUF-53", metric)
		if !ok {
			t.Fatalf("no BUF-53 %s record", metric)
		}
		if rec.Delta != 1 || rec.Tier != TierMajor {
			t.Errorf("BUF-53 %s delta=%d tier=%s, want 1/major on an unresolved team", metric, rec.Delta, rec.Tier)
		}
	}

	// The untouched team keeps the ordinary tiering.
	rec, ok := findRecord(records, "NJD-86", gamedata.MetricGoals)
	if !ok {
		t.Fatal("no NJD-86 goals record")
	}
	if rec.Tier != TierPerfect {
		t.Errorf("NJD-86 goals tier = %s, want perfect", rec.Tier)
	}
}
