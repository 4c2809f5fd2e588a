package gamedata

import "testing"

func testIdentity(team TeamCode, jersey int, id string) *PlayerIdentity {
	return &PlayerIdentity{CanonicalID: id, JerseyNumber: jersey, TeamCode: team}
}

func TestCountsForStats(t *testing.T) {
	tests := []struct {
		name       string
		periodType PeriodType
		want       bool
	}{
		{"regulation counts", PeriodTypeRegulation, true},
		{"overtime counts", PeriodTypeOvertime, true},
		{"shootout excluded", PeriodTypeShootout, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := GameEvent{Kind: EventKindGoal, PeriodType: tt.periodType}
			if got := e.CountsForStats(); got != tt.want {
				t.Errorf("CountsForStats() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIsTeamInfraction(t *testing.T) {
	bench := GameEvent{Kind: EventKindPenalty, PenaltyKind: "too-many-men-on-the-ice"}
	if !bench.IsTeamInfraction() {
		t.Error("penalty without primary player not reported as team infraction")
	}

	individual := GameEvent{
		Kind:          EventKindPenalty,
		PenaltyKind:   "tripping",
		PrimaryPlayer: testIdentity("BUF", 26, "p-26"),
	}
	if individual.IsTeamInfraction() {
		t.Error("individual penalty reported as team infraction")
	}

	goal := GameEvent{Kind: EventKindGoal}
	if goal.IsTeamInfraction() {
		t.Error("goal reported as team infraction")
	}
}

func TestSourceEventSetFilters(t *testing.T) {
	set := &SourceEventSet{
		GameID: "2023020204",
		Source: "eventstream",
		Events: []GameEvent{
			{Kind: EventKindGoal, Sequence: 0},
			{Kind: EventKindPenalty, Sequence: 1},
			{Kind: EventKindOnIceDuringGoal, Sequence: 2},
			{Kind: EventKindGoal, Sequence: 3},
			{Kind: EventKindOnIceDuringGoal, Sequence: 4},
		},
	}

	if got := len(set.Goals()); got != 2 {
		t.Errorf("Goals() returned %d events, want 2", got)
	}
	if got := len(set.Penalties()); got != 1 {
		t.Errorf("Penalties() returned %d events, want 1", got)
	}
	if got := len(set.OnIceMarkers()); got != 2 {
		t.Errorf("OnIceMarkers() returned %d events, want 2", got)
	}
	if got := set.Len(); got != 5 {
		t.Errorf("Len() = %d, want 5", got)
	}
}

func TestSortChronological(t *testing.T) {
	set := &SourceEventSet{
		Events: []GameEvent{
			{Kind: EventKindGoal, Period: 2, Clock: MustClock("05:00"), Sequence: 3},
			{Kind: EventKindGoal, Period: 1, Clock: MustClock("12:42"), Sequence: 2},
			{Kind: EventKindGoal, Period: 1, Clock: MustClock("12:42"), Sequence: 1},
			{Kind: EventKindGoal, Period: 1, Clock: MustClock("03:14"), Sequence: 0},
		},
	}

	set.SortChronological()

	wantSeq := []int{0, 1, 2, 3}
	for i, e := range set.Events {
		if e.Sequence != wantSeq[i] {
			t.Fatalf("event %d has sequence %d, want %d", i, e.Sequence, wantSeq[i])
		}
	}
}

func TestEnumValidity(t *testing.T) {
	for _, k := range EventKinds() {
		if !k.IsValid() {
			t.Errorf("EventKind %q reported invalid", k)
		}
	}
	if EventKind("shot").IsValid() {
		t.Error("undefined event kind reported valid")
	}

	for _, p := range PeriodTypes() {
		if !p.IsValid() {
			t.Errorf("PeriodType %q reported invalid", p)
		}
	}
	if PeriodType("intermission").IsValid() {
		t.Error("undefined period type reported valid")
	}

	for _, m := range Metrics() {
		if !m.IsValid() {
			t.Errorf("Metric %q reported invalid", m)
		}
	}
}

func TestPlayerIdentityString(t *testing.T) {
	p := PlayerIdentity{CanonicalID: "8478402", JerseyNumber: 97, TeamCode: "EDM"}
	if got := p.String(); got != "EDM #97" {
		t.Errorf("String() = %q, want %q", got, "EDM #97")
	}
}
