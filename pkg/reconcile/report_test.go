package reconcile

import (
	"errors"
	"sort"
	"testing"

	"github.com/rinkstats/crosscheck/pkg/gamedata"
	"github.com/rinkstats/crosscheck/pkg/sources"
)

func record(subject string, kind SubjectKind, team gamedata.TeamCode, metric gamedata.Metric, source sources.ID, delta int, tier Tier, cause string) DiscrepancyRecord {
	return DiscrepancyRecord{
		Subject:     subject,
		SubjectKind: kind,
		Team:        team,
		Metric:      metric,
		Source:      source,
		Delta:       delta,
		Tier:        tier,
		Cause:       cause,
	}
}

func TestReportBuilderSortsAndSummarizes(t *testing.T) {
	// Fed out of order on purpose.
	records := []DiscrepancyRecord{
		record("NJD-86", SubjectPlayer, "NJD", gamedata.MetricGoals, sources.GameSummaryID, 0, TierPerfect, ""),
		record("BUF-53", SubjectPlayer, "BUF", gamedata.MetricPoints, sources.BoxscoreID, 1, TierMinor, CausePointsDiffer),
		record("BUF", SubjectTeam, "BUF", gamedata.MetricGoals, sources.BoxscoreID, 2, TierMajor, CauseGoalsDiffer),
		record("BUF-53", SubjectPlayer, "BUF", gamedata.MetricGoals, sources.GameSummaryID, 0, TierPerfect, ""),
		record("BUF-53", SubjectPlayer, "BUF", gamedata.MetricGoals, sources.BoxscoreID, 0, TierPerfect, ""),
	}

	report := NewReportBuilder("2023020204").
		WithAuthoritative(sources.EventStreamID).
		WithRecords(records).
		Build()

	if report.GameID != "2023020204" {
		t.Errorf("game ID = %s", report.GameID)
	}
	if report.Authoritative != sources.EventStreamID {
		t.Errorf("authoritative = %s", report.Authoritative)
	}

	if len(report.PlayerRecords) != 4 || len(report.TeamRecords) != 1 {
		t.Fatalf("split = %d players / %d teams, want 4/1",
			len(report.PlayerRecords), len(report.TeamRecords))
	}
	if !sort.SliceIsSorted(report.PlayerRecords, func(i, j int) bool {
		return lessRecord(report.PlayerRecords[i], report.PlayerRecords[j])
	}) {
		t.Error("player records not in stable report order")
	}
	// Same subject and metric from two sources: source breaks the tie.
	first := report.PlayerRecords[0]
	if first.Subject != "BUF-53" || first.Metric != gamedata.MetricGoals || first.Source != sources.BoxscoreID {
		t.Errorf("first player record = %s/%s/%s", first.Subject, first.Metric, first.Source)
	}

	want := SummaryMetrics{TotalPairs: 5, PerfectCount: 3, MinorCount: 1, MajorCount: 1, PerfectRate: 0.6}
	if report.Summary != want {
		t.Errorf("summary = %+v, want %+v", report.Summary, want)
	}
}

func TestReportBuilderDeterministicOrder(t *testing.T) {
	build := func() *ReconciliationReport {
		return NewReportBuilder("2023020204").
			WithAuthoritative(sources.EventStreamID).
			WithNote(sources.ShiftChartID, "shift count exceeds twice the goal count").
			WithNote(sources.BoxscoreID, "totals only").
			WithUnavailable(sources.GameSummaryID, errors.New("malformed record")).
			WithRecords([]DiscrepancyRecord{
				record("BUF-53", SubjectPlayer, "BUF", gamedata.MetricGoals, sources.BoxscoreID, 0, TierPerfect, ""),
				record("BUF-26", SubjectPlayer, "BUF", gamedata.MetricGoals, sources.BoxscoreID, 0, TierPerfect, ""),
			}).
			Build()
	}

	a, b := build(), build()
	if len(a.Notes) != 2 || a.Notes[0].Source != sources.BoxscoreID {
		t.Errorf("notes not sorted by source: %+v", a.Notes)
	}
	for i := range a.PlayerRecords {
		if a.PlayerRecords[i] != b.PlayerRecords[i] {
			t.Errorf("record order varies between builds at %d", i)
		}
	}
	if len(a.Unavailable) != 1 || a.Unavailable[0].Reason != "malformed record" {
		t.Errorf("unavailable = %+v", a.Unavailable)
	}
}

func TestRecordsByTier(t *testing.T) {
	report := NewReportBuilder("2023020204").
		WithRecords([]DiscrepancyRecord{
			record("BUF-53", SubjectPlayer, "BUF", gamedata.MetricGoals, sources.BoxscoreID, 0, TierPerfect, ""),
			record("BUF-53", SubjectPlayer, "BUF", gamedata.MetricPoints, sources.BoxscoreID, 2, TierMajor, CausePointsDiffer),
			record("NJD", SubjectTeam, "NJD", gamedata.MetricPenaltyMinutes, sources.GameSummaryID, 1, TierMinor, CausePIMDiffer),
		}).
		Build()

	if got := len(report.RecordsByTier(TierMajor)); got != 1 {
		t.Errorf("major records = %d, want 1", got)
	}
	if got := len(report.RecordsByTier(TierPerfect)); got != 1 {
		t.Errorf("perfect records = %d, want 1", got)
	}
	if got := report.SecondarySources(); len(got) != 2 {
		t.Errorf("secondary sources = %v, want 2", got)
	}
}

func TestPlayerNameFallsBackToID(t *testing.T) {
	report := NewReportBuilder("2023020204").Build()
	report.PlayerNames["BUF-53"] = "J. Skinner"

	if got := report.PlayerName("BUF-53"); got != "J. Skinner" {
		t.Errorf("PlayerName = %q", got)
	}
	if got := report.PlayerName("BUF-99"); got != "BUF-99" {
		t.Errorf("unknown player name = %q, want the ID back", got)
	}
}

func TestReportSummaryEmpty(t *testing.T) {
	report := NewReportBuilder("2023020204").Build()
	if report.Summary.TotalPairs != 0 || report.Summary.PerfectRate != 0 {
		t.Errorf("empty report summary = %+v", report.Summary)
	}
}
