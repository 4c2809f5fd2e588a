package reconcile

import (
	"sort"

	"github.com/agentstation/utc"

	"github.com/rinkstats/crosscheck/pkg/roster"
	"github.com/rinkstats/crosscheck/pkg/sources"
)

// SourceNote is a visible note attached to one source in the report. No
// error path is silently dropped; whatever could not fail the game loudly
// surfaces here.
type SourceNote struct {
	Source sources.ID `json:"source" yaml:"source"`
	Note   string     `json:"note" yaml:"note"`
}

// UnavailableSource records a source whose record could not be
// normalized. Reconciliation continued without it.
type UnavailableSource struct {
	Source sources.ID `json:"source" yaml:"source"`
	Reason string     `json:"reason" yaml:"reason"`
}

// SourceMatches holds the matched pairs and anomalies for one secondary
// source.
type SourceMatches struct {
	Source    sources.ID    `json:"source" yaml:"source"`
	Pairs     []MatchedPair `json:"pairs" yaml:"pairs"`
	Anomalies []Anomaly     `json:"anomalies,omitempty" yaml:"anomalies,omitempty"`
}

// SummaryMetrics are the report's headline counts. PerfectRate is
// #Perfect records over total records.
type SummaryMetrics struct {
	TotalPairs   int     `json:"total_pairs" yaml:"total_pairs"`
	PerfectCount int     `json:"perfect_count" yaml:"perfect_count"`
	MinorCount   int     `json:"minor_count" yaml:"minor_count"`
	MajorCount   int     `json:"major_count" yaml:"major_count"`
	PerfectRate  float64 `json:"perfect_rate" yaml:"perfect_rate"`
}

// ReconciliationReport is the complete outcome of reconciling one game.
// Built once, immutable afterward; season rollups aggregate reports but
// never mutate them. Ordering is deterministic: players by team then
// canonical ID, teams by code, so repeated runs on unchanged input render
// identically.
type ReconciliationReport struct {
	GameID        string              `json:"game_id" yaml:"game_id"`
	Authoritative sources.ID          `json:"authoritative" yaml:"authoritative"`
	GeneratedAt   utc.Time            `json:"generated_at" yaml:"generated_at"`
	PlayerRecords []DiscrepancyRecord `json:"player_records" yaml:"player_records"`
	TeamRecords   []DiscrepancyRecord `json:"team_records" yaml:"team_records"`
	Scenarios     []ComplexScenario   `json:"scenarios,omitempty" yaml:"scenarios,omitempty"`
	Anomalies     []Anomaly           `json:"anomalies,omitempty" yaml:"anomalies,omitempty"`
	Notes         []SourceNote        `json:"notes,omitempty" yaml:"notes,omitempty"`
	Unavailable   []UnavailableSource `json:"unavailable,omitempty" yaml:"unavailable,omitempty"`
	Matches       []SourceMatches     `json:"matches,omitempty" yaml:"matches,omitempty"`
	PlayerNames   map[string]string   `json:"player_names,omitempty" yaml:"player_names,omitempty"`
	Summary       SummaryMetrics      `json:"summary" yaml:"summary"`
}

// Records returns player and team records together, players first.
func (r *ReconciliationReport) Records() []DiscrepancyRecord {
	records := make([]DiscrepancyRecord, 0, len(r.PlayerRecords)+len(r.TeamRecords))
	records = append(records, r.PlayerRecords...)
	records = append(records, r.TeamRecords...)
	return records
}

// RecordsByTier returns the report's records carrying the given tier, in
// report order.
func (r *ReconciliationReport) RecordsByTier(tier Tier) []DiscrepancyRecord {
	var records []DiscrepancyRecord
	for _, rec := range r.Records() {
		if rec.Tier == tier {
			records = append(records, rec)
		}
	}
	return records
}

// SecondarySources returns the secondary sources the report compared or
// noted, sorted.
func (r *ReconciliationReport) SecondarySources() []sources.ID {
	seen := make(map[sources.ID]struct{})
	for _, rec := range r.Records() {
		seen[rec.Source] = struct{}{}
	}
	ids := make([]sources.ID, 0, len(seen))
	for id := range seen {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// PlayerName returns the display name the roster carried for a canonical
// ID, or the ID itself when none was recorded.
func (r *ReconciliationReport) PlayerName(canonicalID string) string {
	if name, ok := r.PlayerNames[canonicalID]; ok && name != "" {
		return name
	}
	return canonicalID
}

// ReportBuilder assembles one game's report. The zero ordering of
// incoming records does not matter; Build sorts everything and computes
// the summary.
type ReportBuilder struct {
	report ReconciliationReport
}

// NewReportBuilder creates a builder for one game.
func NewReportBuilder(gameID string) *ReportBuilder {
	return &ReportBuilder{
		report: ReconciliationReport{
			GameID:      gameID,
			GeneratedAt: utc.Now(),
			PlayerNames: make(map[string]string),
		},
	}
}

// WithAuthoritative records which source was ground truth.
func (b *ReportBuilder) WithAuthoritative(id sources.ID) *ReportBuilder {
	b.report.Authoritative = id
	return b
}

// WithRoster captures display names for rendering. Resolution itself
// never uses names.
func (b *ReportBuilder) WithRoster(table *roster.Table) *ReportBuilder {
	for _, p := range table.Players() {
		if name := table.Name(p.CanonicalID); name != "" {
			b.report.PlayerNames[p.CanonicalID] = name
		}
	}
	return b
}

// WithScenarios attaches the detected scenarios.
func (b *ReportBuilder) WithScenarios(scenarios []ComplexScenario) *ReportBuilder {
	b.report.Scenarios = append(b.report.Scenarios, scenarios...)
	return b
}

// WithRecords adds classified records, splitting them by subject kind.
func (b *ReportBuilder) WithRecords(records []DiscrepancyRecord) *ReportBuilder {
	for _, rec := range records {
		if rec.SubjectKind == SubjectTeam {
			b.report.TeamRecords = append(b.report.TeamRecords, rec)
		} else {
			b.report.PlayerRecords = append(b.report.PlayerRecords, rec)
		}
	}
	return b
}

// WithMatches adds one secondary source's match outcome, including its
// structural anomalies.
func (b *ReportBuilder) WithMatches(matches SourceMatches) *ReportBuilder {
	b.report.Matches = append(b.report.Matches, matches)
	b.report.Anomalies = append(b.report.Anomalies, matches.Anomalies...)
	return b
}

// WithNote attaches a visible note for one source.
func (b *ReportBuilder) WithNote(id sources.ID, note string) *ReportBuilder {
	b.report.Notes = append(b.report.Notes, SourceNote{Source: id, Note: note})
	return b
}

// WithUnavailable marks a source whose record could not be normalized.
func (b *ReportBuilder) WithUnavailable(id sources.ID, err error) *ReportBuilder {
	reason := "unavailable"
	if err != nil {
		reason = err.Error()
	}
	b.report.Unavailable = append(b.report.Unavailable, UnavailableSource{Source: id, Reason: reason})
	return b
}

// Build sorts the report into its stable order, computes the summary,
// and returns it. The builder must not be reused afterward.
func (b *ReportBuilder) Build() *ReconciliationReport {
	r := &b.report

	sort.SliceStable(r.PlayerRecords, func(i, j int) bool {
		return lessRecord(r.PlayerRecords[i], r.PlayerRecords[j])
	})
	sort.SliceStable(r.TeamRecords, func(i, j int) bool {
		return lessRecord(r.TeamRecords[i], r.TeamRecords[j])
	})
	sort.SliceStable(r.Notes, func(i, j int) bool {
		if r.Notes[i].Source != r.Notes[j].Source {
			return r.Notes[i].Source < r.Notes[j].Source
		}
		return r.Notes[i].Note < r.Notes[j].Note
	})
	sort.SliceStable(r.Unavailable, func(i, j int) bool {
		return r.Unavailable[i].Source < r.Unavailable[j].Source
	})
	sort.SliceStable(r.Matches, func(i, j int) bool {
		return r.Matches[i].Source < r.Matches[j].Source
	})

	for _, rec := range r.Records() {
		r.Summary.TotalPairs++
		switch rec.Tier {
		case TierPerfect:
			r.Summary.PerfectCount++
		case TierMinor:
			r.Summary.MinorCount++
		case TierMajor:
			r.Summary.MajorCount++
		}
	}
	if r.Summary.TotalPairs > 0 {
		r.Summary.PerfectRate = float64(r.Summary.PerfectCount) / float64(r.Summary.TotalPairs)
	}
	return r
}

// lessRecord orders records by team, subject, metric, then source: the
// stable report order.
func lessRecord(a, b DiscrepancyRecord) bool {
	if a.Team != b.Team {
		return a.Team < b.Team
	}
	if a.Subject != b.Subject {
		return a.Subject < b.Subject
	}
	if a.Metric != b.Metric {
		return a.Metric < b.Metric
	}
	if a.Source != b.Source {
		return a.Source < b.Source
	}
	return a.Cause < b.Cause
}
