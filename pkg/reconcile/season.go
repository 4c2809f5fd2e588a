package reconcile

import (
	"sort"

	"github.com/agentstation/utc"
	"github.com/google/uuid"

	"github.com/rinkstats/crosscheck/pkg/sources"
)

// SourceAccuracy is one secondary source's season aggregate.
type SourceAccuracy struct {
	Source   sources.ID `json:"source" yaml:"source"`
	Games    int        `json:"games" yaml:"games"`
	Pairs    int        `json:"pairs" yaml:"pairs"`
	Perfect  int        `json:"perfect" yaml:"perfect"`
	Minor    int        `json:"minor" yaml:"minor"`
	Major    int        `json:"major" yaml:"major"`
	Accuracy float64    `json:"accuracy" yaml:"accuracy"`
}

// CauseCount is one discrepancy cause and how often it occurred across
// the season. The ranking prioritizes adapter fixes.
type CauseCount struct {
	Cause string `json:"cause" yaml:"cause"`
	Count int    `json:"count" yaml:"count"`
}

// SeasonSummary is the pure fold of N independent per-game reports.
// PerfectRate sums counts across games before dividing; averaging
// per-game percentages would let a 3-player game weigh as much as a
// 40-player game.
type SeasonSummary struct {
	RunID       string           `json:"run_id" yaml:"run_id"`
	GeneratedAt utc.Time         `json:"generated_at" yaml:"generated_at"`
	Games       int              `json:"games" yaml:"games"`
	TotalPairs  int              `json:"total_pairs" yaml:"total_pairs"`
	Perfect     int              `json:"perfect" yaml:"perfect"`
	Minor       int              `json:"minor" yaml:"minor"`
	Major       int              `json:"major" yaml:"major"`
	PerfectRate float64          `json:"perfect_rate" yaml:"perfect_rate"`
	Sources     []SourceAccuracy `json:"sources,omitempty" yaml:"sources,omitempty"`
	Causes      []CauseCount     `json:"causes,omitempty" yaml:"causes,omitempty"`
	Scenarios   int              `json:"scenarios" yaml:"scenarios"`
	Anomalies   int              `json:"anomalies" yaml:"anomalies"`
}

// SummarizeSeason folds finished per-game reports into one season
// summary. The input reports are never mutated. Output ordering is
// stable: sources by ID, causes by descending count then cause text.
func SummarizeSeason(reports []*ReconciliationReport) *SeasonSummary {
	summary := &SeasonSummary{
		RunID:       uuid.NewString(),
		GeneratedAt: utc.Now(),
		Games:       len(reports),
	}

	bySource := make(map[sources.ID]*SourceAccuracy)
	causes := make(map[string]int)

	for _, report := range reports {
		if report == nil {
			continue
		}
		summary.TotalPairs += report.Summary.TotalPairs
		summary.Perfect += report.Summary.PerfectCount
		summary.Minor += report.Summary.MinorCount
		summary.Major += report.Summary.MajorCount
		summary.Scenarios += len(report.Scenarios)
		summary.Anomalies += len(report.Anomalies)

		seen := make(map[sources.ID]struct{})
		for _, rec := range report.Records() {
			acc, ok := bySource[rec.Source]
			if !ok {
				acc = &SourceAccuracy{Source: rec.Source}
				bySource[rec.Source] = acc
			}
			if _, counted := seen[rec.Source]; !counted {
				acc.Games++
				seen[rec.Source] = struct{}{}
			}
			acc.Pairs++
			switch rec.Tier {
			case TierPerfect:
				acc.Perfect++
			case TierMinor:
				acc.Minor++
			case TierMajor:
				acc.Major++
			}
			if rec.Cause != "" {
				causes[rec.Cause]++
			}
		}
	}

	if summary.TotalPairs > 0 {
		summary.PerfectRate = float64(summary.Perfect) / float64(summary.TotalPairs)
	}

	for _, acc := range bySource {
		if acc.Pairs > 0 {
			acc.Accuracy = float64(acc.Perfect) / float64(acc.Pairs)
		}
		summary.Sources = append(summary.Sources, *acc)
	}
	sort.Slice(summary.Sources, func(i, j int) bool {
		return summary.Sources[i].Source < summary.Sources[j].Source
	})

	for cause, count := range causes {
		summary.Causes = append(summary.Causes, CauseCount{Cause: cause, Count: count})
	}
	sort.Slice(summary.Causes, func(i, j int) bool {
		if summary.Causes[i].Count != summary.Causes[j].Count {
			return summary.Causes[i].Count > summary.Causes[j].Count
		}
		return summary.Causes[i].Cause < summary.Causes[j].Cause
	})

	return summary
}
