package reconcile

import (
	"fmt"
	"strings"
)

// Render formats the report as the plain-text document the CLI prints.
// The output is deterministic for identical input: every section iterates
// the report's already-stable slices.
func (r *ReconciliationReport) Render() string {
	var b strings.Builder

	fmt.Fprintf(&b, "Reconciliation Report — game %s\n", r.GameID)
	fmt.Fprintf(&b, "Authoritative source: %s\n", r.Authoritative)
	b.WriteString(strings.Repeat("=", 60) + "\n")

	if len(r.Unavailable) > 0 {
		b.WriteString("\nUnavailable sources:\n")
		for _, u := range r.Unavailable {
			fmt.Fprintf(&b, "  - %s: %s\n", u.Source, u.Reason)
		}
	}

	if len(r.TeamRecords) > 0 {
		b.WriteString("\nTeam comparison:\n")
		for _, rec := range r.TeamRecords {
			fmt.Fprintf(&b, "  %-4s %-8s vs %-12s auth=%d sec=%d delta=%d [%s]%s\n",
				rec.Team, rec.Metric, rec.Source,
				rec.AuthoritativeValue, rec.SecondaryValue, rec.Delta,
				rec.Tier, causeSuffix(rec))
		}
	}

	for _, tier := range []Tier{TierMajor, TierMinor, TierPerfect} {
		records := playerRecordsByTier(r, tier)
		if len(records) == 0 {
			continue
		}
		fmt.Fprintf(&b, "\nPlayer records — %s (%d):\n", tier, len(records))
		for _, rec := range records {
			fmt.Fprintf(&b, "  %-4s %-24s %-8s vs %-12s auth=%d sec=%d delta=%d%s\n",
				rec.Team, r.PlayerName(rec.Subject), rec.Metric, rec.Source,
				rec.AuthoritativeValue, rec.SecondaryValue, rec.Delta,
				causeSuffix(rec))
		}
	}

	if len(r.Scenarios) > 0 {
		b.WriteString("\nDetected scenarios:\n")
		for _, s := range r.Scenarios {
			fmt.Fprintf(&b, "  - [%s] %s\n", s.Kind, s.ResolutionNote)
		}
	}

	if len(r.Anomalies) > 0 {
		b.WriteString("\nStructural anomalies (parsing defects, not stats disagreements):\n")
		for _, a := range r.Anomalies {
			fmt.Fprintf(&b, "  - %s: %s\n", a.Source, a.Description)
		}
	}

	if len(r.Notes) > 0 {
		b.WriteString("\nSource notes:\n")
		for _, n := range r.Notes {
			fmt.Fprintf(&b, "  - %s: %s\n", n.Source, n.Note)
		}
	}

	b.WriteString("\nSummary:\n")
	fmt.Fprintf(&b, "  pairs compared: %d\n", r.Summary.TotalPairs)
	fmt.Fprintf(&b, "  perfect: %d  minor: %d  major: %d\n",
		r.Summary.PerfectCount, r.Summary.MinorCount, r.Summary.MajorCount)
	fmt.Fprintf(&b, "  perfect rate: %.1f%%\n", r.Summary.PerfectRate*100)

	return b.String()
}

// Render formats the season summary as plain text.
func (s *SeasonSummary) Render() string {
	var b strings.Builder

	fmt.Fprintf(&b, "Season Summary — run %s\n", s.RunID)
	b.WriteString(strings.Repeat("=", 60) + "\n")
	fmt.Fprintf(&b, "  games: %d\n", s.Games)
	fmt.Fprintf(&b, "  pairs compared: %d\n", s.TotalPairs)
	fmt.Fprintf(&b, "  perfect: %d  minor: %d  major: %d\n", s.Perfect, s.Minor, s.Major)
	fmt.Fprintf(&b, "  perfect rate: %.1f%%\n", s.PerfectRate*100)
	fmt.Fprintf(&b, "  scenarios: %d  anomalies: %d\n", s.Scenarios, s.Anomalies)

	if len(s.Sources) > 0 {
		b.WriteString("\nPer-source accuracy:\n")
		for _, acc := range s.Sources {
			fmt.Fprintf(&b, "  %-12s games=%d pairs=%d perfect=%d minor=%d major=%d accuracy=%.1f%%\n",
				acc.Source, acc.Games, acc.Pairs, acc.Perfect, acc.Minor, acc.Major, acc.Accuracy*100)
		}
	}

	if len(s.Causes) > 0 {
		b.WriteString("\nMost frequent discrepancy causes:\n")
		for i, c := range s.Causes {
			fmt.Fprintf(&b, "  %d. %s (%d)\n", i+1, c.Cause, c.Count)
		}
	}

	return b.String()
}

func playerRecordsByTier(r *ReconciliationReport, tier Tier) []DiscrepancyRecord {
	var records []DiscrepancyRecord
	for _, rec := range r.PlayerRecords {
		if rec.Tier == tier {
			records = append(records, rec)
		}
	}
	return records
}

func causeSuffix(rec DiscrepancyRecord) string {
	if rec.Cause == "" {
		return ""
	}
	return " (" + rec.Cause + ")"
}
