// Package review renders a season of reconciliation reports as a
// markdown review document: season totals, per-source accuracy, ranked
// discrepancy causes, and a per-game section with scenarios and
// disagreements. The document is advisory output for humans; nothing in
// the engine consumes it.
package review

import (
	"fmt"
	"os"
	"path/filepath"

	md "github.com/nao1215/markdown"

	"github.com/rinkstats/crosscheck/pkg/constants"
	"github.com/rinkstats/crosscheck/pkg/errors"
	"github.com/rinkstats/crosscheck/pkg/reconcile"
)

// Write renders the season review beneath dir as season-review.md and
// returns the written path.
func Write(summary *reconcile.SeasonSummary, reports []*reconcile.ReconciliationReport, dir string) (string, error) {
	if summary == nil {
		return "", errors.NewValidationError("summary", nil, "summary cannot be nil")
	}
	if err := os.MkdirAll(dir, constants.DirPermissions); err != nil {
		return "", errors.WrapIO("create", dir, err)
	}

	path := filepath.Join(dir, "season-review.md")
	f, err := os.Create(path)
	if err != nil {
		return "", errors.WrapIO("create", path, err)
	}
	defer f.Close()

	doc := md.NewMarkdown(f)
	doc.H1("Season Reconciliation Review").LF()
	doc.PlainTextf("Run %s over %d games.", summary.RunID, summary.Games).LF()

	doc.H2("Season Totals").LF()
	doc.Table(md.TableSet{
		Header: []string{"Pairs", "Perfect", "Minor", "Major", "Perfect Rate"},
		Rows: [][]string{{
			fmt.Sprintf("%d", summary.TotalPairs),
			fmt.Sprintf("%d", summary.Perfect),
			fmt.Sprintf("%d", summary.Minor),
			fmt.Sprintf("%d", summary.Major),
			fmt.Sprintf("%.1f%%", summary.PerfectRate*100),
		}},
	}).LF()

	if len(summary.Sources) > 0 {
		doc.H2("Per-Source Accuracy").LF()
		rows := make([][]string, 0, len(summary.Sources))
		for _, acc := range summary.Sources {
			rows = append(rows, []string{
				string(acc.Source),
				fmt.Sprintf("%d", acc.Games),
				fmt.Sprintf("%d", acc.Pairs),
				fmt.Sprintf("%d", acc.Major),
				fmt.Sprintf("%.1f%%", acc.Accuracy*100),
			})
		}
		doc.Table(md.TableSet{
			Header: []string{"Source", "Games", "Pairs", "Major", "Accuracy"},
			Rows:   rows,
		}).LF()
	}

	if len(summary.Causes) > 0 {
		doc.H2("Discrepancy Causes, Ranked").LF()
		doc.PlainText("Fix adapters for the causes at the top first.").LF()
		items := make([]string, 0, len(summary.Causes))
		for _, c := range summary.Causes {
			items = append(items, fmt.Sprintf("%s (%d)", c.Cause, c.Count))
		}
		doc.OrderedList(items...).LF()
	}

	for _, report := range reports {
		if report == nil {
			continue
		}
		writeGame(doc, report)
	}

	if err := doc.Build(); err != nil {
		return "", errors.WrapIO("write", path, err)
	}
	return path, nil
}

// writeGame appends one game's section: summary line, scenarios, and
// every non-perfect record.
func writeGame(doc *md.Markdown, report *reconcile.ReconciliationReport) {
	doc.H2(fmt.Sprintf("Game %s", report.GameID)).LF()
	doc.PlainTextf("Authoritative source %s. %d pairs, perfect rate %.1f%%.",
		report.Authoritative, report.Summary.TotalPairs, report.Summary.PerfectRate*100).LF()

	if len(report.Scenarios) > 0 {
		items := make([]string, 0, len(report.Scenarios))
		for _, s := range report.Scenarios {
			items = append(items, s.ResolutionNote)
		}
		doc.H3("Scenarios").LF()
		doc.BulletList(items...).LF()
	}

	var rows [][]string
	for _, rec := range report.Records() {
		if rec.Tier == reconcile.TierPerfect {
			continue
		}
		rows = append(rows, []string{
			string(rec.Team),
			report.PlayerName(rec.Subject),
			string(rec.Metric),
			string(rec.Source),
			fmt.Sprintf("%d", rec.Delta),
			string(rec.Tier),
			rec.Cause,
		})
	}
	if len(rows) > 0 {
		doc.H3("Disagreements").LF()
		doc.Table(md.TableSet{
			Header: []string{"Team", "Subject", "Metric", "Source", "Delta", "Tier", "Cause"},
			Rows:   rows,
		}).LF()
	}

	if len(report.Anomalies) > 0 {
		items := make([]string, 0, len(report.Anomalies))
		for _, a := range report.Anomalies {
			items = append(items, fmt.Sprintf("%s: %s", a.Source, a.Description))
		}
		doc.H3("Structural Anomalies").LF()
		doc.BulletList(items...).LF()
	}
}
