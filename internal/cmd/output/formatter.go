// Package output provides formatters for command output.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/mattn/go-isatty"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/rinkstats/crosscheck/pkg/reconcile"
)

// Format types for output.
type Format string

const (
	// FormatTable represents table output format.
	FormatTable Format = "table"
	// FormatJSON represents JSON output format.
	FormatJSON Format = "json"
	// FormatYAML represents YAML output format.
	FormatYAML Format = "yaml"
	// FormatWide represents wide table output format.
	FormatWide Format = "wide"
)

// Formatter interface for all output types.
type Formatter interface {
	Format(w io.Writer, data any) error
}

// NewFormatter creates appropriate formatter based on format.
func NewFormatter(format Format) Formatter {
	switch format {
	case FormatJSON:
		return &JSONFormatter{Indent: "  "}
	case FormatYAML:
		return &YAMLFormatter{}
	case FormatTable, FormatWide:
		return &TableFormatter{Wide: format == FormatWide}
	default:
		return &TableFormatter{}
	}
}

// DetectFormat auto-detects format based on terminal and environment.
func DetectFormat(explicitFormat string) Format {
	if explicitFormat != "" {
		return Format(strings.ToLower(explicitFormat))
	}
	if isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		return FormatTable
	}
	// Pipes and redirects get structured output.
	return FormatJSON
}

// ParseFormat converts string to Format with validation.
func ParseFormat(s string) (Format, error) {
	format := Format(strings.ToLower(s))
	switch format {
	case FormatTable, FormatJSON, FormatYAML, FormatWide, "":
		return format, nil
	default:
		return "", fmt.Errorf("invalid format %q: must be one of: table, json, yaml, wide", s)
	}
}

// JSONFormatter outputs JSON format.
type JSONFormatter struct {
	Indent string
}

// Format implements the Formatter interface for JSON output.
func (f *JSONFormatter) Format(w io.Writer, data any) error {
	encoder := json.NewEncoder(w)
	if f.Indent != "" {
		encoder.SetIndent("", f.Indent)
	}
	return encoder.Encode(data)
}

// YAMLFormatter outputs YAML format.
type YAMLFormatter struct{}

// Format outputs data in YAML format.
func (f *YAMLFormatter) Format(w io.Writer, data any) error {
	yamlData, err := yaml.MarshalWithOptions(data,
		yaml.Indent(2),
		yaml.IndentSequence(false),
	)
	if err != nil {
		return err
	}
	_, err = w.Write(yamlData)
	return err
}

// TableFormatter outputs table format. Wide mode keeps Perfect records
// in the player table; the default shows disagreements only.
type TableFormatter struct {
	Wide bool
}

// titleCaser capitalizes table headings.
var titleCaser = cases.Title(language.English)

// Format outputs data in table format. Reconciliation reports and season
// summaries render as purpose-built tables; other data falls back to
// JSON.
func (f *TableFormatter) Format(w io.Writer, data any) error {
	switch v := data.(type) {
	case *reconcile.ReconciliationReport:
		return f.formatReport(w, v)
	case *reconcile.SeasonSummary:
		return f.formatSeason(w, v)
	default:
		jsonFormatter := &JSONFormatter{Indent: "  "}
		return jsonFormatter.Format(w, data)
	}
}

func (f *TableFormatter) formatReport(w io.Writer, report *reconcile.ReconciliationReport) error {
	fmt.Fprintf(w, "Game %s (authoritative: %s)\n\n", report.GameID, report.Authoritative)

	teamRows := make([][]string, 0, len(report.TeamRecords))
	for _, rec := range report.TeamRecords {
		teamRows = append(teamRows, []string{
			string(rec.Team), string(rec.Metric), string(rec.Source),
			fmt.Sprintf("%d", rec.AuthoritativeValue),
			fmt.Sprintf("%d", rec.SecondaryValue),
			fmt.Sprintf("%d", rec.Delta),
			string(rec.Tier),
		})
	}
	if err := f.table(w, []string{"team", "metric", "source", "auth", "secondary", "delta", "tier"}, teamRows); err != nil {
		return err
	}

	playerRows := make([][]string, 0, len(report.PlayerRecords))
	for _, rec := range report.PlayerRecords {
		if !f.Wide && rec.Tier == reconcile.TierPerfect {
			continue
		}
		playerRows = append(playerRows, []string{
			string(rec.Team), report.PlayerName(rec.Subject), string(rec.Metric), string(rec.Source),
			fmt.Sprintf("%d", rec.AuthoritativeValue),
			fmt.Sprintf("%d", rec.SecondaryValue),
			fmt.Sprintf("%d", rec.Delta),
			string(rec.Tier),
		})
	}
	if len(playerRows) > 0 {
		fmt.Fprintln(w)
		if err := f.table(w, []string{"team", "player", "metric", "source", "auth", "secondary", "delta", "tier"}, playerRows); err != nil {
			return err
		}
	}

	for _, s := range report.Scenarios {
		fmt.Fprintf(w, "\nscenario [%s]: %s\n", s.Kind, s.ResolutionNote)
	}
	for _, a := range report.Anomalies {
		fmt.Fprintf(w, "\nanomaly [%s]: %s\n", a.Source, a.Description)
	}
	for _, n := range report.Notes {
		fmt.Fprintf(w, "\nnote [%s]: %s\n", n.Source, n.Note)
	}
	for _, u := range report.Unavailable {
		fmt.Fprintf(w, "\nunavailable [%s]: %s\n", u.Source, u.Reason)
	}

	fmt.Fprintf(w, "\npairs=%d perfect=%d minor=%d major=%d perfect-rate=%.1f%%\n",
		report.Summary.TotalPairs, report.Summary.PerfectCount,
		report.Summary.MinorCount, report.Summary.MajorCount,
		report.Summary.PerfectRate*100)
	return nil
}

func (f *TableFormatter) formatSeason(w io.Writer, summary *reconcile.SeasonSummary) error {
	fmt.Fprintf(w, "Season run %s: %d games\n\n", summary.RunID, summary.Games)

	rows := make([][]string, 0, len(summary.Sources))
	for _, acc := range summary.Sources {
		rows = append(rows, []string{
			string(acc.Source),
			fmt.Sprintf("%d", acc.Games),
			fmt.Sprintf("%d", acc.Pairs),
			fmt.Sprintf("%d", acc.Perfect),
			fmt.Sprintf("%d", acc.Minor),
			fmt.Sprintf("%d", acc.Major),
			fmt.Sprintf("%.1f%%", acc.Accuracy*100),
		})
	}
	if err := f.table(w, []string{"source", "games", "pairs", "perfect", "minor", "major", "accuracy"}, rows); err != nil {
		return err
	}

	if len(summary.Causes) > 0 {
		fmt.Fprintln(w, "\nMost frequent discrepancy causes:")
		for i, c := range summary.Causes {
			fmt.Fprintf(w, "  %d. %s (%d)\n", i+1, c.Cause, c.Count)
		}
	}

	fmt.Fprintf(w, "\npairs=%d perfect=%d minor=%d major=%d perfect-rate=%.1f%%\n",
		summary.TotalPairs, summary.Perfect, summary.Minor, summary.Major,
		summary.PerfectRate*100)
	return nil
}

// table renders one tablewriter table with title-cased headers and
// right-aligned numeric columns.
func (f *TableFormatter) table(w io.Writer, headers []string, rows [][]string) error {
	alignment := make([]tw.Align, len(headers))
	for i, h := range headers {
		switch h {
		case "auth", "secondary", "delta", "games", "pairs", "perfect", "minor", "major", "accuracy":
			alignment[i] = tw.AlignRight
		default:
			alignment[i] = tw.AlignLeft
		}
	}
	config := tablewriter.Config{
		Header: tw.CellConfig{Alignment: tw.CellAlignment{PerColumn: alignment}},
		Row:    tw.CellConfig{Alignment: tw.CellAlignment{PerColumn: alignment}},
	}

	table := tablewriter.NewTable(w, tablewriter.WithConfig(config))
	headerCells := make([]any, len(headers))
	for i, h := range headers {
		headerCells[i] = titleCaser.String(h)
	}
	table.Header(headerCells...)
	for _, row := range rows {
		cells := make([]any, len(row))
		for i, cell := range row {
			cells[i] = cell
		}
		if err := table.Append(cells...); err != nil {
			return err
		}
	}
	return table.Render()
}
