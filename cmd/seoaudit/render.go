package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/Bahjat/seo-insight-tool/internal/model"
)

const maxEvidenceWidth = 60

// renderReport writes a human-readable summary followed by the check and
// recommendation tables.
func renderReport(w io.Writer, r *model.Report) {
	_, _ = fmt.Fprintf(w, "URL:    %s\n", r.Input.Normalized)
	if r.Fetch.FinalURL != "" && r.Fetch.FinalURL != r.Input.Normalized {
		_, _ = fmt.Fprintf(w, "Final:  %s\n", r.Fetch.FinalURL)
	}
	_, _ = fmt.Fprintf(w, "Fetch:  %d, %d bytes in %dms\n", r.Fetch.Status, r.Fetch.Size, r.Fetch.TimingMs)
	_, _ = fmt.Fprintf(w, "Score:  %d/100 (%d of %d points)\n\n", r.Score.Score, r.Score.EarnedPoints, r.Score.MaxPossiblePoints)

	checks := table.NewWriter()
	checks.SetOutputMirror(w)
	checks.SetStyle(table.StyleLight)
	checks.AppendHeader(table.Row{"Check", "Category", "Severity", "Status", "Evidence"})
	checks.SetColumnConfigs([]table.ColumnConfig{
		{Number: 5, WidthMax: maxEvidenceWidth},
	})
	for _, c := range r.Checks {
		checks.AppendRow(table.Row{c.Label, c.Category, c.Severity, strings.ToUpper(string(c.Status)), c.Evidence})
	}
	checks.Render()

	if len(r.Recommendations) == 0 {
		_, _ = fmt.Fprintln(w, "\nNo recommendations.")
		return
	}

	_, _ = fmt.Fprintln(w)
	recs := table.NewWriter()
	recs.SetOutputMirror(w)
	recs.SetStyle(table.StyleLight)
	recs.AppendHeader(table.Row{"Severity", "Recommendation", "How to fix"})
	recs.SetColumnConfigs([]table.ColumnConfig{
		{Number: 3, WidthMax: maxEvidenceWidth},
	})
	for _, rec := range r.Recommendations {
		recs.AppendRow(table.Row{rec.Severity, rec.Title, strings.Join(rec.HowToFix, "\n")})
	}
	recs.Render()
}
