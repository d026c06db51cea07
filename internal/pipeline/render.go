package pipeline

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/mkravets/compscan/internal/model"
	"github.com/mkravets/compscan/internal/stats"
)

// Renderer writes a CMAReport as JSON, Markdown, or a short stdout
// summary.
type Renderer struct {
	includeFooter bool
}

func NewRenderer(includeFooter bool) *Renderer {
	return &Renderer{includeFooter: includeFooter}
}

// RenderJSON writes the full report as indented JSON.
func (r *Renderer) RenderJSON(report *model.CMAReport, path string) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// RenderMarkdown writes a human-readable report.
func (r *Renderer) RenderMarkdown(report *model.CMAReport, path string) error {
	return os.WriteFile(path, []byte(r.Markdown(report)), 0o644)
}

// metricLabels maps metric names to report headings, in display order.
var metricLabels = []struct {
	metric stats.Metric
	label  string
}{
	{stats.MetricListPrice, "List Price"},
	{stats.MetricSoldPrice, "Sold Price"},
	{stats.MetricSqft, "Square Feet"},
	{stats.MetricDaysOnMarket, "Days on Market"},
	{stats.MetricPricePerSqft, "Price / Sqft"},
	{stats.MetricPricePerAcre, "Price / Acre"},
}

// statusOrder fixes the breakdown display order.
var statusOrder = []model.CanonicalStatus{
	model.StatusActive, model.StatusPending, model.StatusClosed,
	model.StatusLeasing, model.StatusWithdrawn, model.StatusExpired,
	model.StatusUnknown,
}

// Markdown builds the report body.
func (r *Renderer) Markdown(report *model.CMAReport) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Comparable Market Analysis\n\n")
	fmt.Fprintf(&b, "**Subject:** %s\n\n", report.Subject)
	fmt.Fprintf(&b, "**Generated:** %s\n\n", report.GeneratedAt.Format("2006-01-02 15:04 MST"))
	fmt.Fprintf(&b, "Records analyzed: %d (%d excluded as rental/lease)\n\n",
		report.RecordsIn, report.Excluded)

	b.WriteString("## Market Statistics\n\n")
	b.WriteString("| Metric | Min | Max | Average | Median | Samples |\n")
	b.WriteString("|--------|-----|-----|---------|--------|--------|\n")
	for _, m := range metricLabels {
		stat, ok := report.Statistics[string(m.metric)]
		if !ok {
			continue
		}
		fmt.Fprintf(&b, "| %s | %s | %s | %s | %s | %d |\n",
			m.label,
			formatStat(stat.Min, stat.Samples),
			formatStat(stat.Max, stat.Samples),
			formatStat(stat.Average, stat.Samples),
			formatStat(stat.Median, stat.Samples),
			stat.Samples)
	}
	b.WriteString("\n")

	if len(report.StatusBreakdown) > 0 {
		b.WriteString("## Status Breakdown\n\n")
		for _, s := range statusOrder {
			if n := report.StatusBreakdown[s]; n > 0 {
				fmt.Fprintf(&b, "- %s: %d\n", s, n)
			}
		}
		b.WriteString("\n")
	}

	if report.Photos != nil {
		b.WriteString("## Photo Selection\n\n")
		writeSlot(&b, "Main", report.Photos.Main)
		writeSlot(&b, "Kitchen", report.Photos.Kitchen)
		writeSlot(&b, "Room", report.Photos.Room)
		if len(report.Photos.MissingCategories) > 0 {
			fmt.Fprintf(&b, "\nMissing categories: %s\n",
				strings.Join(report.Photos.MissingCategories, ", "))
		}
		if report.Photos.InsightsUnavailable {
			b.WriteString("\n_Photo insights were unavailable; selection fell back to photo order._\n")
		}
		b.WriteString("\n")
	}

	if report.LLM != nil && report.LLM.SummaryMD != "" {
		b.WriteString("## Market Summary\n\n")
		b.WriteString(report.LLM.SummaryMD)
		b.WriteString("\n\n")
		for _, w := range report.LLM.Warnings {
			fmt.Fprintf(&b, "> ⚠️ %s\n", w)
		}
		if len(report.LLM.Warnings) > 0 {
			b.WriteString("\n")
		}
	}

	if r.includeFooter {
		fmt.Fprintf(&b, "---\n*Generated by compscan on %s*\n",
			report.GeneratedAt.Format("2006-01-02"))
	}

	return b.String()
}

func writeSlot(b *strings.Builder, name string, slot model.SlotSelection) {
	if slot.URL == "" {
		fmt.Fprintf(b, "- **%s:** (unfilled)\n", name)
		return
	}
	flags := ""
	if slot.IsAISelected {
		flags += " (AI-selected)"
	}
	if slot.CategoryMismatch {
		flags += " (low confidence)"
	}
	fmt.Fprintf(b, "- **%s:** %s%s\n", name, slot.URL, flags)
}

// formatStat renders one cell. Whole numbers drop the decimals.
func formatStat(v float64, samples int) string {
	if samples == 0 {
		return "-"
	}
	if v == float64(int64(v)) {
		return fmt.Sprintf("%.0f", v)
	}
	return fmt.Sprintf("%.2f", v)
}

// RenderSummary prints the one-screen stdout digest.
func (r *Renderer) RenderSummary(report *model.CMAReport) {
	fmt.Printf("\n=== %s ===\n", report.Subject)
	fmt.Printf("Comparables: %d of %d records (%d excluded)\n",
		len(report.Comparables), report.RecordsIn, report.Excluded)

	if stat, ok := report.Statistics[string(stats.MetricListPrice)]; ok && stat.Samples > 0 {
		fmt.Printf("List price:  $%s - $%s (median $%s, n=%d)\n",
			formatStat(stat.Min, stat.Samples), formatStat(stat.Max, stat.Samples),
			formatStat(stat.Median, stat.Samples), stat.Samples)
	}
	if stat, ok := report.Statistics[string(stats.MetricPricePerSqft)]; ok && stat.Samples > 0 {
		fmt.Printf("Price/sqft:  $%s median (n=%d)\n",
			formatStat(stat.Median, stat.Samples), stat.Samples)
	}

	for _, s := range statusOrder {
		if n := report.StatusBreakdown[s]; n > 0 {
			fmt.Printf("  %-10s %d\n", s, n)
		}
	}
}
