package pipeline

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/hearsay-nlp/hearsay/internal/model"
)

// Source-type order for stable stats rendering.
var sourceTypeOrder = []model.SourceType{
	model.SourceNamedEntity,
	model.SourceNominal,
	model.SourcePronominal,
	model.SourceJournalist,
	model.SourcePassive,
}

// Renderer writes reports as JSON, Markdown, and a stdout summary table.
type Renderer struct {
	includeFooter bool
	out           io.Writer
}

// NewRenderer creates a renderer. The footer toggle applies to Markdown
// reports only.
func NewRenderer(includeFooter bool) *Renderer {
	return &Renderer{includeFooter: includeFooter, out: os.Stdout}
}

// RenderJSON writes the full report as indented JSON.
func (r *Renderer) RenderJSON(report *model.Report, path string) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}

// RenderMarkdown writes a human-readable Markdown report: stats, signals,
// and the clause table.
func (r *Renderer) RenderMarkdown(report *model.Report, path string) error {
	var b strings.Builder

	fmt.Fprintf(&b, "# Stance Report: %s\n\n", report.Subject)
	if report.Source != "" {
		fmt.Fprintf(&b, "- **Source**: %s\n", report.Source)
	}
	fmt.Fprintf(&b, "- **Analyzed**: %s\n", report.AnalyzedAt.Format("2006-01-02 15:04:05 UTC"))
	fmt.Fprintf(&b, "- **Sourcing index**: %d/100 (%s confidence)\n\n", report.Score.Index, report.Score.Confidence)

	b.WriteString("## Stats\n\n")
	b.WriteString("| Metric | Value |\n")
	b.WriteString("|--------|-------|\n")
	fmt.Fprintf(&b, "| Tokens | %d |\n", report.TokenCount)
	fmt.Fprintf(&b, "| Clauses | %d |\n", report.Stats.Clauses)
	fmt.Fprintf(&b, "| Distinct sources | %d |\n", report.Stats.Sources)
	fmt.Fprintf(&b, "| Attribution-verb clauses | %d |\n", report.Stats.Attribution)
	fmt.Fprintf(&b, "| Epistemic-verb clauses | %d |\n", report.Stats.Epistemic)
	fmt.Fprintf(&b, "| Inherited sources | %d |\n", report.Stats.Inherited)
	for _, st := range sourceTypeOrder {
		if n := report.Stats.BySource[st]; n > 0 {
			fmt.Fprintf(&b, "| %s clauses | %d |\n", st, n)
		}
	}
	b.WriteString("\n")

	if len(report.Score.Signals) > 0 {
		b.WriteString("## Signals\n\n")
		for _, sig := range report.Score.Signals {
			fmt.Fprintf(&b, "- %s **%s** (%s): %s\n", severityIcon(sig.Severity), sig.Type, sig.Severity, sig.Description)
		}
		b.WriteString("\n")
	}

	if len(report.Clauses) > 0 {
		b.WriteString("## Clauses\n\n")
		b.WriteString("| # | Root | Depth | Source | Type | Attr | Epi | Inh | Text |\n")
		b.WriteString("|---|------|-------|--------|------|------|-----|-----|------|\n")
		for i, c := range report.Clauses {
			fmt.Fprintf(&b, "| %d | %s | %d | %s | %s | %s | %s | %s | %s |\n",
				i+1, c.RootText, c.Depth,
				escapePipes(c.SourceText), string(c.SourceType),
				mark(c.IsAttributionVerb), mark(c.IsEpistemicVerb), mark(c.Inherited),
				escapePipes(clip(c.Text, 100)))
		}
		b.WriteString("\n")
	}

	if r.includeFooter {
		b.WriteString("---\n\n")
		b.WriteString("*Generated by [hearsay](https://github.com/hearsay-nlp/hearsay). ")
		b.WriteString("The sourcing index reflects how statements are attributed and hedged, not whether they are true.*\n")
	}

	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}

// RenderLLMMarkdown writes pre-rendered LLM summary markdown to its own
// file. Empty content is skipped.
func (r *Renderer) RenderLLMMarkdown(markdown, path string) error {
	if markdown == "" {
		return nil
	}
	if err := os.WriteFile(path, []byte(markdown), 0o644); err != nil {
		return fmt.Errorf("write LLM summary: %w", err)
	}
	return nil
}

// RenderSummary prints the report overview and clause table to stdout.
func (r *Renderer) RenderSummary(report *model.Report) {
	fmt.Fprintf(r.out, "\n%s\n", report.Subject)
	fmt.Fprintf(r.out, "Sourcing index: %d/100 (%s confidence)\n", report.Score.Index, report.Score.Confidence)
	fmt.Fprintf(r.out, "Clauses: %d  Sources: %d  Inherited: %d\n\n", report.Stats.Clauses, report.Stats.Sources, report.Stats.Inherited)

	if len(report.Clauses) > 0 {
		w := tabwriter.NewWriter(r.out, 0, 8, 2, ' ', 0)
		fmt.Fprintln(w, "#\tROOT\tSOURCE\tTYPE\tATTR\tEPI\tDEP\tHEAD\tDEPTH\tMARKER\tTEXT")
		for i, c := range report.Clauses {
			fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t%d\t%s\t%s\n",
				i+1, c.RootText, clip(c.SourceText, 24), string(c.SourceType),
				mark(c.IsAttributionVerb), mark(c.IsEpistemicVerb),
				c.RootDep, c.Head, c.Depth, c.Marker, clip(c.Text, 60))
		}
		_ = w.Flush()
		fmt.Fprintln(r.out)
	}

	for _, sig := range sortedSignals(report.Score.Signals) {
		fmt.Fprintf(r.out, "%s %s: %s\n", severityIcon(sig.Severity), sig.Type, sig.Description)
	}
}

// sortedSignals orders signals critical first, then warnings, then info;
// ties keep their original order.
func sortedSignals(signals []model.Signal) []model.Signal {
	rank := map[model.SignalSeverity]int{
		model.SeverityCritical: 0,
		model.SeverityWarning:  1,
		model.SeverityInfo:     2,
	}
	out := make([]model.Signal, len(signals))
	copy(out, signals)
	sort.SliceStable(out, func(i, j int) bool {
		return rank[out[i].Severity] < rank[out[j].Severity]
	})
	return out
}

func severityIcon(s model.SignalSeverity) string {
	switch s {
	case model.SeverityCritical:
		return "✗"
	case model.SeverityWarning:
		return "⚠"
	default:
		return "•"
	}
}

func mark(b bool) string {
	if b {
		return "✓"
	}
	return ""
}

// clip shortens s to at most n runes, appending an ellipsis when cut.
func clip(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n]) + "..."
}

func escapePipes(s string) string {
	return strings.ReplaceAll(s, "|", "\\|")
}
