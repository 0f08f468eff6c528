package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/hearsay-nlp/hearsay/internal/model"
)

// Summarizer drives the optional LLM summary of a finished report. A nil
// provider means summarization is disabled; provider failures degrade to a
// summary object carrying warnings, never a failed analysis.
type Summarizer struct {
	provider Provider
	config   Config
}

// NewSummarizer creates a summarizer from configuration. An empty provider
// name yields a disabled summarizer, not an error.
func NewSummarizer(config Config) (*Summarizer, error) {
	provider, err := NewProvider(config)
	if err != nil {
		return nil, err
	}
	return &Summarizer{provider: provider, config: config}, nil
}

// IsEnabled reports whether a provider is configured.
func (s *Summarizer) IsEnabled() bool {
	return s.provider != nil
}

// ProviderName returns the configured provider's name, or "" when disabled.
func (s *Summarizer) ProviderName() string {
	if s.provider == nil {
		return ""
	}
	return s.provider.Name()
}

// GenerateSummary produces the LLM summary for a report. Returns (nil, nil)
// when summarization is disabled.
func (s *Summarizer) GenerateSummary(ctx context.Context, report model.Report) (*model.LLMSummary, error) {
	if s.provider == nil {
		return nil, nil
	}

	if !s.provider.IsAvailable(ctx) {
		return &model.LLMSummary{
			Enabled:       false,
			Provider:      s.provider.Name(),
			StrictSources: s.config.StrictSources,
			Warnings: []string{
				fmt.Sprintf("LLM provider %q is not available - check configuration and connectivity", s.provider.Name()),
			},
		}, nil
	}

	resp, err := s.provider.Summarize(ctx, SummarizeRequest{
		Report:    report,
		Sources:   collectSources(report),
		Model:     s.config.Model,
		MaxTokens: s.config.MaxTokens,
	})
	if err != nil {
		// Graceful degradation: the analysis stands, the summary does not.
		return &model.LLMSummary{
			Enabled:       true,
			Provider:      s.provider.Name(),
			Model:         s.config.Model,
			StrictSources: s.config.StrictSources,
			Warnings: []string{
				fmt.Sprintf("summary generation failed: %v", err),
			},
		}, nil
	}

	return &model.LLMSummary{
		Enabled:       true,
		Provider:      s.provider.Name(),
		Model:         resp.Model,
		StrictSources: s.config.StrictSources,
		SummaryMD:     resp.Summary,
		Warnings: []string{
			fmt.Sprintf("Tokens used: %d", resp.TokensUsed),
			fmt.Sprintf("Verified %d source mentions against the allowlist", len(resp.MentionedSources)),
		},
	}, nil
}

// collectSources gathers the distinct concrete source texts of a report in
// first-appearance order. This is the allowlist the LLM may mention.
func collectSources(report model.Report) []string {
	seen := make(map[string]bool)
	var sources []string
	for _, c := range report.Clauses {
		if c.SourceText == "" {
			continue
		}
		switch c.SourceType {
		case model.SourceNamedEntity, model.SourceNominal, model.SourcePronominal:
		default:
			continue
		}
		key := strings.ToLower(strings.TrimSpace(c.SourceText))
		if !seen[key] {
			seen[key] = true
			sources = append(sources, c.SourceText)
		}
	}
	return sources
}

// RenderSeparateMarkdown renders the LLM summary as a standalone Markdown
// document, clearly marked as generated content. Returns "" when the
// summary is nil or disabled.
func RenderSeparateMarkdown(summary *model.LLMSummary) string {
	if summary == nil || !summary.Enabled {
		return ""
	}

	var b strings.Builder
	b.WriteString("# LLM Summary\n\n")
	b.WriteString("> ⚠️ GENERATED CONTENT. This summary was produced by an LLM. ")
	b.WriteString("The sourcing index and signals were determined independently and are unaffected by it.\n\n")

	fmt.Fprintf(&b, "- **Provider**: %s\n", summary.Provider)
	if summary.Model != "" {
		fmt.Fprintf(&b, "- **Model**: %s\n", summary.Model)
	}
	fmt.Fprintf(&b, "- **Strict Sources Mode**: %t\n\n", summary.StrictSources)

	if summary.SummaryMD != "" {
		b.WriteString(summary.SummaryMD)
		b.WriteString("\n")
	} else {
		b.WriteString("No summary generated.\n")
	}

	if len(summary.Warnings) > 0 {
		b.WriteString("\n## Notes\n\n")
		for _, w := range summary.Warnings {
			fmt.Fprintf(&b, "- %s\n", w)
		}
	}

	return b.String()
}
