// Package llm generates optional natural-language summaries of stance
// reports. Summaries are produced after scoring and never influence
// extracted features or the sourcing index. In strict-sources mode the
// model may only mention sources from the report's own attribution
// allowlist, and responses that leak other sources are rejected.
package llm

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/hearsay-nlp/hearsay/internal/model"
)

// Provider defines the interface for LLM providers
type Provider interface {
	// Name returns the provider name
	Name() string

	// Summarize generates a summary of the report under the source allowlist
	Summarize(ctx context.Context, req SummarizeRequest) (*SummarizeResponse, error)

	// IsAvailable checks if the provider is properly configured and accessible
	IsAvailable(ctx context.Context) bool
}

// SummarizeRequest contains the input for LLM summarization
type SummarizeRequest struct {
	// Report is the stance report to summarize
	Report model.Report

	// Sources is the STRICT allowlist of attributed source texts the LLM
	// may mention. This prevents hallucinated attribution: the model cannot
	// reference a source the document never cited.
	Sources []string

	// Prompt is an optional custom prompt (if empty, use default)
	Prompt string

	// Model is the specific model to use (provider-specific)
	Model string

	// MaxTokens limits the response length
	MaxTokens int
}

// SummarizeResponse contains the LLM's summary output
type SummarizeResponse struct {
	// Summary is the generated summary text
	Summary string

	// MentionedSources are the backticked source mentions found in the
	// summary (for verification)
	MentionedSources []string

	// Model is the model that generated the response
	Model string

	// TokensUsed tracks token consumption
	TokensUsed int
}

// Config holds LLM provider configuration
type Config struct {
	// Provider name: "openai", "anthropic", "ollama", ""
	Provider string

	// Model name (provider-specific)
	Model string

	// APIKey for OpenAI/Anthropic
	APIKey string

	// BaseURL for custom endpoints (e.g., Ollama)
	BaseURL string

	// Timeout for API requests
	Timeout int // seconds

	// StrictSources enforces the source allowlist (should always be true)
	StrictSources bool

	// MaxTokens for response generation
	MaxTokens int

	// Proxy settings
	HTTPProxy  string
	HTTPSProxy string
	NoProxy    string
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		Provider:      "", // Disabled by default
		Model:         "",
		Timeout:       30,
		StrictSources: true, // CRITICAL: Always enforce
		MaxTokens:     1000,
	}
}

// BuildPrompt constructs the default summarization prompt with the source
// allowlist embedded.
func BuildPrompt(report model.Report, sources []string) string {
	prompt := fmt.Sprintf("You are summarizing a hearsay stance report. Hearsay profiles HOW a document sources and hedges its statements - it NEVER judges whether they are true.\n\n"+
		"CRITICAL RULES:\n"+
		"1. You may ONLY mention sources from this allowed list, and every mention MUST be wrapped in backticks:\n%s\n\n"+
		"2. Use backticks for source names ONLY, never for other words.\n"+
		"3. DO NOT invent, merge, or paraphrase source names.\n"+
		"4. If attribution is thin or absent, state that explicitly.\n"+
		"5. Describe SOURCING QUALITY, not truth. Use phrases like:\n"+
		"   - \"Most claims lean on one source...\"\n"+
		"   - \"The document hedges heavily when...\"\n"+
		"   - \"Half the clauses carry no attribution...\"\n"+
		"6. Never say \"this is true\" or \"this is false\" - only describe sourcing.\n\n"+
		"Report summary:\n"+
		"- Subject: %s\n"+
		"- Sourcing index: %d/100\n"+
		"- Clauses: %d, attributed: %d, inherited: %d\n"+
		"- Distinct sources: %d\n\n"+
		"Key signals:\n",
		joinSources(sources), report.Subject, report.Score.Index,
		report.Stats.Clauses, countAttributed(report.Stats), report.Stats.Inherited,
		report.Stats.Sources)

	// Add top 3 signals
	for i, signal := range report.Score.Signals {
		if i >= 3 {
			break
		}
		prompt += fmt.Sprintf("- %s: %s\n", signal.Type, signal.Description)
	}

	prompt += "\nProvide a 3-4 sentence summary focusing on sourcing quality, not truth."

	return prompt
}

// Helper functions

func joinSources(sources []string) string {
	if len(sources) == 0 {
		return "(No attributed sources - the document speaks entirely in its own voice)"
	}
	result := ""
	for i, source := range sources {
		if i >= 20 { // Limit to first 20 to avoid token bloat
			result += fmt.Sprintf("\n... and %d more sources", len(sources)-20)
			break
		}
		result += fmt.Sprintf("\n- `%s`", source)
	}
	return result
}

// countAttributed totals the clauses with a concrete source type.
func countAttributed(stats model.Stats) int {
	return stats.BySource[model.SourceNamedEntity] +
		stats.BySource[model.SourceNominal] +
		stats.BySource[model.SourcePronominal]
}

var backtickPattern = regexp.MustCompile("`([^`]+)`")

// extractBacktickedMentions returns the distinct backticked spans of text,
// in order of first appearance.
func extractBacktickedMentions(text string) []string {
	matches := backtickPattern.FindAllStringSubmatch(text, -1)

	seen := make(map[string]bool)
	var unique []string
	for _, m := range matches {
		mention := strings.TrimSpace(m[1])
		if mention == "" {
			continue
		}
		key := strings.ToLower(mention)
		if !seen[key] {
			seen[key] = true
			unique = append(unique, mention)
		}
	}
	return unique
}

// leakedMentions returns the mentions that are not on the allowlist.
// Comparison is case-insensitive.
func leakedMentions(mentions, allowed []string) []string {
	allowedSet := make(map[string]bool, len(allowed))
	for _, a := range allowed {
		allowedSet[strings.ToLower(strings.TrimSpace(a))] = true
	}

	var leaked []string
	for _, m := range mentions {
		if !allowedSet[strings.ToLower(m)] {
			leaked = append(leaked, m)
		}
	}
	return leaked
}
