// Package pipeline orchestrates a stance analysis end to end: acquire text
// (URL, file, or pre-annotated document), annotate, tag, segment, attribute,
// assemble features, profile, and render the report.
package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/hearsay-nlp/hearsay/internal/annotate"
	"github.com/hearsay-nlp/hearsay/internal/attribution"
	"github.com/hearsay-nlp/hearsay/internal/cache"
	"github.com/hearsay-nlp/hearsay/internal/clause"
	"github.com/hearsay-nlp/hearsay/internal/embedding"
	"github.com/hearsay-nlp/hearsay/internal/feature"
	"github.com/hearsay-nlp/hearsay/internal/fetch"
	"github.com/hearsay-nlp/hearsay/internal/lexicon"
	"github.com/hearsay-nlp/hearsay/internal/llm"
	"github.com/hearsay-nlp/hearsay/internal/model"
	"github.com/hearsay-nlp/hearsay/internal/score"
	"github.com/hearsay-nlp/hearsay/internal/worker"
)

// Polite per-host defaults for article fetching. The annotation service
// client carries its own limiter from the annotate config section.
const (
	articleRequestsPerSecond = 2
	articleBurst             = 2
)

// Pipeline runs stance analyses. It is safe for concurrent use: every
// analysis is a pure function over its inputs plus the read-only wiring
// built in New.
type Pipeline struct {
	cfg *model.Config

	provider  annotate.Provider // nil in offline mode
	fetcher   *fetch.Fetcher
	lexicons  *lexicon.Lexicons
	tagger    *feature.Tagger
	segmenter *clause.Segmenter
	extractor *attribution.Extractor
	calc      *embedding.SpanCalculator
	assembler *feature.Assembler
	profiler  *score.Profiler
	renderer  *Renderer

	summarizer *llm.Summarizer // nil when LLM summaries are disabled
}

// New wires a pipeline from the configuration. An empty annotate provider
// means offline mode: only pre-annotated documents can be analyzed.
func New(cfg *model.Config) (*Pipeline, error) {
	lex, err := lexicon.LoadDir(cfg.Lexicons.Dir)
	if err != nil {
		return nil, fmt.Errorf("load lexicons: %w", err)
	}

	var store cache.Cache
	if cfg.Cache.Enabled {
		store = cache.NewLayered(cfg.Cache.MemoryTTL, cfg.Cache.Dir, cfg.Cache.DiskTTL)
	}

	provider, err := annotate.NewProvider(cfg.Annotate, store)
	if err != nil {
		return nil, fmt.Errorf("annotation provider: %w", err)
	}

	var summarizer *llm.Summarizer
	if cfg.LLM.Provider != "" {
		s, err := llm.NewSummarizer(llm.ConfigFromModel(cfg.LLM))
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to initialize LLM provider: %v\n", err)
		} else {
			summarizer = s
		}
	}

	limiter := worker.NewLimiter(articleRequestsPerSecond, articleBurst)
	calc := embedding.NewSpanCalculator(cfg.Embedding.Dim)

	return &Pipeline{
		cfg:        cfg,
		provider:   provider,
		fetcher:    fetch.New(cfg.HTTP, limiter),
		lexicons:   lex,
		tagger:     feature.NewTagger(lex),
		segmenter:  clause.NewSegmenter(),
		extractor:  attribution.New(lex.AttributionVerbs, lex.EpistemicVerbs),
		calc:       calc,
		assembler:  feature.NewAssembler(calc),
		profiler:   score.NewProfiler(),
		renderer:   NewRenderer(cfg.Output.IncludeFooter),
		summarizer: summarizer,
	}, nil
}

// Lexicons returns the loaded lexicon bundle.
func (p *Pipeline) Lexicons() *lexicon.Lexicons {
	return p.lexicons
}

// Analyze runs one analysis for a single input: an http(s) URL, a
// pre-annotated .json document, or a plain-text file. This is the
// entrypoint the batch worker uses.
func (p *Pipeline) Analyze(ctx context.Context, input string) (*model.Report, error) {
	switch {
	case strings.HasPrefix(input, "http://") || strings.HasPrefix(input, "https://"):
		return p.AnalyzeURL(ctx, input)
	case strings.HasSuffix(strings.ToLower(input), ".json"):
		return p.AnalyzeAnnotated(ctx, input)
	default:
		return p.AnalyzeFile(ctx, input)
	}
}

// AnalyzeURL fetches a page, reduces it to visible text, and analyzes it.
// Fetch metadata is attached to the report.
func (p *Pipeline) AnalyzeURL(ctx context.Context, rawURL string) (*model.Report, error) {
	result, err := p.fetcher.FetchWithRetry(ctx, rawURL)
	if err != nil {
		return nil, fmt.Errorf("fetch: %w", err)
	}

	report, err := p.AnalyzeText(ctx, result.Subject, result.Text)
	if err != nil {
		return nil, err
	}
	report.Source = result.FinalURL
	report.FetchMeta = &result.Meta
	return report, nil
}

// AnalyzeFile reads a plain-text file and analyzes its contents.
func (p *Pipeline) AnalyzeFile(ctx context.Context, path string) (*model.Report, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	report, err := p.AnalyzeText(ctx, subjectFromPath(path), string(data))
	if err != nil {
		return nil, err
	}
	report.Source = path
	return report, nil
}

// AnalyzeAnnotated loads a pre-annotated JSON document and analyzes it
// without contacting the annotation service.
func (p *Pipeline) AnalyzeAnnotated(ctx context.Context, path string) (*model.Report, error) {
	doc, err := annotate.Load(path)
	if err != nil {
		return nil, err
	}

	report, err := p.AnalyzeDocument(ctx, subjectFromPath(path), doc)
	if err != nil {
		return nil, err
	}
	report.Source = path
	return report, nil
}

// AnalyzeText normalizes whitespace, annotates the text, and analyzes the
// resulting document. Requires a configured annotation provider.
func (p *Pipeline) AnalyzeText(ctx context.Context, subject, text string) (*model.Report, error) {
	if p.provider == nil {
		return nil, fmt.Errorf("no annotation provider configured (offline mode accepts pre-annotated documents only)")
	}

	normalized := strings.Join(strings.Fields(text), " ")
	if normalized == "" {
		return nil, fmt.Errorf("empty input text")
	}

	doc, err := p.provider.Annotate(ctx, normalized)
	if err != nil {
		return nil, fmt.Errorf("annotate: %w", err)
	}
	return p.AnalyzeDocument(ctx, subject, doc)
}

// AnalyzeDocument runs the core extraction over an annotated document:
// tag, segment, attribute, assemble (when enabled), profile. The optional
// LLM summary is generated last and never influences anything before it.
func (p *Pipeline) AnalyzeDocument(ctx context.Context, subject string, doc *model.Document) (*model.Report, error) {
	flags := p.tagger.Tag(doc)

	clauses, err := p.segmenter.Segment(doc)
	if err != nil {
		return nil, fmt.Errorf("segment: %w", err)
	}
	clauses = p.extractor.ExtractAll(clauses, doc)

	stats, scoreResult := p.profiler.Profile(clauses, doc, flags)

	report := &model.Report{
		ID:         uuid.NewString(),
		Subject:    subject,
		AnalyzedAt: time.Now().UTC(),
		TokenCount: len(doc.Tokens),
		Clauses:    clauses,
		Stats:      stats,
		Score:      scoreResult,
	}

	if p.cfg.Output.IncludeFeatures {
		asm := p.assembler
		if doc.Dim > 0 && doc.Dim != p.calc.Dim() {
			// The document's own embedding width wins over the configured one.
			asm = feature.NewAssembler(embedding.NewSpanCalculator(doc.Dim))
		}
		report.Features = asm.AssembleAll(clauses, doc, flags)
	}

	if p.summarizer != nil && p.summarizer.IsEnabled() {
		summary, err := p.summarizer.GenerateSummary(ctx, *report)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: LLM summary generation failed: %v\n", err)
		} else if summary != nil {
			report.LLM = summary
		}
	}

	return report, nil
}

// RenderReport writes the report to the requested outputs and prints the
// stdout summary.
func (p *Pipeline) RenderReport(report *model.Report, jsonPath, mdPath string, verbose bool) error {
	if jsonPath != "" {
		if err := p.renderer.RenderJSON(report, jsonPath); err != nil {
			return fmt.Errorf("render JSON: %w", err)
		}
		if verbose {
			fmt.Fprintf(os.Stderr, "✓ Wrote JSON: %s\n", jsonPath)
		}
	}

	if mdPath != "" {
		if err := p.renderer.RenderMarkdown(report, mdPath); err != nil {
			return fmt.Errorf("render markdown: %w", err)
		}
		if verbose {
			fmt.Fprintf(os.Stderr, "✓ Wrote Markdown: %s\n", mdPath)
		}
	}

	// The LLM summary goes to its own file, never inline with the report.
	if report.LLM != nil && report.LLM.Enabled && mdPath != "" {
		llmPath := strings.TrimSuffix(mdPath, ".md") + ".llm.md"
		if err := p.renderer.RenderLLMMarkdown(llm.RenderSeparateMarkdown(report.LLM), llmPath); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to write LLM summary: %v\n", err)
		} else if verbose {
			fmt.Fprintf(os.Stderr, "✓ Wrote LLM summary: %s\n", llmPath)
		}
	}

	p.renderer.RenderSummary(report)
	return nil
}

// PingAnnotator checks that the annotation service is reachable. Offline
// pipelines report an error.
func (p *Pipeline) PingAnnotator(ctx context.Context) error {
	if p.provider == nil {
		return fmt.Errorf("no annotation provider configured")
	}
	return p.provider.Ping(ctx)
}

// subjectFromPath derives a subject from a file path: the base name,
// de-slugged and stripped of its extension.
func subjectFromPath(path string) string {
	base := filepath.Base(path)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	base = strings.ReplaceAll(base, "_", " ")
	base = strings.ReplaceAll(base, "-", " ")
	if base == "" {
		return path
	}
	return base
}
