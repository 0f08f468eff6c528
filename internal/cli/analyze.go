package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/hearsay-nlp/hearsay/internal/annotate"
	"github.com/hearsay-nlp/hearsay/internal/model"
	"github.com/hearsay-nlp/hearsay/internal/pipeline"
	"github.com/spf13/cobra"
)

var (
	annotated   bool
	outJSON     string
	outMD       string
	features    bool
	lexiconsDir string
	serviceURL  string
	embedDim    int
	timeout     time.Duration
	userAgent   string
	maxBytes    int64
	noCache     bool
	noFooter    bool
	insecureTLS bool
	httpProxy   string
	httpsProxy  string
	llmEnabled  bool
	llmProvider string
	llmModel    string
)

// analyzeCmd represents the analyze command
var analyzeCmd = &cobra.Command{
	Use:   "analyze <file|url|->",
	Short: "Analyze one document and generate a stance report",
	Long: `Analyze extracts epistemic stance features from a single document:
- Segment the text into clauses along the dependency tree
- Attribute each clause to its information source
- Tag hedging, certainty, and attribution wording
- Aggregate transparent sourcing signals into a 0-100 index

The input may be a URL, a plain-text file, a pre-annotated JSON document
(--annotated or a .json path), or "-" for stdin.

Example:
  hearsay analyze https://example.com/news/tax-reform-vote
  hearsay analyze article.txt --json report.json --md report.md
  hearsay analyze parse.json --annotated --features
  hearsay analyze https://example.com --llm openai --llm-model gpt-4o-mini`,
	Args: cobra.ExactArgs(1),
	RunE: runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)

	// Input flags
	analyzeCmd.Flags().BoolVar(&annotated, "annotated", false, "treat the input as a pre-annotated JSON document")
	analyzeCmd.Flags().StringVar(&lexiconsDir, "lexicons", "", "lexicon directory (default from config)")
	analyzeCmd.Flags().StringVar(&serviceURL, "service", "", "annotation service base URL (default from config)")
	analyzeCmd.Flags().IntVar(&embedDim, "dim", 0, "embedding dimension (default from config)")

	// Output flags
	analyzeCmd.Flags().StringVar(&outJSON, "json", "report.json", "output JSON path")
	analyzeCmd.Flags().StringVar(&outMD, "md", "", "output Markdown path (optional)")
	analyzeCmd.Flags().BoolVar(&features, "features", false, "include assembled feature vectors in the report")
	analyzeCmd.Flags().BoolVar(&noFooter, "no-footer", false, "disable footer in Markdown reports")

	// HTTP flags
	analyzeCmd.Flags().DurationVar(&timeout, "timeout", 2*time.Minute, "overall analysis timeout")
	analyzeCmd.Flags().StringVar(&userAgent, "ua", "Hearsay/0.1 (+https://github.com/hearsay-nlp/hearsay)", "HTTP User-Agent")
	analyzeCmd.Flags().Int64Var(&maxBytes, "max-bytes", 2_000_000, "max response bytes to read")
	analyzeCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the annotation cache (force fresh annotation)")
	analyzeCmd.Flags().BoolVar(&insecureTLS, "insecure", false, "skip TLS certificate verification (use for self-signed certs)")
	analyzeCmd.Flags().StringVar(&httpProxy, "http-proxy", "", "HTTP proxy URL (overrides HTTP_PROXY env var)")
	analyzeCmd.Flags().StringVar(&httpsProxy, "https-proxy", "", "HTTPS proxy URL (overrides HTTPS_PROXY env var)")

	// LLM flags
	analyzeCmd.Flags().BoolVar(&llmEnabled, "llm", false, "enable LLM summary generation")
	analyzeCmd.Flags().StringVar(&llmProvider, "llm-provider", "openai", "LLM provider (openai, anthropic, ollama)")
	analyzeCmd.Flags().StringVar(&llmModel, "llm-model", "gpt-4o-mini", "LLM model name")
}

// buildConfig resolves the effective configuration from defaults and flags.
func buildConfig() (*model.Config, error) {
	cfg := model.DefaultConfig()

	if serviceURL != "" {
		cfg.Annotate.BaseURL = serviceURL
	}
	if embedDim > 0 {
		cfg.Embedding.Dim = embedDim
	}
	if lexiconsDir != "" {
		cfg.Lexicons.Dir = lexiconsDir
	}

	cfg.HTTP.Timeout = timeout
	cfg.HTTP.UserAgent = userAgent
	cfg.HTTP.MaxBodyBytes = maxBytes
	cfg.HTTP.InsecureTLS = insecureTLS
	cfg.HTTP.HTTPProxy = httpProxy
	cfg.HTTP.HTTPSProxy = httpsProxy
	cfg.Cache.Enabled = !noCache
	cfg.Output.Verbose = verbose
	cfg.Output.IncludeFeatures = features
	cfg.Output.IncludeFooter = !noFooter

	if llmEnabled {
		if err := configureLLM(cfg); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

// configureLLM fills the LLM section from flags and environment variables.
func configureLLM(cfg *model.Config) error {
	cfg.LLM.Provider = llmProvider
	cfg.LLM.Model = llmModel
	cfg.LLM.StrictSources = true // Always enforce

	// Get API key from environment
	switch llmProvider {
	case "openai":
		cfg.LLM.APIKey = os.Getenv("OPENAI_API_KEY")
		if cfg.LLM.APIKey == "" {
			return fmt.Errorf("OPENAI_API_KEY environment variable not set")
		}
	case "anthropic", "claude":
		cfg.LLM.APIKey = os.Getenv("ANTHROPIC_API_KEY")
		if cfg.LLM.APIKey == "" {
			return fmt.Errorf("ANTHROPIC_API_KEY environment variable not set")
		}
	case "ollama":
		// Ollama doesn't need an API key
		if baseURL := os.Getenv("OLLAMA_BASE_URL"); baseURL != "" {
			cfg.LLM.BaseURL = baseURL
		}
	}
	return nil
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	input := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if verbose {
		fmt.Fprintf(os.Stderr, "Analyzing: %s\n", input)
		fmt.Fprintf(os.Stderr, "Timeout: %v\n", timeout)
		fmt.Fprintf(os.Stderr, "Cache: %v\n", !noCache)
		fmt.Fprintln(os.Stderr)
	}

	cfg, err := buildConfig()
	if err != nil {
		return err
	}

	p, err := pipeline.New(cfg)
	if err != nil {
		return err
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "⚙️  Running analysis...\n")
	}

	report, err := analyzeInput(ctx, p, input)
	if err != nil {
		return fmt.Errorf("analyze failed: %w", err)
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "✓ Segmented %d clauses\n", report.Stats.Clauses)
		fmt.Fprintf(os.Stderr, "✓ Attributed %d distinct sources\n", report.Stats.Sources)
		fmt.Fprintf(os.Stderr, "✓ Calculated sourcing index: %d/100\n", report.Score.Index)
		if report.LLM != nil && report.LLM.Enabled {
			fmt.Fprintf(os.Stderr, "✓ Generated LLM summary using %s/%s\n", report.LLM.Provider, report.LLM.Model)
		}
		fmt.Fprintln(os.Stderr)
	}

	if err := p.RenderReport(report, outJSON, outMD, verbose); err != nil {
		return fmt.Errorf("render failed: %w", err)
	}

	return nil
}

// analyzeInput dispatches on the input form: stdin, forced pre-annotated,
// or the pipeline's own URL/.json/file dispatch.
func analyzeInput(ctx context.Context, p *pipeline.Pipeline, input string) (*model.Report, error) {
	if input == "-" {
		if annotated {
			doc, err := annotate.Decode(os.Stdin)
			if err != nil {
				return nil, err
			}
			return p.AnalyzeDocument(ctx, "stdin", doc)
		}
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}
		return p.AnalyzeText(ctx, "stdin", string(data))
	}

	if annotated {
		return p.AnalyzeAnnotated(ctx, input)
	}
	return p.Analyze(ctx, input)
}
