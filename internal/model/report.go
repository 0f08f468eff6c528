package model

import "time"

// Report is the complete stance analysis of one document.
type Report struct {
	ID         string     `json:"id"`                   // Stable identifier for the analysis run
	Subject    string     `json:"subject"`              // Human-readable subject ("Tax Reform Warning")
	Source     string     `json:"source,omitempty"`     // File path or URL the text came from
	AnalyzedAt time.Time  `json:"analyzed_at"`          // When the analysis ran
	FetchMeta  *FetchMeta `json:"fetch_meta,omitempty"` // HTTP metadata when the text was fetched

	TokenCount int            `json:"token_count"`
	Clauses    []Clause       `json:"clauses"`            // Segmented, attributed clauses
	Features   []ClauseVector `json:"features,omitempty"` // Assembled per-clause vectors (optional)

	Stats Stats `json:"stats"` // Aggregate counts
	Score Score `json:"score"` // Sourcing index and diagnostic signals

	LLM *LLMSummary `json:"llm,omitempty"` // Optional LLM summary (separate, never affects features)
}

// ClauseVector pairs a clause (by position in Report.Clauses) with its
// assembled feature vector.
type ClauseVector struct {
	Clause int       `json:"clause"`
	Vector []float64 `json:"vector"`
}

// FetchMeta contains HTTP metadata from fetching the source document.
type FetchMeta struct {
	StatusCode   int               `json:"status_code"`
	ContentType  string            `json:"content_type,omitempty"`
	LastModified string            `json:"last_modified,omitempty"`
	ETag         string            `json:"etag,omitempty"`
	Headers      map[string]string `json:"headers,omitempty"`
}

// LexicalCounts holds per-category totals from the eight stance lexicons.
type LexicalCounts struct {
	Hedges             int `json:"hedges"`
	AttributionPhrases int `json:"attribution_phrases"`
	AttributionVerbs   int `json:"attribution_verbs"`
	CertaintyHigh      int `json:"certainty_high"`
	CertaintyLow       int `json:"certainty_low"`
	EpistemicVerbs     int `json:"epistemic_verbs"`
	ModalVerbs         int `json:"modal_verbs"`
	SubjectiveVerbs    int `json:"subjective_verbs"`
}

// Stats aggregates the extracted features over a whole document.
type Stats struct {
	Clauses     int                `json:"clauses"`
	BySource    map[SourceType]int `json:"by_source,omitempty"` // Clause count per source type
	Attribution int                `json:"attribution"`         // Clauses anchored by an attribution verb
	Epistemic   int                `json:"epistemic"`           // Clauses anchored by an epistemic verb
	Inherited   int                `json:"inherited"`           // Clauses that inherited their source
	Sources     int                `json:"sources"`             // Distinct concrete source texts
	Lexical     LexicalCounts      `json:"lexical"`             // Document-level lexicon hits
}

// Score represents the transparent sourcing-quality breakdown.
type Score struct {
	Index      int      `json:"index"`      // Overall sourcing index (0-100)
	Confidence string   `json:"confidence"` // "low", "medium", "high"
	Signals    []Signal `json:"signals"`    // Diagnostic signals with transparent data
}

// Signal is one diagnostic observation with the data that produced it.
type Signal struct {
	Type        SignalType     `json:"type"`
	Severity    SignalSeverity `json:"severity"`
	Description string         `json:"description"`
	Data        map[string]any `json:"data,omitempty"` // Inputs and formula, for reproducibility
}

// SignalType classifies a diagnostic signal.
type SignalType string

const (
	SignalAttributionCoverage SignalType = "attribution_coverage" // Share of clauses with a concrete source
	SignalSourceDiversity     SignalType = "source_diversity"     // Distinct sources among attributed clauses
	SignalCertaintyBalance    SignalType = "certainty_balance"    // Hedging vs. high-certainty wording
	SignalPassiveVoice        SignalType = "passive_voice"        // Share of subjectless passive clauses
	SignalUnattributedDensity SignalType = "unattributed_density" // Journalist-voice clause share
	SignalInheritedShare      SignalType = "inherited_share"      // Clauses relying on inherited sources
	SignalSingleSourcing      SignalType = "single_sourcing"      // One source carries the whole document
)

// SignalSeverity indicates the importance of a signal.
type SignalSeverity string

const (
	SeverityInfo     SignalSeverity = "info"
	SeverityWarning  SignalSeverity = "warning"
	SeverityCritical SignalSeverity = "critical"
)

// LLMSummary contains an optional LLM-generated summary of the report.
// It never affects extracted features or the score and is clearly separated.
type LLMSummary struct {
	Enabled       bool     `json:"enabled"`
	Provider      string   `json:"provider,omitempty"`
	Model         string   `json:"model,omitempty"`
	StrictSources bool     `json:"strict_sources"` // Whether source-allowlist enforcement was on
	SummaryMD     string   `json:"summary_md,omitempty"`
	Warnings      []string `json:"warnings,omitempty"`
}
