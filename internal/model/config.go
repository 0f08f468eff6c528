package model

import "time"

// Config is the complete hearsay configuration. Values resolve from CLI
// flags, then HEARSAY_* environment variables, then the config file, then
// these defaults.
type Config struct {
	Annotate    AnnotateConfig    `yaml:"annotate" json:"annotate"`
	HTTP        HTTPConfig        `yaml:"http" json:"http"`
	Cache       CacheConfig       `yaml:"cache" json:"cache"`
	Lexicons    LexiconConfig     `yaml:"lexicons" json:"lexicons"`
	Embedding   EmbeddingConfig   `yaml:"embedding" json:"embedding"`
	Concurrency ConcurrencyConfig `yaml:"concurrency" json:"concurrency"`
	Output      OutputConfig      `yaml:"output" json:"output"`
	LLM         LLMConfig         `yaml:"llm" json:"llm"`
}

// AnnotateConfig configures the external annotation service client.
type AnnotateConfig struct {
	Provider          string        `yaml:"provider" json:"provider"` // "http" or "" (offline: pre-annotated input only)
	BaseURL           string        `yaml:"base_url" json:"base_url"`
	Model             string        `yaml:"model" json:"model"` // Model name forwarded to the service
	Timeout           time.Duration `yaml:"timeout" json:"timeout"`
	MaxBodyBytes      int64         `yaml:"max_body_bytes" json:"max_body_bytes"`
	RequestsPerSecond float64       `yaml:"requests_per_second" json:"requests_per_second"`
	Burst             int           `yaml:"burst" json:"burst"`
}

// HTTPConfig configures article fetching.
type HTTPConfig struct {
	Timeout       time.Duration `yaml:"timeout" json:"timeout"`
	UserAgent     string        `yaml:"user_agent" json:"user_agent"`
	MaxBodyBytes  int64         `yaml:"max_body_bytes" json:"max_body_bytes"`
	InsecureTLS   bool          `yaml:"insecure_tls" json:"insecure_tls"`
	RespectRobots bool          `yaml:"respect_robots" json:"respect_robots"`
	HTTPProxy     string        `yaml:"http_proxy" json:"http_proxy"`
	HTTPSProxy    string        `yaml:"https_proxy" json:"https_proxy"`
	NoProxy       string        `yaml:"no_proxy" json:"no_proxy"`
}

// CacheConfig configures the annotation response cache.
type CacheConfig struct {
	Enabled   bool          `yaml:"enabled" json:"enabled"`
	Dir       string        `yaml:"dir" json:"dir"` // Disk layer location; empty disables the disk layer
	MemoryTTL time.Duration `yaml:"memory_ttl" json:"memory_ttl"`
	DiskTTL   time.Duration `yaml:"disk_ttl" json:"disk_ttl"`
}

// LexiconConfig locates the stance lexicon files.
type LexiconConfig struct {
	Dir string `yaml:"dir" json:"dir"` // Directory with the eight lexicon files; empty means all-empty lexicons
}

// EmbeddingConfig configures span pooling.
type EmbeddingConfig struct {
	Dim int `yaml:"dim" json:"dim"` // Embedding dimension; 768 when unset
}

// ConcurrencyConfig bounds parallel work.
type ConcurrencyConfig struct {
	Workers int `yaml:"workers" json:"workers"` // Batch analysis workers
}

// OutputConfig controls rendering.
type OutputConfig struct {
	Verbose         bool `yaml:"verbose" json:"verbose"`
	IncludeFeatures bool `yaml:"include_features" json:"include_features"` // Emit assembled vectors in reports
	IncludeFooter   bool `yaml:"include_footer" json:"include_footer"`     // Footer in Markdown reports
}

// LLMConfig configures the optional report summarizer.
type LLMConfig struct {
	Provider      string `yaml:"provider" json:"provider"` // openai, anthropic, ollama, or "" (disabled)
	Model         string `yaml:"model" json:"model"`
	APIKey        string `yaml:"api_key" json:"-"` // Never serialized into reports
	BaseURL       string `yaml:"base_url" json:"base_url"`
	Timeout       int    `yaml:"timeout" json:"timeout"` // Seconds
	StrictSources bool   `yaml:"strict_sources" json:"strict_sources"`
	MaxTokens     int    `yaml:"max_tokens" json:"max_tokens"`
	HTTPProxy     string `yaml:"http_proxy" json:"http_proxy"`
	HTTPSProxy    string `yaml:"https_proxy" json:"https_proxy"`
	NoProxy       string `yaml:"no_proxy" json:"no_proxy"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		Annotate: AnnotateConfig{
			Provider:          "http",
			BaseURL:           "http://localhost:8090",
			Model:             "en_core_web_trf",
			Timeout:           90 * time.Second,
			MaxBodyBytes:      64_000_000, // Token embeddings make annotation payloads large
			RequestsPerSecond: 4,
			Burst:             2,
		},
		HTTP: HTTPConfig{
			Timeout:       2 * time.Minute,
			UserAgent:     "Hearsay/0.1 (+https://github.com/hearsay-nlp/hearsay)",
			MaxBodyBytes:  2_000_000,
			RespectRobots: true,
		},
		Cache: CacheConfig{
			Enabled:   true,
			MemoryTTL: 30 * time.Minute,
			DiskTTL:   7 * 24 * time.Hour,
		},
		Lexicons: LexiconConfig{
			Dir: "lexicons",
		},
		Embedding: EmbeddingConfig{
			Dim: 768,
		},
		Concurrency: ConcurrencyConfig{
			Workers: 4,
		},
		Output: OutputConfig{
			IncludeFooter: true,
		},
		LLM: LLMConfig{
			Provider:      "", // Disabled by default
			Timeout:       30,
			StrictSources: true,
			MaxTokens:     1000,
		},
	}
}
