package annotate

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/hearsay-nlp/hearsay/internal/cache"
	"github.com/hearsay-nlp/hearsay/internal/model"
	"github.com/hearsay-nlp/hearsay/internal/worker"
)

// HTTPProvider is a client for an annotation service speaking a small
// JSON protocol: POST /annotate {text, model} returns the annotated
// document. Responses are cached by content hash (annotating a long
// article through a transformer pipeline is the most expensive step of an
// analysis) and requests are rate-limited per host.
type HTTPProvider struct {
	baseURL  string
	model    string
	client   *http.Client
	maxBytes int64
	limiter  *worker.Limiter
	store    cache.Cache
	cacheTTL time.Duration
}

type annotateRequest struct {
	Text  string `json:"text"`
	Model string `json:"model,omitempty"`
}

// NewHTTPProvider creates a client for the service at cfg.BaseURL.
// A nil store disables response caching.
func NewHTTPProvider(cfg model.AnnotateConfig, store cache.Cache) (*HTTPProvider, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("annotation service base URL is required")
	}

	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 90 * time.Second
	}
	maxBytes := cfg.MaxBodyBytes
	if maxBytes <= 0 {
		maxBytes = 64_000_000
	}
	rps := cfg.RequestsPerSecond
	if rps <= 0 {
		rps = 4
	}

	return &HTTPProvider{
		baseURL:  strings.TrimSuffix(cfg.BaseURL, "/"),
		model:    cfg.Model,
		client:   &http.Client{Timeout: timeout},
		maxBytes: maxBytes,
		limiter:  worker.NewLimiter(rps, cfg.Burst),
		store:    store,
		cacheTTL: 0, // store defaults
	}, nil
}

// Name returns the provider name.
func (p *HTTPProvider) Name() string {
	return "http"
}

// Ping checks the service health endpoint.
func (p *HTTPProvider) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL+"/healthz", nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	resp, err := p.client.Do(req)
	if err != nil {
		return fmt.Errorf("annotation service unreachable: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("annotation service unhealthy: %s", resp.Status)
	}
	return nil
}

// Annotate sends text to the service and returns the normalized document.
// Identical text against the same service and model is served from cache.
func (p *HTTPProvider) Annotate(ctx context.Context, text string) (*model.Document, error) {
	key := cache.Key(p.baseURL + "|" + p.model + "|" + text)
	if p.store != nil {
		if data, ok := p.store.Get(key); ok {
			doc, err := Decode(bytes.NewReader(data))
			if err == nil {
				return doc, nil
			}
			// A corrupt entry falls through to a fresh request.
			_ = p.store.Delete(key)
		}
	}

	if err := p.limiter.Wait(ctx, p.baseURL); err != nil {
		return nil, err
	}

	body, err := json.Marshal(annotateRequest{Text: text, Model: p.model})
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/annotate", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("annotate: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(io.LimitReader(resp.Body, p.maxBytes))
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("annotation service error (%d): %s", resp.StatusCode, truncate(string(data), 200))
	}

	doc, err := Decode(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}

	if p.store != nil {
		_ = p.store.Set(key, data, p.cacheTTL)
	}
	return doc, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
