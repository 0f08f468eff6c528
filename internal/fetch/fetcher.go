// Package fetch retrieves articles over HTTP and reduces them to the
// visible text the analysis pipeline runs on. Fetching is polite: robots.txt
// gating, per-host rate limiting, and bounded retry with backoff.
package fetch

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/hearsay-nlp/hearsay/internal/model"
	"github.com/hearsay-nlp/hearsay/internal/util"
	"github.com/hearsay-nlp/hearsay/internal/worker"
)

const fetchMaxRetries = 3

// fetchSleepFunc is the sleep function used between retries (injectable for tests)
var fetchSleepFunc = time.Sleep

// ErrRobotsDisallowed marks URLs the site's robots.txt asks us not to read.
var ErrRobotsDisallowed = errors.New("disallowed by robots.txt")

// Fetcher downloads article pages.
type Fetcher struct {
	client    *http.Client
	userAgent string
	maxBytes  int64
	robots    *util.RobotsGate
	limiter   *worker.Limiter
}

// New creates a Fetcher from the HTTP section of the configuration. The
// limiter may be nil when per-host rate limiting is not wanted (tests,
// single-shot analyses).
func New(cfg model.HTTPConfig, limiter *worker.Limiter) *Fetcher {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 2 * time.Minute
	}
	maxBytes := cfg.MaxBodyBytes
	if maxBytes <= 0 {
		maxBytes = 2_000_000
	}

	transport := &http.Transport{
		Proxy: util.NewProxyFunc(cfg.HTTPProxy, cfg.HTTPSProxy, cfg.NoProxy),
	}
	if cfg.InsecureTLS {
		transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true}
	}

	f := &Fetcher{
		client: &http.Client{
			Timeout:   timeout,
			Transport: transport,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 3 {
					return fmt.Errorf("stopped after 3 redirects")
				}
				return nil
			},
		},
		userAgent: cfg.UserAgent,
		maxBytes:  maxBytes,
		limiter:   limiter,
	}
	if cfg.RespectRobots {
		f.robots = util.NewRobotsGate(util.AgentToken(cfg.UserAgent), timeout)
	}
	return f
}

// FetchResult is a downloaded page reduced to what the pipeline needs.
type FetchResult struct {
	Text     string
	HTML     string
	Meta     model.FetchMeta
	Subject  string
	FinalURL string
}

// Fetch retrieves one URL. Robots rules are consulted first; a disallowed
// URL fails with ErrRobotsDisallowed and is never requested.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (*FetchResult, error) {
	var crawlDelay time.Duration
	if f.robots != nil {
		allowed, delay, err := f.robots.Allow(ctx, rawURL)
		if err != nil {
			return nil, err
		}
		if !allowed {
			return nil, fmt.Errorf("%s: %w", rawURL, ErrRobotsDisallowed)
		}
		crawlDelay = delay
	}

	if f.limiter != nil {
		if err := f.limiter.WaitWithDelay(ctx, rawURL, crawlDelay); err != nil {
			return nil, fmt.Errorf("rate limit: %w", err)
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	meta := model.FetchMeta{
		StatusCode:   resp.StatusCode,
		ContentType:  resp.Header.Get("Content-Type"),
		LastModified: resp.Header.Get("Last-Modified"),
		ETag:         resp.Header.Get("ETag"),
		Headers:      make(map[string]string),
	}
	for _, key := range []string{"Content-Length", "Server", "Cache-Control"} {
		if val := resp.Header.Get(key); val != "" {
			meta.Headers[key] = val
		}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("unexpected status: %s", resp.Status)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBytes))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}

	text, err := ExtractText(string(body))
	if err != nil {
		return nil, fmt.Errorf("extract text: %w", err)
	}

	finalURL := resp.Request.URL.String()
	return &FetchResult{
		Text:     text,
		HTML:     string(body),
		Meta:     meta,
		Subject:  extractSubject(finalURL),
		FinalURL: finalURL,
	}, nil
}

// FetchWithRetry retries Fetch on transient failures (5xx, 429, connection
// errors) with exponential backoff. Permanent failures return immediately.
func (f *Fetcher) FetchWithRetry(ctx context.Context, rawURL string) (*FetchResult, error) {
	var result *FetchResult
	var err error
	for attempt := 0; attempt < fetchMaxRetries; attempt++ {
		result, err = f.Fetch(ctx, rawURL)
		if err == nil || !isRetryableFetchError(err) {
			return result, err
		}
		if attempt < fetchMaxRetries-1 {
			fetchSleepFunc(time.Duration(1<<uint(attempt)) * time.Second)
		}
	}
	return result, err
}

// isRetryableFetchError returns true for failures worth a second attempt:
// 5xx statuses, 429 rate limiting, and transient network errors.
func isRetryableFetchError(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()

	if idx := strings.Index(msg, "unexpected status: "); idx >= 0 {
		var code int
		if _, scanErr := fmt.Sscanf(msg[idx:], "unexpected status: %d", &code); scanErr == nil {
			return code == http.StatusTooManyRequests || (code >= 500 && code < 600)
		}
	}

	s := strings.ToLower(msg)
	return strings.Contains(s, "timeout") ||
		strings.Contains(s, "connection refused") ||
		strings.Contains(s, "connection reset")
}

// extractSubject derives a human-readable subject from the URL: the last
// path segment, de-slugged and stripped of its extension.
func extractSubject(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}

	path := strings.Trim(parsed.Path, "/")
	if path == "" {
		return parsed.Host
	}

	segments := strings.Split(path, "/")
	last := segments[len(segments)-1]

	if idx := strings.LastIndex(last, "."); idx > 0 {
		last = last[:idx]
	}

	last = strings.ReplaceAll(last, "_", " ")
	last = strings.ReplaceAll(last, "-", " ")
	return last
}
