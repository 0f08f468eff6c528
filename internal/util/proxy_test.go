package util

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func request(t *testing.T, rawURL string) *http.Request {
	t.Helper()
	req, err := http.NewRequest(http.MethodGet, rawURL, nil)
	if err != nil {
		t.Fatalf("build request: %v", err)
	}
	return req
}

func TestNewProxyFunc_SchemeSelection(t *testing.T) {
	proxy := NewProxyFunc("http://proxy-a:3128", "http://proxy-b:3129", "")

	got, err := proxy(request(t, "http://example.com/page"))
	if err != nil {
		t.Fatalf("proxy func failed: %v", err)
	}
	if got == nil || got.Host != "proxy-a:3128" {
		t.Errorf("http request proxied via %v, want proxy-a:3128", got)
	}

	got, err = proxy(request(t, "https://example.com/page"))
	if err != nil {
		t.Fatalf("proxy func failed: %v", err)
	}
	if got == nil || got.Host != "proxy-b:3129" {
		t.Errorf("https request proxied via %v, want proxy-b:3129", got)
	}
}

// With only an HTTP proxy configured, HTTPS requests use it too.
func TestNewProxyFunc_HTTPFallbackForHTTPS(t *testing.T) {
	proxy := NewProxyFunc("http://proxy-a:3128", "", "")

	got, err := proxy(request(t, "https://example.com/page"))
	if err != nil {
		t.Fatalf("proxy func failed: %v", err)
	}
	if got == nil || got.Host != "proxy-a:3128" {
		t.Errorf("https request proxied via %v, want proxy-a:3128", got)
	}
}

func TestNewProxyFunc_NoProxyList(t *testing.T) {
	proxy := NewProxyFunc("http://proxy-a:3128", "", "internal.example.com, .corp.example.org")

	tests := []struct {
		url    string
		direct bool
	}{
		{"http://internal.example.com/x", true},
		{"http://INTERNAL.example.com/x", true}, // host matching is case-insensitive
		{"http://corp.example.org/x", true},     // ".suffix" matches the bare domain
		{"http://svc.corp.example.org/x", true}, // and its subdomains
		{"http://external.example.com/x", false},
		{"http://example.org/x", false},
	}
	for _, tt := range tests {
		got, err := proxy(request(t, tt.url))
		if err != nil {
			t.Fatalf("%s: proxy func failed: %v", tt.url, err)
		}
		if tt.direct && got != nil {
			t.Errorf("%s: proxied via %v, want direct", tt.url, got)
		}
		if !tt.direct && got == nil {
			t.Errorf("%s: direct, want proxied", tt.url)
		}
	}
}

func TestAgentToken(t *testing.T) {
	tests := []struct {
		ua   string
		want string
	}{
		{"Hearsay/0.1 (+https://github.com/hearsay-nlp/hearsay)", "Hearsay"},
		{"Hearsay/0.1", "Hearsay"},
		{"Hearsay", "Hearsay"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := AgentToken(tt.ua); got != tt.want {
			t.Errorf("AgentToken(%q) = %q, want %q", tt.ua, got, tt.want)
		}
	}
}

func TestRobotsGate_DisallowedPath(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/robots.txt" {
			_, _ = w.Write([]byte("User-agent: *\nDisallow: /private/\nCrawl-delay: 2\n"))
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	gate := NewRobotsGate("Hearsay", 0)

	allowed, delay, err := gate.Allow(context.Background(), srv.URL+"/private/report")
	if err != nil {
		t.Fatalf("Allow failed: %v", err)
	}
	if allowed {
		t.Error("disallowed path reported as allowed")
	}
	if delay != 2*time.Second {
		t.Errorf("crawl delay = %v, want 2s", delay)
	}

	allowed, _, err = gate.Allow(context.Background(), srv.URL+"/public/report")
	if err != nil {
		t.Fatalf("Allow failed: %v", err)
	}
	if !allowed {
		t.Error("public path reported as disallowed")
	}
}

// The rules fetch happens once per host; later calls hit the cache.
func TestRobotsGate_CachesPerHost(t *testing.T) {
	fetches := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/robots.txt" {
			fetches++
			_, _ = w.Write([]byte("User-agent: *\nAllow: /\n"))
		}
	}))
	defer srv.Close()

	gate := NewRobotsGate("Hearsay", 0)
	for i := 0; i < 3; i++ {
		if _, _, err := gate.Allow(context.Background(), srv.URL+"/page"); err != nil {
			t.Fatalf("Allow failed: %v", err)
		}
	}
	if fetches != 1 {
		t.Errorf("robots.txt fetched %d times, want 1", fetches)
	}

	gate.Reset()
	if _, _, err := gate.Allow(context.Background(), srv.URL+"/page"); err != nil {
		t.Fatalf("Allow failed: %v", err)
	}
	if fetches != 2 {
		t.Errorf("robots.txt fetched %d times after Reset, want 2", fetches)
	}
}

// An unreachable robots server is permissive.
func TestRobotsGate_UnreachableAllows(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connection refused from here on

	gate := NewRobotsGate("Hearsay", 0)
	allowed, delay, err := gate.Allow(context.Background(), srv.URL+"/anything")
	if err != nil {
		t.Fatalf("Allow failed: %v", err)
	}
	if !allowed || delay != 0 {
		t.Errorf("unreachable robots.txt: allowed=%v delay=%v, want true/0", allowed, delay)
	}
}

func TestRobotsGate_BadURL(t *testing.T) {
	gate := NewRobotsGate("Hearsay", 0)
	if _, _, err := gate.Allow(context.Background(), "://not-a-url"); err == nil {
		t.Error("expected error for unparseable URL")
	}
}
