// Package util holds shared HTTP plumbing for the outbound clients:
// robots.txt gating and proxy resolution.
package util

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/temoto/robotstxt"
)

// RobotsGate answers whether a URL may be fetched under the site's
// robots.txt. Rules are fetched once per host and cached for the life of
// the gate. An unreachable robots.txt allows everything: the gate is a
// courtesy, not a security boundary.
type RobotsGate struct {
	mu     sync.RWMutex
	rules  map[string]*robotstxt.RobotsData
	client *http.Client
	agent  string
}

// NewRobotsGate creates a gate identifying itself with the given
// User-Agent when fetching robots.txt files.
func NewRobotsGate(agent string, timeout time.Duration) *RobotsGate {
	return &RobotsGate{
		rules:  make(map[string]*robotstxt.RobotsData),
		client: &http.Client{Timeout: timeout},
		agent:  agent,
	}
}

// Allow reports whether the URL may be fetched, plus the host's requested
// crawl delay. Fetch or parse failures for robots.txt itself allow the URL
// with no delay.
func (g *RobotsGate) Allow(ctx context.Context, rawURL string) (bool, time.Duration, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return false, 0, fmt.Errorf("parse URL: %w", err)
	}

	rules, err := g.rulesFor(ctx, parsed.Scheme, parsed.Host)
	if err != nil {
		return true, 0, nil
	}

	allowed := rules.TestAgent(parsed.Path, g.agent)

	var delay time.Duration
	if group := rules.FindGroup(g.agent); group != nil {
		delay = group.CrawlDelay
	}
	return allowed, delay, nil
}

// rulesFor returns the host's cached rules, fetching them on first use.
func (g *RobotsGate) rulesFor(ctx context.Context, scheme, host string) (*robotstxt.RobotsData, error) {
	g.mu.RLock()
	rules, ok := g.rules[host]
	g.mu.RUnlock()
	if ok {
		return rules, nil
	}

	robotsURL := fmt.Sprintf("%s://%s/robots.txt", scheme, host)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, robotsURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", g.agent)

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch robots.txt: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	// A missing robots.txt permits everything; cache that verdict too.
	rules, err = robotstxt.FromResponse(resp)
	if err != nil {
		return nil, fmt.Errorf("parse robots.txt: %w", err)
	}

	g.mu.Lock()
	g.rules[host] = rules
	g.mu.Unlock()
	return rules, nil
}

// Reset drops all cached rules.
func (g *RobotsGate) Reset() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.rules = make(map[string]*robotstxt.RobotsData)
}

// AgentToken reduces a full User-Agent string ("Hearsay/0.1 (+https://...)")
// to the product token robots.txt groups match on ("Hearsay").
func AgentToken(ua string) string {
	fields := strings.Fields(ua)
	if len(fields) == 0 {
		return ua
	}
	return strings.Split(fields[0], "/")[0]
}
