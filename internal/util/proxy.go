package util

import (
	"net/http"
	"net/url"
	"strings"
)

// NewProxyFunc builds the proxy resolver for an outbound HTTP transport.
// Explicit proxy URLs win over the environment; hosts matching an entry in
// the comma-separated noProxy list connect directly.
func NewProxyFunc(httpProxy, httpsProxy, noProxy string) func(*http.Request) (*url.URL, error) {
	if httpProxy == "" && httpsProxy == "" {
		return http.ProxyFromEnvironment
	}

	skip := splitHosts(noProxy)

	return func(req *http.Request) (*url.URL, error) {
		if hostMatches(req.URL.Hostname(), skip) {
			return nil, nil
		}
		if req.URL.Scheme == "https" && httpsProxy != "" {
			return url.Parse(httpsProxy)
		}
		if httpProxy != "" {
			return url.Parse(httpProxy)
		}
		return http.ProxyFromEnvironment(req)
	}
}

func splitHosts(list string) []string {
	var hosts []string
	for _, h := range strings.Split(list, ",") {
		h = strings.TrimSpace(h)
		if h != "" {
			hosts = append(hosts, strings.ToLower(h))
		}
	}
	return hosts
}

// hostMatches reports whether host equals an entry or is a subdomain of a
// ".suffix" entry.
func hostMatches(host string, entries []string) bool {
	host = strings.ToLower(host)
	for _, e := range entries {
		if host == e || host == strings.TrimPrefix(e, ".") {
			return true
		}
		if strings.HasPrefix(e, ".") && strings.HasSuffix(host, e) {
			return true
		}
	}
	return false
}
