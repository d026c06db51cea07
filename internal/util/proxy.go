// Package util holds small shared helpers with no domain knowledge.
package util

import (
	"net/http"
	"net/url"
	"strings"
)

// NewProxyFunc builds the proxy selector for outbound HTTP. Explicit
// settings win over the standard environment variables; hosts on the
// no-proxy list always connect directly. Corporate networks between us
// and the insight service are the reason this is configurable at all.
func NewProxyFunc(httpProxy, httpsProxy, noProxy string) func(*http.Request) (*url.URL, error) {
	if httpProxy == "" && httpsProxy == "" {
		return http.ProxyFromEnvironment
	}

	skip := parseNoProxy(noProxy)

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

// parseNoProxy splits the comma-separated no-proxy list.
func parseNoProxy(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(strings.ToLower(part))
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

// hostMatches reports whether host equals an entry or falls under a
// domain-suffix entry (".example.com" or "example.com" both cover
// "api.example.com").
func hostMatches(host string, entries []string) bool {
	host = strings.ToLower(host)
	for _, e := range entries {
		if host == strings.TrimPrefix(e, ".") {
			return true
		}
		suffix := e
		if !strings.HasPrefix(suffix, ".") {
			suffix = "." + suffix
		}
		if strings.HasSuffix(host, suffix) {
			return true
		}
	}
	return false
}
