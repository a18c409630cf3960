package crawler

import (
	"fmt"
	"net/url"
	"strings"
)

// DefaultExcludePatterns returns the stock exclusion list: binary and
// media file extensions plus path markers for pages that never belong in
// a sitemap.
func DefaultExcludePatterns() []string {
	return []string{
		".pdf", ".jpg", ".png", ".gif", ".zip",
		".svg",
		".webp", ".ico", ".ttf", ".woff",
		".jpeg", ".mp4", ".mp3", ".mov",
		"/search", "/login", "/admin",
	}
}

// Filter decides whether a normalized URL is eligible for crawling. A URL
// passes only if its host equals the configured domain's host exactly and
// the lowercased URL contains none of the exclusion patterns.
//
// Patterns match as plain substrings, not path segments, so a pattern can
// fire inside an unrelated token (".zip" also skips "/zip-codes"). That
// imprecision is deliberate and covered by tests.
type Filter struct {
	host     string
	patterns []string
}

// NewFilter builds a Filter bounded to the given domain. Patterns are
// lowercased once up front.
func NewFilter(domain string, patterns []string) (*Filter, error) {
	u, err := url.Parse(domain)
	if err != nil {
		return nil, fmt.Errorf("parse domain: %w", err)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("domain %q has no host", domain)
	}
	lowered := make([]string, 0, len(patterns))
	for _, p := range patterns {
		p = strings.ToLower(strings.TrimSpace(p))
		if p != "" {
			lowered = append(lowered, p)
		}
	}
	return &Filter{host: u.Host, patterns: lowered}, nil
}

// Allow reports whether rawURL should be crawled. The caller is expected
// to normalize first; Allow does not normalize internally.
func (f *Filter) Allow(rawURL string) bool {
	u, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	if u.Host != f.host {
		return false
	}
	lowered := strings.ToLower(rawURL)
	for _, p := range f.patterns {
		if strings.Contains(lowered, p) {
			return false
		}
	}
	return true
}
