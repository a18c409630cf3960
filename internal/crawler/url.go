package crawler

import "strings"

// NormalizeURL canonicalizes a URL string so equivalent URLs collapse to
// one identity: the fragment is cut, the query string is cut, and one
// trailing slash is stripped. Nothing else changes; percent-encoding,
// letter case, and ports are preserved. The function is idempotent.
func NormalizeURL(rawURL string) string {
	if i := strings.Index(rawURL, "#"); i >= 0 {
		rawURL = rawURL[:i]
	}
	if i := strings.Index(rawURL, "?"); i >= 0 {
		rawURL = rawURL[:i]
	}
	return strings.TrimSuffix(rawURL, "/")
}
