package crawler

import (
	"bytes"
	"net/url"
	"sort"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// LinkExtractor parses an HTML document and yields the normalized,
// filter-passed URLs it links to. Parsing is permissive: a malformed tag
// or href skips only that link, and a document that cannot be parsed at
// all yields no links.
type LinkExtractor struct {
	filter *Filter
}

// NewLinkExtractor builds an extractor that admits links through filter.
func NewLinkExtractor(filter *Filter) *LinkExtractor {
	return &LinkExtractor{filter: filter}
}

// Extract resolves every non-empty href on anchor and link elements
// against pageURL, normalizes it, and keeps it if the filter accepts it.
// Duplicates within the page collapse to one entry; results are sorted
// for determinism.
func (e *LinkExtractor) Extract(body []byte, pageURL string) []string {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil
	}
	base, err := url.Parse(pageURL)
	if err != nil {
		return nil
	}

	found := make(map[string]struct{})
	doc.Find("a[href], link[href]").Each(func(_ int, s *goquery.Selection) {
		href := strings.TrimSpace(s.AttrOr("href", ""))
		if href == "" {
			return
		}
		ref, err := url.Parse(href)
		if err != nil {
			return
		}
		normalized := NormalizeURL(base.ResolveReference(ref).String())
		if e.filter.Allow(normalized) {
			found[normalized] = struct{}{}
		}
	})

	links := make([]string, 0, len(found))
	for link := range found {
		links = append(links, link)
	}
	sort.Strings(links)
	return links
}
