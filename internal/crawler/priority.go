package crawler

import (
	"net/url"
	"strings"
)

// Priority tiers assigned by the classifier.
const (
	PriorityTop      = 1.0
	PriorityHigh     = 0.80
	PriorityMedium   = 0.64
	PriorityStandard = 0.51
	PriorityLow      = 0.41
)

// Rules parameterizes the classifier. The defaults describe the site the
// tool was originally tuned for; overriding the path lists retargets the
// scoring without touching the tier ordering.
type Rules struct {
	// HubPaths are whole-site landing sections scored 1.0 on exact match
	// (with or without a trailing slash).
	HubPaths []string
	// HubSegments are substrings that mark a page as a landing section
	// wherever they appear in the path.
	HubSegments []string
	// ProductPaths are conversion-focused marketing/product markers.
	ProductPaths []string
	// BlogCategories are the top-level blog category pages.
	BlogCategories []string
	// GuideSections are high-value reference subsections under the docs root.
	GuideSections []string
	// QuickstartSections are quickstart and installation-guide subtrees.
	QuickstartSections []string
	// ConceptSections are concept/explainer/operation-guide subtrees,
	// scored only outside the legacy-versioned docs.
	ConceptSections []string
	// AppSections are application-development guide subtrees.
	AppSections []string
	// CatchAllExcludes keeps the docs catch-all from claiming paths that
	// belong to the marketing or blog rules.
	CatchAllExcludes []string
	// LegacyLowSegments are the glossary/reference/tag markers that push a
	// legacy-versioned page down to the lowest tier.
	LegacyLowSegments []string

	DocsRoot       string
	BlogRoot       string
	LegacyRoot     string
	BlogTagSegment string
	DocsTagSegment string
	// DepthThreshold is the number of path separators beyond which a page
	// counts as deeply nested.
	DepthThreshold int
}

// DefaultRules returns the built-in ruleset.
func DefaultRules() Rules {
	return Rules{
		HubPaths:    []string{"/docs", "/blog"},
		HubSegments: []string{"/gittogether"},
		ProductPaths: []string{
			"/pricing", "/api-testing", "/integration-testing",
			"/unit-test-generator", "/contract-testing",
			"/ai-code-generation", "/test-case-generator",
			"/test-data-generator", "/code-coverage",
			"/continuous-integration-testing", "/devscribe",
		},
		BlogCategories: []string{"/blog/technology", "/blog/community"},
		GuideSections: []string{
			"/docs/running-keploy/", "/docs/ci-cd/",
			"/docs/dependencies/", "/docs/keploy-cloud/",
			"/docs/security",
		},
		QuickstartSections: []string{
			"/docs/quickstart/",
			"/docs/server/installation/",
			"/docs/server/sdk-installation/",
		},
		ConceptSections: []string{
			"/docs/concepts/", "/docs/keploy-explained/", "/docs/operation/",
		},
		AppSections: []string{"/docs/application-development/"},
		CatchAllExcludes: []string{
			"/blog", "/pricing", "/api-testing",
			"/integration-testing", "/unit-test-generator",
		},
		LegacyLowSegments: []string{"/glossary/", "/reference/", "/tags/"},
		DocsRoot:          "/docs",
		BlogRoot:          "/blog",
		LegacyRoot:        "/docs/1.0.0",
		BlogTagSegment:    "/blog/tag/",
		DocsTagSegment:    "/docs/tags/",
		DepthThreshold:    5,
	}
}

// Classifier maps a normalized URL to an importance score in [0,1] via an
// ordered, first-match-wins rule list. Ordering is load-bearing: the rules
// overlap, and a deep blog post must be claimed by the blog-post tier
// before the nesting-depth tier can see it.
type Classifier struct {
	rules Rules
}

// NewClassifier builds a Classifier from the given ruleset.
func NewClassifier(rules Rules) *Classifier {
	return &Classifier{rules: rules}
}

// Score returns the priority for a normalized URL. It is a pure function:
// the same URL always yields the same score for one ruleset.
func (c *Classifier) Score(rawURL string) float64 {
	u, err := url.Parse(rawURL)
	if err != nil {
		return PriorityStandard
	}
	path := strings.ToLower(u.Path)
	r := c.rules

	// Tier 1: homepage and whole-site landing sections.
	if path == "/" || path == "" {
		return PriorityTop
	}
	for _, hub := range r.HubPaths {
		if path == hub || path == hub+"/" {
			return PriorityTop
		}
	}
	if containsAny(path, r.HubSegments) {
		return PriorityTop
	}

	// Tier 2a: product pages, blog categories, core docs guides.
	if containsAny(path, r.ProductPaths) {
		return PriorityHigh
	}
	if c.isBlogCategory(path) {
		return PriorityHigh
	}
	if containsAny(path, r.GuideSections) {
		return PriorityHigh
	}

	// Tier 2b: quickstarts, installation guides, blog tag listings.
	if containsAny(path, r.QuickstartSections) {
		return PriorityMedium
	}
	if strings.Contains(path, r.BlogTagSegment) {
		return PriorityMedium
	}

	legacy := strings.Contains(path, r.LegacyRoot)

	// Tier 3: concept pages, app guides, blog posts, current docs.
	if !legacy && containsAny(path, r.ConceptSections) {
		return PriorityStandard
	}
	if containsAny(path, r.AppSections) {
		return PriorityStandard
	}
	if c.isBlogPost(path) {
		return PriorityStandard
	}
	if strings.Contains(path, r.DocsRoot+"/") && !legacy &&
		!containsAny(path, r.CatchAllExcludes) {
		return PriorityStandard
	}

	// Tier 4: legacy-versioned docs, tag collections, deep nesting.
	if strings.Contains(path, r.LegacyRoot+"/") {
		if containsAny(path, r.LegacyLowSegments) {
			return PriorityLow
		}
		return PriorityStandard
	}
	if strings.Contains(path, r.DocsTagSegment) ||
		strings.Contains(path, r.LegacyRoot+"/tags/") {
		return PriorityLow
	}
	if strings.Count(path, "/") > r.DepthThreshold {
		return PriorityLow
	}

	return PriorityStandard
}

// isBlogCategory matches the top-level blog category pages: the configured
// ones plus any path with exactly two separators under the blog root,
// which excludes tag listings and individual posts.
func (c *Classifier) isBlogCategory(path string) bool {
	for _, cat := range c.rules.BlogCategories {
		if path == cat {
			return true
		}
	}
	return strings.HasPrefix(path, c.rules.BlogRoot+"/") && strings.Count(path, "/") == 2
}

// isBlogPost matches individual long-form posts inside a blog category,
// excluding tag listings.
func (c *Classifier) isBlogPost(path string) bool {
	if strings.Contains(path, c.rules.BlogTagSegment) {
		return false
	}
	for _, cat := range c.rules.BlogCategories {
		if strings.Contains(path, cat+"/") {
			return true
		}
	}
	return false
}

func containsAny(path string, patterns []string) bool {
	for _, p := range patterns {
		if strings.Contains(path, p) {
			return true
		}
	}
	return false
}
