package crawler

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func newTestExtractor(t *testing.T) *LinkExtractor {
	t.Helper()
	f, err := NewFilter("https://x.io", DefaultExcludePatterns())
	require.NoError(t, err)
	return NewLinkExtractor(f)
}

func TestExtractResolvesLinkForms(t *testing.T) {
	t.Parallel()

	e := newTestExtractor(t)
	body := []byte(`<html><body>
		<a href="/docs">absolute path</a>
		<a href="guide">relative</a>
		<a href="https://x.io/blog">absolute</a>
		<a href="//x.io/pricing">protocol relative</a>
		<link rel="canonical" href="https://x.io/docs/intro/">
	</body></html>`)

	links := e.Extract(body, "https://x.io/docs/intro")
	require.Equal(t, []string{
		"https://x.io/blog",
		"https://x.io/docs",
		"https://x.io/docs/guide",
		"https://x.io/docs/intro",
		"https://x.io/pricing",
	}, links)
}

func TestExtractFiltersAndNormalizes(t *testing.T) {
	t.Parallel()

	e := newTestExtractor(t)
	body := []byte(`<html><body>
		<a href="https://other.io/page">off domain</a>
		<a href="/report.pdf">excluded extension</a>
		<a href="/docs#section">fragment</a>
		<a href="/docs?utm_source=x">query</a>
		<a href="/docs/">trailing slash</a>
		<a href="">empty</a>
		<a>missing href</a>
	</body></html>`)

	links := e.Extract(body, "https://x.io")
	require.Equal(t, []string{"https://x.io/docs"}, links, "equivalent forms collapse to one link")
}

func TestExtractMalformedHTMLYieldsPartialResults(t *testing.T) {
	t.Parallel()

	e := newTestExtractor(t)
	body := []byte(`<html><body>
		<a href="/docs">ok</a>
		<div><span><a href="/blog">unclosed tags
		<a href="/about">also fine</a>`)

	links := e.Extract(body, "https://x.io")
	require.Equal(t, []string{
		"https://x.io/about",
		"https://x.io/blog",
		"https://x.io/docs",
	}, links)
}

func TestExtractEmptyAndGarbageBodies(t *testing.T) {
	t.Parallel()

	e := newTestExtractor(t)
	require.Empty(t, e.Extract(nil, "https://x.io"))
	require.Empty(t, e.Extract([]byte("not html at all"), "https://x.io"))
	require.Empty(t, e.Extract([]byte("<a href='/docs'>x</a>"), "://bad base"))
}
