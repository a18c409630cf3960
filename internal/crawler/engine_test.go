package crawler

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// stubFetcher serves an in-memory site graph and counts fetches per URL.
type stubFetcher struct {
	mu          sync.Mutex
	pages       map[string]string
	counts      map[string]int
	delay       time.Duration
	inFlight    int
	maxInFlight int
}

func newStubFetcher(pages map[string]string) *stubFetcher {
	return &stubFetcher{
		pages:  pages,
		counts: make(map[string]int),
	}
}

func (f *stubFetcher) Fetch(_ context.Context, rawURL string) ([]byte, error) {
	f.mu.Lock()
	f.counts[rawURL]++
	f.inFlight++
	if f.inFlight > f.maxInFlight {
		f.maxInFlight = f.inFlight
	}
	body, ok := f.pages[rawURL]
	f.mu.Unlock()

	if f.delay > 0 {
		time.Sleep(f.delay)
	}

	f.mu.Lock()
	f.inFlight--
	f.mu.Unlock()

	if !ok {
		return nil, fmt.Errorf("%w: not served", ErrNoContent)
	}
	return []byte(body), nil
}

func (f *stubFetcher) count(rawURL string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.counts[rawURL]
}

// stubRecorder collects PageRecords keyed by URL.
type stubRecorder struct {
	mu   sync.Mutex
	recs map[string]PageRecord
}

func newStubRecorder() *stubRecorder {
	return &stubRecorder{recs: make(map[string]PageRecord)}
}

func (r *stubRecorder) Record(rec PageRecord) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.recs[rec.URL] = rec
}

func (r *stubRecorder) urls() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	urls := make([]string, 0, len(r.recs))
	for u := range r.recs {
		urls = append(urls, u)
	}
	return urls
}

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

func newTestEngine(t *testing.T, cfg Config, fetcher Fetcher, recorder Recorder) *Engine {
	t.Helper()
	filter, err := NewFilter("https://x.io", DefaultExcludePatterns())
	require.NoError(t, err)
	return NewEngine(
		cfg,
		fetcher,
		filter,
		NewClassifier(DefaultRules()),
		recorder,
		fixedClock{now: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)},
		nil,
	)
}

func TestEngineFetchesEachURLExactlyOnce(t *testing.T) {
	t.Parallel()

	// A cycle: the homepage and /docs link to each other.
	fetcher := newStubFetcher(map[string]string{
		"https://x.io":      `<a href="/docs">docs</a>`,
		"https://x.io/docs": `<a href="/">home</a><a href="/docs">self</a>`,
	})
	recorder := newStubRecorder()

	engine := newTestEngine(t, Config{StartURL: "https://x.io", Workers: 8}, fetcher, recorder)
	engine.Run(context.Background())

	require.Equal(t, 1, fetcher.count("https://x.io"))
	require.Equal(t, 1, fetcher.count("https://x.io/docs"))
	require.ElementsMatch(t, []string{"https://x.io", "https://x.io/docs"}, recorder.urls())
}

func TestEngineTerminatesOnCyclicGraph(t *testing.T) {
	t.Parallel()

	// Every page links to every other page, including itself.
	pages := make(map[string]string, 12)
	var links strings.Builder
	for i := 0; i < 12; i++ {
		fmt.Fprintf(&links, `<a href="/page-%d">p</a>`, i)
	}
	for i := 0; i < 12; i++ {
		pages[fmt.Sprintf("https://x.io/page-%d", i)] = links.String()
	}
	pages["https://x.io"] = links.String()
	fetcher := newStubFetcher(pages)
	recorder := newStubRecorder()

	engine := newTestEngine(t, Config{StartURL: "https://x.io", Workers: 10}, fetcher, recorder)

	done := make(chan struct{})
	go func() {
		engine.Run(context.Background())
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(10 * time.Second):
		t.Fatal("crawl did not terminate on a finite cyclic graph")
	}

	require.Len(t, recorder.urls(), 13)
	for url := range pages {
		require.Equal(t, 1, fetcher.count(url), "url %s", url)
	}
}

func TestEngineAdmissionGateBoundsInFlightFetches(t *testing.T) {
	t.Parallel()

	pages := map[string]string{}
	var links strings.Builder
	for i := 0; i < 30; i++ {
		url := fmt.Sprintf("https://x.io/p%d", i)
		pages[url] = "<p>leaf</p>"
		fmt.Fprintf(&links, `<a href="/p%d">p</a>`, i)
	}
	pages["https://x.io"] = links.String()
	fetcher := newStubFetcher(pages)
	fetcher.delay = 20 * time.Millisecond
	recorder := newStubRecorder()

	engine := newTestEngine(t,
		Config{StartURL: "https://x.io", Workers: 10, MaxInFlight: 2},
		fetcher, recorder,
	)
	engine.Run(context.Background())

	require.Len(t, recorder.urls(), 31)
	require.LessOrEqual(t, fetcher.maxInFlight, 2,
		"the admission gate, not the worker count, bounds open fetches")
}

func TestEngineDiscardsFailedFetches(t *testing.T) {
	t.Parallel()

	// /missing is linked but not served: it must be claimed, discarded,
	// and never recorded, without disturbing the rest of the crawl.
	fetcher := newStubFetcher(map[string]string{
		"https://x.io":      `<a href="/missing">gone</a><a href="/docs">docs</a>`,
		"https://x.io/docs": "<p>leaf</p>",
	})
	recorder := newStubRecorder()

	engine := newTestEngine(t, Config{StartURL: "https://x.io", Workers: 4}, fetcher, recorder)
	engine.Run(context.Background())

	require.Equal(t, 1, fetcher.count("https://x.io/missing"))
	require.ElementsMatch(t, []string{"https://x.io", "https://x.io/docs"}, recorder.urls())
	require.Equal(t, int64(3), engine.Visited(), "failed URLs still count as visited")
}

func TestEngineTotalOutageYieldsEmptyStore(t *testing.T) {
	t.Parallel()

	fetcher := newStubFetcher(nil)
	recorder := newStubRecorder()

	engine := newTestEngine(t, Config{StartURL: "https://x.io", Workers: 4}, fetcher, recorder)
	engine.Run(context.Background())

	require.Empty(t, recorder.urls())
}

func TestEngineEndToEndGraph(t *testing.T) {
	t.Parallel()

	fetcher := newStubFetcher(map[string]string{
		"https://x.io":            `<a href="/docs">docs</a><a href="/about.pdf">pdf</a>`,
		"https://x.io/docs":       `<a href="/">home</a><a href="/docs/guide">guide</a>`,
		"https://x.io/docs/guide": "<p>no links</p>",
		"https://x.io/about.pdf":  "should never be fetched",
	})
	recorder := newStubRecorder()

	engine := newTestEngine(t, Config{StartURL: "https://x.io", Workers: 10}, fetcher, recorder)
	engine.Run(context.Background())

	require.ElementsMatch(t,
		[]string{"https://x.io", "https://x.io/docs", "https://x.io/docs/guide"},
		recorder.urls(),
	)
	require.Zero(t, fetcher.count("https://x.io/about.pdf"), "excluded URL must never be fetched")

	wantPriorities := map[string]float64{
		"https://x.io":            PriorityTop,
		"https://x.io/docs":       PriorityTop,
		"https://x.io/docs/guide": PriorityStandard,
	}
	wantMod := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	for url, want := range wantPriorities {
		rec, ok := recorder.recs[url]
		require.True(t, ok, "missing record for %s", url)
		require.InDelta(t, want, rec.Priority, 1e-9)
		require.True(t, rec.LastMod.Equal(wantMod))
	}
}

func TestEngineNormalizesStartURL(t *testing.T) {
	t.Parallel()

	fetcher := newStubFetcher(map[string]string{
		"https://x.io/docs": "<p>leaf</p>",
	})
	recorder := newStubRecorder()

	engine := newTestEngine(t,
		Config{StartURL: "https://x.io/docs/?utm_source=mail#top", Workers: 2},
		fetcher, recorder,
	)
	engine.Run(context.Background())

	require.ElementsMatch(t, []string{"https://x.io/docs"}, recorder.urls())
}
