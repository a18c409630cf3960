package crawler

import (
	"context"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"
)

// Engine config defaults, matching the reference crawl profile.
const (
	DefaultWorkers     = 10
	DefaultMaxInFlight = 5
)

// Config holds the settings for a crawl session.
type Config struct {
	// StartURL seeds the frontier after normalization.
	StartURL string
	// Workers is the size of the worker pool polling the frontier.
	Workers int
	// MaxInFlight caps the number of fetches in flight at any instant,
	// independent of Workers. When smaller than Workers it is the binding
	// constraint on open sockets.
	MaxInFlight int
}

// Engine owns the frontier, the visited set, and a fixed pool of workers
// that drive the fetch/extract pipeline until the frontier drains.
//
// Per-URL lifecycle: a worker claims a URL from the frontier, marks it
// visited (the atomic dedup step), fetches it under the admission gate,
// and on HTML success records a PageRecord and enqueues unseen links.
// Fetch and parse failures are always recoverable; the engine has no
// fatal path, and a total network outage simply yields an empty store.
type Engine struct {
	cfg        Config
	fetcher    Fetcher
	extractor  *LinkExtractor
	classifier *Classifier
	recorder   Recorder
	clock      Clock
	logger     *zap.Logger

	frontier *Frontier
	visited  *visitTracker
	gate     chan struct{}
	claimed  atomic.Int64
}

// NewEngine constructs an Engine. Zero or negative pool sizes fall back to
// the defaults.
func NewEngine(
	cfg Config,
	fetcher Fetcher,
	filter *Filter,
	classifier *Classifier,
	recorder Recorder,
	clock Clock,
	logger *zap.Logger,
) *Engine {
	if cfg.Workers <= 0 {
		cfg.Workers = DefaultWorkers
	}
	if cfg.MaxInFlight <= 0 {
		cfg.MaxInFlight = DefaultMaxInFlight
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{
		cfg:        cfg,
		fetcher:    fetcher,
		extractor:  NewLinkExtractor(filter),
		classifier: classifier,
		recorder:   recorder,
		clock:      clock,
		logger:     logger,
		frontier:   NewFrontier(),
		visited:    newVisitTracker(),
		gate:       make(chan struct{}, cfg.MaxInFlight),
	}
}

// Run seeds the frontier with the normalized start URL and blocks until
// every worker has exited. Workers exit when they observe an empty
// frontier; because the worker that discovered new links keeps draining
// them itself, the pool self-empties without a shutdown signal.
func (e *Engine) Run(ctx context.Context) {
	e.frontier.Enqueue(NormalizeURL(e.cfg.StartURL))

	var wg sync.WaitGroup
	for i := 0; i < e.cfg.Workers; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			e.worker(ctx, id)
		}(i)
	}
	wg.Wait()

	e.logger.Info("crawl complete", zap.Int64("urls_visited", e.claimed.Load()))
}

// Visited returns the number of URLs claimed so far.
func (e *Engine) Visited() int64 {
	return e.claimed.Load()
}

func (e *Engine) worker(ctx context.Context, id int) {
	for {
		raw, ok := e.frontier.TryDequeue()
		if !ok {
			e.logger.Debug("frontier empty, worker exiting", zap.Int("worker", id))
			return
		}

		// Links arrive pre-normalized; normalizing again is idempotent
		// and keeps the visited-set key canonical no matter the source.
		pageURL := NormalizeURL(raw)
		if !e.visited.MarkIfNew(pageURL) {
			continue
		}
		visited := e.claimed.Add(1)
		e.logger.Info("crawling",
			zap.String("url", pageURL),
			zap.Int64("visited", visited),
		)

		body, err := e.fetch(ctx, pageURL)
		if err != nil {
			FetchFailures.Inc()
			e.logger.Debug("no content", zap.String("url", pageURL), zap.Error(err))
			continue
		}

		e.recorder.Record(PageRecord{
			URL:      pageURL,
			LastMod:  e.clock.Now(),
			Priority: e.classifier.Score(pageURL),
		})
		PagesCrawled.Inc()

		links := e.extractor.Extract(body, pageURL)
		LinksDiscovered.Add(float64(len(links)))
		for _, link := range links {
			if !e.visited.Seen(link) {
				e.frontier.Enqueue(link)
			}
		}
	}
}

// fetch runs one Fetch under the admission gate.
func (e *Engine) fetch(ctx context.Context, rawURL string) ([]byte, error) {
	e.gate <- struct{}{}
	defer func() { <-e.gate }()
	return e.fetcher.Fetch(ctx, rawURL)
}
