package crawler

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// PagesCrawled tracks the number of pages fetched successfully and
	// recorded in the sitemap store.
	PagesCrawled = promauto.NewCounter(prometheus.CounterOpts{
		Name: "sitemap_pages_crawled_total",
		Help: "The total number of pages successfully fetched and recorded.",
	})
	// FetchFailures tracks URLs discarded because the fetch produced no
	// usable HTML.
	FetchFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "sitemap_fetch_failures_total",
		Help: "The total number of fetches that produced no content.",
	})
	// LinksDiscovered tracks links extracted from fetched pages that
	// passed the crawl filter.
	LinksDiscovered = promauto.NewCounter(prometheus.CounterOpts{
		Name: "sitemap_links_discovered_total",
		Help: "The total number of in-domain links extracted from pages.",
	})
)
