// Package crawler implements the concurrent crawl engine: frontier and
// visited-set management, URL normalization and filtering, priority
// classification, and the bounded worker pool that drives fetching and
// link extraction.
package crawler

import (
	"context"
	"errors"
	"time"
)

// ErrNoContent reports that a fetch produced no usable HTML body. Every
// failure mode of the fetcher (transport error, non-200 status, non-HTML
// content type, timeout) collapses into this error; the engine discards
// the URL and moves on.
var ErrNoContent = errors.New("no content")

// PageRecord is the per-URL metadata recorded after a successful fetch.
type PageRecord struct {
	URL      string    `json:"url"`
	LastMod  time.Time `json:"lastmod"`
	Priority float64   `json:"priority"`
}

// Fetcher retrieves the HTML body of a single URL. Implementations must
// return an error wrapping ErrNoContent for anything other than an HTTP
// 200 text/html response.
type Fetcher interface {
	Fetch(ctx context.Context, rawURL string) ([]byte, error)
}

// Recorder receives one PageRecord per successfully fetched URL.
type Recorder interface {
	Record(rec PageRecord)
}

// Clock returns the current time (useful for testing).
type Clock interface {
	Now() time.Time
}
