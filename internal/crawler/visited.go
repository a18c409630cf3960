package crawler

import "sync"

// visitTracker provides thread-safe visited URL tracking. MarkIfNew is the
// single deduplication checkpoint of the crawl: the membership test and
// the insertion happen as one atomic step, so two workers can never claim
// the same URL.
type visitTracker struct {
	seen sync.Map
}

func newVisitTracker() *visitTracker {
	return &visitTracker{}
}

// MarkIfNew stores the URL if it has not been seen before and returns true.
func (t *visitTracker) MarkIfNew(rawURL string) bool {
	if rawURL == "" {
		return false
	}
	_, loaded := t.seen.LoadOrStore(rawURL, struct{}{})
	return !loaded
}

// Seen reports whether the URL has already been claimed. Used as a cheap
// pre-filter before enqueueing discovered links; the authoritative check
// remains MarkIfNew at claim time.
func (t *visitTracker) Seen(rawURL string) bool {
	_, ok := t.seen.Load(rawURL)
	return ok
}
