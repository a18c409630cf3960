package crawler

import "sync"

// Frontier is the queue of discovered-but-not-yet-processed URLs. It is
// unbounded and safe for concurrent producers and consumers. A URL may be
// enqueued more than once before a worker claims it; deduplication happens
// at claim time against the visited set, not here.
type Frontier struct {
	mu    sync.Mutex
	items []string
}

// NewFrontier returns an empty frontier.
func NewFrontier() *Frontier {
	return &Frontier{}
}

// Enqueue appends a URL to the frontier.
func (f *Frontier) Enqueue(rawURL string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.items = append(f.items, rawURL)
}

// TryDequeue pops the oldest URL without blocking. The second return value
// is false when the frontier is empty; workers use that as their exit
// signal rather than waiting for more work.
func (f *Frontier) TryDequeue() (string, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.items) == 0 {
		return "", false
	}
	item := f.items[0]
	f.items = f.items[1:]
	return item, true
}

// Len returns the number of queued URLs.
func (f *Frontier) Len() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.items)
}
