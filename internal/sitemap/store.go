// Package sitemap accumulates crawl results and writes the sitemap
// artifacts: the XML sitemap, timestamped JSON snapshots, and the change
// log between successive snapshots.
package sitemap

import (
	"sort"
	"sync"

	"github.com/amaan-bhati/sitemap-generator/internal/crawler"
)

// Store maps each normalized URL to its PageRecord. Workers write records
// concurrently during the crawl; reads happen after the crawl completes.
// The dedup guard upstream means each key is written at most once in
// practice, but the mutex makes that a non-assumption.
type Store struct {
	mu    sync.RWMutex
	pages map[string]crawler.PageRecord
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{pages: make(map[string]crawler.PageRecord)}
}

// Record stores the record under its URL, replacing any previous entry.
func (s *Store) Record(rec crawler.PageRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pages[rec.URL] = rec
}

// Get returns the record for a URL. Absent keys return the zero record
// and false; nothing is inserted on lookup.
func (s *Store) Get(rawURL string) (crawler.PageRecord, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.pages[rawURL]
	return rec, ok
}

// Len returns the number of recorded pages.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.pages)
}

// Records returns all records sorted lexicographically by URL.
func (s *Store) Records() []crawler.PageRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	records := make([]crawler.PageRecord, 0, len(s.pages))
	for _, rec := range s.pages {
		records = append(records, rec)
	}
	sort.Slice(records, func(i, j int) bool {
		return records[i].URL < records[j].URL
	})
	return records
}

// URLSet returns the set of recorded URLs for snapshot diffing.
func (s *Store) URLSet() map[string]struct{} {
	s.mu.RLock()
	defer s.mu.RUnlock()
	urls := make(map[string]struct{}, len(s.pages))
	for u := range s.pages {
		urls[u] = struct{}{}
	}
	return urls
}
