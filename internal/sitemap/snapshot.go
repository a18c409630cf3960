package sitemap

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// SnapshotEntry is the per-URL payload inside a snapshot.
type SnapshotEntry struct {
	LastMod  string  `json:"lastmod"`
	Priority float64 `json:"priority"`
}

// Snapshot is the immutable JSON serialization of a store produced once
// per run. Prior snapshots are never modified; the change log is computed
// by diffing URL sets between two of them.
type Snapshot struct {
	GeneratedAt string                   `json:"generated_at"`
	TotalURLs   int                      `json:"total_urls"`
	URLs        map[string]SnapshotEntry `json:"urls"`
}

// NewSnapshot captures the store's current contents.
func NewSnapshot(store *Store, now time.Time) Snapshot {
	records := store.Records()
	urls := make(map[string]SnapshotEntry, len(records))
	for _, rec := range records {
		urls[rec.URL] = SnapshotEntry{
			LastMod:  rec.LastMod.Format(lastModLayout),
			Priority: rec.Priority,
		}
	}
	return Snapshot{
		GeneratedAt: now.Format(time.RFC3339),
		TotalURLs:   len(urls),
		URLs:        urls,
	}
}

// Marshal renders the snapshot pretty-printed with two-space indent.
func (s Snapshot) Marshal() ([]byte, error) {
	payload, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal snapshot: %w", err)
	}
	return payload, nil
}

// URLSet returns the snapshot's URL keys as a set.
func (s Snapshot) URLSet() map[string]struct{} {
	urls := make(map[string]struct{}, len(s.URLs))
	for u := range s.URLs {
		urls[u] = struct{}{}
	}
	return urls
}

// LoadSnapshot reads a snapshot file written by a previous run.
func LoadSnapshot(path string) (Snapshot, error) {
	payload, err := os.ReadFile(path) // #nosec G304 -- path comes from our own output dir listing
	if err != nil {
		return Snapshot{}, fmt.Errorf("read snapshot %s: %w", path, err)
	}
	var snap Snapshot
	if err := json.Unmarshal(payload, &snap); err != nil {
		return Snapshot{}, fmt.Errorf("decode snapshot %s: %w", path, err)
	}
	return snap, nil
}
