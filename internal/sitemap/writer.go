package sitemap

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"go.uber.org/zap"

	"github.com/amaan-bhati/sitemap-generator/internal/crawler"
)

const timestampLayout = "20060102_150405"

// Result reports what a Save wrote.
type Result struct {
	XMLPath     string
	JSONPath    string
	ChangesPath string
	Changes     *ChangeSet
}

// Writer persists a store to the output directory: sitemap.xml is
// overwritten every run, sitemap_<timestamp>.json is a new file each run,
// and changes_<timestamp>.json is written once at least one older
// snapshot exists to diff against. Filesystem failures are fatal for the
// run; the crawl result cannot be recovered if it cannot be persisted.
type Writer struct {
	dir    string
	clock  crawler.Clock
	logger *zap.Logger
}

// NewWriter creates the output directory if needed and returns a Writer.
func NewWriter(dir string, clock crawler.Clock, logger *zap.Logger) (*Writer, error) {
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("create output dir %s: %w", dir, err)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Writer{dir: dir, clock: clock, logger: logger}, nil
}

// Save writes all artifacts for the current run.
func (w *Writer) Save(store *Store) (Result, error) {
	now := w.clock.Now()
	stamp := now.Format(timestampLayout)

	result := Result{
		XMLPath:  filepath.Join(w.dir, "sitemap.xml"),
		JSONPath: filepath.Join(w.dir, fmt.Sprintf("sitemap_%s.json", stamp)),
	}

	xmlPayload, err := MarshalXML(store.Records())
	if err != nil {
		return Result{}, err
	}
	if err := os.WriteFile(result.XMLPath, xmlPayload, 0o600); err != nil {
		return Result{}, fmt.Errorf("write %s: %w", result.XMLPath, err)
	}

	snap := NewSnapshot(store, now)
	jsonPayload, err := snap.Marshal()
	if err != nil {
		return Result{}, err
	}
	if err := os.WriteFile(result.JSONPath, jsonPayload, 0o600); err != nil {
		return Result{}, fmt.Errorf("write %s: %w", result.JSONPath, err)
	}

	changes, changesPath, err := w.writeChanges(snap, stamp)
	if err != nil {
		return Result{}, err
	}
	result.Changes = changes
	result.ChangesPath = changesPath

	w.logger.Info("sitemaps saved",
		zap.String("xml", result.XMLPath),
		zap.String("json", result.JSONPath),
		zap.Int("total_urls", store.Len()),
	)
	return result, nil
}

// writeChanges diffs the current snapshot against the most recent prior
// one and persists the change log. The previous snapshot is found by
// lexicographic filename order, which is chronological for the fixed
// timestamp format; the current run's file is already on disk, so the
// second-to-last name is the prior run.
func (w *Writer) writeChanges(current Snapshot, stamp string) (*ChangeSet, string, error) {
	names, err := filepath.Glob(filepath.Join(w.dir, "sitemap_*.json"))
	if err != nil {
		return nil, "", fmt.Errorf("list snapshots: %w", err)
	}
	sort.Strings(names)
	if len(names) < 2 {
		// First run: everything is new and there is nothing to diff.
		return nil, "", nil
	}
	previousPath := names[len(names)-2]

	previous, err := LoadSnapshot(previousPath)
	if err != nil {
		return nil, "", err
	}

	cs := Diff(current.URLSet(), previous.URLSet())
	payload, err := json.MarshalIndent(cs, "", "  ")
	if err != nil {
		return nil, "", fmt.Errorf("marshal changes: %w", err)
	}
	changesPath := filepath.Join(w.dir, fmt.Sprintf("changes_%s.json", stamp))
	if err := os.WriteFile(changesPath, payload, 0o600); err != nil {
		return nil, "", fmt.Errorf("write %s: %w", changesPath, err)
	}

	w.logger.Info("changes summary",
		zap.Int("new_urls", len(cs.NewURLs)),
		zap.Int("removed_urls", len(cs.RemovedURLs)),
		zap.String("url_count_change", fmt.Sprintf("%+d", cs.URLCountChange)),
		zap.String("previous_snapshot", previousPath),
	)
	return &cs, changesPath, nil
}
