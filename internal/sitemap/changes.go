package sitemap

import "sort"

// ChangeSet is the set difference between two successive snapshots' URL
// keys. It is purely derived and never mutated after construction.
type ChangeSet struct {
	NewURLs        []string `json:"new_urls"`
	RemovedURLs    []string `json:"removed_urls"`
	UpdatedURLs    []string `json:"updated_urls"`
	URLCountChange int      `json:"url_count_change"`
}

// Diff computes the ChangeSet between the current URL set and a previous
// one. URLs only in current are new, URLs only in previous are removed,
// and URLs in both count as updated (their lastmod advanced this run).
// Slices are sorted so output is deterministic.
func Diff(current, previous map[string]struct{}) ChangeSet {
	cs := ChangeSet{
		NewURLs:        []string{},
		RemovedURLs:    []string{},
		UpdatedURLs:    []string{},
		URLCountChange: len(current) - len(previous),
	}
	for u := range current {
		if _, ok := previous[u]; ok {
			cs.UpdatedURLs = append(cs.UpdatedURLs, u)
		} else {
			cs.NewURLs = append(cs.NewURLs, u)
		}
	}
	for u := range previous {
		if _, ok := current[u]; !ok {
			cs.RemovedURLs = append(cs.RemovedURLs, u)
		}
	}
	sort.Strings(cs.NewURLs)
	sort.Strings(cs.RemovedURLs)
	sort.Strings(cs.UpdatedURLs)
	return cs
}
